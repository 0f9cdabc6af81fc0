/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package service

import (
	"fmt"

	profileModel "github.com/wso2/identity-profile-resolver/internal/profile/model"
	"github.com/wso2/identity-profile-resolver/internal/system/constants"
	"github.com/wso2/identity-profile-resolver/internal/system/database/client"
	"github.com/wso2/identity-profile-resolver/internal/system/database/scripts"
)

// RelationalSource reads profiles from one table of a SQL database.
type RelationalSource struct {
	name     string
	table    string
	dbClient client.DBClientInterface
}

// NewRelationalSource creates a relational source over the given table.
func NewRelationalSource(name, table string, dbClient client.DBClientInterface) *RelationalSource {

	return &RelationalSource{name: name, table: table, dbClient: dbClient}
}

func (s *RelationalSource) Name() string {
	return s.name
}

func (s *RelationalSource) Type() string {
	return constants.SourceTypeRelational
}

// Table returns the name of the table the source reads.
func (s *RelationalSource) Table() string {
	return s.table
}

// InferSchema returns the table's columns in declared order.
func (s *RelationalSource) InferSchema() ([]string, error) {

	query, err := scripts.SelectNoRows(s.dbClient.DriverName(), s.table)
	if err != nil {
		return nil, err
	}
	columns, err := s.dbClient.QueryColumns(query)
	if err != nil {
		return nil, fmt.Errorf("failed to read columns of table %s in %s: %w", s.table, s.name, err)
	}
	return columns, nil
}

// GetProfiles returns one profile per row holding every column. NULL values are kept as nil.
func (s *RelationalSource) GetProfiles() ([]profileModel.Profile, error) {

	query, err := scripts.SelectAllRows(s.dbClient.DriverName(), s.table)
	if err != nil {
		return nil, err
	}
	rows, err := s.dbClient.ExecuteQuery(query)
	if err != nil {
		return nil, fmt.Errorf("failed to read table %s in %s: %w", s.table, s.name, err)
	}

	profiles := make([]profileModel.Profile, 0, len(rows))
	for _, row := range rows {
		profiles = append(profiles, profileModel.Profile(row))
	}
	return profiles, nil
}

// Close releases the database connection held by the source.
func (s *RelationalSource) Close() error {
	return s.dbClient.Close()
}
