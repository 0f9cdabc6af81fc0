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

package client

import (
	"database/sql"
	"fmt"

	"github.com/wso2/identity-profile-resolver/internal/system/database/scripts"
	"github.com/wso2/identity-profile-resolver/internal/system/log"
)

// DBClientInterface defines the interface for database operations.
type DBClientInterface interface {
	ExecuteQuery(query string, args ...interface{}) ([]map[string]interface{}, error)
	QueryColumns(query string, args ...interface{}) ([]string, error)
	ListTables() ([]string, error)
	DriverName() string
	Close() error
}

// DBClient is the implementation of DBClientInterface.
type DBClient struct {
	db         *sql.DB
	driverName string
}

// NewDBClient creates a new instance of DBClient with the provided database connection.
func NewDBClient(db *sql.DB, driverName string) DBClientInterface {

	return &DBClient{
		db:         db,
		driverName: driverName,
	}
}

// ExecuteQuery executes a SELECT query and returns the result as a slice of maps keyed by column
// name exactly as the driver reports it. SQL NULL is kept as nil and text delivered as bytes is
// returned as string.
func (client *DBClient) ExecuteQuery(query string, args ...interface{}) ([]map[string]interface{}, error) {

	rows, err := client.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var results []map[string]interface{}
	for rows.Next() {
		row := make([]interface{}, len(columns))
		rowPointers := make([]interface{}, len(columns))
		for i := range row {
			rowPointers[i] = &row[i]
		}

		if err := rows.Scan(rowPointers...); err != nil {
			return nil, err
		}

		result := make(map[string]interface{}, len(columns))
		for i, col := range columns {
			if raw, ok := row[i].([]byte); ok {
				result[col] = string(raw)
				continue
			}
			result[col] = row[i]
		}
		results = append(results, result)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

// QueryColumns runs the query and returns its column names in declared order.
func (client *DBClient) QueryColumns(query string, args ...interface{}) ([]string, error) {

	rows, err := client.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return rows.Columns()
}

// ListTables returns the user tables of the database.
func (client *DBClient) ListTables() ([]string, error) {

	query, ok := scripts.ListTables[client.driverName]
	if !ok {
		return nil, fmt.Errorf("unsupported database driver: %s", client.driverName)
	}
	rows, err := client.ExecuteQuery(query)
	if err != nil {
		return nil, err
	}

	tables := make([]string, 0, len(rows))
	for _, row := range rows {
		for _, value := range row {
			tables = append(tables, fmt.Sprint(value))
		}
	}
	log.GetLogger().Debug(fmt.Sprintf("Found %d tables", len(tables)), log.String("driver", client.driverName))
	return tables, nil
}

// DriverName returns the name of the database/sql driver backing the client.
func (client *DBClient) DriverName() string {

	return client.driverName
}

// Close closes the database connection.
func (client *DBClient) Close() error {

	return client.db.Close()
}
