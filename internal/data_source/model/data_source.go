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

package model

import (
	profileModel "github.com/wso2/identity-profile-resolver/internal/profile/model"
)

// DataSourceInterface is a named provider of a schema and a sequence of candidate profiles read
// from one underlying dataset. Implementations are tabular, document and relational sources.
type DataSourceInterface interface {
	// Name identifies the source. It is the schema cache key and the attribution label of matches.
	Name() string
	// Type is one of the source type constants.
	Type() string
	// InferSchema returns the source's field names.
	InferSchema() ([]string, error)
	// GetProfiles returns the source's records in their natural order.
	GetProfiles() ([]profileModel.Profile, error)
}

// SourceDescriptor is how a caller names a source at the API boundary.
type SourceDescriptor struct {
	Type  string `json:"type"`
	Name  string `json:"name"`
	Table string `json:"table,omitempty"`
}

// SourceSchema is the detected schema of one requested source.
type SourceSchema struct {
	Name   string   `json:"name"`
	Type   string   `json:"type"`
	Fields []string `json:"fields"`
	Table  string   `json:"table,omitempty"`
}

// DatabaseListing names a database and its tables.
type DatabaseListing struct {
	Path   string   `json:"path"`
	Tables []string `json:"tables"`
}

// SourceListing groups the sources available to the resolver by type.
type SourceListing struct {
	CSV      []string          `json:"csv"`
	JSON     []string          `json:"json"`
	SQLite   []DatabaseListing `json:"sqlite"`
	Postgres []DatabaseListing `json:"postgres,omitempty"`
}
