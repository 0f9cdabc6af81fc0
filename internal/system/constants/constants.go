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

package constants

const ApiBasePath = "/api"
const ListSourcesApiPath = "list_sources"
const SchemaApiPath = "schema"
const MatchApiPath = "match"
const ExtractProfileApiPath = "extract_profile"
const HealthApiPath = "health"
const ReadyApiPath = "ready"

const DeploymentConfigFile = "/repository/conf/deployment.yaml"

type contextKey string

const TraceIDContextKey contextKey = "trace_id"

const TraceIDHeader = "X-Trace-Id"

// Source type tags accepted at the ingress boundary.
const (
	SourceTypeTabular    = "tabular"
	SourceTypeDocument   = "document"
	SourceTypeRelational = "relational"

	SourceTypeCSV      = "csv"
	SourceTypeJSON     = "json"
	SourceTypeSQLite   = "sqlite"
	SourceTypePostgres = "postgres"
)

// File extensions picked up by source discovery.
const (
	CSVExtension  = ".csv"
	JSONExtension = ".json"
)

var SQLiteExtensions = []string{".db", ".sqlite", ".sqlite3"}

// Database driver names registered by the imported drivers.
const (
	PostgresDriver = "postgres"
	SQLiteDriver   = "sqlite"
)

// Request resource names used in decode error descriptions.
const (
	MatchResource          = "match"
	SchemaResource         = "schema"
	ExtractProfileResource = "extract_profile"
)
