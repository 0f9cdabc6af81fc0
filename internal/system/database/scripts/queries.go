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

package scripts

import (
	"fmt"
	"strings"
)

var ListTables = map[string]string{
	"postgres": `SELECT table_name FROM information_schema.tables
        WHERE table_schema = 'public' AND table_type = 'BASE TABLE' ORDER BY table_name`,
	"sqlite": `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`,
}

// selectAllRows and selectNoRows take a quoted table identifier.
var selectAllRows = map[string]string{
	"postgres": `SELECT * FROM %s`,
	"sqlite":   `SELECT * FROM %s`,
}

var selectNoRows = map[string]string{
	"postgres": `SELECT * FROM %s LIMIT 0`,
	"sqlite":   `SELECT * FROM %s LIMIT 0`,
}

// SelectAllRows returns the query reading every row of the table, in storage order.
func SelectAllRows(driverName, table string) (string, error) {
	return tableQuery(selectAllRows, driverName, table)
}

// SelectNoRows returns a query that yields the table's declared columns without reading rows.
func SelectNoRows(driverName, table string) (string, error) {
	return tableQuery(selectNoRows, driverName, table)
}

// QuoteIdentifier quotes a table name for both supported dialects.
func QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func tableQuery(queries map[string]string, driverName, table string) (string, error) {
	query, ok := queries[driverName]
	if !ok {
		return "", fmt.Errorf("unsupported database driver: %s", driverName)
	}
	if strings.TrimSpace(table) == "" {
		return "", fmt.Errorf("table name is required")
	}
	return fmt.Sprintf(query, QuoteIdentifier(table)), nil
}
