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
package provider

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteDSN(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{"absolute path", "/data/customers.db", "file:/data/customers.db?mode=ro"},
		{"relative path", "test_data/customers.db", "file:test_data/customers.db?mode=ro"},
		{"query and fragment characters", "/data/what?#1.db", "file:/data/what%3F%231.db?mode=ro"},
		{"percent and space", "/data/100% sure.db", "file:/data/100%25%20sure.db?mode=ro"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sqliteDSN(tt.path))
		})
	}
}

func TestGetSQLiteDBClient_PathWithURICharacters(t *testing.T) {
	dir := t.TempDir()
	plainPath := filepath.Join(dir, "customers.db")
	db, err := sql.Open("sqlite", plainPath)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE customers (full_name TEXT)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	oddPath := filepath.Join(dir, "crm?v=2#backup.db")
	require.NoError(t, os.Rename(plainPath, oddPath))

	dbClient, err := NewDBProvider().GetSQLiteDBClient(oddPath)
	require.NoError(t, err)
	defer dbClient.Close()

	tables, err := dbClient.ListTables()
	require.NoError(t, err)
	assert.Equal(t, []string{"customers"}, tables)
}

func TestGetSQLiteDBClient_ReadOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "customers.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE customers (full_name TEXT)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	dbClient, err := NewDBProvider().GetSQLiteDBClient(path)
	require.NoError(t, err)
	defer dbClient.Close()

	_, err = dbClient.ExecuteQuery(`INSERT INTO customers VALUES ('John Smith') RETURNING full_name`)
	assert.Error(t, err)
}
