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
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/wso2/identity-profile-resolver/internal/system/config"
	"github.com/wso2/identity-profile-resolver/internal/system/constants"
	"github.com/wso2/identity-profile-resolver/internal/system/database/client"
)

// DBConfig represents the local database configuration.
type DBConfig struct {
	dsn        string
	driverName string
}

// DBProviderInterface defines the interface for getting database clients.
type DBProviderInterface interface {
	GetSQLiteDBClient(path string) (client.DBClientInterface, error)
	GetDataSourceDBClient() (client.DBClientInterface, error)
}

// DBProvider is the implementation of DBProviderInterface.
type DBProvider struct{}

// NewDBProvider creates a new instance of DBProvider.
func NewDBProvider() DBProviderInterface {

	return &DBProvider{}
}

// GetSQLiteDBClient opens the SQLite database file at the given path in read-only mode.
func (d *DBProvider) GetSQLiteDBClient(path string) (client.DBClientInterface, error) {

	return openDBClient(DBConfig{
		driverName: constants.SQLiteDriver,
		dsn:        sqliteDSN(path),
	})
}

// sqliteDSN builds a read-only SQLite URI. Path segments are escaped so that characters such as
// '?', '#' and '%' stay part of the file name.
func sqliteDSN(path string) string {

	segments := strings.Split(filepath.ToSlash(path), "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	dsn := url.URL{Scheme: "file", Opaque: strings.Join(segments, "/"), RawQuery: "mode=ro"}
	return dsn.String()
}

// GetDataSourceDBClient returns a client for the Postgres datasource of the runtime configuration.
func (d *DBProvider) GetDataSourceDBClient() (client.DBClientInterface, error) {

	runtimeConfig := config.GetRuntime().Config
	if !runtimeConfig.DataSource.IsConfigured() {
		return nil, fmt.Errorf("no datasource is configured")
	}
	return openDBClient(getDBConfig(runtimeConfig))
}

func openDBClient(dbConfig DBConfig) (client.DBClientInterface, error) {

	db, err := sql.Open(dbConfig.driverName, dbConfig.dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	// Test the database connection.
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %v", err)
	}

	return client.NewDBClient(db, dbConfig.driverName), nil
}

// getDBConfig returns the database configuration based on the provided data source.
func getDBConfig(dataSource config.Config) DBConfig {

	var dbConfig DBConfig

	dbConfig.driverName = constants.PostgresDriver
	dbConfig.dsn = fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dataSource.DataSource.Hostname, dataSource.DataSource.Port, dataSource.DataSource.Username, dataSource.DataSource.Password,
		dataSource.DataSource.Name, dataSource.DataSource.SSLMode)

	return dbConfig
}
