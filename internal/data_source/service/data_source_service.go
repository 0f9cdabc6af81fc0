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
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/wso2/identity-profile-resolver/internal/data_source/model"
	"github.com/wso2/identity-profile-resolver/internal/system/constants"
	"github.com/wso2/identity-profile-resolver/internal/system/database/client"
	dbProvider "github.com/wso2/identity-profile-resolver/internal/system/database/provider"
	errors2 "github.com/wso2/identity-profile-resolver/internal/system/errors"
	"github.com/wso2/identity-profile-resolver/internal/system/log"
)

// DataSourceServiceInterface builds data sources from caller descriptors and lists the sources
// available under the configured data directories.
type DataSourceServiceInterface interface {
	BuildDataSources(descriptors []model.SourceDescriptor) ([]model.DataSourceInterface, func(), error)
	BuildDataSource(descriptor model.SourceDescriptor) (model.DataSourceInterface, error)
	ListDataSources() (*model.SourceListing, error)
}

// DataSourceService is the default implementation of the DataSourceServiceInterface.
type DataSourceService struct {
	homeDir     string
	directories []string
	dbProvider  dbProvider.DBProviderInterface
	// postgresEnabled is true when a Postgres datasource is configured.
	postgresEnabled bool
	postgresName    string
}

// NewDataSourceService creates a data source service reading files from the given directories.
// Relative directories and relative source names are resolved against homeDir, or against the
// working directory when homeDir is empty.
func NewDataSourceService(homeDir string, directories []string, provider dbProvider.DBProviderInterface,
	postgresName string) *DataSourceService {

	resolved := make([]string, 0, len(directories))
	for _, dir := range directories {
		if !filepath.IsAbs(dir) && homeDir != "" {
			dir = filepath.Join(homeDir, dir)
		}
		resolved = append(resolved, dir)
	}
	return &DataSourceService{
		homeDir:         homeDir,
		directories:     resolved,
		dbProvider:      provider,
		postgresEnabled: postgresName != "",
		postgresName:    postgresName,
	}
}

// BuildDataSources turns descriptors into sources, in the given order. Descriptors with an unknown
// type are skipped. The returned release function closes any database connection that was opened
// and must be called once the sources are no longer needed.
func (s *DataSourceService) BuildDataSources(descriptors []model.SourceDescriptor) (
	[]model.DataSourceInterface, func(), error) {

	logger := log.GetLogger()
	var sources []model.DataSourceInterface
	var closers []io.Closer
	release := func() {
		for _, closer := range closers {
			if err := closer.Close(); err != nil {
				logger.Warn("Failed to close data source", log.Error(err))
			}
		}
	}

	for _, descriptor := range descriptors {
		source, err := s.BuildDataSource(descriptor)
		if err != nil {
			release()
			return nil, func() {}, err
		}
		if source == nil {
			logger.Warn(fmt.Sprintf("Skipping data source: %s with unsupported type: %s", descriptor.Name,
				descriptor.Type))
			continue
		}
		if closer, ok := source.(io.Closer); ok {
			closers = append(closers, closer)
		}
		sources = append(sources, source)
	}
	return sources, release, nil
}

// BuildDataSource creates the source a descriptor names. It returns a nil source for an unknown
// type. A relational source must be closed by the caller.
func (s *DataSourceService) BuildDataSource(descriptor model.SourceDescriptor) (model.DataSourceInterface, error) {

	switch strings.ToLower(descriptor.Type) {
	case constants.SourceTypeCSV, constants.SourceTypeTabular:
		content, err := s.readSourceFile(descriptor.Name)
		if err != nil {
			return nil, err
		}
		return NewTabularSource(descriptor.Name, content), nil
	case constants.SourceTypeJSON, constants.SourceTypeDocument:
		content, err := s.readSourceFile(descriptor.Name)
		if err != nil {
			return nil, err
		}
		return NewDocumentSource(descriptor.Name, content), nil
	case constants.SourceTypeSQLite, constants.SourceTypeRelational:
		path, err := s.resolveSourcePath(descriptor.Name)
		if err != nil {
			return nil, err
		}
		dbClient, err := s.dbProvider.GetSQLiteDBClient(path)
		if err != nil {
			return nil, errors2.NewServerError(errors2.DB_CLIENT_INIT, err)
		}
		return NewRelationalSource(descriptor.Name, descriptor.Table, dbClient), nil
	case constants.SourceTypePostgres:
		if !s.postgresEnabled {
			return nil, errors2.NewClientError(errors2.INVALID_SOURCE.WithDescription(
				"No postgres datasource is configured."), http.StatusBadRequest)
		}
		dbClient, err := s.dbProvider.GetDataSourceDBClient()
		if err != nil {
			return nil, errors2.NewServerError(errors2.DB_CLIENT_INIT, err)
		}
		return NewRelationalSource(constants.SourceTypePostgres+":"+descriptor.Table, descriptor.Table,
			dbClient), nil
	default:
		return nil, nil
	}
}

// readSourceFile reads a source file as UTF-8 text. A UTF-8 or UTF-16 byte order mark selects the
// decoding and is dropped.
func (s *DataSourceService) readSourceFile(name string) (string, error) {

	path, err := s.resolveSourcePath(name)
	if err != nil {
		return "", err
	}
	file, err := os.Open(path)
	if err != nil {
		return "", errors2.NewServerError(errors2.SOURCE_READ, err)
	}
	defer file.Close()

	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	content, err := io.ReadAll(transform.NewReader(file, decoder))
	if err != nil {
		return "", errors2.NewServerError(errors2.SOURCE_READ, err)
	}
	return string(content), nil
}

// resolveSourcePath only admits paths that resolve inside one of the configured data directories.
func (s *DataSourceService) resolveSourcePath(name string) (string, error) {

	invalid := errors2.NewClientError(errors2.INVALID_SOURCE.WithDescription(
		fmt.Sprintf("Data source %s is not available.", name)), http.StatusBadRequest)
	if name == "" {
		return "", invalid
	}
	path := name
	if !filepath.IsAbs(path) && s.homeDir != "" {
		path = filepath.Join(s.homeDir, path)
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", invalid
	}
	for _, dir := range s.directories {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			continue
		}
		rel, err := filepath.Rel(absDir, absPath)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		if info, err := os.Stat(absPath); err == nil && !info.IsDir() {
			return absPath, nil
		}
	}
	return "", invalid
}

// ListDataSources lists source files in each data directory, without descending into
// sub-directories, and the tables of every SQLite database and of the Postgres datasource.
func (s *DataSourceService) ListDataSources() (*model.SourceListing, error) {

	logger := log.GetLogger()
	listing := &model.SourceListing{
		CSV:    []string{},
		JSON:   []string{},
		SQLite: []model.DatabaseListing{},
	}

	for _, dir := range s.directories {
		entries, err := os.ReadDir(dir)
		if err != nil {
			logger.Debug(fmt.Sprintf("Skipping data directory: %s", dir), log.Error(err))
			continue
		}
		for _, entry := range entries {
			if !entry.Type().IsRegular() {
				continue
			}
			path := filepath.Join(dir, entry.Name())
			switch {
			case strings.HasSuffix(entry.Name(), constants.CSVExtension):
				listing.CSV = append(listing.CSV, path)
			case strings.HasSuffix(entry.Name(), constants.JSONExtension):
				listing.JSON = append(listing.JSON, path)
			case isSQLiteFile(entry.Name()):
				listing.SQLite = append(listing.SQLite, model.DatabaseListing{
					Path:   path,
					Tables: s.listSQLiteTables(path),
				})
			}
		}
	}

	if s.postgresEnabled {
		tables, err := s.listPostgresTables()
		if err != nil {
			return nil, errors2.NewServerError(errors2.LIST_SOURCES, err)
		}
		listing.Postgres = []model.DatabaseListing{{Path: s.postgresName, Tables: tables}}
	}
	return listing, nil
}

// listSQLiteTables returns no tables for a file that cannot be opened as a database.
func (s *DataSourceService) listSQLiteTables(path string) []string {

	dbClient, err := s.dbProvider.GetSQLiteDBClient(path)
	if err != nil {
		log.GetLogger().Debug(fmt.Sprintf("Unable to open SQLite database: %s", path), log.Error(err))
		return []string{}
	}
	defer dbClient.Close()

	return listTables(dbClient, path)
}

func (s *DataSourceService) listPostgresTables() ([]string, error) {

	dbClient, err := s.dbProvider.GetDataSourceDBClient()
	if err != nil {
		return nil, err
	}
	defer dbClient.Close()

	return dbClient.ListTables()
}

func listTables(dbClient client.DBClientInterface, name string) []string {

	tables, err := dbClient.ListTables()
	if err != nil {
		log.GetLogger().Debug(fmt.Sprintf("Unable to list tables of database: %s", name), log.Error(err))
		return []string{}
	}
	return tables
}

func isSQLiteFile(name string) bool {
	for _, ext := range constants.SQLiteExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
