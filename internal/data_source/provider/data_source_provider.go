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
	"github.com/wso2/identity-profile-resolver/internal/data_source/service"
	"github.com/wso2/identity-profile-resolver/internal/system/config"
	dbProvider "github.com/wso2/identity-profile-resolver/internal/system/database/provider"
)

// DataSourceProviderInterface defines the interface for the data source provider.
type DataSourceProviderInterface interface {
	GetDataSourceService() service.DataSourceServiceInterface
}

// DataSourceProvider is the default implementation of the DataSourceProviderInterface.
type DataSourceProvider struct{}

// NewDataSourceProvider creates a new instance of DataSourceProvider.
func NewDataSourceProvider() DataSourceProviderInterface {

	return &DataSourceProvider{}
}

// GetDataSourceService returns a data source service over the configured data directories.
// Relative directories and source names are resolved against the server home.
func (p *DataSourceProvider) GetDataSourceService() service.DataSourceServiceInterface {

	runtime := config.GetRuntime()
	postgresName := ""
	if runtime.Config.DataSource.IsConfigured() {
		postgresName = runtime.Config.DataSource.Name
	}
	return service.NewDataSourceService(runtime.ResolverHome, runtime.Config.DataSources.Directories,
		dbProvider.NewDBProvider(), postgresName)
}
