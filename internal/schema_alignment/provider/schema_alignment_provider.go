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
	dataSourceProvider "github.com/wso2/identity-profile-resolver/internal/data_source/provider"
	"github.com/wso2/identity-profile-resolver/internal/schema_alignment/service"
	"github.com/wso2/identity-profile-resolver/internal/system/client"
)

// SchemaAlignmentProviderInterface defines the interface for the schema alignment provider.
type SchemaAlignmentProviderInterface interface {
	GetSchemaService() service.SchemaServiceInterface
}

// SchemaAlignmentProvider is the default implementation of the SchemaAlignmentProviderInterface.
type SchemaAlignmentProvider struct{}

// NewSchemaAlignmentProvider creates a new instance of SchemaAlignmentProvider.
func NewSchemaAlignmentProvider() SchemaAlignmentProviderInterface {

	return &SchemaAlignmentProvider{}
}

// GetSchemaService returns a schema service with a fresh schema cache.
func (p *SchemaAlignmentProvider) GetSchemaService() service.SchemaServiceInterface {

	dataSources := dataSourceProvider.NewDataSourceProvider().GetDataSourceService()
	return service.NewSchemaService(dataSources, service.NewSchemaAligner(client.GetTextGenerator()))
}
