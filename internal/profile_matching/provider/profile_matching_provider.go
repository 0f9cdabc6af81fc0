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
	"github.com/wso2/identity-profile-resolver/internal/profile_matching/service"
	"github.com/wso2/identity-profile-resolver/internal/system/client"
	"github.com/wso2/identity-profile-resolver/internal/system/config"
)

// ProfileMatchingProviderInterface defines the interface for the profile matching provider.
type ProfileMatchingProviderInterface interface {
	GetProfileResolutionService() service.ProfileResolutionServiceInterface
}

// ProfileMatchingProvider is the default implementation of the ProfileMatchingProviderInterface.
type ProfileMatchingProvider struct{}

// NewProfileMatchingProvider creates a new instance of ProfileMatchingProvider.
func NewProfileMatchingProvider() ProfileMatchingProviderInterface {

	return &ProfileMatchingProvider{}
}

// GetProfileResolutionService returns a resolution service over the configured data sources and
// the process wide text generator.
func (p *ProfileMatchingProvider) GetProfileResolutionService() service.ProfileResolutionServiceInterface {

	dataSources := dataSourceProvider.NewDataSourceProvider().GetDataSourceService()
	matcher := service.NewMatchingService(client.GetTextGenerator())
	return service.NewProfileResolutionService(dataSources, matcher, config.GetRuntime().Config.MatchThreshold())
}
