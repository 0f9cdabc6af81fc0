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
	"github.com/wso2/identity-profile-resolver/internal/profile_extraction/service"
	"github.com/wso2/identity-profile-resolver/internal/system/client"
)

// ProfileExtractionProviderInterface defines the interface for the profile extraction provider.
type ProfileExtractionProviderInterface interface {
	GetProfileExtractor() service.ProfileExtractorInterface
}

// ProfileExtractionProvider is the default implementation of the ProfileExtractionProviderInterface.
type ProfileExtractionProvider struct{}

// NewProfileExtractionProvider creates a new instance of ProfileExtractionProvider.
func NewProfileExtractionProvider() ProfileExtractionProviderInterface {

	return &ProfileExtractionProvider{}
}

// GetProfileExtractor returns an extractor backed by the process wide text generator.
func (p *ProfileExtractionProvider) GetProfileExtractor() service.ProfileExtractorInterface {

	return service.NewProfileExtractor(client.GetTextGenerator())
}
