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
	"errors"
	"fmt"

	"github.com/wso2/identity-profile-resolver/internal/system/client"
	"github.com/wso2/identity-profile-resolver/internal/system/config"
	"github.com/wso2/identity-profile-resolver/internal/system/database/provider"
)

// HealthCheckServiceInterface defines the service interface.
type HealthCheckServiceInterface interface {
	CheckReadiness() error
}

// HealthCheckService is the default implementation.
type HealthCheckService struct {
	dbProvider         provider.DBProviderInterface
	datasourceEnabled  bool
	generatorAvailable func() bool
}

// GetHealthCheckService returns a health check service for the running configuration.
func GetHealthCheckService() HealthCheckServiceInterface {
	return NewHealthCheckService(provider.NewDBProvider(), config.GetRuntime().Config.DataSource.IsConfigured(),
		client.IsTextGeneratorInitialized)
}

// NewHealthCheckService creates a health check service. The datasource is only checked when enabled.
func NewHealthCheckService(dbProvider provider.DBProviderInterface, datasourceEnabled bool,
	generatorAvailable func() bool) *HealthCheckService {

	return &HealthCheckService{
		dbProvider:         dbProvider,
		datasourceEnabled:  datasourceEnabled,
		generatorAvailable: generatorAvailable,
	}
}

// CheckReadiness fails when the text generator is missing or the configured datasource is unreachable.
func (h *HealthCheckService) CheckReadiness() error {

	if !h.generatorAvailable() {
		return errors.New("text generator is not initialized")
	}
	if !h.datasourceEnabled {
		return nil
	}

	dbClient, err := h.dbProvider.GetDataSourceDBClient()
	if err != nil {
		return fmt.Errorf("failed to create database client: %v", err)
	}
	defer dbClient.Close()

	// Perform a lightweight query to ensure DB connectivity.
	if _, err = dbClient.ExecuteQuery("SELECT 1"); err != nil {
		return fmt.Errorf("database connectivity check failed: %v", err)
	}
	return nil
}
