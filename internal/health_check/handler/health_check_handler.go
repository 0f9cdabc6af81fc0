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

package handler

import (
	"net/http"

	"github.com/wso2/identity-profile-resolver/internal/health_check/provider"
	"github.com/wso2/identity-profile-resolver/internal/system/utils"
)

// HealthHandler implements health and readiness endpoints.
type HealthHandler struct {
	provider provider.HealthCheckProviderInterface
}

// NewHealthHandler creates a new instance of HealthHandler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{provider: provider.NewHealthCheckProvider()}
}

// NewHealthHandlerWithProvider creates a handler over the given provider.
func NewHealthHandlerWithProvider(p provider.HealthCheckProviderInterface) *HealthHandler {
	return &HealthHandler{provider: p}
}

// HandleHealth responds to health requests.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "UP"})
}

// HandleReadiness responds to readiness requests.
func (h *HealthHandler) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	if err := h.provider.GetHealthCheckService().CheckReadiness(); err != nil {
		utils.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "NOT_READY",
			"error":  err.Error(),
		})
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "READY"})
}
