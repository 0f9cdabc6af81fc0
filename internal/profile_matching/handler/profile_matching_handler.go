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

	"github.com/wso2/identity-profile-resolver/internal/profile_matching/model"
	"github.com/wso2/identity-profile-resolver/internal/profile_matching/provider"
	"github.com/wso2/identity-profile-resolver/internal/system/constants"
	tracecontext "github.com/wso2/identity-profile-resolver/internal/system/context"
	errors2 "github.com/wso2/identity-profile-resolver/internal/system/errors"
	"github.com/wso2/identity-profile-resolver/internal/system/utils"
)

type ProfileMatchingHandler struct {
	provider provider.ProfileMatchingProviderInterface
}

func NewProfileMatchingHandler() *ProfileMatchingHandler {

	return &ProfileMatchingHandler{provider: provider.NewProfileMatchingProvider()}
}

// NewProfileMatchingHandlerWithProvider creates a handler over the given provider.
func NewProfileMatchingHandlerWithProvider(p provider.ProfileMatchingProviderInterface) *ProfileMatchingHandler {

	return &ProfileMatchingHandler{provider: p}
}

// MatchProfile handles profile matching requests
func (h *ProfileMatchingHandler) MatchProfile(w http.ResponseWriter, r *http.Request) {

	traceID := tracecontext.GetOrGenerateTraceID(r.Context())
	var request model.MatchRequest
	if err := utils.DecodeJSONBody(r, &request, constants.MatchResource, traceID); err != nil {
		utils.HandleError(w, err)
		return
	}

	resolutionService := h.provider.GetProfileResolutionService()
	response, err := resolutionService.ResolveProfile(tracecontext.WithTraceID(r.Context(), traceID), request)
	if err != nil {
		utils.HandleError(w, errors2.StampTraceID(err, traceID))
		return
	}
	utils.WriteJSON(w, http.StatusOK, response)
}
