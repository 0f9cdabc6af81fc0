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
	"strings"

	"github.com/wso2/identity-profile-resolver/internal/profile_extraction/model"
	"github.com/wso2/identity-profile-resolver/internal/profile_extraction/provider"
	"github.com/wso2/identity-profile-resolver/internal/system/constants"
	tracecontext "github.com/wso2/identity-profile-resolver/internal/system/context"
	errors2 "github.com/wso2/identity-profile-resolver/internal/system/errors"
	"github.com/wso2/identity-profile-resolver/internal/system/utils"
)

type ProfileExtractionHandler struct {
	provider provider.ProfileExtractionProviderInterface
}

func NewProfileExtractionHandler() *ProfileExtractionHandler {

	return &ProfileExtractionHandler{provider: provider.NewProfileExtractionProvider()}
}

// NewProfileExtractionHandlerWithProvider creates a handler over the given provider.
func NewProfileExtractionHandlerWithProvider(p provider.ProfileExtractionProviderInterface) *ProfileExtractionHandler {

	return &ProfileExtractionHandler{provider: p}
}

// ExtractProfile handles natural language profile extraction requests
func (h *ProfileExtractionHandler) ExtractProfile(w http.ResponseWriter, r *http.Request) {

	traceID := tracecontext.GetOrGenerateTraceID(r.Context())
	var request model.ExtractionRequest
	if err := utils.DecodeJSONBody(r, &request, constants.ExtractProfileResource, traceID); err != nil {
		utils.HandleError(w, err)
		return
	}
	if strings.TrimSpace(request.Query) == "" {
		utils.HandleError(w, errors2.NewClientErrorWithTraceID(errors2.QUERY_REQUIRED, http.StatusBadRequest, traceID))
		return
	}

	extractor := h.provider.GetProfileExtractor()
	profile := extractor.ExtractProfile(tracecontext.WithTraceID(r.Context(), traceID), request.Query)
	utils.WriteJSON(w, http.StatusOK, model.ExtractionResponse{Profile: profile})
}
