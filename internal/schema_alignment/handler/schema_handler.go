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

	"github.com/wso2/identity-profile-resolver/internal/schema_alignment/model"
	"github.com/wso2/identity-profile-resolver/internal/schema_alignment/provider"
	"github.com/wso2/identity-profile-resolver/internal/system/constants"
	tracecontext "github.com/wso2/identity-profile-resolver/internal/system/context"
	errors2 "github.com/wso2/identity-profile-resolver/internal/system/errors"
	"github.com/wso2/identity-profile-resolver/internal/system/utils"
)

type SchemaHandler struct {
	provider provider.SchemaAlignmentProviderInterface
}

func NewSchemaHandler() *SchemaHandler {

	return &SchemaHandler{provider: provider.NewSchemaAlignmentProvider()}
}

// NewSchemaHandlerWithProvider creates a handler over the given provider.
func NewSchemaHandlerWithProvider(p provider.SchemaAlignmentProviderInterface) *SchemaHandler {

	return &SchemaHandler{provider: p}
}

// DescribeSources handles schema preview requests
func (h *SchemaHandler) DescribeSources(w http.ResponseWriter, r *http.Request) {

	traceID := tracecontext.GetOrGenerateTraceID(r.Context())
	var request model.SchemaRequest
	if err := utils.DecodeJSONBody(r, &request, constants.SchemaResource, traceID); err != nil {
		utils.HandleError(w, err)
		return
	}

	schemas, err := h.provider.GetSchemaService().DescribeSources(request.Sources)
	if err != nil {
		utils.HandleError(w, errors2.StampTraceID(err, traceID))
		return
	}
	utils.WriteJSON(w, http.StatusOK, schemas)
}
