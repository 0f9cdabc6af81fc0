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

	"github.com/wso2/identity-profile-resolver/internal/data_source/provider"
	tracecontext "github.com/wso2/identity-profile-resolver/internal/system/context"
	errors2 "github.com/wso2/identity-profile-resolver/internal/system/errors"
	"github.com/wso2/identity-profile-resolver/internal/system/utils"
)

type DataSourceHandler struct {
	provider provider.DataSourceProviderInterface
}

func NewDataSourceHandler() *DataSourceHandler {

	return &DataSourceHandler{provider: provider.NewDataSourceProvider()}
}

// NewDataSourceHandlerWithProvider creates a handler over the given provider.
func NewDataSourceHandlerWithProvider(p provider.DataSourceProviderInterface) *DataSourceHandler {

	return &DataSourceHandler{provider: p}
}

// ListSources handles data source discovery requests
func (h *DataSourceHandler) ListSources(w http.ResponseWriter, r *http.Request) {

	listing, err := h.provider.GetDataSourceService().ListDataSources()
	if err != nil {
		utils.HandleError(w, errors2.StampTraceID(err, tracecontext.GetOrGenerateTraceID(r.Context())))
		return
	}
	utils.WriteJSON(w, http.StatusOK, listing)
}
