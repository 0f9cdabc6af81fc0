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

package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/wso2/identity-profile-resolver/internal/system/constants"
	tracecontext "github.com/wso2/identity-profile-resolver/internal/system/context"
	customerrors "github.com/wso2/identity-profile-resolver/internal/system/errors"
	"github.com/wso2/identity-profile-resolver/internal/system/log"
)

// HandleError sends an HTTP error response based on the provided error
func HandleError(w http.ResponseWriter, err error) {
	var clientError *customerrors.ClientError
	w.Header().Set("Content-Type", "application/json")
	if ok := errors.As(err, &clientError); ok {
		w.WriteHeader(clientError.StatusCode)
		_ = json.NewEncoder(w).Encode(struct {
			Code        string `json:"code"`
			Message     string `json:"message"`
			Description string `json:"description"`
			TraceID     string `json:"trace_id,omitempty"`
		}{
			Code:        clientError.ErrorMessage.Code,
			Message:     clientError.ErrorMessage.Message,
			Description: clientError.ErrorMessage.Description,
			TraceID:     clientError.ErrorMessage.TraceID,
		})
		return
	}

	logger := log.GetLogger()
	body := map[string]string{
		"error": "Internal server error",
	}
	var serverError *customerrors.ServerError
	if ok := errors.As(err, &serverError); ok {
		logger.Error(err.Error(), log.String("trace_id", serverError.TraceID))
		if serverError.TraceID != "" {
			body["trace_id"] = serverError.TraceID
		}
	} else {
		logger.Error("Unexpected error while serving request", log.Error(err))
	}
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteJSON writes the payload with the given status code.
func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// WithTraceID stamps every request with a trace id, taken from the X-Trace-Id header when the
// caller supplies one.
func WithTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(constants.TraceIDHeader)
		if traceID == "" {
			traceID = tracecontext.GenerateTraceID()
		}
		w.Header().Set(constants.TraceIDHeader, traceID)
		next.ServeHTTP(w, r.WithContext(tracecontext.WithTraceID(r.Context(), traceID)))
	})
}

// EnableCORS allows the bundled web front end to be served from another origin.
func EnableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Length, "+constants.TraceIDHeader)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
