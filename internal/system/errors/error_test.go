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

package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStampTraceID(t *testing.T) {
	clientErr := NewClientError(BAD_REQUEST, http.StatusBadRequest)
	StampTraceID(clientErr, "trace-1")
	assert.Equal(t, "trace-1", clientErr.TraceID)

	stamped := NewClientErrorWithTraceID(BAD_REQUEST, http.StatusBadRequest, "first-trace")
	StampTraceID(stamped, "trace-2")
	assert.Equal(t, "first-trace", stamped.TraceID)

	serverErr := NewServerError(SOURCE_READ, stderrors.New("disk gone"))
	wrapped := fmt.Errorf("matching failed: %w", serverErr)
	assert.Same(t, wrapped, StampTraceID(wrapped, "trace-3"))
	assert.Equal(t, "trace-3", serverErr.TraceID)
}

func TestServerError_Unwrap(t *testing.T) {
	cause := stderrors.New("disk gone")
	err := NewServerError(SOURCE_READ, cause)

	assert.True(t, stderrors.Is(err, cause))
	assert.Contains(t, err.Error(), SOURCE_READ.Code)
	assert.Contains(t, err.Error(), "disk gone")
}
