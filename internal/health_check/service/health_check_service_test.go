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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wso2/identity-profile-resolver/internal/system/database/client"
)

type fakeDBProvider struct {
	err error
}

func (p fakeDBProvider) GetSQLiteDBClient(path string) (client.DBClientInterface, error) {
	return nil, p.err
}

func (p fakeDBProvider) GetDataSourceDBClient() (client.DBClientInterface, error) {
	return nil, p.err
}

func TestCheckReadiness(t *testing.T) {
	available := func() bool { return true }
	unavailable := func() bool { return false }

	tests := []struct {
		name      string
		service   *HealthCheckService
		expectErr string
	}{
		{"ready without datasource", NewHealthCheckService(fakeDBProvider{}, false, available), ""},
		{"text generator missing", NewHealthCheckService(fakeDBProvider{}, false, unavailable), "text generator"},
		{"datasource unreachable", NewHealthCheckService(fakeDBProvider{err: errors.New("refused")}, true, available),
			"refused"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.service.CheckReadiness()
			if tt.expectErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.expectErr)
		})
	}
}
