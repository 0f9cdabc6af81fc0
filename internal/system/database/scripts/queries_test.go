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

package scripts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectAllRows(t *testing.T) {
	query, err := SelectAllRows("sqlite", "customers")
	require.NoError(t, err)
	assert.Equal(t, `SELECT * FROM "customers"`, query)
}

func TestSelectNoRows_QuotesEmbeddedQuotes(t *testing.T) {
	query, err := SelectNoRows("postgres", `odd"name`)
	require.NoError(t, err)
	assert.Equal(t, `SELECT * FROM "odd""name" LIMIT 0`, query)
}

func TestTableQuery_Errors(t *testing.T) {
	_, err := SelectAllRows("mysql", "customers")
	assert.Error(t, err)

	_, err = SelectAllRows("sqlite", "  ")
	assert.Error(t, err)
}
