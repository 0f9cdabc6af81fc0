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

package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmptyValue(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected bool
	}{
		{"nil", nil, true},
		{"empty string", "", true},
		{"empty list", []interface{}{}, true},
		{"empty string list", []string{}, true},
		{"whitespace string", " ", false},
		{"string", "John", false},
		{"zero number", json.Number("0"), false},
		{"zero int", 0, false},
		{"false", false, false},
		{"list", []interface{}{"a"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsEmptyValue(tt.input))
		})
	}
}

func TestProfile_Enrich(t *testing.T) {
	p := Profile{"name": "John Smith", "email": "", "phones": []interface{}{}, "ssn": nil}

	assert.False(t, p.Enrich("name", "Johnny"))
	assert.True(t, p.Enrich("email", "john@example.com"))
	assert.True(t, p.Enrich("phones", []interface{}{"9999999999"}))
	assert.True(t, p.Enrich("ssn", "123-45-6789"))
	assert.True(t, p.Enrich("address", "New York"))

	assert.Equal(t, Profile{
		"name":    "John Smith",
		"email":   "john@example.com",
		"phones":  []interface{}{"9999999999"},
		"ssn":     "123-45-6789",
		"address": "New York",
	}, p)
}

func TestProfile_FieldsSortedAndClone(t *testing.T) {
	p := Profile{"name": "a", "dob": "b", "customer_id": "c"}
	assert.Equal(t, []string{"customer_id", "dob", "name"}, p.Fields())

	clone := p.Clone()
	clone["name"] = "changed"
	assert.Equal(t, "a", p["name"])
}

func TestTrimValue(t *testing.T) {
	assert.Equal(t, "John", TrimValue("  John \t"))
	assert.Equal(t, json.Number("42"), TrimValue(json.Number("42")))
	assert.Nil(t, TrimValue(nil))
}
