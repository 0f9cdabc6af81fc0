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
	"sort"
	"strings"
)

// Profile is one identity record, either the base profile being resolved or a candidate read from
// a data source. The field set is open; values are JSON compatible scalars or lists.
type Profile map[string]interface{}

// Fields returns the profile's field names in sorted order.
func (p Profile) Fields() []string {
	fields := make([]string, 0, len(p))
	for field := range p {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// Clone returns a shallow copy of the profile.
func (p Profile) Clone() Profile {
	clone := make(Profile, len(p))
	for field, value := range p {
		clone[field] = value
	}
	return clone
}

// HasValue reports whether the field is present and holds a non-empty value.
func (p Profile) HasValue(field string) bool {
	value, found := p[field]
	return found && !IsEmptyValue(value)
}

// Enrich sets the field only when the profile does not already hold a non-empty value for it.
// It reports whether the profile was changed.
func (p Profile) Enrich(field string, value interface{}) bool {
	if p.HasValue(field) {
		return false
	}
	p[field] = value
	return true
}

// IsEmptyValue reports whether a value counts as missing: nil, the empty string or an empty list.
func IsEmptyValue(value interface{}) bool {
	switch typed := value.(type) {
	case nil:
		return true
	case string:
		return typed == ""
	case []interface{}:
		return len(typed) == 0
	case []string:
		return len(typed) == 0
	default:
		return false
	}
}

// TrimValue trims surrounding whitespace from string values and returns other values unchanged.
func TrimValue(value interface{}) interface{} {
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s)
	}
	return value
}
