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
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	profileModel "github.com/wso2/identity-profile-resolver/internal/profile/model"
	"github.com/wso2/identity-profile-resolver/internal/schema_alignment/model"
	"github.com/wso2/identity-profile-resolver/internal/system/client"
	"github.com/wso2/identity-profile-resolver/internal/system/log"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

// countingSource is a data source whose schema can change between calls.
type countingSource struct {
	name   string
	fields []string
	err    error
	calls  int
}

func (s *countingSource) Name() string { return s.name }
func (s *countingSource) Type() string { return "tabular" }

func (s *countingSource) InferSchema() ([]string, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.fields, nil
}

func (s *countingSource) GetProfiles() ([]profileModel.Profile, error) { return nil, nil }

func fixedGenerator(response string) client.TextGeneratorInterface {
	return client.TextGeneratorFunc(func(ctx context.Context, prompt string) string {
		return response
	})
}

func TestDetect_CachesByName(t *testing.T) {
	aligner := NewSchemaAligner(fixedGenerator(""))
	source := &countingSource{name: "customers.csv", fields: []string{"full_name", "birthdate"}}

	first, err := aligner.Detect(source)
	require.NoError(t, err)

	source.fields = []string{"changed"}
	second, err := aligner.Detect(source)
	require.NoError(t, err)

	assert.Equal(t, []string{"full_name", "birthdate"}, first)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, source.calls)

	// A different source sharing the name gets the remembered schema.
	other := &countingSource{name: "customers.csv", fields: []string{"other"}}
	third, err := aligner.Detect(other)
	require.NoError(t, err)
	assert.Equal(t, first, third)
	assert.Equal(t, 0, other.calls)
}

func TestDetect_FailureIsNotCached(t *testing.T) {
	aligner := NewSchemaAligner(fixedGenerator(""))
	source := &countingSource{name: "broken.json", err: errors.New("unreadable")}

	_, err := aligner.Detect(source)
	assert.Error(t, err)

	source.err = nil
	source.fields = []string{"name"}
	fields, err := aligner.Detect(source)
	require.NoError(t, err)
	assert.Equal(t, []string{"name"}, fields)
	assert.Equal(t, 2, source.calls)
}

func TestAlign_ParsesResponses(t *testing.T) {
	tests := []struct {
		name     string
		response string
		expected model.FieldMapping
	}{
		{
			name:     "plain json",
			response: `{"full_name": "name", "birthdate": "dob"}`,
			expected: model.FieldMapping{"full_name": "name", "birthdate": "dob"},
		},
		{
			name:     "fenced json",
			response: "Here you go:\n```json\n{\"mail\": \"email\"}\n```",
			expected: model.FieldMapping{"mail": "email"},
		},
		{
			name:     "single quoted literal",
			response: `{'full_name': 'name'}`,
			expected: model.FieldMapping{"full_name": "name"},
		},
		{
			name:     "python None for an unmapped field",
			response: `{'full_name': 'name', 'mail': None, 'birthdate': 'dob'}`,
			expected: model.FieldMapping{"full_name": "name", "birthdate": "dob"},
		},
		{
			name:     "python booleans dropped",
			response: `{'full_name': 'name', 'mail': False}`,
			expected: model.FieldMapping{"full_name": "name"},
		},
		{
			name:     "non string and empty values dropped",
			response: `{"full_name": "name", "visits": 3, "notes": null, "tags": ["a"], "extra": "  "}`,
			expected: model.FieldMapping{"full_name": "name"},
		},
		{name: "empty response", response: "", expected: model.FieldMapping{}},
		{name: "prose", response: "I could not map these fields.", expected: model.FieldMapping{}},
		{name: "json list", response: `["name"]`, expected: model.FieldMapping{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			aligner := NewSchemaAligner(fixedGenerator(tt.response))
			mapping := aligner.Align(context.Background(), []string{"name", "dob", "email"},
				[]string{"full_name", "birthdate", "mail"})
			assert.Equal(t, tt.expected, mapping)
		})
	}
}

func TestAlign_PromptListsBothSchemas(t *testing.T) {
	var captured string
	generator := client.TextGeneratorFunc(func(ctx context.Context, prompt string) string {
		captured = prompt
		return "{}"
	})

	mapping := NewSchemaAligner(generator).Align(context.Background(), []string{"name", "dob"},
		[]string{"full_name", "birthdate"})

	assert.Empty(t, mapping)
	assert.True(t, strings.Contains(captured, `BASE schema fields: ["name","dob"]`))
	assert.True(t, strings.Contains(captured, `TARGET schema fields: ["full_name","birthdate"]`))
}

func TestAlign_EmptyFieldLists(t *testing.T) {
	var captured string
	generator := client.TextGeneratorFunc(func(ctx context.Context, prompt string) string {
		captured = prompt
		return ""
	})

	mapping := NewSchemaAligner(generator).Align(context.Background(), nil, nil)
	assert.Empty(t, mapping)
	assert.Contains(t, captured, "BASE schema fields: []")
}
