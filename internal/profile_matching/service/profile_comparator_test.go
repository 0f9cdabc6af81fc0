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
	"testing"

	"github.com/stretchr/testify/assert"

	profileModel "github.com/wso2/identity-profile-resolver/internal/profile/model"
	"github.com/wso2/identity-profile-resolver/internal/profile_matching/model"
	"github.com/wso2/identity-profile-resolver/internal/system/client"
)

func TestCompare_ParsesResponses(t *testing.T) {
	tests := []struct {
		name     string
		response string
		expected model.ComparisonResult
	}{
		{
			name:     "plain json",
			response: `{"score": 0.85, "reason": "same name and dob"}`,
			expected: model.ComparisonResult{Score: 0.85, Reason: "same name and dob"},
		},
		{
			name:     "fenced json",
			response: "```json\n{\"score\": 0.4, \"reason\": \"partial\"}\n```",
			expected: model.ComparisonResult{Score: 0.4, Reason: "partial"},
		},
		{
			name:     "single quoted literal",
			response: `{'score': 0.7, 'reason': 'close'}`,
			expected: model.ComparisonResult{Score: 0.7, Reason: "close"},
		},
		{
			name:     "escaped quote in single quoted reason",
			response: `{'score': 0.9, 'reason': 'It\'s the same person'}`,
			expected: model.ComparisonResult{Score: 0.9, Reason: "It's the same person"},
		},
		{
			name:     "python None score",
			response: `{'score': None, 'reason': 'no data'}`,
			expected: model.ComparisonResult{Score: 0, Reason: "no data"},
		},
		{
			name:     "numeric string score",
			response: `{"score": "0.6", "reason": "ok"}`,
			expected: model.ComparisonResult{Score: 0.6, Reason: "ok"},
		},
		{
			name:     "score above range",
			response: `{"score": 7, "reason": "sure"}`,
			expected: model.ComparisonResult{Score: 1, Reason: "sure"},
		},
		{
			name:     "negative score",
			response: `{"score": -0.5, "reason": "no"}`,
			expected: model.ComparisonResult{Score: 0, Reason: "no"},
		},
		{
			name:     "missing score",
			response: `{"reason": "unsure"}`,
			expected: model.ComparisonResult{Score: 0, Reason: "unsure"},
		},
		{
			name:     "missing reason keeps raw response",
			response: `{"score": 0.3}`,
			expected: model.ComparisonResult{Score: 0.3, Reason: `{"score": 0.3}`},
		},
		{
			name:     "prose",
			response: "These look like the same person.",
			expected: model.ComparisonResult{Score: 0, Reason: "These look like the same person."},
		},
		{
			name:     "empty response",
			response: "",
			expected: model.ComparisonResult{Score: 0, Reason: ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			generator := client.TextGeneratorFunc(func(ctx context.Context, prompt string) string {
				return tt.response
			})
			result := NewProfileComparator(generator).Compare(context.Background(),
				profileModel.Profile{"name": "John Smith"}, profileModel.Profile{"name": "John Smith"})
			assert.Equal(t, tt.expected.Reason, result.Reason)
			assert.InDelta(t, tt.expected.Score, result.Score, 1e-9)
		})
	}
}

func TestCompare_PromptEmbedsBothProfiles(t *testing.T) {
	var captured string
	generator := client.TextGeneratorFunc(func(ctx context.Context, prompt string) string {
		captured = prompt
		return `{"score": 1, "reason": "same"}`
	})

	NewProfileComparator(generator).Compare(context.Background(),
		profileModel.Profile{"name": "John Smith", "dob": "1988-01-01"},
		profileModel.Profile{"email": "john@example.com"})

	assert.Contains(t, captured, `"dob": "1988-01-01"`)
	assert.Contains(t, captured, `"email": "john@example.com"`)
	assert.Contains(t, captured, "date of birth")
}
