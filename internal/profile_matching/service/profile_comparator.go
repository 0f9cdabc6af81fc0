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
	"encoding/json"
	"fmt"
	"math"
	"strings"

	profileModel "github.com/wso2/identity-profile-resolver/internal/profile/model"
	"github.com/wso2/identity-profile-resolver/internal/profile_matching/model"
	"github.com/wso2/identity-profile-resolver/internal/system/client"
	"github.com/wso2/identity-profile-resolver/internal/system/log"
	"github.com/wso2/identity-profile-resolver/internal/system/utils"
)

const comparisonPrompt = `You are an identity resolution expert deciding whether two records describe the same person.

Base profile:
%s

Candidate profile:
%s

Give an exact match on both name and date of birth a heavy weight. A field missing from either
record lowers the score only slightly unless it is critical to identity. Treat near matches such
as email variants or spelling variants of a name as partial evidence.

Respond with JSON only, in this form:
{"score": <number between 0 and 1>, "reason": "<short explanation>"}`

// ProfileComparatorInterface scores how likely a candidate describes the same identity as the base.
type ProfileComparatorInterface interface {
	Compare(ctx context.Context, base, candidate profileModel.Profile) model.ComparisonResult
}

// ProfileComparator scores candidates with the text generator.
type ProfileComparator struct {
	generator client.TextGeneratorInterface
}

// NewProfileComparator creates a comparator backed by the given text generator.
func NewProfileComparator(generator client.TextGeneratorInterface) *ProfileComparator {

	return &ProfileComparator{generator: generator}
}

// Compare never fails. An answer that cannot be read scores 0 with the raw answer as the reason.
func (c *ProfileComparator) Compare(ctx context.Context, base, candidate profileModel.Profile) model.ComparisonResult {

	prompt := fmt.Sprintf(comparisonPrompt, marshalProfile(base), marshalProfile(candidate))
	response := c.generator.Generate(ctx, prompt)

	parsed, ok := utils.ExtractJSONObject(response)
	if !ok {
		log.GetLogger().Debug("Unable to read comparison from the text generator response",
			log.String("response", response))
		return model.ComparisonResult{Score: 0, Reason: response}
	}

	score, _ := utils.ToFloat64(parsed["score"])
	reason, isString := parsed["reason"].(string)
	if !isString {
		reason = response
	}
	return model.ComparisonResult{Score: clampScore(score), Reason: reason}
}

func clampScore(score float64) float64 {
	switch {
	case math.IsNaN(score):
		return 0
	case score < 0:
		return 0
	case score > 1:
		return 1
	default:
		return score
	}
}

func marshalProfile(profile profileModel.Profile) string {
	if profile == nil {
		profile = profileModel.Profile{}
	}
	encoded, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return strings.TrimSpace(fmt.Sprint(profile))
	}
	return string(encoded)
}
