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

	dataSourceModel "github.com/wso2/identity-profile-resolver/internal/data_source/model"
	profileModel "github.com/wso2/identity-profile-resolver/internal/profile/model"
	schemaModel "github.com/wso2/identity-profile-resolver/internal/schema_alignment/model"
)

// ComparisonResult is the similarity of a candidate to the base profile.
type ComparisonResult struct {
	Score  float64 `json:"score"`
	Reason string  `json:"reason"`
}

// MatchResult is an accepted candidate. FullProfile and FieldMapping are only set by the detailed
// matching run, which also sets Detailed.
type MatchResult struct {
	Score        float64                  `json:"score"`
	Reason       string                   `json:"reason"`
	Source       string                   `json:"source"`
	Candidate    profileModel.Profile     `json:"candidate"`
	FullProfile  profileModel.Profile     `json:"full_profile,omitempty"`
	FieldMapping schemaModel.FieldMapping `json:"field_mapping,omitempty"`
	Detailed     bool                     `json:"-"`
}

type matchResultJSON struct {
	Score     float64              `json:"score"`
	Reason    string               `json:"reason"`
	Source    string               `json:"source"`
	Candidate profileModel.Profile `json:"candidate"`
}

type detailedMatchResultJSON struct {
	matchResultJSON
	FullProfile  profileModel.Profile     `json:"full_profile"`
	FieldMapping schemaModel.FieldMapping `json:"field_mapping"`
}

// MarshalJSON writes full_profile and field_mapping for every detailed result, as empty objects
// when the record or the mapping is empty, and leaves them out otherwise.
func (r MatchResult) MarshalJSON() ([]byte, error) {

	plain := matchResultJSON{
		Score:     r.Score,
		Reason:    r.Reason,
		Source:    r.Source,
		Candidate: nonNilProfile(r.Candidate),
	}
	if !r.Detailed {
		return json.Marshal(plain)
	}

	mapping := r.FieldMapping
	if mapping == nil {
		mapping = schemaModel.FieldMapping{}
	}
	return json.Marshal(detailedMatchResultJSON{
		matchResultJSON: plain,
		FullProfile:     nonNilProfile(r.FullProfile),
		FieldMapping:    mapping,
	})
}

func nonNilProfile(p profileModel.Profile) profileModel.Profile {
	if p == nil {
		return profileModel.Profile{}
	}
	return p
}

type MatchRequest struct {
	BaseProfile         profileModel.Profile               `json:"base_profile"`
	Sources             []dataSourceModel.SourceDescriptor `json:"sources"`
	Threshold           *float64                           `json:"threshold,omitempty"`
	IncludeFullProfiles bool                               `json:"include_full_profiles,omitempty"`
}

type MatchResponse struct {
	RankedResults   []MatchResult        `json:"ranked_results"`
	EnrichedProfile profileModel.Profile `json:"enriched_profile"`
	RawJSON         []MatchResult        `json:"raw_json"`
}
