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
	"fmt"
	"math"
	"net/http"

	dataSourceService "github.com/wso2/identity-profile-resolver/internal/data_source/service"
	"github.com/wso2/identity-profile-resolver/internal/profile_matching/model"
	tracecontext "github.com/wso2/identity-profile-resolver/internal/system/context"
	errors2 "github.com/wso2/identity-profile-resolver/internal/system/errors"
	"github.com/wso2/identity-profile-resolver/internal/system/log"
)

// ProfileResolutionServiceInterface serves a match request end to end.
type ProfileResolutionServiceInterface interface {
	ResolveProfile(ctx context.Context, request model.MatchRequest) (*model.MatchResponse, error)
}

// ProfileResolutionService builds the requested sources and runs the matching service over them.
type ProfileResolutionService struct {
	dataSources      dataSourceService.DataSourceServiceInterface
	matcher          MatchingServiceInterface
	defaultThreshold float64
}

// NewProfileResolutionService creates a resolution service. The default threshold applies to
// requests that do not carry one.
func NewProfileResolutionService(dataSources dataSourceService.DataSourceServiceInterface,
	matcher MatchingServiceInterface, defaultThreshold float64) *ProfileResolutionService {

	return &ProfileResolutionService{
		dataSources:      dataSources,
		matcher:          matcher,
		defaultThreshold: defaultThreshold,
	}
}

// ResolveProfile enriches the request's base profile and returns it with the ranked matches.
func (s *ProfileResolutionService) ResolveProfile(ctx context.Context, request model.MatchRequest) (
	*model.MatchResponse, error) {

	traceID := tracecontext.GetTraceID(ctx)
	if request.BaseProfile == nil {
		return nil, errors2.NewClientErrorWithTraceID(errors2.BASE_PROFILE_REQUIRED, http.StatusBadRequest, traceID)
	}

	threshold := s.defaultThreshold
	if request.Threshold != nil {
		threshold = *request.Threshold
		if math.IsNaN(threshold) || threshold < 0 || threshold > 1 {
			return nil, errors2.NewClientErrorWithTraceID(errors2.INVALID_THRESHOLD.WithDescription(
				fmt.Sprintf("Threshold must be between 0 and 1, got %v.", threshold)),
				http.StatusBadRequest, traceID)
		}
	}

	sources, release, err := s.dataSources.BuildDataSources(request.Sources)
	if err != nil {
		return nil, err
	}
	defer release()

	// The request's profile is left as received.
	base := request.BaseProfile.Clone()
	var results []model.MatchResult
	if request.IncludeFullProfiles {
		results, err = s.matcher.MatchWithFullProfiles(ctx, base, sources, threshold)
	} else {
		results, err = s.matcher.Match(ctx, base, sources, threshold)
	}
	if err != nil {
		return nil, err
	}

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorID:   traceID,
		InitiatorType: log.InitiatorTypeUser,
		TargetType:    log.TargetTypeProfile,
		ActionID:      log.ActionProfileMatch,
		TraceID:       traceID,
		Data:          map[string]int{"sources": len(sources), "matches": len(results)},
	})

	return &model.MatchResponse{
		RankedResults:   results,
		EnrichedProfile: base,
		RawJSON:         results,
	}, nil
}
