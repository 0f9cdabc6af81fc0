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
	"sort"

	dataSourceModel "github.com/wso2/identity-profile-resolver/internal/data_source/model"
	profileModel "github.com/wso2/identity-profile-resolver/internal/profile/model"
	"github.com/wso2/identity-profile-resolver/internal/profile_matching/model"
	schemaModel "github.com/wso2/identity-profile-resolver/internal/schema_alignment/model"
	schemaService "github.com/wso2/identity-profile-resolver/internal/schema_alignment/service"
	"github.com/wso2/identity-profile-resolver/internal/system/client"
	tracecontext "github.com/wso2/identity-profile-resolver/internal/system/context"
	errors2 "github.com/wso2/identity-profile-resolver/internal/system/errors"
	"github.com/wso2/identity-profile-resolver/internal/system/log"
)

// MatchingServiceInterface matches a base profile against data sources and enriches it in place.
type MatchingServiceInterface interface {
	Match(ctx context.Context, base profileModel.Profile, sources []dataSourceModel.DataSourceInterface,
		threshold float64) ([]model.MatchResult, error)
	MatchWithFullProfiles(ctx context.Context, base profileModel.Profile,
		sources []dataSourceModel.DataSourceInterface, threshold float64) ([]model.MatchResult, error)
}

// MatchingService walks the sources in order, one record at a time.
type MatchingService struct {
	generator  client.TextGeneratorInterface
	comparator ProfileComparatorInterface
}

// NewMatchingService creates a matching service whose aligner and comparator share the generator.
func NewMatchingService(generator client.TextGeneratorInterface) *MatchingService {

	return &MatchingService{
		generator:  generator,
		comparator: NewProfileComparator(generator),
	}
}

// Match compares every record of every source with the base profile. Each record is first
// renamed to the base profile's fields using a mapping computed against the base profile as it
// stands when the source is reached, so fields added by earlier sources take part in aligning
// later ones. A candidate scoring at or above the threshold fills every base field that is
// missing or empty and is returned. Results are ordered by descending score; equal scores keep
// the order in which they were found.
func (s *MatchingService) Match(ctx context.Context, base profileModel.Profile,
	sources []dataSourceModel.DataSourceInterface, threshold float64) ([]model.MatchResult, error) {

	return s.match(ctx, base, sources, threshold, false)
}

// MatchWithFullProfiles behaves like Match and also returns, with each result, the record as read
// from the source and the field mapping that was applied to it.
func (s *MatchingService) MatchWithFullProfiles(ctx context.Context, base profileModel.Profile,
	sources []dataSourceModel.DataSourceInterface, threshold float64) ([]model.MatchResult, error) {

	return s.match(ctx, base, sources, threshold, true)
}

func (s *MatchingService) match(ctx context.Context, base profileModel.Profile,
	sources []dataSourceModel.DataSourceInterface, threshold float64, detailed bool) ([]model.MatchResult, error) {

	logger := log.GetLogger().With(log.String("trace_id", tracecontext.GetTraceID(ctx)))
	aligner := schemaService.NewSchemaAligner(s.generator)
	results := []model.MatchResult{}

	for _, source := range sources {
		targetFields, err := aligner.Detect(source)
		if err != nil {
			return sortResults(results), errors2.NewServerError(errors2.SOURCE_READ,
				fmt.Errorf("failed to detect schema of data source %s: %w", source.Name(), err))
		}
		mapping := aligner.Align(ctx, base.Fields(), targetFields)
		logger.Debug(fmt.Sprintf("Aligned data source: %s", source.Name()), log.Any("mapping", mapping))

		records, err := source.GetProfiles()
		if err != nil {
			return sortResults(results), errors2.NewServerError(errors2.SOURCE_READ,
				fmt.Errorf("failed to read profiles of data source %s: %w", source.Name(), err))
		}
		logger.Debug(fmt.Sprintf("Read profiles from data source: %s", source.Name()),
			log.Int("records", len(records)))

		for _, record := range records {
			candidate := normalizeCandidate(record, mapping)
			comparison := s.comparator.Compare(ctx, base, candidate)
			if comparison.Score < threshold {
				continue
			}

			logger.Info(fmt.Sprintf("Matched a profile from data source: %s", source.Name()),
				log.Float("score", comparison.Score))
			enrich(ctx, logger, base, candidate, source.Name())

			result := model.MatchResult{
				Score:     comparison.Score,
				Reason:    comparison.Reason,
				Source:    source.Name(),
				Candidate: candidate,
			}
			if detailed {
				result.Detailed = true
				result.FullProfile = record
				result.FieldMapping = mapping
			}
			results = append(results, result)
		}
	}

	return sortResults(results), nil
}

// normalizeCandidate renames a record's fields through the mapping and drops unmapped fields.
// Fields are visited in sorted order, so when two fields map to the same base field the value of
// the lexically last one is kept.
func normalizeCandidate(record profileModel.Profile, mapping schemaModel.FieldMapping) profileModel.Profile {

	candidate := profileModel.Profile{}
	for _, field := range record.Fields() {
		baseField := mapping[field]
		if baseField == "" {
			continue
		}
		candidate[baseField] = profileModel.TrimValue(record[field])
	}
	return candidate
}

func enrich(ctx context.Context, logger *log.Logger, base, candidate profileModel.Profile, sourceName string) {

	for _, field := range candidate.Fields() {
		if !base.Enrich(field, candidate[field]) {
			continue
		}
		logger.Debug(fmt.Sprintf("Enriched base profile field: %s from data source: %s", field, sourceName))
		logger.Audit(log.AuditEvent{
			InitiatorID:   sourceName,
			InitiatorType: log.InitiatorTypeSystem,
			TargetID:      field,
			TargetType:    log.TargetTypeProfileField,
			ActionID:      log.ActionProfileEnrichment,
			TraceID:       tracecontext.GetTraceID(ctx),
		})
	}
}

func sortResults(results []model.MatchResult) []model.MatchResult {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}
