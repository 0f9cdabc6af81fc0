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
	"strings"

	profileModel "github.com/wso2/identity-profile-resolver/internal/profile/model"
	"github.com/wso2/identity-profile-resolver/internal/profile_extraction/model"
	"github.com/wso2/identity-profile-resolver/internal/system/client"
	tracecontext "github.com/wso2/identity-profile-resolver/internal/system/context"
	"github.com/wso2/identity-profile-resolver/internal/system/log"
	"github.com/wso2/identity-profile-resolver/internal/system/utils"
)

const extractionPrompt = `You are an information extraction assistant that turns free text about a person into
profile data.

Extract every piece of profile information in the input text into a single flat JSON object.

Supported fields and the names they are also known by:
%s

Input text: %q

Rules:
1. Only extract information the text states explicitly. Never guess or invent values.
2. Use the standard field names: %s.
3. Write dates in one consistent format (YYYY-MM-DD) where possible.
4. Trim and normalize values.
5. When a field appears more than once, keep the most complete value.

Example:
{"name": "John Doe", "dob": "1990-01-15", "phone": "9999999999", "email": "john@example.com", "address": "New York"}

Respond with the JSON object only, without explanations or markdown.`

// ProfileExtractorInterface turns free text into a profile.
type ProfileExtractorInterface interface {
	ExtractProfile(ctx context.Context, query string) profileModel.Profile
}

// ProfileExtractor extracts profiles with the text generator.
type ProfileExtractor struct {
	generator client.TextGeneratorInterface
	synonyms  map[string]string
}

// NewProfileExtractor creates an extractor over the supported field vocabulary.
func NewProfileExtractor(generator client.TextGeneratorInterface) *ProfileExtractor {

	synonyms := map[string]string{}
	for _, field := range model.SupportedFields {
		for _, synonym := range field.Synonyms {
			synonyms[normalizeFieldName(synonym)] = field.Name
		}
	}
	return &ProfileExtractor{generator: generator, synonyms: synonyms}
}

// ExtractProfile returns the fields found in the query under their standard names. Fields outside
// the vocabulary are kept under their normalized names. An unreadable answer gives an empty profile.
func (e *ProfileExtractor) ExtractProfile(ctx context.Context, query string) profileModel.Profile {

	logger := log.GetLogger()
	response := e.generator.Generate(ctx, buildExtractionPrompt(query))

	parsed, keys, ok := utils.ExtractOrderedJSONObject(response)
	if !ok {
		start, end := strings.Index(response, "{"), strings.LastIndex(response, "}")
		if start >= 0 && end > start {
			parsed, keys, ok = utils.ExtractOrderedJSONObject(response[start : end+1])
		}
	}
	if !ok {
		logger.Warn("Unable to read a profile from the text generator response",
			log.String("response", response))
		return profileModel.Profile{}
	}

	// Keys are visited in response order, so the last of several synonyms for one field wins.
	profile := profileModel.Profile{}
	for _, key := range keys {
		value := parsed[key]
		if isBlank(value) {
			continue
		}
		if s, isString := value.(string); isString {
			value = trimQuotes(strings.TrimSpace(s))
		}
		profile[e.standardFieldName(key)] = value
	}

	traceID := tracecontext.GetTraceID(ctx)
	logger.Audit(log.AuditEvent{
		InitiatorID:   traceID,
		InitiatorType: log.InitiatorTypeUser,
		TargetType:    log.TargetTypeProfile,
		ActionID:      log.ActionProfileExtraction,
		TraceID:       traceID,
		Data:          map[string]interface{}{"fields": profile.Fields()},
	})
	return profile
}

func (e *ProfileExtractor) standardFieldName(key string) string {
	name := normalizeFieldName(key)
	if standard, ok := e.synonyms[name]; ok {
		return standard
	}
	return name
}

func buildExtractionPrompt(query string) string {
	lines := make([]string, 0, len(model.SupportedFields))
	names := make([]string, 0, len(model.SupportedFields))
	for _, field := range model.SupportedFields {
		lines = append(lines, fmt.Sprintf("- %s: %s", field.Name, strings.Join(field.Synonyms, ", ")))
		names = append(names, field.Name)
	}
	return fmt.Sprintf(extractionPrompt, strings.Join(lines, "\n"), query, strings.Join(names, ", "))
}

func normalizeFieldName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

// isBlank reports whether an extracted value carries no information: null, false, zero, or a
// string, list or object with nothing in it.
func isBlank(value interface{}) bool {
	switch typed := value.(type) {
	case nil:
		return true
	case bool:
		return !typed
	case string:
		return strings.TrimSpace(typed) == ""
	case []interface{}:
		return len(typed) == 0
	case map[string]interface{}:
		return len(typed) == 0
	default:
		number, isNumber := utils.ToFloat64(value)
		return isNumber && number == 0
	}
}

func trimQuotes(value string) string {
	if len(value) >= 2 && strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`) {
		return value[1 : len(value)-1]
	}
	return value
}
