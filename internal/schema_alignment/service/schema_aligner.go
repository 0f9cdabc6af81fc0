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
	"strings"

	dataSourceModel "github.com/wso2/identity-profile-resolver/internal/data_source/model"
	"github.com/wso2/identity-profile-resolver/internal/schema_alignment/model"
	"github.com/wso2/identity-profile-resolver/internal/system/cache"
	"github.com/wso2/identity-profile-resolver/internal/system/client"
	"github.com/wso2/identity-profile-resolver/internal/system/log"
	"github.com/wso2/identity-profile-resolver/internal/system/utils"
)

const alignmentPrompt = `You are an expert data engineer reconciling identity records.

Map each field of the TARGET schema to the field of the BASE schema that holds the same kind of
information. Match on meaning rather than spelling: consider synonyms, abbreviations and common
domain naming, for example "dob" and "birth_date", or "full_name" and "name".

BASE schema fields: %s
TARGET schema fields: %s

Leave out TARGET fields that have no counterpart in the BASE schema and do not list BASE fields
that nothing maps to.

Respond with a JSON object only, whose keys are TARGET fields and whose values are BASE fields:
{"target_field": "base_field"}`

// SchemaAlignerInterface detects source schemas and aligns them to a base profile's fields.
type SchemaAlignerInterface interface {
	Detect(source dataSourceModel.DataSourceInterface) ([]string, error)
	Align(ctx context.Context, baseFields, targetFields []string) model.FieldMapping
}

// SchemaAligner keeps the detected schema of every source it has seen, keyed by source name.
type SchemaAligner struct {
	generator client.TextGeneratorInterface
	schemas   *cache.Cache
}

// NewSchemaAligner creates an aligner with an empty schema cache.
func NewSchemaAligner(generator client.TextGeneratorInterface) *SchemaAligner {

	return &SchemaAligner{
		generator: generator,
		schemas:   cache.NewCache(0),
	}
}

// Detect returns the source's schema. Only the first call for a source name reads the source;
// later calls with the same name return the remembered schema even if the source has changed.
func (a *SchemaAligner) Detect(source dataSourceModel.DataSourceInterface) ([]string, error) {

	if cached, found := a.schemas.Get(source.Name()); found {
		return cached.([]string), nil
	}

	fields, err := source.InferSchema()
	if err != nil {
		return nil, err
	}
	log.GetLogger().Debug(fmt.Sprintf("Detected schema of data source: %s", source.Name()),
		log.Any("fields", fields))
	a.schemas.Set(source.Name(), fields)
	return fields, nil
}

// Align asks the text generator which target fields correspond to which base fields. An
// unavailable generator or an unreadable answer gives an empty mapping.
func (a *SchemaAligner) Align(ctx context.Context, baseFields, targetFields []string) model.FieldMapping {

	logger := log.GetLogger()
	prompt := fmt.Sprintf(alignmentPrompt, formatFields(baseFields), formatFields(targetFields))
	response := a.generator.Generate(ctx, prompt)

	mapping := model.FieldMapping{}
	parsed, ok := utils.ExtractJSONObject(response)
	if !ok {
		if strings.TrimSpace(response) != "" {
			logger.Warn("Unable to read field mapping from the text generator response",
				log.String("response", response))
		}
		return mapping
	}

	for target, base := range parsed {
		baseField, isString := base.(string)
		baseField = strings.TrimSpace(baseField)
		if !isString || baseField == "" {
			continue
		}
		mapping[target] = baseField
	}
	logger.Debug("Aligned schema fields", log.Any("mapping", mapping))
	return mapping
}

func formatFields(fields []string) string {
	if fields == nil {
		fields = []string{}
	}
	encoded, err := json.Marshal(fields)
	if err != nil {
		return fmt.Sprint(fields)
	}
	return string(encoded)
}
