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
	"database/sql"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dataSourceModel "github.com/wso2/identity-profile-resolver/internal/data_source/model"
	dataSourceService "github.com/wso2/identity-profile-resolver/internal/data_source/service"
	profileModel "github.com/wso2/identity-profile-resolver/internal/profile/model"
	schemaModel "github.com/wso2/identity-profile-resolver/internal/schema_alignment/model"
	dbProvider "github.com/wso2/identity-profile-resolver/internal/system/database/provider"
	errors2 "github.com/wso2/identity-profile-resolver/internal/system/errors"
)

// fakeSource is an in-memory data source that counts schema reads.
type fakeSource struct {
	name        string
	fields      []string
	profiles    []profileModel.Profile
	readErr     error
	schemaReads int
}

func (s *fakeSource) Name() string { return s.name }
func (s *fakeSource) Type() string { return "document" }

func (s *fakeSource) InferSchema() ([]string, error) {
	s.schemaReads++
	return s.fields, nil
}

func (s *fakeSource) GetProfiles() ([]profileModel.Profile, error) {
	if s.readErr != nil {
		return nil, s.readErr
	}
	return s.profiles, nil
}

var identityMapping = map[string]string{
	"name":        "name",
	"dob":         "dob",
	"email":       "email",
	"customer_id": "customer_id",
	"phone":       "phone",
	"full_name":   "name",
	"birthdate":   "dob",
}

func createCustomerTable(t *testing.T) *dataSourceService.RelationalSource {
	t.Helper()

	path := filepath.Join(t.TempDir(), "customers.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	for _, statement := range []string{
		`CREATE TABLE customers (full_name TEXT, birthdate TEXT, email TEXT, customer_id TEXT)`,
		`INSERT INTO customers VALUES ('John Smith', '1988-01-01', 'other@example.com', 'CUST1234')`,
	} {
		_, err := db.Exec(statement)
		require.NoError(t, err)
	}
	require.NoError(t, db.Close())

	dbClient, err := dbProvider.NewDBProvider().GetSQLiteDBClient(path)
	require.NoError(t, err)
	source := dataSourceService.NewRelationalSource(path, "customers", dbClient)
	t.Cleanup(func() { _ = source.Close() })
	return source
}

func TestMatch_ScenariosInSequence(t *testing.T) {
	generator := &stubGenerator{
		mapping: map[string]string{
			"name": "name", "dob": "dob", "email": "email", "customer_id": "customer_id", "phone": "phone",
			"full_name": "name", "birthdate": "dob",
		},
		score: scoreByName,
	}
	base := profileModel.Profile{"name": "John Smith", "dob": "1988-01-01", "email": "", "customer_id": "CUST1234"}

	tabular := dataSourceService.NewTabularSource("customers.csv",
		"name,dob,email,address\nJohn Smith,1988-01-01,john@example.com,12 Main St\n")
	document := dataSourceService.NewDocumentSource("profiles.json", `[
		{"name": "John Smith", "customer_id": "CUST1234", "phone": "9999999999"},
		{"name": "Alice", "customer_id": "CUST5555"}
	]`)
	relational := createCustomerTable(t)

	results, err := NewMatchingService(generator).Match(context.Background(), base,
		[]dataSourceModel.DataSourceInterface{tabular, document, relational}, 0.1)
	require.NoError(t, err)

	// Tabular: email is filled and the unmapped address is not added.
	assert.Equal(t, "john@example.com", base["email"])
	assert.NotContains(t, base, "address")

	// Document: phone is added and Alice is rejected.
	assert.Equal(t, "9999999999", base["phone"])
	for _, result := range results {
		assert.NotEqual(t, "Alice", result.Candidate["name"])
	}

	// Relational: the email enriched earlier is not overwritten.
	assert.Equal(t, "john@example.com", base["email"])

	require.Len(t, results, 3)
	assert.Equal(t, []string{"customers.csv", "profiles.json", relational.Name()},
		[]string{results[0].Source, results[1].Source, results[2].Source})
	for _, result := range results {
		assert.Equal(t, 0.9, result.Score)
		assert.Equal(t, "name matches", result.Reason)
		assert.Nil(t, result.FullProfile)
		assert.Nil(t, result.FieldMapping)
	}
	assert.Equal(t, profileModel.Profile{"name": "John Smith", "dob": "1988-01-01", "email": "other@example.com",
		"customer_id": "CUST1234"}, results[2].Candidate)
}

func TestMatch_AlignsAgainstEnrichedBase(t *testing.T) {
	generator := &stubGenerator{mapping: identityMapping, score: scoreByName}
	base := profileModel.Profile{"name": "John Smith"}
	first := &fakeSource{name: "first", fields: []string{"name", "phone"},
		profiles: []profileModel.Profile{{"name": "John Smith", "phone": "123"}}}
	second := &fakeSource{name: "second", fields: []string{"name"},
		profiles: []profileModel.Profile{{"name": "John Smith"}}}

	_, err := NewMatchingService(generator).Match(context.Background(), base,
		[]dataSourceModel.DataSourceInterface{first, second}, 0.5)
	require.NoError(t, err)

	require.Len(t, generator.baseFields, 2)
	assert.Equal(t, []string{"name"}, generator.baseFields[0])
	assert.Equal(t, []string{"name", "phone"}, generator.baseFields[1])
}

func TestMatch_Threshold(t *testing.T) {
	tests := []struct {
		name      string
		threshold float64
		expected  int
	}{
		{"zero threshold accepts every candidate", 0, 3},
		{"threshold equal to score accepts", 0.9, 1},
		{"threshold between scores", 0.5, 1},
		{"threshold above every score", 1.1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			generator := &stubGenerator{mapping: identityMapping, score: scoreByName}
			base := profileModel.Profile{"name": "John Smith", "dob": ""}
			source := &fakeSource{name: "people.json", fields: []string{"name", "dob"}, profiles: []profileModel.Profile{
				{"name": "Alice", "dob": "1970-01-01"},
				{"name": "John Smith", "dob": "1988-01-01"},
				{"name": "Bob"},
			}}

			results, err := NewMatchingService(generator).Match(context.Background(), base,
				[]dataSourceModel.DataSourceInterface{source}, tt.threshold)
			require.NoError(t, err)
			assert.Len(t, results, tt.expected)
			for _, result := range results {
				assert.GreaterOrEqual(t, result.Score, tt.threshold)
			}
			if tt.expected == 0 {
				assert.Equal(t, profileModel.Profile{"name": "John Smith", "dob": ""}, base)
			}
		})
	}
}

func TestMatch_NeverOverwritesNonEmptyFields(t *testing.T) {
	generator := &stubGenerator{mapping: identityMapping, score: func(profileModel.Profile) (float64, string) {
		return 1, "always"
	}}
	base := profileModel.Profile{"name": "John Smith", "email": "", "phone": nil, "dob": "1988-01-01"}
	source := &fakeSource{name: "people.json", fields: []string{"name", "email", "phone", "dob"},
		profiles: []profileModel.Profile{
			{"name": "Johnny", "email": " john@example.com ", "phone": "123", "dob": "1999-09-09"},
			{"name": "J. Smith", "email": "second@example.com", "phone": "456"},
		}}

	_, err := NewMatchingService(generator).Match(context.Background(), base,
		[]dataSourceModel.DataSourceInterface{source}, 0.5)
	require.NoError(t, err)

	assert.Equal(t, profileModel.Profile{
		"name":  "John Smith",
		"email": "john@example.com",
		"phone": "123",
		"dob":   "1988-01-01",
	}, base)
}

func TestMatch_OnlyMappedFieldsReachTheCandidate(t *testing.T) {
	generator := &stubGenerator{mapping: map[string]string{"full_name": "name"}, score: scoreByName}
	base := profileModel.Profile{"name": "John Smith"}
	source := &fakeSource{name: "people.csv", fields: []string{"full_name", "ssn"},
		profiles: []profileModel.Profile{{"full_name": "John Smith", "ssn": "123-45-6789"}}}

	results, err := NewMatchingService(generator).Match(context.Background(), base,
		[]dataSourceModel.DataSourceInterface{source}, 0.5)
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, profileModel.Profile{"name": "John Smith"}, results[0].Candidate)
	assert.NotContains(t, base, "ssn")
}

func TestMatch_EmptyCandidatesAreCompared(t *testing.T) {
	generator := &stubGenerator{mapping: map[string]string{}, score: func(profileModel.Profile) (float64, string) {
		return 0.6, "nothing to compare"
	}}
	base := profileModel.Profile{"name": "John Smith"}
	source := &fakeSource{name: "unrelated.json", fields: []string{"colour"},
		profiles: []profileModel.Profile{{"colour": "blue"}}}

	results, err := NewMatchingService(generator).Match(context.Background(), base,
		[]dataSourceModel.DataSourceInterface{source}, 0.5)
	require.NoError(t, err)

	require.Len(t, generator.candidates, 1)
	assert.Empty(t, generator.candidates[0])
	require.Len(t, results, 1)
	assert.Empty(t, results[0].Candidate)
	assert.Equal(t, profileModel.Profile{"name": "John Smith"}, base)
}

func TestMatch_StableRanking(t *testing.T) {
	scores := map[string]float64{"a": 0.7, "b": 0.9, "c": 0.7, "d": 0.9, "e": 0.7}
	generator := &stubGenerator{mapping: map[string]string{"id": "id"}, score: func(candidate profileModel.Profile) (float64, string) {
		id, _ := candidate["id"].(string)
		return scores[id], id
	}}
	base := profileModel.Profile{"id": "x"}
	first := &fakeSource{name: "first", fields: []string{"id"},
		profiles: []profileModel.Profile{{"id": "a"}, {"id": "b"}, {"id": "c"}}}
	second := &fakeSource{name: "second", fields: []string{"id"},
		profiles: []profileModel.Profile{{"id": "d"}, {"id": "e"}}}

	results, err := NewMatchingService(generator).Match(context.Background(), base,
		[]dataSourceModel.DataSourceInterface{first, second}, 0)
	require.NoError(t, err)

	order := make([]string, 0, len(results))
	for _, result := range results {
		order = append(order, result.Reason)
	}
	assert.Equal(t, []string{"b", "d", "a", "c", "e"}, order)
}

func TestMatch_SchemaIsDetectedOncePerSourceName(t *testing.T) {
	generator := &stubGenerator{mapping: identityMapping, score: scoreByName}
	base := profileModel.Profile{"name": "John Smith"}
	first := &fakeSource{name: "shared", fields: []string{"name"},
		profiles: []profileModel.Profile{{"name": "John Smith"}}}
	second := &fakeSource{name: "shared", fields: []string{"phone"},
		profiles: []profileModel.Profile{{"name": "John Smith", "phone": "123"}}}

	results, err := NewMatchingService(generator).Match(context.Background(), base,
		[]dataSourceModel.DataSourceInterface{first, second}, 0.5)
	require.NoError(t, err)

	assert.Equal(t, 1, first.schemaReads)
	assert.Equal(t, 0, second.schemaReads)
	// The second source is aligned with the first source's schema, so phone is never mapped.
	require.Len(t, results, 2)
	assert.NotContains(t, base, "phone")
}

func TestMatch_SchemaCacheDoesNotOutliveARun(t *testing.T) {
	generator := &stubGenerator{mapping: identityMapping, score: scoreByName}
	source := &fakeSource{name: "people.json", fields: []string{"name"},
		profiles: []profileModel.Profile{{"name": "John Smith"}}}
	matcher := NewMatchingService(generator)

	for i := 0; i < 2; i++ {
		_, err := matcher.Match(context.Background(), profileModel.Profile{"name": "John Smith"},
			[]dataSourceModel.DataSourceInterface{source}, 0.5)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, source.schemaReads)
}

func TestMatch_ReadFailureAbortsAndKeepsEnrichment(t *testing.T) {
	generator := &stubGenerator{mapping: identityMapping, score: scoreByName}
	base := profileModel.Profile{"name": "John Smith"}
	good := &fakeSource{name: "good", fields: []string{"name", "phone"},
		profiles: []profileModel.Profile{{"name": "John Smith", "phone": "123"}}}
	broken := &fakeSource{name: "broken", fields: []string{"name"}, readErr: errors.New("disk gone")}
	never := &fakeSource{name: "never", fields: []string{"name"}}

	results, err := NewMatchingService(generator).Match(context.Background(), base,
		[]dataSourceModel.DataSourceInterface{good, broken, never}, 0.5)
	require.Error(t, err)

	var serverError *errors2.ServerError
	require.True(t, errors.As(err, &serverError))
	assert.Equal(t, errors2.SOURCE_READ.Code, serverError.Code)
	assert.Contains(t, err.Error(), "broken")
	assert.Len(t, results, 1)
	assert.Equal(t, "123", base["phone"])
	assert.Equal(t, 0, never.schemaReads)
}

func TestMatchWithFullProfiles(t *testing.T) {
	generator := &stubGenerator{mapping: identityMapping, score: scoreByName}
	base := profileModel.Profile{"name": "John Smith", "dob": "1988-01-01"}
	record := profileModel.Profile{"full_name": "John Smith", "birthdate": "1988-01-01", "loyalty_tier": "gold"}
	source := &fakeSource{name: "crm.json", fields: []string{"full_name", "birthdate", "loyalty_tier"},
		profiles: []profileModel.Profile{record, {"full_name": "Alice"}}}

	results, err := NewMatchingService(generator).MatchWithFullProfiles(context.Background(), base,
		[]dataSourceModel.DataSourceInterface{source}, 0.5)
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, record, results[0].FullProfile)
	assert.Equal(t, schemaModel.FieldMapping{"full_name": "name", "birthdate": "dob"}, results[0].FieldMapping)
	assert.Equal(t, profileModel.Profile{"name": "John Smith", "dob": "1988-01-01"}, results[0].Candidate)
	assert.Equal(t, profileModel.Profile{"name": "John Smith", "dob": "1988-01-01"}, base)
}

func TestMatchWithFullProfiles_EmptyMappingKeepsDetailKeys(t *testing.T) {
	generator := &stubGenerator{mapping: map[string]string{}, score: func(profileModel.Profile) (float64, string) {
		return 0.6, "x"
	}}
	source := &fakeSource{name: "s.json", fields: []string{}, profiles: []profileModel.Profile{{}}}

	results, err := NewMatchingService(generator).MatchWithFullProfiles(context.Background(),
		profileModel.Profile{"name": "John Smith"}, []dataSourceModel.DataSourceInterface{source}, 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].Detailed)

	encoded, err := json.Marshal(results)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"score":0.6,"reason":"x","source":"s.json","candidate":{},"full_profile":{},"field_mapping":{}}]`,
		string(encoded))
}

func TestMatch_PlainResultsOmitDetailKeys(t *testing.T) {
	generator := &stubGenerator{mapping: identityMapping, score: scoreByName}
	source := &fakeSource{name: "crm.json", fields: []string{"name"},
		profiles: []profileModel.Profile{{"name": "John Smith"}}}

	results, err := NewMatchingService(generator).Match(context.Background(),
		profileModel.Profile{"name": "John Smith"}, []dataSourceModel.DataSourceInterface{source}, 0.5)
	require.NoError(t, err)

	encoded, err := json.Marshal(results)
	require.NoError(t, err)
	assert.NotContains(t, string(encoded), "full_profile")
	assert.NotContains(t, string(encoded), "field_mapping")
}

func TestNormalizeCandidate_LastTargetWinsOnCollision(t *testing.T) {
	record := profileModel.Profile{"first_name": "John", "given_name": "Johnny", "notes": "x"}
	mapping := schemaModel.FieldMapping{"first_name": "name", "given_name": "name"}

	assert.Equal(t, profileModel.Profile{"name": "Johnny"}, normalizeCandidate(record, mapping))
}
