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
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	profileModel "github.com/wso2/identity-profile-resolver/internal/profile/model"
	"github.com/wso2/identity-profile-resolver/internal/system/constants"
)

// TabularSource reads profiles from CSV text. The first row is the header.
type TabularSource struct {
	name    string
	content string
}

// NewTabularSource creates a tabular source over the given CSV text.
func NewTabularSource(name, content string) *TabularSource {

	return &TabularSource{name: name, content: content}
}

func (s *TabularSource) Name() string {
	return s.name
}

func (s *TabularSource) Type() string {
	return constants.SourceTypeTabular
}

// InferSchema returns the header fields in column order.
func (s *TabularSource) InferSchema() ([]string, error) {

	header, _, err := s.read()
	if err != nil {
		return nil, err
	}
	return header, nil
}

// GetProfiles returns one profile per data row. Cells missing at the end of a short row are
// absent from its profile and cells beyond the header are dropped. All values are strings.
func (s *TabularSource) GetProfiles() ([]profileModel.Profile, error) {

	header, rows, err := s.read()
	if err != nil {
		return nil, err
	}

	profiles := make([]profileModel.Profile, 0, len(rows))
	for _, row := range rows {
		profile := make(profileModel.Profile, len(header))
		for i, field := range header {
			if i >= len(row) {
				break
			}
			profile[field] = row[i]
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}

func (s *TabularSource) read() ([]string, [][]string, error) {

	reader := csv.NewReader(strings.NewReader(s.content))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []string{}, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read header of tabular source %s: %w", s.name, err)
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read tabular source %s: %w", s.name, err)
		}
		rows = append(rows, row)
	}
	return header, rows, nil
}
