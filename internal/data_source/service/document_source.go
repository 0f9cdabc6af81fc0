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
	"encoding/json"
	"fmt"
	"io"
	"strings"

	profileModel "github.com/wso2/identity-profile-resolver/internal/profile/model"
	"github.com/wso2/identity-profile-resolver/internal/system/constants"
)

// DocumentSource reads profiles from JSON text holding either one object or a list of objects.
type DocumentSource struct {
	name    string
	content string
}

// NewDocumentSource creates a document source over the given JSON text.
func NewDocumentSource(name, content string) *DocumentSource {

	return &DocumentSource{name: name, content: content}
}

func (s *DocumentSource) Name() string {
	return s.name
}

func (s *DocumentSource) Type() string {
	return constants.SourceTypeDocument
}

// InferSchema returns the keys of a single object in document order. For a list, it returns the
// union of keys across all objects in first-seen order.
func (s *DocumentSource) InferSchema() ([]string, error) {

	doc, err := decodeDocument(s.content)
	if err != nil {
		return nil, fmt.Errorf("failed to read document source %s: %w", s.name, err)
	}

	fields := []string{}
	seen := map[string]bool{}
	for _, obj := range doc.objects {
		for _, key := range obj.keys {
			if !seen[key] {
				seen[key] = true
				fields = append(fields, key)
			}
		}
	}
	return fields, nil
}

// GetProfiles returns one profile per list element, or a single profile for a single object.
// A null document has no profiles.
func (s *DocumentSource) GetProfiles() ([]profileModel.Profile, error) {

	doc, err := decodeDocument(s.content)
	if err != nil {
		return nil, fmt.Errorf("failed to read document source %s: %w", s.name, err)
	}

	profiles := make([]profileModel.Profile, 0, len(doc.objects))
	for _, obj := range doc.objects {
		profiles = append(profiles, obj.values)
	}
	return profiles, nil
}

// orderedObject is a decoded JSON object that remembers its key order.
type orderedObject struct {
	keys   []string
	values profileModel.Profile
}

type document struct {
	objects []orderedObject
}

// decodeDocument decodes the top level of a JSON document while keeping object key order.
// Numbers are kept as json.Number.
func decodeDocument(content string) (*document, error) {

	decoder := json.NewDecoder(strings.NewReader(content))
	decoder.UseNumber()

	token, err := decoder.Token()
	if err == io.EOF {
		return nil, fmt.Errorf("document is empty")
	}
	if err != nil {
		return nil, err
	}

	doc := &document{}
	switch token {
	case json.Delim('{'):
		obj, err := readObject(decoder)
		if err != nil {
			return nil, err
		}
		doc.objects = append(doc.objects, obj)
	case json.Delim('['):
		for index := 0; decoder.More(); index++ {
			elementStart, err := decoder.Token()
			if err != nil {
				return nil, err
			}
			if elementStart != json.Delim('{') {
				return nil, fmt.Errorf("document list element %d is not an object", index)
			}
			obj, err := readObject(decoder)
			if err != nil {
				return nil, err
			}
			doc.objects = append(doc.objects, obj)
		}
		if _, err := decoder.Token(); err != nil {
			return nil, err
		}
	case nil:
		// null document
	default:
		return nil, fmt.Errorf("document must be an object or a list of objects")
	}

	if _, err := decoder.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after document")
	}
	return doc, nil
}

// readObject reads the members of an object whose opening brace was already consumed. A repeated
// key keeps its first position and its last value.
func readObject(decoder *json.Decoder) (orderedObject, error) {

	obj := orderedObject{values: profileModel.Profile{}}
	for decoder.More() {
		keyToken, err := decoder.Token()
		if err != nil {
			return obj, err
		}
		key, ok := keyToken.(string)
		if !ok {
			return obj, fmt.Errorf("unexpected object key %v", keyToken)
		}

		var value interface{}
		if err := decoder.Decode(&value); err != nil {
			return obj, err
		}
		if _, seen := obj.values[key]; !seen {
			obj.keys = append(obj.keys, key)
		}
		obj.values[key] = value
	}
	if _, err := decoder.Token(); err != nil {
		return obj, err
	}
	return obj, nil
}
