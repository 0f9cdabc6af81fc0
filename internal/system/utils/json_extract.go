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

package utils

import (
	"encoding/json"
	"io"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// fencedObjectPattern matches the first object inside a ``` or ```json fenced block.
var fencedObjectPattern = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")

var jsonNumberPattern = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

// ExtractJSONObject makes a best effort to read a JSON object out of free-form text returned by a
// text generation service. The object is taken from a fenced block when one is present, otherwise
// the whole trimmed text is used. Strict JSON is tried first, then a Python style literal with
// single quotes, None, True and False. The second return value is false when no object could be
// read.
func ExtractJSONObject(text string) (map[string]interface{}, bool) {

	obj, _, ok := ExtractOrderedJSONObject(text)
	return obj, ok
}

// ExtractOrderedJSONObject is ExtractJSONObject that also returns the object's keys in the order
// they first appear in the text. A repeated key keeps its first position and its last value.
func ExtractOrderedJSONObject(text string) (map[string]interface{}, []string, bool) {

	candidate := strings.TrimSpace(text)
	if match := fencedObjectPattern.FindStringSubmatch(text); match != nil {
		candidate = match[1]
	}
	if candidate == "" {
		return nil, nil, false
	}

	if obj, keys, err := decodeObject(candidate); err == nil {
		return obj, keys, true
	}
	if obj, keys, err := decodeLiteralObject(candidate); err == nil {
		return obj, keys, true
	}
	return nil, nil, false
}

// decodeObject decodes exactly one JSON object. Numbers are kept as json.Number.
func decodeObject(text string) (map[string]interface{}, []string, error) {

	decoder := json.NewDecoder(strings.NewReader(text))
	decoder.UseNumber()

	token, err := decoder.Token()
	if err != nil {
		return nil, nil, err
	}
	if delim, isDelim := token.(json.Delim); !isDelim || delim != '{' {
		return nil, nil, errors.New("JSON value is not an object")
	}

	obj := map[string]interface{}{}
	keys := []string{}
	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			return nil, nil, err
		}
		key, isString := token.(string)
		if !isString {
			return nil, nil, errors.Errorf("unexpected object key %v", token)
		}
		var value interface{}
		if err := decoder.Decode(&value); err != nil {
			return nil, nil, err
		}
		if _, seen := obj[key]; !seen {
			keys = append(keys, key)
		}
		obj[key] = value
	}
	if _, err := decoder.Token(); err != nil {
		return nil, nil, err
	}
	if _, err := decoder.Token(); err != io.EOF {
		return nil, nil, errors.New("unexpected data after JSON object")
	}
	return obj, keys, nil
}

// decodeLiteralObject decodes an object literal such as {'name': 'full_name', 'dob': None} by
// rewriting it as JSON.
func decodeLiteralObject(text string) (map[string]interface{}, []string, error) {

	if !strings.HasPrefix(text, "{") || !strings.HasSuffix(text, "}") {
		return nil, nil, errors.New("text is not an object literal")
	}
	converted, err := literalToJSON(text)
	if err != nil {
		return nil, nil, errors.Wrap(err, "object literal decode failed")
	}
	return decodeObject(converted)
}

// literalToJSON rewrites a Python literal into JSON text. Strings may use either quote and the
// usual backslash escapes, tuples become lists, trailing commas are dropped and None, True and
// False become null, true and false. Any other bare word is rejected.
func literalToJSON(text string) (string, error) {

	out := make([]byte, 0, len(text))
	for i := 0; i < len(text); {
		c := text[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '{' || c == '[' || c == ':' || c == ',':
			out = append(out, c)
			i++
		case c == '(':
			out = append(out, '[')
			i++
		case c == '}' || c == ']' || c == ')':
			if n := len(out); n > 0 && out[n-1] == ',' {
				out = out[:n-1]
			}
			if c == ')' {
				c = ']'
			}
			out = append(out, c)
			i++
		case c == '\'' || c == '"':
			value, n, err := readQuoted(text[i:])
			if err != nil {
				return "", err
			}
			encoded, err := json.Marshal(value)
			if err != nil {
				return "", err
			}
			out = append(out, encoded...)
			i += n
		case isWordByte(c) && !isDigit(c):
			j := i
			for j < len(text) && isWordByte(text[j]) {
				j++
			}
			switch word := text[i:j]; word {
			case "None":
				out = append(out, "null"...)
			case "True":
				out = append(out, "true"...)
			case "False":
				out = append(out, "false"...)
			default:
				return "", errors.Errorf("unsupported name %q", word)
			}
			i = j
		case isDigit(c) || c == '-' || c == '+' || c == '.':
			j := i + 1
			for j < len(text) && (isDigit(text[j]) || strings.IndexByte(".eE+-_", text[j]) >= 0) {
				j++
			}
			if literal := text[i:j]; jsonNumberPattern.MatchString(literal) {
				out = append(out, literal...)
			} else {
				number, err := strconv.ParseFloat(strings.ReplaceAll(literal, "_", ""), 64)
				if err != nil {
					return "", errors.Errorf("invalid number %q", literal)
				}
				out = strconv.AppendFloat(out, number, 'g', -1, 64)
			}
			i = j
		default:
			return "", errors.Errorf("unexpected character %q at offset %d", c, i)
		}
	}
	return string(out), nil
}

// readQuoted reads the quoted string at the start of text and returns its value and the number of
// bytes consumed. Unknown escapes are kept as written.
func readQuoted(text string) (string, int, error) {

	quote := text[0]
	var value strings.Builder
	for i := 1; i < len(text); {
		c := text[i]
		if c == quote {
			return value.String(), i + 1, nil
		}
		if c != '\\' || i+1 >= len(text) {
			value.WriteByte(c)
			i++
			continue
		}

		escaped := text[i+1]
		i += 2
		switch escaped {
		case 'n':
			value.WriteByte('\n')
		case 't':
			value.WriteByte('\t')
		case 'r':
			value.WriteByte('\r')
		case '\\', '\'', '"':
			value.WriteByte(escaped)
		case '\n':
		case 'x', 'u':
			width := 2
			if escaped == 'u' {
				width = 4
			}
			if i+width > len(text) {
				return "", 0, errors.New("truncated escape sequence")
			}
			code, err := strconv.ParseUint(text[i:i+width], 16, 32)
			if err != nil {
				return "", 0, errors.Errorf("invalid escape sequence %q", text[i-2:i+width])
			}
			r := rune(code)
			if !utf8.ValidRune(r) {
				r = utf8.RuneError
			}
			value.WriteRune(r)
			i += width
		default:
			value.WriteByte('\\')
			value.WriteByte(escaped)
		}
	}
	return "", 0, errors.New("unterminated string")
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isWordByte(c byte) bool {
	return c == '_' || isDigit(c) || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// ToFloat64 reads a numeric value produced by ExtractJSONObject. Numeric strings are accepted.
func ToFloat64(value interface{}) (float64, bool) {

	switch typed := value.(type) {
	case json.Number:
		f, err := typed.Float64()
		return f, err == nil
	case float64:
		return typed, true
	case float32:
		return float64(typed), true
	case int:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
