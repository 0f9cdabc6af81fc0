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

package config

import (
	"os"
	"path"

	"gopkg.in/yaml.v2"
)

const (
	DefaultLLMProvider    = "gemini"
	DefaultLLMModel       = "gemini-2.0-flash"
	DefaultMatchThreshold = 0.5
	DefaultLogLevel       = "INFO"
	DefaultPort           = 5000
)

// DefaultDataDirectories are scanned for source files when none are configured.
var DefaultDataDirectories = []string{"test_data", "."}

// LoadConfig reads the deployment file relative to the resolver home and expands environment
// variables before decoding it.
func LoadConfig(resolverHome, filePath string) (*Config, error) {
	file, err := os.ReadFile(path.Join(resolverHome, filePath))
	if err != nil {
		return nil, err
	}

	return ParseConfig(file)
}

// ParseConfig decodes a deployment yaml document.
func ParseConfig(content []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(content))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// MatchThreshold returns the configured threshold or the default one.
func (c Config) MatchThreshold() float64 {
	if c.Matching.Threshold == nil {
		return DefaultMatchThreshold
	}
	return *c.Matching.Threshold
}

func applyDefaults(cfg *Config) {
	if cfg.Log.LogLevel == "" {
		cfg.Log.LogLevel = DefaultLogLevel
	}
	if cfg.Addr.Port == 0 {
		cfg.Addr.Port = DefaultPort
	}
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = DefaultLLMProvider
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = DefaultLLMModel
	}
	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv("GOOGLE_API_KEY")
	}
	if len(cfg.DataSources.Directories) == 0 {
		cfg.DataSources.Directories = DefaultDataDirectories
	}
	if cfg.DataSource.SSLMode == "" {
		cfg.DataSource.SSLMode = "disable"
	}
}
