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

type AddrConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

type LogConfig struct {
	LogLevel string `yaml:"log_level"`
}

// LLMConfig configures the text generation backend used for alignment, comparison and extraction.
type LLMConfig struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
	APIKey   string `yaml:"api_key"`
}

type MatchingConfig struct {
	Threshold *float64 `yaml:"threshold"`
}

type DataSourcesConfig struct {
	Directories []string `yaml:"directories"`
}

// DataSourceConfig is the optional Postgres database exposed as relational sources.
type DataSourceConfig struct {
	Hostname string `yaml:"hostname"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

// IsConfigured reports whether enough of the datasource is set to attempt a connection.
func (d DataSourceConfig) IsConfigured() bool {
	return d.Hostname != "" && d.Name != ""
}

type Config struct {
	Addr        AddrConfig        `yaml:"addr"`
	Log         LogConfig         `yaml:"log"`
	LLM         LLMConfig         `yaml:"llm"`
	Matching    MatchingConfig    `yaml:"matching"`
	DataSources DataSourcesConfig `yaml:"data_sources"`
	DataSource  DataSourceConfig  `yaml:"datasource"`
}
