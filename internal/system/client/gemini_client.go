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

package client

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/wso2/identity-profile-resolver/internal/system/config"
	errors2 "github.com/wso2/identity-profile-resolver/internal/system/errors"
	"github.com/wso2/identity-profile-resolver/internal/system/log"
)

// GeminiClient generates text with a Gemini model through the Google AI Studio API.
type GeminiClient struct {
	genaiClient *genai.Client
	model       string
}

// NewGeminiClient creates a Gemini backed text generator. The API key is mandatory.
func NewGeminiClient(ctx context.Context, cfg config.LLMConfig) (*GeminiClient, error) {

	if cfg.APIKey == "" {
		return nil, errors2.NewServerError(errors2.LLM_CLIENT_INIT,
			fmt.Errorf("GOOGLE_API_KEY is not set in the environment or llm.api_key"))
	}
	model := cfg.Model
	if model == "" {
		model = config.DefaultLLMModel
	}

	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		APIKey:  cfg.APIKey,
	})
	if err != nil {
		return nil, errors2.NewServerError(errors2.LLM_CLIENT_INIT, err)
	}

	log.GetLogger().Info(fmt.Sprintf("Gemini text generator initialized with model: %s", model))
	return &GeminiClient{
		genaiClient: genaiClient,
		model:       model,
	}, nil
}

// Generate sends the prompt as a single user turn. Failures are logged and yield an empty string.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) string {

	resp, err := c.genaiClient.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		log.GetLogger().Error("Error generating text", log.String("model", c.model), log.Error(err))
		return ""
	}
	if resp == nil {
		return ""
	}
	return resp.Text()
}

// Model returns the model name used for generation.
func (c *GeminiClient) Model() string {
	return c.model
}
