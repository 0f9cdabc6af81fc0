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
	"strings"
	"sync"

	"github.com/wso2/identity-profile-resolver/internal/system/config"
	errors2 "github.com/wso2/identity-profile-resolver/internal/system/errors"
)

// TextGeneratorInterface is the text generation service used for schema alignment, profile
// comparison and profile extraction. Generate returns an empty string when the call fails.
type TextGeneratorInterface interface {
	Generate(ctx context.Context, prompt string) string
}

// TextGeneratorFunc adapts a plain function to TextGeneratorInterface.
type TextGeneratorFunc func(ctx context.Context, prompt string) string

// Generate calls f(ctx, prompt).
func (f TextGeneratorFunc) Generate(ctx context.Context, prompt string) string {
	return f(ctx, prompt)
}

var (
	textGenerator TextGeneratorInterface
	generatorMu   sync.RWMutex
)

// NewTextGenerator creates the text generator for the configured provider. Missing credentials
// are reported as an error so the server refuses to start without them.
func NewTextGenerator(ctx context.Context, cfg config.LLMConfig) (TextGeneratorInterface, error) {

	switch strings.ToLower(cfg.Provider) {
	case "", config.DefaultLLMProvider, "google":
		return NewGeminiClient(ctx, cfg)
	default:
		return nil, errors2.NewServerError(errors2.LLM_CLIENT_INIT,
			fmt.Errorf("unsupported text generation provider: %s", cfg.Provider))
	}
}

// InitTextGenerator creates the process wide text generator.
func InitTextGenerator(ctx context.Context, cfg config.LLMConfig) error {

	generator, err := NewTextGenerator(ctx, cfg)
	if err != nil {
		return err
	}
	SetTextGenerator(generator)
	return nil
}

// SetTextGenerator replaces the process wide text generator.
func SetTextGenerator(generator TextGeneratorInterface) {
	generatorMu.Lock()
	defer generatorMu.Unlock()

	textGenerator = generator
}

// GetTextGenerator returns the process wide text generator.
func GetTextGenerator() TextGeneratorInterface {
	generatorMu.RLock()
	defer generatorMu.RUnlock()

	if textGenerator == nil {
		panic("text generator is not initialized")
	}
	return textGenerator
}

// IsTextGeneratorInitialized reports whether the process wide text generator has been set.
func IsTextGeneratorInitialized() bool {
	generatorMu.RLock()
	defer generatorMu.RUnlock()

	return textGenerator != nil
}
