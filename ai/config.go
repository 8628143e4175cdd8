// Copyright 2025 Sieve Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ai

import "strings"

// Config holds configuration for the embedding service client.
type Config struct {
	// Host is the base URL for the embedding service API.
	// Example: "http://localhost:11434/v1" for a local OpenAI-compatible server.
	Host string

	// Model is the model identifier to use for text embeddings.
	// Example: "embeddinggemma", "text-embedding-3-small"
	Model string

	// Token authenticates against the service. Local OpenAI-compatible
	// servers generally accept any non-empty token.
	Token string

	// Dimensions is the expected embedding dimensionality. Informational:
	// mismatched vectors degrade the semantic sub-score rather than erroring.
	Dimensions int
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithHost sets the embedding service host URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithModel sets the embedding model identifier.
func WithModel(model string) ConfigOption {
	return func(c *Config) {
		c.Model = model
	}
}

// WithToken sets the API token.
func WithToken(token string) ConfigOption {
	return func(c *Config) {
		c.Token = token
	}
}

// WithDimensions sets the expected embedding dimensionality.
func WithDimensions(dims int) ConfigOption {
	return func(c *Config) {
		c.Dimensions = dims
	}
}

// DefaultConfig returns a Config with defaults for a local OpenAI-compatible
// service.
func DefaultConfig(opts ...ConfigOption) *Config {
	c := &Config{
		Host:       "http://localhost:11434/v1",
		Model:      "embeddinggemma",
		Token:      "none",
		Dimensions: 1536,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Validate checks the configuration for obvious misconfiguration.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Host) == "" {
		return ErrHostRequired
	}
	if strings.TrimSpace(c.Model) == "" {
		return ErrModelRequired
	}
	return nil
}
