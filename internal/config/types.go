// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config types define the settings sirseer-threads reads from YAML
// files, environment variables and command-line flags.
package config

import (
	"time"

	"github.com/sirseerhq/sirseer-threads/internal/pacing"
)

// Config is the complete configuration for a collection run.
type Config struct {
	StackExchange StackExchangeConfig  `yaml:"stackexchange"`
	Collect       CollectConfig        `yaml:"collect"`
	Tags          map[string]TagConfig `yaml:"tags"`
	RateLimit     RateLimitConfig      `yaml:"rate_limit"`
}

// StackExchangeConfig describes how to reach the API.
type StackExchangeConfig struct {
	APIEndpoint           string `yaml:"api_endpoint"`
	Site                  string `yaml:"site"`
	KeyEnv                string `yaml:"key_env"`
	Filter                string `yaml:"filter"`
	PageSize              int    `yaml:"page_size"`
	RequestTimeoutSeconds int    `yaml:"request_timeout_seconds"`
}

// CollectConfig controls what is collected and how fast.
type CollectConfig struct {
	Tag                string  `yaml:"tag"`
	QuestionLimit      int     `yaml:"question_limit"`
	OutputPath         string  `yaml:"output_path"`
	PageDelaySeconds   float64 `yaml:"page_delay_seconds"`
	ThreadDelaySeconds float64 `yaml:"thread_delay_seconds"`
	MetadataDir        string  `yaml:"metadata_dir"`
}

// TagConfig holds per-tag overrides.
type TagConfig struct {
	QuestionLimit int `yaml:"question_limit"`
}

// RateLimitConfig controls progress reporting while pacing requests.
type RateLimitConfig struct {
	ShowProgress bool `yaml:"show_progress"`
}

// DefaultConfig returns the built-in defaults: 1000 java questions from
// Stack Overflow, one second between pages and 0.3 seconds between threads.
func DefaultConfig() *Config {
	return &Config{
		StackExchange: StackExchangeConfig{
			APIEndpoint:           "https://api.stackexchange.com/2.3",
			Site:                  "stackoverflow",
			KeyEnv:                "STACKEXCHANGE_KEY",
			Filter:                "withbody",
			PageSize:              100,
			RequestTimeoutSeconds: 30,
		},
		Collect: CollectConfig{
			Tag:                "java",
			QuestionLimit:      1000,
			OutputPath:         "java_threads.jsonl",
			PageDelaySeconds:   1,
			ThreadDelaySeconds: 0.3,
		},
		Tags: make(map[string]TagConfig),
		RateLimit: RateLimitConfig{
			ShowProgress: true,
		},
	}
}

// PageDelay returns the pause between question pages.
func (c *Config) PageDelay() time.Duration {
	return pacing.Seconds(c.Collect.PageDelaySeconds)
}

// ThreadDelay returns the pause between threads.
func (c *Config) ThreadDelay() time.Duration {
	return pacing.Seconds(c.Collect.ThreadDelaySeconds)
}

// RequestTimeout returns the per-request HTTP timeout.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.StackExchange.RequestTimeoutSeconds) * time.Second
}
