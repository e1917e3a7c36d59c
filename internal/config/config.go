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

// Package config loads sirseer-threads configuration from several sources
// with a fixed precedence order.
//
// Configuration sources (in precedence order, highest to lowest):
//  1. Command-line flags
//  2. Tag-specific configuration
//  3. Environment variables
//  4. Configuration file
//  5. Built-in defaults
//
// Flags are applied by the command layer after loading.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads defaults, then the config file, then environment
// overrides. If configPath is empty the first file found among these is
// used:
//   - .sirseer-threads.yaml (current directory)
//   - .sirseer-threads.yml (current directory)
//   - ~/.sirseer/threads.yaml
//   - ~/.sirseer/threads.yml
//
// A missing file in the standard locations is not an error.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if err := loadConfigFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	} else {
		home := os.Getenv("HOME")
		defaultPaths := []string{
			".sirseer-threads.yaml",
			".sirseer-threads.yml",
			filepath.Join(home, ".sirseer", "threads.yaml"),
			filepath.Join(home, ".sirseer", "threads.yml"),
		}

		for _, path := range defaultPaths {
			if _, err := os.Stat(path); err == nil {
				if err := loadConfigFile(path, cfg); err != nil {
					return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
				}
				break
			}
		}
	}

	applyEnvOverrides(cfg)

	cfg.Collect.OutputPath = expandPath(cfg.Collect.OutputPath)
	cfg.Collect.MetadataDir = expandPath(cfg.Collect.MetadataDir)

	return cfg, nil
}

// LoadConfigForTag loads configuration and applies the overrides for tag.
// An empty tag means the configured collect.tag.
func LoadConfigForTag(configPath, tag string) (*Config, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	if tag != "" {
		cfg.Collect.Tag = tag
	}
	cfg.Collect.QuestionLimit = cfg.GetQuestionLimit(cfg.Collect.Tag)

	return cfg, nil
}

// loadConfigFile reads and parses a YAML config file
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if cfg.Tags == nil {
		cfg.Tags = make(map[string]TagConfig)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) {
	if endpoint := os.Getenv("STACKEXCHANGE_API_ENDPOINT"); endpoint != "" {
		cfg.StackExchange.APIEndpoint = endpoint
	}
	if site := os.Getenv("STACKEXCHANGE_SITE"); site != "" {
		cfg.StackExchange.Site = site
	}

	if tag := os.Getenv("SIRSEER_TAG"); tag != "" {
		cfg.Collect.Tag = tag
	}
	if limit := os.Getenv("SIRSEER_QUESTION_LIMIT"); limit != "" {
		if n, err := parsePositiveInt(limit); err == nil {
			cfg.Collect.QuestionLimit = n
		}
	}
	if path := os.Getenv("SIRSEER_OUTPUT_PATH"); path != "" {
		cfg.Collect.OutputPath = path
	}
	if dir := os.Getenv("SIRSEER_METADATA_DIR"); dir != "" {
		cfg.Collect.MetadataDir = dir
	}

	if show := os.Getenv("SIRSEER_SHOW_PROGRESS"); show != "" {
		cfg.RateLimit.ShowProgress = parseBool(show)
	}
}

// expandPath expands ~ and environment variables in paths
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home := os.Getenv("HOME")
		if home == "" {
			home = os.Getenv("USERPROFILE") // Windows
		}
		path = filepath.Join(home, path[2:])
	}
	return os.ExpandEnv(path)
}

// parsePositiveInt parses a string to a positive integer
func parsePositiveInt(s string) (int, error) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("failed to parse integer from '%s': %w", s, err)
	}
	if i <= 0 {
		return 0, fmt.Errorf("value must be positive, got: %d", i)
	}
	return i, nil
}

// parseBool parses various boolean representations
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "yes" || s == "1" || s == "on"
}

// APIKey returns the application key from the environment variable named
// by stackexchange.key_env. An empty result means anonymous access.
func (c *Config) APIKey() string {
	if c.StackExchange.KeyEnv == "" {
		return ""
	}
	return strings.TrimSpace(os.Getenv(c.StackExchange.KeyEnv))
}

// GetQuestionLimit returns the question limit for tag, honoring a positive
// per-tag override.
func (c *Config) GetQuestionLimit(tag string) int {
	if tagConfig, ok := c.Tags[tag]; ok && tagConfig.QuestionLimit > 0 {
		return tagConfig.QuestionLimit
	}
	return c.Collect.QuestionLimit
}

// Validate checks that the configuration can drive a run.
func (c *Config) Validate() error {
	if c.StackExchange.APIEndpoint == "" {
		return fmt.Errorf("Stack Exchange API endpoint cannot be empty")
	}
	if c.StackExchange.Site == "" {
		return fmt.Errorf("Stack Exchange site cannot be empty")
	}
	if c.StackExchange.PageSize <= 0 {
		return fmt.Errorf("page size must be positive, got: %d", c.StackExchange.PageSize)
	}
	if c.StackExchange.PageSize > 100 {
		return fmt.Errorf("page size %d exceeds Stack Exchange API limit of 100", c.StackExchange.PageSize)
	}
	if c.StackExchange.RequestTimeoutSeconds <= 0 {
		return fmt.Errorf("request timeout must be positive, got: %d", c.StackExchange.RequestTimeoutSeconds)
	}
	if c.Collect.Tag == "" {
		return fmt.Errorf("tag cannot be empty")
	}
	if c.Collect.QuestionLimit <= 0 {
		return fmt.Errorf("question limit must be positive, got: %d", c.Collect.QuestionLimit)
	}
	if c.Collect.OutputPath == "" {
		return fmt.Errorf("output path cannot be empty")
	}
	if c.Collect.PageDelaySeconds < 0 {
		return fmt.Errorf("page delay cannot be negative, got: %g", c.Collect.PageDelaySeconds)
	}
	if c.Collect.ThreadDelaySeconds < 0 {
		return fmt.Errorf("thread delay cannot be negative, got: %g", c.Collect.ThreadDelaySeconds)
	}
	return nil
}
