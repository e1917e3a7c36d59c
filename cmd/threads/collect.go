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

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sirseerhq/sirseer-threads/internal/collector"
	"github.com/sirseerhq/sirseer-threads/internal/config"
	"github.com/sirseerhq/sirseer-threads/internal/metadata"
	"github.com/sirseerhq/sirseer-threads/internal/stackexchange"
	"github.com/sirseerhq/sirseer-threads/pkg/version"
)

// collectOptions holds the raw flag values of the collect command.
type collectOptions struct {
	configPath  string
	key         string
	tag         string
	limit       int
	output      string
	pageDelay   float64
	threadDelay float64
	pageSize    int
	metadataDir string
	quiet       bool
}

func newCollectCommand(stderr io.Writer) *cobra.Command {
	var opts collectOptions

	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Collect question threads for a tag",
		Long: `Collect the newest questions for a tag and write each question with its
answers and comments as one JSON line.

The output file is overwritten on every run, but only after the question
listing has been retrieved.

An application key raises the daily request quota:
  - Use --key flag to provide the key directly
  - Or set STACKEXCHANGE_KEY (a .env file in the working directory is read)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, key, err := resolveConfig(cmd.Flags(), opts)
			if err != nil {
				return err
			}
			return runCollect(cmd.Context(), cfg, key, stderr)
		},
	}

	bindCollectFlags(cmd.Flags(), &opts)

	return cmd
}

// bindCollectFlags registers the collect flags on flags.
func bindCollectFlags(flags *pflag.FlagSet, opts *collectOptions) {
	flags.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flags.StringVar(&opts.key, "key", "", "Stack Exchange application key (overrides STACKEXCHANGE_KEY env var)")
	flags.StringVar(&opts.tag, "tag", collector.DefaultTag, "Question tag to collect")
	flags.IntVar(&opts.limit, "limit", collector.DefaultQuestionLimit, "Maximum number of questions")
	flags.StringVar(&opts.output, "output", "java_threads.jsonl", "Output file path")
	flags.Float64Var(&opts.pageDelay, "page-delay", 1, "Seconds to wait between question pages")
	flags.Float64Var(&opts.threadDelay, "thread-delay", 0.3, "Seconds to wait between threads")
	flags.IntVar(&opts.pageSize, "page-size", stackexchange.MaxPageSize, "Questions per page (1-100)")
	flags.StringVar(&opts.metadataDir, "metadata-dir", "", "Directory for run metadata (disabled when empty)")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "Suppress progress output")
}

// resolveConfig loads the configuration and applies the flags the user set
// explicitly. It returns the validated config and the application key.
func resolveConfig(flags *pflag.FlagSet, opts collectOptions) (*config.Config, string, error) {
	tag := ""
	if flags.Changed("tag") {
		tag = opts.tag
	}

	cfg, err := config.LoadConfigForTag(opts.configPath, tag)
	if err != nil {
		return nil, "", err
	}

	if flags.Changed("limit") {
		cfg.Collect.QuestionLimit = opts.limit
	}
	if flags.Changed("output") {
		cfg.Collect.OutputPath = opts.output
	}
	if flags.Changed("page-delay") {
		cfg.Collect.PageDelaySeconds = opts.pageDelay
	}
	if flags.Changed("thread-delay") {
		cfg.Collect.ThreadDelaySeconds = opts.threadDelay
	}
	if flags.Changed("page-size") {
		cfg.StackExchange.PageSize = opts.pageSize
	}
	if flags.Changed("metadata-dir") {
		cfg.Collect.MetadataDir = opts.metadataDir
	}
	if opts.quiet {
		cfg.RateLimit.ShowProgress = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", fmt.Errorf("invalid configuration: %w", err)
	}

	key := opts.key
	if key == "" {
		key = cfg.APIKey()
	}
	return cfg, key, nil
}

// runCollect executes a collection run described by cfg.
func runCollect(ctx context.Context, cfg *config.Config, key string, stderr io.Writer) error {
	progress := stderr
	if !cfg.RateLimit.ShowProgress {
		progress = io.Discard
	}

	if key == "" {
		fmt.Fprintf(stderr, "Warning: no Stack Exchange key found in %s or --key; using the anonymous quota\n",
			cfg.StackExchange.KeyEnv)
	}

	tracker := metadata.New()
	fetcher := stackexchange.NewFetcher(
		stackexchange.WithKey(key),
		stackexchange.WithSite(cfg.StackExchange.Site),
		stackexchange.WithHTTPClient(stackexchange.NewHTTPClient(cfg.RequestTimeout())),
		stackexchange.WithProgress(progress),
		stackexchange.WithObserver(tracker),
	)
	client := stackexchange.NewClient(cfg.StackExchange.APIEndpoint, fetcher,
		stackexchange.WithFilter(cfg.StackExchange.Filter))

	c := collector.New(client, collector.Options{
		Tag:           cfg.Collect.Tag,
		QuestionLimit: cfg.Collect.QuestionLimit,
		PageSize:      cfg.StackExchange.PageSize,
		PageDelay:     cfg.PageDelay(),
		ThreadDelay:   cfg.ThreadDelay(),
	}, collector.WithProgress(progress), collector.WithTracker(tracker))

	if _, err := c.Run(ctx, cfg.Collect.OutputPath); err != nil {
		return err
	}

	if cfg.Collect.MetadataDir != "" {
		saveRunMetadata(cfg, key != "", tracker, stderr)
	}
	return nil
}

// saveRunMetadata writes the run record. The dataset is already on disk, so
// failures here are reported as warnings.
func saveRunMetadata(cfg *config.Config, keyProvided bool, tracker *metadata.Tracker, stderr io.Writer) {
	dir := cfg.Collect.MetadataDir

	previous, err := metadata.LoadLatestMetadata(dir, cfg.Collect.Tag)
	if err != nil {
		fmt.Fprintf(stderr, "Warning: failed to read previous run metadata: %v\n", err)
	}

	params := metadata.RunParams{
		Site:          cfg.StackExchange.Site,
		Tag:           cfg.Collect.Tag,
		QuestionLimit: cfg.Collect.QuestionLimit,
		PageSize:      cfg.StackExchange.PageSize,
		PageDelay:     cfg.Collect.PageDelaySeconds,
		ThreadDelay:   cfg.Collect.ThreadDelaySeconds,
		OutputPath:    cfg.Collect.OutputPath,
		Filter:        cfg.StackExchange.Filter,
		KeyProvided:   keyProvided,
	}
	md := tracker.GenerateMetadata(version.Version, params, previous)

	if _, err := metadata.SaveMetadata(md, dir); err != nil {
		fmt.Fprintf(stderr, "Warning: failed to save run metadata: %v\n", err)
	}
}
