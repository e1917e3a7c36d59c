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

package collector

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sirseerhq/sirseer-threads/internal/dataset"
	"github.com/sirseerhq/sirseer-threads/internal/metadata"
	"github.com/sirseerhq/sirseer-threads/internal/output"
	"github.com/sirseerhq/sirseer-threads/internal/pacing"
	"github.com/sirseerhq/sirseer-threads/internal/stackexchange"
)

// Defaults matching the public API's limits and a polite request rate.
const (
	DefaultTag           = "java"
	DefaultQuestionLimit = 1000
	DefaultPageDelay     = time.Second
	DefaultThreadDelay   = 300 * time.Millisecond
)

// Options selects what a run collects and how it is paced.
type Options struct {
	Tag           string
	QuestionLimit int
	PageSize      int
	PageDelay     time.Duration
	ThreadDelay   time.Duration
}

// OpenFunc creates the output for a run.
type OpenFunc func(path string) (output.OutputWriter, error)

// Collector runs the question listing and thread assembly.
type Collector struct {
	client   stackexchange.Client
	opts     Options
	sleeper  pacing.Sleeper
	progress io.Writer
	tracker  *metadata.Tracker
	open     OpenFunc
}

// Option configures a Collector.
type Option func(*Collector)

// WithSleeper sets the Sleeper used for page and thread delays.
func WithSleeper(s pacing.Sleeper) Option {
	return func(c *Collector) {
		c.sleeper = s
	}
}

// WithProgress sets where progress lines are printed.
func WithProgress(w io.Writer) Option {
	return func(c *Collector) {
		c.progress = w
	}
}

// WithTracker records written threads in t.
func WithTracker(t *metadata.Tracker) Option {
	return func(c *Collector) {
		c.tracker = t
	}
}

// WithOpener replaces the function that creates the output file.
func WithOpener(open OpenFunc) Option {
	return func(c *Collector) {
		c.open = open
	}
}

// New creates a Collector. Zero Tag, QuestionLimit and PageSize take their
// defaults; delays are used as given.
func New(client stackexchange.Client, opts Options, options ...Option) *Collector {
	if opts.Tag == "" {
		opts.Tag = DefaultTag
	}
	if opts.QuestionLimit <= 0 {
		opts.QuestionLimit = DefaultQuestionLimit
	}
	if opts.PageSize <= 0 || opts.PageSize > stackexchange.MaxPageSize {
		opts.PageSize = stackexchange.MaxPageSize
	}

	c := &Collector{
		client:   client,
		opts:     opts,
		sleeper:  pacing.New(),
		progress: io.Discard,
		open: func(path string) (output.OutputWriter, error) {
			return output.NewFileWriter(path)
		},
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// FetchQuestions pages through the newest questions until QuestionLimit
// questions are collected or a page comes back empty. has_more is not
// consulted. The result holds at most QuestionLimit questions.
func (c *Collector) FetchQuestions(ctx context.Context) ([]stackexchange.Question, error) {
	limit := c.opts.QuestionLimit
	questions := make([]stackexchange.Question, 0, limit)

	for page := 1; len(questions) < limit; page++ {
		fmt.Fprintf(c.progress, "Fetching questions page %d ...\n", page)

		result, err := c.client.FetchQuestions(ctx, stackexchange.QuestionOptions{
			Tag:      c.opts.Tag,
			Page:     page,
			PageSize: c.opts.PageSize,
		})
		if err != nil {
			return nil, err
		}
		if len(result.Questions) == 0 {
			break
		}

		questions = append(questions, result.Questions...)
		if len(questions) >= limit {
			break
		}

		if err := c.sleeper.Sleep(ctx, c.opts.PageDelay); err != nil {
			return nil, fmt.Errorf("wait before page %d: %w", page+1, err)
		}
	}

	if len(questions) > limit {
		questions = questions[:limit]
	}
	return questions, nil
}

// BuildThread fetches the answers and comments for q. Answer comments are
// requested only when q has answers.
func (c *Collector) BuildThread(ctx context.Context, q stackexchange.Question) (*dataset.Thread, error) {
	ids := []int64{q.QuestionID}

	answers, err := c.client.FetchAnswers(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("question %d: %w", q.QuestionID, err)
	}

	questionComments, err := c.client.FetchQuestionComments(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("question %d: %w", q.QuestionID, err)
	}

	thread := dataset.NewThread(q, answers, questionComments, nil)
	if answerIDs := thread.AnswerIDs(); len(answerIDs) > 0 {
		comments, err := c.client.FetchAnswerComments(ctx, answerIDs)
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", q.QuestionID, err)
		}
		thread.AnswerComments = dataset.GroupByPost(comments)
	}

	return thread, nil
}

// Run collects questions, then truncates path and writes one thread per
// question in listing order. It returns the number of threads written.
// The output is not touched if the question listing fails.
func (c *Collector) Run(ctx context.Context, path string) (int, error) {
	questions, err := c.FetchQuestions(ctx)
	if err != nil {
		return 0, err
	}
	fmt.Fprintf(c.progress, "Total questions fetched: %d\n", len(questions))
	if c.tracker != nil {
		c.tracker.RecordQuestionsFetched(len(questions))
	}

	writer, err := c.open(path)
	if err != nil {
		return 0, err
	}
	defer writer.Close()

	for i, q := range questions {
		thread, err := c.BuildThread(ctx, q)
		if err != nil {
			return writer.Count(), err
		}

		if err := writer.Write(thread); err != nil {
			return writer.Count(), fmt.Errorf("write question %d: %w", q.QuestionID, err)
		}
		if c.tracker != nil {
			c.tracker.RecordThread(thread)
		}

		if i < len(questions)-1 {
			if err := c.sleeper.Sleep(ctx, c.opts.ThreadDelay); err != nil {
				return writer.Count(), fmt.Errorf("wait before next thread: %w", err)
			}
		}
	}

	if err := writer.Close(); err != nil {
		return writer.Count(), fmt.Errorf("failed to close output: %w", err)
	}
	fmt.Fprintf(c.progress, "Data saved to %s\n", path)

	return writer.Count(), nil
}
