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

// Package metadata records what a collection run did: API calls and
// backoffs seen on the wire, threads written and the question id and date
// ranges they cover. The record is saved as JSON next to other runs so a
// later run can point back at its predecessor.
package metadata

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sirseerhq/sirseer-threads/internal/dataset"
	"github.com/sirseerhq/sirseer-threads/internal/stackexchange"
)

const (
	// APIVersion is the Stack Exchange API version the client speaks.
	APIVersion = "2.3"

	filePrefix = "run-metadata-"
)

// Tracker accumulates run statistics. It implements
// stackexchange.Observer so it can be attached to a Fetcher.
type Tracker struct {
	mu        sync.Mutex
	startTime time.Time
	now       func() time.Time
	results   RunResults
	quotaSeen bool
}

var _ stackexchange.Observer = (*Tracker)(nil)

// New creates a tracker and starts its clock.
func New() *Tracker {
	return newTracker(time.Now)
}

func newTracker(now func() time.Time) *Tracker {
	return &Tracker{
		startTime: now(),
		now:       now,
	}
}

// ObserveResponse counts an API call and notes error envelopes, quota and
// backoff.
func (t *Tracker) ObserveResponse(endpoint string, resp *stackexchange.Response) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.results.APICallCount++
	if resp.ErrorID != 0 {
		t.results.APIErrorCount++
	}
	if secs := resp.BackoffSeconds(); secs > 0 {
		t.results.BackoffCount++
		t.results.BackoffSeconds += secs
	}
	if resp.QuotaMax > 0 {
		t.results.QuotaMax = resp.QuotaMax
		if !t.quotaSeen || resp.QuotaRemaining < t.results.QuotaRemaining {
			t.results.QuotaRemaining = resp.QuotaRemaining
			t.quotaSeen = true
		}
	}
}

// RecordQuestionsFetched notes how many questions pagination returned.
func (t *Tracker) RecordQuestionsFetched(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.results.QuestionsFetched = n
}

// RecordThread updates the running statistics with one written thread.
func (t *Tracker) RecordThread(thread *dataset.Thread) {
	t.mu.Lock()
	defer t.mu.Unlock()

	r := &t.results
	r.ThreadsWritten++
	r.Answers += len(thread.Answers)
	r.QuestionComments += len(thread.QuestionComments)
	r.AnswerComments += thread.CommentCount() - len(thread.QuestionComments)
	if thread.IsSolvable() {
		r.SolvableThreads++
	}

	id := thread.Question.QuestionID
	if r.FirstQuestionID == 0 || id < r.FirstQuestionID {
		r.FirstQuestionID = id
	}
	if id > r.LastQuestionID {
		r.LastQuestionID = id
	}

	if thread.Question.CreationDate == 0 {
		return
	}
	created := time.Unix(thread.Question.CreationDate, 0).UTC()
	if r.OldestQuestion.IsZero() || created.Before(r.OldestQuestion) {
		r.OldestQuestion = created
	}
	if created.After(r.NewestQuestion) {
		r.NewestQuestion = created
	}
}

// Results returns a snapshot of the statistics so far.
func (t *Tracker) Results() RunResults {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.results
}

// GenerateMetadata builds the record for a completed run. previous links
// to the last run for the same tag and may be nil.
func (t *Tracker) GenerateMetadata(toolVersion string, params RunParams, previous *RunMetadata) *RunMetadata {
	t.mu.Lock()
	defer t.mu.Unlock()

	completedAt := t.now()
	results := t.results
	results.StartedAt = t.startTime
	results.CompletedAt = completedAt
	results.Duration = completedAt.Sub(t.startTime).String()

	md := &RunMetadata{
		ToolVersion: toolVersion,
		APIVersion:  APIVersion,
		RunID:       uuid.NewString(),
		Parameters:  params,
		Results:     results,
	}
	if previous != nil {
		md.PreviousRunID = previous.RunID
	}
	return md
}

// SaveMetadata writes md to dir as run-metadata-<unix start>.json. The file
// is written to a temporary name and renamed into place.
func SaveMetadata(md *RunMetadata, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create metadata directory: %w", err)
	}

	name := fmt.Sprintf("%s%d.json", filePrefix, md.Results.StartedAt.Unix())
	path := filepath.Join(dir, name)

	tmp, err := os.CreateTemp(dir, name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create metadata file: %w", err)
	}
	tmpName := tmp.Name()

	if err := WriteMetadataToWriter(md, tmp); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("failed to write metadata: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("failed to close metadata file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("failed to save metadata file: %w", err)
	}

	return path, nil
}

// LoadLatestMetadata returns the run with the latest start time for tag,
// or nil when dir holds none. Unreadable files are skipped.
func LoadLatestMetadata(dir, tag string) (*RunMetadata, error) {
	files, err := filepath.Glob(filepath.Join(dir, filePrefix+"*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to list metadata files: %w", err)
	}

	var latest *RunMetadata
	for _, file := range files {
		md, err := readMetadata(file)
		if err != nil {
			continue
		}
		if md.Parameters.Tag != tag {
			continue
		}
		if latest == nil || md.Results.StartedAt.After(latest.Results.StartedAt) {
			latest = md
		}
	}

	return latest, nil
}

func readMetadata(path string) (*RunMetadata, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var md RunMetadata
	if err := json.NewDecoder(file).Decode(&md); err != nil {
		return nil, fmt.Errorf("failed to parse metadata %s: %w", path, err)
	}
	return &md, nil
}

// WriteMetadataToWriter writes md as indented JSON.
func WriteMetadataToWriter(md *RunMetadata, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(md)
}
