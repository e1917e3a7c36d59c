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

package metadata

import (
	"time"
)

// RunMetadata is the record written after a successful collection run.
type RunMetadata struct {
	ToolVersion   string     `json:"tool_version"`
	APIVersion    string     `json:"api_version"`
	RunID         string     `json:"run_id"`
	Parameters    RunParams  `json:"parameters"`
	Results       RunResults `json:"results"`
	PreviousRunID string     `json:"previous_run_id,omitempty"`
}

// RunParams captures the inputs of a run.
type RunParams struct {
	Site          string  `json:"site"`
	Tag           string  `json:"tag"`
	QuestionLimit int     `json:"question_limit"`
	PageSize      int     `json:"page_size"`
	PageDelay     float64 `json:"page_delay_seconds"`
	ThreadDelay   float64 `json:"thread_delay_seconds"`
	OutputPath    string  `json:"output_path"`
	Filter        string  `json:"filter"`
	KeyProvided   bool    `json:"key_provided"`
}

// RunResults holds the counts and ranges observed during a run.
type RunResults struct {
	QuestionsFetched int       `json:"questions_fetched"`
	ThreadsWritten   int       `json:"threads_written"`
	Answers          int       `json:"answers"`
	QuestionComments int       `json:"question_comments"`
	AnswerComments   int       `json:"answer_comments"`
	SolvableThreads  int       `json:"solvable_threads"`
	FirstQuestionID  int64     `json:"first_question_id"`
	LastQuestionID   int64     `json:"last_question_id"`
	OldestQuestion   time.Time `json:"oldest_question_date"`
	NewestQuestion   time.Time `json:"newest_question_date"`
	APICallCount     int       `json:"api_calls_made"`
	APIErrorCount    int       `json:"api_errors"`
	BackoffCount     int       `json:"backoffs_honored"`
	BackoffSeconds   int       `json:"backoff_seconds"`
	QuotaMax         int       `json:"quota_max"`
	QuotaRemaining   int       `json:"min_quota_remaining"`
	Duration         string    `json:"run_duration"`
	StartedAt        time.Time `json:"started_at"`
	CompletedAt      time.Time `json:"completed_at"`
}
