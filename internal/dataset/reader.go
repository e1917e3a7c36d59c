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

package dataset

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// maxLineSize bounds a single thread line. Threads with long bodies and a
// hundred answers run to a few megabytes.
const maxLineSize = 64 * 1024 * 1024

// LoadResult is the outcome of reading a dataset.
type LoadResult struct {
	// Threads that decoded successfully, in file order.
	Threads []*Thread

	// Failed counts non-blank lines that could not be decoded.
	Failed int
}

// Load reads one thread per line from r. Blank lines are skipped and
// undecodable lines are counted in Failed rather than aborting the read.
func Load(r io.Reader) (*LoadResult, error) {
	result := &LoadResult{Threads: []*Thread{}}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), maxLineSize)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var thread Thread
		if err := json.Unmarshal(line, &thread); err != nil {
			result.Failed++
			continue
		}
		if thread.AnswerComments == nil {
			thread.AnswerComments = NewAnswerComments()
		}
		result.Threads = append(result.Threads, &thread)
	}
	if err := scanner.Err(); err != nil {
		return result, fmt.Errorf("read dataset: %w", err)
	}

	return result, nil
}

// LoadFile reads the dataset at path.
func LoadFile(path string) (*LoadResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer file.Close()

	return Load(file)
}

// Summary aggregates counts over a set of threads.
type Summary struct {
	Threads          int `json:"threads"`
	Solvable         int `json:"solvable"`
	Answers          int `json:"answers"`
	QuestionComments int `json:"question_comments"`
	AnswerComments   int `json:"answer_comments"`
	Failed           int `json:"failed_lines"`
}

// Summarize counts threads, solvable threads, answers and comments.
func (r *LoadResult) Summarize() Summary {
	s := Summary{Threads: len(r.Threads), Failed: r.Failed}
	for _, t := range r.Threads {
		if t.IsSolvable() {
			s.Solvable++
		}
		s.Answers += len(t.Answers)
		s.QuestionComments += len(t.QuestionComments)
		s.AnswerComments += t.CommentCount() - len(t.QuestionComments)
	}
	return s
}
