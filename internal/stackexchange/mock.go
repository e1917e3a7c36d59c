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

package stackexchange

import (
	"context"
	"fmt"
	"strings"

	threaderrors "github.com/sirseerhq/sirseer-threads/internal/errors"
)

// MockClient is a mock implementation of the Client interface for testing.
type MockClient struct {
	// Questions are served in order, PageSize at a time.
	Questions []Question

	// Answers by question id.
	Answers map[int64][]Answer

	// QuestionComments by question id.
	QuestionComments map[int64][]Comment

	// AnswerComments by answer id.
	AnswerComments map[int64][]Comment

	// Error to return from every method
	Error error

	// Behavior flags. A throttled mock answers every call with an empty
	// result, the way RESTClient handles a throttle_violation envelope.
	ShouldFailAuth     bool
	ShouldFailNetwork  bool
	ShouldFailThrottle bool

	// Track calls for verification
	CallCount int
	Calls     []string
	LastOpts  QuestionOptions
}

// NewMockClient creates a new mock client with an empty data set.
func NewMockClient() *MockClient {
	return &MockClient{
		Answers:          make(map[int64][]Answer),
		QuestionComments: make(map[int64][]Comment),
		AnswerComments:   make(map[int64][]Comment),
	}
}

func (m *MockClient) record(ctx context.Context, call string) error {
	m.CallCount++
	m.Calls = append(m.Calls, call)

	// Check for context cancellation
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	// Simulate various error conditions
	if m.ShouldFailAuth {
		return fmt.Errorf("%s: %w", call, &APIError{ID: 403, Name: "access_denied", Message: "mock key rejected"})
	}
	if m.ShouldFailNetwork {
		return fmt.Errorf("%s: network timeout: %w", call, threaderrors.ErrNetworkFailure)
	}

	// Return configured error if set
	return m.Error
}

// FetchQuestions implements the Client interface
func (m *MockClient) FetchQuestions(ctx context.Context, opts QuestionOptions) (*QuestionPage, error) {
	m.LastOpts = opts
	if err := m.record(ctx, fmt.Sprintf("questions page=%d", opts.Page)); err != nil {
		return nil, err
	}
	if m.ShouldFailThrottle {
		return &QuestionPage{Questions: []Question{}, Page: opts.Page}, nil
	}

	size := opts.PageSize
	if size <= 0 || size > MaxPageSize {
		size = MaxPageSize
	}
	page := opts.Page
	if page <= 0 {
		page = 1
	}

	start := (page - 1) * size
	if start > len(m.Questions) {
		start = len(m.Questions)
	}
	end := start + size
	if end > len(m.Questions) {
		end = len(m.Questions)
	}

	questions := make([]Question, end-start)
	copy(questions, m.Questions[start:end])

	return &QuestionPage{
		Questions: questions,
		HasMore:   end < len(m.Questions),
		Page:      page,
	}, nil
}

// FetchAnswers implements the Client interface
func (m *MockClient) FetchAnswers(ctx context.Context, questionIDs []int64) ([]Answer, error) {
	if err := m.record(ctx, "answers "+JoinIDs(questionIDs)); err != nil {
		return nil, err
	}
	if m.ShouldFailThrottle {
		return []Answer{}, nil
	}
	answers := []Answer{}
	for _, id := range questionIDs {
		answers = append(answers, m.Answers[id]...)
	}
	return capPage(answers), nil
}

// FetchQuestionComments implements the Client interface
func (m *MockClient) FetchQuestionComments(ctx context.Context, questionIDs []int64) ([]Comment, error) {
	if err := m.record(ctx, "question-comments "+JoinIDs(questionIDs)); err != nil {
		return nil, err
	}
	if m.ShouldFailThrottle {
		return []Comment{}, nil
	}
	comments := []Comment{}
	for _, id := range questionIDs {
		comments = append(comments, m.QuestionComments[id]...)
	}
	return capPage(comments), nil
}

// FetchAnswerComments implements the Client interface
func (m *MockClient) FetchAnswerComments(ctx context.Context, answerIDs []int64) ([]Comment, error) {
	if err := m.record(ctx, "answer-comments "+JoinIDs(answerIDs)); err != nil {
		return nil, err
	}
	if m.ShouldFailThrottle {
		return []Comment{}, nil
	}
	comments := []Comment{}
	for _, id := range answerIDs {
		comments = append(comments, m.AnswerComments[id]...)
	}
	return capPage(comments), nil
}

// CallsWithPrefix returns the recorded calls that start with prefix.
func (m *MockClient) CallsWithPrefix(prefix string) []string {
	var out []string
	for _, c := range m.Calls {
		if strings.HasPrefix(c, prefix) {
			out = append(out, c)
		}
	}
	return out
}

// capPage mirrors the single-page limit of the real API.
func capPage[T any](items []T) []T {
	if len(items) > MaxPageSize {
		return items[:MaxPageSize]
	}
	return items
}

// MockClientOption allows configuring the mock client
type MockClientOption func(*MockClient)

// WithQuestions sets the questions to page through
func WithQuestions(questions []Question) MockClientOption {
	return func(m *MockClient) {
		m.Questions = questions
	}
}

// WithAnswers sets the answers for one question
func WithAnswers(questionID int64, answers ...Answer) MockClientOption {
	return func(m *MockClient) {
		m.Answers[questionID] = answers
	}
}

// WithQuestionComments sets the comments on one question
func WithQuestionComments(questionID int64, comments ...Comment) MockClientOption {
	return func(m *MockClient) {
		m.QuestionComments[questionID] = comments
	}
}

// WithAnswerComments sets the comments on one answer
func WithAnswerComments(answerID int64, comments ...Comment) MockClientOption {
	return func(m *MockClient) {
		m.AnswerComments[answerID] = comments
	}
}

// WithError makes the client return a specific error
func WithError(err error) MockClientOption {
	return func(m *MockClient) {
		m.Error = err
	}
}

// WithAuthFailure makes the client simulate a rejected key
func WithAuthFailure() MockClientOption {
	return func(m *MockClient) {
		m.ShouldFailAuth = true
	}
}

// NewMockClientWithOptions creates a mock client with options
func NewMockClientWithOptions(opts ...MockClientOption) *MockClient {
	mock := NewMockClient()
	for _, opt := range opts {
		opt(mock)
	}
	return mock
}

// GenerateQuestions builds n questions with ids start, start+1, ... newest first.
func GenerateQuestions(start int64, n int) []Question {
	questions := make([]Question, n)
	for i := 0; i < n; i++ {
		id := start + int64(i)
		questions[i] = Question{
			QuestionID:   id,
			Title:        fmt.Sprintf("Question %d", id),
			Body:         fmt.Sprintf("<p>Body of question %d</p>", id),
			Tags:         []string{"java"},
			CreationDate: 1700000000 - int64(i)*60,
		}
	}
	return questions
}
