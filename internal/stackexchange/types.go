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
	"bytes"
	"encoding/json"
	"fmt"

	threaderrors "github.com/sirseerhq/sirseer-threads/internal/errors"
)

// Owner is the shallow user object attached to posts and comments.
type Owner struct {
	AccountID    int64  `json:"account_id,omitempty"`
	Reputation   int    `json:"reputation,omitempty"`
	UserID       int64  `json:"user_id,omitempty"`
	UserType     string `json:"user_type,omitempty"`
	ProfileImage string `json:"profile_image,omitempty"`
	DisplayName  string `json:"display_name,omitempty"`
	Link         string `json:"link,omitempty"`
}

// Question is a question as returned by /questions with the withbody filter.
type Question struct {
	QuestionID       int64    `json:"question_id"`
	Title            string   `json:"title,omitempty"`
	Body             string   `json:"body,omitempty"`
	Link             string   `json:"link,omitempty"`
	Tags             []string `json:"tags,omitempty"`
	Owner            *Owner   `json:"owner,omitempty"`
	IsAnswered       bool     `json:"is_answered"`
	ViewCount        int      `json:"view_count"`
	AnswerCount      int      `json:"answer_count"`
	Score            int      `json:"score"`
	CreationDate     int64    `json:"creation_date,omitempty"`
	LastActivityDate int64    `json:"last_activity_date,omitempty"`
	ContentLicense   string   `json:"content_license,omitempty"`

	raw json.RawMessage
}

// Answer is an answer as returned by /questions/{ids}/answers.
type Answer struct {
	AnswerID         int64  `json:"answer_id"`
	QuestionID       int64  `json:"question_id,omitempty"`
	Body             string `json:"body,omitempty"`
	Owner            *Owner `json:"owner,omitempty"`
	IsAccepted       bool   `json:"is_accepted"`
	Score            int    `json:"score"`
	CreationDate     int64  `json:"creation_date,omitempty"`
	LastActivityDate int64  `json:"last_activity_date,omitempty"`
	ContentLicense   string `json:"content_license,omitempty"`

	raw json.RawMessage
}

// Comment is a comment on either a question or an answer. PostID names the
// post it is attached to.
type Comment struct {
	CommentID      int64  `json:"comment_id,omitempty"`
	PostID         int64  `json:"post_id"`
	Body           string `json:"body,omitempty"`
	Owner          *Owner `json:"owner,omitempty"`
	Score          int    `json:"score"`
	Edited         bool   `json:"edited"`
	CreationDate   int64  `json:"creation_date,omitempty"`
	ContentLicense string `json:"content_license,omitempty"`

	raw json.RawMessage
}

// UnmarshalJSON decodes a question and keeps the original object.
func (q *Question) UnmarshalJSON(data []byte) error {
	type plain Question
	var p plain
	raw, err := decodeRecord(data, "question", "question_id", &p)
	if err != nil {
		return err
	}
	*q = Question(p)
	q.raw = raw
	return nil
}

// MarshalJSON re-emits the object the API returned, or the typed fields for
// questions built in code.
func (q Question) MarshalJSON() ([]byte, error) {
	if len(q.raw) > 0 {
		return q.raw, nil
	}
	type plain Question
	return json.Marshal(plain(q))
}

// UnmarshalJSON decodes an answer and keeps the original object.
func (a *Answer) UnmarshalJSON(data []byte) error {
	type plain Answer
	var p plain
	raw, err := decodeRecord(data, "answer", "answer_id", &p)
	if err != nil {
		return err
	}
	*a = Answer(p)
	a.raw = raw
	return nil
}

// MarshalJSON re-emits the object the API returned.
func (a Answer) MarshalJSON() ([]byte, error) {
	if len(a.raw) > 0 {
		return a.raw, nil
	}
	type plain Answer
	return json.Marshal(plain(a))
}

// UnmarshalJSON decodes a comment and keeps the original object.
func (c *Comment) UnmarshalJSON(data []byte) error {
	type plain Comment
	var p plain
	raw, err := decodeRecord(data, "comment", "post_id", &p)
	if err != nil {
		return err
	}
	*c = Comment(p)
	c.raw = raw
	return nil
}

// MarshalJSON re-emits the object the API returned.
func (c Comment) MarshalJSON() ([]byte, error) {
	if len(c.raw) > 0 {
		return c.raw, nil
	}
	type plain Comment
	return json.Marshal(plain(c))
}

// decodeRecord requires idField to be present and non-null, decodes data into
// dst and returns a private copy of data.
func decodeRecord(data []byte, kind, idField string, dst any) (json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("%s is not a JSON object: %w", kind, threaderrors.ErrSchemaMismatch)
	}
	id, ok := fields[idField]
	if !ok || bytes.Equal(bytes.TrimSpace(id), []byte("null")) {
		return nil, fmt.Errorf("%s without %s: %w", kind, idField, threaderrors.ErrSchemaMismatch)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return nil, fmt.Errorf("%s has unexpected field types: %v: %w", kind, err, threaderrors.ErrSchemaMismatch)
	}
	return append(json.RawMessage(nil), data...), nil
}

// Response is the common wrapper object every API method returns.
type Response struct {
	Items          json.RawMessage `json:"items,omitempty"`
	HasMore        bool            `json:"has_more"`
	Backoff        *int            `json:"backoff,omitempty"`
	QuotaMax       int             `json:"quota_max"`
	QuotaRemaining int             `json:"quota_remaining"`
	ErrorID        int             `json:"error_id,omitempty"`
	ErrorName      string          `json:"error_name,omitempty"`
	ErrorMessage   string          `json:"error_message,omitempty"`
}

// BackoffSeconds returns the backoff the server asked for, or 0.
func (r *Response) BackoffSeconds() int {
	if r.Backoff == nil || *r.Backoff < 0 {
		return 0
	}
	return *r.Backoff
}

// Err returns an *APIError when the response is an error envelope.
func (r *Response) Err() error {
	if r.ErrorID == 0 {
		return nil
	}
	return &APIError{ID: r.ErrorID, Name: r.ErrorName, Message: r.ErrorMessage}
}

// DecodeItems decodes the items array of r. A missing or null items field
// yields an empty, non-nil slice.
func DecodeItems[T any](r *Response) ([]T, error) {
	items := []T{}
	trimmed := bytes.TrimSpace(r.Items)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return items, nil
	}
	if trimmed[0] != '[' {
		return nil, fmt.Errorf("items is not a list: %w", threaderrors.ErrMalformedResponse)
	}
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// APIError is an error envelope returned by the API.
type APIError struct {
	ID      int
	Name    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d %s: %s", e.ID, e.Name, e.Message)
}

// Unwrap maps the error id onto the application sentinels.
func (e *APIError) Unwrap() error {
	switch e.ID {
	case 401, 402, 403, 405, 406:
		return threaderrors.ErrInvalidKey
	case 502:
		return threaderrors.ErrThrottled
	default:
		return threaderrors.ErrAPIFailure
	}
}

// QuestionOptions selects one page of questions.
type QuestionOptions struct {
	// Tag restricts questions to a single tag. Empty means no tag filter.
	Tag string

	// Page is 1-based.
	Page int

	// PageSize is capped at 100 by the API.
	PageSize int
}

// QuestionPage is one page of the /questions endpoint.
type QuestionPage struct {
	Questions []Question
	HasMore   bool
	Page      int
}

// Default values for list requests
const (
	// MaxPageSize is the largest pagesize the API accepts.
	MaxPageSize = 100

	// DefaultFilter includes post and comment bodies.
	DefaultFilter = "withbody"

	// DefaultSite is the API site parameter for Stack Overflow.
	DefaultSite = "stackoverflow"
)
