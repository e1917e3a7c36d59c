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
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	threaderrors "github.com/sirseerhq/sirseer-threads/internal/errors"
)

// Client defines the interface for the API methods the collector uses.
// This interface allows for easy mocking in tests.
//
// An error envelope is treated as a response without items: questions come
// back as an empty page and lists come back empty. Only a rejected key is
// returned as an error.
type Client interface {
	// FetchQuestions retrieves one page of questions, newest first.
	FetchQuestions(ctx context.Context, opts QuestionOptions) (*QuestionPage, error)

	// FetchAnswers retrieves the first page (up to 100) of answers on the
	// given questions, newest first.
	FetchAnswers(ctx context.Context, questionIDs []int64) ([]Answer, error)

	// FetchQuestionComments retrieves the first page of comments on the given questions.
	FetchQuestionComments(ctx context.Context, questionIDs []int64) ([]Comment, error)

	// FetchAnswerComments retrieves the first page of comments on the given answers.
	FetchAnswerComments(ctx context.Context, answerIDs []int64) ([]Comment, error)
}

// RESTClient implements Client on top of a Fetcher.
type RESTClient struct {
	fetcher *Fetcher
	baseURL string
	filter  string
}

// ClientOption configures a RESTClient.
type ClientOption func(*RESTClient)

// WithFilter overrides the response filter. The default includes bodies.
func WithFilter(filter string) ClientOption {
	return func(c *RESTClient) {
		c.filter = filter
	}
}

// NewClient creates a client for the API rooted at baseURL, for example
// https://api.stackexchange.com/2.3.
func NewClient(baseURL string, fetcher *Fetcher, opts ...ClientOption) *RESTClient {
	c := &RESTClient{
		fetcher: fetcher,
		baseURL: strings.TrimRight(baseURL, "/"),
		filter:  DefaultFilter,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchQuestions implements Client.
func (c *RESTClient) FetchQuestions(ctx context.Context, opts QuestionOptions) (*QuestionPage, error) {
	if opts.Page <= 0 {
		opts.Page = 1
	}
	if opts.PageSize <= 0 || opts.PageSize > MaxPageSize {
		opts.PageSize = MaxPageSize
	}

	params := c.listParams(opts.PageSize)
	params.Set("page", strconv.Itoa(opts.Page))
	if opts.Tag != "" {
		params.Set("tagged", opts.Tag)
	}

	resp, err := c.fetcher.Fetch(ctx, c.baseURL+"/questions", params)
	if err != nil {
		return nil, fmt.Errorf("fetch questions page %d: %w", opts.Page, err)
	}
	if err := c.checkEnvelope(resp, fmt.Sprintf("questions page %d", opts.Page)); err != nil {
		return nil, err
	}

	questions, err := DecodeItems[Question](resp)
	if err != nil {
		return nil, fmt.Errorf("decode questions page %d: %w", opts.Page, err)
	}

	return &QuestionPage{
		Questions: questions,
		HasMore:   resp.HasMore,
		Page:      opts.Page,
	}, nil
}

// FetchAnswers implements Client.
func (c *RESTClient) FetchAnswers(ctx context.Context, questionIDs []int64) ([]Answer, error) {
	if len(questionIDs) == 0 {
		return []Answer{}, nil
	}
	return fetchList[Answer](ctx, c, "/questions/"+JoinIDs(questionIDs)+"/answers", "answers")
}

// FetchQuestionComments implements Client.
func (c *RESTClient) FetchQuestionComments(ctx context.Context, questionIDs []int64) ([]Comment, error) {
	if len(questionIDs) == 0 {
		return []Comment{}, nil
	}
	return fetchList[Comment](ctx, c, "/questions/"+JoinIDs(questionIDs)+"/comments", "question comments")
}

// FetchAnswerComments implements Client.
func (c *RESTClient) FetchAnswerComments(ctx context.Context, answerIDs []int64) ([]Comment, error) {
	if len(answerIDs) == 0 {
		return []Comment{}, nil
	}
	return fetchList[Comment](ctx, c, "/answers/"+JoinIDs(answerIDs)+"/comments", "answer comments")
}

// fetchList requests a single page of up to MaxPageSize items from path.
func fetchList[T any](ctx context.Context, c *RESTClient, path, what string) ([]T, error) {
	resp, err := c.fetcher.Fetch(ctx, c.baseURL+path, c.listParams(MaxPageSize))
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", what, err)
	}
	if err := c.checkEnvelope(resp, what); err != nil {
		return nil, err
	}

	items, err := DecodeItems[T](resp)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", what, err)
	}
	return items, nil
}

// checkEnvelope returns an error only for a rejected key. Any other error
// envelope is printed to the fetcher's progress stream and its items are
// dropped, so callers see an empty result.
func (c *RESTClient) checkEnvelope(resp *Response, what string) error {
	err := resp.Err()
	if err == nil {
		return nil
	}
	if errors.Is(err, threaderrors.ErrInvalidKey) {
		return fmt.Errorf("fetch %s: %w", what, err)
	}
	fmt.Fprintf(c.fetcher.progress, "API error on %s: %v\n", what, err)
	resp.Items = nil
	return nil
}

func (c *RESTClient) listParams(pageSize int) url.Values {
	return url.Values{
		"pagesize": {strconv.Itoa(pageSize)},
		"order":    {"desc"},
		"sort":     {"creation"},
		"filter":   {c.filter},
	}
}

// JoinIDs renders ids as a batched id path segment, e.g. "11;12;13".
func JoinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ";")
}
