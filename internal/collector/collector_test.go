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
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/sirseerhq/sirseer-threads/internal/dataset"
	threaderrors "github.com/sirseerhq/sirseer-threads/internal/errors"
	"github.com/sirseerhq/sirseer-threads/internal/metadata"
	"github.com/sirseerhq/sirseer-threads/internal/pacing"
	"github.com/sirseerhq/sirseer-threads/internal/stackexchange"
	"github.com/sirseerhq/sirseer-threads/internal/testutil"
)

const (
	testPageDelay   = 1 * time.Second
	testThreadDelay = 300 * time.Millisecond
)

func testOptions(limit int) Options {
	return Options{
		Tag:           "java",
		QuestionLimit: limit,
		PageSize:      100,
		PageDelay:     testPageDelay,
		ThreadDelay:   testThreadDelay,
	}
}

func countWaits(waits []time.Duration, d time.Duration) int {
	n := 0
	for _, w := range waits {
		if w == d {
			n++
		}
	}
	return n
}

func TestNew_Defaults(t *testing.T) {
	c := New(stackexchange.NewMockClient(), Options{PageSize: 500})

	if c.opts.Tag != DefaultTag {
		t.Errorf("Tag = %q, want %q", c.opts.Tag, DefaultTag)
	}
	if c.opts.QuestionLimit != DefaultQuestionLimit {
		t.Errorf("QuestionLimit = %d, want %d", c.opts.QuestionLimit, DefaultQuestionLimit)
	}
	if c.opts.PageSize != 100 {
		t.Errorf("PageSize = %d, want 100", c.opts.PageSize)
	}
}

func TestFetchQuestions(t *testing.T) {
	tests := []struct {
		name       string
		available  int
		limit      int
		wantCount  int
		wantCalls  int
		wantWaits  int
		wantFirst  int64
		wantLastID int64
	}{
		{
			name:      "two full pages then empty",
			available: 200, limit: 1000,
			wantCount: 200, wantCalls: 3, wantWaits: 2,
			wantFirst: 1, wantLastID: 200,
		},
		{
			name:      "limit truncates the last page",
			available: 250, limit: 150,
			wantCount: 150, wantCalls: 2, wantWaits: 1,
			wantFirst: 1, wantLastID: 150,
		},
		{
			name:      "limit met exactly",
			available: 500, limit: 100,
			wantCount: 100, wantCalls: 1, wantWaits: 0,
			wantFirst: 1, wantLastID: 100,
		},
		{
			name:      "short final page",
			available: 130, limit: 1000,
			wantCount: 130, wantCalls: 3, wantWaits: 2,
			wantFirst: 1, wantLastID: 130,
		},
		{
			name:      "no questions",
			available: 0, limit: 1000,
			wantCount: 0, wantCalls: 1, wantWaits: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := stackexchange.NewMockClientWithOptions(
				stackexchange.WithQuestions(stackexchange.GenerateQuestions(1, tt.available)),
			)
			recorder := &pacing.Recorder{}
			c := New(mock, testOptions(tt.limit), WithSleeper(recorder))

			questions, err := c.FetchQuestions(context.Background())
			if err != nil {
				t.Fatalf("FetchQuestions failed: %v", err)
			}

			if len(questions) != tt.wantCount {
				t.Errorf("len(questions) = %d, want %d", len(questions), tt.wantCount)
			}
			if mock.CallCount != tt.wantCalls {
				t.Errorf("calls = %d, want %d (%v)", mock.CallCount, tt.wantCalls, mock.Calls)
			}
			if got := countWaits(recorder.Waits(), testPageDelay); got != tt.wantWaits {
				t.Errorf("page waits = %d, want %d", got, tt.wantWaits)
			}
			if tt.wantCount > 0 {
				if questions[0].QuestionID != tt.wantFirst || questions[len(questions)-1].QuestionID != tt.wantLastID {
					t.Errorf("ids span %d..%d, want %d..%d", questions[0].QuestionID,
						questions[len(questions)-1].QuestionID, tt.wantFirst, tt.wantLastID)
				}
			}
			if mock.LastOpts.Tag != "java" || mock.LastOpts.PageSize != 100 {
				t.Errorf("LastOpts = %+v", mock.LastOpts)
			}
		})
	}
}

func TestFetchQuestions_IgnoresHasMore(t *testing.T) {
	srv := testutil.NewServer(t, nil)
	srv.Intercept(func(w http.ResponseWriter, r *http.Request, count int) bool {
		switch r.URL.Query().Get("page") {
		case "1":
			testutil.WriteItems(w, testutil.Questions(1, 100), false)
		case "2":
			testutil.WriteItems(w, testutil.Questions(101, 100), false)
		default:
			testutil.WriteItems(w, nil, false)
		}
		return true
	})

	client := stackexchange.NewClient(srv.URL, stackexchange.NewFetcher(stackexchange.WithSleeper(&pacing.Recorder{})))
	c := New(client, testOptions(1000), WithSleeper(&pacing.Recorder{}))

	questions, err := c.FetchQuestions(context.Background())
	if err != nil {
		t.Fatalf("FetchQuestions failed: %v", err)
	}
	if len(questions) != 200 {
		t.Errorf("len(questions) = %d, want 200", len(questions))
	}
	if srv.RequestCount() != 3 {
		t.Errorf("requests = %d, want 3", srv.RequestCount())
	}
}

func TestFetchQuestions_ProgressLines(t *testing.T) {
	mock := stackexchange.NewMockClientWithOptions(
		stackexchange.WithQuestions(stackexchange.GenerateQuestions(1, 150)),
	)
	var progress bytes.Buffer
	c := New(mock, testOptions(1000), WithSleeper(&pacing.Recorder{}), WithProgress(&progress))

	if _, err := c.FetchQuestions(context.Background()); err != nil {
		t.Fatalf("FetchQuestions failed: %v", err)
	}

	want := "Fetching questions page 1 ...\nFetching questions page 2 ...\nFetching questions page 3 ...\n"
	if progress.String() != want {
		t.Errorf("progress = %q, want %q", progress.String(), want)
	}
}

func TestFetchQuestions_Errors(t *testing.T) {
	tests := []struct {
		name string
		mock *stackexchange.MockClient
		want error
	}{
		{"rejected key", stackexchange.NewMockClientWithOptions(stackexchange.WithAuthFailure()), threaderrors.ErrInvalidKey},
		{"network", &stackexchange.MockClient{ShouldFailNetwork: true}, threaderrors.ErrNetworkFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.mock, testOptions(10), WithSleeper(&pacing.Recorder{}))
			if _, err := c.FetchQuestions(context.Background()); !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFetchQuestions_ErrorEnvelopeEndsPagination(t *testing.T) {
	srv := testutil.NewServer(t, nil)
	srv.Intercept(func(w http.ResponseWriter, r *http.Request, count int) bool {
		if r.URL.Query().Get("page") == "1" {
			testutil.WriteItems(w, testutil.Questions(1, 100), true)
			return true
		}
		testutil.WriteError(w, http.StatusBadRequest, 502, "throttle_violation", "too many requests from this IP")
		return true
	})

	var progress bytes.Buffer
	tracker := metadata.New()
	recorder := &pacing.Recorder{}
	fetcher := stackexchange.NewFetcher(
		stackexchange.WithSleeper(&pacing.Recorder{}),
		stackexchange.WithProgress(&progress),
		stackexchange.WithObserver(tracker),
	)
	c := New(stackexchange.NewClient(srv.URL, fetcher), testOptions(1000),
		WithSleeper(recorder), WithProgress(&progress))

	questions, err := c.FetchQuestions(context.Background())
	if err != nil {
		t.Fatalf("FetchQuestions failed: %v", err)
	}
	if len(questions) != 100 {
		t.Errorf("len(questions) = %d, want 100", len(questions))
	}
	if srv.RequestCount() != 2 {
		t.Errorf("requests = %d, want 2", srv.RequestCount())
	}
	if got := countWaits(recorder.Waits(), testPageDelay); got != 1 {
		t.Errorf("page delays = %d, want 1", got)
	}
	if !strings.Contains(progress.String(), "API error on questions page 2: api error 502 throttle_violation") {
		t.Errorf("progress missing error notice:\n%s", progress.String())
	}
	if r := tracker.Results(); r.APIErrorCount != 1 {
		t.Errorf("APIErrorCount = %d, want 1", r.APIErrorCount)
	}
}

func TestFetchQuestions_ThrottledMockIsEmpty(t *testing.T) {
	c := New(&stackexchange.MockClient{ShouldFailThrottle: true}, testOptions(10), WithSleeper(&pacing.Recorder{}))

	questions, err := c.FetchQuestions(context.Background())
	if err != nil {
		t.Fatalf("FetchQuestions failed: %v", err)
	}
	if len(questions) != 0 {
		t.Errorf("len(questions) = %d, want 0", len(questions))
	}
}

func TestBuildThread(t *testing.T) {
	mock := stackexchange.NewMockClientWithOptions(
		stackexchange.WithAnswers(5,
			stackexchange.Answer{AnswerID: 10, QuestionID: 5, IsAccepted: true},
			stackexchange.Answer{AnswerID: 20, QuestionID: 5},
		),
		stackexchange.WithQuestionComments(5, stackexchange.Comment{CommentID: 1, PostID: 5}),
		stackexchange.WithAnswerComments(10, stackexchange.Comment{CommentID: 2, PostID: 10}),
	)
	c := New(mock, testOptions(1))

	thread, err := c.BuildThread(context.Background(), stackexchange.Question{QuestionID: 5})
	if err != nil {
		t.Fatalf("BuildThread failed: %v", err)
	}

	if diff := cmp.Diff([]string{"answers 5", "question-comments 5", "answer-comments 10;20"}, mock.Calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int64{10, 20}, thread.AnswerIDs()); diff != "" {
		t.Errorf("AnswerIDs mismatch (-want +got):\n%s", diff)
	}
	if len(thread.QuestionComments) != 1 {
		t.Errorf("question comments = %d, want 1", len(thread.QuestionComments))
	}
	if diff := cmp.Diff([]int64{10}, thread.AnswerComments.Keys()); diff != "" {
		t.Errorf("answer comment keys mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildThread_NoAnswersSkipsAnswerComments(t *testing.T) {
	mock := stackexchange.NewMockClient()
	c := New(mock, testOptions(1))

	thread, err := c.BuildThread(context.Background(), stackexchange.Question{QuestionID: 8})
	if err != nil {
		t.Fatalf("BuildThread failed: %v", err)
	}

	if len(mock.CallsWithPrefix("answer-comments")) != 0 {
		t.Errorf("answer comments requested without answers: %v", mock.Calls)
	}

	data, err := json.Marshal(thread)
	if err != nil {
		t.Fatal(err)
	}
	want := `"answers":[],"question_comments":[],"answer_comments":{}}`
	if !strings.HasSuffix(string(data), want) {
		t.Errorf("thread = %s, want suffix %s", data, want)
	}
}

func TestBuildThread_ErrorEnvelopeGivesEmptyLists(t *testing.T) {
	fixture := testutil.NewFixture()
	fixture.QuestionComments[1] = []testutil.Item{testutil.Comment(7, 1)}
	c, srv := newFixtureCollector(t, fixture, 10)
	srv.Intercept(func(w http.ResponseWriter, r *http.Request, count int) bool {
		if strings.HasSuffix(r.URL.Path, "/answers") {
			testutil.WriteError(w, http.StatusBadRequest, 400, "bad_parameter", "ids")
			return true
		}
		return false
	})

	thread, err := c.BuildThread(context.Background(), stackexchange.Question{QuestionID: 1})
	if err != nil {
		t.Fatalf("BuildThread failed: %v", err)
	}
	if thread.Answers == nil || len(thread.Answers) != 0 {
		t.Errorf("Answers = %v, want empty list", thread.Answers)
	}
	if len(thread.QuestionComments) != 1 {
		t.Errorf("QuestionComments = %d, want 1", len(thread.QuestionComments))
	}
	for _, u := range srv.Requests() {
		if strings.HasPrefix(u.Path, "/answers/") {
			t.Errorf("answer comments requested without answers: %s", u.Path)
		}
	}

	data, err := json.Marshal(thread)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"answers":[]`) || !strings.Contains(string(data), `"answer_comments":{}`) {
		t.Errorf("thread JSON = %s", data)
	}
}

func newFixtureCollector(t *testing.T, fixture *testutil.Fixture, limit int, opts ...Option) (*Collector, *testutil.Server) {
	t.Helper()
	srv := testutil.NewServer(t, fixture)
	fetcher := stackexchange.NewFetcher(stackexchange.WithKey("test-key"), stackexchange.WithSleeper(&pacing.Recorder{}))
	client := stackexchange.NewClient(srv.URL, fetcher)
	opts = append([]Option{WithSleeper(&pacing.Recorder{})}, opts...)
	return New(client, testOptions(limit), opts...), srv
}

func TestRun_EndToEnd(t *testing.T) {
	fixture := testutil.NewFixture()
	fixture.Questions = []testutil.Item{testutil.Question(5), testutil.Question(4)}
	fixture.Answers[5] = []testutil.Item{testutil.Answer(10, 5, true), testutil.Answer(20, 5, false)}
	fixture.QuestionComments[5] = []testutil.Item{testutil.Comment(100, 5)}
	fixture.AnswerComments[10] = []testutil.Item{testutil.Comment(200, 10)}

	var progress bytes.Buffer
	recorder := &pacing.Recorder{}
	c, srv := newFixtureCollector(t, fixture, 1000, WithProgress(&progress), WithSleeper(recorder))
	path := filepath.Join(t.TempDir(), "java_threads.jsonl")

	n, err := c.Run(context.Background(), path)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if n != 2 {
		t.Errorf("Run() = %d, want 2", n)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := testutil.Lines(string(data))
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}

	var first map[string]json.RawMessage
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("line 1 is not an object: %v", err)
	}
	var keys []string
	for k := range first {
		keys = append(keys, k)
	}
	if len(keys) != 4 {
		t.Errorf("thread keys = %v, want exactly 4", keys)
	}

	var answerComments map[string][]map[string]interface{}
	if err := json.Unmarshal(first["answer_comments"], &answerComments); err != nil {
		t.Fatalf("answer_comments: %v", err)
	}
	if len(answerComments) != 1 || len(answerComments["10"]) != 1 {
		t.Errorf("answer_comments = %s, want only key 10", first["answer_comments"])
	}
	if !strings.Contains(lines[0], `"body":"<p>How do I do thing 5 in Java?</p>"`) {
		t.Errorf("question body not preserved verbatim: %s", lines[0])
	}

	wantSecond := `"answers":[],"question_comments":[],"answer_comments":{}}`
	if !strings.HasSuffix(lines[1], wantSecond) {
		t.Errorf("line 2 = %s, want suffix %s", lines[1], wantSecond)
	}

	if srv.PathCount("/answers/10;20/comments") != 1 {
		t.Errorf("answer comments not batched: %v", srv.Requests())
	}
	if srv.PathCount("/answers//comments") != 0 {
		t.Error("answer comments requested for a question without answers")
	}
	for _, u := range srv.Requests() {
		if u.Query().Get("key") != "test-key" || u.Query().Get("site") != "stackoverflow" {
			t.Errorf("request %s missing key or site", u)
		}
	}

	if got := countWaits(recorder.Waits(), testThreadDelay); got != 1 {
		t.Errorf("thread waits = %d, want 1", got)
	}

	wantProgress := []string{
		"Fetching questions page 1 ...",
		"Fetching questions page 2 ...",
		"Total questions fetched: 2",
		"Data saved to " + path,
	}
	if diff := cmp.Diff(wantProgress, testutil.Lines(progress.String())); diff != "" {
		t.Errorf("progress mismatch (-want +got):\n%s", diff)
	}

	result, err := dataset.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if s := result.Summarize(); s.Solvable != 1 || s.Answers != 2 || s.AnswerComments != 1 {
		t.Errorf("summary = %+v", s)
	}
}

func TestRun_OverwritesPreviousOutput(t *testing.T) {
	fixture := testutil.NewFixture()
	fixture.Questions = testutil.Questions(1, 3)
	c, _ := newFixtureCollector(t, fixture, 1000)
	path := filepath.Join(t.TempDir(), "out.jsonl")

	for run := 0; run < 2; run++ {
		if _, err := c.Run(context.Background(), path); err != nil {
			t.Fatalf("run %d failed: %v", run, err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := len(testutil.Lines(string(data))); got != 3 {
		t.Errorf("lines after two runs = %d, want 3", got)
	}
}

func TestRun_QuestionFailureLeavesOutputUntouched(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")
	if err := os.WriteFile(path, []byte("previous run\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(&stackexchange.MockClient{ShouldFailNetwork: true}, testOptions(10), WithSleeper(&pacing.Recorder{}))
	if _, err := c.Run(context.Background(), path); !errors.Is(err, threaderrors.ErrNetworkFailure) {
		t.Fatalf("Run error = %v, want ErrNetworkFailure", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "previous run\n" {
		t.Errorf("output changed to %q", data)
	}
}

// failingClient fails the answer listing for one question.
type failingClient struct {
	*stackexchange.MockClient
	failOn int64
}

func (f *failingClient) FetchAnswers(ctx context.Context, ids []int64) ([]stackexchange.Answer, error) {
	if len(ids) == 1 && ids[0] == f.failOn {
		return nil, fmt.Errorf("answers: %w", threaderrors.ErrMalformedResponse)
	}
	return f.MockClient.FetchAnswers(ctx, ids)
}

func TestRun_ErrorAbortsAndKeepsWrittenThreads(t *testing.T) {
	client := &failingClient{
		MockClient: stackexchange.NewMockClientWithOptions(
			stackexchange.WithQuestions(stackexchange.GenerateQuestions(1, 5)),
		),
		failOn: 3,
	}
	c := New(client, testOptions(10), WithSleeper(&pacing.Recorder{}))
	path := filepath.Join(t.TempDir(), "out.jsonl")

	n, err := c.Run(context.Background(), path)
	if !errors.Is(err, threaderrors.ErrMalformedResponse) {
		t.Fatalf("Run error = %v, want ErrMalformedResponse", err)
	}
	if !strings.Contains(err.Error(), "question 3") {
		t.Errorf("error does not name the question: %v", err)
	}
	if n != 2 {
		t.Errorf("written = %d, want 2", n)
	}

	result, err := dataset.LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Threads) != 2 {
		t.Errorf("threads on disk = %d, want 2", len(result.Threads))
	}
	if len(client.CallsWithPrefix("answers 4")) != 0 {
		t.Error("run continued past the failing question")
	}
}

func TestRun_ThreadDelays(t *testing.T) {
	mock := stackexchange.NewMockClientWithOptions(
		stackexchange.WithQuestions(stackexchange.GenerateQuestions(1, 3)),
	)
	recorder := &pacing.Recorder{}
	c := New(mock, testOptions(3), WithSleeper(recorder), WithOpener(func(string) (outputWriter, error) {
		return &memoryWriter{}, nil
	}))

	if _, err := c.Run(context.Background(), "ignored"); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	want := []time.Duration{testThreadDelay, testThreadDelay}
	if diff := cmp.Diff(want, recorder.Waits()); diff != "" {
		t.Errorf("waits mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_ReturnsWriterCount(t *testing.T) {
	mock := stackexchange.NewMockClientWithOptions(
		stackexchange.WithQuestions(stackexchange.GenerateQuestions(1, 4)),
	)
	sink := &memoryWriter{}
	c := New(mock, testOptions(10), WithSleeper(&pacing.Recorder{}), WithOpener(func(string) (outputWriter, error) {
		return sink, nil
	}))

	n, err := c.Run(context.Background(), "ignored")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if n != 4 || n != sink.Count() {
		t.Errorf("Run returned %d, writer holds %d records; want 4", n, sink.Count())
	}
	if !sink.closed {
		t.Error("writer not closed")
	}
}

func TestRun_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mock := stackexchange.NewMockClientWithOptions(
		stackexchange.WithQuestions(stackexchange.GenerateQuestions(1, 3)),
	)
	c := New(mock, testOptions(3), WithSleeper(pacing.New()))

	if _, err := c.Run(ctx, filepath.Join(t.TempDir(), "out.jsonl")); !errors.Is(err, context.Canceled) {
		t.Errorf("Run error = %v, want context.Canceled", err)
	}
}

func TestRun_CanceledDuringThreadDelay(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mock := stackexchange.NewMockClientWithOptions(
		stackexchange.WithQuestions(stackexchange.GenerateQuestions(1, 3)),
	)
	opts := testOptions(3)
	opts.ThreadDelay = time.Hour
	c := New(mock, opts, WithOpener(func(string) (outputWriter, error) {
		return &memoryWriter{}, nil
	}))

	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	n, err := c.Run(ctx, "ignored")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run error = %v, want context.Canceled", err)
	}
	if n != 1 {
		t.Errorf("written = %d, want 1", n)
	}
	if time.Since(start) > 5*time.Second {
		t.Error("Run did not return promptly after cancellation")
	}
}

func TestRun_Tracker(t *testing.T) {
	fixture := testutil.NewFixture()
	fixture.Questions = testutil.Questions(10, 3)
	fixture.Answers[11] = []testutil.Item{testutil.Answer(50, 11, true)}
	fixture.AnswerComments[50] = []testutil.Item{testutil.Comment(60, 50), testutil.Comment(61, 50)}

	srv := testutil.NewServer(t, fixture)
	tracker := metadata.New()
	fetcher := stackexchange.NewFetcher(stackexchange.WithObserver(tracker), stackexchange.WithSleeper(&pacing.Recorder{}))
	c := New(stackexchange.NewClient(srv.URL, fetcher), testOptions(1000),
		WithSleeper(&pacing.Recorder{}), WithTracker(tracker))

	if _, err := c.Run(context.Background(), filepath.Join(t.TempDir(), "out.jsonl")); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	r := tracker.Results()
	if r.APICallCount != srv.RequestCount() {
		t.Errorf("APICallCount = %d, server saw %d", r.APICallCount, srv.RequestCount())
	}
	if r.QuestionsFetched != 3 || r.ThreadsWritten != 3 {
		t.Errorf("questions/threads = %d/%d, want 3/3", r.QuestionsFetched, r.ThreadsWritten)
	}
	if r.Answers != 1 || r.AnswerComments != 2 || r.SolvableThreads != 1 {
		t.Errorf("results = %+v", r)
	}
	if r.FirstQuestionID != 10 || r.LastQuestionID != 12 {
		t.Errorf("id range = %d..%d, want 10..12", r.FirstQuestionID, r.LastQuestionID)
	}
}
