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

// Package testutil provides common test helpers for sirseer-threads,
// chiefly an httptest fake of the Stack Exchange API.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// Item is a JSON object as the API would return it.
type Item = map[string]interface{}

// Fixture is the data set served by a Server.
type Fixture struct {
	// Questions are served newest first, pagesize at a time.
	Questions []Item

	// Answers by question id.
	Answers map[int64][]Item

	// QuestionComments by question id.
	QuestionComments map[int64][]Item

	// AnswerComments by answer id.
	AnswerComments map[int64][]Item
}

// NewFixture returns an empty fixture with initialized maps.
func NewFixture() *Fixture {
	return &Fixture{
		Answers:          make(map[int64][]Item),
		QuestionComments: make(map[int64][]Item),
		AnswerComments:   make(map[int64][]Item),
	}
}

// Interceptor may write a custom response for a request. Returning true
// means the response was written and the fixture is not consulted.
type Interceptor func(w http.ResponseWriter, r *http.Request, count int) bool

// Server is a fake Stack Exchange API backed by a Fixture.
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	fixture   *Fixture
	requests  []*url.URL
	intercept Interceptor
}

// NewServer starts a fake API serving fixture. The server is closed when the
// test finishes.
func NewServer(t *testing.T, fixture *Fixture) *Server {
	t.Helper()
	if fixture == nil {
		fixture = NewFixture()
	}
	s := &Server{fixture: fixture}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// Intercept installs an Interceptor consulted before the fixture.
func (s *Server) Intercept(i Interceptor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.intercept = i
}

// Requests returns copies of the URLs requested so far, in order.
func (s *Server) Requests() []*url.URL {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*url.URL, len(s.requests))
	for i, u := range s.requests {
		c := *u
		out[i] = &c
	}
	return out
}

// RequestCount returns the number of requests served.
func (s *Server) RequestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// PathCount returns how many requests hit exactly path.
func (s *Server) PathCount(path string) int {
	n := 0
	for _, u := range s.Requests() {
		if u.Path == path {
			n++
		}
	}
	return n
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	u := *r.URL
	s.requests = append(s.requests, &u)
	count := len(s.requests)
	intercept := s.intercept
	s.mu.Unlock()

	if intercept != nil && intercept(w, r, count) {
		return
	}

	q := r.URL.Query()
	pageSize := atoiDefault(q.Get("pagesize"), 30)
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")

	switch {
	case len(parts) == 1 && parts[0] == "questions":
		page := atoiDefault(q.Get("page"), 1)
		items, hasMore := paginate(s.fixture.Questions, page, pageSize)
		WriteItems(w, items, hasMore)
	case len(parts) == 3 && parts[0] == "questions" && parts[2] == "answers":
		items, hasMore := paginate(collect(s.fixture.Answers, parts[1]), 1, pageSize)
		WriteItems(w, items, hasMore)
	case len(parts) == 3 && parts[0] == "questions" && parts[2] == "comments":
		items, hasMore := paginate(collect(s.fixture.QuestionComments, parts[1]), 1, pageSize)
		WriteItems(w, items, hasMore)
	case len(parts) == 3 && parts[0] == "answers" && parts[2] == "comments":
		items, hasMore := paginate(collect(s.fixture.AnswerComments, parts[1]), 1, pageSize)
		WriteItems(w, items, hasMore)
	default:
		WriteError(w, http.StatusNotFound, 404, "no_method", "no method found with this name")
	}
}

// WriteItems writes a success envelope.
func WriteItems(w http.ResponseWriter, items []Item, hasMore bool) {
	if items == nil {
		items = []Item{}
	}
	WriteJSONResponse(w, http.StatusOK, Item{
		"items":           items,
		"has_more":        hasMore,
		"quota_max":       10000,
		"quota_remaining": 9999,
	})
}

// WriteError writes an error envelope with the given HTTP status.
func WriteError(w http.ResponseWriter, status, errorID int, name, message string) {
	WriteJSONResponse(w, status, Item{
		"error_id":      errorID,
		"error_name":    name,
		"error_message": message,
	})
}

// WriteJSONResponse encodes body with the given status. HTML is left
// unescaped, as the real API sends it.
func WriteJSONResponse(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(body)
}

// collect gathers the items for a ";"-joined id list, in id order.
func collect(byID map[int64][]Item, ids string) []Item {
	var out []Item
	for _, part := range strings.Split(ids, ";") {
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			continue
		}
		out = append(out, byID[id]...)
	}
	return out
}

func paginate(items []Item, page, size int) ([]Item, bool) {
	if page < 1 {
		page = 1
	}
	start := (page - 1) * size
	if start >= len(items) {
		return []Item{}, false
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], end < len(items)
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
