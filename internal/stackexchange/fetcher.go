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
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	threaderrors "github.com/sirseerhq/sirseer-threads/internal/errors"
	"github.com/sirseerhq/sirseer-threads/internal/pacing"
)

// Observer is notified of every decoded response, before any backoff wait.
type Observer interface {
	ObserveResponse(endpoint string, resp *Response)
}

// Fetcher performs single GET requests against the API. It holds no mutable
// state after construction.
type Fetcher struct {
	httpClient *http.Client
	key        string
	site       string
	sleeper    pacing.Sleeper
	progress   io.Writer
	observer   Observer
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(c *http.Client) FetcherOption {
	return func(f *Fetcher) {
		f.httpClient = c
	}
}

// WithKey sets the application key injected into every request.
func WithKey(key string) FetcherOption {
	return func(f *Fetcher) {
		f.key = key
	}
}

// WithSite sets the site parameter injected into every request.
func WithSite(site string) FetcherOption {
	return func(f *Fetcher) {
		f.site = site
	}
}

// WithSleeper sets the Sleeper used for server backoff.
func WithSleeper(s pacing.Sleeper) FetcherOption {
	return func(f *Fetcher) {
		f.sleeper = s
	}
}

// WithProgress sets where backoff notices are printed.
func WithProgress(w io.Writer) FetcherOption {
	return func(f *Fetcher) {
		f.progress = w
	}
}

// WithObserver registers an Observer for decoded responses.
func WithObserver(o Observer) FetcherOption {
	return func(f *Fetcher) {
		f.observer = o
	}
}

// NewFetcher creates a Fetcher for the stackoverflow site with no key,
// a 30 second request timeout and wall-clock backoff.
func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		site:     DefaultSite,
		sleeper:  pacing.New(),
		progress: io.Discard,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.httpClient == nil {
		f.httpClient = NewHTTPClient(30 * time.Second)
	}
	return f
}

// Fetch sets key and site on params, issues one GET to endpoint and decodes
// the response envelope whatever the HTTP status. The key is left out when
// none is configured, which uses the anonymous quota. When the envelope carries
// a backoff, Fetch sleeps for that many seconds before returning the
// response; the request is not repeated.
func (f *Fetcher) Fetch(ctx context.Context, endpoint string, params url.Values) (*Response, error) {
	if params == nil {
		params = url.Values{}
	}
	if f.key != "" {
		params.Set("key", f.key)
	}
	params.Set("site", f.site)

	sep := "?"
	if strings.Contains(endpoint, "?") {
		sep = "&"
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+sep+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")

	httpResp, err := f.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("GET %s: %w", endpoint, ctx.Err())
		}
		return nil, fmt.Errorf("GET %s: %w: %w", endpoint, threaderrors.ErrNetworkFailure, stripKey(err, f.key))
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response from %s: %w: %w", endpoint, threaderrors.ErrNetworkFailure, stripKey(err, f.key))
	}

	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode response from %s (status %d): %v: %w",
			endpoint, httpResp.StatusCode, err, threaderrors.ErrMalformedResponse)
	}

	if f.observer != nil {
		f.observer.ObserveResponse(endpoint, &resp)
	}

	if secs := resp.BackoffSeconds(); secs > 0 {
		fmt.Fprintf(f.progress, "Backoff %ds\n", secs)
		if err := f.sleeper.Sleep(ctx, time.Duration(secs)*time.Second); err != nil {
			return nil, fmt.Errorf("wait for backoff: %w", err)
		}
	}

	return &resp, nil
}

// stripKey removes the application key from errors that echo the request
// URL, such as *url.Error.
func stripKey(err error, key string) error {
	if key == "" || !strings.Contains(err.Error(), key) {
		return err
	}
	return &redactedError{msg: strings.ReplaceAll(err.Error(), key, "REDACTED"), err: err}
}

type redactedError struct {
	msg string
	err error
}

func (e *redactedError) Error() string { return e.msg }

func (e *redactedError) Unwrap() error { return e.err }
