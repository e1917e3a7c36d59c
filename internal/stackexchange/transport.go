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
	"fmt"
	"net/http"
	"time"

	"github.com/sirseerhq/sirseer-threads/pkg/version"
)

// userAgentTransport identifies the collector on every request.
type userAgentTransport struct {
	base  http.RoundTripper
	agent string
}

// newUserAgentTransport wraps base, defaulting to http.DefaultTransport.
func newUserAgentTransport(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &userAgentTransport{
		base:  base,
		agent: fmt.Sprintf("sirseer-threads/%s", version.Version),
	}
}

// RoundTrip implements http.RoundTripper.
func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clonedReq := req.Clone(req.Context())
	clonedReq.Header.Set("User-Agent", t.agent)
	return t.base.RoundTrip(clonedReq)
}

// NewHTTPClient returns the HTTP client the Fetcher uses by default. The API
// always compresses responses; the default transport negotiates and
// decompresses gzip transparently.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: newUserAgentTransport(nil),
	}
}
