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

// Package errors defines sentinel errors for consistent error handling across the application.
// These errors map to specific exit codes in the CLI for proper scripting support.
package errors

import "errors"

// Sentinel errors for consistent error handling and exit code mapping
var (
	// ErrInvalidKey indicates the Stack Exchange API rejected the application key
	// or the request lacked required access.
	// Maps to exit code 2.
	ErrInvalidKey = errors.New("invalid stack exchange key")

	// ErrThrottled indicates the API refused the request with a throttle violation.
	// Maps to exit code 2.
	ErrThrottled = errors.New("stack exchange throttle violation")

	// ErrNetworkFailure indicates a network connection problem.
	// Maps to exit code 3.
	ErrNetworkFailure = errors.New("network connection failed")

	// ErrMalformedResponse indicates a response body that is not a JSON object.
	ErrMalformedResponse = errors.New("malformed api response")

	// ErrSchemaMismatch indicates a record without a field the collector relies on,
	// such as question_id, answer_id or post_id.
	ErrSchemaMismatch = errors.New("response schema mismatch")

	// ErrAPIFailure indicates any other error envelope returned by the API.
	ErrAPIFailure = errors.New("stack exchange api error")
)
