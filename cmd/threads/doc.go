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

// Package main implements the sirseer-threads command-line interface.
// It collects the newest Stack Overflow questions for a tag together with
// their answers and comments, and writes one thread per line to a JSON
// Lines file.
//
// The CLI supports:
//   - Collecting threads for any tag with a configurable question limit
//   - Configuration through YAML files, environment variables and flags
//   - An application key from --key, STACKEXCHANGE_KEY or a .env file
//   - Run metadata written next to previous runs
//   - Summarizing a collected dataset
//
// Usage:
//
//	sirseer-threads collect [flags]
//	sirseer-threads summarize <file> [flags]
//
// Example:
//
//	export STACKEXCHANGE_KEY=your_key
//	sirseer-threads collect --tag java --limit 1000 --output java_threads.jsonl
//
// Exit codes:
//   - 0: Success
//   - 1: General error
//   - 2: Key rejected or request throttled
//   - 3: Network error
//   - 130: Interrupted
package main
