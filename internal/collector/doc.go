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

// Package collector drives a collection run: it pages through the newest
// questions for a tag, then builds and writes one thread per question.
//
// A run is strictly sequential. Between question pages it waits the page
// delay, and between threads the thread delay. Any error stops the run;
// threads already written stay in the output file.
//
// Example usage:
//
//	c := collector.New(client, collector.Options{
//	    Tag:           "java",
//	    QuestionLimit: 1000,
//	    PageSize:      100,
//	    PageDelay:     time.Second,
//	    ThreadDelay:   300 * time.Millisecond,
//	}, collector.WithProgress(os.Stderr))
//
//	n, err := c.Run(ctx, "java_threads.jsonl")
package collector
