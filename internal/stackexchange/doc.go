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

// Package stackexchange provides a client for the Stack Exchange REST API
// (version 2.3) covering the endpoints needed to rebuild Stack Overflow
// threads: questions by tag, answers on questions, and comments on
// questions and answers.
//
// The package is split into two layers:
//   - Fetcher issues exactly one GET per call, injects the site and the
//     application key into the query, decodes the response envelope and
//     honors the server's backoff field by sleeping before it returns.
//   - Client (implemented by RESTClient) builds the request for each
//     endpoint and decodes the items into Question, Answer and Comment
//     records.
//
// Records keep the JSON object the API returned and marshal back to it
// unchanged, so fields the typed structs do not model still reach the
// output. Decoding fails with ErrSchemaMismatch when a record lacks its
// identifier.
//
// An error envelope reads as an empty result and is reported on the
// progress stream. A rejected key is the exception and returns an *APIError.
//
// Basic usage:
//
//	fetcher := stackexchange.NewFetcher(
//	    stackexchange.WithKey(os.Getenv("STACKEXCHANGE_KEY")),
//	    stackexchange.WithSite("stackoverflow"),
//	)
//	client := stackexchange.NewClient("https://api.stackexchange.com/2.3", fetcher)
//	page, err := client.FetchQuestions(ctx, stackexchange.QuestionOptions{
//	    Tag:      "java",
//	    Page:     1,
//	    PageSize: 100,
//	})
//	if err != nil {
//	    // Handle error
//	}
//	for _, q := range page.Questions {
//	    answers, err := client.FetchAnswers(ctx, []int64{q.QuestionID})
//	    // ...
//	}
package stackexchange
