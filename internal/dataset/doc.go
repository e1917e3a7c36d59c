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

// Package dataset defines the thread record written to the JSONL dataset
// and the helpers that read a dataset back.
//
// One line of the dataset is one Thread:
//
//	{"question": {...},
//	 "answers": [...],
//	 "question_comments": [...],
//	 "answer_comments": {"<answer id>": [...], ...}}
//
// The answer_comments object only has keys for answers that received at
// least one comment, in the order they were first seen in the comment
// listing.
package dataset
