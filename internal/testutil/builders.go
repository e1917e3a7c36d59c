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

package testutil

import (
	"fmt"
	"strings"
)

// Question builds a question object with the fields the withbody filter returns.
func Question(id int64) Item {
	return Item{
		"question_id":        id,
		"title":              fmt.Sprintf("Question %d", id),
		"body":               fmt.Sprintf("<p>How do I do thing %d in Java?</p>", id),
		"link":               fmt.Sprintf("https://stackoverflow.com/questions/%d", id),
		"tags":               []string{"java"},
		"is_answered":        false,
		"view_count":         10,
		"answer_count":       0,
		"score":              0,
		"creation_date":      1700000000 - id,
		"last_activity_date": 1700000000 - id,
		"content_license":    "CC BY-SA 4.0",
		"owner": Item{
			"account_id":   1000 + id,
			"user_id":      2000 + id,
			"user_type":    "registered",
			"display_name": fmt.Sprintf("asker%d", id),
		},
	}
}

// Questions builds n questions with consecutive ids starting at start.
func Questions(start int64, n int) []Item {
	out := make([]Item, n)
	for i := range out {
		out[i] = Question(start + int64(i))
	}
	return out
}

// Answer builds an answer on questionID.
func Answer(id, questionID int64, accepted bool) Item {
	return Item{
		"answer_id":       id,
		"question_id":     questionID,
		"is_accepted":     accepted,
		"score":           1,
		"body":            fmt.Sprintf("<p>Answer %d</p>", id),
		"creation_date":   1700000100 - id,
		"content_license": "CC BY-SA 4.0",
	}
}

// Comment builds a comment attached to postID.
func Comment(id, postID int64) Item {
	return Item{
		"comment_id":      id,
		"post_id":         postID,
		"score":           0,
		"edited":          false,
		"body":            fmt.Sprintf("comment %d on %d", id, postID),
		"creation_date":   1700000200 - id,
		"content_license": "CC BY-SA 4.0",
	}
}

// Lines splits NDJSON output into its non-empty lines.
func Lines(data string) []string {
	var out []string
	for _, line := range strings.Split(data, "\n") {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}
