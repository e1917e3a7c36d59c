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

package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/sirseerhq/sirseer-threads/internal/stackexchange"
)

// Thread is a question with its answers and all first-page comments.
type Thread struct {
	Question         stackexchange.Question  `json:"question"`
	Answers          []stackexchange.Answer  `json:"answers"`
	QuestionComments []stackexchange.Comment `json:"question_comments"`
	AnswerComments   *AnswerComments         `json:"answer_comments"`
}

// NewThread assembles a thread. Nil inputs become empty collections so the
// encoded line always carries [] and {} rather than null.
func NewThread(q stackexchange.Question, answers []stackexchange.Answer, questionComments []stackexchange.Comment, answerComments *AnswerComments) *Thread {
	if answers == nil {
		answers = []stackexchange.Answer{}
	}
	if questionComments == nil {
		questionComments = []stackexchange.Comment{}
	}
	if answerComments == nil {
		answerComments = NewAnswerComments()
	}
	return &Thread{
		Question:         q,
		Answers:          answers,
		QuestionComments: questionComments,
		AnswerComments:   answerComments,
	}
}

// AnswerIDs returns the ids of the thread's answers in order.
func (t *Thread) AnswerIDs() []int64 {
	ids := make([]int64, len(t.Answers))
	for i, a := range t.Answers {
		ids[i] = a.AnswerID
	}
	return ids
}

// IsSolvable reports whether the question has an accepted answer.
func (t *Thread) IsSolvable() bool {
	for _, a := range t.Answers {
		if a.IsAccepted {
			return true
		}
	}
	return false
}

// CommentCount returns the number of question and answer comments.
func (t *Thread) CommentCount() int {
	n := len(t.QuestionComments)
	if t.AnswerComments != nil {
		for _, id := range t.AnswerComments.Keys() {
			n += len(t.AnswerComments.Get(id))
		}
	}
	return n
}

// AnswerComments maps answer ids to their comments and remembers the order
// in which ids were first added. It encodes as a JSON object keyed by the
// decimal answer id.
type AnswerComments struct {
	order  []int64
	byPost map[int64][]stackexchange.Comment
}

// NewAnswerComments returns an empty mapping.
func NewAnswerComments() *AnswerComments {
	return &AnswerComments{byPost: make(map[int64][]stackexchange.Comment)}
}

// GroupByPost buckets comments by their post id. Relative order within each
// bucket follows the input.
func GroupByPost(comments []stackexchange.Comment) *AnswerComments {
	ac := NewAnswerComments()
	for _, c := range comments {
		ac.Add(c)
	}
	return ac
}

// Add appends c to the bucket for c.PostID.
func (ac *AnswerComments) Add(c stackexchange.Comment) {
	if ac.byPost == nil {
		ac.byPost = make(map[int64][]stackexchange.Comment)
	}
	if _, ok := ac.byPost[c.PostID]; !ok {
		ac.order = append(ac.order, c.PostID)
	}
	ac.byPost[c.PostID] = append(ac.byPost[c.PostID], c)
}

// Get returns the comments on answerID, or nil.
func (ac *AnswerComments) Get(answerID int64) []stackexchange.Comment {
	return ac.byPost[answerID]
}

// Keys returns the answer ids in first-seen order.
func (ac *AnswerComments) Keys() []int64 {
	out := make([]int64, len(ac.order))
	copy(out, ac.order)
	return out
}

// Len returns the number of answers with comments.
func (ac *AnswerComments) Len() int {
	return len(ac.order)
}

// MarshalJSON implements json.Marshaler.
func (ac *AnswerComments) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range ac.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(strconv.FormatInt(id, 10))
		buf.WriteString(`":`)
		comments, err := json.Marshal(ac.byPost[id])
		if err != nil {
			return nil, fmt.Errorf("encode comments for answer %d: %w", id, err)
		}
		buf.Write(comments)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler, keeping the key order of data.
func (ac *AnswerComments) UnmarshalJSON(data []byte) error {
	*ac = AnswerComments{byPost: make(map[int64][]stackexchange.Comment)}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("answer_comments must be an object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return fmt.Errorf("answer_comments key %q is not an answer id", key)
		}

		var comments []stackexchange.Comment
		if err := dec.Decode(&comments); err != nil {
			return fmt.Errorf("answer_comments[%s]: %w", key, err)
		}
		if _, ok := ac.byPost[id]; !ok {
			ac.order = append(ac.order, id)
		}
		ac.byPost[id] = append(ac.byPost[id], comments...)
	}

	_, err = dec.Token()
	return err
}
