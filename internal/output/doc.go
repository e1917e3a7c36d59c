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

// Package output writes the thread dataset as JSON Lines: one thread
// object per line, each line complete and flushed to the underlying
// writer as soon as it is encoded.
//
// HTML in post and comment bodies is written as-is rather than escaped
// to < sequences, so lines can be inspected with ordinary text tools.
//
// Example usage:
//
//	w, err := output.NewFileWriter("java_threads.jsonl")
//	if err != nil {
//	    return err
//	}
//	defer w.Close()
//
//	for _, thread := range threads {
//	    if err := w.Write(thread); err != nil {
//	        return err
//	    }
//	}
//
//	fmt.Printf("Wrote %d threads\n", w.Count())
package output
