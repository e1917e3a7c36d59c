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

package output

// OutputWriter is the sink the collector writes threads to.
type OutputWriter interface {
	// Write encodes a single record as one line.
	Write(record interface{}) error

	// Count returns the number of records written so far.
	Count() int

	// Close releases the underlying file, if any.
	Close() error
}
