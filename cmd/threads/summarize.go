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

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sirseerhq/sirseer-threads/internal/collector"
	"github.com/sirseerhq/sirseer-threads/internal/dataset"
	"github.com/sirseerhq/sirseer-threads/internal/metadata"
)

func newSummarizeCommand(stdout io.Writer) *cobra.Command {
	var (
		asJSON      bool
		metadataDir string
		tag         string
	)

	cmd := &cobra.Command{
		Use:   "summarize <file>",
		Short: "Summarize a collected thread dataset",
		Long: `Read a JSON Lines thread dataset and report how many threads it holds,
how many of them have an accepted answer, and how many answers and comments
they carry. Lines that cannot be decoded are counted and skipped.

With --metadata-dir the record of the latest collection run for --tag is
printed as well.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummarize(stdout, args[0], asJSON, metadataDir, tag)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the summary as JSON")
	cmd.Flags().StringVar(&metadataDir, "metadata-dir", "", "Directory holding run metadata")
	cmd.Flags().StringVar(&tag, "tag", collector.DefaultTag, "Tag whose latest run metadata to show")

	return cmd
}

// runSummarize prints the summary of the dataset at path.
func runSummarize(w io.Writer, path string, asJSON bool, metadataDir, tag string) error {
	result, err := dataset.LoadFile(path)
	if err != nil {
		return err
	}
	summary := result.Summarize()

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(summary); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	} else {
		fmt.Fprintf(w, "Threads loaded: %d\n", summary.Threads)
		fmt.Fprintf(w, "Failed lines: %d\n", summary.Failed)
		fmt.Fprintf(w, "Solvable threads: %d\n", summary.Solvable)
		fmt.Fprintf(w, "Answers: %d\n", summary.Answers)
		fmt.Fprintf(w, "Question comments: %d\n", summary.QuestionComments)
		fmt.Fprintf(w, "Answer comments: %d\n", summary.AnswerComments)
	}

	if metadataDir == "" {
		return nil
	}

	md, err := metadata.LoadLatestMetadata(metadataDir, tag)
	if err != nil {
		return err
	}
	if md == nil {
		fmt.Fprintf(w, "No run metadata for tag %q in %s\n", tag, metadataDir)
		return nil
	}
	fmt.Fprintf(w, "Latest run for tag %q:\n", tag)
	return metadata.WriteMetadataToWriter(md, w)
}
