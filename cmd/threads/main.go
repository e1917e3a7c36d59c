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
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sirseerhq/sirseer-threads/internal/apierror"
	threaderrors "github.com/sirseerhq/sirseer-threads/internal/errors"
	"github.com/sirseerhq/sirseer-threads/internal/stackexchange"
	"github.com/sirseerhq/sirseer-threads/pkg/version"
)

const exitInterrupted = 130

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	// A missing .env file is normal.
	_ = godotenv.Load()

	rootCmd := newRootCommand(os.Stdout, os.Stderr)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(mapErrorToExitCode(err))
	}
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sirseer-threads",
		Short: "Collect Stack Overflow question threads as JSON Lines",
		Long: `SirSeer Threads collects the newest questions for a Stack Overflow tag,
together with their answers, question comments and answer comments, and
writes one self-contained thread per line for offline analysis.`,
		Version:       version.Version,
		SilenceUsage:  true, // Don't show usage on error
		SilenceErrors: true, // We'll handle error printing ourselves
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.AddCommand(newCollectCommand(stderr))
	rootCmd.AddCommand(newSummarizeCommand(stdout))

	return rootCmd
}

// mapErrorToExitCode maps internal errors to appropriate exit codes
func mapErrorToExitCode(err error) int {
	if err == nil {
		return 0
	}

	if errors.Is(err, context.Canceled) {
		return exitInterrupted
	}

	// API errors are classified by id, never by message text.
	var apiErr *stackexchange.APIError
	if errors.As(err, &apiErr) {
		if errors.Is(apiErr, threaderrors.ErrInvalidKey) || errors.Is(apiErr, threaderrors.ErrThrottled) {
			return 2
		}
		return 1
	}

	inspector := apierror.NewInspector()
	if inspector.IsAuthError(err) || inspector.IsThrottleError(err) {
		return 2 // Key or throttle errors
	}

	if inspector.IsNetworkError(err) {
		return 3 // Network errors
	}

	return 1 // General error
}
