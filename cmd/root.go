// Copyright © 2017 Microsoft <wastore@microsoft.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"example.com/prune/common"
	"example.com/prune/internal/engine"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	flagDryRun  bool
	flagSilent  bool
	flagConfirm bool
	flagStats   bool
	flagThreads int
	flagVerbose bool
)

// Execute builds and runs the root command, returning the process exit code.
func Execute() int {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return int(common.EExitCode.Fatal())
	}
	return exitCode
}

// exitCode is set by runRemove and read back by Execute; cobra's RunE only
// surfaces an error, not an arbitrary status, and a usage error from cobra
// itself should not get mixed up with the engine's own outcome.
var exitCode int

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "prune PATH [PATH...]",
		Aliases: []string{"rm", "r"},
		Short:   "Remove one or more directory trees as fast as the OS allows",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exitCode = runRemove(args)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.PersistentFlags().BoolVarP(&flagDryRun, "dry-run", "n", false, "enumerate and report; perform no unlinks")
	cmd.PersistentFlags().BoolVar(&flagSilent, "silent", false, "suppress progress line and summary")
	cmd.PersistentFlags().BoolVar(&flagConfirm, "confirm", false, "prompt for y/N confirmation before unlinking")
	cmd.PersistentFlags().BoolVar(&flagStats, "stats", false, "print extended per-kind error breakdown")
	cmd.PersistentFlags().IntVar(&flagThreads, "threads", 0, "override worker count (default: logical CPU count)")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "print each per-entry error with its path and reason")

	return cmd
}

func runRemove(args []string) int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	lc := common.NewTerminalLifecycleMgr(os.Stdout, os.Stderr, os.Stdin, flagSilent)
	logLevel := common.ELogLevel.Warning()
	if flagVerbose {
		logLevel = common.ELogLevel.Info()
	}
	runID, _ := uuid.NewRandom()
	logger := common.NewLogger(os.Stderr, logLevel, runID)

	opts := engine.Options{
		Paths:   args,
		Threads: flagThreads,
		DryRun:  flagDryRun,
		Silent:  flagSilent,
		Confirm: flagConfirm,
		Verbose: flagVerbose,
	}

	result := engine.Run(ctx, opts, lc, logger)

	if result.ValidationErr != nil {
		lc.Error(result.ValidationErr.Error())
		return int(common.EExitCode.Validation())
	}

	for _, rootErr := range result.RootErrors {
		lc.Error(rootErr.Error())
	}
	if flagVerbose {
		for _, ee := range result.EntryErrors {
			lc.Error(ee.Error())
		}
	}

	if result.Stats != nil {
		lc.Summary(result.Stats.Snapshot().SummaryLines(flagStats))
	}

	return int(engine.ComputeExitCode(result))
}
