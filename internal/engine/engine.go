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

package engine

import (
	"context"
	"strconv"
	"sync"
	"time"

	"example.com/prune/common"
)

// Options carries everything the Driver resolved from the command line.
type Options struct {
	Paths   []string
	Threads int
	DryRun  bool
	Silent  bool
	Confirm bool
	Verbose bool
}

// Result is the outcome of one invocation, enough for the Driver to compute
// an exit code and render the final summary.
type Result struct {
	Stats         *Stats
	TotalRoots    int
	ValidationErr error
	RootErrors    []error
	EntryErrors   []EntryError
	Interrupted   bool
}

// Run validates, enumerates, optionally confirms, and schedules deletion of
// every requested path. It is the single entry point cmd/root.go calls; the
// engine package itself never touches a terminal, only the LifecycleMgr.
func Run(ctx context.Context, opts Options, lc common.LifecycleMgr, logger common.ILogger) Result {
	roots, err := Validate(opts.Paths)
	if err != nil {
		return Result{ValidationErr: err}
	}

	workers := common.ResolveWorkerCount(opts.Threads)
	stats := NewStats()

	type enumerated struct {
		inv  *Inventory
		errs []EntryError
		err  error
		root Root
	}
	enumResults := make([]enumerated, len(roots))

	var wg sync.WaitGroup
	for i, root := range roots {
		wg.Add(1)
		go func(i int, root Root) {
			defer wg.Done()
			inv, errs, err := Enumerate(ctx, root, workers, logger)
			enumResults[i] = enumerated{inv: inv, errs: errs, err: err, root: root}
		}(i, root)
	}
	wg.Wait()

	var rootErrors []error
	var entryErrors []EntryError
	var inventories []*Inventory
	for _, r := range enumResults {
		if r.err != nil {
			rootErrors = append(rootErrors, r.err)
			continue
		}
		entryErrors = append(entryErrors, r.errs...)
		inventories = append(inventories, r.inv)
	}

	if opts.Confirm && !opts.DryRun && len(inventories) > 0 {
		if !lc.Prompt(confirmationSummary(inventories)) {
			return Result{Stats: stats, TotalRoots: len(roots), RootErrors: rootErrors, EntryErrors: entryErrors}
		}
	}

	stop := make(chan struct{})
	if !opts.Silent {
		go RunProgressRenderer(stats, lc, 100*time.Millisecond, stop)
	}

	backend := NewBackend()
	limiter := common.NewHandleLimiter(workers)

	// O2: roots are processed concurrently, with no cross-root ordering.
	var schedWg sync.WaitGroup
	var mu sync.Mutex
	for _, inv := range inventories {
		schedWg.Add(1)
		go func(inv *Inventory) {
			defer schedWg.Done()
			sched := NewScheduler(inv, backend, stats, limiter, logger, opts.DryRun, opts.Verbose)
			errs := sched.Run(ctx, workers)
			mu.Lock()
			entryErrors = append(entryErrors, errs...)
			mu.Unlock()
		}(inv)
	}
	schedWg.Wait()
	close(stop)

	return Result{
		Stats:       stats,
		TotalRoots:  len(roots),
		RootErrors:  rootErrors,
		EntryErrors: entryErrors,
		Interrupted: ctx.Err() != nil,
	}
}

func confirmationSummary(inventories []*Inventory) string {
	total := 0
	for _, inv := range inventories {
		total += inv.len()
	}
	return "about to remove " + strconv.Itoa(len(inventories)) + " root(s) totaling " + strconv.Itoa(total) + " entries"
}
