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
	"sync"

	"example.com/prune/common"
)

// readyQueue is a mutex-and-condition-variable FIFO, the concurrent queue
// shape this scheduler's design notes call for. It shares its termination
// technique (an in-flight counter plus a condition predicate) with the
// crawler's stack, applied here to a FIFO instead of a LIFO so siblings
// within a directory drain roughly in discovery order.
type readyQueue struct {
	mu       sync.Mutex
	cond     *sync.Cond
	items    []EntryID
	inFlight int64
}

func newReadyQueue() *readyQueue {
	q := &readyQueue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

func (q *readyQueue) push(id EntryID) {
	q.mu.Lock()
	q.items = append(q.items, id)
	q.inFlight++
	q.mu.Unlock()
	q.cond.Signal()
}

func (q *readyQueue) pop() (EntryID, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) == 0 {
		if q.inFlight == 0 {
			return 0, false
		}
		q.cond.Wait()
	}
	id := q.items[0]
	q.items = q.items[1:]
	return id, true
}

func (q *readyQueue) done() {
	q.mu.Lock()
	q.inFlight--
	empty := q.inFlight == 0
	q.mu.Unlock()
	if empty {
		q.cond.Broadcast()
	}
}

// Scheduler drains an Inventory bottom-up, dispatching unlinks in parallel
// while honoring I2: a directory is only pushed onto the ready queue once
// its child-count has dropped to zero.
//
// This generalizes the stack's per-directory pending-child bookkeeping
// (child added / child deleted / delete-when-zero) from "safe to request
// the parent folder's deletion" to "safe to push the parent directory onto
// the unlink queue".
type Scheduler struct {
	inv     *Inventory
	backend Backend
	stats   *Stats
	limiter common.HandleLimiter
	logger  common.ILogger
	dryRun  bool
	verbose bool

	errMu sync.Mutex
	errs  []EntryError
}

// NewScheduler builds a Scheduler for inv.
func NewScheduler(inv *Inventory, backend Backend, stats *Stats, limiter common.HandleLimiter, logger common.ILogger, dryRun, verbose bool) *Scheduler {
	return &Scheduler{inv: inv, backend: backend, stats: stats, limiter: limiter, logger: logger, dryRun: dryRun, verbose: verbose}
}

// Run drains the Inventory with workers goroutines and returns the per-entry
// errors observed. It blocks until every reachable Entry has been unlinked,
// failed, or the Inventory is exhausted. A directory whose own listing
// failed (an Enumerate error recorded during the walk) never reaches a zero
// child-count, so it and every ancestor above it are never dispatched and
// remain on disk, consistent with I2. Those ancestors get no error entry of
// their own; only the Enumerate error is reported.
func (s *Scheduler) Run(ctx context.Context, workers int) []EntryError {
	q := newReadyQueue()

	n := s.inv.len()
	for id := 0; id < n; id++ {
		if s.inv.childCountOf(EntryID(id)) == 0 {
			q.push(EntryID(id))
		}
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.worker(ctx, q)
		}()
	}
	wg.Wait()

	return s.errs
}

func (s *Scheduler) worker(ctx context.Context, q *readyQueue) {
	for {
		id, ok := q.pop()
		if !ok {
			return
		}
		s.process(ctx, q, id)
		q.done()
	}
}

func (s *Scheduler) process(ctx context.Context, q *readyQueue, id EntryID) {
	e := s.inv.entry(id)

	if ctx.Err() != nil {
		// Abandoned: not yet started, so the entry is left exactly as it
		// was found. Its parent's child-count is never decremented, which
		// correctly prevents the parent from ever becoming ready.
		return
	}

	if s.limiter != nil {
		if err := s.limiter.Acquire(ctx); err != nil {
			return
		}
	}

	s.unlink(e)

	if s.limiter != nil {
		s.limiter.Release()
	}

	// A hard failure still releases the parent below; otherwise the parent
	// would be stuck forever even though its other children are gone.
	if e.Parent != noParent {
		if s.inv.decrementChildCount(e.Parent) {
			q.push(e.Parent)
		}
	}
}

// unlink performs (or, in dry-run mode, simulates) the removal of a single
// Entry and updates Stats accordingly. It returns whether the entry is now
// considered gone (success or already-vanished).
func (s *Scheduler) unlink(e *Entry) bool {
	if s.dryRun {
		s.countSuccess(e)
		return true
	}

	outcome, err := s.backend.Unlink(e)
	switch outcome {
	case UnlinkSucceeded, UnlinkAlreadyGone:
		s.countSuccess(e)
		return true
	default:
		e.failedErr = err
		kind := classifyUnlinkError(err)
		s.stats.recordError(kind)
		s.stats.recordUnlinkFailureReason(unlinkFailureReason(err))
		s.recordError(EntryError{Path: e.Path, Kind: kind, Err: err})
		if s.verbose && s.logger != nil {
			s.logger.Log(common.ELogLevel.Warning(), e.Path+": "+err.Error())
		}
		return false
	}
}

func (s *Scheduler) countSuccess(e *Entry) {
	e.unlinked.Store(true)
	if e.Kind == common.EEntryKind.Directory() {
		s.stats.recordDirUnlinked()
	} else {
		s.stats.recordFileUnlinked(e.Size)
	}
}

func (s *Scheduler) recordError(ee EntryError) {
	s.errMu.Lock()
	s.errs = append(s.errs, ee)
	s.errMu.Unlock()
}
