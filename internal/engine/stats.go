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
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"example.com/prune/common"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

const numErrorKinds = 7 // one slot per ErrorKind value, including None

// Stats is process-wide and shared by reference among every component. The
// counters on the progress hot path are written only through atomic
// operations; readers (the progress renderer, the final summary) never take
// a lock to sample them. The unlink-failure-reason breakdown below is
// sampled only once, at summary time, so it is kept behind a plain mutex
// instead of needing a lock-free shape.
type Stats struct {
	RunID uuid.UUID

	filesUnlinked atomic.Int64
	dirsUnlinked  atomic.Int64
	bytesFreed    atomic.Int64
	errorsByKind  [numErrorKinds]atomic.Int64

	reasonMu sync.Mutex
	reasons  map[string]int64

	startedAt time.Time
}

// NewStats creates a zeroed Stats block stamped with a fresh run identifier.
func NewStats() *Stats {
	id, _ := uuid.NewRandom()
	return &Stats{RunID: id, reasons: make(map[string]int64), startedAt: timeNow()}
}

// timeNow is indirected so tests can't accidentally depend on wall-clock
// jitter in assertions about elapsed time.
var timeNow = time.Now

func (s *Stats) recordFileUnlinked(size int64) {
	s.filesUnlinked.Add(1)
	s.bytesFreed.Add(size)
}

func (s *Stats) recordDirUnlinked() {
	s.dirsUnlinked.Add(1)
}

func (s *Stats) recordError(kind common.ErrorKind) {
	s.errorsByKind[kind].Add(1)
}

// recordUnlinkFailureReason tallies the finer permission/in-use/I-O/other
// breakdown unlinkFailureReason produces for the extended --stats summary.
// This never changes which top-level ErrorKind an error is recorded under.
func (s *Stats) recordUnlinkFailureReason(reason string) {
	s.reasonMu.Lock()
	s.reasons[reason]++
	s.reasonMu.Unlock()
}

// Snapshot is a point-in-time read of Stats. O3 permits this to be
// inconsistent across fields relative to a single instant; it is only ever
// used for display, never for scheduling decisions.
type Snapshot struct {
	FilesUnlinked int64
	DirsUnlinked  int64
	BytesFreed    int64
	ErrorsByKind  map[common.ErrorKind]int64
	FailureReasons map[string]int64
	Elapsed       time.Duration
}

func (s *Stats) Snapshot() Snapshot {
	errs := make(map[common.ErrorKind]int64, numErrorKinds)
	for k := 0; k < numErrorKinds; k++ {
		if n := s.errorsByKind[k].Load(); n > 0 {
			errs[common.ErrorKind(k)] = n
		}
	}

	s.reasonMu.Lock()
	reasons := make(map[string]int64, len(s.reasons))
	for reason, n := range s.reasons {
		reasons[reason] = n
	}
	s.reasonMu.Unlock()

	return Snapshot{
		FilesUnlinked:  s.filesUnlinked.Load(),
		DirsUnlinked:   s.dirsUnlinked.Load(),
		BytesFreed:     s.bytesFreed.Load(),
		ErrorsByKind:   errs,
		FailureReasons: reasons,
		Elapsed:        timeNow().Sub(s.startedAt),
	}
}

// ProgressLine renders the single-line status the renderer redraws at
// roughly 10Hz. It never touches anything workers hold a lock on: it only
// samples atomics.
func (snap Snapshot) ProgressLine() string {
	return fmt.Sprintf("deleted %d files, %d dirs (%s)",
		snap.FilesUnlinked, snap.DirsUnlinked, humanize.Bytes(uint64(snap.BytesFreed)))
}

// SummaryLines renders the final report.
func (snap Snapshot) SummaryLines(extended bool) []string {
	lines := []string{
		fmt.Sprintf("removed %d files and %d directories, freeing %s in %s",
			snap.FilesUnlinked, snap.DirsUnlinked, humanize.Bytes(uint64(snap.BytesFreed)), snap.Elapsed.Round(time.Millisecond)),
	}
	if extended && len(snap.ErrorsByKind) > 0 {
		for k, n := range snap.ErrorsByKind {
			lines = append(lines, fmt.Sprintf("  %s errors: %d", k, n))
		}
	}
	if extended && len(snap.FailureReasons) > 0 {
		reasons := make([]string, 0, len(snap.FailureReasons))
		for reason := range snap.FailureReasons {
			reasons = append(reasons, reason)
		}
		sort.Strings(reasons)
		for _, reason := range reasons {
			lines = append(lines, fmt.Sprintf("  unlink failures (%s): %d", reason, snap.FailureReasons[reason]))
		}
	}
	return lines
}

// RunProgressRenderer samples stats at the given interval and redraws a
// single line via lc until stop is closed, then draws one final frame.
// It never blocks on anything a worker holds.
func RunProgressRenderer(stats *Stats, lc common.LifecycleMgr, interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	// Only the atomic counters are read here; Snapshot would also take
	// reasonMu, which workers hold while recording a failure reason.
	line := func() string {
		return Snapshot{
			FilesUnlinked: stats.filesUnlinked.Load(),
			DirsUnlinked:  stats.dirsUnlinked.Load(),
			BytesFreed:    stats.bytesFreed.Load(),
		}.ProgressLine()
	}
	for {
		select {
		case <-ticker.C:
			lc.Progress(line())
		case <-stop:
			lc.Progress(line())
			return
		}
	}
}
