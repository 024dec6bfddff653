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
	"os"
	"path/filepath"
	"sync"

	"example.com/prune/common"
	"github.com/pkg/errors"
)

// RootOpenError wraps a fatal failure to open a Root's top-level path.
type RootOpenError struct {
	Path string
	Err  error
}

func (e RootOpenError) Error() string { return "cannot open " + e.Path + ": " + e.Err.Error() }
func (e RootOpenError) Unwrap() error { return e.Err }

type crawlJob struct {
	path   string
	parent EntryID
	isRoot bool
}

// crawler is a fixed-size worker pool draining a LIFO-biased work-stealing
// stack of directories, generalizing the tree-crawler mechanics this
// enumerator is built on: a condition variable guards the shared stack, and
// an in-flight counter lets every worker agree on termination without a
// separate shutdown signal racing the last unit of work.
type crawler struct {
	mu       sync.Mutex
	cond     *sync.Cond
	stack    []crawlJob
	inFlight int64

	reader dirReader
	inv    *Inventory
	logger common.ILogger

	errMu    sync.Mutex
	errs     []EntryError
	fatalOne sync.Once
	fatalErr error
}

func newCrawler(inv *Inventory, logger common.ILogger) *crawler {
	c := &crawler{
		reader: newDirReader(),
		inv:    inv,
		logger: logger,
	}
	c.cond = sync.NewCond(&c.mu)
	return c
}

func (c *crawler) push(job crawlJob) {
	c.mu.Lock()
	c.stack = append(c.stack, job)
	c.inFlight++
	c.mu.Unlock()
	c.cond.Signal()
}

// pop blocks until a job is available or every worker agrees there is no
// more work (inFlight reaches zero with an empty stack).
func (c *crawler) pop() (crawlJob, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for len(c.stack) == 0 {
		if c.inFlight == 0 {
			return crawlJob{}, false
		}
		c.cond.Wait()
	}
	n := len(c.stack) - 1
	job := c.stack[n]
	c.stack = c.stack[:n]
	return job, true
}

func (c *crawler) done() {
	c.mu.Lock()
	c.inFlight--
	done := c.inFlight == 0
	c.mu.Unlock()
	if done {
		c.cond.Broadcast()
	}
}

func (c *crawler) recordError(ee EntryError) {
	c.errMu.Lock()
	c.errs = append(c.errs, ee)
	c.errMu.Unlock()
}

func (c *crawler) worker(ctx context.Context) {
	for {
		job, ok := c.pop()
		if !ok {
			return
		}
		if ctx.Err() != nil {
			c.done()
			continue
		}
		c.visit(job)
		c.done()
	}
}

func (c *crawler) visit(job crawlJob) {
	children, err := c.reader.ReadDir(job.path)
	if err != nil {
		if job.isRoot {
			// The root's own top-level open failing is fatal for this Root;
			// the first worker to observe it wins, the rest just unwind.
			c.fatalOne.Do(func() {
				c.fatalErr = RootOpenError{Path: job.path, Err: errors.WithStack(err)}
			})
			return
		}
		// Interior listing failure: the directory itself becomes
		// un-unlinkable (I2 can never be satisfied for it) but siblings
		// still proceed. A synthetic, never-decremented child keeps its
		// count permanently above zero.
		c.inv.mu.Lock()
		c.inv.childCount[job.parent]++
		c.inv.mu.Unlock()
		c.recordError(EntryError{Path: job.path, Kind: common.EErrorKind.Enumerate(), Err: err})
		return
	}

	for _, child := range children {
		childPath := filepath.Join(job.path, child.name)
		id := c.inv.addEntry(Entry{
			Path:     childPath,
			Kind:     child.kind,
			Parent:   job.parent,
			Size:     child.size,
			ReadOnly: child.readOnly,
		})
		if child.kind == common.EEntryKind.Directory() {
			c.push(crawlJob{path: childPath, parent: id})
		}
	}
}

// Enumerate walks root and returns its complete Inventory. A fatal error is
// returned only when the root's own top-level open fails; interior errors
// are returned as the second result, alongside the Inventory.
func Enumerate(ctx context.Context, root Root, workers int, logger common.ILogger) (*Inventory, []EntryError, error) {
	inv := newInventory(root)

	if root.Kind != common.EEntryKind.Directory() {
		// A file or symlink root is its own single-entry inventory; the
		// scheduler treats it exactly like a leaf. A root that does not
		// exist at all yields an empty inventory: deleting something that
		// was never there is success with zero counts, not a recorded
		// unlink of a phantom entry.
		if _, err := os.Lstat(root.AbsPath); err != nil {
			return inv, nil, nil
		}
		inv.addEntry(Entry{Path: root.AbsPath, Kind: root.Kind, Parent: noParent})
		return inv, nil, nil
	}

	rootID := inv.addEntry(Entry{Path: root.AbsPath, Kind: common.EEntryKind.Directory(), Parent: noParent})

	c := newCrawler(inv, logger)
	c.push(crawlJob{path: root.AbsPath, parent: rootID, isRoot: true})

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.worker(ctx)
		}()
	}
	wg.Wait()

	if c.fatalErr != nil {
		return nil, nil, c.fatalErr
	}

	return inv, c.errs, nil
}
