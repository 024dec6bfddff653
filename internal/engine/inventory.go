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
	"sync"

	"example.com/prune/common"
)

// Inventory is the complete set of Entries discovered under one Root, plus
// the child-count bookkeeping (I1) that lets the scheduler unlink bottom-up
// (I2) without ever re-reading the filesystem for ordering information.
//
// This generalizes the stack's own per-directory pending-child counter,
// which tracks "safe to request deletion of this folder" the same way, one
// level removed from directory-unlink and applied to deletion instead of
// upload completion.
type Inventory struct {
	Root Root

	mu         sync.Mutex
	entries    []*Entry
	childCount []int64 // indexed by EntryID, meaningful only for directory entries
}

func newInventory(root Root) *Inventory {
	return &Inventory{Root: root}
}

// addEntry appends a new Entry and returns its identifier. If parent is not
// noParent, the parent's child-count is incremented under the same lock so
// I1 holds at every observable point, not just at enumeration completion.
func (inv *Inventory) addEntry(e Entry) EntryID {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	id := EntryID(len(inv.entries))
	entry := e
	inv.entries = append(inv.entries, &entry)
	inv.childCount = append(inv.childCount, 0)

	if e.Parent != noParent {
		inv.childCount[e.Parent]++
	}
	return id
}

func (inv *Inventory) entry(id EntryID) *Entry {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return inv.entries[id]
}

// len reports how many entries were discovered.
func (inv *Inventory) len() int {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return len(inv.entries)
}

// decrementChildCount atomically decrements a directory's outstanding
// child count and reports whether this call drove it to zero. It is safe
// for concurrent callers; exactly one caller observes the zero transition
// because the counter only ever moves downward during scheduling.
func (inv *Inventory) decrementChildCount(parent EntryID) bool {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	inv.childCount[parent]--
	return inv.childCount[parent] == 0
}

func (inv *Inventory) childCountOf(id EntryID) int64 {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return inv.childCount[id]
}

// EntryKind is re-exported for callers outside the package that only need
// the classification, not the full Entry.
type EntryKind = common.EntryKind
