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
	"sync/atomic"

	"example.com/prune/common"
)

// EntryID is a dense, monotonically-assigned identifier for an Entry within
// one Inventory. It carries no ordering guarantee relative to discovery
// order beyond uniqueness.
type EntryID int64

const noParent EntryID = -1

// Root is a single user-supplied path, resolved and classified by the
// validator before any traversal begins.
type Root struct {
	OriginalArg string
	AbsPath     string
	Kind        common.EntryKind
}

// Entry is one filesystem object discovered under a Root.
type Entry struct {
	Path      string
	Kind      common.EntryKind
	Parent    EntryID
	Size      int64
	ReadOnly  bool
	unlinked  atomic.Bool
	failedErr error
}

// EntryError pairs a failed Entry with the reason it could not be removed.
type EntryError struct {
	Path string
	Kind common.ErrorKind
	Err  error
}

func (e EntryError) Error() string {
	return e.Kind.String() + ": " + e.Path + ": " + e.Err.Error()
}

// UnlinkOutcome is the three-way result the unlink backend contract returns
// for a single Entry.
type UnlinkOutcome int

const (
	UnlinkSucceeded UnlinkOutcome = iota
	UnlinkAlreadyGone
	UnlinkFailed
)

// Backend removes one Entry from its parent directory.
type Backend interface {
	Unlink(e *Entry) (UnlinkOutcome, error)
}
