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

import "example.com/prune/common"

// readdirBatchSize mirrors the batched-listing size used by the crawler this
// enumerator generalizes from: large enough that syscall overhead is
// amortized, small enough to keep memory bounded on very wide directories.
const readdirBatchSize = 10240

// rawEntry is one directory-listing record, classified without a second
// stat call whenever the listing payload already carries the information.
type rawEntry struct {
	name     string
	kind     common.EntryKind
	size     int64
	readOnly bool
}

// dirReader lists the immediate children of a directory in batches.
type dirReader interface {
	ReadDir(path string) ([]rawEntry, error)
}
