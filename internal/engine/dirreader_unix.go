//go:build !windows

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
	"errors"
	"io"
	"os"

	"example.com/prune/common"
)

// defaultDirReader uses os.File.ReadDir in batches, classifying each child
// from the os.DirEntry it already has in hand.
type defaultDirReader struct{}

func newDirReader() dirReader {
	return defaultDirReader{}
}

func (defaultDirReader) ReadDir(path string) ([]rawEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []rawEntry
	for {
		batch, err := f.ReadDir(readdirBatchSize)
		for _, de := range batch {
			out = append(out, classifyDirEntry(de))
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return out, err
		}
		if len(batch) < readdirBatchSize {
			break
		}
	}
	return out, nil
}

func classifyDirEntry(de os.DirEntry) rawEntry {
	re := rawEntry{name: de.Name()}
	info, err := de.Info()
	switch {
	case de.Type()&os.ModeSymlink != 0:
		re.kind = common.EEntryKind.Symlink()
	case de.IsDir():
		re.kind = common.EEntryKind.Directory()
	case de.Type().IsRegular():
		re.kind = common.EEntryKind.File()
	default:
		re.kind = common.EEntryKind.Other()
	}
	if err == nil {
		re.size = info.Size()
		re.readOnly = info.Mode()&0o200 == 0
	}
	return re
}
