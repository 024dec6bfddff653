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

import "os"

// posixBackend is a plain unlink/rmdir backend. Directory removal only ever
// happens once I2 guarantees the directory is empty, so os.Remove on a
// directory behaves exactly like rmdir here.
type posixBackend struct{}

// NewBackend returns the platform unlink backend.
func NewBackend() Backend {
	return posixBackend{}
}

func (posixBackend) Unlink(e *Entry) (UnlinkOutcome, error) {
	err := os.Remove(e.Path)
	if err == nil {
		return UnlinkSucceeded, nil
	}
	if os.IsNotExist(err) {
		return UnlinkAlreadyGone, nil
	}
	return UnlinkFailed, err
}
