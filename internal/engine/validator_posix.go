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

	"github.com/pkg/xattr"
)

// checkImmutable is a best-effort probe: a failure to list attributes
// (unsupported filesystem, ENOTSUP) is never itself fatal, only a non-empty
// "trusted.overlay.immutable" or "user.immutable" attribute is. No
// append-only attribute is probed.
func checkImmutable(path string) error {
	list, err := xattr.List(path)
	if err != nil {
		return nil
	}
	for _, name := range list {
		if name != "trusted.overlay.immutable" && name != "user.immutable" {
			continue
		}
		val, err := xattr.Get(path, name)
		if err != nil || len(val) == 0 {
			continue
		}
		return errors.New("immutable extended attribute set")
	}
	return nil
}
