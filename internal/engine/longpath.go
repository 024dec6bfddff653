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

import "strings"

const (
	extendedPathPrefix    = `\\?\`
	extendedUNCPathPrefix = `\\?\UNC\`
)

// toExtendedPath prefixes a Windows path with the long-path marker so the
// kernel bypasses MAX_PATH and legacy path parsing. UNC paths get the UNC
// variant of the prefix. Already-prefixed paths are returned unchanged;
// every other path, whatever its shape, gets the plain prefix.
func toExtendedPath(short string) string {
	if strings.HasPrefix(short, extendedPathPrefix) {
		return short
	}
	if strings.HasPrefix(short, `\\`) {
		return extendedUNCPathPrefix + short[2:]
	}
	return extendedPathPrefix + short
}

