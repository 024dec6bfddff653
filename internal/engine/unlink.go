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
	"os"
	"strings"

	"example.com/prune/common"
)

// classifyUnlinkError maps a failed unlink to its top-level ErrorKind. Every
// hard failure here is an Unlink error; "already gone" never reaches this
// function since the backend reports it as a distinct outcome, not an error.
func classifyUnlinkError(err error) common.ErrorKind {
	return common.EErrorKind.Unlink()
}

// unlinkFailureReason gives the finer permission/in-use/I-O/other breakdown
// the extended --stats summary reports, without promoting any of these to a
// top-level ErrorKind of their own.
func unlinkFailureReason(err error) string {
	if err == nil {
		return "other"
	}
	if os.IsPermission(err) {
		return "permission"
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "busy") || strings.Contains(msg, "being used"):
		return "in-use"
	case strings.Contains(msg, "i/o error") || strings.Contains(msg, "input/output error"):
		return "i/o"
	default:
		return "other"
	}
}
