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

package common

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPromptAcceptsYVariants(t *testing.T) {
	a := assert.New(t)

	for _, answer := range []string{"y\n", "Y\n", "yes\n", "YES\n"} {
		lc := NewTerminalLifecycleMgr(&bytes.Buffer{}, &bytes.Buffer{}, strings.NewReader(answer), false)
		a.True(lc.Prompt("delete everything?"), "answer %q should confirm", answer)
	}
}

func TestPromptRejectsAnythingElse(t *testing.T) {
	a := assert.New(t)

	for _, answer := range []string{"n\n", "\n", "maybe\n"} {
		lc := NewTerminalLifecycleMgr(&bytes.Buffer{}, &bytes.Buffer{}, strings.NewReader(answer), false)
		a.False(lc.Prompt("delete everything?"), "answer %q should not confirm", answer)
	}
}

func TestSilentSuppressesProgressAndSummaryButNotError(t *testing.T) {
	a := assert.New(t)

	var out, errOut bytes.Buffer
	lc := NewTerminalLifecycleMgr(&out, &errOut, strings.NewReader(""), true)

	lc.Progress("50 files deleted")
	lc.Info("starting")
	lc.Summary([]string{"done"})
	a.Empty(out.String())
	a.Empty(errOut.String())

	lc.Error("boom")
	a.Contains(errOut.String(), "boom")
}

func TestSummaryWritesToOutNotErr(t *testing.T) {
	a := assert.New(t)

	var out, errOut bytes.Buffer
	lc := NewTerminalLifecycleMgr(&out, &errOut, strings.NewReader(""), false)

	lc.Summary([]string{"removed 4 files", "removed 3 directories"})
	a.Contains(out.String(), "removed 4 files")
	a.Contains(out.String(), "removed 3 directories")
	a.Empty(errOut.String())
}
