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
	"os"
	"syscall"
	"testing"

	"example.com/prune/common"
	"github.com/stretchr/testify/require"
)

func TestClassifyUnlinkErrorIsAlwaysUnlinkKind(t *testing.T) {
	r := require.New(t)
	r.Equal(common.EErrorKind.Unlink(), classifyUnlinkError(errors.New("anything")))
	r.Equal(common.EErrorKind.Unlink(), classifyUnlinkError(nil))
}

func TestUnlinkFailureReasonClassifiesPermission(t *testing.T) {
	r := require.New(t)
	err := &os.PathError{Op: "remove", Path: "x", Err: syscall.EACCES}
	r.True(os.IsPermission(err))
	r.Equal("permission", unlinkFailureReason(err))
}

func TestUnlinkFailureReasonClassifiesInUse(t *testing.T) {
	r := require.New(t)
	r.Equal("in-use", unlinkFailureReason(errors.New("resource busy or locked")))
	r.Equal("in-use", unlinkFailureReason(errors.New("the process cannot access the file because it is being used by another process")))
}

func TestUnlinkFailureReasonClassifiesIOError(t *testing.T) {
	r := require.New(t)
	r.Equal("i/o", unlinkFailureReason(errors.New("input/output i/o error")))
}

func TestUnlinkFailureReasonFallsBackToOther(t *testing.T) {
	r := require.New(t)
	r.Equal("other", unlinkFailureReason(errors.New("something unexpected happened")))
	r.Equal("other", unlinkFailureReason(nil))
}
