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
	"testing"

	"example.com/prune/common"
	"github.com/stretchr/testify/assert"
)

func TestComputeExitCodePrecedence(t *testing.T) {
	a := assert.New(t)

	cases := []struct {
		name string
		in   Result
		want common.ExitCode
	}{
		{"success", Result{TotalRoots: 1}, common.EExitCode.Success()},
		{
			"interrupted wins over everything else",
			Result{Interrupted: true, ValidationErr: ValidationError{}, TotalRoots: 1, RootErrors: []error{errors.New("x")}},
			common.EExitCode.Interrupted(),
		},
		{
			"validation wins over entry errors",
			Result{ValidationErr: ValidationError{Path: "/", Reason: "filesystem root"}, TotalRoots: 1, EntryErrors: []EntryError{{Path: "x", Kind: common.EErrorKind.Unlink(), Err: errors.New("e")}}},
			common.EExitCode.Validation(),
		},
		{
			"every root failing to open is fatal",
			Result{TotalRoots: 2, RootErrors: []error{errors.New("a"), errors.New("b")}},
			common.EExitCode.Fatal(),
		},
		{
			"one root failing among several is an entry-error exit, not fatal",
			Result{TotalRoots: 2, RootErrors: []error{errors.New("a")}},
			common.EExitCode.EntryErrors(),
		},
		{
			"per-entry errors alone",
			Result{TotalRoots: 1, EntryErrors: []EntryError{{Path: "x", Kind: common.EErrorKind.Unlink(), Err: errors.New("e")}}},
			common.EExitCode.EntryErrors(),
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a.Equal(c.want, ComputeExitCode(c.in))
		})
	}
}
