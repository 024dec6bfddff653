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

// ComputeExitCode maps a Result to the process exit status the driver
// returns: interruption, validation refusal, a fatal error (every root
// failed to open), per-entry errors, or success, in that precedence order.
func ComputeExitCode(r Result) common.ExitCode {
	if r.Interrupted {
		return common.EExitCode.Interrupted()
	}
	if r.ValidationErr != nil {
		return common.EExitCode.Validation()
	}
	if r.TotalRoots > 0 && len(r.RootErrors) == r.TotalRoots {
		return common.EExitCode.Fatal()
	}
	if len(r.RootErrors) > 0 || len(r.EntryErrors) > 0 {
		return common.EExitCode.EntryErrors()
	}
	return common.EExitCode.Success()
}
