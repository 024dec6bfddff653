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
	"context"
	"runtime"

	"golang.org/x/sync/semaphore"
)

// HandleLimiter bounds the number of filesystem handles a worker pool holds
// open concurrently, the same way the stack bounds in-flight network sends.
type HandleLimiter interface {
	Acquire(ctx context.Context) error
	Release()
}

type handleLimiter struct {
	sem *semaphore.Weighted
}

// NewHandleLimiter builds a HandleLimiter sized to maxConcurrent. A value <= 0
// is clamped to 1.
func NewHandleLimiter(maxConcurrent int) HandleLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	return &handleLimiter{sem: semaphore.NewWeighted(int64(maxConcurrent))}
}

func (h *handleLimiter) Acquire(ctx context.Context) error {
	return h.sem.Acquire(ctx, 1)
}

func (h *handleLimiter) Release() {
	h.sem.Release(1)
}

// ResolveWorkerCount clamps a user-supplied thread count into [1, 512],
// defaulting to the logical CPU count when requested is 0 or negative.
func ResolveWorkerCount(requested int) int {
	if requested <= 0 {
		requested = runtime.NumCPU()
	}
	if requested < 1 {
		requested = 1
	}
	if requested > 512 {
		requested = 512
	}
	return requested
}
