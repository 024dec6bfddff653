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
	"io"
	"log"
	"sync"

	"github.com/google/uuid"
)

// ILogger is the narrow logging surface every engine component depends on.
// Nothing outside this package touches the standard log package directly.
type ILogger interface {
	ShouldLog(level LogLevel) bool
	Log(level LogLevel, msg string)
}

type nullLogger struct{}

func (nullLogger) ShouldLog(LogLevel) bool   { return false }
func (nullLogger) Log(LogLevel, string)      {}

// NullLogger discards everything. Used by tests that don't care about log output.
var NullLogger ILogger = nullLogger{}

type stdLogger struct {
	mu                sync.Mutex
	minimumLevelToLog LogLevel
	runID             uuid.UUID
	logger            *log.Logger
}

// NewLogger builds an ILogger writing to w at the given minimum level, prefixing
// every line with a run identifier so concurrent worker output can be correlated.
func NewLogger(w io.Writer, minimumLevelToLog LogLevel, runID uuid.UUID) ILogger {
	return &stdLogger{
		minimumLevelToLog: minimumLevelToLog,
		runID:             runID,
		logger:            log.New(w, "", log.Ltime|log.Lmsgprefix),
	}
}

func (l *stdLogger) ShouldLog(level LogLevel) bool {
	if level == ELogLevel.None() {
		return false
	}
	return level <= l.minimumLevelToLog
}

func (l *stdLogger) Log(level LogLevel, msg string) {
	if !l.ShouldLog(level) {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger.Printf("[%s] %s: %s", l.runID.String()[:8], level, msg)
}
