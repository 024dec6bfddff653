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
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"
)

// LifecycleMgr is the engine's only door to the terminal. Keeping it behind
// an interface means the deletion engine itself never imports os.Stdout or
// os.Stderr, so it can be driven from a test harness without capturing fds.
type LifecycleMgr interface {
	// Prompt prints msg and blocks for a y/N answer on stdin. Returns false
	// on anything other than an explicit "y"/"yes".
	Prompt(msg string) bool
	// Progress redraws a single in-place status line. No-op when silenced.
	Progress(line string)
	// Info prints an informational line, honoring the silent flag.
	Info(line string)
	// Error prints an error line. Never silenced.
	Error(line string)
	// Summary prints the final report. Honors the silent flag.
	Summary(lines []string)
}

type terminalLifecycleMgr struct {
	mu        sync.Mutex
	out       io.Writer
	errOut    io.Writer
	in        *bufio.Reader
	silent    bool
	lastWidth int
}

// NewTerminalLifecycleMgr builds the default LifecycleMgr: progress and the
// confirmation prompt on errOut, the final summary on out. Silent suppresses
// progress, Info and the summary; the prompt and Error are always written.
func NewTerminalLifecycleMgr(out, errOut io.Writer, in io.Reader, silent bool) LifecycleMgr {
	return &terminalLifecycleMgr{
		out:    out,
		errOut: errOut,
		in:     bufio.NewReader(in),
		silent: silent,
	}
}

func (m *terminalLifecycleMgr) Prompt(msg string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	fmt.Fprintf(m.errOut, "%s [y/N] ", msg)
	line, _ := m.in.ReadString('\n')
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func (m *terminalLifecycleMgr) Progress(line string) {
	if m.silent {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	pad := m.lastWidth - len(line)
	if pad < 0 {
		pad = 0
	}
	fmt.Fprintf(m.errOut, "\r%s%s", line, strings.Repeat(" ", pad))
	m.lastWidth = len(line)
}

func (m *terminalLifecycleMgr) Info(line string) {
	if m.silent {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	fmt.Fprintln(m.errOut, line)
}

func (m *terminalLifecycleMgr) Error(line string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fmt.Fprintln(m.errOut, line)
}

func (m *terminalLifecycleMgr) Summary(lines []string) {
	if m.silent {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.lastWidth > 0 {
		fmt.Fprintf(m.errOut, "\r%s\r", strings.Repeat(" ", m.lastWidth))
	}
	for _, l := range lines {
		fmt.Fprintln(m.out, l)
	}
}
