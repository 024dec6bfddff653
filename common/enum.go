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
	"reflect"

	"github.com/JeffreyRichter/enum/enum"
)

// LogLevel mirrors the severity levels the job logger understands.
type LogLevel uint8

var ELogLevel = LogLevel(0)

func (LogLevel) None() LogLevel    { return LogLevel(0) }
func (LogLevel) Error() LogLevel   { return LogLevel(1) }
func (LogLevel) Warning() LogLevel { return LogLevel(2) }
func (LogLevel) Info() LogLevel    { return LogLevel(3) }
func (LogLevel) Debug() LogLevel   { return LogLevel(4) }

func (l LogLevel) String() string {
	return enum.StringInt(l, reflect.TypeOf(l))
}

// EntryKind classifies a discovered filesystem entry.
type EntryKind uint8

var EEntryKind = EntryKind(0)

func (EntryKind) File() EntryKind      { return EntryKind(0) }
func (EntryKind) Directory() EntryKind { return EntryKind(1) }
func (EntryKind) Symlink() EntryKind   { return EntryKind(2) }
func (EntryKind) Other() EntryKind     { return EntryKind(3) }

func (k EntryKind) String() string {
	return enum.StringInt(k, reflect.TypeOf(k))
}

// ErrorKind classifies a failure surfaced by the engine.
type ErrorKind uint8

var EErrorKind = ErrorKind(0)

func (ErrorKind) None() ErrorKind        { return ErrorKind(0) }
func (ErrorKind) Validation() ErrorKind  { return ErrorKind(1) }
func (ErrorKind) RootOpen() ErrorKind    { return ErrorKind(2) }
func (ErrorKind) Enumerate() ErrorKind   { return ErrorKind(3) }
func (ErrorKind) Unlink() ErrorKind      { return ErrorKind(4) }
func (ErrorKind) Vanished() ErrorKind    { return ErrorKind(5) }
func (ErrorKind) Interrupted() ErrorKind { return ErrorKind(6) }

func (k ErrorKind) String() string {
	return enum.StringInt(k, reflect.TypeOf(k))
}

// ExitCode enumerates the process exit statuses the driver can return.
type ExitCode int

var EExitCode = ExitCode(0)

func (ExitCode) Success() ExitCode     { return ExitCode(0) }
func (ExitCode) EntryErrors() ExitCode { return ExitCode(1) }
func (ExitCode) Validation() ExitCode  { return ExitCode(2) }
func (ExitCode) Fatal() ExitCode       { return ExitCode(3) }
func (ExitCode) Interrupted() ExitCode { return ExitCode(130) }
