//go:build windows

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
	"unsafe"

	"example.com/prune/common"
	"github.com/hillu/go-ntdll"
	"golang.org/x/sys/windows"
)

const (
	fileDispositionFlagDelete        = 0x00000001
	fileDispositionFlagPosixSemantics = 0x00000002
)

// These are package-level indirections over the raw Win32/NT calls so tests
// can substitute fake outcomes without a real filesystem handle; production
// code never reassigns them.
var (
	createFileFn         = windows.CreateFile
	setFileAttributesFn  = windows.SetFileAttributes
	closeHandleFn        = windows.CloseHandle
	setInformationFileFn = ntdll.NtSetInformationFile
)

// fileDispositionInfoEx mirrors FILE_DISPOSITION_INFO_EX from winnt.h. Its
// layout, not any symbol exported by ntdll, is the actual contract, so it
// is defined locally rather than assumed to be re-exported by the binding.
type fileDispositionInfoEx struct {
	Flags uint32
}

// windowsBackend opens a minimal delete-plus-attributes handle and uses
// NtSetInformationFile with the POSIX-semantics disposition flag so the
// name disappears from its parent directory immediately, rather than at
// last-handle-close. This generalizes the write-through-file open pattern
// (backup semantics) to deletion instead of write access, and adds a
// readonly clear-and-retry-once on an access-denied open.
type windowsBackend struct{}

// NewBackend returns the platform unlink backend.
func NewBackend() Backend {
	return windowsBackend{}
}

func (windowsBackend) Unlink(e *Entry) (UnlinkOutcome, error) {
	pathPtr, err := windows.UTF16PtrFromString(toExtendedPath(e.Path))
	if err != nil {
		return UnlinkFailed, err
	}

	attrFlags := uint32(windows.FILE_FLAG_OPEN_REPARSE_POINT)
	if e.Kind == common.EEntryKind.Directory() {
		attrFlags |= windows.FILE_FLAG_BACKUP_SEMANTICS
	}

	handle, err := openForDelete(pathPtr, attrFlags)
	if err != nil {
		if err == windows.ERROR_FILE_NOT_FOUND || err == windows.ERROR_PATH_NOT_FOUND { //nolint:errorlint
			return UnlinkAlreadyGone, nil
		}
		if err == windows.ERROR_ACCESS_DENIED && e.ReadOnly { //nolint:errorlint
			if clearErr := setFileAttributesFn(pathPtr, windows.FILE_ATTRIBUTE_NORMAL); clearErr == nil {
				handle, err = openForDelete(pathPtr, attrFlags)
			}
		}
	}
	if err != nil {
		return UnlinkFailed, err
	}
	defer closeHandleFn(handle)

	if status := setPosixDisposition(handle); !status.IsSuccess() {
		if status == ntdll.STATUS_NOT_SUPPORTED {
			if legacyErr := setLegacyDisposition(handle); legacyErr != nil {
				return UnlinkFailed, legacyErr
			}
			return UnlinkSucceeded, nil
		}
		return UnlinkFailed, status.Error()
	}
	return UnlinkSucceeded, nil
}

func openForDelete(pathPtr *uint16, flags uint32) (windows.Handle, error) {
	return createFileFn(
		pathPtr,
		windows.DELETE|windows.FILE_READ_ATTRIBUTES,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE|windows.FILE_SHARE_DELETE,
		nil,
		windows.OPEN_EXISTING,
		flags,
		0,
	)
}

// fileDispositionInfo mirrors FILE_DISPOSITION_INFORMATION, the legacy
// (non-POSIX) disposition struct used when the POSIX variant is rejected by
// an older kernel.
type fileDispositionInfo struct {
	DeleteFile uint8
}

func setPosixDisposition(handle windows.Handle) ntdll.NtStatus {
	info := fileDispositionInfoEx{Flags: fileDispositionFlagDelete | fileDispositionFlagPosixSemantics}
	var iosb ntdll.IoStatusBlock
	return setInformationFileFn(
		ntdll.Handle(handle),
		&iosb,
		(*byte)(unsafe.Pointer(&info)),
		uint32(unsafe.Sizeof(info)),
		ntdll.FileDispositionInformationEx,
	)
}

func setLegacyDisposition(handle windows.Handle) error {
	info := fileDispositionInfo{DeleteFile: 1}
	var iosb ntdll.IoStatusBlock
	status := setInformationFileFn(
		ntdll.Handle(handle),
		&iosb,
		(*byte)(unsafe.Pointer(&info)),
		uint32(unsafe.Sizeof(info)),
		ntdll.FileDispositionInformation,
	)
	if !status.IsSuccess() {
		return status.Error()
	}
	return nil
}
