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
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"example.com/prune/common"
	"github.com/pkg/errors"
)

// RootDriveRegex matches a bare Windows drive root such as "C:\" or "C:".
var RootDriveRegex = regexp.MustCompile(`(?i)^[A-Z]:\\?$`)

var posixProtected = []string{
	"/", "/etc", "/usr", "/bin", "/sbin", "/var", "/boot", "/System", "/Library",
}

var windowsProtected = []string{
	`C:\Windows`, `C:\Program Files`, `C:\Program Files (x86)`,
}

// ValidationError is returned when a path is refused by the validator.
type ValidationError struct {
	Path   string
	Reason string
}

func (v ValidationError) Error() string {
	return "refusing to operate on " + v.Path + ": " + v.Reason
}

// Validate resolves each raw argument to an absolute path, classifies it,
// and rejects any that match a protected-path rule. A non-existent path is
// not rejected here; it is classified Other, and Enumerate turns it into an
// empty inventory (success with zero counts), not a RootOpen error.
func Validate(args []string) ([]Root, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, "resolving current working directory")
	}
	home, _ := os.UserHomeDir()

	roots := make([]Root, 0, len(args))
	for _, arg := range args {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return nil, errors.Wrapf(err, "resolving %q", arg)
		}
		abs = filepath.Clean(abs)

		if reason := protectedReason(abs, cwd, home); reason != "" {
			return nil, ValidationError{Path: abs, Reason: reason}
		}

		if err := checkImmutable(abs); err != nil {
			return nil, ValidationError{Path: abs, Reason: err.Error()}
		}

		kind := common.EEntryKind.Other()
		if fi, statErr := os.Lstat(abs); statErr == nil {
			switch {
			case fi.Mode()&os.ModeSymlink != 0:
				kind = common.EEntryKind.Symlink()
			case fi.IsDir():
				kind = common.EEntryKind.Directory()
			default:
				kind = common.EEntryKind.File()
			}
		}

		roots = append(roots, Root{OriginalArg: arg, AbsPath: abs, Kind: kind})
	}
	return roots, nil
}

func protectedReason(abs, cwd, home string) string {
	if RootDriveRegex.MatchString(abs) {
		return "filesystem drive root"
	}
	if abs == "/" {
		return "filesystem root"
	}
	if samePath(abs, cwd) {
		return "current working directory"
	}
	if home != "" && samePath(abs, home) {
		return "user profile directory"
	}
	list := posixProtected
	if runtime.GOOS == "windows" {
		list = windowsProtected
	}
	for _, p := range list {
		if samePath(abs, p) {
			return "protected operating system directory"
		}
	}
	return ""
}

func samePath(a, b string) bool {
	if runtime.GOOS == "windows" {
		return strings.EqualFold(filepath.Clean(a), filepath.Clean(b))
	}
	return filepath.Clean(a) == filepath.Clean(b)
}
