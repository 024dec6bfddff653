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
	"testing"

	"example.com/prune/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRejectsFilesystemRoot(t *testing.T) {
	r := require.New(t)

	_, err := Validate([]string{"/"})
	r.Error(err)
	var verr ValidationError
	r.ErrorAs(err, &verr)
	r.Equal("filesystem root", verr.Reason)
}

func TestValidateRejectsCurrentWorkingDirectory(t *testing.T) {
	r := require.New(t)

	orig, err := os.Getwd()
	r.NoError(err)
	defer os.Chdir(orig) //nolint:errcheck

	tmp := t.TempDir()
	r.NoError(os.Chdir(tmp))

	_, err = Validate([]string{"."})
	r.Error(err)
	var verr ValidationError
	r.ErrorAs(err, &verr)
	r.Equal("current working directory", verr.Reason)
}

func TestValidateRejectsHomeDirectory(t *testing.T) {
	r := require.New(t)

	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		t.Skip("no resolvable home directory in this environment")
	}

	_, err = Validate([]string{home})
	r.Error(err)
	var verr ValidationError
	r.ErrorAs(err, &verr)
	r.Equal("user profile directory", verr.Reason)
}

func TestValidateRejectsProtectedOSDirectories(t *testing.T) {
	a := assert.New(t)

	for _, p := range posixProtected {
		_, err := Validate([]string{p})
		a.Error(err, "expected %q to be rejected", p)
	}
}

func TestValidateAllowsOrdinaryDirectory(t *testing.T) {
	r := require.New(t)

	tmp := t.TempDir()
	sub := filepath.Join(tmp, "victim")
	r.NoError(os.Mkdir(sub, 0o755))

	roots, err := Validate([]string{sub})
	r.NoError(err)
	r.Len(roots, 1)
	r.Equal(common.EEntryKind.Directory(), roots[0].Kind)
}

func TestValidateToleratesNonexistentPath(t *testing.T) {
	r := require.New(t)

	tmp := t.TempDir()
	ghost := filepath.Join(tmp, "does-not-exist")

	roots, err := Validate([]string{ghost})
	r.NoError(err)
	r.Len(roots, 1)
	r.Equal(common.EEntryKind.Other(), roots[0].Kind)
}

func TestValidateClassifiesFileRoot(t *testing.T) {
	r := require.New(t)

	tmp := t.TempDir()
	f := filepath.Join(tmp, "leaf.txt")
	r.NoError(os.WriteFile(f, []byte("x"), 0o644))

	roots, err := Validate([]string{f})
	r.NoError(err)
	r.Len(roots, 1)
	r.Equal(common.EEntryKind.File(), roots[0].Kind)
}
