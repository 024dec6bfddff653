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
	"context"
	"os"
	"path/filepath"
	"testing"

	"example.com/prune/common"
	"github.com/stretchr/testify/require"
)

// makeS1Tree builds the scenario from the testable-properties section:
// root/{a, b/c, b/d, e/f/g}, all empty files.
func makeS1Tree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	r := require.New(t)

	r.NoError(os.WriteFile(filepath.Join(root, "a"), nil, 0o644))
	r.NoError(os.Mkdir(filepath.Join(root, "b"), 0o755))
	r.NoError(os.WriteFile(filepath.Join(root, "b", "c"), nil, 0o644))
	r.NoError(os.WriteFile(filepath.Join(root, "b", "d"), nil, 0o644))
	r.NoError(os.MkdirAll(filepath.Join(root, "e", "f"), 0o755))
	r.NoError(os.WriteFile(filepath.Join(root, "e", "f", "g"), nil, 0o644))
	return root
}

func TestEnumerateS1TreeCounts(t *testing.T) {
	r := require.New(t)
	root := makeS1Tree(t)

	roots, err := Validate([]string{root})
	r.NoError(err)
	r.Len(roots, 1)

	inv, entryErrs, err := Enumerate(context.Background(), roots[0], 4, common.NullLogger)
	r.NoError(err)
	r.Empty(entryErrs)

	files, dirs := 0, 0
	for i := 0; i < inv.len(); i++ {
		switch inv.entry(EntryID(i)).Kind {
		case common.EEntryKind.File():
			files++
		case common.EEntryKind.Directory():
			dirs++
		}
	}
	r.Equal(4, files)
	r.Equal(4, dirs) // root, b, e, f
	r.Equal(8, inv.len())
}

func TestEnumerateFatalOnUnopenableRoot(t *testing.T) {
	r := require.New(t)

	tmp := t.TempDir()
	ghost := filepath.Join(tmp, "does-not-exist")
	root := Root{AbsPath: ghost, Kind: common.EEntryKind.Directory()}

	_, _, err := Enumerate(context.Background(), root, 2, common.NullLogger)
	r.Error(err)
	var rootOpenErr RootOpenError
	r.ErrorAs(err, &rootOpenErr)
}

func TestEnumerateInteriorPermissionErrorDoesNotAbortSiblings(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root can read any directory regardless of permission bits")
	}
	r := require.New(t)

	root := t.TempDir()
	r.NoError(os.Mkdir(filepath.Join(root, "locked"), 0o000))
	defer os.Chmod(filepath.Join(root, "locked"), 0o755) //nolint:errcheck
	r.NoError(os.Mkdir(filepath.Join(root, "open"), 0o755))
	r.NoError(os.WriteFile(filepath.Join(root, "open", "x"), nil, 0o644))

	roots, err := Validate([]string{root})
	r.NoError(err)

	inv, entryErrs, err := Enumerate(context.Background(), roots[0], 4, common.NullLogger)
	r.NoError(err)
	r.NotEmpty(entryErrs)
	r.Equal(common.EErrorKind.Enumerate(), entryErrs[0].Kind)

	foundOpenFile := false
	for i := 0; i < inv.len(); i++ {
		if filepath.Base(inv.entry(EntryID(i)).Path) == "x" {
			foundOpenFile = true
		}
	}
	r.True(foundOpenFile, "sibling directory should still be enumerated")
}

func TestEnumerateSingleFileRoot(t *testing.T) {
	r := require.New(t)

	tmp := t.TempDir()
	f := filepath.Join(tmp, "leaf.txt")
	r.NoError(os.WriteFile(f, []byte("hello"), 0o644))

	roots, err := Validate([]string{f})
	r.NoError(err)

	inv, entryErrs, err := Enumerate(context.Background(), roots[0], 2, common.NullLogger)
	r.NoError(err)
	r.Empty(entryErrs)
	r.Equal(1, inv.len())
	r.Equal(common.EEntryKind.File(), inv.entry(0).Kind)
}

func TestEnumerateSymlinkIsNotTraversed(t *testing.T) {
	r := require.New(t)

	root := t.TempDir()
	target := t.TempDir()
	r.NoError(os.WriteFile(filepath.Join(target, "untouched"), nil, 0o644))
	r.NoError(os.Symlink(target, filepath.Join(root, "link")))

	roots, err := Validate([]string{root})
	r.NoError(err)

	inv, entryErrs, err := Enumerate(context.Background(), roots[0], 2, common.NullLogger)
	r.NoError(err)
	r.Empty(entryErrs)

	// root + the symlink itself, never the target's contents.
	r.Equal(2, inv.len())
	r.Equal(common.EEntryKind.Symlink(), inv.entry(1).Kind)
}
