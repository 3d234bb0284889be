// Copyright 2026 The currust Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// ----------------

package theme

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hachispin/currust/lib/inf"
)

// buildCur returns a minimal single-entry w x w, 32bpp CUR file whose pixels
// are all zero (fully transparent).
func buildCur(w byte) []byte {
	dibHeader := make([]byte, 40)
	binary.LittleEndian.PutUint32(dibHeader[0:4], 40)
	binary.LittleEndian.PutUint32(dibHeader[4:8], uint32(w))
	binary.LittleEndian.PutUint32(dibHeader[8:12], uint32(w)*2)
	binary.LittleEndian.PutUint16(dibHeader[12:14], 1)
	binary.LittleEndian.PutUint16(dibHeader[14:16], 32)

	xor := make([]byte, int(w)*int(w)*4)
	andStride := ((int(w) + 31) / 32) * 4
	and := make([]byte, andStride*int(w))

	dib := append(dibHeader, xor...)
	dib = append(dib, and...)

	entry := make([]byte, 16)
	entry[0] = w
	entry[1] = w
	binary.LittleEndian.PutUint32(entry[8:12], uint32(len(dib)))
	binary.LittleEndian.PutUint32(entry[12:16], 6+16)

	header := make([]byte, 6)
	binary.LittleEndian.PutUint16(header[2:4], 2)
	binary.LittleEndian.PutUint16(header[4:6], 1)

	out := append(header, entry...)
	out = append(out, dib...)
	return out
}

// buildThemeDir writes a minimal valid INF theme directory with 15 distinct
// single-frame CUR files, one per cursor role, and returns its path.
func buildThemeDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	names := []string{
		"arrow.cur", "help.cur", "work.cur", "busy.cur", "cross.cur",
		"text.cur", "pencil.cur", "no.cur", "ns.cur", "ew.cur",
		"nwse.cur", "nesw.cur", "move.cur", "up.cur", "hand.cur",
	}
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), buildCur(32), 0o644))
	}

	reg := "HKCU,\"Control Panel\\Cursors\\Schemes\",\"Test Theme\",0," + strings.Join(names, ",")
	body := "[Scheme.Reg]\n" + reg + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "install.inf"), []byte(body), 0o644))

	return dir
}

func TestFromThemeDirAssemblesAllCursors(t *testing.T) {
	dir := buildThemeDir(t)

	th, err := FromThemeDir(dir)
	require.NoError(t, err)
	assert.Equal(t, "Test Theme", th.Name)
	assert.Len(t, th.Cursors, 15)
}

func TestFromThemeDirRejectsMissingINF(t *testing.T) {
	dir := t.TempDir()
	_, err := FromThemeDir(dir)
	require.ErrorIs(t, err, ErrNoINF)
}

func TestFromThemeDirRejectsMultipleINF(t *testing.T) {
	dir := buildThemeDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "second.inf"), []byte("[Scheme.Reg]\nx\n"), 0o644))

	_, err := FromThemeDir(dir)
	require.ErrorIs(t, err, ErrMultipleINF)
}

func TestSaveAsX11ThemeWritesIndexAndCursors(t *testing.T) {
	dir := buildThemeDir(t)

	th, err := FromThemeDir(dir)
	require.NoError(t, err)

	outDir := t.TempDir()
	require.NoError(t, th.SaveAsX11Theme(outDir))

	indexPath := filepath.Join(outDir, "Test Theme", "index.theme")
	data, err := os.ReadFile(indexPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Name=Test Theme")

	cursorsDir := filepath.Join(outDir, "Test Theme", "cursors")
	entries, err := os.ReadDir(cursorsDir)
	require.NoError(t, err)
	assert.NotEmpty(t, entries)
}

func TestNewCursorThemeRejectsDuplicateType(t *testing.T) {
	a := &TypedCursor{Type: inf.Arrow, Aliases: []string{"left_ptr"}}
	b := &TypedCursor{Type: inf.Arrow, Aliases: []string{"arrow"}}

	_, err := newCursorTheme("dup", []*TypedCursor{a, b})
	require.ErrorIs(t, err, ErrDuplicateCursor)
}

func TestNewCursorThemeRejectsEmpty(t *testing.T) {
	_, err := newCursorTheme("empty", nil)
	require.ErrorIs(t, err, ErrEmptyTheme)
}
