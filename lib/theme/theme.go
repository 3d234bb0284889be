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

// Package theme assembles a full X11 cursor theme -- a set of typed
// cursors read from a Windows theme directory's INF installer -- and
// writes it out as an index.theme plus a cursors/ directory of Xcursor
// files and their role-name symlinks.
package theme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/hachispin/currust/internal/fsutil"
	"github.com/hachispin/currust/internal/logx"
	"github.com/hachispin/currust/lib/gencursor"
	"github.com/hachispin/currust/lib/inf"
	"github.com/hachispin/currust/lib/scale"
)

var (
	ErrNotDirectory     = errors.New("theme: path is not a directory")
	ErrNoINF            = errors.New("theme: no INF file found in directory")
	ErrMultipleINF      = errors.New("theme: more than one INF file found in directory")
	ErrEmptyTheme       = errors.New("theme: no cursors to build a theme from")
	ErrTooManyCursors   = errors.New("theme: more cursor roles than CursorType variants")
	ErrDuplicateCursor  = errors.New("theme: duplicate cursor type in theme")
	ErrCursorNotFound   = errors.New("theme: cursor file not found")
)

// TypedCursor pairs an assembled GenericCursor with its semantic role and
// the filenames it should be written/symlinked as.
type TypedCursor struct {
	Cursor  *gencursor.GenericCursor
	Type    inf.CursorType
	Aliases []string
}

func newTypedCursor(m inf.Mapping) (*TypedCursor, error) {
	path := m.Path
	if _, err := os.Stat(path); err != nil {
		found, ferr := fsutil.FindCaseInsensitive(path)
		if ferr != nil {
			return nil, fmt.Errorf("theme: resolving %s: %w", path, ferr)
		}
		if found == "" {
			return nil, fmt.Errorf("%w: %s", ErrCursorNotFound, path)
		}
		path = found
	}

	gc, err := gencursor.FromPath(path)
	if err != nil {
		return nil, fmt.Errorf("theme: %s: %w", path, err)
	}

	return &TypedCursor{
		Cursor:  gc,
		Type:    m.Type,
		Aliases: aliasesFor(m.Type),
	}, nil
}

// saveAsXcursor writes the cursor under dir as its canonical filename, then
// symlinks every other alias to it.
func (t *TypedCursor) saveAsXcursor(dir string) error {
	primary := t.Aliases[0]
	if err := t.Cursor.SaveAsXcursor(filepath.Join(dir, primary)); err != nil {
		return err
	}

	if runtime.GOOS == "windows" {
		// SaveAsX11Theme writes write_symlinks.sh instead.
		return nil
	}

	for _, alias := range t.Aliases[1:] {
		target := filepath.Join(dir, alias)
		if err := os.Symlink(primary, target); err != nil {
			if errors.Is(err, os.ErrExist) {
				continue
			}
			return fmt.Errorf("theme: symlink %s -> %s: %w", target, primary, err)
		}
	}

	return nil
}

// CursorTheme is a validated set of typed cursors sharing a theme name.
type CursorTheme struct {
	Name    string
	Cursors []*TypedCursor
}

func newCursorTheme(name string, cursors []*TypedCursor) (*CursorTheme, error) {
	if len(cursors) == 0 {
		return nil, ErrEmptyTheme
	}
	if len(cursors) > 15 {
		return nil, fmt.Errorf("%w: got %d", ErrTooManyCursors, len(cursors))
	}

	seen := make(map[inf.CursorType]bool, len(cursors))
	for _, c := range cursors {
		if seen[c.Type] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCursor, c.Type)
		}
		seen[c.Type] = true
	}

	return &CursorTheme{Name: name, Cursors: cursors}, nil
}

// FromThemeDir reads themeDir's single INF file and assembles every cursor
// it maps, in parallel.
func FromThemeDir(themeDir string) (*CursorTheme, error) {
	info, err := os.Stat(themeDir)
	if err != nil {
		return nil, fmt.Errorf("theme: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, themeDir)
	}

	infs, err := fsutil.FindByExtension(themeDir, []string{"inf"})
	if err != nil {
		return nil, err
	}
	if len(infs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoINF, themeDir)
	}
	if len(infs) > 1 {
		return nil, fmt.Errorf("%w: %s", ErrMultipleINF, themeDir)
	}

	name, mappings, err := inf.Parse(infs[0], themeDir)
	if err != nil {
		return nil, err
	}

	cursors := make([]*TypedCursor, len(mappings))
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, m := range mappings {
		i, m := i, m
		g.Go(func() error {
			tc, err := newTypedCursor(m)
			if err != nil {
				return err
			}
			cursors[i] = tc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return newCursorTheme(name, cursors)
}

// AddScale registers a new scaled-frame group, derived with alg, on every
// cursor in the theme, in parallel.
func (t *CursorTheme) AddScale(factor float64, alg scale.Algorithm) error {
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for _, c := range t.Cursors {
		c := c
		g.Go(func() error {
			return c.Cursor.AddScale(factor, alg)
		})
	}
	return g.Wait()
}

// SaveAsX11Theme writes the theme under dir/<name>/ with a cursors/
// subdirectory and an index.theme descriptor.
func (t *CursorTheme) SaveAsX11Theme(dir string) error {
	themeDir := filepath.Join(dir, t.Name)
	cursorDir := filepath.Join(themeDir, "cursors")
	if err := os.MkdirAll(cursorDir, 0o755); err != nil {
		return fmt.Errorf("theme: %w", err)
	}

	if runtime.GOOS == "windows" {
		logx.Logger().Warn().Msg("symlinks won't be created on windows; writing write_symlinks.sh instead")
		if err := t.writeSymlinkScript(cursorDir); err != nil {
			return err
		}
	}

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for _, c := range t.Cursors {
		c := c
		g.Go(func() error {
			return c.saveAsXcursor(cursorDir)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	return t.writeIndexTheme(themeDir)
}

func (t *CursorTheme) writeIndexTheme(themeDir string) error {
	f, err := os.Create(filepath.Join(themeDir, "index.theme"))
	if err != nil {
		return fmt.Errorf("theme: %w", err)
	}
	defer f.Close()

	_, err = fmt.Fprintf(f,
		"# https://specifications.freedesktop.org/icon-theme/latest/#id-1.5.3.2\n"+
			"[Icon Theme]\n"+
			"Name=%s\n"+
			"Comment=made with currust; edit index.theme to change this\n"+
			"# Inherits=fallback_theme\n",
		t.Name,
	)
	return err
}

// writeSymlinkScript emits a shell script recreating the Xcursor aliases.
// SaveAsX11Theme calls it on Windows hosts, where no symlinks are created.
func (t *CursorTheme) writeSymlinkScript(cursorDir string) error {
	f, err := os.Create(filepath.Join(cursorDir, "write_symlinks.sh"))
	if err != nil {
		return fmt.Errorf("theme: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintln(f, "#!/usr/bin/env bash"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(f); err != nil {
		return err
	}

	for _, c := range t.Cursors {
		src := c.Aliases[0]
		for _, dst := range c.Aliases[1:] {
			if _, err := fmt.Fprintf(f, "ln -s %s %s\n", src, dst); err != nil {
				return err
			}
		}
	}

	return nil
}
