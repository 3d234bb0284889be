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

// Package fsutil provides case-insensitive, non-recursive filesystem
// lookups used when resolving cursor paths recorded in INF files, which
// are frequently cased differently than the files actually shipped in a
// theme's Windows-sourced directory.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FindCaseInsensitive returns filePath if it exists as given, otherwise
// searches filePath's parent directory for a case-insensitive match of its
// base name. It returns ("", nil) if no match is found, and an error if
// more than one candidate matches or the parent can't be read.
func FindCaseInsensitive(filePath string) (string, error) {
	if _, err := os.Stat(filePath); err == nil {
		return filePath, nil
	}

	dir := filepath.Dir(filePath)
	name := strings.ToLower(filepath.Base(filePath))

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("fsutil: read dir %s: %w", dir, err)
	}

	var found []string
	for _, e := range entries {
		if strings.ToLower(e.Name()) == name {
			found = append(found, filepath.Join(dir, e.Name()))
		}
	}

	switch len(found) {
	case 0:
		return "", nil
	case 1:
		return found[0], nil
	default:
		return "", fmt.Errorf("fsutil: multiple case-insensitive matches for %s in %s: %v", filePath, dir, found)
	}
}

// FindByExtension returns every file directly within dir whose extension
// case-insensitively matches one of extensions (given without the leading dot).
func FindByExtension(dir string, extensions []string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("fsutil: stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("fsutil: %s is not a directory", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("fsutil: read dir %s: %w", dir, err)
	}

	var out []string
	for _, e := range entries {
		ext := strings.TrimPrefix(filepath.Ext(e.Name()), ".")
		for _, want := range extensions {
			if strings.EqualFold(ext, want) {
				out = append(out, filepath.Join(dir, e.Name()))
				break
			}
		}
	}

	return out, nil
}
