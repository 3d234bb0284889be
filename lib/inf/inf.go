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

// Package inf parses Windows cursor theme installer (INF) files.
//
// INF files are INI-like, so the outer section/key syntax is parsed with
// gopkg.in/ini.v1. The interesting part -- recovering the theme name and the
// cursor role paths from the single, often %var%-substituted value in the
// "Scheme.Reg" section -- is domain logic no INI library can express, so it
// is implemented directly on top. Only the first 15 path fields are mapped to
// cursor roles; any further fields are ignored.
package inf

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
)

var (
	ErrNoSchemeReg       = errors.New("inf: no [Scheme.Reg] section found")
	ErrSchemeRegShape    = errors.New("inf: [Scheme.Reg] section does not have exactly one key")
	ErrNotHKCU           = errors.New("inf: expected HKCU as first Scheme.Reg field")
	ErrUnclosedPercent   = errors.New("inf: unbalanced %% delimiters")
	ErrNoSubstitution    = errors.New("inf: no substitution found for token")
	ErrUnquotedThemeName = errors.New("inf: expected quoted theme name")
)

// CursorType identifies one of the 15 cursor roles an INF Scheme.Reg
// section lists, in the fixed order Windows stores them.
type CursorType int

const (
	Arrow CursorType = iota
	Help
	LeftPtrWatch
	Watch
	Crosshair
	Text
	Pencil
	Forbidden
	NsResize
	EwResize
	NwseResize
	NeswResize
	Move
	CenterPtr
	Hand

	numCursorTypes = 15
)

// String names a CursorType for logs and errors.
func (c CursorType) String() string {
	names := [numCursorTypes]string{
		"Arrow", "Help", "LeftPtrWatch", "Watch", "Crosshair", "Text", "Pencil",
		"Forbidden", "NsResize", "EwResize", "NwseResize", "NeswResize", "Move",
		"CenterPtr", "Hand",
	}
	if int(c) < 0 || int(c) >= numCursorTypes {
		return fmt.Sprintf("CursorType(%d)", int(c))
	}
	return names[c]
}

// Mapping pairs a cursor role with the full path expected to hold its file.
type Mapping struct {
	Type CursorType
	Path string
}

// Parse reads infPath and returns the theme name and one cursor role mapping
// per path field, in role order and at most 15, with paths resolved relative
// to themeDir.
func Parse(infPath, themeDir string) (name string, mappings []Mapping, err error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment: true,
		AllowBooleanKeys:    true, // the Scheme.Reg line is a bare key, not key=value
	}, infPath)
	if err != nil {
		return "", nil, fmt.Errorf("inf: load %s: %w", infPath, err)
	}

	// Section names are matched case-insensitively (INF writers spell
	// "Scheme.Reg"/"Strings" inconsistently), but ini.LoadOptions'
	// Insensitive flag would also lowercase the Scheme.Reg boolean key --
	// which IS the theme name and cursor paths -- so section lookup is done
	// by hand instead of relying on that flag.
	reg, err := findSectionFold(cfg, "Scheme.Reg")
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrNoSchemeReg, err)
	}
	keys := reg.Keys()
	if len(keys) != 1 {
		return "", nil, fmt.Errorf("%w: got %d keys", ErrSchemeRegShape, len(keys))
	}
	regKey := keys[0].Name()

	subs := stringsSection(cfg)
	expandedReg, err := expand(regKey, subs)
	if err != nil {
		return "", nil, err
	}

	fields := strings.Split(expandedReg, ",")
	if len(fields) < 3 {
		return "", nil, fmt.Errorf("inf: Scheme.Reg has too few fields (%d)", len(fields))
	}

	if !strings.EqualFold(strings.TrimSpace(fields[0]), "hkcu") {
		return "", nil, fmt.Errorf("%w: got %q", ErrNotHKCU, fields[0])
	}

	themeName := strings.TrimSpace(fields[2])
	themeName = strings.TrimPrefix(themeName, `"`)
	if !strings.HasSuffix(themeName, `"`) {
		return "", nil, ErrUnquotedThemeName
	}
	themeName = strings.TrimSuffix(themeName, `"`)

	// fields[3] is an unused field; cursor paths start at fields[4].
	if len(fields) < 5 {
		return "", nil, fmt.Errorf("inf: Scheme.Reg has no cursor path fields")
	}
	pathFields := fields[4:]

	paths := make([]string, len(pathFields))
	for i, p := range pathFields {
		p = strings.TrimSpace(p)
		p = strings.TrimSuffix(p, `"`)
		idx := strings.LastIndexByte(p, '\\')
		if idx >= 0 {
			p = p[idx+1:]
		}
		paths[i] = p
	}

	n := numCursorTypes
	if len(paths) < n {
		n = len(paths)
	}

	mappings = make([]Mapping, 0, n)
	for i := 0; i < n; i++ {
		mappings = append(mappings, Mapping{
			Type: indexToCursorType(i),
			Path: filepath.Join(themeDir, paths[i]),
		})
	}

	return themeName, mappings, nil
}

func indexToCursorType(i int) CursorType {
	order := [numCursorTypes]CursorType{
		Arrow, Help, LeftPtrWatch, Watch, Crosshair, Text, Pencil, Forbidden,
		NsResize, EwResize, NwseResize, NeswResize, Move, CenterPtr, Hand,
	}
	return order[i]
}

// stringsSection builds a %var%->value lookup table from the [Strings]
// section, if present. Values are stored quoted by configparser-alike INI
// readers; the surrounding quotes are stripped here.
func stringsSection(cfg *ini.File) map[string]string {
	out := make(map[string]string)
	sec, err := findSectionFold(cfg, "Strings")
	if err != nil {
		return out
	}
	for _, key := range sec.Keys() {
		v := strings.TrimSuffix(strings.TrimPrefix(key.Value(), `"`), `"`)
		out["%"+key.Name()+"%"] = v
	}
	return out
}

// findSectionFold looks up a section by name, case-insensitively, without
// relying on ini.LoadOptions' Insensitive flag (which would also lowercase
// the value-bearing Scheme.Reg boolean key).
func findSectionFold(cfg *ini.File, name string) (*ini.Section, error) {
	for _, sec := range cfg.Sections() {
		if strings.EqualFold(sec.Name(), name) {
			return sec, nil
		}
	}
	return nil, fmt.Errorf("inf: no %q section", name)
}

// expand substitutes every %token% in value using subs, passing through
// "%%" as a literal "%" and all-digit DIRID tokens verbatim.
func expand(value string, subs map[string]string) (string, error) {
	var positions []int
	for i, r := range value {
		if r == '%' {
			positions = append(positions, i)
		}
	}
	if len(positions)%2 != 0 {
		return "", fmt.Errorf("%w: value=%q", ErrUnclosedPercent, value)
	}

	var b strings.Builder
	last := 0
	for i := 0; i < len(positions); i += 2 {
		start, end := positions[i], positions[i+1]
		b.WriteString(value[last:start])

		token := value[start : end+1] // includes both '%'
		sub, err := resolveToken(token, subs)
		if err != nil {
			return "", fmt.Errorf("inf: %w for value=%q", err, value)
		}
		b.WriteString(sub)

		last = end + 1
	}
	b.WriteString(value[last:])

	return b.String(), nil
}

func resolveToken(token string, subs map[string]string) (string, error) {
	if token == "%%" {
		return "%", nil
	}
	if v, ok := subs[token]; ok {
		return v, nil
	}

	inner := strings.Trim(token, "%")
	allDigits := inner != ""
	for _, r := range inner {
		if r < '0' || r > '9' {
			allDigits = false
			break
		}
	}
	if allDigits {
		return token, nil
	}

	return "", fmt.Errorf("%w: %s", ErrNoSubstitution, token)
}
