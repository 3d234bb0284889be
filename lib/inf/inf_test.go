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

package inf

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeInf(t *testing.T, body string) (infPath, themeDir string) {
	t.Helper()
	themeDir = t.TempDir()
	infPath = filepath.Join(themeDir, "install.inf")
	require.NoError(t, os.WriteFile(infPath, []byte(body), 0o644))
	return infPath, themeDir
}

func TestParseBasic(t *testing.T) {
	paths := []string{
		`%CUR_DIR%\arrow.cur`, `help.cur`, `appstarting.ani`, `wait.ani`,
		`cross.cur`, `ibeam.cur`, `pencil.cur`, `no.cur`, `sizens.cur`,
		`sizewe.cur`, `sizenwse.cur`, `sizenesw.cur`, `move.cur`,
		`up.cur`, `hand.cur`, `person.cur`, `pin.cur`,
	}
	reg := "HKCU,\"Control Panel\\Cursors\\Schemes\",\"My Theme\",0," + strings.Join(paths, ",")

	body := "[Strings]\n" +
		"CUR_DIR = \"cursors\"\n\n" +
		"[Scheme.Reg]\n" +
		reg + "\n"

	infPath, themeDir := writeInf(t, body)

	name, mappings, err := Parse(infPath, themeDir)
	require.NoError(t, err)
	assert.Equal(t, "My Theme", name)
	require.Len(t, mappings, 15)

	assert.Equal(t, Arrow, mappings[0].Type)
	assert.Equal(t, filepath.Join(themeDir, "arrow.cur"), mappings[0].Path)
	assert.Equal(t, Hand, mappings[14].Type)
	assert.Equal(t, filepath.Join(themeDir, "hand.cur"), mappings[14].Path)
}

func TestParseRejectsMissingSchemeReg(t *testing.T) {
	infPath, themeDir := writeInf(t, "[Strings]\nFOO = \"bar\"\n")
	_, _, err := Parse(infPath, themeDir)
	require.ErrorIs(t, err, ErrNoSchemeReg)
}

func TestParseRejectsNonHKCU(t *testing.T) {
	body := "[Scheme.Reg]\n" +
		"HKLM,\"x\",\"Bad Theme\",0,a.cur\n"
	infPath, themeDir := writeInf(t, body)

	_, _, err := Parse(infPath, themeDir)
	require.ErrorIs(t, err, ErrNotHKCU)
}

func TestExpandPassesThroughDirid(t *testing.T) {
	out, err := expand(`%10%\cursors\arrow.cur`, map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, `%10%\cursors\arrow.cur`, out)
}

func TestExpandRejectsUnknownToken(t *testing.T) {
	_, err := expand("%UNKNOWN%", map[string]string{})
	require.ErrorIs(t, err, ErrNoSubstitution)
}

func TestExpandDoublePercent(t *testing.T) {
	out, err := expand("100%%done", map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, "100%done", out)
}
