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
	"strings"

	"github.com/hachispin/currust/lib/inf"
)

// aliases maps each cursor role to its canonical Xcursor filename (first
// entry) and the symlink names pointing at it. These follow the de-facto
// naming conventions shared across X11 cursor themes (the legacy core-font
// names alongside the newer CSS/freedesktop names).
var aliases = map[inf.CursorType][]string{
	inf.Arrow: {
		"arrow", "default", "left_ptr", "top_left_arrow",
	},
	inf.Help: {
		"help", "question_arrow", "whats_this", "left_ptr_help",
	},
	inf.LeftPtrWatch: {
		"left_ptr_watch", "half-busy", "progress",
	},
	inf.Watch: {
		"watch", "wait",
	},
	inf.Crosshair: {
		"crosshair", "cross", "tcross", "color-picker",
	},
	inf.Text: {
		"xterm", "text", "ibeam",
	},
	inf.Pencil: {
		"pencil", "draft",
	},
	inf.Forbidden: {
		"forbidden", "crossed_circle", "not-allowed", "no-drop",
	},
	inf.NsResize: {
		"ns-resize", "v_double_arrow", "size_ver", "sb_v_double_arrow",
		"n-resize", "s-resize", "top_side", "bottom_side",
	},
	inf.EwResize: {
		"ew-resize", "h_double_arrow", "size_hor", "sb_h_double_arrow",
		"e-resize", "w-resize", "left_side", "right_side",
	},
	inf.NwseResize: {
		"nwse-resize", "size_fdiag", "nw-resize", "se-resize",
		"top_left_corner", "bottom_right_corner",
	},
	inf.NeswResize: {
		"nesw-resize", "size_bdiag", "ne-resize", "sw-resize",
		"top_right_corner", "bottom_left_corner",
	},
	inf.Move: {
		"move", "size_all", "fleur", "grab", "grabbing",
		"closedhand", "openhand", "all-scroll", "dnd-move",
		"dnd-none", "move-cursor",
	},
	inf.CenterPtr: {
		"center_ptr", "up_arrow", "alternate", "dnd-link", "dnd-copy",
	},
	inf.Hand: {
		"hand2", "hand1", "hand", "pointer", "pointing_hand",
		"pointinghand", "pointing_cursor", "hand-point", "pointer_hand",
		"link",
		"e29285e634086352946a0e7090d73106",
		"9d800788f1b08800ae810202380a0822",
		"03b6e0fcb3499374a867c041f52298f0",
		"240b8b2c4c8a3f8a8b7d4a7ab7e8d0f5",
		"5aca4d189052212118709018842178c0",
	},
}

// aliasesFor returns the filenames registered for t, or a single
// lowercase-name fallback if t has no table entry.
func aliasesFor(t inf.CursorType) []string {
	if a, ok := aliases[t]; ok {
		return a
	}
	return []string{strings.ToLower(t.String())}
}
