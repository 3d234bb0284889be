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

/*
The currust command converts Windows cursor assets -- CUR files, ANI files,
and whole INF-described cursor themes -- into X11 Xcursor format.

Usage:

	currust [flags] input...

Each input is either a .cur/.ani file (written as a single Xcursor file next
to itself, unless -o is given) or a directory containing an INF installer
(written as a full X11 theme directory). Independent inputs are converted in
parallel; within a theme, each scale factor is applied to all cursors in
parallel, one factor after another.

The flags are:

	-o, --out string
		Output path (file inputs) or output root directory (theme inputs).
		Defaults to the input's own directory.
	--scale-to floats
		Additional scale factors to bake into every cursor, e.g. --scale-to
		1.5,2. 1.0 (the base image) is always included and need not be listed.
	--scale-with string
		Resampling algorithm used for both directions unless overridden:
		nearest, box, bilinear, mitchell, or lanczos3 (default "lanczos3").
	--upscale-with string
		Resampling algorithm for factors greater than 1, overriding --scale-with.
	--downscale-with string
		Resampling algorithm for factors less than 1, overriding --scale-with.
	--no-theme
		Do not read directory inputs as INF themes; such an input is passed to
		the single-file converter, which accepts only .cur and .ani paths.
		Directories are not searched for cursor files. Has no effect on
		.cur/.ani inputs.
	-v, --verbose
		Enable debug-level logging.

Example:

	currust --scale-to 1.5,2,3 --downscale-with box ./MyTheme
*/
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "currust:", err)
		os.Exit(1)
	}
}
