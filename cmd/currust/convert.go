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

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/hachispin/currust/internal/logx"
	"github.com/hachispin/currust/lib/gencursor"
	"github.com/hachispin/currust/lib/scale"
	"github.com/hachispin/currust/lib/theme"
)

type options struct {
	out           string
	scaleTo       string
	scaleWith     string
	upscaleWith   string
	downscaleWith string
	noTheme       bool
	verbose       bool
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "currust [flags] input...",
		Short: "Convert Windows cursors and cursor themes to X11 Xcursor",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logx.SetConsole(opts.verbose)
			return runConvert(args, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.out, "out", "o", "", "output path or root directory")
	flags.StringVar(&opts.scaleTo, "scale-to", "", "comma-separated extra scale factors, e.g. 1.5,2")
	flags.StringVar(&opts.scaleWith, "scale-with", "lanczos3", "resampling algorithm: nearest, box, bilinear, mitchell, lanczos3")
	flags.StringVar(&opts.upscaleWith, "upscale-with", "", "resampling algorithm for factors > 1 (overrides --scale-with)")
	flags.StringVar(&opts.downscaleWith, "downscale-with", "", "resampling algorithm for factors < 1 (overrides --scale-with)")
	flags.BoolVar(&opts.noTheme, "no-theme", false, "do not read directory inputs as INF themes (they are then converted as single .cur/.ani paths)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	return cmd
}

func runConvert(inputs []string, opts *options) error {
	factors, err := parseFactors(opts.scaleTo)
	if err != nil {
		return err
	}

	var g errgroup.Group
	for _, input := range inputs {
		input := input
		g.Go(func() error {
			return convertOne(input, opts, factors)
		})
	}
	return g.Wait()
}

func convertOne(input string, opts *options, factors []float64) error {
	info, err := os.Stat(input)
	if err != nil {
		return fmt.Errorf("currust: %w", err)
	}

	if info.IsDir() && !opts.noTheme {
		return convertTheme(input, opts, factors)
	}
	return convertFile(input, opts, factors)
}

func convertFile(input string, opts *options, factors []float64) error {
	gc, err := gencursor.FromPath(input)
	if err != nil {
		return fmt.Errorf("currust: %s: %w", input, err)
	}

	for _, f := range factors {
		alg := algorithmFor(f, opts)
		if err := gc.AddScale(f, alg); err != nil {
			return fmt.Errorf("currust: %s: %w", input, err)
		}
	}

	out := opts.out
	if out == "" {
		ext := filepath.Ext(input)
		out = strings.TrimSuffix(input, ext)
	}

	if err := gc.SaveAsXcursor(out); err != nil {
		return fmt.Errorf("currust: %w", err)
	}

	logx.Logger().Info().Str("input", input).Str("output", out).Msg("converted cursor")
	return nil
}

func convertTheme(input string, opts *options, factors []float64) error {
	th, err := theme.FromThemeDir(input)
	if err != nil {
		return fmt.Errorf("currust: %s: %w", input, err)
	}

	for _, f := range factors {
		alg := algorithmFor(f, opts)
		if err := th.AddScale(f, alg); err != nil {
			return fmt.Errorf("currust: %s: %w", input, err)
		}
	}

	out := opts.out
	if out == "" {
		out = filepath.Dir(input)
	}

	if err := th.SaveAsX11Theme(out); err != nil {
		return fmt.Errorf("currust: %w", err)
	}

	logx.Logger().Info().Str("input", input).Str("theme", th.Name).Str("output", out).Msg("converted theme")
	return nil
}

func algorithmFor(factor float64, opts *options) scale.Algorithm {
	name := opts.scaleWith
	if factor > 1 && opts.upscaleWith != "" {
		name = opts.upscaleWith
	} else if factor < 1 && opts.downscaleWith != "" {
		name = opts.downscaleWith
	}
	return parseAlgorithm(name)
}

func parseAlgorithm(name string) scale.Algorithm {
	switch strings.ToLower(name) {
	case "nearest":
		return scale.Nearest
	case "box":
		return scale.Box
	case "bilinear":
		return scale.Bilinear
	case "mitchell":
		return scale.Mitchell
	case "lanczos3":
		return scale.Lanczos3
	default:
		return scale.Lanczos3
	}
}

func parseFactors(csv string) ([]float64, error) {
	if csv == "" {
		return nil, nil
	}

	parts := strings.Split(csv, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("currust: invalid scale factor %q: %w", p, err)
		}
		out = append(out, f)
	}
	return out, nil
}
