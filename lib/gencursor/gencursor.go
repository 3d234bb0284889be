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

// Package gencursor assembles a GenericCursor -- a base frame sequence plus
// any number of registered scale-factor groups -- from a CUR or ANI file,
// and writes it out as Xcursor.
package gencursor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hachispin/currust/internal/logx"
	"github.com/hachispin/currust/lib/anifile"
	"github.com/hachispin/currust/lib/curfile"
	"github.com/hachispin/currust/lib/cursorimage"
	"github.com/hachispin/currust/lib/scale"
	"github.com/hachispin/currust/lib/xcursor"
)

var (
	// ErrNoExtension is returned when FromPath can't infer cur/ani from the path.
	ErrNoExtension = errors.New("gencursor: path has no extension")
	// ErrUnsupportedExt is returned for extensions other than cur/ani.
	ErrUnsupportedExt = errors.New("gencursor: unsupported extension, expected cur or ani")
	// ErrNoImages is returned when a CUR/ANI yields zero usable images.
	ErrNoImages = errors.New("gencursor: no images found")
	// ErrScaleMismatch is returned when a scaled group's frame count differs from base.
	ErrScaleMismatch = errors.New("gencursor: scaled group frame count does not match base")
	// ErrDuplicateFactor is returned when registering the same scale factor twice.
	ErrDuplicateFactor = errors.New("gencursor: scale factor already registered")
)

// GenericCursor is a base cursor frame sequence plus any number of
// registered scaled-frame-sequence groups, one per distinct scale factor.
type GenericCursor struct {
	base    cursorimage.CursorImages
	scaled  []cursorimage.CursorImages
	factors []float64
}

// New builds a GenericCursor from base images and pre-scaled groups that
// must each contain the same number of frames as base. The scale factor of
// each group is derived from the ratio of its nominal size to base's.
func New(base cursorimage.CursorImages, scaledGroups []cursorimage.CursorImages) (*GenericCursor, error) {
	if len(scaledGroups) == 0 {
		return nil, errors.New("gencursor: scaledGroups is empty, call NewUnscaled instead")
	}

	factors := []float64{1.0}
	baseNominal := float64(base.First().NominalSize())

	for _, g := range scaledGroups {
		if g.Len() != base.Len() {
			return nil, fmt.Errorf("%w: base has %d frames, group has %d", ErrScaleMismatch, base.Len(), g.Len())
		}

		factor := float64(g.First().NominalSize()) / baseNominal
		for _, f := range factors {
			if f == factor {
				return nil, fmt.Errorf("%w: %v", ErrDuplicateFactor, factor)
			}
		}
		factors = append(factors, factor)
	}

	return &GenericCursor{base: base, scaled: scaledGroups, factors: factors}, nil
}

// NewUnscaled builds a GenericCursor with only a base group.
func NewUnscaled(base cursorimage.CursorImages) *GenericCursor {
	return &GenericCursor{base: base, factors: []float64{1.0}}
}

// AddScale derives and registers a new scaled group from base using alg.
// It returns ErrDuplicateFactor if factor is already registered.
func (g *GenericCursor) AddScale(factor float64, alg scale.Algorithm) error {
	for _, f := range g.factors {
		if f == factor {
			return fmt.Errorf("%w: %v", ErrDuplicateFactor, factor)
		}
	}

	frames := g.base.Frames()
	scaledFrames := make([]cursorimage.CursorImage, len(frames))
	for i, f := range frames {
		sf, err := scale.Resize(f, factor, alg)
		if err != nil {
			return fmt.Errorf("gencursor: scaling frame %d: %w", i, err)
		}
		scaledFrames[i] = sf
	}

	images, err := cursorimage.NewCursorImages(scaledFrames)
	if err != nil {
		return fmt.Errorf("gencursor: building scaled group: %w", err)
	}

	g.factors = append(g.factors, factor)
	g.scaled = append(g.scaled, images)
	return nil
}

// FromPath reads path and dispatches to FromCur or FromAni based on its
// (case-insensitive) extension.
func FromPath(path string) (*GenericCursor, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".cur":
		return FromCur(path)
	case ".ani":
		return FromAni(path)
	case "":
		return nil, ErrNoExtension
	default:
		return nil, fmt.Errorf("%w: got %q", ErrUnsupportedExt, ext)
	}
}

// FromCur decodes a CUR file into a GenericCursor. If the file holds
// multiple images of differing size, the first directory entry's dimensions
// become the base and every entry of another size is put into a single
// scaled group. Later entries with the base dimensions are discarded, with a
// warning logged for each.
func FromCur(path string) (*GenericCursor, error) {
	cf, err := curfile.DecodeFile(path)
	if err != nil {
		return nil, err
	}
	if len(cf.Entries) == 0 {
		return nil, ErrNoImages
	}

	baseW, baseH := cf.Entries[0].Width, cf.Entries[0].Height

	var base, scaled []cursorimage.CursorImage
	seenBase := false
	for i, e := range cf.Entries {
		if e.Width == baseW && e.Height == baseH {
			if seenBase {
				logx.Logger().Warn().Int("entry", i).Msg("discarding duplicate base-size CUR entry")
				continue
			}
			seenBase = true
		}

		img, err := cursorimage.New(e.Width, e.Height, e.HotspotX, e.HotspotY, e.RGBA.Pix, cursorimage.StaticDelay)
		if err != nil {
			return nil, fmt.Errorf("gencursor: entry %d: %w", i, err)
		}

		if e.Width == baseW && e.Height == baseH {
			base = append(base, img)
		} else {
			scaled = append(scaled, img)
		}
	}

	baseImages, err := cursorimage.NewCursorImages(base)
	if err != nil {
		return nil, fmt.Errorf("gencursor: base group: %w", err)
	}

	if len(scaled) == 0 {
		return NewUnscaled(baseImages), nil
	}

	scaledImages, err := cursorimage.NewCursorImages(scaled)
	if err != nil {
		return nil, fmt.Errorf("gencursor: scaled group: %w", err)
	}

	return New(baseImages, []cursorimage.CursorImages{scaledImages})
}

// FromAni decodes an ANI file into a GenericCursor, applying the display
// sequence, per-step timings and frame grouping rules described in the
// format's specification.
func FromAni(path string) (*GenericCursor, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("gencursor: read %s: %w", path, err)
	}

	af, err := anifile.Decode(blob)
	if err != nil {
		return nil, err
	}

	icos := make([]*curfileDir, len(af.IcoFrames))
	for i, blob := range af.IcoFrames {
		cf, err := curfile.Decode(blob)
		if err != nil {
			return nil, fmt.Errorf("gencursor: ico frame %d: %w", i, err)
		}
		icos[i] = (*curfileDir)(cf)
	}

	var sequence []int
	if af.Sequence != nil {
		sequence = make([]int, len(af.Sequence))
		for i, idx := range af.Sequence {
			sequence[i] = int(idx)
		}
	}

	sequencedIcos := icos
	if sequence != nil {
		sequencedIcos = make([]*curfileDir, len(sequence))
		for i, idx := range sequence {
			sequencedIcos[i] = icos[idx]
		}
	}

	numSteps := int(af.Header.NumSteps)
	var jiffies []uint32
	if af.Rate != nil {
		jiffies = af.Rate
	} else {
		jiffies = make([]uint32, numSteps)
		for i := range jiffies {
			jiffies[i] = af.Header.JiffyRate
		}
	}

	delaysMS := make([]uint32, len(jiffies))
	for i, j := range jiffies {
		delaysMS[i] = (j*1000 + 30) / 60
	}

	baseW, baseH := baseDimensions(sequencedIcos)

	var base, scaledUngrouped []cursorimage.CursorImage
	for i, ico := range sequencedIcos {
		delay := uint32(0)
		if i < len(delaysMS) {
			delay = delaysMS[i]
		}

		for j, e := range ico.Entries {
			img, err := cursorimage.New(e.Width, e.Height, e.HotspotX, e.HotspotY, e.RGBA.Pix, delay)
			if err != nil {
				return nil, fmt.Errorf("gencursor: frame %d entry %d: %w", i, j, err)
			}
			if e.Width == baseW && e.Height == baseH {
				base = append(base, img)
			} else {
				scaledUngrouped = append(scaledUngrouped, img)
			}
		}
	}

	baseImages, err := cursorimage.NewCursorImages(base)
	if err != nil {
		return nil, fmt.Errorf("gencursor: base group: %w", err)
	}

	if len(scaledUngrouped) == 0 {
		return NewUnscaled(baseImages), nil
	}

	sort.SliceStable(scaledUngrouped, func(i, j int) bool {
		wi, hi := scaledUngrouped[i].Dimensions()
		wj, hj := scaledUngrouped[j].Dimensions()
		if wi != wj {
			return wi < wj
		}
		return hi < hj
	})

	var scaledGroups []cursorimage.CursorImages
	curW, curH := scaledUngrouped[0].Dimensions()
	var buffer []cursorimage.CursorImage

	flush := func() error {
		if len(buffer) == 0 {
			return nil
		}
		g, err := cursorimage.NewCursorImages(buffer)
		if err != nil {
			return err
		}
		scaledGroups = append(scaledGroups, g)
		buffer = nil
		return nil
	}

	for _, img := range scaledUngrouped {
		w, h := img.Dimensions()
		if w != curW || h != curH {
			if err := flush(); err != nil {
				return nil, fmt.Errorf("gencursor: scaled group: %w", err)
			}
			curW, curH = w, h
		}
		buffer = append(buffer, img)
	}
	if err := flush(); err != nil {
		return nil, fmt.Errorf("gencursor: scaled group: %w", err)
	}

	return New(baseImages, scaledGroups)
}

// curfileDir aliases curfile.File so gencursor can attach no extra methods
// while keeping the dependency direction one-way.
type curfileDir curfile.File

// baseDimensions prefers 32x32 as the canonical base size (the common case
// for Windows cursors); otherwise it falls back to the first frame's first
// entry.
func baseDimensions(icos []*curfileDir) (uint32, uint32) {
	for _, ico := range icos {
		for _, e := range ico.Entries {
			if e.Width == 32 && e.Height == 32 {
				return 32, 32
			}
		}
	}
	first := icos[0].Entries[0]
	return first.Width, first.Height
}

// BaseImages returns the base frame sequence.
func (g *GenericCursor) BaseImages() cursorimage.CursorImages { return g.base }

// ScaledImages returns the registered scaled-frame groups, in registration order.
func (g *GenericCursor) ScaledImages() []cursorimage.CursorImages { return g.scaled }

// NumImages returns the total number of frames across base and all scaled groups.
func (g *GenericCursor) NumImages() int {
	return (len(g.scaled) + 1) * g.base.Len()
}

// JoinedImages returns every frame, base first followed by each scaled
// group in registration order.
func (g *GenericCursor) JoinedImages() []cursorimage.CursorImage {
	out := make([]cursorimage.CursorImage, 0, g.NumImages())
	out = append(out, g.base.Frames()...)
	for _, group := range g.scaled {
		out = append(out, group.Frames()...)
	}
	return out
}

// SaveAsXcursor writes the cursor to path in Xcursor format.
func (g *GenericCursor) SaveAsXcursor(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("gencursor: create %s: %w", path, err)
	}
	defer f.Close()

	w := xcursor.NewWriter()
	for _, img := range g.JoinedImages() {
		if err := w.AddImage(img); err != nil {
			return fmt.Errorf("gencursor: %s: %w", path, err)
		}
	}

	if _, err := w.WriteTo(f); err != nil {
		return fmt.Errorf("gencursor: writing %s: %w", path, err)
	}
	return nil
}
