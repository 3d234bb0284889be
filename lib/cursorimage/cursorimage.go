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

// Package cursorimage provides the CursorImage and CursorImages types, the
// smallest unit of cursor data shared by the gencursor, scale and xcursor
// packages.
package cursorimage

import (
	"errors"
	"fmt"
)

// StaticDelay is used for non-animated cursor frames.
const StaticDelay = 0

var (
	// ErrZeroDimension is returned when width or height is zero.
	ErrZeroDimension = errors.New("cursorimage: width and height must be non-zero")
	// ErrHotspotOutOfBounds is returned when the hotspot lies outside the image.
	ErrHotspotOutOfBounds = errors.New("cursorimage: hotspot out of bounds")
	// ErrRGBALength is returned when the pixel buffer length doesn't match w*h*4.
	ErrRGBALength = errors.New("cursorimage: rgba length does not match width*height*4")
	// ErrEmptySequence is returned when constructing CursorImages from no frames.
	ErrEmptySequence = errors.New("cursorimage: sequence has no frames")
	// ErrStaticDelay is returned when a lone frame carries a non-zero delay.
	ErrStaticDelay = errors.New("cursorimage: single-frame sequence must have zero delay")
	// ErrZeroDelay is returned when an animated sequence has a zero-delay frame.
	ErrZeroDelay = errors.New("cursorimage: animated sequence frames must have non-zero delay")
	// ErrDimensionMismatch is returned when frames in a sequence disagree on size.
	ErrDimensionMismatch = errors.New("cursorimage: inconsistent frame dimensions in sequence")
)

// CursorImage is a single RGBA cursor frame: a bitmap plus a hotspot and an
// optional animation delay. It is immutable once constructed.
type CursorImage struct {
	width, height      uint32
	hotspotX, hotspotY uint32
	rgba               []byte
	delayMS            uint32
}

// New validates and constructs a CursorImage. rgba is non-premultiplied,
// row-major, top-down RGBA8 data of length width*height*4. delayMS is the
// frame's display duration in milliseconds, or StaticDelay for single-frame
// cursors.
func New(width, height, hotspotX, hotspotY uint32, rgba []byte, delayMS uint32) (CursorImage, error) {
	if width == 0 || height == 0 {
		return CursorImage{}, ErrZeroDimension
	}
	if hotspotX > width || hotspotY > height {
		return CursorImage{}, fmt.Errorf("%w: hotspot=(%d,%d) dimensions=(%d,%d)",
			ErrHotspotOutOfBounds, hotspotX, hotspotY, width, height)
	}
	want := uint64(width) * uint64(height) * 4
	if uint64(len(rgba)) != want {
		return CursorImage{}, fmt.Errorf("%w: want %d, got %d", ErrRGBALength, want, len(rgba))
	}

	buf := make([]byte, len(rgba))
	copy(buf, rgba)

	return CursorImage{
		width:    width,
		height:   height,
		hotspotX: hotspotX,
		hotspotY: hotspotY,
		rgba:     buf,
		delayMS:  delayMS,
	}, nil
}

// Dimensions returns (width, height).
func (c CursorImage) Dimensions() (uint32, uint32) { return c.width, c.height }

// Hotspot returns (hotspotX, hotspotY).
func (c CursorImage) Hotspot() (uint32, uint32) { return c.hotspotX, c.hotspotY }

// DelayMS returns the frame's display duration in milliseconds.
func (c CursorImage) DelayMS() uint32 { return c.delayMS }

// RGBA returns a copy of the stored pixel buffer.
func (c CursorImage) RGBA() []byte {
	out := make([]byte, len(c.rgba))
	copy(out, c.rgba)
	return out
}

// NominalSize is max(width, height), used for Xcursor grouping and scale
// factor derivation.
func (c CursorImage) NominalSize() uint32 {
	if c.width > c.height {
		return c.width
	}
	return c.height
}

// CursorImages is a validated, non-empty sequence of CursorImage frames: a
// single static frame, or a multi-frame animation where every frame shares
// the same dimensions and carries a non-zero delay.
type CursorImages struct {
	frames []CursorImage
}

// NewCursorImages validates frames and returns a CursorImages sequence.
func NewCursorImages(frames []CursorImage) (CursorImages, error) {
	if len(frames) == 0 {
		return CursorImages{}, ErrEmptySequence
	}

	if len(frames) == 1 {
		if frames[0].delayMS != 0 {
			return CursorImages{}, ErrStaticDelay
		}
		out := make([]CursorImage, 1)
		copy(out, frames)
		return CursorImages{frames: out}, nil
	}

	w, h := frames[0].Dimensions()
	for _, f := range frames {
		if fw, fh := f.Dimensions(); fw != w || fh != h {
			return CursorImages{}, fmt.Errorf("%w: expected (%d,%d), got (%d,%d)",
				ErrDimensionMismatch, w, h, fw, fh)
		}
		if f.delayMS == 0 {
			return CursorImages{}, ErrZeroDelay
		}
	}

	out := make([]CursorImage, len(frames))
	copy(out, frames)
	return CursorImages{frames: out}, nil
}

// First returns the first frame.
func (c CursorImages) First() CursorImage { return c.frames[0] }

// Len returns the number of frames.
func (c CursorImages) Len() int { return len(c.frames) }

// Frames returns a read-only view of the stored frames.
func (c CursorImages) Frames() []CursorImage {
	out := make([]CursorImage, len(c.frames))
	copy(out, c.frames)
	return out
}
