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

// Package scale resamples cursor bitmaps to new scale factors.
package scale

import (
	"errors"
	"fmt"
	"image"
	"image/draw"

	"github.com/nfnt/resize"

	"github.com/hachispin/currust/lib/cursorimage"
)

// Algorithm names a resampling kernel.
type Algorithm int

const (
	// Nearest is nearest-neighbor interpolation.
	Nearest Algorithm = iota
	// Box is block averaging, the traditional downscale-friendly filter.
	Box
	// Bilinear interpolation.
	Bilinear
	// Mitchell is the Mitchell-Netravali cubic filter.
	Mitchell
	// Lanczos3 is a 3-lobe windowed sinc filter.
	Lanczos3
)

// ErrScaleFactor is returned for a non-positive scale factor.
var ErrScaleFactor = errors.New("scale: factor must be positive")

func (a Algorithm) String() string {
	switch a {
	case Nearest:
		return "nearest"
	case Box:
		return "box"
	case Bilinear:
		return "bilinear"
	case Mitchell:
		return "mitchell"
	case Lanczos3:
		return "lanczos3"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

// Resize returns img scaled by factor using alg. The hotspot is scaled by the
// same factor (rounded to nearest and clamped to the new bounds); the delay
// is unchanged.
func Resize(img cursorimage.CursorImage, factor float64, alg Algorithm) (cursorimage.CursorImage, error) {
	if factor <= 0 {
		return cursorimage.CursorImage{}, fmt.Errorf("%w: got %v", ErrScaleFactor, factor)
	}

	w, h := img.Dimensions()
	newW := uint32(float64(w)*factor + 0.5)
	newH := uint32(float64(h)*factor + 0.5)
	if newW == 0 {
		newW = 1
	}
	if newH == 0 {
		newH = 1
	}

	src := toNRGBA(img.RGBA(), int(w), int(h))

	var dst *image.NRGBA
	if alg == Box {
		dst = boxAverage(src, int(newW), int(newH))
	} else {
		resized := resize.Resize(uint(newW), uint(newH), src, interpFor(alg))
		dst = toNRGBAImage(resized)
	}

	hx, hy := img.Hotspot()
	newHX := uint32(float64(hx)*factor + 0.5)
	newHY := uint32(float64(hy)*factor + 0.5)
	if newHX > newW {
		newHX = newW
	}
	if newHY > newH {
		newHY = newH
	}

	return cursorimage.New(newW, newH, newHX, newHY, dst.Pix, img.DelayMS())
}

func interpFor(alg Algorithm) resize.InterpolationFunction {
	switch alg {
	case Nearest:
		return resize.NearestNeighbor
	case Bilinear:
		return resize.Bilinear
	case Mitchell:
		return resize.MitchellNetravali
	case Lanczos3:
		return resize.Lanczos3
	default:
		return resize.Bilinear
	}
}

func toNRGBA(rgba []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	copy(img.Pix, rgba)
	return img
}

func toNRGBAImage(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok {
		return n
	}
	b := src.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), src, b.Min, draw.Src)
	return out
}
