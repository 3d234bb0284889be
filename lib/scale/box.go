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

package scale

import "image"

// boxAverage resamples src to (dstW, dstH) by averaging the block of source
// pixels each destination pixel covers. nfnt/resize has no equivalent named
// filter, so this is hand-rolled.
func boxAverage(src *image.NRGBA, dstW, dstH int) *image.NRGBA {
	srcW, srcH := src.Bounds().Dx(), src.Bounds().Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, dstW, dstH))

	scaleX := float64(srcW) / float64(dstW)
	scaleY := float64(srcH) / float64(dstH)

	for y := 0; y < dstH; y++ {
		y0 := int(float64(y) * scaleY)
		y1 := int(float64(y+1) * scaleY)
		if y1 > srcH {
			y1 = srcH
		}
		if y1 <= y0 {
			y1 = y0 + 1
		}

		for x := 0; x < dstW; x++ {
			x0 := int(float64(x) * scaleX)
			x1 := int(float64(x+1) * scaleX)
			if x1 > srcW {
				x1 = srcW
			}
			if x1 <= x0 {
				x1 = x0 + 1
			}

			var rSum, gSum, bSum, aSum, count uint32
			for sy := y0; sy < y1 && sy < srcH; sy++ {
				for sx := x0; sx < x1 && sx < srcW; sx++ {
					off := src.PixOffset(sx, sy)
					rSum += uint32(src.Pix[off])
					gSum += uint32(src.Pix[off+1])
					bSum += uint32(src.Pix[off+2])
					aSum += uint32(src.Pix[off+3])
					count++
				}
			}
			if count == 0 {
				count = 1
			}

			off := dst.PixOffset(x, y)
			dst.Pix[off] = byte(rSum / count)
			dst.Pix[off+1] = byte(gSum / count)
			dst.Pix[off+2] = byte(bSum / count)
			dst.Pix[off+3] = byte(aSum / count)
		}
	}

	return dst
}
