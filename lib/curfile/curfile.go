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

// Package curfile decodes Windows CUR (and, incidentally, ICO) container
// files: a directory of embedded images, each either a PNG or a legacy
// BITMAPINFOHEADER-style DIB with a separate 1-bit AND mask.
package curfile

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
)

var (
	// ErrNotCursor is returned when the ICONDIR type field isn't 2 (cursor).
	ErrNotCursor = errors.New("curfile: not a cursor file (ICONDIR type != 2)")
	// ErrNoImages is returned when ICONDIR declares zero entries.
	ErrNoImages = errors.New("curfile: no images found in directory")
	// ErrTruncated is returned when the file ends before a declared field.
	ErrTruncated = errors.New("curfile: file is truncated")
	// ErrUnsupportedDIB is returned for bit depths/compression this package can't decode.
	ErrUnsupportedDIB = errors.New("curfile: unsupported DIB format")
)

// Entry is a single decoded image within a CUR file: its bitmap plus the
// hotspot recorded in the ICONDIRENTRY.
type Entry struct {
	Width, Height      uint32
	HotspotX, HotspotY uint32
	RGBA               *image.NRGBA
}

// File is a fully decoded CUR container.
type File struct {
	Entries []Entry
}

// DecodeFile reads and decodes path as a CUR file.
func DecodeFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("curfile: read %s: %w", path, err)
	}
	return Decode(data)
}

// Decode parses data as a CUR file (ICONDIR with type == 2).
func Decode(data []byte) (*File, error) {
	if len(data) < 6 {
		return nil, fmt.Errorf("%w: directory header", ErrTruncated)
	}
	if binary.LittleEndian.Uint16(data[0:2]) != 0 {
		return nil, errors.New("curfile: invalid ICONDIR reserved field")
	}

	fileType := binary.LittleEndian.Uint16(data[2:4])
	if fileType != 2 {
		return nil, fmt.Errorf("%w: got type=%d", ErrNotCursor, fileType)
	}

	count := int(binary.LittleEndian.Uint16(data[4:6]))
	if count == 0 {
		return nil, ErrNoImages
	}

	type dirEntry struct {
		width, height      uint32
		hotspotX, hotspotY uint32
		size, offset       uint32
	}

	entries := make([]dirEntry, 0, count)
	for i := 0; i < count; i++ {
		off := 6 + i*16
		if off+16 > len(data) {
			return nil, fmt.Errorf("%w: directory entry %d", ErrTruncated, i)
		}

		width := uint32(data[off])
		if width == 0 {
			width = 256
		}
		height := uint32(data[off+1])
		if height == 0 {
			height = 256
		}

		entries = append(entries, dirEntry{
			width:    width,
			height:   height,
			hotspotX: uint32(binary.LittleEndian.Uint16(data[off+4 : off+6])),
			hotspotY: uint32(binary.LittleEndian.Uint16(data[off+6 : off+8])),
			size:     binary.LittleEndian.Uint32(data[off+8 : off+12]),
			offset:   binary.LittleEndian.Uint32(data[off+12 : off+16]),
		})
	}

	out := &File{Entries: make([]Entry, 0, count)}
	for i, e := range entries {
		if uint64(e.offset)+uint64(e.size) > uint64(len(data)) {
			return nil, fmt.Errorf("%w: image data for entry %d", ErrTruncated, i)
		}

		img, err := decodeImage(data[e.offset : e.offset+e.size])
		if err != nil {
			return nil, fmt.Errorf("curfile: entry %d: %w", i, err)
		}

		out.Entries = append(out.Entries, Entry{
			Width:    e.width,
			Height:   e.height,
			HotspotX: e.hotspotX,
			HotspotY: e.hotspotY,
			RGBA:     img,
		})
	}

	return out, nil
}

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func decodeImage(data []byte) (*image.NRGBA, error) {
	if bytes.HasPrefix(data, pngSignature) {
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decode embedded png: %w", err)
		}
		return toNRGBA(img), nil
	}
	return decodeDIB(data)
}

// decodeDIB parses a BITMAPINFOHEADER-style DIB followed by an XOR color
// bitmap and an AND (transparency) mask bitmap, as embedded in CUR/ICO
// directory entries.
func decodeDIB(data []byte) (*image.NRGBA, error) {
	if len(data) < 40 {
		return nil, fmt.Errorf("%w: DIB header too small", ErrTruncated)
	}

	headerSize := int(binary.LittleEndian.Uint32(data[0:4]))
	if headerSize < 40 || headerSize > len(data) {
		return nil, fmt.Errorf("%w: header size %d", ErrUnsupportedDIB, headerSize)
	}

	width := int(int32(binary.LittleEndian.Uint32(data[4:8])))
	heightTotal := int32(binary.LittleEndian.Uint32(data[8:12]))
	if width <= 0 || heightTotal == 0 {
		return nil, fmt.Errorf("%w: invalid dimensions", ErrUnsupportedDIB)
	}

	topDown := heightTotal < 0
	heightAbs := int(heightTotal)
	if heightAbs < 0 {
		heightAbs = -heightAbs
	}
	if heightAbs%2 != 0 {
		return nil, fmt.Errorf("%w: odd combined height %d", ErrUnsupportedDIB, heightAbs)
	}
	height := heightAbs / 2

	planes := binary.LittleEndian.Uint16(data[12:14])
	bitCount := int(binary.LittleEndian.Uint16(data[14:16]))
	compression := binary.LittleEndian.Uint32(data[16:20])
	if planes != 1 || compression != 0 {
		return nil, fmt.Errorf("%w: planes=%d compression=%d", ErrUnsupportedDIB, planes, compression)
	}

	var clrUsed uint32
	if headerSize >= 36 {
		clrUsed = binary.LittleEndian.Uint32(data[32:36])
	}

	paletteEntries := 0
	if bitCount <= 8 {
		if clrUsed > 0 {
			paletteEntries = int(clrUsed)
		} else {
			paletteEntries = 1 << uint(bitCount)
		}
	}

	paletteOffset := headerSize
	paletteBytes := paletteEntries * 4
	if paletteOffset+paletteBytes > len(data) {
		return nil, fmt.Errorf("%w: palette truncated", ErrTruncated)
	}

	palette := make([]color.NRGBA, paletteEntries)
	for i := 0; i < paletteEntries; i++ {
		base := paletteOffset + i*4
		palette[i] = color.NRGBA{R: data[base+2], G: data[base+1], B: data[base], A: 255}
	}

	switch bitCount {
	case 32, 24, 8, 4, 1:
	default:
		return nil, fmt.Errorf("%w: bit depth %d", ErrUnsupportedDIB, bitCount)
	}

	xorStride := ((bitCount*width + 31) / 32) * 4
	andStride := ((width + 31) / 32) * 4
	xorSize := xorStride * height
	andSize := andStride * height
	pixelOffset := paletteOffset + paletteBytes
	if pixelOffset+xorSize+andSize > len(data) {
		return nil, fmt.Errorf("%w: pixel data truncated", ErrTruncated)
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		srcY := y
		if !topDown {
			srcY = height - 1 - y
		}
		xorRow := pixelOffset + srcY*xorStride
		andRow := pixelOffset + xorSize + srcY*andStride

		for x := 0; x < width; x++ {
			maskByte := data[andRow+x/8]
			maskBit := (maskByte >> uint(7-(x%8))) & 1

			var r, g, b, a byte
			switch bitCount {
			case 32:
				idx := xorRow + x*4
				b, g, r, a = data[idx], data[idx+1], data[idx+2], data[idx+3]
			case 24:
				idx := xorRow + x*3
				b, g, r, a = data[idx], data[idx+1], data[idx+2], 255
			case 8:
				p := paletteColor(palette, int(data[xorRow+x]))
				r, g, b, a = p.R, p.G, p.B, 255
			case 4:
				idxByte := data[xorRow+x/2]
				var pi int
				if x%2 == 0 {
					pi = int(idxByte >> 4)
				} else {
					pi = int(idxByte & 0x0F)
				}
				p := paletteColor(palette, pi)
				r, g, b, a = p.R, p.G, p.B, 255
			case 1:
				idxByte := data[xorRow+x/8]
				pi := int((idxByte >> uint(7-(x%8))) & 1)
				p := paletteColor(palette, pi)
				r, g, b, a = p.R, p.G, p.B, 255
			}

			if maskBit == 1 {
				a = 0
			}
			img.SetNRGBA(x, y, color.NRGBA{R: r, G: g, B: b, A: a})
		}
	}

	return img, nil
}

func paletteColor(palette []color.NRGBA, idx int) color.NRGBA {
	if idx < 0 || idx >= len(palette) {
		return color.NRGBA{}
	}
	return palette[idx]
}

func toNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}
