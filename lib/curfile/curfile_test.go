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

package curfile

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildCur constructs a minimal one-entry 2x2, 32bpp CUR file with a fully
// opaque red pixel at (0,0); every other pixel has zero alpha, and (1,0) is
// additionally set in the AND mask.
func buildCur(t *testing.T) []byte {
	t.Helper()

	const w, h = 2, 2

	dibHeader := make([]byte, 40)
	binary.LittleEndian.PutUint32(dibHeader[0:4], 40)
	binary.LittleEndian.PutUint32(dibHeader[4:8], w)
	binary.LittleEndian.PutUint32(dibHeader[8:12], uint32(h*2)) // xor+and combined height
	binary.LittleEndian.PutUint16(dibHeader[12:14], 1)          // planes
	binary.LittleEndian.PutUint16(dibHeader[14:16], 32)         // bit count

	xor := make([]byte, w*h*4)
	// top-left (bottom-up row 1, i.e. displayed row 0) pixel: B,G,R,A = blue=0,green=0,red=255,alpha=255
	xor[w*4], xor[w*4+1], xor[w*4+2], xor[w*4+3] = 0, 0, 255, 255

	andStride := ((w + 31) / 32) * 4
	and := make([]byte, andStride*h)
	// mark pixel (1,0) (bottom-up row 1) transparent: bit 1 of first byte of second row
	and[andStride] = 0x40 // bit for x=1 set => transparent

	dib := append(dibHeader, xor...)
	dib = append(dib, and...)

	dirEntry := make([]byte, 16)
	dirEntry[0] = w
	dirEntry[1] = h
	binary.LittleEndian.PutUint16(dirEntry[4:6], 1) // hotspot x
	binary.LittleEndian.PutUint16(dirEntry[6:8], 1) // hotspot y
	binary.LittleEndian.PutUint32(dirEntry[8:12], uint32(len(dib)))
	binary.LittleEndian.PutUint32(dirEntry[12:16], 6+16)

	header := make([]byte, 6)
	binary.LittleEndian.PutUint16(header[2:4], 2) // type = cursor
	binary.LittleEndian.PutUint16(header[4:6], 1) // count

	out := append(header, dirEntry...)
	out = append(out, dib...)
	return out
}

func TestDecodeCur(t *testing.T) {
	data := buildCur(t)

	f, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, f.Entries, 1)

	e := f.Entries[0]
	assert.Equal(t, uint32(2), e.Width)
	assert.Equal(t, uint32(2), e.Height)
	assert.Equal(t, uint32(1), e.HotspotX)
	assert.Equal(t, uint32(1), e.HotspotY)

	// row 0 is the bottom-up last xor row: pixel (0,0) should be opaque red.
	r, g, b, a := e.RGBA.At(0, 0).RGBA()
	assert.NotZero(t, a)
	assert.Zero(t, b >> 8)
	assert.Zero(t, g >> 8)
	assert.NotZero(t, r)
}

func TestDecodeRejectsNonCursor(t *testing.T) {
	data := buildCur(t)
	binary.LittleEndian.PutUint16(data[2:4], 1) // ICO type

	_, err := Decode(data)
	require.ErrorIs(t, err, ErrNotCursor)
}

func TestDecodeTruncated(t *testing.T) {
	_, err := Decode([]byte{0, 0, 2, 0})
	require.ErrorIs(t, err, ErrTruncated)
}
