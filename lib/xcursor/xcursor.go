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

// Package xcursor writes the X11 Xcursor binary format.
//
// A file is a magic + header with a table of contents, followed by a
// comment chunk (optional) and one image chunk per frame. Pixel data is
// stored as pre-multiplied big-endian ARGB, which this package writes as
// little-endian BGRA words -- the two are byte-for-byte identical, so no
// endian swap beyond the R/B channel swap is required.
//
// Reference: https://manpages.ubuntu.com/manpages/plucky/man3/Xcursor.3.html
package xcursor

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/hachispin/currust/lib/cursorimage"
)

const (
	versionXcursor = 1 << 16
	versionComment = 1
	versionImage   = 1

	sizeXcursorHeader = 16
	sizeComment       = 20
	sizeImage         = 36
	sizeTOC           = 12
)

const (
	chunkTypeComment uint32 = 0xfffe0001
	chunkTypeImage   uint32 = 0xfffd0002
)

// CommentRole identifies the kind of text a comment chunk carries.
type CommentRole uint32

const (
	CommentCopyright CommentRole = 1
	CommentLicense   CommentRole = 2
	CommentOther     CommentRole = 3
)

type tocEntry struct {
	chunkType uint32
	subtype   uint32
	position  uint32
}

// Writer accumulates table-of-contents entries and chunk bodies for a single
// Xcursor file, then serializes them in one pass so every position offset
// can be computed up front.
type Writer struct {
	toc     []tocEntry
	comment []byte // serialized comment chunk body, or nil
	images  [][]byte
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer { return &Writer{} }

// SetComment attaches a single comment chunk to the file.
func (w *Writer) SetComment(text string, role CommentRole) {
	body := text
	length := uint32(len(body))

	buf := make([]byte, sizeComment+len(body))
	binary.LittleEndian.PutUint32(buf[0:4], sizeComment)
	binary.LittleEndian.PutUint32(buf[4:8], chunkTypeComment)
	binary.LittleEndian.PutUint32(buf[8:12], uint32(role))
	binary.LittleEndian.PutUint32(buf[12:16], versionComment)
	binary.LittleEndian.PutUint32(buf[16:20], length)
	copy(buf[20:], body)

	w.comment = buf
}

// AddImage appends a cursor frame. Images must be added in the order they
// should appear in the file.
func (w *Writer) AddImage(img cursorimage.CursorImage) error {
	width, height := img.Dimensions()
	if width == 0 || width > 2048 || height == 0 || height > 2048 {
		return fmt.Errorf("xcursor: image dimensions (%d,%d) out of range [1,2048]", width, height)
	}

	hotspotX, hotspotY := img.Hotspot()
	if hotspotX > width || hotspotY > height {
		return fmt.Errorf("xcursor: hotspot (%d,%d) outside image (%d,%d)", hotspotX, hotspotY, width, height)
	}

	delay := img.DelayMS()
	if delay > 60000 {
		return fmt.Errorf("xcursor: delay %dms exceeds 60000ms", delay)
	}

	argb := toPreARGB(img.RGBA())

	buf := make([]byte, sizeImage+len(argb))
	binary.LittleEndian.PutUint32(buf[0:4], sizeImage)
	binary.LittleEndian.PutUint32(buf[4:8], chunkTypeImage)
	binary.LittleEndian.PutUint32(buf[8:12], img.NominalSize())
	binary.LittleEndian.PutUint32(buf[12:16], versionImage)
	binary.LittleEndian.PutUint32(buf[16:20], width)
	binary.LittleEndian.PutUint32(buf[20:24], height)
	binary.LittleEndian.PutUint32(buf[24:28], hotspotX)
	binary.LittleEndian.PutUint32(buf[28:32], hotspotY)
	binary.LittleEndian.PutUint32(buf[32:36], delay)
	copy(buf[36:], argb)

	w.images = append(w.images, buf)
	return nil
}

// WriteTo serializes the accumulated comment and image chunks to w,
// computing the table of contents and chunk positions.
func (w *Writer) WriteTo(dst io.Writer) (int64, error) {
	numTOC := len(w.images)
	if w.comment != nil {
		numTOC++
	}

	bw := bufio.NewWriter(dst)
	var n int64

	hdr := make([]byte, sizeXcursorHeader)
	copy(hdr[0:4], "Xcur")
	binary.LittleEndian.PutUint32(hdr[4:8], sizeXcursorHeader)
	binary.LittleEndian.PutUint32(hdr[8:12], versionXcursor)
	binary.LittleEndian.PutUint32(hdr[12:16], uint32(numTOC))

	position := uint32(sizeXcursorHeader) + uint32(numTOC)*sizeTOC

	toc := make([]tocEntry, 0, numTOC)
	if w.comment != nil {
		role := binary.LittleEndian.Uint32(w.comment[8:12])
		toc = append(toc, tocEntry{chunkType: chunkTypeComment, subtype: role, position: position})
		position += uint32(len(w.comment))
	}

	imageNominal := make([]uint32, len(w.images))
	for i, body := range w.images {
		imageNominal[i] = binary.LittleEndian.Uint32(body[8:12])
		toc = append(toc, tocEntry{chunkType: chunkTypeImage, subtype: imageNominal[i], position: position})
		position += uint32(len(body))
	}

	written, err := bw.Write(hdr)
	n += int64(written)
	if err != nil {
		return n, err
	}

	tocBuf := make([]byte, sizeTOC)
	for _, e := range toc {
		binary.LittleEndian.PutUint32(tocBuf[0:4], e.chunkType)
		binary.LittleEndian.PutUint32(tocBuf[4:8], e.subtype)
		binary.LittleEndian.PutUint32(tocBuf[8:12], e.position)
		written, err := bw.Write(tocBuf)
		n += int64(written)
		if err != nil {
			return n, err
		}
	}

	if w.comment != nil {
		written, err := bw.Write(w.comment)
		n += int64(written)
		if err != nil {
			return n, err
		}
	}

	for _, body := range w.images {
		written, err := bw.Write(body)
		n += int64(written)
		if err != nil {
			return n, err
		}
	}

	return n, bw.Flush()
}

// toPreARGB converts non-premultiplied RGBA8 pixel data to pre-multiplied
// big-endian ARGB, expressed as little-endian BGRA bytes (byte-identical to
// a big-endian ARGB uint32 array on any architecture).
func toPreARGB(rgba []byte) []byte {
	out := make([]byte, len(rgba))
	copy(out, rgba)

	for i := 0; i+4 <= len(out); i += 4 {
		// swap R and B: LE-BGRA == BE-ARGB
		out[i], out[i+2] = out[i+2], out[i]
		a := out[i+3]
		out[i] = preAlpha(out[i], a)
		out[i+1] = preAlpha(out[i+1], a)
		out[i+2] = preAlpha(out[i+2], a)
	}

	return out
}

// preAlpha pre-multiplies channel c by alpha a, rounding to nearest.
func preAlpha(c, a byte) byte {
	prod := uint16(c) * uint16(a)
	return byte((prod + 127) / 255)
}
