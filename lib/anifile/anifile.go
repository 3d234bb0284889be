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

// Package anifile decodes Windows ANI (RIFF/ACON) animated cursor files.
//
// An ANI file is a RIFF container of type "ACON" holding, in no fixed
// order: an "anih" header chunk, optional "rate" and "seq " chunks, an
// optional "LIST"/"INFO" chunk (title/author), and a required "LIST"/"fram"
// chunk holding one "icon" subchunk per frame. Because chunks may appear in
// any order, this package walks the container with a loop and a switch on
// FourCC rather than a fixed, declarative layout.
package anifile

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"golang.org/x/image/riff"
)

// MaxChunkSize bounds any single dynamically-sized chunk, guarding against
// hostile or corrupt size fields driving unbounded allocations.
const MaxChunkSize = 2 * 1024 * 1024

var (
	ErrNotRIFF          = errors.New("anifile: not a RIFF container")
	ErrNotACON          = errors.New("anifile: RIFF subtype is not ACON")
	ErrDuplicateChunk   = errors.New("anifile: duplicate chunk")
	ErrMissingHeader    = errors.New("anifile: missing anih chunk")
	ErrMissingFrames    = errors.New("anifile: missing or empty fram chunk")
	ErrChunkTooLarge    = errors.New("anifile: chunk exceeds MaxChunkSize")
	ErrBadHeaderSize    = errors.New("anifile: anih chunk has wrong size")
	ErrFrameCountMismatch = errors.New("anifile: num_frames does not match ico_frames length")
	ErrSequenceOutOfRange = errors.New("anifile: seq chunk index out of range")
	ErrRateLengthMismatch = errors.New("anifile: rate chunk length does not match num_steps")
	ErrUnexpectedChunk  = errors.New("anifile: unexpected chunk id")
)

// Flags describes the "fl" field of ANIHEADER.
type Flags uint32

const (
	// Unsequenced cursors use the order icon frames are stored in, unless
	// an explicit "seq " chunk reorders/repeats them.
	Unsequenced Flags = 1
	// Sequenced cursors always carry a "seq " chunk.
	Sequenced Flags = 3
)

// Header mirrors the ANI file's fixed 36-byte ANIHEADER structure.
type Header struct {
	NumFrames uint32
	NumSteps  uint32
	JiffyRate uint32
	Flags     Flags
}

// File is a fully decoded ANI container.
type File struct {
	Header Header
	Title  string
	Author string
	// Rate holds per-step display durations in jiffies (1/60s), if present.
	Rate []uint32
	// Sequence holds frame indices describing playback order, if present.
	Sequence []uint32
	// IcoFrames holds the raw bytes of each "icon" subchunk (a CUR blob).
	IcoFrames [][]byte
}

// Decode parses blob as an ANI file.
func Decode(blob []byte) (*File, error) {
	if len(blob) > MaxChunkSize {
		return nil, fmt.Errorf("%w: blob is %d bytes", ErrChunkTooLarge, len(blob))
	}

	formType, rr, err := riff.NewReader(bytes.NewReader(blob))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotRIFF, err)
	}
	if formType != riff.FourCC{'A', 'C', 'O', 'N'} {
		return nil, fmt.Errorf("%w: got %q", ErrNotACON, formType)
	}

	var (
		f          File
		haveHeader bool
	)

	for {
		chunkID, chunkLen, chunkData, err := rr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("anifile: reading chunk: %w", err)
		}
		if chunkLen > MaxChunkSize {
			return nil, fmt.Errorf("%w: chunk %q is %d bytes", ErrChunkTooLarge, chunkID, chunkLen)
		}

		switch chunkID {
		case riff.FourCC{'L', 'I', 'S', 'T'}:
			if err := parseList(chunkLen, chunkData, &f); err != nil {
				return nil, err
			}

		case riff.FourCC{'a', 'n', 'i', 'h'}:
			if haveHeader {
				return nil, fmt.Errorf("%w: anih", ErrDuplicateChunk)
			}
			hdr, err := readHeader(chunkData)
			if err != nil {
				return nil, err
			}
			f.Header = hdr
			haveHeader = true

		case riff.FourCC{'r', 'a', 't', 'e'}:
			if f.Rate != nil {
				return nil, fmt.Errorf("%w: rate", ErrDuplicateChunk)
			}
			vals, err := readU32s(chunkData, chunkLen)
			if err != nil {
				return nil, fmt.Errorf("anifile: rate chunk: %w", err)
			}
			f.Rate = vals

		case riff.FourCC{'s', 'e', 'q', ' '}:
			if f.Sequence != nil {
				return nil, fmt.Errorf("%w: seq ", ErrDuplicateChunk)
			}
			vals, err := readU32s(chunkData, chunkLen)
			if err != nil {
				return nil, fmt.Errorf("anifile: seq chunk: %w", err)
			}
			f.Sequence = vals

		default:
			return nil, fmt.Errorf("%w: %q", ErrUnexpectedChunk, chunkID)
		}
	}

	if !haveHeader {
		return nil, ErrMissingHeader
	}

	if err := checkInvariants(&f); err != nil {
		return nil, err
	}

	return &f, nil
}

func readHeader(r io.Reader) (Header, error) {
	var buf [36]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return Header{}, fmt.Errorf("%w: %v", ErrBadHeaderSize, err)
	}

	headerSize := binary.LittleEndian.Uint32(buf[0:4])
	if headerSize != 36 {
		return Header{}, fmt.Errorf("%w: cbSizeof=%d", ErrBadHeaderSize, headerSize)
	}

	numFrames := binary.LittleEndian.Uint32(buf[4:8])
	numSteps := binary.LittleEndian.Uint32(buf[8:12])
	// buf[12:28] is cx, cy, cBitCount, cPlanes -- unused by any real reader.
	jiffyRate := binary.LittleEndian.Uint32(buf[28:32])
	flags := Flags(binary.LittleEndian.Uint32(buf[32:36]))

	return Header{
		NumFrames: numFrames,
		NumSteps:  numSteps,
		JiffyRate: jiffyRate,
		Flags:     flags,
	}, nil
}

func readU32s(r io.Reader, chunkLen uint32) ([]uint32, error) {
	if chunkLen%4 != 0 {
		return nil, fmt.Errorf("anifile: chunk length %d is not a multiple of 4", chunkLen)
	}
	n := int(chunkLen / 4)
	buf := make([]byte, chunkLen)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	out := make([]uint32, n)
	for i := 0; i < n; i++ {
		out[i] = binary.LittleEndian.Uint32(buf[i*4 : i*4+4])
	}
	return out, nil
}

func parseList(chunkLen uint32, chunkData io.Reader, f *File) error {
	listType, lr, err := riff.NewListReader(chunkLen, chunkData)
	if err != nil {
		return fmt.Errorf("anifile: LIST chunk: %w", err)
	}

	switch listType {
	case riff.FourCC{'I', 'N', 'F', 'O'}:
		haveTitle, haveAuthor := f.Title != "", f.Author != ""
		for {
			id, n, data, err := lr.Next()
			if err == io.EOF {
				break
			}
			if err != nil {
				return fmt.Errorf("anifile: INFO list: %w", err)
			}

			buf := make([]byte, n)
			if _, err := io.ReadFull(data, buf); err != nil {
				return fmt.Errorf("anifile: INFO subchunk %q: %w", id, err)
			}
			s := string(bytes.TrimRight(buf, "\x00"))

			switch id {
			case riff.FourCC{'I', 'N', 'A', 'M'}:
				if haveTitle {
					return fmt.Errorf("%w: INAM", ErrDuplicateChunk)
				}
				f.Title = s
				haveTitle = true
			case riff.FourCC{'I', 'A', 'R', 'T'}:
				if haveAuthor {
					return fmt.Errorf("%w: IART", ErrDuplicateChunk)
				}
				f.Author = s
				haveAuthor = true
			default:
				return fmt.Errorf("%w: %q in INFO", ErrUnexpectedChunk, id)
			}
		}

	case riff.FourCC{'f', 'r', 'a', 'm'}:
		if f.IcoFrames != nil {
			return fmt.Errorf("%w: fram", ErrDuplicateChunk)
		}
		var frames [][]byte
		for {
			id, n, data, err := lr.Next()
			if err == io.EOF {
				break
			}
			if err != nil {
				return fmt.Errorf("anifile: fram list: %w", err)
			}
			if id != (riff.FourCC{'i', 'c', 'o', 'n'}) {
				return fmt.Errorf("%w: %q in fram", ErrUnexpectedChunk, id)
			}
			if n > MaxChunkSize {
				return fmt.Errorf("%w: icon subchunk is %d bytes", ErrChunkTooLarge, n)
			}
			buf := make([]byte, n)
			if _, err := io.ReadFull(data, buf); err != nil {
				return fmt.Errorf("anifile: icon subchunk: %w", err)
			}
			frames = append(frames, buf)
		}
		if len(frames) == 0 {
			return ErrMissingFrames
		}
		f.IcoFrames = frames

	default:
		return fmt.Errorf("%w: LIST subtype %q", ErrUnexpectedChunk, listType)
	}

	return nil
}

func checkInvariants(f *File) error {
	hdr := &f.Header

	if int(hdr.NumFrames) != len(f.IcoFrames) {
		return fmt.Errorf("%w: num_frames=%d, ico_frames=%d", ErrFrameCountMismatch, hdr.NumFrames, len(f.IcoFrames))
	}
	if len(f.IcoFrames) == 0 {
		return ErrMissingFrames
	}

	if hdr.JiffyRate == 0 && f.Rate == nil && len(f.IcoFrames) > 1 {
		return errors.New("anifile: no frame timings available (jiffy_rate=0, rate chunk absent)")
	}

	if f.Sequence != nil {
		for _, idx := range f.Sequence {
			if idx >= hdr.NumFrames {
				return fmt.Errorf("%w: index=%d, num_frames=%d", ErrSequenceOutOfRange, idx, hdr.NumFrames)
			}
		}
	}

	if f.Rate != nil && uint32(len(f.Rate)) != hdr.NumSteps {
		return fmt.Errorf("%w: num_steps=%d, rate length=%d", ErrRateLengthMismatch, hdr.NumSteps, len(f.Rate))
	}

	return nil
}
