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

package anifile

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chunk(id string, data []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString(id)
	var size [4]byte
	binary.LittleEndian.PutUint32(size[:], uint32(len(data)))
	buf.Write(size[:])
	buf.Write(data)
	if len(data)%2 == 1 {
		buf.WriteByte(0)
	}
	return buf.Bytes()
}

func u32le(v uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return b[:]
}

// buildAni constructs a minimal ACON file whose "seq " chunk reproduces the
// well-known E3.ani playback sequence, which repeats and reorders 10 distinct
// icon frames across 21 steps.
func buildAni(t *testing.T) []byte {
	t.Helper()

	sequence := []uint32{0, 1, 2, 2, 3, 3, 3, 3, 4, 5, 6, 7, 3, 3, 3, 2, 2, 2, 3, 8, 9}
	const numFrames = 10

	header := make([]byte, 36)
	binary.LittleEndian.PutUint32(header[0:4], 36) // cbSizeof
	binary.LittleEndian.PutUint32(header[4:8], numFrames)
	binary.LittleEndian.PutUint32(header[8:12], uint32(len(sequence)))
	// header[12:28] reserved (cx, cy, cBitCount, cPlanes)
	binary.LittleEndian.PutUint32(header[28:32], 6) // jiffy_rate
	binary.LittleEndian.PutUint32(header[32:36], uint32(Sequenced))

	var seqData []byte
	for _, idx := range sequence {
		seqData = append(seqData, u32le(idx)...)
	}

	var framInner bytes.Buffer
	framInner.WriteString("fram")
	for i := 0; i < numFrames; i++ {
		framInner.Write(chunk("icon", []byte{byte(i), byte(i), byte(i)}))
	}

	var infoInner bytes.Buffer
	infoInner.WriteString("INFO")
	infoInner.Write(chunk("INAM", []byte("Busy\x00")))
	infoInner.Write(chunk("IART", []byte("currust\x00")))

	var body bytes.Buffer
	body.WriteString("ACON")
	body.Write(chunk("anih", header))
	body.Write(chunk("seq ", seqData))
	body.Write(chunk("LIST", infoInner.Bytes()))
	body.Write(chunk("LIST", framInner.Bytes()))

	return chunk("RIFF", body.Bytes())
}

func TestDecodeAni(t *testing.T) {
	blob := buildAni(t)

	f, err := Decode(blob)
	require.NoError(t, err)

	assert.Equal(t, uint32(10), f.Header.NumFrames)
	assert.Equal(t, uint32(21), f.Header.NumSteps)
	assert.Equal(t, Sequenced, f.Header.Flags)
	assert.Equal(t, "Busy", f.Title)
	assert.Equal(t, "currust", f.Author)
	assert.Len(t, f.IcoFrames, 10)
	assert.Equal(t, []uint32{0, 1, 2, 2, 3, 3, 3, 3, 4, 5, 6, 7, 3, 3, 3, 2, 2, 2, 3, 8, 9}, f.Sequence)
}

func TestDecodeRejectsNonRIFF(t *testing.T) {
	_, err := Decode([]byte("not a riff file at all"))
	require.ErrorIs(t, err, ErrNotRIFF)
}

func TestDecodeRejectsSequenceOutOfRange(t *testing.T) {
	blob := buildAni(t)

	// Corrupt the first seq entry (immediately after the "seq " id+size+anih
	// chunk) to an out-of-range frame index.
	idx := bytes.Index(blob, []byte("seq "))
	require.GreaterOrEqual(t, idx, 0)
	valueOffset := idx + 4 + 4 // past id + size field
	binary.LittleEndian.PutUint32(blob[valueOffset:valueOffset+4], 99)

	_, err := Decode(blob)
	require.ErrorIs(t, err, ErrSequenceOutOfRange)
}
