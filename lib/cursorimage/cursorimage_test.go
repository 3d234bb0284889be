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

package cursorimage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidRGBA(w, h uint32) []byte {
	return make([]byte, w*h*4)
}

func TestNewRejectsZeroDimensions(t *testing.T) {
	_, err := New(0, 4, 0, 0, solidRGBA(0, 4), StaticDelay)
	require.ErrorIs(t, err, ErrZeroDimension)

	_, err = New(4, 0, 0, 0, solidRGBA(4, 0), StaticDelay)
	require.ErrorIs(t, err, ErrZeroDimension)
}

func TestNewRejectsHotspotOutOfBounds(t *testing.T) {
	_, err := New(4, 4, 5, 0, solidRGBA(4, 4), StaticDelay)
	require.ErrorIs(t, err, ErrHotspotOutOfBounds)
}

func TestNewRejectsWrongRGBALength(t *testing.T) {
	_, err := New(4, 4, 0, 0, make([]byte, 10), StaticDelay)
	require.ErrorIs(t, err, ErrRGBALength)
}

func TestNewCopiesRGBABuffer(t *testing.T) {
	buf := solidRGBA(2, 2)
	img, err := New(2, 2, 0, 0, buf, StaticDelay)
	require.NoError(t, err)

	buf[0] = 0xFF
	assert.Equal(t, byte(0), img.RGBA()[0], "mutating the caller's slice must not affect the stored image")
}

func TestNominalSize(t *testing.T) {
	img, err := New(16, 32, 0, 0, solidRGBA(16, 32), StaticDelay)
	require.NoError(t, err)
	assert.Equal(t, uint32(32), img.NominalSize())
}

func TestCursorImagesSingleFrameMustBeStatic(t *testing.T) {
	f, err := New(4, 4, 0, 0, solidRGBA(4, 4), 1)
	require.NoError(t, err)

	_, err = NewCursorImages([]CursorImage{f})
	require.ErrorIs(t, err, ErrStaticDelay)
}

func TestCursorImagesEmptyRejected(t *testing.T) {
	_, err := NewCursorImages(nil)
	require.ErrorIs(t, err, ErrEmptySequence)
}

func TestCursorImagesRequiresConsistentDimensions(t *testing.T) {
	a, err := New(4, 4, 0, 0, solidRGBA(4, 4), 10)
	require.NoError(t, err)
	b, err := New(8, 8, 0, 0, solidRGBA(8, 8), 10)
	require.NoError(t, err)

	_, err = NewCursorImages([]CursorImage{a, b})
	require.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestCursorImagesRejectsZeroDelayWhenAnimated(t *testing.T) {
	a, err := New(4, 4, 0, 0, solidRGBA(4, 4), 10)
	require.NoError(t, err)
	b, err := New(4, 4, 0, 0, solidRGBA(4, 4), 0)
	require.NoError(t, err)

	_, err = NewCursorImages([]CursorImage{a, b})
	require.ErrorIs(t, err, ErrZeroDelay)
}

func TestCursorImagesValidSequence(t *testing.T) {
	a, err := New(4, 4, 0, 0, solidRGBA(4, 4), 10)
	require.NoError(t, err)
	b, err := New(4, 4, 0, 0, solidRGBA(4, 4), 20)
	require.NoError(t, err)

	seq, err := NewCursorImages([]CursorImage{a, b})
	require.NoError(t, err)
	assert.Equal(t, 2, seq.Len())
	assert.Equal(t, a, seq.First())
}
