// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSourceLineTable(t *testing.T) {
	src := NewSource("t.txt", "apple\n==\norange")
	require.Equal(t, 3, src.NumLines())

	l0 := src.Line(0)
	assert.Equal(t, Line{CharOffset: 0, ByteOffset: 0, CharLen: 5, ByteLen: 5, HasNewline: true}, l0)

	l1 := src.Line(1)
	assert.Equal(t, Line{CharOffset: 6, ByteOffset: 6, CharLen: 2, ByteLen: 2, HasNewline: true}, l1)

	l2 := src.Line(2)
	assert.Equal(t, Line{CharOffset: 9, ByteOffset: 9, CharLen: 6, ByteLen: 6, HasNewline: false}, l2)
	assert.False(t, l2.HasNewline)
}

func TestNewSourceEmpty(t *testing.T) {
	src := NewSource("empty.txt", "")
	require.Equal(t, 1, src.NumLines())
	assert.Equal(t, Line{}, src.Line(0))
}

func TestLineForCharNewlineSlot(t *testing.T) {
	src := NewSource("t.txt", "ab\ncd")
	// Line 0's newline slot is char offset 2 (right after "ab").
	idx, l := src.LineForChar(2)
	assert.Equal(t, 0, idx)
	assert.Equal(t, 2, l.NewlineCharSlot())
}

func TestLineForByte(t *testing.T) {
	src := NewSource("t.txt", "ab\ncd")
	idx, _ := src.LineForByte(3)
	assert.Equal(t, 1, idx)
}

func TestCharByteRoundTrip(t *testing.T) {
	src := NewSource("t.txt", "中文ab")
	b := src.CharToByte(0, 2) // skip the two 3-byte CJK chars
	assert.Equal(t, 6, b)
	c := src.ByteToChar(0, 6)
	assert.Equal(t, 2, c)
}

func TestCacheAddLookup(t *testing.T) {
	c := NewCache()
	id := c.Add("a.txt", "hello")
	got, ok := c.Lookup("a.txt")
	require.True(t, ok)
	assert.Equal(t, id, got)
	assert.Equal(t, "hello", c.Get(id).Text)

	// Re-adding replaces text but keeps the same id.
	id2 := c.Add("a.txt", "world")
	assert.Equal(t, id, id2)
	assert.Equal(t, "world", c.Get(id).Text)
}
