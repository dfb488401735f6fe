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

func TestDisplayWidthASCII(t *testing.T) {
	assert.Equal(t, 5, displayWidth("hello", 1))
	assert.Equal(t, 0, displayWidth("", 1))
}

func TestRuneWidthCJK(t *testing.T) {
	assert.Equal(t, 2, runeWidth('中', 1))
	assert.Equal(t, 2, runeWidth('错', 1))
	assert.Equal(t, 1, runeWidth('a', 1))
}

func TestRuneWidthZeroWidth(t *testing.T) {
	assert.Equal(t, 0, runeWidth('́', 1)) // combining acute accent
}

func TestRuneWidthAmbiguous(t *testing.T) {
	assert.Equal(t, 1, runeWidth('±', 1)) // plus-minus sign, ambi_width=1
	assert.Equal(t, 2, runeWidth('±', 2)) // ambi_width=2
}

func TestBuildWidthCacheTabs(t *testing.T) {
	wc := BuildWidthCache("a\tb", 4, 1)
	require.Equal(t, 3, wc.Len())
	assert.Equal(t, 0, wc.At(0))
	assert.Equal(t, 1, wc.At(1))  // 'a'
	assert.Equal(t, 4, wc.At(2))  // tab expands to column 4
	assert.Equal(t, 5, wc.At(3))  // 'b'
}

func TestBuildWidthCacheCJK(t *testing.T) {
	// 2 CJK characters followed by 2 ASCII.
	wc := BuildWidthCache("中中ab", 4, 1)
	require.Equal(t, 4, wc.Len())
	assert.Equal(t, 0, wc.At(0))
	assert.Equal(t, 2, wc.At(1))
	assert.Equal(t, 4, wc.At(2))
	assert.Equal(t, 5, wc.At(3))
	assert.Equal(t, 6, wc.At(4))
}

func TestWidthIndex(t *testing.T) {
	wc := BuildWidthCache("abcdef", 4, 1)
	// Largest i in [0,6] with W[i]-W[0] <= 3 is i=3 ("abc").
	assert.Equal(t, 3, wc.WidthIndex(3, 0, 6))
	assert.Equal(t, 6, wc.WidthIndex(100, 0, 6))
	assert.Equal(t, 0, wc.WidthIndex(0, 0, 6))
}

func TestCharCountInvalidUTF8(t *testing.T) {
	s := "a\xffb"
	assert.Equal(t, 3, charCount(s))
}
