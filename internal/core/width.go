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
	"sort"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// decodeRune decodes the first rune of s, treating invalid UTF-8 as a single
// replacement byte of width 1, per C2's "invalid bytes count as width 1".
func decodeRune(s string) (rune, int) {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size <= 1 {
		return utf8.RuneError, 1
	}
	return r, size
}

// charCount returns the number of characters (not bytes) in s, where a
// "character" is one decoded rune (invalid bytes count as one character
// each), matching the Line table's CharLen accounting.
func charCount(s string) int {
	n := 0
	for len(s) > 0 {
		_, size := decodeRune(s)
		s = s[size:]
		n++
	}
	return n
}

// ambiguousRanges approximates Unicode's East Asian Ambiguous category: a
// compact table of the blocks most commonly rendered at ambiguous width by
// terminals (Latin-1 punctuation and accents, Greek, Cyrillic, box drawing,
// CJK-adjacent symbol blocks). It need not be exhaustive; it only changes
// behavior when Config.AmbiguousWidth == 2.
var ambiguousRanges = [][2]rune{
	{0x00A1, 0x00A1}, {0x00A4, 0x00A4}, {0x00A7, 0x00A8},
	{0x00AA, 0x00AA}, {0x00AD, 0x00AE}, {0x00B0, 0x00B4},
	{0x00B6, 0x00BA}, {0x00BC, 0x00BF}, {0x00C6, 0x00C6},
	{0x00D0, 0x00D0}, {0x00D7, 0x00D8}, {0x00DE, 0x00E1},
	{0x00E6, 0x00E6}, {0x00E8, 0x00EA}, {0x00EC, 0x00ED},
	{0x00F0, 0x00F0}, {0x00F2, 0x00F3}, {0x00F7, 0x00FA},
	{0x00FC, 0x00FC}, {0x00FE, 0x00FE}, {0x0101, 0x0101},
	{0x0111, 0x0111}, {0x0113, 0x0113}, {0x011B, 0x011B},
	{0x0126, 0x0127}, {0x012B, 0x012B}, {0x0131, 0x0133},
	{0x0138, 0x0138}, {0x013F, 0x0142}, {0x0144, 0x0144},
	{0x0148, 0x014B}, {0x014D, 0x014D}, {0x0152, 0x0153},
	{0x0166, 0x0167}, {0x016B, 0x016B}, {0x01CE, 0x01CE},
	{0x01D0, 0x01D0}, {0x01D2, 0x01D2}, {0x01D4, 0x01D4},
	{0x01D6, 0x01D6}, {0x01D8, 0x01D8}, {0x01DA, 0x01DA},
	{0x01DC, 0x01DC}, {0x0391, 0x03A1}, {0x03A3, 0x03A9},
	{0x03B1, 0x03C1}, {0x03C3, 0x03C9}, {0x0401, 0x0401},
	{0x0410, 0x044F}, {0x0451, 0x0451}, {0x2010, 0x2010},
	{0x2013, 0x2016}, {0x2018, 0x2019}, {0x201C, 0x201D},
	{0x2020, 0x2022}, {0x2024, 0x2027}, {0x2030, 0x2030},
	{0x2032, 0x2033}, {0x2035, 0x2035}, {0x203B, 0x203B},
	{0x2103, 0x2103}, {0x2109, 0x2109}, {0x2121, 0x2122},
	{0x2160, 0x216B}, {0x2170, 0x2179}, {0x2190, 0x2199},
	{0x21B8, 0x21B9}, {0x2200, 0x2200}, {0x2202, 0x2203},
	{0x2207, 0x2208}, {0x220B, 0x220B}, {0x220F, 0x220F},
	{0x2211, 0x2211}, {0x2215, 0x2215}, {0x221A, 0x221A},
	{0x221D, 0x2220}, {0x2223, 0x2223}, {0x2225, 0x2225},
	{0x2227, 0x222C}, {0x222E, 0x222E}, {0x2234, 0x2237},
	{0x223C, 0x223D}, {0x2248, 0x2248}, {0x224C, 0x224C},
	{0x2252, 0x2252}, {0x2260, 0x2261}, {0x2264, 0x2267},
	{0x226A, 0x226B}, {0x226E, 0x226F}, {0x2282, 0x2283},
	{0x2286, 0x2287}, {0x2295, 0x2295}, {0x2299, 0x2299},
	{0x22A5, 0x22A5}, {0x22BF, 0x22BF}, {0x2312, 0x2312},
	{0x2500, 0x254B}, {0x2550, 0x2573}, {0x2580, 0x258F},
	{0x2592, 0x2595}, {0x25A0, 0x25A1}, {0x25A3, 0x25A9},
	{0x25B2, 0x25B3}, {0x25B6, 0x25B7}, {0x25BC, 0x25BD},
	{0x25C0, 0x25C1}, {0x25C6, 0x25C8}, {0x25CB, 0x25CB},
	{0x25CE, 0x25D1}, {0x25E2, 0x25E5}, {0x25EF, 0x25EF},
	{0x2605, 0x2606}, {0x2609, 0x2609}, {0x260E, 0x260F},
	{0x2614, 0x2615}, {0x261C, 0x261C}, {0x261E, 0x261E},
	{0x2640, 0x2640}, {0x2642, 0x2642}, {0x2660, 0x2661},
	{0x2663, 0x2665}, {0x2667, 0x266A}, {0x266C, 0x266D},
	{0x266F, 0x266F}, {0x273D, 0x273D}, {0x2776, 0x277F},
	{0xE000, 0xF8FF}, {0xFFFD, 0xFFFD},
}

// zeroWidthRanges covers the combining-mark and format-character blocks plus
// the zero-width joiner/non-joiner used by the emoji and combining-script
// joiner handling that the Non-goals carve out of full UAX#29 support.
var zeroWidthRanges = [][2]rune{
	{0x0300, 0x036F}, // Combining Diacritical Marks
	{0x0483, 0x0489},
	{0x0591, 0x05BD}, {0x05BF, 0x05BF}, {0x05C1, 0x05C2}, {0x05C4, 0x05C5}, {0x05C7, 0x05C7},
	{0x0610, 0x061A},
	{0x064B, 0x065F}, {0x0670, 0x0670},
	{0x06D6, 0x06DC}, {0x06DF, 0x06E4}, {0x06E7, 0x06E8}, {0x06EA, 0x06ED},
	{0x0711, 0x0711}, {0x0730, 0x074A},
	{0x07A6, 0x07B0},
	{0x0816, 0x0819}, {0x081B, 0x0823}, {0x0825, 0x0827}, {0x0829, 0x082D},
	{0x0859, 0x085B},
	{0x0900, 0x0902}, {0x093A, 0x093A}, {0x093C, 0x093C}, {0x0941, 0x0948}, {0x094D, 0x094D},
	{0x200B, 0x200F}, // ZW(N)J and bidi marks
	{0x202A, 0x202E},
	{0x2060, 0x2064},
	{0xFE00, 0xFE0F}, // Variation selectors
	{0xFE20, 0xFE2F},
	{0xFEFF, 0xFEFF},
}

func inRanges(r rune, ranges [][2]rune) bool {
	i := sort.Search(len(ranges), func(i int) bool { return ranges[i][1] >= r })
	return i < len(ranges) && ranges[i][0] <= r
}

// runeWidth computes the display width of a single codepoint per the C2
// classification: wide-table → 2, ambiguous-table → ambiWidth,
// zero-width-table → 0, else 1.
func runeWidth(r rune, ambiWidth int) int {
	if inRanges(r, zeroWidthRanges) {
		return 0
	}
	if uniseg.StringWidth(string(r)) >= 2 {
		return 2
	}
	if inRanges(r, ambiguousRanges) {
		if ambiWidth == 2 {
			return 2
		}
		return 1
	}
	return 1
}

// displayWidth computes the full display width of a plain string with no
// tabstops (used for glyph chunks, which never contain tabs).
func displayWidth(s string, ambiWidth int) int {
	w := 0
	for _, r := range s {
		w += runeWidth(r, ambiWidth)
	}
	return w
}

// WidthCache is the per-line cumulative display-width table described in C2:
// W[i] is the display width of the first i characters of a line, with tab
// expansion applied as if the line started at display column 0.
//
// It is scratch state, rebuilt for each source line as it is rendered (see
// [Scratch] in arena.go for how these are pooled across renders).
type WidthCache struct {
	w    []int // len(w) == charLen+1
	text string
	tab  int
	ambi int
}

// BuildWidthCache computes the width cache for a line's text (must be a
// single line's content, not including its terminator).
func BuildWidthCache(text string, tabWidth, ambiWidth int) *WidthCache {
	wc := &WidthCache{text: text, tab: tabWidth, ambi: ambiWidth}
	wc.w = make([]int, 0, charCount(text)+1)
	wc.w = append(wc.w, 0)

	col := 0
	for len(text) > 0 {
		r, size := decodeRune(text)
		if r == '\t' {
			step := tabWidth - (col % tabWidth)
			col += step
		} else {
			col += runeWidth(r, ambiWidth)
		}
		wc.w = append(wc.w, col)
		text = text[size:]
	}
	return wc
}

// Len returns the number of characters this cache covers.
func (wc *WidthCache) Len() int { return len(wc.w) - 1 }

// At returns W[i], the cumulative display width of the first i characters.
func (wc *WidthCache) At(i int) int {
	if i < 0 {
		i = 0
	}
	if i >= len(wc.w) {
		i = len(wc.w) - 1
	}
	return wc.w[i]
}

// CharWidth returns the display width of the character at index i (0-based).
func (wc *WidthCache) CharWidth(i int) int {
	return wc.At(i+1) - wc.At(i)
}

// WidthIndex performs the C2 binary search: returns the largest i in
// [lo, hi] such that W[i] - W[lo] <= deltaW.
func (wc *WidthCache) WidthIndex(deltaW, lo, hi int) int {
	base := wc.At(lo)
	// sort.Search finds the first index for which the predicate is true;
	// we want the last index for which W[i]-base <= deltaW, so search for
	// the first index where it's false and step back one.
	i := sort.Search(hi-lo+1, func(k int) bool {
		return wc.At(lo+k)-base > deltaW
	})
	idx := lo + i - 1
	if idx < lo {
		idx = lo
	}
	if idx > hi {
		idx = hi
	}
	return idx
}

// ExpandTabs returns the literal spaces a tab at display column col expands
// to, per the C2 tab-expansion rule.
func ExpandTabs(col, tabWidth int) string {
	n := tabWidth - (col % tabWidth)
	return spaces(n)
}

const spacesTable = "                                                                "

func spaces(n int) string {
	for n > len(spacesTable) {
		return spacesTable + spaces(n-len(spacesTable))
	}
	return spacesTable[:n]
}
