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

// Package core implements the diagnostic rendering engine: the source line
// index, display-width computation, label normalization, cluster assembly,
// window resolution, the margin rail, and the writer that stitches them all
// together. This is the "hard engineering" the surrounding builder API
// (package diag) delegates to.
package core

import "sort"

// Line is one line of a [Source]'s text.
type Line struct {
	CharOffset int
	ByteOffset int
	CharLen    int
	ByteLen    int
	HasNewline bool
}

// CharEnd returns the character offset immediately past this line's content,
// not including its trailing newline.
func (l Line) CharEnd() int { return l.CharOffset + l.CharLen }

// ByteEnd returns the byte offset immediately past this line's content, not
// including its trailing newline.
func (l Line) ByteEnd() int { return l.ByteOffset + l.ByteLen }

// NewlineCharSlot returns the character offset of this line's "newline slot":
// the position immediately after its content, at which a zero-width label
// may point without being attributed to the following line.
func (l Line) NewlineCharSlot() int { return l.CharEnd() }

// Source is an immutable text together with its precomputed line table (C1,
// the Source Model).
//
// Source is safe for concurrent reads once built; it is never mutated after
// [NewSource] returns.
type Source struct {
	Name string
	Text string
	Path string

	lines []Line
}

// NewSource builds a line index over text, splitting only on LF, per the
// Non-goal that no other line separator is recognized.
func NewSource(path, text string) *Source {
	s := &Source{Path: path, Name: path, Text: text}

	var charOff, byteOff int
	for {
		nl := indexByte(text, '\n')
		if nl == -1 {
			s.lines = append(s.lines, Line{
				CharOffset: charOff,
				ByteOffset: byteOff,
				CharLen:    charCount(text),
				ByteLen:    len(text),
				HasNewline: false,
			})
			break
		}

		lineBytes := text[:nl]
		s.lines = append(s.lines, Line{
			CharOffset: charOff,
			ByteOffset: byteOff,
			CharLen:    charCount(lineBytes),
			ByteLen:    len(lineBytes),
			HasNewline: true,
		})

		charOff += charCount(lineBytes) + 1
		byteOff += len(lineBytes) + 1
		text = text[nl+1:]
	}

	if len(s.lines) == 0 {
		// Empty input still produces a single empty line (C1 construction
		// rule).
		s.lines = []Line{{}}
	}

	return s
}

// NumLines returns the number of lines in this source.
func (s *Source) NumLines() int { return len(s.lines) }

// Line returns the i'th line (0-indexed).
func (s *Source) Line(i int) Line { return s.lines[i] }

// LineText returns the text of the given line, excluding its terminator.
func (s *Source) LineText(i int) string {
	l := s.lines[i]
	return s.Text[l.ByteOffset:l.ByteEnd()]
}

// LineForChar returns the greatest line whose char offset is <= pos, plus its
// index. A pos sitting exactly on a line's "newline slot" resolves to that
// line, not the next one, per the C1 lookup contract.
func (s *Source) LineForChar(pos int) (int, Line) {
	idx := sort.Search(len(s.lines), func(i int) bool {
		return s.lines[i].CharOffset > pos
	}) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(s.lines) {
		idx = len(s.lines) - 1
	}
	return idx, s.lines[idx]
}

// LineForByte is the byte-offset analogue of [Source.LineForChar].
func (s *Source) LineForByte(pos int) (int, Line) {
	idx := sort.Search(len(s.lines), func(i int) bool {
		return s.lines[i].ByteOffset > pos
	}) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(s.lines) {
		idx = len(s.lines) - 1
	}
	return idx, s.lines[idx]
}

// clipToRealLine redirects a position landing at the start of the trailing
// empty line a final "\n" produces to the end of the preceding line instead,
// so a label pointing at EOF (or any zero-width position landing on that
// phantom line) attaches to visible content rather than a blank line with no
// code row of its own.
func (s *Source) clipToRealLine(idx int, l Line) (int, Line, bool) {
	if idx > 0 && idx == len(s.lines)-1 && l.CharLen == 0 && l.ByteLen == 0 && !l.HasNewline {
		prev := s.lines[idx-1]
		if prev.HasNewline {
			return idx - 1, prev, true
		}
	}
	return idx, l, false
}

// CharToByte converts a character offset within the given line to a byte
// offset, by walking the line's text. Used only at label-normalization time
// (C3), never in the hot rendering loop.
func (s *Source) CharToByte(lineIdx, charInLine int) int {
	l := s.lines[lineIdx]
	b := l.ByteOffset
	text := s.Text[l.ByteOffset:l.ByteEnd()]
	for i := 0; i < charInLine && len(text) > 0; i++ {
		_, size := decodeRune(text)
		b += size
		text = text[size:]
	}
	return b
}

// ByteToChar converts a byte offset within the given line to a character
// offset, by walking the line's text.
func (s *Source) ByteToChar(lineIdx, byteInLine int) int {
	l := s.lines[lineIdx]
	text := s.Text[l.ByteOffset : l.ByteOffset+min(byteInLine, l.ByteLen)]
	return charCount(text)
}

func indexByte(s string, b byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}

// Cache owns a collection of [Source]s referenced by labels via an opaque
// SourceID. It is read-only during a render; building it up is not part of
// the rendering hot path (§5: "Source provider" is an external collaborator,
// this is the minimal in-module default implementation of its contract).
type Cache struct {
	sources []*Source
	byPath  map[string]int
}

// NewCache creates an empty source cache.
func NewCache() *Cache {
	return &Cache{byPath: map[string]int{}}
}

// SourceID identifies a [Source] within a [Cache].
type SourceID int

// Add registers a source's text under path, returning its ID. Re-adding the
// same path replaces its text and returns the existing ID.
func (c *Cache) Add(path, text string) SourceID {
	if i, ok := c.byPath[path]; ok {
		c.sources[i] = NewSource(path, text)
		return SourceID(i)
	}
	c.sources = append(c.sources, NewSource(path, text))
	id := SourceID(len(c.sources) - 1)
	c.byPath[path] = int(id)
	return id
}

// Get resolves a SourceID to its Source, or nil if it is out of range.
func (c *Cache) Get(id SourceID) *Source {
	if int(id) < 0 || int(id) >= len(c.sources) {
		return nil
	}
	return c.sources[id]
}

// Lookup resolves a path to its SourceID, if registered.
func (c *Cache) Lookup(path string) (SourceID, bool) {
	i, ok := c.byPath[path]
	return SourceID(i), ok
}
