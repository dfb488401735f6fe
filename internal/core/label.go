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

import "sort"

// RawLabel is a label as supplied at the public API: positions in whatever
// [IndexType] the Config declares, half-open [Start, End).
type RawLabel struct {
	Source  SourceID
	Start   int
	End     int
	Message string
	Color   ColorKind
	Order   int
	Priority int
}

// LabelInfo is a [RawLabel] normalized by C3: positions are character
// offsets, End is clipped to its line (inclusive of the newline slot), and
// End == Start for a zero-width label.
type LabelInfo struct {
	Source  SourceID
	Start   int // character offset
	End     int // character offset, >= Start
	Message string
	MessageWidth int
	Color   ColorKind
	Order   int
	Priority int

	StartLine int
	EndLine   int
}

// Multi reports whether this label spans more than one line.
func (l *LabelInfo) Multi() bool { return l.StartLine != l.EndLine }

// NormalizeLabel converts a RawLabel into a LabelInfo against src, per C3
// steps 1-2: byte->char conversion (if needed), then clipping into the
// start/end lines including the newline slot.
func NormalizeLabel(src *Source, raw RawLabel, indexType IndexType, ambiWidth int) LabelInfo {
	start, end := raw.Start, raw.End
	if end < start {
		end = start
	}

	if indexType == IndexByte {
		startLine, sl := src.LineForByte(clampInt(start, 0, len(src.Text)))
		endLine, el := src.LineForByte(clampInt(end, 0, len(src.Text)))
		start = sl.CharOffset + src.ByteToChar(startLine, clampInt(start, sl.ByteOffset, sl.ByteEnd())-sl.ByteOffset)
		end = el.CharOffset + src.ByteToChar(endLine, clampInt(end, el.ByteOffset, el.ByteEnd())-el.ByteOffset)
	}

	totalChars := totalCharLen(src)
	start = clampInt(start, 0, totalChars)
	end = clampInt(end, 0, totalChars)
	if end < start {
		end = start
	}

	startLine, sLine := src.LineForChar(start)
	endLine, eLine := src.LineForChar(end)
	if rl, rline, ok := src.clipToRealLine(startLine, sLine); ok {
		startLine, sLine = rl, rline
		start = sLine.NewlineCharSlot()
	}
	if rl, rline, ok := src.clipToRealLine(endLine, eLine); ok {
		endLine, eLine = rl, rline
		end = eLine.NewlineCharSlot()
	}

	// Clip into the line, including the newline slot (one past content end).
	if start > sLine.NewlineCharSlot() {
		start = sLine.NewlineCharSlot()
	}
	if end > eLine.NewlineCharSlot() {
		end = eLine.NewlineCharSlot()
	}

	return LabelInfo{
		Source:       raw.Source,
		Start:        start,
		End:          end,
		Message:      raw.Message,
		MessageWidth: displayWidth(raw.Message, ambiWidth),
		Color:        raw.Color,
		Order:        raw.Order,
		Priority:     raw.Priority,
		StartLine:    startLine,
		EndLine:      endLine,
	}
}

func totalCharLen(src *Source) int {
	if src.NumLines() == 0 {
		return 0
	}
	last := src.Line(src.NumLines() - 1)
	return last.NewlineCharSlot()
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Group is C3's per-source bundle of normalized labels.
type Group struct {
	Src          SourceID
	Source       *Source
	InlineLabels []*LabelInfo
	MultiLabels  []*LabelInfo
	FirstChar    int
	LastChar     int
	MarginWidth  int
}

// BuildGroups partitions normalized labels into Groups keyed by source,
// discovery-ordered by which source a label first referenced (the insertion
// order used for the render's overall group ordering).
func BuildGroups(cache *Cache, labels []LabelInfo, compact bool) []*Group {
	index := map[SourceID]int{}
	var groups []*Group

	for i := range labels {
		l := &labels[i]
		gi, ok := index[l.Source]
		if !ok {
			g := &Group{Src: l.Source, Source: cache.Get(l.Source), FirstChar: l.Start, LastChar: l.End}
			groups = append(groups, g)
			gi = len(groups) - 1
			index[l.Source] = gi
		}
		g := groups[gi]

		if l.Start < g.FirstChar {
			g.FirstChar = l.Start
		}
		if l.End > g.LastChar {
			g.LastChar = l.End
		}

		if l.Multi() {
			g.MultiLabels = append(g.MultiLabels, l)
		} else {
			g.InlineLabels = append(g.InlineLabels, l)
		}
	}

	for _, g := range groups {
		sort.SliceStable(g.MultiLabels, func(i, j int) bool {
			li, lj := g.MultiLabels[i], g.MultiLabels[j]
			return (li.End - li.Start) > (lj.End - lj.Start)
		})

		slotWidth := 2
		if compact {
			slotWidth = 1
		}
		if len(g.MultiLabels) > 0 {
			g.MarginWidth = (len(g.MultiLabels) + 1) * slotWidth
		}
	}

	return groups
}
