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

import "strings"

// RowKind selects which margin-rendering rule set C6 applies to a row.
type RowKind int

const (
	// RowLine is the code row itself.
	RowLine RowKind = iota
	// RowArrow is a row where some LineLabel bends and emits its message.
	RowArrow
	// RowEllipsis is the gap row between non-adjacent lines of a group.
	RowEllipsis
	// RowNone is the underline row.
	RowNone
)

// Margin is the C6 state machine: it assigns each multi-line label of a
// Group a fixed slot (by the Group's longest-first order) and renders the
// left-side rail for any row of the render.
type Margin struct {
	cfg    Config
	glyphs *GlyphSet
	slots  []*LabelInfo
}

// NewMargin builds a Margin for g. Slot assignment is fixed for the
// lifetime of the group: slot i always belongs to g.MultiLabels[i].
func NewMargin(g *Group, cfg Config) *Margin {
	return &Margin{cfg: cfg, glyphs: cfg.Glyphs(), slots: g.MultiLabels}
}

// Width returns the margin's total rendered width in display columns.
func (m *Margin) Width() int {
	slotWidth := 2
	if m.cfg.Compact {
		slotWidth = 1
	}
	return (len(m.slots) + 1) * slotWidth
}

func (m *Margin) slotWidth() int {
	if m.cfg.Compact {
		return 1
	}
	return 2
}

// slotState is what a single slot draws on a given row.
type slotState int

const (
	stateSpace slotState = iota
	stateVBar
	stateVBarGap
	stateHBar
	stateXBar
	stateCornerTop
	stateCornerBot
	stateEndSweep
)

// Render draws the margin for one row. lineIdx is the line this row belongs
// to (used to test each slotted label's open/closed/start/end state, which is
// enough to know whether a given slot bends on this row: CollectLineLabels
// guarantees a label's start entry never draws a message and its end entry
// always does, so no separate "chosen margin label" needs threading through
// here). arrowLabel is the specific LineLabel whose arrow/underline is
// bending on this row (used on RowArrow, where the bend isn't the slot's own
// start/end but the moment its message is emitted).
func (m *Margin) Render(lineIdx int, arrowLabel *LabelInfo, kind RowKind) string {
	// Neither row kind ever bends: RowEllipsis is a passthrough-line gap and
	// RowNone (the underline row) only ever shows a label as still-open or
	// absent. Both draw one unpadded glyph per slot instead of the
	// code-row-aligned, padded rendering the bending kinds need.
	switch kind {
	case RowEllipsis:
		return m.renderCompact(lineIdx, GlyphVBarGap)
	case RowNone:
		return m.renderCompact(lineIdx, GlyphVBar)
	}

	var b strings.Builder
	sweeping := false

	for i, label := range m.slots {
		isStart := label.StartLine == lineIdx
		isEnd := label.EndLine == lineIdx
		open := label.StartLine <= lineIdx && lineIdx <= label.EndLine
		isBend := (kind == RowLine && (isStart || isEnd)) || (kind == RowArrow && label == arrowLabel)

		var state slotState
		switch {
		case isBend:
			switch {
			case kind == RowLine && isStart:
				state = stateCornerTop
			case kind == RowLine:
				state = stateEndSweep
			default:
				state = stateCornerBot
			}
			sweeping = true
		case sweeping:
			state = stateHBar
		case open:
			if kind == RowEllipsis {
				state = stateVBarGap
			} else {
				state = stateVBar
			}
		default:
			state = stateSpace
		}

		if state == stateVBar && sweeping {
			if !m.cfg.NoCrossGap {
				state = stateHBar
			} else {
				state = stateXBar
			}
		}

		b.WriteString(m.glyphFor(state, i == 0, open && kind != RowEllipsis))
	}

	// Trailing cell: connector into the code for a placed pointer, else a
	// continuing sweep, else space.
	switch {
	case sweeping && kind == RowLine:
		b.WriteString(m.glyphs.Glyph(GlyphRArrow))
	case sweeping:
		b.WriteString(m.glyphs.Glyph(GlyphHBar))
	default:
		b.WriteString(m.glyphs.Glyph(GlyphSpace))
	}

	return b.String()
}

// renderCompact draws one unpadded glyph per slot: openGlyph if the slot's
// label is open on lineIdx, a space otherwise. Used by row kinds that never
// bend and so have no code content to align against.
func (m *Margin) renderCompact(lineIdx int, openGlyph Glyph) string {
	var b strings.Builder
	for _, label := range m.slots {
		open := label.StartLine <= lineIdx && lineIdx <= label.EndLine
		if open {
			b.WriteString(m.glyphs.Glyph(openGlyph))
		} else {
			b.WriteString(m.glyphs.Glyph(GlyphSpace))
		}
	}
	return b.String()
}

func (m *Margin) glyphFor(state slotState, firstSlot, hasUArrow bool) string {
	w := m.slotWidth()
	pad := ""
	if w > 1 {
		pad = m.glyphs.Glyph(GlyphSpace)
	}

	switch state {
	case stateVBar:
		return m.glyphs.Glyph(GlyphVBar) + pad
	case stateVBarGap:
		return m.glyphs.Glyph(GlyphVBarBreak) + pad
	case stateHBar:
		return m.glyphs.Glyph(GlyphHBar) + strOr(pad, m.glyphs.Glyph(GlyphHBar))
	case stateXBar:
		return m.glyphs.Glyph(GlyphXBar) + strOr(pad, m.glyphs.Glyph(GlyphHBar))
	case stateCornerTop:
		if firstSlot {
			return m.glyphs.Glyph(GlyphLTop) + strOr(pad, m.glyphs.Glyph(GlyphHBar))
		}
		return m.glyphs.Glyph(GlyphMTop) + strOr(pad, m.glyphs.Glyph(GlyphHBar))
	case stateCornerBot:
		if firstSlot {
			return m.glyphs.Glyph(GlyphLBot) + strOr(pad, m.glyphs.Glyph(GlyphHBar))
		}
		return m.glyphs.Glyph(GlyphMBot) + strOr(pad, m.glyphs.Glyph(GlyphHBar))
	case stateEndSweep:
		return m.glyphs.Glyph(GlyphVBar) + strOr(pad, m.glyphs.Glyph(GlyphHBar))
	default:
		return m.glyphs.Glyph(GlyphSpace) + pad
	}
}

func strOr(pad, alt string) string {
	if pad == "" {
		return ""
	}
	return alt
}
