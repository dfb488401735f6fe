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

// Level is the severity of a diagnostic.
type Level int8

const (
	// LevelError indicates a semantic constraint violation.
	LevelError Level = 1 + iota
	// LevelWarning indicates something that probably should not be ignored.
	LevelWarning
	// LevelRemark is the diagnostics version of "info".
	LevelRemark

	// levelNote is used internally by the margin rail and underline rendering
	// for non-primary annotations; it is never a diagnostic's own Level.
	levelNote
)

// LabelAttach selects which column an inline (single-line) label's arrow
// points at. AttachMiddle is the zero value: it is the spec's default, so a
// zero Config attaches the same way [DefaultConfig] does.
type LabelAttach int

const (
	AttachMiddle LabelAttach = iota
	AttachStart
	AttachEnd
)

// IndexType selects how label positions passed at the public API are
// interpreted before the core normalizes them to character offsets.
type IndexType int

const (
	IndexChar IndexType = iota
	IndexByte
)

// Config is the frozen set of options governing a render. A zero Config is
// usable and equivalent to [DefaultConfig]: every boolean here defaults to
// the spec's on-by-default behavior at its zero value, so unset fields never
// silently disable a feature the spec turns on by default.
//
// Config is a value type by design (see SPEC_FULL.md, "shared mutable config
// by reference"): once a render begins, the Config it was given is never
// mutated, and the same Config may be reused concurrently by independent
// renders (see [Render] and the batch helper in package diag).
type Config struct {
	// NoCrossGap draws the dedicated X glyph through vertical-bar crossings in
	// the margin rail instead of a horizontal bar. Off (crossings draw a
	// horizontal bar) by default.
	NoCrossGap bool
	// Compact selects one-cell margin slots and suppresses the underline row.
	Compact bool
	// NoUnderlines suppresses the underline row normally emitted between the
	// code row and the arrow rows.
	NoUnderlines bool
	// NoMultilineArrows is accepted but not read by the renderer: no row
	// draws the up-arrow glyph, so a still-open multi-line label's vertical
	// bar on the underline row is a plain bar whatever this is set to.
	NoMultilineArrows bool
	// TabWidth is the number of columns a tab expands to. Must be >= 1.
	TabWidth int
	// LineWidth is the soft column budget used for windowing and header-path
	// truncation. Zero disables windowing entirely.
	LineWidth int
	// AmbiguousWidth is the display width (1 or 2) assigned to codepoints in
	// Unicode's East Asian Ambiguous category.
	AmbiguousWidth int
	// LabelAttach selects the anchor column for inline labels.
	LabelAttach LabelAttach
	// IndexType selects how input positions are interpreted.
	IndexType IndexType
	// Unicode selects the Unicode box-drawing glyph set over ASCII.
	Unicode bool
	// Color, if non-nil, is consulted for every color category the renderer
	// needs. A nil Color disables colorization.
	Color ColorProvider
	// ColumnOrder, when true, sorts same-line labels strictly by column,
	// ignoring their declared Order.
	ColumnOrder bool
	// NoAlignMessages makes each arrow message land right after its own
	// label's span instead of the shared right-aligned column every other
	// label in the same cluster lands at.
	NoAlignMessages bool
}

// MinFilenameWidth is the floor below which the reference-header path
// truncation (§4.7) refuses to drop more of the filename.
const MinFilenameWidth = 8

// DefaultConfig returns the Config used when the caller supplies none,
// matching the defaults enumerated in the spec's recognized-option table.
func DefaultConfig() Config {
	return Config{
		NoCrossGap:        false,
		Compact:           false,
		NoUnderlines:      false,
		NoMultilineArrows: false,
		TabWidth:          4,
		LineWidth:         0,
		AmbiguousWidth:    1,
		LabelAttach:       AttachMiddle,
		IndexType:         IndexChar,
		Unicode:           false,
		Color:             nil,
		ColumnOrder:       false,
		NoAlignMessages:   false,
	}
}

// Normalized returns a copy of c with zero-valued fields that have a
// meaningful non-zero default filled in. This lets callers build a Config as
// a struct literal that only overrides the fields it cares about, similar to
// a zero Config being ready-to-use.
func (c Config) Normalized() Config {
	if c.TabWidth <= 0 {
		c.TabWidth = 4
	}
	if c.AmbiguousWidth != 2 {
		c.AmbiguousWidth = 1
	}
	return c
}

// Glyphs resolves this Config's glyph set.
func (c Config) Glyphs() *GlyphSet {
	return GlyphSetFor(c.Unicode)
}

// colorOrNoop returns c.Color, or [NoColor] if unset.
func (c Config) colorOrNoop() ColorProvider {
	if c.Color == nil {
		return NoColor
	}
	return c.Color
}
