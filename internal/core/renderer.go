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
	"fmt"
	"strings"
)

// NoteKind distinguishes a footer paragraph's kind.
type NoteKind int

const (
	NoteHelp NoteKind = iota
	NoteNote
)

// RenderNote is one footer paragraph (§4.7 step 4). Fix suggestions are
// rendered by package diag into a NoteHelp-kind RenderNote before reaching
// the core, since producing the unified diff is not this package's concern.
type RenderNote struct {
	Kind NoteKind
	Text string
}

// RenderRequest is the normalized input to [Render]: everything C7 needs to
// walk through §4.7's top-level sequence for a single diagnostic.
type RenderRequest struct {
	Level  Level
	Code   string
	Title  string
	Labels []RawLabel
	Notes  []RenderNote
}

// Render executes the C7 top-level sequence for one diagnostic: header,
// groups (reference header + code/underline/arrow rows per line), footer.
func Render(cfg Config, cache *Cache, req RenderRequest, scratch *Scratch) (string, error) {
	cfg = cfg.Normalized()
	glyphs := cfg.Glyphs()

	var labels []LabelInfo
	for _, raw := range req.Labels {
		src := cache.Get(raw.Source)
		if src == nil {
			return "", &RenderError{Code: ErrInvalidSource, Message: fmt.Sprintf("unknown source id %d", raw.Source)}
		}
		labels = append(labels, NormalizeLabel(src, raw, cfg.IndexType, cfg.AmbiguousWidth))
	}

	groups := BuildGroups(cache, labels, cfg.Compact)

	lineNoWidth := 1
	for _, g := range groups {
		if g.Source == nil || g.Source.NumLines() == 0 {
			continue
		}
		last := lastTouchedLine(g)
		w := digitWidth(last + 1)
		if w > lineNoWidth {
			lineNoWidth = w
		}
	}

	var buf strings.Builder
	w := NewWriter(&buf, cfg.colorOrNoop())

	renderHeader(w, cfg, req)

	for gi, g := range groups {
		renderGroup(w, cfg, glyphs, g, lineNoWidth, scratch)
		if gi < len(groups)-1 {
			w.Newline()
		}
	}

	renderFooter(w, cfg, glyphs, req.Notes, lineNoWidth)

	if err := w.Flush(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func lastTouchedLine(g *Group) int {
	last := 0
	for _, l := range g.InlineLabels {
		if l.StartLine > last {
			last = l.StartLine
		}
	}
	for _, l := range g.MultiLabels {
		if l.EndLine > last {
			last = l.EndLine
		}
	}
	return last
}

func digitWidth(n int) int {
	if n < 1 {
		n = 1
	}
	w := 0
	for n > 0 {
		w++
		n /= 10
	}
	return w
}

func levelKind(level Level) string {
	switch level {
	case LevelError:
		return "Error"
	case LevelWarning:
		return "Warning"
	case LevelRemark:
		return "Remark"
	default:
		return "Note"
	}
}

// renderHeader emits: {color} "[" code "] " kind ":" {reset} " " title.
func renderHeader(w *Writer, cfg Config, req RenderRequest) {
	kind := levelKind(req.Level)
	w.UseColor(nil, colorForLevel(req.Level))
	if req.Code != "" {
		w.WriteString("[" + req.Code + "] ")
	}
	w.WriteString(kind + ":")
	w.Reset()
	if req.Title != "" {
		w.WriteString(" " + req.Title)
	}
	w.Newline()
}

// renderGroup emits one group's reference header, blank separator, and its
// per-line rows.
func renderGroup(w *Writer, cfg Config, glyphs *GlyphSet, g *Group, lineNoWidth int, scratch *Scratch) {
	gutterBlank := strings.Repeat(" ", lineNoWidth+2)

	line, col := 1, 1
	if g.Source != nil {
		li, _ := g.Source.LineForChar(g.FirstChar)
		line = li + 1
	}

	path := displayPath(g, cfg, lineNoWidth)
	w.WriteString(gutterBlank + glyphs.Glyph(GlyphLTop) + glyphs.Glyph(GlyphHBar) +
		"[ " + path + ":" + fmt.Sprint(line) + ":" + fmt.Sprint(col) + " ]")
	w.Newline()

	if !cfg.Compact {
		w.WriteString(gutterBlank + glyphs.Glyph(GlyphVBar))
		w.Newline()
	}

	if g.Source == nil {
		return
	}

	margin := NewMargin(g, cfg)
	spans := NewLabelSpans(g.MultiLabels)
	firstLine, lastLine := firstAndLastLine(g)
	prevRendered := -2

	for lineIdx := firstLine; lineIdx <= lastLine; lineIdx++ {
		lineRec := g.Source.Line(lineIdx)
		lls := CollectLineLabels(g, lineIdx, lineRec, cfg)

		if len(lls) == 0 {
			if spanned := spans.Active(lineIdx); len(spanned) > 0 {
				renderEllipsisRow(w, gutterBlank, glyphs, margin, lineIdx)
				prevRendered = -2
			}
			continue
		}

		if prevRendered >= 0 && lineIdx != prevRendered+1 {
			renderEllipsisRow(w, gutterBlank, glyphs, margin, lineIdx)
		}

		wc := scratch.WidthCacheFor(g.Source, g.Src, lineIdx, cfg)
		clusters := SplitClusters(g, lineIdx, lineRec, wc, lls, cfg, lineNoWidth)
		for _, c := range clusters {
			ResolveWindow(c, wc, lineRec.CharLen, cfg, lineNoWidth, g.MarginWidth)
			renderCluster(w, cfg, glyphs, g, margin, lineRec, lineIdx, c, wc, lineNoWidth)
		}
		prevRendered = lineIdx
	}
}

func firstAndLastLine(g *Group) (int, int) {
	first, last := -1, -1
	upd := func(l int) {
		if first == -1 || l < first {
			first = l
		}
		if l > last {
			last = l
		}
	}
	for _, l := range g.InlineLabels {
		upd(l.StartLine)
	}
	for _, l := range g.MultiLabels {
		upd(l.StartLine)
		upd(l.EndLine)
	}
	if first == -1 {
		return 0, -1
	}
	return first, last
}

func renderEllipsisRow(w *Writer, gutterBlank string, glyphs *GlyphSet, margin *Margin, lineIdx int) {
	w.WriteString(gutterBlank)
	writeRowPrefix(w, glyphs, margin, lineIdx, nil, RowEllipsis)
	w.Newline()
}

// writeRowPrefix writes the separator glyph for kind, then either
// "space + margin.Render(...) + trailing cell" when the group has margin
// slots, or a single mandatory space when it doesn't. RowLine and RowArrow
// (the rows with code/arrow content that must line up column for column)
// get a one-cell trailing cell: a space on RowLine and on a RowArrow whose
// label has no margin slot, and a horizontal bar on a RowArrow whose label's
// slot is sweeping, so its dash run continues unbroken into the content.
// RowNone/RowEllipsis render compact and unpadded and get no trailing cell.
func writeRowPrefix(w *Writer, glyphs *GlyphSet, margin *Margin, lineIdx int, arrowLabel *LabelInfo, kind RowKind) {
	if kind == RowEllipsis {
		w.WriteString(glyphs.Glyph(GlyphVBarGap))
	} else {
		w.WriteString(glyphs.Glyph(GlyphVBar))
	}
	if margin != nil && len(margin.slots) > 0 {
		w.WriteString(" ")
		w.WriteString(margin.Render(lineIdx, arrowLabel, kind))
		switch kind {
		case RowLine:
			w.WriteString(" ")
		case RowArrow:
			trail := " "
			for _, l := range margin.slots {
				if l == arrowLabel {
					trail = glyphs.Glyph(GlyphHBar)
				}
			}
			w.WriteString(trail)
		}
		return
	}
	w.WriteString(" ")
}

// displayPath applies the §4.7 path-prefix truncation: keep the filename and
// line:col intact, drop a leading prefix and prepend an ellipsis, down to
// [MinFilenameWidth].
func displayPath(g *Group, cfg Config, lineNoWidth int) string {
	name := g.Source.Name
	if cfg.LineWidth <= 0 {
		return name
	}
	budget := cfg.LineWidth - (lineNoWidth + 2) - len("[  ]") - 10
	if budget < MinFilenameWidth || len(name) <= budget {
		return name
	}
	keep := budget - cfg.Glyphs().EllipsisWidth()
	if keep < MinFilenameWidth {
		keep = MinFilenameWidth
	}
	if keep >= len(name) {
		return name
	}
	return cfg.Glyphs().Glyph(GlyphEllipsis) + name[len(name)-keep:]
}

func renderCluster(
	w *Writer, cfg Config, glyphs *GlyphSet, g *Group, margin *Margin,
	line Line, lineIdx int, c *Cluster, wc *WidthCache, lineNoWidth int,
) {
	text := g.Source.LineText(lineIdx)

	start, end := c.StartCol, c.EndCol
	if end == NoWindowEnd {
		end = line.CharLen
	}

	// Code row.
	w.WriteString(fmt.Sprintf("%*d ", lineNoWidth+1, lineIdx+1))
	writeRowPrefix(w, glyphs, margin, lineIdx, nil, RowLine)
	if start > 0 {
		w.UseColor(nil, ColorUnimportant)
		w.WriteString(glyphs.Glyph(GlyphEllipsis))
	}
	writeCodeRow(w, cfg, g, line, text, start, end, lineIdx)
	if end < line.CharLen {
		w.UseColor(nil, ColorUnimportant)
		w.WriteString(glyphs.Glyph(GlyphEllipsis))
	}
	w.Reset()
	w.Newline()

	if len(c.LineLabels) == 0 {
		return
	}

	if !cfg.NoUnderlines && !cfg.Compact {
		renderUnderlineRow(w, cfg, glyphs, g, margin, lineIdx, c, wc, start, end, lineNoWidth)
	}

	var pendingIdxs []int
	for i, ll := range c.LineLabels {
		if ll.DrawMsg {
			pendingIdxs = append(pendingIdxs, i)
		}
	}

	for k, idx := range pendingIdxs {
		if k > 0 {
			renderContinuationRow(w, glyphs, g, margin, lineIdx, c, pendingIdxs[k:], lineNoWidth)
		}
		renderArrowRow(w, cfg, glyphs, g, margin, lineIdx, c, wc, c.LineLabels[idx], idx, start, end, lineNoWidth)
	}
}

// renderContinuationRow draws a row of bare vertical bars at the anchor
// columns of every label in pending, the gap between one label's bend row
// and the next still-waiting label's.
func renderContinuationRow(
	w *Writer, glyphs *GlyphSet, g *Group, margin *Margin,
	lineIdx int, c *Cluster, pending []int, lineNoWidth int,
) {
	w.WriteSpaces(lineNoWidth + 2)
	writeRowPrefix(w, glyphs, margin, lineIdx, nil, RowNone)

	cols := make(map[int]bool, len(pending))
	maxCol := 0
	for _, idx := range pending {
		ll := c.LineLabels[idx]
		cols[ll.Col] = true
		if ll.Col > maxCol {
			maxCol = ll.Col
		}
	}
	for col := 0; col <= maxCol; col++ {
		if cols[col] {
			w.WriteString(glyphs.Glyph(GlyphVBar))
		} else {
			w.WriteString(" ")
		}
	}
	w.Newline()
}

// writeCodeRow walks [start,end) emitting each character with the color of
// its highest-priority (ties: shorter span) covering label, tabs expanded to
// spaces in the highlight's color.
func writeCodeRow(w *Writer, cfg Config, g *Group, line Line, text string, start, end int, lineIdx int) {
	labels := allLineLabelsFor(g, lineIdx)

	charIdx := 0
	pos := 0
	for pos < len(text) && charIdx < start {
		_, size := decodeRune(text[pos:])
		pos += size
		charIdx++
	}

	wc := BuildWidthCache(text, cfg.TabWidth, cfg.AmbiguousWidth)
	displayCol := wc.At(start)

	for charIdx < end && pos < len(text) {
		r, size := decodeRune(text[pos:])
		hit := bestLabel(labels, line.CharOffset+charIdx)
		if hit != nil {
			w.UseColor(hit, hit.Color)
		} else {
			w.UseColor(nil, ColorUnimportant)
		}
		if r == '\t' {
			n := cfg.TabWidth - (displayCol % cfg.TabWidth)
			w.WriteSpaces(n)
			displayCol += n
		} else {
			w.WriteString(string(r))
			displayCol += runeWidth(r, cfg.AmbiguousWidth)
		}
		pos += size
		charIdx++
	}
	w.Reset()
}

func allLineLabelsFor(g *Group, lineIdx int) []*LabelInfo {
	var out []*LabelInfo
	for _, l := range g.InlineLabels {
		if l.StartLine == lineIdx {
			out = append(out, l)
		}
	}
	for _, l := range g.MultiLabels {
		if l.StartLine <= lineIdx && lineIdx <= l.EndLine {
			out = append(out, l)
		}
	}
	return out
}

// bestLabel selects the highlight for a character offset per GLOSSARY:
// highest priority, ties broken by shorter span.
func bestLabel(labels []*LabelInfo, charOffset int) *LabelInfo {
	var best *LabelInfo
	for _, l := range labels {
		if charOffset < l.Start || charOffset >= l.End {
			if l.Start == l.End && charOffset == l.Start {
				// zero-width label: still eligible.
			} else {
				continue
			}
		}
		if best == nil {
			best = l
			continue
		}
		if l.Priority > best.Priority {
			best = l
			continue
		}
		if l.Priority == best.Priority && (l.End-l.Start) < (best.End-best.Start) {
			best = l
		}
	}
	return best
}

func renderUnderlineRow(
	w *Writer, cfg Config, glyphs *GlyphSet, g *Group, margin *Margin,
	lineIdx int, c *Cluster, wc *WidthCache, start, end int, lineNoWidth int,
) {
	w.WriteSpaces(lineNoWidth + 2)
	writeRowPrefix(w, glyphs, margin, lineIdx, nil, RowNone)

	// A multi-line label's final-line entry draws nothing in the content area
	// here at all (its margin vbar, already drawn by writeRowPrefix above, is
	// the only mark it gets on this row); only inline labels' own anchors and
	// caret spans populate the content.
	labels := inlineLineLabelsFor(g, lineIdx)
	anchors := anchorLabelsFor(c)

	limit := end
	for _, ll := range c.LineLabels {
		if ll.Label.Multi() {
			continue
		}
		if ll.Col+1 > limit {
			limit = ll.Col + 1
		}
	}

	// Trailing columns past the last highlighted or anchored character carry
	// nothing to draw; don't pad the row out to the window's full width.
	lastMark := start - 1
	for col := start; col < limit; col++ {
		if anchors[col] != nil || bestLabel(labels, colToCharOffset(g, lineIdx, col)) != nil {
			lastMark = col
		}
	}
	limit = lastMark + 1

	for col := start; col < limit; col++ {
		hit := bestLabel(labels, colToCharOffset(g, lineIdx, col))
		switch {
		case anchors[col] != nil:
			w.UseColor(anchors[col], ColorLabel)
			w.WriteString(glyphs.Glyph(GlyphVBar))
		case hit == nil:
			w.WriteString(" ")
		default:
			w.UseColor(hit, ColorLabel)
			w.WriteString(glyphs.Glyph(GlyphUnderbar))
		}
	}
	w.Reset()
	w.Newline()
}

// inlineLineLabelsFor returns the inline (single-line) labels starting on
// lineIdx, excluding multi-line labels entirely.
func inlineLineLabelsFor(g *Group, lineIdx int) []*LabelInfo {
	var out []*LabelInfo
	for _, l := range g.InlineLabels {
		if l.StartLine == lineIdx {
			out = append(out, l)
		}
	}
	return out
}

// anchorLabelsFor maps each column where an inline LineLabel's arrow anchors
// to that label, so the underline row can draw the pointer glyph (in the
// label's color) there instead of a caret or blank. Multi-line labels are
// excluded: their only mark on this row is the margin's own vbar, drawn by
// writeRowPrefix, not a second pointer in the content area.
func anchorLabelsFor(c *Cluster) map[int]*LabelInfo {
	out := make(map[int]*LabelInfo, len(c.LineLabels))
	for _, ll := range c.LineLabels {
		if ll.Label.Multi() {
			continue
		}
		out[ll.Col] = ll.Label
	}
	return out
}

func colToCharOffset(g *Group, lineIdx, col int) int {
	return g.Source.Line(lineIdx).CharOffset + col
}

func renderArrowRow(
	w *Writer, cfg Config, glyphs *GlyphSet, g *Group, margin *Margin,
	lineIdx int, c *Cluster, wc *WidthCache, ll LineLabel, idx int, start, end int, lineNoWidth int,
) {
	w.WriteSpaces(lineNoWidth + 2)
	writeRowPrefix(w, glyphs, margin, lineIdx, ll.Label, RowArrow)

	extra := extraArrowLen
	if cfg.Compact {
		extra = extraArrowLenCompact
	}
	target := c.ArrowLen
	if cfg.NoAlignMessages {
		target = ll.EndCol + extra
	}

	arrowEnd := target
	if c.EndCol != NoWindowEnd && c.EndCol < arrowEnd {
		arrowEnd = c.EndCol
	}

	for col := start; col < arrowEnd; col++ {
		switch {
		case col == ll.Col:
			if ll.Label.Multi() {
				if ll.DrawMsg {
					w.WriteString(glyphs.Glyph(GlyphMBot))
				} else {
					w.WriteString(glyphs.Glyph(GlyphRBot))
				}
			} else {
				w.WriteString(glyphs.Glyph(GlyphLBot))
			}
		case col > ll.Col || ll.Label.Multi():
			w.WriteString(glyphs.Glyph(GlyphHBar))
		default:
			if laterLabelOwnsColumn(c, idx, col) {
				w.WriteString(glyphs.Glyph(GlyphVBar))
			} else {
				w.WriteString(" ")
			}
		}
	}

	if ll.DrawMsg && ll.Label.Message != "" {
		w.WriteString(" ")
		w.UseColor(ll.Label, ColorLabel)
		w.WriteString(ll.Label.Message)
		w.Reset()
	}
	w.Newline()
}

func laterLabelOwnsColumn(c *Cluster, fromIdx, col int) bool {
	for i := fromIdx + 1; i < len(c.LineLabels); i++ {
		if c.LineLabels[i].Col == col {
			return true
		}
	}
	return false
}

func renderFooter(w *Writer, cfg Config, glyphs *GlyphSet, notes []RenderNote, lineNoWidth int) {
	if len(notes) == 0 {
		w.WriteString(strings.Repeat(glyphs.Glyph(GlyphHBar), lineNoWidth+2) + glyphs.Glyph(GlyphRBot))
		w.Newline()
		return
	}

	for _, n := range notes {
		label := "Note"
		if n.Kind == NoteHelp {
			label = "Help"
		}
		w.UseColor(nil, ColorNote)
		w.WriteString(label + ":")
		w.Reset()
		w.WriteString(" " + n.Text)
		w.Newline()
	}
	w.WriteString(strings.Repeat(glyphs.Glyph(GlyphHBar), lineNoWidth+2) + glyphs.Glyph(GlyphRBot))
	w.Newline()
}
