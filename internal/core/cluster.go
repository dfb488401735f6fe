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

// LineLabel is a label projected onto a single rendered line (C4).
type LineLabel struct {
	Label   *LabelInfo
	Col     int // 0-based character column within the line
	DrawMsg bool
	EndCol  int // set once the cluster is finalized
}

// Cluster is one horizontal rendering pass over a line (C4/GLOSSARY).
type Cluster struct {
	LineNo int // 0-based
	// MarginLabel is the open multi-line label (if any) whose start/passthrough
	// entry this cluster absorbed instead of turning into its own LineLabels
	// entry. It exists only to make that absorption idempotent across the
	// labels loop below; the margin rail itself derives bends structurally
	// from each slot's own start/end line, not from this field.
	MarginLabel *LabelInfo
	LineLabels  []LineLabel
	ArrowLen    int
	MinCol      int
	MaxMsgWidth int

	StartCol int
	EndCol   int // -1 means "to end of line" (no right windowing)
}

const extraArrowLen = 2
const extraArrowLenCompact = 1

// CollectLineLabels builds the C4 step-1/2 ordered LineLabel list for line
// lineIdx of a group: multi-line labels that start or end here, plus inline
// labels anchored per cfg.LabelAttach. cfg.ColumnOrder, when set, sorts
// strictly by column instead of by each label's declared Order.
func CollectLineLabels(g *Group, lineIdx int, line Line, cfg Config) []LineLabel {
	var out []LineLabel

	for _, m := range g.MultiLabels {
		if m.StartLine == lineIdx {
			out = append(out, LineLabel{Label: m, Col: m.Start - line.CharOffset, DrawMsg: false})
		}
		if m.EndLine == lineIdx && m.EndLine != m.StartLine {
			out = append(out, LineLabel{Label: m, Col: m.End - line.CharOffset, DrawMsg: true})
		}
	}

	for _, il := range g.InlineLabels {
		if il.StartLine != lineIdx {
			continue
		}
		start := il.Start - line.CharOffset
		end := il.End - line.CharOffset
		var col int
		switch cfg.LabelAttach {
		case AttachStart:
			col = start
		case AttachEnd:
			col = end
		default:
			col = (start + end) / 2
		}
		out = append(out, LineLabel{Label: il, Col: col, DrawMsg: il.Message != ""})
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !cfg.ColumnOrder && a.Label.Order != b.Label.Order {
			return a.Label.Order < b.Label.Order
		}
		if a.Col != b.Col {
			return a.Col < b.Col
		}
		aLen := a.Label.End - a.Label.Start
		bLen := b.Label.End - b.Label.Start
		return aLen < bLen
	})

	return out
}

// SplitClusters performs the C4 step-3 soft-width-budget cluster split over
// an already-ordered LineLabel list, and fills in the per-cluster margin
// label (step 4), end_col extension (step 5), and accumulators (step 6).
func SplitClusters(
	g *Group,
	lineIdx int,
	line Line,
	wc *WidthCache,
	lls []LineLabel,
	cfg Config,
	lineNoWidth int,
) []*Cluster {
	if len(lls) == 0 {
		return nil
	}

	extra := extraArrowLen
	if cfg.Compact {
		extra = extraArrowLenCompact
	}
	softLimit := cfg.LineWidth - lineNoWidth - 4 - g.MarginWidth

	var clusters []*Cluster
	var cur *Cluster
	var minStartDisplay, maxEndDisplay int

	startNew := func() {
		cur = &Cluster{LineNo: lineIdx, MinCol: -1}
		clusters = append(clusters, cur)
		minStartDisplay, maxEndDisplay = 0, 0
	}
	startNew()

	for _, ll := range lls {
		endCol := endColumnFor(g, line, ll)
		startDisplay := wc.At(clampInt(ll.Col, 0, wc.Len()))
		endDisplay := wc.At(clampInt(endCol, 0, wc.Len()))

		if len(cur.LineLabels) > 0 && cfg.LineWidth > 0 {
			newMinStart := startDisplay
			if len(cur.LineLabels) > 0 && minStartDisplay < newMinStart {
				newMinStart = minStartDisplay
			}
			newMaxEnd := maxInt(maxEndDisplay, endDisplay)
			hypothetical := (newMaxEnd - newMinStart) + extra + 1 + ll.Label.MessageWidth
			if hypothetical > softLimit {
				startNew()
			}
		}

		if len(cur.LineLabels) == 0 {
			minStartDisplay = startDisplay
		} else if startDisplay < minStartDisplay {
			minStartDisplay = startDisplay
		}
		if endDisplay > maxEndDisplay {
			maxEndDisplay = endDisplay
		}

		ll.EndCol = endCol

		if ll.Label.Multi() && cur.MarginLabel == nil && !(ll.DrawMsg && ll.Label.Message != "") {
			cur.MarginLabel = ll.Label
			continue
		}
		if ll.Label.Multi() && cur.MarginLabel == ll.Label && !ll.DrawMsg {
			continue
		}

		cur.LineLabels = append(cur.LineLabels, ll)
		if cur.MinCol == -1 || ll.Col < cur.MinCol {
			cur.MinCol = ll.Col
		}
		if ll.EndCol > cur.ArrowLen-extra {
			cur.ArrowLen = ll.EndCol + extra
		}
		if ll.Label.MessageWidth > cur.MaxMsgWidth {
			cur.MaxMsgWidth = ll.Label.MessageWidth
		}
	}

	for _, c := range clusters {
		if c.MinCol == -1 {
			c.MinCol = 0
		}
	}

	return clusters
}

// endColumnFor implements C4 step 5: end_col is the label's own end column,
// except an opening/closing multi-line LineLabel that draws a message and is
// not the group's sole margin label gets its end_col extended to run the
// arrow to the right edge of the line (plus the newline slot).
func endColumnFor(g *Group, line Line, ll LineLabel) int {
	if ll.Label.Multi() && ll.DrawMsg {
		end := line.CharLen
		if line.HasNewline {
			end++
		}
		return end
	}
	if !ll.Label.Multi() {
		return ll.Label.End - line.CharOffset
	}
	return ll.Col
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
