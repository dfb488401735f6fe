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
	"github.com/tidwall/btree"
	"golang.org/x/exp/constraints"
)

// lineSpan is the [start_line, end_line] interval tree entry used by
// LabelSpans to answer "which multi-line labels are open on line N" without
// a linear scan of every multi-line label for every rendered line (C4/C6).
type lineSpan[K constraints.Ordered] struct {
	start K
	label *LabelInfo
}

// LabelSpans indexes a Group's multi-line labels by the line range they
// cover, so renderGroup can ask, for a line with no labels of its own,
// which labels are active in O(log n + k) rather than O(labels) per line.
//
// It is generic over the key type so the same interval index can be reused
// for byte offsets or rune counts, not just zero-based line numbers.
type LabelSpans[K constraints.Ordered] struct {
	tree btree.Map[K, []lineSpan[K]]
}

// NewLabelSpans builds the interval index over a Group's multi-line labels,
// which are already sorted longest-first (the order that fixes their margin
// slot assignment).
func NewLabelSpans(multi []*LabelInfo) *LabelSpans[int] {
	idx := &LabelSpans[int]{}
	for _, l := range multi {
		spans, _ := idx.tree.Get(l.EndLine)
		idx.tree.Set(l.EndLine, append(spans, lineSpan[int]{start: l.StartLine, label: l}))
	}
	return idx
}

// Active returns the multi-line labels whose [StartLine, EndLine] span
// contains line, ordered by ascending EndLine; labels sharing an EndLine
// keep their insertion order. This is not in general the margin-slot order.
func (idx *LabelSpans[K]) Active(line K) []*LabelInfo {
	var out []*LabelInfo
	iter := idx.tree.Iter()
	if !iter.Seek(line) {
		return nil
	}
	for {
		for _, sp := range iter.Value() {
			if sp.start <= line && line <= iter.Key() {
				out = append(out, sp.label)
			}
		}
		if !iter.Next() {
			break
		}
	}
	return out
}
