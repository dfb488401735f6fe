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

	"github.com/google/go-cmp/cmp"
)

// TestNormalizeLabelIsDeterministic guards C3 against accidental
// nondeterminism: normalizing the same RawLabel twice must produce
// byte-for-byte identical LabelInfo values, field by field.
func TestNormalizeLabelIsDeterministic(t *testing.T) {
	src := NewSource("t.txt", "apple == orange;\nbanana;\n")
	raw := RawLabel{Start: 1, End: 5, Message: "apple", Priority: 3}

	a := NormalizeLabel(src, raw, IndexChar, 1)
	b := NormalizeLabel(src, raw, IndexChar, 1)

	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("NormalizeLabel is not deterministic (-first +second):\n%s", diff)
	}
}

// TestBuildGroupsStableAcrossInputOrder checks that BuildGroups' per-source
// partitioning (FirstChar/LastChar/MarginWidth) is insensitive to the order
// multi-line labels of equal span length were supplied in, using go-cmp to
// compare the resulting Group summaries structurally rather than label by
// label.
func TestBuildGroupsStableAcrossInputOrder(t *testing.T) {
	src := NewSource("t.txt", "0123456789\nabcdefghij\nABCDEFGHIJ\n")
	cache := NewCache()
	id := cache.Add("t.txt", src.Text)

	a := NormalizeLabel(src, RawLabel{Source: id, Start: 0, End: 12, Order: 0}, IndexChar, 1)
	b := NormalizeLabel(src, RawLabel{Source: id, Start: 1, End: 13, Order: 1}, IndexChar, 1)

	forward := BuildGroups(cache, []LabelInfo{a, b}, false)
	backward := BuildGroups(cache, []LabelInfo{b, a}, false)

	type summary struct {
		FirstChar, LastChar, MarginWidth int
	}
	summarize := func(groups []*Group) []summary {
		out := make([]summary, len(groups))
		for i, g := range groups {
			out[i] = summary{g.FirstChar, g.LastChar, g.MarginWidth}
		}
		return out
	}

	if diff := cmp.Diff(summarize(forward), summarize(backward)); diff != "" {
		t.Fatalf("group summary depends on label input order (-forward +backward):\n%s", diff)
	}
}
