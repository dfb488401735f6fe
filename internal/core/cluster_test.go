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

func TestCollectLineLabelsInlineSorted(t *testing.T) {
	src := NewSource("t.txt", "apple == orange;")
	cache := NewCache()
	id := cache.Add("t.txt", src.Text)

	apple := NormalizeLabel(src, RawLabel{Source: id, Start: 0, End: 5, Message: "This is an apple", Order: 0}, IndexChar, 1)
	orange := NormalizeLabel(src, RawLabel{Source: id, Start: 9, End: 15, Message: "This is an orange", Order: 1}, IndexChar, 1)

	g := BuildGroups(cache, []LabelInfo{apple, orange}, false)[0]
	lls := CollectLineLabels(g, 0, src.Line(0), Config{LabelAttach: AttachMiddle})
	require.Len(t, lls, 2)
	assert.Less(t, lls[0].Col, lls[1].Col)
}

func TestSplitClustersSingleClusterWhenNoBudget(t *testing.T) {
	src := NewSource("t.txt", "apple == orange;")
	cache := NewCache()
	id := cache.Add("t.txt", src.Text)

	apple := NormalizeLabel(src, RawLabel{Source: id, Start: 0, End: 5, Message: "apple"}, IndexChar, 1)
	orange := NormalizeLabel(src, RawLabel{Source: id, Start: 9, End: 15, Message: "orange"}, IndexChar, 1)
	g := BuildGroups(cache, []LabelInfo{apple, orange}, false)[0]

	line := src.Line(0)
	wc := BuildWidthCache(src.LineText(0), 4, 1)
	lls := CollectLineLabels(g, 0, line, Config{LabelAttach: AttachMiddle})

	cfg := DefaultConfig() // LineWidth == 0: soft budget disabled
	clusters := SplitClusters(g, 0, line, wc, lls, cfg, 1)
	require.Len(t, clusters, 1)
	assert.Len(t, clusters[0].LineLabels, 2)
}

func TestSplitClustersSplitsUnderTightBudget(t *testing.T) {
	src := NewSource("t.txt", "apple == orange;")
	cache := NewCache()
	id := cache.Add("t.txt", src.Text)

	apple := NormalizeLabel(src, RawLabel{Source: id, Start: 0, End: 5, Message: "apple is a long message here"}, IndexChar, 1)
	orange := NormalizeLabel(src, RawLabel{Source: id, Start: 9, End: 15, Message: "orange is also a long message"}, IndexChar, 1)
	g := BuildGroups(cache, []LabelInfo{apple, orange}, false)[0]

	line := src.Line(0)
	wc := BuildWidthCache(src.LineText(0), 4, 1)
	lls := CollectLineLabels(g, 0, line, Config{LabelAttach: AttachMiddle})

	cfg := DefaultConfig()
	cfg.LineWidth = 20
	clusters := SplitClusters(g, 0, line, wc, lls, cfg, 1)
	assert.Len(t, clusters, 2)
}
