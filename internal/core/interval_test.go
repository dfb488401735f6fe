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
)

func TestLabelSpansActive(t *testing.T) {
	src := NewSource("t.txt", "0123456789\nabcdefghij\nABCDEFGHIJ\nklmnopqrst\n")
	cache := NewCache()
	id := cache.Add("t.txt", src.Text)

	outer := NormalizeLabel(src, RawLabel{Source: id, Start: 0, End: 30}, IndexChar, 1)
	inner := NormalizeLabel(src, RawLabel{Source: id, Start: 11, End: 22}, IndexChar, 1)

	spans := NewLabelSpans([]*LabelInfo{&outer, &inner})

	assert.Len(t, spans.Active(0), 1)
	assert.Len(t, spans.Active(1), 2)
	assert.Len(t, spans.Active(2), 2)
	assert.Len(t, spans.Active(3), 0)
}

func TestLabelSpansGenericOverStringKeys(t *testing.T) {
	idx := &LabelSpans[string]{}
	idx.tree.Set("m", []lineSpan[string]{{start: "a", label: &LabelInfo{}}})

	active := idx.Active("c")
	assert.Len(t, active, 1)
	assert.Nil(t, idx.Active("z"))
}
