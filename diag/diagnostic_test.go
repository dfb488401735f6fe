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

package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTagSetTwicePanics(t *testing.T) {
	assert.Panics(t, func() {
		(&Diagnostic{}).Apply(Tag("a"), Tag("b"))
	})
}

func TestIsTag(t *testing.T) {
	d := (&Diagnostic{}).Apply(Tag("unused-var"))
	assert.True(t, d.Is("unused-var"))
	assert.False(t, d.Is("other"))
}

func TestSnippetOrderIncrements(t *testing.T) {
	cache := NewCache()
	src := cache.AddString("a.txt", "abcdef")

	d := (&Diagnostic{}).Apply(
		Snippet(src, 0, 1, "first"),
		Snippet(src, 1, 2, "second"),
	)
	assert.Equal(t, 0, d.labels[0].Order)
	assert.Equal(t, 1, d.labels[1].Order)
}

func TestPriorityAndColorOptions(t *testing.T) {
	cache := NewCache()
	src := cache.AddString("a.txt", "abcdef")

	d := (&Diagnostic{}).Apply(Snippet(src, 0, 1, "x", Priority(10), WithColor(ColorWarning)))
	assert.Equal(t, 10, d.labels[0].Priority)
	assert.Equal(t, ColorWarning, d.labels[0].Color)
}

func TestApplyEditsRightToLeft(t *testing.T) {
	out := applyEdits("abcdef", []Edit{
		{Start: 0, End: 1, Replace: "A"},
		{Start: 4, End: 5, Replace: "E"},
	})
	assert.Equal(t, "AbcdEf", out)
}

func TestReportSortBySeverity(t *testing.T) {
	cache := NewCache()
	r := NewReport(cache, DefaultConfig())
	r.Warn(Message("w"))
	r.Error(Message("e"))
	r.Remark(Message("n"))
	r.Sort()

	levels := make([]Level, len(r.Diagnostics()))
	for i, d := range r.Diagnostics() {
		levels[i] = d.Level()
	}
	assert.Equal(t, []Level{LevelError, LevelWarning, LevelRemark}, levels)
}
