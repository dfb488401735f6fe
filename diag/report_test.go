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
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTwoInlineLabelsSameLine(t *testing.T) {
	cache := NewCache()
	src := cache.AddString("<unknown>", "apple == orange;")

	r := NewReport(cache, DefaultConfig())
	r.Error(
		Message("can't compare apples with oranges"),
		Snippet(src, 0, 5, "This is an apple"),
		Snippet(src, 9, 15, "This is an orange"),
	)

	out, err := r.RenderString()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "Error: can't compare apples with oranges\n"))
	assert.Contains(t, out, ",-[ <unknown>:1:1 ]")
	assert.Contains(t, out, "apple == orange;")
	assert.Contains(t, out, "This is an apple")
	assert.Contains(t, out, "This is an orange")
	assert.True(t, strings.HasSuffix(strings.TrimRight(out, "\n"), "'"))
}

func TestRenderMultiLineSpan(t *testing.T) {
	cache := NewCache()
	src := cache.AddString("<unknown>", "apple\n==\norange")

	r := NewReport(cache, DefaultConfig())
	r.Error(Snippet(src, 1, 16, "illegal comparison"))

	out, err := r.RenderString()
	require.NoError(t, err)
	assert.Contains(t, out, "apple")
	assert.Contains(t, out, "orange")
	assert.Contains(t, out, "illegal comparison")
}

func TestRenderZeroWidthLabel(t *testing.T) {
	cache := NewCache()
	src := cache.AddString("<unknown>", "apple ==\n")

	cfg := DefaultConfig()
	cfg.IndexType = IndexByte
	r := NewReport(cache, cfg)
	r.Error(
		Message("unexpected end of file"),
		Snippet(src, 9, 9, "Unexpected end of file"),
	)

	out, err := r.RenderString()
	require.NoError(t, err)
	assert.Contains(t, out, "Unexpected end of file")
}

func TestRenderWithCodeAndNotes(t *testing.T) {
	cache := NewCache()
	src := cache.AddString("a.txt", "x := 1\n")

	r := NewReport(cache, DefaultConfig())
	r.Warn(
		Code("W001"),
		Message("unused variable"),
		Snippet(src, 0, 1, "declared here"),
		Note("consider removing it"),
		Help("prefix with an underscore to silence this"),
	)

	out, err := r.RenderString()
	require.NoError(t, err)
	assert.Contains(t, out, "[W001] Warning:")
	assert.Contains(t, out, "Note: consider removing it")
	assert.Contains(t, out, "Help: prefix with an underscore to silence this")
}

func TestFixRendersUnifiedDiff(t *testing.T) {
	cache := NewCache()
	src := cache.AddString("a.txt", "fmt.Print(x)\n")

	r := NewReport(cache, DefaultConfig())
	r.Error(
		Message("wrong verb"),
		Snippet(src, 0, 9, "should be Println"),
		Fix("fmt.Print(x)\n", "use Println instead", Edit{Start: 4, End: 9, Replace: "Println"}),
	)

	out, err := r.RenderString()
	require.NoError(t, err)
	assert.Contains(t, out, "use Println instead")
	assert.Contains(t, out, "-fmt.Print(x)")
	assert.Contains(t, out, "+fmt.Println(x)")
}

func TestRenderBatchPreservesOrder(t *testing.T) {
	cache := NewCache()
	src := cache.AddString("a.txt", "one\ntwo\nthree\n")

	var reports []*Report
	for i := 0; i < 5; i++ {
		r := NewReport(cache, DefaultConfig())
		r.Errorf("error number %d", i)
		_ = src
		reports = append(reports, r)
	}

	out, err := RenderBatch(context.Background(), reports)
	require.NoError(t, err)
	require.Len(t, out, 5)
	for i, text := range out {
		assert.Contains(t, text, fmt.Sprintf("error number %d", i))
	}
}

func TestToProtoRoundTrip(t *testing.T) {
	cache := NewCache()
	src := cache.AddString("a.txt", "hello\n")

	r := NewReport(cache, DefaultConfig())
	r.Error(Message("boom"), Snippet(src, 0, 5, "here"), Note("a note"))

	pb, err := r.ToProto()
	require.NoError(t, err)

	r2 := NewReport(cache, DefaultConfig())
	require.NoError(t, r2.AppendFromProto(pb))
	require.Len(t, r2.Diagnostics(), 1)
	assert.Equal(t, "boom", r2.Diagnostics()[0].title)
}

func TestCatchICERecoversPanic(t *testing.T) {
	cache := NewCache()
	r := NewReport(cache, DefaultConfig())

	recovered := r.CatchICE(func() {
		panic("kaboom")
	})
	assert.True(t, recovered)
	require.Len(t, r.Diagnostics(), 1)
	assert.Equal(t, LevelError, r.Diagnostics()[0].Level())
}
