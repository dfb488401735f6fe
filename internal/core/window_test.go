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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveWindowDisabledWhenLineWidthZero(t *testing.T) {
	wc := BuildWidthCache("apple == orange;", 4, 1)
	c := &Cluster{ArrowLen: 15, MinCol: 0, MaxMsgWidth: 6}
	cfg := DefaultConfig()
	ResolveWindow(c, wc, 16, cfg, 1, 0)
	assert.Equal(t, 0, c.StartCol)
	assert.Equal(t, NoWindowEnd, c.EndCol)
}

func TestResolveWindowLongLineOverflowsRight(t *testing.T) {
	// 100 repetitions of "apple == " (900 chars) + "orange" at the end.
	line := strings.Repeat("apple == ", 100) + "orange"
	wc := BuildWidthCache(line, 4, 1)
	lineLen := charCount(line)

	labelStart := lineLen - 6
	c := &Cluster{ArrowLen: lineLen, MinCol: labelStart, MaxMsgWidth: 10}
	cfg := DefaultConfig()
	cfg.LineWidth = 80

	ResolveWindow(c, wc, lineLen, cfg, 2, 0)
	// The window must not start at the very beginning: something got elided.
	assert.Greater(t, c.StartCol, 0)
}
