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

// Package diag renders compiler-style diagnostic reports: a severity, an
// optional machine-readable code, a headline message, source snippets with
// labeled ranges (possibly spanning multiple lines, possibly in more than
// one file), and trailing help/note paragraphs, drawn with line numbers, a
// margin rail for open multi-line labels, underlines, callout arrows, and
// optional ANSI color.
//
// A [Report] collects [Diagnostic]s built with the chainable
// [DiagnosticOption] constructors, then [Report.Render] draws them in
// insertion order to an [io.Writer]. The actual layout engine — line
// indexing, UTF-8 display widths, cluster assembly, column windowing, and
// the margin rail state machine — lives in the internal/core package; this
// package is the public construction surface over it.
package diag
