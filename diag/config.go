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

import "github.com/sourcelens/diag/internal/core"

// Config controls rendering layout: glyph set, colorization, tab width,
// column budget, and the other recognized options of §6. A zero Config is
// usable and equivalent to [DefaultConfig].
type Config = core.Config

// LabelAttach selects which column an inline label's arrow points at.
type LabelAttach = core.LabelAttach

const (
	AttachStart  = core.AttachStart
	AttachMiddle = core.AttachMiddle
	AttachEnd    = core.AttachEnd
)

// IndexType selects how label positions are interpreted.
type IndexType = core.IndexType

const (
	IndexChar = core.IndexChar
	IndexByte = core.IndexByte
)

// ColorKind names a semantic color category a [ColorProvider] may be asked
// to render.
type ColorKind = core.ColorKind

const (
	ColorReset         = core.ColorReset
	ColorError         = core.ColorError
	ColorWarning       = core.ColorWarning
	ColorKindLevel     = core.ColorKindLevel
	ColorMargin        = core.ColorMargin
	ColorSkippedMargin = core.ColorSkippedMargin
	ColorUnimportant   = core.ColorUnimportant
	ColorNote          = core.ColorNote
	ColorLabel         = core.ColorLabel
)

// ColorProvider returns the escape bytes for a color category. A nil
// ColorProvider disables colorization.
type ColorProvider = core.ColorProvider

// NoColor is a [ColorProvider] that disables color.
var NoColor = core.NoColor

// ANSIColor is a [ColorProvider] using the conventional 16-color ANSI
// palette (red/yellow/cyan keyed off severity).
var ANSIColor = core.ANSIColor

// DefaultConfig returns the Config used when a caller supplies none.
func DefaultConfig() Config {
	return core.DefaultConfig()
}
