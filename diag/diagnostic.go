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
	"fmt"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/sourcelens/diag/internal/core"
)

// Level is the severity of a diagnostic.
type Level = core.Level

const (
	LevelError   = core.LevelError
	LevelWarning = core.LevelWarning
	LevelRemark  = core.LevelRemark
)

// Diagnostic is a single rendered report: a severity, an optional code, a
// headline, zero or more labeled source snippets, and trailing help/note
// paragraphs.
//
// Construct one with [Report.Error], [Report.Warn], or [Report.Remark], then
// apply options to it with [Diagnostic.Apply], or pass them directly to the
// constructing method.
type Diagnostic struct {
	tag   string
	level Level
	code  string
	title string

	labels []core.RawLabel
	notes  []core.RenderNote

	nextOrder int
}

// DiagnosticOption configures a [Diagnostic] when applied.
//
// Nil options passed to [Diagnostic.Apply] are ignored.
type DiagnosticOption interface {
	apply(*Diagnostic)
}

type optionFunc func(*Diagnostic)

func (f optionFunc) apply(d *Diagnostic) { f(d) }

// Apply applies options to this diagnostic and returns it, for chaining.
func (d *Diagnostic) Apply(options ...DiagnosticOption) *Diagnostic {
	for _, opt := range options {
		if opt != nil {
			opt.apply(d)
		}
	}
	return d
}

// Level returns this diagnostic's severity.
func (d *Diagnostic) Level() Level { return d.level }

// Is reports whether this diagnostic was tagged with t.
func (d *Diagnostic) Is(t string) bool { return d.tag == t }

// Tag sets a diagnostic's machine-readable tag. Tags should be lowercase,
// dash-separated identifiers. Setting it twice panics.
func Tag(t string) DiagnosticOption {
	return optionFunc(func(d *Diagnostic) {
		if d.tag != "" {
			panic("sourcelens/diag: diagnostic tag set more than once")
		}
		d.tag = t
	})
}

// Code sets a diagnostic's machine-readable error code, rendered as
// "[code]" before the severity keyword.
func Code(code string) DiagnosticOption {
	return optionFunc(func(d *Diagnostic) { d.code = code })
}

// Message sets a diagnostic's headline message.
func Message(msg string) DiagnosticOption {
	return optionFunc(func(d *Diagnostic) { d.title = msg })
}

// Messagef is [Message] with fmt.Sprintf formatting.
func Messagef(format string, args ...any) DiagnosticOption {
	return Message(fmt.Sprintf(format, args...))
}

// LabelOption configures a single [Snippet] beyond its span and message.
type LabelOption interface {
	apply(*core.RawLabel)
}

type labelOptionFunc func(*core.RawLabel)

func (f labelOptionFunc) apply(l *core.RawLabel) { f(l) }

// Priority sets a label's overlap-highlighting priority (higher wins).
func Priority(p int) LabelOption {
	return labelOptionFunc(func(l *core.RawLabel) { l.Priority = p })
}

// WithColor overrides the [ColorKind] used to highlight this label; the
// zero value ([ColorReset]) is replaced by [ColorLabel].
func WithColor(kind ColorKind) LabelOption {
	return labelOptionFunc(func(l *core.RawLabel) { l.Color = kind })
}

// Snippet attaches a labeled source range to the diagnostic. start/end are
// interpreted per the rendering [Config]'s IndexType, half-open.
func Snippet(src SourceID, start, end int, message string, opts ...LabelOption) DiagnosticOption {
	return optionFunc(func(d *Diagnostic) {
		raw := core.RawLabel{
			Source:  src,
			Start:   start,
			End:     end,
			Message: message,
			Order:   d.nextOrder,
		}
		d.nextOrder++
		for _, opt := range opts {
			if opt != nil {
				opt.apply(&raw)
			}
		}
		if raw.Color == 0 {
			raw.Color = core.ColorLabel
		}
		d.labels = append(d.labels, raw)
	})
}

// Snippetf is [Snippet] with fmt.Sprintf formatting of its message.
func Snippetf(src SourceID, start, end int, format string, args ...any) DiagnosticOption {
	return Snippet(src, start, end, fmt.Sprintf(format, args...))
}

// Note attaches a trailing "Note:" paragraph.
func Note(text string) DiagnosticOption {
	return optionFunc(func(d *Diagnostic) {
		d.notes = append(d.notes, core.RenderNote{Kind: core.NoteNote, Text: text})
	})
}

// Notef is [Note] with fmt.Sprintf formatting.
func Notef(format string, args ...any) DiagnosticOption {
	return Note(fmt.Sprintf(format, args...))
}

// Help attaches a trailing "Help:" paragraph.
func Help(text string) DiagnosticOption {
	return optionFunc(func(d *Diagnostic) {
		d.notes = append(d.notes, core.RenderNote{Kind: core.NoteHelp, Text: text})
	})
}

// Helpf is [Help] with fmt.Sprintf formatting.
func Helpf(format string, args ...any) DiagnosticOption {
	return Help(fmt.Sprintf(format, args...))
}

// Edit is one replacement span of a suggested [Fix]: half-open byte offsets
// into the Fix's original text, independent of the Config's IndexType.
type Edit struct {
	Start, End int
	Replace    string
}

// Fix attaches a suggested-fix paragraph: message followed by a unified
// diff between original and text with edits applied, rendered as a "Help:"
// paragraph. Edits must be non-overlapping and are applied right-to-left so
// earlier offsets stay valid.
func Fix(original, message string, edits ...Edit) DiagnosticOption {
	return optionFunc(func(d *Diagnostic) {
		fixed := applyEdits(original, edits)
		diffText, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(original),
			B:        difflib.SplitLines(fixed),
			FromFile: "before",
			ToFile:   "after",
			Context:  2,
		})
		text := message
		if err == nil && diffText != "" {
			text = message + "\n" + diffText
		}
		d.notes = append(d.notes, core.RenderNote{Kind: core.NoteHelp, Text: text})
	})
}

func applyEdits(text string, edits []Edit) string {
	sorted := append([]Edit(nil), edits...)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j-1].Start < sorted[j].Start; j-- {
			sorted[j-1], sorted[j] = sorted[j], sorted[j-1]
		}
	}
	out := text
	for _, e := range sorted {
		start, end := clamp(e.Start, 0, len(out)), clamp(e.End, 0, len(out))
		if end < start {
			end = start
		}
		out = out[:start] + e.Replace + out[end:]
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
