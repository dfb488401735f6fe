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
	"bytes"
	"io"
	"strings"
	"unicode"
)

// Writer is C7's low-level output sink: a line buffer that never emits
// trailing whitespace, plus the current-color bookkeeping (§4.7,
// "Color handling") so callers never have to track it themselves.
type Writer struct {
	out io.Writer
	buf []byte // never contains '\n'
	err error

	colors       ColorProvider
	currentKind  ColorKind
	currentLabel *LabelInfo
	colorOn      bool
}

// NewWriter wraps out with the buffering/trailing-whitespace and color-run
// bookkeeping C7 needs.
func NewWriter(out io.Writer, colors ColorProvider) *Writer {
	if colors == nil {
		colors = NoColor
	}
	return &Writer{out: out, colors: colors}
}

// WriteString appends data to the line buffer, splitting on '\n' so each
// completed line is flushed with its trailing whitespace trimmed.
func (w *Writer) WriteString(data string) {
	if w.err != nil {
		return
	}
	for {
		i := strings.IndexByte(data, '\n')
		if i < 0 {
			w.buf = append(w.buf, data...)
			return
		}
		w.buf = append(w.buf, data[:i]...)
		w.flush(true)
		data = data[i+1:]
	}
}

// WriteSpaces appends n literal space characters.
func (w *Writer) WriteSpaces(n int) {
	if n <= 0 {
		return
	}
	w.buf = append(w.buf, spaces(n)...)
}

// UseColor emits the escape for kind if either the owning label or the kind
// changed since the last call, resetting first when the label changes. A
// nil label is used for rail/structural colors that don't belong to any one
// label (margin, unimportant, and so on).
func (w *Writer) UseColor(label *LabelInfo, kind ColorKind) {
	if w.currentLabel != label && w.colorOn {
		w.WriteString(w.colors(ColorReset))
		w.colorOn = false
	}
	if kind == ColorReset {
		if w.colorOn {
			w.WriteString(w.colors(ColorReset))
			w.colorOn = false
		}
		w.currentLabel = label
		w.currentKind = kind
		return
	}
	if w.currentLabel == label && w.currentKind == kind && w.colorOn {
		return
	}
	esc := w.colors(kind)
	if esc != "" {
		w.WriteString(esc)
		w.colorOn = true
	}
	w.currentLabel = label
	w.currentKind = kind
}

// Reset ends the current color run, if any.
func (w *Writer) Reset() {
	if w.colorOn {
		w.WriteString(w.colors(ColorReset))
		w.colorOn = false
	}
	w.currentLabel = nil
}

// Newline flushes the current line (with its trailing whitespace trimmed)
// and starts a new one.
func (w *Writer) Newline() {
	w.flush(true)
}

// Flush flushes any partial line without appending a newline, and returns
// the first write error this Writer encountered, if any.
func (w *Writer) Flush() error {
	w.flush(false)
	err := w.err
	w.err = nil
	return err
}

func (w *Writer) flush(withNewline bool) {
	if w.err != nil {
		return
	}

	trimmed := bytes.TrimRightFunc(w.buf, unicode.IsSpace)
	toWrite := trimmed
	if withNewline {
		// Borrow the tail of buf (already known to be whitespace) as scratch
		// space for the newline byte to avoid another allocation.
		toWrite = append(trimmed, '\n')
	}

	if len(toWrite) > 0 {
		_, w.err = w.out.Write(toWrite)
	}

	if withNewline {
		w.buf = w.buf[:0]
	} else {
		w.buf = append(w.buf[:0], trimmed[len(trimmed):]...)
	}
}
