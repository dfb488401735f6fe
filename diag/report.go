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
	"io"
	"sort"
	"strings"

	"github.com/petermattis/goid"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/sourcelens/diag/internal/core"
)

// Report collects [Diagnostic]s and renders them in insertion order.
//
// A Report is mutable and, per §5's concurrency model, must not be rendered
// concurrently with further mutations on the same instance. In debug builds
// (when built with -tags diagdebug) it asserts that every mutation happens
// on the goroutine that created it, since the race is otherwise silent.
type Report struct {
	cfg    Config
	cache  *Cache
	diags  []*Diagnostic
	ownerG int64
}

// NewReport creates an empty Report rendering against cache with cfg.
func NewReport(cache *Cache, cfg Config) *Report {
	return &Report{cfg: cfg, cache: cache, ownerG: goid.Get()}
}

func (r *Report) checkOwner() {
	if debugGuard && goid.Get() != r.ownerG {
		panic("sourcelens/diag: Report mutated from a goroutine that did not create it")
	}
}

// Error appends and returns a new error-level diagnostic.
func (r *Report) Error(opts ...DiagnosticOption) *Diagnostic { return r.push(LevelError, opts) }

// Warn appends and returns a new warning-level diagnostic.
func (r *Report) Warn(opts ...DiagnosticOption) *Diagnostic { return r.push(LevelWarning, opts) }

// Remark appends and returns a new remark-level diagnostic.
func (r *Report) Remark(opts ...DiagnosticOption) *Diagnostic { return r.push(LevelRemark, opts) }

// Errorf is [Report.Error] with [Messagef] applied from format/args.
func (r *Report) Errorf(format string, args ...any) *Diagnostic {
	return r.Error(Messagef(format, args...))
}

// Warnf is [Report.Warn] with [Messagef] applied from format/args.
func (r *Report) Warnf(format string, args ...any) *Diagnostic {
	return r.Warn(Messagef(format, args...))
}

// Remarkf is [Report.Remark] with [Messagef] applied from format/args.
func (r *Report) Remarkf(format string, args ...any) *Diagnostic {
	return r.Remark(Messagef(format, args...))
}

func (r *Report) push(level Level, opts []DiagnosticOption) *Diagnostic {
	r.checkOwner()
	d := &Diagnostic{level: level}
	d.Apply(opts...)
	r.diags = append(r.diags, d)
	return d
}

// Len returns the number of diagnostics collected so far.
func (r *Report) Len() int { return len(r.diags) }

// Diagnostics returns the collected diagnostics in insertion order.
func (r *Report) Diagnostics() []*Diagnostic { return r.diags }

// Sort stably reorders diagnostics by severity (errors first), preserving
// insertion order within a severity.
func (r *Report) Sort() {
	r.checkOwner()
	sort.SliceStable(r.diags, func(i, j int) bool {
		return r.diags[i].level < r.diags[j].level
	})
}

// CatchICE runs cb, converting any panic into an internal-error diagnostic
// appended to the report rather than propagating, and returns whether a
// panic occurred.
func (r *Report) CatchICE(cb func()) (recovered bool) {
	defer func() {
		if rec := recover(); rec != nil {
			recovered = true
			r.Error(
				Code("ICE"),
				Messagef("internal error: %v", rec),
				Note("this is a bug; please report it with the input that triggered it"),
			)
		}
	}()
	cb()
	return false
}

// Render writes every diagnostic in this report, in order, to w, separated
// by a blank line.
func (r *Report) Render(w io.Writer) error {
	var buf strings.Builder
	for i, d := range r.diags {
		text, err := renderOne(r.cfg, r.cache, d)
		if err != nil {
			return err
		}
		buf.WriteString(text)
		if i < len(r.diags)-1 {
			buf.WriteString("\n")
		}
	}
	_, err := io.WriteString(w, buf.String())
	return err
}

// RenderString is [Report.Render] into a string.
func (r *Report) RenderString() (string, error) {
	var buf strings.Builder
	if err := r.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderOne(cfg Config, cache *Cache, d *Diagnostic) (string, error) {
	req := core.RenderRequest{
		Level:  d.level,
		Code:   d.code,
		Title:  d.title,
		Labels: d.labels,
		Notes:  d.notes,
	}
	var scratch core.Scratch
	return core.Render(cfg, cache.inner, req, &scratch)
}

// ToProto serializes this report's diagnostics to a [structpb.Struct],
// suitable for transport to a host language binding (§1's "host-language
// bindings" external collaborator).
func (r *Report) ToProto() (*structpb.Struct, error) {
	diags := make([]any, len(r.diags))
	for i, d := range r.diags {
		labels := make([]any, len(d.labels))
		for j, l := range d.labels {
			labels[j] = map[string]any{
				"source":   float64(l.Source),
				"start":    float64(l.Start),
				"end":      float64(l.End),
				"message":  l.Message,
				"priority": float64(l.Priority),
				"order":    float64(l.Order),
			}
		}
		notes := make([]any, len(d.notes))
		for j, n := range d.notes {
			notes[j] = map[string]any{
				"kind": float64(n.Kind),
				"text": n.Text,
			}
		}
		diags[i] = map[string]any{
			"level":  float64(d.level),
			"tag":    d.tag,
			"code":   d.code,
			"title":  d.title,
			"labels": labels,
			"notes":  notes,
		}
	}
	return structpb.NewStruct(map[string]any{"diagnostics": diags})
}

// AppendFromProto decodes diagnostics previously serialized by [Report.ToProto]
// and appends them to this report.
func (r *Report) AppendFromProto(s *structpb.Struct) error {
	r.checkOwner()
	list, ok := s.Fields["diagnostics"]
	if !ok {
		return fmt.Errorf("sourcelens/diag: proto struct missing %q field", "diagnostics")
	}
	for _, v := range list.GetListValue().GetValues() {
		fields := v.GetStructValue().GetFields()
		d := &Diagnostic{
			level: Level(fields["level"].GetNumberValue()),
			tag:   fields["tag"].GetStringValue(),
			code:  fields["code"].GetStringValue(),
			title: fields["title"].GetStringValue(),
		}
		for _, lv := range fields["labels"].GetListValue().GetValues() {
			lf := lv.GetStructValue().GetFields()
			d.labels = append(d.labels, core.RawLabel{
				Source:   SourceID(lf["source"].GetNumberValue()),
				Start:    int(lf["start"].GetNumberValue()),
				End:      int(lf["end"].GetNumberValue()),
				Message:  lf["message"].GetStringValue(),
				Priority: int(lf["priority"].GetNumberValue()),
				Order:    int(lf["order"].GetNumberValue()),
			})
		}
		for _, nv := range fields["notes"].GetListValue().GetValues() {
			nf := nv.GetStructValue().GetFields()
			d.notes = append(d.notes, core.RenderNote{
				Kind: core.NoteKind(nf["kind"].GetNumberValue()),
				Text: nf["text"].GetStringValue(),
			})
		}
		r.diags = append(r.diags, d)
	}
	return nil
}
