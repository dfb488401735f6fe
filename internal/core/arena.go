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

// Arena is a bump allocator for the scratch structures a single render
// invocation produces: Groups, Clusters and LineLabels, none of which
// outlive the render that created them (§9, "Arena for per-render scratch").
// Internally it is a slice of logarithmically-growing slabs that never
// move their elements, so values handed out by [Arena.New] remain valid
// for the arena's lifetime even as it keeps growing.
//
// A zero Arena[T] is empty and ready to use; [Arena.Reset] clears it for
// reuse by the next render that is handed the same [Scratch].
type Arena[T any] struct {
	slabs [][]T
}

const arenaMinSlabLen = 16

// New allocates a new zero-valued T on the arena and returns a pointer to
// it, stable for the arena's lifetime.
func (a *Arena[T]) New() *T {
	if len(a.slabs) == 0 {
		a.slabs = [][]T{make([]T, 0, arenaMinSlabLen)}
	}

	last := &a.slabs[len(a.slabs)-1]
	if len(*last) == cap(*last) {
		a.slabs = append(a.slabs, make([]T, 0, 2*cap(*last)))
		last = &a.slabs[len(a.slabs)-1]
	}

	*last = append(*last, *new(T))
	return &(*last)[len(*last)-1]
}

// Reset clears the arena's contents but keeps its slabs' backing storage,
// so a caller can reuse the same Arena across sequential renders
// without re-allocating from the heap each time.
func (a *Arena[T]) Reset() {
	for i := range a.slabs {
		a.slabs[i] = a.slabs[i][:0]
	}
}

// Scratch bundles the three arenas a render needs, plus the width caches it
// builds along the way (one per distinct source line actually rendered,
// since most lines in a group are skipped).
type Scratch struct {
	Groups   Arena[Group]
	Clusters Arena[Cluster]
	Lines    Arena[LineLabel]

	widths map[widthKey]*WidthCache
}

type widthKey struct {
	src  SourceID
	line int
}

// WidthCacheFor returns the cached [WidthCache] for (src, line), building it
// on first request via src's text and cfg's tab/ambiguous-width settings.
func (s *Scratch) WidthCacheFor(src *Source, srcID SourceID, line int, cfg Config) *WidthCache {
	if s.widths == nil {
		s.widths = map[widthKey]*WidthCache{}
	}
	key := widthKey{src: srcID, line: line}
	if wc, ok := s.widths[key]; ok {
		return wc
	}
	wc := BuildWidthCache(src.LineText(line), cfg.TabWidth, cfg.AmbiguousWidth)
	s.widths[key] = wc
	return wc
}

// Reset clears a Scratch for reuse on the next render.
func (s *Scratch) Reset() {
	s.Groups.Reset()
	s.Clusters.Reset()
	s.Lines.Reset()
	for k := range s.widths {
		delete(s.widths, k)
	}
}
