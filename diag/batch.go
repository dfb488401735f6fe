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
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/sourcelens/diag/internal/core"
)

// RenderBatch renders each of reports independently and concurrently,
// bounded by GOMAXPROCS, and returns their rendered text in the same order
// as reports. Per §5, each Report must not itself be mutated while its
// render is in flight; rendering one is otherwise read-only, so distinct
// Reports sharing one Cache render safely in parallel.
//
// The first error encountered aborts the remaining renders and is returned;
// already-completed results are discarded, matching §7's all-or-nothing
// render contract extended to a batch.
func RenderBatch(ctx context.Context, reports []*Report) ([]string, error) {
	out := make([]string, len(reports))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, runtime.GOMAXPROCS(0)))

	for i, r := range reports {
		i, r := i, r
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			text, err := r.RenderString()
			if err != nil {
				return err
			}
			out[i] = text
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// RenderDiagnostics renders a flat slice of diagnostics against a shared
// cache and config concurrently, for callers that collect Diagnostics
// outside of a single Report (e.g. fanned out across files by a caller's own
// worker pool).
func RenderDiagnostics(ctx context.Context, cfg Config, cache *Cache, diags []*Diagnostic) ([]string, error) {
	out := make([]string, len(diags))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, runtime.GOMAXPROCS(0)))

	for i, d := range diags {
		i, d := i, d
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			req := core.RenderRequest{Level: d.level, Code: d.code, Title: d.title, Labels: d.labels, Notes: d.notes}
			var scratch core.Scratch
			text, err := core.Render(cfg, cache.inner, req, &scratch)
			if err != nil {
				return err
			}
			out[i] = text
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
