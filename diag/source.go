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
	"os"

	"github.com/sourcelens/diag/internal/core"
)

// SourceID identifies a source file registered with a [Cache].
type SourceID = core.SourceID

// Cache owns the source texts referenced by diagnostics' labels. It is the
// minimal in-module default implementation of §6's "source provider"
// contract: add text up front, look it up by opaque ID while rendering.
type Cache struct {
	inner *core.Cache
}

// NewCache creates an empty source cache.
func NewCache() *Cache {
	return &Cache{inner: core.NewCache()}
}

// AddString registers text under name (typically a file path, used verbatim
// in reference headers), returning its SourceID.
func (c *Cache) AddString(name, text string) SourceID {
	return c.inner.Add(name, text)
}

// AddFile reads path from disk and registers its contents under path.
func (c *Cache) AddFile(path string) (SourceID, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return c.inner.Add(path, string(bytes)), nil
}

// Lookup resolves a previously-registered name to its SourceID.
func (c *Cache) Lookup(name string) (SourceID, bool) {
	return c.inner.Lookup(name)
}
