// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package registry keeps the file parsers that config and catalog pick by file extension.
package registry

import (
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// 🔍 Matcher claims files by name
type Matcher interface {
	CanParse(filename string) bool
}

// 🗺️ Registry is an ordered list of parsers. The first parser that claims a file
// wins. The zero value is ready to use.
type Registry[P Matcher] struct {
	mu    sync.RWMutex
	items []P
}

// 📝 Register appends a parser
func (r *Registry[P]) Register(p P) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, p)
}

// 🎯 Lookup returns the first parser that can handle filename
func (r *Registry[P]) Lookup(filename string) (P, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.items {
		if p.CanParse(filename) {
			return p, true
		}
	}
	var zero P
	return zero, false
}

// Items returns a copy of the registered parsers in registration order
func (r *Registry[P]) Items() []P {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.items)
}

// Swap replaces the registered parsers and returns the previous ones
func (r *Registry[P]) Swap(items []P) []P {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev := r.items
	r.items = items
	return prev
}

// HasExt reports whether filename ends in one of exts, ignoring case.
// exts are given lower case with the leading dot.
func HasExt(filename string, exts ...string) bool {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(filename)))
	return ext != "" && slices.Contains(exts, ext)
}
