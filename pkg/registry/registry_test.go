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

package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type extParser struct {
	name string
	exts []string
}

func (p *extParser) CanParse(filename string) bool {
	return HasExt(filename, p.exts...)
}

func TestRegistryLookup(t *testing.T) {
	var r Registry[*extParser]
	yaml := &extParser{name: "yaml", exts: []string{".yaml", ".yml"}}
	json := &extParser{name: "json", exts: []string{".json"}}
	shadow := &extParser{name: "shadow", exts: []string{".yaml"}}

	r.Register(yaml)
	r.Register(json)
	r.Register(shadow)

	tests := []struct {
		name     string
		filename string
		want     *extParser
	}{
		{name: "yaml", filename: "catalog.yaml", want: yaml},
		{name: "yml_upper_case", filename: "CATALOG.YML", want: yaml},
		{name: "json_mixed_case", filename: "dir/catalog.Json", want: json},
		{name: "first_registered_wins", filename: "x.yaml", want: yaml},
		{name: "unknown", filename: "catalog.toml"},
		{name: "no_extension", filename: "yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.Lookup(tt.filename)
			if tt.want == nil {
				assert.False(t, ok, "no parser should match")
				assert.Nil(t, got)
				return
			}
			require.True(t, ok, "a parser should match")
			assert.Same(t, tt.want, got)
		})
	}
}

func TestRegistrySwap(t *testing.T) {
	var r Registry[*extParser]
	first := &extParser{name: "first", exts: []string{".a"}}
	r.Register(first)

	prev := r.Swap(nil)
	assert.Equal(t, []*extParser{first}, prev)
	assert.Empty(t, r.Items())

	r.Swap(prev)
	items := r.Items()
	require.Len(t, items, 1)
	assert.Same(t, first, items[0])

	items[0] = nil
	assert.Same(t, first, r.Items()[0], "Items should return a copy")
}

func TestHasExt(t *testing.T) {
	assert.True(t, HasExt(" products.HCL ", ".hcl"))
	assert.False(t, HasExt("products.hcl.bak", ".hcl"))
	assert.False(t, HasExt("products", ".hcl"))
}
