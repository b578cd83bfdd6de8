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

package catalog

import (
	"context"

	"github.com/walteh/catalogrc/pkg/registry"
)

// 🔌 Parser decodes a catalog file into products
type Parser interface {
	// 📝 Parse parses products from bytes
	Parse(ctx context.Context, data []byte) ([]Product, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

// 🗺️ parsers holds the available parsers, first match wins
var parsers registry.Registry[Parser]

// 📝 Register registers a parser
func Register(p Parser) {
	parsers.Register(p)
}

// 🎯 GetParser returns a parser that can handle the given file, or nil
func GetParser(filename string) Parser {
	p, _ := parsers.Lookup(filename)
	return p
}

// catalogFile is the on-disk document shape shared by the YAML and JSON parsers
type catalogFile struct {
	Products []Product `json:"products" yaml:"products"`
}
