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

// Package catalog provides the product type and the sources that list it.
package catalog

import (
	"context"
	_ "embed"
	"slices"
	"sync"

	"github.com/walteh/catalogrc/pkg/state"
	"gitlab.com/tozd/go/errors"
)

// 🛍️ Product is one purchasable catalog entry
type Product struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Price       float64 `json:"price" yaml:"price"`
	Category    string  `json:"category,omitempty" yaml:"category,omitempty"`
	ImageURL    string  `json:"image_url,omitempty" yaml:"image_url,omitempty"`
}

//go:embed products.yaml
var builtinProducts []byte

var parseBuiltin = sync.OnceValues(func() ([]Product, error) {
	return (&YAMLParser{}).Parse(context.Background(), builtinProducts)
})

// 📦 DefaultProducts returns the built-in product list
func DefaultProducts() []Product {
	products, err := parseBuiltin()
	if err != nil {
		panic(errors.Errorf("parsing built-in products: %w", err))
	}
	return slices.Clone(products)
}

var (
	_ state.Source[Product] = (*StaticSource)(nil)
	_ state.Source[Product] = (*FailingSource)(nil)
	_ state.Source[Product] = (*FileSource)(nil)
	_ state.Source[Product] = (*DirSource)(nil)
)

// 📌 StaticSource serves a fixed list of products
type StaticSource struct {
	products []Product
}

// Static creates a source that always returns a copy of products
func Static(products []Product) *StaticSource {
	return &StaticSource{products: slices.Clone(products)}
}

// Builtin creates a source serving DefaultProducts
func Builtin() *StaticSource {
	return Static(DefaultProducts())
}

func (s *StaticSource) ListCatalogItems(ctx context.Context) ([]Product, error) {
	return slices.Clone(s.products), nil
}

// 💣 FailingSource always fails with Err
type FailingSource struct {
	Err error
}

func (s *FailingSource) ListCatalogItems(ctx context.Context) ([]Product, error) {
	if s.Err == nil {
		return nil, errors.New("catalog source unavailable")
	}
	return nil, s.Err
}

// validateProducts checks that every product has a unique id
func validateProducts(products []Product) error {
	seen := make(map[string]int, len(products))
	for i, p := range products {
		if p.ID == "" {
			return errors.Errorf("product %d: id is required", i)
		}
		if prev, ok := seen[p.ID]; ok {
			return errors.Errorf("product %d: duplicate id %q (first seen at %d)", i, p.ID, prev)
		}
		seen[p.ID] = i
	}
	return nil
}
