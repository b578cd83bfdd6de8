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
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// DefaultPattern matches every catalog file format under a directory
const DefaultPattern = "**/*.{yaml,yml,json,hcl}"

const defaultConcurrency = 4

// 📄 LoadFile reads and parses a single catalog file. The format is picked by
// extension through the parser registry.
func LoadFile(ctx context.Context, path string) ([]Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Errorf("loading %s: %w", path, err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("loading catalog file")

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading catalog file: %w", err)
	}

	products, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing %s: %w", path, err)
	}
	return products, nil
}

// 📄 FileSource reads the catalog from one file on every call
type FileSource struct {
	Path string
}

func (s *FileSource) ListCatalogItems(ctx context.Context) ([]Product, error) {
	return LoadFile(ctx, s.Path)
}

// 📁 DirSource merges every catalog file under Root that matches Pattern.
// Files are decoded concurrently and concatenated in sorted path order.
type DirSource struct {
	Root        string
	Pattern     string // doublestar pattern, DefaultPattern when empty
	Concurrency int    // max files decoded at once, 4 when zero
}

func (s *DirSource) ListCatalogItems(ctx context.Context) ([]Product, error) {
	pattern := s.Pattern
	if pattern == "" {
		pattern = DefaultPattern
	}
	limit := s.Concurrency
	if limit <= 0 {
		limit = defaultConcurrency
	}

	matches, err := doublestar.Glob(os.DirFS(s.Root), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, errors.Errorf("matching %q in %s: %w", pattern, s.Root, err)
	}
	if len(matches) == 0 {
		return nil, errors.Errorf("no catalog files match %q in %s", pattern, s.Root)
	}
	sort.Strings(matches)

	zerolog.Ctx(ctx).Debug().Str("root", s.Root).Strs("files", matches).Msg("loading catalog directory")

	results := make([][]Product, len(matches))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, match := range matches {
		g.Go(func() error {
			products, err := LoadFile(gctx, filepath.Join(s.Root, filepath.FromSlash(match)))
			if err != nil {
				return err
			}
			results[i] = products
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := []Product{}
	for _, products := range results {
		merged = append(merged, products...)
	}
	if err := validateProducts(merged); err != nil {
		return nil, errors.Errorf("merging catalog files: %w", err)
	}
	return merged, nil
}
