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

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/walteh/catalogrc/pkg/registry"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files.
//
//	product "p1" {
//	  name  = "Classic Canvas Tote"
//	  price = 24
//	}
type HCLParser struct{}

func (p *HCLParser) CanParse(filename string) bool {
	return registry.HasExt(filename, ".hcl")
}

func (p *HCLParser) Parse(ctx context.Context, data []byte) ([]Product, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "catalog.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	type hclProduct struct {
		ID          string  `hcl:"id,label"`
		Name        string  `hcl:"name"`
		Description string  `hcl:"description,optional"`
		Price       float64 `hcl:"price"`
		Category    string  `hcl:"category,optional"`
		ImageURL    string  `hcl:"image_url,optional"`
	}

	var doc struct {
		Products []hclProduct `hcl:"product,block"`
	}
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &doc)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	products := make([]Product, 0, len(doc.Products))
	for _, hp := range doc.Products {
		products = append(products, Product{
			ID:          hp.ID,
			Name:        hp.Name,
			Description: hp.Description,
			Price:       hp.Price,
			Category:    hp.Category,
			ImageURL:    hp.ImageURL,
		})
	}

	if err := validateProducts(products); err != nil {
		return nil, errors.Errorf("validating products: %w", err)
	}
	return products, nil
}
