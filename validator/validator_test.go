//-----------------------------------------------------------------------------
// Copyright (c) 2024-present Detlef Stern
//
// This file is part of Blockmark.
//
// Blockmark is licensed under the latest version of the EUPL (European Union
// Public License). Please see file LICENSE.txt for your rights and obligations
// under this license.
//-----------------------------------------------------------------------------

package validator_test

import (
	"strings"
	"testing"

	"blockmark.de/b/ast"
	"blockmark.de/b/extractor"
	"blockmark.de/b/schema"
	"blockmark.de/b/validator"
)

var paraAttrs = []schema.Attribute{
	{Name: "content", Type: schema.TypeString, Default: "", Source: schema.FromHTML("p")},
	{Name: "align", Type: schema.TypeString, Source: schema.FromJSON()},
}

func saveParagraph(attrs *ast.Attributes, _ []*ast.Block) string {
	var sb strings.Builder
	sb.WriteString("<p")
	if align := attrs.GetString("align"); align != "" {
		sb.WriteString(` class="has-text-align-` + align + `"`)
	}
	sb.WriteString(">" + attrs.GetString("content") + "</p>")
	return sb.String()
}

func saveStyledParagraph(attrs *ast.Attributes, _ []*ast.Block) string {
	var sb strings.Builder
	sb.WriteString("<p")
	if align := attrs.GetString("align"); align != "" {
		sb.WriteString(` style="text-align:` + align + `"`)
	}
	sb.WriteString(">" + attrs.GetString("content") + "</p>")
	return sb.String()
}

func saveQuote(attrs *ast.Attributes, _ []*ast.Block) string {
	result := "<blockquote>" + schema.InnerBlocksPlaceholder
	if cite := attrs.GetString("citation"); cite != "" {
		result += "<cite>" + cite + "</cite>"
	}
	return result + "</blockquote>"
}

func saveOldQuote(attrs *ast.Attributes, _ []*ast.Block) string {
	var sb strings.Builder
	sb.WriteString("<blockquote>")
	if v, found := attrs.Get("value"); found {
		for _, item := range v.([]any) {
			sb.WriteString("<p>" + item.(map[string]any)["content"].(string) + "</p>")
		}
	}
	if cite := attrs.GetString("citation"); cite != "" {
		sb.WriteString("<cite>" + cite + "</cite>")
	}
	sb.WriteString("</blockquote>")
	return sb.String()
}

func testRegistry() *schema.Registry {
	reg := schema.NewRegistry()
	reg.MustRegister(
		&schema.BlockType{
			Name:       "core/paragraph",
			Attributes: paraAttrs,
			Save:       saveParagraph,
			Deprecated: []schema.Deprecation{{Save: saveStyledParagraph}},
		},
		&schema.BlockType{
			Name: "core/quote",
			Attributes: []schema.Attribute{
				{Name: "citation", Type: schema.TypeString, Source: schema.FromHTML("cite")},
			},
			Save: saveQuote,
			Deprecated: []schema.Deprecation{{
				Attributes: []schema.Attribute{
					{Name: "value", Type: schema.TypeArray, Source: schema.FromQuery("blockquote > p",
						schema.Attribute{Name: "content", Type: schema.TypeString, Source: schema.FromHTML("")})},
					{Name: "citation", Type: schema.TypeString, Source: schema.FromHTML("cite")},
				},
				Save: saveOldQuote,
				Migrate: func(attrs *ast.Attributes, inner []*ast.Block) (*ast.Attributes, []*ast.Block) {
					v, _ := attrs.Get("value")
					items, _ := v.([]any)
					for _, item := range items {
						content := item.(map[string]any)["content"]
						inner = append(inner, ast.NewBlock("core/paragraph",
							ast.NewAttributes().Set("content", content)))
					}
					attrs.Remove("value")
					return attrs, inner
				},
			}},
		},
		&schema.BlockType{
			Name: "core/counter",
			Attributes: []schema.Attribute{
				{Name: "count", Type: schema.TypeInteger, Default: int64(0), Source: schema.FromJSON()},
			},
			Save: func(*ast.Attributes, []*ast.Block) string { return "<hr/>" },
			Deprecated: []schema.Deprecation{{
				Save: func(*ast.Attributes, []*ast.Block) string { return "<hr/>" },
				IsEligible: func(attrs *ast.Attributes, _ []*ast.Block) bool {
					n, _ := attrs.GetInt("count")
					return n < 0
				},
				Migrate: func(attrs *ast.Attributes, inner []*ast.Block) (*ast.Attributes, []*ast.Block) {
					n, _ := attrs.GetInt("count")
					return attrs.Set("count", -n), inner
				},
			}},
		},
	)
	return reg
}

func parsedBlock(reg *schema.Registry, name string, json map[string]any, innerHTML string, inner ...*ast.Block) *ast.Block {
	bt, _ := reg.Lookup(name)
	b := ast.NewBlock(name, extractor.Extract(bt.Attributes, json, innerHTML, nil), inner...)
	b.JSONAttrs = json
	b.InnerHTML = innerHTML
	b.OriginalContent = innerHTML
	return b
}

func TestValidate(t *testing.T) {
	t.Parallel()
	reg := testRegistry()
	testcases := []struct {
		name      string
		json      map[string]any
		innerHTML string
		validity  ast.Validity
		migrated  bool
		align     string
	}{
		{"current", nil, "<p>Hi</p>", ast.Valid, false, ""},
		{"current-align", map[string]any{"align": "right"}, `<p class="has-text-align-right">Hi</p>`, ast.Valid, false, "right"},
		{"whitespace", nil, "\n<p>Hi</p>\n", ast.Valid, false, ""},
		{"deprecated", map[string]any{"align": "right"}, `<p style="text-align:right">Hi</p>`, ast.Valid, true, "right"},
		{"invalid", nil, `<p class="custom">Hi</p>`, ast.Invalid, false, ""},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			b := parsedBlock(reg, "core/paragraph", tc.json, tc.innerHTML)
			validator.Validate(reg, b, nil)
			if b.Validity != tc.validity {
				t.Errorf("validity: expected %v, got %v (%v)", tc.validity, b.Validity, b.Issues)
			}
			if b.Migrated != tc.migrated {
				t.Errorf("migrated: expected %v, got %v", tc.migrated, b.Migrated)
			}
			if got := b.Attrs.GetString("content"); got != "Hi" {
				t.Errorf("content: expected %q, got %q", "Hi", got)
			}
			if got := b.Attrs.GetString("align"); got != tc.align {
				t.Errorf("align: expected %q, got %q", tc.align, got)
			}
			if tc.validity == ast.Invalid {
				if b.Candidate != "<p>Hi</p>" {
					t.Errorf("candidate: %q", b.Candidate)
				}
				if len(b.Issues) == 0 {
					t.Error("no issues for invalid block")
				}
				if b.OriginalContent != tc.innerHTML {
					t.Errorf("original content changed: %q", b.OriginalContent)
				}
			}
		})
	}
}

func TestMigrateToInnerBlocks(t *testing.T) {
	t.Parallel()
	reg := testRegistry()
	b := parsedBlock(reg, "core/quote", nil, "<blockquote><p>One</p><p>Two</p><cite>Me</cite></blockquote>")
	validator.Validate(reg, b, nil)
	if b.Validity != ast.Valid || !b.Migrated {
		t.Fatalf("expected migrated valid block, got %v/%v %v", b.Validity, b.Migrated, b.Issues)
	}
	if _, found := b.Attrs.Get("value"); found {
		t.Error("attribute of deprecated version not removed")
	}
	if got := b.Attrs.GetString("citation"); got != "Me" {
		t.Errorf("citation: %q", got)
	}
	if len(b.InnerBlocks) != 2 {
		t.Fatalf("expected two inner blocks, got %d", len(b.InnerBlocks))
	}
	for i, exp := range []string{"One", "Two"} {
		ib := b.InnerBlocks[i]
		if ib.Name != "core/paragraph" || ib.Attrs.GetString("content") != exp {
			t.Errorf("inner block %d: %s %v", i, ib.Name, ib.Attrs.Map())
		}
	}
}

func TestIsEligible(t *testing.T) {
	t.Parallel()
	reg := testRegistry()

	b := parsedBlock(reg, "core/counter", map[string]any{"count": float64(-3)}, "<hr/>")
	validator.Validate(reg, b, nil)
	if b.Validity != ast.Valid || !b.Migrated {
		t.Fatalf("eligible block not migrated: %v/%v", b.Validity, b.Migrated)
	}
	if n, _ := b.Attrs.GetInt("count"); n != 3 {
		t.Errorf("count: expected 3, got %d", n)
	}

	b = parsedBlock(reg, "core/counter", map[string]any{"count": float64(3)}, "<hr/>")
	validator.Validate(reg, b, nil)
	if b.Validity != ast.Valid || b.Migrated {
		t.Errorf("valid block migrated: %v/%v", b.Validity, b.Migrated)
	}
}

func TestValidateBlocks(t *testing.T) {
	t.Parallel()
	reg := testRegistry()
	inner := parsedBlock(reg, "core/paragraph", nil, "<div>wrong</div>")
	outer := parsedBlock(reg, "core/quote", nil, "<blockquote></blockquote>", inner)
	unknown := ast.NewBlock("acme/thing", nil)
	freeform := ast.NewBlock("core/freeform", ast.NewAttributes().Set("content", "x"))
	validator.ValidateBlocks(reg, []*ast.Block{outer, unknown, freeform}, nil)
	if inner.Validity != ast.Invalid {
		t.Errorf("inner block: %v", inner.Validity)
	}
	if outer.Validity != ast.Valid {
		t.Errorf("outer block: %v %v", outer.Validity, outer.Issues)
	}
	if unknown.Validity != ast.Valid || freeform.Validity != ast.Valid {
		t.Errorf("fallback blocks: %v, %v", unknown.Validity, freeform.Validity)
	}
	if ok, _ := validator.IsValid(mustLookup(t, reg, "core/paragraph"), inner); ok {
		t.Error("IsValid returned true for invalid block")
	}
}

func mustLookup(t *testing.T, reg *schema.Registry, name string) *schema.BlockType {
	t.Helper()
	bt, found := reg.Lookup(name)
	if !found {
		t.Fatalf("block type %q not found", name)
	}
	return bt
}
