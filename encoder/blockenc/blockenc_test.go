//-----------------------------------------------------------------------------
// Copyright (c) 2024-present Detlef Stern
//
// This file is part of Blockmark.
//
// Blockmark is licensed under the latest version of the EUPL (European Union
// Public License). Please see file LICENSE.txt for your rights and obligations
// under this license.
//-----------------------------------------------------------------------------

package blockenc_test

import (
	"bytes"
	"strings"
	"testing"

	"blockmark.de/b/ast"
	"blockmark.de/b/encoder"
	"blockmark.de/b/encoder/blockenc"
	"blockmark.de/b/schema"
)

func testRegistry() *schema.Registry {
	reg := schema.NewRegistry()
	reg.MustRegister(
		&schema.BlockType{
			Name: "core/freeform",
			Attributes: []schema.Attribute{
				{Name: "content", Type: schema.TypeString, Source: schema.FromRaw()},
			},
			Save: func(attrs *ast.Attributes, _ []*ast.Block) string { return attrs.GetString("content") },
		},
		&schema.BlockType{
			Name: "core/missing",
			Attributes: []schema.Attribute{
				{Name: schema.OriginalNameKey, Type: schema.TypeString, Source: schema.FromJSON()},
				{Name: schema.OriginalContentKey, Type: schema.TypeString, Source: schema.FromRaw()},
			},
			Save: func(attrs *ast.Attributes, _ []*ast.Block) string {
				return attrs.GetString(schema.OriginalContentKey)
			},
		},
		&schema.BlockType{
			Name: "core/para",
			Attributes: []schema.Attribute{
				{Name: "content", Type: schema.TypeString, Source: schema.FromHTML("p")},
				{Name: "align", Type: schema.TypeString, Default: "left", Source: schema.FromJSON()},
			},
			Save: func(attrs *ast.Attributes, _ []*ast.Block) string {
				return `<p class="has-` + attrs.GetString("align") + `">` + attrs.GetString("content") + "</p>"
			},
		},
		&schema.BlockType{
			Name: "core/box",
			Attributes: []schema.Attribute{
				{Name: "note", Type: schema.TypeString, Source: schema.FromJSON()},
			},
			Save: func(*ast.Attributes, []*ast.Block) string {
				return "<div>" + schema.InnerBlocksPlaceholder + "</div>"
			},
		},
		&schema.BlockType{
			Name: "core/rule",
			Save: func(*ast.Attributes, []*ast.Block) string { return "" },
		},
	)
	return reg
}

func para(content, align string) *ast.Block {
	attrs := ast.NewAttributes().Set("content", content).Set("align", align)
	return ast.NewBlock("core/para", attrs)
}

func freeform(content string) *ast.Block {
	return ast.NewBlock("core/freeform", ast.NewAttributes().Set("content", content))
}

func TestSerialize(t *testing.T) {
	t.Parallel()
	reg := testRegistry()
	env := &encoder.Environment{Registry: reg}

	invalid := para("new", "left")
	invalid.Validity = ast.Invalid
	invalid.OriginalContent = "<p>old</p>"

	opaque := ast.NewBlock("acme/gallery", nil)
	opaque.Opaque = true
	opaque.Source = `<!-- wp:acme/gallery {"n":1} --><ul></ul><!-- /wp:acme/gallery -->`

	missing := ast.NewBlock("core/missing", ast.NewAttributes().
		Set(schema.OriginalNameKey, "acme/x").
		Set(schema.OriginalContentKey, "<!-- wp:acme/x /-->"))

	testcases := []struct {
		name string
		bs   []*ast.Block
		exp  string
	}{
		{"empty", nil, ""},
		{"default-omitted", []*ast.Block{para("Hi", "left")},
			`<!-- wp:para --><p class="has-left">Hi</p><!-- /wp:para -->`},
		{"json", []*ast.Block{para("Hi", "right")},
			`<!-- wp:para {"align":"right"} --><p class="has-right">Hi</p><!-- /wp:para -->`},
		{"separator", []*ast.Block{para("A", "left"), para("B", "left")},
			"<!-- wp:para --><p class=\"has-left\">A</p><!-- /wp:para -->\n\n" +
				"<!-- wp:para --><p class=\"has-left\">B</p><!-- /wp:para -->"},
		{"freeform-no-separator", []*ast.Block{freeform("x"), para("A", "left"), freeform("\n")},
			"x<!-- wp:para --><p class=\"has-left\">A</p><!-- /wp:para -->\n"},
		{"self-closing", []*ast.Block{ast.NewBlock("core/rule", nil)}, "<!-- wp:rule /-->"},
		{"nested", []*ast.Block{ast.NewBlock("core/box", ast.NewAttributes().Set("note", "n"),
			ast.NewBlock("core/rule", nil), ast.NewBlock("core/rule", nil))},
			`<!-- wp:box {"note":"n"} --><div><!-- wp:rule /-->` + "\n\n" + `<!-- wp:rule /--></div><!-- /wp:box -->`},
		{"invalid", []*ast.Block{invalid},
			`<!-- wp:para --><p>old</p><!-- /wp:para -->`},
		{"opaque", []*ast.Block{opaque}, opaque.Source},
		{"missing", []*ast.Block{missing}, "<!-- wp:acme/x /-->"},
		{"unregistered", []*ast.Block{ast.NewBlock("acme/y", ast.NewAttributes().Set("k", 1))},
			`<!-- wp:acme/y {"k":1} /-->`},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			if got := blockenc.Serialize(tc.bs, env); got != tc.exp {
				t.Errorf("\nexp=%q\ngot=%q", tc.exp, got)
			}
		})
	}
}

func TestCustomSeparator(t *testing.T) {
	t.Parallel()
	env := &encoder.Environment{Registry: testRegistry(), Separator: "\n"}
	bs := []*ast.Block{ast.NewBlock("core/rule", nil), ast.NewBlock("core/rule", nil)}
	if got, exp := blockenc.Serialize(bs, env), "<!-- wp:rule /-->\n<!-- wp:rule /-->"; got != exp {
		t.Errorf("exp=%q, got=%q", exp, got)
	}
}

func TestEncodeAttributes(t *testing.T) {
	t.Parallel()
	testcases := []struct {
		name  string
		attrs *ast.Attributes
		exp   string
	}{
		{"nil", nil, "{}"},
		{"order", ast.NewAttributes().Set("z", 1).Set("a", true), `{"z":1,"a":true}`},
		{"hyphens", ast.NewAttributes().Set("a", "x--y"), "{\"a\":\"x\\u002d\\u002dy\"}"},
		{"comment-end", ast.NewAttributes().Set("a", "-->"), "{\"a\":\"\\u002d\\u002d\\u003e\"}"},
		{"three-hyphens", ast.NewAttributes().Set("a", "---"), "{\"a\":\"\\u002d\\u002d-\"}"},
		{"quote", ast.NewAttributes().Set("a", `say "hi"`), "{\"a\":\"say \\u0022hi\\u0022\"}"},
		{"backslash", ast.NewAttributes().Set("a", `a\b`), `{"a":"a\\b"}`},
		{"nested", ast.NewAttributes().Set("m", map[string]any{"b": "--", "a": 2}),
			"{\"m\":{\"a\":2,\"b\":\"\\u002d\\u002d\"}}"},
		{"numbers", ast.NewAttributes().Set("n", []any{-1, -2}), `{"n":[-1,-2]}`},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			got := blockenc.EncodeAttributes(tc.attrs)
			if got != tc.exp {
				t.Errorf("exp=%q, got=%q", tc.exp, got)
			}
			if strings.Contains(got, "--") {
				t.Errorf("%q contains a comment end", got)
			}
		})
	}
}

func TestWriteBlocks(t *testing.T) {
	t.Parallel()
	enc, err := encoder.Create(encoder.EncodingBlock, &encoder.Environment{Registry: testRegistry()})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	n, err := enc.WriteBlocks(&buf, []*ast.Block{ast.NewBlock("core/rule", nil)})
	if err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "<!-- wp:rule /-->" || n != len(got) {
		t.Errorf("got %q (%d bytes)", got, n)
	}
	if def := encoder.GetDefaultEncoding(); def != encoder.EncodingBlock {
		t.Errorf("default encoding is %q", def)
	}
}
