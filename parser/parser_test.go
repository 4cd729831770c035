//-----------------------------------------------------------------------------
// Copyright (c) 2024-present Detlef Stern
//
// This file is part of Blockmark.
//
// Blockmark is licensed under the latest version of the EUPL (European Union
// Public License). Please see file LICENSE.txt for your rights and obligations
// under this license.
//-----------------------------------------------------------------------------

package parser_test

import (
	"fmt"
	"strings"
	"testing"

	"blockmark.de/b/ast"
	"blockmark.de/b/blocklib"
	"blockmark.de/b/encoder"
	"blockmark.de/b/encoder/blockenc"
	"blockmark.de/b/parser"
	"blockmark.de/b/schema"
)

type TestCase struct{ source, want string }
type TestCases []TestCase

// treeString returns a compact form of the tree: freeform blocks as quoted
// text, other blocks as (name inner...), opaque blocks prefixed with "!",
// and invalid blocks suffixed with "?".
func treeString(reg *schema.Registry, bs []*ast.Block) string {
	var sb strings.Builder
	writeTree(&sb, reg, bs)
	return sb.String()
}

func writeTree(sb *strings.Builder, reg *schema.Registry, bs []*ast.Block) {
	for i, b := range bs {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if reg.IsFreeform(b.Name) {
			fmt.Fprintf(sb, "%q", b.Attrs.GetString(ast.FreeformContentKey))
			continue
		}
		sb.WriteByte('(')
		if b.Opaque {
			sb.WriteByte('!')
		}
		sb.WriteString(schema.DelimiterName(b.Name))
		if b.Validity == ast.Invalid {
			sb.WriteByte('?')
		}
		if len(b.InnerBlocks) > 0 {
			sb.WriteByte(' ')
			writeTree(sb, reg, b.InnerBlocks)
		}
		sb.WriteByte(')')
	}
}

func checkTcs(t *testing.T, reg *schema.Registry, opts *parser.Options, tcs TestCases) {
	t.Helper()
	for tcn, tc := range tcs {
		t.Run(tc.source, func(st *testing.T) {
			st.Helper()
			bs := parser.Parse([]byte(tc.source), reg, opts)
			if got := treeString(reg, bs); got != tc.want {
				st.Errorf("TC=%02d,\nsrc=%q\nexp=%q\ngot=%q", tcn, tc.source, tc.want, got)
			}
			checkCoverage(st, tc.source, bs)
		})
	}
}

// checkCoverage verifies that the top-level blocks cover the source.
func checkCoverage(t *testing.T, src string, bs []*ast.Block) {
	t.Helper()
	var sb strings.Builder
	pos := 0
	for _, b := range bs {
		if b.Start != pos {
			t.Errorf("block %q starts at %d, expected %d", b.Name, b.Start, pos)
		}
		pos = b.End
		sb.WriteString(b.Source)
	}
	if got := sb.String(); got != src {
		t.Errorf("sources do not cover the input:\nexp=%q\ngot=%q", src, got)
	}
}

const (
	para1 = `<!-- wp:paragraph --><p>One</p><!-- /wp:paragraph -->`
	para2 = `<!-- wp:paragraph --><p>Two</p><!-- /wp:paragraph -->`
	sep   = `<!-- wp:separator --><hr class="wp-block-separator has-alpha-channel-opacity"/><!-- /wp:separator -->`
)

func TestEmpty(t *testing.T) {
	t.Parallel()
	checkTcs(t, blocklib.NewRegistry(), nil, TestCases{
		{"", ""},
		{"abc", `"abc"`},
		{"\n\n", `"\n\n"`},
	})
}

func TestBlocks(t *testing.T) {
	t.Parallel()
	checkTcs(t, blocklib.NewRegistry(), nil, TestCases{
		{para1, "(paragraph)"},
		{para1 + "\n\n" + para2, `(paragraph) "\n\n" (paragraph)`},
		{"x" + para1 + "y", `"x" (paragraph) "y"`},
		{sep, "(separator)"},
		{"<!-- wp:separator /-->", "(separator?)"},
		{"<!-- wp:group -->" + `<div class="wp-block-group">` + para1 + "\n" + para2 + "</div><!-- /wp:group -->",
			"(group (paragraph) (paragraph))"},
		{`<!-- wp:core/paragraph --><p>One</p><!-- /wp:paragraph -->`, "(paragraph)"},
		{`<!-- wp:paragraph --><p class="odd">One</p><!-- /wp:paragraph -->`, "(paragraph?)"},
	})
}

func TestLiteralDelimiters(t *testing.T) {
	t.Parallel()
	checkTcs(t, blocklib.NewRegistry(), nil, TestCases{
		// Unclosed opener.
		{"a<!-- wp:group -->b", `"a<!-- wp:group -->b"`},
		{"<!-- wp:group -->" + para1, `"<!-- wp:group -->" (paragraph)`},
		// Unmatched closer.
		{"<!-- /wp:paragraph -->" + para1, `"<!-- /wp:paragraph -->" (paragraph)`},
		// Closer with wrong name stays inside the block.
		{`<!-- wp:group --><div class="wp-block-group"><!-- /wp:quote --></div><!-- /wp:group -->`, "(group?)"},
		// Malformed JSON.
		{`<!-- wp:paragraph {"a": } --><p>x</p><!-- /wp:paragraph -->`,
			`"<!-- wp:paragraph {\"a\": } --><p>x</p><!-- /wp:paragraph -->"`},
		{`<!-- wp:paragraph ["a"] --><p>x</p><!-- /wp:paragraph -->` + para1,
			`"<!-- wp:paragraph [\"a\"] --><p>x</p><!-- /wp:paragraph -->" (paragraph)`},
		// Plain comments.
		{"<!-- just a comment -->", `"<!-- just a comment -->"`},
		{"<!-- wp:Paragraph -->x<!-- /wp:Paragraph -->", `"<!-- wp:Paragraph -->x<!-- /wp:Paragraph -->"`},
	})
}

func TestUnknownBlocks(t *testing.T) {
	t.Parallel()
	src := `<!-- wp:acme/widget {"x":1} --><div>w</div><!-- /wp:acme/widget -->`
	checkTcs(t, blocklib.NewRegistry(), nil, TestCases{{src, "(missing)"}})

	reg := schema.NewRegistry()
	checkTcs(t, reg, nil, TestCases{{src, "(!acme/widget)"}})
}

func TestMaxDepth(t *testing.T) {
	t.Parallel()
	group := func(inner string) string {
		return `<!-- wp:group --><div class="wp-block-group">` + inner + `</div><!-- /wp:group -->`
	}
	src := group(group(group(sep)))
	checkTcs(t, blocklib.NewRegistry(), nil, TestCases{{src, "(group (group (group (separator))))"}})
	checkTcs(t, blocklib.NewRegistry(), &parser.Options{MaxDepth: 2}, TestCases{{src, "(group (group?))"}})

	bs := parser.Parse([]byte(src), blocklib.NewRegistry(), &parser.Options{MaxDepth: 2})
	if len(bs) != 1 {
		t.Fatalf("expected one top-level block, got %d", len(bs))
	}
	if outer := bs[0]; outer.Start != 0 || outer.End != len(src) {
		t.Errorf("outer group must span the whole source, got %d..%d", outer.Start, outer.End)
	}
	inner := bs[0].InnerBlocks[0]
	if exp := group(sep); !strings.Contains(inner.OriginalContent, exp) {
		t.Errorf("deepest group must be literal text inside its parent, got %q", inner.OriginalContent)
	}
}

func TestAttributes(t *testing.T) {
	t.Parallel()
	reg := blocklib.NewRegistry()
	src := `<!-- wp:heading {"level":3} --><h3 class="wp-block-heading" id="intro">Intro <em>now</em></h3><!-- /wp:heading -->`
	bs := parser.Parse([]byte(src), reg, nil)
	if len(bs) != 1 {
		t.Fatalf("expected one block, got %d", len(bs))
	}
	b := bs[0]
	if b.Validity != ast.Valid {
		t.Errorf("heading invalid: %v", b.Issues)
	}
	if got := b.Attrs.GetString("content"); got != "Intro <em>now</em>" {
		t.Errorf("content: %q", got)
	}
	if got, _ := b.Attrs.GetInt("level"); got != 3 {
		t.Errorf("level: %d", got)
	}
	if got := b.Attrs.GetString("anchor"); got != "intro" {
		t.Errorf("anchor: %q", got)
	}
	if got := strings.Join(b.Attrs.Keys(), ","); got != "content,level,anchor" {
		t.Errorf("attribute order: %q", got)
	}
}

func TestInnerContent(t *testing.T) {
	t.Parallel()
	reg := blocklib.NewRegistry()
	src := `<!-- wp:quote --><blockquote class="wp-block-quote">` + para1 + "\n" + para2 + `<cite>Me</cite></blockquote><!-- /wp:quote -->`
	bs := parser.Parse([]byte(src), reg, nil)
	if len(bs) != 1 {
		t.Fatalf("expected one block, got %d", len(bs))
	}
	q := bs[0]
	exp := []string{`<blockquote class="wp-block-quote">`, "\n", `<cite>Me</cite></blockquote>`}
	if len(q.InnerContent) != len(exp) {
		t.Fatalf("inner content: %q", q.InnerContent)
	}
	for i, s := range exp {
		if q.InnerContent[i] != s {
			t.Errorf("inner content %d: exp=%q, got=%q", i, s, q.InnerContent[i])
		}
	}
	if q.InnerHTML != strings.Join(exp, "") {
		t.Errorf("inner HTML: %q", q.InnerHTML)
	}
	if exp := src[len(`<!-- wp:quote -->`) : len(src)-len(`<!-- /wp:quote -->`)]; q.OriginalContent != exp {
		t.Errorf("original content: %q", q.OriginalContent)
	}
	if q.Validity != ast.Valid || q.Attrs.GetString("citation") != "Me" {
		t.Errorf("quote: %v %v %v", q.Validity, q.Issues, q.Attrs.Map())
	}
}

func TestSyntaxes(t *testing.T) {
	t.Parallel()
	if pi := parser.Get("unknown-syntax"); pi == nil || pi.Name != parser.SyntaxBlock {
		t.Errorf("unexpected default parser: %v", pi)
	}
	found := false
	for _, syntax := range parser.GetSyntaxes() {
		found = found || syntax == parser.SyntaxBlock
	}
	if !found {
		t.Errorf("syntax %q not listed", parser.SyntaxBlock)
	}
	if parser.IsRaw(parser.SyntaxBlock) {
		t.Error("block syntax must not be raw")
	}
}

func serialize(reg *schema.Registry, bs []*ast.Block) string {
	return blockenc.Serialize(bs, &encoder.Environment{Registry: reg})
}
