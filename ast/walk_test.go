//-----------------------------------------------------------------------------
// Copyright (c) 2024-present Detlef Stern
//
// This file is part of Blockmark.
//
// Blockmark is licensed under the latest version of the EUPL (European Union
// Public License). Please see file LICENSE.txt for your rights and obligations
// under this license.
//-----------------------------------------------------------------------------

package ast_test

import (
	"strings"
	"testing"

	"blockmark.de/b/ast"
)

func sampleTree() []*ast.Block {
	return []*ast.Block{
		ast.NewBlock("core/heading", nil),
		ast.NewBlock("core/group", nil,
			ast.NewBlock("core/paragraph", nil),
			ast.NewBlock("core/quote", nil, ast.NewBlock("core/paragraph", nil)),
		),
		ast.NewBlock("core/separator", nil),
	}
}

type nameVisitor struct{ sb strings.Builder }

func (v *nameVisitor) Visit(b *ast.Block) ast.WalkVisitor {
	if b == nil {
		v.sb.WriteByte(')')
		return nil
	}
	v.sb.WriteByte('(')
	v.sb.WriteString(b.Name)
	return v
}

func TestWalk(t *testing.T) {
	t.Parallel()
	var v nameVisitor
	ast.WalkBlockSlice(&v, sampleTree())
	exp := "(core/heading)(core/group(core/paragraph)(core/quote(core/paragraph)))(core/separator)"
	if got := v.sb.String(); got != exp {
		t.Errorf("\nExpected: %q\nGot:      %q", exp, got)
	}
}

func TestPostOrder(t *testing.T) {
	t.Parallel()
	var names []string
	ast.PostOrder(sampleTree(), func(b *ast.Block) { names = append(names, b.Name) })
	exp := "core/heading core/paragraph core/paragraph core/quote core/group core/separator"
	if got := strings.Join(names, " "); got != exp {
		t.Errorf("\nExpected: %q\nGot:      %q", exp, got)
	}
}

func TestEqualModuloWhitespace(t *testing.T) {
	t.Parallel()
	ff := func(s string) *ast.Block {
		return ast.NewBlock("core/freeform", ast.NewAttributes().Set(ast.FreeformContentKey, s))
	}
	a := sampleTree()
	b := sampleTree()
	b = append([]*ast.Block{ff("\n\n")}, b...)
	b[2].InnerBlocks = append(b[2].InnerBlocks, ff(" "))
	if !ast.EqualModuloWhitespace(a, b, "core/freeform") {
		t.Error("white space freeform blocks must be ignored")
	}
	b = append(b, ff("text"))
	if ast.EqualModuloWhitespace(a, b, "core/freeform") {
		t.Error("freeform blocks with text must be compared")
	}
}

func BenchmarkWalk(b *testing.B) {
	root := sampleTree()
	v := benchVisitor{}
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		ast.WalkBlockSlice(&v, root)
	}
}

type benchVisitor struct{}

func (bv *benchVisitor) Visit(*ast.Block) ast.WalkVisitor { return bv }
