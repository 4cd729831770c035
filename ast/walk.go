//-----------------------------------------------------------------------------
// Copyright (c) 2024-present Detlef Stern
//
// This file is part of Blockmark.
//
// Blockmark is licensed under the latest version of the EUPL (European Union
// Public License). Please see file LICENSE.txt for your rights and obligations
// under this license.
//-----------------------------------------------------------------------------

package ast

// WalkVisitor is a visitor for walking the block tree.
type WalkVisitor interface {
	Visit(b *Block) WalkVisitor
}

// Walk traverses the block tree in depth-first order.
func Walk(v WalkVisitor, b *Block) {
	if v = v.Visit(b); v == nil {
		return
	}
	b.WalkChildren(v)
	v.Visit(nil)
}

// WalkBlockSlice traverses a block slice.
func WalkBlockSlice(v WalkVisitor, bs []*Block) {
	for _, b := range bs {
		Walk(v, b)
	}
}

// PostOrder calls fn for every block after all of its inner blocks were
// visited. It uses an explicit stack, so that deep trees do not exhaust the
// call stack.
func PostOrder(bs []*Block, fn func(*Block)) {
	type frame struct {
		b    *Block
		next int
	}
	stack := make([]frame, 0, 16)
	for _, root := range bs {
		stack = append(stack, frame{b: root})
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next < len(top.b.InnerBlocks) {
				child := top.b.InnerBlocks[top.next]
				top.next++
				stack = append(stack, frame{b: child})
				continue
			}
			fn(top.b)
			stack = stack[:len(stack)-1]
		}
	}
}
