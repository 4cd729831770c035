//-----------------------------------------------------------------------------
// Copyright (c) 2024-present Detlef Stern
//
// This file is part of Blockmark.
//
// Blockmark is licensed under the latest version of the EUPL (European Union
// Public License). Please see file LICENSE.txt for your rights and obligations
// under this license.
//-----------------------------------------------------------------------------

package parser

import (
	"strings"

	"github.com/emirpasic/gods/stacks/arraystack"

	"blockmark.de/b/ast"
	"blockmark.de/b/parser/grammar"
	"blockmark.de/b/schema"
)

// Build creates the block tree from the scanned tokens. Attributes are not
// extracted, except the content of freeform blocks. Delimiters that cannot
// be paired are literal text.
func Build(src []byte, toks []grammar.Token, reg *schema.Registry, opts *Options) []*ast.Block {
	if reg == nil {
		reg = schema.NewRegistry()
	}
	b := builder{
		src:    src,
		toks:   toks,
		reg:    reg,
		paired: pairDelimiters(toks, opts.maxDepth()),
		stack:  arraystack.New(),
	}
	if lit := len(toks) - countPaired(b.paired); lit > 0 {
		opts.logger().Trace().Int("literal", int64(lit)).Msg("literal tokens")
	}
	return b.build()
}

// pairDelimiters returns which delimiter tokens form blocks. A closer pairs
// with the innermost open block, if the names are equal. Openers without a
// closer, and delimiters nested deeper than maxDepth, remain unpaired.
//
// Openers beyond maxDepth are kept on the stack as overflow entries, stored
// as -(index+1), so that their closers are consumed as literal text and do
// not pair with an ancestor of the same name.
func pairDelimiters(toks []grammar.Token, maxDepth int) []bool {
	paired := make([]bool, len(toks))
	open := arraystack.New()
	for i, tok := range toks {
		switch tok.Kind {
		case grammar.KindOpen:
			if open.Size() < maxDepth {
				open.Push(i)
			} else {
				open.Push(-(i + 1))
			}
		case grammar.KindClose:
			top, ok := open.Peek()
			if !ok {
				continue
			}
			j, overflow := top.(int), false
			if j < 0 {
				j, overflow = -j-1, true
			}
			if schema.QualifiedName(toks[j].Name) == schema.QualifiedName(tok.Name) {
				open.Pop()
				paired[i], paired[j] = !overflow, !overflow
			}
		case grammar.KindVoid:
			paired[i] = open.Size() < maxDepth
		}
	}
	return paired
}

func countPaired(paired []bool) int {
	result := 0
	for _, p := range paired {
		if p {
			result++
		}
	}
	return result
}

type builder struct {
	src    []byte
	toks   []grammar.Token
	reg    *schema.Registry
	paired []bool
	stack  *arraystack.Stack
	result []*ast.Block

	// Literal text at top level, not yet stored in a freeform block.
	freeStart, freeEnd int
}

type frame struct {
	block *ast.Block
	open  grammar.Token
	parts []string
	cur   strings.Builder
}

func (b *builder) build() []*ast.Block {
	b.freeStart, b.freeEnd = -1, -1
	for i, tok := range b.toks {
		if tok.Kind == grammar.KindText || !b.paired[i] {
			b.addLiteral(tok)
			continue
		}
		switch tok.Kind {
		case grammar.KindOpen:
			bn := b.newBlock(tok)
			b.stack.Push(&frame{block: bn, open: tok})
		case grammar.KindVoid:
			bn := b.newBlock(tok)
			bn.Source = string(b.src[tok.Start:tok.End])
			bn.Start, bn.End = tok.Start, tok.End
			bn.InnerContent = []string{""}
			b.addBlock(bn)
		case grammar.KindClose:
			top, _ := b.stack.Pop()
			f := top.(*frame)
			bn := f.block
			bn.InnerContent = append(f.parts, f.cur.String())
			bn.InnerHTML = strings.Join(bn.InnerContent, "")
			bn.OriginalContent = string(b.src[f.open.End:tok.Start])
			bn.Source = string(b.src[f.open.Start:tok.End])
			bn.Start, bn.End = f.open.Start, tok.End
			b.addBlock(bn)
		}
	}
	b.flushFreeform()
	return b.result
}

func (b *builder) newBlock(tok grammar.Token) *ast.Block {
	bn := ast.NewBlock(schema.QualifiedName(tok.Name), nil)
	bn.JSONAttrs = tok.Attrs
	if bn.JSONAttrs == nil {
		bn.JSONAttrs = map[string]any{}
	}
	return bn
}

func (b *builder) addLiteral(tok grammar.Token) {
	if top, ok := b.stack.Peek(); ok {
		top.(*frame).cur.Write(b.src[tok.Start:tok.End])
		return
	}
	if b.freeStart < 0 {
		b.freeStart = tok.Start
	}
	b.freeEnd = tok.End
}

func (b *builder) addBlock(bn *ast.Block) {
	if top, ok := b.stack.Peek(); ok {
		f := top.(*frame)
		f.parts = append(f.parts, f.cur.String())
		f.cur.Reset()
		f.block.InnerBlocks = append(f.block.InnerBlocks, bn)
		return
	}
	b.flushFreeform()
	b.result = append(b.result, bn)
}

func (b *builder) flushFreeform() {
	if b.freeStart < 0 {
		return
	}
	text := string(b.src[b.freeStart:b.freeEnd])
	bn := b.reg.CreateBlock(b.reg.FreeformName, map[string]any{ast.FreeformContentKey: text})
	bn.OriginalContent = text
	bn.InnerHTML = text
	bn.InnerContent = []string{text}
	bn.Source = text
	bn.Start, bn.End = b.freeStart, b.freeEnd
	bn.Validity = ast.Valid
	b.result = append(b.result, bn)
	b.freeStart, b.freeEnd = -1, -1
}
