//-----------------------------------------------------------------------------
// Copyright (c) 2024-present Detlef Stern
//
// This file is part of Blockmark.
//
// Blockmark is licensed under the latest version of the EUPL (European Union
// Public License). Please see file LICENSE.txt for your rights and obligations
// under this license.
//-----------------------------------------------------------------------------

// Package textenc encodes the block tree into its text.
package textenc

import (
	"io"

	"blockmark.de/b/ast"
	"blockmark.de/b/dom"
	"blockmark.de/b/encoder"
	"blockmark.de/b/schema"
	"blockmark.de/b/strfun"
)

func init() {
	encoder.Register(encoder.EncodingText, encoder.Info{
		Create: func(env *encoder.Environment) encoder.Encoder { return Create(env) },
	})
}

// Create a text encoder.
func Create(env *encoder.Environment) *Encoder {
	return &Encoder{reg: env.GetRegistry()}
}

type Encoder struct {
	reg *schema.Registry
}

// WriteBlocks writes the text of all blocks, one line per block.
func (te *Encoder) WriteBlocks(w io.Writer, bs []*ast.Block) (int, error) {
	v := visitor{b: encoder.NewEncWriter(w), reg: te.reg}
	ast.WalkBlockSlice(&v, bs)
	return v.b.Flush()
}

type visitor struct {
	b   encoder.EncWriter
	reg *schema.Registry
}

func (v *visitor) Visit(b *ast.Block) ast.WalkVisitor {
	if b == nil {
		return nil
	}
	if text := strfun.CollapseSpace(v.text(b)); text != "" {
		v.b.WriteLine(text)
	}
	return v
}

func (v *visitor) text(b *ast.Block) string {
	if v.reg.IsFreeform(b.Name) {
		if content := b.Attrs.GetString(ast.FreeformContentKey); content != "" {
			return dom.Text(dom.Parse(content))
		}
	}
	if v.reg.IsUnregistered(b.Name) || b.Opaque {
		return ""
	}
	markup := b.InnerHTML
	if markup == "" {
		if bt, found := v.reg.Lookup(b.Name); found {
			markup = schema.SaveContent(bt.Save, b.Attrs, b.InnerBlocks)
		}
	}
	return dom.Text(dom.Parse(markup))
}
