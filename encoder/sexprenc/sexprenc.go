//-----------------------------------------------------------------------------
// Copyright (c) 2024-present Detlef Stern
//
// This file is part of Blockmark.
//
// Blockmark is licensed under the latest version of the EUPL (European Union
// Public License). Please see file LICENSE.txt for your rights and obligations
// under this license.
//-----------------------------------------------------------------------------

// Package sexprenc encodes the block tree into a s-expr.
package sexprenc

import (
	"io"

	"blockmark.de/b/ast"
	"blockmark.de/b/encoder"
)

func init() {
	encoder.Register(encoder.EncodingSexpr, encoder.Info{
		Create: func(*encoder.Environment) encoder.Encoder { return Create() },
	})
}

// Create a S-expr encoder
func Create() *Encoder { return &Encoder{trans: NewTransformer()} }

type Encoder struct {
	trans *Transformer
}

// WriteBlocks writes a block slice to the writer
func (enc *Encoder) WriteBlocks(w io.Writer, bs []*ast.Block) (int, error) {
	return enc.trans.GetSexpr(bs).Print(w)
}
