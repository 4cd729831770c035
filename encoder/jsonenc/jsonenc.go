//-----------------------------------------------------------------------------
// Copyright (c) 2024-present Detlef Stern
//
// This file is part of Blockmark.
//
// Blockmark is licensed under the latest version of the EUPL (European Union
// Public License). Please see file LICENSE.txt for your rights and obligations
// under this license.
//-----------------------------------------------------------------------------

// Package jsonenc encodes the block tree as JSON.
package jsonenc

import (
	"encoding/json"
	"io"

	"blockmark.de/b/ast"
	"blockmark.de/b/encoder"
)

func init() {
	encoder.Register(encoder.EncodingJSON, encoder.Info{
		Create: func(env *encoder.Environment) encoder.Encoder { return Create(env) },
	})
}

// Create a JSON encoder.
func Create(env *encoder.Environment) *Encoder {
	enc := &Encoder{}
	if env != nil {
		enc.indent = env.Indent
	}
	return enc
}

type Encoder struct {
	indent string
}

// Block is the JSON form of a block.
type Block struct {
	Name        string          `json:"name"`
	IsValid     bool            `json:"isValid"`
	Validity    string          `json:"validity"`
	Migrated    bool            `json:"migrated,omitempty"`
	Opaque      bool            `json:"opaque,omitempty"`
	Attributes  *ast.Attributes `json:"attributes"`
	InnerBlocks []Block         `json:"innerBlocks"`
	Issues      []string        `json:"issues,omitempty"`
}

// Transform converts blocks into their JSON form.
func Transform(bs []*ast.Block) []Block {
	result := make([]Block, len(bs))
	for i, b := range bs {
		attrs := b.Attrs
		if attrs == nil {
			attrs = ast.NewAttributes()
		}
		result[i] = Block{
			Name:        b.Name,
			IsValid:     b.IsValid(),
			Validity:    b.Validity.String(),
			Migrated:    b.Migrated,
			Opaque:      b.Opaque,
			Attributes:  attrs,
			InnerBlocks: Transform(b.InnerBlocks),
			Issues:      b.Issues,
		}
	}
	return result
}

// WriteBlocks writes the blocks as a JSON array.
func (enc *Encoder) WriteBlocks(w io.Writer, bs []*ast.Block) (int, error) {
	ew := encoder.NewEncWriter(w)
	je := json.NewEncoder(&ew)
	je.SetEscapeHTML(false)
	if enc.indent != "" {
		je.SetIndent("", enc.indent)
	}
	if err := je.Encode(Transform(bs)); err != nil {
		return 0, err
	}
	return ew.Flush()
}
