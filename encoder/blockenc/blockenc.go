//-----------------------------------------------------------------------------
// Copyright (c) 2024-present Detlef Stern
//
// This file is part of Blockmark.
//
// Blockmark is licensed under the latest version of the EUPL (European Union
// Public License). Please see file LICENSE.txt for your rights and obligations
// under this license.
//-----------------------------------------------------------------------------

// Package blockenc serializes a block tree into a delimited document.
package blockenc

import (
	"io"
	"strings"

	"blockmark.de/b/ast"
	"blockmark.de/b/encoder"
	"blockmark.de/b/schema"
)

func init() {
	encoder.Register(encoder.EncodingBlock, encoder.Info{
		Create:  func(env *encoder.Environment) encoder.Encoder { return Create(env) },
		Default: true,
	})
}

// Encoder writes blocks as a delimited document.
type Encoder struct {
	reg *schema.Registry
	sep string
}

// Create a new encoder.
func Create(env *encoder.Environment) *Encoder {
	return &Encoder{reg: env.GetRegistry(), sep: env.GetSeparator()}
}

// WriteBlocks writes the blocks to the writer.
func (enc *Encoder) WriteBlocks(w io.Writer, bs []*ast.Block) (int, error) {
	ew := encoder.NewEncWriter(w)
	ew.WriteString(enc.Serialize(bs))
	return ew.Flush()
}

// Serialize returns the delimited document of the blocks.
func Serialize(bs []*ast.Block, env *encoder.Environment) string {
	return Create(env).Serialize(bs)
}

// Serialize returns the delimited document of the blocks.
func (enc *Encoder) Serialize(bs []*ast.Block) string {
	var sb strings.Builder
	enc.writeBlocks(&sb, bs)
	return sb.String()
}

func (enc *Encoder) writeBlocks(sb *strings.Builder, bs []*ast.Block) {
	for i, b := range bs {
		if i > 0 && !enc.reg.IsFreeform(bs[i-1].Name) && !enc.reg.IsFreeform(b.Name) {
			sb.WriteString(enc.sep)
		}
		enc.writeBlock(sb, b)
	}
}

func (enc *Encoder) writeBlock(sb *strings.Builder, b *ast.Block) {
	reg := enc.reg
	switch {
	case reg.IsFreeform(b.Name):
		if content, isString := attrString(b.Attrs, ast.FreeformContentKey); isString {
			sb.WriteString(content)
		} else {
			sb.WriteString(b.Source)
		}
		return
	case reg.IsUnregistered(b.Name):
		if content, isString := attrString(b.Attrs, schema.OriginalContentKey); isString {
			sb.WriteString(content)
		} else {
			sb.WriteString(b.Source)
		}
		return
	}

	bt, found := reg.Lookup(b.Name)
	if b.Opaque || (!found && b.Source != "") {
		sb.WriteString(b.Source)
		return
	}
	if !found {
		writeDelimited(sb, b.Name, b.Attrs, enc.innerBlocks(b.InnerBlocks))
		return
	}

	var content string
	if b.Validity == ast.Invalid {
		content = b.OriginalContent
	} else {
		content = bt.Save(b.Attrs, b.InnerBlocks)
		if strings.Contains(content, schema.InnerBlocksPlaceholder) {
			content = strings.Replace(
				content, schema.InnerBlocksPlaceholder, enc.innerBlocks(b.InnerBlocks), 1)
		}
	}
	writeDelimited(sb, b.Name, bt.Persisted(b.Attrs), content)
}

func (enc *Encoder) innerBlocks(bs []*ast.Block) string {
	var sb strings.Builder
	enc.writeBlocks(&sb, bs)
	return sb.String()
}

func attrString(attrs *ast.Attributes, key string) (string, bool) {
	if v, found := attrs.Get(key); found {
		s, isString := v.(string)
		return s, isString
	}
	return "", false
}

// writeDelimited writes a block with its delimiters. Blocks without content
// get a self-closing delimiter.
func writeDelimited(sb *strings.Builder, name string, attrs *ast.Attributes, content string) {
	name = schema.DelimiterName(name)
	sb.WriteString("<!-- wp:")
	sb.WriteString(name)
	sb.WriteByte(' ')
	if !attrs.IsEmpty() {
		sb.WriteString(EncodeAttributes(attrs))
		sb.WriteByte(' ')
	}
	if content == "" {
		sb.WriteString("/-->")
		return
	}
	sb.WriteString("-->")
	sb.WriteString(content)
	sb.WriteString("<!-- /wp:")
	sb.WriteString(name)
	sb.WriteString(" -->")
}
