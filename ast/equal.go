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

import "strings"

// FreeformContentKey is the attribute key that stores the text of a
// freeform block.
const FreeformContentKey = "content"

// IsWhitespaceFreeform returns true, if the block is a freeform block that
// contains only white space.
func IsWhitespaceFreeform(b *Block, freeformName string) bool {
	return b.Name == freeformName && strings.TrimSpace(b.Attrs.GetString(FreeformContentKey)) == ""
}

// EqualModuloWhitespace compares two block trees by name, attributes, and
// inner blocks. Freeform blocks that contain only white space are ignored on
// every level.
func EqualModuloWhitespace(a, b []*Block, freeformName string) bool {
	a = withoutWhitespace(a, freeformName)
	b = withoutWhitespace(b, freeformName)
	if len(a) != len(b) {
		return false
	}
	for i, ba := range a {
		bb := b[i]
		if ba.Name != bb.Name || !ba.Attrs.Equal(bb.Attrs) {
			return false
		}
		if !EqualModuloWhitespace(ba.InnerBlocks, bb.InnerBlocks, freeformName) {
			return false
		}
	}
	return true
}

func withoutWhitespace(bs []*Block, freeformName string) []*Block {
	result := make([]*Block, 0, len(bs))
	for _, b := range bs {
		if !IsWhitespaceFreeform(b, freeformName) {
			result = append(result, b)
		}
	}
	return result
}
