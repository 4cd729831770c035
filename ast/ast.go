//-----------------------------------------------------------------------------
// Copyright (c) 2024-present Detlef Stern
//
// This file is part of Blockmark.
//
// Blockmark is licensed under the latest version of the EUPL (European Union
// Public License). Please see file LICENSE.txt for your rights and obligations
// under this license.
//-----------------------------------------------------------------------------

// Package ast provides the tree of typed blocks.
package ast

// Validity states whether the content of a block matches the output of the
// save function of its block type.
type Validity uint8

// Constants for Validity.
const (
	Unchecked Validity = iota // Not checked, e.g. block created by program
	Valid                     // Content matches the save output
	Invalid                   // Content does not match, even after migration
)

func (v Validity) String() string {
	switch v {
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	}
	return "unchecked"
}

// Block is a typed node of the document tree.
type Block struct {
	Name        string      // Fully qualified block name, e.g. "core/paragraph"
	Attrs       *Attributes // Extracted attribute values, in schema order
	InnerBlocks []*Block    // Nested blocks, in document order

	// JSONAttrs stores the attribute object of the opening delimiter.
	JSONAttrs map[string]any

	// Verbatim text, as found in the document.
	OriginalContent string   // Everything between the delimiters
	InnerHTML       string   // OriginalContent without the inner blocks
	InnerContent    []string // InnerHTML, split at the positions of the inner blocks
	Source          string   // OriginalContent including the delimiters
	Start, End      int      // Byte offsets of Source in the document

	Validity  Validity
	Migrated  bool     // Block became valid by a deprecated block version
	Opaque    bool     // Block type is unknown, Source must be retained
	Candidate string   // Save output, if block is invalid
	Issues    []string // Reasons for invalidity
}

// BlockSlice is a sequence of blocks.
type BlockSlice []*Block

// NewBlock creates a new block with the given name and attributes.
func NewBlock(name string, attrs *Attributes, inner ...*Block) *Block {
	if attrs == nil {
		attrs = NewAttributes()
	}
	return &Block{
		Name:        name,
		Attrs:       attrs,
		InnerBlocks: inner,
	}
}

// IsValid returns true, if the block is not known as invalid.
func (b *Block) IsValid() bool { return b.Validity != Invalid }

// Clone returns a deep copy of the block structure. Attribute values are
// copied too.
func (b *Block) Clone() *Block {
	if b == nil {
		return nil
	}
	result := *b
	result.Attrs = b.Attrs.Clone()
	result.InnerBlocks = CloneBlocks(b.InnerBlocks)
	if b.InnerContent != nil {
		result.InnerContent = append([]string(nil), b.InnerContent...)
	}
	if b.Issues != nil {
		result.Issues = append([]string(nil), b.Issues...)
	}
	return &result
}

// CloneBlocks returns a deep copy of a block list.
func CloneBlocks(bs []*Block) []*Block {
	if bs == nil {
		return nil
	}
	result := make([]*Block, len(bs))
	for i, b := range bs {
		result[i] = b.Clone()
	}
	return result
}

// WalkChildren walks down to the inner blocks.
func (b *Block) WalkChildren(v WalkVisitor) {
	WalkBlockSlice(v, b.InnerBlocks)
}
