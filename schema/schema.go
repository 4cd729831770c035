//-----------------------------------------------------------------------------
// Copyright (c) 2024-present Detlef Stern
//
// This file is part of Blockmark.
//
// Blockmark is licensed under the latest version of the EUPL (European Union
// Public License). Please see file LICENSE.txt for your rights and obligations
// under this license.
//-----------------------------------------------------------------------------

// Package schema defines block types, their attribute sources, and the
// registry of block types.
package schema

import (
	"strings"

	"golang.org/x/net/html"

	"blockmark.de/b/ast"
)

// InnerBlocksPlaceholder marks the position of inner blocks in the output of
// a save function.
const InnerBlocksPlaceholder = "\uE000InnerBlocks\uE000"

// MetaKey is the delimiter attribute that stores values of meta sources.
const MetaKey = "meta"

// Type is the declared type of an attribute value.
type Type string

// Constants for Type. TypeAny accepts every value.
const (
	TypeAny     Type = ""
	TypeString  Type = "string"
	TypeNumber  Type = "number"
	TypeInteger Type = "integer"
	TypeBoolean Type = "boolean"
	TypeArray   Type = "array"
	TypeObject  Type = "object"
	TypeNull    Type = "null"

	// TypeRichText values are node lists, as returned by Children sources.
	TypeRichText Type = "rich-text"
)

// Attribute defines one attribute of a block type.
type Attribute struct {
	Name    string
	Type    Type
	Enum    []any
	Default any
	Source  Source
}

// SaveFunc produces the inner markup of a block from its attributes.
type SaveFunc func(attrs *ast.Attributes, inner []*ast.Block) string

// Deprecation describes a former version of a block type.
type Deprecation struct {
	// Attributes of the former version. If nil, the current ones are used.
	Attributes []Attribute
	Save       SaveFunc

	// IsEligible allows to try the deprecation even if the block is valid.
	IsEligible func(attrs *ast.Attributes, inner []*ast.Block) bool

	// Migrate converts attributes and inner blocks into the current form.
	Migrate func(attrs *ast.Attributes, inner []*ast.Block) (*ast.Attributes, []*ast.Block)
}

// RawTransform converts a top-level node of foreign markup into a block.
type RawTransform struct {
	Priority  int                           // Lower values are tried first, default is 10
	Selector  string                        // CSS selector the node must match
	IsMatch   func(n *html.Node) bool       // Additional condition
	Transform func(n *html.Node) *ast.Block // If nil, attributes are extracted from the node
	BlockName string                        // Name of the block type, filled on registration
}

// BlockType defines a type of blocks.
type BlockType struct {
	Name       string
	Title      string
	Attributes []Attribute
	Save       SaveFunc
	Deprecated []Deprecation
	Transforms []RawTransform

	// Parent lists the block types this type may be nested in. An empty
	// list allows every position.
	Parent []string
}

// AllowedIn returns true, if a block of this type may be an inner block of
// the named parent. The empty parent name denotes the top level.
func (bt *BlockType) AllowedIn(parent string) bool {
	if len(bt.Parent) == 0 {
		return true
	}
	for _, p := range bt.Parent {
		if p == parent {
			return true
		}
	}
	return false
}

// Attribute returns the definition of the named attribute.
func (bt *BlockType) Attribute(name string) (Attribute, bool) {
	for _, a := range bt.Attributes {
		if a.Name == name {
			return a, true
		}
	}
	return Attribute{}, false
}

// NewAttributes returns attributes in schema order, taken from the given
// map. Missing values are filled with their defaults. Unknown keys are
// ignored.
func (bt *BlockType) NewAttributes(values map[string]any) *ast.Attributes {
	result := ast.NewAttributes()
	for _, a := range bt.Attributes {
		if v, ok := values[a.Name]; ok {
			result.Set(a.Name, v)
		} else if a.Default != nil {
			result.Set(a.Name, ast.CloneValue(a.Default))
		}
	}
	return result
}

// Persisted returns the attributes that must be written into the delimiter,
// in schema order. Values equal to their default are omitted. Values of meta
// sources are collected in an object stored under MetaKey.
func (bt *BlockType) Persisted(attrs *ast.Attributes) *ast.Attributes {
	result := ast.NewAttributes()
	var meta map[string]any
	for _, a := range bt.Attributes {
		if !a.Source.IsPersisted() {
			continue
		}
		val, found := attrs.Get(a.Name)
		if !found || (a.Default != nil && ast.ValueEqual(val, a.Default)) {
			continue
		}
		if a.Source.Kind == SourceMeta {
			if meta == nil {
				meta = map[string]any{}
				result.Set(MetaKey, meta)
			}
			meta[a.Source.Key] = val
			continue
		}
		result.Set(a.Name, val)
	}
	return result
}

// SaveContent calls the save function and removes the inner blocks
// placeholder.
func SaveContent(save SaveFunc, attrs *ast.Attributes, inner []*ast.Block) string {
	if save == nil {
		return ""
	}
	return strings.Replace(save(attrs, inner), InnerBlocksPlaceholder, "", 1)
}

// KeepsInnerBlocks returns true, if there are no inner blocks, or if the
// save output has a place for them.
func KeepsInnerBlocks(save SaveFunc, attrs *ast.Attributes, inner []*ast.Block) bool {
	return len(inner) == 0 || (save != nil && strings.Contains(save(attrs, inner), InnerBlocksPlaceholder))
}

// Namespace "core" is used for block names without explicit namespace.
const coreNamespace = "core/"

// QualifiedName adds the core namespace to a name without namespace.
func QualifiedName(name string) string {
	if strings.IndexByte(name, '/') < 0 {
		return coreNamespace + name
	}
	return name
}

// DelimiterName removes the core namespace.
func DelimiterName(name string) string {
	return strings.TrimPrefix(name, coreNamespace)
}

// IsValidName returns true, if the name is a namespaced block name
// consisting of lower case letters, digits, and hyphens.
func IsValidName(name string) bool {
	ns, local, found := strings.Cut(name, "/")
	return found && isNamePart(ns) && isNamePart(local)
}

func isNamePart(s string) bool {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return false
	}
	for i := 1; i < len(s); i++ {
		if ch := s[i]; (ch < 'a' || ch > 'z') && (ch < '0' || ch > '9') && ch != '-' {
			return false
		}
	}
	return true
}
