//-----------------------------------------------------------------------------
// Copyright (c) 2024-present Detlef Stern
//
// This file is part of Blockmark.
//
// Blockmark is licensed under the latest version of the EUPL (European Union
// Public License). Please see file LICENSE.txt for your rights and obligations
// under this license.
//-----------------------------------------------------------------------------

package schema

// SourceKind enumerates the places where an attribute value may be found.
type SourceKind uint8

// Constants for SourceKind.
const (
	SourceJSON      SourceKind = iota // Attribute object of the opening delimiter
	SourceAttribute                   // Markup attribute of a selected element
	SourceText                        // Text content of a selected element
	SourceHTML                        // Inner markup of a selected element
	SourceChildren                    // Child nodes of a selected element
	SourceQuery                       // List of nested values, one per matched element
	SourceMeta                        // Key of the external meta store
	SourceRaw                         // Complete inner markup of the block
	SourceTag                         // Element name of a selected element
)

var kindNames = [...]string{
	SourceJSON:      "json",
	SourceAttribute: "attribute",
	SourceText:      "text",
	SourceHTML:      "html",
	SourceChildren:  "children",
	SourceQuery:     "query",
	SourceMeta:      "meta",
	SourceRaw:       "raw",
	SourceTag:       "tag",
}

func (k SourceKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Source describes where the value of an attribute comes from.
type Source struct {
	Kind     SourceKind
	Selector string      // CSS selector, empty selects the root
	Attr     string      // SourceAttribute: name of the markup attribute
	Key      string      // SourceMeta: key of the meta store
	Query    []Attribute // SourceQuery: schema for each matched element
}

// FromJSON returns the source of attributes stored in the delimiter.
func FromJSON() Source { return Source{Kind: SourceJSON} }

// FromAttribute selects the value of a markup attribute.
func FromAttribute(selector, attr string) Source {
	return Source{Kind: SourceAttribute, Selector: selector, Attr: attr}
}

// FromText selects the text content of an element.
func FromText(selector string) Source { return Source{Kind: SourceText, Selector: selector} }

// FromHTML selects the inner markup of an element.
func FromHTML(selector string) Source { return Source{Kind: SourceHTML, Selector: selector} }

// FromChildren selects the child nodes of an element.
func FromChildren(selector string) Source { return Source{Kind: SourceChildren, Selector: selector} }

// FromQuery selects all matching elements and extracts nested values.
func FromQuery(selector string, nested ...Attribute) Source {
	return Source{Kind: SourceQuery, Selector: selector, Query: nested}
}

// FromMeta selects a value of the meta store.
func FromMeta(key string) Source { return Source{Kind: SourceMeta, Key: key} }

// FromRaw selects the complete inner markup.
func FromRaw() Source { return Source{Kind: SourceRaw} }

// FromTag selects the element name.
func FromTag(selector string) Source { return Source{Kind: SourceTag, Selector: selector} }

// IsPersisted returns true, if attribute values of this source are written
// into the delimiter of a block.
func (s Source) IsPersisted() bool { return s.Kind == SourceJSON || s.Kind == SourceMeta }
