//-----------------------------------------------------------------------------
// Copyright (c) 2024-present Detlef Stern
//
// This file is part of Blockmark.
//
// Blockmark is licensed under the latest version of the EUPL (European Union
// Public License). Please see file LICENSE.txt for your rights and obligations
// under this license.
//-----------------------------------------------------------------------------

// Package richtext converts markup into a list of child nodes that can be
// stored as an attribute value, and back.
//
// A node is either a string (text) or an object with the keys "type" (the
// element name) and "props" (markup attributes plus "children", which is a
// list of nodes again).
package richtext

import (
	"sort"
	"strings"

	"golang.org/x/net/html"

	"blockmark.de/b/dom"
)

// Keys of an element node.
const (
	KeyType     = "type"
	KeyProps    = "props"
	KeyChildren = "children"
)

// FromHTML converts a markup fragment into a node list.
func FromHTML(markup string) []any { return FromChildren(dom.Parse(markup)) }

// FromChildren converts the children of n into a node list.
func FromChildren(n *html.Node) []any {
	result := []any{}
	if n == nil {
		return result
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			// Adjacent text nodes are merged.
			if l := len(result); l > 0 {
				if s, ok := result[l-1].(string); ok {
					result[l-1] = s + c.Data
					continue
				}
			}
			result = append(result, c.Data)
		case html.ElementNode:
			props := make(map[string]any, len(c.Attr)+1)
			for _, a := range c.Attr {
				props[a.Key] = a.Val
			}
			props[KeyChildren] = FromChildren(c)
			result = append(result, map[string]any{KeyType: c.Data, KeyProps: props})
		}
	}
	return result
}

// ToHTML renders a node list as markup. Values of other types are ignored.
func ToHTML(nodes []any) string {
	var sb strings.Builder
	writeNodes(&sb, nodes)
	return sb.String()
}

func writeNodes(sb *strings.Builder, nodes []any) {
	for _, node := range nodes {
		switch n := node.(type) {
		case string:
			sb.WriteString(dom.EscapeText(n))
		case map[string]any:
			writeElement(sb, n)
		}
	}
}

func writeElement(sb *strings.Builder, n map[string]any) {
	tag, ok := n[KeyType].(string)
	if !ok || tag == "" {
		return
	}
	props, _ := n[KeyProps].(map[string]any)
	keys := make([]string, 0, len(props))
	for k := range props {
		if k != KeyChildren {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	sb.WriteByte('<')
	sb.WriteString(tag)
	for _, k := range keys {
		if val, isString := props[k].(string); isString {
			sb.WriteByte(' ')
			sb.WriteString(k)
			sb.WriteString(`="`)
			sb.WriteString(dom.EscapeAttr(val))
			sb.WriteByte('"')
		}
	}
	if dom.IsVoid(tag) {
		sb.WriteString("/>")
		return
	}
	sb.WriteByte('>')
	children, _ := props[KeyChildren].([]any)
	writeNodes(sb, children)
	sb.WriteString("</")
	sb.WriteString(tag)
	sb.WriteByte('>')
}

// Text returns the concatenated text of a node list.
func Text(nodes []any) string {
	var sb strings.Builder
	writeText(&sb, nodes)
	return sb.String()
}

func writeText(sb *strings.Builder, nodes []any) {
	for _, node := range nodes {
		switch n := node.(type) {
		case string:
			sb.WriteString(n)
		case map[string]any:
			props, _ := n[KeyProps].(map[string]any)
			children, _ := props[KeyChildren].([]any)
			writeText(sb, children)
		}
	}
}
