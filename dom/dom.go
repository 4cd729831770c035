//-----------------------------------------------------------------------------
// Copyright (c) 2024-present Detlef Stern
//
// This file is part of Blockmark.
//
// Blockmark is licensed under the latest version of the EUPL (European Union
// Public License). Please see file LICENSE.txt for your rights and obligations
// under this license.
//-----------------------------------------------------------------------------

// Package dom provides access to markup fragments: parsing, selecting
// elements by CSS selectors, and rendering.
package dom

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var bodyContext = &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}

// Parse reads a markup fragment and returns a document node that contains
// the fragment as its children. It never fails; unparsable markup results
// in an empty document.
func Parse(markup string) *html.Node {
	root := &html.Node{Type: html.DocumentNode}
	for _, n := range ParseNodes(markup) {
		root.AppendChild(n)
	}
	return root
}

// ParseNodes reads a markup fragment and returns its top-level nodes.
func ParseNodes(markup string) []*html.Node {
	if markup == "" {
		return nil
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), bodyContext)
	if err != nil {
		return nil
	}
	return nodes
}

// Iterate calls f for n and all its descendants in document order. If f
// returns true, the descendants of the current node are skipped.
func Iterate(n *html.Node, f func(*html.Node) bool) {
	if f(n) {
		return
	}
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		Iterate(c, f)
		c = next
	}
}

// FirstElement returns n, if it is an element, or its first element
// descendant.
func FirstElement(n *html.Node) *html.Node {
	var result *html.Node
	Iterate(n, func(c *html.Node) bool {
		if result != nil {
			return true
		}
		if c.Type == html.ElementNode {
			result = c
			return true
		}
		return false
	})
	return result
}

// Attr returns the value of the markup attribute key.
func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets the value of a markup attribute.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr removes a markup attribute.
func RemoveAttr(n *html.Node, key string) {
	attrs := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace != "" || a.Key != key {
			attrs = append(attrs, a)
		}
	}
	n.Attr = attrs
}

// Classes returns the words of the class attribute.
func Classes(n *html.Node) []string {
	cls, _ := Attr(n, "class")
	return strings.Fields(cls)
}

// HasClassPrefix returns true, if one of the classes starts with prefix.
func HasClassPrefix(n *html.Node, prefix string) bool {
	for _, cls := range Classes(n) {
		if strings.HasPrefix(cls, prefix) {
			return true
		}
	}
	return false
}

// IsElement returns true, if n is an element with one of the given names.
func IsElement(n *html.Node, names ...string) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	for _, name := range names {
		if n.Data == name {
			return true
		}
	}
	return false
}

// Text returns the text content of n, with character references resolved.
func Text(n *html.Node) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	Iterate(n, func(c *html.Node) bool {
		switch c.Type {
		case html.TextNode:
			sb.WriteString(c.Data)
		case html.CommentNode:
			return true
		}
		return false
	})
	return sb.String()
}

// Unwrap replaces n by its children.
func Unwrap(n *html.Node) {
	parent := n.Parent
	if parent == nil {
		return
	}
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		parent.InsertBefore(c, n)
		c = next
	}
	parent.RemoveChild(n)
}

// Remove detaches n from its parent.
func Remove(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// Rename changes the element name of n.
func Rename(n *html.Node, name string) {
	n.Data = name
	n.DataAtom = atom.Lookup([]byte(name))
}

// NewElement creates a new element without attributes.
func NewElement(name string) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: name, DataAtom: atom.Lookup([]byte(name))}
}
