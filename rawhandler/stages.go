//-----------------------------------------------------------------------------
// Copyright (c) 2024-present Detlef Stern
//
// This file is part of Blockmark.
//
// Blockmark is licensed under the latest version of the EUPL (European Union
// Public License). Please see file LICENSE.txt for your rights and obligations
// under this license.
//-----------------------------------------------------------------------------

package rawhandler

import (
	"strings"

	"golang.org/x/net/html"

	"blockmark.de/b/dom"
	"blockmark.de/b/logger"
	"blockmark.de/b/strfun"
)

// State is the data that is transformed by the stages.
type State struct {
	Root      *html.Node // Document node that contains the fragment
	PlainText string     // Plain text version, empty if unknown
	Logger    *logger.Logger
}

// Stage is one step of the normalization.
type Stage struct {
	Name string
	Run  func(*State)
}

// DefaultStages returns the normalization steps in their default order.
func DefaultStages() []Stage {
	return []Stage{
		{"strip", func(st *State) { stripDisallowed(st.Root) }},
		{"source", func(st *State) { unwrapSource(st.Root) }},
		{"wrappers", func(st *State) { collapseWrappers(st.Root) }},
		{"blocks", func(st *State) { normaliseBlocks(st.Root) }},
		{"inline", func(st *State) { mergeInline(st.Root) }},
		{"sanitize", func(st *State) { st.Root = sanitize(st.Root) }},
		{"whitespace", func(st *State) { recoverWhitespace(st.Root, st.PlainText, st.Logger) }},
	}
}

// collect returns all nodes below root that satisfy the predicate, in
// reverse document order. Inner nodes are returned before their ancestors,
// so that the result can be changed in place.
func collect(root *html.Node, pred func(*html.Node) bool) []*html.Node {
	var result []*html.Node
	dom.Iterate(root, func(n *html.Node) bool {
		if n != root && pred(n) {
			result = append(result, n)
		}
		return false
	})
	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}
	return result
}

var disallowedElements = strfun.NewSet(
	"script", "style", "meta", "link", "title", "head", "noscript", "template",
	"object", "embed", "applet", "iframe", "base", "colgroup", "col",
)

// stripDisallowed removes elements that never carry content, and comments.
// Conditional comments of office applications are comments, too.
func stripDisallowed(root *html.Node) {
	for _, n := range collect(root, func(n *html.Node) bool {
		return n.Type == html.CommentNode || n.Type == html.DoctypeNode ||
			(n.Type == html.ElementNode && disallowedElements.Has(n.Data))
	}) {
		dom.Remove(n)
	}
}

var wrapperElements = strfun.NewSet("div", "span")

var collapsibleElements = strfun.NewSet("div", "blockquote", "section", "article", "ul", "ol")

// collapseWrappers unwraps div and span elements without attributes and
// removes nested identical wrappers.
func collapseWrappers(root *html.Node) {
	for _, n := range collect(root, func(n *html.Node) bool {
		return n.Type == html.ElementNode && wrapperElements.Has(n.Data) && len(n.Attr) == 0
	}) {
		dom.Unwrap(n)
	}
	for _, n := range collect(root, func(n *html.Node) bool {
		return n.Type == html.ElementNode && collapsibleElements.Has(n.Data)
	}) {
		if child := onlyElementChild(n); child != nil && child.Data == n.Data && sameAttributes(n, child) {
			dom.Unwrap(child)
		}
	}
}

// onlyElementChild returns the only child element, if all other children
// are white space.
func onlyElementChild(n *html.Node) *html.Node {
	var result *html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			if result != nil {
				return nil
			}
			result = c
		case html.TextNode:
			if !strfun.IsBlank(c.Data) {
				return nil
			}
		default:
			return nil
		}
	}
	return result
}

func sameAttributes(a, b *html.Node) bool {
	if len(a.Attr) != len(b.Attr) {
		return false
	}
	for _, attr := range a.Attr {
		val, found := dom.Attr(b, attr.Key)
		if !found || val != attr.Val {
			return false
		}
	}
	return true
}

var phrasingElements = strfun.NewSet(
	"a", "abbr", "b", "bdi", "bdo", "br", "cite", "code", "data", "del", "dfn",
	"em", "i", "img", "ins", "kbd", "mark", "q", "s", "samp", "small", "span",
	"strong", "sub", "sup", "time", "u", "var", "wbr",
)

func isPhrasing(n *html.Node) bool {
	switch n.Type {
	case html.TextNode:
		return true
	case html.ElementNode:
		return phrasingElements.Has(n.Data)
	}
	return false
}

var renamedElements = map[string]string{"b": "strong", "i": "em"}

// normaliseBlocks wraps top-level phrasing content into paragraphs and
// renames presentational elements. Images stay at the top level.
func normaliseBlocks(root *html.Node) {
	for _, n := range collect(root, func(n *html.Node) bool {
		_, found := renamedElements[n.Data]
		return n.Type == html.ElementNode && found
	}) {
		dom.Rename(n, renamedElements[n.Data])
	}

	var run []*html.Node
	flush := func() {
		blank := true
		for _, n := range run {
			if n.Type != html.TextNode || !strfun.IsBlank(n.Data) {
				blank = false
				break
			}
		}
		if !blank {
			p := dom.NewElement("p")
			root.InsertBefore(p, run[0])
			for _, n := range run {
				root.RemoveChild(n)
				p.AppendChild(n)
			}
			trimParagraph(p)
		}
		run = nil
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if isPhrasing(c) && !dom.IsElement(c, "img") {
			run = append(run, c)
			continue
		}
		if len(run) > 0 {
			flush()
		}
	}
	if len(run) > 0 {
		flush()
	}
}

func trimParagraph(p *html.Node) {
	if c := p.FirstChild; c != nil && c.Type == html.TextNode {
		c.Data = strings.TrimLeft(c.Data, " \t\r\n")
	}
	if c := p.LastChild; c != nil && c.Type == html.TextNode {
		c.Data = strings.TrimRight(c.Data, " \t\r\n")
	}
}

var mergeableElements = strfun.NewSet("strong", "em", "u", "s", "code", "sub", "sup", "mark", "del", "ins")

// mergeInline merges adjacent formatting elements of the same kind.
func mergeInline(root *html.Node) {
	for _, n := range collect(root, func(n *html.Node) bool {
		return n.Type == html.ElementNode && mergeableElements.Has(n.Data)
	}) {
		for next := n.NextSibling; next != nil && next.Type == html.ElementNode &&
			next.Data == n.Data && sameAttributes(n, next); next = n.NextSibling {
			for c := next.FirstChild; c != nil; {
				following := c.NextSibling
				next.RemoveChild(c)
				n.AppendChild(c)
				c = following
			}
			dom.Remove(next)
		}
	}
}
