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
)

// unwrapSource removes the traces of the application the markup was copied
// from: Google Docs, Microsoft Word, and spreadsheets.
func unwrapSource(root *html.Node) {
	unwrapGoogleDocs(root)
	convertWordLists(root)
	cleanWord(root)
	unwrapSpreadsheet(root)
}

const gdocsGUID = "docs-internal-guid"

func unwrapGoogleDocs(root *html.Node) {
	for _, n := range collect(root, func(n *html.Node) bool {
		id, _ := dom.Attr(n, "id")
		return n.Type == html.ElementNode && strings.HasPrefix(id, gdocsGUID)
	}) {
		dom.Unwrap(n)
	}
	for _, n := range collect(root, func(n *html.Node) bool { return dom.IsElement(n, "span") }) {
		style, found := dom.Attr(n, "style")
		if !found {
			continue
		}
		decls := parseStyle(style)
		bold := decls["font-weight"] == "bold" || decls["font-weight"] == "700"
		italic := decls["font-style"] == "italic"
		switch {
		case bold && italic:
			dom.Rename(n, "strong")
			wrapChildren(n, "em")
		case bold:
			dom.Rename(n, "strong")
		case italic:
			dom.Rename(n, "em")
		default:
			continue
		}
		n.Attr = nil
	}
}

// wrapChildren moves all children of n into a new element.
func wrapChildren(n *html.Node, name string) {
	wrapper := dom.NewElement(name)
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		wrapper.AppendChild(c)
		c = next
	}
	n.AppendChild(wrapper)
}

// parseStyle returns the declarations of a style attribute.
func parseStyle(style string) map[string]string {
	result := map[string]string{}
	for _, decl := range strings.Split(style, ";") {
		key, val, found := strings.Cut(decl, ":")
		if !found {
			continue
		}
		result[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(val)
	}
	return result
}

func formatStyle(n *html.Node, keep func(key string) bool) {
	style, found := dom.Attr(n, "style")
	if !found {
		return
	}
	var decls []string
	for _, decl := range strings.Split(style, ";") {
		key, _, ok := strings.Cut(decl, ":")
		if ok && keep(strings.ToLower(strings.TrimSpace(key))) {
			decls = append(decls, strings.TrimSpace(decl))
		}
	}
	if len(decls) == 0 {
		dom.RemoveAttr(n, "style")
		return
	}
	dom.SetAttr(n, "style", strings.Join(decls, ";"))
}

func isWordListParagraph(n *html.Node) bool {
	if !dom.IsElement(n, "p") {
		return false
	}
	if dom.HasClassPrefix(n, "MsoListParagraph") {
		return true
	}
	style, _ := dom.Attr(n, "style")
	return strings.Contains(style, "mso-list:")
}

// convertWordLists turns consecutive list paragraphs of Word into a list.
// The bullets are removed.
func convertWordLists(root *html.Node) {
	for _, n := range collect(root, func(n *html.Node) bool {
		style, _ := dom.Attr(n, "style")
		return dom.IsElement(n, "span") && strings.Contains(strings.ReplaceAll(style, " ", ""), "mso-list:Ignore")
	}) {
		dom.Remove(n)
	}
	for _, n := range collect(root, isWordListParagraph) {
		if n.Parent == nil || isWordListParagraph(previousElement(n)) {
			continue
		}
		list := dom.NewElement("ul")
		n.Parent.InsertBefore(list, n)
		for cur := n; isWordListParagraph(cur); {
			next := nextElement(cur)
			cur.Parent.RemoveChild(cur)
			dom.Rename(cur, "li")
			cur.Attr = nil
			list.AppendChild(cur)
			cur = next
		}
	}
}

func previousElement(n *html.Node) *html.Node {
	for c := n.PrevSibling; c != nil; c = c.PrevSibling {
		if c.Type == html.ElementNode {
			return c
		}
		if c.Type == html.TextNode && strings.TrimSpace(c.Data) != "" {
			return nil
		}
	}
	return nil
}

func nextElement(n *html.Node) *html.Node {
	for c := n.NextSibling; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return c
		}
		if c.Type == html.TextNode && strings.TrimSpace(c.Data) != "" {
			return nil
		}
	}
	return nil
}

// cleanWord removes office elements, Mso classes and mso styles.
func cleanWord(root *html.Node) {
	for _, n := range collect(root, func(n *html.Node) bool {
		return n.Type == html.ElementNode && strings.Contains(n.Data, ":")
	}) {
		if n.Data == "o:p" {
			dom.Remove(n)
		} else {
			dom.Unwrap(n)
		}
	}
	dom.Iterate(root, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return false
		}
		if cls := dom.Classes(n); len(cls) > 0 {
			kept := cls[:0]
			for _, c := range cls {
				if !strings.HasPrefix(c, "Mso") {
					kept = append(kept, c)
				}
			}
			if len(kept) == 0 {
				dom.RemoveAttr(n, "class")
			} else {
				dom.SetAttr(n, "class", strings.Join(kept, " "))
			}
		}
		formatStyle(n, func(key string) bool { return !strings.HasPrefix(key, "mso-") })
		return false
	})
}

// unwrapSpreadsheet removes the wrappers of Google Sheets and the cell
// data of spreadsheet applications.
func unwrapSpreadsheet(root *html.Node) {
	for _, n := range collect(root, func(n *html.Node) bool {
		return dom.IsElement(n, "google-sheets-html-origin")
	}) {
		dom.Unwrap(n)
	}
	dom.Iterate(root, func(n *html.Node) bool {
		if !dom.IsElement(n, "table", "tr", "td", "th") {
			return false
		}
		attrs := n.Attr[:0]
		for _, a := range n.Attr {
			if !strings.HasPrefix(a.Key, "data-sheets-") && a.Key != "x:str" && a.Key != "x:num" {
				attrs = append(attrs, a)
			}
		}
		n.Attr = attrs
		return false
	})
}
