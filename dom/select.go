//-----------------------------------------------------------------------------
// Copyright (c) 2024-present Detlef Stern
//
// This file is part of Blockmark.
//
// Blockmark is licensed under the latest version of the EUPL (European Union
// Public License). Please see file LICENSE.txt for your rights and obligations
// under this license.
//-----------------------------------------------------------------------------

package dom

import (
	"sync"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

var selCache sync.Map // string -> cascadia.Selector, nil for invalid selectors

// Compile returns the compiled form of a CSS selector. Compiled selectors
// are cached.
func Compile(selector string) (cascadia.Selector, error) {
	if sel, found := selCache.Load(selector); found {
		if sel == nil {
			return nil, errInvalid(selector)
		}
		return sel.(cascadia.Selector), nil
	}
	sel, err := cascadia.Compile(selector)
	if err != nil {
		selCache.Store(selector, nil)
		return nil, err
	}
	selCache.Store(selector, sel)
	return sel, nil
}

type errInvalid string

func (e errInvalid) Error() string { return "invalid selector: " + string(e) }

// MatchFirst returns the first descendant of root that matches the
// selector. An invalid selector matches nothing.
func MatchFirst(root *html.Node, selector string) *html.Node {
	sel, err := Compile(selector)
	if err != nil || root == nil {
		return nil
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if n := sel.MatchFirst(c); n != nil {
			return n
		}
	}
	return nil
}

// MatchAll returns all descendants of root that match the selector, in
// document order.
func MatchAll(root *html.Node, selector string) []*html.Node {
	sel, err := Compile(selector)
	if err != nil || root == nil {
		return nil
	}
	var result []*html.Node
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		result = append(result, sel.MatchAll(c)...)
	}
	return result
}

// Matches returns true, if n itself matches the selector.
func Matches(n *html.Node, selector string) bool {
	sel, err := Compile(selector)
	if err != nil || n == nil {
		return false
	}
	return sel.Match(n)
}

// Selector selects elements by CSS selectors.
type Selector struct{}

// MatchFirst implements the selector interface of the extractor.
func (Selector) MatchFirst(root *html.Node, selector string) *html.Node {
	return MatchFirst(root, selector)
}

// MatchAll implements the selector interface of the extractor.
func (Selector) MatchAll(root *html.Node, selector string) []*html.Node {
	return MatchAll(root, selector)
}
