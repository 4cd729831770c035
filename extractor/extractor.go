//-----------------------------------------------------------------------------
// Copyright (c) 2024-present Detlef Stern
//
// This file is part of Blockmark.
//
// Blockmark is licensed under the latest version of the EUPL (European Union
// Public License). Please see file LICENSE.txt for your rights and obligations
// under this license.
//-----------------------------------------------------------------------------

// Package extractor computes the attribute values of a block from its
// delimiter attributes and its inner markup.
package extractor

import (
	"strings"

	"golang.org/x/net/html"

	"blockmark.de/b/ast"
	"blockmark.de/b/dom"
	"blockmark.de/b/logger"
	"blockmark.de/b/richtext"
	"blockmark.de/b/schema"
)

// Selector selects elements of a markup fragment by CSS selectors.
type Selector interface {
	MatchFirst(root *html.Node, selector string) *html.Node
	MatchAll(root *html.Node, selector string) []*html.Node
}

// Options configure the extraction.
type Options struct {
	Selector Selector       // If nil, CSS selectors of package dom are used
	Meta     map[string]any // External meta store, overrides delimiter values
	Logger   *logger.Logger
}

func (opts *Options) selector() Selector {
	if opts != nil && opts.Selector != nil {
		return opts.Selector
	}
	return dom.Selector{}
}

func (opts *Options) logger() *logger.Logger {
	if opts != nil {
		return opts.Logger
	}
	return nil
}

// Extract computes all attributes of the schema. The markup is parsed only
// once. Values that cannot be found or that do not match the declared type
// are replaced by their defaults. Extract never fails.
func Extract(attrs []schema.Attribute, jsonAttrs map[string]any, markup string, opts *Options) *ast.Attributes {
	ex := extractor{
		sel:    opts.selector(),
		opts:   opts,
		markup: markup,
		json:   jsonAttrs,
	}
	return ex.extractAll(attrs, nil)
}

// ExtractNode computes all attributes of the schema from the markup of the
// given node, including the node itself.
func ExtractNode(attrs []schema.Attribute, jsonAttrs map[string]any, n *html.Node, opts *Options) *ast.Attributes {
	return Extract(attrs, jsonAttrs, dom.OuterHTML(n), opts)
}

type extractor struct {
	sel    Selector
	opts   *Options
	markup string
	json   map[string]any
	root   *html.Node
}

func (ex *extractor) extractAll(attrs []schema.Attribute, root *html.Node) *ast.Attributes {
	result := ast.NewAttributes()
	for _, a := range attrs {
		if val, ok := ex.extract(a, root); ok {
			result.Set(a.Name, val)
		}
	}
	return result
}

func (ex *extractor) getRoot() *html.Node {
	if ex.root == nil {
		ex.root = dom.Parse(ex.markup)
	}
	return ex.root
}

// extract returns the value of the attribute, or its default. If there is
// neither a value nor a default, the result is false.
func (ex *extractor) extract(a schema.Attribute, root *html.Node) (any, bool) {
	val, found := ex.lookup(a, root)
	if found {
		if cval, ok := coerce(a, val); ok {
			return cval, true
		}
		ex.opts.logger().Debug().Str("attribute", a.Name).Str("type", string(a.Type)).Msg("type mismatch")
	}
	if a.Default != nil {
		return ast.CloneValue(a.Default), true
	}
	return nil, false
}

func (ex *extractor) lookup(a schema.Attribute, root *html.Node) (any, bool) {
	src := a.Source
	switch src.Kind {
	case schema.SourceJSON:
		val, found := ex.json[a.Name]
		return val, found
	case schema.SourceMeta:
		return ex.lookupMeta(src.Key)
	case schema.SourceRaw:
		if root != nil {
			return dom.OuterHTML(root), true
		}
		return ex.markup, true
	}

	if root == nil {
		root = ex.getRoot()
	}
	switch src.Kind {
	case schema.SourceAttribute:
		n := ex.firstElement(root, src.Selector)
		if n == nil {
			return nil, false
		}
		val, found := dom.Attr(n, src.Attr)
		if a.Type == schema.TypeBoolean {
			return found, true
		}
		return val, found
	case schema.SourceTag:
		n := ex.firstElement(root, src.Selector)
		if n == nil {
			return nil, false
		}
		return strings.ToLower(n.Data), true
	case schema.SourceText:
		n := ex.node(root, src.Selector)
		if n == nil {
			return nil, false
		}
		return dom.Text(n), true
	case schema.SourceHTML:
		n := ex.node(root, src.Selector)
		if n == nil {
			return nil, false
		}
		return dom.InnerHTML(n), true
	case schema.SourceChildren:
		n := ex.node(root, src.Selector)
		if n == nil {
			return nil, false
		}
		return richtext.FromChildren(n), true
	case schema.SourceQuery:
		nodes := ex.sel.MatchAll(root, src.Selector)
		result := make([]any, 0, len(nodes))
		for _, n := range nodes {
			result = append(result, ex.extractAll(src.Query, n).Map())
		}
		return result, true
	}
	return nil, false
}

// node returns the selected node. The empty selector selects the root.
func (ex *extractor) node(root *html.Node, selector string) *html.Node {
	if selector == "" {
		return root
	}
	return ex.sel.MatchFirst(root, selector)
}

// firstElement returns the selected element. The empty selector selects the
// root, if it is an element, or its first element.
func (ex *extractor) firstElement(root *html.Node, selector string) *html.Node {
	if selector == "" {
		return dom.FirstElement(root)
	}
	return ex.sel.MatchFirst(root, selector)
}

func (ex *extractor) lookupMeta(key string) (any, bool) {
	if ex.opts != nil && ex.opts.Meta != nil {
		if val, found := ex.opts.Meta[key]; found {
			return val, true
		}
	}
	if m, isMap := ex.json[schema.MetaKey].(map[string]any); isMap {
		val, found := m[key]
		return val, found
	}
	return nil, false
}
