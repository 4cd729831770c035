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

	"blockmark.de/b/ast"
	"blockmark.de/b/dom"
	"blockmark.de/b/extractor"
	"blockmark.de/b/schema"
)

// HTMLName is the type of blocks that store markup no transform matched.
const HTMLName = "core/html"

type converter struct {
	reg        *schema.Registry
	opts       *Options
	transforms []schema.RawTransform
}

// convert turns every top-level node into blocks. Consecutive nodes that no
// transform matches are collected into one block.
func (c *converter) convert(root *html.Node) []*ast.Block {
	c.transforms = c.reg.RawTransforms()
	var result []*ast.Block
	var pending strings.Builder
	flush := func() {
		if content := strings.TrimSpace(pending.String()); content != "" {
			result = append(result, c.fallback(content))
		}
		pending.Reset()
	}
	for n := root.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == html.TextNode && strings.TrimSpace(n.Data) == "" {
			continue
		}
		if b := c.transform(n); b != nil {
			flush()
			result = append(result, b)
			continue
		}
		pending.WriteString(dom.OuterHTML(n))
	}
	flush()
	return result
}

func (c *converter) transform(n *html.Node) *ast.Block {
	if n.Type != html.ElementNode {
		return nil
	}
	for _, rt := range c.transforms {
		if rt.Selector != "" && !dom.Matches(n, rt.Selector) {
			continue
		}
		if rt.IsMatch != nil && !rt.IsMatch(n) {
			continue
		}
		bt, found := c.reg.Lookup(rt.BlockName)
		if !found {
			continue
		}
		c.opts.Logger.Trace().Str("element", n.Data).Block(rt.BlockName).Msg("transform")
		if rt.Transform == nil {
			return ast.NewBlock(bt.Name, extractor.ExtractNode(bt.Attributes, nil, n, c.opts.Extract))
		}
		b := rt.Transform(n)
		if b == nil {
			continue
		}
		c.complete(b)
		return b
	}
	return nil
}

// complete fills in the defaults of all attributes of the block and its
// inner blocks.
func (c *converter) complete(b *ast.Block) {
	ast.PostOrder([]*ast.Block{b}, func(cur *ast.Block) {
		if bt, found := c.reg.Lookup(cur.Name); found {
			cur.Attrs = bt.NewAttributes(cur.Attrs.Map())
		}
	})
}

func (c *converter) fallback(content string) *ast.Block {
	name := HTMLName
	if _, found := c.reg.Lookup(name); !found {
		name = c.reg.FreeformName
	}
	c.opts.Logger.Debug().Block(name).Msg("no transform")
	return c.reg.CreateBlock(name, map[string]any{"content": content})
}
