//-----------------------------------------------------------------------------
// Copyright (c) 2024-present Detlef Stern
//
// This file is part of Blockmark.
//
// Blockmark is licensed under the latest version of the EUPL (European Union
// Public License). Please see file LICENSE.txt for your rights and obligations
// under this license.
//-----------------------------------------------------------------------------

package parser

import (
	"github.com/emirpasic/gods/stacks/arraystack"

	"blockmark.de/b/ast"
	"blockmark.de/b/extractor"
	"blockmark.de/b/schema"
)

// Resolve extracts the attributes of all blocks. Blocks of unknown type are
// replaced by the type for unregistered blocks, if it is registered.
// Otherwise they are marked as opaque and keep their JSON attributes.
func Resolve(reg *schema.Registry, bs []*ast.Block, opts *Options) {
	type item struct {
		b      *ast.Block
		parent string
	}
	log := opts.logger()
	stack := arraystack.New()
	for i := len(bs) - 1; i >= 0; i-- {
		stack.Push(item{b: bs[i]})
	}
	for !stack.Empty() {
		top, _ := stack.Pop()
		it := top.(item)
		b := it.b
		resolveBlock(reg, b, opts)
		if bt, found := reg.Lookup(b.Name); found && !bt.AllowedIn(it.parent) {
			log.Debug().Block(b.Name).Str("parent", it.parent).Msg("block not allowed here")
		}
		for i := len(b.InnerBlocks) - 1; i >= 0; i-- {
			stack.Push(item{b: b.InnerBlocks[i], parent: b.Name})
		}
	}
}

func resolveBlock(reg *schema.Registry, b *ast.Block, opts *Options) {
	if reg.IsFreeform(b.Name) && b.JSONAttrs == nil {
		return // literal text, content was set by the builder
	}
	bt, found := reg.Lookup(b.Name)
	switch {
	case found && reg.IsUnregistered(b.Name):
		values := map[string]any{
			schema.OriginalContentKey:     b.Source,
			schema.OriginalUndelimitedKey: b.OriginalContent,
		}
		if name, ok := b.JSONAttrs[schema.OriginalNameKey]; ok {
			values[schema.OriginalNameKey] = name
		}
		b.Attrs = bt.NewAttributes(values)
	case found:
		b.Attrs = extractor.Extract(bt.Attributes, b.JSONAttrs, b.InnerHTML, opts.extract())
	default:
		if ubt, ok := reg.Lookup(reg.UnregisteredName); ok {
			opts.logger().Debug().Block(b.Name).Msg("unregistered block type")
			b.Attrs = ubt.NewAttributes(map[string]any{
				schema.OriginalNameKey:        b.Name,
				schema.OriginalContentKey:     b.Source,
				schema.OriginalUndelimitedKey: b.OriginalContent,
			})
			b.Name = reg.UnregisteredName
			return
		}
		opts.logger().Debug().Block(b.Name).Msg("opaque block")
		b.Attrs = ast.AttributesFromMap(b.JSONAttrs)
		b.Opaque = true
	}
}
