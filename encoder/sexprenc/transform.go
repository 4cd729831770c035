//-----------------------------------------------------------------------------
// Copyright (c) 2024-present Detlef Stern
//
// This file is part of Blockmark.
//
// Blockmark is licensed under the latest version of the EUPL (European Union
// Public License). Please see file LICENSE.txt for your rights and obligations
// under this license.
//-----------------------------------------------------------------------------

package sexprenc

import (
	"sort"
	"strconv"

	"codeberg.org/t73fde/sxpf"

	"blockmark.de/b/ast"
)

// NewTransformer returns a new transformer to create s-expressions from blocks.
func NewTransformer() *Transformer {
	sf := sxpf.MakeMappedFactory()
	return &Transformer{
		sf:        sf,
		symBlocks: sf.MustMake("BLOCKS"),
		symBlock:  sf.MustMake("BLOCK"),
		symQuote:  sf.MustMake("quote"),
		symTrue:   sf.MustMake("true"),
		symFalse:  sf.MustMake("false"),
		symNull:   sf.MustMake("null"),
		mapValidityS: map[ast.Validity]*sxpf.Symbol{
			ast.Unchecked: sf.MustMake("UNCHECKED"),
			ast.Valid:     sf.MustMake("VALID"),
			ast.Invalid:   sf.MustMake("INVALID"),
		},
		symMigrated: sf.MustMake("MIGRATED"),
		symOpaque:   sf.MustMake("OPAQUE"),
	}
}

type Transformer struct {
	sf           sxpf.SymbolFactory
	symBlocks    *sxpf.Symbol
	symBlock     *sxpf.Symbol
	symQuote     *sxpf.Symbol
	symTrue      *sxpf.Symbol
	symFalse     *sxpf.Symbol
	symNull      *sxpf.Symbol
	mapValidityS map[ast.Validity]*sxpf.Symbol
	symMigrated  *sxpf.Symbol
	symOpaque    *sxpf.Symbol
}

// GetSexpr returns the s-expression of a block slice:
// (BLOCKS (BLOCK name validity attrs inner...)...).
func (t *Transformer) GetSexpr(bs []*ast.Block) *sxpf.List {
	objs := make([]sxpf.Object, len(bs))
	for i, b := range bs {
		objs[i] = t.getBlock(b)
	}
	return sxpf.MakeList(objs...).Cons(t.symBlocks)
}

func (t *Transformer) getBlock(b *ast.Block) *sxpf.List {
	objs := make([]sxpf.Object, 0, len(b.InnerBlocks)+4)
	objs = append(objs, t.symBlock, sxpf.MakeString(b.Name), t.getState(b), t.getAttributes(b.Attrs))
	for _, inner := range b.InnerBlocks {
		objs = append(objs, t.getBlock(inner))
	}
	return sxpf.MakeList(objs...)
}

func (t *Transformer) getState(b *ast.Block) *sxpf.List {
	state := sxpf.Nil()
	if b.Opaque {
		state = state.Cons(t.symOpaque)
	}
	if b.Migrated {
		state = state.Cons(t.symMigrated)
	}
	return state.Cons(t.mapValidityS[b.Validity])
}

func (t *Transformer) getAttributes(a *ast.Attributes) sxpf.Object {
	if a.IsEmpty() {
		return sxpf.Nil()
	}
	objs := make([]sxpf.Object, 0, a.Len())
	a.Each(func(k string, v any) {
		objs = append(objs, sxpf.Cons(sxpf.MakeString(k), t.getValue(v)))
	})
	return sxpf.MakeList(objs...).Cons(t.symQuote)
}

func (t *Transformer) getValue(v any) sxpf.Object {
	switch val := v.(type) {
	case nil:
		return t.symNull
	case string:
		return sxpf.MakeString(val)
	case bool:
		if val {
			return t.symTrue
		}
		return t.symFalse
	case []any:
		objs := make([]sxpf.Object, len(val))
		for i, elem := range val {
			objs[i] = t.getValue(elem)
		}
		return sxpf.MakeList(objs...)
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		objs := make([]sxpf.Object, len(keys))
		for i, k := range keys {
			objs[i] = sxpf.Cons(sxpf.MakeString(k), t.getValue(val[k]))
		}
		return sxpf.MakeList(objs...).Cons(t.symQuote)
	case float64:
		if i, ok := ast.ToInt(val); ok {
			return sxpf.MakeInteger64(i)
		}
		return sxpf.MakeString(strconv.FormatFloat(val, 'g', -1, 64))
	}
	if i, ok := ast.ToInt(v); ok {
		return sxpf.MakeInteger64(i)
	}
	return t.symNull
}
