//-----------------------------------------------------------------------------
// Copyright (c) 2024-present Detlef Stern
//
// This file is part of Blockmark.
//
// Blockmark is licensed under the latest version of the EUPL (European Union
// Public License). Please see file LICENSE.txt for your rights and obligations
// under this license.
//-----------------------------------------------------------------------------

// Package cleaner provides functions to clean up parsed or converted blocks.
package cleaner

import (
	"blockmark.de/b/ast"
	"blockmark.de/b/blocklib"
	"blockmark.de/b/dom"
	"blockmark.de/b/strfun"
)

const anchorKey = "anchor"

// CleanBlocks assigns an anchor to every heading block without one. The
// anchor is derived from the heading text and is unique within the blocks.
func CleanBlocks(bs []*ast.Block) {
	cv := cleanVisitor{doAssign: false}
	ast.WalkBlockSlice(&cv, bs)
	cv.doAssign = true
	ast.WalkBlockSlice(&cv, bs)
}

type cleanVisitor struct {
	ids      strfun.UniqueSlugs
	doAssign bool
}

func (cv *cleanVisitor) Visit(b *ast.Block) ast.WalkVisitor {
	if b == nil {
		return nil
	}
	if b.Name == blocklib.Heading {
		cv.visitHeading(b)
		return nil
	}
	return cv
}

func (cv *cleanVisitor) visitHeading(b *ast.Block) {
	anchor := b.Attrs.GetString(anchorKey)
	if !cv.doAssign {
		if anchor != "" {
			cv.ids.Reserve(anchor)
		}
		return
	}
	if anchor != "" {
		return
	}
	text := dom.Text(dom.Parse(b.Attrs.GetString("content")))
	if slug := strfun.Slugify(text); slug != "" {
		b.Attrs.Set(anchorKey, cv.ids.Add(slug))
	}
}
