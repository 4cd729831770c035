//-----------------------------------------------------------------------------
// Copyright (c) 2024-present Detlef Stern
//
// This file is part of Blockmark.
//
// Blockmark is licensed under the latest version of the EUPL (European Union
// Public License). Please see file LICENSE.txt for your rights and obligations
// under this license.
//-----------------------------------------------------------------------------

package blocklib

import (
	"blockmark.de/b/ast"
	"blockmark.de/b/schema"
)

func freeformType() *schema.BlockType {
	return &schema.BlockType{
		Name:  Freeform,
		Title: "Classic",
		Attributes: []schema.Attribute{
			{Name: ast.FreeformContentKey, Type: schema.TypeString, Source: schema.FromRaw()},
		},
		Save: saveRaw(ast.FreeformContentKey),
	}
}

func missingType() *schema.BlockType {
	return &schema.BlockType{
		Name:  Missing,
		Title: "Unsupported",
		Attributes: []schema.Attribute{
			{Name: schema.OriginalNameKey, Type: schema.TypeString, Source: schema.FromJSON()},
			{Name: schema.OriginalUndelimitedKey, Type: schema.TypeString, Source: schema.FromRaw()},
			{Name: schema.OriginalContentKey, Type: schema.TypeString, Source: schema.FromRaw()},
		},
		Save: saveRaw(schema.OriginalContentKey),
	}
}

func htmlType() *schema.BlockType {
	return &schema.BlockType{
		Name:  HTML,
		Title: "Custom HTML",
		Attributes: []schema.Attribute{
			{Name: "content", Type: schema.TypeString, Source: schema.FromRaw()},
		},
		Save: saveRaw("content"),
	}
}

func saveRaw(key string) schema.SaveFunc {
	return func(attrs *ast.Attributes, _ []*ast.Block) string { return attrs.GetString(key) }
}
