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
	"strings"

	"golang.org/x/net/html"

	"blockmark.de/b/ast"
	"blockmark.de/b/dom"
	"blockmark.de/b/schema"
)

func imageType() *schema.BlockType {
	return &schema.BlockType{
		Name:  Image,
		Title: "Image",
		Attributes: []schema.Attribute{
			{Name: "url", Type: schema.TypeString, Source: schema.FromAttribute("img", "src")},
			{Name: "alt", Type: schema.TypeString, Default: "", Source: schema.FromAttribute("img", "alt")},
			{Name: "caption", Type: schema.TypeString, Source: schema.FromHTML("figcaption")},
			{Name: "id", Type: schema.TypeInteger, Source: schema.FromJSON()},
			{Name: "width", Type: schema.TypeInteger, Source: schema.FromAttribute("img", "width")},
			{Name: "sizeSlug", Type: schema.TypeString,
				Enum: []any{"thumbnail", "medium", "large", "full"}, Source: schema.FromJSON()},
		},
		Save: func(attrs *ast.Attributes, _ []*ast.Block) string {
			sizeClass := ""
			if size := attrs.GetString("sizeSlug"); size != "" {
				sizeClass = "size-" + size
			}
			idClass := ""
			if id := intString(attrs, "id"); id != "" {
				idClass = "wp-image-" + id
			}
			img := startTag("img").
				Attr("src", attrs.GetString("url")).
				Attr("alt", attrs.GetString("alt")).
				Class(idClass).
				Opt("width", intString(attrs, "width")).
				Void()
			return startTag("figure").Class("wp-block-image", sizeClass).Wrap("figure",
				img, optionalElement("figcaption", "wp-element-caption", attrs.GetString("caption")))
		},
		Transforms: []schema.RawTransform{{
			Selector: "figure,img",
			IsMatch: func(n *html.Node) bool {
				return dom.IsElement(n, "img") || dom.MatchFirst(n, "img") != nil
			},
		}},
	}
}

var cellAttrs = []schema.Attribute{
	{Name: "content", Type: schema.TypeString, Default: "", Source: schema.FromHTML("")},
	{Name: "tag", Type: schema.TypeString, Default: "td", Enum: []any{"td", "th"}, Source: schema.FromTag("")},
}

func rowsAttr(name, section string) schema.Attribute {
	return schema.Attribute{
		Name:   name,
		Type:   schema.TypeArray,
		Source: schema.FromQuery(section+" > tr", schema.Attribute{
			Name: "cells", Type: schema.TypeArray, Source: schema.FromQuery("td,th", cellAttrs...),
		}),
	}
}

func tableType() *schema.BlockType {
	return &schema.BlockType{
		Name:  Table,
		Title: "Table",
		Attributes: []schema.Attribute{
			{Name: "hasFixedLayout", Type: schema.TypeBoolean, Default: false, Source: schema.FromJSON()},
			rowsAttr("head", "thead"),
			rowsAttr("body", "tbody"),
			rowsAttr("foot", "tfoot"),
			{Name: "caption", Type: schema.TypeString, Source: schema.FromHTML("figcaption")},
		},
		Save: func(attrs *ast.Attributes, _ []*ast.Block) string {
			fixed := ""
			if attrs.GetBool("hasFixedLayout") {
				fixed = "has-fixed-layout"
			}
			table := startTag("table").Class(fixed).Wrap("table",
				tableSection(attrs, "head", "thead"),
				tableSection(attrs, "body", "tbody"),
				tableSection(attrs, "foot", "tfoot"))
			return startTag("figure").Class("wp-block-table").Wrap("figure",
				table, optionalElement("figcaption", "wp-element-caption", attrs.GetString("caption")))
		},
		Transforms: []schema.RawTransform{{Selector: "table"}},
	}
}

func tableSection(attrs *ast.Attributes, key, tag string) string {
	v, _ := attrs.Get(key)
	rows, _ := v.([]any)
	if len(rows) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, row := range rows {
		r, _ := row.(map[string]any)
		cells, _ := r["cells"].([]any)
		sb.WriteString("<tr>")
		for _, cell := range cells {
			c, _ := cell.(map[string]any)
			cellTag, _ := c["tag"].(string)
			if cellTag != "th" {
				cellTag = "td"
			}
			content, _ := c["content"].(string)
			sb.WriteString(element(cellTag, content))
		}
		sb.WriteString("</tr>")
	}
	return element(tag, sb.String())
}

func separatorType() *schema.BlockType {
	return &schema.BlockType{
		Name:  Separator,
		Title: "Separator",
		Save: func(*ast.Attributes, []*ast.Block) string {
			return startTag("hr").Class("wp-block-separator", "has-alpha-channel-opacity").Void()
		},
		Transforms: []schema.RawTransform{{Selector: "hr"}},
	}
}

func groupType() *schema.BlockType {
	return &schema.BlockType{
		Name:  Group,
		Title: "Group",
		Attributes: []schema.Attribute{
			{Name: "tagName", Type: schema.TypeString, Default: "div",
				Enum: []any{"div", "section", "main", "article", "aside", "header", "footer"}, Source: schema.FromJSON()},
		},
		Save: func(attrs *ast.Attributes, _ []*ast.Block) string {
			tag := attrs.GetString("tagName")
			if tag == "" {
				tag = "div"
			}
			return startTag(tag).Class("wp-block-group").Wrap(tag, schema.InnerBlocksPlaceholder)
		},
	}
}
