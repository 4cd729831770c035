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
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"blockmark.de/b/ast"
	"blockmark.de/b/dom"
	"blockmark.de/b/richtext"
	"blockmark.de/b/schema"
)

func alignClass(align string) string {
	if align == "" {
		return ""
	}
	return "has-text-align-" + align
}

var paragraphAttrs = []schema.Attribute{
	{Name: "content", Type: schema.TypeString, Default: "", Source: schema.FromHTML("p")},
	{Name: "align", Type: schema.TypeString, Enum: []any{"left", "center", "right"}, Source: schema.FromJSON()},
	{Name: "dropCap", Type: schema.TypeBoolean, Default: false, Source: schema.FromJSON()},
}

func paragraphType() *schema.BlockType {
	return &schema.BlockType{
		Name:       Paragraph,
		Title:      "Paragraph",
		Attributes: paragraphAttrs,
		Save:       saveParagraph,
		Deprecated: []schema.Deprecation{
			// Alignment was stored as inline style.
			{Save: func(attrs *ast.Attributes, _ []*ast.Block) string {
				tb := startTag("p")
				if align := attrs.GetString("align"); align != "" {
					tb.Attr("style", "text-align:"+align)
				}
				if attrs.GetBool("dropCap") {
					tb.Class("has-drop-cap")
				}
				return tb.Wrap("p", attrs.GetString("content"))
			}},
		},
		Transforms: []schema.RawTransform{{Selector: "p"}},
	}
}

func saveParagraph(attrs *ast.Attributes, _ []*ast.Block) string {
	dropCap := ""
	if attrs.GetBool("dropCap") {
		dropCap = "has-drop-cap"
	}
	return startTag("p").Class(alignClass(attrs.GetString("align")), dropCap).Wrap("p", attrs.GetString("content"))
}

const headingSelector = "h1,h2,h3,h4,h5,h6"

func headingType() *schema.BlockType {
	return &schema.BlockType{
		Name:  Heading,
		Title: "Heading",
		Attributes: []schema.Attribute{
			{Name: "content", Type: schema.TypeString, Default: "", Source: schema.FromHTML(headingSelector)},
			{Name: "level", Type: schema.TypeInteger, Default: int64(2), Source: schema.FromJSON()},
			{Name: "textAlign", Type: schema.TypeString, Source: schema.FromJSON()},
			{Name: "anchor", Type: schema.TypeString, Source: schema.FromAttribute(headingSelector, "id")},
		},
		Save: func(attrs *ast.Attributes, _ []*ast.Block) string {
			return saveHeading(attrs, "wp-block-heading")
		},
		Deprecated: []schema.Deprecation{
			{Save: func(attrs *ast.Attributes, _ []*ast.Block) string { return saveHeading(attrs, "") }},
		},
		Transforms: []schema.RawTransform{{
			Selector: headingSelector,
			Transform: func(n *html.Node) *ast.Block {
				attrs := ast.NewAttributes().
					Set("content", dom.InnerHTML(n)).
					Set("level", int64(n.Data[1]-'0'))
				if id, found := dom.Attr(n, "id"); found && id != "" {
					attrs.Set("anchor", id)
				}
				return ast.NewBlock(Heading, attrs)
			},
		}},
	}
}

func saveHeading(attrs *ast.Attributes, class string) string {
	level, ok := attrs.GetInt("level")
	if !ok || level < 1 || level > 6 {
		level = 2
	}
	tag := "h" + strconv.FormatInt(level, 10)
	return startTag(tag).
		Class(class, alignClass(attrs.GetString("textAlign"))).
		Opt("id", attrs.GetString("anchor")).
		Wrap(tag, attrs.GetString("content"))
}

func listType() *schema.BlockType {
	return &schema.BlockType{
		Name:  List,
		Title: "List",
		Attributes: []schema.Attribute{
			{Name: "ordered", Type: schema.TypeBoolean, Default: false, Source: schema.FromJSON()},
			{Name: "start", Type: schema.TypeInteger, Source: schema.FromJSON()},
			{Name: "reversed", Type: schema.TypeBoolean, Default: false, Source: schema.FromJSON()},
		},
		Save: func(attrs *ast.Attributes, _ []*ast.Block) string {
			return saveList(attrs, "wp-block-list", schema.InnerBlocksPlaceholder)
		},
		Deprecated: []schema.Deprecation{{
			// List items were stored as markup in one attribute.
			Attributes: []schema.Attribute{
				{Name: "ordered", Type: schema.TypeBoolean, Default: false, Source: schema.FromJSON()},
				{Name: "values", Type: schema.TypeString, Default: "", Source: schema.FromHTML("ol,ul")},
				{Name: "start", Type: schema.TypeInteger, Source: schema.FromJSON()},
				{Name: "reversed", Type: schema.TypeBoolean, Default: false, Source: schema.FromJSON()},
			},
			Save: func(attrs *ast.Attributes, _ []*ast.Block) string {
				return saveList(attrs, "", attrs.GetString("values"))
			},
			Migrate: func(attrs *ast.Attributes, inner []*ast.Block) (*ast.Attributes, []*ast.Block) {
				root := dom.Parse("<ul>" + attrs.GetString("values") + "</ul>")
				if ul := dom.FirstElement(root); ul != nil {
					inner = append(inner, listItems(ul)...)
				}
				attrs.Remove("values")
				return attrs, inner
			},
		}},
		Transforms: []schema.RawTransform{{
			Selector: "ul,ol",
			Transform: func(n *html.Node) *ast.Block {
				attrs := ast.NewAttributes()
				if n.Data == "ol" {
					attrs.Set("ordered", true)
					if start, found := dom.Attr(n, "start"); found {
						if i, err := strconv.ParseInt(strings.TrimSpace(start), 10, 64); err == nil {
							attrs.Set("start", i)
						}
					}
					if _, found := dom.Attr(n, "reversed"); found {
						attrs.Set("reversed", true)
					}
				}
				return ast.NewBlock(List, attrs, listItems(n)...)
			},
		}},
	}
}

func saveList(attrs *ast.Attributes, class, content string) string {
	if attrs.GetBool("ordered") {
		return startTag("ol").Class(class).
			Opt("start", intString(attrs, "start")).
			Flag("reversed", attrs.GetBool("reversed")).
			Wrap("ol", content)
	}
	return startTag("ul").Class(class).Wrap("ul", content)
}

// listItems converts the li children of a list element into list item
// blocks. Nested lists become inner blocks of their item.
func listItems(list *html.Node) []*ast.Block {
	var result []*ast.Block
	for c := list.FirstChild; c != nil; c = c.NextSibling {
		if !dom.IsElement(c, "li") {
			continue
		}
		var content strings.Builder
		var nested []*ast.Block
		for gc := c.FirstChild; gc != nil; gc = gc.NextSibling {
			if dom.IsElement(gc, "ul", "ol") {
				attrs := ast.NewAttributes().Set("ordered", gc.Data == "ol")
				nested = append(nested, ast.NewBlock(List, attrs, listItems(gc)...))
				continue
			}
			content.WriteString(dom.OuterHTML(gc))
		}
		attrs := ast.NewAttributes().Set("content", strings.TrimSpace(content.String()))
		result = append(result, ast.NewBlock(ListItem, attrs, nested...))
	}
	return result
}

func listItemType() *schema.BlockType {
	return &schema.BlockType{
		Name:  ListItem,
		Title: "List item",
		Attributes: []schema.Attribute{
			{Name: "content", Type: schema.TypeString, Default: "", Source: schema.FromHTML("li")},
		},
		Save: func(attrs *ast.Attributes, _ []*ast.Block) string {
			return element("li", attrs.GetString("content"), schema.InnerBlocksPlaceholder)
		},
		Parent: []string{List},
	}
}

func quoteType() *schema.BlockType {
	return &schema.BlockType{
		Name:  Quote,
		Title: "Quote",
		Attributes: []schema.Attribute{
			{Name: "citation", Type: schema.TypeString, Source: schema.FromHTML("cite")},
		},
		Save: func(attrs *ast.Attributes, _ []*ast.Block) string {
			return startTag("blockquote").Class("wp-block-quote").Wrap("blockquote",
				schema.InnerBlocksPlaceholder, optionalElement("cite", "", attrs.GetString("citation")))
		},
		Deprecated: []schema.Deprecation{{
			// Paragraphs were stored as a list of values.
			Attributes: []schema.Attribute{
				{Name: "value", Type: schema.TypeArray, Source: schema.FromQuery("blockquote > p",
					schema.Attribute{Name: "content", Type: schema.TypeString, Default: "", Source: schema.FromHTML("")})},
				{Name: "citation", Type: schema.TypeString, Source: schema.FromHTML("cite")},
			},
			Save: func(attrs *ast.Attributes, _ []*ast.Block) string {
				var sb strings.Builder
				for _, content := range quoteValues(attrs) {
					sb.WriteString(element("p", content))
				}
				return startTag("blockquote").Class("wp-block-quote").Wrap("blockquote",
					sb.String(), optionalElement("cite", "", attrs.GetString("citation")))
			},
			Migrate: func(attrs *ast.Attributes, inner []*ast.Block) (*ast.Attributes, []*ast.Block) {
				for _, content := range quoteValues(attrs) {
					inner = append(inner, ast.NewBlock(Paragraph, ast.NewAttributes().Set("content", content)))
				}
				attrs.Remove("value")
				return attrs, inner
			},
		}},
		Transforms: []schema.RawTransform{{
			Selector: "blockquote",
			Transform: func(n *html.Node) *ast.Block {
				attrs := ast.NewAttributes()
				var inner []*ast.Block
				var loose strings.Builder
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					switch {
					case dom.IsElement(c, "cite"):
						attrs.Set("citation", dom.InnerHTML(c))
					case dom.IsElement(c, "p"):
						inner = append(inner, ast.NewBlock(Paragraph, ast.NewAttributes().Set("content", dom.InnerHTML(c))))
					default:
						loose.WriteString(dom.OuterHTML(c))
					}
				}
				if text := strings.TrimSpace(loose.String()); text != "" {
					inner = append(inner, ast.NewBlock(Paragraph, ast.NewAttributes().Set("content", text)))
				}
				return ast.NewBlock(Quote, attrs, inner...)
			},
		}},
	}
}

func quoteValues(attrs *ast.Attributes) []string {
	v, _ := attrs.Get("value")
	items, _ := v.([]any)
	result := make([]string, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			s, _ := m["content"].(string)
			result = append(result, s)
		}
	}
	return result
}

func codeType() *schema.BlockType {
	return &schema.BlockType{
		Name:  Code,
		Title: "Code",
		Attributes: []schema.Attribute{
			{Name: "content", Type: schema.TypeString, Default: "", Source: schema.FromHTML("code")},
		},
		Save: func(attrs *ast.Attributes, _ []*ast.Block) string {
			return startTag("pre").Class("wp-block-code").Wrap("pre", element("code", attrs.GetString("content")))
		},
		Transforms: []schema.RawTransform{{
			Selector: "pre",
			Transform: func(n *html.Node) *ast.Block {
				content := dom.InnerHTML(n)
				if code := dom.MatchFirst(n, "code"); code != nil {
					content = dom.InnerHTML(code)
				}
				return ast.NewBlock(Code, ast.NewAttributes().Set("content", content))
			},
		}},
	}
}

func verseType() *schema.BlockType {
	return &schema.BlockType{
		Name:  Verse,
		Title: "Verse",
		Attributes: []schema.Attribute{
			{Name: "content", Type: schema.TypeRichText, Default: []any{}, Source: schema.FromChildren("pre")},
		},
		Save: func(attrs *ast.Attributes, _ []*ast.Block) string {
			v, _ := attrs.Get("content")
			nodes, _ := v.([]any)
			return startTag("pre").Class("wp-block-verse").Wrap("pre", richtext.ToHTML(nodes))
		},
	}
}

func postExcerptType() *schema.BlockType {
	return &schema.BlockType{
		Name:  PostExcerpt,
		Title: "Excerpt",
		Attributes: []schema.Attribute{
			{Name: "excerpt", Type: schema.TypeString, Default: "", Source: schema.FromMeta("excerpt")},
			{Name: "moreText", Type: schema.TypeString, Source: schema.FromJSON()},
		},
		Save: func(attrs *ast.Attributes, _ []*ast.Block) string {
			return startTag("div").Class("wp-block-post-excerpt").Wrap("div",
				optionalElement("p", "wp-block-post-excerpt__excerpt", attrs.GetString("excerpt")),
				optionalElement("p", "wp-block-post-excerpt__more-text", attrs.GetString("moreText")))
		},
	}
}
