//-----------------------------------------------------------------------------
// Copyright (c) 2024-present Detlef Stern
//
// This file is part of Blockmark.
//
// Blockmark is licensed under the latest version of the EUPL (European Union
// Public License). Please see file LICENSE.txt for your rights and obligations
// under this license.
//-----------------------------------------------------------------------------

// Package blocklib provides the core block types.
package blocklib

import (
	"strconv"
	"strings"

	"blockmark.de/b/ast"
	"blockmark.de/b/dom"
	"blockmark.de/b/schema"
)

// Names of the core block types.
const (
	Freeform    = schema.DefaultFreeformName
	Missing     = schema.DefaultUnregisteredName
	HTML        = "core/html"
	Paragraph   = "core/paragraph"
	Heading     = "core/heading"
	List        = "core/list"
	ListItem    = "core/list-item"
	Quote       = "core/quote"
	Code        = "core/code"
	Verse       = "core/verse"
	Image       = "core/image"
	Table       = "core/table"
	Separator   = "core/separator"
	Group       = "core/group"
	PostExcerpt = "core/post-excerpt"
)

// Register adds all core block types to the registry.
func Register(reg *schema.Registry) {
	reg.MustRegister(
		freeformType(),
		missingType(),
		htmlType(),
		paragraphType(),
		headingType(),
		listType(),
		listItemType(),
		quoteType(),
		codeType(),
		verseType(),
		imageType(),
		tableType(),
		separatorType(),
		groupType(),
		postExcerptType(),
	)
}

// NewRegistry returns a new registry with all core block types.
func NewRegistry() *schema.Registry {
	reg := schema.NewRegistry()
	Register(reg)
	return reg
}

// tagBuilder writes a start tag with optional attributes.
type tagBuilder struct {
	sb strings.Builder
}

func startTag(name string) *tagBuilder {
	tb := &tagBuilder{}
	tb.sb.WriteByte('<')
	tb.sb.WriteString(name)
	return tb
}

// Class adds a class attribute, if at least one class is not empty.
func (tb *tagBuilder) Class(classes ...string) *tagBuilder {
	var nonEmpty []string
	for _, cls := range classes {
		if cls != "" {
			nonEmpty = append(nonEmpty, cls)
		}
	}
	return tb.Opt("class", strings.Join(nonEmpty, " "))
}

// Attr adds an attribute.
func (tb *tagBuilder) Attr(key, val string) *tagBuilder {
	tb.sb.WriteByte(' ')
	tb.sb.WriteString(key)
	tb.sb.WriteString(`="`)
	tb.sb.WriteString(dom.EscapeAttr(val))
	tb.sb.WriteByte('"')
	return tb
}

// Opt adds an attribute, if the value is not empty.
func (tb *tagBuilder) Opt(key, val string) *tagBuilder {
	if val != "" {
		return tb.Attr(key, val)
	}
	return tb
}

// Flag adds an attribute without value.
func (tb *tagBuilder) Flag(key string, set bool) *tagBuilder {
	if set {
		tb.sb.WriteByte(' ')
		tb.sb.WriteString(key)
	}
	return tb
}

// Void returns a self-closing tag.
func (tb *tagBuilder) Void() string {
	tb.sb.WriteString("/>")
	return tb.sb.String()
}

// Wrap returns the element with the given content and its end tag.
func (tb *tagBuilder) Wrap(name string, content ...string) string {
	tb.sb.WriteByte('>')
	for _, c := range content {
		tb.sb.WriteString(c)
	}
	tb.sb.WriteString("</")
	tb.sb.WriteString(name)
	tb.sb.WriteByte('>')
	return tb.sb.String()
}

func element(name string, content ...string) string { return startTag(name).Wrap(name, content...) }

func optionalElement(name, class, content string) string {
	if content == "" {
		return ""
	}
	return startTag(name).Class(class).Wrap(name, content)
}

func intString(attrs *ast.Attributes, key string) string {
	if n, ok := attrs.GetInt(key); ok {
		return strconv.FormatInt(n, 10)
	}
	return ""
}
