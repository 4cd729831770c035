//-----------------------------------------------------------------------------
// Copyright (c) 2024-present Detlef Stern
//
// This file is part of Blockmark.
//
// Blockmark is licensed under the latest version of the EUPL (European Union
// Public License). Please see file LICENSE.txt for your rights and obligations
// under this license.
//-----------------------------------------------------------------------------

// Package rawhandler converts foreign markup, like pasted HTML or plain
// text, into blocks.
package rawhandler

import (
	"strings"

	"golang.org/x/net/html"

	"blockmark.de/b/ast"
	"blockmark.de/b/dom"
	"blockmark.de/b/extractor"
	"blockmark.de/b/logger"
	"blockmark.de/b/parser/cleaner"
	"blockmark.de/b/schema"
)

// Mode states the kind of result.
type Mode uint8

// Constants for Mode.
const (
	ModeBlocks Mode = iota // Result is a list of blocks
	ModeInline             // Result is phrasing markup
)

// ParseMode returns the mode for the given text, ModeBlocks if unknown.
func ParseMode(s string) Mode {
	if strings.EqualFold(strings.TrimSpace(s), "inline") {
		return ModeInline
	}
	return ModeBlocks
}

func (m Mode) String() string {
	if m == ModeInline {
		return "inline"
	}
	return "blocks"
}

// TextFormat states how plain text is interpreted, if there is no markup.
type TextFormat uint8

// Constants for TextFormat.
const (
	TextAuto     TextFormat = iota // Markdown, if the text looks like it
	TextMarkdown                   // Always markdown
	TextPlain                      // Never markdown
)

// Options configure the conversion.
type Options struct {
	HTML       string // Markup to convert
	PlainText  string // Plain text version of the same content, optional
	Mode       Mode
	TextFormat TextFormat
	Stages     []Stage // If nil, DefaultStages are used
	Extract    *extractor.Options
	Logger     *logger.Logger
}

// Result of a conversion.
type Result struct {
	Blocks []*ast.Block // ModeBlocks
	HTML   string       // ModeInline
}

// Handle converts the markup of the options into blocks. It never fails and
// does not parse block delimiters: comments are removed like all other
// unwanted markup.
func Handle(reg *schema.Registry, opts Options) Result {
	markup, plain := opts.HTML, opts.PlainText
	if strings.TrimSpace(markup) == "" {
		markup = textToHTML(plain, opts.TextFormat)
		plain = ""
	}
	root := dom.Parse(markup)
	state := State{Root: root, PlainText: plain, Logger: opts.Logger}
	stages := opts.Stages
	if stages == nil {
		stages = DefaultStages()
	}
	for _, st := range stages {
		opts.Logger.Trace().Str("stage", st.Name).Msg("run")
		st.Run(&state)
	}

	if opts.Mode == ModeInline {
		return Result{HTML: inlineHTML(state.Root)}
	}
	conv := converter{reg: reg, opts: &opts}
	bs := conv.convert(state.Root)
	cleaner.CleanBlocks(bs)
	return Result{Blocks: bs}
}

// inlineHTML removes all block level elements. Their content is separated
// by line breaks.
func inlineHTML(root *html.Node) string {
	for _, n := range collect(root, func(n *html.Node) bool {
		return n.Type == html.ElementNode && !isPhrasing(n)
	}) {
		if n.NextSibling != nil && strings.TrimSpace(dom.Text(n)) != "" {
			n.Parent.InsertBefore(dom.NewElement("br"), n.NextSibling)
		}
		dom.Unwrap(n)
	}
	return strings.TrimSpace(dom.InnerHTML(root))
}
