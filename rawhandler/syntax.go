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
	"blockmark.de/b/ast"
	"blockmark.de/b/parser"
	"blockmark.de/b/schema"
)

// Syntaxes of foreign markup.
const (
	SyntaxHTML     = "html"
	SyntaxMarkdown = "markdown"
	SyntaxPlain    = "plain"
)

func init() {
	parser.Register(&parser.Info{
		Name:        SyntaxHTML,
		AltNames:    []string{"htm"},
		IsRaw:       true,
		ParseBlocks: func(src []byte, reg *schema.Registry, opts *parser.Options) []*ast.Block { return parse(reg, opts, string(src), "", TextAuto) },
	})
	parser.Register(&parser.Info{
		Name:        SyntaxMarkdown,
		AltNames:    []string{"md"},
		IsRaw:       true,
		ParseBlocks: func(src []byte, reg *schema.Registry, opts *parser.Options) []*ast.Block { return parse(reg, opts, "", string(src), TextMarkdown) },
	})
	parser.Register(&parser.Info{
		Name:        SyntaxPlain,
		AltNames:    []string{"text", "txt"},
		IsRaw:       true,
		ParseBlocks: func(src []byte, reg *schema.Registry, opts *parser.Options) []*ast.Block { return parse(reg, opts, "", string(src), TextPlain) },
	})
}

func parse(reg *schema.Registry, popts *parser.Options, markup, text string, format TextFormat) []*ast.Block {
	if reg == nil {
		reg = schema.NewRegistry()
	}
	opts := Options{HTML: markup, PlainText: text, TextFormat: format}
	if popts != nil {
		opts.Extract = popts.Extract
		opts.Logger = popts.Logger
	}
	return Handle(reg, opts).Blocks
}
