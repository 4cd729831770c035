//-----------------------------------------------------------------------------
// Copyright (c) 2024-present Detlef Stern
//
// This file is part of Blockmark.
//
// Blockmark is licensed under the latest version of the EUPL (European Union
// Public License). Please see file LICENSE.txt for your rights and obligations
// under this license.
//-----------------------------------------------------------------------------

// Package parser builds block trees from delimited documents, and provides
// a registry of parsers for other input syntaxes.
package parser

import (
	"fmt"
	"sort"

	"blockmark.de/b/ast"
	"blockmark.de/b/extractor"
	"blockmark.de/b/logger"
	"blockmark.de/b/parser/grammar"
	"blockmark.de/b/schema"
	"blockmark.de/b/validator"
)

// DefaultMaxDepth is the maximum nesting depth of blocks, if not configured.
const DefaultMaxDepth = 1000

// Options configure parsing.
type Options struct {
	MaxDepth int // Deeper blocks are literal text; zero means DefaultMaxDepth
	Extract  *extractor.Options
	Logger   *logger.Logger
}

func (opts *Options) maxDepth() int {
	if opts != nil && opts.MaxDepth > 0 {
		return opts.MaxDepth
	}
	return DefaultMaxDepth
}

func (opts *Options) extract() *extractor.Options {
	if opts != nil {
		return opts.Extract
	}
	return nil
}

func (opts *Options) logger() *logger.Logger {
	if opts != nil {
		return opts.Logger
	}
	return nil
}

// Parse parses a delimited document into a tree of validated blocks.
// It never fails: malformed delimiters become literal text, blocks of
// unknown types are retained, and blocks that do not match their type are
// marked as invalid.
func Parse(src []byte, reg *schema.Registry, opts *Options) []*ast.Block {
	if reg == nil {
		reg = schema.NewRegistry()
	}
	log := opts.logger()
	toks := grammar.Scan(src)
	log.Trace().Int("tokens", int64(len(toks))).Msg("scanned")
	bs := Build(src, toks, reg, opts)
	Resolve(reg, bs, opts)
	validator.ValidateBlocks(reg, bs, &validator.Options{Extract: opts.extract(), Logger: log})
	return bs
}

// Info describes a parser for an input syntax.
type Info struct {
	Name     string
	AltNames []string

	// IsRaw is true, if the input is foreign markup. The result must be
	// serialized to become a delimited document.
	IsRaw       bool
	ParseBlocks func(src []byte, reg *schema.Registry, opts *Options) []*ast.Block
}

// SyntaxBlock is the syntax of delimited documents.
const SyntaxBlock = "block"

var registry = map[string]*Info{}

// Register the parser (info) for later retrieval.
func Register(pi *Info) {
	if _, ok := registry[pi.Name]; ok {
		panic(fmt.Sprintf("Parser %q already registered", pi.Name))
	}
	registry[pi.Name] = pi
	for _, alt := range pi.AltNames {
		if _, ok := registry[alt]; ok {
			panic(fmt.Sprintf("Parser %q already registered", alt))
		}
		registry[alt] = pi
	}
}

func init() {
	Register(&Info{
		Name:        SyntaxBlock,
		AltNames:    []string{"wp"},
		ParseBlocks: Parse,
	})
}

// GetSyntaxes returns a sorted list of syntaxes implemented by all
// registered parsers.
func GetSyntaxes() []string {
	result := make([]string, 0, len(registry))
	for syntax := range registry {
		result = append(result, syntax)
	}
	sort.Strings(result)
	return result
}

// Get the parser (info) by name. If name not found, the parser for
// delimited documents is returned.
func Get(name string) *Info {
	if pi := registry[name]; pi != nil {
		return pi
	}
	return registry[SyntaxBlock]
}

// IsRaw returns whether the given syntax is foreign markup.
func IsRaw(syntax string) bool {
	pi, ok := registry[syntax]
	return ok && pi.IsRaw
}
