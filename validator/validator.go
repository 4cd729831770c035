//-----------------------------------------------------------------------------
// Copyright (c) 2024-present Detlef Stern
//
// This file is part of Blockmark.
//
// Blockmark is licensed under the latest version of the EUPL (European Union
// Public License). Please see file LICENSE.txt for your rights and obligations
// under this license.
//-----------------------------------------------------------------------------

// Package validator checks, whether the content of a block can be reproduced
// by its block type, and migrates blocks written by former versions of a
// block type.
package validator

import (
	"strconv"

	"blockmark.de/b/ast"
	"blockmark.de/b/extractor"
	"blockmark.de/b/logger"
	"blockmark.de/b/schema"
)

// IssueInnerBlocksDropped is reported for blocks with inner blocks whose
// block type has no place for them.
const IssueInnerBlocksDropped = "inner blocks are not part of the saved content"

// Options configure validation.
type Options struct {
	Extract *extractor.Options
	Logger  *logger.Logger
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

// ValidateBlocks validates all blocks of the tree. Inner blocks are
// validated before their parent.
func ValidateBlocks(reg *schema.Registry, bs []*ast.Block, opts *Options) {
	ast.PostOrder(bs, func(b *ast.Block) { Validate(reg, b, opts) })
}

// Validate checks the block and sets its validity. If the block matches a
// deprecated version of its type, it is migrated: attributes and inner
// blocks are replaced and the block is marked as migrated.
func Validate(reg *schema.Registry, b *ast.Block, opts *Options) {
	b.Migrated = false
	b.Candidate = ""
	b.Issues = nil
	bt, found := reg.Lookup(b.Name)
	if !found || b.Opaque || reg.IsFreeform(b.Name) || reg.IsUnregistered(b.Name) {
		b.Validity = ast.Valid
		return
	}

	candidate := schema.SaveContent(bt.Save, b.Attrs, b.InnerBlocks)
	valid, issues := Equivalent(candidate, b.InnerHTML)
	if !schema.KeepsInnerBlocks(bt.Save, b.Attrs, b.InnerBlocks) {
		valid = false
		issues = append(issues, IssueInnerBlocksDropped)
	}
	log := opts.logger()
	for i, dep := range bt.Deprecated {
		if valid && (dep.IsEligible == nil || !dep.IsEligible(b.Attrs, b.InnerBlocks)) {
			continue
		}
		attrs, inner, ok := tryDeprecation(bt, dep, b, opts)
		if !ok {
			continue
		}
		b.Attrs = attrs
		b.InnerBlocks = inner
		b.Validity = ast.Valid
		b.Migrated = true
		log.Debug().Block(b.Name).Str("deprecation", strconv.Itoa(i)).Msg("migrated")
		return
	}
	if valid {
		b.Validity = ast.Valid
		return
	}
	b.Validity = ast.Invalid
	b.Candidate = candidate
	b.Issues = issues
	msg := log.Warn().Block(b.Name).Pos(b.Start, b.End)
	for _, issue := range issues {
		msg = msg.Quote("issue", issue)
	}
	msg.Msg("invalid block")
}

// tryDeprecation extracts the attributes with the schema of the deprecated
// version and compares its save output. On success the result is migrated
// and checked against the current block type.
func tryDeprecation(bt *schema.BlockType, dep schema.Deprecation, b *ast.Block, opts *Options) (*ast.Attributes, []*ast.Block, bool) {
	depSchema := dep.Attributes
	if depSchema == nil {
		depSchema = bt.Attributes
	}
	attrs := extractor.Extract(depSchema, b.JSONAttrs, b.InnerHTML, opts.extract())
	inner := ast.CloneBlocks(b.InnerBlocks)
	if ok, _ := Equivalent(schema.SaveContent(dep.Save, attrs, inner), b.InnerHTML); !ok {
		return nil, nil, false
	}
	if dep.Migrate != nil {
		attrs, inner = dep.Migrate(attrs, inner)
	}
	attrs = bt.NewAttributes(attrs.Map())
	if !schema.KeepsInnerBlocks(bt.Save, attrs, inner) {
		opts.logger().Debug().Block(b.Name).Msg("migration result drops inner blocks")
		return nil, nil, false
	}
	if !isStable(bt, attrs, inner, opts) {
		opts.logger().Debug().Block(b.Name).Msg("migration result not stable")
		return nil, nil, false
	}
	return attrs, inner, true
}

// isStable returns true, if the attributes can be extracted again from the
// save output of the current block type.
func isStable(bt *schema.BlockType, attrs *ast.Attributes, inner []*ast.Block, opts *Options) bool {
	content := schema.SaveContent(bt.Save, attrs, inner)
	again := extractor.Extract(bt.Attributes, bt.Persisted(attrs).Map(), content, opts.extract())
	for _, a := range bt.Attributes {
		v1, found1 := attrs.Get(a.Name)
		v2, found2 := again.Get(a.Name)
		if found1 != found2 || (found1 && !ast.ValueEqual(v1, v2)) {
			return false
		}
	}
	return true
}

// IsValid checks the block against the current version of its type,
// without considering deprecations.
func IsValid(bt *schema.BlockType, b *ast.Block) (bool, []string) {
	valid, issues := Equivalent(schema.SaveContent(bt.Save, b.Attrs, b.InnerBlocks), b.InnerHTML)
	if !schema.KeepsInnerBlocks(bt.Save, b.Attrs, b.InnerBlocks) {
		return false, append(issues, IssueInnerBlocksDropped)
	}
	return valid, issues
}
