//-----------------------------------------------------------------------------
// Copyright (c) 2024-present Detlef Stern
//
// This file is part of Blockmark.
//
// Blockmark is licensed under the latest version of the EUPL (European Union
// Public License). Please see file LICENSE.txt for your rights and obligations
// under this license.
//-----------------------------------------------------------------------------

// Package encoder provides a generic interface to encode the block tree into
// some text form.
package encoder

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"blockmark.de/b/ast"
)

// Encoder is an interface that allows to encode a list of blocks.
type Encoder interface {
	WriteBlocks(io.Writer, []*ast.Block) (int, error)
}

// Names of the encodings.
const (
	EncodingBlock = "block" // Delimited document, the storage format
	EncodingSexpr = "sexpr" // Symbolic expression of the tree
	EncodingJSON  = "json"  // JSON object of the tree
	EncodingText  = "text"  // Text content only
)

// ErrUnknownEncoding is returned if an encoding is not registered.
var ErrUnknownEncoding = errors.New("unknown encoding")

// Create builds a new encoder with the given options.
func Create(enc string, env *Environment) (Encoder, error) {
	if info, ok := registry[enc]; ok {
		return info.Create(env), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, enc)
}

// Info stores some data about an encoder.
type Info struct {
	Create  func(*Environment) Encoder
	Default bool
}

var registry = map[string]Info{}
var defEncoding string

// Register the encoder for later retrieval.
func Register(enc string, info Info) {
	if _, ok := registry[enc]; ok {
		panic(fmt.Sprintf("Encoder %q already registered", enc))
	}
	if info.Default {
		if defEncoding != "" && defEncoding != enc {
			panic(fmt.Sprintf("Default encoder already set: %q, new encoding: %q", defEncoding, enc))
		}
		defEncoding = enc
	}
	registry[enc] = info
}

// GetEncodings returns all registered encodings, ordered by name.
func GetEncodings() []string {
	result := make([]string, 0, len(registry))
	for enc := range registry {
		result = append(result, enc)
	}
	sort.Strings(result)
	return result
}

// GetDefaultEncoding returns the encoding that should be used as default.
func GetDefaultEncoding() string {
	if defEncoding != "" {
		return defEncoding
	}
	if _, ok := registry[EncodingBlock]; ok {
		return EncodingBlock
	}
	panic("No default encoding given")
}
