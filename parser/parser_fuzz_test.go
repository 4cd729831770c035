//-----------------------------------------------------------------------------
// Copyright (c) 2024-present Detlef Stern
//
// This file is part of Blockmark.
//
// Blockmark is licensed under the latest version of the EUPL (European Union
// Public License). Please see file LICENSE.txt for your rights and obligations
// under this license.
//-----------------------------------------------------------------------------

package parser_test

import (
	"strings"
	"testing"

	"blockmark.de/b/blocklib"
	"blockmark.de/b/parser"
)

func FuzzParse(f *testing.F) {
	for _, src := range canonicalDocs {
		f.Add([]byte(src))
	}
	for _, src := range messyDocs {
		f.Add([]byte(src))
	}
	reg := blocklib.NewRegistry()
	f.Fuzz(func(t *testing.T, src []byte) {
		t.Parallel()
		bs := parser.Parse(src, reg, &parser.Options{MaxDepth: 50})
		var sb strings.Builder
		for _, b := range bs {
			sb.WriteString(b.Source)
		}
		if sb.String() != string(src) {
			t.Errorf("sources do not cover the input %q", src)
		}
		serialize(reg, bs)
	})
}
