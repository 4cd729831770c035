//-----------------------------------------------------------------------------
// Copyright (c) 2024-present Detlef Stern
//
// This file is part of Blockmark.
//
// Blockmark is licensed under the latest version of the EUPL (European Union
// Public License). Please see file LICENSE.txt for your rights and obligations
// under this license.
//-----------------------------------------------------------------------------

package tests

import (
	"io"
	"strings"
	"testing"

	_ "blockmark.de/b/cmd"
	"blockmark.de/b/blocklib"
	"blockmark.de/b/encoder"
	"blockmark.de/b/parser"
)

// Test all parser / encoder with a list of "naughty strings", i.e. unusual strings
// that often crash software.

var naughtyStrings = []string{
	"",
	" ",
	"\t\n\r",
	"<!--",
	"-->",
	"<!-- -->",
	"<!-- wp: -->",
	"<!-- wp:paragraph",
	"<!-- wp:paragraph -->",
	"<!-- /wp:paragraph -->",
	"<!-- wp:paragraph /-->",
	"<!-- wp:paragraph {} -->",
	"<!-- wp:paragraph {\"a\": -->x<!-- /wp:paragraph -->",
	"<!-- wp:paragraph {\"a\":\"--\"} --><p>x</p><!-- /wp:paragraph -->",
	"<!-- wp:group --><!-- wp:group --><!-- /wp:paragraph --><!-- /wp:group -->",
	"<!-- wp:list --><ul><!-- wp:list-item --><li>a</li><!-- /wp:list-item --></ul>",
	"<!-- wp:Foo/Bar --><!-- /wp:Foo/Bar -->",
	"<!-- wp:a/b/c --><!-- /wp:a/b/c -->",
	"<p>",
	"</p></div></ul>",
	"<script>alert(123)</script>",
	"<img src=x onerror=alert(1)//>",
	"<a href=\"javascript:alert(1)\">x</a>",
	"&lt;&gt;&amp;&#0;&#x110000;&bogus;",
	"# ",
	"* * *",
	"```",
	"[x](",
	"undefined",
	"null",
	"NaN",
	"0xffffffffffffffff",
	"1E+02",
	"    　﻿",
	"​‌‍⁠",
	"‮RTL‬",
	"Ω≈ç√∫˜µ≤≥÷",
	"田中さんにあげて下さい",
	"\U0001F600\U0001F468‍\U0001F469‍\U0001F467",
	"Z̮̞̠͙͔ͅḀ̗̞͈̻̗Ḷ͙͎̯̹̞͓G̻O̭̗̮",
	"\xff\xfe\x00",
	"\x00<!-- wp:paragraph -->\x00<!-- /wp:paragraph -->",
	strings.Repeat("<!-- wp:group -->", 200),
	strings.Repeat("<!-- /wp:group -->", 200),
}

func TestNaughtyStringParser(t *testing.T) {
	reg := blocklib.NewRegistry()
	syntaxes := parser.GetSyntaxes()
	if len(syntaxes) == 0 {
		t.Fatal("no parser found")
	}
	encs := encoder.GetEncodings()
	if len(encs) == 0 {
		t.Fatal("no encoder found")
	}
	for _, s := range naughtyStrings {
		for _, syntax := range syntaxes {
			pinfo := parser.Get(syntax)
			if syntax != pinfo.Name {
				continue
			}
			bs := pinfo.ParseBlocks([]byte(s), reg, &parser.Options{MaxDepth: 100})
			for _, enc := range encs {
				e, err := encoder.Create(enc, &encoder.Environment{Registry: reg})
				if err != nil {
					t.Fatal(err)
				}
				if _, err = e.WriteBlocks(io.Discard, bs); err != nil {
					t.Errorf("%s/%s: %q: %v", syntax, enc, s, err)
				}
			}
		}
	}
}
