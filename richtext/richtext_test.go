//-----------------------------------------------------------------------------
// Copyright (c) 2024-present Detlef Stern
//
// This file is part of Blockmark.
//
// Blockmark is licensed under the latest version of the EUPL (European Union
// Public License). Please see file LICENSE.txt for your rights and obligations
// under this license.
//-----------------------------------------------------------------------------

package richtext_test

import (
	"testing"

	"blockmark.de/b/richtext"
)

func TestHTML(t *testing.T) {
	t.Parallel()
	testcases := []struct {
		src  string
		html string
		text string
	}{
		{"", "", ""},
		{"plain", "plain", "plain"},
		{"a <strong>b</strong> c", "a <strong>b</strong> c", "a b c"},
		{`<a class="x" href="/y">l<br>i</a>`, `<a class="x" href="/y">l<br/>i</a>`, "li"},
		{"1 &lt; 2", "1 &lt; 2", "1 < 2"},
	}
	for _, tc := range testcases {
		nodes := richtext.FromHTML(tc.src)
		if got := richtext.ToHTML(nodes); got != tc.html {
			t.Errorf("ToHTML(%q):\nExpected: %q\nGot:      %q", tc.src, tc.html, got)
		}
		if got := richtext.Text(nodes); got != tc.text {
			t.Errorf("Text(%q):\nExpected: %q\nGot:      %q", tc.src, tc.text, got)
		}
	}
}

func TestNodeShape(t *testing.T) {
	t.Parallel()
	nodes := richtext.FromHTML("x<em>y</em>")
	if len(nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d: %v", len(nodes), nodes)
	}
	if s, ok := nodes[0].(string); !ok || s != "x" {
		t.Errorf("first node should be text %q, got %v", "x", nodes[0])
	}
	elem, ok := nodes[1].(map[string]any)
	if !ok || elem[richtext.KeyType] != "em" {
		t.Fatalf("second node should be an em element, got %v", nodes[1])
	}
	props := elem[richtext.KeyProps].(map[string]any)
	children := props[richtext.KeyChildren].([]any)
	if len(children) != 1 || children[0] != "y" {
		t.Errorf("unexpected children %v", children)
	}
}
