//-----------------------------------------------------------------------------
// Copyright (c) 2024-present Detlef Stern
//
// This file is part of Blockmark.
//
// Blockmark is licensed under the latest version of the EUPL (European Union
// Public License). Please see file LICENSE.txt for your rights and obligations
// under this license.
//-----------------------------------------------------------------------------

package extractor_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"golang.org/x/net/html"

	"blockmark.de/b/ast"
	"blockmark.de/b/extractor"
	"blockmark.de/b/schema"
)

func jsonString(t *testing.T, attrs *ast.Attributes) string {
	t.Helper()
	if attrs.IsEmpty() {
		return "{}"
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(attrs.Map()); err != nil {
		t.Fatal(err)
	}
	return strings.TrimSpace(buf.String())
}

var imageSchema = []schema.Attribute{
	{Name: "url", Type: schema.TypeString, Source: schema.FromAttribute("img", "src")},
	{Name: "alt", Type: schema.TypeString, Default: "", Source: schema.FromAttribute("img", "alt")},
	{Name: "caption", Type: schema.TypeString, Source: schema.FromHTML("figcaption")},
	{Name: "width", Type: schema.TypeInteger, Source: schema.FromAttribute("img", "width")},
	{Name: "id", Type: schema.TypeInteger, Source: schema.FromJSON()},
	{Name: "sizeSlug", Type: schema.TypeString, Enum: []any{"large", "full"}, Default: "large", Source: schema.FromJSON()},
}

func TestExtract(t *testing.T) {
	t.Parallel()
	testcases := []struct {
		name   string
		json   string
		markup string
		exp    string
	}{
		{"all", `{"id":12,"sizeSlug":"full"}`,
			`<figure><img src="a.png" alt="An A" width="300"/><figcaption>The <em>A</em></figcaption></figure>`,
			`{"alt":"An A","caption":"The <em>A</em>","id":12,"sizeSlug":"full","url":"a.png","width":300}`},
		{"defaults", `{}`, `<figure></figure>`, `{"alt":"","sizeSlug":"large"}`},
		{"enum mismatch", `{"sizeSlug":"tiny"}`, ``, `{"alt":"","sizeSlug":"large"}`},
		{"type mismatch", `{"id":"12"}`, `<img width="wide">`, `{"alt":"","sizeSlug":"large"}`},
		{"float id", `{"id":1.5}`, ``, `{"alt":"","sizeSlug":"large"}`},
		{"unbalanced markup", `{}`, `<b><img src="x.png"></i>`, `{"alt":"","sizeSlug":"large","url":"x.png"}`},
	}
	for _, tc := range testcases {
		var jsonAttrs map[string]any
		if err := json.Unmarshal([]byte(tc.json), &jsonAttrs); err != nil {
			t.Fatal(err)
		}
		got := jsonString(t, extractor.Extract(imageSchema, jsonAttrs, tc.markup, nil))
		if got != tc.exp {
			t.Errorf("%s:\nExpected: %s\nGot:      %s", tc.name, tc.exp, got)
		}
	}
}

func TestExtractOrder(t *testing.T) {
	t.Parallel()
	attrs := extractor.Extract(imageSchema, map[string]any{"id": 1.0}, `<img src="x">`, nil)
	exp := []string{"url", "alt", "id", "sizeSlug"}
	got := attrs.Keys()
	if len(got) != len(exp) {
		t.Fatalf("expected %v, got %v", exp, got)
	}
	for i := range exp {
		if got[i] != exp[i] {
			t.Errorf("%d: expected %q, got %q", i, exp[i], got[i])
		}
	}
	if id, _ := attrs.Get("id"); id != int64(1) {
		t.Errorf("integer must be int64, got %T", id)
	}
}

func TestExtractSources(t *testing.T) {
	t.Parallel()
	attrs := []schema.Attribute{
		{Name: "text", Type: schema.TypeString, Source: schema.FromText("p")},
		{Name: "tag", Type: schema.TypeString, Source: schema.FromTag("")},
		{Name: "children", Type: schema.TypeArray, Source: schema.FromChildren("p")},
		{Name: "hidden", Type: schema.TypeBoolean, Source: schema.FromAttribute("p", "hidden")},
		{Name: "shown", Type: schema.TypeBoolean, Source: schema.FromAttribute("p", "data-shown")},
		{Name: "author", Type: schema.TypeString, Source: schema.FromMeta("author")},
		{Name: "items", Type: schema.TypeArray, Source: schema.FromQuery("li",
			schema.Attribute{Name: "label", Type: schema.TypeString, Source: schema.FromText("")},
			schema.Attribute{Name: "href", Type: schema.TypeString, Source: schema.FromAttribute("a", "href")},
		)},
	}
	markup := `<div><p hidden>Hello <b>you</b></p><ul><li><a href="/1">One</a></li><li>Two</li></ul></div>`
	got := jsonString(t, extractor.Extract(attrs, map[string]any{"meta": map[string]any{"author": "me"}}, markup, nil))
	exp := `{"author":"me","children":["Hello ",{"props":{"children":["you"]},"type":"b"}],` +
		`"hidden":true,"items":[{"href":"/1","label":"One"},{"label":"Two"}],` +
		`"shown":false,"tag":"div","text":"Hello you"}`
	if got != exp {
		t.Errorf("\nExpected: %s\nGot:      %s", exp, got)
	}

	raw := []schema.Attribute{{Name: "raw", Type: schema.TypeString, Source: schema.FromRaw()}}
	if got := extractor.Extract(raw, nil, markup, nil).GetString("raw"); got != markup {
		t.Errorf("raw source must return markup unchanged, got %q", got)
	}
}

func TestExtractMetaOverride(t *testing.T) {
	t.Parallel()
	attrs := []schema.Attribute{{Name: "author", Type: schema.TypeString, Source: schema.FromMeta("author")}}
	opts := &extractor.Options{Meta: map[string]any{"author": "store"}}
	got := extractor.Extract(attrs, map[string]any{"meta": map[string]any{"author": "doc"}}, "", opts)
	if s := got.GetString("author"); s != "store" {
		t.Errorf("external meta store must win, got %q", s)
	}
}

type countingSelector struct {
	first, all int
}

func (cs *countingSelector) MatchFirst(*html.Node, string) *html.Node { cs.first++; return nil }
func (cs *countingSelector) MatchAll(*html.Node, string) []*html.Node { cs.all++; return nil }

func TestInjectedSelector(t *testing.T) {
	t.Parallel()
	cs := &countingSelector{}
	got := extractor.Extract(imageSchema, nil, "<img src=x>", &extractor.Options{Selector: cs})
	if cs.first != 4 {
		t.Errorf("expected 4 calls of MatchFirst, got %d", cs.first)
	}
	if _, found := got.Get("url"); found {
		t.Error("selector returned nothing, so url must be absent")
	}
}
