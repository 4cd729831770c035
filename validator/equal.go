//-----------------------------------------------------------------------------
// Copyright (c) 2024-present Detlef Stern
//
// This file is part of Blockmark.
//
// Blockmark is licensed under the latest version of the EUPL (European Union
// Public License). Please see file LICENSE.txt for your rights and obligations
// under this license.
//-----------------------------------------------------------------------------

package validator

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/net/html"

	"blockmark.de/b/dom"
	"blockmark.de/b/strfun"
)

// Equivalent compares two markup fragments. They are equivalent, if their
// token sequences are equal after normalization:
//
//   - text: character references resolved, white space runs collapsed and
//     trimmed, white space only text removed;
//   - tags: names compared case-insensitive, "<br>" equals "<br/>", and a
//     self-closing non-void element equals an empty element;
//   - attributes: order is not relevant, values are trimmed, "class" is
//     compared as a set of words, "style" as a set of declarations;
//   - comments: trimmed; doctype declarations are ignored.
//
// If they are not equivalent, the second result describes the first
// difference.
func Equivalent(expected, actual string) (bool, []string) {
	exp := normalize(expected)
	act := normalize(actual)
	for i := 0; i < len(exp) || i < len(act); i++ {
		switch {
		case i >= len(exp):
			return false, []string{fmt.Sprintf("unexpected %v", act[i])}
		case i >= len(act):
			return false, []string{fmt.Sprintf("expected %v, but content ended", exp[i])}
		}
		if issue := exp[i].compare(act[i]); issue != "" {
			return false, []string{issue}
		}
	}
	return true, nil
}

type token struct {
	typ   html.TokenType
	data  string
	attrs map[string]string
}

func (tok token) String() string {
	switch tok.typ {
	case html.StartTagToken:
		var sb strings.Builder
		sb.WriteByte('<')
		sb.WriteString(tok.data)
		keys := make([]string, 0, len(tok.attrs))
		for k := range tok.attrs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&sb, " %s=%q", k, tok.attrs[k])
		}
		sb.WriteByte('>')
		return sb.String()
	case html.EndTagToken:
		return "</" + tok.data + ">"
	case html.CommentToken:
		return "<!--" + tok.data + "-->"
	}
	return fmt.Sprintf("text %q", tok.data)
}

func (tok token) compare(other token) string {
	if tok.typ != other.typ || tok.data != other.data {
		return fmt.Sprintf("expected %v, but found %v", tok, other)
	}
	if tok.typ != html.StartTagToken {
		return ""
	}
	for k, v := range tok.attrs {
		ov, found := other.attrs[k]
		if !found {
			return fmt.Sprintf("attribute %q missing in %v", k, other)
		}
		if v != ov {
			return fmt.Sprintf("attribute %q: expected %q, but found %q", k, v, ov)
		}
	}
	for k := range other.attrs {
		if _, found := tok.attrs[k]; !found {
			return fmt.Sprintf("unexpected attribute %q in %v", k, other)
		}
	}
	return ""
}

func normalize(markup string) []token {
	var result []token
	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return result
		}
		t := z.Token()
		switch tt {
		case html.TextToken:
			text := strfun.CollapseSpace(t.Data)
			if text == "" {
				continue
			}
			if l := len(result); l > 0 && result[l-1].typ == html.TextToken {
				result[l-1].data += " " + text
				continue
			}
			result = append(result, token{typ: html.TextToken, data: text})
		case html.StartTagToken, html.SelfClosingTagToken:
			name := strings.ToLower(t.Data)
			result = append(result, token{typ: html.StartTagToken, data: name, attrs: normalizeAttrs(t.Attr)})
			if tt == html.SelfClosingTagToken && !dom.IsVoid(name) {
				result = append(result, token{typ: html.EndTagToken, data: name})
			}
		case html.EndTagToken:
			if name := strings.ToLower(t.Data); !dom.IsVoid(name) {
				result = append(result, token{typ: html.EndTagToken, data: name})
			}
		case html.CommentToken:
			result = append(result, token{typ: html.CommentToken, data: strings.TrimSpace(t.Data)})
		}
	}
}

func normalizeAttrs(attrs []html.Attribute) map[string]string {
	if len(attrs) == 0 {
		return nil
	}
	result := make(map[string]string, len(attrs))
	for _, a := range attrs {
		key := strings.ToLower(a.Key)
		if a.Namespace != "" {
			key = a.Namespace + ":" + key
		}
		switch key {
		case "class":
			result[key] = normalizeClass(a.Val)
		case "style":
			result[key] = normalizeStyle(a.Val)
		default:
			result[key] = strings.TrimSpace(a.Val)
		}
	}
	return result
}

func normalizeClass(val string) string {
	classes := strings.Fields(val)
	sort.Strings(classes)
	j := 0
	for i, cls := range classes {
		if i == 0 || cls != classes[j-1] {
			classes[j] = cls
			j++
		}
	}
	return strings.Join(classes[:j], " ")
}

func normalizeStyle(val string) string {
	decls := strings.Split(val, ";")
	result := make([]string, 0, len(decls))
	for _, decl := range decls {
		prop, value, found := strings.Cut(decl, ":")
		if !found {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		value = strfun.CollapseSpace(value)
		if prop != "" && value != "" {
			result = append(result, prop+":"+value)
		}
	}
	sort.Strings(result)
	return strings.Join(result, ";")
}
