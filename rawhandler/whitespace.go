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
	"strings"
	"unicode"

	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"

	"blockmark.de/b/dom"
	"blockmark.de/b/logger"
)

// maxRecoverLen limits the text length for whitespace recovery.
const maxRecoverLen = 20000

type textSpan struct {
	n          *html.Node
	block      *html.Node // nearest ancestor that is not phrasing content
	runes      []rune
	start, end int
}

// recoverWhitespace compares the text of the markup with the plain text
// version. White space that only the plain text contains is inserted into
// the markup, if it belongs inside a text node or between two text nodes
// of the same block, e.g. at the boundary of inline formatting. All text
// is normalized to NFC afterwards.
func recoverWhitespace(root *html.Node, plain string, log *logger.Logger) {
	defer normalizeText(root)
	if plain == "" {
		return
	}
	var spans []*textSpan
	var text []string
	dom.Iterate(root, func(n *html.Node) bool {
		if n.Type == html.TextNode {
			runes := []rune(n.Data)
			sp := &textSpan{n: n, block: blockOf(n), runes: runes, start: len(text), end: len(text) + len(runes)}
			for _, r := range runes {
				text = append(text, string(r))
			}
			spans = append(spans, sp)
		}
		return false
	})
	plainRunes := []rune(plain)
	if len(text) > maxRecoverLen || len(plainRunes) > maxRecoverLen {
		log.Debug().Int("length", int64(len(plainRunes))).Msg("text too long for whitespace recovery")
		return
	}
	other := make([]string, len(plainRunes))
	for i, r := range plainRunes {
		other[i] = string(r)
	}

	inserts := map[*textSpan][]insertion{}
	var after []insertion
	matcher := difflib.NewMatcherWithJunk(text, other, false, nil)
	for _, op := range matcher.GetOpCodes() {
		if op.Tag != 'i' {
			continue
		}
		ins := string(plainRunes[op.J1:op.J2])
		if strings.TrimFunc(ins, unicode.IsSpace) != "" {
			continue
		}
		for i, sp := range spans {
			if sp.start < op.I1 && op.I1 < sp.end {
				inserts[sp] = append(inserts[sp], insertion{pos: op.I1 - sp.start, text: ins})
				break
			}
			if sp.end == op.I1 && sp.start < sp.end && i+1 < len(spans) && spans[i+1].block == sp.block {
				outer := outermostEnding(sp.n, sp.block)
				if dom.IsElement(outer.NextSibling, "br") {
					break
				}
				if outer != sp.n {
					after = append(after, insertion{node: outer, text: ins})
				} else {
					inserts[sp] = append(inserts[sp], insertion{pos: len(sp.runes), text: ins})
				}
				break
			}
		}
	}
	for _, in := range after {
		in.node.Parent.InsertBefore(&html.Node{Type: html.TextNode, Data: in.text}, in.node.NextSibling)
	}
	for sp, ins := range inserts {
		var sb strings.Builder
		last := 0
		for _, in := range ins {
			sb.WriteString(string(sp.runes[last:in.pos]))
			sb.WriteString(in.text)
			last = in.pos
		}
		sb.WriteString(string(sp.runes[last:]))
		sp.n.Data = sb.String()
	}
}

type insertion struct {
	pos  int
	node *html.Node // insert after this node, instead of at pos
	text string
}

func blockOf(n *html.Node) *html.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if !isPhrasing(p) {
			return p
		}
	}
	return nil
}

// outermostEnding returns the outermost inline element below block that
// ends with the text node n, or n itself.
func outermostEnding(n, block *html.Node) *html.Node {
	for n.NextSibling == nil && n.Parent != nil && n.Parent != block {
		n = n.Parent
	}
	return n
}

func normalizeText(root *html.Node) {
	dom.Iterate(root, func(n *html.Node) bool {
		if n.Type == html.TextNode {
			n.Data = norm.NFC.String(n.Data)
		}
		return false
	})
}
