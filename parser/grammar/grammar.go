//-----------------------------------------------------------------------------
// Copyright (c) 2024-present Detlef Stern
//
// This file is part of Blockmark.
//
// Blockmark is licensed under the latest version of the EUPL (European Union
// Public License). Please see file LICENSE.txt for your rights and obligations
// under this license.
//-----------------------------------------------------------------------------

// Package grammar scans a document for block delimiters.
//
// Delimiters are markup comments of the following forms:
//
//	<!-- wp:NAME {JSON} -->     opening delimiter, JSON is optional
//	<!-- /wp:NAME -->           closing delimiter
//	<!-- wp:NAME {JSON} /-->    self-closing delimiter, JSON is optional
//
// Everything else is literal text. Scanning never fails.
package grammar

import (
	"bytes"
	"encoding/json"

	"blockmark.de/b/input"
)

// Kind states the type of a token.
type Kind uint8

// Constants for Kind.
const (
	KindText  Kind = iota // Literal text
	KindOpen              // Opening delimiter
	KindClose             // Closing delimiter
	KindVoid              // Self-closing delimiter
)

func (k Kind) String() string {
	switch k {
	case KindOpen:
		return "open"
	case KindClose:
		return "close"
	case KindVoid:
		return "void"
	}
	return "text"
}

// Token is a delimiter or a span of literal text.
type Token struct {
	Kind     Kind
	Name     string         // Block name as written, e.g. "paragraph" or "my/block"
	Attrs    map[string]any // Decoded attribute object, nil if not given
	RawAttrs string         // Attribute object as written
	Start    int            // Byte offset of the first character
	End      int            // Byte offset after the last character
}

// Markers of delimiters.
const (
	commentStart = "<!--"
	commentEnd   = "-->"
	delimPrefix  = "wp:"
)

// Scan splits the source into tokens. Adjacent text is returned as one
// token. The concatenation of all token spans is the source.
//
// Source is read once: the end of comment marker that bounds a delimiter
// is searched only after the previous one was passed.
func Scan(src []byte) []Token {
	var result []Token
	sc := scanner{inp: input.NewInput(src), limit: -1, jsonFor: -1}
	inp := sc.inp
	textStart := 0
	for {
		pos := inp.Index(commentStart)
		if pos < 0 || !sc.findLimit(pos+len(commentStart)) {
			break
		}
		inp.SetPos(pos)
		if tok, ok := sc.scanDelimiter(); ok {
			if textStart < tok.Start {
				result = append(result, Token{Kind: KindText, Start: textStart, End: tok.Start})
			}
			result = append(result, tok)
			textStart = tok.End
			inp.SetPos(tok.End)
			continue
		}
		inp.SetPos(pos + 1)
	}
	if textStart < len(src) {
		result = append(result, Token{Kind: KindText, Start: textStart, End: len(src)})
	}
	return result
}

type scanner struct {
	inp     *input.Input
	limit   int // position of the next end of comment marker
	jsonFor int // delimiter end that jsonEnd was computed for
	jsonEnd int
}

// findLimit positions limit at the first end of comment marker at or after
// from. It returns false if there is none.
func (sc *scanner) findLimit(from int) bool {
	if sc.limit >= from {
		return true
	}
	i := bytes.Index(sc.inp.Src[from:], []byte(commentEnd))
	if i < 0 {
		return false
	}
	sc.limit = from + i
	return true
}

// scanDelimiter tries to read a delimiter at the current position. The
// lookahead is bounded by the first end of comment marker.
func (sc *scanner) scanDelimiter() (Token, bool) {
	inp, limit := sc.inp, sc.limit
	start := inp.Pos
	if !inp.Accept(commentStart) {
		return Token{}, false
	}
	if !inp.SkipSpace() || inp.Pos >= limit {
		return Token{}, false
	}
	closing := inp.Accept("/")
	if !inp.Accept(delimPrefix) {
		return Token{}, false
	}
	name, ok := scanName(inp)
	if !ok {
		return Token{}, false
	}
	tok := Token{Kind: KindOpen, Name: name, Start: start, End: limit + len(commentEnd)}
	if closing {
		tok.Kind = KindClose
	}
	if !inp.SkipSpace() {
		return Token{}, false
	}
	switch {
	case inp.Pos == limit:
		return tok, true
	case inp.Ch == '/' && inp.Pos+1 == limit:
		if closing {
			return Token{}, false
		}
		tok.Kind = KindVoid
		return tok, true
	case inp.Ch == '{' && !closing && inp.Pos < limit:
		return sc.scanAttrs(tok)
	}
	return Token{}, false
}

// scanName reads a block name: [a-z][a-z0-9-]* with an optional second
// part, separated by "/".
func scanName(inp *input.Input) (string, bool) {
	pos := inp.Pos
	if !scanNamePart(inp) {
		return "", false
	}
	if inp.Ch == '/' && input.IsLowerASCII(inp.Peek()) {
		inp.Next()
		scanNamePart(inp)
	}
	return inp.Slice(pos), true
}

func scanNamePart(inp *input.Input) bool {
	if !input.IsLowerASCII(inp.Ch) {
		return false
	}
	inp.ScanWhile(isNameChar)
	return true
}

func isNameChar(ch rune) bool {
	return input.IsLowerASCII(ch) || input.IsDigitASCII(ch) || ch == '-'
}

// scanAttrs reads the attribute object, which ends at the last "}" before
// the end of the delimiter. It must be followed by white space.
func (sc *scanner) scanAttrs(tok Token) (Token, bool) {
	inp := sc.inp
	end := sc.limit
	if inp.Src[end-1] == '/' {
		tok.Kind = KindVoid
		end--
	}
	if sc.jsonFor != end {
		sc.jsonFor = end
		sc.jsonEnd = len(bytes.TrimRightFunc(inp.Src[:end], isSpace))
	}
	jsonEnd := sc.jsonEnd
	if jsonEnd == end || jsonEnd <= inp.Pos || inp.Src[jsonEnd-1] != '}' {
		return Token{}, false
	}
	raw := inp.Src[inp.Pos:jsonEnd]
	var attrs map[string]any
	if err := json.Unmarshal(raw, &attrs); err != nil || attrs == nil {
		return Token{}, false
	}
	tok.Attrs = attrs
	tok.RawAttrs = string(raw)
	return tok, true
}

func isSpace(r rune) bool { return input.IsSpace(r) }
