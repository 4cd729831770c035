//-----------------------------------------------------------------------------
// Copyright (c) 2024-present Detlef Stern
//
// This file is part of Blockmark.
//
// Blockmark is licensed under the latest version of the EUPL (European Union
// Public License). Please see file LICENSE.txt for your rights and obligations
// under this license.
//-----------------------------------------------------------------------------

// Package input provides a rune scanner over a byte slice, used by the
// delimiter grammar and the configuration reader.
package input

import (
	"bytes"
	"unicode/utf8"
)

// Input is a cursor over a source document. Positions are byte offsets, so
// that they can be used to slice Src.
type Input struct {
	Src []byte // The source, never changed by Input
	Ch  rune   // Current character, EOS at the end
	Pos int    // Byte offset of Ch

	next int // Byte offset after Ch
}

// NewInput creates a new input source.
func NewInput(src []byte) *Input {
	inp := &Input{Src: src}
	inp.Next()
	return inp
}

// EOS = End of source
const EOS = rune(-1)

func (inp *Input) decode(pos int) (rune, int) {
	if pos >= len(inp.Src) {
		return EOS, 0
	}
	if b := inp.Src[pos]; b < utf8.RuneSelf {
		return rune(b), 1
	}
	return utf8.DecodeRune(inp.Src[pos:])
}

// Next reads the next rune into inp.Ch and returns it too.
func (inp *Input) Next() rune {
	r, w := inp.decode(inp.next)
	if w == 0 {
		inp.Pos = len(inp.Src)
	} else {
		inp.Pos = inp.next
		inp.next += w
	}
	inp.Ch = r
	return r
}

// Peek returns the rune after Ch without advancing.
func (inp *Input) Peek() rune {
	r, _ := inp.decode(inp.next)
	return r
}

// SetPos moves the cursor to the given byte offset.
func (inp *Input) SetPos(pos int) {
	if inp.Pos != pos {
		inp.next = pos
		inp.Next()
	}
}

// Accept advances over s, if the remaining source starts with it. Otherwise
// the cursor stays where it is.
func (inp *Input) Accept(s string) bool {
	if s == "" || !bytes.HasPrefix(inp.Src[inp.Pos:], []byte(s)) {
		return false
	}
	inp.SetPos(inp.Pos + len(s))
	return true
}

// Index returns the absolute position of the next occurrence of s, starting
// at the current position, or -1.
func (inp *Input) Index(s string) int {
	if i := bytes.Index(inp.Src[inp.Pos:], []byte(s)); i >= 0 {
		return inp.Pos + i
	}
	return -1
}

// Slice returns the source from the given position up to Ch.
func (inp *Input) Slice(from int) string { return string(inp.Src[from:inp.Pos]) }

// ScanWhile advances as long as the predicate holds and returns the
// consumed text.
func (inp *Input) ScanWhile(pred func(rune) bool) string {
	pos := inp.Pos
	for inp.Ch != EOS && pred(inp.Ch) {
		inp.Next()
	}
	return inp.Slice(pos)
}

// SkipSpace skips all white space, including line endings. It returns
// true, if at least one character was skipped.
func (inp *Input) SkipSpace() bool {
	return inp.ScanWhile(IsSpace) != ""
}

// SkipBlank skips space and tab characters, but not line endings.
func (inp *Input) SkipBlank() {
	inp.ScanWhile(func(ch rune) bool { return ch == ' ' || ch == '\t' })
}

// SkipToEOL reads until the next end-of-line.
func (inp *Input) SkipToEOL() {
	inp.ScanWhile(func(ch rune) bool { return ch != '\n' && ch != '\r' })
}
