//-----------------------------------------------------------------------------
// Copyright (c) 2024-present Detlef Stern
//
// This file is part of Blockmark.
//
// Blockmark is licensed under the latest version of the EUPL (European Union
// Public License). Please see file LICENSE.txt for your rights and obligations
// under this license.
//-----------------------------------------------------------------------------

package encoder

import "io"

// EncWriter wraps an io.Writer for encoders. After the first error all
// writes are ignored; Flush reports it together with the bytes written.
type EncWriter struct {
	w      io.Writer
	err    error
	length int
	lines  int
}

// NewEncWriter creates a new EncWriter
func NewEncWriter(w io.Writer) EncWriter {
	return EncWriter{w: w}
}

// Write writes the content of p.
func (w *EncWriter) Write(p []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	l, err := w.w.Write(p)
	w.length += l
	w.err = err
	return l, err
}

// WriteString writes the content of s.
func (w *EncWriter) WriteString(s string) {
	if w.err == nil {
		var l int
		l, w.err = io.WriteString(w.w, s)
		w.length += l
	}
}

// WriteLine writes s as a line of its own. Lines are separated, not
// terminated, by a newline.
func (w *EncWriter) WriteLine(s string) {
	if w.lines > 0 {
		w.WriteString("\n")
	}
	w.WriteString(s)
	w.lines++
}

// Flush returns the collected length and error.
func (w *EncWriter) Flush() (int, error) { return w.length, w.err }
