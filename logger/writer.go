//-----------------------------------------------------------------------------
// Copyright (c) 2024-present Detlef Stern
//
// This file is part of Blockmark.
//
// Blockmark is licensed under the latest version of the EUPL (European Union
// Public License). Please see file LICENSE.txt for your rights and obligations
// under this license.
//-----------------------------------------------------------------------------

package logger

import (
	"io"
	"sync"
	"time"
)

// LogWriter writes log messages to their destination.
type LogWriter interface {
	WriteMessage(level Level, ts time.Time, prefix, msg string, details []byte) error
}

// TextWriter writes each message as one line of text.
type TextWriter struct {
	mx    sync.Mutex // serializes writes to w
	w     io.Writer
	stamp bool
	line  []byte
}

// NewTextWriter creates a writer for log lines. If stamp is true, every line
// starts with date and time.
func NewTextWriter(w io.Writer, stamp bool) *TextWriter {
	return &TextWriter{w: w, stamp: stamp}
}

// WriteMessage formats and writes one log line.
func (tw *TextWriter) WriteMessage(level Level, ts time.Time, prefix, msg string, details []byte) error {
	tw.mx.Lock()
	defer tw.mx.Unlock()

	line := tw.line[:0]
	if tw.stamp {
		line = ts.AppendFormat(line, "2006-01-02 15:04:05 ")
	}
	line = append(line, level.Format()...)
	line = append(line, ' ')
	if prefix != "" {
		line = append(line, prefix...)
		line = append(line, ' ')
	}
	line = append(line, msg...)
	line = append(line, details...)
	line = append(line, '\n')
	tw.line = line
	_, err := tw.w.Write(line)
	return err
}
