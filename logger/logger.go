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
	"sync/atomic"
	"time"
)

// Logger emits log messages. All loggers derived from one root logger share
// its writer and its level. A nil logger discards everything.
type Logger struct {
	root    *Logger
	lw      LogWriter
	level   atomic.Uint32
	prefix  string
	context []byte
}

const prefixWidth = 6

// New creates a root logger that writes to the given writer. Short prefixes
// are padded, so that messages of different components line up.
func New(lw LogWriter, prefix string) *Logger {
	for prefix != "" && len(prefix) < prefixWidth {
		prefix += " "
	}
	l := &Logger{lw: lw, prefix: prefix}
	l.level.Store(uint32(InfoLevel))
	l.root = l
	return l
}

// SetLevel sets the level of a root logger.
func (l *Logger) SetLevel(lv Level) *Logger {
	if l != nil {
		if l.root != l {
			panic("level of derived logger cannot be set")
		}
		l.level.Store(uint32(lv))
	}
	return l
}

// Level returns the level that is currently in effect.
func (l *Logger) Level() Level {
	if l == nil {
		return NeverLevel
	}
	return Level(l.root.level.Load())
}

// Trace creates a tracing message.
func (l *Logger) Trace() *Message { return newMessage(l, TraceLevel) }

// Debug creates a debug message.
func (l *Logger) Debug() *Message { return newMessage(l, DebugLevel) }

// Info creates a message suitable for information data.
func (l *Logger) Info() *Message { return newMessage(l, InfoLevel) }

// Warn creates a message suitable for warning the user.
func (l *Logger) Warn() *Message { return newMessage(l, WarnLevel) }

// Error creates a message suitable for errors.
func (l *Logger) Error() *Message { return newMessage(l, ErrorLevel) }

// Mandatory creates a message that will always logged, except when logging
// is disabled.
func (l *Logger) Mandatory() *Message { return newMessage(l, MandatoryLevel) }

// Clone starts a message whose fields become the context of a derived
// logger, see Message.Child.
func (l *Logger) Clone() *Message {
	if l == nil {
		return nil
	}
	return getMessage(l, NoLevel)
}

// For returns a derived logger that adds the name of a document to every
// message.
func (l *Logger) For(document string) *Logger {
	return l.Clone().Str("document", document).Child()
}

func (l *Logger) derive(context []byte) *Logger {
	return &Logger{
		root:    l.root,
		prefix:  l.prefix,
		context: append([]byte(nil), context...),
	}
}

func (l *Logger) write(level Level, msg string, details []byte) error {
	return l.root.lw.WriteMessage(level, time.Now().Local(), l.prefix, msg, details)
}
