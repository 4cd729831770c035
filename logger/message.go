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
	"strconv"
	"sync"
	"unicode/utf8"
)

// Message collects the fields of one log line. Methods of a nil message do
// nothing, so a disabled message costs only the level check.
type Message struct {
	logger *Logger
	level  Level
	buf    []byte
}

var messagePool = sync.Pool{
	New: func() any { return &Message{buf: make([]byte, 0, 256)} },
}

func newMessage(l *Logger, level Level) *Message {
	if l.Level() > level {
		return nil
	}
	return getMessage(l, level)
}

func getMessage(l *Logger, level Level) *Message {
	m := messagePool.Get().(*Message)
	m.logger = l
	m.level = level
	m.buf = append(m.buf[:0], l.context...)
	return m
}

func (m *Message) field(key string) {
	m.buf = append(m.buf, ',', ' ')
	m.buf = append(m.buf, key...)
	m.buf = append(m.buf, '=')
}

// Str adds a string value to the message.
func (m *Message) Str(key, val string) *Message {
	if m != nil {
		m.field(key)
		m.buf = append(m.buf, val...)
	}
	return m
}

// maxQuoted is the number of bytes of a quoted value that are logged.
const maxQuoted = 60

// Quote adds a value that may contain markup or line breaks. It is quoted
// and shortened, so that the log line stays on one line.
func (m *Message) Quote(key, val string) *Message {
	if m != nil {
		if len(val) > maxQuoted {
			cut := maxQuoted
			for cut > 0 && !utf8.RuneStart(val[cut]) {
				cut--
			}
			val = val[:cut] + "..."
		}
		m.field(key)
		m.buf = strconv.AppendQuote(m.buf, val)
	}
	return m
}

// Int adds an integer value to the message.
func (m *Message) Int(key string, i int64) *Message {
	if m != nil {
		m.field(key)
		m.buf = strconv.AppendInt(m.buf, i, 10)
	}
	return m
}

// Bool adds a boolean value to the message.
func (m *Message) Bool(key string, b bool) *Message {
	if m != nil {
		m.field(key)
		m.buf = strconv.AppendBool(m.buf, b)
	}
	return m
}

// Pos adds a range of byte offsets into the source document.
func (m *Message) Pos(start, end int) *Message {
	if m != nil {
		m.field("pos")
		m.buf = strconv.AppendInt(m.buf, int64(start), 10)
		m.buf = append(m.buf, '-')
		m.buf = strconv.AppendInt(m.buf, int64(end), 10)
	}
	return m
}

// Err adds an error value to the message.
func (m *Message) Err(err error) *Message {
	if err != nil {
		return m.Str("error", err.Error())
	}
	return m
}

// Block adds the name of a block type.
func (m *Message) Block(name string) *Message { return m.Str("block", name) }

// Msg writes the message with the given text. The message must not be used
// afterwards.
func (m *Message) Msg(text string) {
	if m == nil || m.level == NoLevel {
		return
	}
	m.logger.write(m.level, text, m.buf)
	m.logger = nil
	messagePool.Put(m)
}

// Child returns a logger that starts every message with the fields of this
// message.
func (m *Message) Child() *Logger {
	if m == nil {
		return nil
	}
	l := m.logger.derive(m.buf)
	m.logger = nil
	messagePool.Put(m)
	return l
}
