//-----------------------------------------------------------------------------
// Copyright (c) 2024-present Detlef Stern
//
// This file is part of Blockmark.
//
// Blockmark is licensed under the latest version of the EUPL (European Union
// Public License). Please see file LICENSE.txt for your rights and obligations
// under this license.
//-----------------------------------------------------------------------------

// Package logger writes leveled, single-line log messages about documents
// and their blocks.
package logger

import (
	"strconv"
	"strings"
)

// Level defines the possible log levels
type Level uint8

// Constants for Level
const (
	NoLevel        Level = iota // the absent log level
	TraceLevel                  // Tokens, frames, and other parser internals
	DebugLevel                  // Decisions about single blocks
	InfoLevel                   // Documents read and written
	WarnLevel                   // Invalid blocks and recovered input
	ErrorLevel                  // Documents that could not be processed
	MandatoryLevel              // Always logged, unless logging is disabled
	NeverLevel                  // Logging is disabled
)

var levelInfo = [...]struct {
	name   string // used for parsing and String
	column string // fixed width, used by writers
}{
	{"", "     "},
	{"trace", "TRACE"},
	{"debug", "DEBUG"},
	{"info", "INFO "},
	{"warn", "WARN "},
	{"error", "ERROR"},
	{"mandatory", ">>>>>"},
	{"disabled", "NEVER"},
}

// IsValid returns true, if the level is a valid level
func (l Level) IsValid() bool { return TraceLevel <= l && l <= NeverLevel }

func (l Level) String() string {
	if l.IsValid() {
		return levelInfo[l].name
	}
	return strconv.Itoa(int(l))
}

// Format returns a fixed width representation, suitable for log lines.
func (l Level) Format() string {
	if l.IsValid() {
		return levelInfo[l].column
	}
	return strconv.Itoa(int(l))
}

// ParseLevel returns the level whose name starts with the given text. At
// least three characters are needed, case is ignored. NoLevel is returned
// if no level matches.
func ParseLevel(text string) Level {
	text = strings.ToLower(strings.TrimSpace(text))
	if len(text) < 3 {
		return NoLevel
	}
	for lv := TraceLevel; lv <= NeverLevel; lv++ {
		if strings.HasPrefix(levelInfo[lv].name, text) {
			return lv
		}
	}
	return NoLevel
}
