//-----------------------------------------------------------------------------
// Copyright (c) 2024-present Detlef Stern
//
// This file is part of Blockmark.
//
// Blockmark is licensed under the latest version of the EUPL (European Union
// Public License). Please see file LICENSE.txt for your rights and obligations
// under this license.
//-----------------------------------------------------------------------------

// Package config provides the startup configuration of the command line
// tool.
package config

import (
	"errors"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"strings"

	"blockmark.de/b/input"
	"blockmark.de/b/logger"
	"blockmark.de/b/rawhandler"
	"blockmark.de/b/schema"
)

// DefaultFile is the name of the configuration file, if none is given.
const DefaultFile = ".blockmark.cfg"

// Configuration keys.
const (
	KeyLogLevel          = "log-level"
	KeyMaxDepth          = "max-depth"
	KeySeparator         = "separator"
	KeyFreeformBlock     = "freeform-block"
	KeyUnregisteredBlock = "unregistered-block"
	KeyRawMode           = "raw-mode"
)

// Config stores configuration values by key.
type Config struct {
	data map[string]string
}

// New returns an empty configuration.
func New() *Config { return &Config{data: map[string]string{}} }

// ReadFile reads the configuration from a file. A missing file results in
// an empty configuration.
func ReadFile(name string) (*Config, error) {
	src, err := os.ReadFile(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return New(), nil
		}
		return nil, err
	}
	return Parse(src), nil
}

// Parse reads "key: value" lines. Lines starting with '#' are comments.
// Keys are case-insensitive; the last value of a key wins.
func Parse(src []byte) *Config {
	cfg := New()
	inp := input.NewInput(src)
	for inp.Ch != input.EOS {
		inp.SkipSpace()
		switch inp.Ch {
		case input.EOS:
			return cfg
		case '#':
			inp.SkipToEOL()
			continue
		}
		parseLine(cfg, inp)
	}
	return cfg
}

func parseLine(cfg *Config, inp *input.Input) {
	key := inp.ScanWhile(isKey)
	inp.SkipBlank()
	if inp.Ch != ':' {
		inp.SkipToEOL()
		return
	}
	inp.Next()
	inp.SkipBlank()
	pos := inp.Pos
	inp.SkipToEOL()
	if key != "" {
		cfg.Set(key, strings.TrimSpace(inp.Slice(pos)))
	}
}

func isKey(ch rune) bool {
	return input.IsLowerASCII(ch) || input.IsDigitASCII(ch) || ch == '-' || ('A' <= ch && ch <= 'Z')
}

// Set stores a value.
func (cfg *Config) Set(key, val string) { cfg.data[strings.ToLower(key)] = val }

// Get returns the value of a key.
func (cfg *Config) Get(key string) (string, bool) {
	val, found := cfg.data[key]
	return val, found
}

// Keys returns all keys, sorted.
func (cfg *Config) Keys() []string {
	result := make([]string, 0, len(cfg.data))
	for k := range cfg.data {
		result = append(result, k)
	}
	sort.Strings(result)
	return result
}

// LogLevel returns the configured log level, InfoLevel as default.
func (cfg *Config) LogLevel() logger.Level {
	if val, found := cfg.Get(KeyLogLevel); found {
		if level := logger.ParseLevel(val); level.IsValid() {
			return level
		}
	}
	return logger.InfoLevel
}

// MaxDepth returns the maximum nesting depth, or zero for the default.
func (cfg *Config) MaxDepth() int {
	if val, found := cfg.Get(KeyMaxDepth); found {
		if i, err := strconv.Atoi(val); err == nil && i > 0 {
			return i
		}
	}
	return 0
}

// Separator returns the separator of sibling blocks, or the empty string
// for the default. Quoted values may contain Go escape sequences.
func (cfg *Config) Separator() string {
	val, found := cfg.Get(KeySeparator)
	if !found {
		return ""
	}
	if s, err := strconv.Unquote(val); err == nil {
		return s
	}
	return val
}

// RawMode returns the mode of the raw handler.
func (cfg *Config) RawMode() rawhandler.Mode {
	val, _ := cfg.Get(KeyRawMode)
	return rawhandler.ParseMode(val)
}

// ApplyRegistry sets the names of the fallback block types.
func (cfg *Config) ApplyRegistry(reg *schema.Registry) {
	if val, found := cfg.Get(KeyFreeformBlock); found && schema.IsValidName(schema.QualifiedName(val)) {
		reg.FreeformName = schema.QualifiedName(val)
	}
	if val, found := cfg.Get(KeyUnregisteredBlock); found && schema.IsValidName(schema.QualifiedName(val)) {
		reg.UnregisteredName = schema.QualifiedName(val)
	}
}
