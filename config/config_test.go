//-----------------------------------------------------------------------------
// Copyright (c) 2024-present Detlef Stern
//
// This file is part of Blockmark.
//
// Blockmark is licensed under the latest version of the EUPL (European Union
// Public License). Please see file LICENSE.txt for your rights and obligations
// under this license.
//-----------------------------------------------------------------------------

package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"blockmark.de/b/config"
	"blockmark.de/b/logger"
	"blockmark.de/b/rawhandler"
	"blockmark.de/b/schema"
)

const sample = `# Blockmark configuration
log-level: debug
Max-Depth : 20
separator: "\n"
freeform-block: classic
unregistered-block: acme/missing
raw-mode: inline
broken line
empty:
`

func TestParse(t *testing.T) {
	t.Parallel()
	cfg := config.Parse([]byte(sample))
	if got := cfg.LogLevel(); got != logger.DebugLevel {
		t.Errorf("log level: %v", got)
	}
	if got := cfg.MaxDepth(); got != 20 {
		t.Errorf("max depth: %d", got)
	}
	if got := cfg.Separator(); got != "\n" {
		t.Errorf("separator: %q", got)
	}
	if got := cfg.RawMode(); got != rawhandler.ModeInline {
		t.Errorf("raw mode: %v", got)
	}
	reg := schema.NewRegistry()
	cfg.ApplyRegistry(reg)
	if reg.FreeformName != "core/classic" || reg.UnregisteredName != "acme/missing" {
		t.Errorf("registry names: %q, %q", reg.FreeformName, reg.UnregisteredName)
	}
	if val, found := cfg.Get("empty"); !found || val != "" {
		t.Errorf("empty: %q, %v", val, found)
	}
	if _, found := cfg.Get("broken"); found {
		t.Error("line without colon was accepted")
	}
	exp := []string{"empty", "freeform-block", "log-level", "max-depth", "raw-mode", "separator", "unregistered-block"}
	got := cfg.Keys()
	if len(got) != len(exp) {
		t.Fatalf("keys: %v", got)
	}
	for i := range exp {
		if got[i] != exp[i] {
			t.Errorf("key %d: exp=%q, got=%q", i, exp[i], got[i])
		}
	}
}

func TestDefaults(t *testing.T) {
	t.Parallel()
	cfg := config.Parse([]byte("log-level: loud\nmax-depth: -3\n"))
	if cfg.LogLevel() != logger.InfoLevel || cfg.MaxDepth() != 0 || cfg.Separator() != "" || cfg.RawMode() != rawhandler.ModeBlocks {
		t.Error("invalid values must result in defaults")
	}
	reg := schema.NewRegistry()
	config.New().ApplyRegistry(reg)
	if reg.FreeformName != schema.DefaultFreeformName {
		t.Errorf("freeform name: %q", reg.FreeformName)
	}
}

func TestReadFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cfg, err := config.ReadFile(filepath.Join(dir, "missing.cfg"))
	if err != nil || len(cfg.Keys()) != 0 {
		t.Errorf("missing file: %v, %v", cfg, err)
	}
	name := filepath.Join(dir, config.DefaultFile)
	if err = os.WriteFile(name, []byte("max-depth: 7\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if cfg, err = config.ReadFile(name); err != nil || cfg.MaxDepth() != 7 {
		t.Errorf("file: %v, %v", cfg, err)
	}
}

func TestVersion(t *testing.T) {
	config.SetupVersion("Blockmark", "1.2")
	v := config.GetVersion()
	if v.Build != "1.2" || v.GoVersion == "" || !strings.Contains(v.Platform, "/") {
		t.Errorf("unexpected version data: %+v", v)
	}
	if got := v.String(); !strings.HasPrefix(got, "Blockmark 1.2 (") {
		t.Errorf("unexpected version string %q", got)
	}
}
