//-----------------------------------------------------------------------------
// Copyright (c) 2024-present Detlef Stern
//
// This file is part of Blockmark.
//
// Blockmark is licensed under the latest version of the EUPL (European Union
// Public License). Please see file LICENSE.txt for your rights and obligations
// under this license.
//-----------------------------------------------------------------------------

package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"

	"blockmark.de/b/encoder"
	"blockmark.de/b/parser"
)

// ---------- Subcommand: parse ----------------------------------------------

func cmdParse(fs *flag.FlagSet, env *Env) (int, error) {
	src, name, err := readInput(env, fs.Args())
	if err != nil {
		return 2, err
	}
	pi := parser.Get(fs.Lookup("s").Value.String())
	bs := pi.ParseBlocks(src, env.Registry, env.ParserOptions(name))
	enc := fs.Lookup("t").Value.String()
	encdr, err := encoder.Create(enc, &encoder.Environment{
		Registry:  env.Registry,
		Separator: env.Config.Separator(),
		Indent:    fs.Lookup("indent").Value.String(),
	})
	if err != nil {
		return 2, err
	}
	if _, err = encdr.WriteBlocks(env.Stdout, bs); err != nil {
		return 2, err
	}
	fmt.Fprintln(env.Stdout)
	return 0, nil
}

// readInput reads the first file argument, or standard input if there is
// none or if it is "-".
func readInput(env *Env, args []string) ([]byte, string, error) {
	if len(args) < 1 || args[0] == "-" {
		src, err := io.ReadAll(env.Stdin)
		return src, "-", err
	}
	src, err := os.ReadFile(args[0])
	return src, args[0], err
}
