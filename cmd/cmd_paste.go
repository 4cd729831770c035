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
	"os"

	"blockmark.de/b/encoder"
	"blockmark.de/b/encoder/blockenc"
	"blockmark.de/b/rawhandler"
)

// ---------- Subcommand: paste ----------------------------------------------

func cmdPaste(fs *flag.FlagSet, env *Env) (int, error) {
	opts := rawhandler.Options{
		Mode:   env.Config.RawMode(),
		Logger: env.Log.For("paste"),
	}
	if plainFile := fs.Lookup("plain").Value.String(); plainFile != "" {
		plain, err := os.ReadFile(plainFile)
		if err != nil {
			return 2, err
		}
		opts.PlainText = string(plain)
	}
	if opts.PlainText == "" || len(fs.Args()) > 0 {
		src, _, err := readInput(env, fs.Args())
		if err != nil {
			return 2, err
		}
		opts.HTML = string(src)
	}
	if fs.Lookup("inline").Value.String() == "true" {
		opts.Mode = rawhandler.ModeInline
	}

	res := rawhandler.Handle(env.Registry, opts)
	if opts.Mode == rawhandler.ModeInline {
		fmt.Fprintln(env.Stdout, res.HTML)
		return 0, nil
	}
	fmt.Fprintln(env.Stdout, blockenc.Serialize(res.Blocks, &encoder.Environment{
		Registry:  env.Registry,
		Separator: env.Config.Separator(),
	}))
	return 0, nil
}
