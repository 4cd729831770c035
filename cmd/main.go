//-----------------------------------------------------------------------------
// Copyright (c) 2024-present Detlef Stern
//
// This file is part of Blockmark.
//
// Blockmark is licensed under the latest version of the EUPL (European Union
// Public License). Please see file LICENSE.txt for your rights and obligations
// under this license.
//-----------------------------------------------------------------------------

// Package cmd provides the commands of the blockmark command line tool.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"

	"blockmark.de/b/blocklib"
	"blockmark.de/b/config"
	"blockmark.de/b/encoder"
	"blockmark.de/b/logger"
)

func init() {
	RegisterCommand(Command{
		Name: "help",
		Func: func(_ *flag.FlagSet, env *Env) (int, error) {
			fmt.Fprintln(env.Stdout, "Available commands:")
			for _, name := range List() {
				fmt.Fprintf(env.Stdout, "- %q\n", name)
			}
			return 0, nil
		},
	})
	RegisterCommand(Command{
		Name: "version",
		Func: func(_ *flag.FlagSet, env *Env) (int, error) {
			fmtVersion(env.Stdout)
			return 0, nil
		},
	})
	RegisterCommand(Command{
		Name: "parse",
		Func: cmdParse,
		Flags: func(fs *flag.FlagSet) {
			fs.String("t", encoder.EncodingBlock, "target output format")
			fs.String("s", "block", "syntax of the input")
			fs.String("indent", "", "indentation of JSON output")
		},
	})
	RegisterCommand(Command{
		Name: "check",
		Func: cmdCheck,
	})
	RegisterCommand(Command{
		Name: "paste",
		Func: cmdPaste,
		Flags: func(fs *flag.FlagSet) {
			fs.String("plain", "", "file with the plain text version")
			fs.Bool("inline", false, "produce inline markup instead of blocks")
		},
	})
	RegisterCommand(Command{
		Name: "watch",
		Func: cmdWatch,
		Flags: func(fs *flag.FlagSet) {
			fs.String("ext", "", "check only files with this extension")
		},
	})
}

func fmtVersion(w io.Writer) {
	fmt.Fprintln(w, config.GetVersion())
}

func getConfig(fs *flag.FlagSet) (*config.Config, error) {
	cfg, err := config.ReadFile(fs.Lookup("c").Value.String())
	if err != nil {
		return nil, err
	}
	fs.Visit(func(flg *flag.Flag) {
		switch flg.Name {
		case "l":
			cfg.Set(config.KeyLogLevel, flg.Value.String())
		}
	})
	return cfg, nil
}

// Run executes the command with the given arguments and returns the exit
// code.
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		args = []string{"help"}
	}
	name := args[0]
	command, ok := Get(name)
	if !ok {
		fmt.Fprintf(stderr, "Unknown command %q\n", name)
		return 1
	}
	fs := command.newFlags(stderr)
	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintf(stderr, "%s: unable to parse flags: %v %v\n", name, args[1:], err)
		return 1
	}
	cfg, err := getConfig(fs)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", name, err)
		return 2
	}
	reg := blocklib.NewRegistry()
	cfg.ApplyRegistry(reg)
	env := Env{
		Config:   cfg,
		Registry: reg,
		Log:      logger.New(logger.NewTextWriter(stderr, true), "BLOCKMARK").SetLevel(cfg.LogLevel()),
		Stdin:    stdin,
		Stdout:   stdout,
		Stderr:   stderr,
	}
	env.Log.Debug().Str("command", name).Msg("start")
	exitCode, err := command.Func(fs, &env)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", name, err)
	}
	return exitCode
}

// Main is the real entrypoint of the blockmark tool.
func Main(progName, buildVersion string) {
	config.SetupVersion(progName, buildVersion)
	if exitCode := Run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); exitCode != 0 {
		os.Exit(exitCode)
	}
}
