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
	"io"
	"sort"

	"blockmark.de/b/config"
	"blockmark.de/b/logger"
	"blockmark.de/b/parser"
	"blockmark.de/b/schema"
)

// Command stores information about commands / sub-commands.
type Command struct {
	Name  string              // command name as it appears on the command line
	Func  CommandFunc         // function that executes a command
	Flags func(*flag.FlagSet) // function to set up flag.FlagSet
}

// CommandFunc is the function that executes the command.
// It accepts the parsed command line parameters.
// It returns the exit code and an error.
type CommandFunc func(*flag.FlagSet, *Env) (int, error)

// Env is the environment a command is executed in.
type Env struct {
	Config   *config.Config
	Registry *schema.Registry
	Log      *logger.Logger
	Stdin    io.Reader
	Stdout   io.Writer
	Stderr   io.Writer
}

// ParserOptions returns the options for parsing the named document.
func (env *Env) ParserOptions(document string) *parser.Options {
	return &parser.Options{MaxDepth: env.Config.MaxDepth(), Logger: env.Log.For(document)}
}

// newFlags returns the flag set of the command.
func (c *Command) newFlags(errOut io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(c.Name, flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.String("c", config.DefaultFile, "configuration file")
	fs.String("l", "", "log level")
	if c.Flags != nil {
		c.Flags(fs)
	}
	return fs
}

var commands = make(map[string]Command)

// RegisterCommand registers the given command.
func RegisterCommand(cmd Command) {
	if cmd.Name == "" || cmd.Func == nil {
		panic("Required command values missing")
	}
	if _, ok := commands[cmd.Name]; ok {
		panic("Command already registered: " + cmd.Name)
	}
	commands[cmd.Name] = cmd
}

// Get returns the command identified by the given name and a bool to signal success.
func Get(name string) (Command, bool) {
	cmd, ok := commands[name]
	return cmd, ok
}

// List returns a sorted list of all registered command names.
func List() []string {
	result := make([]string, 0, len(commands))
	for name := range commands {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}
