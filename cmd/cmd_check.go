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
	"strings"

	"golang.org/x/term"

	"blockmark.de/b/ast"
	"blockmark.de/b/parser"
	"blockmark.de/b/schema"
	"blockmark.de/b/strfun"
)

// ---------- Subcommand: check ----------------------------------------------

func cmdCheck(fs *flag.FlagSet, env *Env) (int, error) {
	args := fs.Args()
	if len(args) == 0 {
		args = []string{"-"}
	}
	rw := newReportWriter(env.Stdout)
	exitCode := 0
	for _, arg := range args {
		src, name, err := readInput(env, []string{arg})
		if err != nil {
			fmt.Fprintf(env.Stderr, "%s: %v\n", arg, err)
			exitCode = 2
			continue
		}
		if n := checkDocument(env, rw, name, src); n > 0 && exitCode == 0 {
			exitCode = 1
		}
	}
	return exitCode, nil
}

// checkDocument parses the document and reports all invalid blocks. It
// returns their number.
func checkDocument(env *Env, rw *reportWriter, name string, src []byte) int {
	bs := parser.Parse(src, env.Registry, env.ParserOptions(name))
	invalid := 0
	ast.PostOrder(bs, func(b *ast.Block) {
		if b.Validity != ast.Invalid {
			return
		}
		invalid++
		rw.report(name, b)
	})
	env.Log.For(name).Debug().Int("invalid", int64(invalid)).Msg("checked")
	return invalid
}

const defaultWidth = 80

// reportWriter writes reports about invalid blocks. On a terminal, long
// lines are shortened to the terminal width.
type reportWriter struct {
	w     io.Writer
	width int
}

func newReportWriter(w io.Writer) *reportWriter {
	rw := &reportWriter{w: w}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		rw.width = defaultWidth
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			rw.width = width
		}
	}
	return rw
}

const labelWidth = 12

func (rw *reportWriter) report(name string, b *ast.Block) {
	fmt.Fprintf(rw.w, "%s:%d: invalid block %q\n", name, b.Start, schema.DelimiterName(b.Name))
	rw.line("original", b.OriginalContent)
	rw.line("candidate", b.Candidate)
	for _, issue := range b.Issues {
		rw.line("issue", issue)
	}
}

func (rw *reportWriter) line(label, text string) {
	text = strings.ReplaceAll(text, "\n", `\n`)
	if rw.width > labelWidth+4 && strfun.Length(text) > rw.width-labelWidth-2 {
		text = strfun.JustifyLeft(text, rw.width-labelWidth-2, ' ')
	}
	fmt.Fprintf(rw.w, "  %s%s\n", strfun.JustifyLeft(label+":", labelWidth, ' '), text)
}
