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
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fsnotify/fsnotify"
)

// ---------- Subcommand: watch ----------------------------------------------

var errNoDirectory = errors.New("directory to watch is missing")

func cmdWatch(fs *flag.FlagSet, env *Env) (int, error) {
	if len(fs.Args()) < 1 {
		return 2, errNoDirectory
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	w, err := newWatcher(env, fs.Args()[0], fs.Lookup("ext").Value.String())
	if err != nil {
		return 2, err
	}
	return w.run(ctx)
}

// watcher checks all documents of a directory, and again when they change.
type watcher struct {
	env  *Env
	rw   *reportWriter
	path string
	ext  string
	base *fsnotify.Watcher
}

func newWatcher(env *Env, path, ext string) (*watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		env.Log.Debug().Err(err).Str("path", path).Msg("Unable to create absolute path")
		return nil, err
	}
	base, err := fsnotify.NewWatcher()
	if err != nil {
		env.Log.Debug().Err(err).Str("absPath", absPath).Msg("Unable to create watcher")
		return nil, err
	}
	if err = base.Add(absPath); err != nil {
		base.Close()
		env.Log.Error().Err(err).Str("path", absPath).Msg("Unable to watch directory")
		return nil, err
	}
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return &watcher{env: env, rw: newReportWriter(env.Stdout), path: absPath, ext: ext, base: base}, nil
}

func (w *watcher) run(ctx context.Context) (int, error) {
	defer w.base.Close()
	entries, err := os.ReadDir(w.path)
	if err != nil {
		return 2, err
	}
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			w.check(filepath.Join(w.path, entry.Name()))
		}
	}
	w.env.Log.Info().Str("path", w.path).Msg("Watching")
	for {
		select {
		case <-ctx.Done():
			w.env.Log.Debug().Msg("done")
			return 0, nil
		case err, ok := <-w.base.Errors:
			if !ok {
				return 0, nil
			}
			w.env.Log.Error().Err(err).Msg("watch error")
		case ev, ok := <-w.base.Events:
			if !ok {
				return 0, nil
			}
			w.env.Log.Trace().Str("name", ev.Name).Str("op", ev.Op.String()).Msg("file event")
			if ev.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				w.check(ev.Name)
			}
		}
	}
}

func (w *watcher) relevant(name string) bool {
	base := filepath.Base(name)
	if strings.HasPrefix(base, ".") {
		return false
	}
	return w.ext == "" || filepath.Ext(base) == w.ext
}

func (w *watcher) check(name string) {
	if !w.relevant(name) {
		return
	}
	fi, err := os.Lstat(name)
	if err != nil || !fi.Mode().IsRegular() {
		w.env.Log.Trace().Str("name", name).Err(err).Msg("not a regular file")
		return
	}
	src, err := os.ReadFile(name)
	if err != nil {
		w.env.Log.Error().Err(err).Str("name", name).Msg("Unable to read file")
		return
	}
	if invalid := checkDocument(w.env, w.rw, name, src); invalid == 0 {
		w.env.Log.For(name).Info().Msg("valid")
	}
}
