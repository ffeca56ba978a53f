package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	namedargs "github.com/reoring/namedargs"
	"github.com/reoring/namedargs/decl"
)

const (
	ansiRed   = "\x1b[31m"
	ansiReset = "\x1b[0m"
)

// lint validates every declaration in files and prints one line per issue.
// It returns 1 when any issue was found.
func lint(w io.Writer, files []string, color bool) int {
	status := 0
	for _, f := range files {
		ds, err := decl.ParseFile(f)
		if err != nil {
			status = 1
			report(w, f, "", err, color)
			continue
		}
		for _, d := range ds {
			if err := d.Validate(); err != nil {
				status = 1
				report(w, f, d.Name, err, color)
			}
		}
	}
	return status
}

func report(w io.Writer, file, name string, err error, color bool) {
	where := file
	if name != "" {
		where += ": " + name
	}
	iss, ok := namedargs.AsIssues(err)
	if !ok {
		fmt.Fprintf(w, "%s: %v\n", where, err)
		return
	}
	for _, it := range iss {
		code := it.Code
		if color {
			code = ansiRed + code + ansiReset
		}
		line := fmt.Sprintf("%s: %s at %s: %s", where, code, it.Path, it.Message)
		if it.Hint != "" {
			line += " (" + it.Hint + ")"
		}
		fmt.Fprintln(w, line)
	}
}

// watchFiles calls onChange whenever one of files is written, created or
// renamed, until ctx is done. Parent directories are watched so editors that
// replace files on save are followed.
func watchFiles(ctx context.Context, files []string, logger *slog.Logger, onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	targets := make(map[string]bool, len(files))
	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return err
		}
		targets[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for d := range dirs {
		if err := w.Add(d); err != nil {
			return err
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			abs, err := filepath.Abs(ev.Name)
			if err != nil || !targets[abs] {
				continue
			}
			logger.Debug("declaration changed", slog.String("file", ev.Name), slog.String("op", ev.Op.String()))
			onChange()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("fsnotify error", slog.String("err", err.Error()))
		}
	}
}
