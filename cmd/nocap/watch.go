package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
)

// watch calls run once and again each time path is written, until ctx is
// done or the process is interrupted. Errors from run are reported to
// stderr and do not stop the watch.
func watch(ctx context.Context, path string, run func() error, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	// Editors often replace the file rather than write it, so watch the
	// directory and filter by name.
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return err
	}

	if err := run(); err != nil {
		printError(stderr, err)
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !isChange(ev, abs) {
				continue
			}
			if err := run(); err != nil {
				printError(stderr, err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(stderr, "watch: %v\n", err)
		}
	}
}

func isChange(ev fsnotify.Event, path string) bool {
	if filepath.Clean(ev.Name) != path {
		return false
	}
	return ev.Op&(fsnotify.Write|fsnotify.Create) != 0
}
