// Package watch keeps a directory tree's package.json manifests canonical
// by re-formatting them whenever they change on disk. Rapid events are
// debounced, and newly created subdirectories are picked up automatically.
package watch

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/hupe1980/pkgsort/internal/walker"
)

// RunFunc is called each time the watcher triggers a re-format. It receives
// the run summary so the watcher can print a status line.
type RunFunc func(ctx context.Context) (*walker.Result, error)

// Options configures the watch behaviour.
type Options struct {
	// Root is the directory tree to watch recursively.
	Root string

	// Debounce is the quiet period before triggering a run.
	Debounce time.Duration

	// Out is the writer for user-facing status messages.
	Out io.Writer
}

// DefaultOptions returns sensible default watch options.
func DefaultOptions() Options {
	return Options{
		Debounce: 500 * time.Millisecond,
		Out:      os.Stderr,
	}
}

// Run starts the file watcher and blocks until the context is cancelled or
// a SIGINT/SIGTERM signal is received. An initial run fires immediately so
// the tree starts out canonical.
func Run(ctx context.Context, opts Options, runFn RunFunc) error {
	if opts.Out == nil {
		opts.Out = io.Discard
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	if err := addRecursive(w, opts.Root); err != nil {
		return fmt.Errorf("watching %s: %w", opts.Root, err)
	}

	// Trap SIGINT / SIGTERM for graceful shutdown.
	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(opts.Out, "watching %s (debounce=%s)\n", opts.Root, opts.Debounce)

	doRun(sigCtx, opts, runFn, "(initial)")

	deb := newDebouncer(opts.Debounce, func(path string, coalesced int) {
		trigger := path
		if coalesced > 1 {
			trigger = fmt.Sprintf("%s (%d events)", path, coalesced)
		}

		doRun(sigCtx, opts, runFn, trigger)
	})
	defer deb.stop()

	for {
		select {
		case <-sigCtx.Done():
			fmt.Fprintln(opts.Out, "\nshutting down watcher")
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}

			// A newly created directory must be watched before any
			// manifest inside it can be seen.
			if event.Has(fsnotify.Create) {
				if info, statErr := os.Stat(event.Name); statErr == nil && info.IsDir() {
					_ = addRecursive(w, event.Name)
					continue
				}
			}

			if !isRelevant(event) {
				continue
			}

			deb.trigger(event.Name)

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}

			fmt.Fprintf(opts.Out, "watch error: %v\n", watchErr)
		}
	}
}

// doRun executes a single re-format run and prints the status line.
func doRun(ctx context.Context, opts Options, runFn RunFunc, trigger string) {
	now := time.Now().Format("15:04:05")

	res, err := runFn(ctx)
	if err != nil {
		fmt.Fprintf(opts.Out, "[%s] %s → ERROR: %v\n", now, trigger, err)
		return
	}

	fmt.Fprintf(opts.Out, "[%s] %s → OK (%d found, %d sorted, %d errors)\n",
		now, trigger, res.Found, res.Sorted, len(res.Errors))

	for _, fe := range res.Errors {
		fmt.Fprintf(opts.Out, "  ✗ %s\n", fe)
	}
}

// addRecursive walks root and adds all non-hidden directories to the watcher.
func addRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != root {
				return filepath.SkipDir
			}

			return w.Add(path)
		}

		return nil
	})
}

// isRelevant keeps only manifest events. Re-formatting a manifest produces a
// write event of its own; the walker leaves already-canonical files
// untouched, so the follow-up run is a cheap no-op rather than a loop.
func isRelevant(event fsnotify.Event) bool {
	if event.Op == 0 {
		return false
	}

	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}

	return filepath.Base(event.Name) == walker.ManifestName
}
