// Package walker discovers package.json manifests beneath a directory and
// rewrites each one into canonical form. Files are processed independently:
// one manifest's failure is recorded and the run continues.
package walker

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/monochromegane/go-gitignore"

	"github.com/hupe1980/pkgsort/internal/manifest"
)

// ManifestName is the exact file name the walker looks for.
const ManifestName = "package.json"

// FileError records a single file that could not be processed.
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e FileError) Unwrap() error { return e.Err }

// Result summarises a run over a directory tree.
type Result struct {
	// Found is the number of manifests discovered.
	Found int

	// Sorted is the number of manifests successfully canonicalized,
	// including files that were already canonical.
	Sorted int

	// Unchanged counts the subset of Sorted that needed no rewrite.
	Unchanged int

	// Errors lists every file that failed to read, parse, or write.
	Errors []FileError
}

// Failed reports whether any file errored.
func (r *Result) Failed() bool {
	return len(r.Errors) > 0
}

// Options configure a run.
type Options struct {
	// Sort options applied to each manifest.
	Sort manifest.Options

	// DryRun canonicalizes without writing anything back.
	DryRun bool

	// Logger receives a line per processed file. Defaults to slog.Default().
	Logger *slog.Logger
}

// Files walks root and returns the paths of all package.json files, in walk
// order. root may also name a manifest file directly. Dot-directories are
// skipped and .gitignore rules along the walked path are honored, matching
// the behavior of gitignore-aware search tools. Unreadable directory entries
// are skipped silently.
func Files(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}

	if !info.IsDir() {
		return []string{root}, nil
	}

	ignores := newIgnoreSet()

	var paths []string

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // unreadable entries are skipped, not fatal
		}

		name := d.Name()

		if d.IsDir() {
			if path != root && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}

			if ignores.ignored(path, true) {
				return filepath.SkipDir
			}

			ignores.add(path)

			return nil
		}

		if name == ManifestName && !ignores.ignored(path, false) {
			paths = append(paths, path)
		}

		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("walking %s: %w", root, walkErr)
	}

	return paths, nil
}

// Run canonicalizes every manifest found beneath root.
func Run(root string, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	paths, err := Files(root)
	if err != nil {
		return nil, err
	}

	res := &Result{Found: len(paths)}

	for _, p := range paths {
		processFile(p, opts, res)
	}

	return res, nil
}

// processFile reads, canonicalizes, and rewrites a single manifest,
// recording the outcome on res. Already-canonical files are left untouched
// so watchers and build tools see no spurious modification.
func processFile(path string, opts Options, res *Result) {
	data, err := os.ReadFile(path)
	if err != nil {
		fail(path, fmt.Errorf("reading: %w", err), opts.Logger, res)
		return
	}

	sorted, err := manifest.SortWithOptions(string(data), opts.Sort)
	if err != nil {
		fail(path, err, opts.Logger, res)
		return
	}

	if sorted == string(data) {
		res.Sorted++
		res.Unchanged++
		opts.Logger.Debug("manifest already canonical", slog.String("path", path))

		return
	}

	if !opts.DryRun {
		if err := os.WriteFile(path, []byte(sorted), 0o644); err != nil {
			fail(path, fmt.Errorf("writing: %w", err), opts.Logger, res)
			return
		}
	}

	res.Sorted++
	opts.Logger.Info("manifest sorted", slog.String("path", path), slog.Bool("dryRun", opts.DryRun))
}

func fail(path string, err error, logger *slog.Logger, res *Result) {
	res.Errors = append(res.Errors, FileError{Path: path, Err: err})
	logger.Error("manifest failed", slog.String("path", path), slog.Any("error", err))
}

// ignoreSet accumulates .gitignore matchers discovered during the walk.
// A path is ignored when any matcher rooted at one of its ancestors says so.
type ignoreSet struct {
	matchers []scopedMatcher
}

type scopedMatcher struct {
	dir     string
	matcher gitignore.IgnoreMatcher
}

func newIgnoreSet() *ignoreSet {
	return &ignoreSet{}
}

// add loads dir/.gitignore if present.
func (s *ignoreSet) add(dir string) {
	m, err := gitignore.NewGitIgnore(filepath.Join(dir, ".gitignore"))
	if err != nil {
		// No .gitignore in this directory.
		return
	}

	s.matchers = append(s.matchers, scopedMatcher{dir: dir, matcher: m})
}

func (s *ignoreSet) ignored(path string, isDir bool) bool {
	for _, sm := range s.matchers {
		if !strings.HasPrefix(path, sm.dir+string(filepath.Separator)) {
			continue
		}

		if sm.matcher.Match(path, isDir) {
			return true
		}
	}

	return false
}
