// Package pkgsort provides a public Go API for canonicalizing package.json
// manifests.
//
// The input text is parsed, top-level keys are reordered into the canonical
// schema order (unknown keys alphabetically after known ones, private
// underscore-prefixed keys last), per-field value normalization is applied,
// and the result is rendered back to JSON. No data is added or dropped, and
// the operation is idempotent.
//
// Basic usage:
//
//	sorted, err := pkgsort.Sort(text)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(sorted)
//
// With options:
//
//	sorted, err := pkgsort.SortWithOptions(text, pkgsort.Options{
//	    Pretty:      true,
//	    SortScripts: true,
//	})
package pkgsort

import "github.com/hupe1980/pkgsort/internal/manifest"

// Options control how a manifest is rendered. See manifest.Options.
type Options = manifest.Options

// ParseError reports that the input text is not well-formed JSON. It is the
// only error kind Sort and SortWithOptions return.
type ParseError = manifest.ParseError

// DefaultOptions returns the options used by Sort: pretty output, scripts
// left in authored order.
func DefaultOptions() Options {
	return manifest.DefaultOptions()
}

// Sort canonicalizes a package.json manifest with default options.
func Sort(text string) (string, error) {
	return manifest.Sort(text)
}

// SortWithOptions canonicalizes a package.json manifest.
func SortWithOptions(text string, opts Options) (string, error) {
	return manifest.SortWithOptions(text, opts)
}
