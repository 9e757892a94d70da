package manifest

import "strings"

// Options control how a manifest is rendered.
type Options struct {
	// Pretty renders indented multi-line JSON with a trailing newline.
	// When false the output is compact: no insignificant whitespace and no
	// trailing newline.
	Pretty bool

	// SortScripts additionally sorts the scripts and betterScripts objects
	// alphabetically. Off by default so task order stays as authored.
	SortScripts bool
}

// DefaultOptions returns the options used by Sort.
func DefaultOptions() Options {
	return Options{Pretty: true}
}

// Sort canonicalizes a package.json manifest with default options.
func Sort(text string) (string, error) {
	return SortWithOptions(text, DefaultOptions())
}

// SortWithOptions canonicalizes a package.json manifest: known fields in
// schema order with their per-field transforms applied, unknown public keys
// alphabetically after them, underscore-prefixed keys last. Top-level values
// that are not objects are re-rendered unchanged. A leading UTF-8 BOM is
// preserved verbatim. The only error returned is *ParseError.
func SortWithOptions(text string, opts Options) (string, error) {
	hadBOM := strings.HasPrefix(text, bom)
	if hadBOM {
		text = strings.TrimPrefix(text, bom)
	}

	v, err := parse(text)
	if err != nil {
		return "", err
	}

	if obj, ok := v.(*Object); ok {
		v = classify(obj, opts)
	}

	out := render(v, opts.Pretty)
	if hadBOM {
		out = bom + out
	}

	return out, nil
}
