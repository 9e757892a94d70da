package manifest

// TransformKind identifies the value rewrite applied to a known field.
type TransformKind int

const (
	// TransformNone leaves the value untouched.
	TransformNone TransformKind = iota

	// TransformSortAlphabetical reorders an object's members by key, one
	// level deep.
	TransformSortAlphabetical

	// TransformSortRecursive reorders an object's members by key at every
	// nesting level.
	TransformSortRecursive

	// TransformSortUniqueArray sorts and deduplicates the string elements
	// of an array; non-string elements keep their relative order after the
	// strings.
	TransformSortUniqueArray

	// TransformSortSubkeyOrder emits the descriptor's SubkeyOrder keys
	// first, in that sequence, then the remaining keys alphabetically.
	TransformSortSubkeyOrder

	// TransformSortExports orders a conditional-exports map: path
	// conditions, types conditions, other conditions, then default, each
	// group alphabetical, recursing into nested maps.
	TransformSortExports

	// TransformSortPeople orders a person object as name, email, url.
	TransformSortPeople

	// TransformSortPeopleArray applies the person ordering to every object
	// element of an array.
	TransformSortPeopleArray

	// TransformSortScripts sorts alphabetically only when the SortScripts
	// option is enabled; otherwise the authored order is kept.
	TransformSortScripts
)

// String returns the kind's name as used by the schema command.
func (k TransformKind) String() string {
	switch k {
	case TransformSortAlphabetical:
		return "sort-alphabetical"
	case TransformSortRecursive:
		return "sort-recursive"
	case TransformSortUniqueArray:
		return "sort-unique-array"
	case TransformSortSubkeyOrder:
		return "sort-subkey-order"
	case TransformSortExports:
		return "sort-exports"
	case TransformSortPeople:
		return "sort-people"
	case TransformSortPeopleArray:
		return "sort-people-array"
	case TransformSortScripts:
		return "sort-scripts"
	default:
		return "none"
	}
}

// FieldDescriptor binds a recognized manifest field to its output rank and
// the transform applied to its value.
type FieldDescriptor struct {
	Name      string
	Priority  int
	Transform TransformKind

	// SubkeyOrder lists the keys emitted first, in fixed sequence, when
	// Transform is TransformSortSubkeyOrder.
	SubkeyOrder []string
}

// fieldOrder is the canonical output order of recognized fields. A field's
// priority is its position in this slice, so appending or inserting a field
// here is the only change needed to recognize it; classifier and transformer
// never branch on field names.
var fieldOrder = []FieldDescriptor{
	{Name: "$schema"},
	{Name: "name"},
	{Name: "displayName"},
	{Name: "version"},
	{Name: "stableVersion"},
	{Name: "private"},
	{Name: "description"},
	{Name: "categories", Transform: TransformSortUniqueArray},
	{Name: "keywords", Transform: TransformSortUniqueArray},
	{Name: "homepage"},
	{Name: "bugs", Transform: TransformSortSubkeyOrder, SubkeyOrder: []string{"url", "email"}},
	{Name: "repository", Transform: TransformSortSubkeyOrder, SubkeyOrder: []string{"type", "url", "directory"}},
	{Name: "funding", Transform: TransformSortSubkeyOrder, SubkeyOrder: []string{"type", "url"}},
	{Name: "sponsor", Transform: TransformSortSubkeyOrder, SubkeyOrder: []string{"url"}},
	{Name: "license"},
	{Name: "qna"},
	{Name: "author", Transform: TransformSortPeople},
	{Name: "maintainers", Transform: TransformSortPeopleArray},
	{Name: "contributors", Transform: TransformSortPeopleArray},
	{Name: "publisher"},
	{Name: "sideEffects"},
	{Name: "type"},
	{Name: "imports", Transform: TransformSortExports},
	{Name: "exports", Transform: TransformSortExports},
	{Name: "main"},
	{Name: "svelte"},
	{Name: "umd:main"},
	{Name: "jsdelivr"},
	{Name: "unpkg"},
	{Name: "module"},
	{Name: "source"},
	{Name: "jsnext:main"},
	{Name: "browser"},
	{Name: "react-native"},
	{Name: "types"},
	{Name: "typesVersions", Transform: TransformSortRecursive},
	{Name: "typings"},
	{Name: "style"},
	{Name: "example"},
	{Name: "examples"},
	{Name: "assets"},
	{Name: "bin", Transform: TransformSortAlphabetical},
	{Name: "man"},
	{Name: "directories", Transform: TransformSortSubkeyOrder, SubkeyOrder: []string{"lib", "bin", "man", "doc", "example", "test"}},
	{Name: "files", Transform: TransformSortUniqueArray},
	{Name: "workspaces", Transform: TransformSortUniqueArray},
	{Name: "binary"},
	{Name: "scripts", Transform: TransformSortScripts},
	{Name: "betterScripts", Transform: TransformSortScripts},
	{Name: "contributes"},
	{Name: "activationEvents", Transform: TransformSortUniqueArray},
	{Name: "extensionKind"},
	{Name: "capabilities"},
	{Name: "l10n"},
	{Name: "husky"},
	{Name: "simple-git-hooks"},
	{Name: "gitHooks"},
	{Name: "pre-commit"},
	{Name: "commitlint"},
	{Name: "lint-staged"},
	{Name: "nano-staged"},
	{Name: "config", Transform: TransformSortAlphabetical},
	{Name: "nodemonConfig"},
	{Name: "browserify"},
	{Name: "babel"},
	{Name: "browserslist"},
	{Name: "xo"},
	{Name: "prettier"},
	{Name: "eslintConfig"},
	{Name: "eslintIgnore", Transform: TransformSortUniqueArray},
	{Name: "npmpkgjsonlint"},
	{Name: "npmPackageJsonLintConfig"},
	{Name: "npmpackagejsonlint"},
	{Name: "release"},
	{Name: "remarkConfig"},
	{Name: "stylelint"},
	{Name: "ava"},
	{Name: "jest"},
	{Name: "jest-junit"},
	{Name: "jest-stare"},
	{Name: "mocha"},
	{Name: "nyc"},
	{Name: "c8"},
	{Name: "tap"},
	{Name: "oclif"},
	{Name: "size-limit"},
	{Name: "resolutions", Transform: TransformSortAlphabetical},
	{Name: "overrides", Transform: TransformSortRecursive},
	{Name: "dependencies", Transform: TransformSortAlphabetical},
	{Name: "devDependencies", Transform: TransformSortAlphabetical},
	{Name: "dependenciesMeta", Transform: TransformSortAlphabetical},
	{Name: "peerDependencies", Transform: TransformSortAlphabetical},
	{Name: "peerDependenciesMeta", Transform: TransformSortAlphabetical},
	{Name: "optionalDependencies", Transform: TransformSortAlphabetical},
	{Name: "bundledDependencies", Transform: TransformSortUniqueArray},
	{Name: "bundleDependencies", Transform: TransformSortUniqueArray},
	{Name: "extensionPack", Transform: TransformSortUniqueArray},
	{Name: "extensionDependencies", Transform: TransformSortUniqueArray},
	{Name: "flat"},
	{Name: "packageManager"},
	{Name: "devEngines", Transform: TransformSortAlphabetical},
	{Name: "engines", Transform: TransformSortAlphabetical},
	{Name: "engineStrict"},
	{Name: "volta", Transform: TransformSortSubkeyOrder, SubkeyOrder: []string{"node", "npm", "yarn"}},
	{Name: "languageName"},
	{Name: "os", Transform: TransformSortUniqueArray},
	{Name: "cpu", Transform: TransformSortUniqueArray},
	{Name: "libc", Transform: TransformSortUniqueArray},
	{Name: "preferGlobal"},
	{Name: "publishConfig", Transform: TransformSortAlphabetical},
	{Name: "icon"},
	{Name: "badges"},
	{Name: "galleryBanner"},
	{Name: "preview"},
	{Name: "markdown"},
	{Name: "pnpm"},
}

// extraFields holds recognized fields whose canonical slot coincides with
// their list position after fieldOrder; kept separate so the common npm set
// above stays close to upstream ordering conventions while tool-specific
// config blocks trail it.
var extraFields = []FieldDescriptor{
	{Name: "np"},
	{Name: "standard"},
	{Name: "semistandard"},
	{Name: "standard-version"},
	{Name: "auto-changelog"},
	{Name: "typeCoverage"},
	{Name: "importSort"},
	{Name: "watch"},
	{Name: "wallaby"},
	{Name: "pre-push"},
	{Name: "tsup"},
	{Name: "typedoc"},
	{Name: "sasslintConfig"},
	{Name: "cypress-cucumber-preprocessor"},
	{Name: "nativescript"},
	{Name: "mangle"},
	{Name: "gypfile"},
	{Name: "nodemon"},
	{Name: "pretty-quick"},
	{Name: "vetur"},
}

// fieldIndex maps field name to its descriptor with the priority resolved.
var fieldIndex = buildFieldIndex()

func buildFieldIndex() map[string]FieldDescriptor {
	all := append(append([]FieldDescriptor{}, fieldOrder...), extraFields...)

	idx := make(map[string]FieldDescriptor, len(all))

	for i, d := range all {
		d.Priority = i
		idx[d.Name] = d
	}

	return idx
}

// LookupField returns the descriptor for a recognized field name.
func LookupField(name string) (FieldDescriptor, bool) {
	d, ok := fieldIndex[name]
	return d, ok
}

// Fields returns the full schema table in priority order. The returned slice
// is a copy; the table itself is immutable.
func Fields() []FieldDescriptor {
	all := append(append([]FieldDescriptor{}, fieldOrder...), extraFields...)

	for i := range all {
		all[i].Priority = i
	}

	return all
}
