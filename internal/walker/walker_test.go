package walker_test

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/pkgsort/internal/manifest"
	"github.com/hupe1980/pkgsort/internal/walker"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// writeFile creates path (and parents) with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	return string(data)
}

// ---------------------------------------------------------------------------
// Files
// ---------------------------------------------------------------------------

func TestFiles_FindsNestedManifests(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "package.json"), `{}`)
	writeFile(t, filepath.Join(dir, "packages", "a", "package.json"), `{}`)
	writeFile(t, filepath.Join(dir, "packages", "b", "package.json"), `{}`)
	writeFile(t, filepath.Join(dir, "packages", "b", "not-package.json"), `{}`)

	paths, err := walker.Files(dir)
	require.NoError(t, err)
	assert.Len(t, paths, 3)
}

func TestFiles_SkipsDotDirectories(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "package.json"), `{}`)
	writeFile(t, filepath.Join(dir, ".git", "package.json"), `{}`)
	writeFile(t, filepath.Join(dir, ".cache", "deep", "package.json"), `{}`)

	paths, err := walker.Files(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "package.json")}, paths)
}

func TestFiles_HonorsGitignore(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".gitignore"), "node_modules/\ndist/\n")
	writeFile(t, filepath.Join(dir, "package.json"), `{}`)
	writeFile(t, filepath.Join(dir, "node_modules", "dep", "package.json"), `{}`)
	writeFile(t, filepath.Join(dir, "dist", "package.json"), `{}`)
	writeFile(t, filepath.Join(dir, "src", "package.json"), `{}`)

	paths, err := walker.Files(dir)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "package.json"),
		filepath.Join(dir, "src", "package.json"),
	}, paths)
}

func TestFiles_HonorsNestedGitignore(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "sub", ".gitignore"), "generated/\n")
	writeFile(t, filepath.Join(dir, "sub", "generated", "package.json"), `{}`)
	writeFile(t, filepath.Join(dir, "sub", "package.json"), `{}`)
	writeFile(t, filepath.Join(dir, "generated", "package.json"), `{}`)

	paths, err := walker.Files(dir)
	require.NoError(t, err)

	// Only sub/.gitignore applies, so the top-level generated/ survives.
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "generated", "package.json"),
		filepath.Join(dir, "sub", "package.json"),
	}, paths)
}

func TestFiles_SingleFileRoot(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "package.json")
	writeFile(t, p, `{}`)

	paths, err := walker.Files(p)
	require.NoError(t, err)
	assert.Equal(t, []string{p}, paths)
}

func TestFiles_MissingRoot(t *testing.T) {
	_, err := walker.Files(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

// ---------------------------------------------------------------------------
// Run
// ---------------------------------------------------------------------------

func TestRun_RewritesManifests(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "package.json")
	writeFile(t, p, `{"version":"1.0.0","name":"x"}`)

	res, err := walker.Run(dir, walker.Options{Sort: manifest.DefaultOptions(), Logger: discardLogger})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Found)
	assert.Equal(t, 1, res.Sorted)
	assert.False(t, res.Failed())
	assert.Equal(t, "{\n  \"name\": \"x\",\n  \"version\": \"1.0.0\"\n}\n", readFile(t, p))
}

func TestRun_AlreadyCanonicalLeftUntouched(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "package.json")
	canonical := "{\n  \"name\": \"x\"\n}\n"
	writeFile(t, p, canonical)

	info, err := os.Stat(p)
	require.NoError(t, err)

	res, runErr := walker.Run(dir, walker.Options{Sort: manifest.DefaultOptions(), Logger: discardLogger})
	require.NoError(t, runErr)

	assert.Equal(t, 1, res.Sorted)
	assert.Equal(t, 1, res.Unchanged)

	after, err := os.Stat(p)
	require.NoError(t, err)
	assert.Equal(t, info.ModTime(), after.ModTime(), "canonical file should not be rewritten")
}

func TestRun_InvalidManifestCountedNotFatal(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a", "package.json"), `{not json`)
	writeFile(t, filepath.Join(dir, "b", "package.json"), `{"version":"1","name":"b"}`)

	res, err := walker.Run(dir, walker.Options{Sort: manifest.DefaultOptions(), Logger: discardLogger})
	require.NoError(t, err)

	assert.Equal(t, 2, res.Found)
	assert.Equal(t, 1, res.Sorted)
	require.Len(t, res.Errors, 1)
	assert.True(t, res.Failed())
	assert.Contains(t, res.Errors[0].Path, "a")

	// The valid sibling was still rewritten.
	assert.Contains(t, readFile(t, filepath.Join(dir, "b", "package.json")), "\"name\": \"b\"")
}

func TestRun_DryRunWritesNothing(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "package.json")
	original := `{"version":"1.0.0","name":"x"}`
	writeFile(t, p, original)

	res, err := walker.Run(dir, walker.Options{
		Sort:   manifest.DefaultOptions(),
		DryRun: true,
		Logger: discardLogger,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Sorted)
	assert.Equal(t, original, readFile(t, p))
}

func TestRun_CompactMode(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "package.json")
	writeFile(t, p, "{\n  \"version\": \"1\",\n  \"name\": \"x\"\n}\n")

	_, err := walker.Run(dir, walker.Options{
		Sort:   manifest.Options{Pretty: false},
		Logger: discardLogger,
	})
	require.NoError(t, err)

	assert.Equal(t, `{"name":"x","version":"1"}`, readFile(t, p))
}
