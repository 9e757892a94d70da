package pkgsort_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/pkgsort/pkg/pkgsort"
)

func readFixture(t *testing.T, name string) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)

	return string(data)
}

func TestSort_Fixture(t *testing.T) {
	input := readFixture(t, "package.json")
	want := readFixture(t, "package.sorted.json")

	got, err := pkgsort.Sort(input)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// Idempotent: sorting canonical output changes nothing.
	again, err := pkgsort.Sort(got)
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestSortWithOptions_Compact(t *testing.T) {
	got, err := pkgsort.SortWithOptions(`{"version":"1.0.0","name":"a"}`, pkgsort.Options{})
	require.NoError(t, err)
	assert.Equal(t, `{"name":"a","version":"1.0.0"}`, got)
}

func TestSortWithOptions_SortScripts(t *testing.T) {
	input := `{"name":"a","scripts":{"test":"jest","build":"tsc"}}`

	got, err := pkgsort.SortWithOptions(input, pkgsort.Options{SortScripts: true})
	require.NoError(t, err)
	assert.Equal(t, `{"name":"a","scripts":{"build":"tsc","test":"jest"}}`, got)
}

func TestSort_ParseError(t *testing.T) {
	_, err := pkgsort.Sort(`{"name":`)
	require.Error(t, err)

	var parseErr *pkgsort.ParseError
	assert.True(t, errors.As(err, &parseErr))
}

func TestDefaultOptions(t *testing.T) {
	opts := pkgsort.DefaultOptions()
	assert.True(t, opts.Pretty)
	assert.False(t, opts.SortScripts)
}
