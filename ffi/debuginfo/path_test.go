package debuginfo

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchPath(t *testing.T) {
	a, b := t.TempDir(), t.TempDir()
	gone := filepath.Join(a, "missing")

	t.Setenv(EnvLibraryPath, "")

	assert.Equal(t, []string{a}, SearchPath(a, gone))

	t.Setenv(EnvLibraryPath, strings.Join([]string{b, gone}, string(os.PathListSeparator)))

	dirs := SearchPath(a)
	require.Contains(t, dirs, a)
	require.Contains(t, dirs, b)
	assert.NotContains(t, dirs, gone)
	assert.Less(t, indexOf(dirs, a), indexOf(dirs, b))
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}

	return -1
}

func TestLocate(t *testing.T) {
	t.Parallel()

	a, b := t.TempDir(), t.TempDir()

	lib := filepath.Join(b, "libexample.so")
	require.NoError(t, os.WriteFile(lib, []byte("\x7fELF"), 0o600))

	got, err := Locate("example", []string{a, b})
	require.NoError(t, err)
	assert.Equal(t, lib, got)

	got, err = Locate("libexample.so", []string{a, b})
	require.NoError(t, err)
	assert.Equal(t, lib, got)

	got, err = Locate(lib, nil)
	require.NoError(t, err)
	assert.Equal(t, lib, got)

	_, err = Locate("other", []string{a, b})
	require.ErrorIs(t, err, ErrNotFound)

	_, err = Locate(filepath.Join(a, "libexample.so"), nil)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestIsELF(t *testing.T) {
	t.Parallel()

	assert.True(t, IsELF(strings.NewReader("\x7fELF\x02\x01")))
	assert.False(t, IsELF(strings.NewReader("[[1, {}]]")))
	assert.False(t, IsELF(strings.NewReader("")))
}
