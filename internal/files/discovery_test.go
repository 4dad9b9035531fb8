package files

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ierrors "cspspay/internal/errors"
)

func TestLocateWorkbook(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()

	wanted := filepath.Join(second, "Organisation working file.xlsx")
	require.NoError(t, os.WriteFile(wanted, []byte("stub"), 0644))

	t.Run("first directory containing the file wins", func(t *testing.T) {
		got, err := LocateWorkbook([]string{first, second}, "Organisation working file.xlsx")
		require.NoError(t, err)
		assert.Equal(t, wanted, got)
	})

	t.Run("probe order is respected", func(t *testing.T) {
		duplicate := filepath.Join(first, "Organisation working file.xlsx")
		require.NoError(t, os.WriteFile(duplicate, []byte("stub"), 0644))

		got, err := LocateWorkbook([]string{first, second}, "Organisation working file.xlsx")
		require.NoError(t, err)
		assert.Equal(t, duplicate, got)
	})

	t.Run("missing everywhere lists every tried path", func(t *testing.T) {
		_, err := LocateWorkbook([]string{first, second}, "No such file.xlsx")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ierrors.New(ierrors.CodeSourceUnavailable, "")))
		assert.Contains(t, err.Error(), first)
		assert.Contains(t, err.Error(), second)
	})

	t.Run("no candidate directories is a precondition error", func(t *testing.T) {
		_, err := LocateWorkbook(nil, "whatever.xlsx")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ierrors.New(ierrors.CodePrecondition, "")))
	})

	t.Run("a directory with the wanted name is not a match", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, "Pay working file.xlsx"), 0755))
		_, err := LocateWorkbook([]string{dir}, "Pay working file.xlsx")
		assert.Error(t, err)
	})
}

func TestListWorkbooks(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.xlsx"), nil, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.XLS"), nil, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.xlsx"), 0755))

	got, err := ListWorkbooks(dir)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.xlsx", "b.XLS"}, got)
}
