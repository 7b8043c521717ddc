package resource

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string, data []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0644))
}

func TestSearchPathOrder(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writeFile(t, first, "shared.000", []byte{1})
	writeFile(t, second, "shared.000", []byte{2})
	writeFile(t, second, "only.000", []byte{3})

	p := NewSearchPath(first, "", second)
	assert.Equal(t, []string{first, second}, p.Dirs())

	s, err := p.Open("shared.000")
	require.NoError(t, err)
	b, _ := s.ReadByte()
	assert.Equal(t, byte(1), b)

	s, err = p.Open("only.000")
	require.NoError(t, err)
	b, _ = s.ReadByte()
	assert.Equal(t, byte(3), b)
	assert.Equal(t, "only.000", s.Name())

	p.Prepend(second)
	s, err = p.Open("shared.000")
	require.NoError(t, err)
	b, _ = s.ReadByte()
	assert.Equal(t, byte(2), b)
}

func TestSearchPathLowerCaseFallback(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "menu.000", []byte{7})

	full, err := NewSearchPath(dir).Resolve("MENU.000")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "menu.000"), full)
}

func TestSearchPathNotFound(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "folder.000"), 0755))

	p := NewSearchPath(dir)
	_, err := p.Open("missing.000")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = p.Open("folder.000")
	assert.ErrorIs(t, err, ErrNotFound, "directories are not readable files")

	_, err = NewSearchPath().Open("anything")
	assert.ErrorIs(t, err, ErrNotFound)
}
