package puzzles

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDir(t *testing.T) {
	files, err := LoadDir("testdata")
	require.NoError(t, err)
	require.Len(t, files, 3)

	corridor, eight, trivial := files[0], files[1], files[2]
	assert.Equal(t, "corridor", corridor.Name)
	assert.Equal(t, KindGrid, corridor.Kind)
	assert.Len(t, corridor.Map, 3)
	assert.Equal(t, filepath.Join("testdata", "corridor.yml"), corridor.Path)

	assert.Equal(t, "easy-eight", eight.Name)
	assert.Equal(t, KindSlide, eight.Kind)
	assert.Equal(t, [][]int{{1, 2, 3}, {4, 0, 6}, {7, 5, 8}}, eight.Tiles)
	assert.Empty(t, eight.Goal)

	assert.Equal(t, "trivial-push", trivial.Name)
	assert.Equal(t, KindPush, trivial.Kind)
	assert.Len(t, trivial.Map, 5)
}

func TestParseRejectsBadFiles(t *testing.T) {
	_, err := Parse([]byte("kind: sokoban\nmap: ['S']\n"))
	assert.ErrorIs(t, err, ErrUnknownKind)

	_, err = Parse([]byte("kind: slide\n"))
	assert.ErrorIs(t, err, ErrEmptyPuzzle)

	_, err = Parse([]byte("kind: push\ntiles: [[1, 0]]\n"))
	assert.ErrorIs(t, err, ErrEmptyPuzzle)

	_, err = Parse([]byte("kind: [unterminated"))
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
