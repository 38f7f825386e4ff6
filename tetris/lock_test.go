package tetris_test

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/plus3/pixitris/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"
)

type lockScenario struct {
	field   *tetris.Field
	piece   tetris.Piece
	cleared int
	want    string
}

func parseScenario(t *testing.T, path string) lockScenario {
	t.Helper()
	archive, err := txtar.ParseFile(path)
	require.NoError(t, err)

	files := map[string]string{}
	for _, f := range archive.Files {
		files[f.Name] = string(f.Data)
	}

	field, err := tetris.ParseField(files["field"])
	require.NoError(t, err)

	var shape string
	var piece tetris.Piece
	_, err = fmt.Sscanf(files["piece"], "%s %d %d %d", &shape, &piece.Rotation, &piece.X, &piece.Y)
	require.NoError(t, err)
	for id := range tetris.ShapeID(tetris.NumShapes) {
		if id.String() == shape {
			piece.Shape = id
		}
	}

	cleared, err := strconv.Atoi(strings.TrimSpace(files["cleared"]))
	require.NoError(t, err)

	return lockScenario{field: field, piece: piece, cleared: cleared, want: files["want"]}
}

func TestLockScenarios(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		t.Run(strings.TrimSuffix(filepath.Base(path), ".txtar"), func(t *testing.T) {
			sc := parseScenario(t, path)
			require.True(t, sc.field.Fits(sc.piece.Shape, sc.piece.Rotation, sc.piece.X, sc.piece.Y))

			lock := tetris.Lock(sc.field, sc.piece)
			cleared := tetris.ClearCompletedLines(sc.field, lock.Rows)

			assert.Equal(t, sc.cleared, cleared)
			assert.Equal(t, sc.want, sc.field.String())
		})
	}
}

func TestLockRows(t *testing.T) {
	f := newField(t)
	res := tetris.Lock(f, tetris.Piece{Shape: tetris.ShapeI, Rotation: 1, X: 3, Y: 10})
	assert.Equal(t, []int{12}, res.Rows, "flat I touches one row")

	res = tetris.Lock(f, tetris.Piece{Shape: tetris.ShapeI, X: 3, Y: -2})
	assert.Equal(t, []int{0, 1}, res.Rows, "cells above the field are dropped")

	res = tetris.Lock(f, tetris.Piece{Shape: tetris.ShapeT, X: 6, Y: 17})
	assert.Equal(t, []int{17, 18, 19}, res.Rows)
	assert.True(t, f.At(7, 17).Decorated())
	assert.False(t, f.At(7, 18).Decorated())
}

func TestClearWithoutCompleteRowsIsNoop(t *testing.T) {
	f := newField(t)
	f.Set(1, 20, tetris.Locked(tetris.ShapeJ, false))
	f.Set(4, 12, tetris.Locked(tetris.ShapeS, true))
	before := f.String()

	res := tetris.ClearLines(f, []int{20, 12, 20, 21, 40, -1})
	assert.Zero(t, res.Count())
	assert.Equal(t, before, f.String())
}

func TestClearLinesReportsPreClearRows(t *testing.T) {
	f := newField(t)
	for _, y := range []int{18, 20} {
		for x := 1; x < 11; x++ {
			f.Set(x, y, tetris.Locked(tetris.ShapeZ, false))
		}
	}
	res := tetris.ClearLines(f, []int{20, 18, 19})
	assert.Equal(t, []int{18, 20}, res.Rows)
	for y := range 21 {
		assert.False(t, f.RowComplete(y))
	}
}
