package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndexOf(t *testing.T) {
	header := []string{" Pack ID ", "Juegos Incluidos", "PRECIO CLP", "precio clp"}

	tests := []struct {
		name string
		want int
	}{
		{"Pack ID", 0},
		{"pack id", 0},
		{"Juegos Incluidos", 1},
		{"Precio CLP", 2}, // first match wins
		{"Estado", -1},
		{"Pack", -1}, // exact match only
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IndexOf(header, tt.name))
		})
	}
}

func TestColumns(t *testing.T) {
	header := []string{"NOMBRE DE JUEGOS", "Precio", "imagen"}
	cols := Resolve(header, "NOMBRE DE JUEGOS", "Precio", "trailer")

	assert.True(t, cols.Has("Precio"))
	assert.False(t, cols.Has("trailer"))
	assert.False(t, cols.Has("never asked"))
	assert.Equal(t, []string{"trailer"}, cols.Missing("Precio", "trailer"))

	row := []string{"  Zelda  ", "19990"}
	assert.Equal(t, "Zelda", cols.Cell(row, "NOMBRE DE JUEGOS"))
	assert.Equal(t, "  Zelda  ", cols.Raw(row, "NOMBRE DE JUEGOS"))
	assert.Equal(t, "", cols.Cell(row, "trailer"), "absent column")
	assert.Equal(t, "", cols.Cell([]string{"only"}, "Precio"), "short row")
	assert.Equal(t, "", cols.Cell(nil, "Precio"), "nil row")
}
