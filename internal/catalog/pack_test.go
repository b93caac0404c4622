package catalog

import (
	"testing"

	"github.com/JonMunkholm/gamestore/internal/sheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var packHeader = []string{"Pack ID", "Juegos Incluidos", "Precio CLP", "Estado", "Consola"}

func TestParsePacks(t *testing.T) {
	rows := [][]string{
		packHeader,
		{"1", "Zelda BOTW, Mario Odyssey; Luigi's Mansion 3\nPokémon Let's Go", "$19.990", " Disponible ", ""},
		{"abc", "Hollow Knight", "14990", "Disponible", "Nintendo Switch"},
		{"0", "Celeste", "14990", "", ""},
		{"-1", "Hades", "14990", "", ""},
		{"7"},
		{"3", "Mario Kart 8 · Overcooked 2", "", "Vendido", "Nintendo Switch, Nintendo Switch 2"},
	}

	packs := ParsePacks(rows)
	require.Len(t, packs, 3)

	assert.Equal(t, Pack{
		ID:      1,
		Title:   "Zelda BOTW",
		Console: DefaultConsole,
		Price:   19990,
		Status:  "Disponible",
		Games:   []string{"Zelda BOTW", "Mario Odyssey", "Luigi's Mansion 3", "Pokémon Let's Go"},
	}, packs[0])

	assert.Equal(t, 7, packs[1].ID)
	assert.Equal(t, DefaultPackTitle, packs[1].Title)
	assert.Empty(t, packs[1].Games)
	assert.NotNil(t, packs[1].Games)
	assert.Equal(t, 0, packs[1].Price)
	assert.Equal(t, DefaultConsole, packs[1].Console)
	assert.Equal(t, "", packs[1].Status)

	assert.Equal(t, []string{"Mario Kart 8", "Overcooked 2"}, packs[2].Games)
	assert.Equal(t, "Nintendo Switch, Nintendo Switch 2", packs[2].Console)
	assert.Equal(t, 0, packs[2].Price)
}

func TestParsePacks_Empty(t *testing.T) {
	packs := ParsePacks(nil)
	assert.NotNil(t, packs)
	assert.Empty(t, packs)

	assert.Empty(t, ParsePacks([][]string{packHeader}))
}

func TestParsePacks_MissingColumns(t *testing.T) {
	rows := [][]string{
		{"pack id"},
		{"5"},
	}
	packs := ParsePacks(rows)
	require.Len(t, packs, 1)
	assert.Equal(t, Pack{ID: 5, Title: "Pack", Console: DefaultConsole, Games: []string{}}, packs[0])

	// Without an id column nothing qualifies.
	assert.Empty(t, ParsePacks([][]string{{"Estado"}, {"Disponible"}}))
}

func TestParsePackID(t *testing.T) {
	tests := []struct {
		input  string
		want   int
		wantOK bool
	}{
		{"7", 7, true},
		{" 12 ", 0, false}, // callers trim; raw spaces are not numeric
		{"7.0", 7, true},
		{"+3", 3, true},
		{"1e2", 100, true},
		{"7.5", 0, false},
		{"abc", 0, false},
		{"0", 0, false},
		{"-1", 0, false},
		{"", 0, false},
		{"Inf", 0, false},
		{"NaN", 0, false},
	}

	for _, tt := range tests {
		got, ok := parsePackID(tt.input)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("parsePackID(%q) = (%d, %v), want (%d, %v)", tt.input, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestNormalizePack_TrimsID(t *testing.T) {
	cols := sheet.Resolve(packHeader, PackColumns...)
	p, ok := NormalizePack([]string{" 12 ", "Celeste"}, cols)
	require.True(t, ok)
	assert.Equal(t, 12, p.ID)
	assert.Equal(t, "Celeste", p.Title)
}

func TestSplitGames(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{}},
		{"  ", []string{}},
		{"A", []string{"A"}},
		{"A, B ;C\nD·E", []string{"A", "B", "C", "D", "E"}},
		{"A,,;\n ·B", []string{"A", "B"}},
		{"A\r\nB", []string{"A", "B"}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SplitGames(tt.input), "SplitGames(%q)", tt.input)
	}
}
