package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Pokémon: Let's Go!", "pokemon-let-s-go"},
		{"  Mario Kart 8 Deluxe ", "mario-kart-8-deluxe"},
		{"Niño & Café", "nino-cafe"},
		{"---", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slug(tt.in), "Slug(%q)", tt.in)
	}
}

func TestPackByID(t *testing.T) {
	packs := samplePacks()

	p, err := PackByID(packs, 2)
	require.NoError(t, err)
	assert.Equal(t, "Hollow Knight", p.Title)

	_, err = PackByID(packs, 99)
	assert.ErrorIs(t, err, ErrPackNotFound)
}

func TestUnitBySlug(t *testing.T) {
	units := []Unit{{ID: 1, Title: "Pokémon Scarlet"}, {ID: 2, Title: "Celeste"}}

	u, err := UnitBySlug(units, "pokemon-scarlet")
	require.NoError(t, err)
	assert.Equal(t, 1, u.ID)

	_, err = UnitBySlug(units, "zelda")
	assert.ErrorIs(t, err, ErrUnitNotFound)
}

func TestSortPacksByID_DoesNotMutate(t *testing.T) {
	packs := samplePacks()
	sorted := SortPacksByID(packs)
	assert.Equal(t, []int{1, 2, 3}, packIDs(sorted))
	assert.Equal(t, []int{3, 1, 2}, packIDs(packs))
}

func TestBuildHome(t *testing.T) {
	var packs []Pack
	for _, id := range []int{5, 1, 6, 2, 4, 3} {
		status := "Vendido"
		if id%2 == 0 {
			status = "Disponible"
		}
		packs = append(packs, Pack{ID: id, Status: status})
	}
	units := []Unit{
		{ID: 1, OnSale: true}, {ID: 2}, {ID: 3, OnSale: true}, {ID: 4}, {ID: 5},
	}

	home := BuildHome(packs, units)
	assert.Equal(t, []int{6, 5, 4, 3}, packIDs(home.Packs))
	require.Len(t, home.Units, 4)
	assert.Equal(t, 1, home.Units[0].ID)
	assert.Equal(t, PacksSummary{Total: 6, Available: 3}, home.PacksSummary)
	assert.Equal(t, UnitsSummary{Total: 5, OnSale: 2}, home.UnitsSummary)

	empty := BuildHome(nil, nil)
	assert.Empty(t, empty.Packs)
	assert.Empty(t, empty.Units)
}
