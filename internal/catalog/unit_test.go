package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var unitHeader = []string{
	"NOMBRE DE JUEGOS", "Precio", "En Oferta", "Precio Oferta",
	"Espacio necesario", "imagen", "descripcion", "trailer",
}

func TestParseUnits(t *testing.T) {
	rows := [][]string{
		unitHeader,
		{"Hollow Knight", "$9.990", "sí", "$6.990", "7", "https://img/hk.jpg", "Metroidvania", "https://youtu.be/abc"},
		{"   ", "1000", "si", "500"},
		{"Celeste", "8990", "Yes", "4990", "1.2 GB", "", "", ""},
		{""},
		{"Hades", "12990", " SI ", "0"},
		{"Dead Cells", "10990"},
	}

	units := ParseUnits(rows)
	require.Len(t, units, 4)

	for i, u := range units {
		assert.Equal(t, i+1, u.ID, "ids are dense over accepted rows")
	}

	hk := units[0]
	assert.Equal(t, "Hollow Knight", hk.Title)
	assert.Equal(t, []string{"Hollow Knight"}, hk.Games)
	assert.Equal(t, DefaultConsole, hk.Console)
	assert.Equal(t, 9990, hk.Price)
	assert.True(t, hk.OnSale)
	require.NotNil(t, hk.SalePrice)
	assert.Equal(t, 6990, *hk.SalePrice)
	assert.Equal(t, 6990, hk.EffectivePrice())
	assert.Equal(t, "7", hk.Space)
	assert.Equal(t, "https://img/hk.jpg", hk.Image)
	assert.Equal(t, "Metroidvania", hk.Description)
	assert.Equal(t, "https://youtu.be/abc", hk.Trailer)
	assert.Equal(t, StatusOnSale, hk.Status)

	celeste := units[1]
	assert.False(t, celeste.OnSale, `"Yes" is not an on-sale flag`)
	assert.Nil(t, celeste.SalePrice, "sale price hidden when not on sale")
	assert.Equal(t, StatusAvailable, celeste.Status)
	assert.Equal(t, 8990, celeste.EffectivePrice())

	hades := units[2]
	assert.True(t, hades.OnSale)
	assert.Nil(t, hades.SalePrice, "zero sale price is absent")
	assert.Equal(t, StatusOnSale, hades.Status)

	dc := units[3]
	assert.Equal(t, "Dead Cells", dc.Title)
	assert.Equal(t, "", dc.Description)
	assert.Equal(t, "", dc.Trailer)
}

func TestParseUnits_DenseIDs(t *testing.T) {
	rows := [][]string{
		{"NOMBRE DE JUEGOS"},
		{"A"},
		{""},
		{"B"},
		{"  "},
		{"C"},
	}

	units := ParseUnits(rows)
	require.Len(t, units, 3)
	for i, want := range []string{"A", "B", "C"} {
		assert.Equal(t, i+1, units[i].ID)
		assert.Equal(t, want, units[i].Title)
	}
}

func TestParseUnits_OptionalColumnsAbsent(t *testing.T) {
	rows := [][]string{
		{"NOMBRE DE JUEGOS", "Precio", "En Oferta", "Precio Oferta", "Espacio necesario", "imagen"},
		{"Zelda", "29990", "no", "19990", "14 GB", "z.jpg", "extra cell"},
		{"Mario"},
	}

	units := ParseUnits(rows)
	require.Len(t, units, 2)
	for _, u := range units {
		assert.Equal(t, "", u.Trailer)
		assert.Equal(t, "", u.Description)
	}

	b, err := json.Marshal(units[1])
	require.NoError(t, err)

	var shape map[string]any
	require.NoError(t, json.Unmarshal(b, &shape))
	assert.Contains(t, shape, "trailer")
	assert.Contains(t, shape, "description")
	assert.Contains(t, shape, "sale_price")
	assert.Nil(t, shape["sale_price"])
}

func TestIsOnSale(t *testing.T) {
	tests := []struct {
		cell string
		want bool
	}{
		{"si", true},
		{"SI", true},
		{"Sí", true},
		{" sí ", true},
		{"SÍ", true},
		{"Yes", false},
		{"true", false},
		{"s", false},
		{"si!", false},
		{"no", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsOnSale(tt.cell), "IsOnSale(%q)", tt.cell)
	}
}

func TestParseUnits_SalePriceNeverExposedWhenNotOnSale(t *testing.T) {
	rows := [][]string{
		unitHeader,
		{"Zelda", "29990", "", "19990"},
		{"Mario", "29990", "no", "$1"},
		{"Kirby", "29990", "yes", "5000"},
	}

	for _, u := range ParseUnits(rows) {
		assert.False(t, u.OnSale, u.Title)
		assert.Nil(t, u.SalePrice, u.Title)
	}
}
