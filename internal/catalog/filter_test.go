package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func samplePacks() []Pack {
	return []Pack{
		{ID: 3, Title: "Mario Kart 8", Price: 12990, Games: []string{"Mario Kart 8", "Overcooked 2"}},
		{ID: 1, Title: "Zelda BOTW", Price: 19990, Games: []string{"Zelda BOTW", "Pokémon Let's Go"}},
		{ID: 2, Title: "Hollow Knight", Price: 14990, Games: []string{"Hollow Knight", "Celeste"}},
	}
}

func packIDs(packs []Pack) []int {
	ids := make([]int, len(packs))
	for i, p := range packs {
		ids[i] = p.ID
	}
	return ids
}

func TestFilterPacks(t *testing.T) {
	tests := []struct {
		name string
		q    PackQuery
		want []int
	}{
		{"no filter sorts by id", PackQuery{}, []int{1, 2, 3}},
		{"title match", PackQuery{Q: "zelda"}, []int{1}},
		{"game match accent-insensitive", PackQuery{Q: "POKEMON"}, []int{1}},
		{"any of several terms", PackQuery{Q: "celeste, overcooked"}, []int{2, 3}},
		{"empty terms ignored", PackQuery{Q: " , ,"}, []int{1, 2, 3}},
		{"min bound inclusive", PackQuery{Min: intPtr(14990)}, []int{1, 2}},
		{"max bound inclusive", PackQuery{Max: intPtr(14990)}, []int{2, 3}},
		{"range and term", PackQuery{Q: "o", Min: intPtr(13000), Max: intPtr(20000)}, []int{1, 2}},
		{"no match", PackQuery{Q: "metroid"}, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, packIDs(FilterPacks(samplePacks(), tt.q)))
		})
	}
}

func TestFilterUnits(t *testing.T) {
	units := []Unit{
		{ID: 1, Title: "Pokémon Scarlet", Price: 39990, OnSale: true, SalePrice: intPtr(29990)},
		{ID: 2, Title: "Celeste", Price: 8990},
		{ID: 3, Title: "Hades", Price: 12990, OnSale: true},
	}

	ids := func(us []Unit) []int {
		out := make([]int, len(us))
		for i, u := range us {
			out[i] = u.ID
		}
		return out
	}

	assert.Equal(t, []int{1, 2, 3}, ids(FilterUnits(units, UnitQuery{})))
	assert.Equal(t, []int{1}, ids(FilterUnits(units, UnitQuery{Q: " pokemon "})))
	assert.Equal(t, []int{1, 3}, ids(FilterUnits(units, UnitQuery{OnSaleOnly: true})))
	// Effective price of the first unit is its sale price.
	assert.Equal(t, []int{1, 3}, ids(FilterUnits(units, UnitQuery{Min: intPtr(10000), Max: intPtr(30000)})))
	assert.Equal(t, []int{}, ids(FilterUnits(units, UnitQuery{Q: "zelda"})))
}

func TestQueryValidate(t *testing.T) {
	require.NoError(t, PackQuery{Q: "zelda", Min: intPtr(0), Max: intPtr(10)}.Validate())
	assert.ErrorIs(t, PackQuery{Min: intPtr(-1)}.Validate(), ErrInvalidFilter)
	assert.ErrorIs(t, PackQuery{Min: intPtr(10), Max: intPtr(5)}.Validate(), ErrInvalidFilter)
	assert.ErrorIs(t, PackQuery{Q: strings.Repeat("a", 201)}.Validate(), ErrInvalidFilter)

	require.NoError(t, UnitQuery{OnSaleOnly: true}.Validate())
	assert.Error(t, UnitQuery{Max: intPtr(-5)}.Validate())
	assert.Error(t, UnitQuery{Min: intPtr(3), Max: intPtr(2)}.Validate())
}

func TestQueryActive(t *testing.T) {
	assert.False(t, PackQuery{}.Active())
	assert.False(t, PackQuery{Q: " , "}.Active())
	assert.True(t, PackQuery{Max: intPtr(1)}.Active())
	assert.False(t, UnitQuery{Q: "  "}.Active())
	assert.True(t, UnitQuery{OnSaleOnly: true}.Active())
}

func TestParseBound(t *testing.T) {
	assert.Nil(t, ParseBound(""))
	assert.Nil(t, ParseBound("abc"))
	require.NotNil(t, ParseBound(" 1500 "))
	assert.Equal(t, 1500, *ParseBound("1500"))
	assert.Equal(t, -3, *ParseBound("-3"))
}
