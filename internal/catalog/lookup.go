package catalog

import (
	"regexp"
	"sort"
	"strings"

	"github.com/JonMunkholm/gamestore/internal/sheet"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slug derives the URL slug of a title: lower-cased, accents removed, runs
// of other characters collapsed to "-", no leading or trailing dashes.
// "Pokémon: Let's Go!" becomes "pokemon-let-s-go".
func Slug(title string) string {
	s := sheet.FoldLower(title)
	s = nonSlugChars.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Slug returns the detail-page slug of the unit.
func (u Unit) Slug() string {
	return Slug(u.Title)
}

// PackByID returns the pack with the given id.
func PackByID(packs []Pack, id int) (Pack, error) {
	for _, p := range packs {
		if p.ID == id {
			return p, nil
		}
	}
	return Pack{}, ErrPackNotFound
}

// UnitBySlug returns the first unit whose title slug equals slug.
func UnitBySlug(units []Unit, slug string) (Unit, error) {
	for _, u := range units {
		if u.Slug() == slug {
			return u, nil
		}
	}
	return Unit{}, ErrUnitNotFound
}

// SortPacksByID returns a copy of packs ordered by ascending id.
func SortPacksByID(packs []Pack) []Pack {
	out := make([]Pack, len(packs))
	copy(out, packs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}
