package catalog

import "strings"

// previewSize is how many records each catalog contributes to the home page.
const previewSize = 4

// PacksSummary counts the pack catalog.
type PacksSummary struct {
	Total     int `json:"total" yaml:"total"`
	Available int `json:"available" yaml:"available"`
}

// UnitsSummary counts the unit catalog.
type UnitsSummary struct {
	Total  int `json:"total" yaml:"total"`
	OnSale int `json:"on_sale" yaml:"on_sale"`
}

// SummarizePacks counts packs, treating a status containing "dispon"
// ("Disponible", "disponibles") as available.
func SummarizePacks(packs []Pack) PacksSummary {
	s := PacksSummary{Total: len(packs)}
	for _, p := range packs {
		if strings.Contains(strings.ToLower(p.Status), "dispon") {
			s.Available++
		}
	}
	return s
}

// SummarizeUnits counts units and those on sale.
func SummarizeUnits(units []Unit) UnitsSummary {
	s := UnitsSummary{Total: len(units)}
	for _, u := range units {
		if u.OnSale {
			s.OnSale++
		}
	}
	return s
}

// Home is the landing-page view of both catalogs.
type Home struct {
	Packs        []Pack       `json:"packs" yaml:"packs"`
	Units        []Unit       `json:"units" yaml:"units"`
	PacksSummary PacksSummary `json:"packs_summary" yaml:"packs_summary"`
	UnitsSummary UnitsSummary `json:"units_summary" yaml:"units_summary"`
}

// BuildHome selects the newest packs (highest ids first) and the first
// units of the catalog.
func BuildHome(packs []Pack, units []Unit) Home {
	sorted := SortPacksByID(packs)

	latest := make([]Pack, 0, previewSize)
	for i := len(sorted) - 1; i >= 0 && len(latest) < previewSize; i-- {
		latest = append(latest, sorted[i])
	}

	first := units
	if len(first) > previewSize {
		first = first[:previewSize]
	}
	firstCopy := make([]Unit, len(first))
	copy(firstCopy, first)

	return Home{
		Packs:        latest,
		Units:        firstCopy,
		PacksSummary: SummarizePacks(packs),
		UnitsSummary: SummarizeUnits(units),
	}
}
