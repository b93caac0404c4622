package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/JonMunkholm/gamestore/internal/sheet"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ErrInvalidFilter wraps every query validation failure.
var ErrInvalidFilter = errors.New("invalid filter")

// PackQuery filters the pack catalog.
//
// Q may hold several comma-separated terms; a pack matches when any term
// appears in its title or in one of its games. Min and Max bound the price
// inclusively and are ignored when nil.
type PackQuery struct {
	Q   string `validate:"max=200"`
	Min *int   `validate:"omitempty,gte=0"`
	Max *int   `validate:"omitempty,gte=0"`
}

// UnitQuery filters the unit catalog. Prices are compared against the
// unit's effective price (the sale price when there is one).
type UnitQuery struct {
	Q          string `validate:"max=200"`
	Min        *int   `validate:"omitempty,gte=0"`
	Max        *int   `validate:"omitempty,gte=0"`
	OnSaleOnly bool
}

// Validate checks the query bounds.
func (q PackQuery) Validate() error {
	if err := validate.Struct(q); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFilter, err)
	}
	return checkRange(q.Min, q.Max)
}

// Validate checks the query bounds.
func (q UnitQuery) Validate() error {
	if err := validate.Struct(q); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFilter, err)
	}
	return checkRange(q.Min, q.Max)
}

// Active reports whether any filter is set.
func (q PackQuery) Active() bool {
	return len(q.terms()) > 0 || q.Min != nil || q.Max != nil
}

// Active reports whether any filter is set.
func (q UnitQuery) Active() bool {
	return strings.TrimSpace(q.Q) != "" || q.Min != nil || q.Max != nil || q.OnSaleOnly
}

func checkRange(lo, hi *int) error {
	if lo != nil && hi != nil && *lo > *hi {
		return fmt.Errorf("%w: min (%d) is greater than max (%d)", ErrInvalidFilter, *lo, *hi)
	}
	return nil
}

// ParseBound reads an optional price bound from a query parameter.
// Empty or non-numeric text means "no bound".
func ParseBound(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

func (q PackQuery) terms() []string {
	var terms []string
	for _, t := range strings.Split(q.Q, ",") {
		if t = strings.TrimSpace(t); t != "" {
			terms = append(terms, sheet.FoldLower(t))
		}
	}
	return terms
}

// FilterPacks returns the packs matching q, ordered by id.
func FilterPacks(packs []Pack, q PackQuery) []Pack {
	terms := q.terms()
	out := make([]Pack, 0, len(packs))
	for _, p := range packs {
		if len(terms) > 0 && !packMatches(p, terms) {
			continue
		}
		if !inRange(p.Price, q.Min, q.Max) {
			continue
		}
		out = append(out, p)
	}
	return SortPacksByID(out)
}

func packMatches(p Pack, terms []string) bool {
	title := p.Title
	if title == "" {
		title = fmt.Sprintf("Pack #%d", p.ID)
	}
	title = sheet.FoldLower(title)

	games := make([]string, len(p.Games))
	for i, g := range p.Games {
		games[i] = sheet.FoldLower(g)
	}

	for _, t := range terms {
		if strings.Contains(title, t) {
			return true
		}
		for _, g := range games {
			if strings.Contains(g, t) {
				return true
			}
		}
	}
	return false
}

// FilterUnits returns the units matching q in catalog order.
func FilterUnits(units []Unit, q UnitQuery) []Unit {
	term := sheet.FoldLower(strings.TrimSpace(q.Q))
	out := make([]Unit, 0, len(units))
	for _, u := range units {
		if term != "" && !strings.Contains(sheet.FoldLower(u.Title), term) {
			continue
		}
		if !inRange(u.EffectivePrice(), q.Min, q.Max) {
			continue
		}
		if q.OnSaleOnly && !u.OnSale {
			continue
		}
		out = append(out, u)
	}
	return out
}

func inRange(price int, lo, hi *int) bool {
	if lo != nil && price < *lo {
		return false
	}
	if hi != nil && price > *hi {
		return false
	}
	return true
}
