package catalog

import (
	"strings"

	"github.com/JonMunkholm/gamestore/internal/sheet"
)

// Unit sheet headers. Description and trailer are optional columns.
const (
	ColUnitName        = "NOMBRE DE JUEGOS"
	ColUnitPrice       = "Precio"
	ColUnitOnSale      = "En Oferta"
	ColUnitSalePrice   = "Precio Oferta"
	ColUnitSpace       = "Espacio necesario"
	ColUnitImage       = "imagen"
	ColUnitDescription = "descripcion"
	ColUnitTrailer     = "trailer"
)

// UnitColumns lists every header the unit normalizer reads.
var UnitColumns = []string{
	ColUnitName, ColUnitPrice, ColUnitOnSale, ColUnitSalePrice,
	ColUnitSpace, ColUnitImage, ColUnitDescription, ColUnitTrailer,
}

// Unit status labels.
const (
	StatusOnSale    = "En oferta"
	StatusAvailable = "Disponible"
)

// onSaleFlag is the only accepted "on sale" value after normalization.
const onSaleFlag = "si"

// Unit is a single game sold on its own.
//
// SalePrice is nil unless the unit is on sale with a positive sale price.
// Description and Trailer are "" when the sheet has no such column.
type Unit struct {
	ID          int      `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Games       []string `json:"games" yaml:"games"`
	Console     string   `json:"console" yaml:"console"`
	Price       int      `json:"price" yaml:"price"`
	OnSale      bool     `json:"on_sale" yaml:"on_sale"`
	SalePrice   *int     `json:"sale_price" yaml:"sale_price"`
	Space       string   `json:"space" yaml:"space"`
	Image       string   `json:"image" yaml:"image"`
	Description string   `json:"description" yaml:"description"`
	Trailer     string   `json:"trailer" yaml:"trailer"`
	Status      string   `json:"status" yaml:"status"`
}

// EffectivePrice is the sale price when present, otherwise the list price.
func (u Unit) EffectivePrice() int {
	if u.SalePrice != nil {
		return *u.SalePrice
	}
	return u.Price
}

// ParseUnits normalizes the rows of a unit document. The first row is the
// header. Rows with an empty name are dropped and ids are assigned 1..n over
// the rows that remain.
func ParseUnits(rows [][]string) []Unit {
	units := make([]Unit, 0, len(rows))
	if len(rows) == 0 {
		return units
	}

	cols := sheet.Resolve(rows[0], UnitColumns...)
	for _, row := range rows[1:] {
		if u, ok := NormalizeUnit(row, len(units)+1, cols); ok {
			units = append(units, u)
		}
	}
	return units
}

// NormalizeUnit converts one data row into the unit with the given id.
// It reports false when the name cell is empty.
func NormalizeUnit(row []string, id int, cols sheet.Columns) (Unit, bool) {
	name := cols.Cell(row, ColUnitName)
	if name == "" {
		return Unit{}, false
	}

	onSale := IsOnSale(cols.Raw(row, ColUnitOnSale))

	var salePrice *int
	if sp := sheet.Digits(cols.Raw(row, ColUnitSalePrice)); onSale && sp > 0 {
		salePrice = &sp
	}

	status := StatusAvailable
	if onSale {
		status = StatusOnSale
	}

	return Unit{
		ID:          id,
		Title:       name,
		Games:       []string{name},
		Console:     DefaultConsole,
		Price:       sheet.Digits(cols.Raw(row, ColUnitPrice)),
		OnSale:      onSale,
		SalePrice:   salePrice,
		Space:       cols.Cell(row, ColUnitSpace),
		Image:       cols.Cell(row, ColUnitImage),
		Description: cols.Cell(row, ColUnitDescription),
		Trailer:     cols.Cell(row, ColUnitTrailer),
		Status:      status,
	}, true
}

// IsOnSale reports whether an "En Oferta" cell marks the unit as on sale.
// The cell is trimmed, lower-cased and stripped of accents, then must equal
// "si" exactly. "Sí" and "SI" qualify; "yes", "true" and "x" do not.
func IsOnSale(cell string) bool {
	return sheet.FoldLower(strings.TrimSpace(cell)) == onSaleFlag
}
