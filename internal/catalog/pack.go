package catalog

import (
	"math"
	"strconv"
	"strings"

	"github.com/JonMunkholm/gamestore/internal/sheet"
)

// Pack sheet headers.
const (
	ColPackID      = "Pack ID"
	ColPackGames   = "Juegos Incluidos"
	ColPackPrice   = "Precio CLP"
	ColPackStatus  = "Estado"
	ColPackConsole = "Consola"
)

// PackColumns lists every header the pack normalizer reads.
var PackColumns = []string{ColPackID, ColPackGames, ColPackPrice, ColPackStatus, ColPackConsole}

// DefaultConsole is used when a row leaves the console blank.
const DefaultConsole = "Nintendo Switch"

// DefaultPackTitle is the title of a pack that lists no games.
const DefaultPackTitle = "Pack"

// Pack is a bundle of games sold together for one price.
type Pack struct {
	ID      int      `json:"id" yaml:"id"`
	Title   string   `json:"title" yaml:"title"`
	Console string   `json:"console" yaml:"console"`
	Price   int      `json:"price" yaml:"price"`
	Status  string   `json:"status" yaml:"status"`
	Games   []string `json:"games" yaml:"games"`
}

// ParsePacks normalizes the rows of a pack document. The first row is the
// header. Rows without a positive integer id are dropped.
func ParsePacks(rows [][]string) []Pack {
	packs := make([]Pack, 0, len(rows))
	if len(rows) == 0 {
		return packs
	}

	cols := sheet.Resolve(rows[0], PackColumns...)
	for _, row := range rows[1:] {
		if p, ok := NormalizePack(row, cols); ok {
			packs = append(packs, p)
		}
	}
	return packs
}

// NormalizePack converts one data row. It reports false when the row must
// be excluded from the catalog.
func NormalizePack(row []string, cols sheet.Columns) (Pack, bool) {
	id, ok := parsePackID(cols.Cell(row, ColPackID))
	if !ok {
		return Pack{}, false
	}

	games := SplitGames(cols.Raw(row, ColPackGames))

	title := DefaultPackTitle
	if len(games) > 0 {
		title = games[0]
	}

	console := cols.Cell(row, ColPackConsole)
	if console == "" {
		console = DefaultConsole
	}

	return Pack{
		ID:      id,
		Title:   title,
		Console: console,
		Price:   sheet.Digits(cols.Raw(row, ColPackPrice)),
		Status:  cols.Cell(row, ColPackStatus),
		Games:   games,
	}, true
}

// parsePackID accepts any numeric text that denotes a finite positive
// integer, so "7" and "7.0" are both 7.
func parsePackID(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	if f <= 0 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

func isGameSeparator(r rune) bool {
	switch r {
	case ',', ';', '\n', '·':
		return true
	}
	return false
}

// SplitGames splits a "games included" cell on commas, semicolons, newlines
// and middle dots. Pieces are trimmed and empty pieces dropped; order is kept.
func SplitGames(s string) []string {
	games := []string{}
	for _, piece := range strings.FieldsFunc(s, isGameSeparator) {
		if piece = strings.TrimSpace(piece); piece != "" {
			games = append(games, piece)
		}
	}
	return games
}
