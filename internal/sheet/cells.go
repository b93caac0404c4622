package sheet

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Digits removes every character that is not an ASCII digit and parses the
// remainder as an integer. Cells such as "$12.990" or "12,990 CLP" therefore
// read as 12990. An empty remainder, or one too large for an int, yields 0.
func Digits(s string) int {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	n, err := strconv.Atoi(b.String())
	if err != nil {
		return 0
	}
	return n
}

// combiningMark matches the Combining Diacritical Marks block (U+0300–U+036F).
func combiningMark(r rune) bool {
	return r >= 0x0300 && r <= 0x036F
}

// Fold decomposes s (NFD) and drops combining diacritical marks, so "sí"
// becomes "si" and "Pokémon" becomes "Pokemon". Case is preserved.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.Predicate(combiningMark)))
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// FoldLower is [Fold] applied to the lower-cased string.
func FoldLower(s string) string {
	return Fold(strings.ToLower(s))
}

// Clean replaces invalid UTF-8 sequences with U+FFFD.
func Clean(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	return strings.ToValidUTF8(s, "\uFFFD")
}
