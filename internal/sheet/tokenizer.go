package sheet

import (
	"fmt"
	"io"
	"strings"
)

// Parse splits CSV text into rows of cells.
//
// A row is emitted at each unquoted CR, LF or CRLF terminator, unless the
// row has no cells and the current cell is empty, so blank lines and a
// trailing newline never produce empty rows. Unterminated quotes swallow the
// rest of the input into the current cell.
func Parse(text string) [][]string {
	var (
		rows     [][]string
		row      []string
		cell     strings.Builder
		inQuotes bool
	)

	endRow := func() {
		if cell.Len() > 0 || len(row) > 0 {
			row = append(row, cell.String())
			rows = append(rows, row)
		}
		row = nil
		cell.Reset()
	}

	for i := 0; i < len(text); i++ {
		c := text[i]

		switch {
		case c == '"' && inQuotes && i+1 < len(text) && text[i+1] == '"':
			cell.WriteByte('"')
			i++

		case c == '"':
			inQuotes = !inQuotes

		case c == ',' && !inQuotes:
			row = append(row, cell.String())
			cell.Reset()

		case (c == '\n' || c == '\r') && !inQuotes:
			endRow()
			if c == '\r' && i+1 < len(text) && text[i+1] == '\n' {
				i++
			}

		default:
			cell.WriteByte(c)
		}
	}
	endRow()

	return rows
}

// ParseReader reads a whole CSV document and parses it with [Parse].
// The input is passed through [Clean] first, so a leading BOM is dropped and
// invalid UTF-8 is replaced.
func ParseReader(r io.Reader) ([][]string, error) {
	text, err := ReadText(r)
	if err != nil {
		return nil, err
	}
	return Parse(text), nil
}

// ReadText reads r to the end and returns its cleaned text.
func ReadText(r io.Reader) (string, error) {
	b, err := io.ReadAll(NewBOMSkippingReader(r))
	if err != nil {
		return "", fmt.Errorf("read csv: %w", err)
	}
	return Clean(string(b)), nil
}
