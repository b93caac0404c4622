// Package sheet turns spreadsheet CSV exports into rows of cells.
//
// The catalog spreadsheets are edited by hand and exported as CSV. The
// parser never fails on malformed input.
// Quoting follows the usual CSV conventions (a doubled quote inside a quoted
// field is a literal quote) and both LF and CRLF terminate a row.
//
// # Headers
//
// Columns are located by their human-readable header text, matched after
// trimming and case-insensitively. [Resolve] computes the positions of every
// expected column once per document and returns a [Columns] value whose
// lookups report absence explicitly instead of returning magic indices:
//
//	cols := sheet.Resolve(rows[0], "Pack ID", "Precio CLP")
//	price := sheet.Digits(cols.Cell(row, "Precio CLP"))
package sheet
