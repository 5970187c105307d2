// Package report exports market history as CSV.
package report

import "strings"

// EscapeCell guards against CSV formula injection: cells starting with a
// character a spreadsheet may treat as a formula get a quote prefix.
func EscapeCell(value string) string {
	if value == "" {
		return value
	}
	if strings.ContainsRune("=+-@|%\t\r\n", rune(value[0])) {
		return "'" + value
	}
	return value
}

// EscapeRow escapes every cell in a row.
func EscapeRow(row []string) []string {
	escaped := make([]string, len(row))
	for i, cell := range row {
		escaped[i] = EscapeCell(cell)
	}
	return escaped
}
