// Package export serializes grid rows for download. CSV is the canonical
// format (semicolon-delimited, UTF-8, header row first); Excel is a genuine
// workbook; PDF intentionally returns the CSV bytes until a real renderer
// exists.
package export

import (
	"strings"
)

// CSV builds the delimited text document. Values are joined verbatim; the
// import side splits on the same delimiter.
func CSV(header []string, rows [][]string) []byte {
	var sb strings.Builder
	sb.WriteString(strings.Join(header, ";"))
	sb.WriteString("\n")
	for _, row := range rows {
		sb.WriteString(strings.Join(row, ";"))
		sb.WriteString("\n")
	}
	return []byte(sb.String())
}

// PDF returns the CSV bytes. Kept explicit so callers know no PDF rendering
// happens.
func PDF(header []string, rows [][]string) []byte {
	return CSV(header, rows)
}
