package spreadsheet

import "strings"

// EscapeCSVCell applies standard CSV escaping: values containing a comma or
// double-quote are wrapped in quotes with internal quotes doubled.
func EscapeCSVCell(value string) string {
	if strings.ContainsAny(value, ",\"\n") {
		return "\"" + strings.ReplaceAll(value, "\"", "\"\"") + "\""
	}
	return value
}

// WriteCSV serializes a header row plus data rows into a single CSV blob.
// Row order is preserved as given.
func WriteCSV(headers []string, rows [][]string) string {
	var b strings.Builder

	writeLine := func(cells []string) {
		for i, cell := range cells {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(EscapeCSVCell(cell))
		}
		b.WriteByte('\n')
	}

	writeLine(headers)
	for _, row := range rows {
		writeLine(row)
	}

	return b.String()
}
