package parsers

import (
	"log"
	"strings"
)

// Row is one parsed data row keyed by trimmed header name. Values carry no
// semantic interpretation; type coercion belongs to the normalizers.
type Row map[string]string

// ParseDelimited parses comma- or pipe-separated text. The first non-empty
// line is the header. Rows whose field count does not match the header are
// skipped rather than failing the whole parse.
func ParseDelimited(data string, delimiter rune) ([]Row, error) {
	lines := splitLines(data)
	if len(lines) == 0 {
		return nil, newParseError("delimited", "file is empty")
	}

	header := SplitLine(lines[0], delimiter)
	for i := range header {
		header[i] = strings.Trim(strings.TrimSpace(header[i]), `"`)
	}

	rows := make([]Row, 0, len(lines)-1)
	skipped := 0
	for _, line := range lines[1:] {
		values := SplitLine(line, delimiter)
		if len(values) != len(header) {
			skipped++
			continue
		}
		row := make(Row, len(header))
		for i, col := range header {
			row[col] = strings.Trim(strings.TrimSpace(values[i]), `"`)
		}
		rows = append(rows, row)
	}

	if skipped > 0 {
		log.Printf("[PARSE] skipped %d malformed rows (%d parsed)", skipped, len(rows))
	}
	return rows, nil
}

// ParseDelimitedPositional parses like ParseDelimited but keeps rows as
// positional slices, for sources addressed by column index rather than
// header name. Rows shorter than the header are skipped; longer rows are
// kept as-is since trailing columns are addressed positionally.
func ParseDelimitedPositional(data string, delimiter rune, minFields int) ([][]string, error) {
	lines := splitLines(data)
	if len(lines) < 2 {
		return nil, newParseError("delimited", "no data rows")
	}

	rows := make([][]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		values := SplitLine(line, delimiter)
		if len(values) < minFields {
			continue
		}
		rows = append(rows, values)
	}
	return rows, nil
}

// SplitLine splits one line on the delimiter with a quote-toggle state
// machine: an unescaped quote flips the in-quotes flag, and the delimiter is
// literal while inside quotes. Quote characters themselves are not emitted.
func SplitLine(line string, delimiter rune) []string {
	var values []string
	var current strings.Builder
	inQuotes := false

	for _, ch := range line {
		switch {
		case ch == '"':
			inQuotes = !inQuotes
		case ch == delimiter && !inQuotes:
			values = append(values, current.String())
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	values = append(values, current.String())
	return values
}

func splitLines(data string) []string {
	raw := strings.Split(strings.ReplaceAll(data, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
