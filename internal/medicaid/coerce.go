package medicaid

import (
	"regexp"
	"strconv"
	"strings"
)

var nonAlphanumeric = regexp.MustCompile(`[^0-9A-Za-z]`)

// normalizeNDC strips separators so formatting differences between sources
// ("0000-2143-38" vs "0000214338") never prevent a match.
func normalizeNDC(ndc string) string {
	return nonAlphanumeric.ReplaceAllString(strings.TrimSpace(ndc), "")
}

// parseFloat returns nil, not zero, when the value does not parse. Comma
// grouping ("1,234,567") is accepted since the enrollment snapshot uses it.
func parseFloat(s string) *float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseInt(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}

// yes coerces the varied truthy tokens the sources use ("Yes", "Y", "YES").
func yes(s string) bool {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "Y", "YES":
		return true
	}
	return false
}

func floatPtr(v float64) *float64 { return &v }

func equalsFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), b)
}

// at is bounds-safe positional access for pipe/CSV rows addressed by index.
func at(values []string, idx int) string {
	if idx < 0 || idx >= len(values) {
		return ""
	}
	return strings.TrimSpace(values[idx])
}

// str pulls a string out of a raw JSON object field.
func str(row map[string]interface{}, key string) string {
	if v, ok := row[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}
