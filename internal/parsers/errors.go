package parsers

import "fmt"

// ParseError is a structural mismatch in a source file: wrong JSON root
// type, missing worksheet, missing header marker row. It is fatal for that
// dataset load; the cache entry is not created.
type ParseError struct {
	Format string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Reason)
}

func newParseError(format, reason string, args ...interface{}) *ParseError {
	return &ParseError{Format: format, Reason: fmt.Sprintf(reason, args...)}
}
