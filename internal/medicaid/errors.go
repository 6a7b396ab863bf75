package medicaid

import "fmt"

// ValidationError reports a missing or unusable caller parameter. It is
// surfaced before any retrieval is attempted.
type ValidationError struct {
	Param   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid parameter %q: %s", e.Param, e.Message)
}

func required(param string) *ValidationError {
	return &ValidationError{Param: param, Message: "parameter is required"}
}
