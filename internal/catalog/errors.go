package catalog

import (
	"fmt"
	"strings"
)

// LoadError reports a catalog that could not be parsed or failed validation.
type LoadError struct {
	Message  string
	Problems []string
	Cause    error
}

func (e *LoadError) Error() string {
	var sb strings.Builder
	sb.WriteString("catalog error: ")
	sb.WriteString(e.Message)
	if e.Cause != nil && len(e.Problems) == 0 {
		sb.WriteString(fmt.Sprintf(": %v", e.Cause))
	}
	for i, p := range e.Problems {
		sb.WriteString(fmt.Sprintf("\n  %d. %s", i+1, p))
	}
	return sb.String()
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
