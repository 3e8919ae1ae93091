package validation

import "fmt"

// RuleError reports a rule set that cannot be used by a Validator.
type RuleError struct {
	RuleID  string
	Message string
}

func (e *RuleError) Error() string {
	if e.RuleID == "" {
		return fmt.Sprintf("rule error: %s", e.Message)
	}
	return fmt.Sprintf("rule error: %s: %s", e.RuleID, e.Message)
}
