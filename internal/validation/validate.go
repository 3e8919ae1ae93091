// Package validation checks a behavior, psychosocial-depth and caring selection
// against an ordered list of combinatorial rules.
package validation

import (
	"fmt"

	"github.com/jonathan/mandate-configurator/internal/catalog"
	"github.com/jonathan/mandate-configurator/internal/types"
)

// Validator evaluates a fixed rule list. It is immutable and safe for concurrent use.
type Validator struct {
	rules []Rule
}

// New builds a Validator over rules, rejecting incomplete or duplicate rules.
func New(rules []Rule) (*Validator, error) {
	seen := make(map[string]bool, len(rules))
	for i, r := range rules {
		if r.ID == "" {
			return nil, &RuleError{Message: fmt.Sprintf("rule %d has no id", i)}
		}
		if seen[r.ID] {
			return nil, &RuleError{RuleID: r.ID, Message: "duplicate rule id"}
		}
		seen[r.ID] = true
		if r.When == nil {
			return nil, &RuleError{RuleID: r.ID, Message: "missing predicate"}
		}
		if r.Severity != types.SeverityWarning && r.Severity != types.SeverityBlocked {
			return nil, &RuleError{RuleID: r.ID, Message: fmt.Sprintf("severity must be warning or blocked, got %q", r.Severity)}
		}
		if r.Message.Empty() {
			return nil, &RuleError{RuleID: r.ID, Message: "missing message"}
		}
	}
	cp := make([]Rule, len(rules))
	copy(cp, rules)
	return &Validator{rules: cp}, nil
}

var defaultValidator = mustNew(DefaultRules())

func mustNew(rules []Rule) *Validator {
	v, err := New(rules)
	if err != nil {
		panic(err)
	}
	return v
}

// Default returns the validator over DefaultRules.
func Default() *Validator {
	return defaultValidator
}

// Validate resolves the ids against cat and evaluates the default rules.
func Validate(cat *catalog.Catalog, behaviorID, psychoID, caringID *string) types.ValidationResult {
	return defaultValidator.Validate(cat, behaviorID, psychoID, caringID)
}

// ValidateSelection is Validate over the relevant fields of a selection.
func ValidateSelection(cat *catalog.Catalog, state types.SelectionState) types.ValidationResult {
	return Validate(cat, state.BehaviorID, state.PsychoID, state.CaringID)
}

// Validate resolves the ids against cat and evaluates every rule.
func (v *Validator) Validate(cat *catalog.Catalog, behaviorID, psychoID, caringID *string) types.ValidationResult {
	return v.Evaluate(Resolve(cat, behaviorID, psychoID, caringID))
}

// Evaluate checks combo against every rule without short-circuiting. Messages keep
// rule order and the severity is the maximum over all matches. An empty combination
// is ok without evaluation.
func (v *Validator) Evaluate(combo Combination) types.ValidationResult {
	result := types.ValidationResult{Severity: types.SeverityOK, Messages: []types.Violation{}}
	if combo.Empty() {
		return result
	}
	for _, r := range v.rules {
		if !r.When(combo) {
			continue
		}
		result.Messages = append(result.Messages, types.Violation{
			RuleID:   r.ID,
			Severity: r.Severity,
			Message:  r.Message,
		})
		result.Severity = result.Severity.Max(r.Severity)
	}
	return result
}

// Resolve maps optional ids to a Combination, dropping ids unknown to cat.
func Resolve(cat *catalog.Catalog, behaviorID, psychoID, caringID *string) Combination {
	return Combination{
		BehaviorID: types.Match(cat.ResolveBehavior(behaviorID),
			func() string { return "" },
			func(b catalog.BehaviorPackage) string { return b.ID }),
		PsychoID: types.Match(cat.ResolvePsycho(psychoID),
			func() string { return "" },
			func(l catalog.Level) string { return l.ID }),
		CaringID: types.Match(cat.ResolveCaring(caringID),
			func() string { return "" },
			func(l catalog.Level) string { return l.ID }),
	}
}
