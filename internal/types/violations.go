package types

// Severity classifies a selection combination.
type Severity string

// Severity values, ordered ok < warning < blocked.
const (
	SeverityOK      Severity = "ok"
	SeverityWarning Severity = "warning"
	SeverityBlocked Severity = "blocked"
)

// Rank orders severities for max reduction.
func (s Severity) Rank() int {
	switch s {
	case SeverityBlocked:
		return 2
	case SeverityWarning:
		return 1
	default:
		return 0
	}
}

// Max returns the more severe of s and other.
func (s Severity) Max(other Severity) Severity {
	if other.Rank() > s.Rank() {
		return other
	}
	return s
}

// Violation is a single matched rule.
type Violation struct {
	RuleID   string   `json:"rule_id"`
	Severity Severity `json:"severity"`
	Message  Text     `json:"message"`
}

// ValidationResult is the validator's verdict over a selection.
type ValidationResult struct {
	Severity Severity    `json:"severity"`
	Messages []Violation `json:"messages"`
}

// Blocked reports whether proceed/confirm actions must be gated.
func (r ValidationResult) Blocked() bool {
	return r.Severity == SeverityBlocked
}

// LocalizedValidation is a ValidationResult resolved to one language.
type LocalizedValidation struct {
	Severity Severity `json:"severity"`
	Messages []string `json:"messages"`
}

// Localize resolves every message to lang, keeping rule order.
func (r ValidationResult) Localize(lang Lang) LocalizedValidation {
	msgs := make([]string, 0, len(r.Messages))
	for _, v := range r.Messages {
		msgs = append(msgs, v.Message.In(lang))
	}
	return LocalizedValidation{Severity: r.Severity, Messages: msgs}
}

// PriceBreakdown is the commercial result for an engagement. Amounts are raw numbers
// in the engagement currency; formatting belongs to the presentation layer.
type PriceBreakdown struct {
	PriceFactor float64 `json:"price_factor"`
	DayRate     float64 `json:"day_rate"`
	Days        int     `json:"days"`
	Net         float64 `json:"net"`
	Tax         float64 `json:"tax"`
	Gross       float64 `json:"gross"`
}

// Section is a titled block of contract paragraphs. Each paragraph uses the
// "header, blank line, body" layout.
type Section struct {
	Title      string   `json:"title"`
	Paragraphs []string `json:"paragraphs"`
}
