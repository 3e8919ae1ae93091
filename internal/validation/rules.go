package validation

import "github.com/jonathan/mandate-configurator/internal/types"

// Combination is the resolved selection a rule is evaluated against. Ids that
// are unselected or unknown to the catalog are empty.
type Combination struct {
	BehaviorID string
	PsychoID   string
	CaringID   string
}

// Empty reports whether nothing is selected.
func (c Combination) Empty() bool {
	return c.BehaviorID == "" && c.PsychoID == "" && c.CaringID == ""
}

// Rule is a predicate over a Combination tagged with a severity and message.
type Rule struct {
	ID       string
	Severity types.Severity
	When     func(Combination) bool
	Message  types.Text
}

// Predicate helpers for building rules.

func behavior(id string) func(Combination) bool {
	return func(c Combination) bool { return c.BehaviorID == id }
}

func psycho(id string) func(Combination) bool {
	return func(c Combination) bool { return c.PsychoID == id }
}

func caring(id string) func(Combination) bool {
	return func(c Combination) bool { return c.CaringID == id }
}

func noPsycho(c Combination) bool {
	return c.PsychoID == ""
}

func all(preds ...func(Combination) bool) func(Combination) bool {
	return func(c Combination) bool {
		for _, p := range preds {
			if !p(c) {
				return false
			}
		}
		return true
	}
}

// DefaultRules returns the standard rule list in evaluation order. The slice is
// freshly allocated so callers may extend it.
func DefaultRules() []Rule {
	return []Rule{
		{
			ID:       "crisis-intensive-depth",
			Severity: types.SeverityBlocked,
			When:     all(behavior("crisis"), psycho("intensive")),
			Message: types.Text{
				types.LangDE: "Krisenführung und intensive psychosoziale Tiefe lassen sich nicht kombinieren: Steuerungsmandat und therapienahe Begleitung schließen sich aus.",
				types.LangEN: "Crisis leadership cannot be combined with intensive psychosocial depth: a steering mandate and near-therapeutic support are mutually exclusive.",
			},
		},
		{
			ID:       "crisis-close-care",
			Severity: types.SeverityWarning,
			When:     all(behavior("crisis"), caring("close")),
			Message: types.Text{
				types.LangDE: "Enge Begleitung in der Krise bindet viel Kapazität; bitte Umfang und Erreichbarkeit ausdrücklich vereinbaren.",
				types.LangEN: "Close care during a crisis ties up significant capacity; agree scope and availability explicitly.",
			},
		},
		{
			ID:       "neutral-intensive-depth",
			Severity: types.SeverityWarning,
			When:     all(behavior("neutral"), psycho("intensive")),
			Message: types.Text{
				types.LangDE: "Eine neutrale Beraterrolle verträgt sich nur eingeschränkt mit intensiver psychosozialer Arbeit; Rollenklarheit sicherstellen.",
				types.LangEN: "A neutral advisory role fits intensive psychosocial work only partially; make sure roles stay clear.",
			},
		},
		{
			ID:       "driver-close-care",
			Severity: types.SeverityBlocked,
			When:     all(behavior("driver"), caring("close")),
			Message: types.Text{
				types.LangDE: "Ein treibendes Mandat und enge persönliche Begleitung widersprechen sich; bitte eine der beiden Optionen anpassen.",
				types.LangEN: "A driving mandate contradicts close personal care; adjust one of the two options.",
			},
		},
		{
			ID:       "intensive-depth-standard-care",
			Severity: types.SeverityWarning,
			When:     all(psycho("intensive"), caring("standard")),
			Message: types.Text{
				types.LangDE: "Intensive psychosoziale Tiefe mit nur standardmäßiger Begleitung: Nachsorge zwischen den Terminen ist nicht abgedeckt.",
				types.LangEN: "Intensive psychosocial depth with standard care only: follow-up between sessions is not covered.",
			},
		},
		{
			ID:       "close-care-without-depth",
			Severity: types.SeverityWarning,
			When:     all(caring("close"), noPsycho),
			Message: types.Text{
				types.LangDE: "Enge Begleitung ohne gewählte psychosoziale Tiefe: es gilt das Basisniveau, bitte prüfen, ob das gewollt ist.",
				types.LangEN: "Close care without a chosen psychosocial depth: the base level applies, check that this is intended.",
			},
		},
	}
}
