//nolint:revive // types is a standard Go package name pattern
package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampDays(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{in: -3, want: 1},
		{in: 0, want: 1},
		{in: 1, want: 1},
		{in: 30, want: 30},
		{in: 60, want: 60},
		{in: 61, want: 60},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampDays(tt.in), "ClampDays(%d)", tt.in)
	}
}

func TestUniqueRoles_KeepsFirstOccurrence(t *testing.T) {
	got := UniqueRoles([]RoleID{"sys", "sys", "ops", "sys", "coach", "ops"})
	assert.Equal(t, []RoleID{"sys", "ops", "coach"}, got)
	assert.Empty(t, UniqueRoles(nil))
}

func TestSelectionState_Normalized(t *testing.T) {
	s := SelectionState{Days: 99, Lang: "fr"}
	n := s.Normalized()
	assert.Equal(t, 60, n.Days)
	assert.Equal(t, DefaultLang, n.Lang)
	assert.Equal(t, 99, s.Days, "original must not change")
}

func TestChoice_Match(t *testing.T) {
	label := func(c Choice[string]) string {
		return Match(c,
			func() string { return "fallback" },
			func(v string) string { return "got " + v },
		)
	}
	assert.Equal(t, "fallback", label(Unselect[string]()))
	assert.Equal(t, "got x", label(Select("x")))

	v, ok := Select(3).Get()
	assert.True(t, ok)
	assert.Equal(t, 3, v)
	assert.False(t, Unselect[int]().Selected())
}

func TestSeverity_Max(t *testing.T) {
	assert.Equal(t, SeverityWarning, SeverityOK.Max(SeverityWarning))
	assert.Equal(t, SeverityBlocked, SeverityWarning.Max(SeverityBlocked))
	assert.Equal(t, SeverityBlocked, SeverityBlocked.Max(SeverityWarning))
	assert.Equal(t, SeverityOK, SeverityOK.Max(SeverityOK))
}

func TestValidationResult_Localize(t *testing.T) {
	r := ValidationResult{
		Severity: SeverityWarning,
		Messages: []Violation{
			{RuleID: "a", Severity: SeverityWarning, Message: Text{LangDE: "Achtung", LangEN: "Careful"}},
		},
	}
	assert.Equal(t, []string{"Careful"}, r.Localize(LangEN).Messages)
	assert.Equal(t, []string{"Achtung"}, r.Localize(LangDE).Messages)
	assert.False(t, r.Blocked())
}
