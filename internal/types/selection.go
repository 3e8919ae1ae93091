package types

// Day bounds for an engagement.
const (
	MinDays = 1
	MaxDays = 60
)

// RoleID identifies a service role.
type RoleID string

// Service roles.
const (
	RoleSteering  RoleID = "sys"
	RoleOperation RoleID = "ops"
	RoleResonance RoleID = "res"
	RoleCoaching  RoleID = "coach"
)

// AllRoles lists the roles in catalog order.
var AllRoles = []RoleID{RoleSteering, RoleOperation, RoleResonance, RoleCoaching}

// SkillNote holds the free-text need/outcome pair collected per skill.
type SkillNote struct {
	Need    string `json:"need,omitempty" yaml:"need,omitempty"`
	Outcome string `json:"outcome,omitempty" yaml:"outcome,omitempty"`
}

// Empty reports whether neither field carries text.
func (n SkillNote) Empty() bool {
	return n.Need == "" && n.Outcome == ""
}

// SelectionState is the presentation layer's record of every user choice.
// Ids that do not resolve in the catalog are treated as unselected.
type SelectionState struct {
	BehaviorID *string              `json:"behaviorId,omitempty"`
	RoleIDs    []RoleID             `json:"roleIds"`
	SkillIDs   []string             `json:"skillIds"`
	Notes      map[string]SkillNote `json:"notes,omitempty"`
	PsychoID   *string              `json:"psychoId,omitempty"`
	CaringID   *string              `json:"caringId,omitempty"`
	Days       int                  `json:"days"`
	Lang       Lang                 `json:"lang"`
}

// ClampDays forces days into [MinDays, MaxDays]; values <= 0 become 1.
func ClampDays(days int) int {
	if days < MinDays {
		return MinDays
	}
	if days > MaxDays {
		return MaxDays
	}
	return days
}

// Normalized returns a copy with clamped days and a supported language.
func (s SelectionState) Normalized() SelectionState {
	out := s
	out.Days = ClampDays(s.Days)
	if !out.Lang.Valid() {
		out.Lang = DefaultLang
	}
	return out
}

// UniqueRoles returns RoleIDs without duplicates, keeping first occurrences in order.
func UniqueRoles(ids []RoleID) []RoleID {
	seen := make(map[RoleID]bool, len(ids))
	out := make([]RoleID, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// StringPtr returns a pointer to s, or nil when s is empty.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
