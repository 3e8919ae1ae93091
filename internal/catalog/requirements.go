package catalog

import (
	"fmt"

	"github.com/jonathan/mandate-configurator/internal/types"
)

// Group is a requirement category of the detailed annex.
type Group string

// Requirement groups in canonical order.
const (
	GroupPurpose       Group = "purpose"
	GroupServices      Group = "services"
	GroupObligations   Group = "obligations"
	GroupDeliverables  Group = "deliverables"
	GroupTimeFees      Group = "time_fees"
	GroupCommunication Group = "communication"
	GroupExclusions    Group = "exclusions"
)

// Groups lists every group in canonical order.
var Groups = []Group{
	GroupPurpose,
	GroupServices,
	GroupObligations,
	GroupDeliverables,
	GroupTimeFees,
	GroupCommunication,
	GroupExclusions,
}

// GroupRank returns the canonical position of g, or -1 for unknown groups.
func GroupRank(g Group) int {
	for i, known := range Groups {
		if g == known {
			return i
		}
	}
	return -1
}

// Requirement is a static annex item of one role.
type Requirement struct {
	ID     string       `yaml:"id" json:"id" validate:"required"`
	RoleID types.RoleID `yaml:"role" json:"role_id" validate:"required,oneof=sys ops res coach"`
	Group  Group        `yaml:"group" json:"group" validate:"required"`
	Text   types.Text   `yaml:"text" json:"text" validate:"bilingual"`
}

// LocalizedRequirement is a requirement resolved to one language. Placeholder
// tokens such as {startDate} are left untouched.
type LocalizedRequirement struct {
	ID    string `json:"id"`
	Group Group  `json:"group"`
	Text  string `json:"text"`
}

// RequirementsFor returns the requirements of roleID in declaration order.
// Unknown roles yield an empty list.
func (c *Catalog) RequirementsFor(lang types.Lang, roleID types.RoleID) []LocalizedRequirement {
	out := make([]LocalizedRequirement, 0)
	for _, r := range c.Requirements {
		if r.RoleID != roleID {
			continue
		}
		out = append(out, LocalizedRequirement{
			ID:    r.ID,
			Group: r.Group,
			Text:  r.Text.In(lang),
		})
	}
	return out
}

// ModuleLabel returns the heading label of roleID, or the raw id when unknown.
func (c *Catalog) ModuleLabel(lang types.Lang, roleID types.RoleID) string {
	r, ok := c.Role(roleID)
	if !ok {
		return string(roleID)
	}
	return r.Label.In(lang)
}

// checkRequirements verifies ids, groups and per-role group ordering.
func (c *Catalog) checkRequirements() []string {
	var problems []string
	seen := make(map[string]bool, len(c.Requirements))
	lastRank := make(map[types.RoleID]int)

	for _, r := range c.Requirements {
		if seen[r.ID] {
			problems = append(problems, fmt.Sprintf("duplicate requirement id %q", r.ID))
		}
		seen[r.ID] = true

		rank := GroupRank(r.Group)
		if rank < 0 {
			problems = append(problems, fmt.Sprintf("requirement %q has unknown group %q", r.ID, r.Group))
			continue
		}
		if prev, ok := lastRank[r.RoleID]; ok && rank < prev {
			problems = append(problems, fmt.Sprintf("requirement %q (%s) is declared after a later group for role %q", r.ID, r.Group, r.RoleID))
			continue
		}
		lastRank[r.RoleID] = rank
	}
	return problems
}
