package catalog

import "github.com/jonathan/mandate-configurator/internal/types"

// View is the catalog resolved to one language, as offered to form widgets.
type View struct {
	Lang         types.Lang     `json:"lang"`
	Currency     string         `json:"currency"`
	BaseDayRate  float64        `json:"base_day_rate"`
	Behaviors    []BehaviorView `json:"behaviors"`
	Skills       []SkillView    `json:"skills"`
	PsychoLevels []LevelView    `json:"psycho_levels"`
	CaringLevels []LevelView    `json:"caring_levels"`
	Roles        []RoleView     `json:"roles"`
}

// BehaviorView is a localized behavior package.
type BehaviorView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Context     string `json:"context"`
	Interaction string `json:"interaction"`
	Outcome     string `json:"outcome"`
}

// SkillView is a localized skill with its note prompts.
type SkillView struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Offer         string `json:"offer"`
	NeedPrompt    string `json:"need_prompt"`
	OutcomePrompt string `json:"outcome_prompt"`
}

// LevelView is a localized level.
type LevelView struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Tagline     string  `json:"tagline,omitempty"`
	PriceFactor float64 `json:"price_factor"`
	Definition  string  `json:"definition,omitempty"`
	Focus       string  `json:"focus,omitempty"`
	Benefit     string  `json:"benefit,omitempty"`
}

// RoleView is a localized role.
type RoleView struct {
	ID          types.RoleID `json:"id"`
	Label       string       `json:"label"`
	Description string       `json:"description"`
}

// Localize resolves the catalog to lang, keeping declaration order.
func (c *Catalog) Localize(lang types.Lang) View {
	v := View{
		Lang:         lang,
		Currency:     c.Commercial.Currency,
		BaseDayRate:  c.Commercial.BaseDayRate,
		Behaviors:    make([]BehaviorView, 0, len(c.Behaviors)),
		Skills:       make([]SkillView, 0, len(c.Skills)),
		PsychoLevels: localizeLevels(c.PsychoLevels, lang),
		CaringLevels: localizeLevels(c.CaringLevels, lang),
		Roles:        make([]RoleView, 0, len(c.Roles)),
	}
	for _, b := range c.Behaviors {
		v.Behaviors = append(v.Behaviors, BehaviorView{
			ID:          b.ID,
			Name:        b.Name.In(lang),
			Context:     b.Context.In(lang),
			Interaction: b.Interaction.In(lang),
			Outcome:     b.Outcome.In(lang),
		})
	}
	for _, s := range c.Skills {
		v.Skills = append(v.Skills, SkillView{
			ID:            s.ID,
			Title:         s.Title.In(lang),
			Offer:         s.Offer.In(lang),
			NeedPrompt:    s.NeedPrompt.In(lang),
			OutcomePrompt: s.OutcomePrompt.In(lang),
		})
	}
	for _, r := range c.Roles {
		v.Roles = append(v.Roles, RoleView{
			ID:          r.ID,
			Label:       r.Label.In(lang),
			Description: r.Description.In(lang),
		})
	}
	return v
}

// Factor returns the level's price factor, 1 when unset.
func (l Level) Factor() float64 {
	if l.PriceFactor == nil {
		return 1
	}
	return *l.PriceFactor
}

func localizeLevels(levels []Level, lang types.Lang) []LevelView {
	out := make([]LevelView, 0, len(levels))
	for _, l := range levels {
		out = append(out, LevelView{
			ID:          l.ID,
			Name:        l.Name.In(lang),
			Tagline:     l.Tagline.In(lang),
			PriceFactor: l.Factor(),
			Definition:  l.Definition.In(lang),
			Focus:       l.Focus.In(lang),
			Benefit:     l.Benefit.In(lang),
		})
	}
	return out
}
