// Package offer assembles everything a surface needs to show or print a mandate:
// validation verdict, price, composed section and per-role requirement annexes.
package offer

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/mandate-configurator/internal/catalog"
	"github.com/jonathan/mandate-configurator/internal/compose"
	"github.com/jonathan/mandate-configurator/internal/pricing"
	"github.com/jonathan/mandate-configurator/internal/types"
	"github.com/jonathan/mandate-configurator/internal/validation"
)

// Annex is the detailed requirement list of one selected role.
type Annex struct {
	RoleID       types.RoleID                   `json:"role_id"`
	Label        string                         `json:"label"`
	Requirements []catalog.LocalizedRequirement `json:"requirements"`
}

// Offer is a fully derived mandate in one language.
type Offer struct {
	Lang       types.Lang                `json:"lang"`
	Days       int                       `json:"days"`
	Currency   string                    `json:"currency"`
	Behavior   string                    `json:"behavior,omitempty"`
	Validation types.LocalizedValidation `json:"validation"`
	Price      types.PriceBreakdown      `json:"price"`
	Section    types.Section             `json:"section"`
	Annexes    []Annex                   `json:"annexes"`

	verdict types.ValidationResult
}

// CanConfirm reports whether the offer may be confirmed. Warnings never block.
func (o Offer) CanConfirm() bool {
	return !o.verdict.Blocked()
}

// Verdict returns the unlocalized validation result.
func (o Offer) Verdict() types.ValidationResult {
	return o.verdict
}

// Assemble derives the offer for state in its own language.
func Assemble(cat *catalog.Catalog, state types.SelectionState) Offer {
	state = state.Normalized()
	lang := state.Lang
	verdict := validation.ValidateSelection(cat, state)

	return Offer{
		Lang:     lang,
		Days:     state.Days,
		Currency: cat.Commercial.Currency,
		Behavior: types.Match(cat.ResolveBehavior(state.BehaviorID),
			func() string { return "" },
			func(b catalog.BehaviorPackage) string { return b.Name.In(lang) }),
		Validation: verdict.Localize(lang),
		Price:      pricing.PriceSelection(cat, state),
		Section:    compose.ComposeSection3(cat, lang, compose.InputFromState(state)),
		Annexes:    annexes(cat, lang, state.RoleIDs),
		verdict:    verdict,
	}
}

func annexes(cat *catalog.Catalog, lang types.Lang, ids []types.RoleID) []Annex {
	roles := cat.KnownRoles(ids)
	out := make([]Annex, 0, len(roles))
	for _, r := range roles {
		out = append(out, Annex{
			RoleID:       r.ID,
			Label:        r.Label.In(lang),
			Requirements: cat.RequirementsFor(lang, r.ID),
		})
	}
	return out
}

// Bundle holds one offer per supported language, in SupportedLangs order.
type Bundle struct {
	Offers []Offer `json:"offers"`
}

// For returns the offer in lang.
func (b Bundle) For(lang types.Lang) (Offer, bool) {
	for _, o := range b.Offers {
		if o.Lang == lang {
			return o, true
		}
	}
	return Offer{}, false
}

// AssembleBilingual derives the offer in every supported language concurrently.
func AssembleBilingual(ctx context.Context, cat *catalog.Catalog, state types.SelectionState) (Bundle, error) {
	g, gCtx := errgroup.WithContext(ctx)
	offers := make([]Offer, len(types.SupportedLangs))

	for i, lang := range types.SupportedLangs {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return fmt.Errorf("assembling %s offer: %w", lang, err)
			}
			s := state
			s.Lang = lang
			offers[i] = Assemble(cat, s)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Bundle{}, err
	}
	return Bundle{Offers: offers}, nil
}
