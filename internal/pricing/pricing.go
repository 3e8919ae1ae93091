// Package pricing derives the day rate, net, VAT and gross amounts of an engagement.
package pricing

import (
	"math"

	"github.com/jonathan/mandate-configurator/internal/catalog"
	"github.com/jonathan/mandate-configurator/internal/types"
)

// VATRate is the fixed value-added tax rate applied to the net amount.
const VATRate = 0.19

// Price computes the breakdown for base rate, optional level factors and days.
// Only an absent factor counts as 1; a zero factor yields a zero price. Every step
// is rounded so the amounts reproduce exactly when recomputed.
func Price(baseDayRate float64, psychoFactor, caringFactor *float64, days int) types.PriceBreakdown {
	factor := orOne(psychoFactor) * orOne(caringFactor)
	days = types.ClampDays(days)

	dayRate := math.Round(baseDayRate * factor)
	net := dayRate * float64(days)
	tax := round2(net * VATRate)
	gross := round2(net + tax)

	return types.PriceBreakdown{
		PriceFactor: factor,
		DayRate:     dayRate,
		Days:        days,
		Net:         net,
		Tax:         tax,
		Gross:       gross,
	}
}

// PriceSelection resolves the selected levels in cat and prices state.
func PriceSelection(cat *catalog.Catalog, state types.SelectionState) types.PriceBreakdown {
	return Price(
		cat.Commercial.BaseDayRate,
		levelFactor(cat.ResolvePsycho(state.PsychoID)),
		levelFactor(cat.ResolveCaring(state.CaringID)),
		state.Days,
	)
}

func levelFactor(c types.Choice[catalog.Level]) *float64 {
	return types.Match(c,
		func() *float64 { return nil },
		func(l catalog.Level) *float64 { return l.PriceFactor })
}

func orOne(f *float64) float64 {
	if f == nil {
		return 1
	}
	return *f
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
