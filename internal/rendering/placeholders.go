package rendering

import (
	"sort"
	"strconv"
	"strings"

	"github.com/jonathan/mandate-configurator/internal/offer"
)

// Options controls contract rendering.
type Options struct {
	// Placeholders maps tokens such as "startDate" to their replacement; the
	// braces are added when substituting. Unknown tokens stay literal.
	Placeholders map[string]string
	// TemplatePath overrides the embedded HTML template.
	TemplatePath string
}

// placeholderReplacer builds the substitution for o. Caller values win over the
// derived days and dayRate tokens.
func placeholderReplacer(o offer.Offer, opts Options) *strings.Replacer {
	values := map[string]string{
		"days":    strconv.Itoa(o.Days),
		"dayRate": FormatMoney(o.Lang, o.Price.DayRate, o.Currency),
	}
	for k, v := range opts.Placeholders {
		values[k] = v
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, "{"+k+"}", values[k])
	}
	return strings.NewReplacer(pairs...)
}
