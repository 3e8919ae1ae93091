package rendering

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/jonathan/mandate-configurator/internal/types"
)

func tag(lang types.Lang) language.Tag {
	if lang == types.LangEN {
		return language.English
	}
	return language.German
}

// FormatAmount formats v with two decimals and the grouping of lang.
func FormatAmount(lang types.Lang, v float64) string {
	return message.NewPrinter(tag(lang)).Sprint(number.Decimal(v, number.Scale(2)))
}

// FormatMoney formats v with its currency code in the customary position for lang.
func FormatMoney(lang types.Lang, v float64, currency string) string {
	if lang == types.LangEN {
		return currency + " " + FormatAmount(lang, v)
	}
	return FormatAmount(lang, v) + " " + currency
}
