// Package currency formats prices in South African Rand.
package currency

import (
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.MustParse("en-ZA"))

// FormatZAR renders a price with the Rand symbol and two decimals, e.g. "R 65,00".
// Output follows en-ZA conventions: comma decimals, non-breaking space grouping.
func FormatZAR(value float64) string {
	return printer.Sprint(currency.NarrowSymbol(currency.ZAR.Amount(value)))
}
