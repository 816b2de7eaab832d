package output

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var brPrinter = message.NewPrinter(language.BrazilianPortuguese)

// FormatCurrency formats an amount in reais with Brazilian separators, e.g. R$ 1.234,56
func FormatCurrency(amount decimal.Decimal) string {
	return currencySymbol + " " + FormatNumber(amount)
}

// FormatNumber formats an amount with two decimals and Brazilian separators
func FormatNumber(amount decimal.Decimal) string {
	return brPrinter.Sprint(number.Decimal(amount.Round(2).InexactFloat64(), number.Scale(2)))
}

// FormatPercentage renders a fraction as a percentage, 0.4 -> 40%
func FormatPercentage(fraction decimal.Decimal) string {
	return brPrinter.Sprint(number.Decimal(fraction.Mul(decimal.NewFromInt(100)).InexactFloat64(), number.MaxFractionDigits(2))) + "%"
}

var currencySymbol = brPrinter.Sprint(currency.NarrowSymbol(currency.BRL))
