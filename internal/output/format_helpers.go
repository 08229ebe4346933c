package output

import (
	"strconv"

	"github.com/shopspring/decimal"

	pkgdecimal "github.com/lifegap/coverage-calculator/pkg/decimal"
)

// FormatCurrency formats a decimal as USD currency with 2 decimals. Kept
// here so it can be reused by multiple formatters and unit tested in
// isolation.
func FormatCurrency(amount decimal.Decimal) string {
	return pkgdecimal.NewMoneyFromDecimal(amount).Format()
}

// FormatPercent formats a fractional rate (0.065) as a percentage ("6.50%").
func FormatPercent(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}

func intToString(v int) string { return strconv.Itoa(v) }
