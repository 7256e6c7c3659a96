package view

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// FormatMoney renders an amount as dollars with two decimals.
func FormatMoney(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + d.Neg().StringFixed(2)
	}

	return "$" + d.StringFixed(2)
}

// FormatQty renders a line item quantity as "×n".
func FormatQty(n int) string {
	return "×" + strconv.Itoa(n)
}

func parseQty(s string) (int, error) {
	return strconv.Atoi(s)
}
