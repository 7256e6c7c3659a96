package view

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$0.00", FormatMoney(decimal.Zero))
	assert.Equal(t, "$12.50", FormatMoney(decimal.RequireFromString("12.5")))
	assert.Equal(t, "-$3.25", FormatMoney(decimal.RequireFromString("-3.25")))
}

func TestFormatQty(t *testing.T) {
	assert.Equal(t, "×3", FormatQty(3))
}
