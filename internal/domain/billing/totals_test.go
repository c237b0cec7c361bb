package billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestComputeTotals(t *testing.T) {
	rate := decimal.RequireFromString("0.13")

	cases := []struct {
		base     string
		subtotal string
		tax      string
		total    string
	}{
		{base: "100.00", subtotal: "100", tax: "13", total: "113"},
		{base: "10.005", subtotal: "10.005", tax: "1.3", total: "11.31"},
		{base: "0", subtotal: "0", tax: "0", total: "0"},
		{base: "45.50", subtotal: "45.5", tax: "5.92", total: "51.42"},
		{base: "0.5", subtotal: "0.5", tax: "0.07", total: "0.57"},
		// 0.0385 * 0.13 = 0.005005 -> 0.01; 0.0385 + 0.01 = 0.0485 -> 0.05.
		// Rounding base*1.13 once would give 0.04.
		{base: "0.0385", subtotal: "0.0385", tax: "0.01", total: "0.05"},
	}

	for _, tc := range cases {
		t.Run(tc.base, func(t *testing.T) {
			got := ComputeTotals(decimal.RequireFromString(tc.base), rate)
			assert.True(t, got.Subtotal.Equal(decimal.RequireFromString(tc.subtotal)), "subtotal %s", got.Subtotal)
			assert.True(t, got.Tax.Equal(decimal.RequireFromString(tc.tax)), "tax %s", got.Tax)
			assert.True(t, got.Total.Equal(decimal.RequireFromString(tc.total)), "total %s", got.Total)
		})
	}
}

func TestComputeTotals_DoubleRoundingDiffersFromSingle(t *testing.T) {
	base := decimal.RequireFromString("0.0385")
	rate := DefaultTaxRate

	single := base.Mul(decimal.NewFromInt(1).Add(rate)).Round(2)
	got := ComputeTotals(base, rate)

	assert.Equal(t, "0.04", single.StringFixed(2))
	assert.Equal(t, "0.05", got.Total.StringFixed(2))
}

func TestComputeTotals_CustomRate(t *testing.T) {
	got := ComputeTotals(decimal.RequireFromString("200"), decimal.RequireFromString("0.21"))
	assert.Equal(t, "42.00", got.Tax.StringFixed(2))
	assert.Equal(t, "242.00", got.Total.StringFixed(2))
}
