// Package billing derives invoice amounts from a consultation cost.
package billing

import "github.com/shopspring/decimal"

// DefaultTaxRate is the flat tax applied when the deployment does not
// configure one.
var DefaultTaxRate = decimal.RequireFromString("0.13")

// Totals is the derived monetary breakdown of an invoice.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// ComputeTotals applies rate to base.
//
// Tax is rounded half-up to cents on its own, and total is rounded again
// after adding the already rounded tax. Reconciliation depends on this exact
// order, so do not collapse it into a single rounding of base*(1+rate).
func ComputeTotals(base, rate decimal.Decimal) Totals {
	tax := roundCents(base.Mul(rate))
	total := roundCents(base.Add(tax))
	return Totals{Subtotal: base, Tax: tax, Total: total}
}

// roundCents rounds half away from zero, which is half-up for the
// non-negative amounts billed here.
func roundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
