// Package pricing implements proportional price reconciliation: rescaling
// the line prices of an offer or invoice so their subtotals sum to an exact
// desired amount. The same procedure backs CIF targets on importer offers,
// CFR targets on invoices, and plain targets on customer offers.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/yochirolee/comercial-sub000/internal/core/apperror"
)

// Shared precision rules. Unit prices keep sub-cent precision because
// per-unit economics with large quantities need it; subtotals and totals
// are currency amounts.
const (
	UnitPriceDecimals int32 = 3
	CurrencyDecimals  int32 = 2
)

// RoundPrice rounds a unit price to the shared precision (half away from zero).
func RoundPrice(d decimal.Decimal) decimal.Decimal {
	return d.Round(UnitPriceDecimals)
}

// RoundAmount rounds a currency amount to the shared precision (half away from zero).
func RoundAmount(d decimal.Decimal) decimal.Decimal {
	return d.Round(CurrencyDecimals)
}

// Line is one reconcilable line item. Quantity is the quantity basis for
// monetary calculation — the caller resolves net weight vs. nominal quantity
// before building Lines. OriginalPrice is the baseline the scaling factor
// applies to; it is never overwritten, so repeated reconciliations do not
// compound. AdjustedPrice and Subtotal are outputs.
type Line struct {
	Quantity      decimal.Decimal
	OriginalPrice decimal.Decimal
	AdjustedPrice decimal.Decimal
	Subtotal      decimal.Decimal
}

// Reconcile scales every line's original price by a single factor so that
// the rounded subtotals sum to targetSubtotal exactly. Lines must be in
// stable order: the last line absorbs the rounding residue, and its
// adjusted price is back-computed from its subtotal.
//
// The input slice is never mutated; on success a fresh slice with adjusted
// prices and subtotals is returned together with the sum of subtotals
// (equal to targetSubtotal rounded to currency precision by construction).
func Reconcile(lines []Line, targetSubtotal decimal.Decimal) ([]Line, decimal.Decimal, error) {
	if len(lines) == 0 {
		return nil, decimal.Zero, apperror.NewNoPriceableItems()
	}
	if !targetSubtotal.IsPositive() {
		return nil, decimal.Zero, apperror.NewInvalidTarget("desired total must be positive").
			WithDetail("target", targetSubtotal.String())
	}

	// Original total over unrounded original values.
	originalTotal := decimal.Zero
	for _, l := range lines {
		originalTotal = originalTotal.Add(l.OriginalPrice.Mul(l.Quantity))
	}
	if !originalTotal.IsPositive() {
		return nil, decimal.Zero, apperror.NewNoPriceableItems()
	}

	factor := targetSubtotal.Div(originalTotal)

	out := make([]Line, len(lines))
	copy(out, lines)

	last := len(out) - 1
	runningSum := decimal.Zero
	for i := 0; i < last; i++ {
		out[i].AdjustedPrice = RoundPrice(out[i].OriginalPrice.Mul(factor))
		out[i].Subtotal = RoundAmount(out[i].Quantity.Mul(out[i].AdjustedPrice))
		runningSum = runningSum.Add(out[i].Subtotal)
	}

	// Residue absorber: subtotal is whatever remains of the target, and the
	// price is derived from it. A zero-quantity absorber keeps the residual
	// subtotal but gets price 0 (price*qty != subtotal for that one line).
	out[last].Subtotal = RoundAmount(targetSubtotal.Sub(runningSum))
	if out[last].Quantity.IsPositive() {
		out[last].AdjustedPrice = RoundPrice(out[last].Subtotal.Div(out[last].Quantity))
	} else {
		out[last].AdjustedPrice = decimal.Zero
	}

	return out, runningSum.Add(out[last].Subtotal), nil
}
