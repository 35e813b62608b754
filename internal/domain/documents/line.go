// Package documents provides types shared by the document aggregates:
// the priced line item and its bridge to proportional price reconciliation.
package documents

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/yochirolee/comercial-sub000/internal/core/apperror"
	"github.com/yochirolee/comercial-sub000/internal/core/id"
	"github.com/yochirolee/comercial-sub000/internal/domain/catalogs/product"
	"github.com/yochirolee/comercial-sub000/internal/domain/pricing"
)

// Line is a priced line item on an offer or invoice.
//
// OriginalPrice is the quoted baseline and never changes after the line is
// created; Price starts equal to it and is the only field price adjustment
// rewrites. NetWeight is the total net weight of the line in kg. For
// weight-priced goods the price applies per kg, so monetary math uses
// NetWeight instead of Quantity.
type Line struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	ProductID   id.ID  `db:"product_id" json:"productId"`
	Description string `db:"description" json:"description"`
	Unit        string `db:"unit" json:"unit"`

	Quantity     decimal.Decimal `db:"quantity" json:"quantity"`
	NetWeight    decimal.Decimal `db:"net_weight" json:"netWeight"`
	WeightPriced bool            `db:"weight_priced" json:"weightPriced"`

	OriginalPrice decimal.Decimal `db:"original_price" json:"originalPrice"`
	Price         decimal.Decimal `db:"price" json:"price"`
	Subtotal      decimal.Decimal `db:"subtotal" json:"subtotal"`
}

// NewLine builds a line for a product at the quoted price. The subtotal is
// computed from the pricing quantity at currency precision.
func NewLine(lineNo int, p *product.Product, quantity, price decimal.Decimal) Line {
	l := Line{
		LineID:        id.New(),
		LineNo:        lineNo,
		ProductID:     p.ID,
		Description:   p.Name,
		Unit:          p.Unit,
		Quantity:      quantity,
		NetWeight:     p.NetWeight.Mul(quantity),
		WeightPriced:  p.IsWeightPriced(),
		OriginalPrice: price,
		Price:         price,
	}
	l.Subtotal = pricing.RoundAmount(l.PricingQuantity().Mul(price))
	return l
}

// PricingQuantity returns the magnitude the unit price applies to:
// net weight in kg for weight-priced goods, nominal quantity otherwise.
func (l Line) PricingQuantity() decimal.Decimal {
	if l.WeightPriced {
		return l.NetWeight
	}
	return l.Quantity
}

// Validate checks line invariants.
func (l Line) Validate(ctx context.Context) error {
	if id.IsNil(l.ProductID) {
		return apperror.NewValidation("product is required").
			WithDetail("field", "lines").
			WithDetail("lineNo", l.LineNo)
	}
	if l.Quantity.IsNegative() {
		return apperror.NewValidation("quantity cannot be negative").
			WithDetail("field", "lines").
			WithDetail("lineNo", l.LineNo)
	}
	if l.OriginalPrice.IsNegative() || l.Price.IsNegative() {
		return apperror.NewValidation("price cannot be negative").
			WithDetail("field", "lines").
			WithDetail("lineNo", l.LineNo)
	}
	if l.WeightPriced && l.Quantity.IsPositive() && !l.NetWeight.IsPositive() {
		return apperror.NewValidation("weight-priced line requires a positive net weight").
			WithDetail("field", "lines").
			WithDetail("lineNo", l.LineNo)
	}
	return nil
}

// SumSubtotals returns the products total across lines.
func SumSubtotals(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal)
	}
	return total
}

// ReconcileLines scales line prices so subtotals sum to targetSubtotal
// exactly, always from the original prices. Lines are taken in LineNo
// order as stored; the input slice is not modified on failure.
func ReconcileLines(lines []Line, targetSubtotal decimal.Decimal) ([]Line, error) {
	pls := make([]pricing.Line, len(lines))
	for i, l := range lines {
		pls[i] = pricing.Line{
			Quantity:      l.PricingQuantity(),
			OriginalPrice: l.OriginalPrice,
		}
	}

	adjusted, _, err := pricing.Reconcile(pls, targetSubtotal)
	if err != nil {
		return nil, err
	}

	out := make([]Line, len(lines))
	copy(out, lines)
	for i := range out {
		out[i].Price = adjusted[i].AdjustedPrice
		out[i].Subtotal = adjusted[i].Subtotal
	}
	return out, nil
}
