package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/yochirolee/comercial-sub000/internal/core/apperror"
)

// Surcharges are the additive components on top of the product subtotal.
// FOB carries none, CFR adds freight, CIF adds freight and insurance.
type Surcharges struct {
	Freight          decimal.Decimal
	Insurance        decimal.Decimal
	InsuranceEnabled bool
}

// Total returns the sum of enabled surcharges.
func (s Surcharges) Total() decimal.Decimal {
	total := s.Freight
	if s.InsuranceEnabled {
		total = total.Add(s.Insurance)
	}
	return total
}

// TargetSubtotal converts a desired grand total into the product-subtotal
// target the reconciler works against. Fails when the surcharges leave no
// positive amount for the products.
func TargetSubtotal(desiredTotal decimal.Decimal, s Surcharges) (decimal.Decimal, error) {
	if !desiredTotal.IsPositive() {
		return decimal.Zero, apperror.NewInvalidTarget("desired total must be positive").
			WithDetail("desiredTotal", desiredTotal.String())
	}

	target := desiredTotal.Sub(s.Total())
	if !target.IsPositive() {
		err := apperror.NewInvalidTarget("desired total is less than or equal to additive surcharges").
			WithDetail("desiredTotal", desiredTotal.String()).
			WithDetail("freight", s.Freight.String())
		if s.InsuranceEnabled {
			err = err.WithDetail("insurance", s.Insurance.String())
		}
		return decimal.Zero, err
	}

	return target, nil
}

// GrandTotal composes the stored grand total from a product subtotal and
// surcharges. By construction, reconciling to TargetSubtotal(desired, s)
// and recomposing yields exactly the requested desired total.
func GrandTotal(productSubtotal decimal.Decimal, s Surcharges) decimal.Decimal {
	return RoundAmount(productSubtotal.Add(s.Total()))
}
