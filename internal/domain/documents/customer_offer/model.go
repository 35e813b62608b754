// Package customer_offer provides the CustomerOffer document: a quotation
// issued to a final customer. Its grand total is the products total; there
// are no freight or insurance components at this stage.
package customer_offer

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/yochirolee/comercial-sub000/internal/core/apperror"
	"github.com/yochirolee/comercial-sub000/internal/core/entity"
	"github.com/yochirolee/comercial-sub000/internal/core/id"
	"github.com/yochirolee/comercial-sub000/internal/domain/catalogs/product"
	"github.com/yochirolee/comercial-sub000/internal/domain/documents"
	"github.com/yochirolee/comercial-sub000/internal/domain/pricing"
)

// Status of a customer offer.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusIssued   Status = "issued"
	StatusAccepted Status = "accepted"
	StatusDeclined Status = "declined"
)

// CustomerOffer represents a quotation to a final customer.
type CustomerOffer struct {
	entity.Document

	// CustomerID references the buyer
	CustomerID id.ID `db:"customer_id" json:"customerId"`

	// Currency is the ISO 4217 code all amounts are denominated in
	Currency string `db:"currency" json:"currency"`

	// Status drives which operations are allowed
	Status Status `db:"status" json:"status"`

	// ProductsTotal is the sum of line subtotals
	ProductsTotal decimal.Decimal `db:"products_total" json:"productsTotal"`

	// Table part: offered goods
	Lines []documents.Line `db:"-" json:"lines"`
}

// NewCustomerOffer creates a draft offer for a customer.
func NewCustomerOffer(customerID id.ID) *CustomerOffer {
	return &CustomerOffer{
		Document:      entity.NewDocument(),
		CustomerID:    customerID,
		Currency:      "USD",
		Status:        StatusDraft,
		ProductsTotal: decimal.Zero,
		Lines:         make([]documents.Line, 0),
	}
}

// AddLine appends a product line and recalculates totals.
func (o *CustomerOffer) AddLine(p *product.Product, quantity, price decimal.Decimal) {
	o.Lines = append(o.Lines, documents.NewLine(len(o.Lines)+1, p, quantity, price))
	o.RecalculateTotals()
}

// RecalculateTotals updates the products total from lines.
func (o *CustomerOffer) RecalculateTotals() {
	o.ProductsTotal = documents.SumSubtotals(o.Lines)
}

// GrandTotal of a customer offer is the products total.
func (o *CustomerOffer) GrandTotal() decimal.Decimal {
	return o.ProductsTotal
}

// AdjustToTotal rescales line prices so the offer totals exactly
// desiredTotal. Prices always scale from the original quoted prices, so
// adjusting repeatedly does not drift. The document is only modified when
// reconciliation succeeds.
func (o *CustomerOffer) AdjustToTotal(desiredTotal decimal.Decimal) error {
	lines, err := documents.ReconcileLines(o.Lines, desiredTotal)
	if err != nil {
		return err
	}
	o.Lines = lines
	o.ProductsTotal = pricing.RoundAmount(desiredTotal)
	return nil
}

// CanModify reports whether the offer still accepts changes.
func (o *CustomerOffer) CanModify() error {
	if o.Status == StatusAccepted || o.Status == StatusDeclined {
		return apperror.NewBusinessRule("OFFER_FINALIZED",
			"offer is finalized and can no longer be modified").
			WithDetail("status", string(o.Status))
	}
	return nil
}

// Validate implements entity.Validatable.
func (o *CustomerOffer) Validate(ctx context.Context) error {
	if err := o.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(o.CustomerID) {
		return apperror.NewValidation("customer is required").
			WithDetail("field", "customerId")
	}

	if o.Currency == "" {
		return apperror.NewValidation("currency is required").
			WithDetail("field", "currency")
	}

	if !isValidStatus(o.Status) {
		return apperror.NewValidation("invalid status").
			WithDetail("field", "status").
			WithDetail("value", string(o.Status))
	}

	if len(o.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}

	for _, line := range o.Lines {
		if err := line.Validate(ctx); err != nil {
			return err
		}
	}

	return nil
}

func isValidStatus(s Status) bool {
	switch s {
	case StatusDraft, StatusIssued, StatusAccepted, StatusDeclined:
		return true
	}
	return false
}
