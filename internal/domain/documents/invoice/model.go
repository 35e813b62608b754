// Package invoice provides the Invoice document: the commercial invoice
// issued on CFR terms. On top of the products total it carries freight;
// insurance is the buyer's side under CFR and never appears here.
package invoice

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yochirolee/comercial-sub000/internal/core/apperror"
	"github.com/yochirolee/comercial-sub000/internal/core/entity"
	"github.com/yochirolee/comercial-sub000/internal/core/id"
	"github.com/yochirolee/comercial-sub000/internal/domain/documents"
	"github.com/yochirolee/comercial-sub000/internal/domain/pricing"
)

// Status of an invoice.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusIssued    Status = "issued"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
)

// Invoice represents a commercial invoice on CFR terms.
type Invoice struct {
	entity.Document

	// CustomerID references the billed party
	CustomerID id.ID `db:"customer_id" json:"customerId"`

	// SourceOfferID references the importer offer this was derived from
	SourceOfferID *id.ID `db:"source_offer_id" json:"sourceOfferId,omitempty"`

	// Currency is the ISO 4217 code all amounts are denominated in
	Currency string `db:"currency" json:"currency"`

	// Status drives which operations are allowed
	Status Status `db:"status" json:"status"`

	// Freight is the freight amount added to the products total
	Freight decimal.Decimal `db:"freight" json:"freight"`

	// ProductsTotal is the sum of line subtotals
	ProductsTotal decimal.Decimal `db:"products_total" json:"productsTotal"`

	// CFRTotal is products + freight
	CFRTotal decimal.Decimal `db:"cfr_total" json:"cfrTotal"`

	// DueDate is the payment due date
	DueDate *time.Time `db:"due_date" json:"dueDate,omitempty"`

	// Table part: billed goods
	Lines []documents.Line `db:"-" json:"lines"`
}

// NewInvoice creates a draft invoice for a customer.
func NewInvoice(customerID id.ID) *Invoice {
	return &Invoice{
		Document:      entity.NewDocument(),
		CustomerID:    customerID,
		Currency:      "USD",
		Status:        StatusDraft,
		Freight:       decimal.Zero,
		ProductsTotal: decimal.Zero,
		CFRTotal:      decimal.Zero,
		Lines:         make([]documents.Line, 0),
	}
}

// Surcharges returns the additive components for total composition.
// Insurance never participates on CFR terms.
func (inv *Invoice) Surcharges() pricing.Surcharges {
	return pricing.Surcharges{Freight: inv.Freight}
}

// RecalculateTotals updates products and CFR totals from lines and freight.
func (inv *Invoice) RecalculateTotals() {
	inv.ProductsTotal = documents.SumSubtotals(inv.Lines)
	inv.CFRTotal = pricing.GrandTotal(inv.ProductsTotal, inv.Surcharges())
}

// AdjustToTotal rescales line prices so the CFR total lands exactly on
// desiredTotal. Freight is a fixed amount, so only the product portion is
// reconciled. Prices always scale from the original prices; the document
// is only modified when reconciliation succeeds.
func (inv *Invoice) AdjustToTotal(desiredTotal decimal.Decimal) error {
	target, err := pricing.TargetSubtotal(desiredTotal, inv.Surcharges())
	if err != nil {
		return err
	}

	lines, err := documents.ReconcileLines(inv.Lines, target)
	if err != nil {
		return err
	}

	inv.Lines = lines
	inv.ProductsTotal = pricing.RoundAmount(target)
	inv.CFRTotal = pricing.GrandTotal(inv.ProductsTotal, inv.Surcharges())
	return nil
}

// CanModify reports whether the invoice still accepts changes.
func (inv *Invoice) CanModify() error {
	if inv.Status == StatusPaid || inv.Status == StatusCancelled {
		return apperror.NewBusinessRule("INVOICE_FINALIZED",
			"invoice is finalized and can no longer be modified").
			WithDetail("status", string(inv.Status))
	}
	return nil
}

// Validate implements entity.Validatable.
func (inv *Invoice) Validate(ctx context.Context) error {
	if err := inv.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(inv.CustomerID) {
		return apperror.NewValidation("customer is required").
			WithDetail("field", "customerId")
	}

	if inv.Currency == "" {
		return apperror.NewValidation("currency is required").
			WithDetail("field", "currency")
	}

	if !isValidStatus(inv.Status) {
		return apperror.NewValidation("invalid status").
			WithDetail("field", "status").
			WithDetail("value", string(inv.Status))
	}

	if inv.Freight.IsNegative() {
		return apperror.NewValidation("freight cannot be negative").
			WithDetail("field", "freight")
	}

	if inv.DueDate != nil && inv.DueDate.Before(inv.Date) {
		return apperror.NewValidation("due date cannot precede the invoice date").
			WithDetail("field", "dueDate")
	}

	if len(inv.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}

	for _, line := range inv.Lines {
		if err := line.Validate(ctx); err != nil {
			return err
		}
	}

	return nil
}

func isValidStatus(s Status) bool {
	switch s {
	case StatusDraft, StatusIssued, StatusPaid, StatusCancelled:
		return true
	}
	return false
}
