// Package importer_offer provides the ImporterOffer document: the offer
// presented to the importing entity on CIF terms. On top of the products
// total it carries freight and, when enabled, insurance.
package importer_offer

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/yochirolee/comercial-sub000/internal/core/apperror"
	"github.com/yochirolee/comercial-sub000/internal/core/entity"
	"github.com/yochirolee/comercial-sub000/internal/core/id"
	"github.com/yochirolee/comercial-sub000/internal/domain/documents"
	"github.com/yochirolee/comercial-sub000/internal/domain/pricing"
)

// Status of an importer offer.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusIssued   Status = "issued"
	StatusAccepted Status = "accepted"
	StatusDeclined Status = "declined"
)

// ImporterOffer represents a CIF offer to the importing entity.
type ImporterOffer struct {
	entity.Document

	// ImporterID references the importing entity (a customer record)
	ImporterID id.ID `db:"importer_id" json:"importerId"`

	// SourceOfferID references the customer offer this was derived from
	SourceOfferID *id.ID `db:"source_offer_id" json:"sourceOfferId,omitempty"`

	// Currency is the ISO 4217 code all amounts are denominated in
	Currency string `db:"currency" json:"currency"`

	// Status drives which operations are allowed
	Status Status `db:"status" json:"status"`

	// Freight is the freight amount added to the products total
	Freight decimal.Decimal `db:"freight" json:"freight"`

	// Insurance is the insurance amount; counted only when enabled
	Insurance decimal.Decimal `db:"insurance" json:"insurance"`

	// InsuranceEnabled toggles whether insurance participates in totals
	InsuranceEnabled bool `db:"insurance_enabled" json:"insuranceEnabled"`

	// ProductsTotal is the sum of line subtotals
	ProductsTotal decimal.Decimal `db:"products_total" json:"productsTotal"`

	// CIFTotal is products + freight + insurance (when enabled)
	CIFTotal decimal.Decimal `db:"cif_total" json:"cifTotal"`

	// Table part: offered goods
	Lines []documents.Line `db:"-" json:"lines"`
}

// NewImporterOffer creates a draft offer for an importer.
func NewImporterOffer(importerID id.ID) *ImporterOffer {
	return &ImporterOffer{
		Document:      entity.NewDocument(),
		ImporterID:    importerID,
		Currency:      "USD",
		Status:        StatusDraft,
		Freight:       decimal.Zero,
		Insurance:     decimal.Zero,
		ProductsTotal: decimal.Zero,
		CIFTotal:      decimal.Zero,
		Lines:         make([]documents.Line, 0),
	}
}

// Surcharges returns the additive components for total composition.
func (o *ImporterOffer) Surcharges() pricing.Surcharges {
	return pricing.Surcharges{
		Freight:          o.Freight,
		Insurance:        o.Insurance,
		InsuranceEnabled: o.InsuranceEnabled,
	}
}

// RecalculateTotals updates products and CIF totals from lines and surcharges.
func (o *ImporterOffer) RecalculateTotals() {
	o.ProductsTotal = documents.SumSubtotals(o.Lines)
	o.CIFTotal = pricing.GrandTotal(o.ProductsTotal, o.Surcharges())
}

// AdjustToTotal rescales line prices so the CIF total lands exactly on
// desiredTotal. Freight and insurance are fixed amounts, so only the
// product portion (desired minus surcharges) is reconciled. Prices always
// scale from the original prices; the document is only modified when
// reconciliation succeeds.
func (o *ImporterOffer) AdjustToTotal(desiredTotal decimal.Decimal) error {
	target, err := pricing.TargetSubtotal(desiredTotal, o.Surcharges())
	if err != nil {
		return err
	}

	lines, err := documents.ReconcileLines(o.Lines, target)
	if err != nil {
		return err
	}

	o.Lines = lines
	o.ProductsTotal = pricing.RoundAmount(target)
	o.CIFTotal = pricing.GrandTotal(o.ProductsTotal, o.Surcharges())
	return nil
}

// CanModify reports whether the offer still accepts changes.
func (o *ImporterOffer) CanModify() error {
	if o.Status == StatusAccepted || o.Status == StatusDeclined {
		return apperror.NewBusinessRule("OFFER_FINALIZED",
			"offer is finalized and can no longer be modified").
			WithDetail("status", string(o.Status))
	}
	return nil
}

// Validate implements entity.Validatable.
func (o *ImporterOffer) Validate(ctx context.Context) error {
	if err := o.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(o.ImporterID) {
		return apperror.NewValidation("importer is required").
			WithDetail("field", "importerId")
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

	if o.Freight.IsNegative() {
		return apperror.NewValidation("freight cannot be negative").
			WithDetail("field", "freight")
	}

	if o.Insurance.IsNegative() {
		return apperror.NewValidation("insurance cannot be negative").
			WithDetail("field", "insurance")
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
