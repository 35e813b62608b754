package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/yochirolee/comercial-sub000/internal/core/id"
	"github.com/yochirolee/comercial-sub000/internal/domain/documents"
	"github.com/yochirolee/comercial-sub000/internal/domain/documents/customer_offer"
)

// --- Request DTOs ---

// AdjustPricesRequest asks for line prices to be rescaled so the document
// grand total lands exactly on the desired amount.
type AdjustPricesRequest struct {
	DesiredTotal decimal.Decimal `json:"desiredTotal" binding:"required"`
}

// SetStatusRequest transitions a document to a new status.
type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CreateCustomerOfferRequest is the request body for creating a customer offer.
type CreateCustomerOfferRequest struct {
	Number     string        `json:"number,omitempty"`
	Date       *time.Time    `json:"date,omitempty"`
	CustomerID string        `json:"customerId" binding:"required,uuid"`
	Currency   string        `json:"currency,omitempty"`
	Comment    string        `json:"comment,omitempty"`
	Lines      []LineRequest `json:"lines" binding:"required,min=1,dive"`
}

// ToEntity converts the request to a domain entity. Lines are resolved
// against the product catalog by the handler and passed in ready-made.
func (r *CreateCustomerOfferRequest) ToEntity(lines []documents.Line) *customer_offer.CustomerOffer {
	customerID, _ := id.Parse(r.CustomerID)

	doc := customer_offer.NewCustomerOffer(customerID)
	doc.Number = r.Number
	if r.Date != nil {
		doc.Date = *r.Date
	}
	if r.Currency != "" {
		doc.Currency = r.Currency
	}
	doc.Comment = r.Comment
	doc.Lines = lines
	doc.RecalculateTotals()
	return doc
}

// UpdateCustomerOfferRequest is the request body for updating a customer offer.
// Nil fields are left unchanged; non-nil Lines replace the table part.
type UpdateCustomerOfferRequest struct {
	Date       *time.Time    `json:"date,omitempty"`
	CustomerID *string       `json:"customerId,omitempty"`
	Currency   *string       `json:"currency,omitempty"`
	Comment    *string       `json:"comment,omitempty"`
	Lines      []LineRequest `json:"lines,omitempty" binding:"omitempty,min=1,dive"`
	Version    int           `json:"version" binding:"required,min=1"`
}

// ApplyTo applies updates to an existing entity. Replacement lines, when
// present in the request, are passed in resolved by the handler.
func (r *UpdateCustomerOfferRequest) ApplyTo(doc *customer_offer.CustomerOffer, lines []documents.Line) {
	if r.Date != nil {
		doc.Date = *r.Date
	}
	if r.CustomerID != nil {
		customerID, _ := id.Parse(*r.CustomerID)
		doc.CustomerID = customerID
	}
	if r.Currency != nil {
		doc.Currency = *r.Currency
	}
	if r.Comment != nil {
		doc.Comment = *r.Comment
	}
	if lines != nil {
		doc.Lines = lines
	}
	doc.Version = r.Version
	doc.RecalculateTotals()
}

// --- Response DTOs ---

// CustomerOfferResponse is the response body for a customer offer.
type CustomerOfferResponse struct {
	DocumentResponse
	CustomerID    string                `json:"customerId"`
	Currency      string                `json:"currency"`
	Status        customer_offer.Status `json:"status"`
	ProductsTotal decimal.Decimal       `json:"productsTotal"`
	Lines         []LineResponse        `json:"lines"`
}

// FromCustomerOffer creates response DTO from domain entity.
func FromCustomerOffer(doc *customer_offer.CustomerOffer) *CustomerOfferResponse {
	return &CustomerOfferResponse{
		DocumentResponse: FromDocument(doc.Document),
		CustomerID:       doc.CustomerID.String(),
		Currency:         doc.Currency,
		Status:           doc.Status,
		ProductsTotal:    doc.ProductsTotal,
		Lines:            FromLines(doc.Lines),
	}
}
