package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/yochirolee/comercial-sub000/internal/core/id"
	"github.com/yochirolee/comercial-sub000/internal/domain/documents"
	"github.com/yochirolee/comercial-sub000/internal/domain/documents/invoice"
)

// --- Request DTOs ---

// CreateInvoiceRequest is the request body for creating an invoice from
// scratch.
type CreateInvoiceRequest struct {
	Number     string          `json:"number,omitempty"`
	Date       *time.Time      `json:"date,omitempty"`
	CustomerID string          `json:"customerId" binding:"required,uuid"`
	Currency   string          `json:"currency,omitempty"`
	Freight    decimal.Decimal `json:"freight"`
	DueDate    *time.Time      `json:"dueDate,omitempty"`
	Comment    string          `json:"comment,omitempty"`
	Lines      []LineRequest   `json:"lines" binding:"required,min=1,dive"`
}

// ToEntity converts the request to a domain entity. Lines are resolved
// against the product catalog by the handler and passed in ready-made.
func (r *CreateInvoiceRequest) ToEntity(lines []documents.Line) *invoice.Invoice {
	customerID, _ := id.Parse(r.CustomerID)

	doc := invoice.NewInvoice(customerID)
	doc.Number = r.Number
	if r.Date != nil {
		doc.Date = *r.Date
	}
	if r.Currency != "" {
		doc.Currency = r.Currency
	}
	doc.Freight = r.Freight
	doc.DueDate = r.DueDate
	doc.Comment = r.Comment
	doc.Lines = lines
	doc.RecalculateTotals()
	return doc
}

// DeriveInvoiceRequest is the request body for deriving an invoice from an
// importer offer. When Freight is nil, the offer's freight carries over.
type DeriveInvoiceRequest struct {
	Freight      *decimal.Decimal `json:"freight,omitempty"`
	DueDate      *time.Time       `json:"dueDate,omitempty"`
	DesiredTotal *decimal.Decimal `json:"desiredTotal,omitempty"`
}

// ToParams converts the request to service derivation parameters.
func (r *DeriveInvoiceRequest) ToParams() invoice.CreateFromOfferParams {
	return invoice.CreateFromOfferParams{
		Freight:      r.Freight,
		DueDate:      r.DueDate,
		DesiredTotal: r.DesiredTotal,
	}
}

// UpdateInvoiceRequest is the request body for updating an invoice.
type UpdateInvoiceRequest struct {
	Date       *time.Time       `json:"date,omitempty"`
	CustomerID *string          `json:"customerId,omitempty"`
	Currency   *string          `json:"currency,omitempty"`
	Freight    *decimal.Decimal `json:"freight,omitempty"`
	DueDate    *time.Time       `json:"dueDate,omitempty"`
	Comment    *string          `json:"comment,omitempty"`
	Lines      []LineRequest    `json:"lines,omitempty" binding:"omitempty,min=1,dive"`
	Version    int              `json:"version" binding:"required,min=1"`
}

// ApplyTo applies updates to an existing entity.
func (r *UpdateInvoiceRequest) ApplyTo(doc *invoice.Invoice, lines []documents.Line) {
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
	if r.Freight != nil {
		doc.Freight = *r.Freight
	}
	if r.DueDate != nil {
		doc.DueDate = r.DueDate
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

// InvoiceResponse is the response body for an invoice.
type InvoiceResponse struct {
	DocumentResponse
	CustomerID    string          `json:"customerId"`
	SourceOfferID *string         `json:"sourceOfferId,omitempty"`
	Currency      string          `json:"currency"`
	Status        invoice.Status  `json:"status"`
	Freight       decimal.Decimal `json:"freight"`
	ProductsTotal decimal.Decimal `json:"productsTotal"`
	CFRTotal      decimal.Decimal `json:"cfrTotal"`
	DueDate       *time.Time      `json:"dueDate,omitempty"`
	Lines         []LineResponse  `json:"lines"`
}

// FromInvoice creates response DTO from domain entity.
func FromInvoice(doc *invoice.Invoice) *InvoiceResponse {
	resp := &InvoiceResponse{
		DocumentResponse: FromDocument(doc.Document),
		CustomerID:       doc.CustomerID.String(),
		Currency:         doc.Currency,
		Status:           doc.Status,
		Freight:          doc.Freight,
		ProductsTotal:    doc.ProductsTotal,
		CFRTotal:         doc.CFRTotal,
		DueDate:          doc.DueDate,
		Lines:            FromLines(doc.Lines),
	}
	if doc.SourceOfferID != nil {
		s := doc.SourceOfferID.String()
		resp.SourceOfferID = &s
	}
	return resp
}
