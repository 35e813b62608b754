package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/yochirolee/comercial-sub000/internal/core/id"
	"github.com/yochirolee/comercial-sub000/internal/domain/documents"
	"github.com/yochirolee/comercial-sub000/internal/domain/documents/importer_offer"
)

// --- Request DTOs ---

// CreateImporterOfferRequest is the request body for creating an importer
// offer from scratch.
type CreateImporterOfferRequest struct {
	Number           string          `json:"number,omitempty"`
	Date             *time.Time      `json:"date,omitempty"`
	ImporterID       string          `json:"importerId" binding:"required,uuid"`
	Currency         string          `json:"currency,omitempty"`
	Freight          decimal.Decimal `json:"freight"`
	Insurance        decimal.Decimal `json:"insurance"`
	InsuranceEnabled bool            `json:"insuranceEnabled"`
	Comment          string          `json:"comment,omitempty"`
	Lines            []LineRequest   `json:"lines" binding:"required,min=1,dive"`
}

// ToEntity converts the request to a domain entity. Lines are resolved
// against the product catalog by the handler and passed in ready-made.
func (r *CreateImporterOfferRequest) ToEntity(lines []documents.Line) *importer_offer.ImporterOffer {
	importerID, _ := id.Parse(r.ImporterID)

	doc := importer_offer.NewImporterOffer(importerID)
	doc.Number = r.Number
	if r.Date != nil {
		doc.Date = *r.Date
	}
	if r.Currency != "" {
		doc.Currency = r.Currency
	}
	doc.Freight = r.Freight
	doc.Insurance = r.Insurance
	doc.InsuranceEnabled = r.InsuranceEnabled
	doc.Comment = r.Comment
	doc.Lines = lines
	doc.RecalculateTotals()
	return doc
}

// DeriveImporterOfferRequest is the request body for deriving an importer
// offer from a customer offer.
type DeriveImporterOfferRequest struct {
	ImporterID       string           `json:"importerId" binding:"required,uuid"`
	Freight          decimal.Decimal  `json:"freight"`
	Insurance        decimal.Decimal  `json:"insurance"`
	InsuranceEnabled bool             `json:"insuranceEnabled"`
	DesiredTotal     *decimal.Decimal `json:"desiredTotal,omitempty"`
}

// ToParams converts the request to service derivation parameters.
func (r *DeriveImporterOfferRequest) ToParams() importer_offer.CreateFromOfferParams {
	importerID, _ := id.Parse(r.ImporterID)
	return importer_offer.CreateFromOfferParams{
		ImporterID:       importerID,
		Freight:          r.Freight,
		Insurance:        r.Insurance,
		InsuranceEnabled: r.InsuranceEnabled,
		DesiredTotal:     r.DesiredTotal,
	}
}

// UpdateImporterOfferRequest is the request body for updating an importer offer.
type UpdateImporterOfferRequest struct {
	Date             *time.Time       `json:"date,omitempty"`
	ImporterID       *string          `json:"importerId,omitempty"`
	Currency         *string          `json:"currency,omitempty"`
	Freight          *decimal.Decimal `json:"freight,omitempty"`
	Insurance        *decimal.Decimal `json:"insurance,omitempty"`
	InsuranceEnabled *bool            `json:"insuranceEnabled,omitempty"`
	Comment          *string          `json:"comment,omitempty"`
	Lines            []LineRequest    `json:"lines,omitempty" binding:"omitempty,min=1,dive"`
	Version          int              `json:"version" binding:"required,min=1"`
}

// ApplyTo applies updates to an existing entity.
func (r *UpdateImporterOfferRequest) ApplyTo(doc *importer_offer.ImporterOffer, lines []documents.Line) {
	if r.Date != nil {
		doc.Date = *r.Date
	}
	if r.ImporterID != nil {
		importerID, _ := id.Parse(*r.ImporterID)
		doc.ImporterID = importerID
	}
	if r.Currency != nil {
		doc.Currency = *r.Currency
	}
	if r.Freight != nil {
		doc.Freight = *r.Freight
	}
	if r.Insurance != nil {
		doc.Insurance = *r.Insurance
	}
	if r.InsuranceEnabled != nil {
		doc.InsuranceEnabled = *r.InsuranceEnabled
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

// ImporterOfferResponse is the response body for an importer offer.
type ImporterOfferResponse struct {
	DocumentResponse
	ImporterID       string                `json:"importerId"`
	SourceOfferID    *string               `json:"sourceOfferId,omitempty"`
	Currency         string                `json:"currency"`
	Status           importer_offer.Status `json:"status"`
	Freight          decimal.Decimal       `json:"freight"`
	Insurance        decimal.Decimal       `json:"insurance"`
	InsuranceEnabled bool                  `json:"insuranceEnabled"`
	ProductsTotal    decimal.Decimal       `json:"productsTotal"`
	CIFTotal         decimal.Decimal       `json:"cifTotal"`
	Lines            []LineResponse        `json:"lines"`
}

// FromImporterOffer creates response DTO from domain entity.
func FromImporterOffer(doc *importer_offer.ImporterOffer) *ImporterOfferResponse {
	resp := &ImporterOfferResponse{
		DocumentResponse: FromDocument(doc.Document),
		ImporterID:       doc.ImporterID.String(),
		Currency:         doc.Currency,
		Status:           doc.Status,
		Freight:          doc.Freight,
		Insurance:        doc.Insurance,
		InsuranceEnabled: doc.InsuranceEnabled,
		ProductsTotal:    doc.ProductsTotal,
		CIFTotal:         doc.CIFTotal,
		Lines:            FromLines(doc.Lines),
	}
	if doc.SourceOfferID != nil {
		s := doc.SourceOfferID.String()
		resp.SourceOfferID = &s
	}
	return resp
}
