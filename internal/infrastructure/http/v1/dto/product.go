package dto

import (
	"github.com/shopspring/decimal"

	"github.com/yochirolee/comercial-sub000/internal/core/entity"
	"github.com/yochirolee/comercial-sub000/internal/domain/catalogs/product"
)

// --- Request DTOs ---

// CreateProductRequest is the request body for creating a product.
type CreateProductRequest struct {
	Code            string               `json:"code"`
	Name            string               `json:"name" binding:"required"`
	SKU             *string              `json:"sku"`
	Unit            string               `json:"unit"`
	PricingBasis    product.PricingBasis `json:"pricingBasis"`
	NetWeight       decimal.Decimal      `json:"netWeight"`
	GrossWeight     decimal.Decimal      `json:"grossWeight"`
	HSCode          *string              `json:"hsCode"`
	CountryOfOrigin *string              `json:"countryOfOrigin"`
	Description     *string              `json:"description"`
	ParentID        *string              `json:"parentId"`
	IsFolder        bool                 `json:"isFolder"`
	Attributes      entity.Attributes    `json:"attributes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateProductRequest) ToEntity() *product.Product {
	p := product.NewProduct(r.Code, r.Name, r.Unit)
	if r.PricingBasis != "" {
		p.PricingBasis = r.PricingBasis
	}
	p.SKU = r.SKU
	p.NetWeight = r.NetWeight
	p.GrossWeight = r.GrossWeight
	p.HSCode = r.HSCode
	p.CountryOfOrigin = r.CountryOfOrigin
	p.Description = r.Description
	p.ParentID = r.ParentID
	p.IsFolder = r.IsFolder
	p.Attributes = r.Attributes
	return p
}

// UpdateProductRequest is the request body for updating a product.
type UpdateProductRequest struct {
	Code            string               `json:"code"`
	Name            string               `json:"name" binding:"required"`
	SKU             *string              `json:"sku"`
	Unit            string               `json:"unit"`
	PricingBasis    product.PricingBasis `json:"pricingBasis" binding:"required"`
	NetWeight       decimal.Decimal      `json:"netWeight"`
	GrossWeight     decimal.Decimal      `json:"grossWeight"`
	HSCode          *string              `json:"hsCode"`
	CountryOfOrigin *string              `json:"countryOfOrigin"`
	Description     *string              `json:"description"`
	ParentID        *string              `json:"parentId"`
	IsFolder        bool                 `json:"isFolder"`
	Attributes      entity.Attributes    `json:"attributes"`
	Version         int                  `json:"version" binding:"required,min=1"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateProductRequest) ApplyTo(p *product.Product) {
	p.Code = r.Code
	p.Name = r.Name
	p.SKU = r.SKU
	p.Unit = r.Unit
	p.PricingBasis = r.PricingBasis
	p.NetWeight = r.NetWeight
	p.GrossWeight = r.GrossWeight
	p.HSCode = r.HSCode
	p.CountryOfOrigin = r.CountryOfOrigin
	p.Description = r.Description
	p.ParentID = r.ParentID
	p.IsFolder = r.IsFolder
	p.Attributes = r.Attributes
	p.Version = r.Version
}

// --- Response DTOs ---

// ProductResponse is the response body for a product.
type ProductResponse struct {
	CatalogResponse
	SKU             *string              `json:"sku,omitempty"`
	Unit            string               `json:"unit"`
	PricingBasis    product.PricingBasis `json:"pricingBasis"`
	NetWeight       decimal.Decimal      `json:"netWeight"`
	GrossWeight     decimal.Decimal      `json:"grossWeight"`
	HSCode          *string              `json:"hsCode,omitempty"`
	CountryOfOrigin *string              `json:"countryOfOrigin,omitempty"`
	Description     *string              `json:"description,omitempty"`
}

// FromProduct creates response DTO from domain entity.
func FromProduct(p *product.Product) *ProductResponse {
	return &ProductResponse{
		CatalogResponse: FromCatalog(p.Catalog),
		SKU:             p.SKU,
		Unit:            p.Unit,
		PricingBasis:    p.PricingBasis,
		NetWeight:       p.NetWeight,
		GrossWeight:     p.GrossWeight,
		HSCode:          p.HSCode,
		CountryOfOrigin: p.CountryOfOrigin,
		Description:     p.Description,
	}
}
