// Package product provides the Product catalog.
// Products are the goods quoted on offers and billed on invoices.
package product

import (
	"context"
	"regexp"

	"github.com/shopspring/decimal"

	"github.com/yochirolee/comercial-sub000/internal/core/apperror"
	"github.com/yochirolee/comercial-sub000/internal/core/entity"
)

var hsCodeRE = regexp.MustCompile(`^\d{6,10}$`)

// PricingBasis defines which magnitude a unit price applies to.
type PricingBasis string

const (
	// PriceByUnit prices the nominal quantity (pieces, cases, pallets).
	PriceByUnit PricingBasis = "unit"

	// PriceByWeight prices the net weight in kilograms. Commodity goods
	// (frozen meat, grain) are quoted this way.
	PriceByWeight PricingBasis = "weight"
)

// Product represents a sellable good.
type Product struct {
	entity.Catalog

	// SKU is the internal stock keeping unit
	SKU *string `db:"sku" json:"sku,omitempty"`

	// Unit is the sales unit of measure (e.g. "case", "pallet", "kg")
	Unit string `db:"unit" json:"unit"`

	// PricingBasis selects unit-count or net-weight pricing
	PricingBasis PricingBasis `db:"pricing_basis" json:"pricingBasis"`

	// NetWeight is the net weight in kg per sales unit
	NetWeight decimal.Decimal `db:"net_weight" json:"netWeight"`

	// GrossWeight is the gross weight in kg per sales unit (for logistics)
	GrossWeight decimal.Decimal `db:"gross_weight" json:"grossWeight"`

	// HSCode is the harmonized system tariff code
	HSCode *string `db:"hs_code" json:"hsCode,omitempty"`

	// CountryOfOrigin is the country code (ISO 3166-1 alpha-2)
	CountryOfOrigin *string `db:"country_of_origin" json:"countryOfOrigin,omitempty"`

	// Description is a detailed description
	Description *string `db:"description" json:"description,omitempty"`
}

// NewProduct creates a new Product with required fields.
func NewProduct(code, name, unit string) *Product {
	return &Product{
		Catalog:      entity.NewCatalog(code, name),
		Unit:         unit,
		PricingBasis: PriceByUnit,
		NetWeight:    decimal.Zero,
		GrossWeight:  decimal.Zero,
	}
}

// Validate implements entity.Validatable interface.
func (p *Product) Validate(ctx context.Context) error {
	if err := p.Catalog.Validate(ctx); err != nil {
		return err
	}

	if !p.IsFolder && p.Unit == "" {
		return apperror.NewValidation("unit is required").
			WithDetail("field", "unit")
	}

	if !isValidPricingBasis(p.PricingBasis) {
		return apperror.NewValidation("invalid pricing basis").
			WithDetail("field", "pricingBasis").
			WithDetail("value", string(p.PricingBasis))
	}

	if p.NetWeight.IsNegative() {
		return apperror.NewValidation("net weight cannot be negative").
			WithDetail("field", "netWeight")
	}

	if p.GrossWeight.IsNegative() {
		return apperror.NewValidation("gross weight cannot be negative").
			WithDetail("field", "grossWeight")
	}

	// Weight-priced goods need a weight to derive line amounts from.
	if p.PricingBasis == PriceByWeight && !p.IsFolder && !p.NetWeight.IsPositive() {
		return apperror.NewValidation("weight-priced product requires a positive net weight").
			WithDetail("field", "netWeight")
	}

	if p.HSCode != nil && *p.HSCode != "" && !hsCodeRE.MatchString(*p.HSCode) {
		return apperror.NewValidation("invalid HS code format (must be 6-10 digits)").
			WithDetail("field", "hsCode")
	}

	return nil
}

// IsWeightPriced returns true if line amounts are quantity*netWeight*price.
func (p *Product) IsWeightPriced() bool {
	return p.PricingBasis == PriceByWeight
}

func isValidPricingBasis(b PricingBasis) bool {
	switch b {
	case PriceByUnit, PriceByWeight:
		return true
	}
	return false
}
