package dto

import (
	"github.com/shopspring/decimal"

	"github.com/yochirolee/comercial-sub000/internal/domain/documents"
)

// LineRequest represents a priced line in create/update requests.
// Prices are quoted per pricing unit: per sales unit for unit-priced
// goods, per kg of net weight for weight-priced goods.
type LineRequest struct {
	ProductID string          `json:"productId" binding:"required,uuid"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	Price     decimal.Decimal `json:"price" binding:"required"`
}

// LineResponse represents a priced line in API responses.
type LineResponse struct {
	LineID        string          `json:"lineId"`
	LineNo        int             `json:"lineNo"`
	ProductID     string          `json:"productId"`
	Description   string          `json:"description"`
	Unit          string          `json:"unit"`
	Quantity      decimal.Decimal `json:"quantity"`
	NetWeight     decimal.Decimal `json:"netWeight"`
	WeightPriced  bool            `json:"weightPriced"`
	OriginalPrice decimal.Decimal `json:"originalPrice"`
	Price         decimal.Decimal `json:"price"`
	Subtotal      decimal.Decimal `json:"subtotal"`
}

// FromLine creates response DTO from a domain line.
func FromLine(l documents.Line) LineResponse {
	return LineResponse{
		LineID:        l.LineID.String(),
		LineNo:        l.LineNo,
		ProductID:     l.ProductID.String(),
		Description:   l.Description,
		Unit:          l.Unit,
		Quantity:      l.Quantity,
		NetWeight:     l.NetWeight,
		WeightPriced:  l.WeightPriced,
		OriginalPrice: l.OriginalPrice,
		Price:         l.Price,
		Subtotal:      l.Subtotal,
	}
}

// FromLines maps domain lines to response DTOs.
func FromLines(lines []documents.Line) []LineResponse {
	out := make([]LineResponse, len(lines))
	for i, l := range lines {
		out[i] = FromLine(l)
	}
	return out
}
