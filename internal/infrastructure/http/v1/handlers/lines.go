package handlers

import (
	"context"

	"github.com/yochirolee/comercial-sub000/internal/core/apperror"
	"github.com/yochirolee/comercial-sub000/internal/core/id"
	"github.com/yochirolee/comercial-sub000/internal/domain/catalogs/product"
	"github.com/yochirolee/comercial-sub000/internal/domain/documents"
	"github.com/yochirolee/comercial-sub000/internal/infrastructure/http/v1/dto"
)

// ProductSource loads products referenced by request lines.
type ProductSource interface {
	GetByID(ctx context.Context, entityID id.ID) (*product.Product, error)
}

// buildLines resolves request lines against the product catalog. Line
// descriptions, units and weights are taken from the product card, so
// clients only send product, quantity and price.
func buildLines(ctx context.Context, products ProductSource, reqs []dto.LineRequest) ([]documents.Line, error) {
	lines := make([]documents.Line, 0, len(reqs))
	for i, req := range reqs {
		productID, err := id.Parse(req.ProductID)
		if err != nil {
			return nil, apperror.NewValidation("invalid product id").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}

		p, err := products.GetByID(ctx, productID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return nil, apperror.NewValidation("unknown product").
					WithDetail("field", "lines").
					WithDetail("lineNo", i+1).
					WithDetail("productId", req.ProductID)
			}
			return nil, err
		}

		lines = append(lines, documents.NewLine(i+1, p, req.Quantity, req.Price))
	}
	return lines, nil
}
