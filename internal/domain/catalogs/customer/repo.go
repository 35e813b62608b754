package customer

import (
	"context"

	"github.com/yochirolee/comercial-sub000/internal/domain"
)

// Repository defines the interface for Customer persistence.
type Repository interface {
	domain.CatalogRepository[*Customer]

	// FindByTaxID retrieves a customer by fiscal identification number.
	FindByTaxID(ctx context.Context, taxID string) (*Customer, error)
}
