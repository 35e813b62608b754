package product

import (
	"context"
	"fmt"
	"time"

	"github.com/yochirolee/comercial-sub000/internal/core/apperror"
	"github.com/yochirolee/comercial-sub000/internal/core/id"
	"github.com/yochirolee/comercial-sub000/internal/core/numerator"
	"github.com/yochirolee/comercial-sub000/internal/core/tx"
	"github.com/yochirolee/comercial-sub000/internal/domain"
)

// Service provides business logic for the Product catalog.
// Uses composition with domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*Product]
	repo      Repository
	numerator numerator.Generator
}

// NewService creates a new Product service.
func NewService(repo Repository, txManager tx.Manager, gen numerator.Generator) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Product]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "product",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		numerator:      gen,
	}

	base.Hooks().On(domain.BeforeCreate, svc.prepareForCreate)
	base.Hooks().On(domain.BeforeUpdate, svc.checkSKUUnique)

	return svc
}

// prepareForCreate handles code generation and uniqueness checks.
func (s *Service) prepareForCreate(ctx context.Context, item *Product) error {
	if item.Code == "" {
		code, err := s.numerator.NextNumber(ctx, numerator.Config{Prefix: "PRD", Digits: 6}, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		item.Code = code
	}
	return s.checkSKUUnique(ctx, item)
}

func (s *Service) checkSKUUnique(ctx context.Context, item *Product) error {
	if item.SKU == nil || *item.SKU == "" {
		return nil
	}
	if exists, _ := s.skuExists(ctx, *item.SKU, item.ID); exists {
		return apperror.NewConflict("product with this SKU already exists").
			WithDetail("sku", *item.SKU)
	}
	return nil
}

// FindBySKU retrieves a product by SKU.
func (s *Service) FindBySKU(ctx context.Context, sku string) (*Product, error) {
	return s.repo.FindBySKU(ctx, sku)
}

func (s *Service) skuExists(ctx context.Context, sku string, excludeID id.ID) (bool, error) {
	existing, err := s.repo.FindBySKU(ctx, sku)
	if err != nil {
		return false, nil
	}
	return existing.ID != excludeID, nil
}
