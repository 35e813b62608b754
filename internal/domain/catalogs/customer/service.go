package customer

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

// Service provides business logic for the Customer catalog.
type Service struct {
	*domain.CatalogService[*Customer]
	repo      Repository
	numerator numerator.Generator
}

// NewService creates a new Customer service.
func NewService(repo Repository, txManager tx.Manager, gen numerator.Generator) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Customer]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "customer",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		numerator:      gen,
	}

	base.Hooks().On(domain.BeforeCreate, svc.prepareForCreate)
	base.Hooks().On(domain.BeforeUpdate, svc.checkTaxIDUnique)

	return svc
}

func (s *Service) prepareForCreate(ctx context.Context, item *Customer) error {
	if item.Code == "" {
		code, err := s.numerator.NextNumber(ctx, numerator.Config{Prefix: "CUS", Digits: 6}, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		item.Code = code
	}
	return s.checkTaxIDUnique(ctx, item)
}

func (s *Service) checkTaxIDUnique(ctx context.Context, item *Customer) error {
	if item.TaxID == nil || *item.TaxID == "" {
		return nil
	}
	if exists, _ := s.taxIDExists(ctx, *item.TaxID, item.ID); exists {
		return apperror.NewConflict("customer with this tax ID already exists").
			WithDetail("taxId", *item.TaxID)
	}
	return nil
}

// FindByTaxID retrieves a customer by fiscal identification number.
func (s *Service) FindByTaxID(ctx context.Context, taxID string) (*Customer, error) {
	return s.repo.FindByTaxID(ctx, taxID)
}

func (s *Service) taxIDExists(ctx context.Context, taxID string, excludeID id.ID) (bool, error) {
	existing, err := s.repo.FindByTaxID(ctx, taxID)
	if err != nil {
		return false, nil
	}
	return existing.ID != excludeID, nil
}
