package customer_offer

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yochirolee/comercial-sub000/internal/core/apperror"
	"github.com/yochirolee/comercial-sub000/internal/core/id"
	"github.com/yochirolee/comercial-sub000/internal/core/numerator"
	"github.com/yochirolee/comercial-sub000/internal/core/tx"
	"github.com/yochirolee/comercial-sub000/internal/domain"
	"github.com/yochirolee/comercial-sub000/pkg/logger"
)

// NumberPrefix is the numbering series for customer offers.
const NumberPrefix = "OFC"

// Service provides business operations for customer offer documents.
type Service struct {
	repo      Repository
	numerator numerator.Generator
	txManager tx.Manager
	hooks     *domain.HookRegistry[*CustomerOffer]
}

// NewService creates a new customer offer service.
func NewService(repo Repository, gen numerator.Generator, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		numerator: gen,
		txManager: txManager,
		hooks:     domain.NewHookRegistry[*CustomerOffer](),
	}
}

// Hooks returns the hook registry for registering callbacks.
func (s *Service) Hooks() *domain.HookRegistry[*CustomerOffer] {
	return s.hooks
}

// Create creates a new customer offer.
func (s *Service) Create(ctx context.Context, doc *CustomerOffer) error {
	if err := s.hooks.RunBeforeCreate(ctx, doc); err != nil {
		return err
	}

	if err := doc.Validate(ctx); err != nil {
		return err
	}

	if doc.Number == "" {
		number, err := s.numerator.NextNumber(ctx, numerator.DefaultConfig(NumberPrefix), time.Now())
		if err != nil {
			return fmt.Errorf("generate number: %w", err)
		}
		doc.Number = number
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, doc); err != nil {
			return fmt.Errorf("create document: %w", err)
		}
		if err := s.repo.SaveLines(ctx, doc.ID, doc.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.hooks.RunAfterCreate(ctx, doc); err != nil {
		logger.Warn(ctx, "after-create hook failed", "error", err)
	}

	logger.Info(ctx, "customer offer created", "id", doc.ID, "number", doc.Number)
	return nil
}

// GetByID retrieves a customer offer with lines.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*CustomerOffer, error) {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	lines, err := s.repo.GetLines(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	doc.Lines = lines

	return doc, nil
}

// Update updates a customer offer document.
func (s *Service) Update(ctx context.Context, doc *CustomerOffer) error {
	if err := s.hooks.RunBeforeUpdate(ctx, doc); err != nil {
		return err
	}

	if err := doc.CanModify(); err != nil {
		return err
	}

	doc.RecalculateTotals()
	if err := doc.Validate(ctx); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, doc); err != nil {
			return fmt.Errorf("update document: %w", err)
		}
		if err := s.repo.SaveLines(ctx, doc.ID, doc.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.hooks.RunAfterUpdate(ctx, doc); err != nil {
		logger.Warn(ctx, "after-update hook failed", "error", err)
	}

	return nil
}

// AdjustPrices rescales line prices so the offer totals exactly
// desiredTotal. The fetch-reconcile-persist cycle runs inside one
// transaction with a row lock, so concurrent adjustments serialize and
// the document is never left partially adjusted.
func (s *Service) AdjustPrices(ctx context.Context, docID id.ID, desiredTotal decimal.Decimal) (*CustomerOffer, error) {
	var doc *CustomerOffer

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		d, err := s.repo.GetForUpdate(ctx, docID)
		if err != nil {
			return err
		}

		if err := d.CanModify(); err != nil {
			return err
		}

		lines, err := s.repo.GetLines(ctx, docID)
		if err != nil {
			return fmt.Errorf("get lines: %w", err)
		}
		d.Lines = lines

		if err := d.AdjustToTotal(desiredTotal); err != nil {
			return err
		}

		if err := s.repo.Update(ctx, d); err != nil {
			return fmt.Errorf("update document: %w", err)
		}
		if err := s.repo.SaveLines(ctx, d.ID, d.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}

		doc = d
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "customer offer prices adjusted",
		"id", doc.ID,
		"number", doc.Number,
		"total", doc.ProductsTotal)

	return doc, nil
}

// SetStatus transitions the offer to a new status.
func (s *Service) SetStatus(ctx context.Context, docID id.ID, status Status) (*CustomerOffer, error) {
	var doc *CustomerOffer

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		d, err := s.repo.GetForUpdate(ctx, docID)
		if err != nil {
			return err
		}

		if !isValidStatus(status) {
			return apperror.NewValidation("invalid status").
				WithDetail("status", string(status))
		}
		if err := d.CanModify(); err != nil {
			return err
		}

		d.Status = status
		if err := s.repo.Update(ctx, d); err != nil {
			return fmt.Errorf("update document: %w", err)
		}

		doc = d
		return nil
	})
	if err != nil {
		return nil, err
	}

	return doc, nil
}

// Delete soft-deletes a customer offer.
func (s *Service) Delete(ctx context.Context, docID id.ID) error {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return err
	}

	if err := doc.CanModify(); err != nil {
		return err
	}

	return s.repo.Delete(ctx, docID)
}

// List retrieves customer offers with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*CustomerOffer], error) {
	return s.repo.List(ctx, filter)
}
