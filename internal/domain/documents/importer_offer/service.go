package importer_offer

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
	"github.com/yochirolee/comercial-sub000/internal/domain/documents"
	"github.com/yochirolee/comercial-sub000/internal/domain/documents/customer_offer"
	"github.com/yochirolee/comercial-sub000/pkg/logger"
)

// NumberPrefix is the numbering series for importer offers.
const NumberPrefix = "OFI"

// CustomerOfferSource loads the customer offer an importer offer derives from.
type CustomerOfferSource interface {
	GetByID(ctx context.Context, docID id.ID) (*customer_offer.CustomerOffer, error)
}

// Service provides business operations for importer offer documents.
type Service struct {
	repo      Repository
	source    CustomerOfferSource
	numerator numerator.Generator
	txManager tx.Manager
	hooks     *domain.HookRegistry[*ImporterOffer]
}

// NewService creates a new importer offer service.
func NewService(repo Repository, source CustomerOfferSource, gen numerator.Generator, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		source:    source,
		numerator: gen,
		txManager: txManager,
		hooks:     domain.NewHookRegistry[*ImporterOffer](),
	}
}

// Hooks returns the hook registry for registering callbacks.
func (s *Service) Hooks() *domain.HookRegistry[*ImporterOffer] {
	return s.hooks
}

// CreateFromOfferParams configures derivation from a customer offer.
type CreateFromOfferParams struct {
	// ImporterID is the importing entity the offer is addressed to
	ImporterID id.ID

	// Freight amount for the CIF terms
	Freight decimal.Decimal

	// Insurance amount; counted only when enabled
	Insurance        decimal.Decimal
	InsuranceEnabled bool

	// DesiredTotal, when set, adjusts line prices so the CIF total lands
	// exactly on this amount
	DesiredTotal *decimal.Decimal
}

// CreateFromCustomerOffer derives an importer offer from a customer offer.
// The source's current prices become the new original prices, so later
// adjustments on the importer offer scale from what the customer accepted.
func (s *Service) CreateFromCustomerOffer(ctx context.Context, sourceID id.ID, params CreateFromOfferParams) (*ImporterOffer, error) {
	src, err := s.source.GetByID(ctx, sourceID)
	if err != nil {
		return nil, err
	}

	if src.Status == customer_offer.StatusDeclined {
		return nil, apperror.NewBusinessRule("SOURCE_OFFER_DECLINED",
			"cannot derive an importer offer from a declined customer offer").
			WithDetail("sourceOfferId", sourceID.String())
	}
	if len(src.Lines) == 0 {
		return nil, apperror.NewNoPriceableItems()
	}

	doc := NewImporterOffer(params.ImporterID)
	doc.SourceOfferID = &src.ID
	doc.Currency = src.Currency
	doc.Freight = params.Freight
	doc.Insurance = params.Insurance
	doc.InsuranceEnabled = params.InsuranceEnabled

	doc.Lines = make([]documents.Line, len(src.Lines))
	for i, l := range src.Lines {
		nl := l
		nl.LineID = id.New()
		nl.OriginalPrice = l.Price
		doc.Lines[i] = nl
	}
	doc.RecalculateTotals()

	if params.DesiredTotal != nil {
		if err := doc.AdjustToTotal(*params.DesiredTotal); err != nil {
			return nil, err
		}
	}

	if err := s.Create(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Create creates a new importer offer.
func (s *Service) Create(ctx context.Context, doc *ImporterOffer) error {
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

	logger.Info(ctx, "importer offer created", "id", doc.ID, "number", doc.Number)
	return nil
}

// GetByID retrieves an importer offer with lines.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*ImporterOffer, error) {
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

// Update updates an importer offer document.
func (s *Service) Update(ctx context.Context, doc *ImporterOffer) error {
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

// AdjustPrices rescales line prices so the CIF total lands exactly on
// desiredTotal. Runs in one transaction with a row lock so concurrent
// adjustments serialize.
func (s *Service) AdjustPrices(ctx context.Context, docID id.ID, desiredTotal decimal.Decimal) (*ImporterOffer, error) {
	var doc *ImporterOffer

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

	logger.Info(ctx, "importer offer prices adjusted",
		"id", doc.ID,
		"number", doc.Number,
		"cifTotal", doc.CIFTotal)

	return doc, nil
}

// SetStatus transitions the offer to a new status.
func (s *Service) SetStatus(ctx context.Context, docID id.ID, status Status) (*ImporterOffer, error) {
	var doc *ImporterOffer

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

// Delete soft-deletes an importer offer.
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

// List retrieves importer offers with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*ImporterOffer], error) {
	return s.repo.List(ctx, filter)
}
