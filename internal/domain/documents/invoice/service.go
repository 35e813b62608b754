package invoice

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
	"github.com/yochirolee/comercial-sub000/internal/domain/documents/importer_offer"
	"github.com/yochirolee/comercial-sub000/pkg/logger"
)

// NumberPrefix is the numbering series for invoices.
const NumberPrefix = "INV"

// ImporterOfferSource loads the importer offer an invoice derives from.
type ImporterOfferSource interface {
	GetByID(ctx context.Context, docID id.ID) (*importer_offer.ImporterOffer, error)
}

// Service provides business operations for invoice documents.
type Service struct {
	repo      Repository
	source    ImporterOfferSource
	numerator numerator.Generator
	txManager tx.Manager
	hooks     *domain.HookRegistry[*Invoice]
}

// NewService creates a new invoice service.
func NewService(repo Repository, source ImporterOfferSource, gen numerator.Generator, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		source:    source,
		numerator: gen,
		txManager: txManager,
		hooks:     domain.NewHookRegistry[*Invoice](),
	}
}

// Hooks returns the hook registry for registering callbacks.
func (s *Service) Hooks() *domain.HookRegistry[*Invoice] {
	return s.hooks
}

// CreateFromOfferParams configures derivation from an importer offer.
type CreateFromOfferParams struct {
	// Freight amount for the CFR terms. When nil, the source offer's
	// freight is carried over.
	Freight *decimal.Decimal

	// DueDate is the payment due date
	DueDate *time.Time

	// DesiredTotal, when set, adjusts line prices so the CFR total lands
	// exactly on this amount
	DesiredTotal *decimal.Decimal
}

// CreateFromImporterOffer derives an invoice from an importer offer.
// The offer's current prices become the invoice's original prices.
// Insurance is dropped: the invoice is on CFR terms.
func (s *Service) CreateFromImporterOffer(ctx context.Context, sourceID id.ID, params CreateFromOfferParams) (*Invoice, error) {
	src, err := s.source.GetByID(ctx, sourceID)
	if err != nil {
		return nil, err
	}

	if src.Status == importer_offer.StatusDeclined {
		return nil, apperror.NewBusinessRule("SOURCE_OFFER_DECLINED",
			"cannot derive an invoice from a declined importer offer").
			WithDetail("sourceOfferId", sourceID.String())
	}
	if len(src.Lines) == 0 {
		return nil, apperror.NewNoPriceableItems()
	}

	doc := NewInvoice(src.ImporterID)
	doc.SourceOfferID = &src.ID
	doc.Currency = src.Currency
	doc.DueDate = params.DueDate
	if params.Freight != nil {
		doc.Freight = *params.Freight
	} else {
		doc.Freight = src.Freight
	}

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

// Create creates a new invoice.
func (s *Service) Create(ctx context.Context, doc *Invoice) error {
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

	logger.Info(ctx, "invoice created", "id", doc.ID, "number", doc.Number)
	return nil
}

// GetByID retrieves an invoice with lines.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*Invoice, error) {
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

// Update updates an invoice document.
func (s *Service) Update(ctx context.Context, doc *Invoice) error {
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

// AdjustPrices rescales line prices so the CFR total lands exactly on
// desiredTotal. Runs in one transaction with a row lock so concurrent
// adjustments serialize.
func (s *Service) AdjustPrices(ctx context.Context, docID id.ID, desiredTotal decimal.Decimal) (*Invoice, error) {
	var doc *Invoice

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

	logger.Info(ctx, "invoice prices adjusted",
		"id", doc.ID,
		"number", doc.Number,
		"cfrTotal", doc.CFRTotal)

	return doc, nil
}

// SetStatus transitions the invoice to a new status.
func (s *Service) SetStatus(ctx context.Context, docID id.ID, status Status) (*Invoice, error) {
	var doc *Invoice

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

// Delete soft-deletes an invoice.
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

// List retrieves invoices with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Invoice], error) {
	return s.repo.List(ctx, filter)
}
