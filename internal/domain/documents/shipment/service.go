package shipment

import (
	"context"
	"fmt"
	"time"

	"github.com/yochirolee/comercial-sub000/internal/core/apperror"
	appctx "github.com/yochirolee/comercial-sub000/internal/core/context"
	"github.com/yochirolee/comercial-sub000/internal/core/id"
	"github.com/yochirolee/comercial-sub000/internal/core/numerator"
	"github.com/yochirolee/comercial-sub000/internal/core/tx"
	"github.com/yochirolee/comercial-sub000/internal/domain"
	"github.com/yochirolee/comercial-sub000/internal/domain/documents/invoice"
	"github.com/yochirolee/comercial-sub000/pkg/logger"
)

// NumberPrefix is the numbering series for shipments.
const NumberPrefix = "SHP"

// InvoiceSource loads the invoice a shipment executes.
type InvoiceSource interface {
	GetByID(ctx context.Context, docID id.ID) (*invoice.Invoice, error)
}

// Service provides business operations for shipment documents.
type Service struct {
	repo      Repository
	source    InvoiceSource
	numerator numerator.Generator
	txManager tx.Manager
	hooks     *domain.HookRegistry[*Shipment]
}

// NewService creates a new shipment service.
func NewService(repo Repository, source InvoiceSource, gen numerator.Generator, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		source:    source,
		numerator: gen,
		txManager: txManager,
		hooks:     domain.NewHookRegistry[*Shipment](),
	}
}

// Hooks returns the hook registry for registering callbacks.
func (s *Service) Hooks() *domain.HookRegistry[*Shipment] {
	return s.hooks
}

// CreateForInvoice opens a shipment executing the given invoice. The
// invoice must not be cancelled.
func (s *Service) CreateForInvoice(ctx context.Context, invoiceID id.ID) (*Shipment, error) {
	inv, err := s.source.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	if inv.Status == invoice.StatusCancelled {
		return nil, apperror.NewBusinessRule("INVOICE_CANCELLED",
			"cannot open a shipment for a cancelled invoice").
			WithDetail("invoiceId", invoiceID.String())
	}

	doc := NewShipment(inv.ID, inv.CustomerID)
	if err := s.Create(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Create creates a new shipment.
func (s *Service) Create(ctx context.Context, doc *Shipment) error {
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
		if err := s.repo.SaveContainers(ctx, doc.ID, doc.Containers); err != nil {
			return fmt.Errorf("save containers: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.hooks.RunAfterCreate(ctx, doc); err != nil {
		logger.Warn(ctx, "after-create hook failed", "error", err)
	}

	logger.Info(ctx, "shipment created", "id", doc.ID, "number", doc.Number)
	return nil
}

// GetByID retrieves a shipment with containers.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*Shipment, error) {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	containers, err := s.repo.GetContainers(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("get containers: %w", err)
	}
	doc.Containers = containers

	return doc, nil
}

// Update updates a shipment document.
func (s *Service) Update(ctx context.Context, doc *Shipment) error {
	if err := s.hooks.RunBeforeUpdate(ctx, doc); err != nil {
		return err
	}

	if err := doc.CanModify(); err != nil {
		return err
	}

	if err := doc.Validate(ctx); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, doc); err != nil {
			return fmt.Errorf("update document: %w", err)
		}
		if err := s.repo.SaveContainers(ctx, doc.ID, doc.Containers); err != nil {
			return fmt.Errorf("save containers: %w", err)
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

// RecordEvent appends an event to the shipment timeline and moves the
// shipment status forward when the event implies one.
func (s *Service) RecordEvent(ctx context.Context, docID id.ID, eventType EventType, occurredAt time.Time, location *string, description string) (*Event, error) {
	if !isValidEventType(eventType) {
		return nil, apperror.NewValidation("invalid event type").
			WithDetail("field", "type").
			WithDetail("value", string(eventType))
	}
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	var event Event

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		doc, err := s.repo.GetForUpdate(ctx, docID)
		if err != nil {
			return err
		}

		if err := doc.CanModify(); err != nil {
			return err
		}

		event = doc.NewEvent(eventType, occurredAt, description)
		event.Location = location
		if userID := appctx.GetUserID(ctx); userID != "" {
			event.RecordedBy = userID
		}

		if err := s.repo.AddEvent(ctx, event); err != nil {
			return fmt.Errorf("add event: %w", err)
		}

		if next, ok := statusForEvent(eventType); ok && next != doc.Status {
			doc.Status = next
			if err := s.repo.Update(ctx, doc); err != nil {
				return fmt.Errorf("update document: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "shipment event recorded",
		"shipmentId", docID,
		"type", eventType,
		"occurredAt", occurredAt)

	return &event, nil
}

// Timeline returns the shipment events in chronological order.
func (s *Service) Timeline(ctx context.Context, docID id.ID) ([]Event, error) {
	if _, err := s.repo.GetByID(ctx, docID); err != nil {
		return nil, err
	}
	return s.repo.GetEvents(ctx, docID)
}

// SetStatus transitions the shipment to a new status.
func (s *Service) SetStatus(ctx context.Context, docID id.ID, status Status) (*Shipment, error) {
	var doc *Shipment

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

// Delete soft-deletes a shipment.
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

// List retrieves shipments with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Shipment], error) {
	return s.repo.List(ctx, filter)
}

// statusForEvent maps milestone events onto shipment statuses.
func statusForEvent(t EventType) (Status, bool) {
	switch t {
	case EventDeparted:
		return StatusInTransit, true
	case EventArrived:
		return StatusArrived, true
	case EventDelivered:
		return StatusDelivered, true
	}
	return "", false
}
