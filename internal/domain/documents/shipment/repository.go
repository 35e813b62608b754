package shipment

import (
	"context"
	"time"

	"github.com/yochirolee/comercial-sub000/internal/core/id"
	"github.com/yochirolee/comercial-sub000/internal/domain"
)

// Repository defines operations for shipment documents.
type Repository interface {
	Create(ctx context.Context, doc *Shipment) error
	GetByID(ctx context.Context, docID id.ID) (*Shipment, error)
	GetByNumber(ctx context.Context, number string) (*Shipment, error)
	Update(ctx context.Context, doc *Shipment) error
	Delete(ctx context.Context, docID id.ID) error

	GetContainers(ctx context.Context, docID id.ID) ([]Container, error)
	SaveContainers(ctx context.Context, docID id.ID, containers []Container) error

	// AddEvent appends one event to the timeline. Events are immutable
	// once recorded.
	AddEvent(ctx context.Context, event Event) error

	// GetEvents returns the timeline in chronological order.
	GetEvents(ctx context.Context, docID id.ID) ([]Event, error)

	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Shipment], error)

	// GetForUpdate retrieves the document with a row lock.
	GetForUpdate(ctx context.Context, docID id.ID) (*Shipment, error)
}

// ListFilter for filtering shipments.
type ListFilter struct {
	domain.ListFilter

	InvoiceID  *id.ID
	CustomerID *id.ID
	Status     *Status
	DateFrom   *time.Time
	DateTo     *time.Time
}
