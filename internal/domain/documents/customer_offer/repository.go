package customer_offer

import (
	"context"
	"time"

	"github.com/yochirolee/comercial-sub000/internal/core/id"
	"github.com/yochirolee/comercial-sub000/internal/domain"
	"github.com/yochirolee/comercial-sub000/internal/domain/documents"
)

// Repository defines operations for customer offer documents.
type Repository interface {
	Create(ctx context.Context, doc *CustomerOffer) error
	GetByID(ctx context.Context, docID id.ID) (*CustomerOffer, error)
	GetByNumber(ctx context.Context, number string) (*CustomerOffer, error)
	Update(ctx context.Context, doc *CustomerOffer) error
	Delete(ctx context.Context, docID id.ID) error

	GetLines(ctx context.Context, docID id.ID) ([]documents.Line, error)
	SaveLines(ctx context.Context, docID id.ID, lines []documents.Line) error

	List(ctx context.Context, filter ListFilter) (domain.ListResult[*CustomerOffer], error)

	// GetForUpdate retrieves the document with a row lock, for
	// read-modify-write operations like price adjustment.
	GetForUpdate(ctx context.Context, docID id.ID) (*CustomerOffer, error)
}

// ListFilter for filtering customer offers.
type ListFilter struct {
	domain.ListFilter

	CustomerID *id.ID
	Status     *Status
	DateFrom   *time.Time
	DateTo     *time.Time
}
