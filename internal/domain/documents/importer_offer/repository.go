package importer_offer

import (
	"context"
	"time"

	"github.com/yochirolee/comercial-sub000/internal/core/id"
	"github.com/yochirolee/comercial-sub000/internal/domain"
	"github.com/yochirolee/comercial-sub000/internal/domain/documents"
)

// Repository defines operations for importer offer documents.
type Repository interface {
	Create(ctx context.Context, doc *ImporterOffer) error
	GetByID(ctx context.Context, docID id.ID) (*ImporterOffer, error)
	GetByNumber(ctx context.Context, number string) (*ImporterOffer, error)
	Update(ctx context.Context, doc *ImporterOffer) error
	Delete(ctx context.Context, docID id.ID) error

	GetLines(ctx context.Context, docID id.ID) ([]documents.Line, error)
	SaveLines(ctx context.Context, docID id.ID, lines []documents.Line) error

	List(ctx context.Context, filter ListFilter) (domain.ListResult[*ImporterOffer], error)

	// GetForUpdate retrieves the document with a row lock.
	GetForUpdate(ctx context.Context, docID id.ID) (*ImporterOffer, error)
}

// ListFilter for filtering importer offers.
type ListFilter struct {
	domain.ListFilter

	ImporterID    *id.ID
	SourceOfferID *id.ID
	Status        *Status
	DateFrom      *time.Time
	DateTo        *time.Time
}
