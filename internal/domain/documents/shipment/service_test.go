package shipment

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yochirolee/comercial-sub000/internal/core/apperror"
	"github.com/yochirolee/comercial-sub000/internal/core/id"
	"github.com/yochirolee/comercial-sub000/internal/core/numerator"
	"github.com/yochirolee/comercial-sub000/internal/domain"
	"github.com/yochirolee/comercial-sub000/internal/domain/documents/invoice"
)

type nopTxManager struct{}

func (nopTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRepo struct {
	docs       map[id.ID]*Shipment
	containers map[id.ID][]Container
	events     map[id.ID][]Event
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		docs:       make(map[id.ID]*Shipment),
		containers: make(map[id.ID][]Container),
		events:     make(map[id.ID][]Event),
	}
}

func (r *fakeRepo) Create(ctx context.Context, doc *Shipment) error {
	cp := *doc
	r.docs[doc.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, docID id.ID) (*Shipment, error) {
	doc, ok := r.docs[docID]
	if !ok {
		return nil, apperror.NewNotFound("shipment", docID.String())
	}
	cp := *doc
	return &cp, nil
}

func (r *fakeRepo) GetByNumber(ctx context.Context, number string) (*Shipment, error) {
	for _, doc := range r.docs {
		if doc.Number == number {
			cp := *doc
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("shipment", number)
}

func (r *fakeRepo) Update(ctx context.Context, doc *Shipment) error {
	if _, ok := r.docs[doc.ID]; !ok {
		return apperror.NewNotFound("shipment", doc.ID.String())
	}
	cp := *doc
	r.docs[doc.ID] = &cp
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, docID id.ID) error {
	doc, ok := r.docs[docID]
	if !ok {
		return apperror.NewNotFound("shipment", docID.String())
	}
	doc.DeletionMark = true
	return nil
}

func (r *fakeRepo) GetContainers(ctx context.Context, docID id.ID) ([]Container, error) {
	return append([]Container(nil), r.containers[docID]...), nil
}

func (r *fakeRepo) SaveContainers(ctx context.Context, docID id.ID, containers []Container) error {
	r.containers[docID] = append([]Container(nil), containers...)
	return nil
}

func (r *fakeRepo) AddEvent(ctx context.Context, event Event) error {
	r.events[event.ShipmentID] = append(r.events[event.ShipmentID], event)
	return nil
}

func (r *fakeRepo) GetEvents(ctx context.Context, docID id.ID) ([]Event, error) {
	events := append([]Event(nil), r.events[docID]...)
	sort.Slice(events, func(i, j int) bool {
		return events[i].OccurredAt.Before(events[j].OccurredAt)
	})
	return events, nil
}

func (r *fakeRepo) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Shipment], error) {
	return domain.ListResult[*Shipment]{}, nil
}

func (r *fakeRepo) GetForUpdate(ctx context.Context, docID id.ID) (*Shipment, error) {
	return r.GetByID(ctx, docID)
}

type fakeInvoiceSource struct {
	invoices map[id.ID]*invoice.Invoice
}

func (s *fakeInvoiceSource) GetByID(ctx context.Context, docID id.ID) (*invoice.Invoice, error) {
	inv, ok := s.invoices[docID]
	if !ok {
		return nil, apperror.NewNotFound("invoice", docID.String())
	}
	return inv, nil
}

func newTestService(inv *invoice.Invoice) (*Service, *fakeRepo) {
	repo := newFakeRepo()
	source := &fakeInvoiceSource{invoices: map[id.ID]*invoice.Invoice{}}
	if inv != nil {
		source.invoices[inv.ID] = inv
	}
	return NewService(repo, source, numerator.NewMock(), nopTxManager{}), repo
}

func TestService_CreateForInvoice(t *testing.T) {
	inv := invoice.NewInvoice(id.New())
	inv.Status = invoice.StatusIssued

	svc, repo := newTestService(inv)

	doc, err := svc.CreateForInvoice(context.Background(), inv.ID)
	require.NoError(t, err)

	assert.Equal(t, inv.ID, doc.InvoiceID)
	assert.Equal(t, inv.CustomerID, doc.CustomerID)
	assert.Equal(t, StatusPlanned, doc.Status)
	assert.NotEmpty(t, doc.Number)

	_, err = repo.GetByID(context.Background(), doc.ID)
	require.NoError(t, err)
}

func TestService_CreateForCancelledInvoiceFails(t *testing.T) {
	inv := invoice.NewInvoice(id.New())
	inv.Status = invoice.StatusCancelled

	svc, _ := newTestService(inv)

	_, err := svc.CreateForInvoice(context.Background(), inv.ID)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "INVOICE_CANCELLED", appErr.Code)
}

func TestService_RecordEventAdvancesStatus(t *testing.T) {
	inv := invoice.NewInvoice(id.New())
	svc, repo := newTestService(inv)
	ctx := context.Background()

	doc, err := svc.CreateForInvoice(ctx, inv.ID)
	require.NoError(t, err)

	departed := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	_, err = svc.RecordEvent(ctx, doc.ID, EventDeparted, departed, nil, "vessel departed")
	require.NoError(t, err)

	stored, err := repo.GetByID(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusInTransit, stored.Status)

	arrived := departed.Add(14 * 24 * time.Hour)
	_, err = svc.RecordEvent(ctx, doc.ID, EventArrived, arrived, nil, "vessel arrived")
	require.NoError(t, err)

	stored, err = repo.GetByID(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusArrived, stored.Status)
}

func TestService_TimelineIsChronological(t *testing.T) {
	inv := invoice.NewInvoice(id.New())
	svc, _ := newTestService(inv)
	ctx := context.Background()

	doc, err := svc.CreateForInvoice(ctx, inv.ID)
	require.NoError(t, err)

	base := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	// Recorded out of order on purpose.
	_, err = svc.RecordEvent(ctx, doc.ID, EventArrived, base.Add(10*24*time.Hour), nil, "arrived")
	require.NoError(t, err)
	_, err = svc.RecordEvent(ctx, doc.ID, EventLoaded, base, nil, "loaded")
	require.NoError(t, err)

	timeline, err := svc.Timeline(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, timeline, 2)
	assert.Equal(t, EventLoaded, timeline[0].Type)
	assert.Equal(t, EventArrived, timeline[1].Type)
}

func TestService_RecordEventRejectsInvalidType(t *testing.T) {
	inv := invoice.NewInvoice(id.New())
	svc, _ := newTestService(inv)
	ctx := context.Background()

	doc, err := svc.CreateForInvoice(ctx, inv.ID)
	require.NoError(t, err)

	_, err = svc.RecordEvent(ctx, doc.ID, EventType("teleported"), time.Now(), nil, "")
	require.Error(t, err)
}
