package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/yochirolee/comercial-sub000/internal/core/id"
	"github.com/yochirolee/comercial-sub000/internal/domain"
	"github.com/yochirolee/comercial-sub000/internal/domain/documents/shipment"
	"github.com/yochirolee/comercial-sub000/internal/infrastructure/storage/postgres"
)

const (
	shipmentsTable          = "doc_shipments"
	shipmentContainersTable = "doc_shipment_containers"
	shipmentEventsTable     = "doc_shipment_events"
)

// Compile-time check that ShipmentRepo implements shipment.Repository.
var _ shipment.Repository = (*ShipmentRepo)(nil)

// ShipmentRepo implements shipment.Repository.
type ShipmentRepo struct {
	*BaseDocumentRepo[*shipment.Shipment]
}

// NewShipmentRepo creates a new shipment repository.
func NewShipmentRepo(txManager *postgres.TxManager) *ShipmentRepo {
	return &ShipmentRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*shipment.Shipment](
			txManager,
			shipmentsTable,
			postgres.ExtractDBColumns[shipment.Shipment](),
			func() *shipment.Shipment { return &shipment.Shipment{} },
		),
	}
}

// GetContainers retrieves containers for a shipment.
func (r *ShipmentRepo) GetContainers(ctx context.Context, docID id.ID) ([]shipment.Container, error) {
	q := r.Builder().
		Select("container_id", "number", "type", "seal_number").
		From(shipmentContainersTable).
		Where(squirrel.Eq{"document_id": docID}).
		OrderBy("number")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var containers []shipment.Container
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &containers, sql, args...); err != nil {
		return nil, fmt.Errorf("get containers: %w", err)
	}

	return containers, nil
}

// SaveContainers saves containers for a shipment (delete existing + insert new).
func (r *ShipmentRepo) SaveContainers(ctx context.Context, docID id.ID, containers []shipment.Container) error {
	querier := r.txManager.GetQuerier(ctx)

	deleteSQL := "DELETE FROM " + shipmentContainersTable + " WHERE document_id = $1"
	if _, err := querier.Exec(ctx, deleteSQL, docID); err != nil {
		return fmt.Errorf("delete existing containers: %w", err)
	}

	if len(containers) == 0 {
		return nil
	}

	q := r.Builder().
		Insert(shipmentContainersTable).
		Columns("container_id", "document_id", "number", "type", "seal_number")

	for _, c := range containers {
		q = q.Values(c.ContainerID, docID, c.Number, c.Type, c.SealNumber)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert containers: %w", err)
	}

	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert containers: %w", err)
	}

	return nil
}

// AddEvent appends one event to the timeline. Events are never updated
// or deleted once recorded.
func (r *ShipmentRepo) AddEvent(ctx context.Context, event shipment.Event) error {
	q := r.Builder().
		Insert(shipmentEventsTable).
		Columns("event_id", "shipment_id", "type", "occurred_at", "location", "description", "recorded_by").
		Values(event.EventID, event.ShipmentID, event.Type, event.OccurredAt,
			event.Location, event.Description, event.RecordedBy)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert event: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert event: %w", err)
	}

	return nil
}

// GetEvents returns the timeline in chronological order.
func (r *ShipmentRepo) GetEvents(ctx context.Context, docID id.ID) ([]shipment.Event, error) {
	q := r.Builder().
		Select("event_id", "shipment_id", "type", "occurred_at", "location", "description", "recorded_by").
		From(shipmentEventsTable).
		Where(squirrel.Eq{"shipment_id": docID}).
		OrderBy("occurred_at", "event_id")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var events []shipment.Event
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &events, sql, args...); err != nil {
		return nil, fmt.Errorf("get events: %w", err)
	}

	return events, nil
}

// List retrieves shipments with filtering.
func (r *ShipmentRepo) List(ctx context.Context, filter shipment.ListFilter) (domain.ListResult[*shipment.Shipment], error) {
	result := domain.ListResult[*shipment.Shipment]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.baseSelect()

	if !filter.IncludeDeleted {
		q = q.Where(squirrel.Eq{"deletion_mark": false})
	}

	if filter.InvoiceID != nil {
		q = q.Where(squirrel.Eq{"invoice_id": *filter.InvoiceID})
	}

	if filter.CustomerID != nil {
		q = q.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
	}

	if filter.Status != nil {
		q = q.Where(squirrel.Eq{"status": *filter.Status})
	}

	if filter.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"date": *filter.DateFrom})
	}

	if filter.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"date": *filter.DateTo})
	}

	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"number": searchPattern},
			squirrel.ILike{"bill_of_lading": searchPattern},
			squirrel.ILike{"vessel_name": searchPattern},
		})
	}

	countQ := r.Builder().Select("COUNT(*)").FromSelect(q, "sub")
	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	orderBy, err := r.parseOrderBy(filter.OrderBy)
	if err != nil {
		return result, err
	}
	q = q.OrderBy(orderBy)

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("select: %w", err)
	}

	return result, nil
}
