package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/yochirolee/comercial-sub000/internal/core/id"
	"github.com/yochirolee/comercial-sub000/internal/domain"
	"github.com/yochirolee/comercial-sub000/internal/domain/documents"
	"github.com/yochirolee/comercial-sub000/internal/domain/documents/customer_offer"
	"github.com/yochirolee/comercial-sub000/internal/infrastructure/storage/postgres"
)

const (
	customerOffersTable     = "doc_customer_offers"
	customerOfferLinesTable = "doc_customer_offer_lines"
)

// Compile-time check that CustomerOfferRepo implements customer_offer.Repository.
var _ customer_offer.Repository = (*CustomerOfferRepo)(nil)

// CustomerOfferRepo implements customer_offer.Repository.
type CustomerOfferRepo struct {
	*BaseDocumentRepo[*customer_offer.CustomerOffer]
}

// NewCustomerOfferRepo creates a new customer offer repository.
func NewCustomerOfferRepo(txManager *postgres.TxManager) *CustomerOfferRepo {
	return &CustomerOfferRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*customer_offer.CustomerOffer](
			txManager,
			customerOffersTable,
			postgres.ExtractDBColumns[customer_offer.CustomerOffer](),
			func() *customer_offer.CustomerOffer { return &customer_offer.CustomerOffer{} },
		),
	}
}

// GetLines retrieves lines for a customer offer.
func (r *CustomerOfferRepo) GetLines(ctx context.Context, docID id.ID) ([]documents.Line, error) {
	return getLines(ctx, r.txManager.GetQuerier(ctx), customerOfferLinesTable, docID)
}

// SaveLines saves lines for a customer offer (delete existing + insert new).
func (r *CustomerOfferRepo) SaveLines(ctx context.Context, docID id.ID, lines []documents.Line) error {
	return saveLines(ctx, r.txManager.GetQuerier(ctx), customerOfferLinesTable, docID, lines)
}

// List retrieves customer offers with filtering.
func (r *CustomerOfferRepo) List(ctx context.Context, filter customer_offer.ListFilter) (domain.ListResult[*customer_offer.CustomerOffer], error) {
	result := domain.ListResult[*customer_offer.CustomerOffer]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.baseSelect()

	if !filter.IncludeDeleted {
		q = q.Where(squirrel.Eq{"deletion_mark": false})
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
		q = q.Where(squirrel.ILike{"number": "%" + filter.Search + "%"})
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
