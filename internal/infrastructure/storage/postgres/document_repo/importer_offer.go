package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/yochirolee/comercial-sub000/internal/core/id"
	"github.com/yochirolee/comercial-sub000/internal/domain"
	"github.com/yochirolee/comercial-sub000/internal/domain/documents"
	"github.com/yochirolee/comercial-sub000/internal/domain/documents/importer_offer"
	"github.com/yochirolee/comercial-sub000/internal/infrastructure/storage/postgres"
)

const (
	importerOffersTable     = "doc_importer_offers"
	importerOfferLinesTable = "doc_importer_offer_lines"
)

// Compile-time check that ImporterOfferRepo implements importer_offer.Repository.
var _ importer_offer.Repository = (*ImporterOfferRepo)(nil)

// ImporterOfferRepo implements importer_offer.Repository.
type ImporterOfferRepo struct {
	*BaseDocumentRepo[*importer_offer.ImporterOffer]
}

// NewImporterOfferRepo creates a new importer offer repository.
func NewImporterOfferRepo(txManager *postgres.TxManager) *ImporterOfferRepo {
	return &ImporterOfferRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*importer_offer.ImporterOffer](
			txManager,
			importerOffersTable,
			postgres.ExtractDBColumns[importer_offer.ImporterOffer](),
			func() *importer_offer.ImporterOffer { return &importer_offer.ImporterOffer{} },
		),
	}
}

// GetLines retrieves lines for an importer offer.
func (r *ImporterOfferRepo) GetLines(ctx context.Context, docID id.ID) ([]documents.Line, error) {
	return getLines(ctx, r.txManager.GetQuerier(ctx), importerOfferLinesTable, docID)
}

// SaveLines saves lines for an importer offer (delete existing + insert new).
func (r *ImporterOfferRepo) SaveLines(ctx context.Context, docID id.ID, lines []documents.Line) error {
	return saveLines(ctx, r.txManager.GetQuerier(ctx), importerOfferLinesTable, docID, lines)
}

// List retrieves importer offers with filtering.
func (r *ImporterOfferRepo) List(ctx context.Context, filter importer_offer.ListFilter) (domain.ListResult[*importer_offer.ImporterOffer], error) {
	result := domain.ListResult[*importer_offer.ImporterOffer]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.baseSelect()

	if !filter.IncludeDeleted {
		q = q.Where(squirrel.Eq{"deletion_mark": false})
	}

	if filter.ImporterID != nil {
		q = q.Where(squirrel.Eq{"importer_id": *filter.ImporterID})
	}

	if filter.SourceOfferID != nil {
		q = q.Where(squirrel.Eq{"source_offer_id": *filter.SourceOfferID})
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
