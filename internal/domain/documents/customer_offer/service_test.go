package customer_offer

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yochirolee/comercial-sub000/internal/core/apperror"
	"github.com/yochirolee/comercial-sub000/internal/core/id"
	"github.com/yochirolee/comercial-sub000/internal/core/numerator"
	"github.com/yochirolee/comercial-sub000/internal/domain"
	"github.com/yochirolee/comercial-sub000/internal/domain/documents"
)

type nopTxManager struct{}

func (nopTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRepo struct {
	docs  map[id.ID]*CustomerOffer
	lines map[id.ID][]documents.Line
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		docs:  make(map[id.ID]*CustomerOffer),
		lines: make(map[id.ID][]documents.Line),
	}
}

func (r *fakeRepo) Create(ctx context.Context, doc *CustomerOffer) error {
	cp := *doc
	r.docs[doc.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, docID id.ID) (*CustomerOffer, error) {
	doc, ok := r.docs[docID]
	if !ok {
		return nil, apperror.NewNotFound("customer offer", docID.String())
	}
	cp := *doc
	return &cp, nil
}

func (r *fakeRepo) GetByNumber(ctx context.Context, number string) (*CustomerOffer, error) {
	for _, doc := range r.docs {
		if doc.Number == number {
			cp := *doc
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("customer offer", number)
}

func (r *fakeRepo) Update(ctx context.Context, doc *CustomerOffer) error {
	if _, ok := r.docs[doc.ID]; !ok {
		return apperror.NewNotFound("customer offer", doc.ID.String())
	}
	cp := *doc
	cp.Version++
	r.docs[doc.ID] = &cp
	doc.Version = cp.Version
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, docID id.ID) error {
	doc, ok := r.docs[docID]
	if !ok {
		return apperror.NewNotFound("customer offer", docID.String())
	}
	doc.DeletionMark = true
	return nil
}

func (r *fakeRepo) GetLines(ctx context.Context, docID id.ID) ([]documents.Line, error) {
	out := make([]documents.Line, len(r.lines[docID]))
	copy(out, r.lines[docID])
	return out, nil
}

func (r *fakeRepo) SaveLines(ctx context.Context, docID id.ID, lines []documents.Line) error {
	cp := make([]documents.Line, len(lines))
	copy(cp, lines)
	r.lines[docID] = cp
	return nil
}

func (r *fakeRepo) List(ctx context.Context, filter ListFilter) (domain.ListResult[*CustomerOffer], error) {
	result := domain.ListResult[*CustomerOffer]{Limit: filter.Limit, Offset: filter.Offset}
	for _, doc := range r.docs {
		cp := *doc
		result.Items = append(result.Items, &cp)
	}
	result.TotalCount = int64(len(result.Items))
	return result, nil
}

func (r *fakeRepo) GetForUpdate(ctx context.Context, docID id.ID) (*CustomerOffer, error) {
	return r.GetByID(ctx, docID)
}

func newTestService(t *testing.T) (*Service, *fakeRepo) {
	t.Helper()
	repo := newFakeRepo()
	return NewService(repo, numerator.NewMock(), nopTxManager{}), repo
}

func TestService_CreateAssignsNumber(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	doc := newTestOffer()
	require.NoError(t, svc.Create(ctx, doc))

	want := fmt.Sprintf("%s-%d-00001", NumberPrefix, time.Now().Year())
	assert.Equal(t, want, doc.Number)

	stored, err := repo.GetByID(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, doc.Number, stored.Number)

	lines, err := repo.GetLines(ctx, doc.ID)
	require.NoError(t, err)
	assert.Len(t, lines, 2)
}

func TestService_AdjustPricesPersistsReconciledLines(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	doc := newTestOffer()
	require.NoError(t, svc.Create(ctx, doc))

	adjusted, err := svc.AdjustPrices(ctx, doc.ID, dec("1000"))
	require.NoError(t, err)
	assert.True(t, adjusted.ProductsTotal.Equal(dec("1000.00")))

	lines, err := repo.GetLines(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.True(t, lines[0].Subtotal.Equal(dec("455.00")))
	assert.True(t, lines[1].Subtotal.Equal(dec("545.00")))
	assert.True(t, lines[0].OriginalPrice.Equal(dec("0.50")), "original price is kept in storage")
}

func TestService_AdjustPricesRejectsFinalizedOffer(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	doc := newTestOffer()
	require.NoError(t, svc.Create(ctx, doc))

	stored := repo.docs[doc.ID]
	stored.Status = StatusAccepted

	_, err := svc.AdjustPrices(ctx, doc.ID, dec("1000"))
	require.Error(t, err)

	// Stored lines keep the quoted prices.
	lines, err := repo.GetLines(ctx, doc.ID)
	require.NoError(t, err)
	assert.True(t, lines[0].Price.Equal(dec("0.50")))
}

func TestService_AdjustPricesInvalidTargetLeavesStorageUntouched(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	doc := newTestOffer()
	require.NoError(t, svc.Create(ctx, doc))

	_, err := svc.AdjustPrices(ctx, doc.ID, dec("-10"))
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInvalidTarget, appErr.Code)

	stored, err := repo.GetByID(ctx, doc.ID)
	require.NoError(t, err)
	assert.True(t, stored.ProductsTotal.Equal(dec("1100.00")))
}

func TestService_SetStatusRejectsUnknownStatus(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	doc := newTestOffer()
	require.NoError(t, svc.Create(ctx, doc))

	_, err := svc.SetStatus(ctx, doc.ID, Status("bogus"))
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)

	stored, err := repo.GetByID(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusDraft, stored.Status)
}
