package importer_offer

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yochirolee/comercial-sub000/internal/core/apperror"
	"github.com/yochirolee/comercial-sub000/internal/core/id"
	"github.com/yochirolee/comercial-sub000/internal/core/numerator"
	"github.com/yochirolee/comercial-sub000/internal/domain"
	"github.com/yochirolee/comercial-sub000/internal/domain/catalogs/product"
	"github.com/yochirolee/comercial-sub000/internal/domain/documents"
	"github.com/yochirolee/comercial-sub000/internal/domain/documents/customer_offer"
)

type nopTxManager struct{}

func (nopTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRepo struct {
	docs  map[id.ID]*ImporterOffer
	lines map[id.ID][]documents.Line
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		docs:  make(map[id.ID]*ImporterOffer),
		lines: make(map[id.ID][]documents.Line),
	}
}

func (r *fakeRepo) Create(ctx context.Context, doc *ImporterOffer) error {
	cp := *doc
	r.docs[doc.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, docID id.ID) (*ImporterOffer, error) {
	doc, ok := r.docs[docID]
	if !ok {
		return nil, apperror.NewNotFound("importer offer", docID.String())
	}
	cp := *doc
	return &cp, nil
}

func (r *fakeRepo) GetByNumber(ctx context.Context, number string) (*ImporterOffer, error) {
	for _, doc := range r.docs {
		if doc.Number == number {
			cp := *doc
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("importer offer", number)
}

func (r *fakeRepo) Update(ctx context.Context, doc *ImporterOffer) error {
	if _, ok := r.docs[doc.ID]; !ok {
		return apperror.NewNotFound("importer offer", doc.ID.String())
	}
	cp := *doc
	r.docs[doc.ID] = &cp
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, docID id.ID) error {
	doc, ok := r.docs[docID]
	if !ok {
		return apperror.NewNotFound("importer offer", docID.String())
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

func (r *fakeRepo) List(ctx context.Context, filter ListFilter) (domain.ListResult[*ImporterOffer], error) {
	return domain.ListResult[*ImporterOffer]{}, nil
}

func (r *fakeRepo) GetForUpdate(ctx context.Context, docID id.ID) (*ImporterOffer, error) {
	return r.GetByID(ctx, docID)
}

type fakeSource struct {
	offers map[id.ID]*customer_offer.CustomerOffer
}

func (s *fakeSource) GetByID(ctx context.Context, docID id.ID) (*customer_offer.CustomerOffer, error) {
	doc, ok := s.offers[docID]
	if !ok {
		return nil, apperror.NewNotFound("customer offer", docID.String())
	}
	return doc, nil
}

func sourceOffer() *customer_offer.CustomerOffer {
	p1 := product.NewProduct("PRD-000001", "Chicken leg quarters", "case")
	p2 := product.NewProduct("PRD-000002", "Ground beef", "case")

	src := customer_offer.NewCustomerOffer(id.New())
	src.Status = customer_offer.StatusAccepted
	src.AddLine(p1, decimal.NewFromInt(1000), dec("0.50"))
	src.AddLine(p2, decimal.NewFromInt(500), dec("1.20"))
	return src
}

func newTestService(src *customer_offer.CustomerOffer) (*Service, *fakeRepo) {
	repo := newFakeRepo()
	source := &fakeSource{offers: map[id.ID]*customer_offer.CustomerOffer{}}
	if src != nil {
		source.offers[src.ID] = src
	}
	return NewService(repo, source, numerator.NewMock(), nopTxManager{}), repo
}

func TestService_CreateFromCustomerOffer(t *testing.T) {
	src := sourceOffer()
	require.NoError(t, src.AdjustToTotal(dec("1000")))

	svc, repo := newTestService(src)
	importerID := id.New()

	doc, err := svc.CreateFromCustomerOffer(context.Background(), src.ID, CreateFromOfferParams{
		ImporterID:       importerID,
		Freight:          dec("150"),
		Insurance:        dec("50"),
		InsuranceEnabled: true,
	})
	require.NoError(t, err)

	assert.Equal(t, importerID, doc.ImporterID)
	require.NotNil(t, doc.SourceOfferID)
	assert.Equal(t, src.ID, *doc.SourceOfferID)
	assert.NotEmpty(t, doc.Number)

	// The customer's adjusted prices become the new originals.
	require.Len(t, doc.Lines, 2)
	assert.True(t, doc.Lines[0].OriginalPrice.Equal(dec("0.455")))
	assert.True(t, doc.Lines[1].OriginalPrice.Equal(dec("1.090")))
	assert.True(t, doc.ProductsTotal.Equal(dec("1000.00")))
	assert.True(t, doc.CIFTotal.Equal(dec("1200.00")))

	stored, err := repo.GetByID(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.True(t, stored.CIFTotal.Equal(dec("1200.00")))
}

func TestService_CreateFromCustomerOfferWithDesiredTotal(t *testing.T) {
	src := sourceOffer()
	svc, _ := newTestService(src)

	doc, err := svc.CreateFromCustomerOffer(context.Background(), src.ID, CreateFromOfferParams{
		ImporterID:       id.New(),
		Freight:          dec("150"),
		Insurance:        dec("50"),
		InsuranceEnabled: true,
		DesiredTotal:     ptr(dec("1200")),
	})
	require.NoError(t, err)

	assert.True(t, doc.CIFTotal.Equal(dec("1200.00")))
	assert.True(t, doc.ProductsTotal.Equal(dec("1000.00")))
	assert.True(t, doc.Lines[0].Subtotal.Add(doc.Lines[1].Subtotal).Equal(dec("1000.00")))
}

func TestService_CreateFromDeclinedOfferFails(t *testing.T) {
	src := sourceOffer()
	src.Status = customer_offer.StatusDeclined
	svc, _ := newTestService(src)

	_, err := svc.CreateFromCustomerOffer(context.Background(), src.ID, CreateFromOfferParams{
		ImporterID: id.New(),
	})
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "SOURCE_OFFER_DECLINED", appErr.Code)
}

func TestService_SetStatusUnknownStatusOnFinalizedOffer(t *testing.T) {
	src := sourceOffer()
	svc, repo := newTestService(src)

	doc, err := svc.CreateFromCustomerOffer(context.Background(), src.ID, CreateFromOfferParams{
		ImporterID: id.New(),
	})
	require.NoError(t, err)

	repo.docs[doc.ID].Status = StatusAccepted

	// The unknown status is the caller's mistake; it wins over the
	// finalized-document check.
	_, err = svc.SetStatus(context.Background(), doc.ID, Status("bogus"))
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func ptr(d decimal.Decimal) *decimal.Decimal {
	return &d
}
