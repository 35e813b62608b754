package invoice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yochirolee/comercial-sub000/internal/core/apperror"
	"github.com/yochirolee/comercial-sub000/internal/core/id"
	"github.com/yochirolee/comercial-sub000/internal/core/numerator"
	"github.com/yochirolee/comercial-sub000/internal/domain"
	"github.com/yochirolee/comercial-sub000/internal/domain/catalogs/product"
	"github.com/yochirolee/comercial-sub000/internal/domain/documents"
	"github.com/yochirolee/comercial-sub000/internal/domain/documents/importer_offer"
)

type nopTxManager struct{}

func (nopTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRepo struct {
	docs  map[id.ID]*Invoice
	lines map[id.ID][]documents.Line
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		docs:  make(map[id.ID]*Invoice),
		lines: make(map[id.ID][]documents.Line),
	}
}

func (r *fakeRepo) Create(ctx context.Context, doc *Invoice) error {
	cp := *doc
	r.docs[doc.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, docID id.ID) (*Invoice, error) {
	doc, ok := r.docs[docID]
	if !ok {
		return nil, apperror.NewNotFound("invoice", docID.String())
	}
	cp := *doc
	return &cp, nil
}

func (r *fakeRepo) GetByNumber(ctx context.Context, number string) (*Invoice, error) {
	for _, doc := range r.docs {
		if doc.Number == number {
			cp := *doc
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("invoice", number)
}

func (r *fakeRepo) Update(ctx context.Context, doc *Invoice) error {
	if _, ok := r.docs[doc.ID]; !ok {
		return apperror.NewNotFound("invoice", doc.ID.String())
	}
	cp := *doc
	r.docs[doc.ID] = &cp
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, docID id.ID) error {
	doc, ok := r.docs[docID]
	if !ok {
		return apperror.NewNotFound("invoice", docID.String())
	}
	doc.DeletionMark = true
	return nil
}

func (r *fakeRepo) GetLines(ctx context.Context, docID id.ID) ([]documents.Line, error) {
	return append([]documents.Line(nil), r.lines[docID]...), nil
}

func (r *fakeRepo) SaveLines(ctx context.Context, docID id.ID, lines []documents.Line) error {
	r.lines[docID] = append([]documents.Line(nil), lines...)
	return nil
}

func (r *fakeRepo) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Invoice], error) {
	return domain.ListResult[*Invoice]{}, nil
}

func (r *fakeRepo) GetForUpdate(ctx context.Context, docID id.ID) (*Invoice, error) {
	return r.GetByID(ctx, docID)
}

type fakeSource struct {
	offers map[id.ID]*importer_offer.ImporterOffer
}

func (s *fakeSource) GetByID(ctx context.Context, docID id.ID) (*importer_offer.ImporterOffer, error) {
	doc, ok := s.offers[docID]
	if !ok {
		return nil, apperror.NewNotFound("importer offer", docID.String())
	}
	return doc, nil
}

func sourceOffer() *importer_offer.ImporterOffer {
	p1 := product.NewProduct("PRD-000001", "Chicken leg quarters", "case")
	p2 := product.NewProduct("PRD-000002", "Ground beef", "case")

	src := importer_offer.NewImporterOffer(id.New())
	src.Status = importer_offer.StatusAccepted
	src.Freight = dec("150")
	src.Insurance = dec("50")
	src.InsuranceEnabled = true
	src.Lines = []documents.Line{
		documents.NewLine(1, p1, dec("1000"), dec("0.455")),
		documents.NewLine(2, p2, dec("500"), dec("1.090")),
	}
	src.RecalculateTotals()
	return src
}

func newTestService(src *importer_offer.ImporterOffer) (*Service, *fakeRepo) {
	repo := newFakeRepo()
	source := &fakeSource{offers: map[id.ID]*importer_offer.ImporterOffer{}}
	if src != nil {
		source.offers[src.ID] = src
	}
	return NewService(repo, source, numerator.NewMock(), nopTxManager{}), repo
}

func TestService_CreateFromImporterOffer(t *testing.T) {
	src := sourceOffer()
	svc, repo := newTestService(src)

	doc, err := svc.CreateFromImporterOffer(context.Background(), src.ID, CreateFromOfferParams{})
	require.NoError(t, err)

	assert.Equal(t, src.ImporterID, doc.CustomerID)
	require.NotNil(t, doc.SourceOfferID)
	assert.Equal(t, src.ID, *doc.SourceOfferID)
	assert.NotEmpty(t, doc.Number)

	// Freight carries over; insurance does not exist on CFR terms.
	assert.True(t, doc.Freight.Equal(dec("150")))
	assert.True(t, doc.ProductsTotal.Equal(dec("1000.00")))
	assert.True(t, doc.CFRTotal.Equal(dec("1150.00")))

	// The offer's prices become the invoice's originals.
	assert.True(t, doc.Lines[0].OriginalPrice.Equal(dec("0.455")))

	stored, err := repo.GetByID(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.True(t, stored.CFRTotal.Equal(dec("1150.00")))
}

func TestService_CreateFromImporterOfferWithFreightAndTarget(t *testing.T) {
	src := sourceOffer()
	svc, _ := newTestService(src)

	freight := dec("100")
	desired := dec("1234.56")
	doc, err := svc.CreateFromImporterOffer(context.Background(), src.ID, CreateFromOfferParams{
		Freight:      &freight,
		DesiredTotal: &desired,
	})
	require.NoError(t, err)

	assert.True(t, doc.Freight.Equal(freight))
	assert.True(t, doc.CFRTotal.Equal(dec("1234.56")))
	assert.True(t, documents.SumSubtotals(doc.Lines).Equal(dec("1134.56")))
}

func TestService_CreateFromDeclinedOfferFails(t *testing.T) {
	src := sourceOffer()
	src.Status = importer_offer.StatusDeclined
	svc, _ := newTestService(src)

	_, err := svc.CreateFromImporterOffer(context.Background(), src.ID, CreateFromOfferParams{})
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "SOURCE_OFFER_DECLINED", appErr.Code)
}
