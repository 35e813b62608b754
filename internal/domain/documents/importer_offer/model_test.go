package importer_offer

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yochirolee/comercial-sub000/internal/core/apperror"
	"github.com/yochirolee/comercial-sub000/internal/core/id"
	"github.com/yochirolee/comercial-sub000/internal/domain/catalogs/product"
	"github.com/yochirolee/comercial-sub000/internal/domain/documents"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestOffer() *ImporterOffer {
	p1 := product.NewProduct("PRD-000001", "Chicken leg quarters", "case")
	p2 := product.NewProduct("PRD-000002", "Ground beef", "case")

	doc := NewImporterOffer(id.New())
	doc.Freight = dec("150")
	doc.Insurance = dec("50")
	doc.InsuranceEnabled = true
	doc.Lines = []documents.Line{
		documents.NewLine(1, p1, dec("1000"), dec("0.50")),
		documents.NewLine(2, p2, dec("500"), dec("1.20")),
	}
	doc.RecalculateTotals()
	return doc
}

func TestImporterOffer_RecalculateTotals(t *testing.T) {
	doc := newTestOffer()

	assert.True(t, doc.ProductsTotal.Equal(dec("1100.00")))
	assert.True(t, doc.CIFTotal.Equal(dec("1300.00")), "products + freight + insurance")

	doc.InsuranceEnabled = false
	doc.RecalculateTotals()
	assert.True(t, doc.CIFTotal.Equal(dec("1250.00")), "disabled insurance drops out")
}

func TestImporterOffer_AdjustToTotalHitsCIFTarget(t *testing.T) {
	doc := newTestOffer()

	// Desired CIF 1200 minus 150 freight minus 50 insurance leaves 1000
	// for the products.
	require.NoError(t, doc.AdjustToTotal(dec("1200")))

	assert.True(t, doc.Lines[0].Price.Equal(dec("0.455")))
	assert.True(t, doc.Lines[0].Subtotal.Equal(dec("455.00")))
	assert.True(t, doc.Lines[1].Price.Equal(dec("1.090")))
	assert.True(t, doc.Lines[1].Subtotal.Equal(dec("545.00")))
	assert.True(t, doc.ProductsTotal.Equal(dec("1000.00")))
	assert.True(t, doc.CIFTotal.Equal(dec("1200.00")))
}

func TestImporterOffer_AdjustToTotalRejectsSwallowedTarget(t *testing.T) {
	doc := newTestOffer()

	err := doc.AdjustToTotal(dec("200"))
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInvalidTarget, appErr.Code)

	// Document unchanged after rejection.
	assert.True(t, doc.CIFTotal.Equal(dec("1300.00")))
	assert.True(t, doc.Lines[0].Price.Equal(dec("0.50")))
}
