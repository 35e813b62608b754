package invoice

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

func newTestInvoice() *Invoice {
	p1 := product.NewProduct("PRD-000001", "Chicken leg quarters", "case")
	p2 := product.NewProduct("PRD-000002", "Ground beef", "case")

	doc := NewInvoice(id.New())
	doc.Freight = dec("200")
	doc.Lines = []documents.Line{
		documents.NewLine(1, p1, dec("1000"), dec("0.50")),
		documents.NewLine(2, p2, dec("500"), dec("1.20")),
	}
	doc.RecalculateTotals()
	return doc
}

func TestInvoice_RecalculateTotals(t *testing.T) {
	doc := newTestInvoice()

	assert.True(t, doc.ProductsTotal.Equal(dec("1100.00")))
	assert.True(t, doc.CFRTotal.Equal(dec("1300.00")), "products + freight, no insurance on CFR")
}

func TestInvoice_AdjustToTotalHitsCFRTarget(t *testing.T) {
	doc := newTestInvoice()

	// Desired CFR 1200 minus 200 freight leaves 1000 for the products.
	require.NoError(t, doc.AdjustToTotal(dec("1200")))

	assert.True(t, doc.Lines[0].Subtotal.Equal(dec("455.00")))
	assert.True(t, doc.Lines[1].Subtotal.Equal(dec("545.00")))
	assert.True(t, doc.ProductsTotal.Equal(dec("1000.00")))
	assert.True(t, doc.CFRTotal.Equal(dec("1200.00")))
}

func TestInvoice_AdjustToTotalRejectsSwallowedTarget(t *testing.T) {
	doc := newTestInvoice()

	err := doc.AdjustToTotal(dec("200"))
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInvalidTarget, appErr.Code)
	assert.True(t, doc.CFRTotal.Equal(dec("1300.00")))
}

func TestInvoice_CanModify(t *testing.T) {
	doc := newTestInvoice()
	require.NoError(t, doc.CanModify())

	doc.Status = StatusIssued
	require.NoError(t, doc.CanModify())

	doc.Status = StatusPaid
	require.Error(t, doc.CanModify())

	doc.Status = StatusCancelled
	require.Error(t, doc.CanModify())
}
