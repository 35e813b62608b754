package customer_offer

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yochirolee/comercial-sub000/internal/core/apperror"
	"github.com/yochirolee/comercial-sub000/internal/core/id"
	"github.com/yochirolee/comercial-sub000/internal/domain/catalogs/product"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testProduct(name string) *product.Product {
	return product.NewProduct("PRD-000001", name, "case")
}

func newTestOffer() *CustomerOffer {
	doc := NewCustomerOffer(id.New())
	doc.AddLine(testProduct("Chicken leg quarters"), dec("1000"), dec("0.50"))
	doc.AddLine(testProduct("Ground beef"), dec("500"), dec("1.20"))
	return doc
}

func TestCustomerOffer_AddLineTotals(t *testing.T) {
	doc := newTestOffer()

	require.Len(t, doc.Lines, 2)
	assert.Equal(t, 1, doc.Lines[0].LineNo)
	assert.Equal(t, 2, doc.Lines[1].LineNo)
	assert.True(t, doc.ProductsTotal.Equal(dec("1100.00")))
	assert.True(t, doc.GrandTotal().Equal(doc.ProductsTotal))
}

func TestCustomerOffer_AdjustToTotal(t *testing.T) {
	doc := newTestOffer()

	require.NoError(t, doc.AdjustToTotal(dec("1000")))

	assert.True(t, doc.Lines[0].Price.Equal(dec("0.455")))
	assert.True(t, doc.Lines[0].Subtotal.Equal(dec("455.00")))
	assert.True(t, doc.Lines[1].Price.Equal(dec("1.090")))
	assert.True(t, doc.Lines[1].Subtotal.Equal(dec("545.00")))
	assert.True(t, doc.ProductsTotal.Equal(dec("1000.00")))

	// Original prices survive for subsequent adjustments.
	assert.True(t, doc.Lines[0].OriginalPrice.Equal(dec("0.50")))
	assert.True(t, doc.Lines[1].OriginalPrice.Equal(dec("1.20")))
}

func TestCustomerOffer_AdjustToTotalTwiceScalesFromOriginals(t *testing.T) {
	doc := newTestOffer()

	require.NoError(t, doc.AdjustToTotal(dec("900")))
	require.NoError(t, doc.AdjustToTotal(dec("1000")))

	assert.True(t, doc.Lines[0].Price.Equal(dec("0.455")))
	assert.True(t, doc.Lines[1].Price.Equal(dec("1.090")))
	assert.True(t, doc.ProductsTotal.Equal(dec("1000.00")))
}

func TestCustomerOffer_AdjustToTotalRejectsInvalidTarget(t *testing.T) {
	doc := newTestOffer()

	err := doc.AdjustToTotal(dec("0"))
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInvalidTarget, appErr.Code)

	// Rejection leaves the document untouched.
	assert.True(t, doc.ProductsTotal.Equal(dec("1100.00")))
	assert.True(t, doc.Lines[0].Price.Equal(dec("0.50")))
}

func TestCustomerOffer_Validate(t *testing.T) {
	ctx := context.Background()

	doc := newTestOffer()
	require.NoError(t, doc.Validate(ctx))

	noCustomer := newTestOffer()
	noCustomer.CustomerID = id.Nil()
	require.Error(t, noCustomer.Validate(ctx))

	noLines := NewCustomerOffer(id.New())
	require.Error(t, noLines.Validate(ctx))
}

func TestCustomerOffer_CanModify(t *testing.T) {
	doc := newTestOffer()
	require.NoError(t, doc.CanModify())

	doc.Status = StatusIssued
	require.NoError(t, doc.CanModify())

	doc.Status = StatusAccepted
	require.Error(t, doc.CanModify())

	doc.Status = StatusDeclined
	require.Error(t, doc.CanModify())
}
