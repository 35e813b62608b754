package documents

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

func unitProduct(name string) *product.Product {
	return product.NewProduct("PRD-000001", name, "case")
}

func weightProduct(name, kgPerUnit string) *product.Product {
	p := product.NewProduct("PRD-000002", name, "case")
	p.PricingBasis = product.PriceByWeight
	p.NetWeight = dec(kgPerUnit)
	return p
}

func TestNewLine_UnitPriced(t *testing.T) {
	l := NewLine(1, unitProduct("Canned beans"), dec("1000"), dec("0.50"))

	assert.False(t, l.WeightPriced)
	assert.True(t, l.PricingQuantity().Equal(dec("1000")))
	assert.True(t, l.Subtotal.Equal(dec("500.00")))
	assert.True(t, l.OriginalPrice.Equal(l.Price))
}

func TestNewLine_WeightPriced(t *testing.T) {
	// 100 cases at 12.5 kg each, priced per kg.
	l := NewLine(1, weightProduct("Chicken quarters", "12.5"), dec("100"), dec("0.80"))

	assert.True(t, l.WeightPriced)
	assert.True(t, l.NetWeight.Equal(dec("1250")))
	assert.True(t, l.PricingQuantity().Equal(dec("1250")), "price applies to kilograms")
	assert.True(t, l.Subtotal.Equal(dec("1000.00")))
}

func TestReconcileLines_MixedBasisHitsTarget(t *testing.T) {
	lines := []Line{
		NewLine(1, weightProduct("Chicken quarters", "12.5"), dec("100"), dec("0.80")), // 1250 kg
		NewLine(2, unitProduct("Canned beans"), dec("500"), dec("1.20")),               // 500 units
	}

	out, err := ReconcileLines(lines, dec("1234.56"))
	require.NoError(t, err)

	assert.True(t, SumSubtotals(out).Equal(dec("1234.56")))
	for i := range out {
		assert.True(t, out[i].OriginalPrice.Equal(lines[i].OriginalPrice),
			"line %d original price must be preserved", i)
	}
}

func TestReconcileLines_FailureLeavesInputUntouched(t *testing.T) {
	lines := []Line{NewLine(1, unitProduct("Canned beans"), dec("10"), dec("2"))}

	out, err := ReconcileLines(lines, dec("-5"))
	require.Error(t, err)
	assert.Nil(t, out)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInvalidTarget, appErr.Code)
	assert.True(t, lines[0].Subtotal.Equal(dec("20.00")))
	assert.True(t, lines[0].Price.Equal(dec("2")))
}

func TestLine_Validate(t *testing.T) {
	ctx := context.Background()

	valid := NewLine(1, unitProduct("Canned beans"), dec("10"), dec("2"))
	require.NoError(t, valid.Validate(ctx))

	missingProduct := valid
	missingProduct.ProductID = id.Nil()
	require.Error(t, missingProduct.Validate(ctx))

	negativeQty := valid
	negativeQty.Quantity = dec("-1")
	require.Error(t, negativeQty.Validate(ctx))

	weightless := NewLine(1, weightProduct("Chicken quarters", "12.5"), dec("10"), dec("0.80"))
	weightless.NetWeight = decimal.Zero
	require.Error(t, weightless.Validate(ctx))
}
