package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yochirolee/comercial-sub000/internal/core/apperror"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func line(qty, price string) Line {
	return Line{Quantity: dec(qty), OriginalPrice: dec(price)}
}

func sumSubtotals(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal)
	}
	return total
}

func TestReconcile_TwoLineScenario(t *testing.T) {
	lines := []Line{
		line("1000", "0.50"),
		line("500", "1.20"),
	}

	out, total, err := Reconcile(lines, dec("1000"))
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.True(t, out[0].AdjustedPrice.Equal(dec("0.455")),
		"first price: got %s", out[0].AdjustedPrice)
	assert.True(t, out[0].Subtotal.Equal(dec("455.00")),
		"first subtotal: got %s", out[0].Subtotal)
	assert.True(t, out[1].AdjustedPrice.Equal(dec("1.090")),
		"second price: got %s", out[1].AdjustedPrice)
	assert.True(t, out[1].Subtotal.Equal(dec("545.00")),
		"second subtotal: got %s", out[1].Subtotal)
	assert.True(t, total.Equal(dec("1000.00")))
}

func TestReconcile_ExactnessAcrossAwkwardTargets(t *testing.T) {
	tests := []struct {
		name   string
		lines  []Line
		target string
	}{
		{
			name:   "prime quantities, indivisible target",
			lines:  []Line{line("7", "13.13"), line("11", "0.07"), line("3", "99.999")},
			target: "777.77",
		},
		{
			name:   "many small lines",
			lines:  []Line{line("1", "0.01"), line("1", "0.01"), line("1", "0.01"), line("1", "0.01"), line("1", "0.01")},
			target: "1.23",
		},
		{
			name:   "fractional quantities from net weight",
			lines:  []Line{line("1234.567", "2.345"), line("0.333", "1000")},
			target: "5000.01",
		},
		{
			name:   "scaling up",
			lines:  []Line{line("10", "1"), line("20", "2")},
			target: "123456.78",
		},
		{
			name:   "scaling down hard",
			lines:  []Line{line("1000", "99.99"), line("2000", "49.99")},
			target: "0.05",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, total, err := Reconcile(tt.lines, dec(tt.target))
			require.NoError(t, err)

			want := RoundAmount(dec(tt.target))
			assert.True(t, total.Equal(want), "returned total %s != %s", total, want)
			assert.True(t, sumSubtotals(out).Equal(want),
				"summed subtotals %s != %s", sumSubtotals(out), want)
		})
	}
}

func TestReconcile_ProportionalityOfNonAbsorberLines(t *testing.T) {
	lines := []Line{
		line("17", "3.999"),
		line("250", "0.123"),
		line("1", "10000"),
		line("42", "7.77"),
	}
	target := dec("8642.42")

	out, _, err := Reconcile(lines, target)
	require.NoError(t, err)

	originalTotal := decimal.Zero
	for _, l := range lines {
		originalTotal = originalTotal.Add(l.OriginalPrice.Mul(l.Quantity))
	}
	factor := target.Div(originalTotal)

	halfStep := dec("0.0005")
	for i := 0; i < len(out)-1; i++ {
		ideal := lines[i].OriginalPrice.Mul(factor)
		diff := out[i].AdjustedPrice.Sub(ideal).Abs()
		assert.True(t, diff.LessThanOrEqual(halfStep),
			"line %d adjusted price %s deviates %s from ideal %s", i, out[i].AdjustedPrice, diff, ideal)
	}
}

func TestReconcile_Idempotent(t *testing.T) {
	lines := []Line{line("1000", "0.50"), line("500", "1.20"), line("3", "0.333")}
	target := dec("997.53")

	first, firstTotal, err := Reconcile(lines, target)
	require.NoError(t, err)

	second, secondTotal, err := Reconcile(first, target)
	require.NoError(t, err)

	assert.True(t, firstTotal.Equal(secondTotal))
	for i := range first {
		assert.True(t, second[i].AdjustedPrice.Equal(first[i].AdjustedPrice),
			"line %d price changed on repeat: %s -> %s", i, first[i].AdjustedPrice, second[i].AdjustedPrice)
		assert.True(t, second[i].Subtotal.Equal(first[i].Subtotal),
			"line %d subtotal changed on repeat: %s -> %s", i, first[i].Subtotal, second[i].Subtotal)
	}
}

func TestReconcile_RepeatedAdjustmentsDoNotCompound(t *testing.T) {
	lines := []Line{line("100", "2.50"), line("40", "9.99")}

	// Walk through several targets, then land on the final one. The result
	// must be identical to reconciling the pristine lines directly, because
	// each pass scales from the original price.
	stepped := lines
	var err error
	for _, target := range []string{"900", "1100.55", "649.99"} {
		stepped, _, err = Reconcile(stepped, dec(target))
		require.NoError(t, err)
	}

	direct, _, err := Reconcile(lines, dec("649.99"))
	require.NoError(t, err)

	for i := range direct {
		assert.True(t, stepped[i].AdjustedPrice.Equal(direct[i].AdjustedPrice))
		assert.True(t, stepped[i].Subtotal.Equal(direct[i].Subtotal))
		assert.True(t, stepped[i].OriginalPrice.Equal(lines[i].OriginalPrice),
			"original price must survive reconciliation")
	}
}

func TestReconcile_SingleLineGetsFullTarget(t *testing.T) {
	out, total, err := Reconcile([]Line{line("3", "7.77")}, dec("100"))
	require.NoError(t, err)

	assert.True(t, out[0].Subtotal.Equal(dec("100.00")))
	assert.True(t, out[0].AdjustedPrice.Equal(dec("33.333")))
	assert.True(t, total.Equal(dec("100.00")))
}

func TestReconcile_ZeroQuantityAbsorberKeepsResidue(t *testing.T) {
	// Last line has zero quantity but a priced original value would be zero
	// too, so a non-zero line must precede it. The absorber keeps the
	// residual subtotal while its price collapses to zero.
	lines := []Line{
		line("10", "5"),
		{Quantity: decimal.Zero, OriginalPrice: dec("1.00")},
	}

	out, total, err := Reconcile(lines, dec("60"))
	require.NoError(t, err)

	assert.True(t, out[1].AdjustedPrice.IsZero())
	assert.True(t, total.Equal(dec("60.00")))
	assert.True(t, out[0].Subtotal.Add(out[1].Subtotal).Equal(dec("60.00")))
}

func TestReconcile_RejectsNonPositiveTarget(t *testing.T) {
	lines := []Line{line("10", "5")}

	for _, target := range []string{"0", "-1", "-0.01"} {
		t.Run(target, func(t *testing.T) {
			out, _, err := Reconcile(lines, dec(target))
			require.Error(t, err)
			assert.Nil(t, out)

			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperror.CodeInvalidTarget, appErr.Code)
		})
	}

	// Input untouched after rejection.
	assert.True(t, lines[0].AdjustedPrice.IsZero())
	assert.True(t, lines[0].Subtotal.IsZero())
}

func TestReconcile_RejectsValuelessLines(t *testing.T) {
	tests := []struct {
		name  string
		lines []Line
	}{
		{"no lines", nil},
		{"all zero prices", []Line{line("10", "0"), line("5", "0")}},
		{"all zero quantities", []Line{{Quantity: decimal.Zero, OriginalPrice: dec("9.99")}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Reconcile(tt.lines, dec("100"))
			require.Error(t, err)

			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperror.CodeNoPriceableItems, appErr.Code)
		})
	}
}

func TestReconcile_DoesNotMutateInput(t *testing.T) {
	lines := []Line{line("1000", "0.50"), line("500", "1.20")}

	_, _, err := Reconcile(lines, dec("1000"))
	require.NoError(t, err)

	for i, l := range lines {
		assert.True(t, l.AdjustedPrice.IsZero(), "input line %d was mutated", i)
		assert.True(t, l.Subtotal.IsZero(), "input line %d was mutated", i)
	}
}
