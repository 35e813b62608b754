package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yochirolee/comercial-sub000/internal/core/apperror"
)

func TestTargetSubtotal_GrandTotalRoundTrip(t *testing.T) {
	surcharges := Surcharges{
		Freight:          dec("150"),
		Insurance:        dec("50"),
		InsuranceEnabled: true,
	}

	target, err := TargetSubtotal(dec("1200"), surcharges)
	require.NoError(t, err)
	assert.True(t, target.Equal(dec("1000")))

	lines := []Line{line("1000", "0.50"), line("500", "1.20")}
	out, total, err := Reconcile(lines, target)
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.True(t, GrandTotal(total, surcharges).Equal(dec("1200.00")))
}

func TestTargetSubtotal_InsuranceOnlyWhenEnabled(t *testing.T) {
	surcharges := Surcharges{Freight: dec("100"), Insurance: dec("900")}

	// Disabled insurance is ignored even when set.
	target, err := TargetSubtotal(dec("500"), surcharges)
	require.NoError(t, err)
	assert.True(t, target.Equal(dec("400")))

	surcharges.InsuranceEnabled = true
	_, err = TargetSubtotal(dec("500"), surcharges)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInvalidTarget, appErr.Code)
}

func TestTargetSubtotal_RejectsSurchargesSwallowingTotal(t *testing.T) {
	tests := []struct {
		name       string
		desired    string
		surcharges Surcharges
	}{
		{"equal to freight", "150", Surcharges{Freight: dec("150")}},
		{"below freight", "100", Surcharges{Freight: dec("150")}},
		{"non-positive desired", "0", Surcharges{}},
		{"negative desired", "-5", Surcharges{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := TargetSubtotal(dec(tt.desired), tt.surcharges)
			require.Error(t, err)

			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperror.CodeInvalidTarget, appErr.Code)
		})
	}
}
