package shipment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yochirolee/comercial-sub000/internal/core/id"
)

func newTestShipment() *Shipment {
	sh := NewShipment(id.New(), id.New())
	sh.AddContainer("MSKU1234567", "40RF", nil)
	return sh
}

func TestShipment_Validate(t *testing.T) {
	ctx := context.Background()

	sh := newTestShipment()
	require.NoError(t, sh.Validate(ctx))

	noInvoice := newTestShipment()
	noInvoice.InvoiceID = id.Nil()
	require.Error(t, noInvoice.Validate(ctx))

	dupContainer := newTestShipment()
	dupContainer.AddContainer("MSKU1234567", "40RF", nil)
	require.Error(t, dupContainer.Validate(ctx))

	badWindow := newTestShipment()
	etd := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	eta := etd.Add(-48 * time.Hour)
	badWindow.ETD = &etd
	badWindow.ETA = &eta
	require.Error(t, badWindow.Validate(ctx))
}

func TestShipment_NewEventBindsShipment(t *testing.T) {
	sh := newTestShipment()
	at := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	ev := sh.NewEvent(EventDeparted, at, "left port of loading")

	assert.Equal(t, sh.ID, ev.ShipmentID)
	assert.Equal(t, EventDeparted, ev.Type)
	assert.Equal(t, at, ev.OccurredAt)
	assert.False(t, id.IsNil(ev.EventID))
}

func TestStatusForEvent(t *testing.T) {
	tests := []struct {
		event EventType
		want  Status
		ok    bool
	}{
		{EventDeparted, StatusInTransit, true},
		{EventArrived, StatusArrived, true},
		{EventDelivered, StatusDelivered, true},
		{EventNote, "", false},
		{EventCustoms, "", false},
	}

	for _, tt := range tests {
		got, ok := statusForEvent(tt.event)
		assert.Equal(t, tt.ok, ok, "event %s", tt.event)
		assert.Equal(t, tt.want, got, "event %s", tt.event)
	}
}

func TestShipment_CanModify(t *testing.T) {
	sh := newTestShipment()
	require.NoError(t, sh.CanModify())

	sh.Status = StatusClosed
	require.Error(t, sh.CanModify())
}
