// Package shipment provides the Shipment document: the physical execution
// of an invoice. It tracks containers and a timeline of logistics events.
package shipment

import (
	"context"
	"time"

	"github.com/yochirolee/comercial-sub000/internal/core/apperror"
	"github.com/yochirolee/comercial-sub000/internal/core/entity"
	"github.com/yochirolee/comercial-sub000/internal/core/id"
)

// Status of a shipment.
type Status string

const (
	StatusPlanned   Status = "planned"
	StatusInTransit Status = "in_transit"
	StatusArrived   Status = "arrived"
	StatusDelivered Status = "delivered"
	StatusClosed    Status = "closed"
)

// EventType classifies timeline events.
type EventType string

const (
	EventBooked       EventType = "booked"
	EventLoaded       EventType = "loaded"
	EventDeparted     EventType = "departed"
	EventTransshipped EventType = "transshipped"
	EventArrived      EventType = "arrived"
	EventCustoms      EventType = "customs"
	EventDelivered    EventType = "delivered"
	EventNote         EventType = "note"
)

// Shipment represents the execution of an invoice through the supply chain.
type Shipment struct {
	entity.Document

	// InvoiceID references the invoice being executed
	InvoiceID id.ID `db:"invoice_id" json:"invoiceId"`

	// CustomerID references the consignee
	CustomerID id.ID `db:"customer_id" json:"customerId"`

	// Status drives which operations are allowed
	Status Status `db:"status" json:"status"`

	// VesselName is the carrying vessel
	VesselName *string `db:"vessel_name" json:"vesselName,omitempty"`

	// BillOfLading is the B/L number
	BillOfLading *string `db:"bill_of_lading" json:"billOfLading,omitempty"`

	// PortOfLoading / PortOfDischarge are UN/LOCODE or free-form port names
	PortOfLoading   *string `db:"port_of_loading" json:"portOfLoading,omitempty"`
	PortOfDischarge *string `db:"port_of_discharge" json:"portOfDischarge,omitempty"`

	// ETD / ETA are the estimated departure and arrival dates
	ETD *time.Time `db:"etd" json:"etd,omitempty"`
	ETA *time.Time `db:"eta" json:"eta,omitempty"`

	// Containers assigned to this shipment
	Containers []Container `db:"-" json:"containers"`

	// Events is the chronological timeline
	Events []Event `db:"-" json:"events,omitempty"`
}

// Container is one container on a shipment.
type Container struct {
	ContainerID id.ID `db:"container_id" json:"containerId"`

	// Number is the ISO 6346 container number (e.g. MSKU1234567)
	Number string `db:"number" json:"number"`

	// Type is the container type (e.g. "40RF", "20DV")
	Type string `db:"type" json:"type"`

	// SealNumber is the carrier seal
	SealNumber *string `db:"seal_number" json:"sealNumber,omitempty"`
}

// Event is one entry in the shipment timeline.
type Event struct {
	EventID id.ID `db:"event_id" json:"eventId"`

	// ShipmentID references the owning shipment
	ShipmentID id.ID `db:"shipment_id" json:"shipmentId"`

	// Type classifies the event
	Type EventType `db:"type" json:"type"`

	// OccurredAt is when the event happened
	OccurredAt time.Time `db:"occurred_at" json:"occurredAt"`

	// Location is where the event happened
	Location *string `db:"location" json:"location,omitempty"`

	// Description is a free-form note
	Description string `db:"description" json:"description"`

	// RecordedBy is the user who recorded the event
	RecordedBy string `db:"recorded_by" json:"recordedBy,omitempty"`
}

// NewShipment creates a planned shipment for an invoice.
func NewShipment(invoiceID, customerID id.ID) *Shipment {
	return &Shipment{
		Document:   entity.NewDocument(),
		InvoiceID:  invoiceID,
		CustomerID: customerID,
		Status:     StatusPlanned,
		Containers: make([]Container, 0),
	}
}

// AddContainer appends a container.
func (sh *Shipment) AddContainer(number, containerType string, sealNumber *string) {
	sh.Containers = append(sh.Containers, Container{
		ContainerID: id.New(),
		Number:      number,
		Type:        containerType,
		SealNumber:  sealNumber,
	})
}

// NewEvent builds a timeline event for this shipment.
func (sh *Shipment) NewEvent(eventType EventType, occurredAt time.Time, description string) Event {
	return Event{
		EventID:     id.New(),
		ShipmentID:  sh.ID,
		Type:        eventType,
		OccurredAt:  occurredAt,
		Description: description,
	}
}

// CanModify reports whether the shipment still accepts changes.
func (sh *Shipment) CanModify() error {
	if sh.Status == StatusClosed {
		return apperror.NewBusinessRule("SHIPMENT_CLOSED",
			"shipment is closed and can no longer be modified").
			WithDetail("status", string(sh.Status))
	}
	return nil
}

// Validate implements entity.Validatable.
func (sh *Shipment) Validate(ctx context.Context) error {
	if err := sh.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(sh.InvoiceID) {
		return apperror.NewValidation("invoice is required").
			WithDetail("field", "invoiceId")
	}

	if id.IsNil(sh.CustomerID) {
		return apperror.NewValidation("customer is required").
			WithDetail("field", "customerId")
	}

	if !isValidStatus(sh.Status) {
		return apperror.NewValidation("invalid status").
			WithDetail("field", "status").
			WithDetail("value", string(sh.Status))
	}

	if sh.ETD != nil && sh.ETA != nil && sh.ETA.Before(*sh.ETD) {
		return apperror.NewValidation("ETA cannot precede ETD").
			WithDetail("field", "eta")
	}

	seen := make(map[string]bool, len(sh.Containers))
	for _, c := range sh.Containers {
		if c.Number == "" {
			return apperror.NewValidation("container number is required").
				WithDetail("field", "containers")
		}
		if seen[c.Number] {
			return apperror.NewValidation("duplicate container number").
				WithDetail("field", "containers").
				WithDetail("number", c.Number)
		}
		seen[c.Number] = true
	}

	return nil
}

func isValidStatus(s Status) bool {
	switch s {
	case StatusPlanned, StatusInTransit, StatusArrived, StatusDelivered, StatusClosed:
		return true
	}
	return false
}

func isValidEventType(t EventType) bool {
	switch t {
	case EventBooked, EventLoaded, EventDeparted, EventTransshipped,
		EventArrived, EventCustoms, EventDelivered, EventNote:
		return true
	}
	return false
}
