package dto

import (
	"time"

	"github.com/yochirolee/comercial-sub000/internal/domain/documents/shipment"
)

// --- Request DTOs ---

// ContainerRequest represents a container in create/update requests.
type ContainerRequest struct {
	Number     string  `json:"number" binding:"required"`
	Type       string  `json:"type" binding:"required"`
	SealNumber *string `json:"sealNumber,omitempty"`
}

// CreateShipmentRequest is the request body for opening a shipment.
// The shipment always executes an existing invoice.
type CreateShipmentRequest struct {
	InvoiceID       string             `json:"invoiceId" binding:"required,uuid"`
	VesselName      *string            `json:"vesselName,omitempty"`
	BillOfLading    *string            `json:"billOfLading,omitempty"`
	PortOfLoading   *string            `json:"portOfLoading,omitempty"`
	PortOfDischarge *string            `json:"portOfDischarge,omitempty"`
	ETD             *time.Time         `json:"etd,omitempty"`
	ETA             *time.Time         `json:"eta,omitempty"`
	Comment         string             `json:"comment,omitempty"`
	Containers      []ContainerRequest `json:"containers,omitempty" binding:"omitempty,dive"`
}

// HasDetails reports whether the request carries anything beyond the
// invoice reference.
func (r *CreateShipmentRequest) HasDetails() bool {
	return r.VesselName != nil || r.BillOfLading != nil ||
		r.PortOfLoading != nil || r.PortOfDischarge != nil ||
		r.ETD != nil || r.ETA != nil || r.Comment != "" || len(r.Containers) > 0
}

// ApplyTo applies the optional details to a freshly opened shipment.
func (r *CreateShipmentRequest) ApplyTo(doc *shipment.Shipment) {
	doc.VesselName = r.VesselName
	doc.BillOfLading = r.BillOfLading
	doc.PortOfLoading = r.PortOfLoading
	doc.PortOfDischarge = r.PortOfDischarge
	doc.ETD = r.ETD
	doc.ETA = r.ETA
	doc.Comment = r.Comment
	for _, c := range r.Containers {
		doc.AddContainer(c.Number, c.Type, c.SealNumber)
	}
}

// UpdateShipmentRequest is the request body for updating a shipment.
// Nil fields are left unchanged; non-nil Containers replace the set.
type UpdateShipmentRequest struct {
	Date            *time.Time         `json:"date,omitempty"`
	VesselName      *string            `json:"vesselName,omitempty"`
	BillOfLading    *string            `json:"billOfLading,omitempty"`
	PortOfLoading   *string            `json:"portOfLoading,omitempty"`
	PortOfDischarge *string            `json:"portOfDischarge,omitempty"`
	ETD             *time.Time         `json:"etd,omitempty"`
	ETA             *time.Time         `json:"eta,omitempty"`
	Comment         *string            `json:"comment,omitempty"`
	Containers      []ContainerRequest `json:"containers,omitempty" binding:"omitempty,dive"`
	Version         int                `json:"version" binding:"required,min=1"`
}

// ApplyTo applies updates to an existing entity.
func (r *UpdateShipmentRequest) ApplyTo(doc *shipment.Shipment) {
	if r.Date != nil {
		doc.Date = *r.Date
	}
	if r.VesselName != nil {
		doc.VesselName = r.VesselName
	}
	if r.BillOfLading != nil {
		doc.BillOfLading = r.BillOfLading
	}
	if r.PortOfLoading != nil {
		doc.PortOfLoading = r.PortOfLoading
	}
	if r.PortOfDischarge != nil {
		doc.PortOfDischarge = r.PortOfDischarge
	}
	if r.ETD != nil {
		doc.ETD = r.ETD
	}
	if r.ETA != nil {
		doc.ETA = r.ETA
	}
	if r.Comment != nil {
		doc.Comment = *r.Comment
	}
	if r.Containers != nil {
		doc.Containers = make([]shipment.Container, 0, len(r.Containers))
		for _, c := range r.Containers {
			doc.AddContainer(c.Number, c.Type, c.SealNumber)
		}
	}
	doc.Version = r.Version
}

// RecordEventRequest appends an event to the shipment timeline.
type RecordEventRequest struct {
	Type        shipment.EventType `json:"type" binding:"required"`
	OccurredAt  *time.Time         `json:"occurredAt,omitempty"`
	Location    *string            `json:"location,omitempty"`
	Description string             `json:"description,omitempty"`
}

// --- Response DTOs ---

// ContainerResponse represents a container in API responses.
type ContainerResponse struct {
	ContainerID string  `json:"containerId"`
	Number      string  `json:"number"`
	Type        string  `json:"type"`
	SealNumber  *string `json:"sealNumber,omitempty"`
}

// EventResponse represents a timeline event in API responses.
type EventResponse struct {
	EventID     string             `json:"eventId"`
	Type        shipment.EventType `json:"type"`
	OccurredAt  time.Time          `json:"occurredAt"`
	Location    *string            `json:"location,omitempty"`
	Description string             `json:"description,omitempty"`
	RecordedBy  string             `json:"recordedBy,omitempty"`
}

// FromEvent creates response DTO from a domain event.
func FromEvent(e shipment.Event) EventResponse {
	return EventResponse{
		EventID:     e.EventID.String(),
		Type:        e.Type,
		OccurredAt:  e.OccurredAt,
		Location:    e.Location,
		Description: e.Description,
		RecordedBy:  e.RecordedBy,
	}
}

// FromEvents maps domain events to response DTOs.
func FromEvents(events []shipment.Event) []EventResponse {
	out := make([]EventResponse, len(events))
	for i, e := range events {
		out[i] = FromEvent(e)
	}
	return out
}

// ShipmentResponse is the response body for a shipment.
type ShipmentResponse struct {
	DocumentResponse
	InvoiceID       string              `json:"invoiceId"`
	CustomerID      string              `json:"customerId"`
	Status          shipment.Status     `json:"status"`
	VesselName      *string             `json:"vesselName,omitempty"`
	BillOfLading    *string             `json:"billOfLading,omitempty"`
	PortOfLoading   *string             `json:"portOfLoading,omitempty"`
	PortOfDischarge *string             `json:"portOfDischarge,omitempty"`
	ETD             *time.Time          `json:"etd,omitempty"`
	ETA             *time.Time          `json:"eta,omitempty"`
	Containers      []ContainerResponse `json:"containers"`
	Events          []EventResponse     `json:"events,omitempty"`
}

// FromShipment creates response DTO from domain entity.
func FromShipment(doc *shipment.Shipment) *ShipmentResponse {
	containers := make([]ContainerResponse, len(doc.Containers))
	for i, c := range doc.Containers {
		containers[i] = ContainerResponse{
			ContainerID: c.ContainerID.String(),
			Number:      c.Number,
			Type:        c.Type,
			SealNumber:  c.SealNumber,
		}
	}

	resp := &ShipmentResponse{
		DocumentResponse: FromDocument(doc.Document),
		InvoiceID:        doc.InvoiceID.String(),
		CustomerID:       doc.CustomerID.String(),
		Status:           doc.Status,
		VesselName:       doc.VesselName,
		BillOfLading:     doc.BillOfLading,
		PortOfLoading:    doc.PortOfLoading,
		PortOfDischarge:  doc.PortOfDischarge,
		ETD:              doc.ETD,
		ETA:              doc.ETA,
		Containers:       containers,
	}
	if len(doc.Events) > 0 {
		resp.Events = FromEvents(doc.Events)
	}
	return resp
}
