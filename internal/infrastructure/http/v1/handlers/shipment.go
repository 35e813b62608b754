package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yochirolee/comercial-sub000/internal/core/apperror"
	"github.com/yochirolee/comercial-sub000/internal/core/id"
	"github.com/yochirolee/comercial-sub000/internal/domain/documents/shipment"
	"github.com/yochirolee/comercial-sub000/internal/infrastructure/http/v1/dto"
	"github.com/yochirolee/comercial-sub000/internal/infrastructure/storage/postgres"
)

// ShipmentHandler handles shipment endpoints.
type ShipmentHandler struct {
	*BaseHandler
	service *shipment.Service
	auditor Auditor
}

// NewShipmentHandler creates a shipment handler.
func NewShipmentHandler(base *BaseHandler, service *shipment.Service, auditor Auditor) *ShipmentHandler {
	return &ShipmentHandler{
		BaseHandler: base,
		service:     service,
		auditor:     auditor,
	}
}

// List handles GET /shipments
func (h *ShipmentHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := shipment.ListFilter{ListFilter: h.parseDocumentFilter(c)}

	var ok bool
	if filter.InvoiceID, ok = h.parseIDQuery(c, "invoiceId"); !ok {
		return
	}
	if filter.CustomerID, ok = h.parseIDQuery(c, "customerId"); !ok {
		return
	}

	if status := c.Query("status"); status != "" {
		s := shipment.Status(status)
		filter.Status = &s
	}

	if filter.DateFrom, filter.DateTo, ok = h.parseDateRange(c); !ok {
		return
	}

	result, err := h.service.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]any, len(result.Items))
	for i, doc := range result.Items {
		items[i] = dto.FromShipment(doc)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Get handles GET /shipments/:id
func (h *ShipmentHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	doc, err := h.service.GetByID(ctx, docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromShipment(doc))
}

// Create handles POST /shipments. The shipment is opened against an
// invoice; voyage details and containers may be supplied up front.
func (h *ShipmentHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateShipmentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	invoiceID, err := id.Parse(req.InvoiceID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid invoiceId format"))
		return
	}

	doc, err := h.service.CreateForInvoice(ctx, invoiceID)
	if err != nil {
		h.Error(c, err)
		return
	}

	if req.HasDetails() {
		req.ApplyTo(doc)
		if err := h.service.Update(ctx, doc); err != nil {
			h.Error(c, err)
			return
		}
	}

	c.JSON(http.StatusCreated, dto.FromShipment(doc))
}

// Update handles PUT /shipments/:id
func (h *ShipmentHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.UpdateShipmentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := h.service.GetByID(ctx, docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	req.ApplyTo(doc)

	if err := h.service.Update(ctx, doc); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromShipment(doc))
}

// Delete handles DELETE /shipments/:id
func (h *ShipmentHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.service.Delete(ctx, docID); err != nil {
		h.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// SetStatus handles POST /shipments/:id/status
func (h *ShipmentHandler) SetStatus(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.SetStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := h.service.SetStatus(ctx, docID, shipment.Status(req.Status))
	if err != nil {
		h.Error(c, err)
		return
	}

	audit(ctx, h.auditor, "shipment", doc.ID, postgres.AuditActionStatusChange, map[string]any{
		"status": string(doc.Status),
	})

	c.JSON(http.StatusOK, dto.FromShipment(doc))
}

// RecordEvent handles POST /shipments/:id/events
func (h *ShipmentHandler) RecordEvent(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.RecordEventRequest
	if !h.BindJSON(c, &req) {
		return
	}

	occurredAt := time.Now().UTC()
	if req.OccurredAt != nil {
		occurredAt = *req.OccurredAt
	}

	event, err := h.service.RecordEvent(ctx, docID, req.Type, occurredAt, req.Location, req.Description)
	if err != nil {
		h.Error(c, err)
		return
	}

	audit(ctx, h.auditor, "shipment", docID, postgres.AuditActionEvent, map[string]any{
		"eventType":  string(event.Type),
		"occurredAt": event.OccurredAt,
	})

	c.JSON(http.StatusCreated, dto.FromEvent(*event))
}

// Timeline handles GET /shipments/:id/timeline
func (h *ShipmentHandler) Timeline(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	events, err := h.service.Timeline(ctx, docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": dto.FromEvents(events)})
}
