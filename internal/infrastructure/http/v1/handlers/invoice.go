package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yochirolee/comercial-sub000/internal/core/apperror"
	"github.com/yochirolee/comercial-sub000/internal/core/id"
	"github.com/yochirolee/comercial-sub000/internal/domain/documents"
	"github.com/yochirolee/comercial-sub000/internal/domain/documents/invoice"
	"github.com/yochirolee/comercial-sub000/internal/domain/export"
	"github.com/yochirolee/comercial-sub000/internal/infrastructure/http/v1/dto"
	"github.com/yochirolee/comercial-sub000/internal/infrastructure/storage/postgres"
)

// InvoiceHandler handles invoice endpoints.
type InvoiceHandler struct {
	*BaseHandler
	service  *invoice.Service
	products ProductSource
	exporter *export.ExcelExporter
	auditor  Auditor
}

// NewInvoiceHandler creates an invoice handler.
func NewInvoiceHandler(
	base *BaseHandler,
	service *invoice.Service,
	products ProductSource,
	exporter *export.ExcelExporter,
	auditor Auditor,
) *InvoiceHandler {
	return &InvoiceHandler{
		BaseHandler: base,
		service:     service,
		products:    products,
		exporter:    exporter,
		auditor:     auditor,
	}
}

// List handles GET /invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := invoice.ListFilter{ListFilter: h.parseDocumentFilter(c)}

	var ok bool
	if filter.CustomerID, ok = h.parseIDQuery(c, "customerId"); !ok {
		return
	}
	if filter.SourceOfferID, ok = h.parseIDQuery(c, "sourceOfferId"); !ok {
		return
	}

	if status := c.Query("status"); status != "" {
		s := invoice.Status(status)
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
		items[i] = dto.FromInvoice(doc)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Get handles GET /invoices/:id
func (h *InvoiceHandler) Get(c *gin.Context) {
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

	c.JSON(http.StatusOK, dto.FromInvoice(doc))
}

// Create handles POST /invoices
func (h *InvoiceHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateInvoiceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	lines, err := buildLines(ctx, h.products, req.Lines)
	if err != nil {
		h.Error(c, err)
		return
	}

	doc := req.ToEntity(lines)

	if err := h.service.Create(ctx, doc); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromInvoice(doc))
}

// CreateFromImporterOffer handles POST /invoices/from-importer-offer/:id
func (h *InvoiceHandler) CreateFromImporterOffer(c *gin.Context) {
	ctx := c.Request.Context()

	sourceID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.DeriveInvoiceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := h.service.CreateFromImporterOffer(ctx, sourceID, req.ToParams())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromInvoice(doc))
}

// Update handles PUT /invoices/:id
func (h *InvoiceHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.UpdateInvoiceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := h.service.GetByID(ctx, docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	var lines []documents.Line
	if req.Lines != nil {
		if lines, err = buildLines(ctx, h.products, req.Lines); err != nil {
			h.Error(c, err)
			return
		}
	}
	req.ApplyTo(doc, lines)

	if err := h.service.Update(ctx, doc); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromInvoice(doc))
}

// Delete handles DELETE /invoices/:id
func (h *InvoiceHandler) Delete(c *gin.Context) {
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

// AdjustPrices handles POST /invoices/:id/adjust-prices
func (h *InvoiceHandler) AdjustPrices(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.AdjustPricesRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := h.service.AdjustPrices(ctx, docID, req.DesiredTotal)
	if err != nil {
		h.Error(c, err)
		return
	}

	audit(ctx, h.auditor, "invoice", doc.ID, postgres.AuditActionAdjustPrices, map[string]any{
		"desiredTotal":  req.DesiredTotal.String(),
		"productsTotal": doc.ProductsTotal.String(),
	})

	c.JSON(http.StatusOK, dto.FromInvoice(doc))
}

// SetStatus handles POST /invoices/:id/status
func (h *InvoiceHandler) SetStatus(c *gin.Context) {
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

	doc, err := h.service.SetStatus(ctx, docID, invoice.Status(req.Status))
	if err != nil {
		h.Error(c, err)
		return
	}

	audit(ctx, h.auditor, "invoice", doc.ID, postgres.AuditActionStatusChange, map[string]any{
		"status": string(doc.Status),
	})

	c.JSON(http.StatusOK, dto.FromInvoice(doc))
}

// Export handles GET /invoices/:id/export
func (h *InvoiceHandler) Export(c *gin.Context) {
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

	data, err := h.exporter.Invoice(doc)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.xlsx"`, doc.Number))
	c.Data(http.StatusOK, xlsxContentType, data)
}
