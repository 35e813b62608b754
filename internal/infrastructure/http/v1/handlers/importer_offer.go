package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yochirolee/comercial-sub000/internal/core/apperror"
	"github.com/yochirolee/comercial-sub000/internal/core/id"
	"github.com/yochirolee/comercial-sub000/internal/domain/documents"
	"github.com/yochirolee/comercial-sub000/internal/domain/documents/importer_offer"
	"github.com/yochirolee/comercial-sub000/internal/domain/export"
	"github.com/yochirolee/comercial-sub000/internal/infrastructure/http/v1/dto"
	"github.com/yochirolee/comercial-sub000/internal/infrastructure/storage/postgres"
)

// ImporterOfferHandler handles importer offer endpoints.
type ImporterOfferHandler struct {
	*BaseHandler
	service  *importer_offer.Service
	products ProductSource
	exporter *export.ExcelExporter
	auditor  Auditor
}

// NewImporterOfferHandler creates an importer offer handler.
func NewImporterOfferHandler(
	base *BaseHandler,
	service *importer_offer.Service,
	products ProductSource,
	exporter *export.ExcelExporter,
	auditor Auditor,
) *ImporterOfferHandler {
	return &ImporterOfferHandler{
		BaseHandler: base,
		service:     service,
		products:    products,
		exporter:    exporter,
		auditor:     auditor,
	}
}

// List handles GET /importer-offers
func (h *ImporterOfferHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := importer_offer.ListFilter{ListFilter: h.parseDocumentFilter(c)}

	var ok bool
	if filter.ImporterID, ok = h.parseIDQuery(c, "importerId"); !ok {
		return
	}
	if filter.SourceOfferID, ok = h.parseIDQuery(c, "sourceOfferId"); !ok {
		return
	}

	if status := c.Query("status"); status != "" {
		s := importer_offer.Status(status)
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
		items[i] = dto.FromImporterOffer(doc)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Get handles GET /importer-offers/:id
func (h *ImporterOfferHandler) Get(c *gin.Context) {
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

	c.JSON(http.StatusOK, dto.FromImporterOffer(doc))
}

// Create handles POST /importer-offers
func (h *ImporterOfferHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateImporterOfferRequest
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

	c.JSON(http.StatusCreated, dto.FromImporterOffer(doc))
}

// CreateFromCustomerOffer handles POST /importer-offers/from-customer-offer/:id
func (h *ImporterOfferHandler) CreateFromCustomerOffer(c *gin.Context) {
	ctx := c.Request.Context()

	sourceID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.DeriveImporterOfferRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := h.service.CreateFromCustomerOffer(ctx, sourceID, req.ToParams())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromImporterOffer(doc))
}

// Update handles PUT /importer-offers/:id
func (h *ImporterOfferHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.UpdateImporterOfferRequest
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

	c.JSON(http.StatusOK, dto.FromImporterOffer(doc))
}

// Delete handles DELETE /importer-offers/:id
func (h *ImporterOfferHandler) Delete(c *gin.Context) {
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

// AdjustPrices handles POST /importer-offers/:id/adjust-prices
func (h *ImporterOfferHandler) AdjustPrices(c *gin.Context) {
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

	audit(ctx, h.auditor, "importer_offer", doc.ID, postgres.AuditActionAdjustPrices, map[string]any{
		"desiredTotal":  req.DesiredTotal.String(),
		"productsTotal": doc.ProductsTotal.String(),
	})

	c.JSON(http.StatusOK, dto.FromImporterOffer(doc))
}

// SetStatus handles POST /importer-offers/:id/status
func (h *ImporterOfferHandler) SetStatus(c *gin.Context) {
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

	doc, err := h.service.SetStatus(ctx, docID, importer_offer.Status(req.Status))
	if err != nil {
		h.Error(c, err)
		return
	}

	audit(ctx, h.auditor, "importer_offer", doc.ID, postgres.AuditActionStatusChange, map[string]any{
		"status": string(doc.Status),
	})

	c.JSON(http.StatusOK, dto.FromImporterOffer(doc))
}

// Export handles GET /importer-offers/:id/export
func (h *ImporterOfferHandler) Export(c *gin.Context) {
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

	data, err := h.exporter.ImporterOffer(doc)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.xlsx"`, doc.Number))
	c.Data(http.StatusOK, xlsxContentType, data)
}
