package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yochirolee/comercial-sub000/internal/core/apperror"
	"github.com/yochirolee/comercial-sub000/internal/core/id"
	"github.com/yochirolee/comercial-sub000/internal/domain/documents"
	"github.com/yochirolee/comercial-sub000/internal/domain/documents/customer_offer"
	"github.com/yochirolee/comercial-sub000/internal/domain/export"
	"github.com/yochirolee/comercial-sub000/internal/infrastructure/http/v1/dto"
	"github.com/yochirolee/comercial-sub000/internal/infrastructure/storage/postgres"
)

// CustomerOfferHandler handles customer offer endpoints.
type CustomerOfferHandler struct {
	*BaseHandler
	service  *customer_offer.Service
	products ProductSource
	exporter *export.ExcelExporter
	auditor  Auditor
}

// NewCustomerOfferHandler creates a customer offer handler.
func NewCustomerOfferHandler(
	base *BaseHandler,
	service *customer_offer.Service,
	products ProductSource,
	exporter *export.ExcelExporter,
	auditor Auditor,
) *CustomerOfferHandler {
	return &CustomerOfferHandler{
		BaseHandler: base,
		service:     service,
		products:    products,
		exporter:    exporter,
		auditor:     auditor,
	}
}

// List handles GET /customer-offers
func (h *CustomerOfferHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := customer_offer.ListFilter{ListFilter: h.parseDocumentFilter(c)}

	var ok bool
	if filter.CustomerID, ok = h.parseIDQuery(c, "customerId"); !ok {
		return
	}

	if status := c.Query("status"); status != "" {
		s := customer_offer.Status(status)
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
		items[i] = dto.FromCustomerOffer(doc)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Get handles GET /customer-offers/:id
func (h *CustomerOfferHandler) Get(c *gin.Context) {
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

	c.JSON(http.StatusOK, dto.FromCustomerOffer(doc))
}

// Create handles POST /customer-offers
func (h *CustomerOfferHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateCustomerOfferRequest
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

	c.JSON(http.StatusCreated, dto.FromCustomerOffer(doc))
}

// Update handles PUT /customer-offers/:id
func (h *CustomerOfferHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.UpdateCustomerOfferRequest
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

	c.JSON(http.StatusOK, dto.FromCustomerOffer(doc))
}

// Delete handles DELETE /customer-offers/:id
func (h *CustomerOfferHandler) Delete(c *gin.Context) {
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

// AdjustPrices handles POST /customer-offers/:id/adjust-prices
func (h *CustomerOfferHandler) AdjustPrices(c *gin.Context) {
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

	audit(ctx, h.auditor, "customer_offer", doc.ID, postgres.AuditActionAdjustPrices, map[string]any{
		"desiredTotal":  req.DesiredTotal.String(),
		"productsTotal": doc.ProductsTotal.String(),
	})

	c.JSON(http.StatusOK, dto.FromCustomerOffer(doc))
}

// SetStatus handles POST /customer-offers/:id/status
func (h *CustomerOfferHandler) SetStatus(c *gin.Context) {
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

	doc, err := h.service.SetStatus(ctx, docID, customer_offer.Status(req.Status))
	if err != nil {
		h.Error(c, err)
		return
	}

	audit(ctx, h.auditor, "customer_offer", doc.ID, postgres.AuditActionStatusChange, map[string]any{
		"status": string(doc.Status),
	})

	c.JSON(http.StatusOK, dto.FromCustomerOffer(doc))
}

// Export handles GET /customer-offers/:id/export
func (h *CustomerOfferHandler) Export(c *gin.Context) {
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

	data, err := h.exporter.CustomerOffer(doc)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.xlsx"`, doc.Number))
	c.Data(http.StatusOK, xlsxContentType, data)
}
