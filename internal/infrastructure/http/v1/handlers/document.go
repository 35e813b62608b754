package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yochirolee/comercial-sub000/internal/core/apperror"
	"github.com/yochirolee/comercial-sub000/internal/core/id"
	"github.com/yochirolee/comercial-sub000/internal/domain"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// parseDocumentFilter reads the common document list parameters.
func (h *BaseHandler) parseDocumentFilter(c *gin.Context) domain.ListFilter {
	filter := domain.DefaultListFilter()
	filter.Search = c.Query("search")
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.OrderBy = c.DefaultQuery("orderBy", "date DESC")
	filter.IncludeDeleted = c.Query("includeDeleted") == "true"
	return filter
}

// parseIDQuery reads an optional UUID query parameter. On a malformed
// value it reports the error and returns ok=false.
func (h *BaseHandler) parseIDQuery(c *gin.Context, name string) (*id.ID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	parsed, err := id.Parse(raw)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid "+name+" format"))
		return nil, false
	}
	return &parsed, true
}

// parseDateRange reads the optional dateFrom/dateTo parameters (RFC 3339).
func (h *BaseHandler) parseDateRange(c *gin.Context) (*time.Time, *time.Time, bool) {
	var from, to *time.Time
	if raw := c.Query("dateFrom"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid dateFrom, expected RFC 3339"))
			return nil, nil, false
		}
		from = &t
	}
	if raw := c.Query("dateTo"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid dateTo, expected RFC 3339"))
			return nil, nil, false
		}
		to = &t
	}
	return from, to, true
}
