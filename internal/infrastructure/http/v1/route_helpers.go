// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/yochirolee/comercial-sub000/internal/infrastructure/http/v1/middleware"
)

// CatalogRouteHandler defines the interface for catalog handlers.
// All catalog handlers must implement these methods.
type CatalogRouteHandler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	SetDeletionMark(c *gin.Context)
	GetTree(c *gin.Context)
}

// DocumentRouteHandler defines the interface for document handlers.
// All document handlers must implement these methods.
type DocumentRouteHandler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	AdjustPrices(c *gin.Context)
	SetStatus(c *gin.Context)
}

// DocumentExportHandler is an optional interface for documents that
// can be exported to a spreadsheet.
type DocumentExportHandler interface {
	Export(c *gin.Context)
}

// RegisterCatalogRoutes registers standard CRUD routes for a catalog.
// This eliminates the need to manually wire up routes for each catalog.
//
// Usage:
//
//	repo := catalog_repo.NewCustomerRepo(cfg.TxManager)
//	service := customer.NewService(repo, cfg.TxManager, cfg.Numerator)
//	handler := handlers.NewCustomerHandler(baseHandler, service)
//	RegisterCatalogRoutes(catalogs.Group("/customers"), handler, "catalog:customer")
func RegisterCatalogRoutes(group *gin.RouterGroup, handler CatalogRouteHandler, permission string) {
	group.GET("", middleware.RequirePermission(permission+":read"), handler.List)
	group.POST("", middleware.RequirePermission(permission+":create"), handler.Create)
	group.GET("/:id", middleware.RequirePermission(permission+":read"), handler.Get)
	group.PUT("/:id", middleware.RequirePermission(permission+":update"), handler.Update)
	group.DELETE("/:id", middleware.RequirePermission(permission+":delete"), handler.Delete)
	group.POST("/:id/deletion-mark", middleware.RequirePermission(permission+":delete"), handler.SetDeletionMark)
	group.GET("/tree", middleware.RequirePermission(permission+":read"), handler.GetTree)
}

// RegisterDocumentRoutes registers standard CRUD + workflow routes for a
// document. If the handler also implements DocumentExportHandler, the
// export route is registered automatically.
//
// Usage:
//
//	repo := document_repo.NewCustomerOfferRepo(cfg.TxManager)
//	service := customer_offer.NewService(repo, cfg.TxManager, cfg.Numerator)
//	handler := handlers.NewCustomerOfferHandler(baseHandler, service, products, exporter, auditor)
//	RegisterDocumentRoutes(documents.Group("/customer-offers"), handler, "document:customer_offer")
func RegisterDocumentRoutes(group *gin.RouterGroup, handler DocumentRouteHandler, permission string) {
	group.GET("", middleware.RequirePermission(permission+":read"), handler.List)
	group.POST("", middleware.RequirePermission(permission+":create"), handler.Create)
	group.GET("/:id", middleware.RequirePermission(permission+":read"), handler.Get)
	group.PUT("/:id", middleware.RequirePermission(permission+":update"), handler.Update)
	group.DELETE("/:id", middleware.RequirePermission(permission+":delete"), handler.Delete)
	group.POST("/:id/adjust-prices", middleware.RequirePermission(permission+":adjust"), handler.AdjustPrices)
	group.POST("/:id/status", middleware.RequirePermission(permission+":update"), handler.SetStatus)

	if exportHandler, ok := handler.(DocumentExportHandler); ok {
		group.GET("/:id/export", middleware.RequirePermission(permission+":read"), exportHandler.Export)
	}
}
