package v1

import (
	"context"

	"github.com/gin-gonic/gin"

	appctx "github.com/yochirolee/comercial-sub000/internal/core/context"
	"github.com/yochirolee/comercial-sub000/internal/core/id"
	"github.com/yochirolee/comercial-sub000/internal/core/numerator"
	"github.com/yochirolee/comercial-sub000/internal/domain"
	"github.com/yochirolee/comercial-sub000/internal/domain/auth"
	"github.com/yochirolee/comercial-sub000/internal/domain/catalogs/customer"
	"github.com/yochirolee/comercial-sub000/internal/domain/catalogs/product"
	"github.com/yochirolee/comercial-sub000/internal/domain/documents/customer_offer"
	"github.com/yochirolee/comercial-sub000/internal/domain/documents/importer_offer"
	"github.com/yochirolee/comercial-sub000/internal/domain/documents/invoice"
	"github.com/yochirolee/comercial-sub000/internal/domain/documents/shipment"
	"github.com/yochirolee/comercial-sub000/internal/domain/export"
	"github.com/yochirolee/comercial-sub000/internal/infrastructure/http/v1/handlers"
	"github.com/yochirolee/comercial-sub000/internal/infrastructure/http/v1/middleware"
	"github.com/yochirolee/comercial-sub000/internal/infrastructure/storage/postgres"
	"github.com/yochirolee/comercial-sub000/internal/infrastructure/storage/postgres/catalog_repo"
	"github.com/yochirolee/comercial-sub000/internal/infrastructure/storage/postgres/document_repo"
	"github.com/yochirolee/comercial-sub000/pkg/logger"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Pool is the database connection pool (for health checks)
	Pool *postgres.Pool

	// TxManager runs repository operations in transactions
	TxManager *postgres.TxManager

	// Logger for request logging
	Logger *logger.Logger

	// JWTValidator for token validation
	JWTValidator middleware.JWTValidator

	// AuthService for authentication endpoints
	AuthService *auth.Service

	// Numerator for document number generation
	Numerator numerator.Generator

	// Audit records entity changes; nil disables audit logging
	Audit *postgres.AuditService

	// Version reported by /health/info
	Version string
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool, cfg.Version)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// API v1
	apiV1 := router.Group("/api/v1")
	{
		registerAuthRoutes(apiV1, cfg)

		protected := apiV1.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))

		registerCatalogRoutes(protected, cfg)
		registerDocumentRoutes(protected, cfg)
	}

	return router
}

// registerAuthRoutes registers authentication endpoints.
func registerAuthRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.AuthService == nil {
		return
	}

	baseHandler := handlers.NewBaseHandler()
	authHandler := handlers.NewAuthHandler(baseHandler, cfg.AuthService)

	publicAuth := rg.Group("/auth")

	protectedAuth := rg.Group("/auth")
	protectedAuth.Use(middleware.Auth(cfg.JWTValidator))

	authHandler.RegisterRoutes(publicAuth, protectedAuth)
}

// registerCatalogRoutes registers catalog endpoints.
func registerCatalogRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	catalogs := rg.Group("/catalog")
	baseHandler := handlers.NewBaseHandler()

	// --- CUSTOMERS ---
	{
		repo := catalog_repo.NewCustomerRepo(cfg.TxManager)
		service := customer.NewService(repo, cfg.TxManager, cfg.Numerator)
		handler := handlers.NewCustomerHandler(baseHandler, service)
		RegisterCatalogRoutes(catalogs.Group("/customers"), handler, "catalog:customer")
	}

	// --- PRODUCTS ---
	{
		repo := catalog_repo.NewProductRepo(cfg.TxManager)
		service := product.NewService(repo, cfg.TxManager, cfg.Numerator)
		handler := handlers.NewProductHandler(baseHandler, service)
		RegisterCatalogRoutes(catalogs.Group("/products"), handler, "catalog:product")
	}
}

// registerDocumentRoutes registers document endpoints.
func registerDocumentRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	docsGroup := rg.Group("/document")
	baseHandler := handlers.NewBaseHandler()

	// Shared dependencies
	productRepo := catalog_repo.NewProductRepo(cfg.TxManager)
	productService := product.NewService(productRepo, cfg.TxManager, cfg.Numerator)
	exporter := export.NewExcelExporter()

	var auditor handlers.Auditor
	if cfg.Audit != nil {
		auditor = cfg.Audit
	}

	offerRepo := document_repo.NewCustomerOfferRepo(cfg.TxManager)
	offerService := customer_offer.NewService(offerRepo, cfg.Numerator, cfg.TxManager)

	importerRepo := document_repo.NewImporterOfferRepo(cfg.TxManager)
	importerService := importer_offer.NewService(importerRepo, offerService, cfg.Numerator, cfg.TxManager)

	invoiceRepo := document_repo.NewInvoiceRepo(cfg.TxManager)
	invoiceService := invoice.NewService(invoiceRepo, importerService, cfg.Numerator, cfg.TxManager)

	shipmentRepo := document_repo.NewShipmentRepo(cfg.TxManager)
	shipmentService := shipment.NewService(shipmentRepo, invoiceService, cfg.Numerator, cfg.TxManager)

	// --- CUSTOMER OFFERS ---
	{
		offerService.Hooks().On(domain.BeforeCreate, func(ctx context.Context, doc *customer_offer.CustomerOffer) error {
			enrichCreatedBy(ctx, &doc.CreatedBy, &doc.UpdatedBy)
			return nil
		})
		offerService.Hooks().On(domain.BeforeUpdate, func(ctx context.Context, doc *customer_offer.CustomerOffer) error {
			enrichUpdatedBy(ctx, &doc.UpdatedBy)
			return nil
		})
		if cfg.Audit != nil {
			registerAuditHooks(offerService.Hooks(), cfg.Audit, "customer_offer",
				func(d *customer_offer.CustomerOffer) (id.ID, int) { return d.ID, d.Version })
		}

		handler := handlers.NewCustomerOfferHandler(baseHandler, offerService, productService, exporter, auditor)
		RegisterDocumentRoutes(docsGroup.Group("/customer-offers"), handler, "document:customer_offer")
	}

	// --- IMPORTER OFFERS ---
	{
		importerService.Hooks().On(domain.BeforeCreate, func(ctx context.Context, doc *importer_offer.ImporterOffer) error {
			enrichCreatedBy(ctx, &doc.CreatedBy, &doc.UpdatedBy)
			return nil
		})
		importerService.Hooks().On(domain.BeforeUpdate, func(ctx context.Context, doc *importer_offer.ImporterOffer) error {
			enrichUpdatedBy(ctx, &doc.UpdatedBy)
			return nil
		})
		if cfg.Audit != nil {
			registerAuditHooks(importerService.Hooks(), cfg.Audit, "importer_offer",
				func(d *importer_offer.ImporterOffer) (id.ID, int) { return d.ID, d.Version })
		}

		handler := handlers.NewImporterOfferHandler(baseHandler, importerService, productService, exporter, auditor)
		group := docsGroup.Group("/importer-offers")
		RegisterDocumentRoutes(group, handler, "document:importer_offer")
		group.POST("/from-customer-offer/:id",
			middleware.RequirePermission("document:importer_offer:create"),
			handler.CreateFromCustomerOffer)
	}

	// --- INVOICES ---
	{
		invoiceService.Hooks().On(domain.BeforeCreate, func(ctx context.Context, doc *invoice.Invoice) error {
			enrichCreatedBy(ctx, &doc.CreatedBy, &doc.UpdatedBy)
			return nil
		})
		invoiceService.Hooks().On(domain.BeforeUpdate, func(ctx context.Context, doc *invoice.Invoice) error {
			enrichUpdatedBy(ctx, &doc.UpdatedBy)
			return nil
		})
		if cfg.Audit != nil {
			registerAuditHooks(invoiceService.Hooks(), cfg.Audit, "invoice",
				func(d *invoice.Invoice) (id.ID, int) { return d.ID, d.Version })
		}

		handler := handlers.NewInvoiceHandler(baseHandler, invoiceService, productService, exporter, auditor)
		group := docsGroup.Group("/invoices")
		RegisterDocumentRoutes(group, handler, "document:invoice")
		group.POST("/from-importer-offer/:id",
			middleware.RequirePermission("document:invoice:create"),
			handler.CreateFromImporterOffer)
	}

	// --- SHIPMENTS ---
	{
		shipmentService.Hooks().On(domain.BeforeCreate, func(ctx context.Context, doc *shipment.Shipment) error {
			enrichCreatedBy(ctx, &doc.CreatedBy, &doc.UpdatedBy)
			return nil
		})
		shipmentService.Hooks().On(domain.BeforeUpdate, func(ctx context.Context, doc *shipment.Shipment) error {
			enrichUpdatedBy(ctx, &doc.UpdatedBy)
			return nil
		})
		if cfg.Audit != nil {
			registerAuditHooks(shipmentService.Hooks(), cfg.Audit, "shipment",
				func(d *shipment.Shipment) (id.ID, int) { return d.ID, d.Version })
		}

		handler := handlers.NewShipmentHandler(baseHandler, shipmentService, auditor)
		group := docsGroup.Group("/shipments")
		perm := "document:shipment"
		group.GET("", middleware.RequirePermission(perm+":read"), handler.List)
		group.POST("", middleware.RequirePermission(perm+":create"), handler.Create)
		group.GET("/:id", middleware.RequirePermission(perm+":read"), handler.Get)
		group.PUT("/:id", middleware.RequirePermission(perm+":update"), handler.Update)
		group.DELETE("/:id", middleware.RequirePermission(perm+":delete"), handler.Delete)
		group.POST("/:id/status", middleware.RequirePermission(perm+":update"), handler.SetStatus)
		group.POST("/:id/events", middleware.RequirePermission(perm+":update"), handler.RecordEvent)
		group.GET("/:id/timeline", middleware.RequirePermission(perm+":read"), handler.Timeline)
	}
}

// enrichCreatedBy stamps the authenticated user on a new document.
func enrichCreatedBy(ctx context.Context, createdBy, updatedBy *string) {
	if userID := appctx.GetUserID(ctx); userID != "" {
		*createdBy = userID
		*updatedBy = userID
	}
}

// enrichUpdatedBy stamps the authenticated user on an updated document.
func enrichUpdatedBy(ctx context.Context, updatedBy *string) {
	if userID := appctx.GetUserID(ctx); userID != "" {
		*updatedBy = userID
	}
}

// registerAuditHooks records create and update operations for a document
// type in the audit log.
func registerAuditHooks[T any](
	hooks *domain.HookRegistry[T],
	svc *postgres.AuditService,
	entityType string,
	info func(T) (id.ID, int),
) {
	hooks.On(domain.AfterCreate, auditHook(svc, entityType, postgres.AuditActionCreate, info))
	hooks.On(domain.AfterUpdate, auditHook(svc, entityType, postgres.AuditActionUpdate, info))
}

// auditHook builds an after-write hook that records the change in the
// audit log. Failures are logged and swallowed: the write has already
// happened.
func auditHook[T any](
	svc *postgres.AuditService,
	entityType string,
	action postgres.AuditAction,
	info func(T) (id.ID, int),
) domain.Hook[T] {
	return func(ctx context.Context, doc T) error {
		docID, version := info(doc)
		if err := svc.LogChange(ctx, entityType, docID, action, map[string]any{
			"version": version,
		}); err != nil {
			logger.Warn(ctx, "audit write failed",
				"entityType", entityType,
				"entityId", docID,
				"action", action,
				"error", err)
		}
		return nil
	}
}
