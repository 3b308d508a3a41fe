package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/kardex-api/internal/application/audit"
	"github.com/jhoicas/kardex-api/internal/application/auth"
	"github.com/jhoicas/kardex-api/internal/application/inventory"
	"github.com/jhoicas/kardex-api/internal/application/reports"
	"github.com/jhoicas/kardex-api/internal/application/usecase"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ItemUC     *usecase.ItemUseCase
	CategoryUC *usecase.CategoryUseCase
	LocationUC *usecase.LocationUseCase
	SupplierUC *usecase.SupplierUseCase
	MovementUC *inventory.MovementUseCase
	AlertUC    *inventory.AlertUseCase
	QueryUC    *inventory.QueryUseCase
	ReportUC   *reports.PDFUseCase
	Auditor    *audit.Recorder
	AuthUC     *auth.AuthUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Items + kardex + alertas por artículo (protegido)
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	movementHandler := NewMovementHandler(deps.MovementUC, deps.QueryUC)
	alertHandler := NewAlertHandler(deps.AlertUC, deps.QueryUC)
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", RequireRole(entity.RoleAdmin, entity.RoleManager), itemHandler.Delete)
	items.Post("/:id/movements", movementHandler.Register)
	items.Get("/:id/movements", movementHandler.History)
	items.Get("/:id/ledger-check", movementHandler.VerifyLedger)
	items.Get("/:id/alerts", alertHandler.ActiveByItem)
	items.Post("/:id/alerts/evaluate", alertHandler.EvaluateItem)

	// Alerts (protegido)
	alerts := protected.Group("/alerts")
	alerts.Get("/", alertHandler.List)
	alerts.Put("/:id", alertHandler.UpdateStatus)

	// Categories (protegido)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", RequireRole(entity.RoleAdmin, entity.RoleManager), categoryHandler.Delete)

	// Locations (protegido)
	locations := protected.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Post("/", locationHandler.Create)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.GetByID)
	locations.Put("/:id", locationHandler.Update)
	locations.Delete("/:id", RequireRole(entity.RoleAdmin, entity.RoleManager), locationHandler.Delete)

	// Suppliers (protegido)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", RequireRole(entity.RoleAdmin, entity.RoleManager), supplierHandler.Delete)

	// Reports (protegido)
	reportHandler := NewReportHandler(deps.ReportUC)
	protected.Get("/reports/inventory.pdf", reportHandler.InventoryPDF)

	// Audit (solo admin/manager)
	auditHandler := NewAuditHandler(deps.Auditor)
	protected.Get("/audit-logs", RequireRole(entity.RoleAdmin, entity.RoleManager), auditHandler.List)
}
