package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-productos/internal/application/analytics"
	"github.com/jhoicas/catalogo-productos/internal/application/catalog"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Store             *catalog.ProductStore
	Categories        *catalog.CategoryRegistry
	Reports           *analytics.ReportUseCase
	PDF               analytics.ReportPDFGenerator
	XLSX              analytics.ReportXLSXExporter
	ExpiryDays        int
	LowStockThreshold int
	JWTSecret         string // vacío = API sin autenticación
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	// Sin secreto la API queda abierta (uso local); con secreto, escribir exige admin u operador.
	auth, write, admin := fiber.Handler(passThrough), fiber.Handler(passThrough), fiber.Handler(passThrough)
	if deps.JWTSecret != "" {
		auth = AuthMiddleware(deps.JWTSecret)
		write = RequireRole(RoleAdmin, RoleOperador)
		admin = RequireRole(RoleAdmin)
	}

	api := app.Group("/api", auth)

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.Store)
	products.Get("/", productHandler.List)
	products.Post("/", write, productHandler.Create)
	products.Get("/new-code", productHandler.NewCode)
	products.Get("/:code", productHandler.GetByCode)
	products.Put("/:code", write, productHandler.Update)
	products.Delete("/:code", write, productHandler.Delete)
	api.Post("/catalog/flush", write, productHandler.Flush)

	// Categories
	categories := api.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.Categories)
	categories.Get("/", categoryHandler.List)
	categories.Put("/", admin, categoryHandler.Replace)
	categories.Get("/:id", categoryHandler.GetByID)

	// Reports
	reports := api.Group("/reports")
	reportHandler := NewReportHandler(deps.Reports, deps.PDF, deps.XLSX, deps.ExpiryDays, deps.LowStockThreshold)
	reports.Get("/expiring", reportHandler.Expiring)
	reports.Get("/low-stock", reportHandler.LowStock)
	reports.Get("/margins", reportHandler.Margins)
	reports.Get("/sectors", reportHandler.Sectors)
	reports.Get("/export.pdf", reportHandler.ExportPDF)
	reports.Get("/export.xlsx", reportHandler.ExportXLSX)
}
