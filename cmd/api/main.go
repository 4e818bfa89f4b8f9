package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/catalogo-productos/internal/application/analytics"
	"github.com/jhoicas/catalogo-productos/internal/application/catalog"
	"github.com/jhoicas/catalogo-productos/internal/infrastructure/flatfile"
	infrapdf "github.com/jhoicas/catalogo-productos/internal/infrastructure/pdf"
	infraxlsx "github.com/jhoicas/catalogo-productos/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/catalogo-productos/internal/interfaces/http"
	"github.com/jhoicas/catalogo-productos/pkg/config"
	"github.com/jhoicas/catalogo-productos/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("products_file", cfg.Catalog.ProductsFile).
		Str("categories_file", cfg.Catalog.CategoriesFile).
		Msg("iniciando aplicación")

	// Categorías primero: los productos las referencian por ID al decodificarse.
	registry := catalog.NewCategoryRegistry(flatfile.NewCategoryRepository(cfg.Catalog.CategoriesFile, log), log)
	if _, err := registry.Load(); err != nil {
		log.Fatal().Err(err).Msg("cargar categorías")
	}

	store := catalog.NewProductStore(flatfile.NewProductRepository(cfg.Catalog.ProductsFile, log), registry, log)
	report, err := store.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("cargar catálogo")
	}
	if len(report.Failures) > 0 {
		log.Warn().Int("failures", len(report.Failures)).Msg("líneas de catálogo omitidas; se eliminarán del archivo en el próximo guardado")
	}

	reportUC := analytics.NewReportUseCase(store)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    "Catálogo de productos API",
		}))
	} else {
		log.Warn().Str("file", cfg.HTTP.SwaggerFile).Msg("swagger no disponible")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "dirty": store.Dirty()})
	})

	if !cfg.JWT.AuthEnabled() {
		log.Warn().Msg("JWT_SECRET vacío: la API no exige autenticación")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		Store:             store,
		Categories:        registry,
		Reports:           reportUC,
		PDF:               infrapdf.NewMarotoReportGenerator(cfg.App.Name),
		XLSX:              infraxlsx.NewExcelizeReportExporter(),
		ExpiryDays:        cfg.Report.ExpiryDays,
		LowStockThreshold: cfg.Report.LowStockThreshold,
		JWTSecret:         cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	// Último intento si quedó un guardado pendiente.
	if store.Dirty() {
		if err := store.Flush(); err != nil {
			log.Error().Err(err).Msg("el catálogo en disco quedó desactualizado")
		}
	}

	log.Info().Msg("aplicación detenida")
}
