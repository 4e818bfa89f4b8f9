// migrate_catalog normaliza un archivo de catálogo heredado: lo lee (cabecera ajena, CRLF o
// Windows-1252 incluidos), informa las líneas descartadas y lo reescribe en UTF-8 con la cabecera actual.
//
// Uso: go run ./cmd/migrate_catalog [ruta/productos.csv]
// Por defecto usa CATALOG_PRODUCTS_FILE y CATALOG_CATEGORIES_FILE de la configuración.
package main

import (
	"fmt"
	"os"

	"github.com/jhoicas/catalogo-productos/internal/application/catalog"
	"github.com/jhoicas/catalogo-productos/internal/infrastructure/flatfile"
	"github.com/jhoicas/catalogo-productos/pkg/config"
	"github.com/jhoicas/catalogo-productos/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}
	productsPath := cfg.Catalog.ProductsFile
	if len(os.Args) > 1 {
		productsPath = os.Args[1]
	}
	if _, err := os.Stat(productsPath); err != nil {
		fmt.Fprintf(os.Stderr, "Abrir catálogo: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Output: os.Stderr})

	registry := catalog.NewCategoryRegistry(flatfile.NewCategoryRepository(cfg.Catalog.CategoriesFile, log), log)
	if _, err := registry.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Cargar categorías: %v\n", err)
		os.Exit(1)
	}

	store := catalog.NewProductStore(flatfile.NewProductRepository(productsPath, log), registry, log)
	report, err := store.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar catálogo: %v\n", err)
		os.Exit(1)
	}
	for _, f := range report.Failures {
		fmt.Printf("descartada: %v\n", f)
	}

	if err := store.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Guardar catálogo: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Migrado %s: %d productos, %d líneas descartadas\n", productsPath, report.Loaded, len(report.Failures))
}
