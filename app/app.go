package app

import (
	"fmt"
	"log"
	"os"
	"strings"

	"distribuidora-mauri/app/controller"
	"distribuidora-mauri/app/router"
	"distribuidora-mauri/repository"
	"distribuidora-mauri/service"
)

// Default static flyer documents, merged ahead of the generated
// catalog in exactly this order.
var defaultStaticPDFs = []string{
	"assets/Portada.pdf",
	"assets/OfertaVino.pdf",
	"assets/OfertaNico.pdf",
}

// Initialize wires the application: static catalog, services,
// controllers and routes.
func Initialize() error {
	// Load the embedded product catalog
	productRepo, err := repository.NewProductRepository()
	if err != nil {
		return fmt.Errorf("failed to load product catalog: %w", err)
	}

	if err := service.EnsureCacheDir(); err != nil {
		return err
	}

	assetsDir := os.Getenv("ASSETS_DIR")
	if assetsDir == "" {
		assetsDir = "assets"
	}

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	// Static flyers can be overridden with a comma-separated list of
	// paths or URLs.
	staticPDFs := defaultStaticPDFs
	if raw := os.Getenv("STATIC_PDFS"); raw != "" {
		staticPDFs = nil
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				staticPDFs = append(staticPDFs, s)
			}
		}
	}

	imageService := service.NewImageService(assetsDir)
	renderer := service.NewCatalogRenderer(imageService)
	catalogService := service.NewCatalogService(productRepo, baseURL)
	mergeService := service.NewMergeService(staticPDFs)

	// The native engine draws the catalog directly; EXPORT_ENGINE=chrome
	// switches to printing the HTML render page with headless Chrome.
	var engine service.CatalogEngine = service.NewNativeEngine(renderer)
	if os.Getenv("EXPORT_ENGINE") == "chrome" {
		log.Printf("🖨️  Using Chrome export engine")
		engine = service.NewChromeEngine(baseURL)
	}

	exportService := service.NewExportService(productRepo, engine, mergeService)

	controllers := &router.Controllers{
		Catalog: controller.NewCatalogController(productRepo, catalogService),
		Export:  controller.NewExportController(exportService),
	}

	router.SetupRoutes(controllers, assetsDir)

	return nil
}
