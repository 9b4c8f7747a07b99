package router

import (
	"net/http"

	"distribuidora-mauri/app/controller"
)

type Controllers struct {
	Catalog *controller.CatalogController
	Export  *controller.ExportController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func SetupRoutes(controllers *Controllers, assetsDir string) {
	// Ping endpoint
	http.HandleFunc("/ping", pingHandler)

	// Storefront page (also answers 404 for unknown paths)
	http.HandleFunc("/", controllers.Catalog.Storefront)

	// Filtered product list
	http.HandleFunc("/api/products", controllers.Catalog.ListProducts)

	// Print-layout catalog page
	http.HandleFunc("/catalog/render", controllers.Catalog.RenderCatalog)

	// PDF export workflow
	http.HandleFunc("/catalog/export", controllers.Export.Export)
	http.HandleFunc("/catalog/export/progress", controllers.Export.Progress)

	// Static branding, product images and flyer PDFs
	http.Handle("/assets/", http.StripPrefix("/assets/", http.FileServer(http.Dir(assetsDir))))
}
