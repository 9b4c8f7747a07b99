package controller

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"distribuidora-mauri/models"
	"distribuidora-mauri/repository"
	"distribuidora-mauri/service"
)

// CatalogController handles the storefront page, the print-layout
// render page and the filtered product API.
type CatalogController struct {
	repo           repository.ProductRepositoryInterface
	catalogService *service.CatalogService
}

// NewCatalogController creates a new CatalogController.
func NewCatalogController(repo repository.ProductRepositoryInterface, catalogService *service.CatalogService) *CatalogController {
	return &CatalogController{
		repo:           repo,
		catalogService: catalogService,
	}
}

// parseSelection reads and validates the category and search term
// query parameters shared by every catalog endpoint.
func parseSelection(r *http.Request) (models.Category, string, error) {
	term := strings.TrimSpace(r.URL.Query().Get("q"))

	raw := strings.TrimSpace(r.URL.Query().Get("category"))
	if raw == "" {
		return models.CategoryTodas, term, nil
	}

	category := models.Category(raw)
	if !category.IsValid() {
		return "", "", fmt.Errorf("invalid category %q", raw)
	}
	return category, term, nil
}

// Storefront handles GET / - the interactive catalog page.
func (c *CatalogController) Storefront(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if r.URL.Path != "/" {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	category, term, err := parseSelection(r)
	if err != nil {
		log.Printf("❌ Storefront: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	html, err := c.catalogService.RenderStorefrontHTML(category, term)
	if err != nil {
		log.Printf("❌ Storefront: failed to render page: %v", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(html)); err != nil {
		log.Printf("❌ Storefront: error writing response: %v", err)
	}
}

// RenderCatalog handles GET /catalog/render - the paginated print
// layout used by the Chrome export engine and as a preview.
func (c *CatalogController) RenderCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	category, term, err := parseSelection(r)
	if err != nil {
		log.Printf("❌ RenderCatalog: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	html, err := c.catalogService.RenderCatalogHTML(category, term)
	if err != nil {
		log.Printf("❌ RenderCatalog: failed to render catalog: %v", err)
		http.Error(w, "Failed to render catalog", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(html)); err != nil {
		log.Printf("❌ RenderCatalog: error writing response: %v", err)
	}
}

// ListProducts handles GET /api/products?category=&q= - the filtered
// product list as JSON.
func (c *CatalogController) ListProducts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	category, term, err := parseSelection(r)
	if err != nil {
		log.Printf("❌ ListProducts: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	products := c.repo.GetFiltered(category, term)

	response := map[string]interface{}{
		"category": category,
		"q":        term,
		"count":    len(products),
		"products": products,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("❌ ListProducts: failed to encode response: %v", err)
	}
}
