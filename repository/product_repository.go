package repository

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"log"

	"distribuidora-mauri/catalog"
	"distribuidora-mauri/models"
)

//go:embed products.json
var productsJSON []byte

// ProductRepository serves the static product catalog embedded in the
// binary. The list is parsed and validated once at startup; all reads
// return copies of derived views, never the backing slice itself.
type ProductRepository struct {
	products []models.Product
}

// Ensure ProductRepository implements ProductRepositoryInterface
var _ ProductRepositoryInterface = (*ProductRepository)(nil)

// NewProductRepository parses the embedded catalog and validates it.
func NewProductRepository() (*ProductRepository, error) {
	var products []models.Product
	if err := json.Unmarshal(productsJSON, &products); err != nil {
		return nil, fmt.Errorf("failed to parse product catalog: %w", err)
	}

	if err := validateCatalog(products); err != nil {
		return nil, fmt.Errorf("invalid product catalog: %w", err)
	}

	log.Printf("✅ ProductRepository: loaded %d products", len(products))
	return &ProductRepository{products: products}, nil
}

func validateCatalog(products []models.Product) error {
	if len(products) == 0 {
		return fmt.Errorf("catalog is empty")
	}

	seen := make(map[int]bool, len(products))
	for _, p := range products {
		if seen[p.ID] {
			return fmt.Errorf("duplicate product id %d", p.ID)
		}
		seen[p.ID] = true

		if p.Name == "" {
			return fmt.Errorf("product %d has no name", p.ID)
		}
		if p.Category.IsVirtual() {
			return fmt.Errorf("product %d uses virtual category %q", p.ID, p.Category)
		}
		if !p.Category.IsProductCategory() {
			return fmt.Errorf("product %d has unknown category %q", p.ID, p.Category)
		}
	}
	return nil
}

// GetAll returns the full catalog in insertion order.
func (r *ProductRepository) GetAll() []models.Product {
	out := make([]models.Product, len(r.products))
	copy(out, r.products)
	return out
}

// GetFiltered returns the products matching the category and search term.
func (r *ProductRepository) GetFiltered(category models.Category, term string) []models.Product {
	return catalog.Filter(r.products, category, term)
}

// GetOffers returns the products with an active offer price.
func (r *ProductRepository) GetOffers() []models.Product {
	return catalog.Offers(r.products)
}

// Count returns the catalog size.
func (r *ProductRepository) Count() int {
	return len(r.products)
}
