// Package catalog holds the pure catalog logic: filtering, searching
// and grouping products into the pages of the exported PDF.
package catalog

import (
	"strings"

	"distribuidora-mauri/models"
)

// Filter returns the products matching the selected category and search
// term. Category "Todas" matches everything, "Ofertas" matches products
// with an active offer price, any other category is an exact match.
// The search term is a case-insensitive substring match against the
// product name or description; an empty term matches everything.
func Filter(products []models.Product, category models.Category, term string) []models.Product {
	needle := strings.ToLower(strings.TrimSpace(term))

	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if !matchesCategory(p, category) {
			continue
		}
		if !matchesSearch(p, needle) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

// Offers returns the products with an active offer price, in catalog order.
func Offers(products []models.Product) []models.Product {
	offers := make([]models.Product, 0)
	for _, p := range products {
		if p.IsOffer() {
			offers = append(offers, p)
		}
	}
	return offers
}

func matchesCategory(p models.Product, category models.Category) bool {
	switch category {
	case models.CategoryTodas, "":
		return true
	case models.CategoryOfertas:
		return p.IsOffer()
	default:
		return p.Category == category
	}
}

func matchesSearch(p models.Product, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), needle) ||
		strings.Contains(strings.ToLower(p.Description), needle)
}
