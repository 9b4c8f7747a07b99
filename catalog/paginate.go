package catalog

import (
	"distribuidora-mauri/models"
)

const (
	// OffersPerPage is the capacity of an offer-section page. Offer
	// pages use larger tiles, so they hold one row less than the
	// standard category pages.
	OffersPerPage = 9
	// ProductsPerPage is the capacity of a standard category page.
	ProductsPerPage = 12
)

// Paginate splits products into consecutive chunks of at most size
// items. The last chunk may be shorter; empty input yields no chunks.
func Paginate(products []models.Product, size int) [][]models.Product {
	if size <= 0 {
		return nil
	}

	var pages [][]models.Product
	for i := 0; i < len(products); i += size {
		end := i + size
		if end > len(products) {
			end = len(products)
		}
		pages = append(pages, products[i:end])
	}
	return pages
}

// BuildPages groups the selection into the page sequence of the PDF
// catalog: first the offer products as their own leading section, then
// every category present in the selection, in first-seen order. Offer
// products appear both in the offers section and in their category
// pages. Page numbers increase by one across the whole document,
// starting at 1, with no per-section reset.
func BuildPages(products []models.Product) []models.CatalogPage {
	var pages []models.CatalogPage
	pageNum := 0

	for _, group := range Paginate(Offers(products), OffersPerPage) {
		pageNum++
		pages = append(pages, models.CatalogPage{
			PageNumber:     pageNum,
			SectionTitle:   string(models.CategoryOfertas),
			AccentColor:    models.AccentFor(models.CategoryOfertas),
			Products:       group,
			IsOfferSection: true,
		})
	}

	for _, cat := range categoriesInOrder(products) {
		grouped := byCategory(products, cat)
		for _, group := range Paginate(grouped, ProductsPerPage) {
			pageNum++
			pages = append(pages, models.CatalogPage{
				PageNumber:   pageNum,
				SectionTitle: string(cat),
				AccentColor:  models.AccentFor(cat),
				Products:     group,
			})
		}
	}

	return pages
}

// categoriesInOrder returns the distinct product categories in the
// order they first appear in the selection.
func categoriesInOrder(products []models.Product) []models.Category {
	seen := make(map[models.Category]bool)
	var cats []models.Category
	for _, p := range products {
		if !seen[p.Category] {
			seen[p.Category] = true
			cats = append(cats, p.Category)
		}
	}
	return cats
}

func byCategory(products []models.Product, cat models.Category) []models.Product {
	var group []models.Product
	for _, p := range products {
		if p.Category == cat {
			group = append(group, p)
		}
	}
	return group
}
