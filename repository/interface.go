package repository

import (
	"distribuidora-mauri/models"
)

// ProductRepositoryInterface defines the contract for reading the
// product catalog. The catalog is fixed at build time and never
// mutated, so the interface is read-only.
type ProductRepositoryInterface interface {
	GetAll() []models.Product
	GetFiltered(category models.Category, term string) []models.Product
	GetOffers() []models.Product
	Count() int
}
