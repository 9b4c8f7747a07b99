package models

// Category identifies a product section of the catalog.
// "Todas" and "Ofertas" are virtual filters used by the storefront;
// no stored product ever carries them as its category.
type Category string

const (
	CategoryTodas        Category = "Todas"
	CategoryOfertas      Category = "Ofertas"
	CategoryComestibles  Category = "Comestibles"
	CategoryBebidas      Category = "Bebidas"
	CategoryHigiene      Category = "Higiene"
	CategoryLimpieza     Category = "Limpieza"
	CategoryMedicamentos Category = "Medicamentos"
	CategoryOtros        Category = "Otros"
)

// Categories lists every selectable category in storefront order.
var Categories = []Category{
	CategoryTodas,
	CategoryOfertas,
	CategoryComestibles,
	CategoryBebidas,
	CategoryHigiene,
	CategoryLimpieza,
	CategoryMedicamentos,
	CategoryOtros,
}

// ProductCategories lists the categories a stored product may carry
// (the selectable set minus the virtual filters).
var ProductCategories = []Category{
	CategoryComestibles,
	CategoryBebidas,
	CategoryHigiene,
	CategoryLimpieza,
	CategoryMedicamentos,
	CategoryOtros,
}

// CategoryAccent maps every category to its accent color (hex).
// Keep this map in sync with Categories; the exhaustiveness test in
// product_test.go fails the build of any new category without a color.
var CategoryAccent = map[Category]string{
	CategoryOfertas:      "#EF4444",
	CategoryComestibles:  "#FDBA74",
	CategoryBebidas:      "#93C5FD",
	CategoryHigiene:      "#5EEAD4",
	CategoryLimpieza:     "#D8B4FE",
	CategoryMedicamentos: "#FCA5A5",
	CategoryOtros:        "#CBD5A0",
}

// DefaultAccent is used for any category missing from CategoryAccent.
const DefaultAccent = "#64748B"

// AccentFor returns the accent color for a category.
func AccentFor(cat Category) string {
	if hex, ok := CategoryAccent[cat]; ok {
		return hex
	}
	return DefaultAccent
}

// IsVirtual reports whether the category is a storefront filter rather
// than a stored product category.
func (c Category) IsVirtual() bool {
	return c == CategoryTodas || c == CategoryOfertas
}

// IsValid reports whether the category belongs to the closed set.
func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// IsProductCategory reports whether a stored product may carry the
// category.
func (c Category) IsProductCategory() bool {
	for _, known := range ProductCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Product represents a single item of the distributor catalog.
type Product struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	PriceUnidad   float64  `json:"priceUnidad"`
	PriceCantidad float64  `json:"priceCantidad"`
	PriceOferta   *float64 `json:"priceOferta,omitempty"`
	Description   string   `json:"description"`
	Image         string   `json:"image"`
	Category      Category `json:"category"`
	Stock         int      `json:"stock"`
}

// IsOffer reports whether the product has an active offer price.
// Derived from PriceOferta everywhere it is needed; never stored.
func (p Product) IsOffer() bool {
	return p.PriceOferta != nil && *p.PriceOferta > 0
}

// OfferPrice returns the active offer price, or 0 when there is none.
func (p Product) OfferPrice() float64 {
	if p.PriceOferta == nil {
		return 0
	}
	return *p.PriceOferta
}

// HasStock reports whether the product can currently be sold.
func (p Product) HasStock() bool {
	return p.Stock > 0
}
