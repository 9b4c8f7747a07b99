package catalog

import (
	"testing"

	"distribuidora-mauri/models"
)

func offerPrice(v float64) *float64 { return &v }

func sampleProducts() []models.Product {
	return []models.Product{
		{ID: 1, Name: "Yerba Mate Rosamonte", Description: "Almacén", Category: models.CategoryComestibles, PriceUnidad: 4850, PriceCantidad: 4390},
		{ID: 2, Name: "Coca-Cola 2.25L", Description: "Gaseosas", Category: models.CategoryBebidas, PriceUnidad: 3250, PriceCantidad: 2890},
		{ID: 3, Name: "Cerveza Quilmes", Description: "Cervezas", Category: models.CategoryBebidas, PriceUnidad: 1690, PriceCantidad: 1450, PriceOferta: offerPrice(1290)},
		{ID: 4, Name: "Lavandina Ayudín", Description: "Limpieza Hogar", Category: models.CategoryLimpieza, PriceUnidad: 1090, PriceCantidad: 920},
		{ID: 5, Name: "Shampoo Sedal", Description: "Capilar", Category: models.CategoryHigiene, PriceUnidad: 2890, PriceCantidad: 2590, PriceOferta: offerPrice(2390)},
	}
}

func TestFilterAllEmptyTermReturnsEverythingInOrder(t *testing.T) {
	products := sampleProducts()
	got := Filter(products, models.CategoryTodas, "")

	if len(got) != len(products) {
		t.Fatalf("expected %d products, got %d", len(products), len(got))
	}
	for i := range got {
		if got[i].ID != products[i].ID {
			t.Fatalf("order changed at %d: expected id %d, got %d", i, products[i].ID, got[i].ID)
		}
	}
}

func TestFilterByCategoryExactMatch(t *testing.T) {
	got := Filter(sampleProducts(), models.CategoryBebidas, "")
	if len(got) != 2 {
		t.Fatalf("expected 2 bebidas, got %d", len(got))
	}
	for _, p := range got {
		if p.Category != models.CategoryBebidas {
			t.Fatalf("product %d has category %s", p.ID, p.Category)
		}
	}
}

func TestFilterOfertasSelectsPositiveOfferPrices(t *testing.T) {
	got := Filter(sampleProducts(), models.CategoryOfertas, "")
	if len(got) != 2 {
		t.Fatalf("expected 2 offers, got %d", len(got))
	}
	if got[0].ID != 3 || got[1].ID != 5 {
		t.Fatalf("unexpected offer ids: %d, %d", got[0].ID, got[1].ID)
	}
}

func TestFilterOfertasIgnoresZeroOfferPrice(t *testing.T) {
	products := []models.Product{
		{ID: 1, Name: "A", Category: models.CategoryBebidas, PriceOferta: offerPrice(0)},
		{ID: 2, Name: "B", Category: models.CategoryBebidas, PriceOferta: offerPrice(50)},
	}
	got := Filter(products, models.CategoryOfertas, "")
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("expected only id 2, got %v", got)
	}
}

func TestFilterSearchMatchesNameOrDescriptionCaseInsensitive(t *testing.T) {
	products := sampleProducts()

	byName := Filter(products, models.CategoryTodas, "quilmes")
	if len(byName) != 1 || byName[0].ID != 3 {
		t.Fatalf("name search failed: %v", byName)
	}

	byDescription := Filter(products, models.CategoryTodas, "GASEOSAS")
	if len(byDescription) != 1 || byDescription[0].ID != 2 {
		t.Fatalf("description search failed: %v", byDescription)
	}
}

func TestFilterCombinesCategoryAndSearch(t *testing.T) {
	got := Filter(sampleProducts(), models.CategoryBebidas, "coca")
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("combined filter failed: %v", got)
	}
}

func TestFilterIsIdempotent(t *testing.T) {
	products := sampleProducts()
	once := Filter(products, models.CategoryBebidas, "c")
	twice := Filter(once, models.CategoryBebidas, "c")

	if len(once) != len(twice) {
		t.Fatalf("idempotence broken: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].ID != twice[i].ID {
			t.Fatalf("idempotence broken at %d", i)
		}
	}
}

func TestFilterResultIsSubsetSatisfyingPredicates(t *testing.T) {
	products := sampleProducts()
	terms := []string{"", "a", "quilmes", "zzz"}
	for _, cat := range models.Categories {
		for _, term := range terms {
			for _, p := range Filter(products, cat, term) {
				if !matchesCategory(p, cat) {
					t.Fatalf("category predicate violated: cat=%s id=%d", cat, p.ID)
				}
				if !matchesSearch(p, term) {
					t.Fatalf("search predicate violated: term=%q id=%d", term, p.ID)
				}
			}
		}
	}
}

func TestFilterOffersExampleScenario(t *testing.T) {
	products := []models.Product{
		{ID: 1, Category: models.CategoryBebidas, PriceUnidad: 100, PriceCantidad: 90},
		{ID: 2, Category: models.CategoryBebidas, PriceOferta: offerPrice(50)},
	}
	got := Filter(products, models.CategoryOfertas, "")
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("expected exactly product 2, got %v", got)
	}
}
