package service

import (
	"bytes"
	"errors"
	"testing"

	"distribuidora-mauri/catalog"
	"distribuidora-mauri/models"
)

func offerPrice(v float64) *float64 { return &v }

func testRenderer(t *testing.T) *CatalogRenderer {
	t.Helper()
	// An empty assets dir: every tile resolves to the generated
	// placeholder, keeping the test hermetic.
	return NewCatalogRenderer(NewImageService(t.TempDir()))
}

func catalogSelection() []models.Product {
	return []models.Product{
		{ID: 1, Name: "Yerba Mate", Description: "Almacén", Category: models.CategoryComestibles, PriceUnidad: 4850, PriceCantidad: 4390},
		{ID: 2, Name: "Coca-Cola", Description: "Gaseosas", Category: models.CategoryBebidas, PriceUnidad: 3250, PriceCantidad: 2890},
		{ID: 3, Name: "Quilmes", Description: "Cervezas", Category: models.CategoryBebidas, PriceUnidad: 1690, PriceCantidad: 1450, PriceOferta: offerPrice(1290)},
	}
}

func TestRenderProducesOnePDFPagePerCatalogPage(t *testing.T) {
	pages := catalog.BuildPages(catalogSelection())
	if len(pages) != 3 {
		t.Fatalf("expected offers + 2 category pages, got %d", len(pages))
	}

	data, err := testRenderer(t).Render(pages)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatal("output does not start with a PDF header")
	}

	n, err := NewMergeService(nil).PageCount(data)
	if err != nil {
		t.Fatalf("PageCount: %v", err)
	}
	if n != len(pages) {
		t.Fatalf("expected %d pages, got %d", len(pages), n)
	}
}

func TestRenderEmptyPageSetIsRejected(t *testing.T) {
	_, err := testRenderer(t).Render(nil)
	if !errors.Is(err, ErrEmptyCatalog) {
		t.Fatalf("expected ErrEmptyCatalog, got %v", err)
	}
}

func TestRenderToleratesMissingPricesAndImages(t *testing.T) {
	products := []models.Product{
		{ID: 1, Name: "Sin Precio", Category: models.CategoryOtros},
		{ID: 2, Name: "Sin Imagen", Category: models.CategoryOtros, PriceUnidad: 100, PriceCantidad: 90, Image: "img/does-not-exist.jpg"},
	}

	data, err := testRenderer(t).Render(catalog.BuildPages(products))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("empty output")
	}
}

func TestRenderOfferSelectionExportScenario(t *testing.T) {
	// Selecting "Ofertas" over a two-product catalog exports a single
	// offers page holding only the discounted product.
	products := []models.Product{
		{ID: 1, Category: models.CategoryBebidas, Name: "Normal", PriceUnidad: 100, PriceCantidad: 90},
		{ID: 2, Category: models.CategoryBebidas, Name: "Oferta", PriceOferta: offerPrice(50)},
	}
	selection := catalog.Filter(products, models.CategoryOfertas, "")

	pages := catalog.BuildPages(selection)
	if len(pages) != 2 {
		// Offers section page plus the product's own category page.
		t.Fatalf("expected 2 pages, got %d", len(pages))
	}
	if !pages[0].IsOfferSection || len(pages[0].Products) != 1 || pages[0].Products[0].ID != 2 {
		t.Fatalf("offers page content wrong: %+v", pages[0])
	}

	data, err := testRenderer(t).Render(pages)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	n, err := NewMergeService(nil).PageCount(data)
	if err != nil {
		t.Fatalf("PageCount: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 rendered pages, got %d", n)
	}
}
