package service

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"distribuidora-mauri/catalog"
	"distribuidora-mauri/models"
	"distribuidora-mauri/repository"
	"distribuidora-mauri/templates"
	"distribuidora-mauri/utils"
)

// CatalogService renders the storefront and the print-layout catalog
// as HTML. The print layout is what the Chrome export engine feeds to
// PrintToPDF.
type CatalogService struct {
	repo    repository.ProductRepositoryInterface
	baseURL string
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(repo repository.ProductRepositoryInterface, baseURL string) *CatalogService {
	return &CatalogService{repo: repo, baseURL: baseURL}
}

// ProductView is a product prepared for the HTML templates.
type ProductView struct {
	ID            int
	Name          string
	Description   string
	Category      models.Category
	Accent        string
	ImageURL      string
	IsOffer       bool
	HasStock      bool
	PriceUnidad   string
	PriceCantidad string
	PriceOferta   string
}

// StorefrontData feeds the storefront template.
type StorefrontData struct {
	Categories       []models.Category
	SelectedCategory models.Category
	SearchTerm       string
	Products         []ProductView
	Offers           []ProductView
	ShowOffers       bool
	Count            int
	Title            string
}

// PageView is one print-layout catalog page.
type PageView struct {
	PageNumber     int
	SectionTitle   string
	Accent         string
	IsOfferSection bool
	Products       []ProductView
}

// CatalogData feeds the print-layout template.
type CatalogData struct {
	Pages       []PageView
	LogoURL     string
	GeneratedAt string
}

// RenderStorefrontHTML renders the interactive storefront page for a
// selection.
func (s *CatalogService) RenderStorefrontHTML(category models.Category, term string) (string, error) {
	products := s.repo.GetFiltered(category, term)

	title := "Catálogo General"
	if category != models.CategoryTodas && category != "" {
		title = string(category)
	}

	data := StorefrontData{
		Categories:       models.Categories,
		SelectedCategory: category,
		SearchTerm:       term,
		Products:         productViews(products),
		Offers:           productViews(s.repo.GetOffers()),
		ShowOffers:       (category == models.CategoryTodas || category == "") && term == "",
		Count:            len(products),
		Title:            title,
	}

	return s.execute("storefront.html", data)
}

// RenderCatalogHTML renders the paginated print layout for a selection.
func (s *CatalogService) RenderCatalogHTML(category models.Category, term string) (string, error) {
	products := s.repo.GetFiltered(category, term)
	pages := catalog.BuildPages(products)

	views := make([]PageView, 0, len(pages))
	for _, page := range pages {
		title := page.SectionTitle
		if page.IsOfferSection {
			title = "SUPER OFERTAS"
		}
		views = append(views, PageView{
			PageNumber:     page.PageNumber,
			SectionTitle:   title,
			Accent:         page.AccentColor,
			IsOfferSection: page.IsOfferSection,
			Products:       productViews(page.Products),
		})
	}

	data := CatalogData{
		Pages:       views,
		LogoURL:     s.baseURL + "/assets/logo.png",
		GeneratedAt: time.Now().Format("02/01/2006"),
	}

	return s.execute("catalog.html", data)
}

func (s *CatalogService) execute(name string, data any) (string, error) {
	tmpl, err := template.ParseFS(templates.FS, name)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	return buf.String(), nil
}

func productViews(products []models.Product) []ProductView {
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		accent := models.AccentFor(p.Category)
		if p.IsOffer() {
			accent = models.AccentFor(models.CategoryOfertas)
		}

		imageURL := p.Image
		if imageURL == "" {
			imageURL = "/assets/placeholder.jpg"
		} else if imageURL[0] != '/' && !isExternalURL(imageURL) {
			imageURL = "/assets/" + imageURL
		}

		views = append(views, ProductView{
			ID:            p.ID,
			Name:          p.Name,
			Description:   p.Description,
			Category:      p.Category,
			Accent:        accent,
			ImageURL:      imageURL,
			IsOffer:       p.IsOffer(),
			HasStock:      p.HasStock(),
			PriceUnidad:   utils.RenderPrice(p.PriceUnidad),
			PriceCantidad: utils.RenderPrice(p.PriceCantidad),
			PriceOferta:   utils.RenderPrice(p.OfferPrice()),
		})
	}
	return views
}

func isExternalURL(s string) bool {
	return len(s) > 7 && (s[:7] == "http://" || (len(s) > 8 && s[:8] == "https://"))
}
