package service

import (
	"bytes"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"distribuidora-mauri/models"
	"distribuidora-mauri/utils"
)

// Page geometry in points (A4 portrait).
const (
	pageWidth  = 595.28
	pageHeight = 841.89

	headerHeight = 70.0
	footerHeight = 28.0
	gridPadding  = 14.0
	tileGap      = 10.0
	tileColumns  = 3

	priceFooterHeight = 42.0
	nameBarHeight     = 16.0
	tileImagePadding  = 4.0
)

// Tile and page accents.
var (
	colorInk        = rgb{17, 17, 17}
	colorMutedGray  = rgb{156, 163, 175}
	colorLightGray  = rgb{209, 213, 219}
	colorTileBorder = rgb{243, 244, 246}
	colorOfferRed   = rgb{220, 38, 38}
	colorOfferTint  = rgb{254, 242, 242}
	colorOfferEdge  = rgb{254, 202, 202}
	colorBadgeGreen = rgb{22, 101, 52}
)

type rgb struct{ r, g, b int }

// CatalogRenderer turns a sequence of catalog pages into a PDF
// document with the fixed Mauri layout: header band, three-column tile
// grid and footer band per page. Offer-section pages use a distinct
// skin (tinted header, red tile borders, one row less of larger tiles).
type CatalogRenderer struct {
	images *ImageService
}

// NewCatalogRenderer creates a new CatalogRenderer.
func NewCatalogRenderer(images *ImageService) *CatalogRenderer {
	return &CatalogRenderer{images: images}
}

// Render serializes the pages into a PDF document. An empty page
// sequence is treated as a precondition violation and returns
// ErrEmptyCatalog; the export workflow rejects empty selections before
// ever reaching the renderer.
func (r *CatalogRenderer) Render(pages []models.CatalogPage) ([]byte, error) {
	if len(pages) == 0 {
		return nil, ErrEmptyCatalog
	}

	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetTitle("Catálogo Mauri", true)
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	generatedAt := time.Now().Format("02/01/2006")

	for _, page := range pages {
		r.drawPage(pdf, tr, page, generatedAt)
	}

	if pdf.Err() {
		return nil, fmt.Errorf("failed to build catalog PDF: %w", pdf.Error())
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize catalog PDF: %w", err)
	}

	log.Printf("✅ CatalogRenderer: rendered %d pages (%d bytes)", len(pages), buf.Len())
	return buf.Bytes(), nil
}

func (r *CatalogRenderer) drawPage(pdf *gofpdf.Fpdf, tr func(string) string, page models.CatalogPage, generatedAt string) {
	pdf.AddPage()

	accent := hexRGB(page.AccentColor)
	r.drawHeader(pdf, tr, page, accent, generatedAt)
	r.drawGrid(pdf, tr, page, accent)
	r.drawPageFooter(pdf, tr)
}

func (r *CatalogRenderer) drawHeader(pdf *gofpdf.Fpdf, tr func(string) string, page models.CatalogPage, accent rgb, generatedAt string) {
	if page.IsOfferSection {
		pdf.SetFillColor(colorOfferTint.r, colorOfferTint.g, colorOfferTint.b)
		pdf.Rect(0, 0, pageWidth, headerHeight, "F")
	}

	// Accent rule under the header band.
	pdf.SetDrawColor(accent.r, accent.g, accent.b)
	pdf.SetLineWidth(2)
	pdf.Line(0, headerHeight, pageWidth, headerHeight)

	textX := 20.0
	if logo := r.images.LogoImage(); logo != nil {
		opts := gofpdf.ImageOptions{ImageType: detectImageType(logo)}
		info := pdf.RegisterImageOptionsReader("brand-logo", opts, bytes.NewReader(logo))
		if info != nil && info.Width() > 0 {
			w, h, x, y := fitBox(info.Width(), info.Height(), 20, 16, 50, 38)
			pdf.ImageOptions("brand-logo", x, y, w, h, false, opts, 0, "")
			textX = 82
		}
	}

	pdf.SetTextColor(colorInk.r, colorInk.g, colorInk.b)
	pdf.SetFont("Helvetica", "", 16)
	pdf.Text(textX, 34, tr("Distribuidora"))
	brandX := textX + pdf.GetStringWidth(tr("Distribuidora")) + 4
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Text(brandX, 34, "Mauri")

	title := page.SectionTitle
	if page.IsOfferSection {
		title = "SUPER OFERTAS"
	}
	pdf.SetTextColor(accent.r, accent.g, accent.b)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Text(textX, 54, tr(upper(title)))

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(colorMutedGray.r, colorMutedGray.g, colorMutedGray.b)
	pageLabel := tr(fmt.Sprintf("PÁGINA %d", page.PageNumber))
	pdf.Text(pageWidth-20-pdf.GetStringWidth(pageLabel), 32, pageLabel)

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetTextColor(colorLightGray.r, colorLightGray.g, colorLightGray.b)
	pdf.Text(pageWidth-20-pdf.GetStringWidth(generatedAt), 44, generatedAt)
}

func (r *CatalogRenderer) drawGrid(pdf *gofpdf.Fpdf, tr func(string) string, page models.CatalogPage, accent rgb) {
	rows := 4
	if page.IsOfferSection {
		rows = 3
	}

	gridTop := headerHeight + gridPadding
	gridHeight := pageHeight - headerHeight - footerHeight - 2*gridPadding
	tileWidth := (pageWidth - 2*gridPadding - float64(tileColumns-1)*tileGap) / tileColumns
	tileHeight := (gridHeight - float64(rows-1)*tileGap) / float64(rows)

	for i, product := range page.Products {
		col := i % tileColumns
		row := i / tileColumns
		if row >= rows {
			// Paginator caps page capacity; anything beyond is a bug
			// upstream and is dropped rather than drawn off the page.
			log.Printf("⚠️  CatalogRenderer: page %d overflows its grid, dropping product %d", page.PageNumber, product.ID)
			continue
		}

		x := gridPadding + float64(col)*(tileWidth+tileGap)
		y := gridTop + float64(row)*(tileHeight+tileGap)
		r.drawTile(pdf, tr, product, page, accent, x, y, tileWidth, tileHeight)
	}
}

func (r *CatalogRenderer) drawTile(pdf *gofpdf.Fpdf, tr func(string) string, product models.Product, page models.CatalogPage, accent rgb, x, y, w, h float64) {
	highlighted := page.IsOfferSection || product.IsOffer()

	border := colorTileBorder
	if highlighted {
		border = colorOfferEdge
	}
	pdf.SetDrawColor(border.r, border.g, border.b)
	pdf.SetLineWidth(0.8)
	pdf.RoundedRect(x, y, w, h, 6, "1234", "D")

	imageBottom := y + h - priceFooterHeight - nameBarHeight
	r.drawTileImage(pdf, product, x+tileImagePadding, y+tileImagePadding,
		w-2*tileImagePadding, imageBottom-y-2*tileImagePadding)

	if product.Description != "" {
		r.drawBadge(pdf, tr, product.Description, highlighted, x+5, y+6)
	}

	// Name bar above the price footer.
	pdf.SetFont("Helvetica", "B", 6.5)
	pdf.SetTextColor(colorInk.r, colorInk.g, colorInk.b)
	pdf.SetXY(x+3, imageBottom)
	pdf.CellFormat(w-6, nameBarHeight, tr(upper(product.Name)), "", 0, "CM", false, 0, "")

	r.drawPriceFooter(pdf, tr, product, accent, x, y+h-priceFooterHeight, w)
}

func (r *CatalogRenderer) drawTileImage(pdf *gofpdf.Fpdf, product models.Product, x, y, boxW, boxH float64) {
	data := r.images.TileImage(product.Image)
	if data == nil {
		return
	}

	name := fmt.Sprintf("tile-%d", product.ID)
	opts := gofpdf.ImageOptions{ImageType: "JPG"}
	info := pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	if info == nil || info.Width() <= 0 || info.Height() <= 0 {
		return
	}

	w, h, ix, iy := fitBox(info.Width(), info.Height(), x, y, boxW, boxH)
	pdf.ImageOptions(name, ix, iy, w, h, false, opts, 0, "")
}

func (r *CatalogRenderer) drawBadge(pdf *gofpdf.Fpdf, tr func(string) string, text string, highlighted bool, x, y float64) {
	tone := colorBadgeGreen
	if highlighted {
		tone = colorOfferRed
	}

	pdf.SetFont("Helvetica", "B", 5)
	label := tr(upper(text))
	badgeW := pdf.GetStringWidth(label) + 6

	pdf.SetDrawColor(tone.r, tone.g, tone.b)
	pdf.SetFillColor(255, 255, 255)
	pdf.SetLineWidth(0.5)
	pdf.RoundedRect(x, y, badgeW, 9, 2, "1234", "FD")

	pdf.SetTextColor(tone.r, tone.g, tone.b)
	pdf.SetXY(x, y)
	pdf.CellFormat(badgeW, 9, label, "", 0, "CM", false, 0, "")
}

func (r *CatalogRenderer) drawPriceFooter(pdf *gofpdf.Fpdf, tr func(string) string, product models.Product, accent rgb, x, y, w float64) {
	if product.IsOffer() {
		pdf.SetFillColor(colorOfferRed.r, colorOfferRed.g, colorOfferRed.b)
		pdf.RoundedRect(x+4, y+6, w-8, priceFooterHeight-14, 3, "1234", "F")

		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetXY(x+4, y+6)
		pdf.CellFormat(w-8, priceFooterHeight-14, tr("OFERTA: "+utils.RenderPrice(product.OfferPrice())), "", 0, "CM", false, 0, "")
		return
	}

	rowH := (priceFooterHeight - 10) / 2

	// Unit price row.
	pdf.SetFont("Helvetica", "B", 5.5)
	pdf.SetTextColor(colorMutedGray.r, colorMutedGray.g, colorMutedGray.b)
	pdf.SetXY(x+8, y+4)
	pdf.CellFormat(w/2-8, rowH, "UNIDAD", "", 0, "LM", false, 0, "")
	pdf.SetFont("Helvetica", "B", 8.5)
	pdf.SetTextColor(colorInk.r, colorInk.g, colorInk.b)
	pdf.SetXY(x+w/2, y+4)
	pdf.CellFormat(w/2-8, rowH, tr(utils.RenderPrice(product.PriceUnidad)), "", 0, "RM", false, 0, "")

	// Wholesale price row, tinted with the section accent.
	tint := tintOf(accent)
	pdf.SetFillColor(tint.r, tint.g, tint.b)
	pdf.RoundedRect(x+4, y+4+rowH+2, w-8, rowH, 2, "1234", "F")

	pdf.SetFont("Helvetica", "B", 5.5)
	pdf.SetTextColor(accent.r, accent.g, accent.b)
	pdf.SetXY(x+8, y+4+rowH+2)
	pdf.CellFormat(w/2-8, rowH, "MAYORISTA", "", 0, "LM", false, 0, "")
	pdf.SetFont("Helvetica", "B", 8.5)
	pdf.SetXY(x+w/2, y+4+rowH+2)
	pdf.CellFormat(w/2-12, rowH, tr(utils.RenderPrice(product.PriceCantidad)), "", 0, "RM", false, 0, "")
}

func (r *CatalogRenderer) drawPageFooter(pdf *gofpdf.Fpdf, tr func(string) string) {
	y := pageHeight - footerHeight

	pdf.SetDrawColor(colorTileBorder.r, colorTileBorder.g, colorTileBorder.b)
	pdf.SetLineWidth(0.5)
	pdf.Line(24, y, pageWidth-24, y)

	pdf.SetFont("Helvetica", "B", 5.5)
	pdf.SetTextColor(colorLightGray.r, colorLightGray.g, colorLightGray.b)
	pdf.Text(24, y+16, tr("DISTRIBUIDORA MAURI - PRECIOS SUJETOS A CAMBIOS"))

	site := "www.distribuidoramauri.com.ar"
	pdf.SetFont("Helvetica", "B", 6)
	pdf.SetTextColor(colorMutedGray.r, colorMutedGray.g, colorMutedGray.b)
	pdf.Text(pageWidth-24-pdf.GetStringWidth(site), y+16, site)
}

// fitBox scales (iw, ih) to fit inside the box, centered, preserving
// aspect ratio.
func fitBox(iw, ih, boxX, boxY, boxW, boxH float64) (w, h, x, y float64) {
	scale := math.Min(boxW/iw, boxH/ih)
	w = iw * scale
	h = ih * scale
	x = boxX + (boxW-w)/2
	y = boxY + (boxH-h)/2
	return w, h, x, y
}

// hexRGB parses a "#RRGGBB" color; unparseable values fall back to the
// neutral slate accent.
func hexRGB(hex string) rgb {
	var r, g, b int
	if _, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return rgb{100, 116, 139}
	}
	return rgb{r, g, b}
}

// tintOf lightens an accent color to roughly 15% opacity over white.
func tintOf(c rgb) rgb {
	lighten := func(v int) int { return v + (255-v)*85/100 }
	return rgb{lighten(c.r), lighten(c.g), lighten(c.b)}
}

// detectImageType sniffs PNG vs JPEG for gofpdf registration.
func detectImageType(data []byte) string {
	if len(data) > 8 && data[0] == 0x89 && data[1] == 'P' && data[2] == 'N' && data[3] == 'G' {
		return "PNG"
	}
	return "JPG"
}

func upper(s string) string {
	return strings.ToUpper(s)
}
