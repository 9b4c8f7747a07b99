package service

import (
	"context"

	"distribuidora-mauri/models"
)

// NativeEngine is the default catalog engine: it draws the grouped
// pages directly with the fixed-layout renderer.
type NativeEngine struct {
	renderer *CatalogRenderer
}

// NewNativeEngine creates a new NativeEngine.
func NewNativeEngine(renderer *CatalogRenderer) *NativeEngine {
	return &NativeEngine{renderer: renderer}
}

// Ensure NativeEngine implements CatalogEngine
var _ CatalogEngine = (*NativeEngine)(nil)

// GeneratePDF renders the pages with the native layout. The selection
// is already baked into the pages.
func (e *NativeEngine) GeneratePDF(_ context.Context, _ ExportSelection, pages []models.CatalogPage) ([]byte, error) {
	return e.renderer.Render(pages)
}
