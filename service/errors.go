package service

import "errors"

var (
	// ErrNoProducts is returned when an export is requested for an
	// empty selection. Surfaced to the user as a warning, not a failure.
	ErrNoProducts = errors.New("no products to export")

	// ErrExportInProgress is returned when an export is requested while
	// another one is still generating.
	ErrExportInProgress = errors.New("an export is already in progress")

	// ErrEmptyCatalog is returned by the renderer when it receives zero
	// pages. The export workflow guards against this before rendering.
	ErrEmptyCatalog = errors.New("catalog has no pages to render")
)
