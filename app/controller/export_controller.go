package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"distribuidora-mauri/service"
)

// ExportController handles the PDF export workflow endpoints.
type ExportController struct {
	exportService *service.ExportService
}

// NewExportController creates a new ExportController.
func NewExportController(exportService *service.ExportService) *ExportController {
	return &ExportController{exportService: exportService}
}

// Export handles GET /catalog/export?category=&q= - runs the export
// workflow and streams the merged PDF as a download.
func (c *ExportController) Export(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	category, term, err := parseSelection(r)
	if err != nil {
		log.Printf("❌ Export: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	log.Printf("📥 Export request: category=%s q=%q", category, term)

	result, err := c.exportService.Export(r.Context(), service.ExportSelection{
		Category: category,
		Term:     term,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoProducts):
			http.Error(w, "No hay productos para exportar.", http.StatusUnprocessableEntity)
		case errors.Is(err, service.ErrExportInProgress):
			http.Error(w, "Ya hay una exportación en curso.", http.StatusConflict)
		default:
			// Everything else is surfaced as one generic failure; the
			// details stay in the log.
			log.Printf("❌ Export: %v", err)
			http.Error(w, "Hubo un error al generar el catálogo completo.", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.FileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(result.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.Data); err != nil {
		log.Printf("❌ Export: error writing PDF response: %v", err)
		return
	}

	log.Printf("✅ Export completed: %s (%d bytes)", result.FileName, len(result.Data))
}

// Progress handles GET /catalog/export/progress - the state and
// simulated progress of the export workflow for the UI bar.
func (c *ExportController) Progress(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	state, progress := c.exportService.Progress()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"state":    state,
		"progress": progress,
	}); err != nil {
		log.Printf("❌ Progress: failed to encode response: %v", err)
	}
}
