package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"distribuidora-mauri/catalog"
	"distribuidora-mauri/models"
	"distribuidora-mauri/repository"
	"distribuidora-mauri/utils"
)

// ExportState is the phase of the export workflow.
type ExportState string

const (
	StateIdle       ExportState = "idle"
	StateGenerating ExportState = "generating"
)

const (
	// progressTick advances the simulated progress bar. The bar is for
	// perceived responsiveness only and never reflects real renderer
	// progress; it is capped below 100 until the export actually ends.
	progressTick    = 500 * time.Millisecond
	progressStep    = 2
	progressStart   = 10
	progressCeiling = 95

	// resetDelay keeps the finished bar visible before the workflow
	// returns to idle.
	resetDelay = 800 * time.Millisecond
)

// ExportSelection is the storefront selection an export runs over.
type ExportSelection struct {
	Category models.Category
	Term     string
}

// ExportResult is the finished download.
type ExportResult struct {
	FileName string
	Data     []byte
}

// CatalogEngine produces the dynamic catalog PDF for a selection. The
// native engine draws the grouped pages directly; the Chrome engine
// prints the server's own catalog render page and only needs the
// selection.
type CatalogEngine interface {
	GeneratePDF(ctx context.Context, selection ExportSelection, pages []models.CatalogPage) ([]byte, error)
}

// ExportService runs the export workflow: filter, paginate, render,
// merge with the static flyers, and hand back a named download. Only
// one export may run at a time; progress is simulated on a timer and
// reset to idle shortly after success or failure.
type ExportService struct {
	repo   repository.ProductRepositoryInterface
	engine CatalogEngine
	merger *MergeService

	mu       sync.Mutex
	state    ExportState
	progress int
	gen      int

	tickEvery time.Duration
	holdFor   time.Duration
	now       func() time.Time
}

// NewExportService creates a new ExportService.
func NewExportService(repo repository.ProductRepositoryInterface, engine CatalogEngine, merger *MergeService) *ExportService {
	return &ExportService{
		repo:      repo,
		engine:    engine,
		merger:    merger,
		state:     StateIdle,
		tickEvery: progressTick,
		holdFor:   resetDelay,
		now:       time.Now,
	}
}

// Progress reports the current workflow state and progress percentage.
func (s *ExportService) Progress() (ExportState, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, s.progress
}

// Export runs the whole workflow for the given selection.
func (s *ExportService) Export(ctx context.Context, selection ExportSelection) (*ExportResult, error) {
	products := s.repo.GetFiltered(selection.Category, selection.Term)
	if len(products) == 0 {
		log.Printf("⚠️  ExportService: nothing to export for category=%s q=%q", selection.Category, selection.Term)
		return nil, ErrNoProducts
	}

	if err := s.begin(); err != nil {
		return nil, err
	}

	stopTicker := s.startProgressTicker()

	result, err := s.run(ctx, selection, products)
	stopTicker()
	s.finish(err == nil)

	if err != nil {
		log.Printf("❌ ExportService: export failed: %v", err)
		return nil, err
	}
	return result, nil
}

func (s *ExportService) run(ctx context.Context, selection ExportSelection, products []models.Product) (*ExportResult, error) {
	pages := catalog.BuildPages(products)
	log.Printf("📄 ExportService: exporting %d products across %d pages", len(products), len(pages))

	dynamic, err := s.engine.GeneratePDF(ctx, selection, pages)
	if err != nil {
		return nil, fmt.Errorf("failed to generate catalog: %w", err)
	}

	merged, err := s.merger.Merge(dynamic)
	if err != nil {
		return nil, fmt.Errorf("failed to merge catalog: %w", err)
	}

	return &ExportResult{
		FileName: utils.CatalogFileName(string(selection.Category), s.now()),
		Data:     merged,
	}, nil
}

func (s *ExportService) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateGenerating {
		return ErrExportInProgress
	}
	s.state = StateGenerating
	s.progress = progressStart
	s.gen++
	return nil
}

// startProgressTicker advances the simulated progress until stopped.
// The returned stop function is safe to call exactly once and must be
// called on every exit path.
func (s *ExportService) startProgressTicker() func() {
	ticker := time.NewTicker(s.tickEvery)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				s.mu.Lock()
				if s.state == StateGenerating && s.progress < progressCeiling {
					s.progress += progressStep
				}
				s.mu.Unlock()
			}
		}
	}()

	return func() {
		ticker.Stop()
		close(done)
	}
}

// finish records the outcome and schedules the reset back to idle.
// The generation counter guards the delayed reset against a later
// export that may have started in the meantime.
func (s *ExportService) finish(success bool) {
	s.mu.Lock()
	if success {
		s.progress = 100
	}
	gen := s.gen
	s.mu.Unlock()

	time.AfterFunc(s.holdFor, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.gen == gen {
			s.state = StateIdle
			s.progress = 0
		}
	})
}
