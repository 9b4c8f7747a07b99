package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"distribuidora-mauri/catalog"
	"distribuidora-mauri/models"
)

// stubRepo serves a fixed product list.
type stubRepo struct {
	products []models.Product
}

func (r *stubRepo) GetAll() []models.Product { return r.products }
func (r *stubRepo) GetFiltered(category models.Category, term string) []models.Product {
	return catalog.Filter(r.products, category, term)
}
func (r *stubRepo) GetOffers() []models.Product { return catalog.Offers(r.products) }
func (r *stubRepo) Count() int                  { return len(r.products) }

// stubEngine returns canned output, optionally blocking until released.
type stubEngine struct {
	output  []byte
	err     error
	release chan struct{}
}

func (e *stubEngine) GeneratePDF(_ context.Context, _ ExportSelection, _ []models.CatalogPage) ([]byte, error) {
	if e.release != nil {
		<-e.release
	}
	return e.output, e.err
}

func fastExportService(repo *stubRepo, engine CatalogEngine) *ExportService {
	svc := NewExportService(repo, engine, NewMergeService(nil))
	svc.tickEvery = 2 * time.Millisecond
	svc.holdFor = 20 * time.Millisecond
	return svc
}

func exportProducts() []models.Product {
	return []models.Product{
		{ID: 1, Name: "Yerba", Category: models.CategoryComestibles, PriceUnidad: 100, PriceCantidad: 90},
		{ID: 2, Name: "Quilmes", Category: models.CategoryBebidas, PriceOferta: offerPrice(50)},
	}
}

func waitForState(t *testing.T, svc *ExportService, want ExportState) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if state, _ := svc.Progress(); state == want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	state, progress := svc.Progress()
	t.Fatalf("timed out waiting for state %s (state=%s progress=%d)", want, state, progress)
}

func TestExportEmptySelectionIsRejectedWithoutStateChange(t *testing.T) {
	svc := fastExportService(&stubRepo{}, &stubEngine{output: []byte("%PDF-stub")})

	_, err := svc.Export(context.Background(), ExportSelection{Category: models.CategoryTodas})
	if !errors.Is(err, ErrNoProducts) {
		t.Fatalf("expected ErrNoProducts, got %v", err)
	}

	state, progress := svc.Progress()
	if state != StateIdle || progress != 0 {
		t.Fatalf("state changed on empty selection: %s/%d", state, progress)
	}
}

func TestExportSuccessDeliversNamedDownloadAndResets(t *testing.T) {
	engine := &stubEngine{output: []byte("%PDF-stub")}
	svc := fastExportService(&stubRepo{products: exportProducts()}, engine)

	result, err := svc.Export(context.Background(), ExportSelection{Category: models.CategoryTodas})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	if !strings.HasPrefix(result.FileName, "Catalogo_Mauri_Todas_") || !strings.HasSuffix(result.FileName, ".pdf") {
		t.Fatalf("unexpected file name: %q", result.FileName)
	}
	if string(result.Data) != "%PDF-stub" {
		t.Fatal("merged output does not match the rendered document")
	}

	// Progress is forced to 100 right after completion, then the
	// workflow resets to idle after the hold delay.
	if _, progress := svc.Progress(); progress != 100 {
		t.Fatalf("expected progress 100 after success, got %d", progress)
	}
	waitForState(t, svc, StateIdle)
	if _, progress := svc.Progress(); progress != 0 {
		t.Fatalf("progress not reset, got %d", progress)
	}
}

func TestExportFailureResetsToIdle(t *testing.T) {
	engine := &stubEngine{err: errors.New("render exploded")}
	svc := fastExportService(&stubRepo{products: exportProducts()}, engine)

	_, err := svc.Export(context.Background(), ExportSelection{Category: models.CategoryTodas})
	if err == nil {
		t.Fatal("expected an error")
	}

	if _, progress := svc.Progress(); progress == 100 {
		t.Fatal("failed export must not report 100%")
	}
	waitForState(t, svc, StateIdle)
}

func TestExportRejectsConcurrentRuns(t *testing.T) {
	engine := &stubEngine{output: []byte("%PDF-stub"), release: make(chan struct{})}
	svc := fastExportService(&stubRepo{products: exportProducts()}, engine)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Export(context.Background(), ExportSelection{Category: models.CategoryTodas})
		done <- err
	}()

	waitForState(t, svc, StateGenerating)

	_, err := svc.Export(context.Background(), ExportSelection{Category: models.CategoryTodas})
	if !errors.Is(err, ErrExportInProgress) {
		t.Fatalf("expected ErrExportInProgress, got %v", err)
	}

	close(engine.release)
	if err := <-done; err != nil {
		t.Fatalf("first export failed: %v", err)
	}
}

func TestProgressTickerCapsBelowOneHundred(t *testing.T) {
	engine := &stubEngine{output: []byte("%PDF-stub"), release: make(chan struct{})}
	svc := fastExportService(&stubRepo{products: exportProducts()}, engine)
	svc.tickEvery = time.Millisecond

	done := make(chan error, 1)
	go func() {
		_, err := svc.Export(context.Background(), ExportSelection{Category: models.CategoryTodas})
		done <- err
	}()

	waitForState(t, svc, StateGenerating)
	time.Sleep(100 * time.Millisecond)

	state, progress := svc.Progress()
	if state != StateGenerating {
		t.Fatalf("expected generating, got %s", state)
	}
	if progress < 10 || progress > 95 {
		t.Fatalf("progress %d outside simulated range", progress)
	}

	close(engine.release)
	if err := <-done; err != nil {
		t.Fatalf("export failed: %v", err)
	}
}
