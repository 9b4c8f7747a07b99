package service

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var disableConfigDirOnce sync.Once

// MergeService concatenates the pre-authored flyer PDFs with the
// dynamically rendered catalog. Static sources are merged in their
// configured order; a source that cannot be loaded or parsed is logged
// and skipped so a missing flyer never blocks the catalog download.
// The dynamic document always comes last.
type MergeService struct {
	sources []string
	conf    *model.Configuration
}

// NewMergeService creates a MergeService over the ordered static
// sources (local paths or URLs).
func NewMergeService(sources []string) *MergeService {
	disableConfigDirOnce.Do(api.DisableConfigDir)
	return &MergeService{
		sources: sources,
		conf:    model.NewDefaultConfiguration(),
	}
}

// Merge returns the combined document: every loadable static source in
// order, then the dynamic catalog.
func (s *MergeService) Merge(dynamic []byte) ([]byte, error) {
	if len(dynamic) == 0 {
		return nil, fmt.Errorf("dynamic document is empty")
	}

	var readers []io.ReadSeeker
	for _, source := range s.sources {
		data, err := s.loadStaticPDF(source)
		if err != nil {
			log.Printf("⚠️  MergeService: skipping %s: %v", source, err)
			continue
		}
		readers = append(readers, bytes.NewReader(data))
	}

	if len(readers) == 0 {
		log.Printf("⚠️  MergeService: no static documents available, returning catalog alone")
		return dynamic, nil
	}

	readers = append(readers, bytes.NewReader(dynamic))

	var out bytes.Buffer
	if err := api.MergeRaw(readers, &out, false, s.conf); err != nil {
		return nil, fmt.Errorf("failed to merge documents: %w", err)
	}

	log.Printf("✅ MergeService: merged %d static documents with the catalog (%d bytes)", len(readers)-1, out.Len())
	return out.Bytes(), nil
}

// PageCount returns the number of pages of a PDF document.
func (s *MergeService) PageCount(doc []byte) (int, error) {
	n, err := api.PageCount(bytes.NewReader(doc), s.conf)
	if err != nil {
		return 0, fmt.Errorf("failed to count pages: %w", err)
	}
	return n, nil
}

// loadStaticPDF fetches a static source from disk or over HTTP and
// validates that it parses as a PDF.
func (s *MergeService) loadStaticPDF(source string) ([]byte, error) {
	var data []byte

	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		resp, err := http.Get(source)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch document: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("document endpoint returned status %d", resp.StatusCode)
		}
		data, err = io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read document: %w", err)
		}
	} else {
		var err error
		data, err = os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("failed to read document file: %w", err)
		}
	}

	if err := api.Validate(bytes.NewReader(data), s.conf); err != nil {
		return nil, fmt.Errorf("document failed validation: %w", err)
	}
	return data, nil
}
