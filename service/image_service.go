package service

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"image/color"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
)

const (
	imageCacheDir = "cache/images"
	// Quality / size settings for PDF tile images
	tileQuality = 75
	tileMaxDim  = 300
)

// ImageService resolves product and branding images for the PDF
// renderer. Images are fetched from the assets directory or over HTTP,
// fitted into the tile box as JPEG and cached on disk. A missing or
// undecodable image resolves to a generated placeholder, never an error.
type ImageService struct {
	assetsDir string
	cacheDir  string

	mu          sync.Mutex
	placeholder []byte
}

// NewImageService creates a new ImageService rooted at assetsDir.
func NewImageService(assetsDir string) *ImageService {
	return &ImageService{assetsDir: assetsDir, cacheDir: imageCacheDir}
}

// EnsureCacheDir ensures the image cache directory exists.
func EnsureCacheDir() error {
	if err := os.MkdirAll(imageCacheDir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	return nil
}

// TileImage returns a JPEG fitted into the tile box for the given
// source (path relative to the assets directory, or a full URL).
// Any failure falls back to the placeholder image.
func (s *ImageService) TileImage(source string) []byte {
	if source == "" {
		return s.Placeholder()
	}

	cachePath := s.cachePath(source)
	if data, err := os.ReadFile(cachePath); err == nil {
		return data
	}

	raw, err := s.loadRaw(source)
	if err != nil {
		log.Printf("⚠️  ImageService: failed to load %s, using placeholder: %v", source, err)
		return s.Placeholder()
	}

	optimized, err := optimizeTile(raw)
	if err != nil {
		log.Printf("⚠️  ImageService: failed to optimize %s, using placeholder: %v", source, err)
		return s.Placeholder()
	}

	if err := s.saveToCache(cachePath, optimized); err != nil {
		log.Printf("⚠️  ImageService: cache write failed for %s: %v", source, err)
	}

	return optimized
}

// LogoImage returns the branding logo, or nil when it is missing.
// Unlike product tiles, a missing logo is simply omitted from the page.
func (s *ImageService) LogoImage() []byte {
	for _, ext := range []string{".png", ".jpg", ".jpeg"} {
		path := filepath.Join(s.assetsDir, "logo"+ext)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		return data
	}
	return nil
}

// Placeholder returns the generated stand-in tile, building it on
// first use.
func (s *ImageService) Placeholder() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.placeholder != nil {
		return s.placeholder
	}

	img := imaging.New(tileMaxDim, tileMaxDim, color.NRGBA{R: 243, G: 244, B: 246, A: 255})
	inner := imaging.New(tileMaxDim-40, tileMaxDim-40, color.NRGBA{R: 229, G: 231, B: 235, A: 255})
	img = imaging.PasteCenter(img, inner)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(tileQuality)); err != nil {
		// Encoding a generated NRGBA image cannot realistically fail,
		// but the renderer tolerates an empty image either way.
		log.Printf("❌ ImageService: failed to encode placeholder: %v", err)
		return nil
	}
	s.placeholder = buf.Bytes()
	return s.placeholder
}

// loadRaw fetches the raw image bytes from disk or over HTTP.
func (s *ImageService) loadRaw(source string) ([]byte, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		resp, err := http.Get(source)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch image: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("image endpoint returned status %d", resp.StatusCode)
		}
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read image data: %w", err)
		}
		return data, nil
	}

	path := source
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.assetsDir, source)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image file: %w", err)
	}
	return data, nil
}

// optimizeTile decodes an image, fits it into the tile box and
// re-encodes it as JPEG.
func optimizeTile(raw []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > tileMaxDim || bounds.Dy() > tileMaxDim {
		img = imaging.Fit(img, tileMaxDim, tileMaxDim, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(tileQuality)); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *ImageService) cachePath(source string) string {
	h := fnv.New64a()
	h.Write([]byte(source))
	return filepath.Join(s.cacheDir, fmt.Sprintf("tile_%x.jpg", h.Sum64()))
}

func (s *ImageService) saveToCache(cachePath string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(cachePath), 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := os.WriteFile(cachePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	return nil
}
