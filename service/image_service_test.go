package service

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
)

func TestPlaceholderIsAValidJPEG(t *testing.T) {
	svc := NewImageService(t.TempDir())

	data := svc.Placeholder()
	if len(data) == 0 {
		t.Fatal("placeholder is empty")
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("placeholder does not decode: %v", err)
	}
	if img.Bounds().Dx() != tileMaxDim || img.Bounds().Dy() != tileMaxDim {
		t.Fatalf("placeholder bounds: %v", img.Bounds())
	}
}

func TestTileImageFallsBackToPlaceholder(t *testing.T) {
	svc := NewImageService(t.TempDir())

	missing := svc.TileImage("img/no-such-file.jpg")
	if !bytes.Equal(missing, svc.Placeholder()) {
		t.Fatal("missing image did not resolve to the placeholder")
	}

	empty := svc.TileImage("")
	if !bytes.Equal(empty, svc.Placeholder()) {
		t.Fatal("empty source did not resolve to the placeholder")
	}
}

func TestTileImageFitsOversizedImages(t *testing.T) {
	dir := t.TempDir()

	big := imaging.New(900, 600, color.NRGBA{R: 20, G: 148, B: 59, A: 255})
	path := filepath.Join(dir, "big.jpg")
	if err := imaging.Save(big, path); err != nil {
		t.Fatalf("save test image: %v", err)
	}

	svc := NewImageService(dir)
	svc.cacheDir = filepath.Join(dir, "cache")
	data := svc.TileImage("big.jpg")

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("tile does not decode: %v", err)
	}
	if img.Bounds().Dx() > tileMaxDim || img.Bounds().Dy() > tileMaxDim {
		t.Fatalf("tile was not fitted: %v", img.Bounds())
	}
}

func TestTileImageRejectsUndecodableData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.jpg")
	if err := os.WriteFile(path, []byte("not an image"), 0644); err != nil {
		t.Fatalf("write broken image: %v", err)
	}

	svc := NewImageService(dir)
	if data := svc.TileImage("broken.jpg"); !bytes.Equal(data, svc.Placeholder()) {
		t.Fatal("broken image did not resolve to the placeholder")
	}
}
