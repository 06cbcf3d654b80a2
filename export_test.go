package brainmap

import (
	"bytes"
	"image/png"
	"testing"
)

func TestExportPNG(t *testing.T) {
	root := layoutTree(t)
	var buf bytes.Buffer
	if err := ExportPNG(&buf, root, DefaultOptions()); err != nil {
		t.Fatalf("ExportPNG: %v", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 800 || b.Dy() != 800 {
		t.Errorf("image size = %dx%d, want 800x800", b.Dx(), b.Dy())
	}
}

func TestExportPNGCustomSize(t *testing.T) {
	opts := DefaultOptions()
	opts.Width, opts.Height = 400, 300
	var buf bytes.Buffer
	if err := ExportPNG(&buf, &Node{ID: "r", Name: "solo"}, opts); err != nil {
		t.Fatalf("ExportPNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 400 || b.Dy() != 300 {
		t.Errorf("image size = %dx%d, want 400x300", b.Dx(), b.Dy())
	}
}
