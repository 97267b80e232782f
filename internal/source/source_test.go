package source

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.White)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestImageSourceFolder(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "b.png"), 20, 10)
	writePNG(t, filepath.Join(dir, "a.PNG"), 30, 40)
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644)

	src, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer src.Close()

	if src.PageCount() != 2 {
		t.Fatalf("PageCount = %d, want 2", src.PageCount())
	}

	w, h, err := src.GetPageDimensions(0)
	if err != nil {
		t.Fatal(err)
	}
	if w != 30 || h != 40 {
		t.Errorf("page 0 = %vx%v, want 30x40 (a.PNG sorts first)", w, h)
	}

	img, err := src.RenderPage(1, 72)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 20 {
		t.Errorf("page 1 width = %d, want 20", img.Bounds().Dx())
	}

	if _, err := src.RenderPage(5, 72); err == nil {
		t.Error("expected out of range error")
	}
}

func TestOpenEmptyFolder(t *testing.T) {
	_, err := Open(t.TempDir())
	if !errors.Is(err, ErrNoPages) {
		t.Errorf("err = %v, want ErrNoPages", err)
	}
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want ErrNotExist", err)
	}
}
