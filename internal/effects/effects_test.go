package effects

import (
	"image"
	"image/color"
	"testing"

	"github.com/ivlev/scrollcast/internal/config"
	"github.com/ivlev/scrollcast/internal/timeline"
)

func blank(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}
	return img
}

func changed(img *image.RGBA, r image.Rectangle) int {
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if img.RGBAAt(x, y) != (color.RGBA{A: 255}) {
				n++
			}
		}
	}
	return n
}

func TestProgressBar(t *testing.T) {
	img := blank(100, 20)
	NewProgressBar().Apply(img, State{Frame: timeline.Frame{Progress: 0.5}})

	if img.RGBAAt(25, 19) == (color.RGBA{A: 255}) {
		t.Error("bar not drawn in the first half")
	}
	if img.RGBAAt(75, 19) != (color.RGBA{A: 255}) {
		t.Error("bar drawn past progress")
	}
	if img.RGBAAt(25, 10) != (color.RGBA{A: 255}) {
		t.Error("bar taller than its height")
	}
}

func TestHUD(t *testing.T) {
	img := blank(400, 100)
	h := NewHUD()
	st := State{Frame: timeline.Frame{Step: 2}, StepCount: 9, Page: 0, PageCount: 3, Focus: "intro"}

	if got, want := h.Label(st), "Page 1/3 | Step 3/9 | intro"; got != want {
		t.Errorf("Label = %q, want %q", got, want)
	}

	h.Apply(img, st)
	if changed(img, image.Rect(0, 0, 400, 40)) == 0 {
		t.Error("HUD drew nothing")
	}
	if changed(img, image.Rect(0, 60, 400, 100)) != 0 {
		t.Error("HUD drew outside its corner")
	}
}

func TestQROverlay(t *testing.T) {
	q, err := NewQROverlay("https://example.com/deck", 64)
	if err != nil {
		t.Fatalf("NewQROverlay: %v", err)
	}
	img := blank(200, 200)
	q.Apply(img, State{})

	if changed(img, image.Rect(120, 120, 184, 184)) == 0 {
		t.Error("QR code not drawn in the corner")
	}
	if changed(img, image.Rect(0, 0, 100, 100)) != 0 {
		t.Error("QR code drawn outside the corner")
	}

	small := blank(50, 50)
	q.Apply(small, State{})
	if changed(small, small.Bounds()) != 0 {
		t.Error("QR code drawn on a frame too small for it")
	}

	if _, err := NewQROverlay("", 64); err == nil {
		t.Error("expected error for empty content")
	}
}

type recorder struct {
	name string
	log  *[]string
}

func (r recorder) Apply(*image.RGBA, State) { *r.log = append(*r.log, r.name) }

func TestChainOrder(t *testing.T) {
	var log []string
	Chain{recorder{"a", &log}, recorder{"b", &log}}.Apply(blank(1, 1), State{})
	if len(log) != 2 || log[0] != "a" || log[1] != "b" {
		t.Errorf("order = %v", log)
	}
}

func TestFromConfig(t *testing.T) {
	cfg := config.Default()
	chain, err := FromConfig(cfg)
	if err != nil || len(chain) != 0 {
		t.Fatalf("default chain = %v, %v", chain, err)
	}

	cfg.HUD, cfg.ProgressBar, cfg.QRText = true, true, "https://example.com"
	chain, err = FromConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(chain) != 3 {
		t.Errorf("chain length = %d, want 3", len(chain))
	}
}
