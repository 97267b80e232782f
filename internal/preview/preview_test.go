package preview

import (
	"image"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/ivlev/scrollcast/internal/director"
	"github.com/ivlev/scrollcast/internal/document"
	"github.com/ivlev/scrollcast/internal/frame"
	"github.com/ivlev/scrollcast/internal/scroll"
)

// newTestPreview: три страницы 40x30 с зазором 10 (начала 0/40/80, предел прокрутки 80),
// шаги page_1..page_3 и outro.
func newTestPreview(t *testing.T, w, h int) (*Preview, *frame.VirtualLoop, *document.Document, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(w, h)

	images := make([]image.Image, 3)
	for i := range images {
		images[i] = image.NewNRGBA(image.Rect(0, 0, 40, 30))
	}
	doc := document.FromImages(images, document.Layout{ViewW: 40, ViewH: 30, Axis: scroll.Vertical, Gap: 10})
	sc := director.NewDirector(40, 30).GeneratePageScenario(3, time.Second)

	loop := frame.NewVirtualLoop(60)
	p, err := New(screen, loop, doc, sc, scroll.Options{})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(p.Stop)
	return p, loop, doc, screen
}

func TestKeysMoveActiveStep(t *testing.T) {
	p, loop, doc, _ := newTestPreview(t, 60, 20)

	tests := []struct {
		key     tcell.Key
		r       rune
		active  int
		wantPos float64
	}{
		{tcell.KeyRune, 'j', 1, 40},
		{tcell.KeyDown, 0, 2, 80},
		{tcell.KeyRune, 'k', 1, 40},
		{tcell.KeyRune, 'G', 3, 80},
		{tcell.KeyRune, 'g', 0, 0},
		{tcell.KeyUp, 0, 0, 0},
		{tcell.KeyEnd, 0, 3, 80},
	}
	for _, tt := range tests {
		p.handleKey(tt.key, tt.r)
		loop.RunUntilIdle(1000)
		if p.Active() != tt.active {
			t.Errorf("key %v %q: active = %d, want %d", tt.key, tt.r, p.Active(), tt.active)
		}
		if got := doc.ScrollPos(scroll.Vertical); got != tt.wantPos {
			t.Errorf("key %v %q: pos = %v, want %v", tt.key, tt.r, got, tt.wantPos)
		}
	}
}

func TestQuitKeys(t *testing.T) {
	for _, key := range []tcell.Key{tcell.KeyEscape, tcell.KeyCtrlC} {
		p, _, _, _ := newTestPreview(t, 60, 20)
		p.handleKey(key, 0)
		if !p.quit {
			t.Errorf("key %v did not quit", key)
		}
	}
	p, _, _, _ := newTestPreview(t, 60, 20)
	p.handleKey(tcell.KeyRune, 'q')
	if p.HandleEvent(tcell.NewEventResize(60, 20)) {
		t.Error("HandleEvent should report exit after q")
	}
}

func TestDrawMarksActiveStep(t *testing.T) {
	p, loop, _, screen := newTestPreview(t, 60, 20)
	p.SetActive(2)
	loop.RunUntilIdle(1000)

	// Строка 0 - заголовок, список начинается со строки 1
	if r, _, _, _ := screen.GetContent(0, 3); r != '>' {
		t.Errorf("active row marker = %q, want '>'", r)
	}
	if r, _, _, _ := screen.GetContent(0, 1); r == '>' {
		t.Error("inactive row marked")
	}
	if r, _, _, _ := screen.GetContent(int(p.pane.Size().W), 5); r != '│' {
		t.Errorf("border = %q", r)
	}
}

func TestResizeAndPaneDrag(t *testing.T) {
	p, loop, _, screen := newTestPreview(t, 60, 20)
	if p.pane.MaxW != 30 {
		t.Fatalf("MaxW = %v, want 30", p.pane.MaxW)
	}

	screen.SetSize(80, 30)
	p.HandleEvent(tcell.NewEventResize(80, 30))
	loop.RunUntilIdle(10)
	if r := p.measurer.Rect(); r.W != 80 || r.H != 30 {
		t.Fatalf("measured %+v, want 80x30", r)
	}
	if p.pane.MaxW != 40 {
		t.Errorf("MaxW = %v, want 40", p.pane.MaxW)
	}

	p.handleMouse(28, 5, tcell.Button1)
	p.handleMouse(35, 5, tcell.Button1)
	p.handleMouse(60, 5, tcell.Button1)
	p.handleMouse(60, 5, tcell.ButtonNone)
	if w := p.pane.Size().W; w != 40 {
		t.Errorf("pane width = %v, want 40 (clamped)", w)
	}
	if p.pane.Resizing() {
		t.Error("still resizing after release")
	}
}

func TestScrubAndListClicks(t *testing.T) {
	p, loop, doc, _ := newTestPreview(t, 80, 30)

	p.handleMouse(79, 29, tcell.Button1)
	p.handleMouse(79, 29, tcell.ButtonNone)
	loop.RunUntilIdle(1000)
	if p.Active() != 3 {
		t.Errorf("scrub click: active = %d, want 3", p.Active())
	}

	p.handleMouse(2, 3, tcell.Button1)
	p.handleMouse(2, 3, tcell.ButtonNone)
	loop.RunUntilIdle(1000)
	if p.Active() != 2 {
		t.Errorf("list click: active = %d, want 2", p.Active())
	}
	if got := doc.ScrollPos(scroll.Vertical); got != 80 {
		t.Errorf("pos = %v, want 80", got)
	}
}

func TestMinimapDrag(t *testing.T) {
	p, loop, doc, _ := newTestPreview(t, 80, 30)
	g := p.geometry()
	// 28 строк на 110px ленты, рамка окна - 8 строк, ход рамки 20
	if g.box != 8 {
		t.Fatalf("box = %v, want 8", g.box)
	}

	x := int(g.minimap.X) + 2
	p.handleMouse(x, 11, tcell.Button1)
	if got := doc.ScrollPos(scroll.Vertical); got != 24 {
		t.Errorf("press: pos = %v, want 24", got)
	}
	p.handleMouse(x, 29, tcell.Button1)
	if got := doc.ScrollPos(scroll.Vertical); got != 80 {
		t.Errorf("drag past end: pos = %v, want 80", got)
	}
	p.handleMouse(x, 29, tcell.ButtonNone)
	loop.RunUntilIdle(100)
	if p.minimap.Dragging() {
		t.Error("still dragging after release")
	}
}
