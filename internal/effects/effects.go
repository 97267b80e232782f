package effects

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/ivlev/scrollcast/internal/timeline"
)

// State - все, что эффект знает о текущем кадре.
type State struct {
	Frame      timeline.Frame
	FrameCount int
	StepCount  int
	Focus      string
	Page       int
	PageCount  int
}

// Effect рисует поверх готового кадра. Apply вызывается из нескольких горутин
// одновременно, поэтому эффекты не должны менять свое состояние.
type Effect interface {
	Apply(dst *image.RGBA, st State)
}

// Chain применяет эффекты по порядку.
type Chain []Effect

func (c Chain) Apply(dst *image.RGBA, st State) {
	for _, e := range c {
		e.Apply(dst, st)
	}
}

// ProgressBar - полоса прогресса ролика вдоль нижнего края.
type ProgressBar struct {
	Height int
	Color  color.Color
}

func NewProgressBar() *ProgressBar {
	return &ProgressBar{Height: 4, Color: color.RGBA{R: 230, G: 60, B: 40, A: 255}}
}

func (p *ProgressBar) Apply(dst *image.RGBA, st State) {
	b := dst.Bounds()
	w := int(float64(b.Dx()) * st.Frame.Progress)
	if w <= 0 {
		return
	}
	bar := image.Rect(b.Min.X, b.Max.Y-p.Height, b.Min.X+w, b.Max.Y)
	draw.Draw(dst, bar, image.NewUniform(p.Color), image.Point{}, draw.Src)
}
