package effects

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// HUD выводит номер страницы и шага в левом верхнем углу (отладочный режим).
type HUD struct {
	Text       color.Color
	Background color.Color
	Margin     int
}

func NewHUD() *HUD {
	return &HUD{
		Text:       color.RGBA{R: 255, G: 220, A: 255},
		Background: color.RGBA{A: 160},
		Margin:     8,
	}
}

func (h *HUD) Label(st State) string {
	label := fmt.Sprintf("Page %d/%d | Step %d/%d", st.Page+1, st.PageCount, st.Frame.Step+1, st.StepCount)
	if st.Focus != "" {
		label += " | " + st.Focus
	}
	return label
}

func (h *HUD) Apply(dst *image.RGBA, st State) {
	face := basicfont.Face7x13
	label := h.Label(st)

	d := &font.Drawer{Dst: dst, Src: image.NewUniform(h.Text), Face: face}
	width := d.MeasureString(label).Ceil()
	metrics := face.Metrics()
	height := (metrics.Ascent + metrics.Descent).Ceil()

	origin := dst.Bounds().Min.Add(image.Pt(h.Margin, h.Margin))
	box := image.Rectangle{Min: origin, Max: origin.Add(image.Pt(width+8, height+6))}
	draw.Draw(dst, box, image.NewUniform(h.Background), image.Point{}, draw.Over)

	d.Dot = fixed.P(origin.X+4, origin.Y+3+metrics.Ascent.Ceil())
	d.DrawString(label)
}
