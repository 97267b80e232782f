package preview

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/ivlev/scrollcast/internal/interact"
)

var (
	styleText   = tcell.StyleDefault
	styleActive = tcell.StyleDefault.Reverse(true)
	styleDim    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	stylePage   = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleBox    = tcell.StyleDefault.Foreground(tcell.ColorYellow).Reverse(true)
)

// geometry - области экрана в ячейках терминала.
type geometry struct {
	width, height int
	border        int     // Колонка разделителя панелей
	bottom        float64 // Первая строка под панелями
	list          interact.Rect
	minimap       interact.Rect
	scrub         interact.Rect
	box           float64 // Высота рамки окна на миникарте
	scale         float64 // Пикселей документа на строку миникарты
}

func (p *Preview) geometry() geometry {
	r := p.measurer.Rect()
	w, h := int(r.W), int(r.H)
	paneW := int(p.pane.Size().W)
	g := geometry{
		width:  w,
		height: h,
		border: paneW,
		bottom: float64(h - 1),
	}
	panes := float64(max(h-chromeRows, 0))
	g.list = interact.Rect{X: 0, Y: 1, W: float64(paneW), H: panes}
	g.minimap = interact.Rect{X: float64(paneW + 1), Y: 1, W: float64(max(w-paneW-1, 0)), H: panes}
	g.scrub = interact.Rect{X: 0, Y: float64(h - 1), W: float64(w), H: 1}

	axis := p.doc.Axis()
	total := p.doc.ScrollSize(axis)
	if panes > 0 && total > 0 {
		g.scale = total / panes
		g.box = math.Max(1, math.Round(p.doc.ClientSize(axis)/g.scale))
		g.box = math.Min(g.box, panes)
	}
	return g
}

// Draw перерисовывает экран целиком.
func (p *Preview) Draw() {
	g := p.geometry()
	p.screen.Clear()
	if g.width <= 0 || g.height <= 0 {
		p.screen.Show()
		return
	}

	p.drawTitle(g)
	p.drawList(g)
	for y := 1; y < int(g.bottom); y++ {
		p.screen.SetContent(g.border, y, '│', nil, styleDim)
	}
	p.drawMinimap(g)
	p.drawScrub(g)
	p.screen.Show()
}

func (p *Preview) drawTitle(g geometry) {
	focus := ""
	if len(p.scenario.Steps) > 0 {
		focus = p.scenario.Steps[p.active].Focus
	}
	title := fmt.Sprintf("scrollcast | шаг %d/%d | %s | j/k g/G q", p.active+1, len(p.scenario.Steps), focus)
	drawText(p.screen, 0, 0, g.width, title, styleText)
}

func (p *Preview) drawList(g geometry) {
	first := int(math.Round(p.list.pos))
	for row := 0; row < int(g.list.H); row++ {
		i := first + row
		if i >= len(p.scenario.Steps) {
			break
		}
		st := p.scenario.Steps[i]
		marker, style := ' ', styleText
		if i == p.active {
			marker, style = '>', styleActive
		}
		line := fmt.Sprintf("%c%3d %s", marker, i+1, st.Focus)
		drawText(p.screen, 0, int(g.list.Y)+row, g.border, line, style)
	}
}

func (p *Preview) drawMinimap(g geometry) {
	if g.scale == 0 || g.minimap.W <= 0 {
		return
	}
	axis := p.doc.Axis()
	x0, y0 := int(g.minimap.X), int(g.minimap.Y)
	rows, cols := int(g.minimap.H), int(g.minimap.W)

	for i := 0; i < p.doc.PageCount(); i++ {
		t, err := p.doc.Page(i)
		if err != nil {
			continue
		}
		from := int(t.OffsetPos(axis) / g.scale)
		to := int(math.Ceil((t.OffsetPos(axis) + t.OffsetSize(axis)) / g.scale))
		for r := from; r < min(to, rows); r++ {
			for c := 0; c < cols; c++ {
				p.screen.SetContent(x0+c, y0+r, '░', nil, stylePage)
			}
		}
		drawText(p.screen, x0, y0+from, cols, fmt.Sprintf("%d", i+1), stylePage)
	}

	top := p.minimap.Position().Y
	if !p.minimap.Dragging() {
		top = math.Round(p.doc.ScrollPos(axis) / g.scale)
	}
	for r := int(top); r < int(top+g.box) && r < rows; r++ {
		for c := 0; c < cols; c++ {
			mainc, _, _, _ := p.screen.GetContent(x0+c, y0+r)
			p.screen.SetContent(x0+c, y0+r, mainc, nil, styleBox)
		}
	}
}

func (p *Preview) drawScrub(g geometry) {
	y := int(g.scrub.Y)
	for x := 0; x < g.width; x++ {
		p.screen.SetContent(x, y, '─', nil, styleDim)
	}
	if len(p.scenario.Steps) == 0 {
		return
	}
	x := int(math.Round(p.scrub.Ratio(float64(p.active)) * (g.scrub.W - 1)))
	p.screen.SetContent(x, y, '●', nil, styleText)
}

// drawText пишет s с колонки x, обрезая по ширине w с учетом широких символов.
func drawText(s tcell.Screen, x, y, w int, text string, style tcell.Style) {
	if w <= 0 {
		return
	}
	text = runewidth.Truncate(text, w, "…")
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}
