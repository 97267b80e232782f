// Package preview - терминальный просмотр сценария: список шагов слева, миникарта
// ленты справа, полоса перемотки внизу. Документ прокручивается тем же аниматором,
// что и при рендеринге видео, только на часах реального времени.
package preview

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/ivlev/scrollcast/internal/director"
	"github.com/ivlev/scrollcast/internal/frame"
	"github.com/ivlev/scrollcast/internal/interact"
	"github.com/ivlev/scrollcast/internal/scroll"
	"github.com/ivlev/scrollcast/internal/timeline"
)

const (
	minPaneWidth = 12
	// Строки под заголовок и полосу перемотки
	chromeRows = 2
)

// movedContainer сообщает о каждом сдвиге прокрутки, чтобы перерисовать кадр.
type movedContainer struct {
	scroll.Container
	onMove func()
}

func (c movedContainer) SetScrollPos(axis scroll.Axis, pos float64) {
	c.Container.SetScrollPos(axis, pos)
	c.onMove()
}

// listView - список шагов как контейнер прокрутки в строках терминала.
type listView struct {
	rows  float64
	items float64
	pos   float64
}

func (l *listView) ClientSize(scroll.Axis) float64 { return l.rows }
func (l *listView) ScrollSize(scroll.Axis) float64 { return max(l.items, l.rows) }
func (l *listView) ScrollPos(scroll.Axis) float64  { return l.pos }
func (l *listView) SetScrollPos(_ scroll.Axis, pos float64) {
	l.pos = max(0, min(pos, l.ScrollSize(scroll.Vertical)-l.rows))
}

type Preview struct {
	screen   tcell.Screen
	sched    scroll.Scheduler
	doc      timeline.Document
	scenario *director.Scenario
	defaults scroll.Options

	targets  []scroll.Target
	opts     []scroll.Options
	active   int
	scroller *scroll.Scroller

	list     *listView
	keep     *interact.KeepActive[int]
	listMove movedContainer

	pane     *interact.Resizable
	paneFrom float64
	minimap  *interact.Draggable
	scrub    interact.Slider
	measurer *interact.Measurer

	buttons    tcell.ButtonMask
	dragTarget dragKind
	drawTick   scroll.TickID
	drawQueued bool
	quit       bool
}

type dragKind int

const (
	dragNone dragKind = iota
	dragPane
	dragMinimap
)

// New готовит просмотр. Все цели сценария вычисляются сразу, ошибка в любом шаге
// возвращается до открытия экрана.
func New(screen tcell.Screen, sched scroll.Scheduler, doc timeline.Document, sc *director.Scenario, defaults scroll.Options) (*Preview, error) {
	if err := sc.Validate(doc.PageCount()); err != nil {
		return nil, err
	}
	p := &Preview{
		screen:   screen,
		sched:    sched,
		doc:      doc,
		scenario: sc,
		defaults: defaults,
		list:     &listView{items: float64(len(sc.Steps))},
		scrub: interact.Slider{
			Min:  0,
			Max:  float64(max(len(sc.Steps)-1, 0)),
			Step: 1,
			Axis: scroll.Horizontal,
		},
	}
	for i, st := range sc.Steps {
		t, err := st.Target(doc)
		if err != nil {
			return nil, fmt.Errorf("шаг %d (%s): %w", i, st.Focus, err)
		}
		o, err := st.Options(defaults)
		if err != nil {
			return nil, err
		}
		o.Axis = doc.Axis()
		p.targets = append(p.targets, t)
		p.opts = append(p.opts, o)
	}

	p.scroller = scroll.NewScroller(sched, movedContainer{Container: doc, onMove: p.requestDraw})

	p.listMove = movedContainer{Container: p.list, onMove: p.requestDraw}
	p.keep = interact.NewKeepActive[int](sched, scroll.Options{
		TargetAnchor:    scroll.AnchorMiddle,
		ContainerAnchor: scroll.AnchorMiddle,
		MaxDuration:     defaults.MaxDuration,
		Easing:          defaults.Easing,
	})
	p.keep.SetContainer(p.listMove)
	for i := range sc.Steps {
		p.keep.SetItem(i, scroll.Box{Y: float64(i), H: 1})
	}

	p.pane = interact.NewResizable(interact.Size{W: 28})
	p.pane.Axis = interact.ResizeX
	p.pane.MinW = minPaneWidth
	p.minimap = interact.NewDraggable(interact.Point{}, interact.DragSlider, &interact.Bounds{})

	p.measurer = interact.NewMeasurer(sched, p.measureScreen)
	p.measurer.OnChange = func(interact.Rect) { p.layout() }
	p.layout()
	return p, nil
}

func (p *Preview) measureScreen() interact.Rect {
	w, h := p.screen.Size()
	return interact.Rect{W: float64(w), H: float64(h)}
}

// layout пересчитывает размеры областей под текущий экран.
func (p *Preview) layout() {
	r := p.measurer.Rect()
	p.pane.MaxW = max(minPaneWidth, r.W/2)
	p.pane.SetSize(p.pane.Size())
	p.list.rows = max(r.H-chromeRows, 1)
	p.list.SetScrollPos(scroll.Vertical, p.list.pos)
	p.requestDraw()
}

func (p *Preview) Active() int { return p.active }

// SetActive делает шаг i текущим: документ едет к цели шага, список - к строке.
func (p *Preview) SetActive(i int) {
	if len(p.targets) == 0 {
		return
	}
	i = max(0, min(i, len(p.targets)-1))
	p.active = i
	p.scroller.ScrollTo(p.targets[i], p.opts[i])
	p.keep.SetActive(i)
	p.requestDraw()
}

// requestDraw ставит перерисовку на следующий тик, не чаще одной за тик.
func (p *Preview) requestDraw() {
	if p.drawQueued {
		return
	}
	p.drawQueued = true
	p.drawTick = p.sched.RequestTick(func(time.Duration) {
		p.drawQueued = false
		p.Draw()
	})
}

// HandleEvent обрабатывает событие tcell; false означает выход.
func (p *Preview) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		p.screen.Sync()
		p.measurer.Invalidate()
	case *tcell.EventKey:
		p.handleKey(ev.Key(), ev.Rune())
	case *tcell.EventMouse:
		x, y := ev.Position()
		p.handleMouse(x, y, ev.Buttons())
	}
	return !p.quit
}

func (p *Preview) handleKey(key tcell.Key, r rune) {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		p.quit = true
	case tcell.KeyDown:
		p.SetActive(p.active + 1)
	case tcell.KeyUp:
		p.SetActive(p.active - 1)
	case tcell.KeyHome:
		p.SetActive(0)
	case tcell.KeyEnd:
		p.SetActive(len(p.targets) - 1)
	case tcell.KeyEnter:
		p.SetActive(p.active)
	case tcell.KeyRune:
		switch r {
		case 'q':
			p.quit = true
		case 'j':
			p.SetActive(p.active + 1)
		case 'k':
			p.SetActive(p.active - 1)
		case 'g':
			p.SetActive(0)
		case 'G':
			p.SetActive(len(p.targets) - 1)
		}
	}
}

func (p *Preview) handleMouse(x, y int, buttons tcell.ButtonMask) {
	pressed := buttons&tcell.Button1 != 0
	wasPressed := p.buttons&tcell.Button1 != 0
	p.buttons = buttons
	pt := interact.Point{X: float64(x), Y: float64(y)}

	switch {
	case pressed && !wasPressed:
		p.mouseDown(pt)
	case pressed && wasPressed:
		p.mouseDrag(pt)
	case !pressed && wasPressed:
		switch p.dragTarget {
		case dragPane:
			p.pane.End()
		case dragMinimap:
			p.minimap.End()
		}
		p.dragTarget = dragNone
	}
}

func (p *Preview) mouseDown(pt interact.Point) {
	g := p.geometry()
	switch {
	case int(pt.X) == g.border && pt.Y < g.bottom:
		p.pane.Begin()
		p.paneFrom = pt.X
		p.dragTarget = dragPane
	case g.scrub.Contains(pt):
		p.SetActive(int(p.scrub.ValueFromPoint(pt, g.scrub)))
	case g.minimap.Contains(pt):
		p.scroller.Stop()
		p.minimap.Bounds = &interact.Bounds{Top: 0, Bottom: max(g.minimap.H-g.box, 0)}
		p.minimap.Begin(interact.Point{Y: pt.Y - g.minimap.Y - g.box/2})
		p.dragTarget = dragMinimap
		p.seekMinimap(g)
	case g.list.Contains(pt):
		p.SetActive(int(pt.Y-g.list.Y) + int(p.list.pos))
	}
}

func (p *Preview) mouseDrag(pt interact.Point) {
	switch p.dragTarget {
	case dragPane:
		p.pane.Drag(interact.EdgeRight, pt.X-p.paneFrom, 0)
		p.requestDraw()
	case dragMinimap:
		g := p.geometry()
		p.minimap.Move(interact.Point{Y: pt.Y - g.minimap.Y - g.box/2})
		p.seekMinimap(g)
	}
}

// seekMinimap переводит положение рамки на миникарте в позицию прокрутки документа.
func (p *Preview) seekMinimap(g geometry) {
	travel := g.minimap.H - g.box
	axis := p.doc.Axis()
	maxScroll := scroll.MaxScroll(p.doc, axis)
	pos := 0.0
	if travel > 0 {
		pos = p.minimap.Position().Y / travel * maxScroll
	}
	p.doc.SetScrollPos(axis, pos)
	p.requestDraw()
}

// Run крутит цикл кадров до выхода по клавише или отмены ctx.
// События читаются в отдельной горутине и передаются в цикл через Post.
func (p *Preview) Run(ctx context.Context, loop *frame.Loop) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		for {
			ev := p.screen.PollEvent()
			if ev == nil {
				return
			}
			loop.Post(func() {
				if !p.HandleEvent(ev) {
					cancel()
				}
			})
		}
	}()

	p.SetActive(0)
	err := loop.Run(ctx)
	if p.quit && errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Stop снимает все запланированные тики.
func (p *Preview) Stop() {
	p.scroller.Destroy()
	p.keep.Stop()
	p.measurer.Stop()
	if p.drawQueued {
		p.sched.CancelTick(p.drawTick)
		p.drawQueued = false
	}
}
