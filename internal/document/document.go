// Package document раскладывает страницы источника в одну прокручиваемую ленту.
package document

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	"github.com/ivlev/scrollcast/internal/scroll"
	"github.com/ivlev/scrollcast/internal/source"
)

// Layout задает окно просмотра и расположение страниц.
type Layout struct {
	ViewW, ViewH int
	Axis         scroll.Axis
	// Gap - расстояние между страницами в пикселях ленты
	Gap int
	DPI int
}

type Page struct {
	Index int
	Image *image.NRGBA
	// Rect - положение страницы в координатах ленты
	Rect image.Rectangle
}

// Document - лента страниц и текущая позиция прокрутки. Реализует scroll.Container;
// позиция вне диапазона обрезается, как это делает браузер.
type Document struct {
	layout     Layout
	pages      []Page
	size       image.Point
	pos        float64
	Background color.Color
}

// Build рендерит все страницы параллельно (не более workers одновременно) и
// масштабирует их под поперечный размер окна.
func Build(ctx context.Context, src source.Source, layout Layout, workers int) (*Document, error) {
	count := src.PageCount()
	if count == 0 {
		return nil, source.ErrNoPages
	}
	if workers <= 0 {
		workers = 1
	}

	images := make([]image.Image, count)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < count; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := src.RenderPage(i, layout.DPI)
			if err != nil {
				return fmt.Errorf("рендеринг страницы %d: %w", i, err)
			}
			images[i] = fitCross(img, layout)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return FromImages(images, layout), nil
}

// FromImages собирает ленту из готовых изображений, масштабируя их так же, как Build.
func FromImages(images []image.Image, layout Layout) *Document {
	d := &Document{layout: layout, Background: color.Black}
	cursor := 0
	for i, img := range images {
		scaled, ok := img.(*image.NRGBA)
		if !ok || crossSize(scaled.Bounds(), layout) != crossView(layout) {
			scaled = fitCross(img, layout)
		}
		b := scaled.Bounds()
		var r image.Rectangle
		if layout.Axis == scroll.Horizontal {
			r = image.Rect(cursor, 0, cursor+b.Dx(), b.Dy())
			cursor += b.Dx() + layout.Gap
		} else {
			r = image.Rect(0, cursor, b.Dx(), cursor+b.Dy())
			cursor += b.Dy() + layout.Gap
		}
		d.pages = append(d.pages, Page{Index: i, Image: scaled, Rect: r})
	}
	if len(images) > 0 {
		cursor -= layout.Gap
	}
	if layout.Axis == scroll.Horizontal {
		d.size = image.Pt(cursor, layout.ViewH)
	} else {
		d.size = image.Pt(layout.ViewW, cursor)
	}
	return d
}

func crossView(l Layout) int {
	if l.Axis == scroll.Horizontal {
		return l.ViewH
	}
	return l.ViewW
}

func crossSize(b image.Rectangle, l Layout) int {
	if l.Axis == scroll.Horizontal {
		return b.Dy()
	}
	return b.Dx()
}

func fitCross(img image.Image, l Layout) *image.NRGBA {
	if l.Axis == scroll.Horizontal {
		return imaging.Resize(img, 0, l.ViewH, imaging.Lanczos)
	}
	return imaging.Resize(img, l.ViewW, 0, imaging.Lanczos)
}

func (d *Document) Layout() Layout { return d.layout }

func (d *Document) Axis() scroll.Axis { return d.layout.Axis }

func (d *Document) Pages() []Page { return d.pages }

func (d *Document) PageCount() int { return len(d.pages) }

// Size - размер всей ленты.
func (d *Document) Size() image.Point { return d.size }

func (d *Document) ClientSize(axis scroll.Axis) float64 {
	if axis == scroll.Horizontal {
		return float64(d.layout.ViewW)
	}
	return float64(d.layout.ViewH)
}

func (d *Document) ScrollSize(axis scroll.Axis) float64 {
	if axis == scroll.Horizontal {
		return float64(d.size.X)
	}
	return float64(d.size.Y)
}

func (d *Document) ScrollPos(axis scroll.Axis) float64 {
	if axis != d.layout.Axis {
		return 0
	}
	return d.pos
}

func (d *Document) SetScrollPos(axis scroll.Axis, pos float64) {
	if axis != d.layout.Axis {
		return
	}
	d.pos = math.Max(0, math.Min(pos, scroll.MaxScroll(d, axis)))
}

// Page возвращает цель для всей страницы i.
func (d *Document) Page(i int) (scroll.Target, error) {
	if i < 0 || i >= len(d.pages) {
		return nil, fmt.Errorf("страница %d вне диапазона [0, %d)", i, len(d.pages))
	}
	return boxOf(d.pages[i].Rect), nil
}

// Region возвращает цель для прямоугольника r в координатах масштабированной страницы i.
func (d *Document) Region(i int, r image.Rectangle) (scroll.Target, error) {
	if i < 0 || i >= len(d.pages) {
		return nil, fmt.Errorf("страница %d вне диапазона [0, %d)", i, len(d.pages))
	}
	p := d.pages[i]
	r = r.Add(p.Rect.Min).Intersect(p.Rect)
	if r.Empty() {
		return nil, fmt.Errorf("область вне страницы %d", i)
	}
	return boxOf(r), nil
}

// PageAt возвращает индекс страницы, на которую приходится позиция pos вдоль оси.
func (d *Document) PageAt(pos float64) int {
	for i, p := range d.pages {
		end := p.Rect.Max.Y
		if d.layout.Axis == scroll.Horizontal {
			end = p.Rect.Max.X
		}
		if pos < float64(end+d.layout.Gap) {
			return i
		}
	}
	return len(d.pages) - 1
}

func boxOf(r image.Rectangle) scroll.Box {
	return scroll.Box{X: float64(r.Min.X), Y: float64(r.Min.Y), W: float64(r.Dx()), H: float64(r.Dy())}
}

// Compose рисует видимое окно ленты при позиции pos в dst. Позиция округляется до пикселя.
func (d *Document) Compose(dst *image.RGBA, pos float64) {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(d.Background), image.Point{}, draw.Src)

	shift := int(math.Round(pos))
	view := image.Rect(0, shift, d.layout.ViewW, shift+d.layout.ViewH)
	if d.layout.Axis == scroll.Horizontal {
		view = image.Rect(shift, 0, shift+d.layout.ViewW, d.layout.ViewH)
	}

	for _, p := range d.pages {
		vis := p.Rect.Intersect(view)
		if vis.Empty() {
			continue
		}
		dp := vis.Min.Sub(view.Min).Add(dst.Bounds().Min)
		sr := vis.Sub(p.Rect.Min)
		draw.Copy(dst, dp, p.Image, sr, draw.Src, nil)
	}
}

// Viewport - то же, что Compose, в новый буфер.
func (d *Document) Viewport(pos float64) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, d.layout.ViewW, d.layout.ViewH))
	d.Compose(dst, pos)
	return dst
}
