package director

import (
	"errors"
	"fmt"
	"image"
	"sort"
	"time"

	"github.com/ivlev/scrollcast/internal/analyzer"
	"github.com/ivlev/scrollcast/internal/scroll"
)

var ErrNoBlocks = errors.New("no blocks detected")

// Director строит сценарий прокрутки по найденным на страницах блокам
type Director struct {
	ViewportWidth  int
	ViewportHeight int
	Axis           scroll.Axis
	MinDwell       time.Duration // Минимальная пауза на блоке
	MaxDwell       time.Duration // Максимальная пауза на блоке
	IntroDwell     time.Duration
	OutroDwell     time.Duration
}

func NewDirector(viewportWidth, viewportHeight int) *Director {
	return &Director{
		ViewportWidth:  viewportWidth,
		ViewportHeight: viewportHeight,
		MinDwell:       time.Second,
		MaxDwell:       3 * time.Second,
		IntroDwell:     time.Second,
		OutroDwell:     time.Second,
	}
}

func (d *Director) newScenario() *Scenario {
	return &Scenario{
		Version:   ScenarioVersion,
		Direction: d.Axis,
		Viewport:  Size{W: d.ViewportWidth, H: d.ViewportHeight},
	}
}

// GenerateScenario: вступление с начала ленты, затем каждый блок по порядку чтения по центру окна,
// в конце - упор в конец ленты. Страницы без блоков показываются целиком.
// pages[i] - блоки страницы i в координатах масштабированной страницы.
func (d *Director) GenerateScenario(pages [][]analyzer.Block, totalDuration time.Duration) (*Scenario, error) {
	if len(pages) == 0 {
		return nil, fmt.Errorf("нет страниц: %w", ErrNoBlocks)
	}
	blockCount := 0
	stepCount := 0
	for _, blocks := range pages {
		blockCount += len(blocks)
		stepCount += max(len(blocks), 1)
	}
	if blockCount == 0 {
		return nil, ErrNoBlocks
	}

	dwell := d.calculateDwellTime(totalDuration, stepCount)
	sc := d.newScenario()
	sc.Steps = append(sc.Steps, d.introStep())

	for p, blocks := range pages {
		if len(blocks) == 0 {
			sc.Steps = append(sc.Steps, d.pageStep(p, dwell))
			continue
		}
		for i, b := range d.sortBlocks(blocks) {
			sc.Steps = append(sc.Steps, Step{
				Focus:           fmt.Sprintf("page_%d_region_%d", p+1, i+1),
				Page:            p,
				Rect:            RectFrom(b.Rect),
				TargetAnchor:    anchorPtr(scroll.AnchorMiddle),
				ContainerAnchor: anchorPtr(scroll.AnchorMiddle),
				Dwell:           dwell,
			})
		}
	}

	sc.Steps = append(sc.Steps, d.outroStep(len(pages)-1))
	return sc, nil
}

// GeneratePageScenario - сценарий без анализа: по одному шагу на страницу.
// dwell <= 0 означает середину диапазона [MinDwell, MaxDwell].
func (d *Director) GeneratePageScenario(pageCount int, dwell time.Duration) *Scenario {
	if dwell <= 0 {
		dwell = (d.MinDwell + d.MaxDwell) / 2
	}
	sc := d.newScenario()
	for p := 0; p < pageCount; p++ {
		sc.Steps = append(sc.Steps, d.pageStep(p, dwell))
	}
	if pageCount > 0 {
		sc.Steps = append(sc.Steps, d.outroStep(pageCount-1))
	}
	return sc
}

func (d *Director) introStep() Step {
	return Step{
		Focus:           "intro",
		Page:            0,
		TargetAnchor:    anchorPtr(scroll.AnchorStart),
		ContainerAnchor: anchorPtr(scroll.AnchorStart),
		Dwell:           d.IntroDwell,
	}
}

func (d *Director) outroStep(lastPage int) Step {
	return Step{
		Focus:           "outro",
		Page:            lastPage,
		TargetAnchor:    anchorPtr(scroll.AnchorEnd),
		ContainerAnchor: anchorPtr(scroll.AnchorEnd),
		Dwell:           d.OutroDwell,
	}
}

func (d *Director) pageStep(p int, dwell time.Duration) Step {
	return Step{
		Focus:           fmt.Sprintf("page_%d", p+1),
		Page:            p,
		TargetAnchor:    anchorPtr(scroll.AnchorStart),
		ContainerAnchor: anchorPtr(scroll.AnchorStart),
		Dwell:           dwell,
	}
}

// sortBlocks сортирует блоки в порядке чтения: вдоль оси прокрутки, затем поперек
func (d *Director) sortBlocks(blocks []analyzer.Block) []analyzer.Block {
	sorted := make([]analyzer.Block, len(blocks))
	copy(sorted, blocks)

	along := func(r image.Rectangle) (int, int) { return r.Min.Y, r.Min.X }
	if d.Axis == scroll.Horizontal {
		along = func(r image.Rectangle) (int, int) { return r.Min.X, r.Min.Y }
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		ai, ci := along(sorted[i].Rect)
		aj, cj := along(sorted[j].Rect)
		if ai != aj {
			return ai < aj
		}
		return ci < cj
	})

	// Блоки в пределах порога от начала строки (20 пикселей) считаются одной строкой
	threshold := 20
	for start := 0; start < len(sorted); {
		first, _ := along(sorted[start].Rect)
		end := start + 1
		for end < len(sorted) {
			a, _ := along(sorted[end].Rect)
			if a-first > threshold {
				break
			}
			end++
		}
		row := sorted[start:end]
		sort.SliceStable(row, func(i, j int) bool {
			_, ci := along(row[i].Rect)
			_, cj := along(row[j].Rect)
			return ci < cj
		})
		start = end
	}

	return sorted
}

// calculateDwellTime делит оставшееся после вступления и концовки время между шагами
func (d *Director) calculateDwellTime(totalDuration time.Duration, steps int) time.Duration {
	if steps <= 0 {
		return d.MinDwell
	}
	if totalDuration <= 0 {
		return (d.MinDwell + d.MaxDwell) / 2
	}

	available := totalDuration - d.IntroDwell - d.OutroDwell
	if available <= 0 {
		available = totalDuration
	}

	dwell := available / time.Duration(steps)
	if dwell < d.MinDwell {
		dwell = d.MinDwell
	}
	if dwell > d.MaxDwell {
		dwell = d.MaxDwell
	}
	return dwell
}
