package director

import (
	"fmt"
	"image"
	"time"

	"github.com/ivlev/scrollcast/internal/scroll"
)

const ScenarioVersion = "2.0"

// Scenario - последовательность шагов прокрутки по документу
type Scenario struct {
	Version   string      `yaml:"version"`
	Direction scroll.Axis `yaml:"direction"`
	Viewport  Size        `yaml:"viewport"`
	Steps     []Step      `yaml:"steps"`
}

type Size struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// Step прокручивает ленту к странице (или области на ней) и держит кадр Dwell.
// Пустые поля берутся из настроек по умолчанию.
type Step struct {
	Focus           string         `yaml:"focus"`
	Page            int            `yaml:"page"`
	Rect            *Rectangle     `yaml:"rect,omitempty"` // В координатах масштабированной страницы
	TargetAnchor    *scroll.Anchor `yaml:"target_anchor,omitempty"`
	ContainerAnchor *scroll.Anchor `yaml:"container_anchor,omitempty"`
	Offset          *scroll.Offset `yaml:"offset,omitempty"`
	Duration        time.Duration  `yaml:"duration,omitempty"` // Предел длительности анимации
	Easing          string         `yaml:"easing,omitempty"`
	Dwell           time.Duration  `yaml:"dwell"`
}

// Rectangle represents a bounding box
type Rectangle struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	W int `yaml:"w"`
	H int `yaml:"h"`
}

func RectFrom(r image.Rectangle) *Rectangle {
	return &Rectangle{X: r.Min.X, Y: r.Min.Y, W: r.Dx(), H: r.Dy()}
}

func (r Rectangle) Image() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)
}

// Targets - источник целей прокрутки (document.Document).
type Targets interface {
	Page(i int) (scroll.Target, error)
	Region(i int, r image.Rectangle) (scroll.Target, error)
}

func (s Step) Target(t Targets) (scroll.Target, error) {
	if s.Rect != nil {
		return t.Region(s.Page, s.Rect.Image())
	}
	return t.Page(s.Page)
}

// Options накладывает заданные в шаге поля на defaults.
func (s Step) Options(defaults scroll.Options) (scroll.Options, error) {
	opts := defaults
	if s.TargetAnchor != nil {
		opts.TargetAnchor = *s.TargetAnchor
	}
	if s.ContainerAnchor != nil {
		opts.ContainerAnchor = *s.ContainerAnchor
	}
	if s.Offset != nil {
		opts.Offset = *s.Offset
	}
	if s.Duration > 0 {
		opts.MaxDuration = s.Duration
	}
	if s.Easing != "" {
		ease, err := scroll.EasingByName(s.Easing)
		if err != nil {
			return opts, fmt.Errorf("шаг %q: %w", s.Focus, err)
		}
		opts.Easing = ease
	}
	return opts, nil
}

// Validate проверяет сценарий против документа из pageCount страниц.
func (sc *Scenario) Validate(pageCount int) error {
	if len(sc.Steps) == 0 {
		return fmt.Errorf("сценарий не содержит шагов")
	}
	for i, st := range sc.Steps {
		if st.Page < 0 || st.Page >= pageCount {
			return fmt.Errorf("шаг %d (%s): страница %d вне диапазона [0, %d)", i, st.Focus, st.Page, pageCount)
		}
		if st.Dwell < 0 {
			return fmt.Errorf("шаг %d (%s): отрицательная пауза", i, st.Focus)
		}
		if st.Easing != "" {
			if _, err := scroll.EasingByName(st.Easing); err != nil {
				return fmt.Errorf("шаг %d (%s): %w", i, st.Focus, err)
			}
		}
	}
	return nil
}

// TotalDwell - сумма пауз всех шагов.
func (sc *Scenario) TotalDwell() time.Duration {
	var total time.Duration
	for _, st := range sc.Steps {
		total += st.Dwell
	}
	return total
}

func anchorPtr(a scroll.Anchor) *scroll.Anchor { return &a }
