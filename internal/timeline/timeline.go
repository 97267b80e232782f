// Package timeline прогоняет сценарий через аниматор прокрутки на виртуальных часах
// и превращает его в покадровый план позиций.
package timeline

import (
	"fmt"
	"math"
	"time"

	"github.com/ivlev/scrollcast/internal/director"
	"github.com/ivlev/scrollcast/internal/frame"
	"github.com/ivlev/scrollcast/internal/scroll"
)

// maxStepFrames защищает от анимации, которая никогда не завершается.
const maxStepFrames = 100000

// Document - то, по чему едет камера: контейнер прокрутки с целями.
type Document interface {
	scroll.Container
	director.Targets
	Axis() scroll.Axis
	PageCount() int
}

type Frame struct {
	Index int
	Pos   float64
	Step  int
	// Progress - доля пройденного ролика, (0, 1]
	Progress float64
	Moving   bool
}

// span - кадры одного шага: движение, затем удержание позиции.
type span struct {
	step    int
	moving  []float64
	hold    int
	holdPos float64
}

type Timeline struct {
	FPS    int
	Frames []Frame
	spans  []span
}

// Plan проигрывает шаги по очереди. Каждый шаг ждет окончания анимации и держит
// кадр Dwell; позиция документа по окончании равна рассчитанной цели.
func Plan(doc Document, sc *director.Scenario, fps int, defaults scroll.Options) (*Timeline, error) {
	if err := sc.Validate(doc.PageCount()); err != nil {
		return nil, err
	}

	loop := frame.NewVirtualLoop(fps)
	scroller := scroll.NewScroller(loop, doc)
	defer scroller.Destroy()

	axis := doc.Axis()
	tl := &Timeline{FPS: fps}

	for i, st := range sc.Steps {
		target, err := st.Target(doc)
		if err != nil {
			return nil, fmt.Errorf("шаг %d (%s): %w", i, st.Focus, err)
		}
		opts, err := st.Options(defaults)
		if err != nil {
			return nil, err
		}
		opts.Axis = axis

		done := false
		opts.OnComplete = func() { done = true }
		scroller.ScrollTo(target, opts)

		sp := span{step: i}
		for !done {
			if len(sp.moving) >= maxStepFrames {
				return nil, fmt.Errorf("шаг %d (%s): анимация не завершилась за %d кадров", i, st.Focus, maxStepFrames)
			}
			loop.Step()
			sp.moving = append(sp.moving, doc.ScrollPos(axis))
		}
		sp.holdPos = doc.ScrollPos(axis)
		sp.hold = int(math.Round(st.Dwell.Seconds() * float64(fps)))
		tl.spans = append(tl.spans, sp)
	}

	tl.build()
	return tl, nil
}

func (tl *Timeline) build() {
	tl.Frames = tl.Frames[:0]
	for _, sp := range tl.spans {
		for _, pos := range sp.moving {
			tl.Frames = append(tl.Frames, Frame{Pos: pos, Step: sp.step, Moving: true})
		}
		for k := 0; k < sp.hold; k++ {
			tl.Frames = append(tl.Frames, Frame{Pos: sp.holdPos, Step: sp.step})
		}
	}
	n := len(tl.Frames)
	for i := range tl.Frames {
		tl.Frames[i].Index = i
		tl.Frames[i].Progress = float64(i+1) / float64(n)
	}
}

func (tl *Timeline) Duration() time.Duration {
	return time.Duration(len(tl.Frames)) * time.Second / time.Duration(tl.FPS)
}

// MovingFrames - число кадров с анимацией; их FitTo не трогает.
func (tl *Timeline) MovingFrames() int {
	n := 0
	for _, sp := range tl.spans {
		n += len(sp.moving)
	}
	return n
}

// FitTo растягивает или сжимает паузы так, чтобы ролик длился total (с точностью до кадра).
// Анимации не масштабируются: если total короче их суммы, паузы обнуляются и
// возвращается false.
func (tl *Timeline) FitTo(total time.Duration) bool {
	if len(tl.spans) == 0 {
		return false
	}
	target := int(math.Round(total.Seconds() * float64(tl.FPS)))
	moving := tl.MovingFrames()
	holdTarget := target - moving
	if holdTarget < 0 {
		for i := range tl.spans {
			tl.spans[i].hold = 0
		}
		tl.build()
		return false
	}

	hold := 0
	for _, sp := range tl.spans {
		hold += sp.hold
	}
	if hold == 0 {
		// Нечего масштабировать: весь остаток отдаем последнему шагу
		tl.spans[len(tl.spans)-1].hold = holdTarget
		tl.build()
		return true
	}

	// Накопительное округление, чтобы сумма совпала точно
	scale := float64(holdTarget) / float64(hold)
	acc, prev := 0.0, 0
	for i := range tl.spans {
		acc += float64(tl.spans[i].hold) * scale
		cum := int(math.Round(acc))
		tl.spans[i].hold = cum - prev
		prev = cum
	}
	tl.build()
	return true
}

// StepStart возвращает индекс первого кадра шага или -1.
func (tl *Timeline) StepStart(step int) int {
	for _, f := range tl.Frames {
		if f.Step == step {
			return f.Index
		}
	}
	return -1
}
