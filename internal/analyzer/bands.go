package analyzer

import (
	"image"

	"github.com/ivlev/scrollcast/internal/scroll"
)

// BandDetector делит страницу на полосы вдоль оси прокрутки по профилю проекции:
// строки (или столбцы) с "чернилами" объединяются, пока разрыв между ними меньше MinGap.
type BandDetector struct {
	Axis          scroll.Axis
	EdgeThreshold float64
	InkThreshold  uint8
	MinGap        int // Минимальный пустой промежуток между полосами (px)
	MinBand       int // Полосы тоньше отбрасываются (px)
	Padding       int
}

func NewBandDetector() *BandDetector {
	return &BandDetector{
		EdgeThreshold: 30.0,
		InkThreshold:  48,
		MinGap:        12,
		MinBand:       8,
		Padding:       4,
	}
}

func (d *BandDetector) Detect(img image.Image) ([]Block, error) {
	m := buildInkMask(img, d.EdgeThreshold, d.InkThreshold)

	// along - длина вдоль оси прокрутки, cross - поперек
	along, cross := m.h, m.w
	inkAt := func(a, c int) bool { return m.at(c, a) }
	if d.Axis == scroll.Horizontal {
		along, cross = m.w, m.h
		inkAt = func(a, c int) bool { return m.at(a, c) }
	}

	type span struct{ lo, hi int }
	profile := make([]int, along)
	extent := make([]span, along)
	for a := 0; a < along; a++ {
		s := span{lo: cross, hi: -1}
		for c := 0; c < cross; c++ {
			if inkAt(a, c) {
				profile[a]++
				if c < s.lo {
					s.lo = c
				}
				s.hi = c
			}
		}
		extent[a] = s
	}

	var blocks []Block
	emit := func(start, end int) {
		if end-start < d.MinBand {
			return
		}
		lo, hi, inked := cross, -1, 0
		for a := start; a < end; a++ {
			if profile[a] == 0 {
				continue
			}
			inked += profile[a]
			lo = min(lo, extent[a].lo)
			hi = max(hi, extent[a].hi)
		}
		r := image.Rect(lo, start, hi+1, end)
		if d.Axis == scroll.Horizontal {
			r = image.Rect(start, lo, end, hi+1)
		}
		area := r.Dx() * r.Dy()
		r = r.Inset(-d.Padding).Intersect(image.Rect(0, 0, m.w, m.h))
		blocks = append(blocks, Block{
			Rect:       r,
			Type:       "band",
			Confidence: float64(inked) / float64(max(area, 1)),
		})
	}

	start, last := -1, -1
	for a := 0; a < along; a++ {
		if profile[a] == 0 {
			continue
		}
		if start >= 0 && a-last-1 >= d.MinGap {
			emit(start, last+1)
			start = -1
		}
		if start < 0 {
			start = a
		}
		last = a
	}
	if start >= 0 {
		emit(start, last+1)
	}

	return blocks, nil
}
