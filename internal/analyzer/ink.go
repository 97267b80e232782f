package analyzer

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// inkMask отмечает пиксели, которые отличаются от фона страницы по яркости или лежат на
// границе (оператор Собеля). Сплошные заливки ловятся первым условием, текст - вторым.
type inkMask struct {
	w, h int
	ink  []bool
}

func (m *inkMask) at(x, y int) bool { return m.ink[y*m.w+x] }

func buildInkMask(img image.Image, edgeThreshold float64, inkThreshold uint8) *inkMask {
	gray := imaging.Grayscale(img)
	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()
	m := &inkMask{w: w, h: h, ink: make([]bool, w*h)}
	if w == 0 || h == 0 {
		return m
	}

	lum := func(x, y int) float64 {
		return float64(gray.Pix[y*gray.Stride+x*4])
	}

	bg := backgroundLevel(gray)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if math.Abs(lum(x, y)-float64(bg)) > float64(inkThreshold) {
				m.ink[y*w+x] = true
			}
		}
	}

	// Ядра Собеля
	gx := [3][3]float64{{-1, 0, 1}, {-2, 0, 2}, {-1, 0, 1}}
	gy := [3][3]float64{{-1, -2, -1}, {0, 0, 0}, {1, 2, 1}}

	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			var sumX, sumY float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					p := lum(x+kx, y+ky)
					sumX += p * gx[ky+1][kx+1]
					sumY += p * gy[ky+1][kx+1]
				}
			}
			if math.Sqrt(sumX*sumX+sumY*sumY) > edgeThreshold {
				m.ink[y*w+x] = true
			}
		}
	}
	return m
}

// backgroundLevel - самая частая яркость на странице.
func backgroundLevel(gray *image.NRGBA) uint8 {
	var hist [256]int
	b := gray.Bounds()
	for y := 0; y < b.Dy(); y++ {
		row := gray.Pix[y*gray.Stride:]
		for x := 0; x < b.Dx(); x++ {
			hist[row[x*4]]++
		}
	}
	best := 0
	for v := range hist {
		if hist[v] > hist[best] {
			best = v
		}
	}
	return uint8(best)
}
