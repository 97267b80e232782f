package analyzer

import "image"

// BlockDetector находит связные области "чернил" после морфологического расширения.
// В отличие от полос, блоки могут стоять рядом в одной строке.
type BlockDetector struct {
	MinBlockArea  int     // Минимальная площадь в пикселях²
	EdgeThreshold float64 // Порог градиента
	InkThreshold  uint8
	DilateKernel  int
	DilateSteps   int
}

func NewBlockDetector() *BlockDetector {
	return &BlockDetector{
		MinBlockArea:  500, // ~22x22 пикселя
		EdgeThreshold: 30.0,
		InkThreshold:  48,
		DilateKernel:  5,
		DilateSteps:   2,
	}
}

func (d *BlockDetector) Detect(img image.Image) ([]Block, error) {
	m := buildInkMask(img, d.EdgeThreshold, d.InkThreshold)
	grown := dilate(m, d.DilateKernel, d.DilateSteps)

	blocks := []Block{}
	for _, rect := range findComponents(grown) {
		if rect.Dx()*rect.Dy() >= d.MinBlockArea {
			blocks = append(blocks, Block{
				Rect:       rect,
				Type:       "block",
				Confidence: 0.7,
			})
		}
	}
	return blocks, nil
}

// dilate соединяет близкие пиксели: каждый шаг распространяет метку на квадрат kernelSize.
func dilate(m *inkMask, kernelSize, iterations int) *inkMask {
	half := kernelSize / 2
	cur := m
	for iter := 0; iter < iterations; iter++ {
		next := &inkMask{w: m.w, h: m.h, ink: make([]bool, len(m.ink))}
		for y := 0; y < m.h; y++ {
			for x := 0; x < m.w; x++ {
				if !cur.at(x, y) {
					continue
				}
				for ky := max(0, y-half); ky <= min(m.h-1, y+half); ky++ {
					for kx := max(0, x-half); kx <= min(m.w-1, x+half); kx++ {
						next.ink[ky*m.w+kx] = true
					}
				}
			}
		}
		cur = next
	}
	return cur
}

// findComponents возвращает ограничивающие прямоугольники 4-связных областей.
func findComponents(m *inkMask) []image.Rectangle {
	visited := make([]bool, len(m.ink))
	var rects []image.Rectangle

	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			if !m.at(x, y) || visited[y*m.w+x] {
				continue
			}
			minX, minY, maxX, maxY := x, y, x, y
			stack := []image.Point{{X: x, Y: y}}
			visited[y*m.w+x] = true
			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				minX, minY = min(minX, p.X), min(minY, p.Y)
				maxX, maxY = max(maxX, p.X), max(maxY, p.Y)

				for _, n := range [4]image.Point{{p.X + 1, p.Y}, {p.X - 1, p.Y}, {p.X, p.Y + 1}, {p.X, p.Y - 1}} {
					if n.X < 0 || n.X >= m.w || n.Y < 0 || n.Y >= m.h {
						continue
					}
					i := n.Y*m.w + n.X
					if m.ink[i] && !visited[i] {
						visited[i] = true
						stack = append(stack, n)
					}
				}
			}
			rects = append(rects, image.Rect(minX, minY, maxX+1, maxY+1))
		}
	}
	return rects
}
