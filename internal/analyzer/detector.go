package analyzer

import "image"

// Block - найденная область интереса на странице
type Block struct {
	Rect       image.Rectangle
	Type       string  // "band", "block"
	Confidence float64 // 0.0-1.0
}

// Detector - стратегия анализа страницы
type Detector interface {
	Detect(img image.Image) ([]Block, error)
}
