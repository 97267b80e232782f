package analyzer

import (
	"fmt"

	"github.com/ivlev/scrollcast/internal/scroll"
)

// NewDetector создает детектор по имени варианта. Полосы строятся вдоль оси прокрутки.
func NewDetector(variant string, axis scroll.Axis) (Detector, error) {
	switch variant {
	case "bands", "":
		d := NewBandDetector()
		d.Axis = axis
		return d, nil
	case "blocks", "contrast":
		return NewBlockDetector(), nil
	case "ocr":
		return nil, fmt.Errorf("OCR detector not yet implemented")
	default:
		return nil, fmt.Errorf("unknown detector variant: %s", variant)
	}
}
