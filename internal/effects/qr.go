package effects

import (
	"fmt"
	"image"

	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/image/draw"
)

// QROverlay - QR-код со ссылкой в правом нижнем углу.
type QROverlay struct {
	code   *image.RGBA
	Margin int
}

// NewQROverlay кодирует content и заранее масштабирует код до size пикселей.
func NewQROverlay(content string, size int) (*QROverlay, error) {
	q, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("генерация QR-кода: %w", err)
	}
	src := q.Image(256)

	code := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.NearestNeighbor.Scale(code, code.Bounds(), src, src.Bounds(), draw.Src, nil)
	return &QROverlay{code: code, Margin: 16}, nil
}

func (q *QROverlay) Apply(dst *image.RGBA, st State) {
	b := dst.Bounds()
	size := q.code.Bounds().Size()
	at := image.Pt(b.Max.X-q.Margin-size.X, b.Max.Y-q.Margin-size.Y)
	if at.X < b.Min.X || at.Y < b.Min.Y {
		return
	}
	draw.Draw(dst, image.Rectangle{Min: at, Max: at.Add(size)}, q.code, image.Point{}, draw.Src)
}
