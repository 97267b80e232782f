package effects

import "github.com/ivlev/scrollcast/internal/config"

// FromConfig собирает цепочку оверлеев из настроек. Пустая цепочка ничего не рисует.
func FromConfig(cfg *config.Config) (Chain, error) {
	var chain Chain
	if cfg.HUD {
		chain = append(chain, NewHUD())
	}
	if cfg.ProgressBar {
		chain = append(chain, NewProgressBar())
	}
	if cfg.QRText != "" {
		size := min(cfg.Width, cfg.Height) / 5
		qr, err := NewQROverlay(cfg.QRText, size)
		if err != nil {
			return nil, err
		}
		chain = append(chain, qr)
	}
	return chain, nil
}
