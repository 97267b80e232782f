package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/scrollcast/internal/scroll"
)

var (
	ErrUnknownEasing    = errors.New("неизвестная функция сглаживания")
	ErrUnknownDirection = errors.New("неизвестное направление прокрутки")
)

type Config struct {
	InputPath    string `yaml:"input"`
	OutputVideo  string `yaml:"output"`
	Width        int    `yaml:"width"`
	Height       int    `yaml:"height"`
	FPS          int    `yaml:"fps"`
	Workers      int    `yaml:"workers"`
	DPI          int    `yaml:"dpi"`
	Gap          int    `yaml:"gap"`
	Direction    string `yaml:"direction"`
	AudioPath    string `yaml:"audio"`
	AudioSync    bool   `yaml:"audio_sync"`
	Preset       string `yaml:"preset"`
	VideoEncoder string `yaml:"encoder"`
	Quality      int    `yaml:"quality"`
	ShowStats    bool   `yaml:"stats"`
	BuildVersion string `yaml:"-"`

	// Параметры прокрутки по умолчанию (для шагов без своих значений)
	Easing          string        `yaml:"easing"`
	MaxDuration     time.Duration `yaml:"max_duration"`
	TargetAnchor    scroll.Anchor `yaml:"target_anchor"`
	ContainerAnchor scroll.Anchor `yaml:"container_anchor"`
	Offset          scroll.Offset `yaml:"offset"`
	Dwell           time.Duration `yaml:"dwell"`
	MinDwell        time.Duration `yaml:"min_dwell"`
	MaxDwell        time.Duration `yaml:"max_dwell"`

	// Сценарии
	GenerateScenario bool    `yaml:"-"`
	Analyze          bool    `yaml:"analyze"`
	ScenarioInput    string  `yaml:"scenario"`
	ScenarioOutput   string  `yaml:"scenario_output"`
	Detector         string  `yaml:"detector"`
	MinGap           int     `yaml:"min_gap"`
	MinBand          int     `yaml:"min_band"`
	EdgeThreshold    float64 `yaml:"edge_threshold"`

	// Оверлеи
	HUD         bool   `yaml:"hud"`
	ProgressBar bool   `yaml:"progress_bar"`
	QRText      string `yaml:"qr"`

	Preview bool `yaml:"-"`
}

// Default возвращает встроенные значения, поверх которых применяются файл и флаги.
func Default() *Config {
	return &Config{
		Width:           1280,
		Height:          720,
		FPS:             30,
		Workers:         runtime.NumCPU(),
		DPI:             150,
		Gap:             24,
		Direction:       "vertical",
		AudioSync:       true,
		Easing:          "easeInOutCubic",
		MaxDuration:     scroll.DefaultMaxDuration,
		ContainerAnchor: scroll.AnchorStart,
		TargetAnchor:    scroll.AnchorStart,
		Dwell:           1500 * time.Millisecond,
		MinDwell:        time.Second,
		MaxDwell:        3 * time.Second,
		Detector:        "bands",
		MinGap:          12,
		MinBand:         8,
		EdgeThreshold:   30,
	}
}

// LoadFile накладывает значения из YAML-файла на cfg. Поля, которых нет в файле, не меняются.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("чтение конфигурации: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("разбор конфигурации %s: %w", path, err)
	}
	return nil
}

// FindConfigArg ищет -config до flag.Parse, чтобы файл был загружен раньше флагов.
func FindConfigArg(args []string) string {
	for i, a := range args {
		name, value, hasValue := strings.Cut(strings.TrimLeft(a, "-"), "=")
		if !strings.HasPrefix(a, "-") || name != "config" {
			continue
		}
		if hasValue {
			return value
		}
		if i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

// ApplyPreset подменяет размер кадра по имени пресета.
func (c *Config) ApplyPreset() {
	switch c.Preset {
	case "16:9":
		c.Width, c.Height = 1280, 720
	case "9:16":
		c.Width, c.Height = 720, 1280
	case "4:5":
		c.Width, c.Height = 1080, 1350
	}
}

func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("некорректный размер кадра %dx%d", c.Width, c.Height)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("некорректный FPS: %d", c.FPS)
	}
	if c.Workers <= 0 {
		c.Workers = 1
	}
	if _, err := scroll.EasingByName(c.Easing); err != nil {
		return fmt.Errorf("%w: %q", ErrUnknownEasing, c.Easing)
	}
	if _, err := scroll.ParseAxis(c.Direction); err != nil {
		return fmt.Errorf("%w: %q", ErrUnknownDirection, c.Direction)
	}
	if c.MinDwell > c.MaxDwell {
		return fmt.Errorf("min_dwell (%s) больше max_dwell (%s)", c.MinDwell, c.MaxDwell)
	}
	return nil
}

func (c *Config) Axis() scroll.Axis {
	a, _ := scroll.ParseAxis(c.Direction)
	return a
}

// ScrollOptions собирает scroll.Options из значений по умолчанию.
func (c *Config) ScrollOptions() (scroll.Options, error) {
	ease, err := scroll.EasingByName(c.Easing)
	if err != nil {
		return scroll.Options{}, fmt.Errorf("%w: %q", ErrUnknownEasing, c.Easing)
	}
	return scroll.Options{
		MaxDuration:     c.MaxDuration,
		Easing:          ease,
		TargetAnchor:    c.TargetAnchor,
		ContainerAnchor: c.ContainerAnchor,
		Offset:          c.Offset,
		Axis:            c.Axis(),
	}, nil
}

// EncodeParams описывает один выходной поток для энкодера.
type EncodeParams struct {
	Width, Height int
	FPS           int
	OutputPath    string
	Encoder       string
	Quality       int
	AudioPath     string
}
