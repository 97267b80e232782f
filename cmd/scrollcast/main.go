package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/ivlev/scrollcast/internal/config"
	"github.com/ivlev/scrollcast/internal/effects"
	"github.com/ivlev/scrollcast/internal/engine"
	"github.com/ivlev/scrollcast/internal/frame"
	"github.com/ivlev/scrollcast/internal/preview"
	"github.com/ivlev/scrollcast/internal/source"
	"github.com/ivlev/scrollcast/internal/system"
	"github.com/ivlev/scrollcast/internal/video"
)

// Задается при сборке: -ldflags "-X main.buildVersion=..."
var buildVersion = "dev"

func main() {
	// Увеличиваем лимиты системы (для macOS/Linux)
	system.InitResourceLimits()

	// Создаем нужные директории, если их нет
	dirs := []string{"input/audio", "input/pdf", "output"}
	for _, d := range dirs {
		os.MkdirAll(d, 0755)
	}

	// Порядок: встроенные значения -> файл -config -> флаги
	cfg := config.Default()
	configPath := config.FindConfigArg(os.Args[1:])
	if configPath != "" {
		if err := config.LoadFile(configPath, cfg); err != nil {
			log.Fatalf("[-] Ошибка: %v", err)
		}
	}
	bindFlags(cfg, configPath)
	flag.Parse()

	cfg.BuildVersion = buildVersion
	cfg.ApplyPreset()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[-] Ошибка конфигурации: %v", err)
	}

	if cfg.InputPath == "" {
		latest, err := system.FindLatestPDF("input/pdf")
		if err != nil {
			log.Fatalf("[-] Ошибка: %v. Положите PDF в input/pdf/", err)
		}
		cfg.InputPath = latest
		fmt.Printf("[*] Выбран файл: %s\n", cfg.InputPath)
	}

	src, err := source.Open(cfg.InputPath)
	if err != nil {
		log.Fatalf("[-] Ошибка инициализации источника: %v", err)
	}
	defer src.Close()

	// Обработка аудио
	if cfg.AudioPath == "" {
		if latest, err := system.FindLatestAudio("input/audio"); err == nil {
			cfg.AudioPath = latest
			fmt.Printf("[*] Выбрано аудио: %s\n", cfg.AudioPath)
		}
	}

	if cfg.OutputVideo == "" {
		cfg.OutputVideo = system.OutputName("output", nameSource(cfg))
	}

	if cfg.VideoEncoder == "" {
		cfg.VideoEncoder = system.GetBestH264Encoder()
		if cfg.VideoEncoder != "libx264" {
			fmt.Printf("[*] Обнаружено аппаратное ускорение: %s\n", cfg.VideoEncoder)
		}
	}
	if cfg.Quality == 0 {
		cfg.Quality = video.DefaultQuality(cfg.VideoEncoder)
	}

	eff, err := effects.FromConfig(cfg)
	if err != nil {
		log.Fatalf("[-] Ошибка оверлея: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	project := engine.NewVideoProject(cfg, src, &video.FFmpegEncoder{}, eff)

	if cfg.Preview {
		if err := runPreview(ctx, project); err != nil {
			log.Fatalf("[-] Ошибка просмотра: %v", err)
		}
		return
	}

	if err := project.Run(ctx); err != nil {
		log.Fatalf("[-] Ошибка проекта: %v", err)
	}
	if !cfg.GenerateScenario {
		fmt.Printf("[+++] Успех! Результат: %s\n", cfg.OutputVideo)
	}
}

func bindFlags(cfg *config.Config, configPath string) {
	flag.String("config", configPath, "YAML-файл с настройками (флаги имеют приоритет)")

	flag.StringVar(&cfg.InputPath, "input", cfg.InputPath, "Путь к PDF или папке с изображениями (по умолчанию: самый свежий файл в input/pdf/)")
	flag.StringVar(&cfg.OutputVideo, "output", cfg.OutputVideo, "Путь к видео (если пусто, генерируется автоматически в output/)")
	flag.IntVar(&cfg.Width, "width", cfg.Width, "Ширина")
	flag.IntVar(&cfg.Height, "height", cfg.Height, "Высота")
	flag.IntVar(&cfg.FPS, "fps", cfg.FPS, "FPS")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "Потоки")
	flag.IntVar(&cfg.DPI, "dpi", cfg.DPI, "DPI")
	flag.IntVar(&cfg.Gap, "gap", cfg.Gap, "Зазор между страницами ленты (px)")
	flag.StringVar(&cfg.Direction, "direction", cfg.Direction, "Направление прокрутки: vertical, horizontal")
	flag.StringVar(&cfg.AudioPath, "audio", cfg.AudioPath, "Путь к аудио (по умолчанию: самый свежий файл в input/audio/)")
	flag.BoolVar(&cfg.AudioSync, "audio-sync", cfg.AudioSync, "Синхронизировать длительность видео с аудио")
	flag.StringVar(&cfg.Preset, "preset", cfg.Preset, "Пресет формата: 16:9, 9:16 (Shorts/TikTok), 4:5 (Instagram)")
	flag.StringVar(&cfg.VideoEncoder, "encoder", cfg.VideoEncoder, "Энкодер ffmpeg (по умолчанию: лучший доступный H.264)")
	flag.IntVar(&cfg.Quality, "quality", cfg.Quality, "Качество видео (0 - авто, x264: CRF 1-51, VideoToolbox: битрейт = Q*100кбит/с)")
	flag.BoolVar(&cfg.ShowStats, "stats", cfg.ShowStats, "Отчет о производительности и нагрузке системы")

	flag.StringVar(&cfg.Easing, "easing", cfg.Easing, "Сглаживание: linear, easeInOutCubic")
	flag.DurationVar(&cfg.MaxDuration, "max-duration", cfg.MaxDuration, "Предел длительности одной анимации")
	flag.TextVar(&cfg.TargetAnchor, "target-anchor", cfg.TargetAnchor, "Точка цели: start, middle, end или 0-100")
	flag.TextVar(&cfg.ContainerAnchor, "container-anchor", cfg.ContainerAnchor, "Точка окна: start, middle, end или 0-100")
	flag.TextVar(&cfg.Offset, "offset", cfg.Offset, "Сдвиг после выравнивания: 12, -8px, 50%")
	flag.DurationVar(&cfg.Dwell, "dwell", cfg.Dwell, "Пауза на странице без анализа")
	flag.DurationVar(&cfg.MinDwell, "min-dwell", cfg.MinDwell, "Минимальная пауза на блоке")
	flag.DurationVar(&cfg.MaxDwell, "max-dwell", cfg.MaxDwell, "Максимальная пауза на блоке")

	flag.BoolVar(&cfg.GenerateScenario, "generate-scenario", cfg.GenerateScenario, "Только сгенерировать сценарий (YAML) и выйти")
	flag.BoolVar(&cfg.Analyze, "analyze", cfg.Analyze, "Строить сценарий по блокам на страницах")
	flag.StringVar(&cfg.ScenarioInput, "scenario", cfg.ScenarioInput, "Использовать готовый сценарий (YAML)")
	flag.StringVar(&cfg.ScenarioOutput, "scenario-output", cfg.ScenarioOutput, "Куда сохранить сценарий (по умолчанию: scenarios/)")
	flag.StringVar(&cfg.Detector, "detector", cfg.Detector, "Детектор блоков: bands, blocks")
	flag.IntVar(&cfg.MinGap, "min-gap", cfg.MinGap, "Минимальный промежуток между полосами (px)")
	flag.IntVar(&cfg.MinBand, "min-band", cfg.MinBand, "Минимальная толщина полосы (px)")
	flag.Float64Var(&cfg.EdgeThreshold, "edge-threshold", cfg.EdgeThreshold, "Порог оператора Собеля")

	flag.BoolVar(&cfg.HUD, "hud", cfg.HUD, "Подпись страницы и шага в углу кадра")
	flag.BoolVar(&cfg.ProgressBar, "progress", cfg.ProgressBar, "Полоса прогресса внизу кадра")
	flag.StringVar(&cfg.QRText, "qr", cfg.QRText, "Текст или ссылка для QR-кода в углу кадра")

	flag.BoolVar(&cfg.Preview, "preview", cfg.Preview, "Просмотр сценария в терминале вместо рендеринга")
}

// nameSource выбирает файл, по которому называется ролик
func nameSource(cfg *config.Config) string {
	if strings.HasSuffix(strings.ToLower(cfg.InputPath), ".pdf") {
		return cfg.InputPath
	}
	if cfg.AudioPath != "" {
		return cfg.AudioPath
	}
	// Пытаемся найти самое свежее изображение для имени файла
	if latestImg, err := system.FindLatestImage(cfg.InputPath); err == nil {
		return latestImg
	}
	return cfg.InputPath
}

func runPreview(ctx context.Context, project *engine.VideoProject) error {
	cfg := project.Config
	doc, err := project.BuildDocument(ctx)
	if err != nil {
		return err
	}
	sc, err := project.Scenario(ctx, doc)
	if err != nil {
		return err
	}
	defaults, err := cfg.ScrollOptions()
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse()

	loop := frame.NewLoop(60)
	pv, err := preview.New(screen, loop, doc, sc, defaults)
	if err != nil {
		return err
	}
	defer pv.Stop()
	return pv.Run(ctx, loop)
}
