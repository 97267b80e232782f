package engine

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/scrollcast/internal/analyzer"
	"github.com/ivlev/scrollcast/internal/config"
	"github.com/ivlev/scrollcast/internal/director"
	"github.com/ivlev/scrollcast/internal/document"
	"github.com/ivlev/scrollcast/internal/effects"
	"github.com/ivlev/scrollcast/internal/source"
	"github.com/ivlev/scrollcast/internal/system"
	"github.com/ivlev/scrollcast/internal/timeline"
	"github.com/ivlev/scrollcast/internal/video"
)

type VideoProject struct {
	Config  *config.Config
	Source  source.Source
	Encoder video.VideoEncoder
	Effect  effects.Effect
	pool    *system.ImagePool
	rnd     *rand.Rand
}

func NewVideoProject(cfg *config.Config, src source.Source, ve video.VideoEncoder, eff effects.Effect) *VideoProject {
	return &VideoProject{
		Config:  cfg,
		Source:  src,
		Encoder: ve,
		Effect:  eff,
		pool:    system.NewImagePool(),
		rnd:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// BuildDocument рендерит страницы источника в ленту под размер кадра
func (p *VideoProject) BuildDocument(ctx context.Context) (*document.Document, error) {
	layout := document.Layout{
		ViewW: p.Config.Width,
		ViewH: p.Config.Height,
		Axis:  p.Config.Axis(),
		Gap:   p.Config.Gap,
		DPI:   p.Config.DPI,
	}
	doc, err := document.Build(ctx, p.Source, layout, p.Config.Workers)
	if err != nil {
		return nil, fmt.Errorf("сборка документа: %w", err)
	}
	return doc, nil
}

// Scenario возвращает сценарий, по которому Run прокрутил бы doc.
func (p *VideoProject) Scenario(ctx context.Context, doc *document.Document) (*director.Scenario, error) {
	return p.loadScenario(ctx, doc, p.audioDuration())
}

func (p *VideoProject) Run(ctx context.Context) error {
	startTime := time.Now()

	doc, err := p.BuildDocument(ctx)
	if err != nil {
		return err
	}
	renderEnd := time.Now()

	fmt.Println("--- [PROJECT: SCROLL ENGINE] ---")
	fmt.Printf("[*] Источник: %s | Страниц: %d | Лента: %dx%d\n", p.Config.InputPath, doc.PageCount(), doc.Size().X, doc.Size().Y)
	fmt.Printf("[*] Разрешение: %dx%d @ %d FPS | Направление: %s\n", p.Config.Width, p.Config.Height, p.Config.FPS, doc.Axis())
	fmt.Println("-----------------------------")

	audioDur := p.audioDuration()

	if p.Config.GenerateScenario {
		return p.handleGenerateScenario(ctx, doc, audioDur)
	}

	scenario, err := p.loadScenario(ctx, doc, audioDur)
	if err != nil {
		return err
	}

	defaults, err := p.Config.ScrollOptions()
	if err != nil {
		return err
	}

	tl, err := timeline.Plan(doc, scenario, p.Config.FPS, defaults)
	if err != nil {
		return fmt.Errorf("план прокрутки: %w", err)
	}
	if audioDur > 0 {
		if tl.FitTo(audioDur) {
			fmt.Printf("[*] Паузы масштабированы под аудио: %.2fs\n", audioDur.Seconds())
		} else {
			log.Printf("[!] Аудио (%.2fs) короче анимаций (%.2fs), паузы убраны", audioDur.Seconds(), tl.Duration().Seconds())
		}
	}
	fmt.Printf("[*] Шагов: %d | Кадров: %d | Длительность: %.2fs\n", len(scenario.Steps), len(tl.Frames), tl.Duration().Seconds())

	encodeStart := time.Now()
	writer, err := p.Encoder.Start(ctx, config.EncodeParams{
		Width:      p.Config.Width,
		Height:     p.Config.Height,
		FPS:        p.Config.FPS,
		OutputPath: p.Config.OutputVideo,
		Encoder:    p.Config.VideoEncoder,
		Quality:    p.Config.Quality,
		AudioPath:  p.Config.AudioPath,
	})
	if err != nil {
		return err
	}

	if err := p.renderFrames(ctx, doc, scenario, tl, writer); err != nil {
		// Лог ffmpeg приходит в ошибке Close
		if cerr := writer.Close(); cerr != nil {
			return fmt.Errorf("%w; энкодер: %w", err, cerr)
		}
		return err
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("ошибка сборки финального видео: %w", err)
	}
	encodeEnd := time.Now()

	if p.Config.ShowStats {
		p.report(startTime, renderEnd, encodeStart, encodeEnd, len(tl.Frames), doc.PageCount())
	}
	return nil
}

func (p *VideoProject) audioDuration() time.Duration {
	if p.Config.AudioPath == "" || !p.Config.AudioSync {
		return 0
	}
	d, err := system.GetAudioDuration(p.Config.AudioPath)
	if err != nil {
		log.Printf("[!] Не удалось получить длительность аудио: %v", err)
		return 0
	}
	fmt.Printf("[*] Длительность видео установлена по аудио: %.2fs\n", d.Seconds())
	return d
}

func (p *VideoProject) newDirector() *director.Director {
	dir := director.NewDirector(p.Config.Width, p.Config.Height)
	dir.Axis = p.Config.Axis()
	dir.MinDwell = p.Config.MinDwell
	dir.MaxDwell = p.Config.MaxDwell
	return dir
}

// loadScenario: сценарий из файла, анализ страниц (-analyze) или по странице на шаг
func (p *VideoProject) loadScenario(ctx context.Context, doc *document.Document, audioDur time.Duration) (*director.Scenario, error) {
	if p.Config.ScenarioInput != "" {
		scenario, err := director.ReadScenario(p.Config.ScenarioInput)
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения сценария: %w", err)
		}
		fmt.Printf("[*] Используется сценарий: %s\n", p.Config.ScenarioInput)
		if scenario.Viewport.W != 0 && (scenario.Viewport.W != p.Config.Width || scenario.Viewport.H != p.Config.Height) {
			log.Printf("[!] Сценарий рассчитан на %dx%d, области страниц могут сместиться", scenario.Viewport.W, scenario.Viewport.H)
		}
		if scenario.Direction != doc.Axis() {
			log.Printf("[!] Направление сценария (%s) не совпадает с документом (%s)", scenario.Direction, doc.Axis())
		}
		return scenario, nil
	}

	if p.Config.Analyze {
		return p.analyzeScenario(ctx, doc, audioDur)
	}

	sc := p.newDirector().GeneratePageScenario(doc.PageCount(), p.Config.Dwell)
	if audioDur > 0 {
		// Неравномерные паузы выглядят живее; точную длину дает FitTo
		dwells := p.calculateDwells(doc.PageCount(), audioDur)
		for i := range dwells {
			sc.Steps[i].Dwell = dwells[i]
		}
	}
	return sc, nil
}

func (p *VideoProject) analyzeScenario(ctx context.Context, doc *document.Document, audioDur time.Duration) (*director.Scenario, error) {
	det, err := analyzer.NewDetector(p.Config.Detector, doc.Axis())
	if err != nil {
		return nil, err
	}
	if bd, ok := det.(*analyzer.BandDetector); ok {
		bd.MinGap = p.Config.MinGap
		bd.MinBand = p.Config.MinBand
		bd.EdgeThreshold = p.Config.EdgeThreshold
	}

	pages := make([][]analyzer.Block, doc.PageCount())
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.Config.Workers)
	for i, page := range doc.Pages() {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fmt.Printf("[*] Анализ страницы %d/%d...\n", i+1, len(pages))
			blocks, err := det.Detect(page.Image)
			if err != nil {
				// Продолжаем с пустым списком блоков
				log.Printf("[!] Ошибка анализа страницы %d: %v", i, err)
				return nil
			}
			pages[i] = blocks
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	dir := p.newDirector()
	sc, err := dir.GenerateScenario(pages, audioDur)
	if errors.Is(err, director.ErrNoBlocks) {
		log.Printf("[!] Блоки не найдены, сценарий по страницам")
		return dir.GeneratePageScenario(doc.PageCount(), p.Config.Dwell), nil
	}
	return sc, err
}

func (p *VideoProject) handleGenerateScenario(ctx context.Context, doc *document.Document, audioDur time.Duration) error {
	fmt.Println("[*] Режим генерации сценария...")

	scenario, err := p.analyzeScenario(ctx, doc, audioDur)
	if err != nil {
		return err
	}

	outputPath := p.Config.ScenarioOutput
	if outputPath == "" {
		outputPath = director.GenerateScenarioPath(director.DefaultScenariosDir)
	}
	if err := director.WriteScenario(scenario, outputPath); err != nil {
		return err
	}

	fmt.Printf("[+++] Успех! Сценарий сохранен: %s (шагов: %d)\n", outputPath, len(scenario.Steps))
	return nil
}

// calculateDwells делит total между страницами с отклонением до ±15% от соседней,
// сохраняя сумму.
func (p *VideoProject) calculateDwells(pageCount int, total time.Duration) []time.Duration {
	if pageCount <= 0 {
		return nil
	}
	base := float64(total) / float64(pageCount)
	raw := make([]float64, pageCount)

	// Первая страница: отклонение от базы в диапазоне [-15%, +15%]
	raw[0] = base * (1 + (p.rnd.Float64()*0.3 - 0.15))
	// Последующие страницы: отклонение от предыдущей в диапазоне [-15%, +15%]
	for i := 1; i < pageCount; i++ {
		raw[i] = raw[i-1] * (1 + (p.rnd.Float64()*0.3 - 0.15))
	}

	// Масштабируем, чтобы сумма была в точности total
	sum := 0.0
	for _, d := range raw {
		sum += d
	}
	dwells := make([]time.Duration, pageCount)
	acc, prev := 0.0, time.Duration(0)
	for i, d := range raw {
		acc += d * float64(total) / sum
		cum := time.Duration(acc)
		if i == pageCount-1 {
			cum = total
		}
		dwells[i] = cum - prev
		prev = cum
	}
	return dwells
}

// renderFrames собирает кадры пачками: внутри пачки параллельно, запись - по порядку
func (p *VideoProject) renderFrames(ctx context.Context, doc *document.Document, sc *director.Scenario, tl *timeline.Timeline, w video.FrameWriter) error {
	workers := max(p.Config.Workers, 1)
	batchSize := workers * 4
	rect := image.Rect(0, 0, p.Config.Width, p.Config.Height)
	total := len(tl.Frames)
	half := doc.ClientSize(doc.Axis()) / 2
	nextReport := 0

	for start := 0; start < total; start += batchSize {
		end := min(start+batchSize, total)
		batch := make([]*image.RGBA, end-start)

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)
		for i := start; i < end; i++ {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				f := tl.Frames[i]
				img := p.pool.Get(rect)
				doc.Compose(img, f.Pos)
				if p.Effect != nil {
					p.Effect.Apply(img, effects.State{
						Frame:      f,
						FrameCount: total,
						StepCount:  len(sc.Steps),
						Focus:      sc.Steps[f.Step].Focus,
						Page:       doc.PageAt(f.Pos + half),
						PageCount:  doc.PageCount(),
					})
				}
				batch[i-start] = img
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		for i, img := range batch {
			if err := w.WriteFrame(img); err != nil {
				return fmt.Errorf("кадр %d: %w", start+i, err)
			}
			p.pool.Put(img)
		}

		if done := end * 10 / total; done >= nextReport {
			fmt.Printf("[>] Кадры: %d/%d\n", end, total)
			nextReport = done + 1
		}
	}
	return nil
}

func (p *VideoProject) report(start, renderEnd, encodeStart, encodeEnd time.Time, frames, pages int) {
	totalTime := time.Since(start)
	renderTime := renderEnd.Sub(start)
	encodeTime := encodeEnd.Sub(encodeStart)
	fps := float64(frames) / totalTime.Seconds()

	report := fmt.Sprintf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Total Time: %.2fs\n"+
			"Page Rendering: %.2fs\n"+
			"Compose + Encode: %.2fs\n"+
			"Effective FPS: %.2f\n",
		p.Config.BuildVersion, totalTime.Seconds(), renderTime.Seconds(), encodeTime.Seconds(), fps,
	)
	if st, err := system.CollectStats(200 * time.Millisecond); err == nil {
		report += st.String() + "\n"
	} else {
		log.Printf("[!] Не удалось собрать статистику системы: %v", err)
	}
	report += "----------------------------\n"
	fmt.Print(report)

	// Логирование в файл
	logEntry := fmt.Sprintf("[%s] Build: %s | Input: %s | Pages: %d | Frames: %d | Total: %.2fs | Render: %.2fs | Encode: %.2fs | FPS: %.2f\n",
		time.Now().Format("2006-01-02 15:04:05"),
		p.Config.BuildVersion,
		filepath.Base(p.Config.InputPath),
		pages,
		frames,
		totalTime.Seconds(),
		renderTime.Seconds(),
		encodeTime.Seconds(),
		fps,
	)

	f, err := os.OpenFile("benchmark.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err == nil {
		f.WriteString(logEntry)
		f.Close()
	} else {
		fmt.Printf("[!] Не удалось записать benchmark.log: %v\n", err)
	}
}
