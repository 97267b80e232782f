package video

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"os/exec"

	"golang.org/x/image/draw"

	"github.com/ivlev/scrollcast/internal/config"
)

// FrameWriter принимает кадры по порядку. Close дожидается завершения кодирования.
type FrameWriter interface {
	WriteFrame(img *image.RGBA) error
	Close() error
}

type VideoEncoder interface {
	Start(ctx context.Context, params config.EncodeParams) (FrameWriter, error)
}

type FFmpegEncoder struct{}

// Start запускает ffmpeg, читающий raw RGBA из stdin.
func (e *FFmpegEncoder) Start(ctx context.Context, params config.EncodeParams) (FrameWriter, error) {
	cmd := exec.CommandContext(ctx, "ffmpeg", buildFFmpegArgs(params)...)
	w := &ffmpegWriter{cmd: cmd, width: params.Width, height: params.Height}
	cmd.Stdout = &w.log
	cmd.Stderr = &w.log

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe error: %w", err)
	}
	w.stdin = stdin

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("ffmpeg start error: %w", err)
	}
	return w, nil
}

func buildFFmpegArgs(p config.EncodeParams) []string {
	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", p.Width, p.Height),
		"-framerate", fmt.Sprintf("%d", p.FPS),
		"-i", "-",
	}

	if p.AudioPath != "" {
		args = append(args, "-i", p.AudioPath, "-map", "0:v", "-map", "1:a", "-c:a", "aac", "-shortest")
	}

	args = append(args, "-pix_fmt", "yuv420p", "-c:v", p.Encoder)
	args = append(args, qualityArgs(p.Encoder, p.Quality)...)
	args = append(args, p.OutputPath)
	return args
}

// qualityArgs - качество в зависимости от энкодера
func qualityArgs(encoder string, quality int) []string {
	switch encoder {
	case "h264_videotoolbox":
		// VideoToolbox часто не поддерживает -q:v напрямую на всех версиях. Используем битрейт.
		bitrate := quality * 100 // кбит/с. 75 -> 7.5Мбит/с
		return []string{"-b:v", fmt.Sprintf("%dk", bitrate)}
	case "h264_nvenc":
		return []string{"-cq", fmt.Sprintf("%d", quality)}
	default: // libx264
		return []string{"-crf", fmt.Sprintf("%d", quality), "-preset", "medium"}
	}
}

// DefaultQuality подбирает качество под энкодер, если оно не задано
func DefaultQuality(encoder string) int {
	switch encoder {
	case "h264_videotoolbox":
		return 75 // Хорошее качество для VideoToolbox
	case "h264_nvenc":
		return 28 // Эквивалент CRF для NVENC
	default:
		return 23 // Стандартный CRF для x264
	}
}

type ffmpegWriter struct {
	cmd           *exec.Cmd
	stdin         io.WriteCloser
	log           bytes.Buffer
	width, height int
	frames        int
}

func (w *ffmpegWriter) WriteFrame(img *image.RGBA) error {
	if err := writeRawRGBA(w.stdin, img, w.width, w.height); err != nil {
		return fmt.Errorf("write raw error (frame %d): %w", w.frames, err)
	}
	w.frames++
	return nil
}

func (w *ffmpegWriter) Close() error {
	w.stdin.Close()
	if err := w.cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg wait error: %w\nLog: %s", err, w.log.String())
	}
	return nil
}

// writeRawRGBA пишет кадр без копирования, если он уже в нужном формате
func writeRawRGBA(out io.Writer, img *image.RGBA, width, height int) error {
	b := img.Bounds()
	if b.Dx() != width || b.Dy() != height {
		return fmt.Errorf("размер кадра %dx%d, ожидался %dx%d", b.Dx(), b.Dy(), width, height)
	}
	if img.Stride != width*4 || b.Min != (image.Point{}) {
		tight := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.Draw(tight, tight.Bounds(), img, b.Min, draw.Src)
		img = tight
	}
	_, err := out.Write(img.Pix[:width*height*4])
	return err
}
