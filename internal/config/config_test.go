package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/ivlev/scrollcast/internal/scroll"
)

func TestLoadFileOverridesOnlyGivenFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scrollcast.yaml")
	data := []byte(`
width: 1080
height: 1920
direction: horizontal
easing: linear
max_duration: 1.2s
target_anchor: middle
container_anchor: 25%
offset: -10%
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	fps := cfg.FPS
	if err := LoadFile(path, cfg); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if cfg.Width != 1080 || cfg.Height != 1920 {
		t.Errorf("size = %dx%d, want 1080x1920", cfg.Width, cfg.Height)
	}
	if cfg.FPS != fps {
		t.Errorf("FPS changed to %d", cfg.FPS)
	}
	if cfg.MaxDuration != 1200*time.Millisecond {
		t.Errorf("MaxDuration = %s", cfg.MaxDuration)
	}
	if cfg.Axis() != scroll.Horizontal {
		t.Errorf("Axis = %s", cfg.Axis())
	}

	opts, err := cfg.ScrollOptions()
	if err != nil {
		t.Fatalf("ScrollOptions: %v", err)
	}
	if opts.TargetAnchor != scroll.AnchorMiddle {
		t.Errorf("TargetAnchor = %s", opts.TargetAnchor)
	}
	if opts.ContainerAnchor != scroll.AnchorPercent(25) {
		t.Errorf("ContainerAnchor = %s", opts.ContainerAnchor)
	}
	if diff := cmp.Diff(scroll.Percent(-10), opts.Offset); diff != "" {
		t.Errorf("Offset mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFileMissing(t *testing.T) {
	err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"), Default())
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want ErrNotExist", err)
	}
}

func TestLoadFileRejectsNaNAnchor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scrollcast.yaml")
	if err := os.WriteFile(path, []byte("container_anchor: NaN\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg := Default()
	if err := LoadFile(path, cfg); err == nil {
		t.Fatalf("LoadFile accepted NaN anchor: %v", cfg.ContainerAnchor)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
		anyErr  bool
	}{
		{"defaults", func(c *Config) {}, nil, false},
		{"zero width", func(c *Config) { c.Width = 0 }, nil, true},
		{"zero fps", func(c *Config) { c.FPS = 0 }, nil, true},
		{"bad easing", func(c *Config) { c.Easing = "bounce" }, ErrUnknownEasing, true},
		{"bad direction", func(c *Config) { c.Direction = "diagonal" }, ErrUnknownDirection, true},
		{"dwell order", func(c *Config) { c.MinDwell = 5 * time.Second }, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.anyErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.anyErr)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestFindConfigArg(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"-input", "a.pdf"}, ""},
		{[]string{"-config", "c.yaml", "-fps", "60"}, "c.yaml"},
		{[]string{"--config=d.yaml"}, "d.yaml"},
		{[]string{"-config"}, ""},
		{[]string{"config", "x"}, ""},
	}
	for _, tt := range tests {
		if got := FindConfigArg(tt.args); got != tt.want {
			t.Errorf("FindConfigArg(%q) = %q, want %q", tt.args, got, tt.want)
		}
	}
}

func TestApplyPreset(t *testing.T) {
	cfg := Default()
	cfg.Preset = "9:16"
	cfg.ApplyPreset()
	if cfg.Width != 720 || cfg.Height != 1280 {
		t.Errorf("9:16 = %dx%d", cfg.Width, cfg.Height)
	}
}
