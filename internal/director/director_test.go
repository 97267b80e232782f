package director

import (
	"errors"
	"image"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/ivlev/scrollcast/internal/analyzer"
	"github.com/ivlev/scrollcast/internal/scroll"
)

func focuses(sc *Scenario) []string {
	var out []string
	for _, st := range sc.Steps {
		out = append(out, st.Focus)
	}
	return out
}

func TestDirector(t *testing.T) {
	director := NewDirector(1280, 720)

	pages := [][]analyzer.Block{
		{
			{Rect: image.Rect(50, 150, 300, 250), Type: "band"},
			{Rect: image.Rect(50, 50, 200, 100), Type: "band"},
		},
		nil,
	}

	scenario, err := director.GenerateScenario(pages, 10*time.Second)
	if err != nil {
		t.Fatalf("GenerateScenario failed: %v", err)
	}

	if scenario.Version != ScenarioVersion {
		t.Errorf("Expected version %s, got %s", ScenarioVersion, scenario.Version)
	}

	want := []string{"intro", "page_1_region_1", "page_1_region_2", "page_2", "outro"}
	if diff := cmp.Diff(want, focuses(scenario)); diff != "" {
		t.Errorf("steps mismatch (-want +got):\n%s", diff)
	}

	// Блоки в порядке чтения
	if r := scenario.Steps[1].Rect; r == nil || r.Y != 50 {
		t.Errorf("first region = %+v, want the top block", r)
	}
	if a := scenario.Steps[1].TargetAnchor; a == nil || *a != scroll.AnchorMiddle {
		t.Errorf("region target anchor = %v", a)
	}

	// (10s - 1s - 1s) / 3 шага, в пределах [1s, 3s]
	if d := scenario.Steps[1].Dwell; d != 8*time.Second/3 {
		t.Errorf("dwell = %s", d)
	}
}

func TestDirectorNoBlocks(t *testing.T) {
	_, err := NewDirector(100, 100).GenerateScenario([][]analyzer.Block{nil, nil}, 0)
	if !errors.Is(err, ErrNoBlocks) {
		t.Errorf("err = %v, want ErrNoBlocks", err)
	}
}

func TestGeneratePageScenario(t *testing.T) {
	d := NewDirector(100, 100)
	sc := d.GeneratePageScenario(3, 0)
	if d.GeneratePageScenario(1, 500*time.Millisecond).Steps[0].Dwell != 500*time.Millisecond {
		t.Error("explicit dwell ignored")
	}

	want := []string{"page_1", "page_2", "page_3", "outro"}
	if diff := cmp.Diff(want, focuses(sc)); diff != "" {
		t.Errorf("steps mismatch (-want +got):\n%s", diff)
	}
	if sc.Steps[0].Dwell != 2*time.Second {
		t.Errorf("default dwell = %s, want 2s", sc.Steps[0].Dwell)
	}
	if err := sc.Validate(3); err != nil {
		t.Errorf("Validate: %v", err)
	}
	if err := sc.Validate(2); err == nil {
		t.Error("expected out-of-range page error")
	}
}

func TestCalculateDwellTimeClamps(t *testing.T) {
	d := NewDirector(100, 100)
	tests := []struct {
		total time.Duration
		steps int
		want  time.Duration
	}{
		{100 * time.Second, 2, 3 * time.Second},
		{3 * time.Second, 10, time.Second},
		{0, 4, 2 * time.Second},
	}
	for _, tt := range tests {
		if got := d.calculateDwellTime(tt.total, tt.steps); got != tt.want {
			t.Errorf("calculateDwellTime(%s, %d) = %s, want %s", tt.total, tt.steps, got, tt.want)
		}
	}
}

func TestSortBlocksHorizontal(t *testing.T) {
	d := NewDirector(100, 100)
	d.Axis = scroll.Horizontal
	sorted := d.sortBlocks([]analyzer.Block{
		{Rect: image.Rect(300, 0, 350, 10)},
		{Rect: image.Rect(10, 50, 40, 60)},
	})
	if sorted[0].Rect.Min.X != 10 {
		t.Errorf("first block = %v", sorted[0].Rect)
	}
}

func TestSortBlocksGroupsRows(t *testing.T) {
	d := NewDirector(100, 100)
	// 0, 15 и 30 попарно близки, но 0 и 30 уже в разных строках
	sorted := d.sortBlocks([]analyzer.Block{
		{Rect: image.Rect(50, 30, 60, 40)},
		{Rect: image.Rect(80, 0, 90, 10)},
		{Rect: image.Rect(10, 30, 20, 40)},
		{Rect: image.Rect(20, 15, 30, 25)},
	})
	var got []image.Point
	for _, b := range sorted {
		got = append(got, b.Rect.Min)
	}
	want := []image.Point{{20, 15}, {80, 0}, {10, 30}, {50, 30}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestStepOptions(t *testing.T) {
	defaults := scroll.Options{
		MaxDuration:  time.Second,
		TargetAnchor: scroll.AnchorMiddle,
		Offset:       scroll.Px(5),
	}

	start := scroll.AnchorStart
	st := Step{TargetAnchor: &start, Easing: "linear", Duration: 300 * time.Millisecond}
	opts, err := st.Options(defaults)
	if err != nil {
		t.Fatal(err)
	}
	if opts.TargetAnchor != scroll.AnchorStart {
		t.Errorf("explicit start anchor not applied: %s", opts.TargetAnchor)
	}
	if opts.Offset != scroll.Px(5) {
		t.Errorf("default offset lost: %s", opts.Offset)
	}
	if opts.MaxDuration != 300*time.Millisecond {
		t.Errorf("MaxDuration = %s", opts.MaxDuration)
	}

	if _, err := (Step{Easing: "wobble"}).Options(defaults); err == nil {
		t.Error("expected unknown easing error")
	}
}

func TestScenarioWriteRead(t *testing.T) {
	middle := scroll.AnchorMiddle
	pct := scroll.AnchorPercent(30)
	off := scroll.Percent(-10)
	scenario := &Scenario{
		Version:   ScenarioVersion,
		Direction: scroll.Horizontal,
		Viewport:  Size{W: 1280, H: 720},
		Steps: []Step{
			{Focus: "intro", Page: 0, Dwell: time.Second},
			{
				Focus:           "block1",
				Page:            1,
				Rect:            &Rectangle{X: 100, Y: 100, W: 200, H: 150},
				TargetAnchor:    &middle,
				ContainerAnchor: &pct,
				Offset:          &off,
				Duration:        600 * time.Millisecond,
				Easing:          "easeInOutCubic",
				Dwell:           2500 * time.Millisecond,
			},
		},
	}

	tmpFile := filepath.Join(t.TempDir(), "nested", "test_scenario.yaml")
	if err := WriteScenario(scenario, tmpFile); err != nil {
		t.Fatalf("WriteScenario failed: %v", err)
	}

	readScenario, err := ReadScenario(tmpFile)
	if err != nil {
		t.Fatalf("ReadScenario failed: %v", err)
	}

	if diff := cmp.Diff(scenario, readScenario, cmp.Comparer(func(a, b scroll.Anchor) bool { return a == b })); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
