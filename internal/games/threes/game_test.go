package threes

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-threes/internal/config"
	"github.com/vovakirdan/tui-threes/internal/core"
	"github.com/vovakirdan/tui-threes/internal/registry"
)

var testCfg = core.RuntimeConfig{
	ScreenW:  80,
	ScreenH:  24,
	TickRate: 30,
	Seed:     42,
}

// useConfig points the package at a config file for the duration of a test.
func useConfig(t *testing.T, yaml string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "threes.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	SetConfigPath(path)
	t.Cleanup(func() {
		SetConfigPath("")
		SetDifficultyPreset("")
	})
}

func press(a core.Action) core.InputFrame {
	in := core.NewInputFrame()
	in.Set(a)
	return in
}

func TestVariantsRegistered(t *testing.T) {
	for _, v := range Variants {
		if !registry.Exists(v.ID) {
			t.Errorf("variant %q is not registered", v.ID)
			continue
		}
		g, err := registry.Create(v.ID)
		if err != nil {
			t.Fatalf("registry.Create(%q): %v", v.ID, err)
		}
		if g.ID() != v.ID || g.Title() != v.Name {
			t.Errorf("registry.Create(%q) = %s/%s", v.ID, g.ID(), g.Title())
		}
	}
}

func TestResetUsesConfig(t *testing.T) {
	useConfig(t, "grid: {width: 3, height: 5}\nvocabulary: {length: 6}\n")

	v, _ := GetVariant("threes")
	g := New(v)
	g.Reset(testCfg)

	if err := g.ConfigErr(); err != nil {
		t.Fatalf("ConfigErr() = %v", err)
	}
	e := g.engine
	if e.Width() != 3 || e.Height() != 5 || e.Vocabulary().Max() != 13 {
		t.Errorf("engine %dx%d target %d, want 3x5 target 13", e.Width(), e.Height(), e.Vocabulary().Max())
	}
	if g.settings.Spawn.HighNumberProbability != 0.3 {
		t.Errorf("unset keys should keep defaults, got probability %v", g.settings.Spawn.HighNumberProbability)
	}
}

func TestVariantOverridesConfig(t *testing.T) {
	useConfig(t, "grid: {width: 6, height: 6}\n")
	SetDifficultyPreset(config.DifficultyHard)

	v, _ := GetVariant("threes_mini")
	g := New(v)
	g.Reset(testCfg)

	e := g.engine
	if e.Width() != 3 || e.Height() != 3 || e.Vocabulary().Max() != 34 {
		t.Errorf("engine %dx%d target %d, want 3x3 target 34", e.Width(), e.Height(), e.Vocabulary().Max())
	}
	if g.settings.Spawn.HighNumberProbability != 0.2 {
		t.Errorf("hard preset probability = %v, want 0.2", g.settings.Spawn.HighNumberProbability)
	}
}

func TestBrokenConfigFallsBack(t *testing.T) {
	useConfig(t, "grid: {width: -1, height: 4}\n")

	v, _ := GetVariant("threes")
	g := New(v)
	g.Reset(testCfg)

	if g.ConfigErr() == nil {
		t.Error("ConfigErr() = nil for an invalid file")
	}
	if g.engine.Width() != 4 {
		t.Errorf("fallback width = %d, want 4", g.engine.Width())
	}
}

func TestMustEngine(t *testing.T) {
	if e := mustEngine(config.DefaultThreesConfig(), 1); e == nil || e.Width() != 4 {
		t.Fatalf("mustEngine(defaults) = %v", e)
	}

	bad := config.DefaultThreesConfig()
	bad.Spawn.HighNumberProbability = 2
	defer func() {
		msg, _ := recover().(string)
		if !strings.Contains(msg, "default settings rejected") {
			t.Errorf("recovered %q, want a settings panic", msg)
		}
	}()
	mustEngine(bad, 1)
}

func TestDeterministicReset(t *testing.T) {
	useConfig(t, "")

	v, _ := GetVariant("threes")
	g1, g2 := New(v), New(v)
	g1.Reset(testCfg)
	g2.Reset(testCfg)

	for i := range 50 {
		in := press([]core.Action{core.ActionUp, core.ActionLeft, core.ActionDown, core.ActionRight}[i%4])
		g1.Step(in)
		g2.Step(in)
	}

	s1, s2 := g1.Snapshot(), g2.Snapshot()
	if !s1.Engine.Grid.Equal(s2.Engine.Grid) || s1.Engine.Score != s2.Engine.Score {
		t.Errorf("same seed diverged:\n%v\n%v", s1.Engine.Grid, s2.Engine.Grid)
	}
	if s1.Tick != 50 {
		t.Errorf("Tick = %d, want 50", s1.Tick)
	}
}

func TestStepMovesEngine(t *testing.T) {
	useConfig(t, "")

	v, _ := GetVariant("threes")
	g := New(v)
	g.Reset(testCfg)
	g.engine.grid = GridFromRows([][]int{
		{0, 0, 0, 1},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	res := g.Step(press(core.ActionLeft))
	if !res.Moved {
		t.Fatal("Step(Left) should move the tile")
	}
	if res.State.Score != 1 {
		t.Errorf("Score = %d, want 1", res.State.Score)
	}
	if g.engine.Grid().At(Point{Col: 0, Row: 0}) != 1 {
		t.Errorf("tile did not slide left: %v", g.engine.Grid().Rows())
	}

	if res := g.Step(core.NewInputFrame()); res.Moved {
		t.Error("empty input should not move")
	}
}

func TestPauseBlocksMoves(t *testing.T) {
	useConfig(t, "")

	v, _ := GetVariant("threes")
	g := New(v)
	g.Reset(testCfg)

	g.Step(press(core.ActionPause))
	if !g.State().Paused || g.Snapshot().State != StatePaused {
		t.Fatal("game should be paused")
	}

	before := g.engine.Grid()
	for _, a := range []core.Action{core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight} {
		g.Step(press(a))
	}
	if !g.engine.Grid().Equal(before) {
		t.Error("paused game accepted moves")
	}

	g.Step(press(core.ActionPause))
	if g.State().Paused {
		t.Error("game should resume")
	}
}

func TestWinState(t *testing.T) {
	useConfig(t, "vocabulary: {length: 3}\n")

	v, _ := GetVariant("threes")
	g := New(v)
	g.Reset(testCfg)
	g.engine.grid = GridFromRows([][]int{
		{1, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	res := g.Step(press(core.ActionLeft))
	if !res.State.GameOver || !res.State.Won {
		t.Fatalf("State = %+v, want won", res.State)
	}
	if g.Snapshot().State != StateWon {
		t.Errorf("Snapshot state = %s, want won", g.Snapshot().State)
	}

	screen := core.NewScreen(testCfg.ScreenW, testCfg.ScreenH)
	g.Render(screen)
	if !strings.Contains(screen.String(), "YOU WIN!") {
		t.Error("win overlay not rendered")
	}
}

func TestTooSmallScreen(t *testing.T) {
	useConfig(t, "")

	v, _ := GetVariant("threes")
	g := New(v)
	g.Reset(core.RuntimeConfig{ScreenW: 20, ScreenH: 8, Seed: 1})

	if g.Snapshot().State != StatePausedSmall {
		t.Errorf("state = %s, want %s", g.Snapshot().State, StatePausedSmall)
	}
	if res := g.Step(press(core.ActionUp)); res.Moved {
		t.Error("too small window should block moves")
	}

	screen := core.NewScreen(20, 8)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("too small message not rendered")
	}
}

func TestRenderBoard(t *testing.T) {
	useConfig(t, "")

	v, _ := GetVariant("threes")
	g := New(v)
	g.Reset(testCfg)
	g.engine.grid = GridFromRows([][]int{
		{1, 2, 3, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 144},
	})

	screen := core.NewScreen(testCfg.ScreenW, testCfg.ScreenH)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"Threes", "Score: 0", "Target: 144", "Last: -", "144"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered screen missing %q", want)
		}
	}
}

func TestTileColor(t *testing.T) {
	vocab := NewVocabulary(12)

	tests := []struct {
		value  int
		newest bool
		want   core.Color
	}{
		{1, false, core.ColorBrightBlue},
		{2, false, core.ColorBrightRed},
		{3, false, core.ColorBrightWhite},
		{89, false, core.ColorBrightWhite},
		{1, true, core.ColorBrightGreen},
		{144, false, core.ColorBrightYellow},
		{144, true, core.ColorBrightYellow},
	}

	for _, tt := range tests {
		if got := TileColor(tt.value, vocab, tt.newest); got != tt.want {
			t.Errorf("TileColor(%d, newest=%v) = %v, want %v", tt.value, tt.newest, got, tt.want)
		}
	}
}

func TestVariantDescribe(t *testing.T) {
	mini, _ := GetVariant("threes_mini")
	if got := mini.Describe(); got != "3x3, up to 34" {
		t.Errorf("Describe() = %q", got)
	}
	std, _ := GetVariant("threes")
	if got := std.Describe(); got != "configurable" {
		t.Errorf("Describe() = %q", got)
	}
	if _, ok := GetVariant("nope"); ok {
		t.Error("GetVariant(\"nope\") should fail")
	}
}

func TestResizeKeepsRound(t *testing.T) {
	useConfig(t, "")

	v, _ := GetVariant("threes")
	g := New(v)
	g.Reset(testCfg)
	before := g.engine.Grid()

	g.Resize(20, 8)
	if g.Snapshot().State != StatePausedSmall {
		t.Errorf("state after shrinking = %s", g.Snapshot().State)
	}
	g.Resize(100, 40)
	if g.Snapshot().State != StatePlaying {
		t.Errorf("state after growing = %s", g.Snapshot().State)
	}
	if !g.engine.Grid().Equal(before) {
		t.Error("Resize reset the board")
	}

	var _ registry.Resizer = g
	var _ registry.Summarizer = g
	var _ registry.ConfigReporter = g
	if sum := g.Summary(); sum.MaxTile == 0 || sum.Won || sum.Lost {
		t.Errorf("Summary() = %+v", sum)
	}
}
