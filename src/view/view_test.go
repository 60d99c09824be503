package view

import (
	"bytes"
	"image/color"
	"io"
	"strings"
	"testing"
	"time"

	"gameoflife/src/config"
	"gameoflife/src/generation"
	"gameoflife/src/scheduler"
)

func TestConsoleOutProgressAndSummary(t *testing.T) {
	var b bytes.Buffer
	c := NewConsoleOut(&b, false, true)
	s := scheduler.New(&scheduler.Options{Seed: 1, MaxGenerations: 20}, nil)
	defer s.Close()
	if err := s.Seed(2, 2); err != nil {
		t.Fatal(err)
	}
	c.Register(s)
	if err := c.Start(); err != nil {
		t.Fatal(err)
	}

	for gen := 1; gen <= 20; gen++ {
		c.Refresh(scheduler.Status{Generation: gen, Command: scheduler.Autoplay})
	}
	done := scheduler.Status{
		Generation: 20,
		Command:    scheduler.Paused,
		Finished:   true,
		Period:     1,
		LiveCells:  4,
		Grid:       generation.Grid{{1, 1}, {1, 1}},
	}
	c.Refresh(done)
	c.Refresh(done)

	out := b.String()
	for _, want := range []string{
		"Max generations: 20",
		"Dimension: 2 x 2",
		"Generations done: 10",
		"Generations done: 20",
		"Last generation: 20",
		"Pattern: still life",
		"████",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output is missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Generations done: 5,") {
		t.Fatalf("progress printed off the interval:\n%s", out)
	}
	if n := strings.Count(out, "Finished:"); n != 1 {
		t.Fatalf("summary printed %d times", n)
	}
}

//run with -race, every console viewer is refreshed while the scheduler keeps stepping
func TestRegisterConsoleOutDuringAutoplay(t *testing.T) {
	s := scheduler.New(&scheduler.Options{Seed: 1, Interval: time.Microsecond}, nil)
	defer s.Close()
	if err := s.Seed(10, 10); err != nil {
		t.Fatal(err)
	}
	_ = s.Clear()
	if err := s.Settle("blinker", 4, 4); err != nil {
		t.Fatal(err)
	}
	if err := s.Autoplay(); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 50; i++ {
		if err := s.RegisterViewer(NewConsoleOut(io.Discard, false, false)); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.Pause(); err != nil {
		t.Fatal(err)
	}
}

func TestFillBinaryRGBA(t *testing.T) {
	g := generation.Grid{{1, 0}, {0, 1}}
	buf := make([]byte, 2*2*4)
	fillBinaryRGBA(buf, g, color.White, color.Black)
	want := []byte{
		255, 255, 255, 255, 0, 0, 0, 255,
		0, 0, 0, 255, 255, 255, 255, 255,
	}
	if !bytes.Equal(buf, want) {
		t.Fatalf("got %v want %v", buf, want)
	}
}

func TestCellAt(t *testing.T) {
	tests := []struct {
		px, py, scale, row, col int
	}{
		{0, 0, 12, 0, 0},
		{11, 11, 12, 0, 0},
		{12, 25, 12, 2, 1},
		{5, 7, 0, 7, 5},
	}
	for _, tt := range tests {
		row, col := cellAt(tt.px, tt.py, tt.scale)
		if row != tt.row || col != tt.col {
			t.Fatalf("cellAt(%d, %d, %d) = (%d, %d), want (%d, %d)", tt.px, tt.py, tt.scale, row, col, tt.row, tt.col)
		}
	}
}

func TestStepSizeWrapsAroundTheMenu(t *testing.T) {
	if got := stepSize(config.MaxGridSize, 1); got != config.MinGridSize {
		t.Fatalf("got %d", got)
	}
	if got := stepSize(config.MinGridSize, -1); got != config.MaxGridSize {
		t.Fatalf("got %d", got)
	}
	if got := stepSize(10, 1); got != 11 {
		t.Fatalf("got %d", got)
	}
}
