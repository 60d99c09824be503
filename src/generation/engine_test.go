package generation

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
)

func TestSeed(t *testing.T) {
	rng := NewRNG(42)
	for _, d := range [][2]int{{1, 1}, {3, 7}, {50, 50}, {10, 1}} {
		g, err := Seed(d[0], d[1], rng)
		if err != nil {
			t.Fatalf("seed %v: %v", d, err)
		}
		if g.Rows() != d[0] {
			t.Fatalf("seed %v: got %d rows", d, g.Rows())
		}
		for i, row := range g {
			if len(row) != d[1] {
				t.Fatalf("seed %v: row %d has %d cells", d, i, len(row))
			}
			for j, c := range row {
				if c != Dead && c != Alive {
					t.Fatalf("seed %v: cell (%d,%d) = %d", d, i, j, c)
				}
			}
		}
	}
}

func TestSeedIsDeterministicForSameSeed(t *testing.T) {
	a, _ := Seed(20, 20, NewRNG(7))
	b, _ := Seed(20, 20, NewRNG(7))
	if !a.Equal(b) {
		t.Fatal("same rng seed produced different grids")
	}
	if live := a.LiveCells(); live == 0 || live == 400 {
		t.Fatalf("expected a mixed population, got %d alive of 400", live)
	}
}

func TestSeedInvalidDimension(t *testing.T) {
	for _, d := range [][2]int{{0, 5}, {5, 0}, {-1, 3}, {0, 0}} {
		_, err := Seed(d[0], d[1], NewRNG(1))
		if !errors.Is(err, ErrInvalidDimension) {
			t.Fatalf("seed %v: expected ErrInvalidDimension, got %v", d, err)
		}
	}
}

func TestClear(t *testing.T) {
	g, _ := Seed(6, 9, NewRNG(3))
	before := g.Clone()
	c := Clear(g)
	if c.Rows() != 6 || c.Cols() != 9 {
		t.Fatalf("clear changed dimensions to %dx%d", c.Rows(), c.Cols())
	}
	if c.LiveCells() != 0 {
		t.Fatalf("clear left %d cells alive", c.LiveCells())
	}
	if !g.Equal(before) {
		t.Fatal("clear mutated its input")
	}
	if !Clear(c).Equal(c) {
		t.Fatal("clear is not idempotent")
	}
}

func TestStepDoesNotMutateInput(t *testing.T) {
	g, _ := Seed(15, 15, NewRNG(11))
	before := g.Clone()
	_ = Step(g)
	if !g.Equal(before) {
		t.Fatal("step mutated its input")
	}
}

func TestStepIsDeterministic(t *testing.T) {
	g, _ := Seed(25, 30, NewRNG(5))
	if !Step(g).Equal(Step(g)) {
		t.Fatal("step gave different results for the same grid")
	}
}

func TestStepPatterns(t *testing.T) {
	tests := []struct {
		name string
		in   Grid
		want Grid
	}{
		{"single alive cell dies", Grid{{1}}, Grid{{0}}},
		{"single dead cell stays dead", Grid{{0}}, Grid{{0}}},
		{"blinker horizontal to vertical",
			Grid{{0, 0, 0}, {1, 1, 1}, {0, 0, 0}},
			Grid{{0, 1, 0}, {0, 1, 0}, {0, 1, 0}}},
		{"blinker vertical to horizontal",
			Grid{{0, 1, 0}, {0, 1, 0}, {0, 1, 0}},
			Grid{{0, 0, 0}, {1, 1, 1}, {0, 0, 0}}},
		{"block is a still life", Grid{{1, 1}, {1, 1}}, Grid{{1, 1}, {1, 1}}},
		{"corner cells are not wrapped",
			Grid{{1, 0, 1}, {0, 0, 0}, {1, 0, 0}},
			Grid{{0, 0, 0}, {0, 1, 0}, {0, 0, 0}}},
		{"overcrowded centre dies",
			Grid{{1, 1, 1}, {1, 1, 1}, {1, 1, 1}},
			Grid{{1, 0, 1}, {0, 0, 0}, {1, 0, 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Step(tt.in); !got.Equal(tt.want) {
				t.Fatalf("got\n%v\nwant\n%v", got, tt.want)
			}
			if got := StepParallel(tt.in, 4); !got.Equal(tt.want) {
				t.Fatalf("parallel got\n%v\nwant\n%v", got, tt.want)
			}
		})
	}
}

func TestBlinkerPeriod(t *testing.T) {
	g := Grid{{0, 0, 0}, {1, 1, 1}, {0, 0, 0}}
	if !Step(Step(g)).Equal(g) {
		t.Fatal("blinker did not return after two steps")
	}
}

func TestDeadGridStaysDead(t *testing.T) {
	for _, d := range [][2]int{{1, 1}, {4, 9}, {30, 2}} {
		g, _ := New(d[0], d[1])
		for i := 0; i < 5; i++ {
			g = Step(g)
		}
		if g.LiveCells() != 0 || g.Rows() != d[0] || g.Cols() != d[1] {
			t.Fatalf("dead %v grid changed", d)
		}
	}
}

func TestStepEmptyGrid(t *testing.T) {
	if got := Step(Grid{}); len(got) != 0 {
		t.Fatalf("empty grid became %v", got)
	}
	if got := Step(nil); got != nil {
		t.Fatalf("nil grid became %v", got)
	}
	zero := Grid{{}, {}}
	if got := Step(zero); got.Rows() != 2 || got.Cols() != 0 {
		t.Fatalf("zero-length rows became %dx%d", got.Rows(), got.Cols())
	}
}

func TestStepPanicsOnRaggedGrid(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for a ragged grid")
		}
	}()
	Step(Grid{{1, 1, 1}, {1}})
}

func TestGliderMoves(t *testing.T) {
	g, _ := New(10, 10)
	g = Glider.Place(g, 1, 1)
	want := Glider.Place(Clear(g), 2, 2)
	for i := 0; i < 4; i++ {
		g = Step(g)
	}
	if !g.Equal(want) {
		t.Fatalf("glider after 4 steps\n%v\nwant\n%v", g, want)
	}
}

func TestStepParallelMatchesStep(t *testing.T) {
	rng := NewRNG(99)
	for _, workers := range []int{0, 1, 2, 3, 8, 64} {
		g, _ := Seed(37, 23, rng)
		for i := 0; i < 10; i++ {
			seq, par := Step(g), StepParallel(g, workers)
			if !seq.Equal(par) {
				t.Fatalf("workers=%d generation %d differs", workers, i)
			}
			g = seq
		}
	}
}

func TestToggle(t *testing.T) {
	g, _ := New(3, 4)
	a, err := g.Toggle(1, 3)
	if err != nil {
		t.Fatal(err)
	}
	if a[1][3] != Alive || g[1][3] != Dead {
		t.Fatal("toggle must flip the copy only")
	}
	b, _ := a.Toggle(1, 3)
	if !b.Equal(g) {
		t.Fatal("toggling twice is not the identity")
	}
	if _, err := g.Toggle(3, 0); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
}

func TestPlaceSkipsOutsideCells(t *testing.T) {
	g, _ := New(2, 2)
	g = Blinker.Place(g, 1, 0)
	if !g.Equal(Grid{{0, 0}, {1, 1}}) {
		t.Fatalf("got %v", g)
	}
}

func TestHash(t *testing.T) {
	a := Grid{{0, 1}, {1, 0}}
	if a.Hash() != a.Clone().Hash() {
		t.Fatal("equal grids hash differently")
	}
	if a.Hash() == (Grid{{1, 0}, {0, 1}}).Hash() {
		t.Fatal("different grids hash equally")
	}
	if (Grid{{0, 0, 0, 0}}).Hash() == (Grid{{0, 0}, {0, 0}}).Hash() {
		t.Fatal("dimensions are not part of the hash")
	}
}

func TestString(t *testing.T) {
	g := Grid{{1, 0}, {0, 1}}
	want := liveFiller + deadFiller + "\n" + deadFiller + liveFiller
	if g.String() != want {
		t.Fatalf("got %q want %q", g.String(), want)
	}
}

var steppers = map[string]func(Grid) Grid{
	"simple":   Step,
	"parallel": func(g Grid) Grid { return StepParallel(g, 8) },
}

func Benchmark_Step(b *testing.B) {
	for _, size := range []int{50, 200} {
		g, _ := Seed(size, size, NewRNG(1))
		for name, step := range steppers {
			b.Run(fmt.Sprintf("%s/%dx%d", name, size, size), func(b *testing.B) {
				b.ReportAllocs()
				for i := 0; i < b.N; i++ {
					_ = step(g)
				}
			})
		}
	}
}
