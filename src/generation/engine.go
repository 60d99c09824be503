package generation

import (
	"math/rand/v2"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

const (
	DefMinRowsPerWorker = 3 //minimum rows for one worker
)

// NewRNG returns a deterministic PCG source. Seed 0 picks a time based seed.
func NewRNG(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewPCG(uint64(seed), 0))
}

//Seed creates a grid where every cell is alive with probability 0.5
func Seed(rows int, cols int, rng *rand.Rand) (Grid, error) {
	g, err := New(rows, cols)
	if err != nil {
		return nil, errors.Wrap(err, "seed")
	}
	if rng == nil {
		rng = NewRNG(0)
	}
	for i := range g {
		for j := range g[i] {
			g[i][j] = CellState(rng.IntN(2))
		}
	}
	return g, nil
}

//Clear returns an all-dead grid with the dimensions of g
func Clear(g Grid) Grid {
	g.mustBeRectangular()
	if g.Rows() == 0 || g.Cols() == 0 {
		return g.Clone()
	}
	return createGrid(g.Rows(), g.Cols())
}

//Step calculates the next generation
//all neighbour lookups read g, the result is written to a new grid
func Step(g Grid) Grid {
	//nothing to compute, and g[0] must not be indexed on an empty grid
	if len(g) == 0 || len(g[0]) == 0 {
		return g
	}
	g.mustBeRectangular()
	next := createGrid(g.Rows(), g.Cols())
	stepRows(g, next, 0, g.Rows())
	return next
}

//StepParallel gives the same result as Step
//the rows are split into bands and every band is calculated by its own goroutine
func StepParallel(g Grid, workers int) Grid {
	if len(g) == 0 || len(g[0]) == 0 {
		return g
	}
	g.mustBeRectangular()
	if workers < 1 {
		workers = 1
	}
	rows := g.Rows()
	rowsPerWorker := (rows + workers - 1) / workers
	if rowsPerWorker < DefMinRowsPerWorker {
		rowsPerWorker = DefMinRowsPerWorker
	}

	next := createGrid(rows, g.Cols())
	var eg errgroup.Group
	for y1 := 0; y1 < rows; y1 += rowsPerWorker {
		y2 := min(y1+rowsPerWorker, rows)
		eg.Go(func() error {
			stepRows(g, next, y1, y2)
			return nil
		})
	}
	//workers never fail, Wait only joins them
	_ = eg.Wait()
	return next
}

//stepRows writes next state of rows [y1, y2) of g into next
func stepRows(g Grid, next Grid, y1 int, y2 int) {
	for y := y1; y < y2; y++ {
		for x := range g[y] {
			if nextState(g[y][x] == Alive, countNeighbours(g, y, x)) {
				next[y][x] = Alive
			}
		}
	}
}

//countNeighbours counts alive cells around (row, col), positions outside the grid are skipped
func countNeighbours(g Grid, row int, col int) int {
	count := 0
	minY := max(0, row-1)
	maxY := min(len(g)-1, row+1)
	minX := max(0, col-1)
	maxX := min(len(g[row])-1, col+1)
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if y == row && x == col {
				continue
			}
			if g[y][x] == Alive {
				count++
			}
		}
	}
	return count
}

//nextState is B3/S23
func nextState(alive bool, neighbours int) bool {
	return neighbours == 3 || (alive && neighbours == 2)
}
