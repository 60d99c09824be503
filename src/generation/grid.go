package generation

import (
	"crypto/md5"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

//CellState is the state of a single cell, Dead or Alive
type CellState uint8

const (
	Dead  CellState = 0
	Alive CellState = 1
)

const (
	liveFiller = "██"
	deadFiller = "  "
)

var (
	ErrInvalidDimension = errors.New("invalid grid dimension")
	ErrOutOfRange       = errors.New("cell position out of range")
)

//Grid is one generation: rows of cells, all rows have the same length
//a Grid is never modified after it was handed out, every operation returns a new one
type Grid [][]CellState

//New creates an all-dead grid
func New(rows int, cols int) (Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, errors.Wrapf(ErrInvalidDimension, "rows=%d cols=%d", rows, cols)
	}
	return createGrid(rows, cols), nil
}

//createGrid allocates the grid with one backing buffer for all rows
func createGrid(rows int, cols int) Grid {
	g := make(Grid, rows)
	b := make([]CellState, rows*cols)
	for i := range g {
		start := cols * i
		g[i] = b[start : start+cols : start+cols]
	}
	return g
}

// Rows returns the number of rows.
func (g Grid) Rows() int {
	return len(g)
}

// Cols returns the row length, 0 for an empty grid.
func (g Grid) Cols() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// LiveCells counts alive cells.
func (g Grid) LiveCells() (count int) {
	for _, row := range g {
		for _, c := range row {
			if c == Alive {
				count++
			}
		}
	}
	return
}

// Equal reports whether both grids have the same dimensions and cells.
func (g Grid) Equal(o Grid) bool {
	if len(g) != len(o) {
		return false
	}
	for i := range g {
		if len(g[i]) != len(o[i]) {
			return false
		}
		for j := range g[i] {
			if g[i][j] != o[i][j] {
				return false
			}
		}
	}
	return true
}

// Clone returns a deep copy.
func (g Grid) Clone() Grid {
	if len(g) == 0 {
		return Grid{}
	}
	c := createGrid(g.Rows(), g.Cols())
	for i := range g {
		copy(c[i], g[i])
	}
	return c
}

//Toggle returns a copy of the grid with the cell at row, col inverted
func (g Grid) Toggle(row int, col int) (Grid, error) {
	if row < 0 || col < 0 || row >= g.Rows() || col >= g.Cols() {
		return nil, errors.Wrapf(ErrOutOfRange, "row=%d col=%d grid=%dx%d", row, col, g.Rows(), g.Cols())
	}
	c := g.Clone()
	c[row][col] ^= Alive
	return c, nil
}

//Hash returns the md5 of the cell states, used to spot repeating generations
func (g Grid) Hash() string {
	h := md5.New()
	fmt.Fprintf(h, "%dx%d;", g.Rows(), g.Cols())
	for _, row := range g {
		b := make([]byte, len(row))
		for j, c := range row {
			b[j] = byte(c)
		}
		h.Write(b)
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// String renders the grid with two characters per cell, one line per row.
func (g Grid) String() string {
	var b strings.Builder
	for i, row := range g {
		if i != 0 {
			b.WriteByte('\n')
		}
		for _, c := range row {
			if c == Alive {
				b.WriteString(liveFiller)
			} else {
				b.WriteString(deadFiller)
			}
		}
	}
	return b.String()
}

//mustBeRectangular panics on ragged grids
//the engine only produces rectangular grids, so anything else is a caller bug
func (g Grid) mustBeRectangular() {
	cols := g.Cols()
	for i, row := range g {
		if len(row) != cols {
			panic(fmt.Sprintf("generation: ragged grid, row %d has %d cells, row 0 has %d", i, len(row), cols))
		}
	}
}
