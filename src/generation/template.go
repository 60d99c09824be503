package generation

import "github.com/pkg/errors"

var ErrUnknownTemplate = errors.New("unknown template")

//Template is a named pattern which can be placed onto a grid
type Template struct {
	Name        string  //template name
	Descr       string  //template descr
	Coordinates [][]int //array of [row, col] offsets of the alive cells
}

var (
	Blinker = Template{"blinker", "period-2 oscillator, horizontal phase", [][]int{{0, 0}, {0, 1}, {0, 2}}}
	Block   = Template{"block", "2x2 still life", [][]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}}}
	Glider  = Template{"glider", "moves one cell down-right every 4 generations", [][]int{{0, 1}, {1, 2}, {2, 0}, {2, 1}, {2, 2}}}
)

// Templates returns the built-in patterns keyed by name.
func Templates() map[string]Template {
	return map[string]Template{
		Blinker.Name: Blinker,
		Block.Name:   Block,
		Glider.Name:  Glider,
	}
}

//Place returns a copy of g with the template's cells set alive, shifted by (row, col)
//cells landing outside the grid are skipped
func (t Template) Place(g Grid, row int, col int) Grid {
	c := g.Clone()
	for _, v := range t.Coordinates {
		y, x := row+v[0], col+v[1]
		if y < 0 || x < 0 || y >= c.Rows() || x >= c.Cols() {
			continue
		}
		c[y][x] = Alive
	}
	return c
}
