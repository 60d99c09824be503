//go:build ebiten

package view

import (
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/pkg/errors"

	"gameoflife/src/scheduler"
)

//Window shows the simulation in a graphical window, one scaled pixel per cell
type Window struct {
	s     *scheduler.Scheduler
	scale int
	rows  int
	cols  int

	mu sync.Mutex
	st scheduler.Status

	img    *ebiten.Image
	pixels []byte

	onColor  color.Color
	offColor color.Color
}

//NewWindow creates the window view, rows and cols are used by the G (generate) key
func NewWindow(scale int, rows int, cols int) (*Window, error) {
	if scale < 1 {
		scale = 1
	}
	return &Window{
		scale:    scale,
		rows:     rows,
		cols:     cols,
		onColor:  color.RGBA{R: 0x4c, G: 0xaf, B: 0x50, A: 0xff},
		offColor: color.Black,
	}, nil
}

func (w *Window) Register(s *scheduler.Scheduler) {
	w.s = s
}

func (w *Window) Refresh(st scheduler.Status) {
	w.mu.Lock()
	w.st = st
	w.mu.Unlock()
}

//Start blocks until the window is closed
func (w *Window) Start() error {
	ebiten.SetWindowTitle("Game of Life")
	ebiten.SetWindowSize(w.cols*w.scale, w.rows*w.scale)
	if err := ebiten.RunGame(w); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func (w *Window) status() scheduler.Status {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.st
}

// Update handles the keyboard and the mouse.
func (w *Window) Update() error {
	var err error
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyQ), inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		err = w.s.NextGeneration()
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		err = w.s.Pause()
	case inpututil.IsKeyJustPressed(ebiten.KeyA):
		err = w.s.Autoplay()
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		err = w.s.Clear()
	case inpututil.IsKeyJustPressed(ebiten.KeyG):
		err = w.s.Seed(w.rows, w.cols)
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		x, y := ebiten.CursorPosition()
		row, col := cellAt(x, y, w.scale)
		//clicks outside the grid are ignored
		_ = w.s.Toggle(row, col)
	}
	if errors.Is(err, scheduler.ErrClosed) {
		return ebiten.Termination
	}
	return nil
}

// Draw renders the current generation.
func (w *Window) Draw(screen *ebiten.Image) {
	st := w.status()
	if st.Rows == 0 || st.Cols == 0 {
		return
	}
	if w.img == nil || w.img.Bounds().Dx() != st.Cols || w.img.Bounds().Dy() != st.Rows {
		w.img = ebiten.NewImage(st.Cols, st.Rows)
		w.pixels = make([]byte, st.Rows*st.Cols*4)
	}
	fillBinaryRGBA(w.pixels, st.Grid, w.onColor, w.offColor)
	w.img.WritePixels(w.pixels)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w.scale), float64(w.scale))
	screen.DrawImage(w.img, op)
}

// Layout returns the logical screen size.
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	st := w.status()
	if st.Rows == 0 || st.Cols == 0 {
		return w.cols * w.scale, w.rows * w.scale
	}
	return st.Cols * w.scale, st.Rows * w.scale
}
