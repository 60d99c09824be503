//go:build !ebiten

package view

import (
	"github.com/pkg/errors"

	"gameoflife/src/scheduler"
)

var ErrNoWindow = errors.New("the window view requires building with the 'ebiten' tag")

//Window is a placeholder for builds without the ebiten tag
type Window struct{}

//NewWindow always fails in the headless build
func NewWindow(int, int, int) (*Window, error) {
	return nil, ErrNoWindow
}

func (w *Window) Register(*scheduler.Scheduler) {}

func (w *Window) Refresh(scheduler.Status) {}

func (w *Window) Start() error {
	return ErrNoWindow
}
