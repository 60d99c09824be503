package scheduler

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/pkg/errors"

	"gameoflife/src/generation"
)

//Command controls whether automatic stepping is active
type Command string

const (
	Idle     Command = ""         //no command issued yet, behaves like Paused
	Paused   Command = "paused"   //no automatic steps, manual steps are ignored too
	Resume   Command = "resume"   //not paused, not looping: one manual step at a time
	Autoplay Command = "autoplay" //one step per interval, re-armed after every step
)

//default options
const (
	DefInterval = 500 * time.Millisecond
)

var ErrClosed = errors.New("scheduler is closed")

//Options represents the Scheduler's configurable options
type Options struct {
	Interval       time.Duration //delay between automatic steps
	Seed           int64         //random seed, 0 for a time based one
	Workers        int           //more than 1 steps the grid with that many goroutines
	MaxGenerations int           //autoplay pauses after that many generations, 0 is unlimited
	Clock          Clock
}

var DefaultOptions = Options{
	Interval: DefInterval,
}

//Status represents the state of the Scheduler at a concrete moment
type Status struct {
	Generation int
	Command    Command
	Rows       int
	Cols       int
	LiveCells  int
	StepTime   time.Duration
	Period     int  //1 for a still life, 2 for a period-2 oscillator, 0 otherwise
	Finished   bool //MaxGenerations reached
	Stats      Stats
	Grid       generation.Grid
}

//Viewer is anything that displays the simulation or controls it
type Viewer interface {
	Register(s *Scheduler)
	Refresh(st Status)
	Start() error
}

//Scheduler owns the current generation and the active command
//every state change runs on the loop goroutine, callers and timers only send functions to it
type Scheduler struct {
	options   Options
	clock     Clock
	rng       *rand.Rand
	step      func(generation.Grid) generation.Grid
	templates map[string]generation.Template

	//owned by the loop goroutine
	grid     generation.Grid
	command  Command
	timer    Timer
	timerSeq uint64
	history  history
	views    []Viewer

	state struct {
		Status
		sync.Mutex
	}

	stateCh   chan Status
	controlCh chan func()
	closeCh   chan struct{}
	doneCh    chan struct{}
	closeOnce sync.Once
}

//New creates the Scheduler and starts its loop
//stateCh is optional, when set every status change is written to it
func New(o *Options, stateCh chan Status) *Scheduler {
	if o == nil {
		o = &DefaultOptions
	}
	s := &Scheduler{
		options:   *o,
		clock:     o.Clock,
		rng:       generation.NewRNG(o.Seed),
		step:      generation.Step,
		templates: generation.Templates(),
		stateCh:   stateCh,
		controlCh: make(chan func()),
		closeCh:   make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
	if s.options.Interval <= 0 {
		s.options.Interval = DefInterval
	}
	if s.clock == nil {
		s.clock = realClock{}
	}
	if o.Workers > 1 {
		workers := o.Workers
		s.step = func(g generation.Grid) generation.Grid {
			return generation.StepParallel(g, workers)
		}
	}
	go s.mainLoop()
	return s
}

// Options returns the options the scheduler runs with.
func (s *Scheduler) Options() Options {
	return s.options
}

//Status returns a copy of the current status
func (s *Scheduler) Status() Status {
	s.state.Lock()
	defer s.state.Unlock()
	return s.state.Status
}

//RegisterViewer registers the viewer, it is refreshed on every state change
//the first refresh runs on the loop too, so it is ordered with the later ones
func (s *Scheduler) RegisterViewer(v Viewer) error {
	return s.exec(func() {
		s.views = append(s.views, v)
		v.Register(s)
		v.Refresh(s.Status())
	})
}

//AddTemplate adds the template to the ones Settle can place
func (s *Scheduler) AddTemplate(tmpl generation.Template) error {
	return s.exec(func() {
		s.templates[tmpl.Name] = tmpl
	})
}

//Seed replaces the grid with a random one of the given size
func (s *Scheduler) Seed(rows int, cols int) error {
	var err error
	execErr := s.exec(func() {
		var g generation.Grid
		if g, err = generation.Seed(rows, cols, s.rng); err != nil {
			return
		}
		s.replace(g, true)
		if s.command == Autoplay && s.timer == nil {
			s.arm()
		}
		s.publish()
	})
	if execErr != nil {
		return execErr
	}
	return err
}

//NextGeneration switches to Resume and performs exactly one step
func (s *Scheduler) NextGeneration() error {
	return s.exec(func() {
		s.command = Resume
		s.disarm()
		s.doStep()
		s.publish()
	})
}

//Pause stops automatic stepping and cancels the pending step
func (s *Scheduler) Pause() error {
	return s.exec(func() {
		s.command = Paused
		s.disarm()
		s.publish()
	})
}

//Autoplay starts stepping once per interval
func (s *Scheduler) Autoplay() error {
	return s.exec(func() {
		s.command = Autoplay
		s.state.Lock()
		s.state.Finished = false
		s.state.Unlock()
		if s.timer == nil {
			s.arm()
		}
		s.publish()
	})
}

//Clear kills all cells and switches to Resume, it does not step
func (s *Scheduler) Clear() error {
	return s.exec(func() {
		s.command = Resume
		s.disarm()
		s.replace(generation.Clear(s.grid), true)
		s.publish()
	})
}

//Toggle inverts the cell at row, col
func (s *Scheduler) Toggle(row int, col int) error {
	var err error
	execErr := s.exec(func() {
		var g generation.Grid
		if g, err = s.grid.Toggle(row, col); err != nil {
			return
		}
		s.replace(g, false)
		s.publish()
	})
	if execErr != nil {
		return execErr
	}
	return err
}

//Settle places the named template with its top-left corner at row, col
func (s *Scheduler) Settle(name string, row int, col int) error {
	var err error
	execErr := s.exec(func() {
		tmpl, ok := s.templates[name]
		if !ok {
			err = errors.Wrapf(generation.ErrUnknownTemplate, "%q", name)
			return
		}
		s.replace(tmpl.Place(s.grid, row, col), false)
		s.publish()
	})
	if execErr != nil {
		return execErr
	}
	return err
}

//Close cancels the pending step and stops the loop, it is safe to call more than once
func (s *Scheduler) Close() {
	s.closeOnce.Do(func() {
		close(s.closeCh)
	})
	<-s.doneCh
}

//exec runs f on the loop goroutine and waits for it to finish
func (s *Scheduler) exec(f func()) error {
	done := make(chan struct{})
	select {
	case s.controlCh <- func() {
		defer close(done)
		f()
	}:
	case <-s.closeCh:
		return ErrClosed
	}
	<-done
	return nil
}

//mainLoop - the main cycle, should start as a goroutine
//waits for commands and executes them one at a time
func (s *Scheduler) mainLoop() {
	defer close(s.doneCh)
	for {
		select {
		case cmd := <-s.controlCh:
			cmd()
		case <-s.closeCh:
			s.disarm()
			return
		}
	}
}

//arm schedules one automatic step after the interval
//the callback carries the sequence number so a timer cancelled too late cannot step
func (s *Scheduler) arm() {
	if s.grid.Rows() == 0 {
		return
	}
	s.timerSeq++
	seq := s.timerSeq
	s.timer = s.clock.AfterFunc(s.options.Interval, func() {
		select {
		case s.controlCh <- func() { s.autoStep(seq) }:
		case <-s.closeCh:
		}
	})
}

func (s *Scheduler) disarm() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.timerSeq++
}

//autoStep is the timer callback: one step, then re-arm while autoplay is still active
func (s *Scheduler) autoStep(seq uint64) {
	if seq != s.timerSeq || s.command != Autoplay {
		return
	}
	s.timer = nil
	s.doStep()
	if limit := s.options.MaxGenerations; limit > 0 && s.Status().Generation >= limit {
		s.command = Paused
		s.setFinished()
	} else if s.command == Autoplay {
		s.arm()
	}
	s.publish()
}

//doStep calculates the next generation, a no-op while paused
func (s *Scheduler) doStep() {
	if s.command == Paused || s.grid.Rows() == 0 {
		return
	}
	start := time.Now()
	next := s.step(s.grid)
	stepTime := time.Since(start)

	s.grid = next
	period := s.history.push(next)

	s.state.Lock()
	s.state.Generation++
	s.state.StepTime = stepTime
	s.state.Period = period
	s.state.Stats.update(next.LiveCells())
	s.state.Unlock()
}

//replace installs a grid which did not come from a step
func (s *Scheduler) replace(g generation.Grid, resetCounters bool) {
	s.grid = g
	s.history.reset()
	s.history.push(g)
	s.state.Lock()
	if resetCounters {
		s.state.Generation = 0
		s.state.Finished = false
	}
	s.state.Period = 0
	s.state.Unlock()
}

func (s *Scheduler) setFinished() {
	s.state.Lock()
	s.state.Finished = true
	s.state.Unlock()
}

//publish stores the new status, refreshes the views and writes the status to stateCh
func (s *Scheduler) publish() {
	s.state.Lock()
	s.state.Command = s.command
	s.state.Grid = s.grid
	s.state.Rows = s.grid.Rows()
	s.state.Cols = s.grid.Cols()
	s.state.LiveCells = s.grid.LiveCells()
	st := s.state.Status
	s.state.Unlock()

	for _, v := range s.views {
		v.Refresh(st)
	}
	if s.stateCh != nil {
		select {
		case s.stateCh <- st:
		case <-s.closeCh:
		}
	}
}
