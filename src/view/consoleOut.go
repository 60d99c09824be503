package view

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/logrusorgru/aurora"

	"gameoflife/src/scheduler"
)

//ConsoleOut prints the progress of a headless run
type ConsoleOut struct {
	s          *scheduler.Scheduler
	w          io.Writer
	au         aurora.Aurora
	startTime  time.Time
	lastReport int
	every      int
	showGrid   bool
}

//NewConsoleOut creates the viewer, progress is printed every 10 generations
//showGrid prints the final generation when the run finishes
func NewConsoleOut(w io.Writer, colors bool, showGrid bool) *ConsoleOut {
	return &ConsoleOut{
		w:        w,
		au:       aurora.NewAurora(colors),
		every:    10,
		showGrid: showGrid,
	}
}

func (c *ConsoleOut) Refresh(st scheduler.Status) {
	if st.Finished {
		if c.lastReport == -1 {
			return
		}
		c.lastReport = -1
		totalTime := time.Since(c.startTime).Round(time.Millisecond)
		resultData := map[string]interface{}{
			"Last generation": st.Generation,
			"Total time":      totalTime,
			"Live cells":      st.LiveCells,
			"Avg population":  fmt.Sprintf("%.1f", st.Stats.AveragePopulation),
		}
		if p := periodDescr(st.Period); p != "" {
			resultData["Pattern"] = p
		}
		fmt.Fprintln(c.w, c.au.Red("\nFinished:"))
		c.printHashData(resultData)
		if c.showGrid {
			fmt.Fprintln(c.w, st.Grid.String())
		}
		return
	}
	if st.Command == scheduler.Autoplay && st.Generation > c.lastReport && st.Generation%c.every == 0 {
		c.lastReport = st.Generation
		fmt.Fprintf(c.w, "  %s %v, live cells: %v\n", c.au.Cyan("Generations done:"), st.Generation, st.LiveCells)
	}
}

func (c *ConsoleOut) Register(s *scheduler.Scheduler) {
	c.s = s
	o := s.Options()
	fmt.Fprintln(c.w, c.au.Green("Running configuration:"))
	fmt.Fprintf(c.w, "  Interval: %v\n", o.Interval)
	fmt.Fprintf(c.w, "  Max generations: %v\n", o.MaxGenerations)
	fmt.Fprintf(c.w, "  Workers: %v\n", max(o.Workers, 1))
}

func (c *ConsoleOut) Start() error {
	c.startTime = time.Now()
	st := c.s.Status()
	fmt.Fprintf(c.w, "  Dimension: %v x %v, live cells: %v\n", st.Rows, st.Cols, st.LiveCells)
	fmt.Fprintln(c.w, "\nSimulation started...")
	return nil
}

func (c *ConsoleOut) printHashData(d map[string]interface{}) {
	propNames := make([]string, 0, len(d))
	for k := range d {
		propNames = append(propNames, k)
	}
	sort.Strings(propNames)
	for _, propName := range propNames {
		fmt.Fprintf(c.w, "  %s: %v\n", propName, d[propName])
	}
}

func periodDescr(period int) string {
	switch period {
	case 1:
		return "still life"
	case 2:
		return "period-2 oscillator"
	}
	return ""
}
