package view

import (
	"bytes"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"

	"gameoflife/src/config"
	"gameoflife/src/generation"
	"gameoflife/src/scheduler"
)

type keyBindings struct {
	key      interface{}
	name     string
	descr    string
	handler  func(v *gocui.View) error
	viewName string
}

//ConsoleUI is the interactive terminal view
//the size menu (r/R, k/K) picks the dimensions used by the next Generate
type ConsoleUI struct {
	s *scheduler.Scheduler
	g *gocui.Gui
	k []keyBindings

	mu      sync.Mutex
	st      scheduler.Status
	rows    int
	cols    int
	lastErr string

	liveFiller string
	deadFiller string
}

var (
	commandDescr = map[scheduler.Command]string{
		scheduler.Idle:     aurora.Colorize("waiting", aurora.BlueFg).String(),
		scheduler.Paused:   aurora.Colorize("paused", aurora.RedFg).String(),
		scheduler.Resume:   "manual",
		scheduler.Autoplay: aurora.Colorize("autoplay", aurora.CyanFg).String(),
	}
)

//NewConsoleUI creates the terminal view, rows and cols preselect the size menu
func NewConsoleUI(rows int, cols int) (*ConsoleUI, error) {
	var err error
	t := ConsoleUI{
		rows:       rows,
		cols:       cols,
		liveFiller: aurora.Green("█").BgBrightGreen().String(),
		deadFiller: "░",
	}

	t.g, err = gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return nil, errors.Wrap(err, "[NewConsoleUI] failed to create gui")
	}

	t.g.Mouse = true
	t.k = []keyBindings{
		{gocui.KeyCtrlC, "^C", "Exit", t.cmdQuit, ""},
		{'n', "N", "Next generation", t.cmdNextGeneration, ""},
		{'p', "P", "Pause", t.cmdPause, ""},
		{'a', "A", "Autoplay", t.cmdAutoplay, ""},
		{'c', "C", "Clear", t.cmdClear, ""},
		{'g', "G", "Generate", t.cmdGenerate, ""},
		{'r', "r/R", "Rows", t.sizeCmd(&t.rows, 1), ""},
		{'R', "", "", t.sizeCmd(&t.rows, -1), ""},
		{'k', "k/K", "Columns", t.sizeCmd(&t.cols, 1), ""},
		{'K', "", "", t.sizeCmd(&t.cols, -1), ""},
		{'l', "L", "Glider", t.cmdGlider, ""},
		{gocui.MouseLeft, "MOUSE", "Toggle the cell", t.cmdMouseClick, "grid"},
	}
	t.g.SetManagerFunc(t.layout)

	t.initKeyBindings(t.k)

	return &t, nil
}

func (t *ConsoleUI) initKeyBindings(k []keyBindings) {
	for _, kb := range k {
		h := kb.handler
		if err := t.g.SetKeybinding(kb.viewName, kb.key, gocui.ModNone, func(gui *gocui.Gui, view *gocui.View) error { return h(view) }); err != nil {
			log.Panicln(err)
		}
	}
}

func (t *ConsoleUI) Register(s *scheduler.Scheduler) {
	t.s = s
}

//Start runs the gui main loop until ^C
func (t *ConsoleUI) Start() error {
	defer t.g.Close()
	if err := t.g.MainLoop(); err != nil && err != gocui.ErrQuit {
		return err
	}
	return nil
}

func (t *ConsoleUI) Refresh(st scheduler.Status) {
	t.mu.Lock()
	t.st = st
	t.mu.Unlock()
	//it needs to call Update when calls from goroutine
	t.g.Update(func(g *gocui.Gui) error {
		t.renderField(g)
		t.renderConfiguration(g)
		t.renderStatus(g)
		return nil
	})
}

func (t *ConsoleUI) snapshot() (scheduler.Status, int, int, string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.st, t.rows, t.cols, t.lastErr
}

func (t *ConsoleUI) renderField(g *gocui.Gui) {
	v, e := g.View("grid")
	if e != nil {
		return
	}
	st, _, _, _ := t.snapshot()
	//the entire field is redrawn at once
	v.Clear()

	crop := false
	maxW, maxH := v.Size()
	if st.Cols > maxW || st.Rows > maxH {
		crop = true
	}

	var b bytes.Buffer
	for i, row := range st.Grid {
		//discard the data outside the view area
		if i >= maxH {
			break
		}
		if i != 0 {
			b.WriteByte('\n')
		}
		if crop && i == (maxH-1) {
			b.WriteString(aurora.Red("The grid is larger than the viewing area").BgBlack().String())
			break
		}
		for j, c := range row {
			if j >= maxW {
				break
			}
			if c == generation.Alive {
				b.WriteString(t.liveFiller)
			} else {
				b.WriteString(t.deadFiller)
			}
		}
	}
	_, _ = fmt.Fprint(v, b.String())
}

func (t *ConsoleUI) renderStatus(g *gocui.Gui) {
	v, e := g.View("status")
	if e != nil {
		return
	}
	st, _, _, lastErr := t.snapshot()
	v.Clear()
	_, _ = fmt.Fprintln(v, t.renderProp("Generation", "%v", st.Generation))
	_, _ = fmt.Fprintln(v, t.renderProp("Live cells", "%v", st.LiveCells))
	_, _ = fmt.Fprintln(v, t.renderProp("Step time", "%v", st.StepTime.Round(time.Microsecond)))
	_, _ = fmt.Fprintln(v, t.renderProp("Avg population", "%.1f", st.Stats.AveragePopulation))
	_, _ = fmt.Fprintln(v, t.renderProp("Mode", "%v", commandDescr[st.Command]))
	if p := periodDescr(st.Period); p != "" {
		_, _ = fmt.Fprintln(v, t.renderProp("Pattern", "%v", p))
	}
	if lastErr != "" {
		_, _ = fmt.Fprintln(v, " "+aurora.Red(lastErr).String())
	}
}

func (t *ConsoleUI) renderConfiguration(g *gocui.Gui) {
	v, e := g.View("configuration")
	if e != nil {
		return
	}
	st, rows, cols, _ := t.snapshot()
	v.Clear()
	_, _ = fmt.Fprintln(v, t.renderProp("Dimension", "%v x %v", st.Rows, st.Cols))
	_, _ = fmt.Fprintln(v, t.renderProp("Next size", "%v x %v", rows, cols))
	_, _ = fmt.Fprintln(v, t.renderProp("Size menu", "%v - %v", config.MinGridSize, config.MaxGridSize))
	if t.s != nil {
		_, _ = fmt.Fprintln(v, t.renderProp("Interval", "%v", t.s.Options().Interval))
	}
}

func (t *ConsoleUI) renderProp(name string, valueformat string, values ...interface{}) string {
	return fmt.Sprintf(" "+aurora.Colorize(name, aurora.GreenFg).String()+": "+valueformat, values...)
}

func (t *ConsoleUI) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	leftColumnWidth := 30
	minWindowHeight := 20

	if maxY < minWindowHeight {
		if _, err := t.headerLayout(g, maxY, "Terminal height too small"); err != nil {
			if err != gocui.ErrUnknownView {
				return err
			}
		}
		_ = g.DeleteView("configuration")
		_ = g.DeleteView("status")
		_ = g.DeleteView("grid")
		return nil
	}
	if _, err := t.headerLayout(g, 3, "Conway's Game of Life"); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
	}

	if v, err := g.SetView("configuration", 0, 3, leftColumnWidth, 3+(maxY-5-3)/2); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Configuration"
		v.Frame = true
	}
	t.renderConfiguration(g)

	if v, err := g.SetView("status", 0, 3+(maxY-5-3)/2+1, leftColumnWidth, maxY-5); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Status"
		v.Frame = true
	}
	t.renderStatus(g)

	if v, err := g.SetView("grid", leftColumnWidth+1, 3, maxX-1, maxY-5); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Generation"
		v.Frame = true
	}
	t.renderField(g)

	if v, err := g.SetView("help", -1, maxY-5, maxX, maxY-2); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Frame = false
		v.Wrap = true
		b := bytes.Buffer{}
		b.WriteString("KEYBINDINGS: ")
		first := true
		for _, k := range t.k {
			if k.name == "" {
				continue
			}
			if !first {
				b.WriteString(", ")
			}
			first = false
			b.WriteString(aurora.Green(k.name).String())
			b.WriteString(": ")
			b.WriteString(k.descr)
		}
		_, _ = fmt.Fprintln(v, b.String())
	}

	return nil
}

func (t *ConsoleUI) headerLayout(g *gocui.Gui, height int, text string) (v *gocui.View, err error) {
	maxX, _ := g.Size()
	if v, err = g.SetView("header", -1, -1, maxX+1, height); err != nil {
		if err == gocui.ErrUnknownView && v != nil {
			v.Frame = false
			v.BgColor = gocui.ColorCyan
			v.FgColor = gocui.ColorBlack
		}
	}
	if v != nil {
		v.Clear()
		pad := 0
		if maxX > len(text) {
			pad = (maxX - len(text)) / 2
		}
		_, _ = fmt.Fprintln(v, strings.Repeat("\n", height/2)+strings.Repeat(" ", pad)+text)
	}
	return
}

//handle keeps the gui running on scheduler errors, the message is shown in the status panel
func (t *ConsoleUI) handle(err error) error {
	if errors.Is(err, scheduler.ErrClosed) {
		return gocui.ErrQuit
	}
	t.mu.Lock()
	if err != nil {
		t.lastErr = err.Error()
	} else {
		t.lastErr = ""
	}
	t.mu.Unlock()
	return nil
}

func (t *ConsoleUI) cmdQuit(_ *gocui.View) error {
	return gocui.ErrQuit
}

func (t *ConsoleUI) cmdNextGeneration(_ *gocui.View) error {
	return t.handle(t.s.NextGeneration())
}

func (t *ConsoleUI) cmdPause(_ *gocui.View) error {
	return t.handle(t.s.Pause())
}

func (t *ConsoleUI) cmdAutoplay(_ *gocui.View) error {
	return t.handle(t.s.Autoplay())
}

func (t *ConsoleUI) cmdClear(_ *gocui.View) error {
	return t.handle(t.s.Clear())
}

func (t *ConsoleUI) cmdGenerate(_ *gocui.View) error {
	_, rows, cols, _ := t.snapshot()
	return t.handle(t.s.Seed(rows, cols))
}

func (t *ConsoleUI) cmdGlider(_ *gocui.View) error {
	return t.handle(t.s.Settle("glider", 0, 0))
}

//sizeCmd moves a size menu selection by delta, staying inside the menu
func (t *ConsoleUI) sizeCmd(size *int, delta int) func(v *gocui.View) error {
	return func(_ *gocui.View) error {
		t.mu.Lock()
		*size = stepSize(*size, delta)
		t.mu.Unlock()
		t.renderConfiguration(t.g)
		return nil
	}
}

func (t *ConsoleUI) cmdMouseClick(v *gocui.View) error {
	cx, cy := v.Cursor()
	return t.handle(t.s.Toggle(cy, cx))
}

//stepSize moves through the size menu and wraps around at both ends
func stepSize(size int, delta int) int {
	size += delta
	if size > config.MaxGridSize {
		return config.MinGridSize
	}
	if size < config.MinGridSize {
		return config.MaxGridSize
	}
	return size
}
