package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/integrii/flaggy"

	"gameoflife/src/config"
	"gameoflife/src/generation"
	"gameoflife/src/scheduler"
	"gameoflife/src/view"
)

//cliOptions holds the flags, zero values mean "not given" and keep the config value
type cliOptions struct {
	configFile     string
	rows           int
	cols           int
	interval       time.Duration
	seed           int64
	workers        int
	maxGenerations int
	view           string
	template       string
	scale          int
}

func main() {
	cfg := initOptions()

	var stateCh chan scheduler.Status
	if cfg.View == config.ViewConsole {
		stateCh = make(chan scheduler.Status, 10) //the buffered channel to getting the scheduler status
	}

	s := scheduler.New(cfg.SchedulerOptions(), stateCh)
	defer s.Close()

	if err := s.Seed(cfg.Rows, cfg.Cols); err != nil {
		log.Fatal(err)
	}
	if cfg.Template != "" {
		if err := s.Clear(); err != nil {
			log.Fatal(err)
		}
		if err := s.Settle(cfg.Template, cfg.Rows/2-1, cfg.Cols/2-1); err != nil {
			log.Fatal(err)
		}
	}

	switch cfg.View {
	case config.ViewTerminal:
		v, err := view.NewConsoleUI(cfg.Rows, cfg.Cols)
		if err != nil {
			log.Fatal(err)
		}
		runInteractive(s, v)
	case config.ViewWindow:
		v, err := view.NewWindow(cfg.Scale, cfg.Rows, cfg.Cols)
		if err != nil {
			log.Fatal(err)
		}
		runInteractive(s, v)
	default:
		runHeadless(s, stateCh)
	}
}

func runInteractive(s *scheduler.Scheduler, v scheduler.Viewer) {
	if err := s.RegisterViewer(v); err != nil {
		log.Fatal(err)
	}
	if err := v.Start(); err != nil {
		log.Fatal(err)
	}
}

//runHeadless autoplays until MaxGenerations is reached or the process is interrupted
func runHeadless(s *scheduler.Scheduler, stateCh chan scheduler.Status) {
	out := view.NewConsoleOut(os.Stdout, true, true)
	if err := s.RegisterViewer(out); err != nil {
		log.Fatal(err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	fmt.Printf("\"The Life\" game simulation started...\n")
	_ = out.Start()
	if err := s.Autoplay(); err != nil {
		log.Fatal(err)
	}
	for {
		select {
		case st := <-stateCh:
			if st.Finished {
				return
			}
		case <-sigCh:
			fmt.Println("\nShutting down...")
			return
		}
	}
}

func initOptions() config.Config {
	templates := make([]string, 0)
	for name := range generation.Templates() {
		templates = append(templates, name)
	}
	sort.Strings(templates)

	o := cliOptions{}
	flaggy.SetName("gameoflife")
	flaggy.SetDescription("Conway's Game of Life on a finite grid")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.String(&o.configFile, "f", "config", "JSON config file, flags override its values")
	flaggy.Int(&o.rows, "y", "rows", fmt.Sprintf("Rows of the grid (%d - %d)", config.MinGridSize, config.MaxGridSize))
	flaggy.Int(&o.cols, "x", "cols", fmt.Sprintf("Columns of the grid (%d - %d)", config.MinGridSize, config.MaxGridSize))
	flaggy.Duration(&o.interval, "i", "interval", "Autoplay interval between the steps, for example 500ms")
	flaggy.Int64(&o.seed, "s", "seed", "Random seed, 0 picks one from the clock")
	flaggy.Int(&o.workers, "w", "workers", "Goroutines per step, 1 steps sequentially")
	flaggy.Int(&o.maxGenerations, "m", "maxGenerations", "Stop autoplay after this many generations")
	flaggy.String(&o.view, "v", "view", "View to use ["+strings.Join(config.Views, "|")+"]")
	flaggy.String(&o.template, "t", "template", "Start from a pattern on an empty grid ["+strings.Join(templates, "|")+"]")
	flaggy.Int(&o.scale, "", "scale", "Pixels per cell in the window view")

	flaggy.Parse()

	cfg := config.DefaultConfig()
	if o.configFile != "" {
		var err error
		if cfg, err = config.LoadConfig(o.configFile); err != nil {
			log.Fatal(err)
		}
	}
	o.apply(&cfg)

	if err := cfg.Validate(); err != nil {
		flaggy.ShowHelpAndExit(err.Error())
	}
	if _, ok := generation.Templates()[cfg.Template]; cfg.Template != "" && !ok {
		flaggy.ShowHelpAndExit("unknown template " + cfg.Template)
	}
	if cfg.View == config.ViewConsole && cfg.MaxGenerations == 0 {
		cfg.MaxGenerations = 100
	}
	return cfg
}

func (o cliOptions) apply(cfg *config.Config) {
	if o.rows != 0 {
		cfg.Rows = o.rows
	}
	if o.cols != 0 {
		cfg.Cols = o.cols
	}
	if o.interval != 0 {
		cfg.Interval = config.Duration(o.interval)
	}
	if o.seed != 0 {
		cfg.Seed = o.seed
	}
	if o.workers != 0 {
		cfg.Workers = o.workers
	}
	if o.maxGenerations != 0 {
		cfg.MaxGenerations = o.maxGenerations
	}
	if o.view != "" {
		cfg.View = o.view
	}
	if o.template != "" {
		cfg.Template = o.template
	}
	if o.scale != 0 {
		cfg.Scale = o.scale
	}
}
