package config

import (
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"

	"gameoflife/src/generation"
	"gameoflife/src/scheduler"
)

const (
	ViewConsole  = "console"
	ViewTerminal = "terminal"
	ViewWindow   = "window"

	MinGridSize = 1
	MaxGridSize = 50
)

var (
	Views = []string{ViewConsole, ViewTerminal, ViewWindow}

	ErrInvalidView     = errors.New("invalid view")
	ErrInvalidInterval = errors.New("invalid interval")
)

// Duration reads either a Go duration string ("500ms") or nanoseconds from JSON.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return errors.Wrapf(err, "duration %q", value)
		}
		*d = Duration(parsed)
	default:
		return errors.Errorf("duration must be a string or a number, got %s", string(b))
	}
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// Config holds the configuration for the simulation
type Config struct {
	Rows           int      `json:"rows"`
	Cols           int      `json:"cols"`
	Interval       Duration `json:"interval"`
	Seed           int64    `json:"seed"`
	Workers        int      `json:"workers"`
	MaxGenerations int      `json:"max_generations"`
	View           string   `json:"view"`
	Template       string   `json:"template"`
	Scale          int      `json:"scale"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Rows:     15,
		Cols:     40,
		Interval: Duration(scheduler.DefInterval),
		View:     ViewConsole,
		Scale:    12,
	}
}

// GridSizes is the fixed menu of row and column counts a grid can be created with.
func GridSizes() []int {
	sizes := make([]int, 0, MaxGridSize-MinGridSize+1)
	for i := MinGridSize; i <= MaxGridSize; i++ {
		sizes = append(sizes, i)
	}
	return sizes
}

// LoadConfig loads configuration from JSON file on top of the defaults
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

// Validate checks the grid size against the menu, the view name and the interval.
func (c Config) Validate() error {
	if c.Rows < MinGridSize || c.Rows > MaxGridSize || c.Cols < MinGridSize || c.Cols > MaxGridSize {
		return errors.Wrapf(generation.ErrInvalidDimension, "%dx%d, pick %d - %d", c.Rows, c.Cols, MinGridSize, MaxGridSize)
	}
	if c.Interval <= 0 {
		return errors.Wrapf(ErrInvalidInterval, "%v", time.Duration(c.Interval))
	}
	for _, v := range Views {
		if c.View == v {
			return nil
		}
	}
	return errors.Wrapf(ErrInvalidView, "%q, use one of [%s]", c.View, strings.Join(Views, "|"))
}

// SchedulerOptions converts the config to scheduler options.
func (c Config) SchedulerOptions() *scheduler.Options {
	return &scheduler.Options{
		Interval:       time.Duration(c.Interval),
		Seed:           c.Seed,
		Workers:        c.Workers,
		MaxGenerations: c.MaxGenerations,
	}
}
