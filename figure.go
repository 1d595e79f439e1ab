package bench

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Figure kinds.
const (
	BarFigure  = "bar"
	LineFigure = "line"
)

// Amount orders.
const (
	AlphaOrder = "alpha"
	NumOrder   = "num"
)

// Figure describes one chart of a report.
type Figure struct {
	Name        string   `json:"name"`             // output file name without extension
	Kind        string   `json:"kind,omitempty"`   // "bar" (default) or "line"
	Input       string   `json:"input,omitempty"`  // overrides Config.Input
	Actions     []string `json:"actions"`          // selected actions, in legend order
	Labels      []string `json:"labels,omitempty"` // legend text for each action
	XLabel      string   `json:"xlabel,omitempty"`
	YLabel      string   `json:"ylabel,omitempty"`
	LegendTitle string   `json:"legendTitle,omitempty"`
	Order       string   `json:"order,omitempty"` // "alpha" (default) or "num"
	ByAction    bool     `json:"byAction,omitempty"`
	Table       bool     `json:"table,omitempty"` // also write a LaTeX table
}

// Config is a report: a set of figures drawn from benchmark tables.
type Config struct {
	Input   string   `json:"input"`  // default input table
	Images  string   `json:"images"` // chart output directory
	Tables  string   `json:"tables"` // LaTeX table output directory
	Figures []Figure `json:"figures"`
}

// ReadConfig reads a JSON report configuration. Relative paths in the
// configuration are resolved against the directory of file.
func ReadConfig(file string) (*Config, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %v", file, err)
	}
	dir := filepath.Dir(file)
	cfg.Input = resolve(dir, cfg.Input)
	cfg.Images = resolve(dir, cfg.Images)
	cfg.Tables = resolve(dir, cfg.Tables)
	for i := range cfg.Figures {
		cfg.Figures[i].Input = resolve(dir, cfg.Figures[i].Input)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %v", file, err)
	}
	return &cfg, nil
}

func resolve(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

// Validate checks the configuration for errors.
func (cfg *Config) Validate() error {
	names := make(map[string]bool)
	for i := range cfg.Figures {
		f := &cfg.Figures[i]
		if err := f.Validate(); err != nil {
			return err
		}
		if names[f.Name] {
			return fmt.Errorf("duplicate figure %q", f.Name)
		}
		names[f.Name] = true
		if cfg.InputOf(f) == "" {
			return fmt.Errorf("figure %s: no input table", f.Name)
		}
	}
	return nil
}

// InputOf returns the input table of figure f.
func (cfg *Config) InputOf(f *Figure) string {
	if f.Input != "" {
		return f.Input
	}
	return cfg.Input
}

// Figure returns the figure with the given name.
func (cfg *Config) Figure(name string) (*Figure, bool) {
	for i := range cfg.Figures {
		if cfg.Figures[i].Name == name {
			return &cfg.Figures[i], true
		}
	}
	return nil, false
}

// Validate checks the figure for errors.
func (f *Figure) Validate() error {
	if f.Name == "" {
		return errors.New("figure without name")
	}
	switch f.Kind {
	case "", BarFigure, LineFigure:
	default:
		return fmt.Errorf("figure %s: unknown kind %q", f.Name, f.Kind)
	}
	switch f.Order {
	case "", AlphaOrder, NumOrder:
	default:
		return fmt.Errorf("figure %s: unknown order %q", f.Name, f.Order)
	}
	if len(f.Actions) == 0 {
		return fmt.Errorf("figure %s: no actions", f.Name)
	}
	if len(f.Labels) > 0 && len(f.Labels) != len(f.Actions) {
		return fmt.Errorf("figure %s: have %d labels for %d actions", f.Name, len(f.Labels), len(f.Actions))
	}
	return nil
}

// SortOrder returns the row order used by the figure.
func (f *Figure) SortOrder() SortOrder {
	return SortOrder{Numeric: f.Order == NumOrder, ByAction: f.ByAction}
}

// Label returns the legend text of the i'th action.
func (f *Figure) Label(i int) string {
	if i < len(f.Labels) {
		return f.Labels[i]
	}
	return f.Actions[i]
}

// Rows splits ms and selects the figure's actions. It returns an
// *EmptySelectionError if no row matches.
func (f *Figure) Rows(ms []Measurement) ([]Row, error) {
	rows, err := Split(ms)
	if err != nil {
		return nil, err
	}
	sel := Select(rows, f.Actions, f.SortOrder())
	if len(sel) == 0 {
		return nil, &EmptySelectionError{Figure: f.Name, Actions: f.Actions}
	}
	return sel, nil
}
