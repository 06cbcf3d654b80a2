package brainmap

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// Options configures a Diagram. The zero value works: New fills in defaults
// for every unset field. Distances are in logical canvas units.
type Options struct {
	// Width and Height are the logical canvas size the layout is computed
	// in, independent of the on-screen surface size.
	Width  float64
	Height float64

	// RadiusStep is the distance between successive depth rings.
	RadiusStep float64

	// NodeRadius is the draw/hit radius of a node bubble.
	NodeRadius float64

	// ReadOnly disables every mutation, menu and inline-edit entry point.
	// Pan and zoom stay available.
	ReadOnly bool

	// MinZoom and MaxZoom bound the viewport zoom factor.
	MinZoom float64
	MaxZoom float64

	// ZoomStep is the zoom factor applied per wheel tick (> 1).
	ZoomStep float64

	// LongPressDelay is how long a touch must stay put to open the menu.
	LongPressDelay time.Duration

	// TapWindow bounds both a single tap's duration and the gap between the
	// two taps of a double tap.
	TapWindow time.Duration

	// MoveTolerance is the movement allowed before a pending tap or
	// long-press turns into a drag.
	MoveTolerance float64
}

// DefaultOptions returns the standard configuration.
func DefaultOptions() Options {
	return Options{}.withDefaults()
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = 800
	}
	if o.Height <= 0 {
		o.Height = 800
	}
	if o.RadiusStep <= 0 {
		o.RadiusStep = 120
	}
	if o.NodeRadius <= 0 {
		o.NodeRadius = 28
	}
	if o.MinZoom <= 0 {
		o.MinZoom = 0.1
	}
	if o.MaxZoom <= 0 {
		o.MaxZoom = 5
	}
	if o.ZoomStep <= 1 {
		o.ZoomStep = 1.1
	}
	if o.LongPressDelay <= 0 {
		o.LongPressDelay = 600 * time.Millisecond
	}
	if o.TapWindow <= 0 {
		o.TapWindow = 400 * time.Millisecond
	}
	if o.MoveTolerance <= 0 {
		o.MoveTolerance = 15
	}
	return o
}

// optionsFile is the on-disk TOML shape. Durations are plain milliseconds so
// the file stays hand-editable.
type optionsFile struct {
	Width         float64 `toml:"width"`
	Height        float64 `toml:"height"`
	RadiusStep    float64 `toml:"radius_step"`
	NodeRadius    float64 `toml:"node_radius"`
	ReadOnly      bool    `toml:"read_only"`
	MinZoom       float64 `toml:"min_zoom"`
	MaxZoom       float64 `toml:"max_zoom"`
	ZoomStep      float64 `toml:"zoom_step"`
	LongPressMS   int     `toml:"long_press_ms"`
	TapWindowMS   int     `toml:"tap_window_ms"`
	MoveTolerance float64 `toml:"move_tolerance"`
}

// LoadOptions reads options from a TOML file. Keys missing from the file
// keep their defaults.
func LoadOptions(path string) (Options, error) {
	var f optionsFile
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return Options{}, fmt.Errorf("brainmap: load options: %w", err)
	}
	o := Options{
		Width:          f.Width,
		Height:         f.Height,
		RadiusStep:     f.RadiusStep,
		NodeRadius:     f.NodeRadius,
		ReadOnly:       f.ReadOnly,
		MinZoom:        f.MinZoom,
		MaxZoom:        f.MaxZoom,
		ZoomStep:       f.ZoomStep,
		LongPressDelay: time.Duration(f.LongPressMS) * time.Millisecond,
		TapWindow:      time.Duration(f.TapWindowMS) * time.Millisecond,
		MoveTolerance:  f.MoveTolerance,
	}
	return o.withDefaults(), nil
}
