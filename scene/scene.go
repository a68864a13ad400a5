// Package scene loads declarative widget scenes from TOML or YAML files and
// builds them into a populated App. A scene may also carry a script of input
// steps, which Run replays against the built App.
//
// Example scene (TOML):
//
//	[settings]
//	activation_keys = ["Enter", "Space"]
//
//	[[widget]]
//	name = "volume"
//	kind = "slider"
//	bounds = [0, 0, 110, 20]
//	range = [0, 100]
//	step = 10
//	value = 20
//
//	[[widget]]
//	name = "volume-thumb"
//	kind = "thumb"
//	parent = "volume"
//	bounds = [20, 0, 10, 20]
//
//	[[step]]
//	action = "down"
//	x = 25
//	y = 10
package scene

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/agiangrant/corewidgets/slider"
)

// Format is a scene file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

var (
	// ErrUnknownFormat is returned for file extensions other than .toml, .yaml and .yml.
	ErrUnknownFormat = errors.New("scene: unknown format")
	// ErrInvalid wraps every validation failure.
	ErrInvalid = errors.New("scene: invalid scene")
)

// Widget kinds understood by Build.
const (
	KindContainer  = "container"
	KindButton     = "button"
	KindCheckbox   = "checkbox"
	KindRadioGroup = "radio_group"
	KindRadio      = "radio"
	KindSlider     = "slider"
	KindThumb      = "thumb"
)

// Settings are scene-wide options.
type Settings struct {
	// ActivationKeys overrides the keys that activate buttons, checkboxes and radio items.
	ActivationKeys []string `toml:"activation_keys" yaml:"activation_keys"`
}

// Widget declares one entity. Parents, groups and sliders must be declared
// before the widgets that reference them.
type Widget struct {
	Name        string    `toml:"name" yaml:"name"`
	Kind        string    `toml:"kind" yaml:"kind"`
	Parent      string    `toml:"parent" yaml:"parent"`
	Group       string    `toml:"group" yaml:"group"`
	Bounds      []float64 `toml:"bounds" yaml:"bounds"` // x, y, width, height
	Disabled    bool      `toml:"disabled" yaml:"disabled"`
	Focusable   *bool     `toml:"focusable" yaml:"focusable"`
	Checked     bool      `toml:"checked" yaml:"checked"`
	Range       []float64 `toml:"range" yaml:"range"` // min, max
	Step        float64   `toml:"step" yaml:"step"`
	Value       *float64  `toml:"value" yaml:"value"`
	TrackClick  string    `toml:"track_click" yaml:"track_click"`
	Orientation string    `toml:"orientation" yaml:"orientation"`
}

// Step is one scripted input.
type Step struct {
	// Action is one of move, down, up, click, cancel, key, focus, blur,
	// disable, enable, check, uncheck.
	Action  string  `toml:"action" yaml:"action"`
	X       float64 `toml:"x" yaml:"x"`
	Y       float64 `toml:"y" yaml:"y"`
	Pointer int     `toml:"pointer" yaml:"pointer"`
	Key     string  `toml:"key" yaml:"key"`
	Repeat  bool    `toml:"repeat" yaml:"repeat"`
	Target  string  `toml:"target" yaml:"target"`
}

// Scene is a decoded scene file.
type Scene struct {
	Settings Settings `toml:"settings" yaml:"settings"`
	Widgets  []Widget `toml:"widget" yaml:"widget"`
	Steps    []Step   `toml:"step" yaml:"step"`
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

// Load reads, decodes and validates the scene at path.
func Load(path string) (*Scene, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene %s: %w", path, err)
	}
	s, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Decode parses and validates a scene. Unknown fields are rejected.
func Decode(data []byte, format Format) (*Scene, error) {
	var s Scene
	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&s); err != nil {
			return nil, fmt.Errorf("decode toml: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&s); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks references, kinds and numeric settings.
func (s *Scene) Validate() error {
	kinds := make(map[string]string, len(s.Widgets))
	for i, w := range s.Widgets {
		where := fmt.Sprintf("widget %d (%s)", i, w.Name)
		if w.Name == "" {
			return fmt.Errorf("%w: widget %d has no name", ErrInvalid, i)
		}
		if _, dup := kinds[w.Name]; dup {
			return fmt.Errorf("%w: %s: duplicate name", ErrInvalid, where)
		}
		switch w.Kind {
		case KindContainer, KindButton, KindCheckbox, KindRadioGroup, KindRadio, KindSlider, KindThumb:
		default:
			return fmt.Errorf("%w: %s: unknown kind %q", ErrInvalid, where, w.Kind)
		}
		if w.Parent != "" {
			if _, ok := kinds[w.Parent]; !ok {
				return fmt.Errorf("%w: %s: parent %q not declared before it", ErrInvalid, where, w.Parent)
			}
		}
		if w.Bounds != nil && len(w.Bounds) != 4 {
			return fmt.Errorf("%w: %s: bounds needs [x, y, width, height]", ErrInvalid, where)
		}
		switch w.Kind {
		case KindRadio:
			if w.Group == "" || kinds[w.Group] != KindRadioGroup {
				return fmt.Errorf("%w: %s: group %q is not a declared radio_group", ErrInvalid, where, w.Group)
			}
		case KindThumb:
			if kinds[w.Parent] != KindSlider {
				return fmt.Errorf("%w: %s: thumb parent must be a slider", ErrInvalid, where)
			}
		case KindSlider:
			if _, err := w.sliderConfig(); err != nil {
				return fmt.Errorf("%w: %s: %w", ErrInvalid, where, err)
			}
		}
		kinds[w.Name] = w.Kind
	}

	for i, st := range s.Steps {
		switch st.Action {
		case "move", "down", "up", "click", "cancel", "blur":
		case "key":
			if st.Key == "" {
				return fmt.Errorf("%w: step %d: key action needs a key", ErrInvalid, i)
			}
		case "focus", "disable", "enable", "check", "uncheck":
			if _, ok := kinds[st.Target]; !ok {
				return fmt.Errorf("%w: step %d: unknown target %q", ErrInvalid, i, st.Target)
			}
		default:
			return fmt.Errorf("%w: step %d: unknown action %q", ErrInvalid, i, st.Action)
		}
	}
	return nil
}

// sliderConfig builds the slider component a slider widget declares.
// Missing ranges default to [0, 1].
func (w Widget) sliderConfig() (slider.Slider, error) {
	cfg := slider.Slider{Range: slider.MustRange(0, 1), Step: w.Step}
	if w.Range != nil {
		if len(w.Range) != 2 {
			return cfg, fmt.Errorf("range needs [min, max]")
		}
		r, err := slider.NewRange(w.Range[0], w.Range[1])
		if err != nil {
			return cfg, err
		}
		cfg.Range = r
	}
	switch w.TrackClick {
	case "", "snap":
		cfg.TrackClick = slider.TrackClickSnap
	case "step":
		cfg.TrackClick = slider.TrackClickStep
	case "drag":
		cfg.TrackClick = slider.TrackClickDrag
	default:
		return cfg, fmt.Errorf("unknown track_click %q", w.TrackClick)
	}
	switch w.Orientation {
	case "", "horizontal":
		cfg.Orientation = slider.Horizontal
	case "vertical":
		cfg.Orientation = slider.Vertical
	default:
		return cfg, fmt.Errorf("unknown orientation %q", w.Orientation)
	}
	return cfg, nil
}
