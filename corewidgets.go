// Package corewidgets provides headless core widgets: button, checkbox, radio
// group and slider. The widgets have no styling or rendering; a styled layer
// draws them from the state the engines expose.
//
// # State Management
//
// The widgets use external state management: they do not update their own
// persistent state (checked, selected, value) but emit intent events that the
// host applies to its own state. This avoids two-way data binding when the UI
// shows a live view of data owned elsewhere in the application.
package corewidgets

import (
	"github.com/agiangrant/corewidgets/button"
	"github.com/agiangrant/corewidgets/checkbox"
	"github.com/agiangrant/corewidgets/radio"
	"github.com/agiangrant/corewidgets/retained"
	"github.com/agiangrant/corewidgets/slider"
)

// Re-exports of the widget components and intents for consumer convenience.
type (
	Button = button.Button
	// Activate is emitted when a button is activated.
	Activate = button.Activate

	Checkbox      = checkbox.Checkbox
	ToggleChecked = checkbox.ToggleChecked
	SetChecked    = checkbox.SetChecked

	RadioGroup = radio.Group
	RadioItem  = radio.Item
	SelectItem = radio.SelectItem

	Slider         = slider.Slider
	SliderRange    = slider.Range
	SliderValue    = slider.Value
	SliderThumb    = slider.Thumb
	SetSliderValue = slider.SetSliderValue
	TrackClick     = slider.TrackClick
)

// Plugin registers the engines of all core widgets. To use only some of the
// widgets, add the individual engine plugins instead.
type Plugin struct {
	// Keys overrides the activation keys of buttons, checkboxes and radio items.
	Keys []retained.Key
}

func (Plugin) Name() string { return "corewidgets" }

func (p Plugin) Build(app *retained.App) {
	app.AddPlugins(
		button.Plugin{Keys: p.Keys},
		checkbox.Plugin{Keys: p.Keys},
		radio.Plugin{Keys: p.Keys},
		slider.Plugin{},
	)
}

// NewApp returns an App with every core widget engine registered.
func NewApp() *retained.App {
	return retained.NewApp().AddPlugins(Plugin{})
}
