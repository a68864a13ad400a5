// Package host is a reference host for the core widgets: it applies every
// intent the engines emit to host-owned components, the way an application
// would apply them to its own state. Tests, the scene runner and the replay
// tool use it; real applications usually write their own handlers.
package host

import (
	"github.com/agiangrant/corewidgets/button"
	"github.com/agiangrant/corewidgets/checkbox"
	"github.com/agiangrant/corewidgets/radio"
	"github.com/agiangrant/corewidgets/retained"
	"github.com/agiangrant/corewidgets/slider"
)

// Record is one intent observed by the host, in emission order.
type Record struct {
	Source retained.Entity
	Intent retained.Intent
}

// State is the reference host's bookkeeping.
type State struct {
	// Activations counts Activate intents per button.
	Activations map[retained.Entity]int
	// Log holds every intent in the order it was delivered.
	Log []Record
}

// Install registers the reference handlers with app.
func Install(app *retained.App) *State {
	s := &State{Activations: make(map[retained.Entity]int)}

	retained.Listen(app, func(app *retained.App, src retained.Entity, in retained.Intent) {
		s.Log = append(s.Log, Record{Source: src, Intent: in})
	})
	retained.Listen(app, func(app *retained.App, src retained.Entity, _ button.Activate) {
		s.Activations[src]++
	})
	retained.Listen(app, func(app *retained.App, src retained.Entity, _ checkbox.ToggleChecked) {
		setChecked(app.World, src, !checkbox.IsChecked(app.World, src))
	})
	retained.Listen(app, func(app *retained.App, src retained.Entity, in checkbox.SetChecked) {
		setChecked(app.World, src, in.Checked)
	})
	retained.Listen(app, func(app *retained.App, _ retained.Entity, in radio.SelectItem) {
		selectItem(app.World, in.Group, in.Item)
	})
	retained.Listen(app, func(app *retained.App, src retained.Entity, in slider.SetSliderValue) {
		retained.Insert(app.World, src, slider.Value(in.Value))
	})
	return s
}

func setChecked(w *retained.World, e retained.Entity, checked bool) {
	if checked {
		retained.Insert(w, e, retained.Checked{})
	} else {
		retained.Remove[retained.Checked](w, e)
	}
}

// selectItem marks item selected and every other member of group unselected.
func selectItem(w *retained.World, group, item retained.Entity) {
	if g, ok := radio.GroupOf(w, group); ok {
		for _, e := range g.Items() {
			if e != item {
				retained.Remove[retained.Checked](w, e)
			}
		}
	}
	retained.Insert(w, item, retained.Checked{})
}

// Intents returns the logged intents of type T in order.
func Intents[T retained.Intent](s *State) []T {
	var out []T
	for _, r := range s.Log {
		if v, ok := r.Intent.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

// Reset clears the log and activation counts.
func (s *State) Reset() {
	s.Log = nil
	s.Activations = make(map[retained.Entity]int)
}
