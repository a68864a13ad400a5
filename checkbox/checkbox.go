// Package checkbox is the headless checkbox engine.
//
// The engine never stores a checked flag. Checked-ness is the host-owned
// retained.Checked marker; a valid activation emits ToggleChecked and the host
// flips its own state. SetChecked is the imperative variant a host sends for
// bulk operations such as "select all".
package checkbox

import (
	"github.com/agiangrant/corewidgets/internal/activation"
	"github.com/agiangrant/corewidgets/retained"
)

// Checkbox is the engine component attached to checkbox entities.
type Checkbox struct {
	activation.State
}

// ToggleChecked asks the host to flip the checkbox's checked state.
type ToggleChecked struct{}

func (ToggleChecked) IntentName() string { return "ToggleChecked" }

// SetChecked asks the host to set the checkbox's checked state.
type SetChecked struct {
	Checked bool
}

func (SetChecked) IntentName() string { return "SetChecked" }

// New spawns a focusable checkbox entity under parent.
func New(w *retained.World, parent retained.Entity) retained.Entity {
	e := w.Spawn(parent)
	Attach(w, e)
	return e
}

// Attach turns an existing entity into a checkbox.
func Attach(w *retained.World, e retained.Entity) {
	retained.Insert(w, e, &Checkbox{})
	w.SetFocusable(e, true)
}

// Of returns the checkbox component of e.
func Of(w *retained.World, e retained.Entity) (*Checkbox, bool) {
	return retained.Get[*Checkbox](w, e)
}

// IsChecked reports the host-owned checked state of e.
func IsChecked(w *retained.World, e retained.Entity) bool {
	return retained.Has[retained.Checked](w, e)
}

// Set emits SetChecked(checked) when it differs from the host-reported state.
// Disabled checkboxes emit nothing. It reports whether an intent was emitted.
func Set(app *retained.App, e retained.Entity, checked bool) bool {
	if _, ok := Of(app.World, e); !ok || app.World.Disabled(e) {
		return false
	}
	if IsChecked(app.World, e) == checked {
		return false
	}
	app.Emit(e, SetChecked{Checked: checked})
	return true
}

// Toggle emits ToggleChecked for an enabled checkbox without pointer or key input.
func Toggle(app *retained.App, e retained.Entity) bool {
	if _, ok := Of(app.World, e); !ok || app.World.Disabled(e) {
		return false
	}
	app.Emit(e, ToggleChecked{})
	return true
}

// Plugin registers the checkbox engine.
type Plugin struct {
	// Keys overrides the activation keys (default Enter and Space).
	Keys []retained.Key
}

func (Plugin) Name() string { return "corewidgets/checkbox" }

func (p Plugin) Build(app *retained.App) {
	activation.Install(app, activation.Behavior{
		Kind: "checkbox",
		Lookup: func(w *retained.World, e retained.Entity) (*activation.State, bool) {
			c, ok := Of(w, e)
			if !ok {
				return nil, false
			}
			return &c.State, true
		},
		Activate: func(app *retained.App, e retained.Entity) {
			app.Emit(e, ToggleChecked{})
		},
		Keys: p.Keys,
	})
}
