// Package button is the headless button engine. It turns a complete
// press-release cycle inside the button, or an activation key on the focused
// button, into exactly one Activate intent.
//
// Example:
//
//	app := retained.NewApp().AddPlugins(button.Plugin{})
//	ok := button.New(app.World, retained.Nil)
//	app.World.SetBounds(ok, retained.Bounds{Width: 80, Height: 24})
//	retained.ListenOn(app, ok, func(app *retained.App, src retained.Entity, _ button.Activate) {
//	    save()
//	})
package button

import (
	"github.com/agiangrant/corewidgets/internal/activation"
	"github.com/agiangrant/corewidgets/retained"
)

// Button is the engine component attached to button entities. It holds only
// transient interaction state; see Hovered, Pressed and Focused.
type Button struct {
	activation.State
}

// Activate is emitted by a button each time it is activated.
type Activate struct{}

func (Activate) IntentName() string { return "Activate" }

// New spawns a focusable button entity under parent.
func New(w *retained.World, parent retained.Entity) retained.Entity {
	e := w.Spawn(parent)
	Attach(w, e)
	return e
}

// Attach turns an existing entity into a button, resetting its interaction state.
func Attach(w *retained.World, e retained.Entity) {
	retained.Insert(w, e, &Button{})
	w.SetFocusable(e, true)
}

// Of returns the button component of e.
func Of(w *retained.World, e retained.Entity) (*Button, bool) {
	return retained.Get[*Button](w, e)
}

// Press activates an enabled button without pointer or key input.
func Press(app *retained.App, e retained.Entity) bool {
	if _, ok := Of(app.World, e); !ok || app.World.Disabled(e) {
		return false
	}
	app.Emit(e, Activate{})
	return true
}

// Plugin registers the button engine.
type Plugin struct {
	// Keys overrides the activation keys (default Enter and Space).
	Keys []retained.Key
}

func (Plugin) Name() string { return "corewidgets/button" }

func (p Plugin) Build(app *retained.App) {
	activation.Install(app, activation.Behavior{
		Kind: "button",
		Lookup: func(w *retained.World, e retained.Entity) (*activation.State, bool) {
			b, ok := Of(w, e)
			if !ok {
				return nil, false
			}
			return &b.State, true
		},
		Activate: func(app *retained.App, e retained.Entity) {
			app.Emit(e, Activate{})
		},
		Keys: p.Keys,
	})
}
