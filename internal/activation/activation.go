// Package activation is the press/hover/focus state machine shared by the
// button-like engines: button, checkbox and radio item. A widget is activated
// by a primary-button press and release inside its bounds, or by an
// activation key while it holds focus.
package activation

import (
	"github.com/agiangrant/corewidgets/internal/logging"
	"github.com/agiangrant/corewidgets/retained"
)

// DefaultKeys are the activation keys used when a plugin configures none.
var DefaultKeys = []retained.Key{retained.KeyEnter, retained.KeySpace}

// State is the transient interaction state of one button-like widget.
// The zero value is idle.
type State struct {
	hovers  map[retained.PointerID]struct{}
	pressed bool
	focused bool
	pointer retained.PointerID
}

// Hovered reports whether any pointer is over the widget.
func (s *State) Hovered() bool { return len(s.hovers) > 0 }

func (s *State) setHover(id retained.PointerID, over bool) {
	if !over {
		delete(s.hovers, id)
		return
	}
	if s.hovers == nil {
		s.hovers = make(map[retained.PointerID]struct{}, 1)
	}
	s.hovers[id] = struct{}{}
}

// Cancel drops any press in progress, releasing its pointer capture, and
// clears hover. No activation is emitted.
func (s *State) Cancel(app *retained.App, e retained.Entity) {
	if s.pressed {
		app.Dispatcher.ReleaseCapture(s.pointer, e)
		s.pressed = false
	}
	clear(s.hovers)
}

// Pressed reports whether a press is in progress.
func (s *State) Pressed() bool { return s.pressed }

// Focused reports whether the widget holds keyboard focus.
func (s *State) Focused() bool { return s.focused }

// Behavior wires the state machine to one widget kind.
type Behavior struct {
	// Kind names the widget kind in log messages.
	Kind string

	// Lookup returns the state of e if e is a widget of this kind.
	Lookup func(w *retained.World, e retained.Entity) (*State, bool)

	// Activate runs once per valid activation of an enabled widget.
	Activate func(app *retained.App, e retained.Entity)

	// Keys are the activation keys. Empty means DefaultKeys.
	Keys []retained.Key

	// Gate, when set, must also report true for the widget to react. It runs
	// in addition to the widget's own disabled flag.
	Gate func(w *retained.World, e retained.Entity) bool
}

func (b *Behavior) isKey(k retained.Key) bool {
	keys := b.Keys
	if len(keys) == 0 {
		keys = DefaultKeys
	}
	for _, key := range keys {
		if key == k {
			return true
		}
	}
	return false
}

// Install registers the behavior's observers with app.
func Install(app *retained.App, b Behavior) {
	app.OnPointer(retained.EventPointerEnter, b.onEnter)
	app.OnPointer(retained.EventPointerLeave, b.onLeave)
	app.OnPointer(retained.EventPointerDown, b.onDown)
	app.OnPointer(retained.EventPointerUp, b.onUp)
	app.OnPointer(retained.EventPointerCancel, b.onCancel)
	app.OnKey(retained.EventKeyDown, b.onKeyDown)
	app.OnFocus(retained.EventFocus, b.onFocus)
	app.OnFocus(retained.EventBlur, b.onBlur)
	app.OnDisabled(b.onDisabled)
}

// interactive reports whether e is enabled and passes the gate.
func (b *Behavior) interactive(w *retained.World, e retained.Entity) bool {
	if w.Disabled(e) {
		return false
	}
	return b.Gate == nil || b.Gate(w, e)
}

// enabled returns the state of the current target when it is an enabled widget of this kind.
func (b *Behavior) enabled(app *retained.App, e retained.Entity) (*State, bool) {
	st, ok := b.Lookup(app.World, e)
	if !ok || !b.interactive(app.World, e) {
		return nil, false
	}
	return st, true
}

func (b *Behavior) onEnter(app *retained.App, ev *retained.PointerEvent) {
	if st, ok := b.enabled(app, ev.CurrentTarget()); ok {
		st.setHover(ev.Pointer, true)
	}
}

func (b *Behavior) onLeave(app *retained.App, ev *retained.PointerEvent) {
	if st, ok := b.Lookup(app.World, ev.CurrentTarget()); ok {
		st.setHover(ev.Pointer, false)
	}
}

func (b *Behavior) onDown(app *retained.App, ev *retained.PointerEvent) {
	e := ev.CurrentTarget()
	st, ok := b.Lookup(app.World, e)
	if !ok {
		return
	}
	// A widget consumes presses on itself even when disabled so an
	// enclosing widget does not react to them.
	ev.StopPropagation()
	if !b.interactive(app.World, e) || ev.Button != retained.MouseButtonLeft || st.pressed {
		return
	}
	if !app.Dispatcher.Capture(ev.Pointer, e) {
		return
	}
	st.pressed = true
	st.pointer = ev.Pointer
}

func (b *Behavior) onUp(app *retained.App, ev *retained.PointerEvent) {
	e := ev.CurrentTarget()
	st, ok := b.Lookup(app.World, e)
	if !ok {
		return
	}
	ev.StopPropagation()
	if !st.pressed || st.pointer != ev.Pointer {
		if ev.Captured {
			logging.Debugf("%s %s: release without a recorded press, ignoring", b.Kind, app.World.Name(e))
		}
		return
	}
	st.pressed = false
	app.Dispatcher.ReleaseCapture(ev.Pointer, e)

	inside := app.World.Contains(e, ev.X, ev.Y)
	st.setHover(ev.Pointer, inside)
	if inside && b.interactive(app.World, e) {
		b.Activate(app, e)
	}
}

func (b *Behavior) onCancel(app *retained.App, ev *retained.PointerEvent) {
	e := ev.CurrentTarget()
	st, ok := b.Lookup(app.World, e)
	if !ok || !st.pressed || st.pointer != ev.Pointer {
		return
	}
	ev.StopPropagation()
	st.pressed = false
	st.setHover(ev.Pointer, false)
	app.Dispatcher.ReleaseCapture(ev.Pointer, e)
}

func (b *Behavior) onKeyDown(app *retained.App, ev *retained.KeyEvent) {
	e := ev.CurrentTarget()
	if _, ok := b.enabled(app, e); !ok || ev.Repeat || !b.isKey(ev.Key) {
		return
	}
	ev.StopPropagation()
	b.Activate(app, e)
}

func (b *Behavior) onFocus(app *retained.App, ev *retained.FocusEvent) {
	if st, ok := b.Lookup(app.World, ev.CurrentTarget()); ok {
		st.focused = true
	}
}

func (b *Behavior) onBlur(app *retained.App, ev *retained.FocusEvent) {
	if st, ok := b.Lookup(app.World, ev.CurrentTarget()); ok {
		st.focused = false
	}
}

func (b *Behavior) onDisabled(app *retained.App, ev *retained.DisabledEvent) {
	e := ev.CurrentTarget()
	st, ok := b.Lookup(app.World, e)
	if !ok || !ev.Disabled {
		return
	}
	st.Cancel(app, e)
}
