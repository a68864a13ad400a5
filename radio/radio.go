// Package radio is the headless radio group engine.
//
// A Group aggregates Item entities. Activating an item emits exactly one
// SelectItem on the group; the engine never emits deselect events and never
// decides which siblings to clear. The host, as sole owner of the selection,
// applies "select X, clear the rest" in one handler.
package radio

import (
	"github.com/agiangrant/corewidgets/internal/activation"
	"github.com/agiangrant/corewidgets/internal/logging"
	"github.com/agiangrant/corewidgets/retained"
)

// Group is the engine component of a radio group entity.
type Group struct {
	items []retained.Entity
}

// Items returns the group's member items in join order.
func (g *Group) Items() []retained.Entity {
	out := make([]retained.Entity, len(g.items))
	copy(out, g.items)
	return out
}

// Item is the engine component of a radio item entity.
type Item struct {
	activation.State
	group retained.Entity
}

// Group returns the group the item belongs to, or retained.Nil.
func (i *Item) Group() retained.Entity { return i.group }

// SelectItem asks the host to make Item the selected item of Group.
type SelectItem struct {
	Group retained.Entity
	Item  retained.Entity
}

func (SelectItem) IntentName() string { return "SelectItem" }

// NewGroup spawns a focusable, empty radio group under parent.
func NewGroup(w *retained.World, parent retained.Entity) retained.Entity {
	e := w.Spawn(parent)
	retained.Insert(w, e, &Group{})
	w.SetFocusable(e, true)
	return e
}

// NewItem spawns a radio item under parent and joins it to group.
// The parent is usually the group itself but any ancestor layout works.
func NewItem(w *retained.World, parent, group retained.Entity) retained.Entity {
	e := w.Spawn(parent)
	retained.Insert(w, e, &Item{})
	w.SetFocusable(e, true)
	Join(w, group, e)
	return e
}

// GroupOf returns the group component of e.
func GroupOf(w *retained.World, e retained.Entity) (*Group, bool) {
	return retained.Get[*Group](w, e)
}

// ItemOf returns the item component of e.
func ItemOf(w *retained.World, e retained.Entity) (*Item, bool) {
	return retained.Get[*Item](w, e)
}

// Join adds item to group, leaving any previous group first.
// It reports false when either entity has the wrong component.
func Join(w *retained.World, group, item retained.Entity) bool {
	g, ok := GroupOf(w, group)
	if !ok {
		return false
	}
	it, ok := ItemOf(w, item)
	if !ok {
		return false
	}
	if it.group == group {
		return true
	}
	Leave(w, item)
	g.items = append(g.items, item)
	it.group = group
	return true
}

// Leave removes item from its group.
func Leave(w *retained.World, item retained.Entity) {
	it, ok := ItemOf(w, item)
	if !ok || it.group.IsNil() {
		return
	}
	if g, ok := GroupOf(w, it.group); ok {
		for i, e := range g.items {
			if e == item {
				g.items = append(g.items[:i:i], g.items[i+1:]...)
				break
			}
		}
	}
	it.group = retained.Nil
}

// Selected returns the first item of group the host marks as checked, or retained.Nil.
func Selected(w *retained.World, group retained.Entity) retained.Entity {
	g, ok := GroupOf(w, group)
	if !ok {
		return retained.Nil
	}
	for _, e := range g.items {
		if w.Alive(e) && retained.Has[retained.Checked](w, e) {
			return e
		}
	}
	return retained.Nil
}

// Select emits SelectItem for item without pointer or key input.
// Disabled items and items in disabled groups emit nothing.
func Select(app *retained.App, item retained.Entity) bool {
	if _, ok := ItemOf(app.World, item); !ok {
		return false
	}
	return activate(app, item)
}

func activate(app *retained.App, item retained.Entity) bool {
	w := app.World
	it, ok := ItemOf(w, item)
	if !ok || w.Disabled(item) {
		return false
	}
	group := it.group
	if _, ok := GroupOf(w, group); !ok {
		logging.Debugf("radio item %s has no group, ignoring activation", w.Name(item))
		return false
	}
	if w.Disabled(group) {
		return false
	}
	app.Emit(group, SelectItem{Group: group, Item: item})
	return true
}

// Plugin registers the radio group engine.
type Plugin struct {
	// Keys overrides the item activation keys (default Enter and Space).
	Keys []retained.Key
}

func (Plugin) Name() string { return "corewidgets/radio" }

func (p Plugin) Build(app *retained.App) {
	activation.Install(app, activation.Behavior{
		Kind: "radio item",
		Lookup: func(w *retained.World, e retained.Entity) (*activation.State, bool) {
			it, ok := ItemOf(w, e)
			if !ok {
				return nil, false
			}
			return &it.State, true
		},
		Activate: func(app *retained.App, e retained.Entity) {
			activate(app, e)
		},
		Keys: p.Keys,
		Gate: groupEnabled,
	})
	app.OnKey(retained.EventKeyDown, onGroupKey)
	app.OnDisabled(onGroupDisabled)
}

// groupEnabled reports whether the item's group, if any, is enabled.
func groupEnabled(w *retained.World, e retained.Entity) bool {
	it, ok := ItemOf(w, e)
	return !ok || !w.Disabled(it.group)
}

// onGroupDisabled cancels presses and hover on every member when a group is
// disabled, so a release after re-enabling cannot complete a stale press.
func onGroupDisabled(app *retained.App, ev *retained.DisabledEvent) {
	group := ev.CurrentTarget()
	g, ok := GroupOf(app.World, group)
	if !ok || !ev.Disabled {
		return
	}
	for _, e := range g.items {
		if it, ok := ItemOf(app.World, e); ok {
			it.State.Cancel(app, e)
		}
	}
}

// onGroupKey moves the selection with arrow keys, Home and End. Keys reach the
// group directly when it holds focus, or bubble up from a focused item.
func onGroupKey(app *retained.App, ev *retained.KeyEvent) {
	w := app.World
	group := ev.CurrentTarget()
	g, ok := GroupOf(w, group)
	if !ok || w.Disabled(group) {
		return
	}
	// A disabled item keeps focus but must not drive its group.
	if src := ev.Target(); src != group && w.Disabled(src) {
		return
	}
	switch ev.Key {
	case retained.KeyArrowUp, retained.KeyArrowLeft, retained.KeyArrowDown, retained.KeyArrowRight,
		retained.KeyHome, retained.KeyEnd:
	default:
		return
	}
	ev.StopPropagation()

	enabled := make([]retained.Entity, 0, len(g.items))
	current := -1
	for _, e := range g.items {
		if !w.Alive(e) || w.Disabled(e) {
			continue
		}
		if current < 0 && retained.Has[retained.Checked](w, e) {
			current = len(enabled)
		}
		enabled = append(enabled, e)
	}
	if len(enabled) == 0 {
		return
	}

	last := len(enabled) - 1
	next := current
	switch ev.Key {
	case retained.KeyArrowUp, retained.KeyArrowLeft:
		if current <= 0 {
			next = last
		} else {
			next = current - 1
		}
	case retained.KeyArrowDown, retained.KeyArrowRight:
		if current < 0 || current == last {
			next = 0
		} else {
			next = current + 1
		}
	case retained.KeyHome:
		next = 0
	case retained.KeyEnd:
		next = last
	}
	if next == current {
		return
	}
	item := enabled[next]
	app.Emit(group, SelectItem{Group: group, Item: item})
}
