// Package retained is the host-side runtime the headless widget engines plug
// into: an arena of widget records addressed by stable entity handles, typed
// component storage, input events, the event dispatcher with hover, focus and
// pointer capture, and the intent bus the engines emit change requests on.
//
// The runtime is single-threaded. Input is dispatched synchronously on the
// host's event goroutine and every handler runs to completion before the next
// input event is processed.
package retained

import (
	"fmt"
	"reflect"
	"sync"
)

// Entity is a stable handle to a widget record in a World.
// The zero Entity is never alive.
type Entity struct {
	index      uint32
	generation uint32
}

// Nil is the zero entity handle.
var Nil Entity

// IsNil reports whether e is the zero handle.
func (e Entity) IsNil() bool { return e == Nil }

func (e Entity) String() string {
	if e.IsNil() {
		return "entity(nil)"
	}
	return fmt.Sprintf("entity(%d:%d)", e.index, e.generation)
}

// Bounds represents the screen-space bounding box of a widget.
// The host updates bounds after layout; hit testing reads them.
type Bounds struct {
	X, Y          float64 // Top-left corner in screen coordinates
	Width, Height float64
}

// Contains checks if a point is within the bounds.
func (b Bounds) Contains(x, y float64) bool {
	return x >= b.X && x < b.X+b.Width &&
		y >= b.Y && y < b.Y+b.Height
}

// Checked is the host-owned marker for checked checkboxes and selected radio
// items. The engines only read it; the host inserts and removes it.
type Checked struct{}

// record is one slot of the widget arena.
type record struct {
	generation uint32
	alive      bool

	name      string
	parent    Entity
	children  []Entity
	bounds    Bounds
	disabled  bool
	focusable bool
}

// World is the arena of widget records plus their components.
type World struct {
	mu sync.RWMutex

	records    []record
	free       []uint32
	roots      []Entity
	components map[reflect.Type]map[Entity]any
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{
		// slot 0 stays unused so the zero Entity is never alive
		records:    make([]record, 1, 64),
		components: make(map[reflect.Type]map[Entity]any),
	}
}

// Spawn creates a new widget record. A nil parent creates a root.
func (w *World) Spawn(parent Entity) Entity {
	w.mu.Lock()
	defer w.mu.Unlock()

	var e Entity
	if n := len(w.free); n > 0 {
		idx := w.free[n-1]
		w.free = w.free[:n-1]
		r := &w.records[idx]
		r.generation++
		*r = record{generation: r.generation, alive: true}
		e = Entity{index: idx, generation: r.generation}
	} else {
		idx := uint32(len(w.records))
		w.records = append(w.records, record{generation: 1, alive: true})
		e = Entity{index: idx, generation: 1}
	}

	if pr := w.lookup(parent); pr != nil {
		w.records[e.index].parent = parent
		pr.children = append(pr.children, e)
	} else {
		w.roots = append(w.roots, e)
	}
	return e
}

// Despawn removes e, its descendants and all of their components.
func (w *World) Despawn(e Entity) {
	w.mu.Lock()
	defer w.mu.Unlock()

	r := w.lookup(e)
	if r == nil {
		return
	}
	if pr := w.lookup(r.parent); pr != nil {
		pr.children = removeEntity(pr.children, e)
	} else {
		w.roots = removeEntity(w.roots, e)
	}
	w.despawnLocked(e)
}

func (w *World) despawnLocked(e Entity) {
	r := w.lookup(e)
	if r == nil {
		return
	}
	for _, c := range r.children {
		w.despawnLocked(c)
	}
	for _, store := range w.components {
		delete(store, e)
	}
	r.alive = false
	r.children = nil
	w.free = append(w.free, e.index)
}

func removeEntity(list []Entity, e Entity) []Entity {
	for i, c := range list {
		if c == e {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

// lookup returns the live record for e or nil. Callers hold mu.
func (w *World) lookup(e Entity) *record {
	if e.IsNil() || int(e.index) >= len(w.records) {
		return nil
	}
	r := &w.records[e.index]
	if !r.alive || r.generation != e.generation {
		return nil
	}
	return r
}

// Alive reports whether e refers to a live record.
func (w *World) Alive(e Entity) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.lookup(e) != nil
}

// Parent returns the parent of e, or Nil for roots and stale handles.
func (w *World) Parent(e Entity) Entity {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if r := w.lookup(e); r != nil {
		return r.parent
	}
	return Nil
}

// Children returns a copy of e's children in insertion order.
func (w *World) Children(e Entity) []Entity {
	w.mu.RLock()
	defer w.mu.RUnlock()
	r := w.lookup(e)
	if r == nil {
		return nil
	}
	out := make([]Entity, len(r.children))
	copy(out, r.children)
	return out
}

// Roots returns a copy of the root entities in insertion order.
func (w *World) Roots() []Entity {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]Entity, len(w.roots))
	copy(out, w.roots)
	return out
}

// Descendants returns every descendant of e in depth-first order.
func (w *World) Descendants(e Entity) []Entity {
	w.mu.RLock()
	defer w.mu.RUnlock()
	var out []Entity
	var walk func(Entity)
	walk = func(p Entity) {
		r := w.lookup(p)
		if r == nil {
			return
		}
		for _, c := range r.children {
			out = append(out, c)
			walk(c)
		}
	}
	walk(e)
	return out
}

// SetName attaches a debug name to e.
func (w *World) SetName(e Entity, name string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if r := w.lookup(e); r != nil {
		r.name = name
	}
}

// Name returns the debug name of e, or its handle string when unnamed.
func (w *World) Name(e Entity) string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if r := w.lookup(e); r != nil && r.name != "" {
		return r.name
	}
	return e.String()
}

// SetBounds stores the screen-space bounds of e.
func (w *World) SetBounds(e Entity, b Bounds) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if r := w.lookup(e); r != nil {
		r.bounds = b
	}
}

// Bounds returns the screen-space bounds of e.
func (w *World) Bounds(e Entity) Bounds {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if r := w.lookup(e); r != nil {
		return r.bounds
	}
	return Bounds{}
}

// Contains reports whether the screen point lies inside e's bounds.
func (w *World) Contains(e Entity, x, y float64) bool {
	return w.Alive(e) && w.Bounds(e).Contains(x, y)
}

// Disabled reports whether e is disabled. Stale handles report false.
// Use App.SetDisabled to change it so engines observe the transition.
func (w *World) Disabled(e Entity) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if r := w.lookup(e); r != nil {
		return r.disabled
	}
	return false
}

// setDisabled stores the flag and reports whether it changed.
func (w *World) setDisabled(e Entity, disabled bool) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	r := w.lookup(e)
	if r == nil || r.disabled == disabled {
		return false
	}
	r.disabled = disabled
	return true
}

// SetFocusable marks e as able to take keyboard focus.
func (w *World) SetFocusable(e Entity, focusable bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if r := w.lookup(e); r != nil {
		r.focusable = focusable
	}
}

// Focusable reports whether e can take keyboard focus.
func (w *World) Focusable(e Entity) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if r := w.lookup(e); r != nil {
		return r.focusable
	}
	return false
}

// ============================================================================
// Component Storage
// ============================================================================

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Insert attaches (or replaces) component c on e. Stale handles are ignored.
func Insert[T any](w *World, e Entity, c T) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.lookup(e) == nil {
		return
	}
	t := typeOf[T]()
	store := w.components[t]
	if store == nil {
		store = make(map[Entity]any)
		w.components[t] = store
	}
	store[e] = c
}

// Get returns e's component of type T.
func Get[T any](w *World, e Entity) (T, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	var zero T
	if w.lookup(e) == nil {
		return zero, false
	}
	v, ok := w.components[typeOf[T]()][e]
	if !ok {
		return zero, false
	}
	return v.(T), true
}

// Has reports whether e carries a component of type T.
func Has[T any](w *World, e Entity) bool {
	_, ok := Get[T](w, e)
	return ok
}

// Remove detaches e's component of type T.
func Remove[T any](w *World, e Entity) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.components[typeOf[T]()], e)
}

// Query returns every live entity carrying a component of type T.
// The order is unspecified.
func Query[T any](w *World) []Entity {
	w.mu.RLock()
	defer w.mu.RUnlock()
	store := w.components[typeOf[T]()]
	out := make([]Entity, 0, len(store))
	for e := range store {
		if w.lookup(e) != nil {
			out = append(out, e)
		}
	}
	return out
}
