package retained

import "github.com/agiangrant/corewidgets/internal/logging"

// ============================================================================
// Event Dispatcher
// ============================================================================

// EventDispatcher handles event routing, hit testing, and state management.
// It tracks hover chains, focus and pointer capture, and delivers events to
// the registered observers along the target-to-root path.
type EventDispatcher struct {
	app *App

	hoveredChains map[PointerID][]Entity // root to deepest, per pointer
	captures      map[PointerID]Entity   // pointer -> capturing entity
	focused       Entity
}

// NewEventDispatcher creates an event dispatcher for the given app.
func NewEventDispatcher(app *App) *EventDispatcher {
	return &EventDispatcher{
		app:           app,
		hoveredChains: make(map[PointerID][]Entity),
		captures:      make(map[PointerID]Entity),
	}
}

// ============================================================================
// Hit Testing
// ============================================================================

// HitTestResult contains the result of a hit test.
type HitTestResult struct {
	Entity Entity
	// Chain is the path from root to target
	Chain []Entity
}

// HitTest finds the topmost entity at the given screen coordinates.
// Later siblings are considered on top of earlier ones.
// Returns nil if no entity is at that position.
func (d *EventDispatcher) HitTest(screenX, screenY float64) *HitTestResult {
	w := d.app.World
	roots := w.Roots()
	for i := len(roots) - 1; i >= 0; i-- {
		chain := make([]Entity, 0, 8)
		if target := d.hitTestRecursive(roots[i], screenX, screenY, &chain); !target.IsNil() {
			return &HitTestResult{Entity: target, Chain: chain}
		}
	}
	return nil
}

// hitTestRecursive walks the tree to find the topmost entity at the point.
// Appends entities to the chain as it descends.
func (d *EventDispatcher) hitTestRecursive(e Entity, screenX, screenY float64, chain *[]Entity) Entity {
	w := d.app.World
	if !w.Bounds(e).Contains(screenX, screenY) {
		return Nil
	}

	// Point is in this entity - add to chain
	*chain = append(*chain, e)

	// Check children in reverse order (last child is drawn on top)
	children := w.Children(e)
	for i := len(children) - 1; i >= 0; i-- {
		if target := d.hitTestRecursive(children[i], screenX, screenY, chain); !target.IsNil() {
			return target
		}
	}

	// No child was hit, this entity is the target
	return e
}

// ============================================================================
// Pointer Event Dispatch
// ============================================================================

// PointerMove handles pointer movement and hover state. While the pointer is
// captured the move goes only to the captor.
func (d *EventDispatcher) PointerMove(id PointerID, screenX, screenY float64, mods Modifiers) {
	result := d.HitTest(screenX, screenY)
	d.updateHoverState(id, result, screenX, screenY, mods)

	e := NewPointerEvent(EventPointerMove, id, screenX, screenY, MouseButtonNone, mods)
	defer e.Release()
	if captor, ok := d.liveCaptor(id); ok {
		e.Captured = true
		d.bubblePointer(captor, e)
		return
	}
	if result != nil {
		d.bubblePointer(result.Entity, e)
	}
}

// PointerDown handles a pointer button press.
func (d *EventDispatcher) PointerDown(id PointerID, screenX, screenY float64, button MouseButton, mods Modifiers) {
	result := d.HitTest(screenX, screenY)
	d.updateHoverState(id, result, screenX, screenY, mods)

	if captor, ok := d.liveCaptor(id); ok {
		// A second button on a captured pointer stays with the captor.
		e := NewPointerEvent(EventPointerDown, id, screenX, screenY, button, mods)
		e.Captured = true
		d.bubblePointer(captor, e)
		e.Release()
		return
	}

	if result == nil {
		// Press on empty space - blur focused entity
		d.setFocus(Nil)
		return
	}

	// Focus the nearest focusable entity on the hit chain
	for i := len(result.Chain) - 1; i >= 0; i-- {
		if d.app.World.Focusable(result.Chain[i]) {
			d.setFocus(result.Chain[i])
			break
		}
	}

	e := NewPointerEvent(EventPointerDown, id, screenX, screenY, button, mods)
	d.bubblePointer(result.Entity, e)
	e.Release()
}

// PointerUp handles a pointer button release. A captured release goes to the
// captor; any capture left behind afterwards is released.
func (d *EventDispatcher) PointerUp(id PointerID, screenX, screenY float64, button MouseButton, mods Modifiers) {
	e := NewPointerEvent(EventPointerUp, id, screenX, screenY, button, mods)
	if captor, ok := d.liveCaptor(id); ok {
		e.Captured = true
		d.bubblePointer(captor, e)
		if still, ok := d.captures[id]; ok {
			logging.Debugf("pointer %d released while %s still held capture; releasing", id, d.app.World.Name(still))
			delete(d.captures, id)
		}
	} else if result := d.HitTest(screenX, screenY); result != nil {
		d.bubblePointer(result.Entity, e)
	}
	e.Release()

	d.updateHoverState(id, d.HitTest(screenX, screenY), screenX, screenY, mods)
}

// PointerCancel aborts the interaction of a pointer (touch lost, window
// deactivated). The captor is told, capture is dropped and the pointer's
// hover chain is left.
func (d *EventDispatcher) PointerCancel(id PointerID) {
	if captor, ok := d.liveCaptor(id); ok {
		e := NewPointerEvent(EventPointerCancel, id, 0, 0, MouseButtonNone, 0)
		e.Captured = true
		d.bubblePointer(captor, e)
		e.Release()
		delete(d.captures, id)
	}
	d.updateHoverState(id, nil, 0, 0, 0)
}

// bubblePointer delivers e to target and then each ancestor until a handler
// stops propagation.
func (d *EventDispatcher) bubblePointer(target Entity, e *PointerEvent) {
	e.setTarget(target)
	path := d.pathToRoot(target)
	defer releaseChain(path)

	observers := d.app.handlers.pointer[e.Type()]
	for _, current := range path {
		e.setCurrentTarget(current)
		for _, o := range observers {
			o.fn(d.app, e)
		}
		if e.IsPropagationStopped() {
			return
		}
	}
}

// deliverPointer delivers a non-bubbling pointer event to a single entity.
func (d *EventDispatcher) deliverPointer(target Entity, e *PointerEvent) {
	e.setTarget(target)
	e.setCurrentTarget(target)
	for _, o := range d.app.handlers.pointer[e.Type()] {
		o.fn(d.app, e)
	}
}

// ============================================================================
// Pointer Capture
// ============================================================================

// Capture binds all further move/up/cancel events of pointer id to e.
// Capturing a pointer already held by another entity is refused and reported
// as an invariant violation.
func (d *EventDispatcher) Capture(id PointerID, e Entity) bool {
	if !d.app.World.Alive(e) {
		reportInvariant(&InvariantError{Op: "dispatch.Capture", Entity: e, Detail: "capture by stale entity"})
		return false
	}
	if held, ok := d.liveCaptor(id); ok && held != e {
		reportInvariant(&InvariantError{
			Op:     "dispatch.Capture",
			Entity: e,
			Detail: "pointer already captured by " + d.app.World.Name(held),
		})
		return false
	}
	d.captures[id] = e
	return true
}

// ReleaseCapture drops e's capture of pointer id. It reports whether e held it.
func (d *EventDispatcher) ReleaseCapture(id PointerID, e Entity) bool {
	if held, ok := d.captures[id]; ok && held == e {
		delete(d.captures, id)
		return true
	}
	return false
}

// liveCaptor returns the captor of pointer id, dropping captures held by
// despawned entities.
func (d *EventDispatcher) liveCaptor(id PointerID) (Entity, bool) {
	captor, ok := d.captures[id]
	if !ok {
		return Nil, false
	}
	if !d.app.World.Alive(captor) {
		logging.Debugf("pointer %d was captured by despawned %s; dropping capture", id, captor)
		delete(d.captures, id)
		return Nil, false
	}
	return captor, true
}

// Captor returns the entity capturing pointer id, or Nil.
func (d *EventDispatcher) Captor(id PointerID) Entity {
	captor, _ := d.liveCaptor(id)
	return captor
}

// HasCapture reports whether e captures any pointer.
func (d *EventDispatcher) HasCapture(e Entity) bool {
	for _, held := range d.captures {
		if held == e {
			return true
		}
	}
	return false
}

// releaseAllFor force-releases every capture e still holds, reporting each one.
func (d *EventDispatcher) releaseAllFor(e Entity, detail string) {
	for id, held := range d.captures {
		if held == e {
			delete(d.captures, id)
			reportInvariant(&InvariantError{Op: "dispatch.ReleaseCapture", Entity: e, Detail: detail})
		}
	}
}

// ============================================================================
// Keyboard Event Dispatch
// ============================================================================

// KeyDown handles key press events, delivered to the focused entity and
// bubbling to its ancestors.
func (d *EventDispatcher) KeyDown(key Key, mods Modifiers, repeat bool) {
	d.dispatchKey(NewKeyEvent(EventKeyDown, key, mods, repeat))
}

// KeyUp handles key release events.
func (d *EventDispatcher) KeyUp(key Key, mods Modifiers) {
	d.dispatchKey(NewKeyEvent(EventKeyUp, key, mods, false))
}

func (d *EventDispatcher) dispatchKey(e *KeyEvent) {
	defer e.Release()
	if d.focused.IsNil() {
		return
	}
	if !d.app.World.Alive(d.focused) {
		d.focused = Nil
		return
	}

	e.setTarget(d.focused)
	path := d.pathToRoot(d.focused)
	defer releaseChain(path)

	observers := d.app.handlers.key[e.Type()]
	for _, current := range path {
		e.setCurrentTarget(current)
		for _, o := range observers {
			o.fn(d.app, e)
		}
		if e.IsPropagationStopped() {
			return
		}
	}
}

// ============================================================================
// Focus Management
// ============================================================================

// setFocus changes the focused entity, dispatching blur/focus events.
func (d *EventDispatcher) setFocus(newFocus Entity) {
	oldFocus := d.focused
	if oldFocus == newFocus {
		return
	}

	d.focused = newFocus

	if !oldFocus.IsNil() && d.app.World.Alive(oldFocus) {
		e := NewFocusEvent(EventBlur, newFocus)
		e.setTarget(oldFocus)
		e.setCurrentTarget(oldFocus)
		for _, o := range d.app.handlers.focus[EventBlur] {
			o.fn(d.app, e)
		}
	}

	if !newFocus.IsNil() {
		e := NewFocusEvent(EventFocus, oldFocus)
		e.setTarget(newFocus)
		e.setCurrentTarget(newFocus)
		for _, o := range d.app.handlers.focus[EventFocus] {
			o.fn(d.app, e)
		}
	}
}

// Focused returns the entity holding keyboard focus.
func (d *EventDispatcher) Focused() Entity {
	return d.focused
}

// Focus sets focus to a specific entity.
func (d *EventDispatcher) Focus(e Entity) {
	if !d.app.World.Alive(e) {
		return
	}
	d.setFocus(e)
}

// Blur removes focus from the currently focused entity.
func (d *EventDispatcher) Blur() {
	d.setFocus(Nil)
}

// ============================================================================
// Hover State Management
// ============================================================================

// updateHoverState handles the transition between hover chains of a pointer
// so that parents stay hovered when the pointer moves onto a child.
func (d *EventDispatcher) updateHoverState(id PointerID, result *HitTestResult, screenX, screenY float64, mods Modifiers) {
	oldChain := d.hoveredChains[id]
	var newChain []Entity
	if result != nil {
		newChain = result.Chain
	}
	if chainsEqual(oldChain, newChain) {
		return
	}

	oldSet := make(map[Entity]bool, len(oldChain))
	for _, e := range oldChain {
		oldSet[e] = true
	}
	newSet := make(map[Entity]bool, len(newChain))
	for _, e := range newChain {
		newSet[e] = true
	}

	// Leave deepest first
	for i := len(oldChain) - 1; i >= 0; i-- {
		w := oldChain[i]
		if !newSet[w] && d.app.World.Alive(w) {
			e := NewPointerEvent(EventPointerLeave, id, screenX, screenY, MouseButtonNone, mods)
			d.deliverPointer(w, e)
			e.Release()
		}
	}

	// Enter root first
	for _, w := range newChain {
		if !oldSet[w] {
			e := NewPointerEvent(EventPointerEnter, id, screenX, screenY, MouseButtonNone, mods)
			d.deliverPointer(w, e)
			e.Release()
		}
	}

	if len(newChain) == 0 {
		delete(d.hoveredChains, id)
	} else {
		d.hoveredChains[id] = newChain
	}
}

// Hovered returns the deepest entity under pointer id, or Nil.
func (d *EventDispatcher) Hovered(id PointerID) Entity {
	chain := d.hoveredChains[id]
	if len(chain) == 0 {
		return Nil
	}
	return chain[len(chain)-1]
}

// chainsEqual compares two entity chains for equality.
func chainsEqual(a, b []Entity) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// pathToRoot returns a pooled slice from e up to its root.
func (d *EventDispatcher) pathToRoot(e Entity) []Entity {
	path := acquireChain()
	for current := e; !current.IsNil(); current = d.app.World.Parent(current) {
		path = append(path, current)
	}
	return path
}
