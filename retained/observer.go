package retained

// ============================================================================
// Observer Registry
// ============================================================================
//
// Engines register typed handlers keyed by event kind at plugin build time.
// Handlers are global: the dispatcher calls them once per entity on the
// bubble path with CurrentTarget set, and each handler checks whether the
// current target carries the component it cares about.
//
// Slices are copy-on-write so a handler may register or remove observers
// while a dispatch pass is iterating.

type pointerObserver struct {
	id uint32
	fn PointerHandler
}

type keyObserver struct {
	id uint32
	fn KeyHandler
}

type focusObserver struct {
	id uint32
	fn FocusHandler
}

type disabledObserver struct {
	id uint32
	fn DisabledHandler
}

type intentObserver struct {
	id     uint32
	entity Entity // Nil for global listeners
	fn     func(app *App, source Entity, in Intent)
}

type handlerRegistry struct {
	pointer  map[EventType][]pointerObserver
	key      map[EventType][]keyObserver
	focus    map[EventType][]focusObserver
	disabled []disabledObserver
	intents  []intentObserver
	nextID   uint32
}

func newHandlerRegistry() *handlerRegistry {
	return &handlerRegistry{
		pointer: make(map[EventType][]pointerObserver),
		key:     make(map[EventType][]keyObserver),
		focus:   make(map[EventType][]focusObserver),
	}
}

// handleKind tags which table a CallbackHandle points into.
type handleKind uint8

const (
	handlePointer handleKind = iota + 1
	handleKey
	handleFocus
	handleDisabled
	handleIntent
)

// CallbackHandle allows removing a registered observer.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	kind  handleKind
	event EventType
}

// Remove unregisters the observer so it no longer fires.
// Removing twice, or removing the zero handle, is a no-op.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	r := h.reg
	switch h.kind {
	case handlePointer:
		r.pointer[h.event] = without(r.pointer[h.event], h.id, func(o pointerObserver) uint32 { return o.id })
	case handleKey:
		r.key[h.event] = without(r.key[h.event], h.id, func(o keyObserver) uint32 { return o.id })
	case handleFocus:
		r.focus[h.event] = without(r.focus[h.event], h.id, func(o focusObserver) uint32 { return o.id })
	case handleDisabled:
		r.disabled = without(r.disabled, h.id, func(o disabledObserver) uint32 { return o.id })
	case handleIntent:
		r.intents = without(r.intents, h.id, func(o intentObserver) uint32 { return o.id })
	}
}

// without returns a fresh slice lacking the entry with the given id.
func without[T any](s []T, id uint32, idOf func(T) uint32) []T {
	out := make([]T, 0, len(s))
	for _, o := range s {
		if idOf(o) != id {
			out = append(out, o)
		}
	}
	return out
}

func (r *handlerRegistry) next() uint32 {
	r.nextID++
	return r.nextID
}

// appendCOW appends without ever writing into an array a dispatch pass may be reading.
func appendCOW[T any](s []T, v T) []T {
	out := make([]T, len(s), len(s)+1)
	copy(out, s)
	return append(out, v)
}

// OnPointer registers fn for pointer events of the given type.
func (a *App) OnPointer(t EventType, fn PointerHandler) CallbackHandle {
	id := a.handlers.next()
	a.handlers.pointer[t] = appendCOW(a.handlers.pointer[t], pointerObserver{id: id, fn: fn})
	return CallbackHandle{id: id, reg: a.handlers, kind: handlePointer, event: t}
}

// OnKey registers fn for keyboard events of the given type.
func (a *App) OnKey(t EventType, fn KeyHandler) CallbackHandle {
	id := a.handlers.next()
	a.handlers.key[t] = appendCOW(a.handlers.key[t], keyObserver{id: id, fn: fn})
	return CallbackHandle{id: id, reg: a.handlers, kind: handleKey, event: t}
}

// OnFocus registers fn for EventFocus or EventBlur.
func (a *App) OnFocus(t EventType, fn FocusHandler) CallbackHandle {
	id := a.handlers.next()
	a.handlers.focus[t] = appendCOW(a.handlers.focus[t], focusObserver{id: id, fn: fn})
	return CallbackHandle{id: id, reg: a.handlers, kind: handleFocus, event: t}
}

// OnDisabled registers fn for disabled-changed events.
func (a *App) OnDisabled(fn DisabledHandler) CallbackHandle {
	id := a.handlers.next()
	a.handlers.disabled = appendCOW(a.handlers.disabled, disabledObserver{id: id, fn: fn})
	return CallbackHandle{id: id, reg: a.handlers, kind: handleDisabled, event: EventDisabledChanged}
}
