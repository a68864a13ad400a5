package retained

import "sync"

// ============================================================================
// Event Types
// ============================================================================

// EventType identifies the kind of input event.
type EventType uint8

const (
	// Pointer events
	EventPointerEnter EventType = iota + 1
	EventPointerLeave
	EventPointerMove
	EventPointerDown
	EventPointerUp
	EventPointerCancel

	// Keyboard events
	EventKeyDown
	EventKeyUp

	// Focus events
	EventFocus
	EventBlur

	// Lifecycle events
	EventDisabledChanged
)

var eventTypeNames = [...]string{
	EventPointerEnter:    "pointer-enter",
	EventPointerLeave:    "pointer-leave",
	EventPointerMove:     "pointer-move",
	EventPointerDown:     "pointer-down",
	EventPointerUp:       "pointer-up",
	EventPointerCancel:   "pointer-cancel",
	EventKeyDown:         "key-down",
	EventKeyUp:           "key-up",
	EventFocus:           "focus",
	EventBlur:            "blur",
	EventDisabledChanged: "disabled-changed",
}

func (t EventType) String() string {
	if int(t) < len(eventTypeNames) && eventTypeNames[t] != "" {
		return eventTypeNames[t]
	}
	return "unknown"
}

// PointerID distinguishes simultaneous pointers (mouse, touches, pens).
type PointerID int

// PointerMouse is the id hosts use for the primary mouse pointer.
const PointerMouse PointerID = 0

// MouseButton identifies which button was pressed.
type MouseButton uint8

const (
	MouseButtonNone MouseButton = iota
	MouseButtonLeft
	MouseButtonRight
	MouseButtonMiddle
)

// Modifier keys
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModSuper // Cmd on Mac, Win on Windows
)

func (m Modifiers) Shift() bool { return m&ModShift != 0 }
func (m Modifiers) Ctrl() bool  { return m&ModCtrl != 0 }
func (m Modifiers) Alt() bool   { return m&ModAlt != 0 }
func (m Modifiers) Super() bool { return m&ModSuper != 0 }

// Key is a logical key name.
type Key string

const (
	KeyEnter      Key = "Enter"
	KeySpace      Key = "Space"
	KeyEscape     Key = "Escape"
	KeyTab        Key = "Tab"
	KeyArrowLeft  Key = "ArrowLeft"
	KeyArrowRight Key = "ArrowRight"
	KeyArrowUp    Key = "ArrowUp"
	KeyArrowDown  Key = "ArrowDown"
	KeyHome       Key = "Home"
	KeyEnd        Key = "End"
)

// ============================================================================
// Event Interface and Base
// ============================================================================

// Event is the interface for all input events.
type Event interface {
	// Type returns the event type.
	Type() EventType

	// Target returns the entity that was hit (pointer), captured the pointer,
	// or holds focus (keyboard).
	Target() Entity

	// CurrentTarget returns the entity currently handling the event while it bubbles.
	CurrentTarget() Entity

	// StopPropagation prevents the event from bubbling to further ancestors.
	StopPropagation()

	// IsPropagationStopped returns true if propagation was stopped.
	IsPropagationStopped() bool

	setTarget(e Entity)
	setCurrentTarget(e Entity)
}

// eventBase provides common event functionality.
type eventBase struct {
	eventType          EventType
	target             Entity
	currentTarget      Entity
	propagationStopped bool
}

func (e *eventBase) Type() EventType            { return e.eventType }
func (e *eventBase) Target() Entity             { return e.target }
func (e *eventBase) CurrentTarget() Entity      { return e.currentTarget }
func (e *eventBase) StopPropagation()           { e.propagationStopped = true }
func (e *eventBase) IsPropagationStopped() bool { return e.propagationStopped }
func (e *eventBase) setTarget(t Entity)         { e.target = t }
func (e *eventBase) setCurrentTarget(t Entity)  { e.currentTarget = t }

func (e *eventBase) reset(t EventType) {
	e.eventType = t
	e.target = Nil
	e.currentTarget = Nil
	e.propagationStopped = false
}

// ============================================================================
// Pointer Event
// ============================================================================

// PointerEvent represents pointer interaction events.
type PointerEvent struct {
	eventBase

	// Pointer identifies which pointer produced the event.
	Pointer PointerID

	// Screen coordinates
	X, Y float64

	// Which button triggered the event (for down/up)
	Button MouseButton

	// Modifier keys held during the event
	Modifiers Modifiers

	// Captured is true when the event was routed to a capturing entity
	// instead of the entity under the pointer.
	Captured bool
}

// NewPointerEvent creates a pointer event. Uses object pool for high-frequency events.
func NewPointerEvent(eventType EventType, pointer PointerID, x, y float64, button MouseButton, mods Modifiers) *PointerEvent {
	e := pointerEventPool.Get().(*PointerEvent)
	e.reset(eventType)
	e.Pointer = pointer
	e.X = x
	e.Y = y
	e.Button = button
	e.Modifiers = mods
	e.Captured = false
	return e
}

// Release returns the event to the pool. Call when done processing.
func (e *PointerEvent) Release() {
	pointerEventPool.Put(e)
}

// Object pool for pointer events to avoid allocations on every pointer move
var pointerEventPool = sync.Pool{
	New: func() any {
		return &PointerEvent{}
	},
}

// ============================================================================
// Keyboard Event
// ============================================================================

// KeyEvent represents keyboard events. Keyboard events target the focused entity.
type KeyEvent struct {
	eventBase

	// Logical key (e.g., Enter, Space, ArrowLeft)
	Key Key

	// Modifier keys held during the event
	Modifiers Modifiers

	// True if this is a repeat event (key held down)
	Repeat bool
}

// NewKeyEvent creates a keyboard event.
func NewKeyEvent(eventType EventType, key Key, mods Modifiers, repeat bool) *KeyEvent {
	e := keyEventPool.Get().(*KeyEvent)
	e.reset(eventType)
	e.Key = key
	e.Modifiers = mods
	e.Repeat = repeat
	return e
}

// Release returns the event to the pool.
func (e *KeyEvent) Release() {
	keyEventPool.Put(e)
}

var keyEventPool = sync.Pool{
	New: func() any {
		return &KeyEvent{}
	},
}

// ============================================================================
// Focus Event
// ============================================================================

// FocusEvent represents focus change events. Focus events do not bubble.
type FocusEvent struct {
	eventBase

	// Related is the entity losing focus (for Focus) or gaining focus (for Blur)
	Related Entity
}

// NewFocusEvent creates a focus event.
func NewFocusEvent(eventType EventType, related Entity) *FocusEvent {
	e := &FocusEvent{Related: related}
	e.reset(eventType)
	return e
}

// ============================================================================
// Disabled Event
// ============================================================================

// DisabledEvent is delivered to an entity whose disabled flag changed.
// It does not bubble.
type DisabledEvent struct {
	eventBase

	Disabled bool
}

// NewDisabledEvent creates a disabled-changed event.
func NewDisabledEvent(disabled bool) *DisabledEvent {
	e := &DisabledEvent{Disabled: disabled}
	e.reset(EventDisabledChanged)
	return e
}

// ============================================================================
// Handler Types
// ============================================================================

// PointerHandler is a callback for pointer events.
type PointerHandler func(app *App, e *PointerEvent)

// KeyHandler is a callback for keyboard events.
type KeyHandler func(app *App, e *KeyEvent)

// FocusHandler is a callback for focus events.
type FocusHandler func(app *App, e *FocusEvent)

// DisabledHandler is a callback for disabled-changed events.
type DisabledHandler func(app *App, e *DisabledEvent)
