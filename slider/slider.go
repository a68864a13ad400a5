// Package slider is the headless slider engine: thumb dragging with pointer
// capture, track clicks, keyboard stepping, and quantization of continuous
// pointer motion into stepped values inside a Range.
//
// The value itself is the host-owned Value component. The engine reads it
// when an interaction starts and asks for changes with SetSliderValue; it
// never writes Value and never re-clamps a host value that a Range change
// left out of bounds.
package slider

import (
	"math"

	"github.com/agiangrant/corewidgets/internal/logging"
	"github.com/agiangrant/corewidgets/retained"
)

// Orientation is the axis the slider's value runs along.
type Orientation uint8

const (
	// Horizontal sliders grow rightwards.
	Horizontal Orientation = iota
	// Vertical sliders grow upwards.
	Vertical
)

// TrackClick selects what a press on the track (not the thumb) does.
type TrackClick uint8

const (
	// TrackClickSnap jumps to the clicked position and keeps dragging from there.
	TrackClickSnap TrackClick = iota
	// TrackClickStep moves one step toward the clicked position.
	TrackClickStep
	// TrackClickDrag starts a drag from the current value without jumping.
	TrackClickDrag
)

// DragPhase is the slider's interaction state.
type DragPhase uint8

const (
	Idle DragPhase = iota
	Dragging
)

// DragState is the transient drag bookkeeping of a slider.
type DragState struct {
	Phase DragPhase
	// OriginValue is the value the drag is anchored at.
	OriginValue float64
	// OriginPointer is the pointer coordinate along the slider axis at anchor time.
	OriginPointer float64
	// LastEmitted is the most recent value emitted during this drag.
	LastEmitted float64
	// Pointer is the captured pointer.
	Pointer retained.PointerID
}

// Slider is the engine component attached to slider entities.
type Slider struct {
	Range       Range
	Step        float64 // <= 0 means continuous
	TrackClick  TrackClick
	Orientation Orientation

	drag DragState
}

// Drag returns the current drag state.
func (s *Slider) Drag() DragState { return s.drag }

// Dragging reports whether a drag is in progress.
func (s *Slider) Dragging() bool { return s.drag.Phase == Dragging }

// Value is the host-owned slider value component.
type Value float64

// Thumb marks the draggable child entity of a slider.
type Thumb struct{}

// SetSliderValue asks the host to set the slider's value.
type SetSliderValue struct {
	Value float64
}

func (SetSliderValue) IntentName() string { return "SetSliderValue" }

// New spawns a focusable slider over r under parent.
func New(w *retained.World, parent retained.Entity, r Range) retained.Entity {
	e := w.Spawn(parent)
	Attach(w, e, Slider{Range: r})
	return e
}

// Attach turns e into a slider configured like cfg, with an idle drag state.
func Attach(w *retained.World, e retained.Entity, cfg Slider) {
	cfg.drag = DragState{}
	retained.Insert(w, e, &cfg)
	w.SetFocusable(e, true)
}

// NewThumb spawns the thumb entity of slider.
func NewThumb(w *retained.World, slider retained.Entity) retained.Entity {
	e := w.Spawn(slider)
	retained.Insert(w, e, Thumb{})
	return e
}

// Of returns the slider component of e.
func Of(w *retained.World, e retained.Entity) (*Slider, bool) {
	return retained.Get[*Slider](w, e)
}

// CurrentValue returns the host-reported value of e, or the range minimum
// when the host has not set one.
func CurrentValue(w *retained.World, e retained.Entity, s *Slider) float64 {
	if v, ok := retained.Get[Value](w, e); ok {
		return float64(v)
	}
	return s.Range.Min()
}

// increment is one keyboard or track step: the step size, or 1% of the span
// for continuous sliders.
func (s *Slider) increment() float64 {
	if step := effectiveStep(s.Step); step > 0 {
		return step
	}
	return s.Range.Span() / 100
}

// axisCoord picks the pointer coordinate along the slider axis.
func (s *Slider) axisCoord(x, y float64) float64 {
	if s.Orientation == Vertical {
		return y
	}
	return x
}

// geometry returns the track start and the usable track length along the
// axis: the track length minus the thumb length, never below one pixel.
func (s *Slider) geometry(w *retained.World, e retained.Entity) (start, thumb, usable float64) {
	b := w.Bounds(e)
	start, length := b.X, b.Width
	if s.Orientation == Vertical {
		start, length = b.Y, b.Height
	}
	for _, d := range w.Descendants(e) {
		if retained.Has[Thumb](w, d) {
			tb := w.Bounds(d)
			thumb = tb.Width
			if s.Orientation == Vertical {
				thumb = tb.Height
			}
			break
		}
	}
	return start, thumb, math.Max(length-thumb, 1)
}

// valueAt maps an axis coordinate on the track to a value in the range.
func (s *Slider) valueAt(w *retained.World, e retained.Entity, pos float64) float64 {
	start, thumb, usable := s.geometry(w, e)
	t := (pos - start - thumb/2) / usable
	t = math.Max(0, math.Min(1, t))
	if s.Orientation == Vertical {
		t = 1 - t
	}
	return s.Range.Min() + t*s.Range.Span()
}

// valueDelta converts a pointer displacement along the axis into a value change.
func (s *Slider) valueDelta(w *retained.World, e retained.Entity, from, to float64) float64 {
	_, _, usable := s.geometry(w, e)
	d := to - from
	if s.Orientation == Vertical {
		d = -d
	}
	return d * s.Range.Span() / usable
}

// Plugin registers the slider engine.
type Plugin struct{}

func (Plugin) Name() string { return "corewidgets/slider" }

func (Plugin) Build(app *retained.App) {
	app.OnPointer(retained.EventPointerDown, onPointerDown)
	app.OnPointer(retained.EventPointerMove, onPointerMove)
	app.OnPointer(retained.EventPointerUp, onPointerEnd)
	app.OnPointer(retained.EventPointerCancel, onPointerEnd)
	app.OnKey(retained.EventKeyDown, onKeyDown)
	app.OnDisabled(onDisabled)
}

func onPointerDown(app *retained.App, ev *retained.PointerEvent) {
	w := app.World
	e := ev.CurrentTarget()
	s, ok := Of(w, e)
	if !ok {
		return
	}
	ev.StopPropagation()
	if w.Disabled(e) || ev.Button != retained.MouseButtonLeft || s.Dragging() {
		return
	}

	pos := s.axisCoord(ev.X, ev.Y)
	current := CurrentValue(w, e, s)

	if retained.Has[Thumb](w, ev.Target()) {
		startDrag(app, e, s, ev.Pointer, current, pos)
		return
	}

	switch s.TrackClick {
	case TrackClickSnap:
		v := Quantize(s.Range, s.Step, s.valueAt(w, e, pos))
		if startDrag(app, e, s, ev.Pointer, v, pos) {
			s.drag.LastEmitted = v
			app.Emit(e, SetSliderValue{Value: v})
		}
	case TrackClickStep:
		target := s.valueAt(w, e, pos)
		next := current + s.increment()
		if target < current {
			next = current - s.increment()
		}
		if v := Quantize(s.Range, s.Step, next); v != current {
			app.Emit(e, SetSliderValue{Value: v})
		}
	case TrackClickDrag:
		startDrag(app, e, s, ev.Pointer, current, pos)
	}
}

// startDrag captures the pointer and anchors a drag at value and pos.
func startDrag(app *retained.App, e retained.Entity, s *Slider, pointer retained.PointerID, value, pos float64) bool {
	if !app.Dispatcher.Capture(pointer, e) {
		return false
	}
	s.drag = DragState{
		Phase:         Dragging,
		OriginValue:   value,
		OriginPointer: pos,
		LastEmitted:   value,
		Pointer:       pointer,
	}
	return true
}

func onPointerMove(app *retained.App, ev *retained.PointerEvent) {
	w := app.World
	e := ev.CurrentTarget()
	s, ok := Of(w, e)
	if !ok {
		return
	}
	if !s.Dragging() || s.drag.Pointer != ev.Pointer {
		if ev.Captured {
			logging.Debugf("slider %s: move without a drag in progress, ignoring", w.Name(e))
		}
		return
	}
	ev.StopPropagation()

	pos := s.axisCoord(ev.X, ev.Y)
	candidate := s.drag.OriginValue + s.valueDelta(w, e, s.drag.OriginPointer, pos)
	v := Quantize(s.Range, s.Step, candidate)
	if v == s.drag.LastEmitted {
		return
	}
	s.drag.LastEmitted = v
	app.Emit(e, SetSliderValue{Value: v})
}

func onPointerEnd(app *retained.App, ev *retained.PointerEvent) {
	w := app.World
	e := ev.CurrentTarget()
	s, ok := Of(w, e)
	if !ok || !s.Dragging() || s.drag.Pointer != ev.Pointer {
		return
	}
	ev.StopPropagation()
	app.Dispatcher.ReleaseCapture(ev.Pointer, e)
	s.drag = DragState{}
}

func onDisabled(app *retained.App, ev *retained.DisabledEvent) {
	e := ev.CurrentTarget()
	s, ok := Of(app.World, e)
	if !ok || !ev.Disabled || !s.Dragging() {
		return
	}
	app.Dispatcher.ReleaseCapture(s.drag.Pointer, e)
	s.drag = DragState{}
}

func onKeyDown(app *retained.App, ev *retained.KeyEvent) {
	w := app.World
	e := ev.CurrentTarget()
	s, ok := Of(w, e)
	if !ok || w.Disabled(e) {
		return
	}
	current := CurrentValue(w, e, s)
	var next float64
	switch ev.Key {
	case retained.KeyArrowLeft, retained.KeyArrowDown:
		next = current - s.increment()
	case retained.KeyArrowRight, retained.KeyArrowUp:
		next = current + s.increment()
	case retained.KeyHome:
		next = s.Range.Min()
	case retained.KeyEnd:
		next = s.Range.Max()
	default:
		return
	}
	ev.StopPropagation()
	if v := Quantize(s.Range, s.Step, next); v != current {
		app.Emit(e, SetSliderValue{Value: v})
	}
}
