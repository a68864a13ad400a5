package button

import (
	"testing"

	"github.com/agiangrant/corewidgets/retained"
)

type fixture struct {
	app         *retained.App
	btn         retained.Entity
	activations int
}

// newFixture places a 100x40 button at (0,0) under a 300x300 root.
func newFixture(keys ...retained.Key) *fixture {
	app := retained.NewApp().AddPlugins(Plugin{Keys: keys})
	root := app.World.Spawn(retained.Nil)
	app.World.SetBounds(root, retained.Bounds{Width: 300, Height: 300})
	f := &fixture{app: app, btn: New(app.World, root)}
	app.World.SetBounds(f.btn, retained.Bounds{Width: 100, Height: 40})
	retained.ListenOn(app, f.btn, func(*retained.App, retained.Entity, Activate) { f.activations++ })
	return f
}

func (f *fixture) down(x, y float64) {
	f.app.Dispatcher.PointerDown(retained.PointerMouse, x, y, retained.MouseButtonLeft, 0)
}

func (f *fixture) up(x, y float64) {
	f.app.Dispatcher.PointerUp(retained.PointerMouse, x, y, retained.MouseButtonLeft, 0)
}

func TestPointerActivation(t *testing.T) {
	tests := []struct {
		name         string
		downX, downY float64
		upX, upY     float64
		want         int
	}{
		{"press and release inside", 10, 10, 20, 20, 1},
		{"release outside", 10, 10, 200, 200, 0},
		{"press outside release inside", 200, 200, 10, 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.down(tt.downX, tt.downY)
			f.up(tt.upX, tt.upY)
			if f.activations != tt.want {
				t.Errorf("activations = %d, want %d", f.activations, tt.want)
			}
			if f.app.Dispatcher.HasCapture(f.btn) {
				t.Error("button still holds capture after release")
			}
			b, _ := Of(f.app.World, f.btn)
			if b.Pressed() {
				t.Error("button still pressed after release")
			}
		})
	}
}

func TestPressStateAndHover(t *testing.T) {
	f := newFixture()
	b, _ := Of(f.app.World, f.btn)

	f.app.Dispatcher.PointerMove(retained.PointerMouse, 10, 10, 0)
	if !b.Hovered() {
		t.Error("not hovered after pointer entered")
	}
	f.down(10, 10)
	if !b.Pressed() || f.app.Dispatcher.Captor(retained.PointerMouse) != f.btn {
		t.Fatal("press did not capture the pointer")
	}
	if !b.Focused() {
		t.Error("press did not focus the button")
	}

	// Dragging out keeps the press; releasing outside clears hover.
	f.app.Dispatcher.PointerMove(retained.PointerMouse, 200, 200, 0)
	if !b.Pressed() {
		t.Error("press lost while dragging outside")
	}
	f.up(200, 200)
	if b.Hovered() {
		t.Error("still hovered after release outside")
	}
}

func TestHoverTracksEachPointer(t *testing.T) {
	f := newFixture()
	b, _ := Of(f.app.World, f.btn)
	d := f.app.Dispatcher
	touch := retained.PointerID(1)

	d.PointerMove(retained.PointerMouse, 10, 10, 0)
	d.PointerMove(touch, 20, 10, 0)
	d.PointerMove(touch, 200, 200, 0)
	if !b.Hovered() {
		t.Error("hover lost while the mouse is still over the button")
	}

	d.PointerMove(retained.PointerMouse, 200, 200, 0)
	if b.Hovered() {
		t.Error("still hovered after every pointer left")
	}
}

func TestKeyboardActivation(t *testing.T) {
	tests := []struct {
		name   string
		keys   []retained.Key
		key    retained.Key
		repeat bool
		want   int
	}{
		{"enter", nil, retained.KeyEnter, false, 1},
		{"space", nil, retained.KeySpace, false, 1},
		{"repeat ignored", nil, retained.KeyEnter, true, 0},
		{"other key", nil, retained.KeyEscape, false, 0},
		{"custom keys", []retained.Key{retained.KeyEscape}, retained.KeyEscape, false, 1},
		{"custom keys replace defaults", []retained.Key{retained.KeyEscape}, retained.KeyEnter, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(tt.keys...)
			f.app.Dispatcher.Focus(f.btn)
			f.app.Dispatcher.KeyDown(tt.key, 0, tt.repeat)
			f.app.Dispatcher.KeyUp(tt.key, 0)
			if f.activations != tt.want {
				t.Errorf("activations = %d, want %d", f.activations, tt.want)
			}
		})
	}
}

func TestKeyWithoutFocusDoesNothing(t *testing.T) {
	f := newFixture()
	f.app.Dispatcher.KeyDown(retained.KeyEnter, 0, false)
	if f.activations != 0 {
		t.Errorf("activations = %d, want 0", f.activations)
	}
}

func TestDisabledButtonEmitsNothing(t *testing.T) {
	f := newFixture()
	f.app.SetDisabled(f.btn, true)

	f.down(10, 10)
	f.up(10, 10)
	f.app.Dispatcher.Focus(f.btn)
	f.app.Dispatcher.KeyDown(retained.KeyEnter, 0, false)
	if Press(f.app, f.btn) {
		t.Error("Press succeeded on a disabled button")
	}

	if f.activations != 0 {
		t.Errorf("activations = %d, want 0", f.activations)
	}
	if f.app.Dispatcher.HasCapture(f.btn) {
		t.Error("disabled button captured the pointer")
	}
}

func TestDisableWhilePressedReleasesCapture(t *testing.T) {
	f := newFixture()
	b, _ := Of(f.app.World, f.btn)

	f.down(10, 10)
	f.app.SetDisabled(f.btn, true)
	if b.Pressed() || b.Hovered() {
		t.Error("interaction state survived disable")
	}
	if f.app.Dispatcher.HasCapture(f.btn) {
		t.Error("capture survived disable")
	}

	f.app.SetDisabled(f.btn, false)
	f.up(10, 10)
	if f.activations != 0 {
		t.Errorf("activations = %d, want 0 for a press interrupted by disable", f.activations)
	}
}

func TestCancelAbortsPress(t *testing.T) {
	f := newFixture()
	f.down(10, 10)
	f.app.Dispatcher.PointerCancel(retained.PointerMouse)
	f.up(10, 10)
	if f.activations != 0 {
		t.Errorf("activations = %d, want 0", f.activations)
	}
}

func TestPress(t *testing.T) {
	f := newFixture()
	if !Press(f.app, f.btn) {
		t.Fatal("Press = false on an enabled button")
	}
	if f.activations != 1 {
		t.Errorf("activations = %d, want 1", f.activations)
	}
	other := f.app.World.Spawn(retained.Nil)
	if Press(f.app, other) {
		t.Error("Press succeeded on a non-button")
	}
}

func TestNestedButtonsActivateOnlyInnermost(t *testing.T) {
	f := newFixture()
	inner := New(f.app.World, f.btn)
	f.app.World.SetBounds(inner, retained.Bounds{Width: 20, Height: 20})
	innerCount := 0
	retained.ListenOn(f.app, inner, func(*retained.App, retained.Entity, Activate) { innerCount++ })

	f.down(5, 5)
	f.up(5, 5)

	if innerCount != 1 || f.activations != 0 {
		t.Errorf("inner = %d outer = %d, want 1 and 0", innerCount, f.activations)
	}
}
