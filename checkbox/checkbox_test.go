package checkbox

import (
	"testing"

	"github.com/agiangrant/corewidgets/retained"
)

type fixture struct {
	app     *retained.App
	box     retained.Entity
	intents []retained.Intent
}

// newFixture spawns a 20x20 checkbox and a host that applies its intents.
func newFixture() *fixture {
	app := retained.NewApp().AddPlugins(Plugin{})
	f := &fixture{app: app, box: New(app.World, retained.Nil)}
	app.World.SetBounds(f.box, retained.Bounds{Width: 20, Height: 20})

	retained.ListenOn(app, f.box, func(app *retained.App, src retained.Entity, in retained.Intent) {
		f.intents = append(f.intents, in)
		checked := IsChecked(app.World, src)
		switch v := in.(type) {
		case ToggleChecked:
			checked = !checked
		case SetChecked:
			checked = v.Checked
		}
		if checked {
			retained.Insert(app.World, src, retained.Checked{})
		} else {
			retained.Remove[retained.Checked](app.World, src)
		}
	})
	return f
}

func (f *fixture) click() {
	f.app.Dispatcher.PointerDown(retained.PointerMouse, 5, 5, retained.MouseButtonLeft, 0)
	f.app.Dispatcher.PointerUp(retained.PointerMouse, 5, 5, retained.MouseButtonLeft, 0)
}

func TestClickTogglesThroughHost(t *testing.T) {
	f := newFixture()

	f.click()
	if len(f.intents) != 1 {
		t.Fatalf("intents = %v, want one ToggleChecked", f.intents)
	}
	if _, ok := f.intents[0].(ToggleChecked); !ok {
		t.Errorf("intent = %T, want ToggleChecked", f.intents[0])
	}
	if !IsChecked(f.app.World, f.box) {
		t.Error("host did not end up checked")
	}

	f.click()
	if IsChecked(f.app.World, f.box) {
		t.Error("second click did not uncheck")
	}
}

func TestEngineNeverWritesChecked(t *testing.T) {
	app := retained.NewApp().AddPlugins(Plugin{})
	box := New(app.World, retained.Nil)
	app.World.SetBounds(box, retained.Bounds{Width: 20, Height: 20})

	toggles := 0
	retained.Listen(app, func(*retained.App, retained.Entity, ToggleChecked) { toggles++ })

	app.Dispatcher.PointerDown(retained.PointerMouse, 5, 5, retained.MouseButtonLeft, 0)
	app.Dispatcher.PointerUp(retained.PointerMouse, 5, 5, retained.MouseButtonLeft, 0)

	if toggles != 1 {
		t.Errorf("toggles = %d, want 1", toggles)
	}
	if IsChecked(app.World, box) {
		t.Error("checked state changed without the host applying it")
	}
}

func TestSetEmitsOnlyOnChange(t *testing.T) {
	tests := []struct {
		name    string
		initial bool
		set     bool
		want    bool
	}{
		{"unchecked to checked", false, true, true},
		{"checked to unchecked", true, false, true},
		{"already checked", true, true, false},
		{"already unchecked", false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			if tt.initial {
				retained.Insert(f.app.World, f.box, retained.Checked{})
			}
			if got := Set(f.app, f.box, tt.set); got != tt.want {
				t.Errorf("Set = %v, want %v", got, tt.want)
			}
			if tt.want {
				sc, ok := f.intents[0].(SetChecked)
				if !ok || sc.Checked != tt.set {
					t.Errorf("intent = %#v, want SetChecked{%v}", f.intents[0], tt.set)
				}
			}
			if got := IsChecked(f.app.World, f.box); got != tt.set {
				t.Errorf("checked = %v, want %v", got, tt.set)
			}
		})
	}
}

func TestDisabledCheckboxIgnoresInput(t *testing.T) {
	f := newFixture()
	f.app.SetDisabled(f.box, true)

	f.click()
	f.app.Dispatcher.Focus(f.box)
	f.app.Dispatcher.KeyDown(retained.KeySpace, 0, false)
	Set(f.app, f.box, true)
	Toggle(f.app, f.box)

	if len(f.intents) != 0 {
		t.Errorf("intents = %v, want none", f.intents)
	}
}

func TestSpaceToggles(t *testing.T) {
	f := newFixture()
	f.app.Dispatcher.Focus(f.box)
	f.app.Dispatcher.KeyDown(retained.KeySpace, 0, false)
	f.app.Dispatcher.KeyDown(retained.KeySpace, 0, true)

	if len(f.intents) != 1 || !IsChecked(f.app.World, f.box) {
		t.Errorf("intents = %v checked = %v, want one toggle and checked", f.intents, IsChecked(f.app.World, f.box))
	}
}
