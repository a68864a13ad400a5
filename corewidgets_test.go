package corewidgets

import (
	"testing"

	"github.com/agiangrant/corewidgets/retained"
)

func TestPluginRegistersEveryEngine(t *testing.T) {
	app := NewApp()
	for _, name := range []string{
		"corewidgets",
		"corewidgets/button",
		"corewidgets/checkbox",
		"corewidgets/radio",
		"corewidgets/slider",
	} {
		if !app.HasPlugin(name) {
			t.Errorf("plugin %s not registered", name)
		}
	}
}

func TestPluginIsIdempotent(t *testing.T) {
	app := NewApp().AddPlugins(Plugin{})
	btn := app.World.Spawn(retained.Nil)
	retained.Insert(app.World, btn, &Button{})
	app.World.SetBounds(btn, retained.Bounds{Width: 10, Height: 10})

	n := 0
	retained.Listen(app, func(*retained.App, retained.Entity, Activate) { n++ })
	app.Dispatcher.PointerDown(retained.PointerMouse, 5, 5, retained.MouseButtonLeft, 0)
	app.Dispatcher.PointerUp(retained.PointerMouse, 5, 5, retained.MouseButtonLeft, 0)

	if n != 1 {
		t.Errorf("activations = %d, want 1 with the plugin added twice", n)
	}
}

func TestCustomKeys(t *testing.T) {
	app := retained.NewApp().AddPlugins(Plugin{Keys: []retained.Key{retained.KeyEnter}})
	btn := app.World.Spawn(retained.Nil)
	retained.Insert(app.World, btn, &Button{})

	n := 0
	retained.Listen(app, func(*retained.App, retained.Entity, Activate) { n++ })
	app.Dispatcher.Focus(btn)
	app.Dispatcher.KeyDown(retained.KeySpace, 0, false)
	app.Dispatcher.KeyDown(retained.KeyEnter, 0, false)

	if n != 1 {
		t.Errorf("activations = %d, want 1 (Space not configured)", n)
	}
}
