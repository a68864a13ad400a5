package retained

import (
	"strings"
	"testing"
)

type countingPlugin struct {
	name   string
	builds *int
}

func (p countingPlugin) Name() string { return p.name }
func (p countingPlugin) Build(*App)   { *p.builds++ }

func TestAddPluginsSkipsDuplicates(t *testing.T) {
	builds := 0
	app := NewApp().AddPlugins(
		countingPlugin{name: "a", builds: &builds},
		countingPlugin{name: "a", builds: &builds},
	)
	app.AddPlugins(countingPlugin{name: "a", builds: &builds}, countingPlugin{name: "b", builds: &builds})

	if builds != 2 {
		t.Errorf("builds = %d, want 2", builds)
	}
	for _, name := range []string{"a", "b"} {
		if !app.HasPlugin(name) {
			t.Errorf("HasPlugin(%q) = false", name)
		}
	}
	if app.HasPlugin("c") {
		t.Error("HasPlugin(c) = true for a plugin never added")
	}
}

func TestInvariantErrorMessage(t *testing.T) {
	app := NewApp()
	e := app.World.Spawn(Nil)

	tests := []struct {
		err  *InvariantError
		want string
	}{
		{&InvariantError{Op: "dispatch.Capture", Detail: "boom"}, "dispatch.Capture: invariant violated: boom"},
		{&InvariantError{Op: "dispatch.Capture", Entity: e, Detail: "boom"}, "dispatch.Capture " + e.String()},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); !strings.HasPrefix(got, tt.want) {
			t.Errorf("Error() = %q, want prefix %q", got, tt.want)
		}
	}
}

func TestCaptureByStaleEntityIsRefused(t *testing.T) {
	got := captureInvariants(t)
	app := NewApp()
	e := app.World.Spawn(Nil)
	app.World.Despawn(e)

	if app.Dispatcher.Capture(PointerMouse, e) {
		t.Error("stale entity captured a pointer")
	}
	if len(*got) != 1 {
		t.Errorf("reports = %d, want 1", len(*got))
	}
}
