package scene

import (
	"fmt"

	"github.com/agiangrant/corewidgets"
	"github.com/agiangrant/corewidgets/button"
	"github.com/agiangrant/corewidgets/checkbox"
	"github.com/agiangrant/corewidgets/host"
	"github.com/agiangrant/corewidgets/radio"
	"github.com/agiangrant/corewidgets/retained"
	"github.com/agiangrant/corewidgets/slider"
)

// Built is a scene instantiated into an App with the reference host installed.
type Built struct {
	App  *retained.App
	Host *host.State

	entities map[string]retained.Entity
	names    map[retained.Entity]string
}

// Entity returns the entity declared under name, or retained.Nil.
func (b *Built) Entity(name string) retained.Entity {
	return b.entities[name]
}

// NameOf returns the declared name of e, or its handle string.
func (b *Built) NameOf(e retained.Entity) string {
	if n, ok := b.names[e]; ok {
		return n
	}
	return e.String()
}

// Build creates an App with every core widget engine and the reference host,
// then spawns the declared widgets in order.
func (s *Scene) Build() (*Built, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	keys := make([]retained.Key, 0, len(s.Settings.ActivationKeys))
	for _, k := range s.Settings.ActivationKeys {
		keys = append(keys, retained.Key(k))
	}
	app := retained.NewApp().AddPlugins(corewidgets.Plugin{Keys: keys})

	b := &Built{
		App:      app,
		Host:     host.Install(app),
		entities: make(map[string]retained.Entity, len(s.Widgets)),
		names:    make(map[retained.Entity]string, len(s.Widgets)),
	}

	w := app.World
	for _, decl := range s.Widgets {
		parent := b.entities[decl.Parent]
		var e retained.Entity
		switch decl.Kind {
		case KindContainer:
			e = w.Spawn(parent)
		case KindButton:
			e = button.New(w, parent)
		case KindCheckbox:
			e = checkbox.New(w, parent)
		case KindRadioGroup:
			e = radio.NewGroup(w, parent)
		case KindRadio:
			e = radio.NewItem(w, parent, b.entities[decl.Group])
		case KindSlider:
			cfg, err := decl.sliderConfig()
			if err != nil {
				return nil, fmt.Errorf("widget %s: %w", decl.Name, err)
			}
			e = w.Spawn(parent)
			slider.Attach(w, e, cfg)
			if decl.Value != nil {
				retained.Insert(w, e, slider.Value(*decl.Value))
			}
		case KindThumb:
			e = slider.NewThumb(w, parent)
		}

		w.SetName(e, decl.Name)
		if len(decl.Bounds) == 4 {
			w.SetBounds(e, retained.Bounds{X: decl.Bounds[0], Y: decl.Bounds[1], Width: decl.Bounds[2], Height: decl.Bounds[3]})
		}
		if decl.Focusable != nil {
			w.SetFocusable(e, *decl.Focusable)
		}
		if decl.Checked {
			retained.Insert(w, e, retained.Checked{})
		}
		if decl.Disabled {
			app.SetDisabled(e, true)
		}
		b.entities[decl.Name] = e
		b.names[e] = decl.Name
	}
	return b, nil
}

// StepResult is what one replayed step produced.
type StepResult struct {
	Index   int
	Step    Step
	Intents []host.Record
}

// Run replays steps against the built App and calls fn after each one with
// the intents it produced.
func (b *Built) Run(steps []Step, fn func(StepResult)) error {
	d := b.App.Dispatcher
	for i, st := range steps {
		before := len(b.Host.Log)
		p := retained.PointerID(st.Pointer)
		target := b.entities[st.Target]

		switch st.Action {
		case "move":
			d.PointerMove(p, st.X, st.Y, 0)
		case "down":
			d.PointerDown(p, st.X, st.Y, retained.MouseButtonLeft, 0)
		case "up":
			d.PointerUp(p, st.X, st.Y, retained.MouseButtonLeft, 0)
		case "click":
			d.PointerDown(p, st.X, st.Y, retained.MouseButtonLeft, 0)
			d.PointerUp(p, st.X, st.Y, retained.MouseButtonLeft, 0)
		case "cancel":
			d.PointerCancel(p)
		case "key":
			d.KeyDown(retained.Key(st.Key), 0, st.Repeat)
			d.KeyUp(retained.Key(st.Key), 0)
		case "focus":
			d.Focus(target)
		case "blur":
			d.Blur()
		case "disable":
			b.App.SetDisabled(target, true)
		case "enable":
			b.App.SetDisabled(target, false)
		case "check":
			checkbox.Set(b.App, target, true)
		case "uncheck":
			checkbox.Set(b.App, target, false)
		default:
			return fmt.Errorf("%w: step %d: unknown action %q", ErrInvalid, i, st.Action)
		}

		if fn != nil {
			produced := make([]host.Record, len(b.Host.Log)-before)
			copy(produced, b.Host.Log[before:])
			fn(StepResult{Index: i, Step: st, Intents: produced})
		}
	}
	return nil
}
