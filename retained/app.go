package retained

import "github.com/agiangrant/corewidgets/internal/logging"

// Plugin registers a group of observers with an App.
type Plugin interface {
	// Name identifies the plugin; an App builds each name at most once.
	Name() string

	// Build registers the plugin's observers.
	Build(app *App)
}

// App ties a World to its dispatcher, observer tables and intent bus.
// The host owns the App and feeds it input through Dispatcher.
type App struct {
	World      *World
	Dispatcher *EventDispatcher

	handlers *handlerRegistry
	plugins  map[string]bool

	pending  []pendingIntent
	emitting bool
}

// NewApp creates an App with an empty world and no plugins.
func NewApp() *App {
	a := &App{
		World:    NewWorld(),
		handlers: newHandlerRegistry(),
		plugins:  make(map[string]bool),
	}
	a.Dispatcher = NewEventDispatcher(a)
	return a
}

// AddPlugins builds each plugin that has not been built yet, in order.
func (a *App) AddPlugins(plugins ...Plugin) *App {
	for _, p := range plugins {
		name := p.Name()
		if a.plugins[name] {
			logging.Debugf("plugin %s already registered, skipping", name)
			continue
		}
		a.plugins[name] = true
		p.Build(a)
	}
	return a
}

// HasPlugin reports whether a plugin with the given name has been built.
func (a *App) HasPlugin(name string) bool {
	return a.plugins[name]
}

// SetDisabled changes e's disabled flag. When the flag actually changes, a
// DisabledEvent is delivered to e so engines can drop transient state and
// release any pointer capture they hold.
func (a *App) SetDisabled(e Entity, disabled bool) {
	if !a.World.setDisabled(e, disabled) {
		return
	}
	ev := NewDisabledEvent(disabled)
	ev.setTarget(e)
	ev.setCurrentTarget(e)
	for _, o := range a.handlers.disabled {
		o.fn(a, ev)
	}
	if disabled {
		a.Dispatcher.releaseAllFor(e, "capture still held after disable")
	}
}
