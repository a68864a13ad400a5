package retained

// Intent is a change request emitted by a widget engine. The host applies it to
// its own authoritative state; the engines never write that state themselves.
type Intent interface {
	IntentName() string
}

type pendingIntent struct {
	source Entity
	intent Intent
}

// Listen registers fn for every intent of type T, whatever its source.
// Listen[Intent] observes all intents.
func Listen[T Intent](a *App, fn func(app *App, source Entity, in T)) CallbackHandle {
	return a.listen(Nil, func(app *App, source Entity, in Intent) {
		if v, ok := in.(T); ok {
			fn(app, source, v)
		}
	})
}

// ListenOn registers fn for intents of type T emitted by e.
func ListenOn[T Intent](a *App, e Entity, fn func(app *App, source Entity, in T)) CallbackHandle {
	return a.listen(e, func(app *App, source Entity, in Intent) {
		if v, ok := in.(T); ok {
			fn(app, source, v)
		}
	})
}

func (a *App) listen(e Entity, fn func(app *App, source Entity, in Intent)) CallbackHandle {
	id := a.handlers.next()
	a.handlers.intents = appendCOW(a.handlers.intents, intentObserver{id: id, entity: e, fn: fn})
	return CallbackHandle{id: id, reg: a.handlers, kind: handleIntent}
}

// Emit delivers in to the listeners registered on source, then to the global
// listeners. Intents emitted by a listener while another intent is being
// delivered are queued and delivered afterwards, in emission order.
func (a *App) Emit(source Entity, in Intent) {
	a.pending = append(a.pending, pendingIntent{source: source, intent: in})
	if a.emitting {
		return
	}
	a.emitting = true
	defer func() { a.emitting = false }()

	for len(a.pending) > 0 {
		p := a.pending[0]
		a.pending = a.pending[1:]
		a.deliver(p)
	}
	a.pending = a.pending[:0]
}

func (a *App) deliver(p pendingIntent) {
	observers := a.handlers.intents
	for _, o := range observers {
		if !o.entity.IsNil() && o.entity == p.source {
			o.fn(a, p.source, p.intent)
		}
	}
	for _, o := range observers {
		if o.entity.IsNil() {
			o.fn(a, p.source, p.intent)
		}
	}
}
