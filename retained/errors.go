package retained

import (
	"fmt"
	"sync"

	"github.com/agiangrant/corewidgets/internal/logging"
)

// InvariantError describes a broken runtime invariant, such as two entities
// claiming the same pointer. These are wiring defects in the host or an
// engine, not recoverable conditions.
type InvariantError struct {
	// Op is the operation that detected the violation (e.g., "dispatch.Capture").
	Op string
	// Entity is the entity involved, if any.
	Entity Entity
	// Detail describes what was violated.
	Detail string
}

func (e *InvariantError) Error() string {
	if e.Entity.IsNil() {
		return fmt.Sprintf("%s: invariant violated: %s", e.Op, e.Detail)
	}
	return fmt.Sprintf("%s %s: invariant violated: %s", e.Op, e.Entity, e.Detail)
}

// InvariantHandler receives invariant violations in release builds.
type InvariantHandler func(err *InvariantError)

var (
	invariantHandler InvariantHandler = logInvariant
	handlerMu        sync.RWMutex
)

func logInvariant(err *InvariantError) {
	logging.Errorf("%v", err)
}

// SetInvariantHandler replaces the release-build handler for invariant
// violations. Pass nil to restore logging. Debug builds always panic.
func SetInvariantHandler(h InvariantHandler) {
	handlerMu.Lock()
	defer handlerMu.Unlock()
	if h == nil {
		invariantHandler = logInvariant
	} else {
		invariantHandler = h
	}
}

// reportInvariant panics in debug builds and hands err to the handler otherwise.
func reportInvariant(err *InvariantError) {
	if debugAssertions {
		panic(err)
	}
	handlerMu.RLock()
	h := invariantHandler
	handlerMu.RUnlock()
	h(err)
}
