package retained

import "sync"

// ============================================================================
// Entity Chain Pooling
// ============================================================================
//
// Every dispatched pointer and key event walks a target-to-root path. The
// paths are short-lived, so they come from a pool instead of the heap.
//
// Usage:
//   path := acquireChain()
//   path = append(path, ...)
//   ... use path ...
//   releaseChain(path)

var chainPool = sync.Pool{
	New: func() interface{} {
		s := make([]Entity, 0, 16)
		return &s
	},
}

// acquireChain gets an empty entity slice from the pool.
// Caller must call releaseChain when done.
func acquireChain() []Entity {
	return (*chainPool.Get().(*[]Entity))[:0]
}

// releaseChain returns an entity slice to the pool.
// The slice should not be used after calling this.
func releaseChain(s []Entity) {
	if s == nil {
		return
	}
	// Only pool slices up to a reasonable size to avoid memory bloat
	if cap(s) <= 256 {
		s = s[:0]
		chainPool.Put(&s)
	}
}
