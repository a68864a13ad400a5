//go:build corewidgets_debug

package retained

// debugAssertions turns invariant violations into panics.
const debugAssertions = true
