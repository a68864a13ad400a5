//go:build !corewidgets_debug

package retained

const debugAssertions = false
