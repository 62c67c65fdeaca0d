package mimic

import (
	"github.com/toejough/mimic/internal/core"
)

// GetOrCreateSession returns the Session for the given test, creating one if
// needed. Multiple calls with the same TestReporter return the same Session
// instance, so every mock a test builds with BuildFor lands in one place.
func GetOrCreateSession(t TestReporter) *Session {
	return core.GetOrCreateSession(t)
}

// ResetAll restores every mock tracked under t to its build-time baseline.
// This is the package-level reset that coordinates across all mocks sharing
// the same TestReporter.
func ResetAll(t TestReporter) {
	core.ResetAll(t)
}
