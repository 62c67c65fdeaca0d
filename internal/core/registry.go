package core

import "sync"

// TestReporter is the minimal interface mimic needs from test frameworks.
type TestReporter interface {
	Helper()
	Fatalf(format string, args ...any)
}

// Resettable is anything that can be restored to its build-time baseline.
// All mock cores implement it.
type Resettable interface {
	Reset()
}

// Session tracks every mock built for one test, so the whole set can be
// restored in one step.
type Session struct {
	t       TestReporter
	mu      sync.Mutex
	tracked []Resettable
}

// ResetAll resets every tracked mock, in the order they were built.
func (s *Session) ResetAll() {
	s.mu.Lock()
	tracked := make([]Resettable, len(s.tracked))
	copy(tracked, s.tracked)
	s.mu.Unlock()

	for _, mock := range tracked {
		mock.Reset()
	}
}

// Track adds a mock to the session.
func (s *Session) Track(mock Resettable) {
	if mock == nil {
		s.t.Helper()
		s.t.Fatalf("cannot track a nil mock")

		return
	}

	s.mu.Lock()
	s.tracked = append(s.tracked, mock)
	s.mu.Unlock()
}

// GetOrCreateSession returns the Session for the given test, creating one if
// needed. Multiple calls with the same TestReporter return the same Session
// instance.
//
// If the TestReporter supports Cleanup (like *testing.T), the Session is
// automatically removed from the registry when the test completes.
func GetOrCreateSession(t TestReporter) *Session {
	registryMu.Lock()
	defer registryMu.Unlock()

	if session, ok := registry[t]; ok {
		return session
	}

	session := &Session{t: t}
	registry[t] = session

	// Register cleanup if the TestReporter supports it
	if cr, ok := t.(cleanupRegistrar); ok {
		cr.Cleanup(func() {
			registryMu.Lock()
			delete(registry, t)
			registryMu.Unlock()
		})
	}

	return session
}

// ResetAll resets every mock tracked under t. If no session has been created
// for t yet, ResetAll returns immediately.
func ResetAll(t TestReporter) {
	registryMu.Lock()

	session, ok := registry[t]

	registryMu.Unlock()

	if !ok {
		return
	}

	session.ResetAll()
}

// unexported variables.
var (
	//nolint:gochecknoglobals // Package-level registry is intentional for test coordination
	registry = make(map[TestReporter]*Session)
	//nolint:gochecknoglobals // Mutex for registry
	registryMu sync.Mutex
)

// cleanupRegistrar is the interface needed for registering cleanup functions.
// This is satisfied by *testing.T and *testing.B.
type cleanupRegistrar interface {
	Cleanup(cleanupFunc func())
}
