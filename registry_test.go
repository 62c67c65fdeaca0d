package mimic_test

import (
	"sync"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/toejough/mimic"
	"pgregory.net/rapid"
)

// TestGetOrCreateSession_SameT_ReturnsSameSession verifies that calling
// GetOrCreateSession with the same *testing.T returns the same *Session
// instance.
func TestGetOrCreateSession_SameT_ReturnsSameSession(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	session1 := mimic.GetOrCreateSession(t)
	session2 := mimic.GetOrCreateSession(t)

	g.Expect(session1).To(BeIdenticalTo(session2), "same t should return same Session")
}

// TestGetOrCreateSession_DifferentT_ReturnsDifferentSession verifies that
// different *testing.T values get different *Session instances.
func TestGetOrCreateSession_DifferentT_ReturnsDifferentSession(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	var session1, session2 *mimic.Session

	t.Run("subtest1", func(t *testing.T) {
		session1 = mimic.GetOrCreateSession(t)
	})

	t.Run("subtest2", func(t *testing.T) {
		session2 = mimic.GetOrCreateSession(t)
	})

	g.Expect(session1).NotTo(BeIdenticalTo(session2), "different t should return different Session")
}

// TestResetAll_RestoresEveryTrackedMock verifies mocks built with BuildFor
// are all restored by one ResetAll.
func TestResetAll_RestoresEveryTrackedMock(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fn := mimic.NewFunc("f").Returns("baseline").BuildFor(t)
	obj := mimic.NewObject().Value("limit", 10).BuildFor(t)
	class := mimic.NewClass("Widget").Func("render", mimic.NewFunc("")).BuildFor(t)

	fn.Return("live")
	fn.Call()
	obj.Set("limit", 99)
	class.New().Call("render")

	mimic.ResetAll(t)

	g.Expect(fn.CallCount()).To(Equal(0))
	g.Expect(fn.Call()).To(Equal("baseline"))
	g.Expect(obj.Get("limit")).To(Equal(10))
	g.Expect(class.NumInstances()).To(Equal(0))
}

// TestResetAll_NoSession_IsANoOp verifies resetting a reporter with no
// session returns immediately.
func TestResetAll_NoSession_IsANoOp(t *testing.T) {
	t.Parallel()

	type bareReporter struct{ mimic.TestReporter }

	mimic.ResetAll(&bareReporter{})
}

// TestGetOrCreateSession_ConcurrentAccess verifies the registry is safe for
// concurrent access from multiple goroutines.
func TestGetOrCreateSession_ConcurrentAccess(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	const numGoroutines = 100
	results := make([]*mimic.Session, numGoroutines)

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for i := range numGoroutines {
		go func(idx int) {
			defer wg.Done()
			results[idx] = mimic.GetOrCreateSession(t)
		}(i)
	}

	wg.Wait()

	// All results should be the same Session
	for i := 1; i < numGoroutines; i++ {
		g.Expect(results[i]).To(BeIdenticalTo(results[0]),
			"concurrent calls with same t should return same Session")
	}
}

// TestGetOrCreateSession_ConcurrentAccess_Rapid uses property-based testing
// to verify concurrent access safety with randomized access patterns.
func TestGetOrCreateSession_ConcurrentAccess_Rapid(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		numGoroutines := rapid.IntRange(2, 50).Draw(rt, "numGoroutines")
		results := make([]*mimic.Session, numGoroutines)

		var wg sync.WaitGroup
		wg.Add(numGoroutines)

		for i := range numGoroutines {
			go func(idx int) {
				defer wg.Done()
				results[idx] = mimic.GetOrCreateSession(t)
			}(i)
		}

		wg.Wait()

		for i := 1; i < numGoroutines; i++ {
			if results[i] != results[0] {
				rt.Fatalf("concurrent calls with same t returned different Sessions")
			}
		}
	})
}

// TestConcurrentInvocation_OneEntryPerCall verifies concurrent invokers of a
// shared mock each land one call-log entry with correctly incrementing
// indices.
func TestConcurrentInvocation_OneEntryPerCall(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mock := mimic.NewFunc("f").Build()

	const numGoroutines = 50

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for i := range numGoroutines {
		go func(n int) {
			defer wg.Done()
			mock.Call(n)
		}(i)
	}

	wg.Wait()

	g.Expect(mock.CallCount()).To(Equal(numGoroutines))
}
