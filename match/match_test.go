package match_test

import (
	"fmt"
	"testing"

	"github.com/onsi/gomega"
	"github.com/toejough/mimic"
	. "github.com/toejough/mimic/match"
)

// TestBeCalled verifies the matcher distinguishes invoked from uninvoked
// mocks.
func TestBeCalled(t *testing.T) {
	t.Parallel()
	g := gomega.NewWithT(t)

	mock := mimic.NewFunc("f").Build()
	g.Expect(mock).NotTo(BeCalled())

	mock.Call()
	g.Expect(mock).To(BeCalled())
}

// TestHaveCallCount verifies exact call counting.
func TestHaveCallCount(t *testing.T) {
	t.Parallel()
	g := gomega.NewWithT(t)

	mock := mimic.NewFunc("f").Build()
	mock.Call(1)
	mock.Call(2)

	g.Expect(mock).To(HaveCallCount(2))
	g.Expect(mock).NotTo(HaveCallCount(3))
}

// TestBeCalledWith_RawArgs verifies matching against raw-tuple args-records.
func TestBeCalledWith_RawArgs(t *testing.T) {
	t.Parallel()
	g := gomega.NewWithT(t)

	mock := mimic.NewFunc("f").Build()
	mock.Call("a", 1)
	mock.Call("b", 2)

	g.Expect(mock).To(BeCalledWith("b", 2))
	g.Expect(mock).NotTo(BeCalledWith("c", 3))
}

// TestBeCalledWith_NamedRecord verifies named records match by value in
// declaration order.
func TestBeCalledWith_NamedRecord(t *testing.T) {
	t.Parallel()
	g := gomega.NewWithT(t)

	mock := mimic.NewFunc("f").Params("x", "y").Build()
	mock.Call(1, 2)

	g.Expect(mock).To(BeCalledWith(1, 2))
}

// TestBeCalledWith_NestedMatchers verifies nested matchers apply per
// argument.
func TestBeCalledWith_NestedMatchers(t *testing.T) {
	t.Parallel()
	g := gomega.NewWithT(t)

	mock := mimic.NewFunc("f").Build()
	mock.Call("payload", 9)

	g.Expect(mock).To(BeCalledWith(BeAny, Satisfy(func(n int) error {
		if n < 5 {
			return fmt.Errorf("expected at least 5, got %d", n)
		}

		return nil
	})))
}

// TestBeCalledWith_SingleExtraction verifies single-extraction records match
// one expected value.
func TestBeCalledWith_SingleExtraction(t *testing.T) {
	t.Parallel()
	g := gomega.NewWithT(t)

	mock := mimic.NewFunc("f").Select(1).Build()
	mock.Call("a", "picked", "c")

	g.Expect(mock).To(BeCalledWith("picked"))
}

// TestMatchValue verifies the matcher/DeepEqual fallback split.
func TestMatchValue(t *testing.T) {
	t.Parallel()
	g := gomega.NewWithT(t)

	ok, msg := MatchValue(5, 5)
	g.Expect(ok).To(gomega.BeTrue())
	g.Expect(msg).To(gomega.BeEmpty())

	ok, msg = MatchValue(5, 6)
	g.Expect(ok).To(gomega.BeFalse())
	g.Expect(msg).NotTo(gomega.BeEmpty())

	ok, _ = MatchValue("anything", BeAny)
	g.Expect(ok).To(gomega.BeTrue())
}

// TestMatchersRejectNonMocks verifies mock matchers error on values without a
// call log instead of silently failing.
func TestMatchersRejectNonMocks(t *testing.T) {
	t.Parallel()
	g := gomega.NewWithT(t)

	_, err := BeCalled().Match("not a mock")
	g.Expect(err).To(gomega.HaveOccurred())

	_, err = HaveCallCount(1).Match(42)
	g.Expect(err).To(gomega.HaveOccurred())
}
