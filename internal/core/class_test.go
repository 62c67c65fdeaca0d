package core_test

import (
	"testing"

	. "github.com/onsi/gomega"
	"github.com/toejough/mimic"
)

func counterClass() *mimic.ClassBuilder {
	return mimic.NewClass("Counter").
		Constructor(mimic.NewFunc("").Params("start").Body(func(ctx *mimic.BodyContext) any {
			start := ctx.Args.(*mimic.Record).Get("start")
			ctx.Self.(*mimic.Instance).Set("count", start)

			return nil
		})).
		Func("increment", mimic.NewFunc("")).
		Value("count", 0)
}

// TestClass_InstancesHaveIndependentState verifies each constructed instance
// binds its own description; mutating one never affects another.
func TestClass_InstancesHaveIndependentState(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	class := counterClass().Build()

	first := class.New(10)
	second := class.New(20)

	g.Expect(class.NumInstances()).To(Equal(2))
	g.Expect(first.Get("count")).To(Equal(10))
	g.Expect(second.Get("count")).To(Equal(20))

	first.Set("count", 99)
	g.Expect(second.Get("count")).To(Equal(20))

	first.Call("increment")
	g.Expect(first.Mock("increment").CallCount()).To(Equal(1))
	g.Expect(second.Mock("increment").CallCount()).To(Equal(0))
}

// TestClass_ConstructorReceivesInstanceAndArgs verifies the constructor
// member runs with the new receiver and the construction args.
func TestClass_ConstructorReceivesInstanceAndArgs(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	class := counterClass().Build()
	instance := class.New(7)

	ctor := instance.Mock(mimic.ConstructorKey)
	g.Expect(ctor.CallCount()).To(Equal(1))
	g.Expect(ctor.CallAt(0).(*mimic.Record).Get("start")).To(Equal(7))
	g.Expect(instance.Get("count")).To(Equal(7))
}

// TestClass_PreConfigureFutureInstance verifies configuring instance index 1
// before any construction binds the second constructed instance to it.
func TestClass_PreConfigureFutureInstance(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	class := counterClass().Build()

	class.Describe(1).Mock("increment").Return("pre-configured")
	g.Expect(class.NumInstances()).To(Equal(0), "pre-configuration constructs nothing")

	class.New(1)
	second := class.New(2)

	g.Expect(second.Call("increment")).To(Equal("pre-configured"))
}

// TestClass_SparseDescriptions verifies configuring a high index works
// without reserving state for the skipped slots.
func TestClass_SparseDescriptions(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	class := counterClass().Build()
	desc := class.Describe(2)

	g.Expect(desc).NotTo(BeNil())
	g.Expect(class.Describe(2)).To(BeIdenticalTo(desc), "lookups reuse the slot")
	g.Expect(class.NumInstances()).To(Equal(0))
}

// TestClass_StaticMembersBypassDescriptions verifies statics bind to the
// class itself and survive instance churn.
func TestClass_StaticMembersBypassDescriptions(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	var self any

	class := mimic.NewClass("Registry").
		StaticFunc("lookup", mimic.NewFunc("").Body(func(ctx *mimic.BodyContext) any {
			self = ctx.Self

			return "found"
		})).
		StaticValue("version", 3).
		Func("ping", mimic.NewFunc("")).
		Build()

	g.Expect(class.CallStatic("lookup", "id")).To(Equal("found"))
	g.Expect(self).To(BeIdenticalTo(class), "statics are scoped to the class")
	g.Expect(class.Static("version")).To(Equal(3))
	g.Expect(class.StaticMock("lookup").CallCount()).To(Equal(1))

	instance := class.New()
	g.Expect(instance.Has("lookup")).To(BeFalse(), "statics never land on descriptions")
}

// TestClass_Reset verifies reset drops descriptions, zeroes the counter,
// resets statics, and the next construction starts at slot 0.
func TestClass_Reset(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	class := mimic.NewClass("Widget").
		Func("render", mimic.NewFunc("")).
		StaticFunc("count", mimic.NewFunc("")).
		Build()

	first := class.New()
	class.New()
	first.Call("render")
	class.CallStatic("count")

	class.Reset()

	g.Expect(class.NumInstances()).To(Equal(0))
	g.Expect(class.StaticMock("count").CallCount()).To(Equal(0))

	fresh := class.New()
	g.Expect(fresh.Index()).To(Equal(0), "construction resumes at slot 0")
	g.Expect(fresh.Mock("render").CallCount()).To(Equal(0))
}

// TestClass_InstanceLookup verifies constructed instances are addressable by
// index and unconstructed indices are not.
func TestClass_InstanceLookup(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	class := counterClass().Build()
	class.New(1)

	g.Expect(class.Instance(0)).NotTo(BeNil())
	g.Expect(class.Instance(1)).To(BeNil())
	g.Expect(class.Instance(-1)).To(BeNil())
}

// gauge embeds Instance the way a subtype extends the mock's constructible
// surface: its own state coexists with the forwarded mock state.
type gauge struct {
	*mimic.Instance

	label string
}

// TestClass_EmbeddingForwardsThroughDescription verifies a derived type still
// observes description-backed reads and writes.
func TestClass_EmbeddingForwardsThroughDescription(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	class := counterClass().Build()
	derived := &gauge{Instance: class.New(5), label: "cpu"}

	derived.Set("count", 42)

	g.Expect(class.Describe(0).Get("count")).To(Equal(42), "writes land on the description")
	g.Expect(derived.Get("count")).To(Equal(42))
	g.Expect(derived.label).To(Equal("cpu"), "derived state is untouched")
}
