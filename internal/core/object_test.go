package core_test

import (
	"testing"

	. "github.com/onsi/gomega"
	"github.com/toejough/mimic"
)

// TestObject_BuildsSlotsInOrder verifies the container holds one entry per
// definition, in definition order.
func TestObject_BuildsSlotsInOrder(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	obj := mimic.NewObject().
		Func("save", mimic.NewFunc("").Returns(true)).
		Value("limit", 10).
		Build()

	g.Expect(obj.Keys()).To(Equal([]mimic.Key{"save", "limit"}))
	g.Expect(obj.Get("limit")).To(Equal(10))
	g.Expect(obj.Mock("save")).NotTo(BeNil())
	g.Expect(obj.Mock("limit")).To(BeNil(), "plain-value slots have no mock")
}

// TestObject_NestedMocksKnowTheirKeyAndReceiver verifies nested mocks are
// named after their key and bound to the container.
func TestObject_NestedMocksKnowTheirKeyAndReceiver(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	var self any

	obj := mimic.NewObject().
		Func("save", mimic.NewFunc("").Body(func(ctx *mimic.BodyContext) any {
			self = ctx.Self

			return nil
		})).
		Build()

	obj.Call("save", "doc")

	g.Expect(obj.Mock("save").Name()).To(Equal("save"))
	g.Expect(self).To(BeIdenticalTo(obj))
}

// TestObject_Reset verifies the three-way reset protocol: nested mocks reset,
// original values restore, added keys delete.
func TestObject_Reset(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	obj := mimic.NewObject().
		Func("save", mimic.NewFunc("")).
		Value("limit", 10).
		Build()

	obj.Call("save", 1)
	obj.Set("limit", 99)
	obj.Set("added", "later")

	obj.Reset()

	g.Expect(obj.Mock("save").CallCount()).To(Equal(0))
	g.Expect(obj.Get("limit")).To(Equal(10))
	g.Expect(obj.Has("added")).To(BeFalse())
}

// TestObject_ResetRestoresMutatedComposites verifies original plain values
// restore from a captured snapshot regardless of intervening mutation.
func TestObject_ResetRestoresMutatedComposites(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	obj := mimic.NewObject().
		Value("tags", []any{"a", "b"}).
		Build()

	obj.Get("tags").([]any)[0] = "mutated"
	obj.Reset()

	g.Expect(obj.Get("tags")).To(Equal([]any{"a", "b"}))
}

// TestObject_ResetRecursesNestedContainers verifies nested object mocks reset
// with their parent.
func TestObject_ResetRecursesNestedContainers(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	obj := mimic.NewObject().
		Object("store", mimic.NewObject().
			Func("get", mimic.NewFunc("")).
			Value("size", 0)).
		Build()

	nested := obj.Get("store").(*mimic.ObjectMock)
	nested.Call("get", "key")
	nested.Set("size", 5)
	nested.Set("extra", true)

	obj.Reset()

	g.Expect(nested.Mock("get").CallCount()).To(Equal(0))
	g.Expect(nested.Get("size")).To(Equal(0))
	g.Expect(nested.Has("extra")).To(BeFalse())
}

// TestObject_OpaqueKeys verifies opaque unique keys are enumerable, settable,
// and resettable exactly like string keys.
func TestObject_OpaqueKeys(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	secret := mimic.NewKey("secret")
	other := mimic.NewKey("secret")

	obj := mimic.NewObject().
		Value(secret, "original").
		Build()

	g.Expect(obj.Has(secret)).To(BeTrue())
	g.Expect(obj.Has(other)).To(BeFalse(), "same description, distinct identity")
	g.Expect(obj.Keys()).To(Equal([]mimic.Key{secret}))

	obj.Set(secret, "changed")
	obj.Set(other, "added")
	obj.Reset()

	g.Expect(obj.Get(secret)).To(Equal("original"))
	g.Expect(obj.Has(other)).To(BeFalse())
}

// TestObject_CallOnPlainValuePanics verifies invoking a non-callable slot
// raises ErrNotCallable.
func TestObject_CallOnPlainValuePanics(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	obj := mimic.NewObject().Value("limit", 10).Build()

	g.Expect(func() { obj.Call("limit") }).To(PanicWith(MatchError(mimic.ErrNotCallable)))
}
