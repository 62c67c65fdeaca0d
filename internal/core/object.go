package core

import (
	"errors"
	"fmt"
)

// ErrNotCallable reports an attempt to invoke or spy on a slot whose value is
// neither a function mock nor a Callable.
var ErrNotCallable = errors.New("slot value is not callable")

// slotEntry is the build-time snapshot of one container slot, used to drive
// reset: nested mocks reset recursively, plain values restore from the
// deep-cloned original.
type slotEntry struct {
	isMock   bool
	mock     any // the built *FuncMock or *ObjectMock
	original any
}

// container is the shared slot store behind object mocks and class-instance
// descriptions: an insertion-ordered mapping of string or opaque keys to
// nested mocks or plain values, plus the baseline snapshot reset restores.
type container struct {
	slots    *Record
	baseline map[Key]slotEntry
}

func newContainer() container {
	return container{
		slots:    NewRecord(),
		baseline: make(map[Key]slotEntry),
	}
}

// Call invokes the callable at key with the given args.
func (c *container) Call(key Key, args ...any) any {
	switch fn := c.slots.Get(key).(type) {
	case *FuncMock:
		return fn.Call(args...)
	case Callable:
		return fn(args...)
	case func(args ...any) any:
		return fn(args...)
	default:
		panic(fmt.Errorf("%w: %s", ErrNotCallable, keyName(key)))
	}
}

// Delete removes the slot at key.
func (c *container) Delete(key Key) {
	c.slots.Delete(key)
}

// Get returns the value at key, or nil if absent.
func (c *container) Get(key Key) any {
	return c.slots.Get(key)
}

// Has reports whether key is present.
func (c *container) Has(key Key) bool {
	return c.slots.Has(key)
}

// Keys returns the container's keys in insertion order, string and opaque
// keys alike.
func (c *container) Keys() []Key {
	return c.slots.Keys()
}

// Len returns the number of slots.
func (c *container) Len() int {
	return c.slots.Len()
}

// Mock returns the nested function mock at key, or nil when the slot holds
// anything else.
func (c *container) Mock(key Key) *FuncMock {
	mock, _ := c.slots.Get(key).(*FuncMock)

	return mock
}

// Reset walks every key currently present: originally-nested mocks are reset
// (recursively, for nested containers) and reinstalled, original plain values
// are restored from their captured snapshot, and keys added after build are
// deleted.
func (c *container) Reset() {
	for _, key := range c.slots.Keys() {
		entry, ok := c.baseline[key]

		switch {
		case !ok:
			c.slots.Delete(key)
		case entry.isMock:
			if resettable, isResettable := entry.mock.(Resettable); isResettable {
				resettable.Reset()
			}

			c.slots.Set(key, entry.mock)
		default:
			c.slots.Set(key, deepClone(entry.original))
		}
	}
}

// Set stores value at key, appending the key if it is new.
func (c *container) Set(key Key, value any) {
	c.slots.Set(key, value)
}

// installMock records a built nested mock as a baseline slot.
func (c *container) installMock(key Key, mock any) {
	c.slots.Set(key, mock)
	c.baseline[key] = slotEntry{isMock: true, mock: mock}
}

// installValue records a plain value as a baseline slot, snapshotting the
// original for reset.
func (c *container) installValue(key Key, value any) {
	c.slots.Set(key, value)
	c.baseline[key] = slotEntry{original: deepClone(value)}
}

// rebindSelf points every nested function mock's receiver at self.
func (c *container) rebindSelf(self any) {
	for _, key := range c.slots.Keys() {
		if mock, ok := c.slots.Get(key).(*FuncMock); ok {
			mock.self = self
		}
	}
}

// objectDef is one pending slot definition on an ObjectBuilder.
type objectDef struct {
	key    Key
	fn     *FuncBuilder
	nested *ObjectBuilder
	value  any
}

// ObjectBuilder accumulates an object mock's slot definitions, in insertion
// order, and finalizes them into a container.
type ObjectBuilder struct {
	defs []objectDef
}

// NewObject creates a builder for an object mock.
func NewObject() *ObjectBuilder {
	return &ObjectBuilder{}
}

// Build finalizes the definitions into a live object mock. Nested function
// mocks are built in place, named after their key when unnamed, with the
// container as their receiver context.
func (b *ObjectBuilder) Build() *ObjectMock {
	obj := &ObjectMock{container: newContainer()}

	for _, def := range b.defs {
		switch {
		case def.fn != nil:
			mock := def.fn.Build()
			if mock.name == "" {
				mock.name = keyName(def.key)
			}

			mock.self = obj
			obj.installMock(def.key, mock)
		case def.nested != nil:
			obj.installMock(def.key, def.nested.Build())
		default:
			obj.installValue(def.key, def.value)
		}
	}

	return obj
}

// BuildFor builds the object mock and tracks it in the reporter's session.
func (b *ObjectBuilder) BuildFor(t TestReporter) *ObjectMock {
	obj := b.Build()
	GetOrCreateSession(t).Track(obj)

	return obj
}

// Func defines a nested function-mock slot.
func (b *ObjectBuilder) Func(key Key, fn *FuncBuilder) *ObjectBuilder {
	b.defs = append(b.defs, objectDef{key: key, fn: fn})

	return b
}

// Object defines a nested object-mock slot, reset recursively with its
// parent.
func (b *ObjectBuilder) Object(key Key, nested *ObjectBuilder) *ObjectBuilder {
	b.defs = append(b.defs, objectDef{key: key, nested: nested})

	return b
}

// Value defines a plain-value slot.
func (b *ObjectBuilder) Value(key Key, value any) *ObjectBuilder {
	b.defs = append(b.defs, objectDef{key: key, value: value})

	return b
}

// ObjectMock is a composite test double: a container of named slots, each a
// nested mock or a plain value.
type ObjectMock struct {
	container
}
