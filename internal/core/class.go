package core

// ConstructorKey is the reserved member key for a class mock's constructor.
//
//nolint:gochecknoglobals // Intentional sentinel key shared by all class mocks
var ConstructorKey = NewKey("constructor")

// classMember is one member definition of a class mock.
type classMember struct {
	key    Key
	fn     *FuncBuilder
	value  any
	isMock bool
	static bool
}

// ClassBuilder accumulates a class mock's member definitions: instance
// members (including the reserved constructor), and static members bound to
// the class itself.
type ClassBuilder struct {
	name    string
	members []classMember
}

// NewClass creates a builder for a class mock with the given name.
func NewClass(name string) *ClassBuilder {
	return &ClassBuilder{name: name}
}

// Build finalizes the definitions into a live class mock. Static members are
// built once, bound to the class; instance members are built fresh per
// description on demand.
func (b *ClassBuilder) Build() *ClassMock {
	class := &ClassMock{name: b.name}
	class.statics = &Description{container: newContainer()}

	for _, member := range b.members {
		if !member.static {
			class.members = append(class.members, member)

			continue
		}

		if member.isMock {
			mock := member.fn.Build()
			if mock.name == "" {
				mock.name = keyName(member.key)
			}

			mock.self = class
			class.statics.installMock(member.key, mock)
		} else {
			class.statics.installValue(member.key, member.value)
		}
	}

	return class
}

// BuildFor builds the class mock and tracks it in the reporter's session.
func (b *ClassBuilder) BuildFor(t TestReporter) *ClassMock {
	class := b.Build()
	GetOrCreateSession(t).Track(class)

	return class
}

// Constructor defines the instance member run on construction, under the
// reserved ConstructorKey.
func (b *ClassBuilder) Constructor(fn *FuncBuilder) *ClassBuilder {
	b.members = append(b.members, classMember{key: ConstructorKey, fn: fn, isMock: true})

	return b
}

// Func defines an instance method member.
func (b *ClassBuilder) Func(key Key, fn *FuncBuilder) *ClassBuilder {
	b.members = append(b.members, classMember{key: key, fn: fn, isMock: true})

	return b
}

// StaticFunc defines a static method member, bound to the class mock rather
// than to any instance.
func (b *ClassBuilder) StaticFunc(key Key, fn *FuncBuilder) *ClassBuilder {
	b.members = append(b.members, classMember{key: key, fn: fn, isMock: true, static: true})

	return b
}

// StaticValue defines a static plain-value member.
func (b *ClassBuilder) StaticValue(key Key, value any) *ClassBuilder {
	b.members = append(b.members, classMember{key: key, value: value, static: true})

	return b
}

// Value defines an instance plain-value member. Each description gets its own
// deep-cloned copy, so instances never alias each other's state.
func (b *ClassBuilder) Value(key Key, value any) *ClassBuilder {
	b.members = append(b.members, classMember{key: key, value: value})

	return b
}

// Description is the per-instance backing store of a class mock: every
// instance-member read and write forwards here. Descriptions are created
// lazily and sparsely, so instance index 2 can be configured before indices
// 0-1 exist.
type Description struct {
	container
}

// ClassMock models a constructible type. Instances share the member
// definitions; per-instance state lives in an arena of descriptions indexed
// by construction order. Static members bypass descriptions entirely.
type ClassMock struct {
	name         string
	members      []classMember
	statics      *Description
	descriptions []*Description
	counter      int
}

// CallStatic invokes the static callable member at key.
func (c *ClassMock) CallStatic(key Key, args ...any) any {
	return c.statics.Call(key, args...)
}

// Describe returns the description at the given instance index, creating it
// on demand. Pre-configuring an index that has not been constructed yet
// reserves nothing for the skipped indices beyond their array slots.
// Negative indices yield nil.
func (c *ClassMock) Describe(index int) *Description {
	if index < 0 {
		return nil
	}

	for len(c.descriptions) <= index {
		c.descriptions = append(c.descriptions, nil)
	}

	if c.descriptions[index] == nil {
		c.descriptions[index] = c.newDescription()
	}

	return c.descriptions[index]
}

// Instance returns a handle for an already-constructed instance index, or nil
// when no such instance has been constructed.
func (c *ClassMock) Instance(index int) *Instance {
	if index < 0 || index >= c.counter {
		return nil
	}

	return &Instance{class: c, index: index}
}

// Name returns the class mock's name.
func (c *ClassMock) Name() string {
	return c.name
}

// New constructs the next instance: it binds the description at the current
// counter slot (reusing a pre-configured one), runs the constructor member
// with the new receiver and the given args, then increments the counter.
func (c *ClassMock) New(args ...any) *Instance {
	index := c.counter
	desc := c.Describe(index)
	instance := &Instance{class: c, index: index}

	desc.rebindSelf(instance)

	if ctor := desc.Mock(ConstructorKey); ctor != nil {
		ctor.Call(args...)
	}

	c.counter++

	return instance
}

// NumInstances reports how many instances have actually been constructed.
// Pre-configured descriptions do not count.
func (c *ClassMock) NumInstances() int {
	return c.counter
}

// Reset drops every description, zeroes the instance counter, and resets all
// static members. The next construction starts again at slot 0.
func (c *ClassMock) Reset() {
	c.descriptions = nil
	c.counter = 0
	c.statics.Reset()
}

// Static returns the static member at key.
func (c *ClassMock) Static(key Key) any {
	return c.statics.Get(key)
}

// StaticMock returns the static function mock at key, or nil when the slot
// holds anything else.
func (c *ClassMock) StaticMock(key Key) *FuncMock {
	return c.statics.Mock(key)
}

// newDescription builds a fresh description from the instance-member
// definitions: nested mocks built in place, plain values deep-cloned in.
func (c *ClassMock) newDescription() *Description {
	desc := &Description{container: newContainer()}

	for _, member := range c.members {
		if member.isMock {
			mock := member.fn.Build()
			if mock.name == "" {
				mock.name = keyName(member.key)
			}

			mock.self = desc
			desc.installMock(member.key, mock)
		} else {
			desc.installValue(member.key, deepClone(member.value))
		}
	}

	return desc
}

// Instance is a constructed class-mock instance: a forwarding proxy carrying
// only its class and its construction index. Every member access is
// redirected to the bound description, so a type embedding Instance keeps its
// own state separate from the forwarded mock state.
type Instance struct {
	class *ClassMock
	index int
}

// Call invokes the instance method member at key.
func (in *Instance) Call(key Key, args ...any) any {
	return in.desc().Call(key, args...)
}

// Class returns the owning class mock.
func (in *Instance) Class() *ClassMock {
	return in.class
}

// Get reads the instance member at key through the backing description.
func (in *Instance) Get(key Key) any {
	return in.desc().Get(key)
}

// Has reports whether the backing description has the member key.
func (in *Instance) Has(key Key) bool {
	return in.desc().Has(key)
}

// Index returns the instance's construction index.
func (in *Instance) Index() int {
	return in.index
}

// Keys returns the backing description's keys in insertion order.
func (in *Instance) Keys() []Key {
	return in.desc().Keys()
}

// Mock returns the instance's function mock member at key, or nil.
func (in *Instance) Mock(key Key) *FuncMock {
	return in.desc().Mock(key)
}

// Set writes the instance member at key through the backing description.
func (in *Instance) Set(key Key, value any) {
	in.desc().Set(key, value)
}

func (in *Instance) desc() *Description {
	return in.class.Describe(in.index)
}
