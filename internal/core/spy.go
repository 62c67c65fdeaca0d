package core

import "fmt"

// Slotted is any live container a spy can intercept a member of: object
// mocks, descriptions, instances, or the MapSlots/FuncSlot adapters.
type Slotted interface {
	Get(key Key) any
	Set(key Key, value any)
}

// MapSlots adapts a plain map into a spy-able container.
type MapSlots map[Key]any

// Get returns the value at key, or nil if absent.
func (s MapSlots) Get(key Key) any {
	return s[key]
}

// Set stores value at key.
func (s MapSlots) Set(key Key, value any) {
	s[key] = value
}

// FuncSlot adapts a function-typed variable into a single-slot container, so
// a spy can substitute and restore it in place. The key is ignored.
type FuncSlot struct {
	fn *Callable
}

// NewFuncSlot wraps a pointer to the function variable to intercept.
func NewFuncSlot(fn *Callable) *FuncSlot {
	return &FuncSlot{fn: fn}
}

// Get returns the current function value.
func (s *FuncSlot) Get(Key) any {
	return *s.fn
}

// Set installs a replacement. Function mocks are installed as their Call.
func (s *FuncSlot) Set(_ Key, value any) {
	switch fn := value.(type) {
	case *FuncMock:
		*s.fn = fn.Call
	case Callable:
		*s.fn = fn
	case func(args ...any) any:
		*s.fn = fn
	case nil:
		*s.fn = nil
	default:
		panic(fmt.Errorf("%w: %T", ErrNotCallable, value))
	}
}

// SpyHandle is the record of one installed spy: the mock standing in for the
// method, plus everything needed to undo the substitution exactly.
type SpyHandle struct {
	// Mock is the installed replacement, with the original bound as its
	// wrapped reference.
	Mock *FuncMock

	host     Slotted
	key      Key
	original any
}

// Original returns the captured pre-spy method as a Callable.
func (h *SpyHandle) Original() Callable {
	return h.Mock.Wrapped()
}

// Restore reinstalls the captured original verbatim, so the container's
// member identity returns to the pre-spy reference.
func (h *SpyHandle) Restore() {
	h.host.Set(h.key, h.original)
}

// SpyOn wraps the callable member at key with a default function mock:
// explicitly configured return/panic outcomes are honored, and every other
// call passes through to the original with the same receiver and raw args.
func SpyOn(host Slotted, key Key) (*SpyHandle, error) {
	return SpyOnWith(host, key, nil)
}

// SpyOnFunc wraps the member at key with a mock built from a plain computed
// body and optional parameter names.
func SpyOnFunc(host Slotted, key Key, body BodyFunc, params ...string) (*SpyHandle, error) {
	return SpyOnWith(host, key, NewFunc(keyName(key)).Params(params...).Body(body))
}

// SpyOnWith wraps the callable member at key using the given builder. The
// currently-installed member is captured as the original and bound as the
// built mock's wrapped reference before the mock replaces it.
func SpyOnWith(host Slotted, key Key, builder *FuncBuilder) (*SpyHandle, error) {
	original := host.Get(key)

	wrapped, err := asCallable(original)
	if err != nil {
		return nil, fmt.Errorf("cannot spy on %s: %w", keyName(key), err)
	}

	if builder == nil {
		builder = NewFunc(keyName(key))
	}

	builder.wrapped = wrapped

	mock := builder.Build()
	mock.self = host

	if mock.body == nil {
		mock.callThrough = true
	}

	host.Set(key, mock)

	return &SpyHandle{Mock: mock, host: host, key: key, original: original}, nil
}

// asCallable views a slot value as a Callable.
func asCallable(value any) (Callable, error) {
	switch fn := value.(type) {
	case *FuncMock:
		return fn.Call, nil
	case Callable:
		return fn, nil
	case func(args ...any) any:
		return fn, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrNotCallable, value)
	}
}
