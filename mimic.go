// Package mimic builds test doubles: callable stand-ins for functions,
// composite stand-ins for objects, and per-instance stand-ins for classes,
// each instrumented to record invocations and to produce configured results.
//
// This is the public API entry point. Implementation lives in internal/core.
package mimic

import (
	"github.com/toejough/mimic/internal/core"
)

// BodyContext is the bundle handed to a custom body on each invocation.
type BodyContext = core.BodyContext

// BodyFunc is a custom body supplied at build time.
type BodyFunc = core.BodyFunc

// Callable is the invocation shape shared by function mocks, wrapped
// originals, and spy-able slots.
type Callable = core.Callable

// ClassBuilder accumulates a class mock's member definitions.
type ClassBuilder = core.ClassBuilder

// NewClass creates a builder for a class mock with the given name.
func NewClass(name string) *ClassBuilder {
	return core.NewClass(name)
}

// ClassMock models a constructible type with per-instance state.
type ClassMock = core.ClassMock

// ComputedReturn produces a return value lazily from the call's args-record.
type ComputedReturn = core.ComputedReturn

// ConstructorKey is the reserved member key for a class mock's constructor.
//
//nolint:gochecknoglobals // Re-exported sentinel key
var ConstructorKey = core.ConstructorKey

// Deferred is the promise-like completion value returned by asynchronous
// mocks.
type Deferred = core.Deferred

// Description is the per-instance backing store of a class mock.
type Description = core.Description

// ErrNotCallable reports an attempt to invoke or spy on a slot whose value is
// neither a function mock nor a Callable.
//
//nolint:gochecknoglobals // Re-exported sentinel error
var ErrNotCallable = core.ErrNotCallable

// FuncBuilder accumulates a function mock's configuration.
type FuncBuilder = core.FuncBuilder

// NewFunc creates a builder for a function mock with the given name.
func NewFunc(name string) *FuncBuilder {
	return core.NewFunc(name)
}

// FuncMock is an invocable test double.
type FuncMock = core.FuncMock

// FuncSlot adapts a function-typed variable into a single-slot container.
type FuncSlot = core.FuncSlot

// NewFuncSlot wraps a pointer to the function variable to intercept.
func NewFuncSlot(fn *Callable) *FuncSlot {
	return core.NewFuncSlot(fn)
}

// Instance is a constructed class-mock instance: a forwarding proxy over its
// backing description.
type Instance = core.Instance

// Key identifies a slot in a record, object mock, or description.
type Key = core.Key

// MapSlots adapts a plain map into a spy-able container.
type MapSlots = core.MapSlots

// ObjectBuilder accumulates an object mock's slot definitions.
type ObjectBuilder = core.ObjectBuilder

// NewObject creates a builder for an object mock.
func NewObject() *ObjectBuilder {
	return core.NewObject()
}

// ObjectMock is a composite test double: a container of named slots.
type ObjectMock = core.ObjectMock

// Param is one declared parameter of a function mock.
type Param = core.Param

// Record is an insertion-ordered key/value mapping.
type Record = core.Record

// NewRecord creates an empty record.
func NewRecord() *Record {
	return core.NewRecord()
}

// Resettable is anything that can be restored to its build-time baseline.
type Resettable = core.Resettable

// Session tracks every mock built for one test.
type Session = core.Session

// Slotted is any live container a spy can intercept a member of.
type Slotted = core.Slotted

// SpyHandle is the record of one installed spy.
type SpyHandle = core.SpyHandle

// TestReporter is the minimal interface mimic needs from test frameworks.
type TestReporter = core.TestReporter

// UniqueKey is an opaque identity key for container slots.
type UniqueKey = core.UniqueKey

// NewKey creates a new opaque unique key with a human-readable description.
func NewKey(description string) *UniqueKey {
	return core.NewKey(description)
}

// AsFunc materializes a function mock as a value of the function type F.
func AsFunc[F any](mock *FuncMock) F {
	return core.AsFunc[F](mock)
}

// SpyOn wraps the callable member at key with a call-through function mock.
func SpyOn(host Slotted, key Key) (*SpyHandle, error) {
	return core.SpyOn(host, key)
}

// SpyOnFunc wraps the member at key with a mock built from a plain computed
// body and optional parameter names.
func SpyOnFunc(host Slotted, key Key, body BodyFunc, params ...string) (*SpyHandle, error) {
	return core.SpyOnFunc(host, key, body, params...)
}

// SpyOnWith wraps the callable member at key using the given builder.
func SpyOnWith(host Slotted, key Key, builder *FuncBuilder) (*SpyHandle, error) {
	return core.SpyOnWith(host, key, builder)
}
