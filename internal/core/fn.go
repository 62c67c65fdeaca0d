package core

// Callable is the invocation shape shared by function mocks, wrapped
// originals, and spy-able slots.
type Callable func(args ...any) any

// BodyContext is the bundle handed to a custom body on each invocation.
type BodyContext struct {
	// Self is the receiver context: the owning container, class instance, or
	// spy host, when there is one.
	Self any
	// Data is the mock's persistent data bag. It survives across calls and
	// clears only on reset.
	Data *Record
	// Index is this call's 0-based index in the call log.
	Index int
	// Args is the processed args-record for this call.
	Args any
	// RawArgs holds the unprocessed positional inputs.
	RawArgs []any
	// Wrapped is the wrapped original implementation, when configured.
	Wrapped Callable
	// Resolved is the outcome the resolver produced for this call;
	// HasResolved reports whether any outcome was configured.
	Resolved    any
	HasResolved bool
}

// BodyFunc is a custom body supplied at build time. Its return value becomes
// the mock's return value.
type BodyFunc func(ctx *BodyContext) any

// FuncBuilder accumulates a function mock's configuration and finalizes it
// into a live mock. Outcomes registered on the builder form the reset
// baseline; outcomes registered on the live mock vanish on reset.
//
// A builder is reusable: each Build produces an independent mock with its own
// call log, data bag, and resolver state.
type FuncBuilder struct {
	name    string
	spec    argSpec
	res     resolver
	body    BodyFunc
	async   bool
	wrapped Callable
}

// NewFunc creates a builder for a function mock with the given name.
func NewFunc(name string) *FuncBuilder {
	return &FuncBuilder{name: name, res: newResolver()}
}

// Async makes the built mock deliver its outcome through a *Deferred.
func (b *FuncBuilder) Async() *FuncBuilder {
	b.async = true

	return b
}

// Body supplies a custom body invoked after resolution on every call.
func (b *FuncBuilder) Body(body BodyFunc) *FuncBuilder {
	b.body = body

	return b
}

// Build finalizes the configuration into a live function mock. The builder's
// resolver configuration is snapshotted as the mock's reset baseline.
func (b *FuncBuilder) Build() *FuncMock {
	mock := &FuncMock{
		name:     b.name,
		spec:     b.spec,
		res:      b.res.snapshot(),
		baseline: b.res.snapshot(),
		body:     b.body,
		async:    b.async,
		wrapped:  b.wrapped,
		data:     NewRecord(),
	}

	return mock
}

// BuildFor builds the mock and tracks it in the reporter's session, so
// ResetAll restores it with every other mock built for the same test.
func (b *FuncBuilder) BuildFor(t TestReporter) *FuncMock {
	mock := b.Build()
	GetOrCreateSession(t).Track(mock)

	return mock
}

// ComputedBy registers a default computed-return handler.
func (b *FuncBuilder) ComputedBy(handler ComputedReturn) *FuncBuilder {
	b.res.setDefault(outcome{set: true, handler: handler})

	return b
}

// ComputedByAt registers a computed-return handler for one call index.
func (b *FuncBuilder) ComputedByAt(index int, handler ComputedReturn) *FuncBuilder {
	b.res.setAt(index, outcome{set: true, handler: handler})

	return b
}

// Panics registers the default outcome as a value to raise.
func (b *FuncBuilder) Panics(value any) *FuncBuilder {
	b.res.setDefault(outcome{set: true, panics: true, value: value})

	return b
}

// PanicsAt registers a raised outcome for one call index.
func (b *FuncBuilder) PanicsAt(index int, value any) *FuncBuilder {
	b.res.setAt(index, outcome{set: true, panics: true, value: value})

	return b
}

// ParamDefault declares a named parameter with a default value, used when the
// positional input at its index is absent.
func (b *FuncBuilder) ParamDefault(name string, def any) *FuncBuilder {
	b.spec.params = append(b.spec.params, Param{Name: name, Default: def, HasDefault: true})

	return b
}

// Params declares named parameters, in positional order.
func (b *FuncBuilder) Params(names ...string) *FuncBuilder {
	for _, name := range names {
		b.spec.params = append(b.spec.params, Param{Name: name})
	}

	return b
}

// Returns registers the default return value.
func (b *FuncBuilder) Returns(value any) *FuncBuilder {
	b.res.setDefault(outcome{set: true, value: value})

	return b
}

// ReturnsAt registers a return value for one call index.
func (b *FuncBuilder) ReturnsAt(index int, value any) *FuncBuilder {
	b.res.setAt(index, outcome{set: true, value: value})

	return b
}

// Select configures the positional selection filter. A single index makes
// every args-record the raw input at that index; several indices filter the
// declared parameters down to those positions.
func (b *FuncBuilder) Select(indices ...int) *FuncBuilder {
	b.spec.selection = append(b.spec.selection, indices...)

	return b
}

// Wraps records an original implementation the mock stands in for. The
// original is handed to custom bodies and called through to by spies.
func (b *FuncBuilder) Wraps(original Callable) *FuncBuilder {
	b.wrapped = original

	return b
}

// FuncMock is an invocable test double. Each invocation processes its raw
// inputs into an args-record, appends a deep-cloned snapshot to the call log,
// resolves a configured outcome for the new call index, and either raises it,
// hands it to the custom body, or returns it directly.
type FuncMock struct {
	name        string
	self        any
	spec        argSpec
	rec         recorder
	res         resolver
	baseline    resolver
	body        BodyFunc
	async       bool
	wrapped     Callable
	callThrough bool
	data        *Record
}

// Call invokes the mock. Synchronous mocks return the resolved outcome (or
// the custom body's result) and raise configured panic outcomes in place.
// Asynchronous mocks return a *Deferred carrying the same outcome.
func (m *FuncMock) Call(raw ...any) any {
	processed := m.spec.process(raw)
	index := m.rec.record(processed)

	if m.async {
		return m.callDeferred(index, processed, raw)
	}

	return m.invoke(index, processed, raw)
}

// CallAt returns the recorded args-record for one call, or nil when out of
// range.
func (m *FuncMock) CallAt(index int) any {
	return m.rec.get(index)
}

// CallCount returns how many times the mock has been invoked since build or
// the last reset.
func (m *FuncMock) CallCount() int {
	return m.rec.count()
}

// Calls returns the full ordered call log.
func (m *FuncMock) Calls() []any {
	return m.rec.all()
}

// ComputeReturns registers a default computed-return handler on the live
// mock. Discarded on reset.
func (m *FuncMock) ComputeReturns(handler ComputedReturn) {
	m.res.setDefault(outcome{set: true, handler: handler})
}

// ComputeReturnsAt registers a computed-return handler for one call index on
// the live mock. Discarded on reset.
func (m *FuncMock) ComputeReturnsAt(index int, handler ComputedReturn) {
	m.res.setAt(index, outcome{set: true, handler: handler})
}

// Data returns the mock's persistent data bag.
func (m *FuncMock) Data() *Record {
	return m.data
}

// Name returns the mock's name.
func (m *FuncMock) Name() string {
	return m.name
}

// Panic registers the default outcome as a value to raise. Discarded on
// reset.
func (m *FuncMock) Panic(value any) {
	m.res.setDefault(outcome{set: true, panics: true, value: value})
}

// PanicAt registers a raised outcome for one call index. Discarded on reset.
func (m *FuncMock) PanicAt(index int, value any) {
	m.res.setAt(index, outcome{set: true, panics: true, value: value})
}

// Reset restores the mock to its build-time baseline: the call log empties,
// the data bag clears, and the resolver returns to exactly the builder's
// configuration. The mock's identity never changes; previously-held
// references stay valid.
func (m *FuncMock) Reset() {
	m.rec.truncate()
	m.res.restoreFrom(m.baseline)
	m.data = NewRecord()
}

// Return registers the default return value on the live mock. Discarded on
// reset.
func (m *FuncMock) Return(value any) {
	m.res.setDefault(outcome{set: true, value: value})
}

// ReturnAt registers a return value for one call index on the live mock.
// Discarded on reset.
func (m *FuncMock) ReturnAt(index int, value any) {
	m.res.setAt(index, outcome{set: true, value: value})
}

// Self returns the mock's receiver context, when bound.
func (m *FuncMock) Self() any {
	return m.self
}

// Wrapped returns the wrapped original implementation, when configured.
func (m *FuncMock) Wrapped() Callable {
	return m.wrapped
}

// callDeferred runs the resolution path synchronously and delivers the
// outcome - or a raised condition, as a rejection - through a Deferred.
func (m *FuncMock) callDeferred(index int, processed any, raw []any) *Deferred {
	deferred := &Deferred{}

	func() {
		defer func() {
			if r := recover(); r != nil {
				deferred.rejected = true
				deferred.panicVal = r
			}
		}()

		deferred.value = m.invoke(index, processed, raw)
	}()

	return deferred
}

// invoke resolves and delivers the outcome for one recorded call.
func (m *FuncMock) invoke(index int, processed any, raw []any) any {
	value, panics, present := m.res.resolve(index, processed)
	if present && panics {
		panic(value)
	}

	if m.body != nil {
		return m.body(&BodyContext{
			Self:        m.self,
			Data:        m.data,
			Index:       index,
			Args:        processed,
			RawArgs:     raw,
			Wrapped:     m.wrapped,
			Resolved:    value,
			HasResolved: present,
		})
	}

	// Spy default: explicit outcomes win, otherwise call through.
	if !present && m.callThrough && m.wrapped != nil {
		return m.wrapped(raw...)
	}

	return value
}

// Deferred is the promise-like completion value returned by asynchronous
// mocks. The outcome is already computed when the Deferred is produced;
// only its delivery is deferred.
type Deferred struct {
	value    any
	panicVal any
	rejected bool
}

// Await returns the settled value, re-raising a rejection as a panic.
func (d *Deferred) Await() any {
	if d.rejected {
		panic(d.panicVal)
	}

	return d.value
}

// Rejected reports whether the deferred settled with a raised condition.
func (d *Deferred) Rejected() bool {
	return d.rejected
}

// Settle returns the value and the raised condition without re-raising.
// Exactly one of the two is meaningful, per Rejected.
func (d *Deferred) Settle() (value, panicVal any) {
	return d.value, d.panicVal
}
