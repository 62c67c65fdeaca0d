package core

// ComputedReturn produces a return value lazily from the call's args-record.
type ComputedReturn func(args any) any

// outcome is one registered resolution: a literal value or a computed
// handler, marked at registration time as a plain return or a panic.
type outcome struct {
	set     bool
	panics  bool
	value   any
	handler ComputedReturn
}

// resolver decides the outcome for each call index. Per-index overrides win;
// the explicitly-registered default is the catch-all; with neither, the call
// resolves to no outcome at all. Call indices share the recorder's 0-based
// index space - there is no reserved slot; the no-index registration is the
// sole default mechanism.
type resolver struct {
	def       outcome
	overrides map[int]outcome
}

// newResolver creates an empty resolver.
func newResolver() resolver {
	return resolver{overrides: make(map[int]outcome)}
}

// resolve returns the outcome for a call: the resolved value, whether it must
// be raised, and whether any outcome was configured at all. Computed handlers
// run here, once per resolved invocation.
func (r *resolver) resolve(index int, args any) (value any, panics, present bool) {
	out, ok := r.overrides[index]
	if !ok {
		out = r.def
	}

	if !out.set {
		return nil, false, false
	}

	if out.handler != nil {
		return out.handler(args), out.panics, true
	}

	return out.value, out.panics, true
}

// restoreFrom replaces this resolver's state with a copy of snap's.
func (r *resolver) restoreFrom(snap resolver) {
	r.def = snap.def
	r.overrides = make(map[int]outcome, len(snap.overrides))

	for idx, out := range snap.overrides {
		r.overrides[idx] = out
	}
}

// setAt registers an override for one exact call index.
func (r *resolver) setAt(index int, out outcome) {
	r.overrides[index] = out
}

// setDefault registers the catch-all outcome for every index without a
// specific override.
func (r *resolver) setDefault(out outcome) {
	r.def = out
}

// snapshot returns an independent copy of the resolver's configuration.
func (r *resolver) snapshot() resolver {
	snap := newResolver()
	snap.restoreFrom(*r)

	return snap
}
