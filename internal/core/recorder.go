package core

import "sync"

// recorder is the per-mock call log. Each recorded entry is a deep-cloned
// args-record; indices are 0-based, stable, and never reused within the
// mock's life - only truncate (reset) empties the log.
type recorder struct {
	mu    sync.Mutex
	calls []any
}

// all returns a copy of the full ordered call log.
func (r *recorder) all() []any {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]any, len(r.calls))
	copy(out, r.calls)

	return out
}

// count returns the number of recorded calls.
func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.calls)
}

// get returns the recorded entry at index, or nil when out of range.
func (r *recorder) get(index int) any {
	r.mu.Lock()
	defer r.mu.Unlock()

	if index < 0 || index >= len(r.calls) {
		return nil
	}

	return r.calls[index]
}

// record deep-clones the args-record, appends it, and returns the new
// call's index.
func (r *recorder) record(argsRecord any) int {
	cloned := deepClone(argsRecord)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, cloned)

	return len(r.calls) - 1
}

// truncate empties the call log.
func (r *recorder) truncate() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = nil
}
