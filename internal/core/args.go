package core

// Param is one declared parameter of a function mock: a name, and optionally
// a default value used when the corresponding positional input is absent.
type Param struct {
	Name       string
	Default    any
	HasDefault bool
}

// argSpec is the static argument-processing configuration of a function mock:
// declared parameters and an optional positional selection filter.
type argSpec struct {
	params    []Param
	selection []int
}

// process turns one invocation's raw positional inputs into an args-record.
// Three mutually exclusive shapes:
//   - exactly one selection index: the raw input at that index, unprocessed;
//   - declared parameters: a *Record of name -> input (or declared default),
//     in declaration order, filtered by the selection list when one is set;
//   - otherwise: a copy of the raw inputs as an ordered []any.
//
// Absent inputs and absent declarations always default; process never fails.
func (s argSpec) process(raw []any) any {
	if len(s.selection) == 1 {
		idx := s.selection[0]
		if idx >= 0 && idx < len(raw) {
			return raw[idx]
		}

		return nil
	}

	if len(s.params) > 0 {
		record := NewRecord()

		for i, param := range s.params {
			if len(s.selection) > 1 && !s.selected(i) {
				continue
			}

			var value any
			if param.HasDefault {
				value = param.Default
			}

			if i < len(raw) && raw[i] != nil {
				value = raw[i]
			}

			record.Set(param.Name, value)
		}

		return record
	}

	out := make([]any, len(raw))
	copy(out, raw)

	return out
}

// selected reports whether positional index i is in the selection list.
func (s argSpec) selected(i int) bool {
	for _, idx := range s.selection {
		if idx == i {
			return true
		}
	}

	return false
}
