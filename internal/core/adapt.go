package core

import (
	"fmt"
	"reflect"
)

// AsFunc materializes a function mock as a value of the function type F, so
// the mock can be installed anywhere a typed function is expected. Calls
// through the typed value run the mock's full invocation pipeline.
//
// Zero-return signatures discard the mock's outcome. Single-return
// signatures require the outcome to be assignable (or convertible) to the
// return type; nil outcomes become the zero value. Multi-return signatures
// spread a []any outcome element-wise.
func AsFunc[F any](mock *FuncMock) F {
	fnType := reflect.TypeFor[F]()
	if fnType.Kind() != reflect.Func {
		panic(fmt.Sprintf("AsFunc: %v is not a function type", fnType))
	}

	fn := reflect.MakeFunc(fnType, func(in []reflect.Value) []reflect.Value {
		args := flattenArgs(fnType, in)
		out := mock.Call(args...)

		return resultValues(fnType, out)
	})

	result, _ := fn.Interface().(F)

	return result
}

// flattenArgs converts the reflected inputs to []any, spreading the variadic
// tail so the mock records the inputs the caller actually passed.
func flattenArgs(fnType reflect.Type, in []reflect.Value) []any {
	args := make([]any, 0, len(in))

	for i, val := range in {
		if fnType.IsVariadic() && i == len(in)-1 {
			for j := range val.Len() {
				args = append(args, val.Index(j).Interface())
			}

			continue
		}

		args = append(args, val.Interface())
	}

	return args
}

// resultValues shapes the mock's outcome into the signature's return values.
func resultValues(fnType reflect.Type, out any) []reflect.Value {
	numOut := fnType.NumOut()
	if numOut == 0 {
		return nil
	}

	if numOut == 1 {
		return []reflect.Value{valueAs(out, fnType.Out(0))}
	}

	outs, ok := out.([]any)
	if !ok || len(outs) != numOut {
		panic(fmt.Sprintf(
			"AsFunc: signature has %d results; mock outcome must be a []any of that length, got %T",
			numOut, out,
		))
	}

	results := make([]reflect.Value, numOut)
	for i := range numOut {
		results[i] = valueAs(outs[i], fnType.Out(i))
	}

	return results
}

// valueAs converts one outcome into a reflect.Value of the target type.
func valueAs(value any, target reflect.Type) reflect.Value {
	if value == nil {
		return reflect.Zero(target)
	}

	val := reflect.ValueOf(value)

	switch {
	case val.Type().AssignableTo(target):
		return val
	case val.Type().ConvertibleTo(target):
		return val.Convert(target)
	default:
		panic(fmt.Sprintf("AsFunc: cannot use %T as %v", value, target))
	}
}
