package core

import "reflect"

// deepClone structurally copies plain composite values: maps, slices, arrays,
// and Records are cloned recursively. Everything else - structs, pointers,
// funcs, channels, scalars - is captured as-is, so externally-constructed
// objects keep their identity.
func deepClone(value any) any {
	if value == nil {
		return nil
	}

	if rec, ok := value.(*Record); ok {
		clone := NewRecord()
		for _, key := range rec.keys {
			clone.Set(key, deepClone(rec.vals[key]))
		}

		return clone
	}

	val := reflect.ValueOf(value)

	switch val.Kind() {
	case reflect.Map:
		if val.IsNil() {
			return value
		}

		clone := reflect.MakeMapWithSize(val.Type(), val.Len())

		iter := val.MapRange()
		for iter.Next() {
			clone.SetMapIndex(iter.Key(), cloneElem(iter.Value(), val.Type().Elem()))
		}

		return clone.Interface()
	case reflect.Slice:
		if val.IsNil() {
			return value
		}

		clone := reflect.MakeSlice(val.Type(), val.Len(), val.Len())
		for i := range val.Len() {
			clone.Index(i).Set(cloneElem(val.Index(i), val.Type().Elem()))
		}

		return clone.Interface()
	case reflect.Array:
		clone := reflect.New(val.Type()).Elem()
		for i := range val.Len() {
			clone.Index(i).Set(cloneElem(val.Index(i), val.Type().Elem()))
		}

		return clone.Interface()
	default:
		return value
	}
}

// cloneElem deep-clones a single map/slice/array element, preserving the
// element type the containing composite expects.
func cloneElem(elem reflect.Value, elemType reflect.Type) reflect.Value {
	cloned := deepClone(elem.Interface())
	if cloned == nil {
		return reflect.Zero(elemType)
	}

	clonedVal := reflect.ValueOf(cloned)
	if !clonedVal.Type().AssignableTo(elemType) {
		// Interface-typed element holding a concrete composite
		return clonedVal.Convert(elemType)
	}

	return clonedVal
}
