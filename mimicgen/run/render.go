package run

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dave/dst"
)

var errUnsupportedType = errors.New("unsupported type expression")

// renderType renders a type expression back to Go source text.
func renderType(expr dst.Expr) (string, error) {
	switch typed := expr.(type) {
	case *dst.Ident:
		return typed.Name, nil
	case *dst.SelectorExpr:
		pkg, err := renderType(typed.X)
		if err != nil {
			return "", err
		}

		return pkg + "." + typed.Sel.Name, nil
	case *dst.StarExpr:
		inner, err := renderType(typed.X)
		if err != nil {
			return "", err
		}

		return "*" + inner, nil
	case *dst.ArrayType:
		return renderArrayType(typed)
	case *dst.MapType:
		key, err := renderType(typed.Key)
		if err != nil {
			return "", err
		}

		value, err := renderType(typed.Value)
		if err != nil {
			return "", err
		}

		return "map[" + key + "]" + value, nil
	case *dst.ChanType:
		return renderChanType(typed)
	case *dst.Ellipsis:
		inner, err := renderType(typed.Elt)
		if err != nil {
			return "", err
		}

		return "..." + inner, nil
	case *dst.FuncType:
		return renderFuncType(typed)
	case *dst.InterfaceType:
		if len(typed.Methods.List) == 0 {
			return "any", nil
		}

		return "", fmt.Errorf("%w: inline non-empty interface", errUnsupportedType)
	case *dst.BasicLit:
		return typed.Value, nil
	default:
		return "", fmt.Errorf("%w: %T", errUnsupportedType, expr)
	}
}

// renderArrayType renders slice and fixed-length array types.
func renderArrayType(arr *dst.ArrayType) (string, error) {
	elt, err := renderType(arr.Elt)
	if err != nil {
		return "", err
	}

	if arr.Len == nil {
		return "[]" + elt, nil
	}

	length, err := renderType(arr.Len)
	if err != nil {
		return "", err
	}

	return "[" + length + "]" + elt, nil
}

// renderChanType renders channel types with their direction.
func renderChanType(channel *dst.ChanType) (string, error) {
	value, err := renderType(channel.Value)
	if err != nil {
		return "", err
	}

	switch channel.Dir {
	case dst.RECV:
		return "<-chan " + value, nil
	case dst.SEND:
		return "chan<- " + value, nil
	default:
		return "chan " + value, nil
	}
}

// renderFuncType renders an inline function type.
func renderFuncType(ftype *dst.FuncType) (string, error) {
	params, err := renderFieldTypes(ftype.Params)
	if err != nil {
		return "", err
	}

	results, err := renderFieldTypes(ftype.Results)
	if err != nil {
		return "", err
	}

	switch len(results) {
	case 0:
		return "func(" + strings.Join(params, ", ") + ")", nil
	case 1:
		return "func(" + strings.Join(params, ", ") + ") " + results[0], nil
	default:
		return "func(" + strings.Join(params, ", ") + ") (" + strings.Join(results, ", ") + ")", nil
	}
}

// renderFieldTypes renders each field in a field list as a bare type, dropping names.
func renderFieldTypes(fields *dst.FieldList) ([]string, error) {
	if fields == nil {
		return nil, nil
	}

	var rendered []string

	for _, field := range fields.List {
		typ, err := renderType(field.Type)
		if err != nil {
			return nil, err
		}

		count := len(field.Names)
		if count == 0 {
			count = 1
		}

		for range count {
			rendered = append(rendered, typ)
		}
	}

	return rendered, nil
}
