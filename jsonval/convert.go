package jsonval

import (
	"fmt"
	"reflect"

	"github.com/DmitriBogdanov/prototyping-utils/jsonerr"
)

// From converts a native Go value into a JSON Value.
//
// Because a Go type can satisfy several categories at once (a named
// string type is both "iterable" and "string-like"), dispatch follows
// a fixed priority:
//
//	String > Object > Array > Bool > Null > Numeric
//
// "String-like" means a string kind or a byte slice; "object-like"
// means a map with string-kinded keys; "array-like" means a slice or
// array; "numeric" means any integer, unsigned, or float kind.
// Pointers and interfaces are dereferenced first; nil converts to
// null. A type matching no category fails with WrongKind, the
// runtime analogue of an exhaustive-or-compile-error dispatch.
func From(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return NewNull(), nil
	case Value:
		return t.Clone(), nil
	case *Value:
		if t == nil {
			return NewNull(), nil
		}
		return t.Clone(), nil
	case Object:
		return Value{kind: KindObject, obj: t.Clone()}, nil
	case Array:
		v := Value{kind: KindArray, arr: make(Array, len(t))}
		for i := range t {
			v.arr[i] = t[i].Clone()
		}
		return v, nil
	case Null:
		return NewNull(), nil
	case string:
		return NewString(t), nil
	case []byte:
		return NewString(string(t)), nil
	case bool:
		return NewBool(t), nil
	case float64:
		return NewNumber(t), nil
	case float32:
		return NewNumber(float64(t)), nil
	case int:
		return NewNumber(float64(t)), nil
	case int8:
		return NewNumber(float64(t)), nil
	case int16:
		return NewNumber(float64(t)), nil
	case int32:
		return NewNumber(float64(t)), nil
	case int64:
		return NewNumber(float64(t)), nil
	case uint:
		return NewNumber(float64(t)), nil
	case uint8:
		return NewNumber(float64(t)), nil
	case uint16:
		return NewNumber(float64(t)), nil
	case uint32:
		return NewNumber(float64(t)), nil
	case uint64:
		return NewNumber(float64(t)), nil
	}
	return fromReflect(reflect.ValueOf(x))
}

// MustFrom is From for values known to convert; it panics otherwise.
// Intended for literals in construction code and tests.
func MustFrom(x any) Value {
	v, err := From(x)
	if err != nil {
		panic(err)
	}
	return v
}

func fromReflect(rv reflect.Value) (Value, error) {
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return NewNull(), nil
		}
		rv = rv.Elem()
	}

	t := rv.Type()
	switch {
	case t.Kind() == reflect.String:
		return NewString(rv.String()), nil

	case t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8:
		return NewString(string(rv.Bytes())), nil

	case t.Kind() == reflect.Map && t.Key().Kind() == reflect.String:
		v := NewObject()
		iter := rv.MapRange()
		for iter.Next() {
			entry, err := From(iter.Value().Interface())
			if err != nil {
				return Value{}, err
			}
			v.obj.Set(iter.Key().String(), entry)
		}
		return v, nil

	case t.Kind() == reflect.Slice || t.Kind() == reflect.Array:
		v := Value{kind: KindArray, arr: make(Array, 0, rv.Len())}
		for i := 0; i < rv.Len(); i++ {
			elem, err := From(rv.Index(i).Interface())
			if err != nil {
				return Value{}, err
			}
			v.arr = append(v.arr, elem)
		}
		return v, nil

	case t.Kind() == reflect.Bool:
		return NewBool(rv.Bool()), nil

	case t == reflect.TypeOf(Null{}):
		return NewNull(), nil

	case isNumericKind(t.Kind()):
		return NewNumber(rv.Convert(reflect.TypeOf(float64(0))).Float()), nil
	}

	return Value{}, jsonerr.New(jsonerr.WrongKind,
		fmt.Sprintf("cannot convert Go type %s to a JSON value", t))
}

func isNumericKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Uintptr, reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// Array1D builds an array value from a flat list of leaves, each
// converted with From.
func Array1D[T any](items ...T) (Value, error) {
	v := Value{kind: KindArray, arr: make(Array, 0, len(items))}
	for _, item := range items {
		elem, err := From(item)
		if err != nil {
			return Value{}, err
		}
		v.arr = append(v.arr, elem)
	}
	return v, nil
}

// Array2D builds an array of arrays; each row goes through Array1D.
func Array2D[T any](rows ...[]T) (Value, error) {
	v := Value{kind: KindArray, arr: make(Array, 0, len(rows))}
	for _, row := range rows {
		elem, err := Array1D(row...)
		if err != nil {
			return Value{}, err
		}
		v.arr = append(v.arr, elem)
	}
	return v, nil
}

// Array3D builds an array of arrays of arrays; each plane goes
// through Array2D. Deeper nesting needs explicit construction.
func Array3D[T any](planes ...[][]T) (Value, error) {
	v := Value{kind: KindArray, arr: make(Array, 0, len(planes))}
	for _, plane := range planes {
		elem, err := Array2D(plane...)
		if err != nil {
			return Value{}, err
		}
		v.arr = append(v.arr, elem)
	}
	return v, nil
}
