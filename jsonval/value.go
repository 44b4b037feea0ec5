// Package jsonval implements the in-memory JSON value tree: a tagged
// union over the six JSON kinds, an ordered object container, typed
// accessors, conversion from native Go values, and the serializer.
//
// A Value owns its payload exclusively: arrays own their elements,
// objects own their keys and values, and copying a Value (Clone)
// deep-copies the whole subtree. A Value and its subtree are not
// internally synchronized; concurrent reads of an unchanging subtree
// are safe, any mutation requires exclusive access.
package jsonval

import (
	"strconv"

	"github.com/DmitriBogdanov/prototyping-utils/jsonerr"
)

// Kind identifies the alternative a Value currently holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Null is the payload of a null Value. All Nulls compare equal.
type Null struct{}

// Array is an ordered sequence of Values.
type Array []Value

// Value is one node of a JSON tree. The zero Value is null.
type Value struct {
	kind  Kind
	boolv bool
	numv  float64
	strv  string
	arr   Array
	obj   Object
}

// Constructors for each alternative.

func NewNull() Value { return Value{} }

func NewBool(b bool) Value { return Value{kind: KindBool, boolv: b} }

func NewNumber(f float64) Value { return Value{kind: KindNumber, numv: f} }

func NewString(s string) Value { return Value{kind: KindString, strv: s} }
func NewArray(elems ...Value) Value {
	return Value{kind: KindArray, arr: append(Array(nil), elems...)}
}

func NewObject() Value { return Value{kind: KindObject} }

// Kind returns the alternative the value currently holds.
func (v *Value) Kind() Kind { return v.kind }

// Kind predicates. These never fail.

func (v *Value) IsNull() bool { return v.kind == KindNull }

func (v *Value) IsBool() bool { return v.kind == KindBool }

func (v *Value) IsNumber() bool { return v.kind == KindNumber }

func (v *Value) IsString() bool { return v.kind == KindString }

func (v *Value) IsArray() bool { return v.kind == KindArray }

func (v *Value) IsObject() bool { return v.kind == KindObject }

func (v *Value) wrongKind(want Kind) error {
	return jsonerr.New(jsonerr.WrongKind,
		"value is "+v.kind.String()+", not "+want.String())
}

// Checked accessors. Each returns a mutable view of the payload, or a
// WrongKind error when the value holds another alternative.

func (v *Value) GetObject() (*Object, error) {
	if v.kind != KindObject {
		return nil, v.wrongKind(KindObject)
	}
	return &v.obj, nil
}

func (v *Value) GetArray() (*Array, error) {
	if v.kind != KindArray {
		return nil, v.wrongKind(KindArray)
	}
	return &v.arr, nil
}

func (v *Value) GetString() (*string, error) {
	if v.kind != KindString {
		return nil, v.wrongKind(KindString)
	}
	return &v.strv, nil
}

func (v *Value) GetNumber() (*float64, error) {
	if v.kind != KindNumber {
		return nil, v.wrongKind(KindNumber)
	}
	return &v.numv, nil
}

func (v *Value) GetBool() (*bool, error) {
	if v.kind != KindBool {
		return nil, v.wrongKind(KindBool)
	}
	return &v.boolv, nil
}

func (v *Value) GetNull() (Null, error) {
	if v.kind != KindNull {
		return Null{}, v.wrongKind(KindNull)
	}
	return Null{}, nil
}

// Non-failing accessors. Each returns nil when the value holds
// another alternative.

func (v *Value) AsObject() *Object {
	if v.kind != KindObject {
		return nil
	}
	return &v.obj
}

func (v *Value) AsArray() *Array {
	if v.kind != KindArray {
		return nil
	}
	return &v.arr
}

func (v *Value) AsString() *string {
	if v.kind != KindString {
		return nil
	}
	return &v.strv
}

func (v *Value) AsNumber() *float64 {
	if v.kind != KindNumber {
		return nil
	}
	return &v.numv
}

func (v *Value) AsBool() *bool {
	if v.kind != KindBool {
		return nil
	}
	return &v.boolv
}

// Setters replace the whole payload, whatever the previous kind was.

func (v *Value) Set(other Value) { *v = other }

func (v *Value) SetNull() { *v = Value{} }

func (v *Value) SetBool(b bool) { *v = NewBool(b) }

func (v *Value) SetNumber(f float64) { *v = NewNumber(f) }

func (v *Value) SetString(s string) { *v = NewString(s) }

func (v *Value) SetArray(a Array) { *v = Value{kind: KindArray, arr: a} }

func (v *Value) SetObject(o Object) { *v = Value{kind: KindObject, obj: o} }

// Member returns the value stored under key, inserting a null entry
// when the key is absent. A null value is first promoted to an empty
// object; any other non-object kind fails with WrongKind. The
// returned pointer stays valid until the object is mutated again.
func (v *Value) Member(key string) (*Value, error) {
	if v.kind == KindNull {
		*v = NewObject()
	}
	if v.kind != KindObject {
		return nil, v.wrongKind(KindObject)
	}
	return v.obj.getOrInsert(key), nil
}

// At returns the value stored under key. The value must be an object
// (WrongKind otherwise) and the key must be present (KeyNotFound
// otherwise).
func (v *Value) At(key string) (*Value, error) {
	if v.kind != KindObject {
		return nil, v.wrongKind(KindObject)
	}
	entry, ok := v.obj.Get(key)
	if !ok {
		return nil, jsonerr.New(jsonerr.KeyNotFound,
			"key "+strconv.Quote(key)+" is not present in the object")
	}
	return entry, nil
}

// Contains reports whether the object holds key. Fails with WrongKind
// on non-objects.
func (v *Value) Contains(key string) (bool, error) {
	if v.kind != KindObject {
		return false, v.wrongKind(KindObject)
	}
	_, ok := v.obj.Get(key)
	return ok, nil
}

// ValueOr returns the value stored under key when present, and
// fallback otherwise. Fails with WrongKind on non-objects.
func (v *Value) ValueOr(key string, fallback *Value) (*Value, error) {
	if v.kind != KindObject {
		return nil, v.wrongKind(KindObject)
	}
	if entry, ok := v.obj.Get(key); ok {
		return entry, nil
	}
	return fallback, nil
}

// Elem returns the i-th element of an array. Fails with WrongKind on
// non-arrays and with KeyNotFound when i is out of range.
func (v *Value) Elem(i int) (*Value, error) {
	if v.kind != KindArray {
		return nil, v.wrongKind(KindArray)
	}
	if i < 0 || i >= len(v.arr) {
		return nil, jsonerr.New(jsonerr.KeyNotFound,
			"array index "+strconv.Itoa(i)+" is out of range [0, "+strconv.Itoa(len(v.arr))+")")
	}
	return &v.arr[i], nil
}

// Append appends elements to an array. Fails with WrongKind on
// non-arrays.
func (v *Value) Append(elems ...Value) error {
	if v.kind != KindArray {
		return v.wrongKind(KindArray)
	}
	v.arr = append(v.arr, elems...)
	return nil
}

// Clone returns a deep copy of the value: mutating the copy never
// affects the original.
func (v *Value) Clone() Value {
	out := *v
	switch v.kind {
	case KindArray:
		out.arr = make(Array, len(v.arr))
		for i := range v.arr {
			out.arr[i] = v.arr[i].Clone()
		}
	case KindObject:
		out.obj = v.obj.Clone()
	}
	return out
}

// Equal reports deep structural equality. Two nulls are equal; arrays
// and objects compare element-wise and member-wise.
func Equal(a, b *Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.boolv == b.boolv
	case KindNumber:
		return a.numv == b.numv
	case KindString:
		return a.strv == b.strv
	case KindArray:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equal(&a.arr[i], &b.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if a.obj.Len() != b.obj.Len() {
			return false
		}
		for i := 0; i < a.obj.Len(); i++ {
			ma, mb := a.obj.MemberAt(i), b.obj.MemberAt(i)
			if ma.Key != mb.Key || !Equal(&ma.Value, &mb.Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
