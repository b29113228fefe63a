// Copyright © 2016 Abcum Ltd
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package value implements the dynamic, JSON-like tagged union used both
// as the stored document shape and as the intermediate value produced
// while walking a query AST. It generalises an untyped
// map[string]interface{}/[]interface{} document into an explicit
// Kind-tagged Value, and adds an order-preserving Object variant, since
// Go's map type cannot be trusted to replay insertion order on iteration
// or re-encode.
package value

import "fmt"

// Kind identifies which variant of the tagged union a Value holds.
type Kind uint8

const (
	Null Kind = iota
	Bool
	Integer
	Float
	String
	Array
	Object
)

// String returns a human-readable name for the kind, used in error messages.
func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Integer:
		return "integer"
	case Float:
		return "float"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a recursive tagged union over Null, Bool, Integer, Float,
// String, Array and Object. The zero Value is Null.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	arr  []Value
	obj  *Obj
}

// NewNull returns the Null value.
func NewNull() Value { return Value{kind: Null} }

// NewBool wraps a bool.
func NewBool(b bool) Value { return Value{kind: Bool, b: b} }

// NewInt wraps a signed 64-bit integer.
func NewInt(i int64) Value { return Value{kind: Integer, i: i} }

// NewFloat wraps an IEEE-754 double.
func NewFloat(f float64) Value { return Value{kind: Float, f: f} }

// NewString wraps a UTF-8 string.
func NewString(s string) Value { return Value{kind: String, s: s} }

// NewArray wraps an ordered sequence of values. The slice is not copied.
func NewArray(items []Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: Array, arr: items}
}

// NewObject wraps an *Obj as an Object-kind Value.
func NewObject(o *Obj) Value {
	if o == nil {
		o = NewObj()
	}
	return Value{kind: Object, obj: o}
}

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the Null variant.
func (v Value) IsNull() bool { return v.kind == Null }

// Bool returns the boolean payload and whether v is the Bool variant.
func (v Value) Bool() (bool, bool) { return v.b, v.kind == Bool }

// Int returns the integer payload and whether v is the Integer variant.
func (v Value) Int() (int64, bool) { return v.i, v.kind == Integer }

// Float returns the float payload and whether v is the Float variant.
func (v Value) Float() (float64, bool) { return v.f, v.kind == Float }

// Str returns the string payload and whether v is the String variant.
func (v Value) Str() (string, bool) { return v.s, v.kind == String }

// Arr returns the backing slice and whether v is the Array variant.
func (v Value) Arr() ([]Value, bool) { return v.arr, v.kind == Array }

// ObjVal returns the backing object and whether v is the Object variant.
func (v Value) ObjVal() (*Obj, bool) { return v.obj, v.kind == Object }

// IsNumeric reports whether v is Integer or Float.
func (v Value) IsNumeric() bool { return v.kind == Integer || v.kind == Float }

// AsFloat coerces an Integer or Float value to a float64. ok is false for
// any other kind.
func (v Value) AsFloat() (f float64, ok bool) {
	switch v.kind {
	case Integer:
		return float64(v.i), true
	case Float:
		return v.f, true
	}
	return 0, false
}

// Truthy implements the boolean-context coercion from §4.2: a Bool is its
// own value, and any other value is truthy iff it is not Null. Callers are responsible for
// mapping the separate "undefined" resolution outcome to false before
// calling Truthy, since undefined is not a Value variant.
func (v Value) Truthy() bool {
	if v.kind == Bool {
		return v.b
	}
	return v.kind != Null
}

// String renders a plain-text representation: strings unquoted, numbers
// and booleans in Go's default format. Package eval's ARRAY_CONTAINS
// compares elements by this rendering.
func (v Value) String() string {
	switch v.kind {
	case Null:
		return "null"
	case Bool:
		return fmt.Sprint(v.b)
	case Integer:
		return fmt.Sprint(v.i)
	case Float:
		return fmt.Sprint(v.f)
	case String:
		return v.s
	case Array:
		return fmt.Sprintf("%v", v.arr)
	case Object:
		return fmt.Sprintf("%v", v.obj)
	default:
		return ""
	}
}

// Copy returns a deep copy of v, so that a stored document handed back to
// a caller can be mutated freely without affecting the registry's state.
func (v Value) Copy() Value {
	switch v.kind {
	case Array:
		out := make([]Value, len(v.arr))
		for i, e := range v.arr {
			out[i] = e.Copy()
		}
		return NewArray(out)
	case Object:
		return NewObject(v.obj.Copy())
	default:
		return v
	}
}
