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

package value

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// FromNative converts a plain Go value - as produced by encoding/json,
// the ugorji/go/codec decoder, or hand-built map[string]interface{}/
// []interface{} test fixtures - into a Value tree. Maps lose their
// original key order in this path; callers that need order preserved
// from wire text should use UnmarshalJSON instead.
func FromNative(in interface{}) Value {
	switch x := in.(type) {
	case nil:
		return NewNull()
	case bool:
		return NewBool(x)
	case int:
		return NewInt(int64(x))
	case int64:
		return NewInt(x)
	case float64:
		return NewFloat(x)
	case float32:
		return NewFloat(float64(x))
	case string:
		return NewString(x)
	case []interface{}:
		out := make([]Value, len(x))
		for i, e := range x {
			out[i] = FromNative(e)
		}
		return NewArray(out)
	case []Value:
		return NewArray(x)
	case map[string]interface{}:
		o := NewObj()
		for k, e := range x {
			o.Set(k, FromNative(e))
		}
		return NewObject(o)
	case Value:
		return x
	default:
		return NewString(fmt.Sprint(x))
	}
}

// ToNative converts a Value back into plain Go types suitable for
// encoding/json or handing back to test code that expects
// map[string]interface{}/[]interface{} responses, matching the shape a
// real document-service SDK returns.
func (v Value) ToNative() interface{} {
	switch v.kind {
	case Null:
		return nil
	case Bool:
		return v.b
	case Integer:
		return v.i
	case Float:
		return v.f
	case String:
		return v.s
	case Array:
		out := make([]interface{}, len(v.arr))
		for i, e := range v.arr {
			out[i] = e.ToNative()
		}
		return out
	case Object:
		out := make(map[string]interface{}, v.obj.Len())
		v.obj.Range(func(k string, e Value) bool {
			out[k] = e.ToNative()
			return true
		})
		return out
	default:
		return nil
	}
}

// MarshalJSON renders v as JSON, preserving Object field order.
func (v Value) MarshalJSON() ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := v.writeJSON(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v Value) writeJSON(buf *bytes.Buffer) error {
	switch v.kind {
	case Null:
		buf.WriteString("null")
	case Bool:
		if v.b {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case Integer:
		fmt.Fprintf(buf, "%d", v.i)
	case Float:
		raw, err := json.Marshal(v.f)
		if err != nil {
			return err
		}
		buf.Write(raw)
	case String:
		raw, err := json.Marshal(v.s)
		if err != nil {
			return err
		}
		buf.Write(raw)
	case Array:
		buf.WriteByte('[')
		for i, e := range v.arr {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := e.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case Object:
		buf.WriteByte('{')
		first := true
		v.obj.Range(func(k string, e Value) bool {
			if !first {
				buf.WriteByte(',')
			}
			first = false
			key, _ := json.Marshal(k)
			buf.Write(key)
			buf.WriteByte(':')
			e.writeJSON(buf)
			return true
		})
		buf.WriteByte('}')
	}
	return nil
}

// UnmarshalJSON parses JSON text into v, preserving object field order
// using the stdlib streaming decoder's token API. Neither encoding/json
// nor ugorji/go/codec decode objects into an order-preserving map type,
// so this one corner is implemented directly against
// encoding/json.Decoder.Token rather than against a higher-level decode
// call.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	out, err := decodeValue(dec)
	if err != nil {
		return err
	}
	*v = out
	return nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	return decodeToken(dec, tok)
}

func decodeToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case nil:
		return NewNull(), nil
	case bool:
		return NewBool(t), nil
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return NewInt(i), nil
		}
		f, err := t.Float64()
		if err != nil {
			return Value{}, err
		}
		return NewFloat(f), nil
	case string:
		return NewString(t), nil
	case json.Delim:
		switch t {
		case '[':
			items := []Value{}
			for dec.More() {
				v, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				items = append(items, v)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return Value{}, err
			}
			return NewArray(items), nil
		case '{':
			obj := NewObj()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				key, _ := keyTok.(string)
				v, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				obj.Set(key, v)
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return Value{}, err
			}
			return NewObject(obj), nil
		}
	}
	return Value{}, fmt.Errorf("value: unexpected JSON token %v", tok)
}
