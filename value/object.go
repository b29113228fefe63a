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

// Obj is an ordered string-keyed mapping to Value, with unique keys and
// insertion order preserved on iteration. Go's map type is deliberately
// not used as the storage for this, since nothing in the language
// guarantees map iteration order, and the data model requires it
// (spec §3: "insertion order preserved and observable in projections").
type Obj struct {
	keys []string
	vals map[string]Value
}

// NewObj returns an empty ordered object.
func NewObj() *Obj {
	return &Obj{vals: make(map[string]Value)}
}

// Get looks up key with an exact, case-sensitive match.
func (o *Obj) Get(key string) (Value, bool) {
	v, ok := o.vals[key]
	return v, ok
}

// Set inserts or replaces the value at key. A fresh key is appended to
// the end of the iteration order; replacing an existing key preserves
// its original position.
func (o *Obj) Set(key string, v Value) {
	if _, exists := o.vals[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.vals[key] = v
}

// Del removes key, if present.
func (o *Obj) Del(key string) {
	if _, exists := o.vals[key]; !exists {
		return
	}
	delete(o.vals, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the object's keys in insertion order. The returned slice
// must not be mutated by the caller.
func (o *Obj) Keys() []string {
	return o.keys
}

// Len reports the number of fields in the object.
func (o *Obj) Len() int {
	return len(o.keys)
}

// Range calls fn for each field in insertion order, stopping early if fn
// returns false.
func (o *Obj) Range(fn func(key string, v Value) bool) {
	for _, k := range o.keys {
		if !fn(k, o.vals[k]) {
			return
		}
	}
}

// CaseFold looks up key first by exact match, then by the first field
// whose name case-folds equal, per the case-insensitive property
// resolution rule shared by WHERE, ORDER BY and SELECT projection (§4.2).
func (o *Obj) CaseFold(key string) (Value, bool) {
	if v, ok := o.vals[key]; ok {
		return v, true
	}
	for _, k := range o.keys {
		if equalFold(k, key) {
			return o.vals[k], true
		}
	}
	return Value{}, false
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if ca >= 'A' && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if cb >= 'A' && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

// Copy returns a deep copy of the object.
func (o *Obj) Copy() *Obj {
	out := NewObj()
	for _, k := range o.keys {
		out.Set(k, o.vals[k].Copy())
	}
	return out
}
