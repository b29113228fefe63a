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

package eval

import "github.com/cosmosfake/cosmosfake/value"

// Resolved carries the outcome of evaluating an expression against a
// document. Defined distinguishes "the path is missing" (Defined=false)
// from "the path is present and holds Null" (Defined=true, Value.IsNull()).
type Resolved struct {
	Value   value.Value
	Defined bool
}

func defined(v value.Value) Resolved   { return Resolved{Value: v, Defined: true} }
func undefined() Resolved              { return Resolved{Value: value.NewNull(), Defined: false} }
func boolResolved(b bool) Resolved     { return Resolved{Value: value.NewBool(b), Defined: true} }

// resolveProperty walks a dotted field path against doc, falling back to a
// case-insensitive match at each segment when an exact match is absent, per
// the data model's case-insensitive property resolution rule.
func resolveProperty(doc *value.Obj, path []string) Resolved {
	var cur value.Value = value.NewObject(doc)
	for _, seg := range path {
		obj, ok := cur.ObjVal()
		if !ok {
			return undefined()
		}
		v, ok := obj.CaseFold(seg)
		if !ok {
			return undefined()
		}
		cur = v
	}
	return defined(cur)
}
