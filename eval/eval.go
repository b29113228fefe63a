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

import (
	"context"

	"github.com/cosmosfake/cosmosfake/sql"
	"github.com/cosmosfake/cosmosfake/value"
)

// Eval walks expr against doc, resolving properties via doc's fields and
// parameters via params, and returns the resulting value.
func Eval(ctx context.Context, expr sql.Expr, doc *value.Obj, params map[string]value.Value) (Resolved, error) {

	switch x := expr.(type) {

	case *sql.Constant:
		if x.Value == nil {
			return defined(value.NewNull()), nil
		}
		return defined(value.FromNative(x.Value)), nil

	case *sql.Property:
		return resolveProperty(doc, x.Path), nil

	case *sql.Parameter:
		v, ok := params[x.Name]
		if !ok {
			return undefined(), nil
		}
		return defined(v), nil

	case *sql.Unary:
		operand, err := Eval(ctx, x.Operand, doc, params)
		if err != nil {
			return Resolved{}, err
		}
		b, ok := operand.Value.Bool()
		if !operand.Defined || !ok {
			return Resolved{}, errf("NOT requires a boolean operand")
		}
		return boolResolved(!b), nil

	case *sql.Binary:
		return evalBinary(ctx, x, doc, params)

	case *sql.Between:
		return evalBetween(ctx, x, doc, params)

	case *sql.FnCall:
		args := make([]Resolved, len(x.Args))
		for i, a := range x.Args {
			r, err := Eval(ctx, a, doc, params)
			if err != nil {
				return Resolved{}, err
			}
			args[i] = r
		}
		return runFunc(ctx, x.Name, args)

	}

	return Resolved{}, errf("unsupported expression node %T", expr)
}

func evalBinary(ctx context.Context, x *sql.Binary, doc *value.Obj, params map[string]value.Value) (Resolved, error) {

	if x.Op == sql.AND {
		lhs, err := Eval(ctx, x.LHS, doc, params)
		if err != nil {
			return Resolved{}, err
		}
		if !truth(lhs) {
			return boolResolved(false), nil
		}
		rhs, err := Eval(ctx, x.RHS, doc, params)
		if err != nil {
			return Resolved{}, err
		}
		return boolResolved(truth(rhs)), nil
	}

	if x.Op == sql.OR {
		lhs, err := Eval(ctx, x.LHS, doc, params)
		if err != nil {
			return Resolved{}, err
		}
		if truth(lhs) {
			return boolResolved(true), nil
		}
		rhs, err := Eval(ctx, x.RHS, doc, params)
		if err != nil {
			return Resolved{}, err
		}
		return boolResolved(truth(rhs)), nil
	}

	lhs, err := Eval(ctx, x.LHS, doc, params)
	if err != nil {
		return Resolved{}, err
	}
	rhs, err := Eval(ctx, x.RHS, doc, params)
	if err != nil {
		return Resolved{}, err
	}

	if !lhs.Defined || !rhs.Defined {
		return boolResolved(false), nil
	}

	ok, err := compareOp(x.Op, lhs.Value, rhs.Value)
	if err != nil {
		return Resolved{}, err
	}
	return boolResolved(ok), nil
}

// truth coerces a resolved WHERE/AND/OR operand to a boolean: an undefined
// or Null value is false, a Bool is its own value, and any other value is
// truthy, per the data
// model's boolean-context coercion rule. NOT is the one context exempt from
// this coercion; see the Unary case in Eval.
func truth(r Resolved) bool {
	if !r.Defined {
		return false
	}
	return r.Value.Truthy()
}

func evalBetween(ctx context.Context, x *sql.Between, doc *value.Obj, params map[string]value.Value) (Resolved, error) {

	operand, err := Eval(ctx, x.Operand, doc, params)
	if err != nil {
		return Resolved{}, err
	}
	low, err := Eval(ctx, x.Low, doc, params)
	if err != nil {
		return Resolved{}, err
	}
	high, err := Eval(ctx, x.High, doc, params)
	if err != nil {
		return Resolved{}, err
	}

	if !operand.Defined || !low.Defined || !high.Defined {
		return boolResolved(false), nil
	}

	geLow, err := compareOp(sql.GTE, operand.Value, low.Value)
	if err != nil {
		return Resolved{}, err
	}
	leHigh, err := compareOp(sql.LTE, operand.Value, high.Value)
	if err != nil {
		return Resolved{}, err
	}

	return boolResolved(geLow && leHigh), nil
}
