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

// Package query runs a parsed sql.Query over a snapshot of documents,
// staging the work as WHERE, then ORDER BY, then TOP/LIMIT, then
// projection.
package query

import (
	"context"
	"sort"

	"github.com/cosmosfake/cosmosfake/eval"
	"github.com/cosmosfake/cosmosfake/sql"
	"github.com/cosmosfake/cosmosfake/value"
)

// Run executes q against docs and returns the projected result rows in
// final order. docs is never mutated.
func Run(ctx context.Context, q *sql.Query, docs []*value.Obj, params map[string]value.Value) ([]*value.Obj, error) {

	filtered, err := filter(ctx, q, docs, params)
	if err != nil {
		return nil, err
	}

	ordered, err := order(ctx, q, filtered, params)
	if err != nil {
		return nil, err
	}

	limited := limit(q, ordered)

	return project(q, limited), nil
}

// Explain reports the shape of q without projecting any document fields:
// the container scanned, whether a filter or order stage runs, the ORDER BY
// directions, and the row count a full filter pass over docs would keep,
// capped by TOP and LIMIT. It never returns
// document contents, matching a query-plan response rather than a result
// set.
func Explain(ctx context.Context, q *sql.Query, docs []*value.Obj, params map[string]value.Value) (*value.Obj, error) {

	filtered, err := filter(ctx, q, docs, params)
	if err != nil {
		return nil, err
	}

	estimated := len(filtered)
	if q.Select.HasTop && q.Select.Top < estimated {
		estimated = q.Select.Top
	}
	if q.HasLimit && q.Limit < estimated {
		estimated = q.Limit
	}

	plan := value.NewObj()
	plan.Set("container", value.NewString(q.From.Container))
	plan.Set("scannedCount", value.NewInt(int64(len(docs))))
	plan.Set("estimatedRowCount", value.NewInt(int64(estimated)))
	plan.Set("hasWhere", value.NewBool(q.Where != nil))
	plan.Set("hasOrderBy", value.NewBool(len(q.OrderBy) > 0))

	fields := make([]value.Value, len(q.OrderBy))
	for i, f := range q.OrderBy {
		dir := "ASC"
		if f.Desc {
			dir = "DESC"
		}
		fields[i] = value.NewString(dir)
	}
	plan.Set("orderDirections", value.NewArray(fields))

	return plan, nil
}

func filter(ctx context.Context, q *sql.Query, docs []*value.Obj, params map[string]value.Value) ([]*value.Obj, error) {
	if q.Where == nil {
		return docs, nil
	}
	out := make([]*value.Obj, 0, len(docs))
	for _, doc := range docs {
		r, err := eval.Eval(ctx, q.Where, doc, params)
		if err != nil {
			return nil, err
		}
		if r.Defined && r.Value.Truthy() {
			out = append(out, doc)
		}
	}
	return out, nil
}

// order performs a stable sort over docs by the ORDER BY terms, preserving
// the relative position of documents that the query's OrderBy fields rank
// as equal.
func order(ctx context.Context, q *sql.Query, docs []*value.Obj, params map[string]value.Value) ([]*value.Obj, error) {
	if len(q.OrderBy) == 0 {
		return docs, nil
	}

	out := make([]*value.Obj, len(docs))
	copy(out, docs)

	var sortErr error
	sort.SliceStable(out, func(i, j int) bool {
		if sortErr != nil {
			return false
		}
		less, err := orderLess(ctx, q.OrderBy, out[i], out[j], params)
		if err != nil {
			sortErr = err
			return false
		}
		return less
	})

	return out, sortErr
}

func orderLess(ctx context.Context, fields []*sql.OrderField, a, b *value.Obj, params map[string]value.Value) (bool, error) {
	for _, f := range fields {
		va, err := eval.Eval(ctx, f.Expr, a, params)
		if err != nil {
			return false, err
		}
		vb, err := eval.Eval(ctx, f.Expr, b, params)
		if err != nil {
			return false, err
		}
		c := eval.Order(va, vb)
		if c == 0 {
			continue
		}
		if f.Desc {
			return c > 0, nil
		}
		return c < 0, nil
	}
	return false, nil
}

func limit(q *sql.Query, docs []*value.Obj) []*value.Obj {
	n := len(docs)
	if q.Select.HasTop && q.Select.Top < n {
		n = q.Select.Top
	}
	if q.HasLimit && q.Limit < n {
		n = q.Limit
	}
	if n == len(docs) {
		return docs
	}
	return docs[:n]
}

// project builds the output rows. A wildcard select returns the document
// unchanged; an explicit field list copies only the named, alias-stripped
// paths into a fresh ordered object, always including "id".
func project(q *sql.Query, docs []*value.Obj) []*value.Obj {
	if q.Select.Wildcard {
		return docs
	}

	out := make([]*value.Obj, len(docs))
	for i, doc := range docs {
		row := value.NewObj()
		if idv, ok := doc.CaseFold("id"); ok {
			row.Set("id", idv)
		}
		for _, f := range q.Select.Fields {
			prop, ok := f.Expr.(*sql.Property)
			if !ok {
				continue
			}
			v := resolvePath(doc, prop.Path)
			row.Set(f.Alias, v)
		}
		out[i] = row
	}
	return out
}

func resolvePath(doc *value.Obj, path []string) value.Value {
	var cur value.Value = value.NewObject(doc)
	for _, seg := range path {
		obj, ok := cur.ObjVal()
		if !ok {
			return value.NewNull()
		}
		v, ok := obj.CaseFold(seg)
		if !ok {
			return value.NewNull()
		}
		cur = v
	}
	return cur
}
