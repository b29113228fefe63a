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

package client

import (
	"context"

	"github.com/cosmosfake/cosmosfake/page"
	"github.com/cosmosfake/cosmosfake/query"
	"github.com/cosmosfake/cosmosfake/sql"
	"github.com/cosmosfake/cosmosfake/trc"
	"github.com/cosmosfake/cosmosfake/value"
)

// QueryIterator runs a parsed query once against a snapshot of the
// container's documents, then hands out pages via FetchNext, matching the
// HasMoreResults/FetchNextSetAsync shape of a real SDK iterator.
type QueryIterator struct {
	container *Container
	queryText string
	params    map[string]interface{}

	started bool
	done    bool
	token   string
	rows    []*value.Obj

	pager *page.Paginator
	err   error
}

func newQueryIterator(c *Container, queryText string, params map[string]interface{}) *QueryIterator {
	pager, err := page.New(c.client.opts.DB.PageSize)
	return &QueryIterator{
		container: c,
		queryText: queryText,
		params:    params,
		pager:     pager,
		err:       err,
	}
}

// HasMoreResults reports whether a further call to FetchNext would return
// more rows.
func (it *QueryIterator) HasMoreResults() bool {
	return !it.done
}

// FetchNext parses and runs the query (on first call) or advances the
// existing continuation (on later calls) and returns the next page of
// projected documents.
func (it *QueryIterator) FetchNext(ctx context.Context) ([]map[string]interface{}, error) {

	if it.err != nil {
		return nil, it.err
	}
	if it.done {
		return nil, nil
	}

	ctx, span := trc.Start(ctx, "query.FetchNext")
	defer span.End()

	if !it.started {
		it.started = true

		q, err := sql.Parse(it.queryText)
		if err != nil {
			it.done = true
			return nil, err
		}

		bound := bindParams(it.params)

		docs := it.container.store.All()

		if q.Explain {
			plan, err := query.Explain(ctx, q, docs, bound)
			if err != nil {
				it.done = true
				return nil, err
			}
			it.done = true
			return toNative([]*value.Obj{plan}), nil
		}

		result, err := query.Run(ctx, q, docs, bound)
		if err != nil {
			it.done = true
			return nil, err
		}

		it.rows = result

		page, token := it.pager.Start(it.rows)
		it.token = token
		if token == "" {
			it.done = true
		}
		return toNative(page), nil
	}

	page, token := it.pager.Continue(it.rows, it.token)
	it.token = token
	if token == "" {
		it.done = true
	}
	return toNative(page), nil
}

func bindParams(params map[string]interface{}) map[string]value.Value {
	if params == nil {
		return nil
	}
	out := make(map[string]value.Value, len(params))
	for k, v := range params {
		out[k] = value.FromNative(v)
	}
	return out
}

func toNative(rows []*value.Obj) []map[string]interface{} {
	out := make([]map[string]interface{}, len(rows))
	for i, r := range rows {
		out[i] = value.NewObject(r).ToNative().(map[string]interface{})
	}
	return out
}
