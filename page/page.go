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

// Package page implements continuation-token pagination over a
// materialized query result snapshot. Snapshots are held in a
// dgraph-io/ristretto cache rather than a plain map, so that a busy
// fake with many concurrent open iterators ages out cold continuations
// under memory pressure instead of growing without bound.
package page

import (
	"strconv"
	"strings"

	"github.com/dgraph-io/ristretto"
	"github.com/rs/xid"

	"github.com/cosmosfake/cosmosfake/value"
)

// Paginator hands out continuation tokens over a fixed result snapshot
// and slices out each page on Start and Continue. It is not safe for concurrent use by
// multiple goroutines on the same instance - a fresh Paginator is created
// per QueryIterator.
type Paginator struct {
	cache    *ristretto.Cache
	pageSize int
}

type snapshot struct {
	rows []*value.Obj
}

// New returns a Paginator backed by a fresh cache, sized for a modest
// number of concurrently open continuations.
func New(pageSize int) (*Paginator, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e4,
		MaxCost:     1 << 24,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	if pageSize <= 0 {
		pageSize = 100
	}
	return &Paginator{cache: cache, pageSize: pageSize}, nil
}

// Start materializes rows as a new snapshot and returns its first page
// together with a continuation token, or an empty token if the whole
// snapshot fit in one page.
func (p *Paginator) Start(rows []*value.Obj) ([]*value.Obj, string) {
	return p.page(rows, 0)
}

// Continue resumes a snapshot from token and returns the next page. An
// unknown or expired token is treated leniently: pagination restarts from
// offset zero of rows rather than erroring, since the fake has no durable
// continuation store to distinguish "expired" from "never existed".
func (p *Paginator) Continue(rows []*value.Obj, token string) ([]*value.Obj, string) {
	if token == "" {
		return p.page(rows, 0)
	}
	cached, ok := p.cache.Get(token)
	if !ok {
		return p.page(rows, 0)
	}
	snap := cached.(*snapshot)
	offset, ok := decodeOffset(token)
	if !ok {
		return p.page(snap.rows, 0)
	}
	return p.page(snap.rows, offset)
}

func (p *Paginator) page(rows []*value.Obj, offset int) ([]*value.Obj, string) {

	if offset >= len(rows) {
		return []*value.Obj{}, ""
	}

	end := offset + p.pageSize
	if end > len(rows) {
		end = len(rows)
	}

	page := rows[offset:end]

	if end >= len(rows) {
		return page, ""
	}

	token := p.issueToken(end)
	p.cache.Set(token, &snapshot{rows: rows}, int64(len(rows)))
	p.cache.Wait()

	return page, token
}

// issueToken mints an opaque, process-local continuation token that embeds
// the next offset. Continue reads that offset only for a token still held
// in the cache; a cache miss restarts at offset zero.
func (p *Paginator) issueToken(offset int) string {
	return xid.New().String() + "." + strconv.Itoa(offset)
}

// decodeOffset extracts the embedded offset from a token minted by
// issueToken. ok is false for any string not shaped like one of ours.
func decodeOffset(token string) (int, bool) {
	i := strings.LastIndexByte(token, '.')
	if i < 0 {
		return 0, false
	}
	n, err := strconv.Atoi(token[i+1:])
	if err != nil {
		return 0, false
	}
	return n, true
}
