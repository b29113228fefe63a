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
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/cosmosfake/cosmosfake/cnf"
)

func TestUpsertAndReadRoundTrip(t *testing.T) {
	Convey("An item upserted through the client can be read back", t, func() {
		ctx := context.Background()
		c := NewClientWithKey(cnf.Defaults(), "secret")

		db, err := c.CreateDatabase(ctx, "shop")
		So(err, ShouldBeNil)

		co, err := db.CreateContainer(ctx, "items", "/id")
		So(err, ShouldBeNil)

		resp, err := co.UpsertItem(ctx, map[string]interface{}{"id": "1", "Name": "Widget"})
		So(err, ShouldBeNil)
		So(resp.Replaced, ShouldBeFalse)

		got, err := co.ReadItem(ctx, "1", "1")
		So(err, ShouldBeNil)
		So(got.Item["Name"], ShouldEqual, "Widget")
	})
}

func TestQueryIteratorPagesResults(t *testing.T) {
	Convey("A query iterator exhausts all matching rows across pages", t, func() {
		ctx := context.Background()
		opts := cnf.Defaults()
		opts.DB.PageSize = 2
		c := NewClientWithKey(opts, "secret")

		db, _ := c.CreateDatabase(ctx, "shop")
		co, _ := db.CreateContainer(ctx, "items", "/id")

		for i := 0; i < 5; i++ {
			_, err := co.UpsertItem(ctx, map[string]interface{}{
				"id":   string(rune('a' + i)),
				"Name": "item",
			})
			So(err, ShouldBeNil)
		}

		it := co.NewQueryIterator("SELECT * FROM c", nil)
		count := 0
		for it.HasMoreResults() {
			rows, err := it.FetchNext(ctx)
			So(err, ShouldBeNil)
			count += len(rows)
		}
		So(count, ShouldEqual, 5)
	})
}

func TestExplainQueryReturnsPlanOnly(t *testing.T) {
	Convey("An EXPLAIN query returns a single plan row and exhausts the iterator", t, func() {
		ctx := context.Background()
		c := NewClientWithKey(cnf.Defaults(), "secret")

		db, _ := c.CreateDatabase(ctx, "shop")
		co, _ := db.CreateContainer(ctx, "items", "/id")

		for i := 0; i < 3; i++ {
			_, err := co.UpsertItem(ctx, map[string]interface{}{"id": string(rune('a' + i)), "Name": "item"})
			So(err, ShouldBeNil)
		}

		it := co.NewQueryIterator("EXPLAIN SELECT * FROM c", nil)
		So(it.HasMoreResults(), ShouldBeTrue)
		rows, err := it.FetchNext(ctx)
		So(err, ShouldBeNil)
		So(rows, ShouldHaveLength, 1)
		So(rows[0]["container"], ShouldEqual, "c")
		So(it.HasMoreResults(), ShouldBeFalse)
	})
}

func TestResourceTokenRoundTrip(t *testing.T) {
	Convey("A resource token verifies back to its issued scope", t, func() {
		c := NewClientWithKey(cnf.Defaults(), "secret")
		token, err := c.NewResourceToken("shop", "items", "*", time.Hour)
		So(err, ShouldBeNil)

		db, co, rs, err := c.VerifyResourceToken(token)
		So(err, ShouldBeNil)
		So(db, ShouldEqual, "shop")
		So(co, ShouldEqual, "items")
		So(rs, ShouldEqual, "*")
	})
}
