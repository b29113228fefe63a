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

package page

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/cosmosfake/cosmosfake/value"
)

func rows(n int) []*value.Obj {
	out := make([]*value.Obj, n)
	for i := range out {
		o := value.NewObj()
		o.Set("id", value.NewInt(int64(i)))
		out[i] = o
	}
	return out
}

func TestPaginationIsContiguousAndNonOverlapping(t *testing.T) {
	Convey("Paging through a snapshot yields every row exactly once, in order", t, func() {

		p, err := New(3)
		So(err, ShouldBeNil)

		data := rows(7)

		seen := []int64{}

		page, token := p.Start(data)
		for _, r := range page {
			v, _ := r.Get("id")
			i, _ := v.Int()
			seen = append(seen, i)
		}

		for token != "" {
			page, token = p.Continue(data, token)
			for _, r := range page {
				v, _ := r.Get("id")
				i, _ := v.Int()
				seen = append(seen, i)
			}
		}

		So(seen, ShouldResemble, []int64{0, 1, 2, 3, 4, 5, 6})
	})
}

func TestEmptyTokenWhenResultFitsOnePage(t *testing.T) {
	Convey("A result that fits in one page returns no continuation token", t, func() {
		p, err := New(10)
		So(err, ShouldBeNil)
		page, token := p.Start(rows(3))
		So(page, ShouldHaveLength, 3)
		So(token, ShouldEqual, "")
	})
}

func TestUnknownTokenResetsToStart(t *testing.T) {
	Convey("An unrecognised continuation token restarts pagination from zero", t, func() {
		p, err := New(2)
		So(err, ShouldBeNil)
		data := rows(5)
		page, _ := p.Continue(data, "not-a-real-token")
		So(page, ShouldHaveLength, 2)
		v, _ := page[0].Get("id")
		i, _ := v.Int()
		So(i, ShouldEqual, 0)
	})
}
