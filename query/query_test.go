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

package query

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/cosmosfake/cosmosfake/sql"
	"github.com/cosmosfake/cosmosfake/value"
)

func row(id string, name string, age int64) *value.Obj {
	o := value.NewObj()
	o.Set("id", value.NewString(id))
	o.Set("Name", value.NewString(name))
	o.Set("Age", value.NewInt(age))
	return o
}

func TestPipelineOrdersFiltersAndLimits(t *testing.T) {
	Convey("WHERE, ORDER BY and LIMIT run in pipeline order", t, func() {

		docs := []*value.Obj{
			row("1", "Carl", 40),
			row("2", "Alice", 30),
			row("3", "Bob", 20),
			row("4", "Dana", 50),
		}

		q, err := sql.Parse("SELECT * FROM c WHERE Age >= 20 ORDER BY Age LIMIT 2")
		So(err, ShouldBeNil)

		out, err := Run(context.Background(), q, docs, nil)
		So(err, ShouldBeNil)
		So(out, ShouldHaveLength, 2)

		n0, _ := out[0].Get("Name")
		n1, _ := out[1].Get("Name")
		s0, _ := n0.Str()
		s1, _ := n1.Str()
		So(s0, ShouldEqual, "Bob")
		So(s1, ShouldEqual, "Alice")
	})
}

func TestProjectionAlwaysIncludesID(t *testing.T) {
	Convey("An explicit field list still includes id", t, func() {
		docs := []*value.Obj{row("1", "Carl", 40)}
		q, err := sql.Parse("SELECT Name FROM c")
		So(err, ShouldBeNil)

		out, err := Run(context.Background(), q, docs, nil)
		So(err, ShouldBeNil)
		So(out, ShouldHaveLength, 1)

		idv, ok := out[0].Get("id")
		So(ok, ShouldBeTrue)
		ids, _ := idv.Str()
		So(ids, ShouldEqual, "1")

		_, hasAge := out[0].Get("Age")
		So(hasAge, ShouldBeFalse)
	})
}

func TestOrderByIsStable(t *testing.T) {
	Convey("Equal ORDER BY keys preserve relative input order", t, func() {
		docs := []*value.Obj{
			row("1", "A", 10),
			row("2", "B", 10),
			row("3", "C", 10),
		}
		q, err := sql.Parse("SELECT * FROM c ORDER BY Age")
		So(err, ShouldBeNil)

		out, err := Run(context.Background(), q, docs, nil)
		So(err, ShouldBeNil)
		ids := []string{}
		for _, d := range out {
			idv, _ := d.Get("id")
			s, _ := idv.Str()
			ids = append(ids, s)
		}
		So(ids, ShouldResemble, []string{"1", "2", "3"})
	})
}

func TestExplainReportsPlanWithoutProjecting(t *testing.T) {
	Convey("EXPLAIN returns a plan document instead of result rows", t, func() {
		docs := []*value.Obj{
			row("1", "Carl", 40),
			row("2", "Alice", 30),
			row("3", "Bob", 20),
		}
		q, err := sql.Parse("EXPLAIN SELECT * FROM c WHERE Age >= 25 ORDER BY Age LIMIT 1")
		So(err, ShouldBeNil)
		So(q.Explain, ShouldBeTrue)

		plan, err := Explain(context.Background(), q, docs, nil)
		So(err, ShouldBeNil)

		containerV, _ := plan.Get("container")
		container, _ := containerV.Str()
		So(container, ShouldEqual, "c")

		scannedV, _ := plan.Get("scannedCount")
		scanned, _ := scannedV.Int()
		So(scanned, ShouldEqual, 3)

		estimatedV, _ := plan.Get("estimatedRowCount")
		estimated, _ := estimatedV.Int()
		So(estimated, ShouldEqual, 1)

		hasWhereV, _ := plan.Get("hasWhere")
		hasWhere, _ := hasWhereV.Bool()
		So(hasWhere, ShouldBeTrue)
	})
}

func TestTopAndLimitBothApply(t *testing.T) {
	Convey("TOP and LIMIT take the smaller bound", t, func() {
		docs := []*value.Obj{
			row("1", "A", 10),
			row("2", "B", 20),
			row("3", "C", 30),
		}
		q, err := sql.Parse("SELECT TOP 1 * FROM c ORDER BY Age LIMIT 2")
		So(err, ShouldBeNil)

		out, err := Run(context.Background(), q, docs, nil)
		So(err, ShouldBeNil)
		So(out, ShouldHaveLength, 1)
	})
}
