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
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/cosmosfake/cosmosfake/sql"
	"github.com/cosmosfake/cosmosfake/value"
)

func doc() *value.Obj {
	o := value.NewObj()
	o.Set("id", value.NewString("1"))
	o.Set("Name", value.NewString("Alice"))
	o.Set("Age", value.NewInt(30))
	addr := value.NewObj()
	addr.Set("City", value.NewString("NY"))
	o.Set("Address", value.NewObject(addr))
	tags := value.NewArray([]value.Value{value.NewString("vip"), value.NewString("new")})
	o.Set("Tags", tags)
	return o
}

func mustParse(t *testing.T, text string) *sql.Query {
	q, err := sql.Parse(text)
	So(err, ShouldBeNil)
	return q
}

func TestNumericEpsilonEquality(t *testing.T) {
	Convey("Numbers within epsilon compare equal", t, func() {
		a := value.NewFloat(30.0000001)
		b := value.NewInt(30)
		So(Equal(a, b), ShouldBeTrue)
	})
}

func TestCrossTypeNeverEqual(t *testing.T) {
	Convey("A string and a number never compare equal", t, func() {
		So(Equal(value.NewString("30"), value.NewInt(30)), ShouldBeFalse)
	})
}

func TestStringEqualityIsCaseSensitive(t *testing.T) {
	Convey("String equality is byte-ordinal, not locale- or case-folding", t, func() {
		So(Equal(value.NewString("Alice"), value.NewString("alice")), ShouldBeFalse)
		q := mustParse(t, "SELECT * FROM c WHERE Name = 'alice'")
		r, err := Eval(context.Background(), q.Where, doc(), nil)
		So(err, ShouldBeNil)
		b, _ := r.Value.Bool()
		So(b, ShouldBeFalse)
	})
}

func TestPropertyCaseInsensitiveResolution(t *testing.T) {
	Convey("A WHERE clause resolves fields case-insensitively", t, func() {
		q := mustParse(t, "SELECT * FROM c WHERE name = 'Alice'")
		r, err := Eval(context.Background(), q.Where, doc(), nil)
		So(err, ShouldBeNil)
		b, _ := r.Value.Bool()
		So(b, ShouldBeTrue)
	})
}

func TestIsDefinedAndIsNull(t *testing.T) {
	Convey("IS_DEFINED and IS_NULL distinguish missing fields from null ones", t, func() {
		d := doc()
		d.Set("Nickname", value.NewNull())

		q := mustParse(t, "SELECT * FROM c WHERE IS_DEFINED(Missing)")
		r, err := Eval(context.Background(), q.Where, d, nil)
		So(err, ShouldBeNil)
		b, _ := r.Value.Bool()
		So(b, ShouldBeFalse)

		q2 := mustParse(t, "SELECT * FROM c WHERE IS_NULL(Nickname)")
		r2, err := Eval(context.Background(), q2.Where, d, nil)
		So(err, ShouldBeNil)
		b2, _ := r2.Value.Bool()
		So(b2, ShouldBeTrue)
	})
}

func TestContainsAndStartsWith(t *testing.T) {
	Convey("CONTAINS and STARTSWITH match substrings and prefixes", t, func() {
		q := mustParse(t, "SELECT * FROM c WHERE CONTAINS(Name, 'lic') AND STARTSWITH(Name, 'Al')")
		r, err := Eval(context.Background(), q.Where, doc(), nil)
		So(err, ShouldBeNil)
		b, _ := r.Value.Bool()
		So(b, ShouldBeTrue)
	})
}

func TestArrayContains(t *testing.T) {
	Convey("ARRAY_CONTAINS finds a matching element", t, func() {
		q := mustParse(t, "SELECT * FROM c WHERE ARRAY_CONTAINS(Tags, 'vip')")
		r, err := Eval(context.Background(), q.Where, doc(), nil)
		So(err, ShouldBeNil)
		b, _ := r.Value.Bool()
		So(b, ShouldBeTrue)
	})

	Convey("ARRAY_CONTAINS compares elements by stringified value, case-insensitively", t, func() {
		d := doc()
		d.Set("Nums", value.NewArray([]value.Value{value.NewInt(1), value.NewInt(2), value.NewInt(3)}))
		q := mustParse(t, "SELECT * FROM c WHERE ARRAY_CONTAINS(Nums, '2')")
		r, err := Eval(context.Background(), q.Where, d, nil)
		So(err, ShouldBeNil)
		b, _ := r.Value.Bool()
		So(b, ShouldBeTrue)

		q2 := mustParse(t, "SELECT * FROM c WHERE ARRAY_CONTAINS(Tags, 'VIP')")
		r2, err := Eval(context.Background(), q2.Where, d, nil)
		So(err, ShouldBeNil)
		b2, _ := r2.Value.Bool()
		So(b2, ShouldBeTrue)
	})
}

func TestBetween(t *testing.T) {
	Convey("BETWEEN is inclusive on both bounds", t, func() {
		q := mustParse(t, "SELECT * FROM c WHERE Age BETWEEN 30 AND 40")
		r, err := Eval(context.Background(), q.Where, doc(), nil)
		So(err, ShouldBeNil)
		b, _ := r.Value.Bool()
		So(b, ShouldBeTrue)
	})
}

func TestParameterBinding(t *testing.T) {
	Convey("A bound parameter resolves from the params map", t, func() {
		q := mustParse(t, "SELECT * FROM c WHERE Name = @name")
		r, err := Eval(context.Background(), q.Where, doc(), map[string]value.Value{
			"name": value.NewString("Alice"),
		})
		So(err, ShouldBeNil)
		b, _ := r.Value.Bool()
		So(b, ShouldBeTrue)
	})
}

func TestNestedPropertyPath(t *testing.T) {
	Convey("A dotted path resolves through a nested object", t, func() {
		q := mustParse(t, "SELECT * FROM c WHERE Address.City = 'NY'")
		r, err := Eval(context.Background(), q.Where, doc(), nil)
		So(err, ShouldBeNil)
		b, _ := r.Value.Bool()
		So(b, ShouldBeTrue)
	})
}

func TestUndefinedComparisonIsFalse(t *testing.T) {
	Convey("Comparing a missing property is false, not an error", t, func() {
		q := mustParse(t, "SELECT * FROM c WHERE Missing = 1")
		r, err := Eval(context.Background(), q.Where, doc(), nil)
		So(err, ShouldBeNil)
		b, _ := r.Value.Bool()
		So(b, ShouldBeFalse)

		qneq := mustParse(t, "SELECT * FROM c WHERE Missing != 5")
		rneq, err := Eval(context.Background(), qneq.Where, doc(), nil)
		So(err, ShouldBeNil)
		bneq, _ := rneq.Value.Bool()
		So(bneq, ShouldBeFalse)
	})
}

func TestNonBooleanOperandsAreTruthy(t *testing.T) {
	Convey("WHERE and AND/OR coerce a defined, non-null, non-boolean value to true", t, func() {
		q := mustParse(t, "SELECT * FROM c WHERE Tags")
		r, err := Eval(context.Background(), q.Where, doc(), nil)
		So(err, ShouldBeNil)
		b := truth(r)
		So(b, ShouldBeTrue)

		qand := mustParse(t, "SELECT * FROM c WHERE Name AND Tags")
		rand, err := Eval(context.Background(), qand.Where, doc(), nil)
		So(err, ShouldBeNil)
		band, _ := rand.Value.Bool()
		So(band, ShouldBeTrue)
	})
}
