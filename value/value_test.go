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

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestObjectOrder(t *testing.T) {
	Convey("An object preserves insertion order", t, func() {

		o := NewObj()
		o.Set("z", NewInt(1))
		o.Set("a", NewInt(2))
		o.Set("m", NewInt(3))

		So(o.Keys(), ShouldResemble, []string{"z", "a", "m"})

		Convey("Replacing a key keeps its original position", func() {
			o.Set("a", NewInt(9))
			So(o.Keys(), ShouldResemble, []string{"z", "a", "m"})
			v, ok := o.Get("a")
			So(ok, ShouldBeTrue)
			i, _ := v.Int()
			So(i, ShouldEqual, 9)
		})

		Convey("Deleting a key removes it without disturbing order", func() {
			o.Del("a")
			So(o.Keys(), ShouldResemble, []string{"z", "m"})
		})

	})
}

func TestObjectCaseFold(t *testing.T) {
	Convey("CaseFold resolves a case-insensitive match when exact match fails", t, func() {

		o := NewObj()
		o.Set("Name", NewString("Alice"))

		v, ok := o.CaseFold("name")
		So(ok, ShouldBeTrue)
		s, _ := v.Str()
		So(s, ShouldEqual, "Alice")

		v, ok = o.CaseFold("Name")
		So(ok, ShouldBeTrue)

		_, ok = o.CaseFold("nope")
		So(ok, ShouldBeFalse)

	})
}

func TestValueJSONRoundTrip(t *testing.T) {
	Convey("JSON marshal/unmarshal preserves object key order", t, func() {

		raw := []byte(`{"id":"1","Name":"John","Address":{"City":"NY","Zip":"10001"}}`)

		var v Value
		err := v.UnmarshalJSON(raw)
		So(err, ShouldBeNil)
		So(v.Kind(), ShouldEqual, Object)

		obj, _ := v.ObjVal()
		So(obj.Keys(), ShouldResemble, []string{"id", "Name", "Address"})

		out, err := v.MarshalJSON()
		So(err, ShouldBeNil)
		So(string(out), ShouldEqual, string(raw))

	})
}

func TestFromNativeToNative(t *testing.T) {
	Convey("FromNative/ToNative round-trips a plain Go document", t, func() {

		doc := map[string]interface{}{
			"id":  "1",
			"Age": float64(30),
		}

		v := FromNative(doc)
		So(v.Kind(), ShouldEqual, Object)

		back := v.ToNative().(map[string]interface{})
		So(back["id"], ShouldEqual, "1")
		So(back["Age"], ShouldEqual, float64(30))

	})
}

func TestCopyIsolatesState(t *testing.T) {
	Convey("Copy returns an independent object", t, func() {

		o := NewObj()
		o.Set("a", NewInt(1))
		v := NewObject(o)

		clone := v.Copy()
		cloneObj, _ := clone.ObjVal()
		cloneObj.Set("a", NewInt(2))

		orig, _ := o.Get("a")
		i, _ := orig.Int()
		So(i, ShouldEqual, 1)

	})
}
