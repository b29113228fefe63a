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

package store

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/cosmosfake/cosmosfake/value"
)

func newDoc(id, name string) *value.Obj {
	o := value.NewObj()
	o.Set("id", value.NewString(id))
	o.Set("Name", value.NewString(name))
	return o
}

func TestCreateContainerIsIdempotent(t *testing.T) {
	Convey("Creating the same container twice keeps the original partition key", t, func() {
		db := NewDatabase("shop")
		c1 := db.CreateContainer("items", "/id")
		c2 := db.CreateContainer("items", "/other")
		So(c1, ShouldEqual, c2)
		So(c1.PartitionKey(), ShouldEqual, "/id")
	})
}

func TestUpsertInsertThenReplace(t *testing.T) {
	Convey("Upserting the same id replaces the document and reassigns an etag", t, func() {
		db := NewDatabase("shop")
		c := db.CreateContainer("items", "/id")

		stored, etag1, replaced1, err := c.Upsert(newDoc("1", "Widget"))
		So(err, ShouldBeNil)
		So(replaced1, ShouldBeFalse)
		nameV, _ := stored.Get("Name")
		name, _ := nameV.Str()
		So(name, ShouldEqual, "Widget")

		_, etag2, replaced2, err := c.Upsert(newDoc("1", "Gadget"))
		So(err, ShouldBeNil)
		So(replaced2, ShouldBeTrue)
		So(etag2, ShouldNotEqual, etag1)

		got, _, err := c.Read("1", "1")
		So(err, ShouldBeNil)
		n, _ := got.Get("Name")
		s, _ := n.Str()
		So(s, ShouldEqual, "Gadget")
	})
}

func TestConflictingIDRejected(t *testing.T) {
	Convey("A document with conflicting id and Id fields is rejected", t, func() {
		db := NewDatabase("shop")
		c := db.CreateContainer("items", "/id")

		doc := value.NewObj()
		doc.Set("id", value.NewString("1"))
		doc.Set("Id", value.NewString("2"))

		_, _, _, err := c.Upsert(doc)
		So(err, ShouldNotBeNil)
		_, ok := err.(*InvalidDocumentError)
		So(ok, ShouldBeTrue)
	})
}

func TestReadMissingReturnsNotFound(t *testing.T) {
	Convey("Reading an absent document returns NotFoundError", t, func() {
		db := NewDatabase("shop")
		c := db.CreateContainer("items", "/id")
		_, _, err := c.Read("1", "1")
		So(err, ShouldNotBeNil)
		_, ok := err.(*NotFoundError)
		So(ok, ShouldBeTrue)
	})
}

func TestReadAndDeleteFallBackToIDWhenPartitionAbsent(t *testing.T) {
	Convey("Reading or deleting with no partition value, or \"none\", scans by id across partitions", t, func() {
		db := NewDatabase("shop")
		c := db.CreateContainer("items", "/tenant")

		doc := value.NewObj()
		doc.Set("id", value.NewString("1"))
		doc.Set("tenant", value.NewString("acme"))
		doc.Set("Name", value.NewString("Widget"))
		_, _, _, err := c.Upsert(doc)
		So(err, ShouldBeNil)

		got, _, err := c.Read("none", "1")
		So(err, ShouldBeNil)
		n, _ := got.Get("Name")
		s, _ := n.Str()
		So(s, ShouldEqual, "Widget")

		got2, _, err := c.Read("", "1")
		So(err, ShouldBeNil)
		n2, _ := got2.Get("Name")
		s2, _ := n2.Str()
		So(s2, ShouldEqual, "Widget")

		err = c.Delete("none", "1")
		So(err, ShouldBeNil)

		_, _, err = c.Read("acme", "1")
		So(err, ShouldNotBeNil)
	})
}

func TestMissingContainerError(t *testing.T) {
	Convey("Looking up an uncreated container fails", t, func() {
		db := NewDatabase("shop")
		_, err := db.Container("nope")
		So(err, ShouldNotBeNil)
		_, ok := err.(*ContainerMissingError)
		So(ok, ShouldBeTrue)
	})
}
