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
	"fmt"
	"strings"
	"sync"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/cosmosfake/cosmosfake/log"
	uuidutil "github.com/cosmosfake/cosmosfake/util/uuid"
	"github.com/cosmosfake/cosmosfake/value"
)

// Container holds every document belonging to one logical collection,
// indexed by partition key value and document id.
type Container struct {
	mu           sync.RWMutex
	name         string
	partitionKey string // slash-separated path, e.g. "/id" or "/tenant/region"

	// order preserves insertion order across the whole container, which is
	// the order a wildcard scan observes.
	order []docKey
	docs  map[docKey]*value.Obj
	etags map[docKey]string
}

type docKey struct {
	partition string
	id        string
}

func newContainer(name, partitionKey string) *Container {
	return &Container{
		name:         name,
		partitionKey: partitionKey,
		docs:         make(map[docKey]*value.Obj),
		etags:        make(map[docKey]string),
	}
}

// PartitionKey reports the container's partition-key path.
func (c *Container) PartitionKey() string {
	return c.partitionKey
}

// partitionValue extracts the partition key value for doc. It returns ""
// when the partition key path is unreachable, which is also the value Read
// and Delete treat as "look up by id alone".
func (c *Container) partitionValue(doc *value.Obj) string {
	segs := strings.Split(strings.TrimPrefix(c.partitionKey, "/"), "/")
	var cur value.Value = value.NewObject(doc)
	for _, seg := range segs {
		obj, ok := cur.ObjVal()
		if !ok {
			return ""
		}
		v, ok := obj.CaseFold(seg)
		if !ok {
			return ""
		}
		cur = v
	}
	if s, ok := cur.Str(); ok {
		return s
	}
	return cur.String()
}

// normalizeID resolves and validates the document's identity field. A
// document carrying both "id" and "Id" with different values is rejected,
// since the fake cannot tell which one the caller meant as canonical.
func normalizeID(doc *value.Obj) (string, error) {

	idv, hasID := doc.Get("id")
	capIDv, hasCapID := doc.Get("Id")

	switch {
	case hasID && hasCapID:
		a, _ := idv.Str()
		b, _ := capIDv.Str()
		if a != b {
			return "", &InvalidDocumentError{Reason: fmt.Sprintf("document has conflicting \"id\" (%q) and \"Id\" (%q) fields", a, b)}
		}
		doc.Del("Id")
		return a, nil

	case hasID:
		s, ok := idv.Str()
		if !ok {
			return "", &InvalidDocumentError{Reason: "\"id\" must be a string"}
		}
		return s, nil

	case hasCapID:
		s, ok := capIDv.Str()
		if !ok {
			return "", &InvalidDocumentError{Reason: "\"Id\" must be a string"}
		}
		doc.Del("Id")
		doc.Set("id", capIDv)
		return s, nil

	default:
		return "", &InvalidDocumentError{Reason: "document has no \"id\" field"}
	}
}

// Upsert inserts doc, or replaces the existing document sharing its id and
// partition value. It returns the stored copy, the assigned etag, and
// whether an existing document was replaced.
func (c *Container) Upsert(doc *value.Obj) (stored *value.Obj, etag string, replaced bool, err error) {

	doc = doc.Copy()

	id, err := normalizeID(doc)
	if err != nil {
		return nil, "", false, err
	}

	partition := c.partitionValue(doc)
	key := docKey{partition: partition, id: id}

	c.mu.Lock()
	defer c.mu.Unlock()

	etag = uuidutil.NewV4()
	doc.Set("_etag", value.NewString(etag))

	if existing, ok := c.docs[key]; ok {
		logReplaceDiff(c.name, id, existing, doc)
		c.docs[key] = doc
		c.etags[key] = etag
		return doc.Copy(), etag, true, nil
	}

	c.docs[key] = doc
	c.etags[key] = etag
	c.order = append(c.order, key)

	return doc.Copy(), etag, false, nil
}

// noPartitionValue is the sentinel accepted in place of a partition key
// value in Read and Delete: an absent value or the literal "none" falls
// back to locating the document by id alone, scanning across every
// partition, for callers that don't know or track the partition key.
const noPartitionValue = "none"

func hasNoPartitionValue(partition string) bool {
	return partition == "" || partition == noPartitionValue
}

// Read returns a copy of the document with the given id and partition
// value. When partition is absent or "none", it scans every partition for
// a matching id instead of requiring an exact partition match.
func (c *Container) Read(partition, id string) (*value.Obj, string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if hasNoPartitionValue(partition) {
		key, ok := c.findByID(id)
		if !ok {
			return nil, "", &NotFoundError{Container: c.name, ID: id}
		}
		return c.docs[key].Copy(), c.etags[key], nil
	}

	key := docKey{partition: partition, id: id}
	doc, ok := c.docs[key]
	if !ok {
		return nil, "", &NotFoundError{Container: c.name, ID: id}
	}
	return doc.Copy(), c.etags[key], nil
}

// Delete removes the document with the given id and partition value. When
// partition is absent or "none", it scans every partition for a matching
// id instead of requiring an exact partition match.
func (c *Container) Delete(partition, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := docKey{partition: partition, id: id}
	if hasNoPartitionValue(partition) {
		found, ok := c.findByID(id)
		if !ok {
			return &NotFoundError{Container: c.name, ID: id}
		}
		key = found
	} else if _, ok := c.docs[key]; !ok {
		return &NotFoundError{Container: c.name, ID: id}
	}

	delete(c.docs, key)
	delete(c.etags, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

// findByID scans c.order for the first document whose id matches,
// regardless of partition. Callers must hold c.mu.
func (c *Container) findByID(id string) (docKey, bool) {
	for _, k := range c.order {
		if k.id == id {
			return k, true
		}
	}
	return docKey{}, false
}

// All returns a snapshot slice of every document currently stored,
// in insertion order. The slice and its documents are safe for the
// caller to read and further copy, but are not live views.
func (c *Container) All() []*value.Obj {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*value.Obj, len(c.order))
	for i, key := range c.order {
		out[i] = c.docs[key].Copy()
	}
	return out
}

// logReplaceDiff emits a debug-level textual diff of the JSON
// representation of a document being overwritten by an upsert.
func logReplaceDiff(container, id string, before, after *value.Obj) {
	if !log.IsDebug() {
		return
	}
	b, _ := value.NewObject(before).MarshalJSON()
	a, _ := value.NewObject(after).MarshalJSON()

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(string(b), string(a), false)

	log.WithFields(map[string]interface{}{
		"container": container,
		"id":        id,
	}).Debug(dmp.DiffPrettyText(diffs))
}
