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

	"github.com/cosmosfake/cosmosfake/log"
	"github.com/cosmosfake/cosmosfake/store"
	"github.com/cosmosfake/cosmosfake/value"
)

// Container is a handle to one collection of documents.
type Container struct {
	client *Client
	store  *store.Container
}

// UpsertItem inserts doc, or replaces the document sharing its id and
// partition value.
func (c *Container) UpsertItem(ctx context.Context, doc map[string]interface{}) (*ItemResponse, error) {
	if c.client.adapter != nil {
		return c.client.adapter.UpsertItem(ctx, c.store.PartitionKey(), doc)
	}

	v := value.FromNative(doc)
	obj, ok := v.ObjVal()
	if !ok {
		return nil, &store.InvalidDocumentError{Reason: "document must be a JSON object"}
	}

	stored, etag, replaced, err := c.store.Upsert(obj)
	if err != nil {
		return nil, err
	}

	log.WithFields(map[string]interface{}{
		"container": c.store.PartitionKey(),
		"replaced":  replaced,
	}).Debug("upserted item")

	return &ItemResponse{
		Item:     value.NewObject(stored).ToNative().(map[string]interface{}),
		ETag:     etag,
		Replaced: replaced,
	}, nil
}

// ReadItem reads a single document by id and partition value. Passing an
// empty partitionValue, or the literal "none", falls back to a scan by id
// alone across every partition.
func (c *Container) ReadItem(ctx context.Context, partitionValue, id string) (*ItemResponse, error) {
	if c.client.adapter != nil {
		return c.client.adapter.ReadItem(ctx, partitionValue, id)
	}

	doc, etag, err := c.store.Read(partitionValue, id)
	if err != nil {
		return nil, err
	}
	return &ItemResponse{
		Item: value.NewObject(doc).ToNative().(map[string]interface{}),
		ETag: etag,
	}, nil
}

// DeleteItem removes a single document by id and partition value. Passing
// an empty partitionValue, or the literal "none", falls back to a scan by
// id alone across every partition.
func (c *Container) DeleteItem(ctx context.Context, partitionValue, id string) error {
	if c.client.adapter != nil {
		return c.client.adapter.DeleteItem(ctx, partitionValue, id)
	}
	return c.store.Delete(partitionValue, id)
}

// NewQueryIterator prepares an iterator over the results of a SELECT
// statement run against this container's current documents.
func (c *Container) NewQueryIterator(queryText string, params map[string]interface{}) *QueryIterator {
	return newQueryIterator(c, queryText, params)
}
