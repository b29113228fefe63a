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

	"github.com/cosmosfake/cosmosfake/store"
)

// Database is a handle to one named database within a Client.
type Database struct {
	client *Client
	db     *store.Database
}

// ID returns the database's name.
func (d *Database) ID() string {
	return d.db.Name()
}

// CreateContainer registers a new container under this database with the
// given partition key path, e.g. "/id" or "/tenant/region".
func (d *Database) CreateContainer(ctx context.Context, name, partitionKey string) (*Container, error) {
	if partitionKey == "" {
		partitionKey = d.client.opts.DB.PartitionKey
	}
	c := d.db.CreateContainer(name, partitionKey)
	return &Container{client: d.client, store: c}, nil
}

// Container returns a handle to an already-created container.
func (d *Database) Container(ctx context.Context, name string) (*Container, error) {
	c, err := d.db.Container(name)
	if err != nil {
		return nil, err
	}
	return &Container{client: d.client, store: c}, nil
}

// Containers lists the names of every container registered in this
// database.
func (d *Database) Containers() []string {
	return d.db.Containers()
}
