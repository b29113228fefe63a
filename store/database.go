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

import "sync"

// Database is a named registry of containers, guarded by its own lock so
// that operations against independent databases never contend.
type Database struct {
	mu         sync.RWMutex
	name       string
	containers map[string]*Container
}

// NewDatabase returns an empty, named database.
func NewDatabase(name string) *Database {
	return &Database{name: name, containers: make(map[string]*Container)}
}

// Name reports the database's name.
func (d *Database) Name() string {
	return d.name
}

// CreateContainer registers a new container with the given partition key
// path. Creating a container that already exists is idempotent and never
// overwrites the partition key path of the existing container.
func (d *Database) CreateContainer(name, partitionKey string) *Container {
	d.mu.Lock()
	defer d.mu.Unlock()

	if c, ok := d.containers[name]; ok {
		return c
	}

	c := newContainer(name, partitionKey)
	d.containers[name] = c
	return c
}

// Container returns the named container, or an error if it has not been
// created.
func (d *Database) Container(name string) (*Container, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	c, ok := d.containers[name]
	if !ok {
		return nil, &ContainerMissingError{Container: name}
	}
	return c, nil
}

// DropContainer removes a container and all of its documents.
func (d *Database) DropContainer(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.containers, name)
}

// Containers returns the names of every registered container.
func (d *Database) Containers() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]string, 0, len(d.containers))
	for name := range d.containers {
		out = append(out, name)
	}
	return out
}

// Registry holds every database known to the fake, keyed by name.
type Registry struct {
	mu    sync.RWMutex
	dbs   map[string]*Database
}

// NewRegistry returns an empty database registry.
func NewRegistry() *Registry {
	return &Registry{dbs: make(map[string]*Database)}
}

// CreateDatabase registers a new database, or returns the existing one of
// the same name.
func (r *Registry) CreateDatabase(name string) *Database {
	r.mu.Lock()
	defer r.mu.Unlock()

	if db, ok := r.dbs[name]; ok {
		return db
	}
	db := NewDatabase(name)
	r.dbs[name] = db
	return db
}

// Database returns the named database, or an error if it has not been
// created.
func (r *Registry) Database(name string) (*Database, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	db, ok := r.dbs[name]
	if !ok {
		return nil, &ContainerMissingError{Container: name}
	}
	return db, nil
}
