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

// Package client exposes an in-process façade shaped like a document
// database SDK's client/database/container/iterator surface, so that code
// written against the fake can be swapped for a real service client
// without restructuring call sites.
package client

import (
	"context"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"

	"github.com/cosmosfake/cosmosfake/cnf"
	"github.com/cosmosfake/cosmosfake/store"
)

// Client is the root handle for a fake account. It mimics the shape of a
// cloud document-service client: resolve a Database, then a Container,
// then run operations against documents.
type Client struct {
	opts     *cnf.Options
	key      []byte
	registry *store.Registry
	adapter  Adapter
}

// NewClientWithKey returns a Client authenticated with a master key,
// mirroring a real SDK's account-key constructor. The key is used only to
// sign resource tokens handed out by NewResourceToken; no request in this
// package is actually transported over a network.
func NewClientWithKey(opts *cnf.Options, key string) *Client {
	if opts == nil {
		opts = cnf.Defaults()
	}
	return &Client{
		opts:     opts,
		key:      []byte(key),
		registry: store.NewRegistry(),
	}
}

// WithAdapter installs an Adapter that can serve requests against a real
// backing service instead of the in-process registry. The default Client
// has no adapter and always serves from memory.
func (c *Client) WithAdapter(a Adapter) *Client {
	c.adapter = a
	return c
}

// CreateDatabase registers a new database, returning the existing one if
// it has already been created.
func (c *Client) CreateDatabase(ctx context.Context, name string) (*Database, error) {
	db := c.registry.CreateDatabase(name)
	return &Database{client: c, db: db}, nil
}

// Database returns a handle to an already-created database.
func (c *Client) Database(ctx context.Context, name string) (*Database, error) {
	db, err := c.registry.Database(name)
	if err != nil {
		return nil, err
	}
	return &Database{client: c, db: db}, nil
}

// resourceClaims are the JWT claims embedded in a resource token: the
// database, container and resource the token scopes access to.
type resourceClaims struct {
	jwt.StandardClaims
	Database  string `json:"db"`
	Container string `json:"co"`
	Resource  string `json:"rs"`
}

// NewResourceToken issues a time-bounded, HMAC-signed token scoped to a
// single database, container and resource, for handing to a lower-trust
// caller instead of the master key.
func (c *Client) NewResourceToken(database, container, resource string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := resourceClaims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    "cosmosfake",
			IssuedAt:  now.Unix(),
			NotBefore: now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
		},
		Database:  database,
		Container: container,
		Resource:  resource,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	return token.SignedString(c.key)
}

// VerifyResourceToken checks a resource token's signature and expiry and
// returns its embedded scope.
func (c *Client) VerifyResourceToken(raw string) (database, container, resource string, err error) {
	claims := &resourceClaims{}
	_, err = jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return c.key, nil
	})
	if err != nil {
		return "", "", "", err
	}
	return claims.Database, claims.Container, claims.Resource, nil
}
