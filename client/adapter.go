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

import "context"

// Adapter lets a Container delegate document operations to a real backing
// service instead of the in-process registry, so that code written
// against Client can be pointed at a live account by installing an
// Adapter rather than rewriting call sites.
type Adapter interface {
	UpsertItem(ctx context.Context, partitionKey string, doc map[string]interface{}) (*ItemResponse, error)
	ReadItem(ctx context.Context, partitionValue, id string) (*ItemResponse, error)
	DeleteItem(ctx context.Context, partitionValue, id string) error
}
