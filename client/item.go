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

// ItemResponse wraps a single document operation's result, shaped after a
// real document-service SDK's response envelope: the resulting document
// plus its etag and whether the call created or replaced it.
type ItemResponse struct {
	Item     map[string]interface{}
	ETag     string
	Replaced bool
}
