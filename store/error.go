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

// Package store implements the in-memory database and container registry:
// container creation, and document upsert/read/delete keyed by partition
// key and id.
package store

import "fmt"

// NotFoundError is returned when a document lookup by id and partition
// key finds nothing.
type NotFoundError struct {
	Container string
	ID        string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Document %q not found in container %q", e.ID, e.Container)
}

// ContainerMissingError is returned when an operation names a container
// that has not been created.
type ContainerMissingError struct {
	Container string
}

func (e *ContainerMissingError) Error() string {
	return fmt.Sprintf("Container %q does not exist", e.Container)
}

// InvalidDocumentError is returned when a document fails validation on
// ingest, such as conflicting id/Id fields or a missing or non-string id.
type InvalidDocumentError struct {
	Reason string
}

func (e *InvalidDocumentError) Error() string {
	return fmt.Sprintf("Invalid document: %s", e.Reason)
}
