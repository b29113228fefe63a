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

package sql

import (
	"fmt"
	"strings"
)

// EmptyError is returned when the input text contains no statement.
type EmptyError struct{}

func (e *EmptyError) Error() string {
	return "The query text is empty"
}

// ParseError is returned when the parser encounters a token it did not
// expect at the current position.
type ParseError struct {
	Found    string
	Expected []string
	Pos      int
}

func (e *ParseError) Error() string {
	if len(e.Expected) == 0 {
		return fmt.Sprintf("Parse error at position %d: found %q", e.Pos, e.Found)
	}
	return fmt.Sprintf("Parse error at position %d: found %q, expected one of %s", e.Pos, e.Found, strings.Join(e.Expected, ", "))
}
