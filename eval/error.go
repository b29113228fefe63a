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

// Package eval walks a parsed sql.Query against a document, resolving
// properties, coercing and comparing values, and dispatching built-in
// functions.
package eval

import "fmt"

// EvaluationError is returned when an expression cannot be evaluated
// against a document, e.g. NOT applied to a non-boolean operand, or an
// unknown function name.
type EvaluationError struct {
	Reason string
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("Evaluation error: %s", e.Reason)
}

func errf(format string, args ...interface{}) *EvaluationError {
	return &EvaluationError{Reason: fmt.Sprintf(format, args...)}
}
