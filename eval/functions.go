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

package eval

import (
	"context"
	"strings"
)

// runFunc dispatches a built-in function call by name.
func runFunc(ctx context.Context, name string, args []Resolved) (Resolved, error) {
	switch name {
	case "CONTAINS":
		return fnContains(args)
	case "STARTSWITH":
		return fnStartsWith(args)
	case "ARRAY_CONTAINS":
		return fnArrayContains(args)
	case "IS_NULL":
		return fnIsNull(args)
	case "IS_DEFINED":
		return fnIsDefined(args)
	}
	return Resolved{}, errf("unknown function %q", name)
}

func fnContains(args []Resolved) (Resolved, error) {
	if len(args) < 2 {
		return Resolved{}, errf("CONTAINS requires 2 or 3 arguments")
	}
	s, ok := args[0].Value.Str()
	if !args[0].Defined || !ok {
		return boolResolved(false), nil
	}
	p, ok := args[1].Value.Str()
	if !args[1].Defined || !ok {
		return boolResolved(false), nil
	}
	ignoreCase := false
	if len(args) >= 3 && args[2].Defined {
		ignoreCase, _ = args[2].Value.Bool()
	}
	if ignoreCase {
		return boolResolved(strings.Contains(strings.ToLower(s), strings.ToLower(p))), nil
	}
	return boolResolved(strings.Contains(s, p)), nil
}

func fnStartsWith(args []Resolved) (Resolved, error) {
	if len(args) < 2 {
		return Resolved{}, errf("STARTSWITH requires 2 or 3 arguments")
	}
	s, ok := args[0].Value.Str()
	if !args[0].Defined || !ok {
		return boolResolved(false), nil
	}
	p, ok := args[1].Value.Str()
	if !args[1].Defined || !ok {
		return boolResolved(false), nil
	}
	ignoreCase := false
	if len(args) >= 3 && args[2].Defined {
		ignoreCase, _ = args[2].Value.Bool()
	}
	if ignoreCase {
		return boolResolved(strings.HasPrefix(strings.ToLower(s), strings.ToLower(p))), nil
	}
	return boolResolved(strings.HasPrefix(s, p)), nil
}

func fnArrayContains(args []Resolved) (Resolved, error) {
	if len(args) < 2 {
		return Resolved{}, errf("ARRAY_CONTAINS requires 2 arguments")
	}
	if !args[0].Defined {
		return boolResolved(false), nil
	}
	arr, ok := args[0].Value.Arr()
	if !ok {
		return boolResolved(false), nil
	}
	if !args[1].Defined {
		return boolResolved(false), nil
	}
	needle := strings.ToLower(args[1].Value.String())
	for _, e := range arr {
		if strings.ToLower(e.String()) == needle {
			return boolResolved(true), nil
		}
	}
	return boolResolved(false), nil
}

func fnIsNull(args []Resolved) (Resolved, error) {
	if len(args) != 1 {
		return Resolved{}, errf("IS_NULL requires 1 argument")
	}
	return boolResolved(args[0].Defined && args[0].Value.IsNull()), nil
}

func fnIsDefined(args []Resolved) (Resolved, error) {
	if len(args) != 1 {
		return Resolved{}, errf("IS_DEFINED requires 1 argument")
	}
	return boolResolved(args[0].Defined), nil
}
