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
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/cosmosfake/cosmosfake/sql"
	"github.com/cosmosfake/cosmosfake/value"
)

// epsilon is the tolerance used when comparing two numeric values for
// equality, matching the data model's floating point comparison rule.
const epsilon = 1e-6

// ord reports the three-way ordering of a against b: -1, 0, or +1. ok is
// false when a and b are of incomparable kinds, per the rule that
// cross-type comparisons never match and never order. Null only compares
// equal to Null; it never orders against a non-null value via < <= > >=,
// matching the data model's undefined-comparison-result rule. String
// comparison here is byte-ordinal, not locale-aware: "=", "!=" and the
// relational operators in a WHERE clause are case-sensitive per the data
// model's equality rule. Collation is applied only in Order, for ORDER BY.
func ord(a, b value.Value) (c int, ok bool) {

	if a.IsNull() && b.IsNull() {
		return 0, true
	}
	if a.IsNull() || b.IsNull() {
		return 0, false
	}

	if a.IsNumeric() && b.IsNumeric() {
		fa, _ := a.AsFloat()
		fb, _ := b.AsFloat()
		switch {
		case floatEqual(fa, fb):
			return 0, true
		case fa < fb:
			return -1, true
		default:
			return 1, true
		}
	}

	if sa, aok := a.Str(); aok {
		if sb, bok := b.Str(); bok {
			return strings.Compare(sa, sb), true
		}
	}

	if ba, aok := a.Bool(); aok {
		if bb, bok := b.Bool(); bok {
			switch {
			case ba == bb:
				return 0, true
			case !ba:
				return -1, true
			default:
				return 1, true
			}
		}
	}

	return 0, false
}

func floatEqual(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < epsilon
}

// collator is shared root-locale loose collation (case- and accent-
// insensitive), used for ORDER BY string comparison.
var collator = collate.New(language.Und, collate.Loose)

func collateCompare(a, b string) int {
	if a == b {
		return 0
	}
	return collator.CompareString(a, b)
}

// Equal reports whether a and b satisfy "=", honouring numeric epsilon
// tolerance and ordinal string equality. Values of differing kinds are
// never equal.
func Equal(a, b value.Value) bool {
	c, ok := ord(a, b)
	return ok && c == 0
}

// Order reports the three-way ORDER BY ordering of a against b. Unlike
// ord, Null always sorts before any non-null value, and values of
// incomparable non-null kinds fall back to a comparison of their Kind
// tags, so that ORDER BY always produces a total, deterministic order.
func Order(a, b value.Value) int {
	if a.IsNull() && b.IsNull() {
		return 0
	}
	if a.IsNull() {
		return -1
	}
	if b.IsNull() {
		return 1
	}
	if sa, aok := a.Str(); aok {
		if sb, bok := b.Str(); bok {
			return collateCompare(sa, sb)
		}
	}
	if c, ok := ord(a, b); ok {
		return c
	}
	switch {
	case a.Kind() < b.Kind():
		return -1
	case a.Kind() > b.Kind():
		return 1
	default:
		return 0
	}
}

func compareOp(tok sql.Token, a, b value.Value) (bool, error) {
	switch tok {
	case sql.EQ:
		return Equal(a, b), nil
	case sql.NEQ:
		return !Equal(a, b), nil
	}
	c, ok := ord(a, b)
	if !ok {
		return false, nil
	}
	switch tok {
	case sql.LT:
		return c < 0, nil
	case sql.LTE:
		return c <= 0, nil
	case sql.GT:
		return c > 0, nil
	case sql.GTE:
		return c >= 0, nil
	}
	return false, errf("unsupported comparison operator %s", tok)
}
