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

// Query is the parsed form of a single SELECT statement.
type Query struct {
	Explain bool
	Select  *SelectClause
	From    *FromClause
	Where   Expr
	OrderBy []*OrderField
	Limit   int
	HasLimit bool
}

// SelectClause lists the projected fields, or the wildcard.
type SelectClause struct {
	Top      int
	HasTop   bool
	Wildcard bool
	Fields   []*Field
}

// Field is a single projected column, optionally aliased.
type Field struct {
	Expr  Expr
	Alias string
}

// FromClause names the container being queried and its optional alias.
type FromClause struct {
	Container string
	Alias     string
}

// OrderField is one ORDER BY term.
type OrderField struct {
	Expr Expr
	Desc bool
}

// Expr is the sum type for every node that can appear in a WHERE clause,
// a projected field, or an ORDER BY term.
type Expr interface {
	exprNode()
}

// Constant is a literal value: number, string, boolean or null.
type Constant struct {
	Value interface{} // nil, bool, int64, float64 or string
}

// Property references a document field by dotted path, e.g. Address.City.
// The leading container alias, if any, has already been stripped by the
// parser.
type Property struct {
	Path []string
}

// Parameter references a bound query parameter, e.g. @status.
type Parameter struct {
	Name string
}

// Unary is a prefix operator applied to a single operand. Op is always NOT.
type Unary struct {
	Op      Token
	Operand Expr
}

// Binary is an infix operator applied to two operands: comparisons
// (=, !=, <, <=, >, >=) and the boolean connectives AND/OR.
type Binary struct {
	Op  Token
	LHS Expr
	RHS Expr
}

// Between represents "Expr BETWEEN Low AND High".
type Between struct {
	Operand Expr
	Low     Expr
	High    Expr
	Not     bool
}

// FnCall represents a built-in function invocation, e.g. CONTAINS(x, y).
type FnCall struct {
	Name string
	Args []Expr
}

func (*Constant) exprNode() {}
func (*Property) exprNode() {}
func (*Parameter) exprNode() {}
func (*Unary) exprNode()    {}
func (*Binary) exprNode()   {}
func (*Between) exprNode()  {}
func (*FnCall) exprNode()   {}
