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
	"strconv"
	"strings"
)

// parser turns a token stream into a Query. The grammar implemented is:
//
//	Query    := SELECT [TOP n] (* | Field {, Field}) FROM Ident [AS Ident]
//	            [WHERE OrExpr] [ORDER BY OrderField {, OrderField}] [LIMIT n]
//	OrExpr   := AndExpr {OR AndExpr}
//	AndExpr  := NotExpr {AND NotExpr}
//	NotExpr  := [NOT] CmpExpr
//	CmpExpr  := Term [(= | != | <> | < | <= | > | >=) Term]
//	          | Term BETWEEN Term AND Term
//	Term     := Atom | FnCall
//	Atom     := NUMBER | DOUBLE | STRING | TRUE | FALSE | NULL
//	          | Property | Parameter | LPAREN OrExpr RPAREN
type parser struct {
	s   *scanner
	buf struct {
		tok Token
		lit string
		val interface{}
		n   int
	}
	pos int
}

// Parse parses a single SELECT statement from text.
func Parse(text string) (*Query, error) {
	p := &parser{s: newScanner(strings.NewReader(text))}
	return p.parseQuery()
}

func (p *parser) scan() (tok Token, lit string, val interface{}) {
	if p.buf.n != 0 {
		p.buf.n = 0
		return p.buf.tok, p.buf.lit, p.buf.val
	}
	tok, lit, val = p.s.scan()
	for tok == WS {
		tok, lit, val = p.s.scan()
	}
	p.buf.tok, p.buf.lit, p.buf.val = tok, lit, val
	p.pos += len(lit)
	return
}

func (p *parser) unscan() {
	p.buf.n = 1
}

func (p *parser) in(tok Token, set []Token) bool {
	for _, t := range set {
		if tok == t {
			return true
		}
	}
	return false
}

func (p *parser) mightBe(expected ...Token) (tok Token, lit string, found bool) {
	tok, lit, _ = p.scan()
	if found = p.in(tok, expected); !found {
		p.unscan()
	}
	return
}

func (p *parser) shouldBe(expected ...Token) (tok Token, lit string, val interface{}, err error) {
	tok, lit, val = p.scan()
	if !p.in(tok, expected) {
		p.unscan()
		err = &ParseError{Found: lit, Expected: names(expected), Pos: p.pos}
	}
	return
}

func (p *parser) parseQuery() (*Query, error) {

	q := &Query{}

	if _, _, found := p.mightBe(EXPLAIN); found {
		q.Explain = true
	}

	if _, _, err := p.shouldBe(SELECT); err != nil {
		return nil, err
	}

	sel, err := p.parseSelectClause()
	if err != nil {
		return nil, err
	}
	q.Select = sel

	if _, _, err := p.shouldBe(FROM); err != nil {
		return nil, err
	}

	from, err := p.parseFromClause()
	if err != nil {
		return nil, err
	}
	q.From = from

	if _, _, found := p.mightBe(WHERE); found {
		expr, err := p.parseOrExpr()
		if err != nil {
			return nil, err
		}
		q.Where = expr
	}

	if _, _, found := p.mightBe(ORDER); found {
		if _, _, err := p.shouldBe(BY); err != nil {
			return nil, err
		}
		order, err := p.parseOrderList()
		if err != nil {
			return nil, err
		}
		q.OrderBy = order
	}

	if _, _, found := p.mightBe(LIMIT); found {
		tok, lit, _, err := p.shouldBe(NUMBER)
		if err != nil {
			return nil, err
		}
		_ = tok
		n, _ := strconv.Atoi(lit)
		q.Limit = n
		q.HasLimit = true
	}

	if tok, lit, _ := p.scan(); tok != EOF {
		return nil, &ParseError{Found: lit, Expected: []string{"EOF"}, Pos: p.pos}
	}

	q.stripAlias()

	return q, nil
}

// defaultAliases are the conventional container/root aliases, "c" and "r",
// accepted in a property path regardless of the container's actual name or
// whether FROM declared an explicit alias at all.
var defaultAliases = map[string]bool{"c": true, "r": true}

// stripAlias removes a leading container-alias segment from every property
// path in the query, since FROM declares the alias after SELECT has already
// been parsed and referenced it (e.g. "SELECT c.Name FROM Items c"). The
// conventional aliases "c" and "r" are always recognised, even when FROM
// gave no explicit alias (e.g. "SELECT * FROM Items WHERE c.Name = ...").
func (q *Query) stripAlias() {
	if q.From == nil {
		return
	}
	aliases := defaultAliases
	if q.From.Alias != "" && !aliases[q.From.Alias] {
		aliases = map[string]bool{q.From.Alias: true, "c": true, "r": true}
	}
	walk := func(e Expr) {
		walkExpr(e, aliases)
	}
	for _, f := range q.Select.Fields {
		walk(f.Expr)
	}
	walk(q.Where)
	for _, o := range q.OrderBy {
		walk(o.Expr)
	}
}

func walkExpr(e Expr, aliases map[string]bool) {
	switch x := e.(type) {
	case *Property:
		if len(x.Path) > 1 && aliases[x.Path[0]] {
			x.Path = x.Path[1:]
		}
	case *Unary:
		walkExpr(x.Operand, aliases)
	case *Binary:
		walkExpr(x.LHS, aliases)
		walkExpr(x.RHS, aliases)
	case *Between:
		walkExpr(x.Operand, aliases)
		walkExpr(x.Low, aliases)
		walkExpr(x.High, aliases)
	case *FnCall:
		for _, a := range x.Args {
			walkExpr(a, aliases)
		}
	}
}

func (p *parser) parseSelectClause() (*SelectClause, error) {

	sel := &SelectClause{}

	if _, _, found := p.mightBe(TOP); found {
		_, lit, _, err := p.shouldBe(NUMBER)
		if err != nil {
			return nil, err
		}
		n, _ := strconv.Atoi(lit)
		sel.Top = n
		sel.HasTop = true
	}

	if _, _, found := p.mightBe(ASTERISK); found {
		sel.Wildcard = true
		return sel, nil
	}

	for {
		field, err := p.parseField()
		if err != nil {
			return nil, err
		}
		sel.Fields = append(sel.Fields, field)
		if _, _, found := p.mightBe(COMMA); !found {
			break
		}
	}

	return sel, nil
}

func (p *parser) parseField() (*Field, error) {

	expr, err := p.parseProperty()
	if err != nil {
		return nil, err
	}

	field := &Field{Expr: expr}

	if _, _, found := p.mightBe(AS); found {
		_, lit, _, err := p.shouldBe(IDENT)
		if err != nil {
			return nil, err
		}
		field.Alias = lit
	} else if prop, ok := expr.(*Property); ok {
		field.Alias = prop.Path[len(prop.Path)-1]
	}

	return field, nil
}

func (p *parser) parseFromClause() (*FromClause, error) {
	_, lit, _, err := p.shouldBe(IDENT)
	if err != nil {
		return nil, err
	}
	from := &FromClause{Container: lit, Alias: lit}
	if _, _, found := p.mightBe(AS); found {
		_, alias, _, err := p.shouldBe(IDENT)
		if err != nil {
			return nil, err
		}
		from.Alias = alias
	} else if _, alias, found := p.mightBe(IDENT); found {
		from.Alias = alias
	}
	return from, nil
}

func (p *parser) parseOrderList() ([]*OrderField, error) {
	var out []*OrderField
	for {
		expr, err := p.parseProperty()
		if err != nil {
			return nil, err
		}
		field := &OrderField{Expr: expr}
		if tok, _, found := p.mightBe(ASC, DESC); found {
			field.Desc = tok == DESC
		}
		out = append(out, field)
		if _, _, found := p.mightBe(COMMA); !found {
			break
		}
	}
	return out, nil
}

// parseOrExpr parses the lowest-precedence boolean connective, OR.
func (p *parser) parseOrExpr() (Expr, error) {
	lhs, err := p.parseAndExpr()
	if err != nil {
		return nil, err
	}
	for {
		if _, _, found := p.mightBe(OR); !found {
			return lhs, nil
		}
		rhs, err := p.parseAndExpr()
		if err != nil {
			return nil, err
		}
		lhs = &Binary{Op: OR, LHS: lhs, RHS: rhs}
	}
}

func (p *parser) parseAndExpr() (Expr, error) {
	lhs, err := p.parseNotExpr()
	if err != nil {
		return nil, err
	}
	for {
		if _, _, found := p.mightBe(AND); !found {
			return lhs, nil
		}
		rhs, err := p.parseNotExpr()
		if err != nil {
			return nil, err
		}
		lhs = &Binary{Op: AND, LHS: lhs, RHS: rhs}
	}
}

func (p *parser) parseNotExpr() (Expr, error) {
	if _, _, found := p.mightBe(NOT); found {
		operand, err := p.parseNotExpr()
		if err != nil {
			return nil, err
		}
		return &Unary{Op: NOT, Operand: operand}, nil
	}
	return p.parseCmpExpr()
}

func (p *parser) parseCmpExpr() (Expr, error) {

	lhs, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	if _, _, found := p.mightBe(BETWEEN); found {
		low, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		if _, _, err := p.shouldBe(AND); err != nil {
			return nil, err
		}
		high, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		return &Between{Operand: lhs, Low: low, High: high}, nil
	}

	if tok, _, found := p.mightBe(EQ, NEQ, LT, LTE, GT, GTE); found {
		rhs, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		return &Binary{Op: tok, LHS: lhs, RHS: rhs}, nil
	}

	return lhs, nil
}

func (p *parser) parseTerm() (Expr, error) {

	tok, lit, val, _ := p.shouldBe(NUMBER, DOUBLE, STRING, TRUE, FALSE, NULL, IDENT, PARAM, LPAREN)

	switch tok {
	case NUMBER:
		return &Constant{Value: val}, nil
	case DOUBLE:
		return &Constant{Value: val}, nil
	case STRING:
		return &Constant{Value: val}, nil
	case TRUE:
		return &Constant{Value: true}, nil
	case FALSE:
		return &Constant{Value: false}, nil
	case NULL:
		return &Constant{Value: nil}, nil
	case PARAM:
		return &Parameter{Name: val.(string)}, nil
	case LPAREN:
		expr, err := p.parseOrExpr()
		if err != nil {
			return nil, err
		}
		if _, _, err := p.shouldBe(RPAREN); err != nil {
			return nil, err
		}
		return expr, nil
	case IDENT:
		if _, _, found := p.mightBe(LPAREN); found {
			return p.parseFnCallArgs(lit)
		}
		return p.parsePropertyFrom(lit)
	}

	return nil, &ParseError{Found: lit, Expected: []string{"value", "property", "function call"}, Pos: p.pos}
}

func (p *parser) parseFnCallArgs(name string) (Expr, error) {
	call := &FnCall{Name: strings.ToUpper(name)}
	if _, _, found := p.mightBe(RPAREN); found {
		return call, nil
	}
	for {
		arg, err := p.parseOrExpr()
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, arg)
		if _, _, found := p.mightBe(COMMA); !found {
			break
		}
	}
	if _, _, err := p.shouldBe(RPAREN); err != nil {
		return nil, err
	}
	return call, nil
}

// parseProperty parses a dotted field path, such as Address.City. A leading
// container alias segment is kept here and removed later by stripAlias.
func (p *parser) parseProperty() (Expr, error) {
	_, lit, _, err := p.shouldBe(IDENT)
	if err != nil {
		return nil, err
	}
	return p.parsePropertyFrom(lit)
}

// parsePropertyFrom continues parsing a dotted field path whose leading
// identifier has already been scanned and is passed as head.
func (p *parser) parsePropertyFrom(head string) (Expr, error) {
	path := []string{head}
	for {
		if _, _, found := p.mightBe(DOT); !found {
			break
		}
		_, seg, _, err := p.shouldBe(IDENT)
		if err != nil {
			return nil, err
		}
		path = append(path, seg)
	}
	return &Property{Path: path}, nil
}
