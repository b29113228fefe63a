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
	"bufio"
	"bytes"
	"io"
	"strconv"
)

const eof = rune(0)

// scanner is a rune-based lexical scanner reading from a buffered reader,
// with a single rune of pushback.
type scanner struct {
	r *bufio.Reader
	b []rune
	a []rune
}

func newScanner(r io.Reader) *scanner {
	return &scanner{r: bufio.NewReader(r)}
}

func (s *scanner) next() rune {
	if len(s.a) > 0 {
		var r rune
		r, s.a = s.a[len(s.a)-1], s.a[:len(s.a)-1]
		s.b = append(s.b, r)
		return r
	}
	r, _, err := s.r.ReadRune()
	if err != nil {
		return eof
	}
	s.b = append(s.b, r)
	return r
}

func (s *scanner) undo() {
	if len(s.b) > 0 {
		var r rune
		r, s.b = s.b[len(s.b)-1], s.b[:len(s.b)-1]
		s.a = append(s.a, r)
	}
}

func isBlank(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isNumber(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isLetter(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isIdentChar(ch rune) bool {
	return isLetter(ch) || isNumber(ch)
}

// scan returns the next token, its literal text, and a decoded value for
// literal tokens (NUMBER, DOUBLE, STRING).
func (s *scanner) scan() (tok Token, lit string, val interface{}) {

	ch := s.next()

	if isBlank(ch) {
		return s.scanBlank(ch)
	}

	if isLetter(ch) {
		return s.scanIdent(ch)
	}

	if isNumber(ch) {
		return s.scanNumber(ch)
	}

	switch ch {
	case eof:
		return EOF, "", nil
	case '*':
		return ASTERISK, string(ch), nil
	case ',':
		return COMMA, string(ch), nil
	case '.':
		return DOT, string(ch), nil
	case '(':
		return LPAREN, string(ch), nil
	case ')':
		return RPAREN, string(ch), nil
	case '@':
		return s.scanParam(ch)
	case '"':
		return s.scanString(ch)
	case '\'':
		return s.scanString(ch)
	case '=':
		return EQ, string(ch), nil
	case '<':
		chn := s.next()
		switch chn {
		case '=':
			return LTE, "<=", nil
		case '>':
			return NEQ, "<>", nil
		default:
			s.undo()
			return LT, string(ch), nil
		}
	case '>':
		if chn := s.next(); chn == '=' {
			return GTE, ">=", nil
		} else {
			s.undo()
			return GT, string(ch), nil
		}
	case '!':
		if chn := s.next(); chn == '=' {
			return NEQ, "!=", nil
		} else {
			s.undo()
			return ILLEGAL, string(ch), nil
		}
	}

	return ILLEGAL, string(ch), nil
}

func (s *scanner) scanBlank(chp ...rune) (tok Token, lit string, val interface{}) {
	var buf bytes.Buffer
	for _, ch := range chp {
		buf.WriteRune(ch)
	}
	for {
		if ch := s.next(); ch == eof {
			break
		} else if !isBlank(ch) {
			s.undo()
			break
		} else {
			buf.WriteRune(ch)
		}
	}
	return WS, buf.String(), nil
}

func (s *scanner) scanIdent(chp ...rune) (tok Token, lit string, val interface{}) {
	var buf bytes.Buffer
	for _, ch := range chp {
		buf.WriteRune(ch)
	}
	for {
		if ch := s.next(); ch == eof {
			break
		} else if isIdentChar(ch) {
			buf.WriteRune(ch)
		} else {
			s.undo()
			break
		}
	}
	word := buf.String()
	return lookup(word), word, nil
}

func (s *scanner) scanParam(chp ...rune) (tok Token, lit string, val interface{}) {
	var buf bytes.Buffer
	for {
		if ch := s.next(); ch == eof {
			break
		} else if isIdentChar(ch) {
			buf.WriteRune(ch)
		} else {
			s.undo()
			break
		}
	}
	if buf.Len() == 0 {
		return ILLEGAL, "@", nil
	}
	return PARAM, "@" + buf.String(), buf.String()
}

func (s *scanner) scanNumber(chp ...rune) (tok Token, lit string, val interface{}) {
	tok = NUMBER
	var buf bytes.Buffer
	for _, ch := range chp {
		buf.WriteRune(ch)
	}
	for {
		if ch := s.next(); ch == eof {
			break
		} else if isNumber(ch) {
			buf.WriteRune(ch)
		} else if ch == '.' && tok == NUMBER {
			tok = DOUBLE
			buf.WriteRune(ch)
		} else {
			s.undo()
			break
		}
	}
	text := buf.String()
	if tok == DOUBLE {
		f, _ := strconv.ParseFloat(text, 64)
		return DOUBLE, text, f
	}
	i, _ := strconv.ParseInt(text, 10, 64)
	return NUMBER, text, i
}

func (s *scanner) scanString(chp ...rune) (tok Token, lit string, val interface{}) {
	end := chp[0]
	var buf bytes.Buffer
	for {
		ch := s.next()
		if ch == end {
			break
		}
		if ch == eof {
			return ILLEGAL, buf.String(), nil
		}
		if ch == '\\' {
			chn := s.next()
			switch chn {
			case 'n':
				buf.WriteRune('\n')
			case 't':
				buf.WriteRune('\t')
			case 'r':
				buf.WriteRune('\r')
			default:
				buf.WriteRune(chn)
			}
			continue
		}
		buf.WriteRune(ch)
	}
	return STRING, buf.String(), buf.String()
}
