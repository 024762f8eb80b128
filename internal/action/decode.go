package action

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// DecodeError reports a payload that does not describe a valid action.
// Nothing has been executed when it is returned.
type DecodeError struct {
	Payload string
	Offset  int
	Cause   string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode action: %s (offset %d)", e.Cause, e.Offset)
}

type tokKind int

const (
	tokEOF tokKind = iota
	tokIdent
	tokInt
	tokString
	tokChar
	tokLParen
	tokRParen
	tokComma
)

var tokNames = map[tokKind]string{
	tokEOF:    "end of input",
	tokIdent:  "identifier",
	tokInt:    "integer",
	tokString: "string",
	tokChar:   "character",
	tokLParen: "'('",
	tokRParen: "')'",
	tokComma:  "','",
}

type token struct {
	kind tokKind
	text string // raw text, or the unescaped value for strings and chars
	pos  int
}

type parser struct {
	src string
	pos int
	tok token
}

// Decode parses a serialized action token such as `Key(Unicode('a'), Click)`
// or `MoveMouse(10, -4, Rel)`.
func Decode(payload string) (Action, error) {
	p := &parser{src: payload}
	if err := p.next(); err != nil {
		return nil, err
	}
	if p.tok.kind == tokEOF {
		return nil, p.errorf(0, "empty payload")
	}
	a, err := p.parseAction()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, p.errorf(p.tok.pos, "unexpected %s after action", tokNames[p.tok.kind])
	}
	return a, nil
}

func (p *parser) errorf(pos int, format string, args ...interface{}) *DecodeError {
	return &DecodeError{Payload: p.src, Offset: pos, Cause: fmt.Sprintf(format, args...)}
}

func (p *parser) parseAction() (Action, error) {
	name, pos, err := p.ident()
	if err != nil {
		return nil, err
	}
	if err := p.expect(tokLParen); err != nil {
		return nil, err
	}

	var a Action
	switch Kind(name) {
	case KindText:
		if p.tok.kind != tokString {
			return nil, p.unexpected("string")
		}
		a = Text{Text: p.tok.text}
		if err := p.next(); err != nil {
			return nil, err
		}

	case KindKey:
		k, err := p.parseKey()
		if err != nil {
			return nil, err
		}
		d, err := p.commaDirection()
		if err != nil {
			return nil, err
		}
		a = Key{Key: k, Direction: d}

	case KindRaw:
		code, err := p.integer(0, math.MaxUint16, "Raw keycode")
		if err != nil {
			return nil, err
		}
		d, err := p.commaDirection()
		if err != nil {
			return nil, err
		}
		a = Raw{Code: uint16(code), Direction: d}

	case KindButton:
		bname, bpos, err := p.ident()
		if err != nil {
			return nil, err
		}
		b, ok := lookupButton(bname)
		if !ok {
			return nil, p.errorf(bpos, "unknown button %q", bname)
		}
		d, err := p.commaDirection()
		if err != nil {
			return nil, err
		}
		a = Button{Button: b, Direction: d}

	case KindMoveMouse:
		x, err := p.integer(math.MinInt32, math.MaxInt32, "MoveMouse x")
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokComma); err != nil {
			return nil, err
		}
		y, err := p.integer(math.MinInt32, math.MaxInt32, "MoveMouse y")
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokComma); err != nil {
			return nil, err
		}
		cname, cpos, err := p.ident()
		if err != nil {
			return nil, err
		}
		var c Coordinate
		switch cname {
		case "Abs":
			c = Abs
		case "Rel":
			c = Rel
		default:
			return nil, p.errorf(cpos, "unknown coordinate %q", cname)
		}
		a = MoveMouse{X: int32(x), Y: int32(y), Coordinate: c}

	case KindScroll:
		n, err := p.integer(-MaxScroll, MaxScroll, "Scroll length")
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokComma); err != nil {
			return nil, err
		}
		aname, apos, err := p.ident()
		if err != nil {
			return nil, err
		}
		var axis Axis
		switch aname {
		case "Vertical":
			axis = Vertical
		case "Horizontal":
			axis = Horizontal
		default:
			return nil, p.errorf(apos, "unknown axis %q", aname)
		}
		a = Scroll{Length: int32(n), Axis: axis}

	default:
		return nil, p.errorf(pos, "unknown action kind %q", name)
	}

	if err := p.closeParen(); err != nil {
		return nil, err
	}
	return a, nil
}

func (p *parser) parseKey() (KeyCode, error) {
	name, pos, err := p.ident()
	if err != nil {
		return KeyCode{}, err
	}
	switch name {
	case "Unicode":
		if err := p.expect(tokLParen); err != nil {
			return KeyCode{}, err
		}
		if p.tok.kind != tokChar && p.tok.kind != tokString {
			return KeyCode{}, p.unexpected("character")
		}
		r, size := utf8.DecodeRuneInString(p.tok.text)
		if size == 0 || size != len(p.tok.text) {
			return KeyCode{}, p.errorf(p.tok.pos, "Unicode key needs exactly one character, got %q", p.tok.text)
		}
		if err := p.next(); err != nil {
			return KeyCode{}, err
		}
		if err := p.closeParen(); err != nil {
			return KeyCode{}, err
		}
		return Unicode(r), nil
	case "Other":
		if err := p.expect(tokLParen); err != nil {
			return KeyCode{}, err
		}
		code, err := p.integer(0, math.MaxUint32, "Other keycode")
		if err != nil {
			return KeyCode{}, err
		}
		if err := p.closeParen(); err != nil {
			return KeyCode{}, err
		}
		return Other(uint32(code)), nil
	}
	k, ok := Named(name)
	if !ok {
		return KeyCode{}, p.errorf(pos, "unknown key %q", name)
	}
	return k, nil
}

func (p *parser) commaDirection() (Direction, error) {
	if err := p.expect(tokComma); err != nil {
		return 0, err
	}
	name, pos, err := p.ident()
	if err != nil {
		return 0, err
	}
	for d, s := range directionNames {
		if s == name {
			return d, nil
		}
	}
	return 0, p.errorf(pos, "unknown direction %q", name)
}

func lookupButton(name string) (MouseButton, bool) {
	for i, s := range buttonNames {
		if s == name {
			return MouseButton(i), true
		}
	}
	return 0, false
}

func (p *parser) ident() (string, int, error) {
	if p.tok.kind != tokIdent {
		return "", 0, p.unexpected("identifier")
	}
	name, pos := p.tok.text, p.tok.pos
	return name, pos, p.next()
}

func (p *parser) integer(min, max int64, field string) (int64, error) {
	if p.tok.kind != tokInt {
		return 0, p.unexpected("integer")
	}
	tok := p.tok
	n, err := strconv.ParseInt(tok.text, 10, 64)
	if err != nil || n < min || n > max {
		return 0, p.errorf(tok.pos, "%s %s out of range [%d, %d]", field, tok.text, min, max)
	}
	return n, p.next()
}

func (p *parser) expect(kind tokKind) error {
	if p.tok.kind != kind {
		return p.unexpected(tokNames[kind])
	}
	return p.next()
}

// closeParen accepts an optional trailing comma before ')'.
func (p *parser) closeParen() error {
	if p.tok.kind == tokComma {
		if err := p.next(); err != nil {
			return err
		}
	}
	return p.expect(tokRParen)
}

func (p *parser) unexpected(want string) error {
	got := tokNames[p.tok.kind]
	if p.tok.kind == tokIdent || p.tok.kind == tokInt {
		got = fmt.Sprintf("%s %q", got, p.tok.text)
	}
	return p.errorf(p.tok.pos, "expected %s, got %s", want, got)
}

// next scans the following token into p.tok.
func (p *parser) next() error {
	for p.pos < len(p.src) && isSpace(p.src[p.pos]) {
		p.pos++
	}
	start := p.pos
	if p.pos >= len(p.src) {
		p.tok = token{kind: tokEOF, pos: start}
		return nil
	}

	c := p.src[p.pos]
	switch {
	case c == '(':
		p.pos++
		p.tok = token{kind: tokLParen, text: "(", pos: start}
	case c == ')':
		p.pos++
		p.tok = token{kind: tokRParen, text: ")", pos: start}
	case c == ',':
		p.pos++
		p.tok = token{kind: tokComma, text: ",", pos: start}
	case c == '"' || c == '\'':
		s, err := p.scanQuoted(c)
		if err != nil {
			return err
		}
		kind := tokString
		if c == '\'' {
			kind = tokChar
		}
		p.tok = token{kind: kind, text: s, pos: start}
	case c == '-' || c == '+' || isDigit(c):
		p.pos++
		for p.pos < len(p.src) && isDigit(p.src[p.pos]) {
			p.pos++
		}
		text := p.src[start:p.pos]
		if text == "-" || text == "+" {
			return p.errorf(start, "sign without digits")
		}
		p.tok = token{kind: tokInt, text: strings.TrimPrefix(text, "+"), pos: start}
	case isIdentStart(c):
		for p.pos < len(p.src) && isIdentPart(p.src[p.pos]) {
			p.pos++
		}
		p.tok = token{kind: tokIdent, text: p.src[start:p.pos], pos: start}
	default:
		r, _ := utf8.DecodeRuneInString(p.src[p.pos:])
		return p.errorf(start, "unexpected character %q", r)
	}
	return nil
}

func (p *parser) scanQuoted(quote byte) (string, error) {
	start := p.pos
	p.pos++
	var b strings.Builder
	for {
		if p.pos >= len(p.src) {
			return "", p.errorf(start, "unterminated literal")
		}
		c := p.src[p.pos]
		if c == quote {
			p.pos++
			return b.String(), nil
		}
		if c != '\\' {
			r, size := utf8.DecodeRuneInString(p.src[p.pos:])
			if r == utf8.RuneError && size == 1 {
				return "", p.errorf(p.pos, "invalid UTF-8 in literal")
			}
			b.WriteRune(r)
			p.pos += size
			continue
		}

		escPos := p.pos
		p.pos++
		if p.pos >= len(p.src) {
			return "", p.errorf(start, "unterminated literal")
		}
		e := p.src[p.pos]
		p.pos++
		switch e {
		case '"', '\'', '\\':
			b.WriteByte(e)
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case '0':
			b.WriteByte(0)
		case 'u':
			if p.pos >= len(p.src) || p.src[p.pos] != '{' {
				return "", p.errorf(escPos, `malformed \u escape`)
			}
			end := strings.IndexByte(p.src[p.pos:], '}')
			if end < 0 {
				return "", p.errorf(escPos, `malformed \u escape`)
			}
			hex := p.src[p.pos+1 : p.pos+end]
			p.pos += end + 1
			n, err := strconv.ParseUint(hex, 16, 32)
			if err != nil || len(hex) == 0 || len(hex) > 6 || !utf8.ValidRune(rune(n)) {
				return "", p.errorf(escPos, `invalid \u{%s} escape`, hex)
			}
			b.WriteRune(rune(n))
		default:
			return "", p.errorf(escPos, `unknown escape \%c`, e)
		}
	}
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }
func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
func isIdentPart(c byte) bool { return isIdentStart(c) || isDigit(c) }
