// Package jsonparse turns JSON text (ECMA-404 / RFC 8259) into a
// jsonval.Value tree.
//
// The parser is a single-pass recursive descent over the input
// buffer: one method per grammar production, each taking the current
// cursor and returning the new cursor plus the produced subvalue. The
// buffer is borrowed for the duration of the parse; every error
// carries the cursor position and a rendered source excerpt.
//
// Grammar relaxations: numeric tokens are validated by the host float
// parser (fastfloat), so forms it accepts beyond strict JSON (such as
// leading zeros) pass through rather than being re-rejected here.
// Duplicate object keys are permitted; the last occurrence wins.
package jsonparse

import (
	"strconv"

	"github.com/DmitriBogdanov/prototyping-utils/jsonerr"
	"github.com/DmitriBogdanov/prototyping-utils/jsonlex"
	"github.com/DmitriBogdanov/prototyping-utils/jsonnum"
	"github.com/DmitriBogdanov/prototyping-utils/jsonval"
)

// DefaultRecursionLimit is the default maximum nesting depth.
const DefaultRecursionLimit = 1000

// recursionLimit is process-wide and intentionally unsynchronized:
// the codec's execution model is single-threaded, and the setter is
// meant for process setup, not concurrent reconfiguration.
var recursionLimit = DefaultRecursionLimit

// SetRecursionLimit sets the maximum nesting depth the parser will
// descend before failing with DepthExceeded. Guards against stack
// overflow on adversarial inputs such as 100k opening brackets.
func SetRecursionLimit(n int) { recursionLimit = n }

// RecursionLimit returns the current depth cap.
func RecursionLimit() int { return recursionLimit }

type parser struct {
	data  []byte
	depth int
}

// Parse parses a complete JSON document. Leading and trailing
// whitespace is permitted; any other trailing byte fails with
// TrailingData. On any error the partial value is discarded.
func Parse(data []byte) (jsonval.Value, error) {
	p := &parser{data: data}

	start, err := p.skipWhitespace(0)
	if err != nil {
		return jsonval.Value{}, err
	}

	end, v, err := p.parseNested(start)
	if err != nil {
		return jsonval.Value{}, err
	}

	for pos := end; pos < len(data); pos++ {
		if !jsonlex.Whitespace[data[pos]] {
			return jsonval.Value{}, p.errAt(jsonerr.TrailingData, pos,
				"non-whitespace byte "+quoteByte(data[pos])+" after the top-level value")
		}
	}
	return v, nil
}

func (p *parser) errAt(kind jsonerr.Kind, pos int, message string) error {
	return jsonerr.At(kind, p.data, pos, message)
}

// skipWhitespace advances the cursor past insignificant whitespace.
// Reaching the end of the buffer is an error: every caller expects a
// significant byte to follow.
func (p *parser) skipWhitespace(pos int) (int, error) {
	for pos < len(p.data) {
		if !jsonlex.Whitespace[p.data[pos]] {
			return pos, nil
		}
		pos++
	}
	return pos, p.errAt(jsonerr.UnexpectedEnd, pos,
		"end of buffer while skipping whitespace")
}

// parseValue dispatches on the first byte of a value. The cursor must
// be at a significant byte.
func (p *parser) parseValue(pos int) (int, jsonval.Value, error) {
	c := p.data[pos]
	switch {
	case c == '{':
		return p.parseObject(pos)
	case c == '[':
		return p.parseArray(pos)
	case c == '"':
		end, s, err := p.parseString(pos)
		if err != nil {
			return pos, jsonval.Value{}, err
		}
		return end, jsonval.NewString(s), nil
	case c == '-' || ('0' <= c && c <= '9'):
		f, end, err := jsonnum.ParsePrefix(p.data, pos)
		if err != nil {
			return pos, jsonval.Value{}, err
		}
		return end, jsonval.NewNumber(f), nil
	case c == 't':
		return p.parseLiteral(pos, "true", jsonval.NewBool(true))
	case c == 'f':
		return p.parseLiteral(pos, "false", jsonval.NewBool(false))
	case c == 'n':
		return p.parseLiteral(pos, "null", jsonval.NewNull())
	default:
		return pos, jsonval.Value{}, p.errAt(jsonerr.UnexpectedByte, pos,
			"byte "+quoteByte(c)+" cannot start a JSON value")
	}
}

// parseNested parses one value while enforcing the recursion limit:
// the depth counter increments before every descent (the top-level
// value counts as depth 1), so an input nested deeper than the limit
// fails with DepthExceeded instead of overflowing the stack.
func (p *parser) parseNested(pos int) (int, jsonval.Value, error) {
	p.depth++
	if p.depth > recursionLimit {
		return pos, jsonval.Value{}, p.errAt(jsonerr.DepthExceeded, pos,
			"nesting exceeds the recursion limit of "+strconv.Itoa(recursionLimit)+
				" (see SetRecursionLimit)")
	}
	end, v, err := p.parseValue(pos)
	p.depth--
	return end, v, err
}

func (p *parser) parseObject(pos int) (int, jsonval.Value, error) {
	pos++ // past '{'
	v := jsonval.NewObject()
	obj, _ := v.GetObject()

	pos, err := p.skipWhitespace(pos)
	if err != nil {
		return pos, jsonval.Value{}, err
	}
	if p.data[pos] == '}' {
		return pos + 1, v, nil
	}

	pos, err = p.parsePair(pos, obj)
	if err != nil {
		return pos, jsonval.Value{}, err
	}

	for {
		pos, err = p.skipWhitespace(pos)
		if err != nil {
			return pos, jsonval.Value{}, err
		}
		switch p.data[pos] {
		case ',':
			pos, err = p.skipWhitespace(pos + 1)
			if err != nil {
				return pos, jsonval.Value{}, err
			}
			pos, err = p.parsePair(pos, obj)
			if err != nil {
				return pos, jsonval.Value{}, err
			}
		case '}':
			return pos + 1, v, nil
		default:
			return pos, jsonval.Value{}, p.errAt(jsonerr.UnexpectedByte, pos,
				"expected ',' or '}' in object, got "+quoteByte(p.data[pos]))
		}
	}
}

// parsePair parses one `"key": value` pair into obj. The cursor must
// be at the first byte of the key.
func (p *parser) parsePair(pos int, obj *jsonval.Object) (int, error) {
	if p.data[pos] != '"' {
		return pos, p.errAt(jsonerr.UnexpectedByte, pos,
			"expected an object key, got "+quoteByte(p.data[pos]))
	}
	pos, key, err := p.parseString(pos)
	if err != nil {
		return pos, err
	}

	pos, err = p.skipWhitespace(pos)
	if err != nil {
		return pos, err
	}
	if p.data[pos] != ':' {
		return pos, p.errAt(jsonerr.UnexpectedByte, pos,
			"expected ':' after object key, got "+quoteByte(p.data[pos]))
	}
	pos, err = p.skipWhitespace(pos + 1)
	if err != nil {
		return pos, err
	}

	pos, value, err := p.parseNested(pos)
	if err != nil {
		return pos, err
	}

	// Duplicate keys are permitted (RFC 8259 discourages but allows
	// them); Set overwrites, so the last occurrence wins.
	obj.Set(key, value)
	return pos, nil
}

func (p *parser) parseArray(pos int) (int, jsonval.Value, error) {
	pos++ // past '['
	v := jsonval.NewArray()

	pos, err := p.skipWhitespace(pos)
	if err != nil {
		return pos, jsonval.Value{}, err
	}
	if p.data[pos] == ']' {
		return pos + 1, v, nil
	}

	pos, elem, err := p.parseNested(pos)
	if err != nil {
		return pos, jsonval.Value{}, err
	}
	_ = v.Append(elem)

	for {
		pos, err = p.skipWhitespace(pos)
		if err != nil {
			return pos, jsonval.Value{}, err
		}
		switch p.data[pos] {
		case ',':
			pos, err = p.skipWhitespace(pos + 1)
			if err != nil {
				return pos, jsonval.Value{}, err
			}
			pos, elem, err = p.parseNested(pos)
			if err != nil {
				return pos, jsonval.Value{}, err
			}
			_ = v.Append(elem)
		case ']':
			return pos + 1, v, nil
		default:
			return pos, jsonval.Value{}, p.errAt(jsonerr.UnexpectedByte, pos,
				"expected ',' or ']' in array, got "+quoteByte(p.data[pos]))
		}
	}
}

func (p *parser) parseLiteral(pos int, token string, v jsonval.Value) (int, jsonval.Value, error) {
	if pos+len(token) > len(p.data) {
		return pos, jsonval.Value{}, p.errAt(jsonerr.UnexpectedEnd, pos,
			"end of buffer while matching "+strconv.Quote(token))
	}
	if string(p.data[pos:pos+len(token)]) != token {
		return pos, jsonval.Value{}, p.errAt(jsonerr.UnexpectedByte, pos,
			"could not match literal "+strconv.Quote(token))
	}
	return pos + len(token), v, nil
}

func quoteByte(b byte) string {
	return strconv.QuoteRune(rune(b))
}
