package jsonparse

import (
	"strconv"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/DmitriBogdanov/prototyping-utils/jsonerr"
	"github.com/DmitriBogdanov/prototyping-utils/jsonlex"
)

// parseString parses a quoted string starting at the opening '"' and
// returns the decoded payload: 2-character escapes resolved through
// the escape table, \uXXXX codepoints (including surrogate pairs)
// re-encoded as UTF-8.
//
// The unescaped runs are appended in chunks bounded by escape events
// rather than byte-at-a-time; chunked appends measured roughly 50%
// faster on escape-light inputs in the implementation this is
// modeled on.
func (p *parser) parseString(pos int) (int, string, error) {
	pos++ // past the opening '"'

	var out []byte
	segmentStart := pos

	for pos < len(p.data) {
		c := p.data[pos]

		switch {
		case c == '"':
			out = append(out, p.data[segmentStart:pos]...)
			return pos + 1, string(out), nil

		case c == '\\':
			out = append(out, p.data[segmentStart:pos]...)
			pos++
			if pos >= len(p.data) {
				return pos, "", p.errAt(jsonerr.UnexpectedEnd, pos,
					"end of buffer inside an escape sequence")
			}

			esc := p.data[pos]
			if decoded := jsonlex.ParsedEscape[esc]; decoded != 0 {
				out = append(out, decoded)
				pos++
			} else if esc == 'u' {
				next, r, err := p.parseUnicodeEscape(pos)
				if err != nil {
					return pos, "", err
				}
				var tmp [utf8.UTFMax]byte
				out = append(out, tmp[:utf8.EncodeRune(tmp[:], r)]...)
				pos = next
			} else {
				return pos, "", p.errAt(jsonerr.BadEscape, pos,
					"unknown escape character "+quoteByte(esc))
			}
			segmentStart = pos

		case c < 0x20:
			return pos, "", p.errAt(jsonerr.BadControlChar, pos,
				"unescaped control character 0x"+hexByte(c)+" inside a string")

		default:
			pos++
		}
	}

	return pos, "", p.errAt(jsonerr.UnexpectedEnd, pos,
		"end of buffer inside a string")
}

// parseUnicodeEscape decodes \uXXXX starting at the 'u' and returns
// the cursor past the escape plus the decoded rune. A high surrogate
// must be followed by a \uXXXX low surrogate; the pair decodes to the
// supplementary-plane scalar. Lone halves are BadEscape.
func (p *parser) parseUnicodeEscape(pos int) (int, rune, error) {
	r1, err := p.readHexQuartet(pos + 1)
	if err != nil {
		return pos, 0, err
	}
	pos += 5

	if !utf16.IsSurrogate(r1) {
		return pos, r1, nil
	}
	if r1 >= 0xDC00 {
		return pos, 0, p.errAt(jsonerr.BadEscape, pos-6,
			"lone low surrogate \\u"+hexRune(r1))
	}
	if pos+1 >= len(p.data) || p.data[pos] != '\\' || p.data[pos+1] != 'u' {
		return pos, 0, p.errAt(jsonerr.BadEscape, pos-6,
			"high surrogate \\u"+hexRune(r1)+" not followed by a low surrogate")
	}
	r2, err := p.readHexQuartet(pos + 2)
	if err != nil {
		return pos, 0, err
	}
	if r2 < 0xDC00 || r2 > 0xDFFF {
		return pos, 0, p.errAt(jsonerr.BadEscape, pos,
			"high surrogate followed by non-surrogate \\u"+hexRune(r2))
	}
	return pos + 6, utf16.DecodeRune(r1, r2), nil
}

// readHexQuartet reads the 4 hex digits of a \u escape starting at
// the first digit.
func (p *parser) readHexQuartet(pos int) (rune, error) {
	if pos+4 > len(p.data) {
		return 0, p.errAt(jsonerr.UnexpectedEnd, pos,
			"end of buffer inside a \\u escape")
	}
	quartet := string(p.data[pos : pos+4])
	v, err := strconv.ParseUint(quartet, 16, 16)
	if err != nil {
		return 0, p.errAt(jsonerr.BadEscape, pos,
			"invalid hex digits "+strconv.Quote(quartet)+" in \\u escape")
	}
	return rune(v), nil
}

func hexByte(b byte) string {
	return string([]byte{hexDigit(b >> 4), hexDigit(b & 0x0F)})
}

func hexRune(r rune) string {
	return string([]byte{
		hexDigit(byte(r>>12) & 0x0F),
		hexDigit(byte(r>>8) & 0x0F),
		hexDigit(byte(r>>4) & 0x0F),
		hexDigit(byte(r) & 0x0F),
	})
}

func hexDigit(b byte) byte {
	if b < 10 {
		return '0' + b
	}
	return 'a' + (b - 10)
}
