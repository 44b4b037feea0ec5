package jsonval

import (
	"math"

	"github.com/DmitriBogdanov/prototyping-utils/jsonlex"
	"github.com/DmitriBogdanov/prototyping-utils/jsonnum"
)

// Format selects the serializer layout.
type Format uint8

const (
	// Pretty indents nested values by 4 spaces per level and separates
	// entries with newlines (LF only).
	Pretty Format = iota

	// Minimized emits no whitespace between tokens.
	Minimized
)

const indentWidth = 4

// layout is the layout selector, passed to the recursion as a type
// parameter. Both layout types are empty structs, so they share one
// generic instantiation and the pretty() checks in appendValue run at
// run time on the minimized path as well.
type layout interface{ pretty() bool }

type prettyLayout struct{}

func (prettyLayout) pretty() bool { return true }

type minimizedLayout struct{}

func (minimizedLayout) pretty() bool { return false }

// Serialize appends the encoded form of v to buf and returns the
// extended buffer.
func Serialize(buf []byte, v *Value, format Format) []byte {
	if format == Pretty {
		return appendValue[prettyLayout](buf, v, 0, false)
	}
	return appendValue[minimizedLayout](buf, v, 0, false)
}

// ToString returns the encoded text of the value.
func (v *Value) ToString(format Format) string {
	return string(Serialize(nil, v, format))
}

// appendValue is the recursive serializer body shared by both
// layouts. skipFirstIndent is set when the value follows an object
// key: the key already placed the indentation for this line.
//
//	{
//	    "object": {              <- first indent skipped
//	        "something": null    <- first indent skipped
//	    },
//	    "array": [               <- first indent skipped
//	        1,                   <- first indent NOT skipped
//	        2                    <- first indent NOT skipped
//	    ]
//	}
func appendValue[L layout](buf []byte, v *Value, indent int, skipFirstIndent bool) []byte {
	var lay L
	if lay.pretty() && !skipFirstIndent {
		buf = appendIndent(buf, indent)
	}

	switch v.kind {
	case KindObject:
		if v.obj.Len() == 0 {
			return append(buf, "{}"...)
		}
		buf = append(buf, '{')
		if lay.pretty() {
			buf = append(buf, '\n')
		}
		for i := 0; i < v.obj.Len(); i++ {
			m := v.obj.MemberAt(i)
			if lay.pretty() {
				buf = appendIndent(buf, indent+1)
			}
			buf = appendString(buf, m.Key)
			if lay.pretty() {
				buf = append(buf, ':', ' ')
			} else {
				buf = append(buf, ':')
			}
			buf = appendValue[L](buf, &m.Value, indent+1, true)
			if i+1 < v.obj.Len() {
				buf = append(buf, ',')
			}
			if lay.pretty() {
				buf = append(buf, '\n')
			}
		}
		if lay.pretty() {
			buf = appendIndent(buf, indent)
		}
		return append(buf, '}')

	case KindArray:
		if len(v.arr) == 0 {
			return append(buf, "[]"...)
		}
		buf = append(buf, '[')
		if lay.pretty() {
			buf = append(buf, '\n')
		}
		for i := range v.arr {
			buf = appendValue[L](buf, &v.arr[i], indent+1, false)
			if i+1 < len(v.arr) {
				buf = append(buf, ',')
			}
			if lay.pretty() {
				buf = append(buf, '\n')
			}
		}
		if lay.pretty() {
			buf = appendIndent(buf, indent)
		}
		return append(buf, ']')

	case KindString:
		return appendString(buf, v.strv)

	case KindNumber:
		// Non-finite doubles have no JSON number form; they serialize
		// as quoted tokens ("inf", "-inf", "nan") at the cost of
		// round-trip symmetry.
		if math.IsInf(v.numv, 0) || math.IsNaN(v.numv) {
			buf = append(buf, '"')
			buf = append(buf, jsonnum.FormatNonFinite(v.numv)...)
			return append(buf, '"')
		}
		return jsonnum.AppendFloat(buf, v.numv)

	case KindBool:
		if v.boolv {
			return append(buf, "true"...)
		}
		return append(buf, "false"...)

	default:
		return append(buf, "null"...)
	}
}

func appendIndent(buf []byte, level int) []byte {
	for i := 0; i < level*indentWidth; i++ {
		buf = append(buf, ' ')
	}
	return buf
}

// appendString emits a quoted, escaped JSON string. The payload is
// flushed in segments bounded by escape events, so strings without
// escapes append in a single call. Escapes come from the serializer
// table; control characters without a short form become \u00XX.
func appendString(buf []byte, s string) []byte {
	buf = append(buf, '"')
	segmentStart := 0
	for i := 0; i < len(s); i++ {
		esc := jsonlex.SerializedEscape[s[i]]
		if esc == 0 {
			continue
		}
		buf = append(buf, s[segmentStart:i]...)
		if esc == jsonlex.UnicodeEscape {
			buf = append(buf, '\\', 'u', '0', '0', hexDigit(s[i]>>4), hexDigit(s[i]&0x0F))
		} else {
			buf = append(buf, '\\', esc)
		}
		segmentStart = i + 1
	}
	buf = append(buf, s[segmentStart:]...)
	return append(buf, '"')
}

func hexDigit(b byte) byte {
	if b < 10 {
		return '0' + b
	}
	return 'a' + (b - 10)
}
