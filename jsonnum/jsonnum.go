// Package jsonnum is the number boundary of the JSON codec.
//
// Parsing delegates to fastfloat: ParsePrefix consumes the longest
// plausible numeric token starting at the cursor, so the caller's
// cursor lands just past the last consumed byte. A token fastfloat
// accepts is read again by strconv for a correctly rounded value, so
// formatted numbers parse back to the same bits. Formatting delegates
// to strconv with shortest round-trip precision into a fixed-size
// buffer. Both directions work on IEEE 754 doubles only.
package jsonnum

import (
	"math"
	"strconv"

	"github.com/valyala/fastjson/fastfloat"

	"github.com/DmitriBogdanov/prototyping-utils/jsonerr"
)

// maxFloatChars is the smallest buffer that fits every shortest
// round-trip output for a double:
// 4 + max_digits10 (17) + max(2, ceil(log10(max_exponent10))) = 24.
const maxFloatChars = 24

// numberChar marks the bytes that can continue a numeric token.
// The token is cut at the first byte outside this set; whether the
// token itself is valid is fastfloat's decision.
var numberChar = func() (t [256]bool) {
	for b := '0'; b <= '9'; b++ {
		t[b] = true
	}
	t['+'] = true
	t['-'] = true
	t['.'] = true
	t['e'] = true
	t['E'] = true
	return
}()

// ParsePrefix parses the numeric token starting at src[cursor] and
// returns the parsed double plus the cursor position just past the
// token. A token fastfloat cannot parse maps to NumberFormat; a token
// that parses but is not representable as a finite double maps to
// NumberRange. Both errors are positioned at the original cursor.
func ParsePrefix(src []byte, cursor int) (float64, int, error) {
	end := cursor
	for end < len(src) && numberChar[src[end]] {
		end++
	}
	token := src[cursor:end]
	if len(token) == 0 {
		return 0, cursor, jsonerr.At(jsonerr.NumberFormat, src, cursor, "expected a number")
	}

	f, err := fastfloat.Parse(string(token))
	if err != nil {
		// fastfloat folds syntax and range failures into one error;
		// strconv distinguishes them for the taxonomy.
		if _, serr := strconv.ParseFloat(string(token), 64); isRange(serr) {
			return 0, cursor, jsonerr.At(jsonerr.NumberRange, src, cursor,
				"number "+strconv.Quote(string(token))+" is out of double range")
		}
		return 0, cursor, jsonerr.At(jsonerr.NumberFormat, src, cursor,
			"invalid number "+strconv.Quote(string(token)))
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, cursor, jsonerr.At(jsonerr.NumberRange, src, cursor,
			"number "+strconv.Quote(string(token))+" is out of double range")
	}
	// fastfloat scales the mantissa by powers of ten in floating point,
	// which can be one ulp off (1.23456789e+08 is not read back as
	// 123456789); strconv re-reads the accepted token correctly rounded.
	if exact, serr := strconv.ParseFloat(string(token), 64); serr == nil {
		f = exact
	}
	return f, end, nil
}

func isRange(err error) bool {
	nerr, ok := err.(*strconv.NumError)
	return ok && nerr.Err == strconv.ErrRange
}

// AppendFloat appends the shortest decimal representation of a finite
// double that round-trips back to the same bits. The caller must not
// pass NaN or infinities; use FormatNonFinite for those.
func AppendFloat(dst []byte, f float64) []byte {
	var buf [maxFloatChars]byte
	return append(dst, strconv.AppendFloat(buf[:0], f, 'g', -1, 64)...)
}

// FormatNonFinite returns the bare token for a non-finite double:
// "inf", "-inf", or "nan". The serializer wraps it in quotes, since
// JSON has no non-finite numbers.
func FormatNonFinite(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	default:
		return "nan"
	}
}
