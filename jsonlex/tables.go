// Package jsonlex holds the fixed character tables shared by the
// parser and the serializer. Each table has one entry per byte value,
// so the hot loops classify a byte with a single index instead of a
// chain of comparisons. Indexing is always by the unsigned byte.
package jsonlex

// UnicodeEscape is the sentinel stored in SerializedEscape for control
// characters that have no 2-character escape and must be written as
// \u00XX instead.
const UnicodeEscape = 0xFF

// Whitespace marks the insignificant whitespace bytes of the JSON
// grammar: SPACE, TAB, CR, LF. Nothing else qualifies.
var Whitespace = func() (t [256]bool) {
	t[' '] = true
	t['\t'] = true
	t['\r'] = true
	t['\n'] = true
	return
}()

// ParsedEscape maps the letter of a 2-character escape sequence to the
// byte it decodes to. A zero entry means the letter does not form a
// 2-character escape ('u' introduces the 6-character form and is
// handled separately by the parser).
var ParsedEscape = func() (t [256]byte) {
	t['"'] = '"'
	t['\\'] = '\\'
	t['/'] = '/'
	t['b'] = '\b'
	t['f'] = '\f'
	t['n'] = '\n'
	t['r'] = '\r'
	t['t'] = '\t'
	return
}()

// SerializedEscape maps a raw byte to the escape letter the serializer
// must emit after a backslash. Zero means the byte needs no escaping.
// Control characters without a short form carry the UnicodeEscape
// sentinel. A forward slash is never escaped (allowed but redundant).
var SerializedEscape = func() (t [256]byte) {
	for b := 0; b <= 0x1F; b++ {
		t[b] = UnicodeEscape
	}
	t['"'] = '"'
	t['\\'] = '\\'
	t['\b'] = 'b'
	t['\f'] = 'f'
	t['\n'] = 'n'
	t['\r'] = 'r'
	t['\t'] = 't'
	return
}()
