package jsonerr

import "strconv"

// Window of source bytes shown on each side of the cursor.
const (
	maxLeftWidth  = 24
	maxRightWidth = 24
)

// Excerpt renders a multi-line view of src around the given cursor:
// the line number, the affected slice of the line (bounded by the
// window above), and a caret marker under the offending byte.
//
//	Line 3: "key": flase,
//	        -------^----- [!]
//
// The result starts with a newline so it can be appended directly to
// an error message. An empty src yields an empty excerpt.
func Excerpt(src []byte, cursor int) string {
	if len(src) == 0 {
		return ""
	}

	// A cursor at end-of-buffer points at the last byte instead.
	if cursor >= len(src) {
		cursor = len(src) - 1
	}
	if cursor < 0 {
		cursor = 0
	}

	lineNumber := 1
	for pos := 0; pos < cursor; pos++ {
		if src[pos] == '\n' {
			lineNumber++
		}
	}

	lineStart := cursor
	for lineStart > 0 {
		if src[lineStart-1] == '\n' || cursor-lineStart >= maxLeftWidth {
			break
		}
		lineStart--
	}

	lineEnd := cursor
	for lineEnd < len(src)-1 {
		if src[lineEnd+1] == '\n' || lineEnd-cursor >= maxRightWidth {
			break
		}
		lineEnd++
	}

	prefix := "Line " + strconv.Itoa(lineNumber) + ": "

	buf := make([]byte, 0, 8+2*len(prefix)+2*(lineEnd-lineStart+1))
	buf = append(buf, '\n')
	buf = append(buf, prefix...)
	buf = append(buf, src[lineStart:lineEnd+1]...)
	buf = append(buf, '\n')
	buf = appendRepeat(buf, ' ', len(prefix))
	buf = appendRepeat(buf, '-', cursor-lineStart)
	buf = append(buf, '^')
	buf = appendRepeat(buf, '-', lineEnd-cursor)
	buf = append(buf, " [!]"...)
	return string(buf)
}

func appendRepeat(buf []byte, b byte, n int) []byte {
	for i := 0; i < n; i++ {
		buf = append(buf, b)
	}
	return buf
}
