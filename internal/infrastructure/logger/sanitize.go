package logger

import (
	"fmt"
	"strings"
	"unicode"
)

// maxLogValue bounds caller-supplied values in log fields, in runes.
const maxLogValue = 200

const truncatedMarker = "...(truncated)"

// SanitizeForLog makes a caller-supplied value (source id, storage path,
// content type) safe to put in a log field. Control characters and Unicode
// line separators become visible escapes; printable text, including
// non-ASCII, is kept. Values longer than maxLogValue runes are cut.
func SanitizeForLog(s string) string {
	var b strings.Builder
	b.Grow(min(len(s), maxLogValue) + len(truncatedMarker))

	n := 0
	for _, r := range s {
		if n == maxLogValue {
			b.WriteString(truncatedMarker)
			break
		}
		n++

		switch {
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r == '\u2028' || r == '\u2029':
			fmt.Fprintf(&b, `\u%04x`, r)
		case unicode.IsControl(r):
			fmt.Fprintf(&b, `\x%02x`, r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
