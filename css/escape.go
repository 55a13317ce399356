// https://drafts.csswg.org/cssom/#common-serializing-idioms
package css

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// EscapeIdentifier serializes s as a CSS identifier.
func EscapeIdentifier(s string) string {
	var out strings.Builder
	for i, w := 0, 0; i < len(s); i += w {
		var r rune
		r, w = utf8.DecodeRuneInString(s[i:])
		switch {
		case r == '\u0000':
			out.WriteRune('�')
		case r >= '\u0001' && r <= '\u001F', r == '\u007F',
			i == 0 && r >= '0' && r <= '9',
			i == 1 && r >= '0' && r <= '9' && s[0] == '-':
			out.WriteString(`\` + strconv.FormatInt(int64(r), 16) + " ")
		case i == 0 && len(s) == 1 && r == '-':
			out.WriteString(`\-`)
		case r == '-' || r == '_' || r >= '' ||
			r >= '0' && r <= '9' || r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z':
			out.WriteRune(r)
		default:
			out.WriteRune('\\')
			out.WriteRune(r)
		}
	}
	return out.String()
}

// EscapeString serializes s as the contents of a double quoted CSS string.
func EscapeString(s string) string {
	var out strings.Builder
	for _, r := range s {
		switch {
		case r == '\u0000':
			out.WriteRune('�')
		case r >= '\u0001' && r <= '\u001F', r == '\u007F':
			out.WriteString(`\` + strconv.FormatInt(int64(r), 16) + " ")
		case r == '"' || r == '\\':
			out.WriteRune('\\')
			out.WriteRune(r)
		default:
			out.WriteRune(r)
		}
	}
	return out.String()
}

// Unescape reverses CSS escaping (backslash escapes and hex escapes).
func Unescape(s string) string {
	var out strings.Builder
	for i := 0; i < len(s); {
		r, w := utf8.DecodeRuneInString(s[i:])
		i += w
		switch {
		case r == '�':
			out.WriteRune('\u0000')
		case r == '\\' && i < len(s) && !isHexDigit(rune(s[i])):
			out.WriteByte(s[i])
			i++
		case r == '\\' && i < len(s):
			j := i
			for ; j < i+6 && j < len(s) && isHexDigit(rune(s[j])); j++ {
			}
			n, err := strconv.ParseUint(s[i:j], 16, 64)
			if err != nil {
				panic(err)
			}
			out.WriteRune(rune(n))
			i = j
			if i < len(s) && unicode.IsSpace(rune(s[i])) {
				i++
			}
		default:
			out.WriteRune(r)
		}
	}
	return out.String()
}
