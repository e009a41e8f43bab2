package workflow

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// Present reports whether a value counts as set. Workflow files come from a
// JavaScript tool, so presence follows JavaScript truthiness: missing, null,
// false, 0 and "" are absent while empty arrays and objects are present.
func Present(v gjson.Result) bool {
	switch v.Type {
	case gjson.Null, gjson.False:
		return false
	case gjson.Number:
		return v.Num != 0
	case gjson.String:
		return v.Str != ""
	default:
		return true
	}
}

// StrictEqual compares two values the way === does: primitives by type and
// value, objects and arrays never equal to one another, and two missing
// values equal.
func StrictEqual(a, b gjson.Result) bool {
	if !a.Exists() || !b.Exists() {
		return !a.Exists() && !b.Exists()
	}
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case gjson.Null, gjson.True, gjson.False:
		return true
	case gjson.Number:
		return a.Num == b.Num
	case gjson.String:
		return a.Str == b.Str
	default:
		return false
	}
}

// KeyCount returns the number of own enumerable keys of a value, which is
// what "is this mapping empty" means for loosely typed input.
func KeyCount(v gjson.Result) int {
	switch {
	case v.IsObject():
		n := 0
		v.ForEach(func(_, _ gjson.Result) bool {
			n++
			return true
		})
		return n
	case v.IsArray():
		return len(v.Array())
	case v.Type == gjson.String:
		return utf8.RuneCountInString(v.Str)
	default:
		return 0
	}
}

// Compact returns the value serialized without insignificant whitespace.
// String escapes are rewritten to the form JSON.stringify emits: \uXXXX and
// \/ are decoded unless the character has to stay escaped.
func Compact(v gjson.Result) string {
	if !v.Exists() {
		return ""
	}
	return normalizeEscapes(pretty.Ugly([]byte(v.Raw)))
}

func normalizeEscapes(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b))

	for i := 0; i < len(b); i++ {
		if b[i] != '\\' || i+1 == len(b) {
			sb.WriteByte(b[i])
			continue
		}
		switch b[i+1] {
		case '/':
			sb.WriteByte('/')
			i++
		case 'u':
			r, n := decodeUnicodeEscape(b[i:])
			if n == 0 {
				sb.Write(b[i : i+2])
				i++
				continue
			}
			writeEscaped(&sb, r)
			i += n - 1
		default:
			sb.Write(b[i : i+2])
			i++
		}
	}
	return sb.String()
}

// decodeUnicodeEscape reads \uXXXX, joining a following low surrogate. n is
// the number of bytes consumed, 0 when the escape is malformed.
func decodeUnicodeEscape(b []byte) (r rune, n int) {
	hi, ok := hex4(b)
	if !ok {
		return 0, 0
	}
	if utf16.IsSurrogate(hi) && len(b) >= 12 && b[6] == '\\' && b[7] == 'u' {
		if lo, ok := hex4(b[6:]); ok {
			if pair := utf16.DecodeRune(hi, lo); pair != utf8.RuneError {
				return pair, 12
			}
		}
	}
	return hi, 6
}

func hex4(b []byte) (rune, bool) {
	if len(b) < 6 {
		return 0, false
	}
	v, err := strconv.ParseUint(string(b[2:6]), 16, 32)
	if err != nil {
		return 0, false
	}
	return rune(v), true
}

func writeEscaped(sb *strings.Builder, r rune) {
	switch r {
	case '"':
		sb.WriteString(`\"`)
	case '\\':
		sb.WriteString(`\\`)
	case '\b':
		sb.WriteString(`\b`)
	case '\f':
		sb.WriteString(`\f`)
	case '\n':
		sb.WriteString(`\n`)
	case '\r':
		sb.WriteString(`\r`)
	case '\t':
		sb.WriteString(`\t`)
	default:
		if r < 0x20 || utf16.IsSurrogate(r) {
			fmt.Fprintf(sb, `\u%04x`, r)
			return
		}
		sb.WriteRune(r)
	}
}
