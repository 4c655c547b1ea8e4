package object

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// asRawString extracts the underlying Go string from any StringValue
// (String or HtmlSafeString), the one place code that needs "a string,
// safe or not" lives instead of repeating a type switch everywhere.
func asRawString(o Object) (string, bool) {
	sv, ok := o.(StringValue)
	if !ok {
		return "", false
	}
	return sv.RawString(), true
}

// utf8RuneCountPrefix returns the number of runes in s[:byteOffset].
// byteOffset must fall on a rune boundary (true for every offset this
// package derives from utf8.DecodeRuneInString or regexp match indices).
func utf8RuneCountPrefix(s string, byteOffset int) int {
	return utf8.RuneCountInString(s[:byteOffset])
}

// byteOffsetOfRune returns the byte offset of the runeIdx'th rune in s, or
// len(s) if runeIdx >= the rune count.
func byteOffsetOfRune(s string, runeIdx int) int {
	if runeIdx <= 0 {
		return 0
	}
	i := 0
	for n := 0; n < runeIdx && i < len(s); n++ {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return i
}

// runeSlice returns the substring spanning runes [start, start+length),
// clamped to s's rune count. ok is false when start is out of range.
func runeSlice(s string, start, length int) (string, bool) {
	n := utf8.RuneCountInString(s)
	if start < 0 {
		start += n
	}
	if start < 0 || start > n {
		return "", false
	}
	if length < 0 {
		length = 0
	}
	end := start + length
	if end > n {
		end = n
	}
	return s[byteOffsetOfRune(s, start):byteOffsetOfRune(s, end)], true
}

// normalizeIndex resolves a possibly-negative index against length n,
// returning ok=false when still out of range after adjustment.
func normalizeIndex(idx, n int) (int, bool) {
	if idx < 0 {
		idx += n
	}
	if idx < 0 || idx >= n {
		return 0, false
	}
	return idx, true
}

func inspectString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			if r < 0x20 {
				b.WriteString(`\x`)
				h := strconv.FormatInt(int64(r), 16)
				if len(h) < 2 {
					b.WriteByte('0')
				}
				b.WriteString(h)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}
