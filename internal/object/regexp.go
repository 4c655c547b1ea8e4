package object

import (
	"regexp"
	"strings"
	"sync"
)

// RegexObject is a compiled-on-first-use regular expression. Option flags
// are the Ruby-surface subset {i, m, x}: i = case-insensitive, m = dot
// matches newline (Ruby's multiline, not Go's ^$-per-line multiline), x =
// free-spacing/extended mode (whitespace and #-comments stripped before
// compilation).
type RegexObject struct {
	Base
	Source string
	Flags  string

	once    sync.Once
	re      *regexp.Regexp
	compErr error
}

// NewRegex constructs a RegexObject for source/flags without compiling it.
func NewRegex(source, flags string) *RegexObject {
	return &RegexObject{Source: source, Flags: flags}
}

// Compiled returns the lazily-compiled *regexp.Regexp, or a lex/invalid
// argument error if the pattern is malformed.
func (r *RegexObject) Compiled() (*regexp.Regexp, error) {
	r.once.Do(func() {
		pattern := r.Source
		if strings.Contains(r.Flags, "x") {
			pattern = stripExtendedWhitespace(pattern)
		}
		var inline string
		if strings.Contains(r.Flags, "i") {
			inline += "i"
		}
		if strings.Contains(r.Flags, "m") {
			inline += "s"
		}
		if inline != "" {
			pattern = "(?" + inline + ")" + pattern
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			r.compErr = NewInvalidArgument("invalid regular expression: %v", err)
			return
		}
		r.re = re
	})
	return r.re, r.compErr
}

// stripExtendedWhitespace implements a pragmatic /x mode: unescaped
// whitespace and #-to-end-of-line comments are removed unless inside a
// character class.
func stripExtendedWhitespace(pattern string) string {
	var b strings.Builder
	inClass := false
	escaped := false
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if escaped {
			b.WriteByte(c)
			escaped = false
			continue
		}
		switch c {
		case '\\':
			b.WriteByte(c)
			escaped = true
		case '[':
			inClass = true
			b.WriteByte(c)
		case ']':
			inClass = false
			b.WriteByte(c)
		case '#':
			if inClass {
				b.WriteByte(c)
				continue
			}
			for i < len(pattern) && pattern[i] != '\n' {
				i++
			}
		case ' ', '\t', '\n', '\r':
			if inClass {
				b.WriteByte(c)
			}
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func (r *RegexObject) Type() string     { return "Regexp" }
func (r *RegexObject) ToString() string { return "/" + r.Source + "/" + r.Flags }
func (r *RegexObject) Inspect() string  { return r.ToString() }
func (r *RegexObject) IsTrue() bool     { return true }

func (r *RegexObject) Eq(other Object) bool {
	o, ok := other.(*RegexObject)
	return ok && o.Source == r.Source && o.Flags == r.Flags
}

func (r *RegexObject) Cmp(other Object) (int, error) {
	return 0, NewUnorderableTypesError(r, other)
}

func (r *RegexObject) Hash() uint64 { return fnv1a(r.Source + "/" + r.Flags) }

var regexMethods = buildRegexMethods()

func buildRegexMethods() *MethodTable {
	t := NewMethodTable(nil)
	t.Define("source", func(self Object, args []Object) (Object, error) {
		return NewString(self.(*RegexObject).Source), nil
	})
	t.Define("options", func(self Object, args []Object) (Object, error) {
		return NewString(self.(*RegexObject).Flags), nil
	})
	t.Define("match", func(self Object, args []Object) (Object, error) {
		if len(args) != 1 {
			return nil, NewArgumentCountError("match", 1, len(args))
		}
		s, ok := asRawString(args[0])
		if !ok {
			return nil, NewArgumentTypeError("match expects a String, got %s", args[0].Type())
		}
		re, err := self.(*RegexObject).Compiled()
		if err != nil {
			return nil, err
		}
		loc := re.FindStringSubmatchIndex(s)
		if loc == nil {
			return Nil, nil
		}
		return matchDataFromIndices(s, loc), nil
	})
	t.Define("=~", func(self Object, args []Object) (Object, error) {
		if len(args) != 1 {
			return nil, NewArgumentCountError("=~", 1, len(args))
		}
		s, ok := asRawString(args[0])
		if !ok {
			return Nil, nil
		}
		re, err := self.(*RegexObject).Compiled()
		if err != nil {
			return nil, err
		}
		loc := re.FindStringIndex(s)
		if loc == nil {
			return Nil, nil
		}
		return NewNumber(float64(utf8RuneCountPrefix(s, loc[0]))), nil
	})
	return t
}

func (r *RegexObject) MethodTable() *MethodTable { return regexMethods }

// matchDataFromIndices builds a simple match-data Array: [whole, group1, …],
// with unmatched groups represented as nil. This is a pragmatic stand-in
// for a full MatchData object, sufficient for the capture-group access the
// spec's string methods need.
func matchDataFromIndices(s string, loc []int) *Array {
	n := len(loc) / 2
	out := make([]Object, 0, n)
	for i := 0; i < n; i++ {
		start, end := loc[2*i], loc[2*i+1]
		if start < 0 {
			out = append(out, Nil)
			continue
		}
		out = append(out, NewString(s[start:end]))
	}
	return NewArray(out)
}
