package object

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// stringElRef implements `s[...]` for any StringValue: a single index, an
// (index, length) pair, or a Range, all operating on runes (characters),
// not bytes.
func stringElRef(sv StringValue, args []Object) (Object, error) {
	s := sv.RawString()
	switch len(args) {
	case 1:
		if rng, ok := args[0].(*RangeObject); ok {
			start, err := rng.Start.AsExactInt()
			if err != nil {
				return nil, err
			}
			end, err := rng.End.AsExactInt()
			if err != nil {
				return nil, err
			}
			n := utf8.RuneCountInString(s)
			st, ok := normalizeIndex(int(start), n+1)
			if !ok {
				if int(start) == n {
					st = n
				} else {
					return Nil, nil
				}
			}
			length := int(end) - int(start)
			if rng.Exclusive {
				length--
			}
			length++
			out, ok := runeSlice(s, st, length)
			if !ok {
				return Nil, nil
			}
			return sv.WithString(out), nil
		}
		i, err := argInt(args[0])
		if err != nil {
			return nil, err
		}
		out, ok := runeSlice(s, i, 1)
		if !ok || out == "" {
			return Nil, nil
		}
		return sv.WithString(out), nil
	case 2:
		start, err := argInt(args[0])
		if err != nil {
			return nil, err
		}
		length, err := argInt(args[1])
		if err != nil {
			return nil, err
		}
		out, ok := runeSlice(s, start, length)
		if !ok {
			return Nil, nil
		}
		return sv.WithString(out), nil
	default:
		return nil, NewArgumentCountRangeError("[]", 1, 2, len(args))
	}
}

var stringMethods = buildStringMethods()

func buildStringMethods() *MethodTable {
	t := NewMethodTable(nil)
	raw := func(o Object) string { return o.(StringValue).RawString() }
	wrap := func(self0 Object, s string) Object { return self0.(StringValue).WithString(s) }

	t.Define("ascii_only?", func(self0 Object, args []Object) (Object, error) {
		for _, b := range []byte(raw(self0)) {
			if b >= 0x80 {
				return Bool(false), nil
			}
		}
		return Bool(true), nil
	})

	t.Define("bytes", func(self0 Object, args []Object) (Object, error) {
		s := raw(self0)
		out := make([]Object, len(s))
		for i := 0; i < len(s); i++ {
			out[i] = NewNumber(float64(s[i]))
		}
		return NewArray(out), nil
	})

	t.Define("each_byte", func(self0 Object, args []Object) (Object, error) {
		if len(args) != 1 {
			return nil, argErr("each_byte", args, 1)
		}
		p, err := asProc("each_byte", args[0])
		if err != nil {
			return nil, err
		}
		for i := 0; i < len(raw(self0)); i++ {
			if _, err := p.Call([]Object{NewNumber(float64(raw(self0)[i]))}); err != nil {
				return nil, err
			}
		}
		return self0, nil
	})

	t.Define("byteslice", func(self0 Object, args []Object) (Object, error) {
		s := raw(self0)
		if len(args) < 1 || len(args) > 2 {
			return nil, NewArgumentCountRangeError("byteslice", 1, 2, len(args))
		}
		start, err := argInt(args[0])
		if err != nil {
			return nil, err
		}
		length := 1
		if len(args) == 2 {
			length, err = argInt(args[1])
			if err != nil {
				return nil, err
			}
		}
		n := len(s)
		if start < 0 {
			start += n
		}
		if start < 0 || start > n || length < 0 {
			return Nil, nil
		}
		end := start + length
		if end > n {
			end = n
		}
		return wrap(self0, s[start:end]), nil
	})

	t.Define("chars", func(self0 Object, args []Object) (Object, error) {
		s := raw(self0)
		var out []Object
		for _, r := range s {
			out = append(out, wrap(self0, string(r)))
		}
		return NewArray(out), nil
	})

	t.Define("each_char", func(self0 Object, args []Object) (Object, error) {
		if len(args) != 1 {
			return nil, argErr("each_char", args, 1)
		}
		p, err := asProc("each_char", args[0])
		if err != nil {
			return nil, err
		}
		for _, r := range raw(self0) {
			if _, err := p.Call([]Object{wrap(self0, string(r))}); err != nil {
				return nil, err
			}
		}
		return self0, nil
	})

	t.Define("chop", func(self0 Object, args []Object) (Object, error) {
		s := raw(self0)
		if s == "" {
			return wrap(self0, ""), nil
		}
		if strings.HasSuffix(s, "\r\n") {
			return wrap(self0, s[:len(s)-2]), nil
		}
		_, size := utf8.DecodeLastRuneInString(s)
		return wrap(self0, s[:len(s)-size]), nil
	})

	t.Define("chr", func(self0 Object, args []Object) (Object, error) {
		s := raw(self0)
		if s == "" {
			return wrap(self0, ""), nil
		}
		r, size := utf8.DecodeRuneInString(s)
		_ = r
		return wrap(self0, s[:size]), nil
	})

	t.Define("codepoints", func(self0 Object, args []Object) (Object, error) {
		var out []Object
		for _, r := range raw(self0) {
			out = append(out, NewNumber(float64(r)))
		}
		return NewArray(out), nil
	})

	t.Define("each_codepoint", func(self0 Object, args []Object) (Object, error) {
		if len(args) != 1 {
			return nil, argErr("each_codepoint", args, 1)
		}
		p, err := asProc("each_codepoint", args[0])
		if err != nil {
			return nil, err
		}
		for _, r := range raw(self0) {
			if _, err := p.Call([]Object{NewNumber(float64(r))}); err != nil {
				return nil, err
			}
		}
		return self0, nil
	})

	t.Define("getbyte", func(self0 Object, args []Object) (Object, error) {
		if len(args) != 1 {
			return nil, argErr("getbyte", args, 1)
		}
		i, err := argInt(args[0])
		if err != nil {
			return nil, err
		}
		s := raw(self0)
		idx, ok := normalizeIndex(i, len(s))
		if !ok {
			return Nil, nil
		}
		return NewNumber(float64(s[idx])), nil
	})

	t.Define("scrub", func(self0 Object, args []Object) (Object, error) {
		repl := "�"
		if len(args) == 1 {
			r, ok := asRawString(args[0])
			if !ok {
				return nil, NewArgumentTypeError("scrub replacement must be a String, got %s", args[0].Type())
			}
			repl = r
		}
		s := raw(self0)
		var b strings.Builder
		for i := 0; i < len(s); {
			r, size := utf8.DecodeRuneInString(s[i:])
			if r == utf8.RuneError && size == 1 {
				b.WriteString(repl)
			} else {
				b.WriteString(s[i : i+size])
			}
			i += size
		}
		return wrap(self0, b.String()), nil
	})

	t.Define("inspect", func(self0 Object, args []Object) (Object, error) {
		return NewString(self0.Inspect()), nil
	})

	t.Define("==", func(self0 Object, args []Object) (Object, error) {
		if len(args) != 1 {
			return nil, argErr("==", args, 1)
		}
		return Bool(self0.Eq(args[0])), nil
	})

	t.Define("casecmp", func(self0 Object, args []Object) (Object, error) {
		if len(args) != 1 {
			return nil, argErr("casecmp", args, 1)
		}
		other, ok := asRawString(args[0])
		if !ok {
			return Nil, nil
		}
		a := strings.ToLower(raw(self0))
		b := strings.ToLower(other)
		return NewNumber(float64(compareStrings(a, b))), nil
	})

	t.Define("start_with?", func(self0 Object, args []Object) (Object, error) {
		s := raw(self0)
		for _, a := range args {
			prefix, ok := asRawString(a)
			if ok && strings.HasPrefix(s, prefix) {
				return Bool(true), nil
			}
		}
		return Bool(false), nil
	})

	t.Define("end_with?", func(self0 Object, args []Object) (Object, error) {
		s := raw(self0)
		for _, a := range args {
			suffix, ok := asRawString(a)
			if ok && strings.HasSuffix(s, suffix) {
				return Bool(true), nil
			}
		}
		return Bool(false), nil
	})

	t.Define("include?", func(self0 Object, args []Object) (Object, error) {
		if len(args) != 1 {
			return nil, argErr("include?", args, 1)
		}
		sub, ok := asRawString(args[0])
		if !ok {
			return nil, NewArgumentTypeError("include? expects a String, got %s", args[0].Type())
		}
		return Bool(strings.Contains(raw(self0), sub)), nil
	})

	t.Define("capitalize", func(self0 Object, args []Object) (Object, error) {
		s := raw(self0)
		if s == "" {
			return wrap(self0, ""), nil
		}
		r, size := utf8.DecodeRuneInString(s)
		return wrap(self0, string(unicode.ToUpper(r))+strings.ToLower(s[size:])), nil
	})

	t.Define("downcase", func(self0 Object, args []Object) (Object, error) {
		return wrap(self0, strings.ToLower(raw(self0))), nil
	})

	t.Define("upcase", func(self0 Object, args []Object) (Object, error) {
		return wrap(self0, strings.ToUpper(raw(self0))), nil
	})

	t.Define("hex", func(self0 Object, args []Object) (Object, error) {
		s := strings.TrimSpace(raw(self0))
		neg := false
		if strings.HasPrefix(s, "-") {
			neg = true
			s = s[1:]
		} else if strings.HasPrefix(s, "+") {
			s = s[1:]
		}
		s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
		var v int64
		for _, r := range s {
			d := hexDigit(r)
			if d < 0 {
				break
			}
			v = v*16 + int64(d)
		}
		if neg {
			v = -v
		}
		return NewNumber(float64(v)), nil
	})

	t.DefineAliases(func(self0 Object, args []Object) (Object, error) {
		return NewNumber(float64(utf8.RuneCountInString(raw(self0)))), nil
	}, "size", "length")

	t.Define("bytesize", func(self0 Object, args []Object) (Object, error) {
		return NewNumber(float64(len(raw(self0)))), nil
	})

	t.Define("empty?", func(self0 Object, args []Object) (Object, error) {
		return Bool(raw(self0) == ""), nil
	})

	t.DefineAliases(func(self0 Object, args []Object) (Object, error) {
		return stringElRef(self0.(StringValue), args)
	}, "slice", "[]")

	t.Define("center", func(self0 Object, args []Object) (Object, error) {
		return justify(self0, args, "center")
	})
	t.Define("ljust", func(self0 Object, args []Object) (Object, error) {
		return justify(self0, args, "left")
	})
	t.Define("rjust", func(self0 Object, args []Object) (Object, error) {
		return justify(self0, args, "right")
	})

	t.Define("chomp", func(self0 Object, args []Object) (Object, error) {
		if len(args) > 1 {
			return nil, NewArgumentCountRangeError("chomp", 0, 1, len(args))
		}
		s := raw(self0)
		if len(args) == 1 {
			sep, ok := asRawString(args[0])
			if !ok {
				return nil, NewArgumentTypeError("chomp expects a String, got %s", args[0].Type())
			}
			if sep == "" {
				for {
					if strings.HasSuffix(s, "\r\n") {
						s = s[:len(s)-2]
						continue
					}
					if strings.HasSuffix(s, "\n") || strings.HasSuffix(s, "\r") {
						s = s[:len(s)-1]
						continue
					}
					break
				}
				return wrap(self0, s), nil
			}
			return wrap(self0, strings.TrimSuffix(s, sep)), nil
		}
		if strings.HasSuffix(s, "\r\n") {
			return wrap(self0, s[:len(s)-2]), nil
		}
		if strings.HasSuffix(s, "\n") || strings.HasSuffix(s, "\r") {
			return wrap(self0, s[:len(s)-1]), nil
		}
		return wrap(self0, s), nil
	})

	t.Define("strip", func(self0 Object, args []Object) (Object, error) {
		return wrap(self0, strings.TrimSpace(raw(self0))), nil
	})
	t.Define("lstrip", func(self0 Object, args []Object) (Object, error) {
		return wrap(self0, strings.TrimLeft(raw(self0), " \t\n\r\v\f\x00")), nil
	})
	t.Define("rstrip", func(self0 Object, args []Object) (Object, error) {
		return wrap(self0, strings.TrimRight(raw(self0), " \t\n\r\v\f\x00")), nil
	})

	t.Define("ord", func(self0 Object, args []Object) (Object, error) {
		s := raw(self0)
		if s == "" {
			return nil, NewInvalidArgument("ord called on an empty string")
		}
		r, _ := utf8.DecodeRuneInString(s)
		return NewNumber(float64(r)), nil
	})

	t.Define("reverse", func(self0 Object, args []Object) (Object, error) {
		s := []rune(raw(self0))
		for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
			s[i], s[j] = s[j], s[i]
		}
		return wrap(self0, string(s)), nil
	})

	t.DefineAliases(func(self0 Object, args []Object) (Object, error) {
		sep := "\n"
		if len(args) == 1 {
			s, ok := asRawString(args[0])
			if !ok {
				return nil, NewArgumentTypeError("lines separator must be a String, got %s", args[0].Type())
			}
			sep = s
		}
		return NewArray(splitLines(self0, raw(self0), sep)), nil
	}, "lines")

	t.Define("each_line", func(self0 Object, args []Object) (Object, error) {
		lines := splitLines(self0, raw(self0), "\n")
		p, hasBlock, err := optionalProc("each_line", args)
		if err != nil {
			return nil, err
		}
		if !hasBlock {
			// No block: return the lines as an array so a caller can chain
			// `.each_line.each { |x| ... }` the way a lazy enumerator would.
			return NewArray(lines), nil
		}
		for _, line := range lines {
			if _, err := p.Call([]Object{line}); err != nil {
				return nil, err
			}
		}
		return self0, nil
	})

	t.Define("index", func(self0 Object, args []Object) (Object, error) {
		return findIndex(self0, args, false)
	})
	t.Define("rindex", func(self0 Object, args []Object) (Object, error) {
		return findIndex(self0, args, true)
	})

	t.Define("match", func(self0 Object, args []Object) (Object, error) {
		if len(args) < 1 {
			return nil, argErr("match", args, 1)
		}
		re, err := asRegex(args[0])
		if err != nil {
			return nil, err
		}
		compiled, err := re.Compiled()
		if err != nil {
			return nil, err
		}
		s := raw(self0)
		start := 0
		if len(args) == 2 {
			i, err := argInt(args[1])
			if err != nil {
				return nil, err
			}
			start = byteOffsetOfRune(s, i)
		}
		if start > len(s) {
			return Nil, nil
		}
		loc := compiled.FindStringSubmatchIndex(s[start:])
		if loc == nil {
			return Nil, nil
		}
		for i := range loc {
			if loc[i] >= 0 {
				loc[i] += start
			}
		}
		return matchDataFromIndices(s, loc), nil
	})

	t.Define("partition", func(self0 Object, args []Object) (Object, error) {
		return partition(self0, args, false)
	})
	t.Define("rpartition", func(self0 Object, args []Object) (Object, error) {
		return partition(self0, args, true)
	})

	t.Define("split", func(self0 Object, args []Object) (Object, error) {
		return stringSplit(self0, args)
	})

	t.Define("sub", func(self0 Object, args []Object) (Object, error) {
		return substitute(self0, args, false)
	})
	t.Define("gsub", func(self0 Object, args []Object) (Object, error) {
		return substitute(self0, args, true)
	})

	return t
}

func hexDigit(r rune) int {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0')
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10
	case r >= 'A' && r <= 'F':
		return int(r-'A') + 10
	default:
		return -1
	}
}

func justify(self0 Object, args []Object, mode string) (Object, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, NewArgumentCountRangeError(mode, 1, 2, len(args))
	}
	width, err := argInt(args[0])
	if err != nil {
		return nil, err
	}
	pad := " "
	if len(args) == 2 {
		p, ok := asRawString(args[1])
		if !ok || p == "" {
			return nil, NewArgumentTypeError("%s padding must be a non-empty String", mode)
		}
		pad = p
	}
	s := self0.(StringValue).RawString()
	n := utf8.RuneCountInString(s)
	if n >= width {
		return self0, nil
	}
	total := width - n
	padTo := func(count int) string {
		var b strings.Builder
		padRunes := []rune(pad)
		for i := 0; i < count; i++ {
			b.WriteRune(padRunes[i%len(padRunes)])
		}
		return b.String()
	}
	switch mode {
	case "left":
		return self0.(StringValue).WithString(s + padTo(total)), nil
	case "right":
		return self0.(StringValue).WithString(padTo(total) + s), nil
	default: // center
		left := total / 2
		right := total - left
		return self0.(StringValue).WithString(padTo(left) + s + padTo(right)), nil
	}
}

func splitLines(self0 Object, s, sep string) []Object {
	if s == "" {
		return nil
	}
	var out []Object
	for {
		i := strings.Index(s, sep)
		if i < 0 {
			out = append(out, self0.(StringValue).WithString(s))
			break
		}
		out = append(out, self0.(StringValue).WithString(s[:i+len(sep)]))
		s = s[i+len(sep):]
		if s == "" {
			break
		}
	}
	return out
}

func asRegex(o Object) (*RegexObject, error) {
	switch v := o.(type) {
	case *RegexObject:
		return v, nil
	case StringValue:
		return NewRegex(escapeRegexLiteral(v.RawString()), ""), nil
	default:
		return nil, NewArgumentTypeError("expected a String or Regexp, got %s", o.Type())
	}
}

func escapeRegexLiteral(s string) string {
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(`\.+*?()|[]{}^$`, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func findIndex(self0 Object, args []Object, reverse bool) (Object, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, NewArgumentCountRangeError("index", 1, 2, len(args))
	}
	s := self0.(StringValue).RawString()
	n := utf8.RuneCountInString(s)
	start := 0
	if reverse {
		start = n
	}
	if len(args) == 2 {
		i, err := argInt(args[1])
		if err != nil {
			return nil, err
		}
		if i < 0 {
			i += n
		}
		start = i
	}
	if re, ok := args[0].(*RegexObject); ok {
		compiled, err := re.Compiled()
		if err != nil {
			return nil, err
		}
		if reverse {
			best := -1
			for i := 0; i <= start && i <= n; i++ {
				loc := compiled.FindStringIndex(s[byteOffsetOfRune(s, i):])
				if loc != nil && loc[0] == 0 {
					best = i
				}
			}
			if best < 0 {
				return Nil, nil
			}
			return NewNumber(float64(best)), nil
		}
		if start < 0 || start > n {
			return Nil, nil
		}
		loc := compiled.FindStringIndex(s[byteOffsetOfRune(s, start):])
		if loc == nil {
			return Nil, nil
		}
		return NewNumber(float64(start + utf8RuneCountPrefix(s[byteOffsetOfRune(s, start):], loc[0]))), nil
	}
	sub, ok := asRawString(args[0])
	if !ok {
		return nil, NewArgumentTypeError("index expects a String or Regexp, got %s", args[0].Type())
	}
	if sub == "" {
		if reverse {
			if start > n {
				start = n
			}
			return NewNumber(float64(start)), nil
		}
		return NewNumber(float64(start)), nil
	}
	if reverse {
		if start > n {
			start = n
		}
		limit := byteOffsetOfRune(s, start) + len(sub)
		if limit > len(s) {
			limit = len(s)
		}
		idx := strings.LastIndex(s[:limit], sub)
		if idx < 0 {
			return Nil, nil
		}
		return NewNumber(float64(utf8RuneCountPrefix(s, idx))), nil
	}
	if start < 0 || start > n {
		return Nil, nil
	}
	off := byteOffsetOfRune(s, start)
	idx := strings.Index(s[off:], sub)
	if idx < 0 {
		return Nil, nil
	}
	return NewNumber(float64(start + utf8RuneCountPrefix(s[off:], idx))), nil
}

func partition(self0 Object, args []Object, fromEnd bool) (Object, error) {
	if len(args) != 1 {
		return nil, argErr("partition", args, 1)
	}
	s := self0.(StringValue).RawString()
	empty := self0.(StringValue).WithString("")

	var before, match, after string
	found := false

	if re, ok := args[0].(*RegexObject); ok {
		compiled, err := re.Compiled()
		if err != nil {
			return nil, err
		}
		if fromEnd {
			locs := compiled.FindAllStringIndex(s, -1)
			if len(locs) > 0 {
				loc := locs[len(locs)-1]
				before, match, after = s[:loc[0]], s[loc[0]:loc[1]], s[loc[1]:]
				found = true
			}
		} else {
			loc := compiled.FindStringIndex(s)
			if loc != nil {
				before, match, after = s[:loc[0]], s[loc[0]:loc[1]], s[loc[1]:]
				found = true
			}
		}
	} else {
		sep, ok := asRawString(args[0])
		if !ok {
			return nil, NewArgumentTypeError("partition expects a String or Regexp, got %s", args[0].Type())
		}
		var idx int
		if fromEnd {
			idx = strings.LastIndex(s, sep)
		} else {
			idx = strings.Index(s, sep)
		}
		if idx >= 0 {
			before, match, after = s[:idx], sep, s[idx+len(sep):]
			found = true
		}
	}

	if !found {
		if fromEnd {
			return NewArray([]Object{empty, empty, self0.(StringValue).WithString(s)}), nil
		}
		return NewArray([]Object{self0.(StringValue).WithString(s), empty, empty}), nil
	}
	wrap := self0.(StringValue).WithString
	return NewArray([]Object{wrap(before), wrap(match), wrap(after)}), nil
}

func stringSplit(self0 Object, args []Object) (Object, error) {
	s := self0.(StringValue).RawString()
	wrap := self0.(StringValue).WithString
	limit := 0
	if len(args) == 2 {
		n, err := argInt(args[1])
		if err != nil {
			return nil, err
		}
		limit = n
	}
	if len(args) == 0 {
		return NewArray(splitWhitespace(s, wrap)), nil
	}
	switch pat := args[0].(type) {
	case *RegexObject:
		compiled, err := pat.Compiled()
		if err != nil {
			return nil, err
		}
		return NewArray(regexSplit(s, compiled, limit, wrap)), nil
	default:
		sep, ok := asRawString(args[0])
		if !ok {
			return nil, NewArgumentTypeError("split expects a String or Regexp, got %s", args[0].Type())
		}
		if sep == " " {
			return NewArray(splitWhitespace(s, wrap)), nil
		}
		if sep == "" {
			var out []Object
			for _, r := range s {
				out = append(out, wrap(string(r)))
			}
			return NewArray(out), nil
		}
		n := -1
		if limit > 0 {
			n = limit
		}
		parts := strings.SplitN(s, sep, n)
		return NewArray(trimTrailingEmpty(parts, limit, wrap)), nil
	}
}

func splitWhitespace(s string, wrap func(string) Object) []Object {
	var out []Object
	for _, f := range strings.Fields(s) {
		out = append(out, wrap(f))
	}
	return out
}

// regexSplit splits s on every match of re, splicing each capture group's
// matched text into the result between the unmatched segments. Go's
// regexp.Split discards captured text entirely, so this walks
// FindAllStringSubmatchIndex by hand. limit follows split's convention: 0
// trims trailing empty fields, a positive n performs at most n-1 splits
// (at most n fields, plus any captured groups), and a negative n keeps
// every field untrimmed.
func regexSplit(s string, re *regexp.Regexp, limit int, wrap func(string) Object) []Object {
	maxSplits := -1
	if limit > 0 {
		maxSplits = limit - 1
	}

	var parts []string
	lastEnd := 0
	splits := 0
	for _, m := range re.FindAllStringSubmatchIndex(s, -1) {
		if maxSplits >= 0 && splits >= maxSplits {
			break
		}
		start, end := m[0], m[1]
		if start == end && start == lastEnd {
			continue
		}
		parts = append(parts, s[lastEnd:start])
		for g := 1; g*2 < len(m); g++ {
			gs, ge := m[g*2], m[g*2+1]
			if gs < 0 {
				parts = append(parts, "")
			} else {
				parts = append(parts, s[gs:ge])
			}
		}
		lastEnd = end
		splits++
	}
	parts = append(parts, s[lastEnd:])

	return trimTrailingEmpty(parts, limit, wrap)
}

func trimTrailingEmpty(parts []string, limit int, wrap func(string) Object) []Object {
	if limit == 0 {
		for len(parts) > 0 && parts[len(parts)-1] == "" {
			parts = parts[:len(parts)-1]
		}
	}
	out := make([]Object, len(parts))
	for i, p := range parts {
		out[i] = wrap(p)
	}
	return out
}

func substitute(self0 Object, args []Object, global bool) (Object, error) {
	if len(args) != 2 {
		return nil, argErr("sub/gsub", args, 2)
	}
	s := self0.(StringValue).RawString()
	wrap := self0.(StringValue).WithString
	re, err := asRegex(args[0])
	if err != nil {
		return nil, err
	}
	compiled, err := re.Compiled()
	if err != nil {
		return nil, err
	}

	replFn := func(match []string) (string, error) {
		switch r := args[1].(type) {
		case *Proc:
			v, err := r.Call([]Object{NewString(match[0])})
			if err != nil {
				return "", err
			}
			return v.ToString(), nil
		case *Hash:
			v, ok := r.Get(NewString(match[0]))
			if !ok {
				return "", nil
			}
			return v.ToString(), nil
		default:
			rep, ok := asRawString(args[1])
			if !ok {
				return "", NewArgumentTypeError("sub/gsub replacement must be a String, Hash, or Proc, got %s", args[1].Type())
			}
			return expandBackrefs(rep, match), nil
		}
	}

	count := 1
	if global {
		count = -1
	}
	var outErr error
	n := 0
	result := compiled.ReplaceAllStringFunc(s, func(whole string) string {
		if outErr != nil {
			return whole
		}
		if count >= 0 && n >= count {
			return whole
		}
		n++
		loc := compiled.FindStringSubmatchIndex(whole)
		groups := make([]string, len(loc)/2)
		for i := range groups {
			st, en := loc[2*i], loc[2*i+1]
			if st < 0 {
				continue
			}
			groups[i] = whole[st:en]
		}
		rep, err := replFn(groups)
		if err != nil {
			outErr = err
			return whole
		}
		return rep
	})
	if outErr != nil {
		return nil, outErr
	}
	return wrap(result), nil
}

func expandBackrefs(repl string, groups []string) string {
	var b strings.Builder
	for i := 0; i < len(repl); i++ {
		if repl[i] == '\\' && i+1 < len(repl) && repl[i+1] >= '0' && repl[i+1] <= '9' {
			idx := int(repl[i+1] - '0')
			if idx < len(groups) {
				b.WriteString(groups[idx])
			}
			i++
			continue
		}
		b.WriteByte(repl[i])
	}
	return b.String()
}
