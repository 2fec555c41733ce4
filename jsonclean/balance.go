package jsonclean

// balancer tracks brace and bracket depth with string/escape context. Depth
// only moves while outside a quoted string; a backslash inside a string
// consumes the next character unconditionally.
type balancer struct {
	braces   int
	brackets int
	inString bool
	escaped  bool
	negative bool
}

func (b *balancer) step(c byte) {
	if b.escaped {
		b.escaped = false
		return
	}
	if c == '\\' && b.inString {
		b.escaped = true
		return
	}
	if c == '"' {
		b.inString = !b.inString
		return
	}
	if b.inString {
		return
	}
	switch c {
	case '{':
		b.braces++
	case '}':
		b.braces--
	case '[':
		b.brackets++
	case ']':
		b.brackets--
	}
	if b.braces < 0 || b.brackets < 0 {
		b.negative = true
	}
}

// neutral reports whether both depth counters are at zero.
func (b *balancer) neutral() bool {
	return b.braces == 0 && b.brackets == 0
}

// CheckBalance reports whether text has balanced braces and brackets outside
// of quoted strings. It is false when either depth goes negative, either
// depth ends nonzero, or the input ends inside an open string.
func CheckBalance(text string) bool {
	if text == "" {
		return false
	}
	var b balancer
	for i := 0; i < len(text); i++ {
		b.step(text[i])
		if b.negative {
			return false
		}
	}
	return b.neutral() && !b.inString
}

// partner returns the closing character for an opener.
func partner(open byte) byte {
	if open == '{' {
		return '}'
	}
	return ']'
}

// scanSpan scans text from the opener at start and returns the inclusive end
// index of the outer container, or -1 with the final scan state when the
// input is exhausted first. Termination requires both depth counters to be
// neutral AND the terminating character to be the opener's partner: a span
// like "[{]}" balances to zero but closes the wrong pair, and is rejected
// here rather than left for the decoder.
func scanSpan(text string, start int) (int, balancer) {
	closer := partner(text[start])
	var b balancer
	for i := start; i < len(text); i++ {
		c := text[i]
		b.step(c)
		if i > start && !b.inString && b.neutral() {
			if c != closer {
				return -1, b
			}
			return i, b
		}
	}
	return -1, b
}
