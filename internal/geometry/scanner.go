package geometry

import (
	"strconv"
)

// scanner tokenizes path data. Numbers may be separated by whitespace,
// commas, or nothing at all when a sign or a second decimal point starts the
// next number ("1.5-2.3", "0.5.5").
type scanner struct {
	s string
	i int
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isCommand(c byte) bool {
	switch c {
	case 'M', 'm', 'L', 'l', 'H', 'h', 'V', 'v', 'C', 'c', 'S', 's', 'Q', 'q', 'T', 't', 'A', 'a', 'Z', 'z':
		return true
	}
	return false
}

func (sc *scanner) skipSeparators() {
	for sc.i < len(sc.s) && (isSpace(sc.s[sc.i]) || sc.s[sc.i] == ',') {
		sc.i++
	}
}

func (sc *scanner) done() bool {
	return sc.i >= len(sc.s)
}

func (sc *scanner) peek() byte {
	if sc.done() {
		return 0
	}
	return sc.s[sc.i]
}

// startsNumber reports whether the next byte can begin a number.
func (sc *scanner) startsNumber() bool {
	c := sc.peek()
	return isDigit(c) || c == '.' || c == '-' || c == '+'
}

// number reads one number at the cursor. It returns n == 0 when there is none.
func (sc *scanner) number() (v float64, n int) {
	s, start := sc.s, sc.i
	j := start
	if j < len(s) && (s[j] == '+' || s[j] == '-') {
		j++
	}
	mantissa := 0
	for j < len(s) && isDigit(s[j]) {
		j++
		mantissa++
	}
	if j < len(s) && s[j] == '.' {
		j++
		for j < len(s) && isDigit(s[j]) {
			j++
			mantissa++
		}
	}
	if mantissa == 0 {
		return 0, 0
	}
	if j < len(s) && (s[j] == 'e' || s[j] == 'E') {
		k := j + 1
		if k < len(s) && (s[k] == '+' || s[k] == '-') {
			k++
		}
		if k < len(s) && isDigit(s[k]) {
			for k < len(s) && isDigit(s[k]) {
				k++
			}
			j = k
		}
	}
	v, err := strconv.ParseFloat(s[start:j], 64)
	if err != nil {
		return 0, 0
	}
	sc.i = j
	return v, j - start
}

// flag reads a single arc flag digit, which needs no separator after it.
func (sc *scanner) flag() (bool, bool) {
	switch sc.peek() {
	case '0':
		sc.i++
		return false, true
	case '1':
		sc.i++
		return true, true
	}
	return false, false
}
