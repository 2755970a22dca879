package grammar

import (
	"unicode/utf8"

	"github.com/ghettovoice/navurl/internal/util"
)

// Encode percent-encodes s as a generic URI component.
// Every byte except alphanumerics and "-_.!~*()" is replaced with "% HEXDIG HEXDIG".
// Unlike the classic component encoders the apostrophe is escaped too,
// so the result can be placed inside a quoted HTML attribute as is.
func Encode[T util.Byteseq](s T) T {
	var n int
	for i := 0; i < len(s); i++ {
		if !IsComponentUnreserved(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	b := make([]byte, 0, len(s)+2*n)
	for i := 0; i < len(s); i++ {
		if c := s[i]; IsComponentUnreserved(c) {
			b = append(b, c)
		} else {
			b = append(b, '%', upperhex[c>>4], upperhex[c&15])
		}
	}
	return T(b)
}

// Decode decodes s percent-encoded by [Encode] or a similar component encoder.
//
// Plus signs are turned into spaces first. Then runs of "% HEXDIG HEXDIG" triplets
// are decoded when they form a well-formed UTF-8 sequence: a single ASCII byte,
// a 2-byte sequence without overlong leads (C0, C1), a 3-byte sequence without overlong
// or surrogate forms (E0 followed by less than A0, ED followed by A0 and above)
// or a 4-byte sequence.
// Any other escape, as well as any malformed one, is passed through unchanged,
// so Decode never fails.
func Decode[T util.Byteseq](s T) T {
	if !needsDecode(s) {
		return s
	}

	var seq [utf8.UTFMax]byte
	b := make([]byte, 0, len(s))
	for i := 0; i < len(s); {
		switch c := s[i]; c {
		case '+':
			b = append(b, ' ')
			i++
		case '%':
			var n int
			for n < len(seq) {
				v, ok := unescapeAt(s, i+3*n)
				if !ok {
					break
				}
				seq[n] = v
				n++
			}
			if n > 0 {
				if r, size := utf8.DecodeRune(seq[:n]); r != utf8.RuneError || size > 1 {
					b = append(b, seq[:size]...)
					i += 3 * size
					continue
				}
			}
			b = append(b, c)
			i++
		default:
			b = append(b, c)
			i++
		}
	}
	return T(b)
}

func needsDecode[T util.Byteseq](s T) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == '%' || s[i] == '+' {
			return true
		}
	}
	return false
}

// unescapeAt returns the byte encoded by the triplet starting at s[i].
func unescapeAt[T util.Byteseq](s T, i int) (byte, bool) {
	if i+2 >= len(s) || s[i] != '%' || !ishex(s[i+1]) || !ishex(s[i+2]) {
		return 0, false
	}
	return unhex(s[i+1])<<4 | unhex(s[i+2]), true
}

const upperhex = "0123456789ABCDEF"

func ishex(c byte) bool {
	switch {
	case '0' <= c && c <= '9':
		return true
	case 'a' <= c && c <= 'f':
		return true
	case 'A' <= c && c <= 'F':
		return true
	}
	return false
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}
