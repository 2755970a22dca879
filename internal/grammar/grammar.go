// Package grammar provides the character classes, token recognizers
// and percent-encoding primitives used to split and render URLs.
package grammar

import (
	"github.com/ghettovoice/abnf"

	"github.com/ghettovoice/navurl/internal/util"
)

func init() {
	abnf.EnableNodeCache(1024)
}

type Error string

func (e Error) Error() string { return string(e) }

func (Error) Grammar() bool { return true }

const (
	ErrInvalidScheme Error = "invalid scheme"
	ErrInvalidHost   Error = "invalid host"
	ErrInvalidPort   Error = "invalid port"
)

// IsAlphanum checks alphanum rule.
func IsAlphanum(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9'
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func isLower(c byte) bool { return 'a' <= c && c <= 'z' }

var componentUnreservedChars = map[byte]bool{
	'-': true,
	'_': true,
	'.': true,
	'!': true,
	'~': true,
	'*': true,
	'(': true,
	')': true,
}

// IsComponentUnreserved reports whether c is left as is by [Encode].
func IsComponentUnreserved(c byte) bool {
	return componentUnreservedChars[c] || IsAlphanum(c)
}

// SchemeLen returns the length of the scheme token s starts with,
// i.e. the index of the colon terminating a leading run of lower-case letters.
// It returns 0 when s does not start with such a token.
func SchemeLen[T util.Byteseq](s T) int {
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == ':':
			return i
		case !isLower(c):
			return 0
		}
	}
	return 0
}

// IsSchemeName checks scheme rule of RFC 3986 restricted to lower-case letters.
func IsSchemeName[T util.Byteseq](s T) bool { return matchAll(Scheme, s) }

// IsPort checks port rule of RFC 3986 without an empty port.
func IsPort[T util.Byteseq](s T) bool { return matchAll(Port, s) }

// IsDriveLetter reports whether s is a bare drive specification like "c:".
func IsDriveLetter[T util.Byteseq](s T) bool {
	return len(s) == 2 && (IsAlphanum(s[0]) || s[0] == '_') && s[1] == ':'
}

// IsDigits reports whether s is a non-empty run of decimal digits.
func IsDigits[T util.Byteseq](s T) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}
