package codec

import (
	"strings"
	"unicode/utf8"
)

const upperHex = "0123456789ABCDEF"

// HexDigit maps '0'-'9', 'A'-'F', 'a'-'f' to 0-15, everything else to -1.
func HexDigit(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	default:
		return -1
	}
}

// PercentEncodeByte renders b as "%HH" using uppercase hex digits.
func PercentEncodeByte(b byte) string {
	return string([]byte{'%', upperHex[b>>4], upperHex[b&0x0F]})
}

// PercentDecode scans s and replaces "%XX" triples of valid hex digits with
// the decoded byte. Invalid triples (not followed by two hex digits) are
// passed through unchanged, byte for byte. The result is always <= len(s).
func PercentDecode(s []byte) []byte {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) {
			hi, lo := HexDigit(s[i+1]), HexDigit(s[i+2])
			if hi >= 0 && lo >= 0 {
				out = append(out, byte(hi<<4|lo))
				i += 2
				continue
			}
		}
		out = append(out, s[i])
	}
	return out
}

// PercentDecodeString is the string-convenience form of PercentDecode.
func PercentDecodeString(s string) string {
	return string(PercentDecode([]byte(s)))
}

// PercentEncodeRune UTF-8 encodes r and percent-encodes every resulting byte
// that set reports as in-set; bytes not in set pass through verbatim. Used
// by the state machine, which must decide encoding one code point at a time
// because the C0-control set never needs more than the raw byte either way.
func PercentEncodeRune(r rune, set *Set) string {
	var b strings.Builder
	buf := make([]byte, utf8.UTFMax)
	n := utf8.EncodeRune(buf, r)
	for i := 0; i < n; i++ {
		c := buf[i]
		if set.Contains(c) {
			b.WriteString(PercentEncodeByte(c))
		} else {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// PercentEncodeString UTF-8 encodes s and percent-encodes every byte that
// set reports as in-set, emitting every other byte verbatim. When
// spaceAsPlus is true, U+0020 is emitted as '+' instead of being
// percent-encoded or passed through — used by the form-urlencoded codec.
func PercentEncodeString(s string, set *Set, spaceAsPlus bool) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if spaceAsPlus && c == ' ' {
			b.WriteByte('+')
			continue
		}
		if set.Contains(c) {
			b.WriteString(PercentEncodeByte(c))
		} else {
			b.WriteByte(c)
		}
	}
	return b.String()
}
