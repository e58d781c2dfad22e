package codec

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeDomainASCII implements the deliberately IDNA-free domain
// normalization this parser performs: NFC-normalize, fold the three
// "ideographic full stop" look-alikes to U+002E, lowercase, then reject any
// result containing a C0 control/space byte or a literal '%'.
//
// Punycode and full IDNA processing are out of scope (spec Non-goal);
// domains with non-ASCII labels round-trip through this normalizer without
// ever being converted to/from "xn--" form.
func NormalizeDomainASCII(s string) (string, bool) {
	s = norm.NFC.String(s)
	s = strings.Map(func(r rune) rune {
		switch r {
		case '。', '．', '｡':
			return '.'
		}
		return r
	}, s)
	s = strings.ToLower(s)

	for i := 0; i < len(s); i++ {
		c := s[i]
		if c <= 0x20 || c == '%' {
			return "", false
		}
	}
	return s, true
}
