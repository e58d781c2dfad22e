package parser

import (
	"strings"

	"github.com/kitten/whatwg-url-minimum/internal/codec"
	"github.com/kitten/whatwg-url-minimum/internal/ipaddr"
)

// isForbiddenHostCodePoint reports whether r is one of NUL, TAB, LF, CR,
// space, # / : < > ? @ [ \ ] ^ | (GLOSSARY "Forbidden host code point").
func isForbiddenHostCodePoint(r rune) bool {
	switch r {
	case 0x00, 0x09, 0x0A, 0x0D, ' ', '#', '/', ':', '<', '>', '?', '@', '[', '\\', ']', '^', '|':
		return true
	default:
		return false
	}
}

func containsForbiddenHostCodePoint(s string) bool {
	for _, r := range s {
		if isForbiddenHostCodePoint(r) {
			return true
		}
	}
	return false
}

// parseHost dispatches between bracketed IPv6, opaque host, IPv4, and
// domain, per spec §4.4.
func (p *Parser) parseHost(s string, isOpaque bool) (*Host, error) {
	if strings.HasPrefix(s, "[") {
		if !strings.HasSuffix(s, "]") {
			return nil, errIllegalHost
		}
		addr, ok := ipaddr.ParseIPv6Address(s[1 : len(s)-1])
		if !ok {
			return nil, errInvalidIPv6
		}
		return &Host{Kind: HostIPv6, IPv6: addr}, nil
	}

	if isOpaque {
		if s == "" {
			return &Host{Kind: HostEmpty}, nil
		}
		for _, r := range s {
			if r != '%' && isForbiddenHostCodePoint(r) {
				return nil, errForbiddenHostPoint
			}
		}
		return &Host{Kind: HostOpaque, Domain: codec.PercentEncodeString(s, codec.C0ControlPercentEncodeSet, false)}, nil
	}

	decoded := codec.PercentDecodeString(s)

	if ipaddr.LooksLikeIPv4(decoded) {
		addr, ok := ipaddr.ParseIPv4Address(decoded)
		if !ok {
			return nil, errInvalidIPv4
		}
		return &Host{Kind: HostIPv4, IPv4: addr}, nil
	}

	if decoded == "" {
		return &Host{Kind: HostEmpty}, nil
	}

	for _, r := range decoded {
		if r != '%' && isForbiddenHostCodePoint(r) {
			return nil, errForbiddenHostPoint
		}
	}

	domain, ok := codec.NormalizeDomainASCII(decoded)
	if !ok {
		return nil, errInvalidDomain
	}
	return &Host{Kind: HostDomain, Domain: domain}, nil
}

// isWindowsDriveLetter reports whether s is exactly ASCII-alpha followed by
// ':' or '|' (GLOSSARY "Windows drive letter").
func isWindowsDriveLetter(s string) bool {
	if len(s) != 2 {
		return false
	}
	return isASCIIAlpha(rune(s[0])) && (s[1] == ':' || s[1] == '|')
}

func isNormalizedWindowsDriveLetter(s string) bool {
	return len(s) == 2 && isASCIIAlpha(rune(s[0])) && s[1] == ':'
}

// startsWithWindowsDriveLetter reports whether s begins with a Windows
// drive letter immediately followed by EOF or one of / \ ? #.
func startsWithWindowsDriveLetter(s string) bool {
	if len(s) < 2 || !isWindowsDriveLetter(s[:2]) {
		return false
	}
	if len(s) == 2 {
		return true
	}
	switch s[2] {
	case '/', '\\', '?', '#':
		return true
	default:
		return false
	}
}

func isASCIIAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isASCIIDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isASCIIAlphanumeric(r rune) bool {
	return isASCIIAlpha(r) || isASCIIDigit(r)
}
