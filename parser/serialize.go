package parser

import (
	"strconv"
	"strings"

	"github.com/kitten/whatwg-url-minimum/internal/ipaddr"
)

// SerializeHost renders h the way the URL serializer embeds a host (spec
// §4.5): IPv6 addresses are bracketed, everything else is emitted as-is.
func SerializeHost(h *Host) string {
	if h == nil {
		return ""
	}
	switch h.Kind {
	case HostIPv6:
		return "[" + ipaddr.SerializeIPv6(h.IPv6) + "]"
	case HostIPv4:
		return ipaddr.SerializeIPv4(h.IPv4)
	case HostDomain, HostOpaque, HostEmpty:
		return h.Domain
	default:
		return ""
	}
}

// Serialize renders u as a URL string (spec §4.5). excludeFragment controls
// whether a trailing fragment is included, matching the URL serializer's
// optional "exclude fragment" flag used by the origin algorithm and by
// fetch-style callers that need a fragment-free form.
func Serialize(u *URL, excludeFragment bool) string {
	var b strings.Builder
	b.WriteString(u.Scheme)
	b.WriteByte(':')

	if !u.Host.IsAbsent() {
		b.WriteString("//")
		if u.Username != "" || u.Password != "" {
			b.WriteString(u.Username)
			if u.Password != "" {
				b.WriteByte(':')
				b.WriteString(u.Password)
			}
			b.WriteByte('@')
		}
		b.WriteString(SerializeHost(u.Host))
		if u.Port != nil {
			b.WriteByte(':')
			b.WriteString(strconv.Itoa(int(*u.Port)))
		}
	} else if !u.OpaquePath && len(u.Path) > 1 && u.Path[0] == "" {
		// A non-special URL with no host and an ambiguous first empty path
		// segment disambiguates with a lone "/." (spec §4.5 note).
		b.WriteString("/.")
	}

	if u.OpaquePath {
		if len(u.Path) > 0 {
			b.WriteString(u.Path[0])
		}
	} else {
		for _, seg := range u.Path {
			b.WriteByte('/')
			b.WriteString(seg)
		}
	}

	if u.Query != nil {
		b.WriteByte('?')
		b.WriteString(*u.Query)
	}
	if !excludeFragment && u.Fragment != nil {
		b.WriteByte('#')
		b.WriteString(*u.Fragment)
	}
	return b.String()
}

// String is the default serialization, fragment included.
func (u *URL) String() string { return Serialize(u, false) }

// Origin renders the tuple origin "scheme://host[:port]" used by the URL
// object's origin getter (spec §6). Opaque origins (non-special schemes,
// file:, and absent hosts) serialize as the literal string "null". A
// blob: URL borrows the origin of the URL embedded in its path, falling
// back to "null" if that path does not itself parse.
func Origin(u *URL) string {
	if u.Scheme == "blob" {
		if len(u.Path) == 0 {
			return "null"
		}
		inner, err := Parse(u.Path[0])
		if err != nil {
			return "null"
		}
		return Origin(inner)
	}
	if !u.IsSpecial() || u.Scheme == "file" || u.Host.IsAbsent() {
		return "null"
	}
	var b strings.Builder
	b.WriteString(u.Scheme)
	b.WriteString("://")
	b.WriteString(SerializeHost(u.Host))
	if u.Port != nil {
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(int(*u.Port)))
	}
	return b.String()
}

// SerializePath renders just the path, including the leading "/" for each
// segment of a non-opaque path; used by the facade's pathname getter.
func SerializePath(u *URL) string {
	if u.OpaquePath {
		if len(u.Path) > 0 {
			return u.Path[0]
		}
		return ""
	}
	var b strings.Builder
	for _, seg := range u.Path {
		b.WriteByte('/')
		b.WriteString(seg)
	}
	return b.String()
}
