package parser

import "github.com/kitten/whatwg-url-minimum/internal/ipaddr"

// HostKind distinguishes the six shapes a Host can take (spec §3).
type HostKind int

const (
	// HostNone means the host component is entirely absent (opaque-path
	// URLs, and non-special schemes with no authority).
	HostNone HostKind = iota
	// HostEmpty is the empty host string ("file:///" with no authority).
	HostEmpty
	// HostOpaque is a forbidden-host-code-point-checked, C0-percent-encoded
	// string, used by non-special schemes.
	HostOpaque
	// HostDomain is an ASCII, lowercase domain.
	HostDomain
	// HostIPv4 is a 32-bit address.
	HostIPv4
	// HostIPv6 is eight 16-bit pieces.
	HostIPv6
)

// Host is the tagged union described in spec §3: absent, empty, opaque,
// IPv4, domain, or IPv6.
type Host struct {
	Kind   HostKind
	Domain string // HostDomain or HostOpaque or HostEmpty
	IPv4   uint32
	IPv6   ipaddr.IPv6
}

// IsAbsent reports whether the URL has no host at all.
func (h *Host) IsAbsent() bool { return h == nil || h.Kind == HostNone }

// IsEmpty reports whether the host is present but the empty string.
func (h *Host) IsEmpty() bool { return h != nil && h.Kind == HostEmpty }

// URL is the canonical parsed form described in spec §3. Path holds the
// ordered segment sequence; when OpaquePath is true, Path has exactly one
// element holding the full opaque path string (invariant 3).
type URL struct {
	Scheme     string
	Username   string
	Password   string
	Host       *Host
	Port       *uint16
	Path       []string
	OpaquePath bool
	Query      *string
	Fragment   *string
}

// Clone returns a deep copy of u, used by the parser to checkpoint before a
// mutating re-parse so a failed parse never leaves partial state visible.
func (u *URL) Clone() *URL {
	if u == nil {
		return nil
	}
	out := *u
	if u.Host != nil {
		h := *u.Host
		out.Host = &h
	}
	if u.Port != nil {
		p := *u.Port
		out.Port = &p
	}
	if u.Path != nil {
		out.Path = append([]string(nil), u.Path...)
	}
	if u.Query != nil {
		q := *u.Query
		out.Query = &q
	}
	if u.Fragment != nil {
		f := *u.Fragment
		out.Fragment = &f
	}
	return &out
}

// specialSchemes maps the six special schemes to their default port, or -1
// for schemes (file:) with no default port.
var specialSchemes = map[string]int{
	"ftp":   21,
	"file":  -1,
	"http":  80,
	"https": 443,
	"ws":    80,
	"wss":   443,
}

// IsSpecialScheme reports whether scheme is one of the six distinguished
// special schemes (spec §3).
func IsSpecialScheme(scheme string) bool {
	_, ok := specialSchemes[scheme]
	return ok
}

func defaultPort(scheme string) (int, bool) {
	p, ok := specialSchemes[scheme]
	if !ok || p < 0 {
		return 0, false
	}
	return p, true
}

// IsSpecial reports whether u's scheme is a special scheme.
func (u *URL) IsSpecial() bool { return IsSpecialScheme(u.Scheme) }

// cleanDefaultPort clears u.Port if it equals the scheme's default port
// (invariant 2).
func (u *URL) cleanDefaultPort() {
	if u.Port == nil {
		return
	}
	if dp, ok := defaultPort(u.Scheme); ok && int(*u.Port) == dp {
		u.Port = nil
	}
}

// CanHaveUsernamePasswordPort reports whether the URL "can have userinfo":
// the host is present and non-empty and the scheme is not file.
func (u *URL) CanHaveUsernamePasswordPort() bool {
	return !u.Host.IsAbsent() && !u.Host.IsEmpty() && u.Scheme != "file"
}

// shortenPath pops the last path segment unless u is file: with exactly
// one normalized-drive-letter segment (spec §4.3 "Shorten-path").
func shortenPath(u *URL) {
	if len(u.Path) == 0 {
		return
	}
	if u.Scheme == "file" && len(u.Path) == 1 && isNormalizedWindowsDriveLetter(u.Path[0]) {
		return
	}
	u.Path = u.Path[:len(u.Path)-1]
}
