package whatwgurl

import "strings"

// CanonOption configures a CanonProfile (functional-options pattern, the
// same shape the rest of this stack uses for parser.Option).
type CanonOption interface{ apply(*CanonProfile) }

type funcCanonOption struct{ f func(*CanonProfile) }

func (o *funcCanonOption) apply(p *CanonProfile) { o.f(p) }

// QuerySort selects how SearchParams are reordered during Canonicalize.
type QuerySort int

const (
	// NoSort leaves query parameter order untouched.
	NoSort QuerySort = iota
	// SortKeys stably sorts by name, leaving repeated keys in their
	// original relative order.
	SortKeys
)

// CanonProfile is a reusable canonicalization configuration: a named bundle
// of the normalizations a crawler or dedup pipeline typically wants applied
// to every URL it stores (strip credentials, strip the port, drop the
// fragment, sort query parameters).
type CanonProfile struct {
	removeUserInfo bool
	removePort     bool
	removeFragment bool
	sortQuery      QuerySort
	defaultScheme  string
}

// NewCanonProfile builds a CanonProfile from the given options.
func NewCanonProfile(opts ...CanonOption) *CanonProfile {
	p := &CanonProfile{}
	for _, o := range opts {
		o.apply(p)
	}
	return p
}

// WithRemoveUserInfo strips username and password from every canonicalized URL.
func WithRemoveUserInfo() CanonOption {
	return &funcCanonOption{f: func(p *CanonProfile) { p.removeUserInfo = true }}
}

// WithRemovePort strips the port, even a non-default one.
func WithRemovePort() CanonOption {
	return &funcCanonOption{f: func(p *CanonProfile) { p.removePort = true }}
}

// WithRemoveFragment drops the fragment from the serialized form.
func WithRemoveFragment() CanonOption {
	return &funcCanonOption{f: func(p *CanonProfile) { p.removeFragment = true }}
}

// WithSortQuery reorders SearchParams by name before serializing.
func WithSortQuery(s QuerySort) CanonOption {
	return &funcCanonOption{f: func(p *CanonProfile) { p.sortQuery = s }}
}

// WithDefaultScheme supplies a scheme to prepend when input has none, so
// "example.com/x" canonicalizes instead of failing outright.
func WithDefaultScheme(scheme string) CanonOption {
	return &funcCanonOption{f: func(p *CanonProfile) { p.defaultScheme = scheme }}
}

// Canonicalize parses s and re-serializes it under the profile's
// normalizations. On a parse failure with no default scheme configured, it
// returns s unchanged.
func (p *CanonProfile) Canonicalize(s string) string {
	u, err := New(s)
	if err != nil && p.defaultScheme != "" {
		u, err = New(p.defaultScheme + "://" + s)
	}
	if err != nil {
		return s
	}

	if p.removePort {
		u.SetPort("")
	}
	if p.removeUserInfo {
		u.SetUsername("")
		u.SetPassword("")
	}
	if p.sortQuery == SortKeys {
		u.SearchParams().Sort()
	}

	if p.removeFragment {
		href := u.Href()
		if i := strings.IndexByte(href, '#'); i >= 0 {
			return href[:i]
		}
		return href
	}
	return u.Href()
}
