// Package whatwgurl is the public facade over the parser and searchparams
// packages: a URL type that keeps its attached URLSearchParams in lockstep
// with its query component, and setter methods that fail silently on a bad
// value the way the WHATWG URL object's IDL attributes do (spec §6/§7).
package whatwgurl

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/kitten/whatwg-url-minimum/internal/codec"
	"github.com/kitten/whatwg-url-minimum/parser"
	"github.com/kitten/whatwg-url-minimum/searchparams"
)

// URL wraps a parsed record together with its attached search params.
// Construct one with New or Parse; the zero value is not usable.
type URL struct {
	record *parser.URL
	params *searchparams.List
}

var _ searchparams.Owner = (*URL)(nil)

// New parses input with no base URL.
func New(input string) (*URL, error) {
	return newFrom(parser.Parse(input))
}

// NewWithBase parses input relative to base.
func NewWithBase(input, base string) (*URL, error) {
	rec, err := parser.ParseRef(base, input)
	return newFrom(rec, err)
}

func newFrom(rec *parser.URL, err error) (*URL, error) {
	if err != nil {
		return nil, errors.Wrap(err, "whatwgurl: parse")
	}
	u := &URL{record: rec}
	u.initSearchParams()
	return u, nil
}

// Parse is the static URL.parse() method: it returns nil instead of an
// error when input fails to parse.
func Parse(input, base string) *URL {
	var u *URL
	var err error
	if base == "" {
		u, err = New(input)
	} else {
		u, err = NewWithBase(input, base)
	}
	if err != nil {
		return nil
	}
	return u
}

// CanParse is the static URL.canParse() method.
func CanParse(input, base string) bool {
	return parser.CanParse(input, base)
}

// NewSearchParams builds a standalone, ownerless URLSearchParams list from
// one of the shapes the IDL constructor accepts (spec §4.7), tried in this
// priority order:
//
//   - a sequence of pairs: []searchparams.Pair or [][2]string
//   - a string-keyed map: map[string]string
//   - a string: a leading "?" is stripped, then parsed as a query
//
// Any other type, including nil, yields an empty list, matching the IDL
// constructor's own fallback of "otherwise, treat init as the empty
// string".
func NewSearchParams(init interface{}) *searchparams.List {
	switch v := init.(type) {
	case []searchparams.Pair:
		return searchparams.NewFromPairs(v)
	case [][2]string:
		pairs := make([]searchparams.Pair, len(v))
		for i, kv := range v {
			pairs[i] = searchparams.Pair{Name: kv[0], Value: kv[1]}
		}
		return searchparams.NewFromPairs(pairs)
	case map[string]string:
		return searchparams.NewFromMap(v)
	case string:
		return searchparams.NewFromQuery(searchparams.TrimQueryPrefix(v))
	default:
		return searchparams.NewFromQuery("")
	}
}

// initSearchParams (re)populates u.params from the current query. On
// first call (construction) it allocates the list; afterwards it
// repopulates the same *List in place via ResetFromQuery, so a caller
// holding a prior SearchParams() reference stays live instead of
// pointing at a discarded list.
func (u *URL) initSearchParams() {
	query := ""
	if u.record.Query != nil {
		query = *u.record.Query
	}
	if u.params == nil {
		u.params = searchparams.NewFromQuery(query)
		u.params.SetOwner(u)
		return
	}
	u.params.ResetFromQuery(query)
}

// UpdateSearchParams implements searchparams.Owner: it is called whenever
// the attached SearchParams list mutates, and writes the serialized form
// back into the URL's query component (spec §4.7 "update steps").
func (u *URL) UpdateSearchParams(query string) {
	if query == "" {
		u.record.Query = nil
		return
	}
	u.record.Query = &query
}

// SearchParams returns the URLSearchParams object attached to this URL.
// It is always the same instance for the lifetime of u.
func (u *URL) SearchParams() *searchparams.List { return u.params }

// Href returns the full serialization (spec §6 "href" getter).
func (u *URL) Href() string { return parser.Serialize(u.record, false) }

// String makes *URL satisfy fmt.Stringer with the same value as Href.
func (u *URL) String() string { return u.Href() }

// ToJSON mirrors the JS URL.prototype.toJSON, returning the same
// serialization as Href.
func (u *URL) ToJSON() string { return u.Href() }

// SetHref replaces the URL in place by reparsing href, then resynchronizes
// SearchParams to the new query. A failed parse leaves u unchanged (spec §6
// href setter: "If parsedURL is failure, then throw"; we report the error
// instead of throwing but never apply partial state).
func (u *URL) SetHref(href string) error {
	rec, err := parser.Parse(href)
	if err != nil {
		return errors.Wrap(err, "whatwgurl: set href")
	}
	u.record = rec
	u.initSearchParams()
	return nil
}

// Protocol returns the scheme followed by ":".
func (u *URL) Protocol() string { return u.record.Scheme + ":" }

// SetProtocol reparses the URL with a new scheme. Failure (e.g. switching
// between a special and non-special scheme, or between file: and a scheme
// with credentials/port) silently leaves the URL unchanged, per the IDL
// setter semantics for "protocol".
func (u *URL) SetProtocol(protocol string) {
	scheme := strings.ToLower(strings.TrimSuffix(protocol, ":"))
	p := parser.New()
	if rec, err := p.ParseComponent(scheme+":", u.record, parser.ModeSchemeStart); err == nil {
		u.record = rec
	}
}

// Username returns the username component.
func (u *URL) Username() string { return u.record.Username }

// SetUsername replaces the username component. A no-op when the URL cannot
// have credentials (spec §6 "username" setter).
func (u *URL) SetUsername(username string) {
	if !u.record.CanHaveUsernamePasswordPort() {
		return
	}
	u.record.Username = percentEncodeUserinfo(username)
}

// Password returns the password component.
func (u *URL) Password() string { return u.record.Password }

// SetPassword replaces the password component. A no-op when the URL cannot
// have credentials.
func (u *URL) SetPassword(password string) {
	if !u.record.CanHaveUsernamePasswordPort() {
		return
	}
	u.record.Password = percentEncodeUserinfo(password)
}

// Host returns "hostname[:port]", empty when the host is absent.
func (u *URL) Host() string {
	if u.record.Host.IsAbsent() {
		return ""
	}
	h := parser.SerializeHost(u.record.Host)
	if u.record.Port != nil {
		h += ":" + strconv.Itoa(int(*u.record.Port))
	}
	return h
}

// SetHost reparses the host (and optional port) component in Host mode. A
// failed reparse silently leaves u unchanged; opaque-path URLs never accept
// a host (spec §6 "host" setter).
func (u *URL) SetHost(host string) {
	if u.record.OpaquePath {
		return
	}
	p := parser.New()
	if rec, err := p.ParseComponent(host, u.record, parser.ModeHost); err == nil {
		u.record = rec
	}
}

// Hostname returns just the host, without any port.
func (u *URL) Hostname() string { return parser.SerializeHost(u.record.Host) }

// SetHostname reparses the hostname component without touching the port.
func (u *URL) SetHostname(hostname string) {
	if u.record.OpaquePath {
		return
	}
	p := parser.New()
	if rec, err := p.ParseComponent(hostname, u.record, parser.ModeHostname); err == nil {
		u.record = rec
	}
}

// Port returns the port as a decimal string, or "" when absent.
func (u *URL) Port() string {
	if u.record.Port == nil {
		return ""
	}
	return strconv.Itoa(int(*u.record.Port))
}

// SetPort reparses the port component. Passing "" clears the port.
func (u *URL) SetPort(port string) {
	if !u.record.CanHaveUsernamePasswordPort() {
		return
	}
	if port == "" {
		u.record.Port = nil
		return
	}
	p := parser.New()
	if rec, err := p.ParseComponent(port, u.record, parser.ModePort); err == nil {
		u.record = rec
	}
}

// Pathname returns the path, "/"-joined (or the opaque string, for
// opaque-path URLs).
func (u *URL) Pathname() string { return parser.SerializePath(u.record) }

// SetPathname reparses the path component. A no-op on opaque-path URLs.
func (u *URL) SetPathname(pathname string) {
	if u.record.OpaquePath {
		return
	}
	u.record.Path = nil
	p := parser.New()
	mode := parser.ModePathStart
	if rec, err := p.ParseComponent(pathname, u.record, mode); err == nil {
		u.record = rec
	}
}

// Search returns the query including its leading "?", or "" when absent.
func (u *URL) Search() string {
	if u.record.Query == nil || *u.record.Query == "" {
		return ""
	}
	return "?" + *u.record.Query
}

// SetSearch reparses the query component (a leading "?" is optional) and
// resynchronizes SearchParams to match.
func (u *URL) SetSearch(search string) {
	trimmed := strings.TrimPrefix(search, "?")
	if trimmed == "" {
		u.record.Query = nil
	} else {
		p := parser.New()
		if rec, err := p.ParseComponent(trimmed, u.record, parser.ModeQuery); err == nil {
			u.record = rec
		}
	}
	u.initSearchParams()
}

// Hash returns the fragment including its leading "#", or "" when absent.
func (u *URL) Hash() string {
	if u.record.Fragment == nil || *u.record.Fragment == "" {
		return ""
	}
	return "#" + *u.record.Fragment
}

// SetHash reparses the fragment component (a leading "#" is optional).
func (u *URL) SetHash(hash string) {
	trimmed := strings.TrimPrefix(hash, "#")
	if trimmed == "" {
		u.record.Fragment = nil
		return
	}
	p := parser.New()
	if rec, err := p.ParseComponent(trimmed, u.record, parser.ModeFragment); err == nil {
		u.record = rec
	}
}

// Origin returns the tuple origin, or "null" for opaque origins.
func (u *URL) Origin() string { return parser.Origin(u.record) }

func percentEncodeUserinfo(s string) string {
	return codec.PercentEncodeString(s, codec.UserinfoPercentEncodeSet, false)
}
