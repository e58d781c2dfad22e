package parser

// Mode names a state the component setters can re-enter the machine at.
// Only the modes a facade's IDL setter needs are exported; the full
// enumeration stays internal to state.go.
type Mode = mode

// The subset of modes meaningful as a stateOverride to ParseComponent,
// matching the WHATWG URL object's per-attribute setter algorithms (spec
// §6): each setter runs the basic URL parser against a clone of the
// existing record, starting in exactly one of these.
const (
	ModeSchemeStart Mode = modeSchemeStart
	ModeHost        Mode = modeHost
	ModeHostname    Mode = modeHostname
	ModePort        Mode = modePort
	ModePathStart   Mode = modePathStart
	ModeQuery       Mode = modeQuery
	ModeFragment    Mode = modeFragment
)

// ParseComponent re-invokes basicParse against a clone of url with stateOverride
// m, returning the updated record on success. url itself is never mutated;
// on failure the caller simply discards the returned error and keeps using
// the original url, so a bad setter value never leaves partial state (spec
// §6 "if parsing fails, leave the object's state unchanged").
func (p *Parser) ParseComponent(input string, url *URL, m Mode) (*URL, error) {
	clone := url.Clone()
	switch m {
	case modeQuery:
		q := ""
		clone.Query = &q
	case modeFragment:
		f := ""
		clone.Fragment = &f
	}
	return p.basicParse(input, nil, clone, m)
}
