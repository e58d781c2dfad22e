package parser

import "github.com/kitten/whatwg-url-minimum/internal/codec"

// options configures a Parser. Defaults reproduce spec.md exactly; the
// hooks exist (grounded on nlnwa/whatwg-url's functional ParserOption
// pattern) so a caller can plug in stricter validation reporting without
// touching the state machine itself.
type options struct {
	reportValidationErrors bool

	pathSet      *codec.Set
	querySet     *codec.Set
	specQuerySet *codec.Set
	fragmentSet  *codec.Set
}

// Option configures a Parser created by New.
type Option interface {
	apply(*options)
}

type funcOption struct{ f func(*options) }

func (o *funcOption) apply(opts *options) { o.f(opts) }

func newFuncOption(f func(*options)) Option { return &funcOption{f: f} }

func defaultOptions() options {
	return options{
		pathSet:      codec.PathPercentEncodeSet,
		querySet:     codec.QueryPercentEncodeSet,
		specQuerySet: codec.SpecialQueryPercentEncodeSet,
		fragmentSet:  codec.FragmentPercentEncodeSet,
	}
}

// WithReportValidationErrors makes the Parser collect non-fatal validation
// errors in its ValidationErrors field instead of silently ignoring them. It
// never changes whether a parse succeeds or fails.
func WithReportValidationErrors() Option {
	return newFuncOption(func(o *options) { o.reportValidationErrors = true })
}

// Parser holds the configuration used by Parse, ParseRef and the
// mode-override entry point used by setters.
type Parser struct {
	opts options

	// ValidationErrors, when WithReportValidationErrors was applied,
	// accumulates non-fatal spec violations observed by every parse run on
	// this Parser; it is never cleared between parses.
	ValidationErrors []error
}

// New builds a Parser with the given options applied over the defaults.
func New(opts ...Option) *Parser {
	p := &Parser{opts: defaultOptions()}
	for _, o := range opts {
		o.apply(&p.opts)
	}
	return p
}

func (p *Parser) reportValidation(err error) {
	if p.opts.reportValidationErrors {
		p.ValidationErrors = append(p.ValidationErrors, err)
	}
}

var defaultParser = New()

// Parse parses rawURL with no base URL (spec §6 construct/parse).
func Parse(rawURL string) (*URL, error) {
	return defaultParser.Parse(rawURL)
}

// ParseRef parses ref relative to a base URL obtained by parsing rawURL.
func ParseRef(rawURL, ref string) (*URL, error) {
	return defaultParser.ParseRef(rawURL, ref)
}

// Parse parses rawURL with no base URL.
func (p *Parser) Parse(rawURL string) (*URL, error) {
	return p.basicParse(rawURL, nil, nil, noMode)
}

// ParseRef parses ref against a base obtained by parsing rawURL.
func (p *Parser) ParseRef(rawURL, ref string) (*URL, error) {
	base, err := p.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	return p.basicParse(ref, base, nil, noMode)
}

// ParseWithBase parses ref against an already-parsed base URL.
func (p *Parser) ParseWithBase(ref string, base *URL) (*URL, error) {
	return p.basicParse(ref, base, nil, noMode)
}

// CanParse reports whether input parses successfully, optionally against a
// base URL string.
func CanParse(input string, base string) bool {
	var baseURL *URL
	if base != "" {
		b, err := Parse(base)
		if err != nil {
			return false
		}
		baseURL = b
	}
	_, err := defaultParser.basicParse(input, baseURL, nil, noMode)
	return err == nil
}
