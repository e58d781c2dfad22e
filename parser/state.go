package parser

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/kitten/whatwg-url-minimum/internal/codec"
)

// mode names every state the basicParse loop can be in (spec §4.3). The
// numbering matches the order the spec lists them in; noMode is the
// zero value used when a caller does not want a mode override.
type mode int

const (
	noMode mode = iota
	modeSchemeStart
	modeScheme
	modeNoScheme
	modeSpecialRelativeOrAuthority
	modePathOrAuthority
	modeRelative
	modeRelativeSlash
	modeSpecialAuthoritySlashes
	modeSpecialAuthorityIgnoreSlashes
	modeAuthority
	modeHost
	modeHostname
	modePort
	modeFile
	modeFileSlash
	modeFileHost
	modePathStart
	modePath
	modeOpaquePath
	modeQuery
	modeFragment
)

// basicParse is the state machine at the heart of the parser (spec §4.3).
// url, when non-nil, is mutated in place by a setter re-invoking a single
// mode (stateOverride != noMode); otherwise a fresh URL is allocated.
func (p *Parser) basicParse(urlOrRef string, base, url *URL, stateOverride mode) (*URL, error) {
	overridden := stateOverride != noMode
	hadURL := url != nil
	if url == nil {
		url = &URL{}
	}

	input := urlOrRef
	if !hadURL {
		if trimmed := trimC0OrSpace(input); trimmed != input {
			p.reportValidation(errIllegalCodePoint)
			input = trimmed
		}
	}
	if stripped := stripTabsAndNewlines(input); stripped != input {
		p.reportValidation(errIllegalCodePoint)
		input = stripped
	}

	c := newInputCursor(input)

	st := modeSchemeStart
	if overridden {
		st = stateOverride
	}

	var buf strings.Builder
	atFlag := false
	bracketFlag := false
	passwordSeenFlag := false

	fail := func(reason error) (*URL, error) {
		return nil, &ParseError{Op: "parse", Input: urlOrRef, Err: reason}
	}

	for {
		r := c.current()
		c.advance()

		switch st {
		case modeSchemeStart:
			switch {
			case isASCIIAlpha(r):
				buf.WriteRune(unicode.ToLower(r))
				st = modeScheme
			case !overridden:
				st = modeNoScheme
				c.rewindOne()
			default:
				return fail(errIllegalScheme)
			}

		case modeScheme:
			switch {
			case isASCIIAlphanumeric(r) || r == '+' || r == '-' || r == '.':
				buf.WriteRune(unicode.ToLower(r))
			case r == ':':
				scheme := buf.String()
				if overridden {
					if url.IsSpecial() != IsSpecialScheme(scheme) {
						return url, nil
					}
					if (url.Username != "" || url.Password != "" || url.Port != nil) && scheme == "file" {
						return url, nil
					}
					if url.Scheme == "file" && (url.Host.IsAbsent() || url.Host.IsEmpty()) {
						return url, nil
					}
				}
				url.Scheme = scheme
				if overridden {
					url.cleanDefaultPort()
					return url, nil
				}
				buf.Reset()
				switch {
				case url.Scheme == "file":
					if !c.remainingStartsWith("//") {
						p.reportValidation(errIllegalCodePoint)
					}
					st = modeFile
				case url.IsSpecial() && base != nil && base.Scheme == url.Scheme:
					st = modeSpecialRelativeOrAuthority
				case url.IsSpecial():
					st = modeSpecialAuthoritySlashes
				case c.remainingStartsWith("/"):
					st = modePathOrAuthority
					c.advance()
				default:
					url.OpaquePath = true
					url.Path = []string{""}
					st = modeOpaquePath
				}
			case !overridden:
				buf.Reset()
				st = modeNoScheme
				c = newInputCursor(input)
			default:
				return fail(errIllegalScheme)
			}

		case modeNoScheme:
			if (base == nil || base.OpaquePath) && r != '#' {
				return fail(errRelativeNoBase)
			}
			if base != nil && base.OpaquePath && r == '#' {
				url.Scheme = base.Scheme
				url.Path = append([]string(nil), base.Path...)
				url.OpaquePath = true
				url.Query = cloneStringPtr(base.Query)
				f := ""
				url.Fragment = &f
				st = modeFragment
			} else if base != nil && base.Scheme != "file" {
				st = modeRelative
				c.rewindOne()
			} else {
				st = modeFile
				c.rewindOne()
			}

		case modeSpecialRelativeOrAuthority:
			if r == '/' && c.remainingStartsWith("/") {
				st = modeSpecialAuthorityIgnoreSlashes
				c.advance()
			} else {
				p.reportValidation(errIllegalCodePoint)
				st = modeRelative
				c.rewindOne()
			}

		case modePathOrAuthority:
			if r == '/' {
				st = modeAuthority
			} else {
				st = modePath
				c.rewindOne()
			}

		case modeRelative:
			url.Scheme = base.Scheme
			if c.atEOF() && r == eof {
				copyAuthorityAndPath(url, base)
				url.Query = cloneStringPtr(base.Query)
			} else {
				switch {
				case r == '/':
					st = modeRelativeSlash
				case r == '?':
					copyAuthorityAndPath(url, base)
					q := ""
					url.Query = &q
					st = modeQuery
				case r == '#':
					copyAuthorityAndPath(url, base)
					url.Query = cloneStringPtr(base.Query)
					f := ""
					url.Fragment = &f
					st = modeFragment
				case url.IsSpecial() && r == '\\':
					p.reportValidation(errIllegalCodePoint)
					st = modeRelativeSlash
				default:
					copyAuthorityAndPath(url, base)
					if len(url.Path) > 0 {
						url.Path = url.Path[:len(url.Path)-1]
					}
					st = modePath
					c.rewindOne()
				}
			}

		case modeRelativeSlash:
			switch {
			case url.IsSpecial() && (r == '/' || r == '\\'):
				if r == '\\' {
					p.reportValidation(errIllegalCodePoint)
				}
				st = modeSpecialAuthorityIgnoreSlashes
			case r == '/':
				st = modeAuthority
			default:
				url.Username = base.Username
				url.Password = base.Password
				url.Host = cloneHost(base.Host)
				url.Port = cloneUint16Ptr(base.Port)
				st = modePath
				c.rewindOne()
			}

		case modeSpecialAuthoritySlashes:
			if r == '/' && c.remainingStartsWith("/") {
				st = modeSpecialAuthorityIgnoreSlashes
				c.advance()
			} else {
				p.reportValidation(errIllegalCodePoint)
				st = modeSpecialAuthorityIgnoreSlashes
				c.rewindOne()
			}

		case modeSpecialAuthorityIgnoreSlashes:
			if r != '/' && r != '\\' {
				st = modeAuthority
				c.rewindOne()
			} else {
				p.reportValidation(errIllegalCodePoint)
			}

		case modeAuthority:
			switch {
			case r == '@':
				p.reportValidation(errIllegalCodePoint)
				if atFlag {
					buf2 := "%40" + buf.String()
					buf.Reset()
					buf.WriteString(buf2)
				}
				atFlag = true
				for _, uc := range buf.String() {
					if uc == ':' && !passwordSeenFlag {
						passwordSeenFlag = true
						continue
					}
					enc := codec.PercentEncodeRune(uc, codec.UserinfoPercentEncodeSet)
					if passwordSeenFlag {
						url.Password += enc
					} else {
						url.Username += enc
					}
				}
				buf.Reset()
			case r == eof || r == '/' || r == '?' || r == '#' || (url.IsSpecial() && r == '\\'):
				if atFlag && buf.Len() == 0 {
					return fail(errMissingHost)
				}
				c.rewind(len([]rune(buf.String())) + 1)
				buf.Reset()
				st = modeHost
			default:
				buf.WriteRune(r)
			}

		case modeHost, modeHostname:
			switch {
			case overridden && url.Scheme == "file":
				c.rewindOne()
				st = modeFileHost
			case r == ':' && !bracketFlag:
				if buf.Len() == 0 {
					return fail(errMissingHost)
				}
				host, err := p.parseHost(buf.String(), !url.IsSpecial())
				if err != nil {
					return fail(err)
				}
				url.Host = host
				buf.Reset()
				st = modePort
				if stateOverride == modeHostname {
					return url, nil
				}
			case r == eof || r == '/' || r == '?' || r == '#' || (url.IsSpecial() && r == '\\'):
				c.rewindOne()
				switch {
				case url.IsSpecial() && buf.Len() == 0:
					return fail(errMissingHost)
				case overridden && buf.Len() == 0 && (url.Username != "" || url.Password != "" || url.Port != nil):
					return fail(errMissingHost)
				default:
					host, err := p.parseHost(buf.String(), !url.IsSpecial())
					if err != nil {
						return fail(err)
					}
					url.Host = host
					buf.Reset()
					st = modePathStart
					if overridden {
						return url, nil
					}
				}
			default:
				if r == '[' {
					bracketFlag = true
				} else if r == ']' {
					bracketFlag = false
				}
				buf.WriteRune(r)
			}

		case modePort:
			switch {
			case isASCIIDigit(r):
				buf.WriteRune(r)
			case r == eof || r == '/' || r == '?' || r == '#' || (url.IsSpecial() && r == '\\') || overridden:
				if buf.Len() > 0 {
					n, err := strconv.Atoi(buf.String())
					if err != nil || n > 65535 {
						return fail(errIllegalPort)
					}
					port := uint16(n)
					url.Port = &port
					url.cleanDefaultPort()
					buf.Reset()
				}
				if overridden {
					return url, nil
				}
				st = modePathStart
				c.rewindOne()
			default:
				return fail(errIllegalPort)
			}

		case modeFile:
			url.Scheme = "file"
			switch {
			case r == '/' || r == '\\':
				if r == '\\' {
					p.reportValidation(errIllegalCodePoint)
				}
				st = modeFileSlash
			case base != nil && base.Scheme == "file":
				if c.atEOF() && r == eof {
					url.Host = cloneHost(base.Host)
					url.Path = append([]string(nil), base.Path...)
					url.Query = cloneStringPtr(base.Query)
				} else {
					switch r {
					case '?':
						url.Host = cloneHost(base.Host)
						url.Path = append([]string(nil), base.Path...)
						q := ""
						url.Query = &q
						st = modeQuery
					case '#':
						url.Host = cloneHost(base.Host)
						url.Path = append([]string(nil), base.Path...)
						url.Query = cloneStringPtr(base.Query)
						f := ""
						url.Fragment = &f
						st = modeFragment
					default:
						if !startsWithWindowsDriveLetter(c.remainingFromPointer()) {
							url.Host = cloneHost(base.Host)
							url.Path = append([]string(nil), base.Path...)
							shortenPath(url)
						} else {
							p.reportValidation(errIllegalCodePoint)
						}
						st = modePath
						c.rewindOne()
					}
				}
			default:
				st = modePath
				c.rewindOne()
			}

		case modeFileSlash:
			switch {
			case r == '/' || r == '\\':
				if r == '\\' {
					p.reportValidation(errIllegalCodePoint)
				}
				st = modeFileHost
			default:
				if base != nil && base.Scheme == "file" && !startsWithWindowsDriveLetter(c.remainingFromPointer()) {
					if len(base.Path) > 0 && isNormalizedWindowsDriveLetter(base.Path[0]) {
						url.Path = append(url.Path, base.Path[0])
					} else {
						url.Host = cloneHost(base.Host)
					}
				}
				st = modePath
				c.rewindOne()
			}

		case modeFileHost:
			if r == eof || r == '/' || r == '\\' || r == '?' || r == '#' {
				c.rewindOne()
				switch {
				case !overridden && isWindowsDriveLetter(buf.String()):
					p.reportValidation(errIllegalCodePoint)
					st = modePath
				case buf.Len() == 0:
					url.Host = &Host{Kind: HostEmpty}
					if overridden {
						return url, nil
					}
					st = modePathStart
				default:
					host, err := p.parseHost(buf.String(), !url.IsSpecial())
					if err != nil {
						return fail(err)
					}
					if host.Kind == HostDomain && host.Domain == "localhost" {
						host = &Host{Kind: HostEmpty}
					}
					url.Host = host
					if overridden {
						return url, nil
					}
					buf.Reset()
					st = modePathStart
				}
			} else {
				buf.WriteRune(r)
			}

		case modePathStart:
			switch {
			case url.IsSpecial():
				if r == '\\' {
					p.reportValidation(errIllegalCodePoint)
				}
				st = modePath
				if r != '/' && r != '\\' {
					c.rewindOne()
				}
			case !overridden && r == '?':
				q := ""
				url.Query = &q
				st = modeQuery
			case !overridden && r == '#':
				f := ""
				url.Fragment = &f
				st = modeFragment
			case r != eof:
				st = modePath
				if r != '/' {
					c.rewindOne()
				}
			}

		case modePath:
			special := url.IsSpecial() && r == '\\'
			if r == eof || r == '/' || special || (!overridden && (r == '?' || r == '#')) {
				if special {
					p.reportValidation(errIllegalCodePoint)
				}
				seg := buf.String()
				switch {
				case isDoubleDotPathSegment(seg):
					shortenPath(url)
					if r != '/' && !special {
						url.Path = append(url.Path, "")
					}
				case isSingleDotPathSegment(seg):
					if r != '/' && !special {
						url.Path = append(url.Path, "")
					}
				default:
					if url.Scheme == "file" && len(url.Path) == 0 && isWindowsDriveLetter(seg) {
						if !url.Host.IsAbsent() && !url.Host.IsEmpty() {
							p.reportValidation(errIllegalCodePoint)
							url.Host = &Host{Kind: HostEmpty}
						}
						seg = seg[:1] + ":" + seg[2:]
					}
					url.Path = append(url.Path, seg)
				}
				buf.Reset()
				if url.Scheme == "file" && (r == eof || r == '?' || r == '#') {
					for len(url.Path) > 1 && url.Path[0] == "" {
						p.reportValidation(errIllegalCodePoint)
						url.Path = url.Path[1:]
					}
				}
				if r == '?' {
					q := ""
					url.Query = &q
					st = modeQuery
				}
				if r == '#' {
					f := ""
					url.Fragment = &f
					st = modeFragment
				}
			} else {
				if !isURLCodePoint(r) && r != '%' {
					p.reportValidation(errIllegalCodePoint)
				}
				if invalidPercentEncoded(c, r) {
					p.reportValidation(errIllegalCodePoint)
				}
				buf.WriteString(codec.PercentEncodeRune(r, codec.PathPercentEncodeSet))
			}

		case modeOpaquePath:
			switch r {
			case '?':
				q := ""
				url.Query = &q
				st = modeQuery
			case '#':
				f := ""
				url.Fragment = &f
				st = modeFragment
			default:
				if r != eof {
					if !isURLCodePoint(r) && r != '%' {
						p.reportValidation(errIllegalCodePoint)
					}
					if invalidPercentEncoded(c, r) {
						p.reportValidation(errIllegalCodePoint)
					}
					if len(url.Path) == 0 {
						url.Path = []string{""}
					}
					if r == ' ' && (c.remainingStartsWith("?") || c.remainingStartsWith("#")) {
						url.Path[0] += "%20"
					} else {
						url.Path[0] += codec.PercentEncodeRune(r, codec.C0ControlPercentEncodeSet)
					}
				}
			}

		case modeQuery:
			if !overridden && r == '#' {
				f := ""
				url.Fragment = &f
				st = modeFragment
			} else if r != eof {
				if !isURLCodePoint(r) && r != '%' {
					p.reportValidation(errIllegalCodePoint)
				}
				if invalidPercentEncoded(c, r) {
					p.reportValidation(errIllegalCodePoint)
				}
				set := codec.QueryPercentEncodeSet
				if url.IsSpecial() {
					set = codec.SpecialQueryPercentEncodeSet
				}
				*url.Query += codec.PercentEncodeRune(r, set)
			}

		case modeFragment:
			if r != eof {
				if !isURLCodePoint(r) && r != '%' {
					p.reportValidation(errIllegalCodePoint)
				}
				if invalidPercentEncoded(c, r) {
					p.reportValidation(errIllegalCodePoint)
				}
				*url.Fragment += codec.PercentEncodeRune(r, codec.FragmentPercentEncodeSet)
			}
		}

		// Stop only once the pointer has moved past the EOF position; a state
		// that rewound at EOF gets to see the EOF code point again under its
		// new mode.
		if c.pointer > len(c.points) {
			break
		}
	}

	return url, nil
}

func copyAuthorityAndPath(url, base *URL) {
	url.Username = base.Username
	url.Password = base.Password
	url.Host = cloneHost(base.Host)
	url.Port = cloneUint16Ptr(base.Port)
	url.Path = append([]string(nil), base.Path...)
}

func cloneHost(h *Host) *Host {
	if h == nil {
		return nil
	}
	out := *h
	return &out
}

func cloneUint16Ptr(p *uint16) *uint16 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneStringPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func isSingleDotPathSegment(s string) bool {
	return s == "." || strings.EqualFold(s, "%2e")
}

func isDoubleDotPathSegment(s string) bool {
	if s == ".." {
		return true
	}
	ls := strings.ToLower(s)
	return ls == ".%2e" || ls == "%2e." || ls == "%2e%2e"
}

// isURLCodePoint implements the spec's URL code point set: ASCII
// alphanumeric, a fixed punctuation list, and non-surrogate, non-noncharacter
// code points at or above U+00A0.
func isURLCodePoint(r rune) bool {
	if r == eof {
		return false
	}
	switch r {
	case '!', '$', '&', '\'', '(', ')', '*', '+', ',', '-', '.', '/', ':', ';', '=', '?', '@', '_', '~':
		return true
	}
	if isASCIIAlphanumeric(r) {
		return true
	}
	if r < 0x00A0 || r > 0x10FFFD {
		return false
	}
	if r >= 0xD800 && r <= 0xDFFF {
		return false
	}
	if r >= 0xFDD0 && r <= 0xFDEF {
		return false
	}
	if low := r & 0xFFFF; low == 0xFFFE || low == 0xFFFF {
		return false
	}
	return true
}

// invalidPercentEncoded reports whether r is '%' and is not followed by two
// ASCII hex digits.
func invalidPercentEncoded(c *inputCursor, r rune) bool {
	if r != '%' {
		return false
	}
	p := c.pointer
	if p+1 >= len(c.points) {
		return true
	}
	a, b := c.points[p], c.points[p+1]
	if a > 0x7F || b > 0x7F {
		return true
	}
	return codec.HexDigit(byte(a)) < 0 || codec.HexDigit(byte(b)) < 0
}

// trimC0OrSpace strips leading and trailing C0 control characters and spaces
// (spec §4.3 step 1).
func trimC0OrSpace(s string) string {
	rs := []rune(s)
	start := 0
	for start < len(rs) && isC0OrSpace(rs[start]) {
		start++
	}
	end := len(rs)
	for end > start && isC0OrSpace(rs[end-1]) {
		end--
	}
	return string(rs[start:end])
}

func isC0OrSpace(r rune) bool { return r <= 0x20 }

// stripTabsAndNewlines removes every ASCII tab or newline (spec §4.3 step 2).
func stripTabsAndNewlines(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == 0x09 || r == 0x0A || r == 0x0D {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
