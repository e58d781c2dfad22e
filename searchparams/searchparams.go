// Package searchparams implements the URLSearchParams container (spec
// §4.6/§4.7): an ordered, possibly-duplicate-keyed list of (name, value)
// pairs with an application/x-www-form-urlencoded codec and a weak,
// update-on-mutation link back to an owning URL.
package searchparams

import (
	"sort"
	"strings"

	"github.com/kitten/whatwg-url-minimum/internal/codec"
)

// Pair is one (name, value) entry. Order within the list is significant and
// preserved across every mutation except Sort.
type Pair struct {
	Name  string
	Value string
}

// Owner is the narrow interface a URL implementation satisfies to receive
// query-string updates whenever the list mutates (spec §4.7's "update"
// steps). It deliberately knows nothing about *parser.URL, so this package
// never imports the parser or facade packages.
type Owner interface {
	UpdateSearchParams(query string)
}

// List is the ordered (name, value) sequence plus the codec and owner
// plumbing described in spec §4.6.
type List struct {
	pairs []Pair
	owner Owner
}

// New builds an empty, ownerless list.
func New() *List { return &List{} }

// NewFromQuery parses an application/x-www-form-urlencoded string (with any
// leading "?" already stripped by the caller) into a list.
func NewFromQuery(query string) *List {
	l := &List{}
	for _, fp := range codec.FormParse(query) {
		l.pairs = append(l.pairs, Pair{Name: fp.Name, Value: fp.Value})
	}
	return l
}

// NewFromPairs builds a list from an explicit ordered sequence, as when a
// caller constructs URLSearchParams from a sequence of [name, value] pairs.
func NewFromPairs(pairs []Pair) *List {
	l := &List{pairs: append([]Pair(nil), pairs...)}
	return l
}

// NewFromMap builds a list from a string-keyed map; Go's map has no stable
// iteration order, so callers that need reproducible output should prefer
// NewFromPairs (spec §4.7 construction note).
func NewFromMap(m map[string]string) *List {
	l := &List{}
	for k, v := range m {
		l.pairs = append(l.pairs, Pair{Name: k, Value: v})
	}
	return l
}

// SetOwner attaches an owner. The owner is not notified by this call; it is
// consulted only on subsequent mutations.
func (l *List) SetOwner(o Owner) { l.owner = o }

// ResetFromQuery repopulates the list in place from a form-urlencoded query
// string, keeping the same *List identity and owner. Used when the owning
// URL's query changes out from under an already-vended list (e.g. a new
// href or search is set), so that a caller holding onto a prior
// SearchParams() reference stays in sync instead of being left pointing at
// a stale, disconnected list. Unlike the mutating methods (Append, Delete,
// Set, Sort), ResetFromQuery does not call update: the owner is the one driving this
// change, not reacting to it.
func (l *List) ResetFromQuery(query string) {
	l.pairs = l.pairs[:0]
	for _, fp := range codec.FormParse(query) {
		l.pairs = append(l.pairs, Pair{Name: fp.Name, Value: fp.Value})
	}
}

func (l *List) update() {
	if l.owner != nil {
		l.owner.UpdateSearchParams(l.Encode())
	}
}

// Size is the number of (name, value) pairs (spec §4.6 "size").
func (l *List) Size() int { return len(l.pairs) }

// Append adds a new pair at the end, then updates the owner.
func (l *List) Append(name, value string) {
	l.pairs = append(l.pairs, Pair{Name: name, Value: value})
	l.update()
}

// Delete removes every pair named name. When value is non-nil, only pairs
// matching both name and *value are removed (spec §4.6 "delete", two-arg
// overload).
func (l *List) Delete(name string, value *string) {
	out := l.pairs[:0:0]
	for _, p := range l.pairs {
		if p.Name == name && (value == nil || p.Value == *value) {
			continue
		}
		out = append(out, p)
	}
	l.pairs = out
	l.update()
}

// Get returns the value of the first pair named name, and whether one
// exists.
func (l *List) Get(name string) (string, bool) {
	for _, p := range l.pairs {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// GetAll returns the values of every pair named name, in list order.
func (l *List) GetAll(name string) []string {
	var out []string
	for _, p := range l.pairs {
		if p.Name == name {
			out = append(out, p.Value)
		}
	}
	return out
}

// Has reports whether any pair is named name. When value is non-nil, it
// additionally requires a matching value (spec §4.6 "has", two-arg
// overload).
func (l *List) Has(name string, value *string) bool {
	for _, p := range l.pairs {
		if p.Name == name && (value == nil || p.Value == *value) {
			return true
		}
	}
	return false
}

// Set replaces the value of the first pair named name and removes every
// other pair named name; if none exists, it appends one (spec §4.6 "set").
func (l *List) Set(name, value string) {
	found := false
	out := l.pairs[:0:0]
	for _, p := range l.pairs {
		if p.Name != name {
			out = append(out, p)
			continue
		}
		if !found {
			p.Value = value
			out = append(out, p)
			found = true
		}
	}
	if !found {
		out = append(out, Pair{Name: name, Value: value})
	}
	l.pairs = out
	l.update()
}

// Sort stably reorders pairs by name, comparing names by UTF-16 code unit
// rather than by code point or by raw UTF-8 byte (spec §4.6 "sort" and
// GLOSSARY "code unit"). This is the detail that makes astral-plane names
// (outside the BMP, leading surrogate 0xD800-0xDBFF) sort before BMP names
// in U+E000-U+FFFF, even though code point or UTF-8 byte order would sort
// them after.
func (l *List) Sort() {
	sort.SliceStable(l.pairs, func(i, j int) bool {
		return compareByCodeUnits(l.pairs[i].Name, l.pairs[j].Name) < 0
	})
	l.update()
}

// ForEach calls fn for every pair in list order.
func (l *List) ForEach(fn func(name, value string)) {
	for _, p := range l.pairs {
		fn(p.Name, p.Value)
	}
}

// Entries returns a defensive copy of the pair list.
func (l *List) Entries() []Pair { return append([]Pair(nil), l.pairs...) }

// Keys returns every name in list order, including duplicates.
func (l *List) Keys() []string {
	out := make([]string, len(l.pairs))
	for i, p := range l.pairs {
		out[i] = p.Name
	}
	return out
}

// Values returns every value in list order.
func (l *List) Values() []string {
	out := make([]string, len(l.pairs))
	for i, p := range l.pairs {
		out[i] = p.Value
	}
	return out
}

// Encode serializes the list as application/x-www-form-urlencoded (spec
// §4.6 "stringifier" / §4.1's form-urlencoded serializer).
func (l *List) Encode() string {
	pairs := make([]codec.FormPair, len(l.pairs))
	for i, p := range l.pairs {
		pairs[i] = codec.FormPair{Name: p.Name, Value: p.Value}
	}
	return codec.FormSerialize(pairs)
}

// String is an alias for Encode so a *List satisfies fmt.Stringer.
func (l *List) String() string { return l.Encode() }

// runeToCodeUnits returns the UTF-16 code unit(s) a rune decodes to: one
// unit for code points in the BMP, two (a surrogate pair) above it.
func runeToCodeUnits(r rune) []uint16 {
	if r < 0 || r > 0x10FFFF || (r >= 0xD800 && r <= 0xDFFF) {
		return []uint16{0xFFFD}
	}
	if r <= 0xFFFF {
		return []uint16{uint16(r)}
	}
	r -= 0x10000
	hi := uint16(0xD800 + (r >> 10))
	lo := uint16(0xDC00 + (r & 0x3FF))
	return []uint16{hi, lo}
}

// compareByCodeUnits compares a and b the way ECMAScript's default
// Array.prototype.sort would: lexicographically over UTF-16 code units.
func compareByCodeUnits(a, b string) int {
	var au, bu []uint16
	for _, r := range a {
		au = append(au, runeToCodeUnits(r)...)
	}
	for _, r := range b {
		bu = append(bu, runeToCodeUnits(r)...)
	}
	for i := 0; i < len(au) && i < len(bu); i++ {
		if au[i] != bu[i] {
			if au[i] < bu[i] {
				return -1
			}
			return 1
		}
	}
	return len(au) - len(bu)
}

// TrimQueryPrefix strips a single leading "?" from s, matching the
// URLSearchParams(init) constructor's handling of a plain-string init value
// (spec §4.7).
func TrimQueryPrefix(s string) string {
	return strings.TrimPrefix(s, "?")
}
