package codec

import "github.com/bits-and-blooms/bitset"

// Set is a percent-encode predicate over bytes 0..255, backed by a bitset
// the same way the reference WHATWG parser builds its ASCIIAlpha / ASCIIDigit
// classifiers (nlnwa/whatwg-url's url.ASCIIAlpha.Test(uint(r)) idiom).
type Set struct {
	bits *bitset.BitSet
}

func newSet() *Set {
	return &Set{bits: bitset.New(256)}
}

// Contains reports whether b must be percent-encoded under this set.
func (s *Set) Contains(b byte) bool {
	return s.bits.Test(uint(b))
}

// clone returns a Set with the same bits set, so additive sets in the
// hierarchy below never mutate their base.
func (s *Set) clone() *Set {
	return &Set{bits: s.bits.Clone()}
}

func (s *Set) add(bs ...byte) *Set {
	for _, b := range bs {
		s.bits.Set(uint(b))
	}
	return s
}

// C0ControlPercentEncodeSet matches bytes <= 0x1F or > 0x7E.
var C0ControlPercentEncodeSet = buildC0()

func buildC0() *Set {
	s := newSet()
	for b := 0; b <= 0x1F; b++ {
		s.bits.Set(uint(b))
	}
	for b := 0x7F; b <= 0xFF; b++ {
		s.bits.Set(uint(b))
	}
	return s
}

// FragmentPercentEncodeSet = C0 + space " < > `
var FragmentPercentEncodeSet = C0ControlPercentEncodeSet.clone().add(' ', '"', '<', '>', '`')

// QueryPercentEncodeSet = C0 + space " # < >
var QueryPercentEncodeSet = C0ControlPercentEncodeSet.clone().add(' ', '"', '#', '<', '>')

// SpecialQueryPercentEncodeSet = Query + '
var SpecialQueryPercentEncodeSet = QueryPercentEncodeSet.clone().add('\'')

// PathPercentEncodeSet = Query + ? ^ ` { }
var PathPercentEncodeSet = QueryPercentEncodeSet.clone().add('?', '^', '`', '{', '}')

// UserinfoPercentEncodeSet = Path + / : ; = @ [ \ ] |
var UserinfoPercentEncodeSet = PathPercentEncodeSet.clone().add('/', ':', ';', '=', '@', '[', '\\', ']', '|')

// ComponentPercentEncodeSet = Userinfo + $ % & + ,
var ComponentPercentEncodeSet = UserinfoPercentEncodeSet.clone().add('$', '%', '&', '+', ',')

// FormURLEncodedPercentEncodeSet = Component + ! ' ( ) ~
var FormURLEncodedPercentEncodeSet = ComponentPercentEncodeSet.clone().add('!', '\'', '(', ')', '~')
