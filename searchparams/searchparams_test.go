package searchparams

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOwner struct {
	lastQuery string
	calls     int
}

func (o *fakeOwner) UpdateSearchParams(query string) {
	o.lastQuery = query
	o.calls++
}

func TestNewFromQueryParsesPairs(t *testing.T) {
	l := NewFromQuery("a=1&b=2&a=3")
	assert.Equal(t, 3, l.Size())
	assert.Equal(t, []string{"1", "3"}, l.GetAll("a"))
}

func TestAppendNotifiesOwner(t *testing.T) {
	l := New()
	owner := &fakeOwner{}
	l.SetOwner(owner)

	l.Append("a", "1")
	assert.Equal(t, 1, owner.calls)
	assert.Equal(t, "a=1", owner.lastQuery)

	l.Append("b", "2")
	assert.Equal(t, "a=1&b=2", owner.lastQuery)
}

func TestGetReturnsFirstMatch(t *testing.T) {
	l := NewFromQuery("a=1&a=2")
	v, ok := l.Get("a")
	require.True(t, ok)
	assert.Equal(t, "1", v)

	_, ok = l.Get("missing")
	assert.False(t, ok)
}

func TestSetReplacesFirstAndDropsRest(t *testing.T) {
	l := NewFromQuery("a=1&b=2&a=3")
	l.Set("a", "9")
	assert.Equal(t, []Pair{{Name: "a", Value: "9"}, {Name: "b", Value: "2"}}, l.Entries())
}

func TestSetAppendsWhenAbsent(t *testing.T) {
	l := NewFromQuery("a=1")
	l.Set("b", "2")
	assert.Equal(t, []Pair{{Name: "a", Value: "1"}, {Name: "b", Value: "2"}}, l.Entries())
}

func TestDeleteWithValueFilter(t *testing.T) {
	l := NewFromQuery("a=1&a=2&b=3")
	v := "1"
	l.Delete("a", &v)
	assert.Equal(t, []Pair{{Name: "a", Value: "2"}, {Name: "b", Value: "3"}}, l.Entries())
}

func TestDeleteWithoutValueRemovesAllMatchingName(t *testing.T) {
	l := NewFromQuery("a=1&a=2&b=3")
	l.Delete("a", nil)
	assert.Equal(t, []Pair{{Name: "b", Value: "3"}}, l.Entries())
}

func TestHasWithAndWithoutValue(t *testing.T) {
	l := NewFromQuery("a=1&a=2")
	assert.True(t, l.Has("a", nil))
	v := "1"
	assert.True(t, l.Has("a", &v))
	v2 := "9"
	assert.False(t, l.Has("a", &v2))
}

func TestSortIsStableByCodeUnit(t *testing.T) {
	l := NewFromPairs([]Pair{
		{Name: "b", Value: "1"},
		{Name: "a", Value: "1"},
		{Name: "a", Value: "2"},
		{Name: "é", Value: "e"}, // U+00E9
		{Name: "z", Value: "1"},
	})
	l.Sort()
	names := l.Keys()
	assert.Equal(t, []string{"a", "a", "b", "z", "é"}, names)
}

func TestSortOrdersAstralPlaneBeforeUpperBMP(t *testing.T) {
	// U+10000 decodes to a surrogate pair starting at 0xD800, which sorts
	// before U+FFFF (0xFFFF) only by code unit comparison, exactly the
	// ordering subtlety this sort exists to get right.
	l := NewFromPairs([]Pair{
		{Name: "\U00010000", Value: "astral"},
		{Name: "￿", Value: "bmp"},
	})
	l.Sort()
	assert.Equal(t, []string{"\U00010000", "￿"}, l.Keys())
}

func TestEncodeRoundTrip(t *testing.T) {
	l := NewFromQuery("a=1&b=hello+world")
	assert.Equal(t, "a=1&b=hello+world", l.Encode())
}

func TestTrimQueryPrefix(t *testing.T) {
	assert.Equal(t, "a=1", TrimQueryPrefix("?a=1"))
	assert.Equal(t, "a=1", TrimQueryPrefix("a=1"))
}
