package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentEncodeDecodeRoundTrip(t *testing.T) {
	assert.Equal(t, "%20", PercentEncodeByte(' '))
	assert.Equal(t, "%2F", PercentEncodeByte('/'))

	assert.Equal(t, "hello world", PercentDecodeString("hello%20world"))
	assert.Equal(t, "100%", PercentDecodeString("100%"))
	assert.Equal(t, "100%zz", PercentDecodeString("100%zz"))
}

func TestPercentEncodeStringUsesSet(t *testing.T) {
	got := PercentEncodeString("a b", FragmentPercentEncodeSet, false)
	assert.Equal(t, "a%20b", got)
}

func TestPercentEncodeStringSpaceAsPlus(t *testing.T) {
	got := PercentEncodeString("a b", FormURLEncodedPercentEncodeSet, true)
	assert.Equal(t, "a+b", got)
}

func TestSetHierarchyIsAdditive(t *testing.T) {
	// Every set in the chain must still reject everything its base rejects.
	assert.True(t, FragmentPercentEncodeSet.Contains(0x00))
	assert.True(t, QueryPercentEncodeSet.Contains(0x00))
	assert.True(t, PathPercentEncodeSet.Contains(' '))
	assert.True(t, UserinfoPercentEncodeSet.Contains('?'))
	assert.True(t, ComponentPercentEncodeSet.Contains('/'))
	assert.True(t, FormURLEncodedPercentEncodeSet.Contains('%'))

	// And each adds its own distinguishing characters beyond its base.
	assert.False(t, QueryPercentEncodeSet.Contains('`'))
	assert.True(t, FragmentPercentEncodeSet.Contains('`'))
	assert.False(t, PathPercentEncodeSet.Contains(':'))
	assert.True(t, UserinfoPercentEncodeSet.Contains(':'))
}
