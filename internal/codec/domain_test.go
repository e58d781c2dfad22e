package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDomainASCII(t *testing.T) {
	got, ok := NormalizeDomainASCII("EXAMPLE.COM")
	assert.True(t, ok)
	assert.Equal(t, "example.com", got)

	got, ok = NormalizeDomainASCII("example。com")
	assert.True(t, ok)
	assert.Equal(t, "example.com", got)

	_, ok = NormalizeDomainASCII("exa%20mple.com")
	assert.False(t, ok)

	_, ok = NormalizeDomainASCII("exa\tmple.com")
	assert.False(t, ok)
}

func TestFormParseAndSerialize(t *testing.T) {
	pairs := FormParse("a=1&b=2&c")
	assert.Equal(t, []FormPair{{Name: "a", Value: "1"}, {Name: "b", Value: "2"}, {Name: "c", Value: ""}}, pairs)

	got := FormSerialize([]FormPair{{Name: "a b", Value: "c&d"}})
	assert.Equal(t, "a+b=c%26d", got)
}
