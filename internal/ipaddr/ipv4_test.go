package ipaddr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIPv4Address(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want uint32
		ok   bool
	}{
		{"decimal", "192.168.0.1", 0xC0A80001, true},
		{"all-zero", "0.0.0.0", 0, true},
		{"broadcast", "255.255.255.255", 0xFFFFFFFF, true},
		{"hex-octet", "0x7f.0.0.1", 0x7F000001, true},
		{"octal-octet", "0177.0.0.1", 0x7F000001, true},
		{"tail-fill-one-part", "1", 1, true},
		{"tail-fill-two-parts", "1.2", 0x01000002, true},
		{"tail-fill-three-parts", "1.2.3", 0x01020003, true},
		{"trailing-dot", "1.2.3.4.", 0x01020304, true},
		{"too-many-parts", "1.2.3.4.5", 0, false},
		{"part-out-of-range", "256.0.0.1", 0, false},
		{"empty-part", "1..3.4", 0, false},
		{"not-numeric", "a.b.c.d", 0, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := ParseIPv4Address(c.in)
			require.Equal(t, c.ok, ok)
			if c.ok {
				assert.Equal(t, c.want, got)
			}
		})
	}
}

func TestSerializeIPv4(t *testing.T) {
	assert.Equal(t, "192.168.0.1", SerializeIPv4(0xC0A80001))
	assert.Equal(t, "0.0.0.0", SerializeIPv4(0))
	assert.Equal(t, "255.255.255.255", SerializeIPv4(0xFFFFFFFF))
}

func TestLooksLikeIPv4(t *testing.T) {
	assert.True(t, LooksLikeIPv4("1.2.3.4"))
	assert.True(t, LooksLikeIPv4("0x1.2.3.4"))
	assert.True(t, LooksLikeIPv4("1.2.3.4."))
	assert.False(t, LooksLikeIPv4("example.com"))
	assert.False(t, LooksLikeIPv4("1.2.3.com"))
}
