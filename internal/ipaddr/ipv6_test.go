package ipaddr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAndSerializeIPv6RoundTrip(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"loopback", "::1", "::1"},
		{"unspecified", "::", "::"},
		{"full", "1:2:3:4:5:6:7:8", "1:2:3:4:5:6:7:8"},
		{"leading-compress", "::2:3:4:5:6:7:8", "0:2:3:4:5:6:7:8"},
		{"middle-compress", "1::8", "1::8"},
		{"trailing-compress", "1:2:3:4:5:6::", "1:2:3:4:5:6::"},
		{"embedded-ipv4", "::ffff:192.168.1.1", "::ffff:c0a8:101"},
		{"leading-zeros-dropped", "2001:0db8:0000:0000:0000:0000:0000:0001", "2001:db8::1"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			addr, ok := ParseIPv6Address(c.in)
			require.True(t, ok, "expected %q to parse", c.in)
			assert.Equal(t, c.want, SerializeIPv6(addr))
		})
	}
}

func TestParseIPv6AddressRejectsInvalid(t *testing.T) {
	invalid := []string{
		"",
		":",
		":::",
		"1:2:3:4:5:6:7:8:9",
		"1:2:3:4:5:6:7",
		"::1::2",
		"1.2.3.4",
		"1:2:3:4:5:6:1.2.3.4.5",
		"g::1",
		"::ffff:256.1.1.1",
	}
	for _, in := range invalid {
		t.Run(in, func(t *testing.T) {
			_, ok := ParseIPv6Address(in)
			assert.False(t, ok, "expected %q to be rejected", in)
		})
	}
}

func TestLongestZeroRunFirstOnTie(t *testing.T) {
	addr := IPv6{1, 0, 0, 2, 0, 0, 3, 4}
	start, length := longestZeroRun(addr)
	assert.Equal(t, 1, start)
	assert.Equal(t, 2, length)
}
