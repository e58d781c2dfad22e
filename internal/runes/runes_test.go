package runes

import "testing"

func TestEquals(t *testing.T) {
	cases := []struct {
		a, b []rune
		want bool
	}{
		{[]rune("abc"), []rune("abc"), true},
		{[]rune("abc"), []rune("abd"), false},
		{[]rune("abc"), []rune("ab"), false},
		{[]rune(""), []rune(""), true},
		{[]rune("日本語"), []rune("日本語"), true},
	}
	for _, c := range cases {
		if got := Equals(c.a, c.b); got != c.want {
			t.Errorf("Equals(%q, %q) = %v, want %v", string(c.a), string(c.b), got, c.want)
		}
	}
}

func TestHasPrefix(t *testing.T) {
	cases := []struct {
		s, prefix string
		want      bool
	}{
		{"https://example.com", "//", false},
		{"//example.com", "//", true},
		{"/example.com", "//", false},
		{"", "", true},
		{"a", "", true},
		{"", "a", false},
		{"日本語です", "日本", true},
	}
	for _, c := range cases {
		got := HasPrefix([]rune(c.s), []rune(c.prefix))
		if got != c.want {
			t.Errorf("HasPrefix(%q, %q) = %v, want %v", c.s, c.prefix, got, c.want)
		}
	}
}
