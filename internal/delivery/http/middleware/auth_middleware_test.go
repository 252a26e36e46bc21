package middleware

import (
	"testing"
)

func TestBearerTokenFromHeader(t *testing.T) {
	cases := []struct {
		name   string
		header string
		token  string
		ok     bool
	}{
		{"empty", "", "", false},
		{"no scheme", "abc.def.ghi", "", false},
		{"wrong scheme", "Basic abc", "", false},
		{"bearer", "Bearer abc.def.ghi", "abc.def.ghi", true},
		{"lowercase scheme", "bearer abc.def.ghi", "abc.def.ghi", true},
		{"padded", "  Bearer abc.def.ghi  ", "abc.def.ghi", true},
		{"scheme only", "Bearer ", "", false},
		{"blank token", "Bearer    ", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			token, ok := bearerTokenFromHeader(tc.header)
			if ok != tc.ok || token != tc.token {
				t.Fatalf("header %q: got (%q, %v), want (%q, %v)", tc.header, token, ok, tc.token, tc.ok)
			}
		})
	}
}
