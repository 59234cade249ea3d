package parse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse_ValidAddresses(t *testing.T) {
	tests := []struct {
		in     string
		local  string
		domain string
	}{
		{"user@example.com", "user", "example.com"},
		{"john.doe@gmail.com", "john.doe", "gmail.com"},
		{"user+tag@example.com", "user+tag", "example.com"},
		{"  spaced@example.com  ", "spaced", "example.com"},
		{"UPPER@EXAMPLE.COM", "UPPER", "example.com"},
		{"o'brien@example.co.uk", "o'brien", "example.co.uk"},
		{"x!#$%&'*+/=?^_`{|}~-y@example.org", "x!#$%&'*+/=?^_`{|}~-y", "example.org"},
	}
	for _, tt := range tests {
		a := Parse(tt.in, Options{AllowInternational: true})
		assert.True(t, a.Valid, "Parse(%q): %s", tt.in, a.Reason)
		assert.Equal(t, tt.local, a.Local, "local of %q", tt.in)
		assert.Equal(t, tt.domain, a.Domain, "domain of %q", tt.in)
	}
}

func TestParse_Rejections(t *testing.T) {
	tests := []struct {
		in     string
		reason string
	}{
		{"", "empty"},
		{"invalid-email", "exactly one @"},
		{"a@b@c.com", "exactly one @"},
		{"@example.com", "local part is empty"},
		{"user@", "domain is empty"},
		{".user@example.com", "start or end with a dot"},
		{"user.@example.com", "start or end with a dot"},
		{"us..er@example.com", "consecutive dots"},
		{"a@b", "at least two labels"},
		{"a@b.c", "at least 2 characters"},
		{"a@example.c0m", "alphabetic"},
		{"a@-bad.com", "hyphen"},
		{"a@bad-.com", "hyphen"},
		{"a@exa_mple.com", "invalid character"},
		{"a b@example.com", "space"},
		{"user@exam ple.com", "invalid character"},
	}
	for _, tt := range tests {
		a := Parse(tt.in, Options{AllowInternational: true})
		assert.False(t, a.Valid, "Parse(%q) should be rejected", tt.in)
		assert.Contains(t, a.Reason, tt.reason, "Parse(%q)", tt.in)
	}
}

func TestParse_LengthBoundaries(t *testing.T) {
	local := strings.Repeat("a", 64)
	domain := strings.Repeat("b", 63) + "." + strings.Repeat("c", 63) + "." +
		strings.Repeat("d", 63) + "." + strings.Repeat("e", 57) + ".fghij"
	addr := local + "@" + domain
	assert.Equal(t, 320, len(addr))

	a := Parse(addr, Options{})
	assert.True(t, a.Valid, "320-byte address with 64-byte local should parse: %s", a.Reason)

	a = Parse("x"+addr, Options{})
	assert.False(t, a.Valid)
	assert.Contains(t, a.Reason, "320")

	a = Parse(strings.Repeat("a", 65)+"@example.com", Options{})
	assert.False(t, a.Valid)
	assert.Contains(t, a.Reason, "64")
}

func TestParse_QuotedLocal(t *testing.T) {
	a := Parse(`"john doe"@example.com`, Options{})
	assert.True(t, a.Valid, a.Reason)
	assert.True(t, a.QuotedLocal)
	assert.Equal(t, `"john doe"`, a.Local)
	assert.Equal(t, "example.com", a.Domain)

	// Quoted form may even hold an @
	a = Parse(`"a@b"@example.com`, Options{})
	assert.True(t, a.Valid, a.Reason)
	assert.Equal(t, "example.com", a.Domain)

	a = Parse(`"unterminated@example.com`, Options{})
	assert.False(t, a.Valid)

	// Strict mode rejects quoted locals and plus addressing
	a = Parse(`"john doe"@example.com`, Options{Strict: true})
	assert.False(t, a.Valid)
	assert.Contains(t, a.Reason, "strict mode")

	a = Parse("john+news@example.com", Options{Strict: true})
	assert.False(t, a.Valid)
	assert.Contains(t, a.Reason, "plus addressing")
}

func TestParse_IPLiterals(t *testing.T) {
	a := Parse("user@[192.0.2.1]", Options{})
	assert.True(t, a.Valid, a.Reason)
	assert.True(t, a.IPLiteral)

	a = Parse("user@[999.0.2.1]", Options{})
	assert.False(t, a.Valid)

	a = Parse("user@[IPv6:2001:db8::1]", Options{})
	assert.True(t, a.Valid, a.Reason)
	assert.True(t, a.IPLiteral)

	a = Parse("user@[IPv6:not-an-ip]", Options{})
	assert.False(t, a.Valid)
}

func TestParse_Internationalized(t *testing.T) {
	a := Parse("user@münchen.de", Options{AllowInternational: true})
	assert.True(t, a.Valid, a.Reason)
	assert.True(t, a.International)
	assert.Equal(t, "xn--mnchen-3ya.de", a.Domain)
	assert.Equal(t, "münchen.de", a.DomainUnicode)

	a = Parse("user@münchen.de", Options{AllowInternational: false})
	assert.False(t, a.Valid)

	// Pure ASCII never sets the flag
	a = Parse("user@example.com", Options{AllowInternational: true})
	assert.True(t, a.Valid)
	assert.False(t, a.International)
}
