package vividvalid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRoleBased(t *testing.T) {
	assert.True(t, isRoleBased("admin"))
	assert.True(t, isRoleBased("Support"))
	assert.True(t, isRoleBased("info+tag"), "the part before the tag decides")
	assert.True(t, isRoleBased("no-reply"))
	assert.False(t, isRoleBased("john.doe"))
	assert.False(t, isRoleBased("administrative"), "exact match only")
}

func TestIsFreeProvider(t *testing.T) {
	assert.True(t, isFreeProvider("gmail.com"))
	assert.True(t, isFreeProvider("yandex.ru"))
	assert.False(t, isFreeProvider("acme-corp.com"))
}

func TestGmailNormalize(t *testing.T) {
	tests := []struct {
		local, domain, want string
	}{
		{"john.doe", "gmail.com", "johndoe@gmail.com"},
		{"John.Doe", "gmail.com", "johndoe@gmail.com"},
		{"john+news", "gmail.com", "john@gmail.com"},
		{"j.o.h.n+a.b", "gmail.com", "john@gmail.com"},
		{"john", "googlemail.com", "john@gmail.com"},
		{"john", "yahoo.com", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, gmailNormalize(tt.local, tt.domain),
			"gmailNormalize(%q, %q)", tt.local, tt.domain)
	}
}

func TestHasDigitRun(t *testing.T) {
	assert.True(t, hasDigitRun("user12345", 5))
	assert.False(t, hasDigitRun("user1234", 5))
	assert.False(t, hasDigitRun("u1s2e3r45", 5), "digits must be consecutive")
	assert.True(t, hasDigitRun("abc00000def", 5))
}
