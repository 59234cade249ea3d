package check_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jaainil/vivid-valid/check"
)

func TestTypoChecker_ExactMisspelling(t *testing.T) {
	c := check.NewTypoChecker()

	result := c.Suggest("user@gmai.com", true)
	assert.True(t, result.TypoDetected)
	assert.Equal(t, "user@gmail.com", result.Suggestion)
	assert.Equal(t, 95, result.Confidence)
}

func TestTypoChecker_TLDSubstitution(t *testing.T) {
	c := check.NewTypoChecker()

	result := c.Suggest("user@mycompany.con", true)
	assert.True(t, result.TypoDetected)
	assert.Equal(t, "user@mycompany.com", result.Suggestion)
	assert.Equal(t, 90, result.Confidence)
}

func TestTypoChecker_EditDistance(t *testing.T) {
	c := check.NewTypoChecker()

	result := c.Suggest("user@protonmial.com", true)
	assert.True(t, result.TypoDetected)
	assert.Equal(t, "user@protonmail.com", result.Suggestion)
	assert.Equal(t, 80, result.Confidence)
}

func TestTypoChecker_PopularDomainsNeverCorrected(t *testing.T) {
	c := check.NewTypoChecker()

	for _, email := range []string{"a@gmail.com", "b@yahoo.com", "c@outlook.com", "d@proton.me"} {
		result := c.Suggest(email, true)
		assert.False(t, result.TypoDetected, "%s must not be corrected", email)
		assert.Empty(t, result.Suggestion)
	}
}

func TestTypoChecker_FarDomainsNotCorrected(t *testing.T) {
	c := check.NewTypoChecker()

	result := c.Suggest("user@somecompany.org", true)
	assert.False(t, result.TypoDetected)
	assert.Empty(t, result.Suggestion)
}

func TestTypoChecker_StructuralIssues(t *testing.T) {
	c := check.NewTypoChecker()

	result := c.Suggest("no-at-sign", true)
	assert.False(t, result.TypoDetected)
	assert.Contains(t, result.Issues, "missing @ separator")

	result = c.Suggest("@example.com", true)
	assert.Contains(t, result.Issues, "empty local part")

	result = c.Suggest("user@", true)
	assert.Contains(t, result.Issues, "empty domain")

	result = c.Suggest("user@nodot", true)
	assert.Contains(t, result.Issues, "domain is missing a TLD")

	result = c.Suggest("user@double..dot.com", true)
	assert.Contains(t, result.Issues, "domain contains consecutive dots")
}

func TestTypoChecker_CacheReturnsSameResult(t *testing.T) {
	c := check.NewTypoChecker()

	first := c.Suggest("user@gmai.com", true)
	second := c.Suggest("USER@GMAI.COM", true)
	assert.Equal(t, first, second, "cache key is the lowercased input")
}
