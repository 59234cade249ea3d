package check

import (
	"strings"
	"time"

	"github.com/jaainil/vivid-valid/internal/levenshtein"
	"github.com/jaainil/vivid-valid/internal/ttlcache"
	"github.com/jaainil/vivid-valid/internal/typo"
	"github.com/jaainil/vivid-valid/types"
)

// Confidence levels for the three ways a correction can be found.
const (
	confidenceExact    = 95 // direct misspelling-map hit
	confidenceTLDFix   = 90 // TLD-only substitution (.con -> .com)
	confidenceDistance = 80 // bounded edit-distance match
)

// maxEditDistance bounds the whitelist search: only domains within two
// insertions/deletions/substitutions of a popular provider are corrected.
const maxEditDistance = 2

// TypoChecker detects likely domain misspellings and proposes corrections.
// Popular provider domains are never corrected, neither to themselves nor
// to a close neighbor, which keeps gmail.com from being "fixed".
type TypoChecker struct {
	cache *ttlcache.Cache[types.TypoCheck]
}

// NewTypoChecker creates a checker with a one-hour result cache.
func NewTypoChecker() *TypoChecker {
	return &TypoChecker{cache: ttlcache.New[types.TypoCheck](time.Hour)}
}

// Suggest analyzes email for likely typos. Results are cached per input
// when useCache is true.
func (c *TypoChecker) Suggest(email string, useCache bool) types.TypoCheck {
	key := strings.ToLower(strings.TrimSpace(email))
	if !useCache {
		return c.suggest(key)
	}
	result, _ := c.cache.GetOrFill(key, func() (types.TypoCheck, error) {
		return c.suggest(key), nil
	})
	return result
}

func (c *TypoChecker) suggest(email string) types.TypoCheck {
	var result types.TypoCheck

	at := strings.LastIndex(email, "@")
	if at < 0 {
		result.Issues = append(result.Issues, "missing @ separator")
		return result
	}
	local, domain := email[:at], email[at+1:]
	if local == "" {
		result.Issues = append(result.Issues, "empty local part")
		return result
	}
	if domain == "" {
		result.Issues = append(result.Issues, "empty domain")
		return result
	}

	// Structural oddities worth flagging even without a suggestion.
	if !strings.Contains(domain, ".") {
		result.Issues = append(result.Issues, "domain is missing a TLD")
	}
	if strings.Contains(domain, "..") {
		result.Issues = append(result.Issues, "domain contains consecutive dots")
	}
	if strings.ContainsAny(email, " \t") {
		result.Issues = append(result.Issues, "address contains whitespace")
	}

	// Popular domains are taken at face value; "correcting" them is how
	// false positives happen.
	if typo.IsPopular(domain) {
		return result
	}

	if canonical, ok := typo.Misspellings[domain]; ok {
		return corrected(result, local, canonical, confidenceExact)
	}

	if fixed, ok := tldSubstitution(domain); ok {
		return corrected(result, local, fixed, confidenceTLDFix)
	}

	if nearest, ok := nearestPopular(domain); ok {
		return corrected(result, local, nearest, confidenceDistance)
	}

	return result
}

func corrected(result types.TypoCheck, local, domain string, confidence int) types.TypoCheck {
	result.TypoDetected = true
	result.Suggestion = local + "@" + domain
	result.Corrections = append(result.Corrections, domain)
	result.Confidence = confidence
	return result
}

// tldSubstitution repairs a mistyped final label (gmail.con -> gmail.com).
func tldSubstitution(domain string) (string, bool) {
	dot := strings.LastIndex(domain, ".")
	if dot < 0 {
		return "", false
	}
	fixed, ok := typo.TLDFixes[domain[dot+1:]]
	if !ok {
		return "", false
	}
	return domain[:dot+1] + fixed, true
}

// nearestPopular returns the whitelist domain closest to the input, if the
// edit distance is within [1, maxEditDistance].
func nearestPopular(domain string) (string, bool) {
	best := ""
	bestDist := maxEditDistance + 1
	for _, candidate := range typo.Popular {
		d, ok := levenshtein.DistanceWithin(domain, candidate, maxEditDistance)
		if !ok || d == 0 {
			continue
		}
		if d < bestDist {
			bestDist = d
			best = candidate
		}
	}
	return best, best != ""
}
