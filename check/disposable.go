package check

import (
	"regexp"
	"strings"
	"time"

	"github.com/jaainil/vivid-valid/internal/disposable"
	"github.com/jaainil/vivid-valid/internal/ttlcache"
)

// suspiciousPatterns are strong single-signal indicators of a disposable
// provider in the domain name itself.
var suspiciousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`temp.*mail`),
	regexp.MustCompile(`\d+min`),
	regexp.MustCompile(`throwaway`),
	regexp.MustCompile(`disposable`),
}

// heuristicCatalogue is the broader themed pattern set for the
// heuristic-only path. Two or more matches classify a domain disposable
// even when the blocklist has never heard of it.
var heuristicCatalogue = []*regexp.Regexp{
	// time-themed
	regexp.MustCompile(`\d+(min|hour|day)`),
	regexp.MustCompile(`temp`),
	regexp.MustCompile(`short`),
	regexp.MustCompile(`instant`),
	regexp.MustCompile(`expir`),
	// action-themed
	regexp.MustCompile(`throw`),
	regexp.MustCompile(`trash`),
	regexp.MustCompile(`burn`),
	regexp.MustCompile(`drop`),
	regexp.MustCompile(`discard`),
	// purpose-themed
	regexp.MustCompile(`fake`),
	regexp.MustCompile(`spam`),
	regexp.MustCompile(`junk`),
	regexp.MustCompile(`dummy`),
	// privacy-themed
	regexp.MustCompile(`anon`),
	regexp.MustCompile(`hide`),
	regexp.MustCompile(`incognito`),
	regexp.MustCompile(`guerrilla`),
}

// riskyTLDs are free registrars favored by throwaway providers.
var riskyTLDs = map[string]struct{}{
	"tk": {}, "ml": {}, "ga": {}, "cf": {},
}

const (
	heuristicThreshold = 2
	digitRatioLimit    = 0.3
)

// DisposableChecker classifies domains as disposable via blocklist
// membership, subdomain inheritance, and name-shape heuristics.
type DisposableChecker struct {
	corpus *disposable.Corpus
	cache  *ttlcache.Cache[bool]
}

// NewDisposableChecker creates a checker over the given corpus with a
// 24-hour classification cache. A nil corpus uses the embedded fallback.
func NewDisposableChecker(corpus *disposable.Corpus) *DisposableChecker {
	if corpus == nil {
		corpus = disposable.Default()
	}
	return &DisposableChecker{
		corpus: corpus,
		cache:  ttlcache.New[bool](24 * time.Hour),
	}
}

// IsDisposable reports whether domain belongs to a disposable provider.
func (c *DisposableChecker) IsDisposable(domain string, useCache bool) bool {
	domain = strings.ToLower(domain)
	if !useCache {
		return c.classify(domain)
	}
	result, _ := c.cache.GetOrFill(domain, func() (bool, error) {
		return c.classify(domain), nil
	})
	return result
}

func (c *DisposableChecker) classify(domain string) bool {
	if c.corpus.Contains(domain) || c.corpus.ContainsParent(domain) {
		return true
	}
	for _, p := range suspiciousPatterns {
		if p.MatchString(domain) {
			return true
		}
	}
	if hasRiskyTLD(domain) {
		return true
	}
	if digitRatio(domain) > digitRatioLimit && strings.Contains(domain, "mail") {
		return true
	}
	return c.heuristicMatches(domain) >= heuristicThreshold
}

// RiskScore estimates how likely domain is disposable, 0-100.
// Blocklist membership is near-certain; heuristics accumulate.
func (c *DisposableChecker) RiskScore(domain string) int {
	domain = strings.ToLower(domain)
	if c.corpus.Contains(domain) || c.corpus.ContainsParent(domain) {
		return 95
	}

	score := 0
	for _, p := range suspiciousPatterns {
		if p.MatchString(domain) {
			score += 40
			break
		}
	}
	if hasRiskyTLD(domain) {
		score += 30
	}
	if digitRatio(domain) > digitRatioLimit && strings.Contains(domain, "mail") {
		score += 30
	}
	score += 20 * c.heuristicMatches(domain)

	if score > 100 {
		score = 100
	}
	return score
}

func (c *DisposableChecker) heuristicMatches(domain string) int {
	n := 0
	for _, p := range heuristicCatalogue {
		if p.MatchString(domain) {
			n++
		}
	}
	return n
}

func hasRiskyTLD(domain string) bool {
	dot := strings.LastIndex(domain, ".")
	if dot < 0 {
		return false
	}
	_, ok := riskyTLDs[domain[dot+1:]]
	return ok
}

func digitRatio(domain string) float64 {
	if domain == "" {
		return 0
	}
	digits := 0
	for i := 0; i < len(domain); i++ {
		if domain[i] >= '0' && domain[i] <= '9' {
			digits++
		}
	}
	return float64(digits) / float64(len(domain))
}
