package check

import (
	"context"
	"net"
	"strings"
	"time"

	"github.com/jaainil/vivid-valid/internal/ttlcache"
	"github.com/jaainil/vivid-valid/types"
)

// trustedProviders get a large reputation head start.
var trustedProviders = map[string]struct{}{
	"gmail.com":      {},
	"outlook.com":    {},
	"yahoo.com":      {},
	"hotmail.com":    {},
	"icloud.com":     {},
	"aol.com":        {},
	"protonmail.com": {},
}

// Blacklist is the static set of disallowed domains. A real-time RBL
// integration would replace this set; the hook is kept deliberately small
// until then.
var Blacklist = map[string]struct{}{
	"spam-domain.com":     {},
	"blacklisted.example": {},
	"phishing.invalid":    {},
	"malicious.test":      {},
}

// commonTLDs are the unremarkable registries; anything else nudges the
// corporate heuristic.
var commonTLDs = map[string]struct{}{
	"com": {}, "net": {}, "org": {}, "edu": {}, "gov": {}, "mil": {},
	"int": {}, "info": {}, "biz": {}, "io": {}, "co": {}, "me": {},
	"us": {}, "uk": {}, "de": {}, "fr": {}, "ca": {}, "au": {},
}

// Reputation contributions for the health probe.
const (
	reputationBase  = 50
	trustedBonus    = 40
	corporateBonus  = 20
	spfBonus        = 5
	dkimBonus       = 5
	dmarcBonus      = 10
	riskyTLDPenalty = 30
)

// HealthConfig is the health probe configuration.
type HealthConfig struct {
	Timeout  time.Duration // per-lookup timeout, default 5s
	CacheTTL time.Duration // default 5m
}

// HealthChecker probes a domain's mail-authentication records (SPF, DMARC)
// and derives a reputation score. DKIM needs a selector the prober cannot
// know, so it is recorded as absent.
type HealthChecker struct {
	cfg       HealthConfig
	lookupTXT func(ctx context.Context, name string) ([]string, error)
	cache     *ttlcache.Cache[types.DomainHealth]
}

// NewHealthChecker creates a checker backed by the system resolver.
func NewHealthChecker(cfg HealthConfig) *HealthChecker {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	r := &net.Resolver{}
	return &HealthChecker{
		cfg:       cfg,
		lookupTXT: r.LookupTXT,
		cache:     ttlcache.New[types.DomainHealth](cfg.CacheTTL),
	}
}

// NewHealthCheckerWithLookup overrides the TXT lookup (for testing).
func NewHealthCheckerWithLookup(cfg HealthConfig, lookupTXT func(ctx context.Context, name string) ([]string, error)) *HealthChecker {
	h := NewHealthChecker(cfg)
	h.lookupTXT = lookupTXT
	return h
}

// Check probes domain and returns its health record. TXT lookups that fail
// are treated as "record not present"; they never fail the validation.
func (h *HealthChecker) Check(ctx context.Context, domain string, useCache bool) types.DomainHealth {
	domain = strings.ToLower(domain)
	if !useCache {
		return h.check(ctx, domain)
	}
	result, _ := h.cache.GetOrFill(domain, func() (types.DomainHealth, error) {
		return h.check(ctx, domain), nil
	})
	return result
}

func (h *HealthChecker) check(ctx context.Context, domain string) types.DomainHealth {
	ctx, cancel := context.WithTimeout(ctx, h.cfg.Timeout)
	defer cancel()

	health := types.DomainHealth{
		SPF:   h.hasTXTPrefix(ctx, domain, "v=spf1"),
		DMARC: h.hasTXTPrefix(ctx, "_dmarc."+domain, "v=DMARC1"),
	}
	_, health.Blacklisted = Blacklist[domain]
	health.Reputation = reputation(domain, health)
	return health
}

func (h *HealthChecker) hasTXTPrefix(ctx context.Context, name, prefix string) bool {
	records, err := h.lookupTXT(ctx, name)
	if err != nil {
		return false
	}
	for _, r := range records {
		if strings.HasPrefix(strings.TrimSpace(r), prefix) {
			return true
		}
	}
	return false
}

func reputation(domain string, health types.DomainHealth) int {
	score := reputationBase

	if _, ok := trustedProviders[domain]; ok {
		score += trustedBonus
	}
	if looksCorporate(domain) {
		score += corporateBonus
	}
	if health.SPF {
		score += spfBonus
	}
	if health.DKIM {
		score += dkimBonus
	}
	if health.DMARC {
		score += dmarcBonus
	}
	if hasRiskyTLD(domain) {
		score -= riskyTLDPenalty
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

func looksCorporate(domain string) bool {
	if strings.Contains(domain, "corp") || strings.Contains(domain, "company") {
		return true
	}
	dot := strings.LastIndex(domain, ".")
	if dot < 0 {
		return false
	}
	_, common := commonTLDs[domain[dot+1:]]
	return !common
}
