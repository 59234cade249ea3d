package check

import (
	"context"
	"fmt"
	"net"
	"sort"
	"strings"
	"time"

	"golang.org/x/net/idna"

	"github.com/jaainil/vivid-valid/internal/ttlcache"
	"github.com/jaainil/vivid-valid/types"
)

// ResolverConfig is the DNS resolution configuration.
type ResolverConfig struct {
	Timeout  time.Duration // per-lookup timeout, default 5s
	CacheTTL time.Duration // default 5m
}

// providerSubstrings in an MX exchange indicate professionally hosted mail.
var providerSubstrings = []string{
	"google.com", "outlook.com", "microsoft.com", "amazon.com",
}

// Deliverability score contributions for the MX stage.
const (
	mxBaseScore       = 70
	mxMultiBonus      = 10 // more than one MX
	mxRedundantBonus  = 5  // more than two
	mxProviderBonus   = 15 // hosted at a major provider
	implicitMXScore   = 60 // A-record fallback per RFC 5321 §5.1
	maxDeliverability = 100
)

// Resolver performs A/AAAA and MX resolution with TTL-bounded caches.
// Lookups are injectable for testability.
type Resolver struct {
	cfg        ResolverConfig
	lookupMX   func(ctx context.Context, domain string) ([]*net.MX, error)
	lookupHost func(ctx context.Context, domain string) ([]string, error)

	domainCache *ttlcache.Cache[types.DomainLookup]
	mxCache     *ttlcache.Cache[types.MXLookup]
}

// NewResolver creates a resolver backed by the system resolver.
func NewResolver(cfg ResolverConfig) *Resolver {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	r := &net.Resolver{}
	return &Resolver{
		cfg:         cfg,
		lookupMX:    r.LookupMX,
		lookupHost:  r.LookupHost,
		domainCache: ttlcache.New[types.DomainLookup](cfg.CacheTTL),
		mxCache:     ttlcache.New[types.MXLookup](cfg.CacheTTL),
	}
}

// NewResolverWithLookups overrides the lookup functions (for testing).
func NewResolverWithLookups(
	cfg ResolverConfig,
	lookupMX func(ctx context.Context, domain string) ([]*net.MX, error),
	lookupHost func(ctx context.Context, domain string) ([]string, error),
) *Resolver {
	r := NewResolver(cfg)
	r.lookupMX = lookupMX
	r.lookupHost = lookupHost
	return r
}

// ResolveDomain reports whether domain resolves to at least one address.
func (r *Resolver) ResolveDomain(ctx context.Context, domain string, useCache bool) types.DomainLookup {
	domain = toASCII(domain)
	if !useCache {
		return r.resolveDomain(ctx, domain)
	}
	result, _ := r.domainCache.GetOrFill(domain, func() (types.DomainLookup, error) {
		return r.resolveDomain(ctx, domain), nil
	})
	return result
}

func (r *Resolver) resolveDomain(ctx context.Context, domain string) types.DomainLookup {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	addrs, err := r.lookupHost(ctx, domain)
	if err != nil || len(addrs) == 0 {
		return types.DomainLookup{Valid: false, Reason: "domain does not resolve"}
	}
	return types.DomainLookup{Valid: true}
}

// ResolveMX looks up the domain's mail exchangers, sorted ascending by
// priority. When no MX exists but the domain has an A record, the domain
// itself is the implicit exchanger with a reduced deliverability score.
func (r *Resolver) ResolveMX(ctx context.Context, domain string, useCache bool) types.MXLookup {
	domain = toASCII(domain)
	if !useCache {
		return r.resolveMX(ctx, domain)
	}
	result, _ := r.mxCache.GetOrFill(domain, func() (types.MXLookup, error) {
		return r.resolveMX(ctx, domain), nil
	})
	return result
}

func (r *Resolver) resolveMX(ctx context.Context, domain string) types.MXLookup {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	records, err := r.lookupMX(ctx, domain)
	if err != nil || len(records) == 0 {
		// RFC 5321 §5.1: no MX means the address record, if any, is the
		// implicit mail exchanger.
		addrs, aErr := r.lookupHost(ctx, domain)
		if aErr == nil && len(addrs) > 0 {
			return types.MXLookup{
				Found:        true,
				ImplicitHost: domain,
				Score:        implicitMXScore,
				Reason:       "no MX records, falling back to A record",
			}
		}
		reason := "no MX records found"
		if err != nil {
			reason = fmt.Sprintf("MX lookup failed: %v", err)
		}
		return types.MXLookup{Found: false, Reason: reason}
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Pref < records[j].Pref
	})

	hosts := make([]string, len(records))
	for i, rec := range records {
		hosts[i] = strings.TrimSuffix(rec.Host, ".")
	}

	return types.MXLookup{
		Found: true,
		Hosts: hosts,
		Score: deliverabilityScore(hosts),
	}
}

func deliverabilityScore(hosts []string) int {
	score := mxBaseScore
	if len(hosts) > 1 {
		score += mxMultiBonus
	}
	if len(hosts) > 2 {
		score += mxRedundantBonus
	}
	for _, h := range hosts {
		if isProviderHosted(h) {
			score += mxProviderBonus
			break
		}
	}
	if score > maxDeliverability {
		score = maxDeliverability
	}
	return score
}

func isProviderHosted(host string) bool {
	host = strings.ToLower(host)
	for _, p := range providerSubstrings {
		if strings.Contains(host, p) {
			return true
		}
	}
	return false
}

// toASCII normalizes a possibly-Unicode domain to its Punycode form.
// Parsed addresses arrive already converted; this keeps direct callers safe.
func toASCII(domain string) string {
	ascii, err := idna.Lookup.ToASCII(strings.ToLower(domain))
	if err != nil {
		return strings.ToLower(domain)
	}
	return ascii
}
