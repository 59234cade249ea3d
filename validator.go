package vividvalid

import (
	"context"
	"io"
	"net"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jaainil/vivid-valid/check"
	"github.com/jaainil/vivid-valid/internal/disposable"
	"github.com/jaainil/vivid-valid/internal/parse"
	"github.com/jaainil/vivid-valid/internal/ratelimit"
	"github.com/jaainil/vivid-valid/internal/resultcache"
	"github.com/jaainil/vivid-valid/types"
)

// Config wires the engine together. The zero value is usable: embedded
// corpora, system resolver, in-memory caches, discarded logs.
type Config struct {
	// DisposableListPath points at a line-delimited blocklist file.
	// A missing file is non-fatal; the embedded fallback list is used.
	DisposableListPath string
	// SMTPFromDomain is the default HELO / MAIL FROM domain.
	SMTPFromDomain string
	// SMTPPort overrides the probe port (default 25).
	SMTPPort string
	// DNSTimeout bounds individual DNS lookups (default 5s).
	DNSTimeout time.Duration
	// Logger for engine diagnostics. Nil discards.
	Logger *logrus.Logger
	// RateLimiter, when set, throttles outbound SMTP probes.
	RateLimiter *ratelimit.Manager
	// BulkCache stores completed results for the bulk scheduler.
	// Nil uses an in-memory cache with a 30 minute TTL.
	BulkCache resultcache.Cache
	// Dial is injectable for testing the SMTP probe.
	Dial func(network, address string, timeout time.Duration) (net.Conn, error)
	// Resolver and Health override the DNS stages (for testing).
	Resolver *check.Resolver
	Health   *check.HealthChecker
}

// Validator is the coordinator: it drives the pipeline stages in a fixed
// order, folds their records into one ValidationResult, and computes the
// final score and status. It is stateless across requests and safe for
// concurrent use.
type Validator struct {
	typo       *check.TypoChecker
	disposable *check.DisposableChecker
	resolver   *check.Resolver
	health     *check.HealthChecker
	proberCfg  check.ProberConfig
	bulkCache  resultcache.Cache
	log        *logrus.Logger
}

// New creates a Validator from cfg.
func New(cfg Config) *Validator {
	log := cfg.Logger
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}

	corpus := disposable.Default()
	if cfg.DisposableListPath != "" {
		loaded, err := disposable.Load(cfg.DisposableListPath)
		if err != nil {
			log.WithError(err).WithField("path", cfg.DisposableListPath).
				Warn("disposable list not loaded, using embedded fallback")
		}
		corpus = loaded
	}

	resolver := cfg.Resolver
	if resolver == nil {
		resolver = check.NewResolver(check.ResolverConfig{Timeout: cfg.DNSTimeout})
	}
	health := cfg.Health
	if health == nil {
		health = check.NewHealthChecker(check.HealthConfig{Timeout: cfg.DNSTimeout})
	}
	bulkCache := cfg.BulkCache
	if bulkCache == nil {
		bulkCache = resultcache.NewMemory(30 * time.Minute)
	}

	return &Validator{
		typo:       check.NewTypoChecker(),
		disposable: check.NewDisposableChecker(corpus),
		resolver:   resolver,
		health:     health,
		proberCfg: check.ProberConfig{
			FromDomain: cfg.SMTPFromDomain,
			Port:       cfg.SMTPPort,
			Limiter:    cfg.RateLimiter,
			Dial:       cfg.Dial,
		},
		bulkCache: bulkCache,
		log:       log,
	}
}

// Validate runs the pipeline on one address. Stage failures fold into the
// result; the method itself never fails.
func (v *Validator) Validate(ctx context.Context, email string, opts Options) *types.ValidationResult {
	start := time.Now()
	res := &types.ValidationResult{
		Email:           email,
		SMTPDeliverable: types.DeliverableUnknown,
	}

	addr := parse.Parse(email, parse.Options{
		Strict:             opts.StrictMode,
		AllowInternational: opts.AllowInternational,
	})
	res.ChecksPerformed = append(res.ChecksPerformed, types.CheckSyntax)
	if !addr.Valid {
		res.SMTPDeliverable = types.DeliverableNo
		res.Status = types.StatusInvalid
		res.Reason = addr.Reason
		return v.finish(res, addr, opts, start)
	}

	res.SyntaxValid = true
	res.Factors.Format = true
	res.IsInternational = addr.International
	res.NormalizedEmail = strings.ToLower(addr.Local) + "@" + addr.Domain
	if !addr.QuotedLocal {
		res.GmailNormalized = gmailNormalize(addr.Local, addr.Domain)
		res.HasPlusAlias = strings.Contains(addr.Local, "+")
	}
	res.IsRoleBased = isRoleBased(addr.Local)
	res.IsFreeProvider = isFreeProvider(addr.Domain)

	if opts.CheckTypos {
		tc := v.typo.Suggest(addr.Raw, opts.EnableCache)
		res.TypoDetected = tc.TypoDetected
		res.Suggestion = tc.Suggestion
		res.ChecksPerformed = append(res.ChecksPerformed, types.CheckTypo)
	}

	if opts.CheckDisposable {
		res.Disposable = v.disposable.IsDisposable(addr.Domain, opts.EnableCache)
		res.ChecksPerformed = append(res.ChecksPerformed, types.CheckDisposable)
	}

	// A bracketed IP literal has nothing to resolve: the literal itself is
	// the mail host.
	mxTarget := ""
	if addr.IPLiteral {
		res.DomainValid = true
		res.MXFound = true
		res.Factors.Deliverability = 60
		mxTarget = ipLiteralHost(addr.Domain)
	} else {
		if opts.CheckDomain {
			res.ChecksPerformed = append(res.ChecksPerformed, types.CheckDomain)
			dl := v.resolver.ResolveDomain(ctx, addr.Domain, opts.EnableCache)
			res.DomainValid = dl.Valid
			if !dl.Valid {
				res.SMTPDeliverable = types.DeliverableNo
				res.Status = types.StatusInvalid
				res.Reason = dl.Reason
				return v.finish(res, addr, opts, start)
			}
		} else {
			// A skipped stage is assumed to pass; it contributes its
			// weight but performs no I/O.
			res.DomainValid = true
		}

		if opts.CheckMX {
			res.ChecksPerformed = append(res.ChecksPerformed, types.CheckMX)
			mx := v.resolver.ResolveMX(ctx, addr.Domain, opts.EnableCache)
			res.MXFound = mx.Found
			res.Factors.Deliverability = mx.Score
			if len(mx.Hosts) > 0 {
				mxTarget = mx.Hosts[0]
			} else {
				mxTarget = mx.ImplicitHost
			}
			if !mx.Found {
				res.SMTPDeliverable = types.DeliverableNo
			}
		} else {
			res.MXFound = true
		}
	}
	res.Factors.Domain = res.DomainValid
	res.Factors.MX = res.MXFound

	if opts.CheckSMTP && res.MXFound && mxTarget != "" {
		res.ChecksPerformed = append(res.ChecksPerformed, types.CheckSMTP)
		probe := v.prober(opts).Probe(ctx, res.NormalizedEmail, addr.Domain, mxTarget)
		res.SMTPDeliverable = probe.Deliverable
		res.IsCatchAll = probe.CatchAll
		res.SMTPServerBanner = probe.Banner
		res.SMTPServerResponse = probe.Response
		if res.SMTPServerResponse == "" {
			res.SMTPServerResponse = probe.Reason
		}
		res.TLSSupported = probe.TLSSupported
		res.Factors.SMTP = probe.Deliverable == types.DeliverableYes
	}

	if !addr.IPLiteral {
		res.ChecksPerformed = append(res.ChecksPerformed, types.CheckHealth)
		res.DomainHealth = v.health.Check(ctx, addr.Domain, opts.EnableCache)
	} else {
		res.DomainHealth = types.DomainHealth{Reputation: 50}
	}

	res.IsBusinessEmail = res.DomainValid && res.MXFound &&
		!res.Disposable && !res.IsFreeProvider && !res.IsRoleBased

	return v.finish(res, addr, opts, start)
}

// finish computes reputation, score and status, and stamps the duration.
func (v *Validator) finish(res *types.ValidationResult, addr parse.Address, opts Options, start time.Time) *types.ValidationResult {
	rep := res.DomainHealth.Reputation
	if rep == 0 {
		rep = 50 // health never ran; neutral domain
	}
	res.Factors.Reputation = addressReputation(addr.Local, rep)
	res.Score = computeScore(res, opts.StrictMode)

	if res.Status == "" {
		v.verdict(res, opts)
	}

	res.ValidationTimeMs = time.Since(start).Milliseconds()
	return res
}

// verdict applies the status table, top-down, first match wins.
func (v *Validator) verdict(res *types.ValidationResult, opts Options) {
	validAt, riskyAt := ValidThreshold, RiskyThreshold
	if opts.StrictMode {
		validAt, riskyAt = StrictValidThreshold, StrictRiskyThreshold
	}

	switch {
	case res.Disposable:
		res.Status = types.StatusRisky
		res.Reason = "Disposable email address detected"
	case res.DomainHealth.Blacklisted:
		res.Status = types.StatusInvalid
		res.Reason = "Domain is blacklisted"
	case !res.SyntaxValid || !res.DomainValid:
		res.Status = types.StatusInvalid
		if res.Reason == "" {
			res.Reason = "Email address failed validation"
		}
	case !res.MXFound:
		res.Status = types.StatusInvalid
		res.Reason = "Domain cannot receive emails (no MX records)"
	case res.Score >= validAt:
		res.Status = types.StatusValid
		res.Reason = "Email appears to be valid and deliverable"
	case res.Score >= riskyAt:
		res.Status = types.StatusRisky
		res.Reason = "Email may be risky - proceed with caution"
	default:
		res.Status = types.StatusInvalid
		res.Reason = "Email is likely invalid or undeliverable"
	}
}

// prober builds the probe configuration for one request, applying
// per-request overrides to the engine defaults.
func (v *Validator) prober(opts Options) *check.Prober {
	cfg := v.proberCfg
	if opts.SMTPTimeout > 0 {
		cfg.Timeout = opts.SMTPTimeout
	}
	if opts.SMTPFromDomain != "" {
		cfg.FromDomain = opts.SMTPFromDomain
	}
	return check.NewProber(cfg)
}

// ipLiteralHost extracts the dialable host from a bracketed IP literal.
func ipLiteralHost(domain string) string {
	host := strings.TrimSuffix(strings.TrimPrefix(domain, "["), "]")
	return strings.TrimPrefix(host, "ipv6:")
}
