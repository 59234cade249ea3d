package vividvalid

import "time"

// Options control which stages run for a single validation and how.
// Syntax checking always runs and cannot be disabled, because a parsed
// address is a prerequisite for every other stage.
type Options struct {
	// CheckDomain enables A/AAAA resolution of the domain.
	CheckDomain bool
	// CheckMX enables the MX lookup.
	CheckMX bool
	// CheckSMTP enables the SMTP envelope probe. Requires CheckMX.
	CheckSMTP bool
	// CheckDisposable enables the disposable-domain classifier.
	CheckDisposable bool
	// CheckTypos enables the typo corrector.
	CheckTypos bool
	// StrictMode tightens the parser (no quoted locals, no plus
	// addressing), raises the verdict thresholds and switches the scorer
	// to its strict penalty set.
	StrictMode bool
	// AllowInternational accepts IDN domains. Default true.
	AllowInternational bool
	// SMTPTimeout is the whole-dialogue deadline for the probe.
	// Default 5s.
	SMTPTimeout time.Duration
	// SMTPFromDomain overrides the HELO / MAIL FROM domain.
	SMTPFromDomain string
	// EnableCache uses the shared TTL caches. Default true.
	EnableCache bool
}

// DefaultOptions returns the full pipeline with caching on and strict
// mode off.
func DefaultOptions() Options {
	return Options{
		CheckDomain:        true,
		CheckMX:            true,
		CheckSMTP:          true,
		CheckDisposable:    true,
		CheckTypos:         true,
		AllowInternational: true,
		SMTPTimeout:        5 * time.Second,
		EnableCache:        true,
	}
}

// BulkOptions configure the bulk scheduler.
type BulkOptions struct {
	Options

	// BatchSize is the chunk size; chunks are processed one after another
	// with a pacing delay in between. Default 10.
	BatchSize int
	// MaxConcurrency bounds in-flight validations inside a chunk.
	// Default 10.
	MaxConcurrency int
	// ChunkDelay is the pause between chunks, to avoid bursty load on
	// remote servers. Default 100ms.
	ChunkDelay time.Duration
	// Deduplicate removes case-insensitive duplicates before processing.
	// Default true.
	Deduplicate bool
}

// DefaultBulkOptions returns bulk defaults. The SMTP probe is off unless
// explicitly requested, since probing hundreds of mailboxes in one request
// is rarely intended.
func DefaultBulkOptions() BulkOptions {
	opts := DefaultOptions()
	opts.CheckSMTP = false
	return BulkOptions{
		Options:        opts,
		BatchSize:      10,
		MaxConcurrency: 10,
		ChunkDelay:     100 * time.Millisecond,
		Deduplicate:    true,
	}
}
