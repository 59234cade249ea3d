// Package types contains the shared result types for the validation engine.
// This package does not import anything from other vivid-valid packages
// to avoid circular imports.
package types

// Status is the final verdict of a validation.
type Status = string

const (
	StatusValid   Status = "valid"
	StatusRisky   Status = "risky"
	StatusInvalid Status = "invalid"
	StatusError   Status = "error"
)

// Deliverability is the ternary outcome of the SMTP probe. Unknown is a
// first-class value: the dialogue completed without a definitive
// accept or reject.
type Deliverability = string

const (
	DeliverableYes     Deliverability = "yes"
	DeliverableNo      Deliverability = "no"
	DeliverableUnknown Deliverability = "unknown"
)

// Check names, in pipeline order, as they appear in ChecksPerformed.
const (
	CheckSyntax     = "syntax"
	CheckTypo       = "typo"
	CheckDisposable = "disposable"
	CheckDomain     = "domain"
	CheckMX         = "mx"
	CheckSMTP       = "smtp"
	CheckHealth     = "health"
)

// Factors breaks the verdict down into its contributing signals.
type Factors struct {
	Format         bool `json:"format"`
	Domain         bool `json:"domain"`
	MX             bool `json:"mx"`
	SMTP           bool `json:"smtp"`
	Reputation     int  `json:"reputation"`     // address reputation, 0-100
	Deliverability int  `json:"deliverability"` // MX-derived deliverability, 0-100
}

// DomainHealth reports the domain's mail-authentication posture.
// DKIM is never probed (the selector is unknown) and stays false; it is
// kept as a scoring input.
type DomainHealth struct {
	SPF         bool `json:"spf"`
	DKIM        bool `json:"dkim"`
	DMARC       bool `json:"dmarc"`
	Blacklisted bool `json:"blacklisted"`
	Reputation  int  `json:"reputation"` // 0-100
}

// ValidationResult is the engine's output record for one address. It is
// assembled by the coordinator from per-stage records and is observably
// immutable once returned.
type ValidationResult struct {
	Email string `json:"email"` // input echo

	SyntaxValid  bool `json:"syntax_valid"`
	DomainValid  bool `json:"domain_valid"`
	MXFound      bool `json:"mx_found"`
	Disposable   bool `json:"disposable"`
	TypoDetected bool `json:"typo_detected"`

	SMTPDeliverable Deliverability `json:"smtp_deliverable"`

	Suggestion      string `json:"suggestion,omitempty"`
	NormalizedEmail string `json:"normalized_email,omitempty"`
	GmailNormalized string `json:"gmail_normalized,omitempty"`
	IsRoleBased     bool   `json:"is_role_based"`
	HasPlusAlias    bool   `json:"has_plus_alias"`
	IsCatchAll      bool   `json:"is_catch_all"`
	IsInternational bool   `json:"is_international"`
	IsFreeProvider  bool   `json:"is_free_provider"`
	IsBusinessEmail bool   `json:"is_business_email"`

	Factors      Factors      `json:"factors"`
	DomainHealth DomainHealth `json:"domain_health"`

	SMTPServerBanner   string `json:"smtp_server_banner,omitempty"`
	SMTPServerResponse string `json:"smtp_server_response,omitempty"`
	TLSSupported       bool   `json:"tls_supported"`

	Score            int      `json:"score"`
	Status           Status   `json:"status"`
	Reason           string   `json:"reason"`
	ChecksPerformed  []string `json:"checks_performed"`
	ValidationTimeMs int64    `json:"validation_time_ms"`
}

// DomainLookup is the domain-resolution stage record.
type DomainLookup struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// MXLookup is the MX-resolution stage record. Hosts are sorted ascending
// by MX priority; an implicit-MX fallback (RFC 5321 §5.1) reports
// Found=true with an empty Hosts list and ImplicitHost set.
type MXLookup struct {
	Found        bool     `json:"found"`
	Hosts        []string `json:"hosts,omitempty"`
	ImplicitHost string   `json:"implicit_host,omitempty"`
	Score        int      `json:"deliverability_score"`
	Reason       string   `json:"reason,omitempty"`
}

// TypoCheck is the typo-corrector stage record.
type TypoCheck struct {
	TypoDetected bool     `json:"typo_detected"`
	Suggestion   string   `json:"suggestion,omitempty"`
	Corrections  []string `json:"corrections,omitempty"`
	Confidence   int      `json:"confidence"` // 0-100
	Issues       []string `json:"issues,omitempty"`
}

// SMTPProbe is the SMTP-prober stage record.
type SMTPProbe struct {
	Deliverable  Deliverability `json:"deliverable"`
	CatchAll     bool           `json:"catch_all"`
	Banner       string         `json:"banner,omitempty"`
	Response     string         `json:"response,omitempty"`
	TLSSupported bool           `json:"tls_supported"`
	Reason       string         `json:"reason,omitempty"`
}

// BulkError records a per-address failure inside a batch.
type BulkError struct {
	Email string `json:"email"`
	Error string `json:"error"`
}

// DomainCount is one entry of the per-domain breakdown in a bulk summary.
type DomainCount struct {
	Domain string `json:"domain"`
	Count  int    `json:"count"`
}

// ReasonCount is one entry of the common-reasons breakdown.
type ReasonCount struct {
	Reason string `json:"reason"`
	Count  int    `json:"count"`
}

// BulkSummary aggregates a batch of validation results.
type BulkSummary struct {
	StatusBreakdown map[Status]int `json:"status_breakdown"`
	DisposableCount int            `json:"disposable_count"`
	TypoCount       int            `json:"typo_count"`
	AverageScore    float64        `json:"average_score"`
	TopDomains      []DomainCount  `json:"top_domains"`
	CommonReasons   []ReasonCount  `json:"common_reasons"`
	Recommendations []string       `json:"recommendations,omitempty"`
}

// BulkReport is the bulk scheduler's output. Results preserve the order of
// the deduplicated input.
type BulkReport struct {
	Total             int                 `json:"total"`
	Processed         int                 `json:"processed"`
	DuplicatesRemoved int                 `json:"duplicates_removed"`
	Results           []*ValidationResult `json:"results"`
	Errors            []BulkError         `json:"errors"`
	ValidationTimeMs  int64               `json:"validation_time_ms"`
	Summary           BulkSummary         `json:"summary"`
}
