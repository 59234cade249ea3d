package vividvalid

import (
	"strings"

	"github.com/jaainil/vivid-valid/types"
)

// Verdict thresholds. Strict mode raises the bar.
const (
	ValidThreshold       = 85
	RiskyThreshold       = 65
	StrictValidThreshold = 90
	StrictRiskyThreshold = 70
)

// scoreWeights are the positive signal contributions.
const (
	weightSyntax      = 25
	weightDomain      = 20
	weightMX          = 25
	weightSMTPYes     = 20
	weightSMTPUnknown = 5
	weightSPF         = 5
	weightDMARC       = 7
	weightDKIM        = 3
	weightTLS         = 5
	weightBusiness    = 10
)

// penalty pairs: default and strict coefficients.
var penalties = struct {
	disposable  [2]int
	blacklisted [2]int
	roleBased   [2]int
	freeMail    [2]int
	typo        [2]int
}{
	disposable:  [2]int{40, 50},
	blacklisted: [2]int{50, 60},
	roleBased:   [2]int{15, 25},
	freeMail:    [2]int{5, 10},
	typo:        [2]int{15, 25},
}

// computeScore derives the confidence score from the assembled result.
// It is a pure function of the result record: scoring the same record
// twice yields the same value.
func computeScore(r *types.ValidationResult, strict bool) int {
	mode := 0
	if strict {
		mode = 1
	}

	score := 0
	if r.SyntaxValid {
		score += weightSyntax
	}
	if r.DomainValid {
		score += weightDomain
	}
	if r.MXFound {
		score += weightMX
	}

	switch r.SMTPDeliverable {
	case types.DeliverableYes:
		score += weightSMTPYes
	case types.DeliverableUnknown:
		score += weightSMTPUnknown
	}

	if r.DomainHealth.SPF {
		score += weightSPF
	}
	if r.DomainHealth.DMARC {
		score += weightDMARC
	}
	if r.DomainHealth.DKIM {
		score += weightDKIM
	}

	if r.Disposable {
		score -= penalties.disposable[mode]
	}
	if r.DomainHealth.Blacklisted {
		score -= penalties.blacklisted[mode]
	}
	if r.IsRoleBased {
		score -= penalties.roleBased[mode]
	}
	if r.IsFreeProvider {
		score -= penalties.freeMail[mode]
	}
	if r.TypoDetected && r.Suggestion != "" {
		score -= penalties.typo[mode]
	}

	if r.TLSSupported {
		score += weightTLS
	}

	score += (r.DomainHealth.Reputation - 50) / 5

	if r.IsBusinessEmail {
		score += weightBusiness
	}

	return clamp(score)
}

// addressReputation scores the local part's shape, blended with half the
// domain's deviation from neutral.
func addressReputation(local string, domainReputation int) int {
	score := 50
	l := strings.ToLower(local)

	if strings.Contains(l, "noreply") || strings.Contains(l, "no-reply") {
		score -= 20
	}
	if strings.Contains(l, "test") || strings.Contains(l, "demo") {
		score -= 15
	}
	if hasDigitRun(l, 5) {
		score -= 10
	}
	if len(l) < 3 {
		score -= 10
	}
	if len(l) > 20 {
		score -= 5
	}

	score += (domainReputation - 50) / 2

	return clamp(score)
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
