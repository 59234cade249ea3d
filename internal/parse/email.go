// Package parse decomposes raw email addresses into their structural parts.
// It enforces RFC 5321/5322 shape rules with pragmatic relaxations and
// normalizes internationalized domains to their ASCII/Punycode form
// (IDNA2008) so that every later stage compares domains in one alphabet.
package parse

import (
	"net"
	"strings"

	"golang.org/x/net/idna"
)

// Options control which relaxations the parser applies.
type Options struct {
	// Strict rejects quoted local parts and plus-addressing.
	Strict bool
	// AllowInternational accepts non-ASCII domain labels and converts
	// them to Punycode. When false, any non-ASCII domain is rejected.
	AllowInternational bool
}

// Address is the internal representation of a parsed email address.
// It is immutable after construction; later pipeline stages only read it.
type Address struct {
	Raw           string // the original, trimmed input
	Local         string // the part before @, original spelling
	Domain        string // the part after @, lowercased ASCII/Punycode form
	DomainUnicode string // the part after @, Unicode form (for display)
	QuotedLocal   bool   // local part was a quoted string
	International bool   // original domain contained non-ASCII labels
	IPLiteral     bool   // domain is a bracketed IP literal
	Valid         bool
	Reason        string // rejection reason when Valid is false
}

// maxAddressLen is the total address cap. RFC 5321 limits the forward path
// to 256 octets including angle brackets; the mailbox itself may be 64+1+255.
const (
	maxAddressLen = 320
	maxLocalLen   = 64
	maxDomainLen  = 255
	maxLabelLen   = 63
)

// atext is the RFC 5321 dot-atom character set, besides letters and digits.
const atext = "!#$%&'*+/=?^_`{|}~-"

// Parse validates raw against the shape rules and returns the decomposed
// address. On rejection Valid is false and Reason names the failing rule;
// Raw is always populated.
func Parse(raw string, opts Options) Address {
	s := strings.TrimSpace(raw)
	a := Address{Raw: s}

	if s == "" {
		return reject(a, "address is empty")
	}
	if len(s) > maxAddressLen {
		return reject(a, "address exceeds 320 characters")
	}

	local, domain, reason := split(s)
	if reason != "" {
		return reject(a, reason)
	}
	a.Local = local

	if reason := a.checkLocal(local, opts); reason != "" {
		return reject(a, reason)
	}

	if reason := a.checkDomain(domain, opts); reason != "" {
		return reject(a, reason)
	}

	a.Valid = true
	return a
}

func reject(a Address, reason string) Address {
	a.Valid = false
	a.Reason = reason
	return a
}

// split separates the local and domain parts. A quoted local part may
// itself contain @, so the quoted form is carved out before the @ count
// is enforced.
func split(s string) (local, domain, reason string) {
	if strings.HasPrefix(s, `"`) {
		end := closingQuote(s)
		if end < 0 {
			return "", "", "unterminated quoted local part"
		}
		if end+1 >= len(s) || s[end+1] != '@' {
			return "", "", "address must contain exactly one @"
		}
		local = s[:end+1]
		domain = s[end+2:]
		if strings.Contains(domain, "@") {
			return "", "", "address must contain exactly one @"
		}
		return local, domain, ""
	}

	if strings.Count(s, "@") != 1 {
		return "", "", "address must contain exactly one @"
	}
	at := strings.Index(s, "@")
	return s[:at], s[at+1:], ""
}

// closingQuote returns the index of the quote that terminates the quoted
// string starting at s[0], honoring backslash escapes. Returns -1 when the
// quote is never closed.
func closingQuote(s string) int {
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++ // skip escaped character
		case '"':
			return i
		}
	}
	return -1
}

func (a *Address) checkLocal(local string, opts Options) string {
	if local == "" {
		return "local part is empty"
	}
	if len(local) > maxLocalLen {
		return "local part exceeds 64 characters"
	}

	if strings.HasPrefix(local, `"`) && strings.HasSuffix(local, `"`) && len(local) >= 2 {
		if opts.Strict {
			return "quoted local parts are not allowed in strict mode"
		}
		a.QuotedLocal = true
		return checkQuotedLocal(local)
	}

	if opts.Strict && strings.Contains(local, "+") {
		return "plus addressing is not allowed in strict mode"
	}

	if strings.HasPrefix(local, ".") || strings.HasSuffix(local, ".") {
		return "local part cannot start or end with a dot"
	}
	if strings.Contains(local, "..") {
		return "local part cannot contain consecutive dots"
	}

	for i := 0; i < len(local); i++ {
		ch := local[i]
		if ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch >= '0' && ch <= '9' || ch == '.' {
			continue
		}
		if ch == ' ' {
			return "local part contains unescaped space"
		}
		if !strings.ContainsRune(atext, rune(ch)) {
			return "local part contains invalid character: " + string(ch)
		}
	}
	return ""
}

// checkQuotedLocal validates the content between the quotes. All printable
// characters are allowed there; control characters are not.
func checkQuotedLocal(local string) string {
	inner := local[1 : len(local)-1]
	for i := 0; i < len(inner); i++ {
		if inner[i] < 0x20 || inner[i] == 0x7f {
			return "quoted local part contains control character"
		}
	}
	return ""
}

func (a *Address) checkDomain(domain string, opts Options) string {
	if domain == "" {
		return "domain is empty"
	}
	if len(domain) > maxDomainLen {
		return "domain exceeds 255 characters"
	}

	// Bracketed IP literal: [192.0.2.1] or [IPv6:...]
	if strings.HasPrefix(domain, "[") && strings.HasSuffix(domain, "]") {
		return a.checkIPLiteral(domain)
	}

	lower := strings.ToLower(domain)

	if hasNonASCII(lower) {
		if !opts.AllowInternational {
			return "internationalized domains are not allowed"
		}
		ascii, err := idna.Lookup.ToASCII(lower)
		if err != nil {
			return "domain failed IDNA conversion"
		}
		a.International = true
		a.DomainUnicode = lower
		lower = ascii
	} else {
		// Existing Punycode labels get a Unicode display form. The
		// international flag tracks the original spelling only.
		if u, err := idna.Display.ToUnicode(lower); err == nil {
			a.DomainUnicode = u
		} else {
			a.DomainUnicode = lower
		}
	}

	// Re-validate the ASCII form label by label.
	if reason := checkLabels(lower); reason != "" {
		return reason
	}

	a.Domain = lower
	return ""
}

func (a *Address) checkIPLiteral(domain string) string {
	inner := domain[1 : len(domain)-1]
	if v6 := strings.TrimPrefix(inner, "IPv6:"); v6 != inner {
		ip := net.ParseIP(v6)
		if ip == nil || ip.To4() != nil {
			return "invalid IPv6 address literal"
		}
	} else {
		ip := net.ParseIP(inner)
		if ip == nil || ip.To4() == nil {
			return "invalid IPv4 address literal"
		}
	}
	a.IPLiteral = true
	a.Domain = strings.ToLower(domain)
	a.DomainUnicode = a.Domain
	return ""
}

func checkLabels(domain string) string {
	labels := strings.Split(domain, ".")
	if len(labels) < 2 {
		return "domain must have at least two labels"
	}
	for _, label := range labels {
		if label == "" {
			return "domain contains empty label (consecutive dots)"
		}
		if len(label) > maxLabelLen {
			return "domain label exceeds 63 characters"
		}
		if strings.HasPrefix(label, "-") || strings.HasSuffix(label, "-") {
			return "domain label cannot start or end with a hyphen"
		}
		for i := 0; i < len(label); i++ {
			ch := label[i]
			if ch >= 'a' && ch <= 'z' || ch >= '0' && ch <= '9' || ch == '-' {
				continue
			}
			return "domain label contains invalid character: " + string(ch)
		}
	}

	// The rightmost label must look like a TLD: alphabetic and at least
	// two bytes. Punycode TLDs (xn--...) carry digits and hyphens and are
	// exempt from the alphabetic rule.
	tld := labels[len(labels)-1]
	if strings.HasPrefix(tld, "xn--") {
		return ""
	}
	if len(tld) < 2 {
		return "top-level domain must be at least 2 characters"
	}
	for i := 0; i < len(tld); i++ {
		if tld[i] < 'a' || tld[i] > 'z' {
			return "top-level domain must be alphabetic"
		}
	}
	return ""
}

func hasNonASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 127 {
			return true
		}
	}
	return false
}
