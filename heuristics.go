package vividvalid

import "strings"

// roleLocals identify mailboxes addressed to a function rather than a
// person.
var roleLocals = map[string]struct{}{
	"admin": {}, "administrator": {}, "support": {}, "info": {},
	"contact": {}, "sales": {}, "marketing": {}, "help": {},
	"office": {}, "mail": {}, "postmaster": {}, "webmaster": {},
	"hostmaster": {}, "abuse": {}, "noreply": {}, "no-reply": {},
	"billing": {}, "hr": {}, "jobs": {}, "careers": {},
	"security": {}, "privacy": {}, "legal": {}, "newsletter": {},
}

// freeProviders are consumer mailbox providers.
var freeProviders = map[string]struct{}{
	"gmail.com": {}, "googlemail.com": {},
	"yahoo.com": {}, "yahoo.co.uk": {}, "yahoo.fr": {}, "yahoo.de": {},
	"outlook.com": {}, "hotmail.com": {}, "hotmail.co.uk": {},
	"live.com": {}, "msn.com": {},
	"icloud.com": {}, "me.com": {}, "mac.com": {},
	"protonmail.com": {}, "proton.me": {},
	"aol.com": {}, "zoho.com": {},
	"yandex.com": {}, "yandex.ru": {},
	"mail.com": {}, "gmx.com": {}, "gmx.net": {}, "gmx.de": {},
	"qq.com": {}, "163.com": {}, "126.com": {},
}

// gmailFamily domains share Gmail's dot- and plus-insensitive routing.
var gmailFamily = map[string]struct{}{
	"gmail.com": {}, "googlemail.com": {},
}

func isRoleBased(local string) bool {
	base := strings.ToLower(local)
	if plus := strings.Index(base, "+"); plus >= 0 {
		base = base[:plus]
	}
	_, ok := roleLocals[base]
	return ok
}

func isFreeProvider(domain string) bool {
	_, ok := freeProviders[domain]
	return ok
}

// gmailNormalize maps a Gmail-family address to its canonical inbox:
// dots in the local part are insignificant, a +tag is routing only, and
// googlemail.com is an alias of gmail.com.
func gmailNormalize(local, domain string) string {
	if _, ok := gmailFamily[domain]; !ok {
		return ""
	}
	l := strings.ToLower(local)
	if plus := strings.Index(l, "+"); plus >= 0 {
		l = l[:plus]
	}
	l = strings.ReplaceAll(l, ".", "")
	return l + "@gmail.com"
}

// hasDigitRun reports whether s contains n or more consecutive digits.
func hasDigitRun(s string, n int) bool {
	run := 0
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			run++
			if run >= n {
				return true
			}
		} else {
			run = 0
		}
	}
	return false
}
