// Package typo holds the fixed corpora used by the typo corrector: a
// misspelling-to-canonical domain map, a TLD substitution map, and the
// whitelist of popular provider domains used as edit-distance targets.
// All three are process-wide constants.
package typo

// Misspellings maps well-known domain misspellings to their canonical form.
var Misspellings = map[string]string{
	"gmai.com":      "gmail.com",
	"gmal.com":      "gmail.com",
	"gmial.com":     "gmail.com",
	"gmali.com":     "gmail.com",
	"gamil.com":     "gmail.com",
	"gnail.com":     "gmail.com",
	"gmaill.com":    "gmail.com",
	"gmail.co":      "gmail.com",
	"gmailc.om":     "gmail.com",
	"googlemail.co": "googlemail.com",
	"yaho.com":      "yahoo.com",
	"yahooo.com":    "yahoo.com",
	"yhoo.com":      "yahoo.com",
	"yaoo.com":      "yahoo.com",
	"yahou.com":     "yahoo.com",
	"hotmai.com":    "hotmail.com",
	"hotmial.com":   "hotmail.com",
	"hotmil.com":    "hotmail.com",
	"hotamil.com":   "hotmail.com",
	"hotmall.com":   "hotmail.com",
	"outlok.com":    "outlook.com",
	"outloo.com":    "outlook.com",
	"outlool.com":   "outlook.com",
	"outook.com":    "outlook.com",
	"iclod.com":     "icloud.com",
	"icloud.co":     "icloud.com",
	"icoud.com":     "icloud.com",
	"protonmai.com": "protonmail.com",
	"protonmal.com": "protonmail.com",
	"aol.co":        "aol.com",
	"aoll.com":      "aol.com",
}

// TLDFixes maps a mistyped final label to its intended form. Applied to any
// domain that is not itself popular; the rest of the domain is kept as is.
var TLDFixes = map[string]string{
	"con":  "com",
	"cmo":  "com",
	"ocm":  "com",
	"cm":   "com",
	"vom":  "com",
	"comm": "com",
	"nte":  "net",
	"ner":  "net",
	"ogr":  "org",
	"orgg": "org",
}

// Popular is the whitelist of popular provider domains. These are the
// targets for bounded edit-distance search, and are themselves never
// "corrected".
var Popular = []string{
	"gmail.com",
	"googlemail.com",
	"yahoo.com",
	"yahoo.co.uk",
	"yahoo.fr",
	"yahoo.de",
	"outlook.com",
	"hotmail.com",
	"hotmail.co.uk",
	"live.com",
	"msn.com",
	"icloud.com",
	"me.com",
	"mac.com",
	"protonmail.com",
	"proton.me",
	"aol.com",
	"zoho.com",
	"yandex.com",
	"yandex.ru",
	"mail.com",
	"gmx.com",
	"gmx.net",
	"gmx.de",
	"fastmail.com",
	"tutanota.com",
	"qq.com",
	"163.com",
	"126.com",
}

var popularSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(Popular))
	for _, d := range Popular {
		m[d] = struct{}{}
	}
	return m
}()

// IsPopular reports whether domain is in the popular-provider whitelist.
func IsPopular(domain string) bool {
	_, ok := popularSet[domain]
	return ok
}
