package pass

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	attributedPolicyOnce sync.Once
	attributedPolicy     *bluemonday.Policy
)

// SanitizeAttributedValue strips everything from an attributed value except
// text and <a href> links, which is all the wallet platform renders. It is the
// default sanitiser used by Request.Write.
func SanitizeAttributedValue(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(attributedSanitizer().Sanitize(trimmed))
}

func attributedSanitizer() *bluemonday.Policy {
	attributedPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.RequireParseableURLs(true)
		policy.AllowURLSchemes("http", "https", "mailto", "tel")
		policy.AllowAttrs("href").OnElements("a")
		attributedPolicy = policy
	})
	return attributedPolicy
}
