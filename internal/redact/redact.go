// Package redact strips sensitive substrings from free text before it is
// persisted or transmitted. Redaction is irreversible: matches are replaced
// with a fixed placeholder, never stored in original form.
package redact

import "regexp"

// Placeholder replaces every match except bearer tokens, which keep their
// scheme prefix.
const Placeholder = "[REDACTED]"

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// rules apply in order with global replacement. The order is part of the
// contract: long digit runs must be claimed by the card rule before the
// phone rule can see them, and UUIDs are consumed before the path rule so
// a UUID-bearing home path redacts the same way every time.
var rules = []rule{
	// Email addresses.
	{regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`), Placeholder},
	// Payment-card-shaped runs: 13-19 digits with optional separators.
	{regexp.MustCompile(`\b\d(?:[ -]?\d){12,18}\b`), Placeholder},
	// SSN-shaped ###-##-####.
	{regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`), Placeholder},
	// Phone-number-shaped sequences.
	{regexp.MustCompile(`(?:\+\d{1,3}[ .-]?)?\(?\d{3}\)?[ .-]?\d{3}[ .-]?\d{4}\b`), Placeholder},
	// IPv4 addresses.
	{regexp.MustCompile(`\b\d{1,3}(?:\.\d{1,3}){3}\b`), Placeholder},
	// IPv6 addresses, full or ::-compressed. At least four groups are
	// required for the full form so hh:mm:ss timestamps survive.
	{regexp.MustCompile(`\b(?:[0-9A-Fa-f]{1,4}:){3,7}[0-9A-Fa-f]{1,4}\b|\b[0-9A-Fa-f]{1,4}::[0-9A-Fa-f:]*[0-9A-Fa-f]\b`), Placeholder},
	// JWT-shaped base64url triples.
	{regexp.MustCompile(`\b[A-Za-z0-9_-]{8,}\.[A-Za-z0-9_-]{8,}\.[A-Za-z0-9_-]{8,}\b`), Placeholder},
	// Bearer tokens embedded in text; the scheme prefix survives.
	{regexp.MustCompile(`(?i)\bBearer\s+[A-Za-z0-9._~+/=-]+`), "Bearer " + Placeholder},
	// key=value / key: value pairs whose key looks like a secret.
	{regexp.MustCompile(`(?i)((?:password|passwd|secret|token|api[_-]?key|apikey|auth|credentials?|access[_-]?key|private[_-]?key)["']?\s*[=:]\s*["']?)[^\s"'&,;]+`), "${1}" + Placeholder},
	// UUIDs.
	{regexp.MustCompile(`\b[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}\b`), Placeholder},
	// Home-directory path prefixes.
	{regexp.MustCompile(`(?:/home/[^/\s]+|/Users/[^/\s]+|[A-Za-z]:\\Users\\[^\\\s]+)`), Placeholder},
}

// Redact applies every rule in order over the whole input, replacing all
// occurrences. It never fails; empty input yields empty output. The result
// is stable under re-application since the placeholder matches no rule.
func Redact(text string) string {
	if text == "" {
		return ""
	}
	for _, r := range rules {
		text = r.pattern.ReplaceAllString(text, r.replacement)
	}
	return text
}
