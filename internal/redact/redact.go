// Package redact removes sensitive information from strings before they
// are logged. Engine and ledger errors can carry API keys, credentialed
// RPC URLs, and filesystem paths; redaction keeps those out of log output
// while leaving the surrounding message readable.
package redact

import "regexp"

// Redaction placeholders.
const (
	KeyPlaceholder        = "[REDACTED_KEY]"
	CredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	PathPlaceholder       = "[REDACTED_PATH]"
)

var (
	// API keys and bearer tokens, keyed or bare.
	apiKeyRegex = regexp.MustCompile(
		`(?i)(api[_-]?key|token|secret|bearer)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`,
	)

	// URLs carrying userinfo, typically credentialed RPC endpoints.
	credentialedURLRegex = regexp.MustCompile(`(?i)[a-z][a-z0-9+-]*://[^@/\s]+@`)

	// Hex-encoded private keys and similar secrets.
	hexSecretRegex = regexp.MustCompile(`0x[0-9a-fA-F]{64}`)

	// Absolute filesystem paths, such as engine script locations.
	unixPathRegex = regexp.MustCompile(`(/[\w.-]+){2,}`)
)

// String redacts sensitive fragments from s.
func String(s string) string {
	s = apiKeyRegex.ReplaceAllString(s, "${1}${2}"+KeyPlaceholder)
	s = credentialedURLRegex.ReplaceAllString(s, CredentialPlaceholder+"@")
	s = hexSecretRegex.ReplaceAllString(s, KeyPlaceholder)
	s = unixPathRegex.ReplaceAllString(s, PathPlaceholder)
	return s
}

// Error redacts an error's message. Nil errors yield an empty string.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
