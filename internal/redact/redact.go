// Package redact provides utilities for redacting sensitive information from strings
// before they are logged or returned in error responses. Upstream model errors
// routinely echo request URLs, API keys and inline image payloads; this package
// scrubs them before they reach the logs.
package redact

import (
	"regexp"
	"sync"
)

// Constants for redaction placeholders
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedDataPlaceholder       = "[REDACTED_DATA]"
)

// Precompiled regex patterns
var (
	// Inline payloads, e.g. data:image/png;base64,iVBOR...
	dataURIRegex = regexp.MustCompile(`data:[\w.+-]+/[\w.+-]+;base64,[A-Za-z0-9+/=]+`)

	// Userinfo in any URL scheme
	urlCredentialRegex = regexp.MustCompile(`(?i)[a-z][a-z0-9+.-]*://[^/\s@]+@`)

	// Credentials and tokens
	googleAPIKeyRegex = regexp.MustCompile(`AIza[0-9A-Za-z_\-]{35}`)
	passwordRegex     = regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]?['"]?)[^'"&\s]{3,}`)
	apiKeyRegex       = regexp.MustCompile(
		`(?i)(api[_-]?key|token|secret|key|access|auth)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`,
	)
	bearerRegex   = regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9_\-.~+/]{8,}=*`)
	jwtTokenRegex = regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`)

	// File paths
	unixPathRegex = regexp.MustCompile(`(/[\w.-]+){2,}`)
	winPathRegex  = regexp.MustCompile(`[A-Za-z]:\\[^\\]+(\\[^\\]+)+`)

	// Stack trace fragments
	stackTraceRegex = regexp.MustCompile(`(?:goroutine \d+|panic:)[\s\S]*?(\n\t.*)+`)

	// Email addresses
	emailRegex = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`)

	fileErrorRegex = regexp.MustCompile(
		`(?i)(?:no such file|file not found|can't open|cannot open|file error)`,
	)

	// Order matters: payloads and keys go before the generic path pattern,
	// which would otherwise split them.
	patterns = []*regexp.Regexp{
		dataURIRegex, urlCredentialRegex, googleAPIKeyRegex, jwtTokenRegex,
		bearerRegex, passwordRegex, apiKeyRegex, stackTraceRegex, emailRegex,
		unixPathRegex, winPathRegex, fileErrorRegex,
	}

	patternPlaceholders = map[*regexp.Regexp]string{
		dataURIRegex:       RedactedDataPlaceholder,
		urlCredentialRegex: RedactedCredentialPlaceholder,
		googleAPIKeyRegex:  RedactedKeyPlaceholder,
		jwtTokenRegex:      "[REDACTED_JWT]",
		bearerRegex:        "Bearer " + RedactedKeyPlaceholder,
		passwordRegex:      RedactedCredentialPlaceholder,
		apiKeyRegex:        RedactedKeyPlaceholder,
		stackTraceRegex:    "[STACK_TRACE_REDACTED]",
		emailRegex:         "[REDACTED_EMAIL]",
		unixPathRegex:      RedactedPathPlaceholder,
		winPathRegex:       RedactedPathPlaceholder,
		fileErrorRegex:     "[REDACTED_FILE_ERROR]",
	}

	mu sync.RWMutex
)

// String redacts sensitive information from the input string
func String(input string) string {
	if input == "" {
		return input
	}

	mu.RLock()
	defer mu.RUnlock()

	result := input
	for _, pattern := range patterns {
		placeholder := RedactionPlaceholder
		if ph, ok := patternPlaceholders[pattern]; ok {
			placeholder = ph
		}
		result = pattern.ReplaceAllString(result, placeholder)
	}

	return result
}

// Error redacts sensitive information from an error's Error() output
func Error(err error) string {
	if err == nil {
		return ""
	}

	return String(err.Error())
}
