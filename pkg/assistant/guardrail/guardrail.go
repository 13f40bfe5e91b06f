// Package guardrail holds the stateless pre/post validators that wrap the
// model call: input sizing, safety pattern matching, output sanitization and
// the pure rate-limit decision. Everything here is side-effect free so the
// assistant service can short-circuit on any failure without cleanup.
package guardrail

import (
	"regexp"
	"strings"
)

const (
	// MaxInputChars is the hard cap on a user message.
	MaxInputChars = 1000
	// MaxOutputChars is the hard cap on a model answer shown to a client.
	MaxOutputChars = 2000
	// DefaultRateLimit is requests per window before denial.
	DefaultRateLimit = 10
)

// InputValidation is the result of ValidateInput.
type InputValidation struct {
	Valid     bool
	Sanitized string
	Reason    string
}

// SafetyCheck is the result of CheckSafety.
type SafetyCheck struct {
	Blocked bool
	Reason  string
}

// OutputValidation is the result of ValidateOutput.
type OutputValidation struct {
	Valid     bool
	Sanitized string
}

// RateDecision is the result of the pure CheckRateLimit decision.
type RateDecision struct {
	Passed bool
	Reason string
}

// safetyPatterns covers sensitive-topic requests and prompt-injection
// attempts. Matching is case-insensitive over the raw message.
var safetyPatterns = []struct {
	re     *regexp.Regexp
	reason string
}{
	{regexp.MustCompile(`(?i)social\s*security`), "sensitive personal identifier"},
	{regexp.MustCompile(`(?i)\bssn\b`), "sensitive personal identifier"},
	{regexp.MustCompile(`(?i)credit\s*card\s*(number|info)`), "financial identifier"},
	{regexp.MustCompile(`(?i)bank\s*account\s*(number|info)`), "financial identifier"},
	{regexp.MustCompile(`(?i)routing\s*number`), "financial identifier"},
	{regexp.MustCompile(`(?i)\bpassword\b`), "credential request"},
	{regexp.MustCompile(`(?i)api\s*key`), "credential request"},
	{regexp.MustCompile(`(?i)ignore\s+(all\s+)?previous\s+instructions`), "prompt injection"},
	{regexp.MustCompile(`(?i)disregard\s+(all\s+)?(prior|previous)\s+(instructions|prompts)`), "prompt injection"},
	{regexp.MustCompile(`(?i)\bjailbreak\b`), "prompt injection"},
	{regexp.MustCompile(`(?i)you\s+are\s+now\s+(dan|developer\s+mode)`), "prompt injection"},
	{regexp.MustCompile(`(?i)reveal\s+(your\s+)?(system\s+)?prompt`), "prompt injection"},
	{regexp.MustCompile(`(?i)pretend\s+you\s+have\s+no\s+(rules|restrictions|guidelines)`), "prompt injection"},
}

// outputStripPatterns remove script and event-handler injection from model
// output before it reaches a browser.
var outputStripPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)<script.*?>.*?</script>`),
	regexp.MustCompile(`(?is)<script.*?>`),
	regexp.MustCompile(`(?i)javascript\s*:`),
	regexp.MustCompile(`(?i)\bon\w+\s*=\s*["'][^"']*["']`),
	regexp.MustCompile(`(?is)<iframe.*?>`),
}

// ValidateInput trims and size-checks a user message. Oversize messages are
// truncated to MaxInputChars and flagged invalid rather than dropped, so the
// caller can still log what was asked.
func ValidateInput(text string) InputValidation {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return InputValidation{Valid: false, Reason: "empty message"}
	}
	if len(trimmed) > MaxInputChars {
		return InputValidation{
			Valid:     false,
			Sanitized: trimmed[:MaxInputChars],
			Reason:    "message exceeds maximum length",
		}
	}
	return InputValidation{Valid: true, Sanitized: trimmed}
}

// CheckSafety matches the message against the blocked pattern table.
func CheckSafety(text string) SafetyCheck {
	for _, p := range safetyPatterns {
		if p.re.MatchString(text) {
			return SafetyCheck{Blocked: true, Reason: p.reason}
		}
	}
	return SafetyCheck{Blocked: false}
}

// ValidateOutput caps model output at MaxOutputChars and strips injection
// patterns. Valid is false only when the text was modified.
func ValidateOutput(text string) OutputValidation {
	sanitized := text
	for _, re := range outputStripPatterns {
		sanitized = re.ReplaceAllString(sanitized, "")
	}
	if len(sanitized) > MaxOutputChars {
		sanitized = sanitized[:MaxOutputChars]
	}
	return OutputValidation{Valid: sanitized == text, Sanitized: sanitized}
}

// CheckRateLimit is the pure decision half of rate limiting: the counter
// itself lives in the ratelimit package. A zero limit means DefaultRateLimit.
func CheckRateLimit(currentCount, limit int) RateDecision {
	if limit <= 0 {
		limit = DefaultRateLimit
	}
	if currentCount >= limit {
		return RateDecision{Passed: false, Reason: "rate limit exceeded"}
	}
	return RateDecision{Passed: true}
}
