package llm

import (
	"context"
	"errors"
	"net"
	"strings"
)

// ErrorCategory buckets provider failures for the retry policy and the
// user-facing fallback wording. Only Connection errors are retried.
type ErrorCategory string

const (
	CategoryAuth       ErrorCategory = "auth"
	CategoryQuota      ErrorCategory = "quota"
	CategoryConnection ErrorCategory = "connection"
	CategoryUnknown    ErrorCategory = "unknown"
)

// Classify maps a provider error onto a category. It inspects wrapped net
// errors first, then falls back to message matching since HTTP providers
// surface status text as plain errors.
func Classify(err error) ErrorCategory {
	if err == nil {
		return CategoryUnknown
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return CategoryConnection
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return CategoryConnection
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return CategoryConnection
	}

	msg := strings.ToLower(err.Error())
	switch {
	case containsAny(msg, "unauthorized", "invalid api key", "invalid_api_key", "authentication", "status 401", "status 403"):
		return CategoryAuth
	case containsAny(msg, "quota", "rate limit", "rate_limit", "too many requests", "status 429", "insufficient_quota", "resource_exhausted"):
		return CategoryQuota
	case containsAny(msg, "connection refused", "connection reset", "timeout", "timed out", "no such host", "dns", "network", "eof", "broken pipe"):
		return CategoryConnection
	}

	return CategoryUnknown
}

// Retryable reports whether the error class is transient.
func Retryable(err error) bool {
	return Classify(err) == CategoryConnection
}

func containsAny(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
