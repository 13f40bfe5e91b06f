package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCategory
	}{
		{"nil", nil, CategoryUnknown},
		{"auth 401", errors.New("ollama error: status 401, body: unauthorized"), CategoryAuth},
		{"invalid key", errors.New("invalid api key provided"), CategoryAuth},
		{"quota 429", errors.New("status 429 too many requests"), CategoryQuota},
		{"insufficient quota", errors.New("insufficient_quota: billing hard limit"), CategoryQuota},
		{"connection refused", errors.New("dial tcp 127.0.0.1:11434: connection refused"), CategoryConnection},
		{"dns", &net.DNSError{Err: "no such host", Name: "api.example.com"}, CategoryConnection},
		{"deadline", context.DeadlineExceeded, CategoryConnection},
		{"wrapped timeout", fmt.Errorf("ollama request failed: %w", errors.New("request timed out")), CategoryConnection},
		{"something else", errors.New("unexpected end of JSON input"), CategoryUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Errorf("Classify(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestRetryable(t *testing.T) {
	if !Retryable(errors.New("connection refused")) {
		t.Error("connection errors are retryable")
	}
	if Retryable(errors.New("status 401 unauthorized")) {
		t.Error("auth errors are not retryable")
	}
	if Retryable(errors.New("quota exceeded")) {
		t.Error("quota errors are not retryable")
	}
}
