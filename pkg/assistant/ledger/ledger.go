// Package ledger keeps the bounded in-memory logs for the assistant: token
// cost, per-request chat records and latency/success telemetry. Each log is a
// ring of the last maxEntries records; nothing here survives a restart.
package ledger

import (
	"sync"
	"time"
)

const (
	// maxEntries bounds each log.
	maxEntries = 1000
	// CostPerToken is the flat accounting rate in USD.
	CostPerToken = 0.000002
)

// CostEntry records the token spend of one model call.
type CostEntry struct {
	Tokens int       `json:"tokens"`
	Cost   float64   `json:"cost"`
	Model  string    `json:"model"`
	At     time.Time `json:"at"`
}

// ChatEntry records one interaction, accepted or rejected.
type ChatEntry struct {
	SessionId    string    `json:"session_id"`
	Identity     string    `json:"identity"`
	Message      string    `json:"message"`
	Response     string    `json:"response"`
	InputValid   bool      `json:"input_valid"`
	SafetyPassed bool      `json:"safety_passed"`
	RatePassed   bool      `json:"rate_passed"`
	At           time.Time `json:"at"`
}

// TelemetryEntry records the outcome of one request.
type TelemetryEntry struct {
	LatencyMs int64     `json:"latency_ms"`
	Success   bool      `json:"success"`
	Error     string    `json:"error,omitempty"`
	Identity  string    `json:"identity"`
	SessionId string    `json:"session_id"`
	At        time.Time `json:"at"`
}

// Stats is the aggregate telemetry view.
type Stats struct {
	Requests     int              `json:"requests"`
	SuccessRate  float64          `json:"success_rate"`
	ErrorRate    float64          `json:"error_rate"`
	AvgLatencyMs float64          `json:"avg_latency_ms"`
	RecentErrors []TelemetryEntry `json:"recent_errors"`
}

// Ledger is safe for concurrent use.
type Ledger struct {
	mu        sync.Mutex
	costs     []CostEntry
	chats     []ChatEntry
	telemetry []TelemetryEntry
}

func New() *Ledger {
	return &Ledger{}
}

// RecordCost appends a cost entry computed from token usage.
func (l *Ledger) RecordCost(tokens int, model string) CostEntry {
	entry := CostEntry{
		Tokens: tokens,
		Cost:   float64(tokens) * CostPerToken,
		Model:  model,
		At:     time.Now(),
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.costs = appendBounded(l.costs, entry)
	return entry
}

// RecordChat appends one interaction record.
func (l *Ledger) RecordChat(entry ChatEntry) {
	entry.At = time.Now()
	l.mu.Lock()
	defer l.mu.Unlock()
	l.chats = appendBounded(l.chats, entry)
}

// RecordTelemetry appends one outcome record.
func (l *Ledger) RecordTelemetry(entry TelemetryEntry) {
	entry.At = time.Now()
	l.mu.Lock()
	defer l.mu.Unlock()
	l.telemetry = appendBounded(l.telemetry, entry)
}

// RecentCosts returns up to limit cost entries, newest first.
func (l *Ledger) RecentCosts(limit int) []CostEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]CostEntry, 0, len(l.costs))
	for i := len(l.costs) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		out = append(out, l.costs[i])
	}
	return out
}

// TotalCost sums the retained cost entries.
func (l *Ledger) TotalCost() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	var total float64
	for _, c := range l.costs {
		total += c.Cost
	}
	return total
}

// RecentChats returns up to limit chat entries, newest first.
func (l *Ledger) RecentChats(limit int) []ChatEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]ChatEntry, 0, len(l.chats))
	for i := len(l.chats) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		out = append(out, l.chats[i])
	}
	return out
}

// Stats aggregates the telemetry ring.
func (l *Ledger) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()

	s := Stats{Requests: len(l.telemetry)}
	if s.Requests == 0 {
		return s
	}

	var successes int
	var totalLatency int64
	for _, e := range l.telemetry {
		if e.Success {
			successes++
		}
		totalLatency += e.LatencyMs
	}

	s.SuccessRate = float64(successes) / float64(s.Requests)
	s.ErrorRate = 1 - s.SuccessRate
	s.AvgLatencyMs = float64(totalLatency) / float64(s.Requests)

	for i := len(l.telemetry) - 1; i >= 0 && len(s.RecentErrors) < 10; i-- {
		if !l.telemetry[i].Success {
			s.RecentErrors = append(s.RecentErrors, l.telemetry[i])
		}
	}
	return s
}

func appendBounded[T any](buf []T, entry T) []T {
	buf = append(buf, entry)
	if len(buf) > maxEntries {
		buf = buf[len(buf)-maxEntries:]
	}
	return buf
}
