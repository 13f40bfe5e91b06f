package ledger

import (
	"fmt"
	"math"
	"testing"
)

func TestRecordCostComputesRate(t *testing.T) {
	l := New()
	entry := l.RecordCost(500, "gpt-4o-mini")

	want := 500 * CostPerToken
	if math.Abs(entry.Cost-want) > 1e-12 {
		t.Errorf("Cost = %v, want %v", entry.Cost, want)
	}
	if math.Abs(l.TotalCost()-want) > 1e-12 {
		t.Errorf("TotalCost = %v, want %v", l.TotalCost(), want)
	}
}

func TestCostRingBounded(t *testing.T) {
	l := New()
	for i := 0; i < 1100; i++ {
		l.RecordCost(1, "m")
	}

	all := l.RecentCosts(0)
	if len(all) != 1000 {
		t.Errorf("retained = %d, want 1000", len(all))
	}
}

func TestRecentChatsNewestFirst(t *testing.T) {
	l := New()
	for i := 0; i < 5; i++ {
		l.RecordChat(ChatEntry{Message: fmt.Sprintf("m%d", i)})
	}

	recent := l.RecentChats(2)
	if len(recent) != 2 {
		t.Fatalf("len = %d, want 2", len(recent))
	}
	if recent[0].Message != "m4" || recent[1].Message != "m3" {
		t.Errorf("order = %s,%s want m4,m3", recent[0].Message, recent[1].Message)
	}
}

func TestStats(t *testing.T) {
	l := New()
	l.RecordTelemetry(TelemetryEntry{LatencyMs: 100, Success: true})
	l.RecordTelemetry(TelemetryEntry{LatencyMs: 300, Success: true})
	l.RecordTelemetry(TelemetryEntry{LatencyMs: 200, Success: false, Error: "model unavailable"})

	s := l.Stats()
	if s.Requests != 3 {
		t.Errorf("Requests = %d, want 3", s.Requests)
	}
	if math.Abs(s.SuccessRate-2.0/3.0) > 1e-9 {
		t.Errorf("SuccessRate = %v", s.SuccessRate)
	}
	if math.Abs(s.ErrorRate-1.0/3.0) > 1e-9 {
		t.Errorf("ErrorRate = %v", s.ErrorRate)
	}
	if math.Abs(s.AvgLatencyMs-200) > 1e-9 {
		t.Errorf("AvgLatencyMs = %v, want 200", s.AvgLatencyMs)
	}
	if len(s.RecentErrors) != 1 || s.RecentErrors[0].Error != "model unavailable" {
		t.Errorf("RecentErrors = %+v", s.RecentErrors)
	}
}

func TestStatsEmpty(t *testing.T) {
	s := New().Stats()
	if s.Requests != 0 || s.SuccessRate != 0 || s.AvgLatencyMs != 0 {
		t.Errorf("empty stats should be zero, got %+v", s)
	}
}
