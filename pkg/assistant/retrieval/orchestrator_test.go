package retrieval

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nestquest-be/pkg/assistant/contextcache"
	"nestquest-be/pkg/assistant/intent"
	"nestquest-be/pkg/store"
)

type fakeQuerier struct {
	mu    sync.Mutex
	rows  map[string][]store.Row
	errs  map[string]error
	calls map[string]int
}

func newFakeQuerier() *fakeQuerier {
	return &fakeQuerier{
		rows:  map[string][]store.Row{},
		errs:  map[string]error{},
		calls: map[string]int{},
	}
}

func (f *fakeQuerier) Select(_ context.Context, table string, q store.Query) ([]store.Row, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[table]++
	if err := f.errs[table]; err != nil {
		return nil, err
	}
	rows := f.rows[table]
	if q.Limit > 0 && len(rows) > q.Limit {
		rows = rows[:q.Limit]
	}
	return rows, nil
}

func (f *fakeQuerier) Insert(context.Context, string, store.Row) error {
	return nil
}

func (f *fakeQuerier) callCount(table string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[table]
}

func newTestOrchestrator(q store.Querier) *Orchestrator {
	return NewOrchestrator(q, nil, contextcache.New(), log.New(io.Discard, "", 0))
}

func TestAssemblePropertyContext(t *testing.T) {
	fq := newFakeQuerier()
	fq.rows["apartment_properties_listings"] = []store.Row{
		{"id": int64(1), "name": "Oakwood Apartments", "address": "12 Elm St", "city": "Austin", "rating": 4.5},
	}

	o := newTestOrchestrator(fq)
	block := o.Assemble(context.Background(), Request{
		Message:  "Tell me about Oakwood Apartments",
		Flags:    intent.Flags{Property: true},
		Keywords: intent.ExtractKeywords("Tell me about Oakwood Apartments"),
	})

	assert.Contains(t, block, "MATCHING PROPERTIES")
	assert.Contains(t, block, "Oakwood Apartments")
	assert.Contains(t, block, "rated 4.5/5")
}

func TestPropertyResolutionSingleFlight(t *testing.T) {
	fq := newFakeQuerier()
	fq.rows["apartment_properties_listings"] = []store.Row{
		{"id": int64(7), "name": "Oakwood Apartments", "city": "Austin"},
	}

	o := newTestOrchestrator(fq)
	// Property, units, reviews and photos all need the resolved candidate
	// set; the listings table must still only be queried once.
	o.Assemble(context.Background(), Request{
		Flags:    intent.Flags{Property: true, Unit: true, Review: true, Photo: true},
		Keywords: intent.Keywords{PropertyName: "Oakwood Apartments"},
	})

	assert.Equal(t, 1, fq.callCount("apartment_properties_listings"))
}

func TestBranchFailureIsolated(t *testing.T) {
	fq := newFakeQuerier()
	fq.rows["apartment_properties_listings"] = []store.Row{
		{"id": int64(1), "name": "Oakwood Apartments", "city": "Austin"},
	}
	fq.errs["property_reviews"] = errors.New("connection reset")

	o := newTestOrchestrator(fq)
	block := o.Assemble(context.Background(), Request{
		Flags: intent.Flags{Property: true, Review: true},
	})

	assert.Contains(t, block, "MATCHING PROPERTIES")
	assert.NotContains(t, block, "RESIDENT REVIEWS")
	assert.NotContains(t, block, "connection reset")
}

func TestContextBudgetEnforced(t *testing.T) {
	fq := newFakeQuerier()
	long := strings.Repeat("x", 300)
	for i := 0; i < 10; i++ {
		fq.rows["apartment_properties_listings"] = append(fq.rows["apartment_properties_listings"],
			store.Row{"id": int64(i + 1), "name": long, "address": long, "city": "Austin"})
	}

	o := newTestOrchestrator(fq)
	block := o.Assemble(context.Background(), Request{Flags: intent.Flags{Property: true}})

	require.LessOrEqual(t, len(block), MaxContextChars)
	assert.True(t, strings.HasSuffix(block, TruncationMarker))
}

func TestAnonymousNotice(t *testing.T) {
	o := newTestOrchestrator(newFakeQuerier())
	block := o.Assemble(context.Background(), Request{UserId: 0})
	assert.Contains(t, block, "PUBLIC CONTEXT")
}

func TestUserProfileCached(t *testing.T) {
	fq := newFakeQuerier()
	fq.rows["user_preferences"] = []store.Row{
		{"user_id": int64(42), "preferred_city": "Austin", "budget_max": 1800.0},
	}

	o := newTestOrchestrator(fq)
	first := o.Assemble(context.Background(), Request{UserId: 42})
	second := o.Assemble(context.Background(), Request{UserId: 42})

	assert.Contains(t, first, "USER PROFILE")
	assert.Contains(t, second, "preferred city: Austin")
	assert.Equal(t, 1, fq.callCount("user_preferences"))
}

func TestAttractionsRankedByDistance(t *testing.T) {
	fq := newFakeQuerier()
	fq.rows["apartment_properties_listings"] = []store.Row{
		{"id": int64(1), "name": "Oakwood Apartments", "latitude": 30.27, "longitude": -97.74},
	}
	fq.rows["local_attractions"] = []store.Row{
		{"name": "Far Gym", "category": "gym", "latitude": 30.50, "longitude": -97.90},
		{"name": "Corner Coffee", "category": "coffee", "latitude": 30.271, "longitude": -97.741},
	}

	o := newTestOrchestrator(fq)
	block := o.Assemble(context.Background(), Request{Flags: intent.Flags{Attraction: true}})

	coffee := strings.Index(block, "Corner Coffee")
	gym := strings.Index(block, "Far Gym")
	require.NotEqual(t, -1, coffee)
	require.NotEqual(t, -1, gym)
	assert.Less(t, coffee, gym, "closer attraction should be listed first")
}

func TestPersonalBranchesSkipAnonymous(t *testing.T) {
	fq := newFakeQuerier()
	o := newTestOrchestrator(fq)

	o.Assemble(context.Background(), Request{
		UserId: 0,
		Flags:  intent.Flags{Favorite: true, Notification: true, Report: true, Setting: true},
	})

	assert.Zero(t, fq.callCount("user_favorites"))
	assert.Zero(t, fq.callCount("user_notifications"))
	assert.Zero(t, fq.callCount("user_reports"))
}

func TestTruncateContext(t *testing.T) {
	assert.Equal(t, "abc", truncateContext("abc", 10))

	out := truncateContext(strings.Repeat("a", 100), 50)
	assert.Len(t, out, 50)
	assert.True(t, strings.HasSuffix(out, TruncationMarker))
}
