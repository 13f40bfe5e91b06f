// Package faq keeps the seeded FAQ set the invoker blends into its system
// prompt, plus the admin mutation surface. Priority (1-10) governs ranking
// whenever several entries match.
package faq

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Item is one question/answer pair.
type Item struct {
	Id       int      `json:"id"`
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	Priority int      `json:"priority"` // 1-10, higher ranks first
}

// Store is safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	items  []Item
	nextId int
}

// NewStore seeds the marketplace FAQ set.
func NewStore() *Store {
	s := &Store{nextId: 1}
	for _, it := range seedItems {
		it.Id = s.nextId
		s.nextId++
		s.items = append(s.items, it)
	}
	return s
}

// Match returns up to n items whose question or tags overlap the query,
// ordered by priority descending. Relevance is simple substring overlap;
// the invoker only ever asks for the top three.
func (s *Store) Match(query string, n int) []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lower := strings.ToLower(query)
	var matched []Item
	for _, it := range s.items {
		if s.relevant(lower, it) {
			matched = append(matched, it)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Priority > matched[j].Priority
	})

	if n > 0 && len(matched) > n {
		matched = matched[:n]
	}
	return matched
}

func (s *Store) relevant(lowerQuery string, it Item) bool {
	for _, tag := range it.Tags {
		if strings.Contains(lowerQuery, strings.ToLower(tag)) {
			return true
		}
	}
	// Match on any significant word of the stored question.
	for _, word := range strings.Fields(strings.ToLower(it.Question)) {
		if len(word) > 4 && strings.Contains(lowerQuery, word) {
			return true
		}
	}
	return false
}

// List returns items, optionally filtered by category, ordered by priority
// descending and capped at limit.
func (s *Store) List(category string, limit int) []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Item
	for _, it := range s.items {
		if category == "" || strings.EqualFold(it.Category, category) {
			out = append(out, it)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority > out[j].Priority
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Add inserts a new item and returns it with its assigned id. Priority is
// clamped into 1-10.
func (s *Store) Add(item Item) Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	item.Id = s.nextId
	s.nextId++
	item.Priority = clampPriority(item.Priority)
	s.items = append(s.items, item)
	return item
}

// Update replaces the item with the same id.
func (s *Store) Update(item Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].Id == item.Id {
			item.Priority = clampPriority(item.Priority)
			s.items[i] = item
			return nil
		}
	}
	return fmt.Errorf("faq item %d not found", item.Id)
}

// Delete removes the item with the given id.
func (s *Store) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].Id == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("faq item %d not found", id)
}

func clampPriority(p int) int {
	if p < 1 {
		return 1
	}
	if p > 10 {
		return 10
	}
	return p
}
