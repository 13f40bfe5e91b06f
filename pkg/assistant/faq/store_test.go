package faq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchRanksByPriority(t *testing.T) {
	s := NewStore()

	items := s.Match("what fees and deposit should I expect for my rental estimate", 3)
	require.NotEmpty(t, items)
	for i := 1; i < len(items); i++ {
		assert.GreaterOrEqual(t, items[i-1].Priority, items[i].Priority,
			"matches must be ordered by priority descending")
	}
	assert.LessOrEqual(t, len(items), 3)
}

func TestMatchNoHit(t *testing.T) {
	s := NewStore()
	assert.Empty(t, s.Match("completely unrelated question about quantum physics", 3))
}

func TestAddThenListSortedByPriority(t *testing.T) {
	s := NewStore()

	added := s.Add(Item{
		Question: "Do you allow pets?",
		Answer:   "Depends on the property.",
		Category: "policies",
		Tags:     []string{"pets"},
		Priority: 10,
	})
	require.NotZero(t, added.Id)

	list := s.List("", 0)
	require.NotEmpty(t, list)
	assert.Equal(t, added.Id, list[0].Id, "highest priority item should rank first")
	for i := 1; i < len(list); i++ {
		assert.GreaterOrEqual(t, list[i-1].Priority, list[i].Priority)
	}
}

func TestListByCategory(t *testing.T) {
	s := NewStore()
	list := s.List("pricing", 0)
	require.NotEmpty(t, list)
	for _, it := range list {
		assert.Equal(t, "pricing", it.Category)
	}
}

func TestUpdateAndDelete(t *testing.T) {
	s := NewStore()
	added := s.Add(Item{Question: "q", Answer: "a", Priority: 3})

	added.Answer = "updated"
	require.NoError(t, s.Update(added))

	list := s.List("", 0)
	var found *Item
	for i := range list {
		if list[i].Id == added.Id {
			found = &list[i]
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, "updated", found.Answer)

	require.NoError(t, s.Delete(added.Id))
	assert.Error(t, s.Delete(added.Id), "second delete should fail")
	assert.Error(t, s.Update(added), "update after delete should fail")
}

func TestPriorityClamped(t *testing.T) {
	s := NewStore()
	high := s.Add(Item{Question: "x", Priority: 99})
	low := s.Add(Item{Question: "y", Priority: -4})
	assert.Equal(t, 10, high.Priority)
	assert.Equal(t, 1, low.Priority)
}
