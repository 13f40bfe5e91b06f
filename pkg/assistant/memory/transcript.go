// Package memory keeps the per-session rolling transcript used to give the
// model short-term conversational coherence. Transcripts are process-local
// and expire with their session; durable history is a separate fire-and-
// forget write owned by the consumer service.
package memory

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"nestquest-be/pkg/llm"
)

const (
	// MaxEntries caps a transcript at 10 exchanges.
	MaxEntries = 20
	// sessionIdle is how long an untouched session transcript survives.
	sessionIdle = time.Hour
)

// Transcripts is safe for concurrent use.
type Transcripts struct {
	mu    sync.Mutex
	cache *cache.Cache
}

func NewTranscripts() *Transcripts {
	return &Transcripts{
		cache: cache.New(sessionIdle, 10*time.Minute),
	}
}

// Append records one user/assistant exchange, trimming the oldest pairs once
// the transcript exceeds MaxEntries.
func (t *Transcripts) Append(sessionId, userMsg, assistantMsg string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	history := t.history(sessionId)
	history = append(history,
		llm.Message{Role: "user", Content: userMsg},
		llm.Message{Role: "assistant", Content: assistantMsg},
	)
	if len(history) > MaxEntries {
		history = history[len(history)-MaxEntries:]
	}

	t.cache.Set(sessionId, history, cache.DefaultExpiration)
}

// History returns a copy of the session transcript, oldest first.
func (t *Transcripts) History(sessionId string) []llm.Message {
	t.mu.Lock()
	defer t.mu.Unlock()

	history := t.history(sessionId)
	out := make([]llm.Message, len(history))
	copy(out, history)
	return out
}

// Last returns at most n trailing entries.
func (t *Transcripts) Last(sessionId string, n int) []llm.Message {
	history := t.History(sessionId)
	if len(history) > n {
		history = history[len(history)-n:]
	}
	return history
}

// Clear drops a session transcript.
func (t *Transcripts) Clear(sessionId string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cache.Delete(sessionId)
}

func (t *Transcripts) history(sessionId string) []llm.Message {
	if x, found := t.cache.Get(sessionId); found {
		return x.([]llm.Message)
	}
	return nil
}
