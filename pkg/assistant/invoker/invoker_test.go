package invoker

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nestquest-be/pkg/assistant/faq"
	"nestquest-be/pkg/llm"
)

type fakeProvider struct {
	calls   int
	errs    []error
	text    string
	tokens  int
	history [][]llm.Message
}

func (f *fakeProvider) Complete(_ context.Context, history []llm.Message, _ ...llm.Option) (*llm.Completion, error) {
	f.history = append(f.history, history)
	f.calls++
	if f.calls <= len(f.errs) && f.errs[f.calls-1] != nil {
		return nil, f.errs[f.calls-1]
	}
	return &llm.Completion{Text: f.text, TotalTokens: f.tokens}, nil
}

func newTestInvoker(p llm.Provider) *Invoker {
	inv := New(p, faq.NewStore(), log.New(io.Discard, "", 0))
	inv.interval = time.Millisecond
	return inv
}

func TestInvokeSuccess(t *testing.T) {
	p := &fakeProvider{text: "Oakwood has two units open.\n[Suggestion] Show unit details", tokens: 120}
	inv := newTestInvoker(p)

	res := inv.Invoke(context.Background(), "what's available at Oakwood?", "AVAILABLE UNITS:\n- Unit 2B", nil)

	assert.False(t, res.Fallback)
	assert.Equal(t, "Oakwood has two units open.", res.Text)
	assert.Equal(t, []string{"Show unit details"}, res.Suggestions)
	assert.Equal(t, 120, res.Tokens)
}

func TestConnectionErrorsRetriedThreeTimes(t *testing.T) {
	refused := errors.New("dial tcp 127.0.0.1:11434: connection refused")
	p := &fakeProvider{errs: []error{refused, refused, refused}}
	inv := newTestInvoker(p)

	res := inv.Invoke(context.Background(), "hi", "", nil)

	assert.Equal(t, 3, p.calls)
	assert.True(t, res.Fallback)
	assert.Equal(t, llm.CategoryConnection, res.Category)
	assert.Equal(t, fallbacks[llm.CategoryConnection], res.Text)
	assert.Zero(t, res.Tokens)
}

func TestConnectionErrorRecoversOnRetry(t *testing.T) {
	refused := errors.New("connection refused")
	p := &fakeProvider{errs: []error{refused}, text: "recovered answer", tokens: 50}
	inv := newTestInvoker(p)

	res := inv.Invoke(context.Background(), "hi", "", nil)

	assert.Equal(t, 2, p.calls)
	assert.False(t, res.Fallback)
	assert.Equal(t, "recovered answer", res.Text)
}

func TestAuthErrorFailsFast(t *testing.T) {
	p := &fakeProvider{errs: []error{errors.New("status 401 unauthorized")}}
	inv := newTestInvoker(p)

	res := inv.Invoke(context.Background(), "hi", "", nil)

	assert.Equal(t, 1, p.calls, "auth errors must not be retried")
	assert.True(t, res.Fallback)
	assert.Equal(t, llm.CategoryAuth, res.Category)
}

func TestQuotaErrorFailsFast(t *testing.T) {
	p := &fakeProvider{errs: []error{errors.New("status 429 too many requests")}}
	inv := newTestInvoker(p)

	res := inv.Invoke(context.Background(), "hi", "", nil)

	assert.Equal(t, 1, p.calls)
	assert.Equal(t, llm.CategoryQuota, res.Category)
}

func TestPromptCarriesContextAndHistory(t *testing.T) {
	p := &fakeProvider{text: "ok"}
	inv := newTestInvoker(p)

	history := []llm.Message{
		{Role: "user", Content: "old question 1"},
		{Role: "assistant", Content: "old answer 1"},
		{Role: "user", Content: "old question 2"},
		{Role: "assistant", Content: "old answer 2"},
		{Role: "user", Content: "old question 3"},
		{Role: "assistant", Content: "old answer 3"},
		{Role: "user", Content: "old question 4"},
		{Role: "assistant", Content: "old answer 4"},
	}
	inv.Invoke(context.Background(), "current question", "MATCHING PROPERTIES:\n- Oakwood", history)

	require.Len(t, p.history, 1)
	sent := p.history[0]

	// system + 6 trailing history entries + current user message
	require.Len(t, sent, 8)
	assert.Equal(t, "system", sent[0].Role)
	assert.Contains(t, sent[0].Content, "MATCHING PROPERTIES")
	assert.Contains(t, sent[0].Content, "compatibility as a percentage")
	assert.Equal(t, "old question 2", sent[1].Content, "only the trailing window rides along")
	assert.Equal(t, "current question", sent[len(sent)-1].Content)
}

func TestPromptIncludesMatchedFAQ(t *testing.T) {
	p := &fakeProvider{text: "ok"}
	inv := newTestInvoker(p)

	inv.Invoke(context.Background(), "how do I schedule a tour?", "", nil)

	require.Len(t, p.history, 1)
	assert.Contains(t, p.history[0][0].Content, "FREQUENTLY ASKED:")
}

func TestOutputSanitized(t *testing.T) {
	p := &fakeProvider{text: "Safe text<script>alert(1)</script> continues"}
	inv := newTestInvoker(p)

	res := inv.Invoke(context.Background(), "hi", "", nil)

	assert.NotContains(t, res.Text, "<script>")
	assert.Contains(t, res.Text, "Safe text")
}

func TestExtractSuggestions(t *testing.T) {
	text := "Here is my answer.\n[Suggestion] See prices\n[Suggestion] See prices\n[Suggestion] Find roommates"
	answer, chips := ExtractSuggestions(text)

	assert.Equal(t, "Here is my answer.", answer)
	assert.Equal(t, []string{"See prices", "Find roommates"}, chips)
}

func TestExtractSuggestionsCapped(t *testing.T) {
	var b strings.Builder
	b.WriteString("Answer.\n")
	for i := 0; i < 10; i++ {
		b.WriteString("[Suggestion] chip ")
		b.WriteByte(byte('a' + i))
		b.WriteByte('\n')
	}

	_, chips := ExtractSuggestions(b.String())
	assert.Len(t, chips, MaxSuggestions)
}

func TestDefaultSuggestionsWhenModelOffersNone(t *testing.T) {
	p := &fakeProvider{text: "plain answer"}
	inv := newTestInvoker(p)

	res := inv.Invoke(context.Background(), "hi", "", nil)
	assert.NotEmpty(t, res.Suggestions)
}
