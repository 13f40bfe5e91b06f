// Package invoker owns the model call itself: prompt assembly from the
// retrieved context and matched FAQ entries, the retry policy for transient
// provider failures, output sanitization and the categorized fallback answers
// returned when the provider is unreachable.
package invoker

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"nestquest-be/pkg/assistant/faq"
	"nestquest-be/pkg/assistant/guardrail"
	"nestquest-be/pkg/llm"
	"nestquest-be/pkg/retry"
)

const (
	// historyWindow is how many trailing transcript entries ride along.
	historyWindow = 6
	// faqMatches is how many FAQ entries the prompt carries.
	faqMatches = 3
	// maxAttempts and retryInterval define the linear retry policy for
	// connection failures.
	maxAttempts   = 3
	retryInterval = time.Second

	defaultTemperature = 0.7
	defaultMaxTokens   = 600
)

const systemPreamble = `You are the NestQuest housing assistant. You help people find apartments, compare units and prices, learn about neighborhoods, and connect with compatible roommates.

Rules:
- Answer only from the CONTEXT section below. If the context does not cover the question, say so and suggest what to search for instead. Never invent listings, prices or availability.
- When discussing roommate matches, always express compatibility as a percentage.
- Keep answers under three short paragraphs.
- After your answer, propose follow-up actions the user can take, each on its own line prefixed with [Suggestion], at most six.`

// fallbacks maps provider error categories to user-facing answers. Fallback
// responses carry zero tokens and zero cost.
var fallbacks = map[llm.ErrorCategory]string{
	llm.CategoryAuth:       "The assistant is not configured correctly right now. Our team has been notified; please try again later.",
	llm.CategoryQuota:      "The assistant is handling a lot of requests at the moment. Please wait a minute and try again.",
	llm.CategoryConnection: "I could not reach the assistant service. Please check your connection and try again in a moment.",
	llm.CategoryUnknown:    "Something went wrong while generating a response. Please try again.",
}

// Result is one model answer, real or fallback.
type Result struct {
	Text        string
	Suggestions []string
	Tokens      int
	Fallback    bool
	Category    llm.ErrorCategory
}

// Invoker is safe for concurrent use.
type Invoker struct {
	provider llm.Provider
	faqs     *faq.Store
	logger   *log.Logger
	interval time.Duration
}

func New(provider llm.Provider, faqs *faq.Store, logger *log.Logger) *Invoker {
	return &Invoker{provider: provider, faqs: faqs, logger: logger, interval: retryInterval}
}

// Invoke runs the model with the assembled context and the session transcript
// tail. Connection-class errors are retried up to maxAttempts with linear
// backoff; every other class fails fast into its fallback answer.
func (inv *Invoker) Invoke(ctx context.Context, message, contextBlock string, history []llm.Message) Result {
	messages := inv.buildMessages(message, contextBlock, history)

	var completion *llm.Completion
	err := retry.Do(ctx, retry.Config{
		MaxAttempts: maxAttempts,
		Interval:    inv.interval,
		ShouldRetry: llm.Retryable,
		OnRetry: func(attempt int, err error) {
			inv.logger.Printf("[WARN] model attempt %d failed, retrying: %v", attempt, err)
		},
	}, func() error {
		var callErr error
		completion, callErr = inv.provider.Complete(ctx, messages,
			llm.WithTemperature(defaultTemperature),
			llm.WithMaxTokens(defaultMaxTokens),
		)
		return callErr
	})
	if err != nil {
		category := llm.Classify(err)
		inv.logger.Printf("[ERROR] model invocation failed (%s): %v", category, err)
		return Result{
			Text:        fallbacks[category],
			Suggestions: defaultSuggestions(),
			Fallback:    true,
			Category:    category,
		}
	}

	answer, suggestions := ExtractSuggestions(completion.Text)
	if len(suggestions) == 0 {
		suggestions = defaultSuggestions()
	}

	out := guardrail.ValidateOutput(answer)
	if !out.Valid {
		inv.logger.Printf("[WARN] model output sanitized before delivery")
	}

	return Result{
		Text:        out.Sanitized,
		Suggestions: suggestions,
		Tokens:      completion.TotalTokens,
	}
}

func (inv *Invoker) buildMessages(message, contextBlock string, history []llm.Message) []llm.Message {
	var b strings.Builder
	b.WriteString(systemPreamble)

	if items := inv.faqs.Match(message, faqMatches); len(items) > 0 {
		b.WriteString("\n\nFREQUENTLY ASKED:\n")
		for _, it := range items {
			fmt.Fprintf(&b, "Q: %s\nA: %s\n", it.Question, it.Answer)
		}
	}

	b.WriteString("\n\nCONTEXT:\n")
	if contextBlock == "" {
		b.WriteString("(no data retrieved for this question)")
	} else {
		b.WriteString(contextBlock)
	}

	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}

	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: "system", Content: b.String()})
	messages = append(messages, history...)
	messages = append(messages, llm.Message{Role: "user", Content: message})
	return messages
}
