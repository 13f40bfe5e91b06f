// Package retrieval turns classified intents into a bounded set of parallel
// store queries and folds the results into the single context block handed to
// the model invoker. Branches are registered as data, failures are isolated
// per branch, and the assembled block is hard-capped so model cost stays
// predictable no matter how many domains matched.
package retrieval

import (
	"context"
	"log"
	"strings"
	"sync"

	"nestquest-be/pkg/assistant/contextcache"
	"nestquest-be/pkg/assistant/intent"
	"nestquest-be/pkg/matching"
	"nestquest-be/pkg/store"
)

const (
	// MaxContextChars is the hard budget for the assembled block.
	MaxContextChars = 2000
	// TruncationMarker terminates a block that hit the budget.
	TruncationMarker = "... [context truncated]"
	// defaultBranchLimit bounds the fallback all-records queries.
	defaultBranchLimit = 10
	// maxPropertyCandidates caps the shared name-resolution query.
	maxPropertyCandidates = 50
	// topNearest is K wherever distance is the ranking key.
	topNearest = 5

	anonymousNotice = "PUBLIC CONTEXT: anonymous visitor, no saved preferences or account data available."
)

// Request carries everything one assembly run needs. UserId 0 means
// anonymous.
type Request struct {
	UserId   int64
	Message  string
	Flags    intent.Flags
	Keywords intent.Keywords
}

// Orchestrator fans out read-only queries per intent flag.
type Orchestrator struct {
	querier  store.Querier
	matcher  matching.Service
	userCtx  *contextcache.Cache
	logger   *log.Logger
	branches []branch
}

// NewOrchestrator registers the domain branches. matcher may be nil when the
// matching service is not configured; the roommate branch then contributes
// nothing.
func NewOrchestrator(querier store.Querier, matcher matching.Service, userCtx *contextcache.Cache, logger *log.Logger) *Orchestrator {
	o := &Orchestrator{
		querier: querier,
		matcher: matcher,
		userCtx: userCtx,
		logger:  logger,
	}
	o.branches = registry()
	return o
}

// Assemble runs every branch whose predicate matches, joins the fragments
// and enforces the context budget. It never returns an error: a branch
// failure degrades to an empty contribution and the worst case is an empty
// block.
func (o *Orchestrator) Assemble(ctx context.Context, req Request) string {
	scope := newRequestScope(o, req)

	active := make([]branch, 0, len(o.branches))
	for _, b := range o.branches {
		if b.needs(req.Flags) {
			active = append(active, b)
		}
	}

	// Branch order in the registry is the fragment order in the block, so
	// each goroutine writes its own slot.
	results := make([]string, len(active))
	var wg sync.WaitGroup
	for i, b := range active {
		wg.Add(1)
		go func(i int, b branch) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					o.logger.Printf("[ERROR] retrieval branch %s panicked: %v", b.name, r)
				}
			}()

			fragment, err := b.run(ctx, scope)
			if err != nil {
				o.logger.Printf("[WARN] retrieval branch %s failed: %v", b.name, err)
				return
			}
			results[i] = fragment
		}(i, b)
	}
	wg.Wait()

	fragments := make([]string, 0, len(results)+1)
	if profile := o.userProfileContext(ctx, req); profile != "" {
		fragments = append(fragments, profile)
	}
	for _, fragment := range results {
		if fragment != "" {
			fragments = append(fragments, fragment)
		}
	}

	block := strings.Join(fragments, "\n\n")
	return truncateContext(block, MaxContextChars)
}

// userProfileContext returns the cached per-user preference block,
// refreshing it from the store on miss or expiry. Anonymous callers get the
// fixed public notice instead.
func (o *Orchestrator) userProfileContext(ctx context.Context, req Request) string {
	if req.UserId == 0 {
		return anonymousNotice
	}

	if cached, ok := o.userCtx.Get(req.UserId); ok {
		return cached
	}

	rows, err := o.querier.Select(ctx, "user_preferences", store.Query{
		Filters: []store.Filter{{Field: "user_id", Op: store.OpEq, Value: req.UserId}},
		Limit:   1,
	})
	if err != nil {
		o.logger.Printf("[WARN] user preference fetch failed for user %d: %v", req.UserId, err)
		return ""
	}
	if len(rows) == 0 {
		return ""
	}

	text := formatUserPreferences(rows[0])
	o.userCtx.Set(req.UserId, text)
	return text
}

// truncateContext enforces the character budget, appending the marker when
// anything was cut.
func truncateContext(block string, budget int) string {
	if len(block) <= budget {
		return block
	}
	keep := budget - len(TruncationMarker)
	if keep < 0 {
		keep = 0
	}
	return block[:keep] + TruncationMarker
}
