package service

import (
	"context"
	"strconv"
	"time"

	"nestquest-be/internal/dto"
	"nestquest-be/internal/pkg/logger"
	"nestquest-be/pkg/assistant/contextcache"
	"nestquest-be/pkg/assistant/faq"
	"nestquest-be/pkg/assistant/guardrail"
	"nestquest-be/pkg/assistant/intent"
	"nestquest-be/pkg/assistant/invoker"
	"nestquest-be/pkg/assistant/ledger"
	"nestquest-be/pkg/assistant/memory"
	"nestquest-be/pkg/assistant/ratelimit"
	"nestquest-be/pkg/assistant/retrieval"
	"nestquest-be/pkg/events"
)

// Guard refusals returned without touching the model. All of them carry zero
// tokens and zero cost.
const (
	msgEmptyInput   = "Please type a question so I can help."
	msgOversize     = "That message is too long for me to process. Could you shorten it to the essentials?"
	msgBlocked      = "I can't help with that request. I'm happy to answer questions about apartments, pricing, neighborhoods and roommates."
	msgRateLimited  = "You're sending messages a little too quickly. Please wait a moment and try again."
	confidenceModel = 0.85
	confidenceFall  = 0.2
)

type IAssistantService interface {
	GenerateResponse(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error)

	GetFAQItems(category string, limit int) []faq.Item
	AddFAQItem(req *dto.FAQItemRequest) faq.Item
	UpdateFAQItem(id int, req *dto.FAQItemRequest) (faq.Item, error)
	DeleteFAQItem(id int) error

	GetCostLogs(limit int) []ledger.CostEntry
	GetTotalCost() float64
	GetChatLogs(limit int) []ledger.ChatEntry
	GetChatStats() ledger.Stats

	GetRateLimitStatus(identity string) (ratelimit.Status, bool)
	ResetRateLimit(identity string)
	InvalidateUserCache(userId int64)
	InvalidateAllUserCaches() int
	ClearSession(sessionId string)
}

type assistantService struct {
	orchestrator *retrieval.Orchestrator
	invoker      *invoker.Invoker
	limiter      *ratelimit.Limiter
	transcripts  *memory.Transcripts
	ledger       *ledger.Ledger
	faqs         *faq.Store
	userCtx      *contextcache.Cache
	publisher    IPublisherService
	model        string
	sysLogger    logger.ILogger
}

func NewAssistantService(
	orchestrator *retrieval.Orchestrator,
	inv *invoker.Invoker,
	limiter *ratelimit.Limiter,
	transcripts *memory.Transcripts,
	ledg *ledger.Ledger,
	faqs *faq.Store,
	userCtx *contextcache.Cache,
	publisher IPublisherService,
	model string,
	sysLogger logger.ILogger,
) IAssistantService {
	return &assistantService{
		orchestrator: orchestrator,
		invoker:      inv,
		limiter:      limiter,
		transcripts:  transcripts,
		ledger:       ledg,
		faqs:         faqs,
		userCtx:      userCtx,
		publisher:    publisher,
		model:        model,
		sysLogger:    sysLogger,
	}
}

// GenerateResponse runs the full pipeline: input guard, safety guard, rate limit, intent
// classification, context assembly, model invocation, post-validation and
// logging. Each request produces exactly one chat log entry and one telemetry
// entry no matter where it exits.
func (s *assistantService) GenerateResponse(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	start := time.Now()
	identity := chatIdentity(req.Context)
	sessionId := req.Context.SessionId

	in := guardrail.ValidateInput(req.Message)
	if !in.Valid {
		text := msgEmptyInput
		if in.Sanitized != "" {
			text = msgOversize
		}
		return s.shortCircuit(req, identity, in.Sanitized, text, ledger.ChatEntry{
			InputValid: false, SafetyPassed: true, RatePassed: true,
		}, "input rejected: "+in.Reason, start), nil
	}
	message := in.Sanitized

	if safety := guardrail.CheckSafety(message); safety.Blocked {
		s.sysLogger.Warn("assistant", "message blocked by safety guard", map[string]interface{}{
			"identity": identity,
			"reason":   safety.Reason,
		})
		return s.shortCircuit(req, identity, message, msgBlocked, ledger.ChatEntry{
			InputValid: true, SafetyPassed: false, RatePassed: true,
		}, "safety blocked: "+safety.Reason, start), nil
	}

	if !s.limiter.Allow(identity) {
		return s.shortCircuit(req, identity, message, msgRateLimited, ledger.ChatEntry{
			InputValid: true, SafetyPassed: true, RatePassed: false,
		}, "rate limit exceeded", start), nil
	}

	flags := intent.Detect(message)
	keywords := intent.ExtractKeywords(message)

	contextBlock := s.orchestrator.Assemble(ctx, retrieval.Request{
		UserId:   req.Context.UserId,
		Message:  message,
		Flags:    flags,
		Keywords: keywords,
	})

	history := s.transcripts.Last(sessionId, 6)
	result := s.invoker.Invoke(ctx, message, contextBlock, history)

	var cost float64
	confidence := confidenceModel
	if result.Fallback {
		confidence = confidenceFall
	} else if result.Tokens > 0 {
		cost = s.ledger.RecordCost(result.Tokens, s.model).Cost
	}

	s.transcripts.Append(sessionId, message, result.Text)

	s.ledger.RecordChat(ledger.ChatEntry{
		SessionId:    sessionId,
		Identity:     identity,
		Message:      message,
		Response:     result.Text,
		InputValid:   true,
		SafetyPassed: true,
		RatePassed:   true,
	})
	s.ledger.RecordTelemetry(ledger.TelemetryEntry{
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   !result.Fallback,
		Error:     fallbackError(result),
		Identity:  identity,
		SessionId: sessionId,
	})

	s.publisher.PublishInteraction(events.InteractionRecorded{
		SessionId: sessionId,
		Identity:  identity,
		UserId:    req.Context.UserId,
		UserEmail: req.Context.UserEmail,
		Page:      req.Context.CurrentPage,
		Message:   message,
		Response:  result.Text,
		Tokens:    result.Tokens,
		Cost:      cost,
		Fallback:  result.Fallback,
		LatencyMs: time.Since(start).Milliseconds(),
		At:        time.Now(),
	})

	return &dto.ChatResponse{
		SessionId:   sessionId,
		Response:    result.Text,
		Sources:     sourcesFromFlags(flags),
		Suggestions: result.Suggestions,
		Confidence:  confidence,
		Cost:        cost,
		Tokens:      result.Tokens,
	}, nil
}

// shortCircuit records the rejected request and builds the refusal response.
func (s *assistantService) shortCircuit(req *dto.ChatRequest, identity, message, text string, entry ledger.ChatEntry, reason string, start time.Time) *dto.ChatResponse {
	entry.SessionId = req.Context.SessionId
	entry.Identity = identity
	entry.Message = message
	entry.Response = text
	s.ledger.RecordChat(entry)

	s.ledger.RecordTelemetry(ledger.TelemetryEntry{
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   false,
		Error:     reason,
		Identity:  identity,
		SessionId: req.Context.SessionId,
	})

	return &dto.ChatResponse{
		SessionId:   req.Context.SessionId,
		Response:    text,
		Sources:     []string{},
		Suggestions: []string{},
		Confidence:  0,
	}
}

func (s *assistantService) GetFAQItems(category string, limit int) []faq.Item {
	return s.faqs.List(category, limit)
}

func (s *assistantService) AddFAQItem(req *dto.FAQItemRequest) faq.Item {
	return s.faqs.Add(faq.Item{
		Question: req.Question,
		Answer:   req.Answer,
		Category: req.Category,
		Tags:     req.Tags,
		Priority: req.Priority,
	})
}

func (s *assistantService) UpdateFAQItem(id int, req *dto.FAQItemRequest) (faq.Item, error) {
	item := faq.Item{
		Id:       id,
		Question: req.Question,
		Answer:   req.Answer,
		Category: req.Category,
		Tags:     req.Tags,
		Priority: req.Priority,
	}
	if err := s.faqs.Update(item); err != nil {
		return faq.Item{}, err
	}
	return item, nil
}

func (s *assistantService) DeleteFAQItem(id int) error {
	return s.faqs.Delete(id)
}

func (s *assistantService) GetCostLogs(limit int) []ledger.CostEntry {
	return s.ledger.RecentCosts(limit)
}

func (s *assistantService) GetTotalCost() float64 {
	return s.ledger.TotalCost()
}

func (s *assistantService) GetChatLogs(limit int) []ledger.ChatEntry {
	return s.ledger.RecentChats(limit)
}

func (s *assistantService) GetChatStats() ledger.Stats {
	return s.ledger.Stats()
}

func (s *assistantService) GetRateLimitStatus(identity string) (ratelimit.Status, bool) {
	return s.limiter.Status(identity)
}

func (s *assistantService) ResetRateLimit(identity string) {
	s.limiter.Reset(identity)
}

func (s *assistantService) InvalidateUserCache(userId int64) {
	s.userCtx.Invalidate(userId)
}

// InvalidateAllUserCaches drops every cached profile and reports how many
// entries were live.
func (s *assistantService) InvalidateAllUserCaches() int {
	n := s.userCtx.Len()
	s.userCtx.InvalidateAll()
	return n
}

func (s *assistantService) ClearSession(sessionId string) {
	s.transcripts.Clear(sessionId)
}

// chatIdentity keys the rate limiter: the user id for logged-in users, the
// session id for guests.
func chatIdentity(c dto.ChatContext) string {
	if c.UserId != 0 {
		return "user:" + strconv.FormatInt(c.UserId, 10)
	}
	return "session:" + c.SessionId
}

func fallbackError(r invoker.Result) string {
	if !r.Fallback {
		return ""
	}
	return "model fallback: " + string(r.Category)
}

// sourcesFromFlags names the data domains consulted for the answer.
func sourcesFromFlags(f intent.Flags) []string {
	sources := []string{}
	add := func(on bool, name string) {
		if on {
			sources = append(sources, name)
		}
	}
	add(f.Property, "properties")
	add(f.Unit || f.Availability, "units")
	add(f.Review, "reviews")
	add(f.Photo, "photos")
	add(f.Safety, "safety")
	add(f.Attraction, "attractions")
	add(f.Commute, "commute")
	add(f.TransitRoute, "transit")
	add(f.RentalEstimate, "market rates")
	add(f.Roommate, "roommate matching")
	add(f.Favorite, "favorites")
	add(f.Notification, "notifications")
	add(f.Community, "community")
	add(f.Room, "room listings")
	add(f.Setting, "preferences")
	add(f.Report, "reports")
	add(f.Price, "pricing")
	return sources
}
