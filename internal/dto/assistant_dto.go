package dto

// ChatContext is the client-side situation that rides along with a message.
// UserId 0 marks an anonymous visitor.
type ChatContext struct {
	UserId      int64  `json:"user_id"`
	UserEmail   string `json:"user_email"`
	CurrentPage string `json:"current_page"`
	SessionId   string `json:"session_id"`
	Timestamp   string `json:"timestamp"`
}

// ChatRequest is the body of POST /api/assistant/v1/chat.
type ChatRequest struct {
	Message string      `json:"message" validate:"required"`
	Context ChatContext `json:"context"`
}

// ChatResponse is the assistant answer returned to the client. SessionId
// echoes the conversation key so a client that started without one can keep
// the thread going.
type ChatResponse struct {
	SessionId   string   `json:"session_id"`
	Response    string   `json:"response"`
	Sources     []string `json:"sources"`
	Suggestions []string `json:"suggestions"`
	Confidence  float64  `json:"confidence"`
	Cost        float64  `json:"cost"`
	Tokens      int      `json:"tokens"`
}

// FAQItemRequest is the admin create/update body for one FAQ entry.
type FAQItemRequest struct {
	Question string   `json:"question" validate:"required"`
	Answer   string   `json:"answer" validate:"required"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	Priority int      `json:"priority" validate:"omitempty,min=1,max=10"`
}

// RateLimitStatusResponse reports one identity's window.
type RateLimitStatusResponse struct {
	Identity  string `json:"identity"`
	Count     int    `json:"count"`
	Limit     int    `json:"limit"`
	Remaining int    `json:"remaining"`
	ResetsIn  int64  `json:"resets_in_seconds"`
}

// CostSummaryResponse is the admin cost view.
type CostSummaryResponse struct {
	TotalCost float64     `json:"total_cost"`
	Entries   interface{} `json:"entries"`
}
