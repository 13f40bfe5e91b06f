// Package events defines the payloads exchanged over the in-process event
// bus. The assistant publishes one InteractionRecorded event per answered
// chat; the consumer service turns it into a durable conversation row.
package events

import "time"

// TopicInteractionRecorded is the pub/sub topic for conversation history
// writes.
const TopicInteractionRecorded = "ASSISTANT_INTERACTION_RECORDED"

// InteractionRecorded is emitted after a chat response is produced, whether
// the answer came from the model or a fallback. Persistence is best-effort
// and must never block or fail the request path.
type InteractionRecorded struct {
	SessionId string    `json:"session_id"`
	Identity  string    `json:"identity"`
	UserId    int64     `json:"user_id,omitempty"`
	UserEmail string    `json:"user_email,omitempty"`
	Page      string    `json:"page,omitempty"`
	Message   string    `json:"message"`
	Response  string    `json:"response"`
	Tokens    int       `json:"tokens"`
	Cost      float64   `json:"cost"`
	Fallback  bool      `json:"fallback"`
	LatencyMs int64     `json:"latency_ms"`
	At        time.Time `json:"at"`
}
