package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"nestquest-be/pkg/events"
	"nestquest-be/pkg/store"
)

// conversationsTable holds the durable chat history.
const conversationsTable = "assistant_conversations"

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	querier   store.Querier
}

func NewConsumerService(pubSub *gochannel.GoChannel, topicName string, querier store.Querier) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		querier:   querier,
	}
}

// Consume subscribes to the interaction topic and persists each event as one
// conversation row.
func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var event events.InteractionRecorded
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		log.Printf("[ERROR] Failed to unmarshal interaction event: %v", err)
		msg.Ack() // invalid payloads would never succeed, drop them
		return
	}

	row := store.Row{
		"session_id": event.SessionId,
		"identity":   event.Identity,
		"page":       event.Page,
		"message":    event.Message,
		"response":   event.Response,
		"tokens":     event.Tokens,
		"cost":       event.Cost,
		"fallback":   event.Fallback,
		"latency_ms": event.LatencyMs,
		"created_at": event.At,
	}
	if event.UserId != 0 {
		row["user_id"] = event.UserId
		row["user_email"] = event.UserEmail
	}

	if err := cs.querier.Insert(ctx, conversationsTable, row); err != nil {
		log.Printf("[ERROR] Failed to persist conversation for session %s: %v", event.SessionId, err)
		msg.Nack()
		return
	}

	msg.Ack()
}
