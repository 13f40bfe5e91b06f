package service

import (
	"encoding/json"
	"log"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"nestquest-be/pkg/events"
)

type IPublisherService interface {
	PublishInteraction(event events.InteractionRecorded)
}

type publisherService struct {
	topicName string
	pubSub    *gochannel.GoChannel
}

func NewPublisherService(topicName string, pubSub *gochannel.GoChannel) IPublisherService {
	return &publisherService{
		topicName: topicName,
		pubSub:    pubSub,
	}
}

// PublishInteraction hands one interaction to the bus. Failures are logged
// and swallowed: history persistence must never fail a chat request.
func (ps *publisherService) PublishInteraction(event events.InteractionRecorded) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("[ERROR] Failed to marshal interaction event: %v", err)
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := ps.pubSub.Publish(ps.topicName, msg); err != nil {
		log.Printf("[ERROR] Failed to publish interaction event: %v", err)
	}
}
