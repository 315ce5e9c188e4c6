package service

import (
	"context"
	"encoding/json"

	"content-platform-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

type IPublisherService interface {
	Publish(ctx context.Context, payload []byte) error
	// PublishIndex queues content id for descriptor indexing.
	PublishIndex(ctx context.Context, contentId uuid.UUID) error
}

type publisherService struct {
	topicName string
	publisher message.Publisher
}

func NewPublisherService(topicName string, publisher message.Publisher) IPublisherService {
	return &publisherService{
		topicName: topicName,
		publisher: publisher,
	}
}

func (p *publisherService) Publish(ctx context.Context, payload []byte) error {
	msg := message.NewMessage(watermill.NewUUID(), payload)
	return p.publisher.Publish(p.topicName, msg)
}

func (p *publisherService) PublishIndex(ctx context.Context, contentId uuid.UUID) error {
	payload, err := json.Marshal(dto.PublishIndexContentMessage{ContentId: contentId})
	if err != nil {
		return err
	}
	return p.Publish(ctx, payload)
}
