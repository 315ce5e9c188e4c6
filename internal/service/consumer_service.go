package service

import (
	"context"
	"encoding/json"
	"time"

	"content-platform-be/internal/dto"
	"content-platform-be/internal/pkg/logger"
	"content-platform-be/internal/repository/specification"
	"content-platform-be/internal/repository/unitofwork"
	"content-platform-be/pkg/events"
	"content-platform-be/pkg/seo"

	"github.com/ThreeDotsLabs/watermill/message"
)

const moduleIndex = "IndexConsumer"

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService derives structured-data descriptors for content queued by
// the publisher service and stores them next to the content.
type consumerService struct {
	subscriber     message.Subscriber
	topicName      string
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher events.Publisher
	logger         logger.ILogger
	now            func() time.Time
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	eventPublisher events.Publisher,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber:     subscriber,
		topicName:      topicName,
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		logger:         log,
		now:            time.Now,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
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

// processMessage acks messages that can never succeed (bad payload, deleted
// content) and nacks those that may succeed on redelivery.
func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishIndexContentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error(moduleIndex, "Failed to unmarshal message", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		msg.Ack()
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	content, err := uow.ContentRepository().FindOne(ctx, specification.ByID{ID: payload.ContentId})
	if err != nil {
		cs.logger.Error(moduleIndex, "Failed to load content", map[string]interface{}{
			"content_id": payload.ContentId,
			"error":      err.Error(),
		})
		msg.Nack()
		return
	}
	if content == nil {
		cs.logger.Info(moduleIndex, "Content gone before indexing", map[string]interface{}{"content_id": payload.ContentId})
		msg.Ack()
		return
	}

	descs := seo.Derive(newCodec(cs.logger).Parse(content.Body))
	bundle, err := seo.Bundle(descs)
	if err != nil {
		// Derive only produces complete descriptors, so this is a bug, not a retry case.
		cs.logger.Error(moduleIndex, "Failed to bundle descriptors", map[string]interface{}{
			"content_id": content.Id,
			"error":      err.Error(),
		})
		msg.Ack()
		return
	}

	if err := uow.ContentRepository().UpdateDescriptors(ctx, content.Id, bundle, cs.now()); err != nil {
		cs.logger.Error(moduleIndex, "Failed to store descriptors", map[string]interface{}{
			"content_id": content.Id,
			"error":      err.Error(),
		})
		msg.Nack()
		return
	}

	if cs.eventPublisher != nil {
		if err := cs.eventPublisher.Publish(ctx, events.NewContentIndexed(content.Id.String(), len(descs), bundle)); err != nil {
			cs.logger.Warn(moduleIndex, "Failed to publish CONTENT_INDEXED", map[string]interface{}{
				"content_id": content.Id,
				"error":      err.Error(),
			})
		}
	}

	cs.logger.Info(moduleIndex, "Content indexed", map[string]interface{}{
		"content_id":  content.Id,
		"descriptors": len(descs),
	})
	msg.Ack()
}
