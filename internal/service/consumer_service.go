package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"ai-travelplanner-be/internal/dto"
	"ai-travelplanner-be/internal/entity"
	"ai-travelplanner-be/internal/repository/specification"
	"ai-travelplanner-be/internal/repository/unitofwork"
	"ai-travelplanner-be/pkg/embedding"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
	}
}

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
	var payload dto.PublishEmbedActivityMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Processing embedding for ActivityId: %s", payload.ActivityId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	activity, err := uow.ActivityRepository().FindOne(ctx, specification.ByID{ID: payload.ActivityId})
	if err != nil {
		log.Printf("[ERROR] Failed to get activity %s: %v", payload.ActivityId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if activity == nil {
		log.Printf("[ERROR] Activity not found: %s", payload.ActivityId)
		msg.Ack() // Activity deleted? Ack.
		return
	}

	document := activity.Document()
	log.Printf("[INFO] Generating embedding for activity %s (document length: %d)", payload.ActivityId, len(document))

	res, err := cs.embeddingProvider.Generate(document, "RETRIEVAL_DOCUMENT")
	if err != nil {
		log.Printf("[ERROR] Failed to generate embedding for activity %s: %v", payload.ActivityId, err)
		msg.Nack()
		return
	}

	newEmbeddings := []*entity.ActivityEmbedding{
		{
			Id:         uuid.New(),
			Document:   document,
			Values:     res.Embedding.Values,
			ActivityId: activity.Id,
			CreatedAt:  time.Now(),
		},
	}

	if err := uow.Begin(ctx); err != nil {
		log.Printf("[ERROR] Failed to begin transaction: %v", err)
		msg.Nack()
		return
	}
	defer uow.Rollback()

	if err := uow.ActivityEmbeddingRepository().DeleteByActivityId(ctx, activity.Id); err != nil {
		log.Printf("[ERROR] Failed to delete old embeddings: %v", err)
		msg.Nack()
		return
	}

	if err := uow.ActivityEmbeddingRepository().CreateBulk(ctx, newEmbeddings); err != nil {
		log.Printf("[ERROR] Failed to create embeddings: %v", err)
		msg.Nack()
		return
	}

	if err := uow.Commit(); err != nil {
		log.Printf("[ERROR] Failed to commit transaction: %v", err)
		msg.Nack()
		return
	}

	log.Printf("[SUCCESS] Activity embedded: %s", payload.ActivityId)
	msg.Ack()
}
