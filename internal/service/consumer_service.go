package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"genegpt-be/internal/dto"
	"genegpt-be/internal/model"
	"genegpt-be/internal/pkg/logger"
	"genegpt-be/internal/repository/contract"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains turn-completed events off the in-process bus and
// writes the audit rows. Persistence is optional; with no database the
// consumer just acks and drops.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	turnRepo  contract.IConsultTurnRepository
	auditLog  logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	turnRepo contract.IConsultTurnRepository,
	auditLog logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		turnRepo:  turnRepo,
		auditLog:  auditLog,
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
	var payload dto.TurnCompletedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.auditLog.Error("audit", "failed to unmarshal turn message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	cs.auditLog.Info("audit", "turn completed", map[string]interface{}{
		"session_id": payload.SessionId,
		"gene":       payload.Gene,
		"category":   payload.Category,
		"trust":      payload.Trust,
		"certainty":  payload.Certainty,
		"sources":    strings.Join(payload.Sources, ","),
	})

	if cs.turnRepo == nil {
		msg.Ack()
		return
	}

	turn := &model.ConsultTurn{
		Id:        uuid.New(),
		SessionId: payload.SessionId,
		Gene:      payload.Gene,
		Category:  payload.Category,
		Trust:     payload.Trust,
		Certainty: payload.Certainty,
		Sources:   strings.Join(payload.Sources, ","),
		CreatedAt: time.Now(),
	}

	if err := cs.turnRepo.Create(ctx, turn); err != nil {
		cs.auditLog.Error("audit", "failed to persist consult turn", map[string]interface{}{
			"session_id": payload.SessionId,
			"error":      err.Error(),
		})
		msg.Nack() // Nack for retriable errors
		return
	}

	msg.Ack()
}
