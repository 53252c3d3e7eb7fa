package service

import (
	"context"
	"encoding/json"
	"log"

	"tabular-qa-be/internal/pkg/logger"
	"tabular-qa-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IAuditPublisher hands domain events to the in-process audit pipeline.
type IAuditPublisher interface {
	Publish(event events.Event) error
}

type IAuditService interface {
	Consume(ctx context.Context) error
}

type auditPublisher struct {
	pubSub    *gochannel.GoChannel
	topicName string
}

func NewAuditPublisher(pubSub *gochannel.GoChannel, topicName string) IAuditPublisher {
	return &auditPublisher{
		pubSub:    pubSub,
		topicName: topicName,
	}
}

func (p *auditPublisher) Publish(event events.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	return p.pubSub.Publish(p.topicName, msg)
}

type auditService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	auditLog  logger.ILogger
}

// NewAuditService builds the consumer side of the audit pipeline. It writes
// every event to the isolated audit log file.
func NewAuditService(pubSub *gochannel.GoChannel, topicName string, auditLog logger.ILogger) IAuditService {
	return &auditService{
		pubSub:    pubSub,
		topicName: topicName,
		auditLog:  auditLog,
	}
}

func (as *auditService) Consume(ctx context.Context) error {
	messages, err := as.pubSub.Subscribe(ctx, as.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			as.processMessage(msg)
		}
	}()

	return nil
}

func (as *auditService) processMessage(msg *message.Message) {
	var event events.BaseEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		log.Printf("[ERROR] Failed to unmarshal audit event: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	as.auditLog.Info("Audit", event.Type, map[string]interface{}{
		"data":        event.Data,
		"occurred_at": event.OccurredAt,
	})
	msg.Ack()
}
