package service

import (
	"context"
	"fmt"

	"ai-travelplanner-be/internal/pkg/logger"
	"ai-travelplanner-be/pkg/events"
	pktNats "ai-travelplanner-be/pkg/nats"
)

// NotificationDelivery defines how to push real-time updates.
// Typically implemented by the WebSocket Hub.
type NotificationDelivery interface {
	Send(sessionID string, eventType string, payload map[string]interface{})
}

// NotificationService forwards planner events from the bus to connected
// websocket clients of the owning session.
type NotificationService struct {
	subscriber *pktNats.Subscriber
	delivery   NotificationDelivery
	logger     logger.ILogger
}

func NewNotificationService(sub *pktNats.Subscriber, delivery NotificationDelivery, log logger.ILogger) *NotificationService {
	return &NotificationService{
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the event bus.
func (s *NotificationService) Start() {
	err := s.subscriber.Subscribe("planner.>", "planner-notif-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to start notification subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("NotificationService", "Notification service started, listening to planner.>", nil)
}

func (s *NotificationService) handleEvent(_ context.Context, event events.Event) error {
	payload := event.Payload()

	sessionID, _ := payload["session_id"].(string)
	if sessionID == "" {
		s.logger.Warn("NotificationService", fmt.Sprintf("Event %s has no session_id, dropping", event.EventType()), nil)
		return nil
	}

	if s.delivery != nil {
		s.delivery.Send(sessionID, event.EventType(), payload)
	}
	return nil
}
