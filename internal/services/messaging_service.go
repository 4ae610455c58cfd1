package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/edudz/platform-service/internal/events"
	"github.com/edudz/platform-service/internal/models"
	"github.com/edudz/platform-service/internal/repositories"
	"github.com/edudz/platform-service/internal/validator"
)

type messagingService struct {
	repo      repositories.Repository
	validator *validator.Validator
	publisher events.EventPublisher
}

// NewMessagingService creates the direct-messaging service.
func NewMessagingService(repo repositories.Repository, v *validator.Validator, publisher events.EventPublisher) MessagingService {
	return &messagingService{
		repo:      repo,
		validator: v,
		publisher: publisher,
	}
}

func (s *messagingService) SendMessage(ctx context.Context, senderID string, req *validator.SendMessageRequest) (*models.ChatMessage, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	if senderID == req.ReceiverID {
		return nil, ErrInvalidParticipant
	}
	if err := s.checkParticipants(ctx, senderID, req.ReceiverID); err != nil {
		return nil, err
	}

	msg := &models.ChatMessage{
		ID:         uuid.New().String(),
		SenderID:   senderID,
		ReceiverID: req.ReceiverID,
		Body:       req.Body,
	}

	if err := s.repo.Message().Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("creating message: %w", err)
	}

	_ = s.publisher.Publish(ctx, events.NewEvent(events.EventMessageSent, map[string]any{
		"message_id":  msg.ID,
		"sender_id":   senderID,
		"receiver_id": req.ReceiverID,
	}))

	return msg, nil
}

// GetConversation returns the full exchange between the two users in both
// directions, oldest first. Either participant sees the identical list.
func (s *messagingService) GetConversation(ctx context.Context, userID, otherID string) ([]*models.ChatMessage, error) {
	if userID == otherID {
		return nil, ErrInvalidParticipant
	}
	if err := s.checkParticipants(ctx, userID, otherID); err != nil {
		return nil, err
	}

	messages, err := s.repo.Message().ListBetween(ctx, userID, otherID)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	return messages, nil
}

// checkParticipants verifies both ids resolve to known users.
func (s *messagingService) checkParticipants(ctx context.Context, ids ...string) error {
	for _, id := range ids {
		ok, err := s.repo.User().ExistsByID(ctx, id)
		if err != nil {
			return fmt.Errorf("checking user %s: %w", id, err)
		}
		if !ok {
			return ErrInvalidParticipant
		}
	}
	return nil
}
