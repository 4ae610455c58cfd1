package services

import (
	"context"
	"time"

	"github.com/edudz/platform-service/internal/models"
	"github.com/edudz/platform-service/internal/validator"
)

// SubscribeResult reports which branch a subscribe call took. Repeats are
// accepted and change nothing.
type SubscribeResult string

const (
	Subscribed        SubscribeResult = "subscribed"
	AlreadySubscribed SubscribeResult = "already_subscribed"
)

// UnsubscribeResult reports which branch an unsubscribe call took.
type UnsubscribeResult string

const (
	Unsubscribed  UnsubscribeResult = "unsubscribed"
	NotSubscribed UnsubscribeResult = "not_subscribed"
)

// RecomputeReport summarizes one rating sweep.
type RecomputeReport struct {
	ChannelsUpdated   int           `json:"channels_updated"`
	ProfessorsUpdated int           `json:"professors_updated"`
	ProfessorsSkipped int           `json:"professors_skipped"`
	Duration          time.Duration `json:"-"`
	DurationHuman     string        `json:"duration"`
}

// IdentityService owns user accounts and profiles.
type IdentityService interface {
	Register(ctx context.Context, req *validator.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *validator.LoginRequest) (*models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	UpdateUser(ctx context.Context, id string, req *validator.UpdateUserRequest) (*models.User, error)
	ListProfessors(ctx context.Context) ([]*models.User, error)
}

// ChannelService owns channels and their append-only content.
type ChannelService interface {
	CreateChannel(ctx context.Context, professorID string, req *validator.CreateChannelRequest) (*models.Channel, error)
	GetChannel(ctx context.Context, id string) (*models.Channel, error)
	UpdateChannel(ctx context.Context, professorID, channelID string, req *validator.UpdateChannelRequest) (*models.Channel, error)
	DeleteChannel(ctx context.Context, professorID, channelID string) error
	ListChannels(ctx context.Context) ([]*models.Channel, error)
	ListProfessorChannels(ctx context.Context, professorID string) ([]*models.Channel, error)
	AddContent(ctx context.Context, professorID, channelID string, req *validator.AddContentRequest) (*models.Content, error)
	ListContent(ctx context.Context, channelID string) ([]*models.Content, error)

	// ExportProfessorReport renders the professor's channel statistics as
	// an xlsx workbook.
	ExportProfessorReport(ctx context.Context, professorID string) ([]byte, error)
}

// SubscriptionService owns the subscription and follow relations and the
// reputation scores derived from them.
type SubscriptionService interface {
	Subscribe(ctx context.Context, studentID, channelID string) (SubscribeResult, error)
	Unsubscribe(ctx context.Context, studentID, channelID string) (UnsubscribeResult, error)
	ListSubscribedChannels(ctx context.Context, studentID string) ([]*models.Channel, error)

	// ToggleFollow flips the student's follow of the professor and returns
	// the state after the call. Following is free of rating side effects.
	ToggleFollow(ctx context.Context, studentID, professorID string) (bool, error)
	ListFollowedProfessors(ctx context.Context, studentID string) ([]*models.User, error)

	// RecomputeRatings runs the full rating sweep. At most one sweep runs
	// at a time; a second caller gets ErrRecomputeInProgress.
	RecomputeRatings(ctx context.Context) (*RecomputeReport, error)
}

// MessagingService owns the append-only direct-message log.
type MessagingService interface {
	SendMessage(ctx context.Context, senderID string, req *validator.SendMessageRequest) (*models.ChatMessage, error)
	GetConversation(ctx context.Context, userID, otherID string) ([]*models.ChatMessage, error)
}

// AnnouncementService owns professor broadcast posts.
type AnnouncementService interface {
	Publish(ctx context.Context, professorID string, req *validator.PublishAnnouncementRequest) (*models.Announcement, error)
	ListByProfessor(ctx context.Context, professorID string) ([]*models.Announcement, error)
}
