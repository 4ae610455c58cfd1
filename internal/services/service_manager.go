package services

import (
	"github.com/edudz/platform-service/internal/events"
	"github.com/edudz/platform-service/internal/repositories"
	"github.com/edudz/platform-service/internal/utils"
	"github.com/edudz/platform-service/internal/validator"
	"github.com/edudz/platform-service/pkg/keylock"
)

// ServiceManager wires every service over one repository handle and one
// event publisher.
type ServiceManager struct {
	Identity     IdentityService
	Channel      ChannelService
	Subscription SubscriptionService
	Messaging    MessagingService
	Announcement AnnouncementService
}

// NewServiceManager builds the full service layer. The channel lock table
// is shared between the channel and subscription services so cascade
// deletes and subscribes on the same channel serialize.
func NewServiceManager(repo repositories.Repository, v *validator.Validator, publisher events.EventPublisher, logger utils.Logger) *ServiceManager {
	channelLocks := keylock.New()

	subscription := &subscriptionService{
		repo:         repo,
		publisher:    publisher,
		logger:       logger,
		channelLocks: channelLocks,
	}

	return &ServiceManager{
		Identity:     NewIdentityService(repo, v, publisher),
		Channel:      NewChannelService(repo, v, publisher, channelLocks),
		Subscription: subscription,
		Messaging:    NewMessagingService(repo, v, publisher),
		Announcement: NewAnnouncementService(repo, v, publisher),
	}
}
