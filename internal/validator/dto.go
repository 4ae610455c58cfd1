package validator

import "github.com/edudz/platform-service/internal/models"

// RegisterRequest represents the request structure for creating users.
// Role is fixed at registration; there is no role migration.
type RegisterRequest struct {
	Name        string          `json:"name" validate:"required,min=2,max=100"`
	Email       string          `json:"email" validate:"required,email,max=255"`
	Password    string          `json:"password" validate:"required,min=6,max=100"`
	Role        models.UserRole `json:"role" validate:"required,oneof=professor student"`
	University  *string         `json:"university" validate:"omitempty,max=200"`
	Faculty     *string         `json:"faculty" validate:"omitempty,max=200"`
	Department  *string         `json:"department" validate:"omitempty,max=200"`
	PhoneNumber *string         `json:"phone_number" validate:"omitempty,max=30"`
	Language    models.Language `json:"language" validate:"omitempty,oneof=ar fr"`
}

// LoginRequest represents the authentication request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateUserRequest merges profile fields. Role and id are deliberately
// absent; they are immutable after registration.
type UpdateUserRequest struct {
	Name           *string          `json:"name" validate:"omitempty,min=2,max=100"`
	Email          *string          `json:"email" validate:"omitempty,email,max=255"`
	University     *string          `json:"university" validate:"omitempty,max=200"`
	Faculty        *string          `json:"faculty" validate:"omitempty,max=200"`
	Department     *string          `json:"department" validate:"omitempty,max=200"`
	ProfilePicture *string          `json:"profile_picture" validate:"omitempty,url,max=500"`
	PhoneNumber    *string          `json:"phone_number" validate:"omitempty,max=30"`
	Language       *models.Language `json:"language" validate:"omitempty,oneof=ar fr"`
}

// CreateChannelRequest represents the request structure for creating
// channels. Counters and ratings always start at zero.
type CreateChannelRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=200"`
	Department  string  `json:"department" validate:"required,max=200"`
	Description string  `json:"description" validate:"omitempty,max=2000"`
	MeetLink    *string `json:"meet_link" validate:"omitempty,url,max=500"`
	Price       *int    `json:"price" validate:"omitempty,min=0,max=100000"`
}

// UpdateChannelRequest represents the request structure for updating
// channels. The owning professor is immutable after creation.
type UpdateChannelRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=200"`
	Department  *string `json:"department" validate:"omitempty,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	MeetLink    *string `json:"meet_link" validate:"omitempty,url,max=500"`
	Price       *int    `json:"price" validate:"omitempty,min=0,max=100000"`
}

// AddContentRequest appends a content item to a channel.
type AddContentRequest struct {
	Type     models.ContentType `json:"type" validate:"required,oneof=document image video"`
	Title    string             `json:"title" validate:"required,min=1,max=200"`
	URL      string             `json:"url" validate:"required,url,max=1000"`
	Metadata map[string]any     `json:"metadata" validate:"omitempty"`
}

// SendMessageRequest appends a chat message from the current user.
type SendMessageRequest struct {
	ReceiverID string `json:"receiver_id" validate:"required"`
	Body       string `json:"body" validate:"required,min=1,max=4000"`
}

// PublishAnnouncementRequest publishes a professor broadcast post.
type PublishAnnouncementRequest struct {
	Title string `json:"title" validate:"required,min=1,max=200"`
	Body  string `json:"body" validate:"required,min=1,max=4000"`
}
