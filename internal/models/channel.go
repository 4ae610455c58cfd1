package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DefaultChannelPrice is the fixed subscription price in DZD.
const DefaultChannelPrice = 50

type ContentType string

const (
	ContentDocument ContentType = "document"
	ContentImage    ContentType = "image"
	ContentVideo    ContentType = "video"
)

func (t ContentType) IsValid() bool {
	switch t {
	case ContentDocument, ContentImage, ContentVideo:
		return true
	}
	return false
}

type Channel struct {
	ID          string `json:"id" gorm:"primaryKey;size:64"`
	ProfessorID string `json:"professor_id" gorm:"not null;index;size:64"`
	Name        string `json:"name" gorm:"not null;size:200"`
	Department  string `json:"department" gorm:"not null;size:200"`
	Description string `json:"description" gorm:"type:text"`
	MeetLink    *string `json:"meet_link" gorm:"size:500"`

	// StarRating is overwritten by the periodic rating sweep, clamped to
	// [3.0, 5.0] once the channel has subscriber data.
	StarRating float64 `json:"star_rating" gorm:"default:0"`

	// SubscriberCount mirrors the cardinality of the subscription relation
	// for this channel. The relation is the source of truth; the sweep
	// reconciles this counter against it.
	SubscriberCount int `json:"subscriber_count" gorm:"default:0"`

	Price int `json:"price" gorm:"default:50"`

	Content []Content `json:"content" gorm:"foreignKey:ChannelID"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Channel) TableName() string {
	return "channels"
}

// Content is an append-only item inside a channel. Items are never edited
// or removed once uploaded.
type Content struct {
	ID        string      `json:"id" gorm:"primaryKey;size:64"`
	ChannelID string      `json:"channel_id" gorm:"not null;index;size:64"`
	Type      ContentType `json:"type" gorm:"not null;size:20"`
	Title     string      `json:"title" gorm:"not null;size:200"`
	URL       string      `json:"url" gorm:"not null;size:1000"`

	// Upload metadata (mime type, size, original filename) as reported by
	// the upload pipeline.
	Metadata datatypes.JSON `json:"metadata,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (Content) TableName() string {
	return "channel_content"
}

// Subscription is the explicit relation between a student and a channel.
// Keeping it as its own row set (instead of an id array embedded in the
// student) makes the cascade on channel delete and the subscriber-count
// invariant enforceable.
type Subscription struct {
	StudentID string    `json:"student_id" gorm:"primaryKey;size:64"`
	ChannelID string    `json:"channel_id" gorm:"primaryKey;size:64;index"`
	CreatedAt time.Time `json:"created_at"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}

// Follow is the no-cost student-professor association. It has no effect on
// ratings or content access.
type Follow struct {
	StudentID   string    `json:"student_id" gorm:"primaryKey;size:64"`
	ProfessorID string    `json:"professor_id" gorm:"primaryKey;size:64;index"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Follow) TableName() string {
	return "follows"
}
