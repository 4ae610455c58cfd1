package models

import "time"

// ChatMessage is an append-only direct message between two users. Messages
// are never edited or deleted; Seq gives a stable total order for messages
// sharing a timestamp.
type ChatMessage struct {
	ID         string    `json:"id" gorm:"primaryKey;size:64"`
	SenderID   string    `json:"sender_id" gorm:"not null;index;size:64"`
	ReceiverID string    `json:"receiver_id" gorm:"not null;index;size:64"`
	Body       string    `json:"body" gorm:"not null;type:text"`
	Seq        int64     `json:"-" gorm:"autoIncrement;uniqueIndex"`
	CreatedAt  time.Time `json:"created_at" gorm:"index"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
