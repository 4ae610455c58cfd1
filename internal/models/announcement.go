package models

import "time"

// Announcement is a professor-authored broadcast post. Append-only; there
// is no edit or delete operation.
type Announcement struct {
	ID          string    `json:"id" gorm:"primaryKey;size:64"`
	ProfessorID string    `json:"professor_id" gorm:"not null;index;size:64"`
	Title       string    `json:"title" gorm:"not null;size:200"`
	Body        string    `json:"body" gorm:"not null;type:text"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}

func (Announcement) TableName() string {
	return "announcements"
}
